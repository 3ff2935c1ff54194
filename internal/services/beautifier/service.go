// Package beautifier turns raw execution logs into annotated HTML fragments,
// one per testcase block.
package beautifier

import (
	"fmt"
	"html"
	"regexp"
	"strings"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/yangreport/internal/common"
	"github.com/ternarybob/yangreport/internal/models"
)

const (
	blockMarker  = "[TESTCASE-BEGIN]"
	resultLabel  = "TESTCASE RESULT"
	gnmiStart    = "[GNMI RESPONSE]"
	gnmiEnd      = "[End of GNMI RESPONSE]"
	rpcStart     = "[RPC]"
	rpcEnd       = "[END OF RPC]"
	reproEnd     = "[END OF REPRO-INFO]"
	failedHeader = "FAILED VALIDATIONS:"
)

// Result colours
const (
	ColorPass         = "green"
	ColorFail         = "red"
	ColorPromotedPass = "orange"
	ColorAnomalyPass  = "#1e79ff"
)

var (
	testcaseID    = regexp.MustCompile(`TC_\d+`)
	testcaseLine  = regexp.MustCompile(`(?i)(TESTCASE RESULT\s*-\s*)(PASS|FAIL)(\s*\[.*?\])?`)
	stepHeader    = regexp.MustCompile(`^Step\s*\d+:`)
	spacingMarker = `<br><div style="margin-top: 15px; clear: both;"></div>`
)

// Service renders execution logs
type Service struct {
	logger arbor.ILogger
}

// NewService creates a log beautifier
func NewService(logger arbor.ILogger) *Service {
	return &Service{logger: logger}
}

// Beautify splits content into testcase blocks and renders each one. Blocks
// without a TC_<n> id are dropped. Repeated ids get TC_1_1, TC_1_2, ...
func (s *Service) Beautify(content, modelInfo string) *models.LogReport {
	report := &models.LogReport{ModelInfo: modelInfo}
	seen := make(map[string]struct{})

	for _, raw := range strings.Split(content, blockMarker) {
		if strings.TrimSpace(raw) == "" {
			continue
		}

		id := testcaseID.FindString(raw)
		if id == "" {
			s.logger.Debug().Int("length", len(raw)).Msg("Skipping log block without testcase id")
			continue
		}

		unique := id
		for n := 1; ; n++ {
			if _, dup := seen[unique]; !dup {
				break
			}
			unique = fmt.Sprintf("%s_%d", id, n)
		}
		seen[unique] = struct{}{}

		section := renderBlock(unique, id, raw)
		report.Sections = append(report.Sections, section)
	}

	s.logger.Debug().
		Int("sections", len(report.Sections)).
		Str("model", modelInfo).
		Msg("Beautified execution log")

	return report
}

// ModelInfo formats a result document label for the log report heading
func ModelInfo(label string) string {
	if label == "" {
		return ""
	}
	return common.TitleCase(strings.ReplaceAll(label, "_", "-"))
}

// Classify returns the section class of a raw block from its TESTCASE RESULT line
func Classify(raw string) string {
	return classifyResult(testcaseLine.FindStringSubmatch(raw))
}

func classifyResult(m []string) string {
	if m == nil || !strings.EqualFold(m[2], models.StatusPass) {
		return models.SectionFail
	}
	switch {
	case strings.Contains(m[3], "[Operation FAIL"):
		return models.SectionPromotedPass
	case strings.Contains(m[3], "[Operation PASS"):
		return models.SectionAnomalyPass
	}
	return models.SectionPass
}

// SectionColor maps a section class to its highlight colour
func SectionColor(status string) string {
	switch status {
	case models.SectionPass:
		return ColorPass
	case models.SectionPromotedPass:
		return ColorPromotedPass
	case models.SectionAnomalyPass:
		return ColorAnomalyPass
	}
	return ColorFail
}

func renderBlock(unique, id, raw string) models.LogSection {
	status := Classify(raw)

	// The TC id and data-color only distinguish pass from fail
	color := ColorFail
	if status != models.SectionFail {
		color = ColorPass
	}

	b := &block{
		id:      id,
		idColor: color,
		idMatch: regexp.MustCompile(`\b` + regexp.QuoteMeta(id) + `\b`),
	}
	body := b.render(strings.Split(strings.ReplaceAll(raw, "\r\n", "\n"), "\n"))

	return models.LogSection{
		ID:         unique,
		TestcaseID: id,
		Status:     status,
		Color:      color,
		HTML: fmt.Sprintf(`<div id="%s" class="testcase-section" data-status="%s" data-color="%s"><br>%s</div>`,
			unique, status, color, body),
	}
}

// block carries the per-testcase rendering state
type block struct {
	id       string
	idColor  string
	idMatch  *regexp.Regexp
	idMarked bool
}

// inline escapes text and highlights the testcase id (first occurrence) and result
func (b *block) inline(text string) string {
	escaped := html.EscapeString(text)

	if !b.idMarked {
		if loc := b.idMatch.FindStringIndex(escaped); loc != nil {
			escaped = escaped[:loc[0]] +
				fmt.Sprintf(`<span style="color: %s; font-weight: bold;">%s</span>`, b.idColor, b.id) +
				escaped[loc[1]:]
			b.idMarked = true
		}
	}

	return testcaseLine.ReplaceAllStringFunc(escaped, func(match string) string {
		return fmt.Sprintf(`<span style="color: %s; font-weight: bold;">%s</span>`, resultColor(match), match)
	})
}

func resultColor(match string) string {
	return SectionColor(classifyResult(testcaseLine.FindStringSubmatch(match)))
}

func (b *block) plain(lines []string) string {
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = b.inline(l)
	}
	return strings.Join(out, "\n")
}

func collapsible(title, content, after string) string {
	return "\n<details class=\"collapsible-section\">" +
		"\n<summary class=\"collapsible-summary\"><b>" + title + "</b></summary>" +
		"\n<div class=\"collapsible-box\" style=\"border: 1px solid #ccc; padding: 10px; background-color: #f9f9f9;\">" +
		"\n" + content + "\n</div>\n</details>\n" + after
}

func (b *block) gnmiResponse(lines []string) string {
	target := "gnmi_response_" + b.id
	return `<details class="collapsible-section">` +
		`<summary class="collapsible-summary"><b>View GNMI Response</b></summary>` +
		`<div class="collapsible-box" style="position: relative; padding: 10px; max-height: 500px; overflow-y: auto; border: 1px solid #ccc; display: flex; flex-direction: column;">` +
		`<div style="position: sticky; top: 0; right: 0; background: white; display: flex; justify-content: flex-end; padding: 5px; z-index: 1000;">` +
		`<button class="expand-button" onclick="openGNMIResponseInNewTab('` + target + `')">Expand View</button>` +
		`</div>` +
		`<pre id="` + target + `" style="white-space: pre-wrap; word-wrap: break-word; margin: 0;">` +
		html.EscapeString(strings.Join(lines, "\n")) + `</pre>` +
		`</div></details>`
}
