package beautifier

import (
	"html"
	"strings"
)

// sectionEnd decides where a framed-header section stops
type sectionEnd int

const (
	endAtBorder       sectionEnd = iota // next single-cell border line
	endAtFramedHeader                   // next framed header or result line
	endAfterTable                       // first line that is not part of a table
	endAtReproMarker                    // [END OF REPRO-INFO], consumed
	endImmediately                      // header only
)

type sectionRule struct {
	match func(header string) bool
	title func(header string) string
	end   sectionEnd
}

func fixedTitle(title string) func(string) string {
	return func(string) string { return title }
}

func headerTitle(header string) string { return header }

func hasPrefix(prefix string) func(string) bool {
	return func(header string) bool { return strings.HasPrefix(header, prefix) }
}

var sectionRules = []sectionRule{
	{match: hasPrefix("VALIDATIONS"), title: fixedTitle("View Validations"), end: endAtBorder},
	{match: stepHeader.MatchString, title: headerTitle, end: endAfterTable},
	{match: hasPrefix("Validating EOM, Frequency & Timestamps for -"), title: headerTitle, end: endAtFramedHeader},
	{match: hasPrefix("Time Intervals"), title: fixedTitle("View Time Intervals Details"), end: endAtFramedHeader},
	{match: hasPrefix("Sample-Interval:"), title: fixedTitle("View Sample Interval Details"), end: endAfterTable},
	{match: hasPrefix("Additional Paths Found in update that are not defined in schema"), title: fixedTitle("View Additional Paths Found"), end: endAtFramedHeader},
	{match: hasPrefix("Coverage Mismatch Details"), title: fixedTitle("View Coverage Mismatch Details"), end: endImmediately},
	{
		match: func(h string) bool { return strings.Contains(h, "Manual Repro Info:") },
		title: headerTitle,
		end:   endAtReproMarker,
	},
}

// framedHeader reports the text of a one-cell boxed header starting at i
func framedHeader(lines []string, i int) (string, bool) {
	if i+2 >= len(lines) {
		return "", false
	}
	if !isSingleCellBorder(lines[i]) || !isSingleCellBorder(lines[i+2]) {
		return "", false
	}
	middle := strings.TrimSpace(lines[i+1])
	if !strings.HasPrefix(middle, "|") {
		return "", false
	}
	return strings.TrimSpace(strings.Trim(middle, "|")), true
}

func matchRule(header string) (sectionRule, bool) {
	for _, r := range sectionRules {
		if r.match(header) {
			return r, true
		}
	}
	return sectionRule{}, false
}

// sectionStop returns the index of the first line after a section body that begins at start
func sectionStop(lines []string, start int, end sectionEnd) (stop, next int) {
	switch end {
	case endImmediately:
		return start, start
	case endAtBorder:
		for j := start; j < len(lines); j++ {
			if isSingleCellBorder(lines[j]) {
				return j, j
			}
		}
	case endAtFramedHeader:
		for j := start; j < len(lines); j++ {
			if _, ok := framedHeader(lines, j); ok {
				return j, j
			}
			if strings.Contains(lines[j], resultLabel) {
				return j, j
			}
		}
	case endAfterTable:
		for j := start; j < len(lines); j++ {
			if _, ok := framedHeader(lines, j); ok || !isTableLine(lines[j]) {
				return j, j
			}
		}
	case endAtReproMarker:
		for j := start; j < len(lines); j++ {
			if strings.TrimSpace(lines[j]) == reproEnd {
				return j, j + 1
			}
		}
	}
	return len(lines), len(lines)
}

// indexFrom returns the first line at or after start containing marker
func indexFrom(lines []string, start int, marker string) int {
	for j := start; j < len(lines); j++ {
		if strings.Contains(lines[j], marker) {
			return j
		}
	}
	return -1
}

// render converts a block's lines into HTML, folding recognised regions into
// collapsible sections and ASCII tables into HTML tables
func (b *block) render(lines []string) string {
	var out []string

	for i := 0; i < len(lines); {
		line := lines[i]
		trimmed := strings.TrimSpace(line)

		switch {
		case strings.Contains(line, gnmiStart):
			stop := indexFrom(lines, i, gnmiEnd)
			if stop < 0 {
				stop = len(lines) - 1
			}
			out = append(out, b.gnmiResponse(lines[i:stop+1]))
			i = stop + 1
			continue

		case strings.HasPrefix(trimmed, rpcStart):
			stop := indexFrom(lines, i+1, rpcEnd)
			if stop < 0 {
				stop = len(lines)
			}
			body := b.inline(line)
			if rest := trimBlank(lines[i+1 : stop]); len(rest) > 0 {
				body += "\n" + b.render(rest)
			}
			out = append(out, collapsible("View RPC", body, ""))
			i = stop + 1
			continue

		case trimmed == failedHeader:
			j := i + 1
			for j < len(lines) && isTableLine(lines[j]) {
				j++
			}
			if j > i+1 {
				out = append(out, collapsible("View Failed Validations", b.failedValidationTable(lines[i+1:j]), spacingMarker))
				i = j
				continue
			}
		}

		if header, ok := framedHeader(lines, i); ok {
			if rule, ok := matchRule(header); ok {
				stop, next := sectionStop(lines, i+3, rule.end)
				body := b.render(trimBlank(lines[i+3 : stop]))
				out = append(out, collapsible(html.EscapeString(rule.title(header)), body, ""))
				i = next
				continue
			}
		}

		if isTableLine(line) {
			j := i
			for j < len(lines) && isTableLine(lines[j]) {
				j++
			}
			out = append(out, b.asciiTable(lines[i:j]))
			i = j
			continue
		}

		out = append(out, b.inline(line))
		i++
	}

	return strings.Join(out, "\n")
}

func trimBlank(lines []string) []string {
	for len(lines) > 0 && strings.TrimSpace(lines[0]) == "" {
		lines = lines[1:]
	}
	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}
