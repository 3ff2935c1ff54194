// Package testcase builds the tabular testcase report from result documents.
package testcase

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/ternarybob/arbor"
	"github.com/tidwall/gjson"

	"github.com/ternarybob/yangreport/internal/models"
	"github.com/ternarybob/yangreport/internal/services/aggregator"
)

const (
	notApplicable = "Not Applicable"
	noValue       = "N/A"
	listSeparator = ", "
)

var testIDNumber = regexp.MustCompile(`\d+`)

// Builder assembles testcase reports
type Builder struct {
	logger arbor.ILogger
}

// NewBuilder creates a testcase report builder
func NewBuilder(logger arbor.ILogger) *Builder {
	return &Builder{logger: logger}
}

// summary_dict counters summed across documents
var summaryDictCounters = []struct {
	key   string
	field func(*models.TestcaseSummary) *int64
}{
	{"total_xpaths", func(s *models.TestcaseSummary) *int64 { return &s.TotalPaths }},
	{"set_xpaths", func(s *models.TestcaseSummary) *int64 { return &s.SetPaths }},
	{"state_only", func(s *models.TestcaseSummary) *int64 { return &s.StateOnly }},
	{"set_get_sub", func(s *models.TestcaseSummary) *int64 { return &s.SetGetSub }},
	{"deviations", func(s *models.TestcaseSummary) *int64 { return &s.Deviations }},
	{"input_xpaths", func(s *models.TestcaseSummary) *int64 { return &s.InputPaths }},
	{"input_state_xpaths", func(s *models.TestcaseSummary) *int64 { return &s.InputStatePaths }},
	{"test_set_get_sub", func(s *models.TestcaseSummary) *int64 { return &s.TestedSetGetSub }},
	{"test_state", func(s *models.TestcaseSummary) *int64 { return &s.TestedState }},
	{"test_xpaths", func(s *models.TestcaseSummary) *int64 { return &s.TestedPaths }},
}

// Build sums the document counters and lists every outcome. Rows of each
// document are ordered by the number in their test id; documents keep their
// given order.
func (b *Builder) Build(docs []*models.ResultDocument) *models.TestcaseReport {
	report := &models.TestcaseReport{Rows: []models.TestcaseRow{}}
	summary := &report.Summary

	releases := newUniqueList()
	testReleases := newUniqueList()
	platforms := newUniqueList()
	platformSupport := newUniqueList()
	labels := newUniqueList()

	for _, doc := range docs {
		b.addCounters(summary, doc)

		for _, l := range doc.Labels {
			labels.add(l)
		}

		dict := gjson.ParseBytes(doc.Metadata.SummaryDict)
		for _, c := range summaryDictCounters {
			*c.field(summary) += dict.Get(c.key).Int()
		}
		releases.addValue(dict.Get("actual_test_release"))
		testReleases.addValue(dict.Get("test_release"))
		platforms.addValue(dict.Get("test_platform"))
		platformSupport.addValue(dict.Get("platform_support"))
	}

	summary.ModelInfo = labels.join()
	if summary.ModelInfo == "" {
		summary.ModelInfo = noValue
	}
	summary.ActualRelease = releases.join()
	summary.TestRelease = testReleases.join()
	summary.TestPlatform = platforms.join()
	summary.PlatformSupport = platformSupport.join()

	summary.CoverageDisplay = "0.00% [0/0]"
	if summary.TotalPaths > 0 {
		summary.TestCoverage = float64(summary.TestedPaths) / float64(summary.TotalPaths) * 100
		summary.CoverageDisplay = fmt.Sprintf("%.2f%% [%d/%d]", summary.TestCoverage, summary.TestedPaths, summary.TotalPaths)
	}

	occurrences := make(map[string]int)
	for _, doc := range docs {
		for _, outcome := range sortedOutcomes(doc.Results) {
			row := b.buildRow(doc, outcome, occurrences)
			row.Index = len(report.Rows) + 1
			if row.Success == models.StatusFail && row.Deviation == "Yes" {
				summary.DeviationFailure++
			}
			report.Rows = append(report.Rows, row)
		}
	}

	summary.PureFailures = summary.TestsFail - summary.DeviationFailure
	if summary.PureFailures < 0 {
		summary.PureFailures = -summary.PureFailures
	}
	summary.FailedDisplay = fmt.Sprintf("%d [F - %d D/P/S - %d]", summary.TestsFail, summary.PureFailures, summary.DeviationFailure)
	summary.OverallResult = models.StatusPass
	if summary.PureFailures > 0 {
		summary.OverallResult = models.StatusFail
	}

	b.logger.Debug().
		Int("documents", len(docs)).
		Int("rows", len(report.Rows)).
		Str("overall", summary.OverallResult).
		Msg("Built testcase report")

	return report
}

func (b *Builder) addCounters(summary *models.TestcaseSummary, doc *models.ResultDocument) {
	for _, c := range []struct {
		name  string
		value any
		into  *int64
	}{
		{models.MetricTotalValidations, doc.TestsTotalValidations, &summary.TestsTotalValidations},
		{models.MetricPassedValidations, doc.TestsPassedValidations, &summary.TestsPassedValidations},
		{models.MetricFailedValidations, doc.TestsFailedValidations, &summary.TestsFailedValidations},
		{models.MetricIgnoredValidations, doc.TestsIgnoredValidations, &summary.TestsIgnoredValidations},
		{models.MetricTestsPass, doc.TestsPass, &summary.TestsPass},
		{models.MetricTestsTotal, doc.TestsTotal, &summary.TestsTotal},
		{models.MetricTestsFail, doc.TestsFail, &summary.TestsFail},
		{"total_deviations", doc.Metadata.TotalDeviations, &summary.TotalDeviations},
	} {
		if c.value == nil {
			continue
		}
		n, err := aggregator.CoerceInt(c.value)
		if err != nil {
			b.logger.Warn().Err(err).Str("metric", c.name).Str("source", doc.Source).Msg("Ignoring counter")
			continue
		}
		*c.into += n
	}
}

func (b *Builder) buildRow(doc *models.ResultDocument, outcome models.TestOutcome, occurrences map[string]int) models.TestcaseRow {
	occurrences[outcome.TestID]++
	unique := outcome.TestID
	if n := occurrences[outcome.TestID]; n > 1 {
		unique = fmt.Sprintf("%s_%d", outcome.TestID, n-1)
	}

	row := models.TestcaseRow{
		TestID:   outcome.TestID,
		UniqueID: unique,
		TestName: outcome.TestName,
		Success:  models.StatusFail,
	}
	if outcome.Success {
		row.Success = models.StatusPass
	}

	before, path, after, ok := splitTestName(outcome.TestName)
	if ok {
		row.Before, row.Path, row.After = before, path, after
	}
	row.Operation = operationLabel(outcome, before, ok)

	xpath := outcome.TestName
	if p, err := aggregator.ExtractPath(outcome.TestName); err == nil {
		xpath = p
	}

	row.Deviation = "No"
	for _, d := range doc.Metadata.Deviations {
		if d == xpath {
			row.Deviation = "Yes"
			break
		}
	}

	flag, found := doc.Metadata.PlatformSupport[xpath]
	if !found || flag == "" {
		flag = models.PlatformNotApplicable
	}
	row.Platform = flag
	if flag == models.PlatformNotApplicable {
		row.Platform = notApplicable
	}

	row.Result = resultField(row.Success, row.Deviation == "Yes", flag, row.Platform)

	if row.Success == models.StatusFail {
		for _, r := range outcome.Results {
			log := r.Log
			if log == "" {
				log = noValue
			}
			row.FailureLog = append(row.FailureLog, log)
		}
	}

	return row
}

// resultField composes the result column. A deviated or platform-excluded path
// is reported as a qualified pass even when the test failed.
func resultField(success string, deviated bool, flag, display string) string {
	excluded := deviated || flag == models.PlatformNotSupported || flag == models.PlatformNotApplicable
	switch {
	case excluded:
		return fmt.Sprintf("PASS(D)(P-%s)", display)
	case success == models.StatusFail:
		return models.StatusFail
	}
	return fmt.Sprintf("PASS(P-%s)", display)
}

// splitTestName splits "before <- path -> after". The path keeps its predicates.
func splitTestName(name string) (before, path, after string, ok bool) {
	if !strings.Contains(name, "<-") || !strings.Contains(name, "->") {
		return "", "", "", false
	}
	head, rest, _ := strings.Cut(name, "<-")
	path, _, _ = strings.Cut(rest, "->")
	parts := strings.Split(name, "->")
	return strings.TrimSpace(head), strings.TrimSpace(path), strings.TrimSpace(parts[1]), true
}

// operationLabel names the operation of the first validations section of the
// first nested result
func operationLabel(outcome models.TestOutcome, before string, hasPath bool) string {
	fallback := outcome.TestName
	if hasPath {
		fallback = before
	}
	if len(outcome.Results) == 0 {
		return fallback
	}

	var section string
	var sectionValue gjson.Result
	gjson.ParseBytes(outcome.Results[0].Validations).ForEach(func(key, value gjson.Result) bool {
		section, sectionValue = key.String(), value
		return false
	})

	var opType string
	types := sectionValue.Get("type")
	if types.IsObject() {
		types.ForEach(func(key, _ gjson.Result) bool {
			opType = key.String()
			return false
		})
	}
	if opType == "" {
		return fallback
	}

	switch {
	case opType == "UPDATE":
		return "SET - UPDATE & GET"
	case opType == "DELETE" || opType == "REPLACE":
		return "SET - " + opType
	case strings.Contains(strings.ToUpper(section), "SUBSCRIBE"):
		return "SUBSCRIBE - " + opType
	}
	return strings.ToUpper(section)
}

// sortedOutcomes orders outcomes by the first number in their test id
func sortedOutcomes(outcomes []models.TestOutcome) []models.TestOutcome {
	sorted := make([]models.TestOutcome, len(outcomes))
	copy(sorted, outcomes)
	sort.SliceStable(sorted, func(i, j int) bool {
		return testIDOrdinal(sorted[i].TestID) < testIDOrdinal(sorted[j].TestID)
	})
	return sorted
}

func testIDOrdinal(id string) int {
	n, err := strconv.Atoi(testIDNumber.FindString(id))
	if err != nil {
		return 0
	}
	return n
}

// uniqueList joins distinct values in first-seen order
type uniqueList struct {
	seen   map[string]struct{}
	values []string
}

func newUniqueList() *uniqueList {
	return &uniqueList{seen: make(map[string]struct{})}
}

func (u *uniqueList) add(v string) {
	if _, ok := u.seen[v]; ok {
		return
	}
	u.seen[v] = struct{}{}
	u.values = append(u.values, v)
}

// addValue adds a scalar or every element of an array. Missing values are ignored.
func (u *uniqueList) addValue(v gjson.Result) {
	if !v.Exists() {
		return
	}
	if v.IsArray() {
		v.ForEach(func(_, item gjson.Result) bool {
			u.add(item.String())
			return true
		})
		return
	}
	u.add(v.String())
}

func (u *uniqueList) join() string {
	return strings.Join(u.values, listSeparator)
}
