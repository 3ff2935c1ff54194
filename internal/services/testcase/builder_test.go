package testcase

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"

	"github.com/ternarybob/yangreport/internal/models"
)

const firstDocument = `{
  "labels": ["openconfig_system"],
  "tests_total": 3, "tests_pass": 2, "tests_fail": "1",
  "metadata": {
    "deviations": ["/system/dev"],
    "platform_support": {"/system/ok": "S", "/system/fail": "S"},
    "total_deviations": 1,
    "summary_dict": {
      "total_xpaths": 10, "test_xpaths": 4,
      "actual_test_release": ["R1", "R2"],
      "test_platform": "P1",
      "platform_support": ["S"]
    }
  },
  "results": [
    {"test_id": "TC_10", "test_name": "Set_and_Get <- /system/ok -> x", "success": true,
     "results": [{"validations": {"Set_and_Get": {"type": {"UPDATE": []}}}}]},
    {"test_id": "TC_2", "test_name": "Set_and_Get <- /system/dev[name=a] -> y", "success": false,
     "results": [{"log": "boom"}]},
    {"test_id": "TC_3", "test_name": "Set_and_Get <- /system/fail -> z", "success": false,
     "results": [{"log": ""}]}
  ]
}`

const secondDocument = `{
  "labels": ["openconfig_system", "extra"],
  "tests_total": 1, "tests_fail": 0,
  "metadata": {
    "summary_dict": {
      "total_xpaths": 10, "test_xpaths": 1,
      "actual_test_release": "R2",
      "test_platform": ["P1", "P2"]
    }
  },
  "results": [
    {"test_id": "TC_2", "test_name": "Subscribe_Test <- /system/ok -> ONCE", "success": true,
     "results": [{"validations": {"Subscribe_Stream": {"type": {"ONCE": []}}}}]}
  ]
}`

func decode(t *testing.T, raw string) *models.ResultDocument {
	t.Helper()
	var doc models.ResultDocument
	require.NoError(t, json.Unmarshal([]byte(raw), &doc))
	return &doc
}

func TestBuild_Rows(t *testing.T) {
	builder := NewBuilder(arbor.NewNoOpLogger())
	report := builder.Build([]*models.ResultDocument{decode(t, firstDocument), decode(t, secondDocument)})

	require.Len(t, report.Rows, 4)

	var ids []string
	for _, r := range report.Rows {
		ids = append(ids, r.UniqueID)
	}
	assert.Equal(t, []string{"TC_2", "TC_3", "TC_10", "TC_2_1"}, ids)

	deviated := report.Rows[0]
	assert.Equal(t, 1, deviated.Index)
	assert.Equal(t, "Set_and_Get", deviated.Before)
	assert.Equal(t, "/system/dev[name=a]", deviated.Path)
	assert.Equal(t, "y", deviated.After)
	assert.Equal(t, "Set_and_Get", deviated.Operation)
	assert.Equal(t, "Yes", deviated.Deviation)
	assert.Equal(t, "Not Applicable", deviated.Platform)
	assert.Equal(t, "PASS(D)(P-Not Applicable)", deviated.Result)
	assert.Equal(t, []string{"boom"}, deviated.FailureLog)

	failed := report.Rows[1]
	assert.Equal(t, "S", failed.Platform)
	assert.Equal(t, models.StatusFail, failed.Result)
	assert.Equal(t, []string{"N/A"}, failed.FailureLog)

	passed := report.Rows[2]
	assert.Equal(t, "SET - UPDATE & GET", passed.Operation)
	assert.Equal(t, "PASS(P-S)", passed.Result)
	assert.Empty(t, passed.FailureLog)

	subscribe := report.Rows[3]
	assert.Equal(t, 4, subscribe.Index)
	assert.Equal(t, "SUBSCRIBE - ONCE", subscribe.Operation)
}

func TestBuild_Summary(t *testing.T) {
	builder := NewBuilder(arbor.NewNoOpLogger())
	report := builder.Build([]*models.ResultDocument{decode(t, firstDocument), decode(t, secondDocument)})
	s := report.Summary

	assert.Equal(t, int64(4), s.TestsTotal)
	assert.Equal(t, int64(2), s.TestsPass)
	assert.Equal(t, int64(1), s.TestsFail)
	assert.Equal(t, int64(1), s.TotalDeviations)
	assert.Equal(t, int64(20), s.TotalPaths)
	assert.Equal(t, int64(5), s.TestedPaths)
	assert.InDelta(t, 25.0, s.TestCoverage, 0.0001)
	assert.Equal(t, "25.00% [5/20]", s.CoverageDisplay)
	assert.Equal(t, "R1, R2", s.ActualRelease)
	assert.Equal(t, "P1, P2", s.TestPlatform)
	assert.Equal(t, "S", s.PlatformSupport)
	assert.Equal(t, "openconfig_system, extra", s.ModelInfo)

	assert.Equal(t, int64(1), s.DeviationFailure)
	assert.Equal(t, int64(0), s.PureFailures)
	assert.Equal(t, "1 [F - 0 D/P/S - 1]", s.FailedDisplay)
	assert.Equal(t, models.StatusPass, s.OverallResult)
}

func TestBuild_PureFailureFailsRun(t *testing.T) {
	doc := decode(t, `{
	  "tests_total": 1, "tests_fail": 1,
	  "metadata": {"platform_support": {"/a": "S"}},
	  "results": [{"test_id": "TC_1", "test_name": "T <- /a -> ONCE", "success": false}]
	}`)

	report := NewBuilder(arbor.NewNoOpLogger()).Build([]*models.ResultDocument{doc})
	assert.Equal(t, int64(1), report.Summary.PureFailures)
	assert.Equal(t, models.StatusFail, report.Summary.OverallResult)
	assert.Equal(t, "T", report.Rows[0].Operation)
}

func TestBuild_Empty(t *testing.T) {
	report := NewBuilder(arbor.NewNoOpLogger()).Build(nil)
	assert.Empty(t, report.Rows)
	assert.Equal(t, "0.00% [0/0]", report.Summary.CoverageDisplay)
	assert.Equal(t, "N/A", report.Summary.ModelInfo)
	assert.Equal(t, models.StatusPass, report.Summary.OverallResult)
}

func TestOperationLabel(t *testing.T) {
	tests := []struct {
		name        string
		validations string
		want        string
	}{
		{"update", `{"Set_and_Get": {"type": {"UPDATE": []}}}`, "SET - UPDATE & GET"},
		{"delete", `{"Set_and_Get": {"type": {"DELETE": []}}}`, "SET - DELETE"},
		{"replace", `{"Set_and_Get": {"type": {"REPLACE": []}}}`, "SET - REPLACE"},
		{"subscribe", `{"gnmi_subscribe": {"type": {"SAMPLE": []}}}`, "SUBSCRIBE - SAMPLE"},
		{"other section", `{"Get_Only": {"type": {"GET": []}}}`, "GET_ONLY"},
		{"no types", `{"Get_Only": {"encoding": "JSON"}}`, "Runner"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			outcome := models.TestOutcome{
				TestName: "Runner <- /a -> b",
				Results:  []models.OutcomeResult{{Validations: json.RawMessage(tt.validations)}},
			}
			assert.Equal(t, tt.want, operationLabel(outcome, "Runner", true))
		})
	}
}

func TestResultField(t *testing.T) {
	tests := []struct {
		name     string
		success  string
		deviated bool
		flag     string
		display  string
		want     string
	}{
		{"pass supported", models.StatusPass, false, "S", "S", "PASS(P-S)"},
		{"pass deviated", models.StatusPass, true, "S", "S", "PASS(D)(P-S)"},
		{"pass not supported", models.StatusPass, false, "NS", "NS", "PASS(D)(P-NS)"},
		{"fail supported", models.StatusFail, false, "S", "S", "FAIL"},
		{"fail not applicable", models.StatusFail, false, "NA", "Not Applicable", "PASS(D)(P-Not Applicable)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, resultField(tt.success, tt.deviated, tt.flag, tt.display))
		})
	}
}
