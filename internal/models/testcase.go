package models

// TestcaseRow is one line of the testcase report
type TestcaseRow struct {
	Index      int      `json:"index"`
	TestID     string   `json:"test_id"`
	UniqueID   string   `json:"unique_id"`
	TestName   string   `json:"test_name"`
	Before     string   `json:"before"` // text before the path marker
	Path       string   `json:"path"`   // bracketed predicates kept
	After      string   `json:"after"`
	Operation  string   `json:"operation"`
	Success    string   `json:"success"`
	Deviation  string   `json:"deviation"`
	Platform   string   `json:"platform"`
	Result     string   `json:"result"`
	FailureLog []string `json:"failure_log,omitempty"`
}

// HasPath reports whether the test name carried a <- ... -> segment
func (r *TestcaseRow) HasPath() bool { return r.Path != "" }

// TestcaseSummary holds the report header counters
type TestcaseSummary struct {
	ModelInfo string `json:"model_info"`

	TestsTotal              int64 `json:"tests_total"`
	TestsPass               int64 `json:"tests_pass"`
	TestsFail               int64 `json:"tests_fail"`
	TestsTotalValidations   int64 `json:"tests_total_validations"`
	TestsPassedValidations  int64 `json:"tests_passed_validations"`
	TestsFailedValidations  int64 `json:"tests_failed_validations"`
	TestsIgnoredValidations int64 `json:"tests_ignored_validations"`

	TotalDeviations  int64   `json:"total_deviations"`
	TotalPaths       int64   `json:"total_xpaths"`
	SetPaths         int64   `json:"set_xpaths"`
	StateOnly        int64   `json:"state_only"`
	SetGetSub        int64   `json:"set_get_sub"`
	Deviations       int64   `json:"deviations"`
	InputPaths       int64   `json:"input_xpaths"`
	InputStatePaths  int64   `json:"input_state_xpaths"`
	TestedSetGetSub  int64   `json:"test_set_get_sub"`
	TestedState      int64   `json:"test_state"`
	TestedPaths      int64   `json:"test_xpaths"`
	TestCoverage     float64 `json:"test_coverage"`
	CoverageDisplay  string  `json:"coverage_display"`
	ActualRelease    string  `json:"actual_test_release"`
	TestRelease      string  `json:"test_release"`
	TestPlatform     string  `json:"test_platform"`
	PlatformSupport  string  `json:"platform_support"`
	DeviationFailure int64   `json:"deviation_failures"`
	PureFailures     int64   `json:"pure_failures"`
	FailedDisplay    string  `json:"failed_display"`
	OverallResult    string  `json:"overall_result"`
}

// TestcaseReport is the tabular report over one or more result documents
type TestcaseReport struct {
	Summary TestcaseSummary `json:"summary"`
	Rows    []TestcaseRow   `json:"rows"`
}
