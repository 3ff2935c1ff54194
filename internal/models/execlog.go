package models

// LogRecord is the execution-log block associated with a test name
type LogRecord struct {
	Path string `json:"path,omitempty"`
	Data string `json:"data,omitempty"`
}

// Testcase section classes produced by the log beautifier
const (
	SectionPass         = "pass"
	SectionFail         = "fail"
	SectionPromotedPass = "promoted_pass" // PASS after an operation failure
	SectionAnomalyPass  = "anomaly_pass"  // PASS with an operation PASS annotation
)

// LogSection is one rendered [TESTCASE-BEGIN] block
type LogSection struct {
	ID         string // unique key: TC_1, TC_1_1, ...
	TestcaseID string // TC_<n> found in the block
	Status     string
	Color      string
	HTML       string
}

// LogReport is the beautified view of one or more execution logs
type LogReport struct {
	ModelInfo string
	Sections  []LogSection
}

// SectionMap returns the rendered fragments keyed by unique id
func (r *LogReport) SectionMap() map[string]string {
	m := make(map[string]string, len(r.Sections))
	for _, s := range r.Sections {
		m[s.ID] = s.HTML
	}
	return m
}
