package models

import "time"

// Run modes
const (
	RunModeSingle    = "single"
	RunModeDirectory = "directory"
)

// RunRecord is the history entry written after each report run
type RunRecord struct {
	ID         string    `json:"id" badgerhold:"key"`
	Mode       string    `json:"mode"`
	StartedAt  time.Time `json:"started_at" badgerhold:"index"`
	FinishedAt time.Time `json:"finished_at"`
	Prefix     string    `json:"prefix"`
	ModelName  string    `json:"model_name"`
	Inputs     []string  `json:"inputs"`
	Outputs    []string  `json:"outputs"`
	Skipped    []string  `json:"skipped,omitempty"` // inputs dropped with a warning
	Paths      int       `json:"paths"`
	TestsTotal int64     `json:"tests_total"`
	TestsPass  int64     `json:"tests_pass"`
	TestsFail  int64     `json:"tests_fail"`
}

// Duration returns the wall time of the run
func (r *RunRecord) Duration() time.Duration {
	if r.FinishedAt.IsZero() {
		return 0
	}
	return r.FinishedAt.Sub(r.StartedAt)
}
