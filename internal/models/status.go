package models

import (
	"encoding/json"
	"strings"
)

// Base outcome values
const (
	StatusNA   = "NA"
	StatusPass = "PASS"
	StatusFail = "FAIL"
)

// Platform support flags
const (
	PlatformSupported     = "S"
	PlatformNotSupported  = "NS"
	PlatformNotApplicable = "NA"
	PlatformNotNoted      = "NN"
)

// Status is a path verdict. The composed form ("PASS(D)(P-NS)") only exists
// at render time.
type Status struct {
	Base      string
	Deviation bool
	Platform  string
}

// NewStatus returns a bare status with no markers
func NewStatus(base string) Status {
	return Status{Base: base}
}

// IsFail reports whether the base outcome is FAIL
func (s Status) IsFail() bool {
	return s.Base == StatusFail
}

// PlatformMarked reports whether the platform flag adds a (P-x) marker
func PlatformMarked(flag string) bool {
	return flag == PlatformNotSupported || flag == PlatformNotApplicable
}

// String renders BASE, then (D), then (P-<flag>)
func (s Status) String() string {
	var b strings.Builder
	b.WriteString(s.Base)
	if s.Deviation {
		b.WriteString("(D)")
	}
	if PlatformMarked(s.Platform) {
		b.WriteString("(P-")
		b.WriteString(s.Platform)
		b.WriteString(")")
	}
	return b.String()
}

// MarshalJSON renders the composed string
func (s Status) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}
