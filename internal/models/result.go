package models

import (
	"encoding/json"

	"github.com/tidwall/gjson"
)

// Summary metric names in their canonical order
const (
	MetricTotalValidations   = "tests_total_validations"
	MetricPassedValidations  = "tests_passed_validations"
	MetricFailedValidations  = "tests_failed_validations"
	MetricIgnoredValidations = "tests_ignored_validations"
	MetricTestsPass          = "tests_pass"
	MetricTestsTotal         = "tests_total"
	MetricTestsFail          = "tests_fail"
)

// ResultDocument is one JSON result file written by the conformance harness.
// Counters are kept as decoded JSON values; the harness is not consistent about
// numbers versus numeric strings.
type ResultDocument struct {
	Labels       []string `json:"labels"`
	TestTarget   any      `json:"test_target"`
	Description  string   `json:"description"`
	StartTimeSec any      `json:"start_time_sec"`
	EndTimeSec   any      `json:"end_time_sec"`

	TestsTotal              any `json:"tests_total"`
	TestsPass               any `json:"tests_pass"`
	TestsFail               any `json:"tests_fail"`
	TestsTotalValidations   any `json:"tests_total_validations"`
	TestsPassedValidations  any `json:"tests_passed_validations"`
	TestsFailedValidations  any `json:"tests_failed_validations"`
	TestsIgnoredValidations any `json:"tests_ignored_validations"`

	Metadata ResultMetadata `json:"metadata"`
	Results  []TestOutcome  `json:"results"`

	// Source is the file the document was read from (not part of the JSON)
	Source string `json:"-"`
}

// UnmarshalJSON decodes labels and description from any JSON value. Only
// metadata and results must have the expected shape.
func (d *ResultDocument) UnmarshalJSON(data []byte) error {
	type Alias ResultDocument
	aux := struct {
		*Alias
		Labels      json.RawMessage `json:"labels"`
		Description json.RawMessage `json:"description"`
	}{Alias: (*Alias)(d)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	d.Labels = lenientStrings(aux.Labels)
	d.Description = lenientString(aux.Description)
	return nil
}

// ResultMetadata carries per-document annotations
type ResultMetadata struct {
	PlatformSupport map[string]string `json:"platform_support"`
	Deviations      []string          `json:"deviations"`
	TotalDeviations any               `json:"total_deviations"`
	SummaryDict     json.RawMessage   `json:"summary_dict"` // read with best-effort lookups
}

// UnmarshalJSON reads platform_support and deviations best-effort. Values that
// are not strings keep their JSON text.
func (m *ResultMetadata) UnmarshalJSON(data []byte) error {
	type Alias ResultMetadata
	aux := struct {
		*Alias
		PlatformSupport json.RawMessage `json:"platform_support"`
		Deviations      json.RawMessage `json:"deviations"`
	}{Alias: (*Alias)(m)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	m.PlatformSupport = nil
	if support := gjson.ParseBytes(aux.PlatformSupport); support.IsObject() {
		m.PlatformSupport = make(map[string]string)
		support.ForEach(func(key, value gjson.Result) bool {
			m.PlatformSupport[key.String()] = scalarText(value)
			return true
		})
	}
	m.Deviations = lenientStrings(aux.Deviations)
	return nil
}

// TestOutcome is one executed test
type TestOutcome struct {
	TestName string          `json:"test_name"`
	TestID   string          `json:"test_id"`
	Success  bool            `json:"success"`
	Results  []OutcomeResult `json:"results"`
}

// UnmarshalJSON accepts numeric or string test names and ids, and reads
// success as a truthy value
func (o *TestOutcome) UnmarshalJSON(data []byte) error {
	type Alias TestOutcome
	aux := struct {
		*Alias
		TestName json.RawMessage `json:"test_name"`
		TestID   json.RawMessage `json:"test_id"`
		Success  json.RawMessage `json:"success"`
	}{Alias: (*Alias)(o)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	o.TestName = lenientString(aux.TestName)
	o.TestID = lenientString(aux.TestID)
	o.Success = gjson.ParseBytes(aux.Success).Bool()
	return nil
}

// OutcomeResult is one nested result entry of a test outcome
type OutcomeResult struct {
	Log                string `json:"log"`
	GnmiLog            string `json:"gnmi_log"`
	TestLog            string `json:"test_log"`
	TotalValidations   any    `json:"total_validations"`
	PassedValidations  any    `json:"passed_validations"`
	FailedValidations  any    `json:"failed_validations"`
	IgnoredValidations any    `json:"ignored_validations"`
	Coverage           any    `json:"coverage"`
	Result             any    `json:"result"`

	// Validations maps operation -> {type: {typeKey: [{validationKey: verdict}]}, encoding}.
	// Kept raw so key order can be recovered.
	Validations json.RawMessage `json:"validations"`
}

// UnmarshalJSON decodes the log fields from any JSON value
func (r *OutcomeResult) UnmarshalJSON(data []byte) error {
	type Alias OutcomeResult
	aux := struct {
		*Alias
		Log     json.RawMessage `json:"log"`
		GnmiLog json.RawMessage `json:"gnmi_log"`
		TestLog json.RawMessage `json:"test_log"`
	}{Alias: (*Alias)(r)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	r.Log = lenientString(aux.Log)
	r.GnmiLog = lenientString(aux.GnmiLog)
	r.TestLog = lenientString(aux.TestLog)
	return nil
}

// lenientString returns a JSON string unquoted, null or absent as "", and
// any other value as its JSON text
func lenientString(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	return scalarText(gjson.ParseBytes(raw))
}

func scalarText(v gjson.Result) string {
	switch v.Type {
	case gjson.Null:
		return ""
	case gjson.String:
		return v.Str
	default:
		return v.Raw
	}
}

// lenientStrings reads an array of values as strings. A single value becomes
// a one-element list.
func lenientStrings(raw json.RawMessage) []string {
	v := gjson.ParseBytes(raw)
	if len(raw) == 0 || v.Type == gjson.Null {
		return nil
	}
	if !v.IsArray() {
		return []string{scalarText(v)}
	}
	items := v.Array()
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, scalarText(item))
	}
	return out
}

// Last returns the final nested result entry, or nil when there is none
func (o *TestOutcome) Last() *OutcomeResult {
	if len(o.Results) == 0 {
		return nil
	}
	return &o.Results[len(o.Results)-1]
}

// SummaryCounters returns the document-level counters in canonical order.
// Missing counters default to 0.
func (d *ResultDocument) SummaryCounters() *SummaryRecord {
	summary := NewSummaryRecord()
	for _, m := range []struct {
		name  string
		value any
	}{
		{MetricTotalValidations, d.TestsTotalValidations},
		{MetricPassedValidations, d.TestsPassedValidations},
		{MetricFailedValidations, d.TestsFailedValidations},
		{MetricIgnoredValidations, d.TestsIgnoredValidations},
		{MetricTestsPass, d.TestsPass},
		{MetricTestsTotal, d.TestsTotal},
		{MetricTestsFail, d.TestsFail},
	} {
		value := m.value
		if value == nil {
			value = 0
		}
		summary.Set(m.name, value)
	}
	return summary
}

// ValidationBlock is the first operation entry of an outcome's validations map
type ValidationBlock struct {
	Operation string
	Encoding  string
	Types     []TypeVerdicts // document order
}

// TypeVerdicts holds every verdict reported for one type key, in document order
type TypeVerdicts struct {
	Type     string
	Verdicts []Verdict
}

// Verdict is a single validation outcome. Value is the raw JSON verdict.
type Verdict struct {
	Key   string
	Value json.RawMessage
	Empty bool // null, false, 0, "" or an empty container
}

// ComplianceKeyHint returns the first validation key of the first type, or ""
func (b *ValidationBlock) ComplianceKeyHint() string {
	if b == nil || len(b.Types) == 0 || len(b.Types[0].Verdicts) == 0 {
		return ""
	}
	return b.Types[0].Verdicts[0].Key
}

// ObservedKeys returns the set of validation keys present in the block
func (b *ValidationBlock) ObservedKeys() map[string]struct{} {
	keys := make(map[string]struct{})
	if b == nil {
		return keys
	}
	for _, t := range b.Types {
		for _, v := range t.Verdicts {
			keys[v.Key] = struct{}{}
		}
	}
	return keys
}

// TypeKeys returns the type keys of the block in document order
func (b *ValidationBlock) TypeKeys() []string {
	if b == nil {
		return nil
	}
	keys := make([]string, 0, len(b.Types))
	for _, t := range b.Types {
		keys = append(keys, t.Type)
	}
	return keys
}
