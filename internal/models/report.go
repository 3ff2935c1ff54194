package models

import (
	"encoding/json"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// SummaryKey is the reserved report key holding the document counters
const SummaryKey = "summary"

// ComplianceEntry is one validation verdict with its schema metadata.
// Serialized as {"<validation>": verdict, "description": ..., "key": ...}.
type ComplianceEntry struct {
	Validation  string
	Verdict     json.RawMessage // nil until a result is folded in
	Description string
	Key         string
}

// MarshalJSON preserves the validation key as the first member
func (c *ComplianceEntry) MarshalJSON() ([]byte, error) {
	verdict := c.Verdict
	if len(verdict) == 0 {
		verdict = json.RawMessage("{}")
	}
	om := orderedmap.New[string, any]()
	om.Set(c.Validation, verdict)
	om.Set("description", c.Description)
	om.Set("key", c.Key)
	return json.Marshal(om)
}

// Encoding is an encoding list item
type Encoding struct {
	Value string `json:"value"`
}

// TypeInstanceRecord is the outcome of one (path, type, occurrence)
type TypeInstanceRecord struct {
	ParentKey          string             `json:"parent_key"`
	Status             string             `json:"status"`
	Message            []string           `json:"message"`
	Log                string             `json:"log"`
	GnmiLog            string             `json:"gnmi_log"`
	TestLog            string             `json:"test_log"`
	Compliance         []*ComplianceEntry `json:"Compliance"`
	Encoding           []Encoding         `json:"encoding"`
	TotalValidations   Metric             `json:"total_validations"`
	IgnoredValidations Metric             `json:"ignored_validations"`
	FailedValidations  Metric             `json:"failed_validations"`
	PassedValidations  Metric             `json:"passed_validations"`
	Coverage           Metric             `json:"coverage"`

	// Set once an outcome has been folded in
	FullPath string     `json:"full_path,omitempty"`
	NewLog   *LogRecord `json:"new_log,omitempty"`
}

// NewTypeInstanceRecord returns an empty record for the given operation
func NewTypeInstanceRecord(parentKey string) *TypeInstanceRecord {
	return &TypeInstanceRecord{
		ParentKey:  parentKey,
		Status:     StatusNA,
		Message:    []string{},
		Log:        NA,
		GnmiLog:    NA,
		TestLog:    NA,
		Compliance: []*ComplianceEntry{},
		Encoding:   []Encoding{},
	}
}

// FindCompliance returns the entry for a validation key
func (r *TypeInstanceRecord) FindCompliance(validation string) (*ComplianceEntry, bool) {
	for _, c := range r.Compliance {
		if c.Validation == validation {
			return c, true
		}
	}
	return nil, false
}

// AddEncoding appends an encoding unless it is empty or already listed
func (r *TypeInstanceRecord) AddEncoding(value string) {
	if value == "" {
		return
	}
	for _, e := range r.Encoding {
		if e.Value == value {
			return
		}
	}
	r.Encoding = append(r.Encoding, Encoding{Value: value})
}

// TypeEntry is a keyed type instance, used where order must be explicit
type TypeEntry struct {
	Key    string
	Record *TypeInstanceRecord
}

// Annotation is the {status, message, log} triple used for deviation and platform
type Annotation struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Log     string `json:"log"`
}

// PathStatus is the aggregated verdict of a path
type PathStatus struct {
	Status  Status   `json:"status"`
	Message []string `json:"message"`
	Log     string   `json:"log"`
}

// PathRecord collects every type instance exercised for one resource path
type PathRecord struct {
	TestName     string
	Deviation    Annotation
	Platform     Annotation
	Status       PathStatus
	Types        *orderedmap.OrderedMap[string, *TypeInstanceRecord]
	MultipleData *orderedmap.OrderedMap[string, *TypeInstanceRecord] // nil unless grouped
}

// NewPathRecord returns the seed record for a path seen for the first time
func NewPathRecord(testName string) *PathRecord {
	return &PathRecord{
		TestName:  testName,
		Deviation: Annotation{Status: "No"},
		Platform:  Annotation{Status: PlatformNotNoted},
		Status:    PathStatus{Status: NewStatus(StatusNA), Message: []string{}},
		Types:     orderedmap.New[string, *TypeInstanceRecord](),
	}
}

// Type returns a top-level type instance
func (p *PathRecord) Type(key string) (*TypeInstanceRecord, bool) {
	return p.Types.Get(key)
}

// TypeKeys returns top-level type instance keys in first-seen order
func (p *PathRecord) TypeKeys() []string {
	keys := make([]string, 0, p.Types.Len())
	for pair := p.Types.Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key)
	}
	return keys
}

// MarshalJSON flattens the type instances next to the fixed members
func (p *PathRecord) MarshalJSON() ([]byte, error) {
	om := orderedmap.New[string, any]()
	om.Set("test_name", p.TestName)
	om.Set("deviation", p.Deviation)
	om.Set("platform", p.Platform)
	om.Set("status", p.Status)
	for pair := p.Types.Oldest(); pair != nil; pair = pair.Next() {
		om.Set(pair.Key, pair.Value)
	}
	if p.MultipleData != nil && p.MultipleData.Len() > 0 {
		om.Set("multiple_data", p.MultipleData)
	}
	return json.Marshal(om)
}

// SummaryRecord holds document counters in insertion order
type SummaryRecord struct {
	metrics *orderedmap.OrderedMap[string, any]
}

// NewSummaryRecord returns an empty summary
func NewSummaryRecord() *SummaryRecord {
	return &SummaryRecord{metrics: orderedmap.New[string, any]()}
}

// Set stores a metric value, keeping its original position when it already exists
func (s *SummaryRecord) Set(name string, value any) {
	s.metrics.Set(name, value)
}

// Get returns a metric value
func (s *SummaryRecord) Get(name string) (any, bool) {
	return s.metrics.Get(name)
}

// Names returns metric names in order
func (s *SummaryRecord) Names() []string {
	names := make([]string, 0, s.metrics.Len())
	for pair := s.metrics.Oldest(); pair != nil; pair = pair.Next() {
		names = append(names, pair.Key)
	}
	return names
}

// Len returns the number of metrics
func (s *SummaryRecord) Len() int { return s.metrics.Len() }

// Clone returns a shallow copy
func (s *SummaryRecord) Clone() *SummaryRecord {
	c := NewSummaryRecord()
	for pair := s.metrics.Oldest(); pair != nil; pair = pair.Next() {
		c.Set(pair.Key, pair.Value)
	}
	return c
}

// MarshalJSON writes the metrics as an object
func (s *SummaryRecord) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.metrics)
}

// DocumentSummary is the per-document output of the summarizer
type DocumentSummary struct {
	Source    string
	ModelName string
	Summary   *SummaryRecord // nil when no outcome mapped to a path
	Paths     *orderedmap.OrderedMap[string, *PathRecord]
}

// NewDocumentSummary returns an empty summary for a source file
func NewDocumentSummary(source string) *DocumentSummary {
	return &DocumentSummary{
		Source: source,
		Paths:  orderedmap.New[string, *PathRecord](),
	}
}

// MarshalJSON writes the summary counters first, then every path
func (d *DocumentSummary) MarshalJSON() ([]byte, error) {
	return marshalReport(d.Summary, d.Paths)
}

// AggregatedReport is the merge of every document summary of a run
type AggregatedReport struct {
	ModelName string
	Sources   []string
	Summary   *SummaryRecord
	Paths     *orderedmap.OrderedMap[string, *PathRecord]
}

// NewAggregatedReport returns an empty report
func NewAggregatedReport() *AggregatedReport {
	return &AggregatedReport{
		Paths: orderedmap.New[string, *PathRecord](),
	}
}

// PathKeys returns report keys (excluding summary) in insertion order
func (r *AggregatedReport) PathKeys() []string {
	keys := make([]string, 0, r.Paths.Len())
	for pair := r.Paths.Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key)
	}
	return keys
}

// MarshalJSON writes the summary counters first, then every path
func (r *AggregatedReport) MarshalJSON() ([]byte, error) {
	return marshalReport(r.Summary, r.Paths)
}

func marshalReport(summary *SummaryRecord, paths *orderedmap.OrderedMap[string, *PathRecord]) ([]byte, error) {
	om := orderedmap.New[string, any]()
	if summary != nil {
		om.Set(SummaryKey, summary)
	}
	for pair := paths.Oldest(); pair != nil; pair = pair.Next() {
		om.Set(pair.Key, pair.Value)
	}
	return json.Marshal(om)
}
