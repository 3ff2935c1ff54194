package models

import "strings"

const (
	// SupportedStatus marks a schema entry as active
	SupportedStatus = "supported"
	// NotSupportedStatus is assumed when current_status is missing
	NotSupportedStatus = "not-supported"
)

// ValidationSchema is the parsed validation catalogue. It is read-only after loading.
type ValidationSchema struct {
	Operations  map[string]*Operation
	Groups      map[string]*ValidationGroup
	Validations map[string]*ValidationDef
}

// Operation is one gnmi_operations entry with its types in declaration order
type Operation struct {
	Name  string
	Types []*TypeDef
}

// TypeDef is an execution mode (ONCE, STREAM-SAMPLE, UPDATE, ...) of an operation
type TypeDef struct {
	Key      string
	Status   string
	Sequence []string // validation group keys, declaration order
}

// ValidationGroup is a gnmi_operation_validations entry
type ValidationGroup struct {
	Key         string
	Status      string
	Validations []string
}

// ValidationDef is a single validation rule
type ValidationDef struct {
	Key         string
	Status      string
	Description string
	Name        string
}

// IsSupported reports whether a current_status value enables an entry.
// The comparison is case-insensitive.
func IsSupported(status string) bool {
	return strings.ToLower(status) == SupportedStatus
}

// Operation returns the named operation
func (s *ValidationSchema) Operation(name string) (*Operation, bool) {
	if s == nil {
		return nil, false
	}
	op, ok := s.Operations[name]
	return op, ok
}

// Group returns the named validation group
func (s *ValidationSchema) Group(key string) (*ValidationGroup, bool) {
	if s == nil {
		return nil, false
	}
	g, ok := s.Groups[key]
	return g, ok
}

// Validation returns the named validation definition
func (s *ValidationSchema) Validation(key string) (*ValidationDef, bool) {
	if s == nil {
		return nil, false
	}
	v, ok := s.Validations[key]
	return v, ok
}

// Type returns the type definition declared under the operation
func (o *Operation) Type(key string) (*TypeDef, bool) {
	for _, t := range o.Types {
		if t.Key == key {
			return t, true
		}
	}
	return nil, false
}

// Supported reports whether the type is enabled
func (t *TypeDef) Supported() bool { return IsSupported(t.Status) }

// ExplicitlyUnsupported reports whether the flag is exactly "not-supported".
// Types that are not requested are still surfaced unless this holds.
func (t *TypeDef) ExplicitlyUnsupported() bool { return t.Status == NotSupportedStatus }

// Supported reports whether the group is enabled
func (g *ValidationGroup) Supported() bool { return IsSupported(g.Status) }

// Supported reports whether the validation is enabled
func (v *ValidationDef) Supported() bool { return IsSupported(v.Status) }
