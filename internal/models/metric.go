package models

import (
	"encoding/json"
	"fmt"
)

// NA is rendered for counters and logs that were never populated
const NA = "NA"

// Metric is an optional counter. The zero value is absent and renders as "NA".
type Metric struct {
	value any
	set   bool
}

// NewMetric wraps a decoded JSON value. Empty values (nil, 0, "", false,
// empty containers) stay absent.
func NewMetric(v any) Metric {
	if IsEmptyValue(v) {
		return Metric{}
	}
	return Metric{value: v, set: true}
}

// IsNA reports whether the metric is absent
func (m Metric) IsNA() bool { return !m.set }

// Value returns the wrapped value, nil when absent
func (m Metric) Value() any { return m.value }

func (m Metric) String() string {
	if !m.set {
		return NA
	}
	return fmt.Sprint(m.value)
}

// MarshalJSON writes the raw value or "NA"
func (m Metric) MarshalJSON() ([]byte, error) {
	if !m.set {
		return json.Marshal(NA)
	}
	return json.Marshal(m.value)
}

// IsEmptyValue reports whether a decoded JSON value is falsy
func IsEmptyValue(v any) bool {
	switch x := v.(type) {
	case nil:
		return true
	case string:
		return x == ""
	case bool:
		return !x
	case float64:
		return x == 0
	case float32:
		return x == 0
	case int:
		return x == 0
	case int64:
		return x == 0
	case json.Number:
		f, err := x.Float64()
		return err == nil && f == 0
	case []any:
		return len(x) == 0
	case map[string]any:
		return len(x) == 0
	}
	return false
}

// OrNA returns s, or "NA" when s is empty
func OrNA(s string) string {
	if s == "" {
		return NA
	}
	return s
}
