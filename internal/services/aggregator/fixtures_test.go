package aggregator

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ternarybob/yangreport/internal/models"
	"github.com/ternarybob/yangreport/internal/services/schema"
)

const fixtureSchema = `
gnmi_operations:
  Set_and_Get:
    type:
      ONCE:
        current_status: supported
        operation_validations_sequence: [basic]
      STREAM:
        current_status: supported
        operation_validations_sequence: [basic, stream]
      POLL:
        current_status: planned
        operation_validations_sequence: [basic]
      DELETE:
        current_status: not-supported
gnmi_operation_validations:
  basic:
    current_status: supported
    validations: [Status_Code, Value_Match]
  stream:
    current_status: supported
    validations: [Sample_Interval, Legacy_Check]
validations:
  Status_Code:
    current_status: supported
    description: HTTP-like status
    name: status-code
  Value_Match:
    current_status: supported
    description: Value read back matches
    name: value-match
  Sample_Interval:
    current_status: supported
    description: Sample interval honoured
    name: sample-interval
  Legacy_Check:
    current_status: not-supported
    description: Legacy check
`

func loadFixtureSchema(t *testing.T) *models.ValidationSchema {
	t.Helper()
	s, err := schema.Parse([]byte(fixtureSchema))
	require.NoError(t, err)
	return s
}

func parseDocument(t *testing.T, raw string) *models.ResultDocument {
	t.Helper()
	var doc models.ResultDocument
	require.NoError(t, json.Unmarshal([]byte(raw), &doc))
	doc.Source = "fixture-tc_result.json"
	return &doc
}

// stubLogIndex is a map-backed log index
type stubLogIndex map[string]*models.LogRecord

func (s stubLogIndex) Lookup(testName string) (*models.LogRecord, bool) {
	rec, ok := s[testName]
	return rec, ok
}

func (s stubLogIndex) Len() int { return len(s) }

func sprintf(format string, args ...any) string {
	return fmt.Sprintf(format, args...)
}
