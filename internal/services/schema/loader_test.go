package schema

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ternarybob/yangreport/internal/common"
)

const sampleSchema = `
gnmi_operations:
  Set_and_Get:
    type:
      UPDATE:
        current_status: supported
        operation_validations_sequence: [basic, extended]
      REPLACE:
        current_status: Supported
        operation_validations_sequence: [basic]
      DELETE:
        current_status: not-supported
      ONCE:
        operation_validations_sequence: [basic]
  Subscribe:
    type:
gnmi_operation_validations:
  basic:
    current_status: supported
    validations: [Status_Code, Value_Match]
  extended:
    validations: [Timestamp]
validations:
  Status_Code:
    current_status: supported
    description: HTTP-like status
    name: status-code
  Value_Match:
    current_status: supported
    description: Value read back matches
  Timestamp:
    current_status: not-supported
`

func TestParse(t *testing.T) {
	s, err := Parse([]byte(sampleSchema))
	require.NoError(t, err)

	op, ok := s.Operation("Set_and_Get")
	require.True(t, ok)

	// Declaration order is kept
	keys := make([]string, 0, len(op.Types))
	for _, typ := range op.Types {
		keys = append(keys, typ.Key)
	}
	assert.Equal(t, []string{"UPDATE", "REPLACE", "DELETE", "ONCE"}, keys)

	tests := []struct {
		typeKey        string
		wantSupported  bool
		wantExplicitNo bool
		wantSequence   []string
	}{
		{"UPDATE", true, false, []string{"basic", "extended"}},
		{"REPLACE", true, false, []string{"basic"}},
		{"DELETE", false, true, nil},
		{"ONCE", false, true, []string{"basic"}}, // missing current_status fails closed
	}
	for _, tt := range tests {
		t.Run(tt.typeKey, func(t *testing.T) {
			typ, ok := op.Type(tt.typeKey)
			require.True(t, ok)
			assert.Equal(t, tt.wantSupported, typ.Supported())
			assert.Equal(t, tt.wantExplicitNo, typ.ExplicitlyUnsupported())
			assert.Equal(t, tt.wantSequence, typ.Sequence)
		})
	}

	sub, ok := s.Operation("Subscribe")
	require.True(t, ok)
	assert.Empty(t, sub.Types)

	basic, ok := s.Group("basic")
	require.True(t, ok)
	assert.True(t, basic.Supported())
	assert.Equal(t, []string{"Status_Code", "Value_Match"}, basic.Validations)

	extended, ok := s.Group("extended")
	require.True(t, ok)
	assert.False(t, extended.Supported())

	sc, ok := s.Validation("Status_Code")
	require.True(t, ok)
	assert.Equal(t, "HTTP-like status", sc.Description)
	assert.Equal(t, "status-code", sc.Name)
	assert.True(t, sc.Supported())

	ts, ok := s.Validation("Timestamp")
	require.True(t, ok)
	assert.False(t, ts.Supported())
}

func TestParse_Malformed(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"invalid yaml", "gnmi_operations: [unclosed"},
		{"type is a list", "gnmi_operations:\n  Get:\n    type: [ONCE]\n"},
		{"type entry is a scalar", "gnmi_operations:\n  Get:\n    type:\n      ONCE: yes-please\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			assert.ErrorIs(t, err, common.ErrSchemaParse)
		})
	}
}

func TestParse_Empty(t *testing.T) {
	s, err := Parse([]byte(""))
	require.NoError(t, err)
	_, ok := s.Operation("Set_and_Get")
	assert.False(t, ok)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "validation.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleSchema), 0644))

	s, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, s.Operations, 2)

	_, err = Load(filepath.Join(dir, "missing.yaml"))
	assert.ErrorIs(t, err, common.ErrInputNotFound)
}
