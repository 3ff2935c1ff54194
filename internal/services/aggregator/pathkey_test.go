package aggregator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ternarybob/yangreport/internal/common"
)

func TestExtractPath(t *testing.T) {
	tests := []struct {
		name     string
		testName string
		want     string
	}{
		{"plain", "Set <- /if/config/name -> eth0", "/if/config/name"},
		{"predicate stripped", "Set <- /a/b[x=1]/c -> v1", "/a/b/c"},
		{"other predicate same path", "Set <- /a/b[x=2]/c -> v2", "/a/b/c"},
		{"nested predicates", "Sets and Get <- /system/aaa/events/event[event-type=CMD]/config/event-type -> CMD", "/system/aaa/events/event/config/event-type"},
		{"dependencies cut", "Get <- /a/b/dependencies/c/d -> x", "/a/b"},
		{"no spaces around markers", "Get<-/a/b->x", "/a/b"},
		{"last pair wins", "Get <- /first -> x <- /second -> y", "/second"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractPath(tt.testName)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtractPath_Unmapped(t *testing.T) {
	for _, name := range []string{
		"no markers at all",
		"only opening <- /a/b",
		"only closing /a/b -> x",
		"empty segment <- [k=v] -> x",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := ExtractPath(name)
			assert.ErrorIs(t, err, common.ErrUnmappedTestName)
		})
	}
}

func TestInstanceKey(t *testing.T) {
	assert.Equal(t, "ONCE", InstanceKey("ONCE", 1))
	assert.Equal(t, "ONCE_1", InstanceKey("ONCE", 2))
	assert.Equal(t, "ONCE_2", InstanceKey("ONCE", 3))
}

func TestBaseTypeKey(t *testing.T) {
	tests := map[string]string{
		"ONCE":          "ONCE",
		"ONCE_1":        "ONCE",
		"ONCE_12":       "ONCE",
		"STREAM-SAMPLE": "STREAM-SAMPLE",
		"ON_CHANGE":     "ON_CHANGE",
	}
	for in, want := range tests {
		assert.Equal(t, want, BaseTypeKey(in), in)
	}
}

func TestTestLabel(t *testing.T) {
	assert.Equal(t, "Set", TestLabel("Set <- /a -> b"))
	assert.Equal(t, "single", TestLabel("single"))
}
