package common

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadFromFiles_Layering(t *testing.T) {
	dir := t.TempDir()
	base := writeConfig(t, dir, "base.toml", `
[logging]
level = "debug"

[output]
dir = "/tmp/base"
write_json = true

[history]
enabled = true
path = "/tmp/history"
`)
	override := writeConfig(t, dir, "override.toml", `
[output]
dir = "/tmp/override"

[inputs]
log_pattern = "*.log"
`)

	t.Setenv("YANGREPORT_EXPORT_PDF", "true")
	t.Setenv("YANGREPORT_LOG_LEVEL", "WARN")

	config, err := LoadFromFiles(base, "", override)
	require.NoError(t, err)

	assert.Equal(t, "warn", config.Logging.Level, "environment wins over files")
	assert.Equal(t, "/tmp/override", config.Output.Dir, "later file wins")
	assert.True(t, config.Output.WriteJSON)
	assert.Equal(t, "*.log", config.Inputs.LogPattern)
	assert.Equal(t, "*-tc_result.json", config.Inputs.ResultPattern, "defaults survive")
	assert.True(t, config.Export.PDF)
	assert.True(t, config.History.Enabled)

	ApplyFlagOverrides(config, "/tmp/flag", "")
	assert.Equal(t, "/tmp/flag", config.Output.Dir)
	assert.Empty(t, config.Output.TemplatesDir)
}

func TestLoadFromFiles_Errors(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		content string
	}{
		{"bad toml", "[output\ndir ="},
		{"bad level", "[logging]\nlevel = \"loud\""},
		{"empty pattern", "[inputs]\nresult_pattern = \"\""},
		{"history without path", "[history]\nenabled = true\npath = \"\""},
		{"negative limit", "[history]\nlimit = -1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, dir, "config.toml", tt.content)
			_, err := LoadFromFiles(path)
			assert.Error(t, err)
		})
	}

	_, err := LoadFromFiles(filepath.Join(dir, "absent.toml"))
	assert.Error(t, err)
}
