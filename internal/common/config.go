package common

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/pelletier/go-toml/v2"
)

// Config represents the application configuration
type Config struct {
	Logging LoggingConfig `toml:"logging"`
	Inputs  InputsConfig  `toml:"inputs"`
	Output  OutputConfig  `toml:"output"`
	Export  ExportConfig  `toml:"export"`
	History HistoryConfig `toml:"history"`
}

type LoggingConfig struct {
	Level      string   `toml:"level" validate:"oneof=debug info warn error"` // "debug", "info", "warn", "error"
	Output     []string `toml:"output" validate:"dive,oneof=stdout console file"`
	TimeFormat string   `toml:"time_format"` // Time format for console lines (default: "15:04:05")
}

// InputsConfig controls how directory mode discovers result documents and logs.
// Patterns are doublestar globs matched against file names.
type InputsConfig struct {
	ResultPattern   string `toml:"result_pattern" validate:"required"`   // Compliance tree inputs (default: "*-tc_result.json")
	TestcasePattern string `toml:"testcase_pattern" validate:"required"` // Testcase report inputs (default: "*_result.json")
	LogPattern      string `toml:"log_pattern" validate:"required"`      // Execution logs (default: "*-tc_result.log")
	Schema          string `toml:"schema"`                               // Validation schema used when -yaml is not given
}

type OutputConfig struct {
	Dir          string `toml:"dir" validate:"required"`
	TemplatesDir string `toml:"templates_dir"` // Optional directory with template overrides
	WriteJSON    bool   `toml:"write_json"`    // Also write the aggregated report as JSON
}

type ExportConfig struct {
	Markdown bool `toml:"markdown"`
	PDF      bool `toml:"pdf"`
}

// HistoryConfig enables the local run history store
type HistoryConfig struct {
	Enabled bool   `toml:"enabled"`
	Path    string `toml:"path" validate:"required_if=Enabled true"`
	Limit   int    `toml:"limit" validate:"gte=0"` // Runs listed by -history (0 = all)
}

// NewDefaultConfig creates a configuration with default values
func NewDefaultConfig() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:      "info",
			Output:     []string{"stdout"},
			TimeFormat: "15:04:05",
		},
		Inputs: InputsConfig{
			ResultPattern:   "*-tc_result.json",
			TestcasePattern: "*_result.json",
			LogPattern:      "*-tc_result.log",
			Schema:          "validation.yaml",
		},
		Output: OutputConfig{
			Dir: "./logs",
		},
		Export: ExportConfig{
			Markdown: false,
			PDF:      false,
		},
		History: HistoryConfig{
			Enabled: false,
			Path:    "./data/history",
			Limit:   20,
		},
	}
}

// LoadFromFiles loads configuration with priority: defaults -> file1 -> file2 -> ... -> env.
// Later files override earlier files. CLI flags are applied by the caller afterwards.
func LoadFromFiles(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	for i, path := range paths {
		if path == "" {
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s (file %d of %d): %w", path, i+1, len(paths), err)
		}
	}

	applyEnvOverrides(config)

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate checks the configuration using go-playground/validator tags
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(config *Config) {
	if level := os.Getenv("YANGREPORT_LOG_LEVEL"); level != "" {
		config.Logging.Level = strings.ToLower(level)
	}
	if output := os.Getenv("YANGREPORT_LOG_OUTPUT"); output != "" {
		outputs := []string{}
		for _, o := range strings.Split(output, ",") {
			if trimmed := strings.TrimSpace(o); trimmed != "" {
				outputs = append(outputs, trimmed)
			}
		}
		if len(outputs) > 0 {
			config.Logging.Output = outputs
		}
	}

	if pattern := os.Getenv("YANGREPORT_RESULT_PATTERN"); pattern != "" {
		config.Inputs.ResultPattern = pattern
	}
	if pattern := os.Getenv("YANGREPORT_TESTCASE_PATTERN"); pattern != "" {
		config.Inputs.TestcasePattern = pattern
	}
	if pattern := os.Getenv("YANGREPORT_LOG_PATTERN"); pattern != "" {
		config.Inputs.LogPattern = pattern
	}
	if schema := os.Getenv("YANGREPORT_SCHEMA"); schema != "" {
		config.Inputs.Schema = schema
	}

	if dir := os.Getenv("YANGREPORT_OUTPUT_DIR"); dir != "" {
		config.Output.Dir = dir
	}
	if dir := os.Getenv("YANGREPORT_TEMPLATES_DIR"); dir != "" {
		config.Output.TemplatesDir = dir
	}
	if writeJSON := os.Getenv("YANGREPORT_WRITE_JSON"); writeJSON != "" {
		if b, err := strconv.ParseBool(writeJSON); err == nil {
			config.Output.WriteJSON = b
		}
	}

	if md := os.Getenv("YANGREPORT_EXPORT_MARKDOWN"); md != "" {
		if b, err := strconv.ParseBool(md); err == nil {
			config.Export.Markdown = b
		}
	}
	if pdf := os.Getenv("YANGREPORT_EXPORT_PDF"); pdf != "" {
		if b, err := strconv.ParseBool(pdf); err == nil {
			config.Export.PDF = b
		}
	}

	if enabled := os.Getenv("YANGREPORT_HISTORY_ENABLED"); enabled != "" {
		if b, err := strconv.ParseBool(enabled); err == nil {
			config.History.Enabled = b
		}
	}
	if path := os.Getenv("YANGREPORT_HISTORY_PATH"); path != "" {
		config.History.Path = path
	}
}

// ApplyFlagOverrides applies command-line flag overrides to config (highest priority).
// Empty values leave the loaded configuration untouched.
func ApplyFlagOverrides(config *Config, outputDir, templatesDir string) {
	if outputDir != "" {
		config.Output.Dir = outputDir
	}
	if templatesDir != "" {
		config.Output.TemplatesDir = templatesDir
	}
}
