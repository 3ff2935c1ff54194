package common

import (
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/banner"
)

// PrintBanner displays the application banner and the resolved output settings
func PrintBanner(config *Config, logger arbor.ILogger) {
	banner.Print("yangreport", GetVersion())

	logger.Debug().
		Str("output_dir", config.Output.Dir).
		Str("templates_dir", config.Output.TemplatesDir).
		Bool("history", config.History.Enabled).
		Msg("Resolved configuration")
}
