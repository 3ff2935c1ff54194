package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/yangreport/internal/app"
	"github.com/ternarybob/yangreport/internal/common"
)

// configPaths is a custom flag type that allows multiple -config flags
type configPaths []string

func (c *configPaths) String() string {
	return fmt.Sprintf("%v", *c)
}

func (c *configPaths) Set(value string) error {
	*c = append(*c, value)
	return nil
}

var (
	// Command-line flags
	configFiles  configPaths // Multiple -config flags supported
	inputDir     = flag.String("dir", "", "Directory containing result documents and execution logs")
	resultFile   = flag.String("json", "", "Result document (*-tc_result.json)")
	schemaFile   = flag.String("yaml", "", "Validation schema (overrides config)")
	logFile      = flag.String("log", "", "Execution log (*-tc_result.log)")
	showHistory  = flag.Bool("history", false, "List recent report runs")
	outputDir    = flag.String("output", "", "Output directory (overrides config)")
	outputDirO   = flag.String("o", "", "Output directory (shorthand, overrides config)")
	templatesDir = flag.String("templates", "", "Template override directory (overrides config)")
	showVersion  = flag.Bool("version", false, "Print version information")
	showVersionV = flag.Bool("v", false, "Print version information (shorthand)")
)

func init() {
	flag.Var(&configFiles, "config", "Configuration file path (can be specified multiple times, later files override earlier ones)")
	flag.Var(&configFiles, "c", "Configuration file path (shorthand)")
}

func main() {
	flag.Parse()
	os.Exit(run())
}

func run() int {
	defer common.RecoverWithCrashFile()

	if *showVersion || *showVersionV {
		fmt.Printf("yangreport version %s\n", common.GetFullVersion())
		return 0
	}

	if *inputDir == "" && *resultFile == "" && !*showHistory {
		fmt.Fprintln(os.Stderr, "Error: provide -dir, -json or -history")
		flag.Usage()
		return 1
	}
	if *inputDir != "" && *resultFile != "" {
		fmt.Fprintln(os.Stderr, "Error: -dir and -json are mutually exclusive")
		return 1
	}

	// Auto-discover config file if not specified
	if len(configFiles) == 0 {
		if _, err := os.Stat("yangreport.toml"); err == nil {
			configFiles = append(configFiles, "yangreport.toml")
		}
	}

	// 1. Load configuration (defaults -> file1 -> file2 -> ... -> env)
	config, err := common.LoadFromFiles(configFiles...)
	if err != nil {
		tempLogger := common.GetLogger()
		tempLogger.Error().Strs("paths", configFiles).Err(err).Msg("Failed to load configuration")
		return 1
	}

	// 2. Apply command-line flag overrides (highest priority)
	finalOutput := *outputDir
	if *outputDirO != "" {
		finalOutput = *outputDirO
	}
	common.ApplyFlagOverrides(config, finalOutput, *templatesDir)
	if *showHistory {
		config.History.Enabled = true
	}

	// 3. Initialize logger with final configuration
	logger := common.SetupLogger(config)
	common.InstallCrashHandler(config.Output.Dir)

	// 4. Print banner with configuration and logger
	common.PrintBanner(config, logger)

	application, err := app.New(config, logger)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to initialize application")
		return 1
	}
	defer func() {
		if err := application.Close(); err != nil {
			logger.Warn().Err(err).Msg("Failed to close application")
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if *showHistory {
		return listHistory(ctx, application, logger)
	}

	var result *app.Run
	if *inputDir != "" {
		result, err = application.RunDirectory(ctx, *inputDir, *schemaFile)
	} else {
		result, err = application.RunSingle(ctx, app.SingleRequest{
			ResultPath: *resultFile,
			SchemaPath: *schemaFile,
			LogPath:    *logFile,
		})
	}
	if err != nil {
		if errors.Is(err, context.Canceled) {
			logger.Warn().Msg("Interrupted")
		} else {
			logger.Error().Err(err).Msg("Report generation failed")
		}
		return 1
	}

	for _, path := range result.Outputs {
		fmt.Println(path)
	}
	return 0
}

func listHistory(ctx context.Context, application *app.App, logger arbor.ILogger) int {
	runs, err := application.ListHistory(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to list run history")
		return 1
	}

	if len(runs) == 0 {
		fmt.Println("No runs recorded")
		return 0
	}

	for _, r := range runs {
		fmt.Printf("%s  %s  %-9s  %-30s  paths=%d tests=%d pass=%d fail=%d skipped=%d  %s\n",
			r.StartedAt.Format("2006-01-02 15:04:05"),
			r.ID,
			r.Mode,
			r.Prefix,
			r.Paths,
			r.TestsTotal,
			r.TestsPass,
			r.TestsFail,
			len(r.Skipped),
			r.Duration(),
		)
	}
	return 0
}
