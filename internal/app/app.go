package app

import (
	"fmt"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/yangreport/internal/common"
	"github.com/ternarybob/yangreport/internal/interfaces"
	"github.com/ternarybob/yangreport/internal/services/aggregator"
	"github.com/ternarybob/yangreport/internal/services/beautifier"
	"github.com/ternarybob/yangreport/internal/services/pdf"
	"github.com/ternarybob/yangreport/internal/services/render"
	"github.com/ternarybob/yangreport/internal/services/testcase"
	"github.com/ternarybob/yangreport/internal/services/transform"
	"github.com/ternarybob/yangreport/internal/storage/badger"
)

// App holds all application components and dependencies
type App struct {
	Config *common.Config
	Logger arbor.ILogger

	// Aggregation
	Summarizer      *aggregator.Summarizer
	TestcaseBuilder *testcase.Builder
	Beautifier      *beautifier.Service

	// Output
	Renderer         *render.Engine
	TransformService interfaces.TransformService
	PDFService       interfaces.PDFService

	// History is nil unless enabled in config
	History interfaces.RunStorage
}

// New initializes the application with all dependencies
func New(config *common.Config, logger arbor.ILogger) (*App, error) {
	app := &App{
		Config: config,
		Logger: logger,
	}

	app.initServices()

	if err := app.initHistory(); err != nil {
		return nil, fmt.Errorf("failed to initialize history: %w", err)
	}

	logger.Debug().
		Bool("history", app.History != nil).
		Str("templates_dir", config.Output.TemplatesDir).
		Msg("Application initialization complete")

	return app, nil
}

func (a *App) initServices() {
	a.Summarizer = aggregator.NewSummarizer(a.Logger)
	a.TestcaseBuilder = testcase.NewBuilder(a.Logger)
	a.Beautifier = beautifier.NewService(a.Logger)
	a.Renderer = render.NewEngine(a.Logger, a.Config.Output.TemplatesDir)
	a.TransformService = transform.NewService(a.Logger)
	a.PDFService = pdf.NewService(a.Logger)
}

func (a *App) initHistory() error {
	if !a.Config.History.Enabled {
		return nil
	}

	db, err := badger.NewBadgerDB(a.Logger, &a.Config.History)
	if err != nil {
		return err
	}
	a.History = badger.NewRunStorage(db, a.Logger)

	a.Logger.Debug().Str("path", a.Config.History.Path).Msg("Run history enabled")
	return nil
}

// Close releases the history store
func (a *App) Close() error {
	if a.History != nil {
		if err := a.History.Close(); err != nil {
			return fmt.Errorf("failed to close history: %w", err)
		}
		a.Logger.Debug().Msg("Run history closed")
	}
	return nil
}
