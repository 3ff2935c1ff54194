package app

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ternarybob/yangreport/internal/common"
	"github.com/ternarybob/yangreport/internal/interfaces"
	"github.com/ternarybob/yangreport/internal/models"
	"github.com/ternarybob/yangreport/internal/services/aggregator"
	"github.com/ternarybob/yangreport/internal/services/beautifier"
	"github.com/ternarybob/yangreport/internal/services/hierarchy"
	"github.com/ternarybob/yangreport/internal/services/logindex"
	"github.com/ternarybob/yangreport/internal/services/schema"
)

// Run is the outcome of one report run
type Run struct {
	ID        string // history id, empty when history is disabled
	Mode      string
	Prefix    string
	Report    *models.AggregatedReport
	Hierarchy *models.HierarchyNode
	Testcase  *models.TestcaseReport
	Log       *models.LogReport
	Inputs    []string
	Skipped   []string
	Outputs   []string
}

func (r *Run) skip(path string) {
	for _, s := range r.Skipped {
		if s == path {
			return
		}
	}
	r.Skipped = append(r.Skipped, path)
}

// SingleRequest names the inputs of a single-document run
type SingleRequest struct {
	ResultPath string
	SchemaPath string // falls back to the configured schema
	LogPath    string // optional
}

// RunSingle reports on one result file. Every input that is named must exist.
func (a *App) RunSingle(ctx context.Context, req SingleRequest) (*Run, error) {
	started := time.Now()

	if req.ResultPath == "" {
		return nil, errors.New("a result document is required")
	}

	validation, err := a.loadSchema(req.SchemaPath)
	if err != nil {
		return nil, err
	}

	docs, err := LoadDocuments(req.ResultPath)
	if err != nil {
		return nil, err
	}

	run := &Run{
		Mode:   models.RunModeSingle,
		Prefix: stem(req.ResultPath),
		Inputs: []string{req.ResultPath},
	}

	var logContent string
	var logs interfaces.LogIndex
	if req.LogPath != "" {
		logContent, err = readLog(req.LogPath)
		if err != nil {
			return nil, err
		}
		logs = logindex.Parse(logContent)
		run.Inputs = append(run.Inputs, req.LogPath)
	}

	a.Logger.Info().
		Str("result", req.ResultPath).
		Str("log", req.LogPath).
		Int("documents", len(docs)).
		Msg("Processing result document")

	merger := aggregator.NewMerger(a.Logger)
	for _, doc := range docs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		summary, err := a.Summarizer.Summarize(doc, aggregator.SummarizeOptions{
			Schema: validation,
			Logs:   logs,
		})
		if err != nil {
			return nil, err
		}
		merger.Add(summary)
	}

	run.Report = merger.Report()
	run.Testcase = a.TestcaseBuilder.Build(docs)
	run.Log = a.Beautifier.Beautify(logContent, modelInfo(docs))

	if err := a.finish(ctx, run, started); err != nil {
		return nil, err
	}
	return run, nil
}

// RunDirectory reports on every result document in dir. Documents and logs
// that cannot be read are logged and skipped.
func (a *App) RunDirectory(ctx context.Context, dir, schemaPath string) (*Run, error) {
	started := time.Now()

	inputs, err := Discover(ctx, dir, a.Config.Inputs)
	if err != nil {
		return nil, err
	}
	if inputs.Empty() {
		return nil, fmt.Errorf("no result documents in %s: %w", dir, common.ErrInputNotFound)
	}

	validation, err := a.loadSchema(schemaPath)
	if err != nil {
		return nil, err
	}

	run := &Run{
		Mode:   models.RunModeDirectory,
		Prefix: dirPrefix(dir),
	}

	a.Logger.Info().
		Str("dir", dir).
		Int("results", len(inputs.Results)).
		Int("testcases", len(inputs.Testcases)).
		Int("logs", len(inputs.Logs)).
		Msg("Processing report directory")

	merger := aggregator.NewMerger(a.Logger)
	for _, in := range inputs.Results {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		a.summarizeInput(run, merger, in, validation)
	}

	var testcaseDocs []*models.ResultDocument
	for _, path := range inputs.Testcases {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		docs, err := LoadDocuments(path)
		if err != nil {
			a.Logger.Warn().Err(err).Str("file", path).Msg("Skipping testcase document")
			run.skip(path)
			continue
		}
		testcaseDocs = append(testcaseDocs, docs...)
		run.Inputs = appendUnique(run.Inputs, path)
	}

	var logContent strings.Builder
	for _, path := range inputs.Logs {
		content, err := readLog(path)
		if err != nil {
			a.Logger.Warn().Err(err).Str("file", path).Msg("Skipping execution log")
			run.skip(path)
			continue
		}
		logContent.WriteString(content)
		run.Inputs = appendUnique(run.Inputs, path)
	}

	run.Report = merger.Report()
	run.Testcase = a.TestcaseBuilder.Build(testcaseDocs)
	run.Log = a.Beautifier.Beautify(logContent.String(), modelInfo(testcaseDocs))

	if err := a.finish(ctx, run, started); err != nil {
		return nil, err
	}
	return run, nil
}

func (a *App) summarizeInput(run *Run, merger *aggregator.Merger, in ResultInput, validation *models.ValidationSchema) {
	docs, err := LoadDocuments(in.ResultPath)
	if err != nil {
		a.Logger.Warn().Err(err).Str("file", in.ResultPath).Msg("Skipping result document")
		run.skip(in.ResultPath)
		return
	}

	var logs interfaces.LogIndex
	if in.LogPath != "" {
		index, err := logindex.Load(in.LogPath)
		if err != nil {
			a.Logger.Warn().Err(err).Str("file", in.LogPath).Msg("Continuing without execution log")
		} else {
			logs = index
		}
	}

	for _, doc := range docs {
		summary, err := a.Summarizer.Summarize(doc, aggregator.SummarizeOptions{
			Schema: validation,
			Logs:   logs,
		})
		if err != nil {
			a.Logger.Warn().Err(err).Str("file", in.ResultPath).Msg("Skipping result document")
			run.skip(in.ResultPath)
			return
		}
		merger.Add(summary)
	}

	run.Inputs = appendUnique(run.Inputs, in.ResultPath)
	a.Logger.Debug().
		Str("prefix", in.Prefix).
		Str("result", in.ResultPath).
		Str("log", in.LogPath).
		Msg("Merged result document")
}

func (a *App) finish(ctx context.Context, run *Run, started time.Time) error {
	run.Hierarchy = hierarchy.Build(run.Report)

	if err := a.writeReports(run); err != nil {
		return err
	}

	a.recordRun(ctx, run, started)

	a.Logger.Info().
		Str("prefix", run.Prefix).
		Int("paths", run.Report.Paths.Len()).
		Int("sections", len(run.Log.Sections)).
		Int("skipped", len(run.Skipped)).
		Str("duration", time.Since(started).String()).
		Msg("Reports generated")
	return nil
}

func (a *App) loadSchema(path string) (*models.ValidationSchema, error) {
	if path == "" {
		path = a.Config.Inputs.Schema
	}
	if path == "" {
		return nil, errors.New("a validation schema is required")
	}
	return schema.Load(path)
}

func readLog(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%w: %s", common.ErrInputNotFound, path)
		}
		return "", fmt.Errorf("failed to read log %s: %w", path, err)
	}
	return string(data), nil
}

// modelInfo formats the first document label for the log report heading
func modelInfo(docs []*models.ResultDocument) string {
	for _, doc := range docs {
		if len(doc.Labels) > 0 && doc.Labels[0] != "" {
			return beautifier.ModelInfo(doc.Labels[0])
		}
	}
	return ""
}

func stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func dirPrefix(dir string) string {
	if abs, err := filepath.Abs(dir); err == nil {
		dir = abs
	}
	return filepath.Base(filepath.Clean(dir))
}

func appendUnique(list []string, v string) []string {
	for _, s := range list {
		if s == v {
			return list
		}
	}
	return append(list, v)
}
