package app

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ternarybob/yangreport/internal/services/render"
)

// Output file suffixes, appended to the run prefix
const (
	YangTreeSuffix     = "_yang_tree_report.html"
	TestcaseSuffix     = "_testcase_report.html"
	LogReportSuffix    = "_log_report.html"
	ConsolidatedSuffix = "_consolidated_report.html"
	MarkdownSuffix     = "_testcase_report.md"
	PDFSuffix          = "_testcase_report.pdf"
	AggregatedSuffix   = "_aggregated.json"
)

func (a *App) writeReports(run *Run) error {
	dir := a.Config.Output.Dir
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("output directory %s is not writable: %w", dir, err)
	}

	yangTree, err := a.Renderer.RenderYangTree(run.Report, run.Hierarchy)
	if err != nil {
		return err
	}
	testcase, err := a.Renderer.RenderTestcase(run.Testcase)
	if err != nil {
		return err
	}
	logReport, err := a.Renderer.RenderLogReport(run.Log)
	if err != nil {
		return err
	}

	logName := run.Prefix + LogReportSuffix
	linked := []byte(strings.ReplaceAll(string(testcase), render.LogReportPlaceholder, logName))

	for _, out := range []struct {
		suffix string
		data   []byte
	}{
		{YangTreeSuffix, yangTree},
		{TestcaseSuffix, linked},
		{LogReportSuffix, logReport},
	} {
		if err := a.writeOutput(run, out.suffix, out.data); err != nil {
			return err
		}
	}

	consolidated, err := a.Renderer.RenderConsolidated(render.ConsolidatedInput{
		ModelName:     run.Report.ModelName,
		LogReport:     logReport,
		Testcase:      testcase,
		YangTree:      yangTree,
		LogReportPath: logName,
	})
	if err != nil {
		return err
	}
	if err := a.writeOutput(run, ConsolidatedSuffix, consolidated); err != nil {
		return err
	}

	if err := a.exportTestcase(run, linked); err != nil {
		return err
	}

	if a.Config.Output.WriteJSON {
		data, err := json.MarshalIndent(run.Report, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode aggregated report: %w", err)
		}
		if err := a.writeOutput(run, AggregatedSuffix, data); err != nil {
			return err
		}
	}

	return nil
}

// exportTestcase writes the markdown and PDF renditions of the testcase report
func (a *App) exportTestcase(run *Run, html []byte) error {
	export := a.Config.Export
	if !export.Markdown && !export.PDF {
		return nil
	}

	markdown, err := a.TransformService.ReportToMarkdown(string(html))
	if err != nil {
		return fmt.Errorf("failed to convert testcase report to markdown: %w", err)
	}

	if export.Markdown {
		if err := a.writeOutput(run, MarkdownSuffix, []byte(markdown)); err != nil {
			return err
		}
	}

	if export.PDF {
		doc, err := a.PDFService.ConvertMarkdownToPDF(markdown, "Testcase Report - "+run.Prefix)
		if err != nil {
			return fmt.Errorf("failed to render testcase report PDF: %w", err)
		}
		if err := a.writeOutput(run, PDFSuffix, doc); err != nil {
			return err
		}
	}
	return nil
}

func (a *App) writeOutput(run *Run, suffix string, data []byte) error {
	path := filepath.Join(a.Config.Output.Dir, run.Prefix+suffix)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	run.Outputs = append(run.Outputs, path)

	a.Logger.Info().Str("file", path).Int("bytes", len(data)).Msg("Report written")
	return nil
}
