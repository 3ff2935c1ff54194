// Package render executes the report templates.
package render

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/Masterminds/sprig/v3"
	"github.com/ternarybob/arbor"

	"github.com/ternarybob/yangreport/internal/models"
	"github.com/ternarybob/yangreport/internal/templates"
)

// LogReportPlaceholder is the link target written into testcase reports,
// replaced by the log report's relative path when reports are consolidated
const LogReportPlaceholder = "LOG_REPORT_PLACEHOLDER"

const timeLayout = "2006-01-02 15:04:05"

// Engine renders reports from embedded or overridden templates
type Engine struct {
	logger       arbor.ILogger
	templatesDir string
	now          func() time.Time
}

// NewEngine creates a render engine. templatesDir may be empty.
func NewEngine(logger arbor.ILogger, templatesDir string) *Engine {
	return &Engine{
		logger:       logger,
		templatesDir: templatesDir,
		now:          time.Now,
	}
}

func newFuncMap() template.FuncMap {
	fm := sprig.FuncMap()

	extra := map[string]any{
		"jsonData":    jsonData,
		"statusClass": StatusClass,
	}

	for name, fn := range extra {
		fm[name] = fn
	}

	return fm
}

// jsonData marshals v for use inside a <script> element
func jsonData(v any) (template.JS, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return template.JS(data), nil
}

func (e *Engine) execute(name string, data any) ([]byte, error) {
	src, err := templates.GetTemplate(name, e.templatesDir)
	if err != nil {
		return nil, err
	}
	if src.Override {
		e.logger.Debug().Str("template", name).Str("path", src.Path).Msg("Using template override")
	}

	tmpl, err := template.New(name).Funcs(newFuncMap()).Parse(src.Content)
	if err != nil {
		return nil, fmt.Errorf("failed to parse template %s: %w", name, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("failed to render template %s: %w", name, err)
	}
	return buf.Bytes(), nil
}

func (e *Engine) timestamp() string {
	return e.now().Format(timeLayout)
}

// RenderYangTree renders the compliance tree report
func (e *Engine) RenderYangTree(report *models.AggregatedReport, root *models.HierarchyNode) ([]byte, error) {
	aggregated, err := jsonData(report)
	if err != nil {
		return nil, fmt.Errorf("failed to encode aggregated report: %w", err)
	}
	tree, err := jsonData(root)
	if err != nil {
		return nil, fmt.Errorf("failed to encode hierarchy: %w", err)
	}

	data := YangTreeData{
		Title:       "YANG Compliance Report",
		ModelName:   report.ModelName,
		GeneratedAt: e.timestamp(),
		Sources:     report.Sources,
		Summary:     summaryView(report.Summary),
		Tree:        treeView(root),
		PathCount:   report.Paths.Len(),
		ReportJSON:  aggregated,
		TreeJSON:    tree,
	}
	return e.execute(templates.YangTree, data)
}

// RenderTestcase renders the testcase report. Log links point at
// LogReportPlaceholder until the report is consolidated.
func (e *Engine) RenderTestcase(report *models.TestcaseReport) ([]byte, error) {
	data := TestcaseData{
		Title:       "Testcase Report",
		GeneratedAt: e.timestamp(),
		Summary:     report.Summary,
		Rows:        report.Rows,
		LogLink:     LogReportPlaceholder,
	}
	return e.execute(templates.Testcase, data)
}

// RenderLogReport renders the beautified execution log
func (e *Engine) RenderLogReport(report *models.LogReport) ([]byte, error) {
	sections, counts := sectionViews(report)
	byID, err := jsonData(report.SectionMap())
	if err != nil {
		return nil, fmt.Errorf("failed to encode testcase data: %w", err)
	}

	data := LogReportData{
		Title:        "Execution Log Report",
		ModelInfo:    report.ModelInfo,
		GeneratedAt:  e.timestamp(),
		Sections:     sections,
		Counts:       counts,
		TestcaseJSON: byID,
	}
	return e.execute(templates.LogReport, data)
}

// ConsolidatedInput holds the three rendered reports to embed
type ConsolidatedInput struct {
	ModelName     string
	LogReport     []byte
	Testcase      []byte
	YangTree      []byte
	LogReportPath string // relative path substituted for LogReportPlaceholder
}

// RenderConsolidated embeds the three reports as iframe srcdoc documents
func (e *Engine) RenderConsolidated(in ConsolidatedInput) ([]byte, error) {
	testcase := strings.ReplaceAll(string(in.Testcase), LogReportPlaceholder, in.LogReportPath)

	data := ConsolidatedData{
		Title:        "Consolidated Report",
		ModelName:    in.ModelName,
		GeneratedAt:  e.timestamp(),
		LogHTML:      string(in.LogReport),
		TestcaseHTML: testcase,
		YangHTML:     string(in.YangTree),
	}
	return e.execute(templates.Consolidated, data)
}
