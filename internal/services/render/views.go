package render

import (
	"fmt"
	"html/template"
	"path"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/ternarybob/yangreport/internal/models"
)

// MetricView is one summary counter
type MetricView struct {
	Name  string
	Value string
}

// ComplianceView is one validation verdict of a type instance
type ComplianceView struct {
	Validation  string
	Verdict     string
	Description string
}

// TypeView is one type instance of a path
type TypeView struct {
	Key         string
	Grouped     bool // listed under multiple_data
	Status      string
	StatusClass string
	Encoding    string
	Total       string
	Passed      string
	Failed      string
	Ignored     string
	Coverage    string
	Messages    []string
	Log         string
	FullPath    string
	Compliance  []ComplianceView
}

// PathView is the rendered form of a path record
type PathView struct {
	TestName         string
	Status           string
	StatusClass      string
	Deviation        string
	DeviationMessage string
	Platform         string
	Types            []TypeView
}

// TreeNodeView is one node of the compliance tree
type TreeNodeView struct {
	Key      string
	Name     string // last path segment
	Record   *PathView
	Children []*TreeNodeView
}

// YangTreeData is the data of the compliance tree report
type YangTreeData struct {
	Title       string
	ModelName   string
	GeneratedAt string
	Sources     []string
	Summary     []MetricView
	Tree        []*TreeNodeView
	PathCount   int
	ReportJSON  template.JS
	TreeJSON    template.JS
}

// TestcaseData is the data of the testcase report
type TestcaseData struct {
	Title       string
	GeneratedAt string
	Summary     models.TestcaseSummary
	Rows        []models.TestcaseRow
	LogLink     string
}

// SectionView is one beautified testcase block
type SectionView struct {
	ID     string
	Status string
	Color  string
	HTML   template.HTML
}

// LogReportData is the data of the execution-log report
type LogReportData struct {
	Title        string
	ModelInfo    string
	GeneratedAt  string
	Sections     []SectionView
	Counts       map[string]int
	TestcaseJSON template.JS
}

// ConsolidatedData is the data of the consolidated report
type ConsolidatedData struct {
	Title        string
	ModelName    string
	GeneratedAt  string
	LogHTML      string
	TestcaseHTML string
	YangHTML     string
}

// StatusClass maps a composed status to a CSS class
func StatusClass(status string) string {
	switch {
	case strings.HasPrefix(status, models.StatusFail):
		return "fail"
	case strings.HasPrefix(status, models.StatusPass):
		return "pass"
	}
	return "na"
}

func summaryView(summary *models.SummaryRecord) []MetricView {
	if summary == nil {
		return nil
	}
	views := make([]MetricView, 0, summary.Len())
	for _, name := range summary.Names() {
		value, _ := summary.Get(name)
		views = append(views, MetricView{Name: name, Value: fmt.Sprint(value)})
	}
	return views
}

func treeView(node *models.HierarchyNode) []*TreeNodeView {
	views := make([]*TreeNodeView, 0, node.Children.Len())
	for pair := node.Children.Oldest(); pair != nil; pair = pair.Next() {
		child := pair.Value
		view := &TreeNodeView{
			Key:      child.Key,
			Name:     path.Base(child.Key),
			Children: treeView(child),
		}
		if child.Data != nil {
			view.Record = pathView(child.Data)
		}
		views = append(views, view)
	}
	return views
}

func pathView(record *models.PathRecord) *PathView {
	status := record.Status.Status.String()
	view := &PathView{
		TestName:         record.TestName,
		Status:           status,
		StatusClass:      StatusClass(status),
		Deviation:        record.Deviation.Status,
		DeviationMessage: record.Deviation.Message,
		Platform:         record.Platform.Status,
	}
	for pair := record.Types.Oldest(); pair != nil; pair = pair.Next() {
		view.Types = append(view.Types, typeView(pair.Key, pair.Value, false))
	}
	if record.MultipleData != nil {
		for pair := record.MultipleData.Oldest(); pair != nil; pair = pair.Next() {
			view.Types = append(view.Types, typeView(pair.Key, pair.Value, true))
		}
	}
	return view
}

func typeView(key string, r *models.TypeInstanceRecord, grouped bool) TypeView {
	encodings := make([]string, 0, len(r.Encoding))
	for _, e := range r.Encoding {
		encodings = append(encodings, e.Value)
	}

	view := TypeView{
		Key:         key,
		Grouped:     grouped,
		Status:      r.Status,
		StatusClass: StatusClass(r.Status),
		Encoding:    strings.Join(encodings, ", "),
		Total:       r.TotalValidations.String(),
		Passed:      r.PassedValidations.String(),
		Failed:      r.FailedValidations.String(),
		Ignored:     r.IgnoredValidations.String(),
		Coverage:    r.Coverage.String(),
		Messages:    r.Message,
		Log:         r.Log,
		FullPath:    r.FullPath,
	}
	for _, c := range r.Compliance {
		view.Compliance = append(view.Compliance, ComplianceView{
			Validation:  c.Validation,
			Verdict:     verdictText(c.Verdict),
			Description: c.Description,
		})
	}
	return view
}

// verdictText renders a raw verdict; strings are unquoted, an empty object is blank
func verdictText(raw []byte) string {
	if len(raw) == 0 {
		return ""
	}
	v := gjson.ParseBytes(raw)
	if v.IsObject() && len(v.Map()) == 0 {
		return ""
	}
	return v.String()
}

func sectionViews(report *models.LogReport) ([]SectionView, map[string]int) {
	views := make([]SectionView, 0, len(report.Sections))
	counts := map[string]int{
		models.SectionPass:         0,
		models.SectionFail:         0,
		models.SectionPromotedPass: 0,
		models.SectionAnomalyPass:  0,
	}
	for _, s := range report.Sections {
		counts[s.Status]++
		views = append(views, SectionView{
			ID:     s.ID,
			Status: s.Status,
			Color:  s.Color,
			// Fragments are built from escaped log text
			HTML: template.HTML(s.HTML),
		})
	}
	return views, counts
}
