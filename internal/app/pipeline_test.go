package app

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ternarybob/yangreport/internal/common"
	"github.com/ternarybob/yangreport/internal/models"
)

func readHTML(t *testing.T, path string) *goquery.Document {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(data))
	require.NoError(t, err)
	return doc
}

func TestRunSingle(t *testing.T) {
	application := newTestApp(t, nil)
	inputDir := t.TempDir()
	schemaPath := writeFile(t, inputDir, "validation.yaml", testSchema)
	resultPath := writeFile(t, inputDir, "system-tc_result.json", systemResult)
	logPath := writeFile(t, inputDir, "system-tc_result.log", systemLog)

	run, err := application.RunSingle(context.Background(), SingleRequest{
		ResultPath: resultPath,
		SchemaPath: schemaPath,
		LogPath:    logPath,
	})
	require.NoError(t, err)

	assert.Equal(t, "system-tc_result", run.Prefix)
	assert.Equal(t, models.RunModeSingle, run.Mode)
	assert.Equal(t, []string{resultPath, logPath}, run.Inputs)
	assert.Empty(t, run.ID, "history is disabled")
	assert.Equal(t, []string{"/system/config/hostname", "/system/config/domain-name"}, run.Report.PathKeys())
	assert.Len(t, run.Log.Sections, 2)
	assert.Equal(t, "Openconfig-System", run.Log.ModelInfo)

	record, ok := run.Report.Paths.Get("/system/config/hostname")
	require.True(t, ok)
	once, ok := record.Type("ONCE")
	require.True(t, ok)
	require.NotNil(t, once.NewLog)
	assert.Contains(t, once.NewLog.Data, "SET request sent")

	outDir := application.Config.Output.Dir
	for _, suffix := range []string{YangTreeSuffix, TestcaseSuffix, LogReportSuffix, ConsolidatedSuffix} {
		assert.FileExists(t, filepath.Join(outDir, "system-tc_result"+suffix))
	}
	assert.Len(t, run.Outputs, 4)

	tree := readHTML(t, filepath.Join(outDir, "system-tc_result"+YangTreeSuffix))
	assert.Equal(t, 1, tree.Find(`li.tree-node[data-key="system/config/hostname"]`).Length())

	testcase := readHTML(t, filepath.Join(outDir, "system-tc_result"+TestcaseSuffix))
	assert.Equal(t, 2, testcase.Find("#testcases tbody tr").Length())
	href, _ := testcase.Find("#testcases tbody tr a").First().Attr("href")
	assert.Equal(t, "system-tc_result_log_report.html?test_id=TC_1", href)

	consolidated := readHTML(t, filepath.Join(outDir, "system-tc_result"+ConsolidatedSuffix))
	srcdoc, ok := consolidated.Find("#testcase_frame").Attr("srcdoc")
	require.True(t, ok)
	assert.Contains(t, srcdoc, "system-tc_result_log_report.html?test_id=TC_2")
}

func TestRunSingle_Exports(t *testing.T) {
	application := newTestApp(t, func(c *common.Config) {
		c.Output.WriteJSON = true
		c.Export.Markdown = true
		c.Export.PDF = true
	})
	inputDir := t.TempDir()
	schemaPath := writeFile(t, inputDir, "validation.yaml", testSchema)
	resultPath := writeFile(t, inputDir, "system-tc_result.json", systemResult)

	run, err := application.RunSingle(context.Background(), SingleRequest{
		ResultPath: resultPath,
		SchemaPath: schemaPath,
	})
	require.NoError(t, err)
	assert.Len(t, run.Outputs, 7)
	assert.Empty(t, run.Log.Sections)

	outDir := application.Config.Output.Dir
	markdown, err := os.ReadFile(filepath.Join(outDir, "system-tc_result"+MarkdownSuffix))
	require.NoError(t, err)
	assert.Contains(t, string(markdown), "/system/config/hostname")

	pdf, err := os.ReadFile(filepath.Join(outDir, "system-tc_result"+PDFSuffix))
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF")))

	aggregated, err := os.ReadFile(filepath.Join(outDir, "system-tc_result"+AggregatedSuffix))
	require.NoError(t, err)
	assert.Contains(t, string(aggregated), `"summary"`)
	assert.Contains(t, string(aggregated), `"/system/config/domain-name"`)
}

func TestRunSingle_MissingInputs(t *testing.T) {
	application := newTestApp(t, nil)
	inputDir := t.TempDir()
	schemaPath := writeFile(t, inputDir, "validation.yaml", testSchema)
	resultPath := writeFile(t, inputDir, "system-tc_result.json", systemResult)

	tests := []struct {
		name string
		req  SingleRequest
	}{
		{"result", SingleRequest{ResultPath: filepath.Join(inputDir, "absent.json"), SchemaPath: schemaPath}},
		{"schema", SingleRequest{ResultPath: resultPath, SchemaPath: filepath.Join(inputDir, "absent.yaml")}},
		{"log", SingleRequest{ResultPath: resultPath, SchemaPath: schemaPath, LogPath: filepath.Join(inputDir, "absent.log")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := application.RunSingle(context.Background(), tt.req)
			assert.ErrorIs(t, err, common.ErrInputNotFound)
		})
	}

	_, err := application.RunSingle(context.Background(), SingleRequest{SchemaPath: schemaPath})
	assert.Error(t, err)
}

func TestRunDirectory(t *testing.T) {
	application := newTestApp(t, nil)
	dir := filepath.Join(t.TempDir(), "nightly")
	require.NoError(t, os.MkdirAll(dir, 0755))

	schemaPath := writeFile(t, t.TempDir(), "validation.yaml", testSchema)
	systemPath := writeFile(t, dir, "system-tc_result.json", systemResult)
	writeFile(t, dir, "system-tc_result.log", systemLog)
	interfacesPath := writeFile(t, dir, "interfaces-tc_result.json", interfacesResult)
	brokenPath := writeFile(t, dir, "broken-tc_result.json", `{"results": [`)

	run, err := application.RunDirectory(context.Background(), dir, schemaPath)
	require.NoError(t, err)

	assert.Equal(t, "nightly", run.Prefix)
	assert.Equal(t, []string{brokenPath}, run.Skipped)
	assert.Contains(t, run.Inputs, systemPath)
	assert.Contains(t, run.Inputs, interfacesPath)

	// interfaces sorts before system
	assert.Equal(t, []string{
		"/interfaces/interface/config/mtu",
		"/system/config/hostname",
		"/system/config/domain-name",
	}, run.Report.PathKeys())
	assert.Equal(t, "Model - Openconfig-Interfaces", run.Report.ModelName)

	total, ok := run.Report.Summary.Get(models.MetricTestsTotal)
	require.True(t, ok)
	assert.EqualValues(t, 3, total)

	assert.Len(t, run.Testcase.Rows, 3)
	assert.Len(t, run.Log.Sections, 2)

	for _, suffix := range []string{YangTreeSuffix, TestcaseSuffix, LogReportSuffix, ConsolidatedSuffix} {
		assert.FileExists(t, filepath.Join(application.Config.Output.Dir, "nightly"+suffix))
	}
}

func TestRunDirectory_Errors(t *testing.T) {
	application := newTestApp(t, nil)
	schemaPath := writeFile(t, t.TempDir(), "validation.yaml", testSchema)

	_, err := application.RunDirectory(context.Background(), filepath.Join(t.TempDir(), "absent"), schemaPath)
	assert.ErrorIs(t, err, common.ErrInputNotFound)

	_, err = application.RunDirectory(context.Background(), t.TempDir(), schemaPath)
	assert.ErrorIs(t, err, common.ErrInputNotFound, "empty directory")

	dir := t.TempDir()
	writeFile(t, dir, "system-tc_result.json", systemResult)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = application.RunDirectory(ctx, dir, schemaPath)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRun_History(t *testing.T) {
	application := newTestApp(t, func(c *common.Config) {
		c.History.Enabled = true
		c.History.Path = filepath.Join(t.TempDir(), "history")
	})
	require.NotNil(t, application.History)

	inputDir := t.TempDir()
	schemaPath := writeFile(t, inputDir, "validation.yaml", testSchema)
	resultPath := writeFile(t, inputDir, "system-tc_result.json", systemResult)

	run, err := application.RunSingle(context.Background(), SingleRequest{
		ResultPath: resultPath,
		SchemaPath: schemaPath,
	})
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(run.ID, "run_"))

	runs, err := application.ListHistory(context.Background())
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, run.ID, runs[0].ID)
	assert.Equal(t, "system-tc_result", runs[0].Prefix)
	assert.Equal(t, 2, runs[0].Paths)
	assert.Equal(t, int64(2), runs[0].TestsTotal)
	assert.Equal(t, int64(1), runs[0].TestsFail)
	assert.Equal(t, run.Outputs, runs[0].Outputs)
}

func TestListHistory_Disabled(t *testing.T) {
	application := newTestApp(t, nil)
	_, err := application.ListHistory(context.Background())
	assert.ErrorIs(t, err, ErrHistoryDisabled)
}
