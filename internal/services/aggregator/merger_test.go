package aggregator

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"

	"github.com/ternarybob/yangreport/internal/models"
)

func docSummary(source string, metrics map[string]any, paths ...string) *models.DocumentSummary {
	doc := models.NewDocumentSummary(source)
	doc.ModelName = "Model - " + source
	doc.Summary = models.NewSummaryRecord()
	for _, name := range []string{
		models.MetricTotalValidations,
		models.MetricTestsPass,
		models.MetricTestsTotal,
		models.MetricTestsFail,
	} {
		if v, ok := metrics[name]; ok {
			doc.Summary.Set(name, v)
		}
	}
	for _, p := range paths {
		doc.Paths.Set(p, models.NewPathRecord(source))
	}
	return doc
}

func TestMerger_SummaryAssociative(t *testing.T) {
	build := func() []*models.DocumentSummary {
		return []*models.DocumentSummary{
			docSummary("a", map[string]any{models.MetricTestsTotal: 3, models.MetricTestsPass: 2, models.MetricTestsFail: 1}, "/a"),
			docSummary("b", map[string]any{models.MetricTestsTotal: float64(4), models.MetricTestsPass: "4", models.MetricTestsFail: 0}, "/b"),
			docSummary("c", map[string]any{models.MetricTestsTotal: "10", models.MetricTestsPass: 7, models.MetricTestsFail: float64(3)}, "/c"),
		}
	}

	docs := build()
	stepwise := NewMerger(arbor.NewNoOpLogger())
	stepwise.Merge(docs[0], docs[1])
	stepwise.Add(docs[2])

	docs = build()
	oneShot := NewMerger(arbor.NewNoOpLogger()).Merge(docs...)

	a, err := json.Marshal(stepwise.Report().Summary)
	require.NoError(t, err)
	b, err := json.Marshal(oneShot.Summary)
	require.NoError(t, err)
	assert.JSONEq(t, string(b), string(a))
	assert.JSONEq(t, `{"tests_pass": 13, "tests_total": 17, "tests_fail": 4}`, string(b))

	assert.Equal(t, "Model - a", oneShot.ModelName)
	assert.Equal(t, []string{"a", "b", "c"}, oneShot.Sources)
	assert.Equal(t, []string{"/a", "/b", "/c"}, oneShot.PathKeys())
}

func TestMerger_CollisionRename(t *testing.T) {
	a := docSummary("a", nil, "/x", "/y")
	b := docSummary("b", nil, "/x")
	c := docSummary("c", nil, "/x", "/y")

	report := NewMerger(arbor.NewNoOpLogger()).Merge(a, b, c)
	assert.Equal(t, []string{"/x", "/y", "/x_1", "/x_2", "/y_1"}, report.PathKeys())

	for key, wantSource := range map[string]string{"/x": "a", "/x_1": "b", "/x_2": "c", "/y_1": "c"} {
		record, ok := report.Paths.Get(key)
		require.True(t, ok)
		assert.Equal(t, wantSource, record.TestName, key)
	}
}

func TestMerger_CoercionFailureSkipsMetric(t *testing.T) {
	a := docSummary("a", map[string]any{models.MetricTestsTotal: "abc", models.MetricTestsPass: "5"})
	b := docSummary("b", map[string]any{models.MetricTestsTotal: 3, models.MetricTestsPass: 2.0, models.MetricTestsFail: 1})

	report := NewMerger(arbor.NewNoOpLogger()).Merge(a, b)

	total, _ := report.Summary.Get(models.MetricTestsTotal)
	assert.Equal(t, "abc", total)
	pass, _ := report.Summary.Get(models.MetricTestsPass)
	assert.Equal(t, int64(7), pass)
	_, ok := report.Summary.Get(models.MetricTestsFail)
	assert.False(t, ok, "metric absent from running totals is not added")
}

func TestMerger_SummaryNotAliased(t *testing.T) {
	a := docSummary("a", map[string]any{models.MetricTestsTotal: 1})
	b := docSummary("b", map[string]any{models.MetricTestsTotal: 2})

	NewMerger(arbor.NewNoOpLogger()).Merge(a, b)

	v, _ := a.Summary.Get(models.MetricTestsTotal)
	assert.Equal(t, 1, v)
}

func TestCoerceInt(t *testing.T) {
	tests := []struct {
		in      any
		want    int64
		wantErr bool
	}{
		{3, 3, false},
		{int64(9), 9, false},
		{float64(4), 4, false},
		{4.7, 4, false},
		{" 12 ", 12, false},
		{true, 1, false},
		{json.Number("8"), 8, false},
		{"4.5", 0, true},
		{"x", 0, true},
		{nil, 0, true},
		{[]any{1}, 0, true},
	}
	for _, tt := range tests {
		got, err := CoerceInt(tt.in)
		if tt.wantErr {
			assert.Error(t, err, "%v", tt.in)
			continue
		}
		require.NoError(t, err, "%v", tt.in)
		assert.Equal(t, tt.want, got)
	}
}
