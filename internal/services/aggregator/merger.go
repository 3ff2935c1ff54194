package aggregator

import (
	"fmt"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/yangreport/internal/common"
	"github.com/ternarybob/yangreport/internal/models"
)

// Merger combines document summaries into one report in submission order.
// It takes ownership of the path records it is given.
type Merger struct {
	logger arbor.ILogger
	report *models.AggregatedReport
}

// NewMerger creates an empty merger
func NewMerger(logger arbor.ILogger) *Merger {
	return &Merger{
		logger: logger,
		report: models.NewAggregatedReport(),
	}
}

// Merge adds every summary in order and returns the report
func (m *Merger) Merge(docs ...*models.DocumentSummary) *models.AggregatedReport {
	for _, doc := range docs {
		m.Add(doc)
	}
	return m.report
}

// Report returns the report built so far
func (m *Merger) Report() *models.AggregatedReport {
	return m.report
}

// Add folds one summary into the report. Summary counters are summed;
// colliding path keys are stored as key_1, key_2, ...
func (m *Merger) Add(doc *models.DocumentSummary) {
	if doc == nil {
		return
	}

	if doc.Source != "" {
		m.report.Sources = append(m.report.Sources, doc.Source)
	}
	if m.report.ModelName == "" {
		m.report.ModelName = doc.ModelName
	}

	if doc.Summary != nil {
		m.addSummary(doc.Source, doc.Summary)
	}

	for pair := doc.Paths.Oldest(); pair != nil; pair = pair.Next() {
		key := pair.Key
		if _, exists := m.report.Paths.Get(key); exists {
			key = m.freeKey(pair.Key)
			m.logger.Debug().
				Str("path", pair.Key).
				Str("stored_as", key).
				Str("source", doc.Source).
				Msg("Path already reported, storing under renamed key")
		}
		m.report.Paths.Set(key, pair.Value)
	}
}

func (m *Merger) addSummary(source string, summary *models.SummaryRecord) {
	if m.report.Summary == nil {
		m.report.Summary = summary.Clone()
		return
	}

	for _, name := range summary.Names() {
		value, _ := summary.Get(name)
		current, ok := m.report.Summary.Get(name)
		if !ok {
			m.logger.Warn().
				Err(fmt.Errorf("metric %s missing from running totals: %w", name, common.ErrMetricCoercion)).
				Str("source", source).
				Msg("Skipping summary metric")
			continue
		}

		a, err := CoerceInt(current)
		if err != nil {
			m.warnCoercion(source, name, err)
			continue
		}
		b, err := CoerceInt(value)
		if err != nil {
			m.warnCoercion(source, name, err)
			continue
		}
		m.report.Summary.Set(name, a+b)
	}
}

func (m *Merger) warnCoercion(source, metric string, err error) {
	m.logger.Warn().
		Err(err).
		Str("source", source).
		Str("metric", metric).
		Msg("Skipping summary metric")
}

func (m *Merger) freeKey(key string) string {
	for i := 1; ; i++ {
		candidate := fmt.Sprintf("%s_%d", key, i)
		if _, exists := m.report.Paths.Get(candidate); !exists {
			return candidate
		}
	}
}
