package aggregator

import (
	"errors"
	"fmt"

	"github.com/ternarybob/arbor"
	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/ternarybob/yangreport/internal/common"
	"github.com/ternarybob/yangreport/internal/interfaces"
	"github.com/ternarybob/yangreport/internal/models"
)

const deviationMessage = "Deviation Path"

// SummarizeOptions carries the per-document inputs of a summarization.
// PlatformSupport and Deviations fall back to the document metadata when empty.
type SummarizeOptions struct {
	Schema          *models.ValidationSchema
	Logs            interfaces.LogIndex
	PlatformSupport map[string]string
	Deviations      []string
	ModelName       string
}

// Summarizer folds the test outcomes of one result document into per-path records
type Summarizer struct {
	logger arbor.ILogger
}

// NewSummarizer creates a summarizer
func NewSummarizer(logger arbor.ILogger) *Summarizer {
	return &Summarizer{logger: logger}
}

type instanceKey struct {
	path    string
	typeKey string
}

// summarizeContext is the state of a single Summarize call
type summarizeContext struct {
	doc         *models.ResultDocument
	opts        SummarizeOptions
	result      *models.DocumentSummary
	occurrences map[instanceKey]int
	deviations  map[string]struct{}
	platform    map[string]string
}

// Summarize walks every outcome of the document. Outcomes that cannot be
// mapped to a path, and type instances the schema does not know, are logged
// and skipped.
func (s *Summarizer) Summarize(doc *models.ResultDocument, opts SummarizeOptions) (*models.DocumentSummary, error) {
	if doc == nil {
		return nil, fmt.Errorf("nil result document: %w", common.ErrMalformedDocument)
	}
	if opts.Schema == nil {
		return nil, errors.New("summarize requires a validation schema")
	}

	sc := &summarizeContext{
		doc:         doc,
		opts:        opts,
		result:      models.NewDocumentSummary(doc.Source),
		occurrences: make(map[instanceKey]int),
		deviations:  make(map[string]struct{}),
		platform:    opts.PlatformSupport,
	}

	deviations := opts.Deviations
	if len(deviations) == 0 {
		deviations = doc.Metadata.Deviations
	}
	for _, d := range deviations {
		sc.deviations[d] = struct{}{}
	}
	if len(sc.platform) == 0 {
		sc.platform = doc.Metadata.PlatformSupport
	}

	sc.result.ModelName = opts.ModelName
	if sc.result.ModelName == "" {
		sc.result.ModelName = ModelName(doc.Labels)
	}

	for i := range doc.Results {
		s.summarizeOutcome(sc, &doc.Results[i])
	}

	for pair := sc.result.Paths.Oldest(); pair != nil; pair = pair.Next() {
		groupInstances(pair.Value)
	}

	s.logger.Debug().
		Str("source", doc.Source).
		Int("outcomes", len(doc.Results)).
		Int("paths", sc.result.Paths.Len()).
		Msg("Summarized result document")

	return sc.result, nil
}

func (s *Summarizer) summarizeOutcome(sc *summarizeContext, outcome *models.TestOutcome) {
	path, err := ExtractPath(outcome.TestName)
	if err != nil {
		s.logger.Warn().
			Err(err).
			Str("source", sc.doc.Source).
			Str("test_id", outcome.TestID).
			Msg("Skipping test outcome")
		return
	}

	record, ok := sc.result.Paths.Get(path)
	if !ok {
		record = models.NewPathRecord(TestLabel(outcome.TestName))
		sc.result.Paths.Set(path, record)
		if sc.result.Summary == nil {
			sc.result.Summary = sc.doc.SummaryCounters()
		}
	}

	coarse := models.StatusFail
	if outcome.Success {
		coarse = models.StatusPass
	}

	if last := outcome.Last(); last != nil {
		if block := parseValidationBlock(last.Validations); block != nil {
			s.foldBlock(sc, path, record, outcome, last, block, coarse)
		}
	}

	status := models.NewStatus(coarse)
	if _, ok := sc.deviations[path]; ok {
		record.Deviation.Status = "Yes"
		record.Deviation.Message = deviationMessage
		status.Deviation = true
	}

	flag, ok := sc.platform[path]
	if !ok {
		flag = models.PlatformNotNoted
	}
	status.Platform = flag
	record.Platform.Status = flag

	// First failure sticks for the rest of the document
	if !record.Status.Status.IsFail() {
		record.Status.Status = status
	}
}

func (s *Summarizer) foldBlock(sc *summarizeContext, path string, record *models.PathRecord, outcome *models.TestOutcome, last *models.OutcomeResult, block *models.ValidationBlock, coarse string) {
	observed := block.ObservedKeys()
	hint := block.ComplianceKeyHint()

	for _, tv := range block.Types {
		k := instanceKey{path: path, typeKey: tv.Type}
		sc.occurrences[k]++
		unique := InstanceKey(tv.Type, sc.occurrences[k])

		instance, ok := record.Type(unique)
		if !ok {
			instance = s.seedInstance(sc, record, block, tv.Type, unique, hint, observed)
			if instance == nil {
				s.logger.Warn().
					Err(fmt.Errorf("type %s of operation %s: %w", tv.Type, block.Operation, common.ErrSchemaGap)).
					Str("source", sc.doc.Source).
					Str("path", path).
					Str("instance", unique).
					Msg("Skipping type instance not supported by schema")
				continue
			}
		}

		s.foldInstance(sc, instance, outcome, last, block, tv, coarse)
	}
}

// seedInstance builds the skeleton for one type, stores it under its unique
// key and adds the other schema types that are not present yet.
func (s *Summarizer) seedInstance(sc *summarizeContext, record *models.PathRecord, block *models.ValidationBlock, typeKey, unique, hint string, observed map[string]struct{}) *models.TypeInstanceRecord {
	entries := BuildSkeleton(SkeletonRequest{
		Operation:     block.Operation,
		TypeKeys:      []string{typeKey},
		Encoding:      block.Encoding,
		ComplianceKey: hint,
		Observed:      observed,
	}, sc.opts.Schema)

	var instance *models.TypeInstanceRecord
	for _, e := range entries {
		if e.Key == typeKey {
			instance = e.Record
			record.Types.Set(unique, instance)
			continue
		}
		if _, exists := record.Type(e.Key); !exists {
			record.Types.Set(e.Key, e.Record)
		}
	}
	return instance
}

func (s *Summarizer) foldInstance(sc *summarizeContext, instance *models.TypeInstanceRecord, outcome *models.TestOutcome, last *models.OutcomeResult, block *models.ValidationBlock, tv models.TypeVerdicts, coarse string) {
	instance.FullPath = outcome.TestName
	instance.NewLog = &models.LogRecord{}
	if sc.opts.Logs != nil {
		if rec, ok := sc.opts.Logs.Lookup(outcome.TestName); ok {
			instance.NewLog = rec
		}
	}

	if last.Result != nil {
		instance.Status = fmt.Sprint(last.Result)
	} else {
		instance.Status = coarse
	}

	instance.AddEncoding(block.Encoding)

	for _, v := range tv.Verdicts {
		if !v.Empty {
			instance.Message = []string{}
			instance.Log = models.OrNA(last.Log)
			instance.GnmiLog = models.OrNA(last.GnmiLog)
			instance.TestLog = models.OrNA(last.TestLog)
			instance.TotalValidations = models.NewMetric(last.TotalValidations)
			instance.IgnoredValidations = models.NewMetric(last.IgnoredValidations)
			instance.FailedValidations = models.NewMetric(last.FailedValidations)
			instance.PassedValidations = models.NewMetric(last.PassedValidations)
			instance.Coverage = models.NewMetric(last.Coverage)
		}

		if entry, ok := instance.FindCompliance(v.Key); ok {
			entry.Verdict = v.Value
			continue
		}

		entry := &models.ComplianceEntry{Validation: v.Key, Verdict: v.Value}
		if def, ok := sc.opts.Schema.Validation(v.Key); ok {
			entry.Description = def.Description
			entry.Key = def.Name
		} else {
			s.logger.Warn().
				Err(fmt.Errorf("validation %s: %w", v.Key, common.ErrSchemaGap)).
				Str("source", sc.doc.Source).
				Str("test_name", outcome.TestName).
				Msg("Validation not in schema, adding without description")
		}
		instance.Compliance = append(instance.Compliance, entry)
	}
}

// groupInstances moves every base type with more than one instance into
// multiple_data, first instance re-keyed to the bare base name.
func groupInstances(record *models.PathRecord) {
	groups := orderedmap.New[string, []string]()
	for _, key := range record.TypeKeys() {
		base := BaseTypeKey(key)
		instances, _ := groups.Get(base)
		groups.Set(base, append(instances, key))
	}

	for pair := groups.Oldest(); pair != nil; pair = pair.Next() {
		base, instances := pair.Key, pair.Value
		if len(instances) < 2 {
			continue
		}
		if record.MultipleData == nil {
			record.MultipleData = orderedmap.New[string, *models.TypeInstanceRecord]()
		}
		for i, key := range instances {
			instance, _ := record.Types.Delete(key)
			name := key
			if i == 0 {
				name = base
			}
			record.MultipleData.Set(name, instance)
		}
	}
}

// ModelName returns "Model - <Label>" for the first document label, or ""
func ModelName(labels []string) string {
	if len(labels) == 0 || labels[0] == "" {
		return ""
	}
	return common.TitleCase("Model - " + labels[0])
}
