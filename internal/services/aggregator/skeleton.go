package aggregator

import (
	"github.com/ternarybob/yangreport/internal/models"
)

// SkeletonRequest scopes a skeleton build to one operation
type SkeletonRequest struct {
	Operation     string
	TypeKeys      []string            // types exercised by the outcome
	Encoding      string              // attached once per requested type when non-empty
	ComplianceKey string              // "key" member of every seeded compliance entry
	Observed      map[string]struct{} // validation keys present in the outcome; empty disables the filter
}

// BuildSkeleton returns empty-but-shaped records for every type declared under
// the operation, in schema order.
//
// Requested types get a compliance entry per eligible validation (type, group
// and definition all supported, and observed when a filter is given). Types
// that were not requested are included without compliance entries unless
// their flag is exactly "not-supported".
func BuildSkeleton(req SkeletonRequest, schema *models.ValidationSchema) []models.TypeEntry {
	op, ok := schema.Operation(req.Operation)
	if !ok {
		return nil
	}

	requested := make(map[string]struct{}, len(req.TypeKeys))
	for _, k := range req.TypeKeys {
		requested[k] = struct{}{}
	}

	entries := make([]models.TypeEntry, 0, len(op.Types))
	for _, typeDef := range op.Types {
		if _, ok := requested[typeDef.Key]; !ok {
			if typeDef.ExplicitlyUnsupported() {
				continue
			}
			entries = append(entries, models.TypeEntry{
				Key:    typeDef.Key,
				Record: models.NewTypeInstanceRecord(req.Operation),
			})
			continue
		}

		if !typeDef.Supported() {
			continue
		}

		record := models.NewTypeInstanceRecord(req.Operation)
		for _, groupKey := range typeDef.Sequence {
			group, ok := schema.Group(groupKey)
			if !ok || !group.Supported() {
				continue
			}
			for _, valKey := range group.Validations {
				def, ok := schema.Validation(valKey)
				if !ok || !def.Supported() {
					continue
				}
				if len(req.Observed) > 0 {
					if _, seen := req.Observed[valKey]; !seen {
						continue
					}
				}
				record.Compliance = append(record.Compliance, &models.ComplianceEntry{
					Validation:  valKey,
					Description: def.Description,
					Key:         req.ComplianceKey,
				})
			}
		}
		record.AddEncoding(req.Encoding)

		entries = append(entries, models.TypeEntry{Key: typeDef.Key, Record: record})
	}

	return entries
}
