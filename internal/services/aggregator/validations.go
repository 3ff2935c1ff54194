package aggregator

import (
	"encoding/json"

	"github.com/tidwall/gjson"

	"github.com/ternarybob/yangreport/internal/models"
)

// encodingMember is listed next to the type keys by some harness versions
const encodingMember = "encoding"

// parseValidationBlock reads the first operation of an outcome's validations
// map, keeping type and verdict order as written. Returns nil when there is none.
func parseValidationBlock(raw json.RawMessage) *models.ValidationBlock {
	if len(raw) == 0 {
		return nil
	}
	root := gjson.ParseBytes(raw)
	if !root.IsObject() {
		return nil
	}

	var block *models.ValidationBlock
	root.ForEach(func(opKey, opValue gjson.Result) bool {
		block = &models.ValidationBlock{
			Operation: opKey.String(),
			Encoding:  opValue.Get(encodingMember).String(),
		}

		types := opValue.Get("type")
		if !types.IsObject() {
			return false
		}
		types.ForEach(func(typeKey, entries gjson.Result) bool {
			if typeKey.String() == encodingMember {
				return true
			}
			tv := models.TypeVerdicts{Type: typeKey.String()}
			if entries.IsArray() {
				for _, entry := range entries.Array() {
					if !entry.IsObject() {
						continue
					}
					entry.ForEach(func(valKey, verdict gjson.Result) bool {
						tv.Verdicts = append(tv.Verdicts, models.Verdict{
							Key:   valKey.String(),
							Value: json.RawMessage(verdict.Raw),
							Empty: isEmptyResult(verdict),
						})
						return true
					})
				}
			}
			block.Types = append(block.Types, tv)
			return true
		})

		// Only the first operation is considered
		return false
	})

	return block
}

func isEmptyResult(r gjson.Result) bool {
	switch r.Type {
	case gjson.Null, gjson.False:
		return true
	case gjson.Number:
		return r.Num == 0
	case gjson.String:
		return r.Str == ""
	case gjson.JSON:
		if r.IsArray() {
			return len(r.Array()) == 0
		}
		return len(r.Map()) == 0
	}
	return false
}
