package app

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/ternarybob/yangreport/internal/common"
	"github.com/ternarybob/yangreport/internal/models"
)

// LoadDocuments reads a result file holding either one document or an array of documents
func LoadDocuments(path string) ([]*models.ResultDocument, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", common.ErrInputNotFound, path)
		}
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	docs, err := ParseDocuments(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	for _, doc := range docs {
		doc.Source = path
	}
	return docs, nil
}

// ParseDocuments decodes a JSON object or array of objects
func ParseDocuments(data []byte) ([]*models.ResultDocument, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("%w: empty input", common.ErrMalformedDocument)
	}

	switch trimmed[0] {
	case '[':
		var docs []*models.ResultDocument
		if err := json.Unmarshal(trimmed, &docs); err != nil {
			return nil, fmt.Errorf("%w: %v", common.ErrMalformedDocument, err)
		}
		kept := docs[:0]
		for _, doc := range docs {
			if doc != nil {
				kept = append(kept, doc)
			}
		}
		return kept, nil
	case '{':
		var doc models.ResultDocument
		if err := json.Unmarshal(trimmed, &doc); err != nil {
			return nil, fmt.Errorf("%w: %v", common.ErrMalformedDocument, err)
		}
		return []*models.ResultDocument{&doc}, nil
	default:
		return nil, fmt.Errorf("%w: expected a JSON object or array", common.ErrMalformedDocument)
	}
}
