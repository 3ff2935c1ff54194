// Package schema loads the YAML validation catalogue that drives the compliance tree.
package schema

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ternarybob/yangreport/internal/common"
	"github.com/ternarybob/yangreport/internal/models"
)

type rawSchema struct {
	Operations  map[string]rawOperation  `yaml:"gnmi_operations"`
	Groups      map[string]rawGroup      `yaml:"gnmi_operation_validations"`
	Validations map[string]rawValidation `yaml:"validations"`
}

// rawOperation keeps the type mapping as a node so declaration order survives
type rawOperation struct {
	Type yaml.Node `yaml:"type"`
}

type rawTypeDef struct {
	CurrentStatus *string  `yaml:"current_status"`
	Sequence      []string `yaml:"operation_validations_sequence"`
}

type rawGroup struct {
	CurrentStatus *string  `yaml:"current_status"`
	Validations   []string `yaml:"validations"`
}

type rawValidation struct {
	CurrentStatus *string `yaml:"current_status"`
	Description   string  `yaml:"description"`
	Name          string  `yaml:"name"`
}

// Load reads and parses a schema file
func Load(path string) (*models.ValidationSchema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("schema %s: %w", path, common.ErrInputNotFound)
		}
		return nil, fmt.Errorf("failed to read schema %s: %w", path, err)
	}

	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("schema %s: %w", path, err)
	}
	return s, nil
}

// Parse decodes schema YAML. A missing current_status is read as "not-supported".
func Parse(data []byte) (*models.ValidationSchema, error) {
	var raw rawSchema
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrSchemaParse, err)
	}

	s := &models.ValidationSchema{
		Operations:  make(map[string]*models.Operation, len(raw.Operations)),
		Groups:      make(map[string]*models.ValidationGroup, len(raw.Groups)),
		Validations: make(map[string]*models.ValidationDef, len(raw.Validations)),
	}

	for name, rawOp := range raw.Operations {
		op, err := parseOperation(name, &rawOp.Type)
		if err != nil {
			return nil, err
		}
		s.Operations[name] = op
	}

	for key, g := range raw.Groups {
		s.Groups[key] = &models.ValidationGroup{
			Key:         key,
			Status:      statusOrDefault(g.CurrentStatus),
			Validations: g.Validations,
		}
	}

	for key, v := range raw.Validations {
		s.Validations[key] = &models.ValidationDef{
			Key:         key,
			Status:      statusOrDefault(v.CurrentStatus),
			Description: v.Description,
			Name:        v.Name,
		}
	}

	return s, nil
}

func parseOperation(name string, node *yaml.Node) (*models.Operation, error) {
	op := &models.Operation{Name: name}

	// Absent or null "type" leaves the operation without types
	if node.Kind == 0 || (node.Kind == yaml.ScalarNode && node.Tag == "!!null") {
		return op, nil
	}
	if node.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%w: gnmi_operations.%s.type is not a mapping (line %d)", common.ErrSchemaParse, name, node.Line)
	}

	for i := 0; i+1 < len(node.Content); i += 2 {
		keyNode, valueNode := node.Content[i], node.Content[i+1]

		var t rawTypeDef
		if err := valueNode.Decode(&t); err != nil {
			return nil, fmt.Errorf("%w: gnmi_operations.%s.type.%s: %v", common.ErrSchemaParse, name, keyNode.Value, err)
		}

		op.Types = append(op.Types, &models.TypeDef{
			Key:      keyNode.Value,
			Status:   statusOrDefault(t.CurrentStatus),
			Sequence: t.Sequence,
		})
	}

	return op, nil
}

func statusOrDefault(status *string) string {
	if status == nil {
		return models.NotSupportedStatus
	}
	return *status
}
