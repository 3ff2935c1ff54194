// Package templates provides the embedded HTML report templates with user override support.
// Templates are loaded with resolution order:
// 1. User override: templatesDir/{name}.html
// 2. Embedded default: internal/templates/{name}.html
package templates

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ternarybob/yangreport/internal/common"
)

//go:embed *.html
var fs embed.FS

const extension = ".html"

// Report template names
const (
	YangTree     = "yang_tree_report"
	Testcase     = "testcase_report"
	LogReport    = "log_report"
	Consolidated = "consolidated_report"
)

// Source is a resolved template
type Source struct {
	Name     string
	Content  string
	Override bool   // loaded from the templates directory
	Path     string // file path of an override
}

// GetTemplate loads a template by name with resolution order:
// 1. User override: templatesDir/{name}.html
// 2. Embedded default: internal/templates/{name}.html
func GetTemplate(name string, templatesDir string) (*Source, error) {
	if templatesDir != "" {
		userPath := filepath.Join(templatesDir, name+extension)
		if data, err := os.ReadFile(userPath); err == nil {
			return &Source{Name: name, Content: string(data), Override: true, Path: userPath}, nil
		}
	}

	data, err := fs.ReadFile(name + extension)
	if err != nil {
		return nil, fmt.Errorf("template '%s' (checked user override and embedded): %w", name, common.ErrTemplateNotFound)
	}
	return &Source{Name: name, Content: string(data)}, nil
}

// GetEmbeddedTemplate loads raw content from embedded templates (for testing)
func GetEmbeddedTemplate(name string) ([]byte, error) {
	return fs.ReadFile(name + extension)
}

// ListEmbeddedTemplates returns names of all embedded templates
func ListEmbeddedTemplates() ([]string, error) {
	entries, err := fs.ReadDir(".")
	if err != nil {
		return nil, err
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if name, ok := strings.CutSuffix(entry.Name(), extension); ok {
			names = append(names, name)
		}
	}
	return names, nil
}
