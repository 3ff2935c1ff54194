// Package logindex maps test names to the execution-log blocks recorded for them.
package logindex

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/ternarybob/yangreport/internal/common"
	"github.com/ternarybob/yangreport/internal/models"
)

// BlockMarker separates test blocks in an execution log
const BlockMarker = "[TESTCASE-BEGIN]"

const headerArrow = "->"

// Index is an in-memory LogIndex built from one or more execution logs
type Index struct {
	records map[string]*models.LogRecord
}

// New returns an empty index
func New() *Index {
	return &Index{records: make(map[string]*models.LogRecord)}
}

// Load reads and indexes a log file
func Load(path string) (*Index, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", common.ErrInputNotFound, path)
		}
		return nil, fmt.Errorf("failed to read log %s: %w", path, err)
	}
	return Parse(string(data)), nil
}

// Parse indexes every block of a log. Blocks without a recognisable header
// are ignored; a later block with the same key replaces the earlier one.
func Parse(content string) *Index {
	idx := New()
	for _, block := range strings.Split(content, BlockMarker) {
		block = strings.TrimSpace(block)
		if block == "" {
			continue
		}
		if key, ok := blockKey(strings.Split(block, "\n")); ok {
			idx.records[key] = &models.LogRecord{Path: key, Data: block}
		}
	}
	return idx
}

// blockKey finds the test name in a block header. The framed form is
//
//	+-------------------+
//	| TC_1 -> test name |
//	+-------------------+
//
// Otherwise the first line bounded by '|' is used.
func blockKey(lines []string) (string, bool) {
	for i := range lines {
		lines[i] = strings.TrimRight(lines[i], "\r")
	}

	if len(lines) >= 3 &&
		strings.HasPrefix(lines[0], "+") &&
		strings.HasPrefix(lines[1], "|") &&
		strings.HasPrefix(lines[2], "+") {
		header := strings.TrimSpace(strings.Trim(lines[1], "|"))
		if _, after, found := strings.Cut(header, headerArrow); found {
			return strings.TrimSpace(after), true
		}
		return header, true
	}

	for _, line := range lines {
		if len(line) >= 2 && strings.HasPrefix(line, "|") && strings.HasSuffix(line, "|") {
			header := strings.TrimSpace(strings.Trim(line, "|"))
			parts := strings.Split(header, headerArrow)
			if len(parts) >= 2 {
				return strings.TrimSpace(parts[1]), true
			}
			return header, true
		}
	}

	return "", false
}

// Lookup returns the block recorded for a raw test name
func (i *Index) Lookup(testName string) (*models.LogRecord, bool) {
	if i == nil {
		return nil, false
	}
	rec, ok := i.records[testName]
	return rec, ok
}

// Len returns the number of indexed blocks
func (i *Index) Len() int {
	if i == nil {
		return 0
	}
	return len(i.records)
}

// Merge copies every record of other into i. Records of other win on key clashes.
func (i *Index) Merge(other *Index) {
	if other == nil {
		return
	}
	for k, v := range other.records {
		i.records[k] = v
	}
}
