package app

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/ternarybob/yangreport/internal/common"
)

// ResultInput is a compliance tree document and the execution log sharing its prefix
type ResultInput struct {
	Prefix     string
	ResultPath string
	LogPath    string // empty when no log matches
}

// Inputs are the files found in a report directory, sorted by file name
type Inputs struct {
	Dir       string
	Results   []ResultInput
	Testcases []string
	Logs      []string
}

// Discover matches the configured patterns against the regular files of dir.
// Logs are paired with result documents by the text before the pattern suffix.
func Discover(ctx context.Context, dir string, patterns common.InputsConfig) (*Inputs, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("directory %s: %w", dir, common.ErrInputNotFound)
		}
		return nil, fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	inputs := &Inputs{Dir: dir}
	logsByPrefix := make(map[string]string)
	var resultNames []string

	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		name := entry.Name()
		full := filepath.Join(dir, name)

		if matches(patterns.ResultPattern, name) {
			resultNames = append(resultNames, name)
		}
		if matches(patterns.TestcasePattern, name) {
			inputs.Testcases = append(inputs.Testcases, full)
		}
		if matches(patterns.LogPattern, name) {
			inputs.Logs = append(inputs.Logs, full)
			logsByPrefix[Prefix(name, patterns.LogPattern)] = full
		}
	}

	for _, name := range resultNames {
		prefix := Prefix(name, patterns.ResultPattern)
		inputs.Results = append(inputs.Results, ResultInput{
			Prefix:     prefix,
			ResultPath: filepath.Join(dir, name),
			LogPath:    logsByPrefix[prefix],
		})
	}

	return inputs, nil
}

// Empty reports whether no result document of either kind was found
func (in *Inputs) Empty() bool {
	return len(in.Results) == 0 && len(in.Testcases) == 0
}

func matches(pattern, name string) bool {
	if pattern == "" {
		return false
	}
	ok, _ := doublestar.Match(pattern, name)
	return ok
}

// Prefix strips the literal suffix that follows the last wildcard of pattern.
// "system-tc_result.json" with "*-tc_result.json" yields "system".
func Prefix(name, pattern string) string {
	suffix := pattern
	if i := strings.LastIndexAny(pattern, "*?]}"); i >= 0 {
		suffix = pattern[i+1:]
	}
	return strings.TrimSuffix(name, suffix)
}
