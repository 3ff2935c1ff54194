package aggregator

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/ternarybob/yangreport/internal/common"
)

var (
	// Last "<-" that is followed by a "->"; the segment between them is the path
	pathSegmentRe = regexp.MustCompile(`.*<-\s*(.*?)\s*->`)
	predicateRe   = regexp.MustCompile(`\[.*?\]`)
	instanceRe    = regexp.MustCompile(`_\d+$`)
)

const dependenciesMarker = "/dependencies"

// ExtractPath returns the resource path embedded in a raw test name:
// the text between "<-" and "->", predicates removed, cut at "/dependencies".
func ExtractPath(testName string) (string, error) {
	m := pathSegmentRe.FindStringSubmatch(testName)
	if m == nil {
		return "", fmt.Errorf("%q: %w", testName, common.ErrUnmappedTestName)
	}

	path := predicateRe.ReplaceAllString(m[1], "")
	if i := strings.Index(path, dependenciesMarker); i >= 0 {
		path = path[:i]
	}
	if path == "" {
		return "", fmt.Errorf("%q: empty path segment: %w", testName, common.ErrUnmappedTestName)
	}
	return path, nil
}

// TestLabel returns the first space-separated word of a test name
func TestLabel(testName string) string {
	label, _, _ := strings.Cut(testName, " ")
	return label
}

// InstanceKey names the nth occurrence (1-based) of a type under one path:
// ONCE, ONCE_1, ONCE_2, ...
func InstanceKey(typeKey string, n int) string {
	if n <= 1 {
		return typeKey
	}
	return fmt.Sprintf("%s_%d", typeKey, n-1)
}

// BaseTypeKey strips a trailing _<digits> instance suffix
func BaseTypeKey(key string) string {
	return instanceRe.ReplaceAllString(key, "")
}
