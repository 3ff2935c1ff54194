// Package hierarchy folds an aggregated report into a prefix tree keyed by
// cumulative path segments.
package hierarchy

import (
	"strings"

	"github.com/ternarybob/yangreport/internal/models"
)

const arrowMarker = "->"

// Build returns the root of the tree for every report path.
//
// Intermediate nodes carry no record ("NA"); the node where a path ends
// carries its record. A later path passing through a node resets it to "NA",
// a later path ending at it sets its record. Keys containing "->" are
// attached to the existing node of their pre-arrow prefix when there is one.
func Build(report *models.AggregatedReport) *models.HierarchyNode {
	root := models.NewHierarchyNode("")
	if report == nil {
		return root
	}

	for pair := report.Paths.Oldest(); pair != nil; pair = pair.Next() {
		key, record := pair.Key, pair.Value
		if key == models.SummaryKey {
			continue
		}

		if strings.Contains(key, arrowMarker) {
			base, _, _ := strings.Cut(key, arrowMarker)
			if node := find(root, strings.TrimSpace(base)); node != nil {
				node.Data = record
				continue
			}
		}

		insert(root, key, record)
	}

	return root
}

// Find returns the node for a slash-separated path, or nil
func Find(root *models.HierarchyNode, path string) *models.HierarchyNode {
	return find(root, path)
}

func find(root *models.HierarchyNode, path string) *models.HierarchyNode {
	components := segments(path)
	if len(components) == 0 {
		return nil
	}

	current := root
	accumulated := ""
	for _, c := range components {
		accumulated = join(accumulated, c)
		next, ok := current.Child(accumulated)
		if !ok {
			return nil
		}
		current = next
	}
	return current
}

func insert(root *models.HierarchyNode, key string, record *models.PathRecord) {
	components := segments(strings.TrimSpace(key))

	current := root
	accumulated := ""
	for i, c := range components {
		accumulated = join(accumulated, c)
		next, ok := current.Child(accumulated)
		if !ok {
			next = models.NewHierarchyNode(accumulated)
			current.Children.Set(accumulated, next)
		}

		if i == len(components)-1 {
			next.Data = record
		} else {
			next.Data = nil
		}
		current = next
	}
}

func segments(path string) []string {
	parts := strings.Split(path, "/")
	out := parts[:0]
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func join(prefix, component string) string {
	if prefix == "" {
		return component
	}
	return prefix + "/" + component
}
