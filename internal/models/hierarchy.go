package models

import (
	"encoding/json"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// HierarchyDataKey holds a node's record ("NA" on intermediate nodes)
const HierarchyDataKey = "_data"

// HierarchyNode is a prefix-tree node keyed by cumulative path ("system", "system/aaa", ...)
type HierarchyNode struct {
	Key      string
	Data     *PathRecord // nil renders as "NA"
	Children *orderedmap.OrderedMap[string, *HierarchyNode]
}

// NewHierarchyNode returns a node with no record
func NewHierarchyNode(key string) *HierarchyNode {
	return &HierarchyNode{
		Key:      key,
		Children: orderedmap.New[string, *HierarchyNode](),
	}
}

// IsRoot reports whether this is the unnamed root node
func (n *HierarchyNode) IsRoot() bool { return n.Key == "" }

// Child returns a direct child by cumulative key
func (n *HierarchyNode) Child(key string) (*HierarchyNode, bool) {
	return n.Children.Get(key)
}

// MarshalJSON writes {"_data": ..., "<child>": {...}}. The root has no _data member.
func (n *HierarchyNode) MarshalJSON() ([]byte, error) {
	om := orderedmap.New[string, any]()
	if !n.IsRoot() {
		if n.Data == nil {
			om.Set(HierarchyDataKey, NA)
		} else {
			om.Set(HierarchyDataKey, n.Data)
		}
	}
	for pair := n.Children.Oldest(); pair != nil; pair = pair.Next() {
		om.Set(pair.Key, pair.Value)
	}
	return json.Marshal(om)
}
