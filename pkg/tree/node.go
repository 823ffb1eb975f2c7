package tree

import (
	"encoding/json"
	"fmt"
)

// Record is the edge shape of a node: a flat mapping of field names to
// values. Nested input and exported output carry child records under
// ChildrenField.
type Record map[string]any

// Node is a handle to one element of a Tree. The identifier, parent
// identifier and child list live in fixed slots; every other record field is
// kept as payload. Handles are only created by Tree.Insert and are never
// copied, so two handles are the same node exactly when the pointers match.
type Node struct {
	tree     *Tree
	id       any
	parentID any
	payload  Record
	children []*Node
	removed  bool
}

// ID returns the node identifier, or nil for a removed node.
func (n *Node) ID() any { return n.id }

// ParentID returns the parent identifier. It is nil for the root and for
// removed nodes.
func (n *Node) ParentID() any { return n.parentID }

// Removed reports whether the node was cleared by Remove or
// RemoveDescendants.
func (n *Node) Removed() bool { return n.removed }

// Len returns the number of direct children.
func (n *Node) Len() int { return len(n.children) }

// Children returns the direct children in insertion order. The slice is a
// copy; reordering it does not affect the tree.
func (n *Node) Children() []*Node {
	out := make([]*Node, len(n.children))
	copy(out, n.children)
	return out
}

// Get returns the value stored under field. The configured identifier and
// parent identifier names resolve to the node's slots.
func (n *Node) Get(field string) (any, bool) {
	if n.removed {
		return nil, false
	}
	cfg := n.tree.cfg
	switch field {
	case cfg.IDField:
		return n.id, true
	case cfg.ParentIDField:
		return n.parentID, true
	case ChildrenField:
		return n.Children(), true
	}
	v, ok := n.payload[field]
	return v, ok
}

// Fields returns a shallow copy of the node's record: payload plus the
// identifier and parent identifier under the configured names. A removed
// node yields an empty Record.
func (n *Node) Fields() Record {
	if n.removed {
		return Record{}
	}
	out := make(Record, len(n.payload)+2)
	for k, v := range n.payload {
		out[k] = v
	}
	out[n.tree.cfg.IDField] = n.id
	out[n.tree.cfg.ParentIDField] = n.parentID
	return out
}

// Set stores a payload field. Identifier, parent identifier and children
// are structural and can only change through Tree methods.
func (n *Node) Set(field string, value any) error {
	if n.removed {
		return ErrNodeRemoved
	}
	cfg := n.tree.cfg
	if field == cfg.IDField || field == cfg.ParentIDField || field == ChildrenField {
		return fmt.Errorf("%w: field %q is structural", ErrInvalidInput, field)
	}
	n.payload[field] = value
	return nil
}

// MarshalJSON encodes the node and its subtree in the nested export shape.
func (n *Node) MarshalJSON() ([]byte, error) {
	if n.removed {
		return []byte("{}"), nil
	}
	return json.Marshal(exportRecord(n))
}

// clear turns n into a tombstone. The owner pointer is kept so later calls
// report ErrNodeRemoved rather than ErrForeignNode.
func (n *Node) clear() {
	n.removed = true
	n.id = nil
	n.parentID = nil
	n.payload = Record{}
	n.children = nil
}

// indexOf returns the position of child among n's children, or -1.
func (n *Node) indexOf(child *Node) int {
	for i, c := range n.children {
		if c == child {
			return i
		}
	}
	return -1
}
