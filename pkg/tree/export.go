package tree

import (
	"encoding/json"
	"fmt"
)

// ExportJSON serializes the tree in the nested shape NewFromRecords accepts:
// a one-element array holding the root, children nested under
// ChildrenField, field names as configured. An empty tree exports as [].
func (t *Tree) ExportJSON() ([]byte, error) {
	if t.root == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]Record{exportRecord(t.root)})
}

// FromJSON builds a tree from the output of ExportJSON, or any JSON array of
// records in the same nested shape.
func FromJSON(data []byte, cfg Config) (*Tree, error) {
	var records []Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("%w: decoding tree JSON: %v", ErrInvalidInput, err)
	}
	return NewFromRecords(records, cfg)
}

// Records lists every live node's fields in breadth-first order, without
// children. FromFlat rebuilds the same tree from the result.
func (t *Tree) Records() []Record {
	records := make([]Record, 0, t.size)
	t.Traverse(t.root, func(n *Node) bool {
		records = append(records, n.Fields())
		return false
	})
	return records
}

// exportRecord builds the nested record for n and its subtree. Child records
// are filled in through a work stack; the maps are shared, so the top record
// is complete once the stack drains.
func exportRecord(n *Node) Record {
	type frame struct {
		node *Node
		rec  Record
	}

	top := n.Fields()
	stack := []frame{{node: n, rec: top}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		kids := make([]Record, 0, len(f.node.children))
		for _, c := range f.node.children {
			rec := c.Fields()
			kids = append(kids, rec)
			stack = append(stack, frame{node: c, rec: rec})
		}
		f.rec[ChildrenField] = kids
	}
	return top
}
