package tree

import "fmt"

// RemoveOptions controls Remove.
type RemoveOptions struct {
	// RetainDescendants promotes the removed node's direct children to its
	// parent instead of clearing the whole subtree.
	RetainDescendants bool
}

// attach appends n to the children of the node its parent identifier names.
func (t *Tree) attach(n *Node) error {
	parent := t.FindByID(n.parentID)
	if parent == nil {
		return fmt.Errorf("%w: parent node %v could not be found", ErrNotFound, n.parentID)
	}
	parent.children = append(parent.children, n)
	return nil
}

// detach drops n from its parent's children. Nodes without a resolvable
// parent are left alone.
func (t *Tree) detach(n *Node) {
	parent := t.FindByID(n.parentID)
	if parent == nil {
		return
	}
	if i := parent.indexOf(n); i >= 0 {
		parent.children = append(parent.children[:i], parent.children[i+1:]...)
	}
}

// Move relinks n under newParent, appending it after newParent's existing
// children. The root cannot be moved.
//
// Unless Config.RejectCycles is set, moving a node under itself or one of
// its descendants is allowed and leaves that subtree unreachable from the
// root.
func (t *Tree) Move(n, newParent *Node) (*Node, error) {
	if err := t.own(n); err != nil {
		return nil, err
	}
	if err := t.own(newParent); err != nil {
		return nil, fmt.Errorf("new parent: %w", err)
	}
	if n == t.root {
		return nil, fmt.Errorf("%w: the root node cannot be moved", ErrInvalidInput)
	}
	if t.cfg.RejectCycles && (newParent == n || t.IsDescendantOf(newParent, n)) {
		return nil, fmt.Errorf("%w: %v is inside the subtree of %v", ErrCycle, newParent.id, n.id)
	}

	t.detach(n)
	n.parentID = newParent.id
	newParent.children = append(newParent.children, n)
	return n, nil
}

// Remove detaches n from the tree and clears it. With RetainDescendants the
// direct children of n move up to n's parent, keeping their own subtrees;
// otherwise every descendant is cleared as well. The cleared handle is
// returned.
//
// Removing the root empties the tree. With RetainDescendants a root with a
// single child hands the root role to that child; a root with several
// children cannot be removed that way.
func (t *Tree) Remove(n *Node, opts RemoveOptions) (*Node, error) {
	if err := t.own(n); err != nil {
		return nil, err
	}
	if n == t.root {
		return t.removeRoot(opts)
	}

	parent := t.FindByID(n.parentID)
	if parent == nil {
		return nil, fmt.Errorf("%w: parent node %v could not be found", ErrNotFound, n.parentID)
	}

	var doomed []*Node
	if !opts.RetainDescendants {
		doomed = t.Descendants(n)
	}

	if i := parent.indexOf(n); i >= 0 {
		parent.children = append(parent.children[:i], parent.children[i+1:]...)
	}
	if opts.RetainDescendants {
		for _, c := range n.children {
			c.parentID = parent.id
			parent.children = append(parent.children, c)
		}
	}
	for _, d := range doomed {
		d.clear()
	}
	n.clear()
	t.size -= len(doomed) + 1
	return n, nil
}

func (t *Tree) removeRoot(opts RemoveOptions) (*Node, error) {
	root := t.root
	if opts.RetainDescendants {
		switch len(root.children) {
		case 0:
		case 1:
			heir := root.children[0]
			heir.parentID = nil
			t.root = heir
			root.clear()
			t.size--
			return root, nil
		default:
			return nil, fmt.Errorf("%w: cannot promote %d children to root",
				ErrInvalidInput, len(root.children))
		}
	}

	for _, d := range t.Descendants(root) {
		d.clear()
	}
	root.clear()
	t.root = nil
	t.size = 0
	return root, nil
}

// RemoveDescendants clears everything below n and empties its child list.
// n itself keeps its fields.
func (t *Tree) RemoveDescendants(n *Node) (*Node, error) {
	if err := t.own(n); err != nil {
		return nil, err
	}
	doomed := t.Descendants(n)
	for _, d := range doomed {
		d.clear()
	}
	n.children = []*Node{}
	t.size -= len(doomed)
	return n, nil
}
