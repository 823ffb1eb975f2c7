package tree

// Ancestors returns the chain of parents of n, nearest first, ending at the
// root. The root itself has no ancestors.
func (t *Tree) Ancestors(n *Node) []*Node {
	if t.own(n) != nil {
		return nil
	}
	var ancestors []*Node
	for cur := n; ; {
		parent := t.FindByID(cur.parentID)
		if parent == nil {
			break
		}
		ancestors = append(ancestors, parent)
		cur = parent
	}
	return ancestors
}

// IsAncestorOf reports whether candidate lies on the path from n to the root.
func (t *Tree) IsAncestorOf(candidate, n *Node) bool {
	return contains(t.Ancestors(n), candidate)
}

// Descendants returns every node below n in breadth-first order, excluding n.
func (t *Tree) Descendants(n *Node) []*Node {
	if t.own(n) != nil {
		return nil
	}
	var descendants []*Node
	t.Traverse(n, func(v *Node) bool {
		descendants = append(descendants, v.children...)
		return false
	})
	return descendants
}

// IsDescendantOf reports whether candidate lies below n. The root is never a
// descendant.
func (t *Tree) IsDescendantOf(candidate, n *Node) bool {
	if candidate == nil || candidate == t.root {
		return false
	}
	return contains(t.Descendants(n), candidate)
}

// Siblings returns the other children of n's parent. ok is false for the
// root, which has no siblings by definition, and for nodes whose parent
// cannot be resolved.
func (t *Tree) Siblings(n *Node) (siblings []*Node, ok bool) {
	if t.own(n) != nil || n == t.root {
		return nil, false
	}
	parent := t.FindByID(n.parentID)
	if parent == nil {
		return nil, false
	}
	siblings = make([]*Node, 0, len(parent.children))
	for _, c := range parent.children {
		if !sameID(c.id, n.id) {
			siblings = append(siblings, c)
		}
	}
	return siblings, true
}

// IsSiblingOf reports whether candidate and n share a parent. The root is
// never a sibling.
func (t *Tree) IsSiblingOf(candidate, n *Node) bool {
	if candidate == nil || candidate == t.root {
		return false
	}
	siblings, ok := t.Siblings(candidate)
	return ok && contains(siblings, n)
}

// IsLeaf reports whether n is a live node with no children. Removed nodes
// are not leaves.
func (t *Tree) IsLeaf(n *Node) bool {
	return n != nil && !n.removed && len(n.children) == 0
}

// Depth returns the number of ancestors of n; the root has depth 0.
func (t *Tree) Depth(n *Node) int {
	return len(t.Ancestors(n))
}

// Height returns the number of edges on the longest downward path from n to
// a leaf. That is the largest depth(d) - depth(n) over all descendants d,
// found here by counting breadth-first levels below n.
func (t *Tree) Height(n *Node) int {
	if t.own(n) != nil {
		return 0
	}
	height := 0
	level := n.children
	for len(level) > 0 {
		height++
		var next []*Node
		for _, c := range level {
			next = append(next, c.children...)
		}
		level = next
	}
	return height
}

func contains(nodes []*Node, n *Node) bool {
	if n == nil {
		return false
	}
	for _, v := range nodes {
		if v == n {
			return true
		}
	}
	return false
}
