package tree

import "fmt"

// Tree owns a root node and the field naming config. It keeps no identifier
// index; lookups walk the tree breadth-first from the root.
type Tree struct {
	cfg  Config
	root *Node
	size int
}

// New creates an empty tree. Empty field names in cfg fall back to the
// defaults. Returns ErrInvalidConfig if the names collide.
func New(cfg Config) (*Tree, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Tree{cfg: cfg.WithDefaults()}, nil
}

// NewFromRecords creates a tree and inserts data in pre-order: each record
// before the records nested under its ChildrenField. A nested record without
// a parent identifier takes the identifier of the record enclosing it, which
// is more lenient than Insert.
func NewFromRecords(data []Record, cfg Config) (*Tree, error) {
	t, err := New(cfg)
	if err != nil {
		return nil, err
	}
	if err := t.build(data); err != nil {
		return nil, err
	}
	return t, nil
}

// build walks the nested input with an explicit stack so deep hierarchies
// do not grow the goroutine stack.
func (t *Tree) build(data []Record) error {
	stack := make([]Record, 0, len(data))
	for i := len(data) - 1; i >= 0; i-- {
		stack = append(stack, data[i])
	}

	for len(stack) > 0 {
		rec := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		n, err := t.Insert(rec)
		if err != nil {
			return err
		}

		kids, err := childRecords(rec[ChildrenField])
		if err != nil {
			return fmt.Errorf("children of %v: %w", n.id, err)
		}
		for i := len(kids) - 1; i >= 0; i-- {
			kid := kids[i]
			if kid != nil && kid[t.cfg.ParentIDField] == nil {
				kid = withField(kid, t.cfg.ParentIDField, n.id)
			}
			stack = append(stack, kid)
		}
	}
	return nil
}

// childRecords converts the value found under ChildrenField into records.
func childRecords(v any) ([]Record, error) {
	switch kids := v.(type) {
	case nil:
		return nil, nil
	case []Record:
		return kids, nil
	case []map[string]any:
		out := make([]Record, len(kids))
		for i, k := range kids {
			out[i] = k
		}
		return out, nil
	case []any:
		out := make([]Record, len(kids))
		for i, k := range kids {
			switch r := k.(type) {
			case Record:
				out[i] = r
			case map[string]any:
				out[i] = r
			default:
				return nil, fmt.Errorf("%w: child record of type %T", ErrInvalidInput, k)
			}
		}
		return out, nil
	}
	return nil, fmt.Errorf("%w: %q holds %T", ErrInvalidInput, ChildrenField, v)
}

// withField returns a shallow copy of rec with field set to value.
func withField(rec Record, field string, value any) Record {
	out := make(Record, len(rec)+1)
	for k, v := range rec {
		out[k] = v
	}
	out[field] = value
	return out
}

// Config returns the tree's effective configuration.
func (t *Tree) Config() Config { return t.cfg }

// Root returns the root node, or nil before the first insert.
func (t *Tree) Root() *Node { return t.root }

// Len returns the number of live nodes.
func (t *Tree) Len() int { return t.size }

// Insert wraps rec into a node and links it under its parent. The first node
// inserted becomes the root whatever its parent identifier says; its parent
// identifier is dropped. Every later record must name an existing parent.
func (t *Tree) Insert(rec Record) (*Node, error) {
	n, err := t.newNode(rec)
	if err != nil {
		return nil, err
	}

	if t.root == nil {
		n.parentID = nil
		t.root = n
		t.size++
		return n, nil
	}

	if n.parentID == nil {
		return nil, fmt.Errorf("%w: record must contain a %q field if root already set",
			ErrInvalidInput, t.cfg.ParentIDField)
	}

	if err := t.attach(n); err != nil {
		return nil, err
	}
	t.size++
	return n, nil
}

// newNode validates rec and copies it into a detached node.
func (t *Tree) newNode(rec Record) (*Node, error) {
	if rec == nil {
		return nil, fmt.Errorf("%w: record must contain some data", ErrInvalidInput)
	}
	id, ok := rec[t.cfg.IDField]
	if !ok {
		return nil, fmt.Errorf("%w: record must contain a %q field", ErrInvalidInput, t.cfg.IDField)
	}
	if !validID(id) {
		return nil, fmt.Errorf("%w: identifier %v (%T) is not a comparable value", ErrInvalidInput, id, id)
	}
	parentID := rec[t.cfg.ParentIDField]
	if parentID != nil && !validID(parentID) {
		return nil, fmt.Errorf("%w: parent identifier %v (%T) is not a comparable value",
			ErrInvalidInput, parentID, parentID)
	}

	payload := make(Record, len(rec))
	for k, v := range rec {
		switch k {
		case t.cfg.IDField, t.cfg.ParentIDField, ChildrenField:
			continue
		}
		payload[k] = v
	}

	return &Node{
		tree:     t,
		id:       id,
		parentID: parentID,
		payload:  payload,
		children: []*Node{},
	}, nil
}

// FindByID returns the first node, in breadth-first order, whose identifier
// equals id. Returns nil when nothing matches.
func (t *Tree) FindByID(id any) *Node {
	if t.root == nil || !validID(id) {
		return nil
	}
	var match *Node
	t.Traverse(t.root, func(n *Node) bool {
		if sameID(n.id, id) {
			match = n
			return true
		}
		return false
	})
	return match
}

// Traverse visits start and everything below it breadth-first, children in
// insertion order. Returning true from visit stops the walk. A removed node
// is still handed to visit, then the walk aborts.
func (t *Tree) Traverse(start *Node, visit func(*Node) bool) {
	if start == nil {
		return
	}
	queue := []*Node{start}
	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]

		if visit(n) || n.removed {
			return
		}
		queue = append(queue, n.children...)
	}
}

// Parent returns the node's parent, or nil for the root.
func (t *Tree) Parent(n *Node) *Node {
	if n == nil || n.removed {
		return nil
	}
	return t.FindByID(n.parentID)
}

// own checks that n is a live handle of this tree.
func (t *Tree) own(n *Node) error {
	switch {
	case n == nil:
		return fmt.Errorf("%w: nil node", ErrInvalidInput)
	case n.tree != t:
		return ErrForeignNode
	case n.removed:
		return ErrNodeRemoved
	}
	return nil
}
