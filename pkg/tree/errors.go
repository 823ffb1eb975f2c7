package tree

import "errors"

// Input errors.
var (
	ErrInvalidInput  = errors.New("invalid input")
	ErrInvalidConfig = errors.New("invalid tree config")
)

// Lookup errors.
var (
	// ErrNotFound indicates a parent identifier that does not resolve to a
	// node in the tree.
	ErrNotFound = errors.New("node not found")

	// ErrForeignNode indicates a handle owned by a different tree.
	ErrForeignNode = errors.New("node belongs to another tree")
)

// Mutation errors.
var (
	// ErrNodeRemoved indicates an operation on a node cleared by Remove or
	// RemoveDescendants.
	ErrNodeRemoved = errors.New("node has been removed")

	// ErrCycle is returned by Move when Config.RejectCycles is set and the
	// new parent lies inside the moved subtree.
	ErrCycle = errors.New("move would create a cycle")
)
