// Package tree implements a configurable in-memory tree built from flat
// records. Each record carries its own identifier and the identifier of its
// parent; the field names holding those values are set by Config.
//
// A Tree hands out *Node handles. Handles stay valid for the lifetime of the
// tree: removal clears a node (Removed reports true, Fields returns an empty
// Record) instead of invalidating the pointer. Nodes expose no mutable
// structure; every relinking goes through Tree methods.
//
// Lookups are breadth-first traversals from the root. There is no identifier
// index, so duplicate identifiers resolve to the first node found.
//
// A Tree is not safe for concurrent use.
package tree
