// Editing commands: insert, move, remove, prune. Each loads the tree file,
// applies one change and writes the file back.
package main

import (
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/deadpixelstudio/treemendous/internal/source"
	"github.com/deadpixelstudio/treemendous/pkg/tree"
)

var (
	flagGenerateID        bool
	flagRetainDescendants bool
)

var insertCmd = &cobra.Command{
	Use:   "insert <json>",
	Short: "Insert a record into the tree",
	Long: `Insert a record given as a JSON object.

The first record inserted into an empty (or missing) tree file becomes the
root. Every later record must name an existing parent.

Example:
  treemendous insert '{"id":"1","name":"root"}'
  treemendous insert '{"id":"2","parentId":"1","name":"child"}'
  treemendous insert --generate-id '{"parentId":"1","name":"auto"}'`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rec, err := parseRecord(args[0])
		if err != nil {
			return err
		}

		t, err := source.LoadOrNew(treeFile, treeOpts)
		if err != nil {
			return err
		}

		idField := t.Config().IDField
		if _, ok := rec[idField]; !ok && flagGenerateID {
			id, err := uuid.NewV7()
			if err != nil {
				return fmt.Errorf("generate id: %w", err)
			}
			rec[idField] = id.String()
		}

		n, err := t.Insert(rec)
		if err != nil {
			return err
		}
		if err := saveTree(t); err != nil {
			return err
		}
		slog.Debug("inserted node", "id", n.ID(), "parent", n.ParentID())
		return printNodes([]*tree.Node{n})
	},
}

var moveCmd = &cobra.Command{
	Use:   "move <id> <new-parent-id>",
	Short: "Move a node, with its subtree, under another parent",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := loadTree()
		if err != nil {
			return err
		}
		n, err := lookupNode(t, args[0])
		if err != nil {
			return err
		}
		parent, err := lookupNode(t, args[1])
		if err != nil {
			return err
		}

		// The file is rewritten from the root, so a subtree cut off by a
		// cyclic move would be lost.
		if parent == n || t.IsDescendantOf(parent, n) {
			return fmt.Errorf("%w: %v is inside the subtree of %v", tree.ErrCycle, parent.ID(), n.ID())
		}
		if _, err := t.Move(n, parent); err != nil {
			return err
		}
		slog.Debug("moved node", "id", n.ID(), "parent", parent.ID())
		if err := saveTree(t); err != nil {
			return err
		}
		return printNodes([]*tree.Node{n})
	},
}

var removeCmd = &cobra.Command{
	Use:   "remove <id>",
	Short: "Remove a node and its subtree",
	Long: `Remove a node. Its descendants are removed too unless
--retain-descendants is given, in which case its children move up to its
parent.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := loadTree()
		if err != nil {
			return err
		}
		n, err := lookupNode(t, args[0])
		if err != nil {
			return err
		}

		id := n.ID()
		before := t.Len()
		if _, err := t.Remove(n, tree.RemoveOptions{RetainDescendants: flagRetainDescendants}); err != nil {
			return err
		}
		if err := saveTree(t); err != nil {
			return err
		}
		return reportRemoved(id, before-t.Len())
	},
}

var pruneCmd = &cobra.Command{
	Use:   "prune <id>",
	Short: "Remove every descendant of a node, keeping the node",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := loadTree()
		if err != nil {
			return err
		}
		n, err := lookupNode(t, args[0])
		if err != nil {
			return err
		}

		before := t.Len()
		if _, err := t.RemoveDescendants(n); err != nil {
			return err
		}
		if err := saveTree(t); err != nil {
			return err
		}
		return reportRemoved(n.ID(), before-t.Len())
	},
}

func init() {
	insertCmd.Flags().BoolVar(&flagGenerateID, "generate-id", false, "assign a UUID v7 when the record has no id")
	removeCmd.Flags().BoolVar(&flagRetainDescendants, "retain-descendants", false, "promote children to the removed node's parent")
}

func reportRemoved(id any, count int) error {
	if flagJSON {
		return printJSON(map[string]any{"id": id, "removed": count})
	}
	fmt.Printf("removed %d node(s) at %v\n", count, id)
	return nil
}
