// Read-only commands: show, ancestors, descendants, siblings, depth, height.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/deadpixelstudio/treemendous/pkg/tree"
)

// withNode loads the tree, resolves args[0] and hands both to fn.
func withNode(fn func(t *tree.Tree, n *tree.Node) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		t, err := loadTree()
		if err != nil {
			return err
		}
		n, err := lookupNode(t, args[0])
		if err != nil {
			return err
		}
		return fn(t, n)
	}
}

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Display a node with its depth, height and child count",
	Args:  cobra.ExactArgs(1),
	RunE: withNode(func(t *tree.Tree, n *tree.Node) error {
		if flagJSON {
			return printJSON(map[string]any{
				"node":     n.Fields(),
				"depth":    t.Depth(n),
				"height":   t.Height(n),
				"leaf":     t.IsLeaf(n),
				"children": n.Len(),
			})
		}
		printFields(t, n)
		fmt.Printf("%-16s %d\n", "depth:", t.Depth(n))
		fmt.Printf("%-16s %d\n", "height:", t.Height(n))
		fmt.Printf("%-16s %d\n", "children:", n.Len())
		fmt.Printf("%-16s %t\n", "leaf:", t.IsLeaf(n))
		return nil
	}),
}

var ancestorsCmd = &cobra.Command{
	Use:   "ancestors <id>",
	Short: "List a node's ancestors, nearest first",
	Args:  cobra.ExactArgs(1),
	RunE: withNode(func(t *tree.Tree, n *tree.Node) error {
		return printNodes(t.Ancestors(n))
	}),
}

var descendantsCmd = &cobra.Command{
	Use:   "descendants <id>",
	Short: "List every node below a node, breadth first",
	Args:  cobra.ExactArgs(1),
	RunE: withNode(func(t *tree.Tree, n *tree.Node) error {
		return printNodes(t.Descendants(n))
	}),
}

var siblingsCmd = &cobra.Command{
	Use:   "siblings <id>",
	Short: "List the other children of a node's parent",
	Long: `List the other children of a node's parent.

The root has no siblings; asking for them is reported as an error.`,
	Args: cobra.ExactArgs(1),
	RunE: withNode(func(t *tree.Tree, n *tree.Node) error {
		siblings, ok := t.Siblings(n)
		if !ok {
			return fmt.Errorf("%w: node %v is the root and has no siblings", tree.ErrInvalidInput, n.ID())
		}
		return printNodes(siblings)
	}),
}

var depthCmd = &cobra.Command{
	Use:   "depth <id>",
	Short: "Print the number of ancestors of a node",
	Args:  cobra.ExactArgs(1),
	RunE: withNode(func(t *tree.Tree, n *tree.Node) error {
		return printInt("depth", t.Depth(n))
	}),
}

var heightCmd = &cobra.Command{
	Use:   "height <id>",
	Short: "Print the longest downward path from a node, in edges",
	Args:  cobra.ExactArgs(1),
	RunE: withNode(func(t *tree.Tree, n *tree.Node) error {
		return printInt("height", t.Height(n))
	}),
}

func printInt(key string, v int) error {
	if flagJSON {
		return printJSON(map[string]int{key: v})
	}
	fmt.Println(v)
	return nil
}
