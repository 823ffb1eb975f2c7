// Print command: renders the tree as a drawing.
package main

import (
	"fmt"

	ppds "github.com/shivamMg/ppds/tree"
	"github.com/spf13/cobra"

	"github.com/deadpixelstudio/treemendous/pkg/tree"
)

var (
	flagHorizontal bool
	flagLabel      string
)

var printCmd = &cobra.Command{
	Use:   "print [id]",
	Short: "Draw the tree, or the subtree under a node",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := loadTree()
		if err != nil {
			return err
		}

		start := t.Root()
		if len(args) == 1 {
			if start, err = lookupNode(t, args[0]); err != nil {
				return err
			}
		}
		if start == nil {
			return fmt.Errorf("%w: tree is empty", tree.ErrNotFound)
		}

		root := drawNode{node: start, label: flagLabel}
		if flagHorizontal {
			fmt.Print(ppds.SprintHr(root))
		} else {
			fmt.Print(ppds.Sprint(root))
		}
		return nil
	},
}

func init() {
	printCmd.Flags().BoolVar(&flagHorizontal, "horizontal", false, "draw left to right")
	printCmd.Flags().StringVar(&flagLabel, "label", "", "record field shown next to each id")
}

// drawNode adapts a tree node to the ppds drawing interface.
type drawNode struct {
	node  *tree.Node
	label string
}

func (d drawNode) Data() interface{} {
	if d.label == "" {
		return fmt.Sprint(d.node.ID())
	}
	if v, ok := d.node.Get(d.label); ok {
		return fmt.Sprintf("%v (%v)", d.node.ID(), v)
	}
	return fmt.Sprint(d.node.ID())
}

func (d drawNode) Children() []ppds.Node {
	kids := d.node.Children()
	out := make([]ppds.Node, len(kids))
	for i, k := range kids {
		out[i] = drawNode{node: k, label: d.label}
	}
	return out
}
