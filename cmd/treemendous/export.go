// Export and convert commands.
package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/deadpixelstudio/treemendous/internal/source"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Print the tree in the nested JSON shape",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := loadTree()
		if err != nil {
			return err
		}
		out, err := t.ExportJSON()
		if err != nil {
			return err
		}
		fmt.Println(string(out))
		return nil
	},
}

var convertCmd = &cobra.Command{
	Use:   "convert <src> <dst>",
	Short: "Copy a tree between formats",
	Long: `Copy a tree from one file to another. Formats follow the extensions
(.json, .jsonl, .db); the destination is replaced.

Example:
  treemendous convert org.jsonl org.json
  treemendous convert org.json org.db`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		src, dst := args[0], args[1]

		t, err := source.Load(src, treeOpts)
		if err != nil {
			return err
		}
		if err := source.Save(dst, t, treeOpts); err != nil {
			return fmt.Errorf("save %s: %w", dst, err)
		}
		slog.Debug("converted tree", "from", src, "to", dst, "nodes", t.Len())
		if !flagJSON {
			fmt.Printf("wrote %d node(s) to %s\n", t.Len(), dst)
		}
		return nil
	},
}
