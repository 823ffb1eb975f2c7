// Shared helpers for treemendous CLI commands.
package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strconv"

	"github.com/deadpixelstudio/treemendous/internal/source"
	"github.com/deadpixelstudio/treemendous/pkg/tree"
)

// errUsage marks command-line mistakes that cobra's own validation does not
// catch, such as malformed JSON arguments.
var errUsage = errors.New("usage error")

// loadTree reads the tree file. The file must exist.
func loadTree() (*tree.Tree, error) {
	t, err := source.Load(treeFile, treeOpts)
	if err != nil {
		return nil, err
	}
	slog.Debug("loaded tree", "file", treeFile, "nodes", t.Len())
	return t, nil
}

// saveTree writes t back to the tree file.
func saveTree(t *tree.Tree) error {
	if err := source.Save(treeFile, t, treeOpts); err != nil {
		return fmt.Errorf("save %s: %w", treeFile, err)
	}
	slog.Debug("saved tree", "file", treeFile, "nodes", t.Len())
	return nil
}

// lookupNode resolves a command-line id. Arguments are matched as strings
// first, then as numbers, since identifiers loaded from JSON may be either.
func lookupNode(t *tree.Tree, arg string) (*tree.Node, error) {
	if n := t.FindByID(arg); n != nil {
		return n, nil
	}
	if f, err := strconv.ParseFloat(arg, 64); err == nil {
		if n := t.FindByID(f); n != nil {
			return n, nil
		}
	}
	return nil, fmt.Errorf("%w: no node with id %q", tree.ErrNotFound, arg)
}

// parseRecord decodes a JSON object argument into a record.
func parseRecord(arg string) (tree.Record, error) {
	var rec tree.Record
	if err := json.Unmarshal([]byte(arg), &rec); err != nil {
		return nil, fmt.Errorf("%w: record must be a JSON object: %v", errUsage, err)
	}
	if rec == nil {
		return nil, fmt.Errorf("%w: record must be a JSON object", errUsage)
	}
	return rec, nil
}

// printJSON writes v as indented JSON to stdout.
func printJSON(v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal JSON: %w", err)
	}
	fmt.Println(string(out))
	return nil
}

// printNodes writes one line per node (id, then the parent id), or a JSON
// array of flat records with --json.
func printNodes(nodes []*tree.Node) error {
	if flagJSON {
		records := make([]tree.Record, len(nodes))
		for i, n := range nodes {
			records[i] = n.Fields()
		}
		return printJSON(records)
	}
	for _, n := range nodes {
		fmt.Printf("%v\t%v\n", n.ID(), formatID(n.ParentID()))
	}
	return nil
}

// printFields writes a node's record as aligned key/value lines, identifier
// fields first.
func printFields(t *tree.Tree, n *tree.Node) {
	cfg := t.Config()
	fields := n.Fields()

	fmt.Printf("%-16s %v\n", cfg.IDField+":", fields[cfg.IDField])
	fmt.Printf("%-16s %v\n", cfg.ParentIDField+":", formatID(fields[cfg.ParentIDField]))

	keys := make([]string, 0, len(fields))
	for k := range fields {
		if k != cfg.IDField && k != cfg.ParentIDField {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Printf("%-16s %v\n", k+":", fields[k])
	}
}

func formatID(id any) string {
	if id == nil {
		return "-"
	}
	return fmt.Sprint(id)
}
