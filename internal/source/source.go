// Package source loads and saves trees in the file formats the CLI accepts.
// The format follows the file extension:
//
//	.json             nested export shape (Tree.ExportJSON)
//	.jsonl, .ndjson   one flat record per line
//	.db, .sqlite      flat rows in a SQLite table
package source

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/deadpixelstudio/treemendous/internal/jsonl"
	"github.com/deadpixelstudio/treemendous/internal/sqlite"
	"github.com/deadpixelstudio/treemendous/pkg/tree"
)

// Format identifies a file layout.
type Format string

// Supported formats.
const (
	FormatJSON   Format = "json"
	FormatJSONL  Format = "jsonl"
	FormatSQLite Format = "sqlite"
)

// Source errors.
var (
	ErrUnknownFormat = errors.New("unknown tree file format")

	// ErrNoTree indicates the file (or SQLite table) does not exist yet.
	ErrNoTree = errors.New("no tree stored")
)

// Options carries the tree config and the SQLite table name.
type Options struct {
	Config tree.Config
	Table  string
}

func (o Options) table() string {
	if o.Table == "" {
		return sqlite.DefaultTable
	}
	return o.Table
}

// Detect returns the format implied by path's extension.
func Detect(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".jsonl", ".ndjson":
		return FormatJSONL, nil
	case ".db", ".sqlite", ".sqlite3":
		return FormatSQLite, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, path)
}

// Load reads the tree stored at path. A missing file or table yields an
// error wrapping ErrNoTree.
func Load(path string, opts Options) (*tree.Tree, error) {
	format, err := Detect(path)
	if err != nil {
		return nil, err
	}
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNoTree, path)
		}
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}

	switch format {
	case FormatJSON:
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		return tree.FromJSON(data, opts.Config)
	case FormatJSONL:
		records, err := jsonl.ReadRecords(path)
		if err != nil {
			return nil, err
		}
		return tree.FromFlat(records, opts.Config)
	default:
		store, err := sqlite.Open(path)
		if err != nil {
			return nil, err
		}
		defer store.Close()

		records, err := store.Load(opts.table(), opts.Config)
		if errors.Is(err, sqlite.ErrTableNotFound) {
			return nil, fmt.Errorf("%w: %w", ErrNoTree, err)
		}
		if err != nil {
			return nil, err
		}
		return tree.FromFlat(records, opts.Config)
	}
}

// LoadOrNew is Load, except that a missing tree yields an empty one.
func LoadOrNew(path string, opts Options) (*tree.Tree, error) {
	t, err := Load(path, opts)
	if errors.Is(err, ErrNoTree) {
		return tree.New(opts.Config)
	}
	return t, err
}

// Save writes t to path in the format implied by its extension. File
// formats are replaced atomically; SQLite tables are replaced in one
// transaction.
func Save(path string, t *tree.Tree, opts Options) error {
	format, err := Detect(path)
	if err != nil {
		return err
	}

	switch format {
	case FormatJSON:
		data, err := t.ExportJSON()
		if err != nil {
			return fmt.Errorf("exporting tree: %w", err)
		}
		var pretty bytes.Buffer
		if err := json.Indent(&pretty, data, "", "  "); err != nil {
			return fmt.Errorf("formatting tree: %w", err)
		}
		pretty.WriteByte('\n')
		return jsonl.WriteAtomic(path, func(w *bufio.Writer) error {
			_, err := w.Write(pretty.Bytes())
			return err
		})
	case FormatJSONL:
		return jsonl.WriteRecords(path, t.Records())
	default:
		store, err := sqlite.Open(path)
		if err != nil {
			return err
		}
		defer store.Close()
		return store.Save(opts.table(), t.Config(), t.Records())
	}
}
