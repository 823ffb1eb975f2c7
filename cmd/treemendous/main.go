// Package main provides the treemendous CLI: query and edit a tree stored
// in a JSON, JSONL or SQLite file.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/deadpixelstudio/treemendous/internal/source"
	"github.com/deadpixelstudio/treemendous/internal/sqlite"
	"github.com/deadpixelstudio/treemendous/pkg/tree"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "treemendous:", err)
		os.Exit(exitCode(err))
	}
	os.Exit(exitSuccess)
}

// exitCode maps an error to the process exit status. Bad input and unknown
// nodes are user errors; everything else (I/O, SQLite) is a system error.
func exitCode(err error) int {
	switch {
	case err == nil:
		return exitSuccess
	case errors.Is(err, errUsage),
		errors.Is(err, tree.ErrInvalidInput),
		errors.Is(err, tree.ErrInvalidConfig),
		errors.Is(err, tree.ErrNotFound),
		errors.Is(err, tree.ErrCycle),
		errors.Is(err, source.ErrNoTree),
		errors.Is(err, source.ErrUnknownFormat),
		errors.Is(err, sqlite.ErrInvalidTable):
		return exitUserError
	}
	return exitSysError
}
