// Root command for the treemendous CLI.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/deadpixelstudio/treemendous/internal/paths"
	"github.com/deadpixelstudio/treemendous/internal/source"
	"github.com/deadpixelstudio/treemendous/pkg/treemendous"
)

// Global flag values.
var (
	flagConfigDir     string
	flagFile          string
	flagJSON          bool
	flagVerbose       bool
	flagIDField       string
	flagParentIDField string
)

// Resolved by PersistentPreRunE for all subcommands.
var (
	treeFile string
	treeOpts source.Options
)

var rootCmd = &cobra.Command{
	Use:   "treemendous",
	Short: "Query and edit trees built from flat id/parent records",
	Long: `treemendous loads a tree from a file, runs one query or edit against it,
and writes edits back to the same file.

The file format follows the extension: .json holds the nested export shape,
.jsonl holds one flat record per line, .db/.sqlite holds flat rows in a
SQLite table.`,
	Version:       treemendous.Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		setupLogging()

		configDir, err := paths.ResolveConfigDir(flagConfigDir)
		if err != nil {
			return err
		}

		v, err := loadConfig(configDir)
		if err != nil {
			return err
		}
		if err := bindFlags(v, cmd); err != nil {
			return err
		}

		cfg, err := treeConfig(v)
		if err != nil {
			return err
		}
		treeOpts = source.Options{Config: cfg, Table: v.GetString(cfgKeySQLiteTable)}

		treeFile, err = paths.ResolveTreeFile(flagFile, v.GetString(cfgKeyFile))
		if err != nil {
			return err
		}
		slog.Debug("resolved settings",
			"config_dir", configDir,
			"file", treeFile,
			"id_field", cfg.IDField,
			"parent_id_field", cfg.ParentIDField)
		return nil
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flagConfigDir, "config-dir", "", "configuration directory (default: $XDG_CONFIG_HOME/treemendous)")
	pf.StringVarP(&flagFile, "file", "f", "", "tree file (default: $(CWD)/tree.json)")
	pf.BoolVar(&flagJSON, "json", false, "output as JSON")
	pf.BoolVarP(&flagVerbose, "verbose", "v", false, "log debug details to stderr")
	pf.StringVar(&flagIDField, "id-field", "", "record field holding the node id (default: id)")
	pf.StringVar(&flagParentIDField, "parent-id-field", "", "record field holding the parent id (default: parentId)")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(printCmd)
	rootCmd.AddCommand(ancestorsCmd)
	rootCmd.AddCommand(descendantsCmd)
	rootCmd.AddCommand(siblingsCmd)
	rootCmd.AddCommand(depthCmd)
	rootCmd.AddCommand(heightCmd)
	rootCmd.AddCommand(insertCmd)
	rootCmd.AddCommand(moveCmd)
	rootCmd.AddCommand(removeCmd)
	rootCmd.AddCommand(pruneCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(convertCmd)

	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return fmt.Errorf("%w: %v", errUsage, err)
	})
	for _, c := range rootCmd.Commands() {
		if c.Args != nil {
			c.Args = usageArgs(c.Args)
		}
	}
}

// usageArgs marks argument validation failures as usage errors.
func usageArgs(validate cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := validate(cmd, args); err != nil {
			return fmt.Errorf("%w: %v", errUsage, err)
		}
		return nil
	}
}

// setupLogging installs a text slog handler on stderr. Only warnings show
// unless --verbose is set.
func setupLogging() {
	level := slog.LevelWarn
	if flagVerbose {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
}
