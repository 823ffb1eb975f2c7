// Config loading for the treemendous CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/deadpixelstudio/treemendous/pkg/tree"
)

const (
	configFileName = "config"
	configFileType = "yaml"
	configFileExt  = "config.yaml"

	cfgKeyIDField       = "id_field"
	cfgKeyParentIDField = "parent_id_field"
	cfgKeyRejectCycles  = "reject_cycles"
	cfgKeyFile          = "file"
	cfgKeySQLiteTable   = "sqlite_table"
)

// defaultConfigYAML is written to config.yaml on first run.
const defaultConfigYAML = `# treemendous configuration

# Record fields holding the node id and the parent id.
id_field: id
parent_id_field: parentId

# Refuse moves that would put a node under its own subtree.
reject_cycles: false

# Tree file (optional; overridable by --file)
# file: tree.json

# Table used for .db/.sqlite files.
sqlite_table: nodes
`

// loadConfig reads config.yaml from configDir, creating the directory and a
// default file on first run. A missing config.yaml is not an error.
func loadConfig(configDir string) (*viper.Viper, error) {
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return nil, fmt.Errorf("ensure config dir: %w", err)
	}
	if err := ensureDefaultConfigFile(configDir); err != nil {
		return nil, fmt.Errorf("ensure default config: %w", err)
	}

	v := viper.New()
	v.SetDefault(cfgKeyIDField, tree.DefaultIDField)
	v.SetDefault(cfgKeyParentIDField, tree.DefaultParentIDField)
	v.SetDefault(cfgKeyRejectCycles, false)
	v.SetDefault(cfgKeySQLiteTable, "nodes")
	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return v, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	return v, nil
}

// ensureDefaultConfigFile creates config.yaml if it does not exist.
func ensureDefaultConfigFile(configDir string) error {
	path := filepath.Join(configDir, configFileExt)

	_, err := os.Stat(path)
	if err == nil {
		return nil
	}
	if !os.IsNotExist(err) {
		return fmt.Errorf("stat config file: %w", err)
	}
	return os.WriteFile(path, []byte(defaultConfigYAML), 0o644)
}

// bindFlags lets explicitly set field-name flags override config.yaml.
func bindFlags(v *viper.Viper, cmd *cobra.Command) error {
	for key, name := range map[string]string{
		cfgKeyIDField:       "id-field",
		cfgKeyParentIDField: "parent-id-field",
	} {
		f := cmd.Flags().Lookup(name)
		if f == nil || !f.Changed {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("bind --%s: %w", name, err)
		}
	}
	return nil
}

// treeConfig decodes the tree section of the settings and validates it.
func treeConfig(v *viper.Viper) (tree.Config, error) {
	var cfg tree.Config
	if err := v.Unmarshal(&cfg); err != nil {
		return tree.Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return tree.Config{}, err
	}
	return cfg, nil
}
