// Package paths resolves the configuration directory and the tree file the
// CLI operates on.
package paths

import (
	"os"
	"path/filepath"
	"runtime"
)

// DefaultTreeFileName is the CWD-relative tree file used when nothing else
// names one.
const DefaultTreeFileName = "tree.json"

// Environment variable names for overrides.
const (
	EnvConfigDir = "TREEMENDOUS_CONFIG_DIR"
	EnvTreeFile  = "TREEMENDOUS_FILE"
)

const appDirName = "treemendous"

// platformDir holds platform-detection functions that can be overridden in tests.
var platformDir = struct {
	homeDir       func() (string, error)
	userConfigDir func() (string, error)
}{
	homeDir:       os.UserHomeDir,
	userConfigDir: os.UserConfigDir,
}

// DefaultConfigDir returns the platform-specific default configuration directory.
//
// Linux:   $XDG_CONFIG_HOME/treemendous (fallback ~/.config/treemendous)
// macOS:   ~/Library/Application Support/treemendous
// Windows: %APPDATA%/treemendous
func DefaultConfigDir() (string, error) {
	switch runtime.GOOS {
	case "linux":
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, appDirName), nil
		}
		home, err := platformDir.homeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, ".config", appDirName), nil
	default:
		dir, err := platformDir.userConfigDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(dir, appDirName), nil
	}
}

// ResolveConfigDir returns the configuration directory following the
// precedence chain: flag > TREEMENDOUS_CONFIG_DIR env > DefaultConfigDir().
func ResolveConfigDir(flag string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if env := os.Getenv(EnvConfigDir); env != "" {
		return filepath.Abs(env)
	}
	return DefaultConfigDir()
}

// ResolveTreeFile returns the tree file following the precedence chain:
// flag > config.yaml value > TREEMENDOUS_FILE env > $(CWD)/tree.json.
func ResolveTreeFile(flag, configYAMLValue string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if configYAMLValue != "" {
		return filepath.Abs(configYAMLValue)
	}
	if env := os.Getenv(EnvTreeFile); env != "" {
		return filepath.Abs(env)
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	return filepath.Join(cwd, DefaultTreeFileName), nil
}
