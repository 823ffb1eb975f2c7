// Package integration provides CLI integration tests for treemendous.
package integration

import (
	"bytes"
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

var (
	// treemendousBin is the path to the built treemendous binary.
	treemendousBin string
	// buildErr captures any build error.
	buildErr error
)

// BuildError wraps a build error with output.
type BuildError struct {
	Err    error
	Output string
}

func (e *BuildError) Error() string {
	return e.Err.Error() + ": " + e.Output
}

// FindProjectRoot finds the project root by walking up and looking for go.mod.
func FindProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", os.ErrNotExist
		}
		dir = parent
	}
}

// BuildBinary compiles ./cmd/treemendous into dir and records the result for
// NewTestEnv.
func BuildBinary(projectRoot, dir string) error {
	binPath := filepath.Join(dir, "treemendous")
	cmd := exec.Command("go", "build", "-o", binPath, "./cmd/treemendous")
	cmd.Dir = projectRoot
	if output, err := cmd.CombinedOutput(); err != nil {
		buildErr = &BuildError{Err: err, Output: string(output)}
		return buildErr
	}
	treemendousBin = binPath
	return nil
}

// TestEnv is an isolated config directory and tree file.
type TestEnv struct {
	t         *testing.T
	TempDir   string
	ConfigDir string
	TreeFile  string
}

// NewTestEnv creates an environment whose tree file has the given name
// (the extension selects the format).
func NewTestEnv(t *testing.T, treeFileName string) *TestEnv {
	t.Helper()

	if buildErr != nil {
		t.Fatalf("failed to build treemendous: %v", buildErr)
	}
	if treemendousBin == "" {
		t.Fatal("treemendous binary not built")
	}

	tempDir := t.TempDir()
	configDir := filepath.Join(tempDir, "config")
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		t.Fatalf("failed to create config dir: %v", err)
	}

	return &TestEnv{
		t:         t,
		TempDir:   tempDir,
		ConfigDir: configDir,
		TreeFile:  filepath.Join(tempDir, treeFileName),
	}
}

// WriteConfig replaces config.yaml in the environment's config directory.
func (e *TestEnv) WriteConfig(content string) {
	e.t.Helper()
	if err := os.WriteFile(filepath.Join(e.ConfigDir, "config.yaml"), []byte(content), 0o644); err != nil {
		e.t.Fatalf("failed to write config: %v", err)
	}
}

// WriteTree replaces the tree file with content.
func (e *TestEnv) WriteTree(content string) {
	e.t.Helper()
	if err := os.WriteFile(e.TreeFile, []byte(content), 0o644); err != nil {
		e.t.Fatalf("failed to write tree file: %v", err)
	}
}

// CmdResult holds the result of a treemendous command execution.
type CmdResult struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// Lines returns stdout split into non-empty lines.
func (r CmdResult) Lines() []string {
	var lines []string
	for _, l := range strings.Split(strings.TrimSpace(r.Stdout), "\n") {
		if l != "" {
			lines = append(lines, l)
		}
	}
	return lines
}

// Run executes treemendous against the environment's config dir and tree
// file. Returns stdout, stderr and the exit code.
func (e *TestEnv) Run(args ...string) CmdResult {
	e.t.Helper()
	allArgs := append([]string{"--config-dir", e.ConfigDir, "--file", e.TreeFile}, args...)
	return e.exec(nil, allArgs...)
}

// RunRaw executes treemendous with args unchanged, adding env to a cleaned
// environment.
func (e *TestEnv) RunRaw(env []string, args ...string) CmdResult {
	e.t.Helper()
	return e.exec(env, args...)
}

func (e *TestEnv) exec(env []string, args ...string) CmdResult {
	e.t.Helper()
	cmd := exec.Command(treemendousBin, args...)
	cmd.Env = append(cleanEnv(), env...)
	cmd.Dir = e.TempDir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	exitCode := 0
	if err := cmd.Run(); err != nil {
		exitErr, ok := err.(*exec.ExitError)
		if !ok {
			e.t.Fatalf("failed to run treemendous: %v", err)
		}
		exitCode = exitErr.ExitCode()
	}
	return CmdResult{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		ExitCode: exitCode,
	}
}

// MustRun executes treemendous and fails the test on a non-zero exit.
func (e *TestEnv) MustRun(args ...string) CmdResult {
	e.t.Helper()
	result := e.Run(args...)
	if result.ExitCode != 0 {
		e.t.Fatalf("treemendous %v failed with exit code %d:\nstdout: %s\nstderr: %s",
			args, result.ExitCode, result.Stdout, result.Stderr)
	}
	return result
}

// ParseJSON parses JSON output into the target type.
func ParseJSON[T any](t *testing.T, jsonStr string) T {
	t.Helper()
	var result T
	if err := json.Unmarshal([]byte(jsonStr), &result); err != nil {
		t.Fatalf("failed to parse JSON %q: %v", jsonStr, err)
	}
	return result
}

// cleanEnv returns os.Environ() without TREEMENDOUS_* and XDG_* variables.
func cleanEnv() []string {
	var env []string
	for _, e := range os.Environ() {
		if strings.HasPrefix(e, "TREEMENDOUS_") || strings.HasPrefix(e, "XDG_") {
			continue
		}
		env = append(env, e)
	}
	return env
}
