// Testing Strategy Design Decision:
//
// The cmd/ package contains CLI integration tests that exercise the full stack:
// command parsing -> extension -> tag operations -> store -> files on disk.
//
// The pure operations in internal/tag, internal/store and internal/validate
// have their own unit tests. These tests cover what only the binary can
// show: flags, prompts, exit codes and the files left behind for the shell.

package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	binaryPath string
	buildOnce  sync.Once
	buildErr   error
)

// buildBinary compiles the dtags binary once for all tests.
func buildBinary(t *testing.T) string {
	t.Helper()

	buildOnce.Do(func() {
		// Build to a temp location
		tmpDir, err := os.MkdirTemp("", "dtags-test-bin-*")
		if err != nil {
			buildErr = err
			return
		}

		binaryName := "dtags"
		if os.PathSeparator == '\\' {
			binaryName = "dtags.exe"
		}
		binaryPath = filepath.Join(tmpDir, binaryName)

		// Find project root (parent of cmd/)
		wd := mustGetwd()
		projectRoot := filepath.Dir(wd)

		cmd := exec.Command("go", "build", "-o", binaryPath, ".")
		cmd.Dir = projectRoot
		if out, err := cmd.CombinedOutput(); err != nil {
			buildErr = &buildError{err: err, output: string(out)}
			return
		}
	})

	if buildErr != nil {
		t.Fatalf("failed to build binary: %v", buildErr)
	}
	return binaryPath
}

type buildError struct {
	err    error
	output string
}

func (e *buildError) Error() string {
	return e.err.Error() + "\n" + e.output
}

func mustGetwd() string {
	dir, err := os.Getwd()
	if err != nil {
		panic(err)
	}
	return dir
}

// testEnv holds test environment state.
type testEnv struct {
	t      *testing.T
	home   string // HOME for the child process
	root   string // store directory, ~/.dtags under home
	binary string
	extra  []string // additional environment variables
}

// newTestEnv creates a temporary home directory. The store itself is
// created by the first command that loads it.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	binary := buildBinary(t)
	// Directories are stored with symlinks resolved.
	home, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)

	return &testEnv{
		t:      t,
		home:   home,
		root:   filepath.Join(home, ".dtags"),
		binary: binary,
	}
}

// mkdir creates a directory under home and returns its absolute path.
func (e *testEnv) mkdir(rel string) string {
	e.t.Helper()
	p := filepath.Join(e.home, rel)
	require.NoError(e.t, os.MkdirAll(p, 0o755))
	return p
}

// setenv adds a variable to the child environment.
func (e *testEnv) setenv(kv string) {
	e.extra = append(e.extra, kv)
}

func (e *testEnv) command(args ...string) *exec.Cmd {
	cmd := exec.Command(e.binary, args...)
	cmd.Dir = e.home
	cmd.Env = append([]string{
		"HOME=" + e.home,
		"PATH=" + os.Getenv("PATH"),
		"SHELL=/bin/sh",
		"DTAGS_DIR=",
		"NO_COLOR=1",
	}, e.extra...)
	return cmd
}

// run executes dtags with the given args and returns combined output.
func (e *testEnv) run(args ...string) string {
	e.t.Helper()
	out, err := e.runErr(args...)
	if err != nil {
		e.t.Fatalf("dtags %v failed: %v\noutput: %s", args, err, out)
	}
	return out
}

// runErr executes dtags and returns combined output and any error.
func (e *testEnv) runErr(args ...string) (string, error) {
	e.t.Helper()
	out, err := e.command(args...).CombinedOutput()
	return string(out), err
}

// runStdin executes dtags with stdin input.
func (e *testEnv) runStdin(input string, args ...string) string {
	e.t.Helper()
	out, err := e.runStdinErr(input, args...)
	if err != nil {
		e.t.Fatalf("dtags %v failed: %v\noutput: %s", args, err, out)
	}
	return out
}

// runStdinErr executes dtags with stdin input and returns any error.
func (e *testEnv) runStdinErr(input string, args ...string) (string, error) {
	e.t.Helper()
	cmd := e.command(args...)
	cmd.Stdin = strings.NewReader(input)
	out, err := cmd.CombinedOutput()
	return string(out), err
}

// runJSON executes dtags with -o json and decodes stdout into v.
// Stderr is kept out of the document.
func (e *testEnv) runJSON(v any, args ...string) {
	e.t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := e.command(append(args, "-o", "json")...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	require.NoError(e.t, err, "dtags %v\nstderr: %s", args, stderr.String())
	require.NoError(e.t, json.Unmarshal(stdout.Bytes(), v), "stdout: %s", stdout.String())
}

// exitCode returns the process exit status carried by err.
func exitCode(t *testing.T, err error) int {
	t.Helper()
	var exitErr *exec.ExitError
	require.ErrorAs(t, err, &exitErr)
	return exitErr.ExitCode()
}

// mapping reads the mapping file as a plain map.
func (e *testEnv) mapping() map[string][]string {
	e.t.Helper()
	data, err := os.ReadFile(filepath.Join(e.root, "mapping.json"))
	require.NoError(e.t, err)
	var m map[string][]string
	require.NoError(e.t, json.Unmarshal(data, &m))
	return m
}

// file returns the contents of a file in the store directory.
func (e *testEnv) file(name string) string {
	e.t.Helper()
	data, err := os.ReadFile(filepath.Join(e.root, name))
	require.NoError(e.t, err)
	return string(data)
}

// contains checks if output contains expected string.
func (e *testEnv) contains(output, expected string) {
	e.t.Helper()
	assert.Contains(e.t, output, expected)
}

// equals checks if output equals expected string (trimmed).
func (e *testEnv) equals(output, expected string) {
	e.t.Helper()
	assert.Equal(e.t, strings.TrimSpace(expected), strings.TrimSpace(output))
}
