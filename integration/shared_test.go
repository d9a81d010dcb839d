//go:build basic || database

// Package integration contains end-to-end tests that drive the built gitactivity
// binary against throwaway git repositories.
// These tests are excluded from normal test runs due to build tags.
// To run these tests: go test -tags basic ./integration
// With database backends (needs Docker): go test -tags database ./integration
package integration

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

var (
	// sharedBinaryPath holds the path to a gitactivity binary built once for all tests.
	sharedBinaryPath string

	// buildOnce ensures we only build the binary once.
	buildOnce sync.Once

	// buildMutex protects the shared binary path.
	buildMutex sync.Mutex

	// tempDir holds the temp directory for cleanup.
	tempDir string
)

// TestMain handles setup and cleanup for all integration tests.
func TestMain(m *testing.M) {
	code := m.Run()

	// Cleanup the shared binary after all tests
	if tempDir != "" {
		_ = os.RemoveAll(tempDir)
	}

	os.Exit(code)
}

// getBinary returns the path to the gitactivity binary, building it once if needed.
func getBinary() string {
	buildMutex.Lock()
	defer buildMutex.Unlock()

	buildOnce.Do(func() {
		var err error
		tempDir, err = os.MkdirTemp("", "gitactivity-integration-*")
		if err != nil {
			panic(fmt.Sprintf("failed to create temp dir: %v", err))
		}

		binaryPath := filepath.Join(tempDir, "gitactivity")
		buildCmd := exec.Command("go", "build", "-o", binaryPath, ".")
		buildCmd.Dir = ".." // Build from parent directory (project root)
		if out, err := buildCmd.CombinedOutput(); err != nil {
			panic(fmt.Sprintf("failed to build gitactivity: %v\n%s", err, out))
		}

		sharedBinaryPath = binaryPath
	})

	return sharedBinaryPath
}

// runResult captures one invocation of the binary.
type runResult struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// runBinary runs gitactivity in dir with extra environment entries.
func runBinary(t *testing.T, dir string, env []string, args ...string) runResult {
	t.Helper()
	cmd := exec.Command(getBinary(), args...)
	cmd.Dir = dir
	cmd.Env = append(os.Environ(), env...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	res := runResult{Stdout: stdout.String(), Stderr: stderr.String()}
	if exitErr, ok := err.(*exec.ExitError); ok {
		res.ExitCode = exitErr.ExitCode()
	} else {
		require.NoError(t, err)
	}
	return res
}

// git runs a git command in dir with deterministic identity settings.
func git(t *testing.T, dir string, env []string, args ...string) string {
	t.Helper()
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	cmd.Env = append(os.Environ(),
		"GIT_AUTHOR_NAME=Test", "GIT_AUTHOR_EMAIL=test@example.com",
		"GIT_COMMITTER_NAME=Test", "GIT_COMMITTER_EMAIL=test@example.com",
		"GIT_CONFIG_NOSYSTEM=1", "HOME="+dir,
	)
	cmd.Env = append(cmd.Env, env...)
	out, err := cmd.CombinedOutput()
	require.NoError(t, err, "git %s: %s", strings.Join(args, " "), out)
	return strings.TrimSpace(string(out))
}

// writeLines writes numbered lines with the given prefix.
func writeLines(t *testing.T, path, prefix string, from, to int) {
	t.Helper()
	var b strings.Builder
	for i := from; i <= to; i++ {
		_, _ = fmt.Fprintf(&b, "%s%d\n", prefix, i)
	}
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(b.String()), 0o644))
}

// setupActivityRepo creates a bare origin and a clone tracking it on main.
// origin/feature adds 10 and deletes 2 lines in src/a.py, and adds 60 and
// deletes 5 lines in src/b.py. origin/ancient rewrites src/b.py but was
// authored in 2020, outside any reasonable window.
func setupActivityRepo(t *testing.T) string {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not available")
	}

	root := t.TempDir()
	origin := filepath.Join(root, "origin.git")
	clone := filepath.Join(root, "work")
	require.NoError(t, os.MkdirAll(origin, 0o755))
	require.NoError(t, os.MkdirAll(clone, 0o755))

	git(t, origin, nil, "init", "--bare")
	git(t, clone, nil, "init")
	git(t, clone, nil, "checkout", "-b", "main")
	git(t, clone, nil, "remote", "add", "origin", origin)

	writeLines(t, filepath.Join(clone, "src", "a.py"), "a", 1, 5)
	writeLines(t, filepath.Join(clone, "src", "b.py"), "b", 1, 5)
	writeLines(t, filepath.Join(clone, "docs", "guide.md"), "g", 1, 3)
	git(t, clone, nil, "add", ".")
	git(t, clone, nil, "commit", "-m", "initial")
	git(t, clone, nil, "push", "-u", "origin", "main")

	git(t, clone, nil, "checkout", "-b", "feature")
	writeLines(t, filepath.Join(clone, "src", "a.py"), "a", 1, 3)
	f, err := os.OpenFile(filepath.Join(clone, "src", "a.py"), os.O_APPEND|os.O_WRONLY, 0o644)
	require.NoError(t, err)
	for i := 1; i <= 10; i++ {
		_, _ = fmt.Fprintf(f, "feature%d\n", i)
	}
	require.NoError(t, f.Close())
	writeLines(t, filepath.Join(clone, "src", "b.py"), "wide", 1, 60)
	git(t, clone, nil, "commit", "-am", "feature work")
	git(t, clone, nil, "push", "origin", "feature")

	git(t, clone, nil, "checkout", "main")
	git(t, clone, nil, "checkout", "-b", "ancient")
	writeLines(t, filepath.Join(clone, "src", "b.py"), "old", 1, 200)
	git(t, clone, []string{"GIT_AUTHOR_DATE=2020-01-01T00:00:00+0000"}, "commit", "-am", "ancient work")
	git(t, clone, nil, "push", "origin", "ancient")

	git(t, clone, nil, "checkout", "main")
	return clone
}
