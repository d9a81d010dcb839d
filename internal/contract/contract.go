// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"context"

	"github.com/huangsam/gitactivity/schema"
)

// GitClient defines the git operations a report needs.
// This allows the core logic to be tested without needing a real git executable.
type GitClient interface {
	// --- Generic / Low-Level ---

	// Run executes a git command and returns its stdout.
	// Its use should be minimized in favor of the explicit methods below.
	Run(ctx context.Context, repoPath string, args ...string) ([]byte, error)

	// --- Repository State ---

	// GetCurrentBranch returns the abbreviated name of HEAD.
	GetCurrentBranch(ctx context.Context, repoPath string) (string, error)

	// GetBranchRemote returns the remote configured for the given local branch.
	GetBranchRemote(ctx context.Context, repoPath string, branch string) (string, error)

	// GetRepoRoot returns the absolute path to the root of the repository
	// containing the given context path.
	GetRepoRoot(ctx context.Context, contextPath string) (string, error)

	// ResolveRef returns the commit hash a reference points at.
	ResolveRef(ctx context.Context, repoPath string, ref string) (string, error)

	// --- Remote Activity ---

	// Fetch updates remote-tracking branches from the given remote.
	Fetch(ctx context.Context, repoPath string, remote string) error

	// ListRemoteBranches returns the raw "<author date> <refname>" listing of remote branches.
	ListRemoteBranches(ctx context.Context, repoPath string) ([]byte, error)

	// DiffNumstat returns the raw NUL terminated --numstat -z output for a revision range scoped to paths.
	DiffNumstat(ctx context.Context, repoPath string, revRange string, paths []string) ([]byte, error)
}

// CacheManager defines the interface for managing cache stores.
// This allows the cache layer to be mocked for testing.
type CacheManager interface {
	GetNumstatStore() CacheStore
}

// CacheStore defines the interface for cache data storage.
// This allows mocking the store for testing.
type CacheStore interface {
	Get(key string) ([]byte, int, int64, error)
	Set(key string, value []byte, version int, timestamp int64) error
	GetStatus() (schema.CacheStatus, error)
	Close() error
}
