package core

import (
	"context"
	"fmt"
	"os"

	"github.com/huangsam/gitactivity/internal/contract"
)

// repoState is what the prober learned about the repository.
type repoState struct {
	CurrentBranch string
	Remote        string
	Keys          []string // Repository-relative key per input path, in argument order
}

// probeRepository discovers the current branch and its remote, checks that
// every input path exists and fetches the remote. The order of checks decides
// which error a user sees first.
func probeRepository(ctx context.Context, cfg *contract.Config, client contract.GitClient) (*repoState, error) {
	current, err := client.GetCurrentBranch(ctx, cfg.RepoPath)
	if err != nil {
		return nil, fmt.Errorf("%w (%v)", contract.ErrNotRepository, err)
	}
	logProgress(ctx, cfg, "Current branch: %s", current)

	remote, err := resolveRemote(ctx, cfg, client, current)
	if err != nil {
		return nil, err
	}
	logProgress(ctx, cfg, "Remote name: %s", remote)

	if err := validatePaths(cfg); err != nil {
		return nil, err
	}

	root, err := client.GetRepoRoot(ctx, cfg.RepoPath)
	if err != nil {
		return nil, fmt.Errorf("%w (%v)", contract.ErrNotRepository, err)
	}
	keys := make([]string, len(cfg.Files))
	for i, f := range cfg.Files {
		key, err := contract.RepoRelativeKey(root, contract.ResolvePath(cfg.RepoPath, f))
		if err != nil {
			return nil, err
		}
		keys[i] = key
	}

	if cfg.Fetch {
		logProgress(ctx, cfg, "Fetching from remote")
		if err := client.Fetch(ctx, cfg.RepoPath, remote); err != nil {
			return nil, fmt.Errorf("failed to fetch from %s: %w", remote, err)
		}
	}

	return &repoState{CurrentBranch: current, Remote: remote, Keys: keys}, nil
}

// resolveRemote returns the --remote override or the remote configured for branch.
func resolveRemote(ctx context.Context, cfg *contract.Config, client contract.GitClient, branch string) (string, error) {
	if cfg.Remote != "" {
		return cfg.Remote, nil
	}
	remote, err := client.GetBranchRemote(ctx, cfg.RepoPath, branch)
	if err != nil || remote == "" {
		return "", contract.ErrNoRemote
	}
	return remote, nil
}

// validatePaths fails on the first input path missing from disk.
func validatePaths(cfg *contract.Config) error {
	for _, f := range cfg.Files {
		if _, err := os.Stat(contract.ResolvePath(cfg.RepoPath, f)); err != nil {
			return fmt.Errorf("%w: %s doesn't exist", contract.ErrMissingPath, f)
		}
	}
	return nil
}
