package contract

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// BranchListFormat is the --format passed to `git branch --remote`.
const BranchListFormat = "%(authordate) %(refname)"

// LocalGitClient implements the GitClient interface by executing the
// local 'git' binary installed on the machine.
type LocalGitClient struct{}

var _ GitClient = &LocalGitClient{} // Compile-time check

// NewLocalGitClient creates a new instance of the local Git client.
func NewLocalGitClient() *LocalGitClient {
	return &LocalGitClient{}
}

// Run executes a git command and returns its stdout.
func (c *LocalGitClient) Run(ctx context.Context, repoPath string, args ...string) ([]byte, error) {
	fullArgs := append([]string{"-C", repoPath}, args...)
	cmd := exec.CommandContext(ctx, "git", fullArgs...)
	out, err := cmd.Output()
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		stderr := strings.TrimSpace(string(exitErr.Stderr))
		return nil, fmt.Errorf("%w: git %s in %q: %s", ErrGitCommand, strings.Join(args, " "), repoPath, stderr)
	} else if err != nil {
		return nil, fmt.Errorf("%w: %v. Ensure Git is installed and available on your PATH", ErrGitCommand, err)
	}
	return out, nil
}

// GetCurrentBranch implements the GitClient interface.
func (c *LocalGitClient) GetCurrentBranch(ctx context.Context, repoPath string) (string, error) {
	out, err := c.Run(ctx, repoPath, "rev-parse", "--abbrev-ref", "HEAD")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}

// GetBranchRemote implements the GitClient interface.
func (c *LocalGitClient) GetBranchRemote(ctx context.Context, repoPath string, branch string) (string, error) {
	out, err := c.Run(ctx, repoPath, "config", fmt.Sprintf("branch.%s.remote", branch))
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}

// GetRepoRoot implements the GitClient interface.
func (c *LocalGitClient) GetRepoRoot(ctx context.Context, contextPath string) (string, error) {
	out, err := c.Run(ctx, contextPath, "rev-parse", "--show-toplevel")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}

// ResolveRef implements the GitClient interface.
func (c *LocalGitClient) ResolveRef(ctx context.Context, repoPath string, ref string) (string, error) {
	out, err := c.Run(ctx, repoPath, "rev-parse", "--verify", ref)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}

// Fetch implements the GitClient interface.
func (c *LocalGitClient) Fetch(ctx context.Context, repoPath string, remote string) error {
	_, err := c.Run(ctx, repoPath, "fetch", remote)
	return err
}

// ListRemoteBranches implements the GitClient interface.
func (c *LocalGitClient) ListRemoteBranches(ctx context.Context, repoPath string) ([]byte, error) {
	return c.Run(ctx, repoPath, "branch", "--remote", "--format", BranchListFormat)
}

// DiffNumstat implements the GitClient interface.
func (c *LocalGitClient) DiffNumstat(ctx context.Context, repoPath string, revRange string, paths []string) ([]byte, error) {
	args := []string{"diff", "--numstat", "-z", revRange, "--"}
	args = append(args, paths...)
	return c.Run(ctx, repoPath, args...)
}
