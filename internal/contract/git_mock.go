package contract

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockGitClient is a mock implementation of GitClient for testing.
type MockGitClient struct {
	mock.Mock
}

var _ GitClient = &MockGitClient{} // Compile-time check

// Run implements the GitClient interface.
func (m *MockGitClient) Run(ctx context.Context, repoPath string, args ...string) ([]byte, error) {
	mockArgs := []any{ctx, repoPath}
	for _, arg := range args {
		mockArgs = append(mockArgs, arg)
	}
	ret := m.Called(mockArgs...)
	output, _ := ret.Get(0).([]byte)
	return output, ret.Error(1)
}

// GetCurrentBranch implements the GitClient interface.
func (m *MockGitClient) GetCurrentBranch(ctx context.Context, repoPath string) (string, error) {
	ret := m.Called(ctx, repoPath)
	return ret.String(0), ret.Error(1)
}

// GetBranchRemote implements the GitClient interface.
func (m *MockGitClient) GetBranchRemote(ctx context.Context, repoPath string, branch string) (string, error) {
	ret := m.Called(ctx, repoPath, branch)
	return ret.String(0), ret.Error(1)
}

// GetRepoRoot implements the GitClient interface.
func (m *MockGitClient) GetRepoRoot(ctx context.Context, contextPath string) (string, error) {
	ret := m.Called(ctx, contextPath)
	return ret.String(0), ret.Error(1)
}

// ResolveRef implements the GitClient interface.
func (m *MockGitClient) ResolveRef(ctx context.Context, repoPath string, ref string) (string, error) {
	ret := m.Called(ctx, repoPath, ref)
	return ret.String(0), ret.Error(1)
}

// Fetch implements the GitClient interface.
func (m *MockGitClient) Fetch(ctx context.Context, repoPath string, remote string) error {
	ret := m.Called(ctx, repoPath, remote)
	return ret.Error(0)
}

// ListRemoteBranches implements the GitClient interface.
func (m *MockGitClient) ListRemoteBranches(ctx context.Context, repoPath string) ([]byte, error) {
	ret := m.Called(ctx, repoPath)
	output, _ := ret.Get(0).([]byte)
	return output, ret.Error(1)
}

// DiffNumstat implements the GitClient interface.
func (m *MockGitClient) DiffNumstat(ctx context.Context, repoPath string, revRange string, paths []string) ([]byte, error) {
	ret := m.Called(ctx, repoPath, revRange, paths)
	output, _ := ret.Get(0).([]byte)
	return output, ret.Error(1)
}
