package contract

import (
	"context"
	"errors"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// skipIfGitNotAvailable skips the test if git binary is not found in PATH
func skipIfGitNotAvailable(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skipf("git binary not found in PATH: %v", err)
	}
}

// initRepo creates an empty Git repository in a temp directory.
func initRepo(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	out, err := exec.Command("git", "init", "-q", dir).CombinedOutput()
	require.NoError(t, err, "git init failed: %s", string(out))
	resolved, err := filepath.EvalSymlinks(dir)
	require.NoError(t, err)
	return resolved
}

// TestMockGitClient_Run ensures the mock correctly records and returns
// expected values when its Run method is called.
func TestMockGitClient_Run(t *testing.T) {
	mockClient := new(MockGitClient)
	ctx := context.Background()
	expectedOutput := []byte("/path/to/repo\n")
	expectedError := errors.New("mocked git error")

	mockClient.
		On("Run", ctx, "/path/to/repo", "rev-parse", "--show-toplevel").
		Return(expectedOutput, expectedError).
		Once()

	actualOutput, actualError := mockClient.Run(ctx, "/path/to/repo", "rev-parse", "--show-toplevel")

	assert.Equal(t, expectedOutput, actualOutput, "Run should return the programmed output")
	assert.Equal(t, expectedError, actualError, "Run should return the programmed error")
	mockClient.AssertExpectations(t)
}

// TestNewLocalGitClient tests the constructor for LocalGitClient.
func TestNewLocalGitClient(t *testing.T) {
	client := NewLocalGitClient()
	assert.NotNil(t, client, "NewLocalGitClient should return a non-nil client")
	assert.IsType(t, &LocalGitClient{}, client, "NewLocalGitClient should return a LocalGitClient instance")
}

// TestLocalGitClient_Run tests the Run method with failing scenarios.
func TestLocalGitClient_Run(t *testing.T) {
	skipIfGitNotAvailable(t)

	client := NewLocalGitClient()
	ctx := context.Background()
	repoRoot := initRepo(t)

	tests := []struct {
		name     string
		repoPath string
		args     []string
	}{
		{
			name:     "invalid repo path",
			repoPath: "/nonexistent/path",
			args:     []string{"status"},
		},
		{
			name:     "invalid git command",
			repoPath: repoRoot,
			args:     []string{"invalid-command"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := client.Run(ctx, tt.repoPath, tt.args...)
			assert.Error(t, err, "Run should return an error for %s", tt.name)
		})
	}
}

// TestLocalGitClient_GetRepoRoot tests the GetRepoRoot method.
func TestLocalGitClient_GetRepoRoot(t *testing.T) {
	skipIfGitNotAvailable(t)

	client := NewLocalGitClient()
	ctx := context.Background()
	repoRoot := initRepo(t)

	root, err := client.GetRepoRoot(ctx, repoRoot)
	require.NoError(t, err, "GetRepoRoot should not return an error for a repository")
	assert.Equal(t, repoRoot, root)

	_, err = client.GetRepoRoot(ctx, t.TempDir())
	assert.Error(t, err, "GetRepoRoot should return an error for a non-git directory")
}
