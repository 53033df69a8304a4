package contract

import (
	"context"
	"time"

	"github.com/huangsam/gi/schema"
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

// GetRepoRoot implements the GitClient interface.
func (m *MockGitClient) GetRepoRoot(ctx context.Context, contextPath string) (string, error) {
	ret := m.Called(ctx, contextPath)
	return ret.String(0), ret.Error(1)
}

// MockFetcher is a mock implementation of Fetcher for testing.
type MockFetcher struct {
	mock.Mock
}

var _ Fetcher = &MockFetcher{} // Compile-time check

// Fetch implements the Fetcher interface.
func (m *MockFetcher) Fetch(ctx context.Context, resource string) ([]byte, error) {
	ret := m.Called(ctx, resource)
	data, _ := ret.Get(0).([]byte)
	return data, ret.Error(1)
}

// Locate implements the Fetcher interface.
func (m *MockFetcher) Locate(resource string) string {
	return "https://example.test/api/" + resource
}

// MockNotifier is a mock implementation of Notifier for testing.
type MockNotifier struct {
	mock.Mock
}

var _ Notifier = &MockNotifier{} // Compile-time check

// Notify implements the Notifier interface.
func (m *MockNotifier) Notify(msg string) {
	m.Called(msg)
}

// MockChooser is a mock implementation of Chooser for testing.
type MockChooser struct {
	mock.Mock
}

var _ Chooser = &MockChooser{} // Compile-time check

// PresentChoices implements the Chooser interface.
func (m *MockChooser) PresentChoices(ctx context.Context, choices []schema.Choice) (string, bool) {
	ret := m.Called(ctx, choices)
	return ret.String(0), ret.Bool(1)
}

// MockTargetLocator is a mock implementation of TargetLocator for testing.
type MockTargetLocator struct {
	mock.Mock
}

var _ TargetLocator = &MockTargetLocator{} // Compile-time check

// Locate implements the TargetLocator interface.
func (m *MockTargetLocator) Locate(ctx context.Context) (string, error) {
	ret := m.Called(ctx)
	return ret.String(0), ret.Error(1)
}

// MockTemplateResolver is a mock implementation of TemplateResolver for testing.
type MockTemplateResolver struct {
	mock.Mock
}

var _ TemplateResolver = &MockTemplateResolver{} // Compile-time check

// GetTemplateNames implements the TemplateResolver interface.
func (m *MockTemplateResolver) GetTemplateNames(ctx context.Context, window time.Duration) ([]string, error) {
	ret := m.Called(ctx, window)
	names, _ := ret.Get(0).([]string)
	return names, ret.Error(1)
}

// GetTemplateContent implements the TemplateResolver interface.
func (m *MockTemplateResolver) GetTemplateContent(ctx context.Context, name string) (string, error) {
	ret := m.Called(ctx, name)
	return ret.String(0), ret.Error(1)
}
