// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"context"
	"time"

	"github.com/huangsam/gi/schema"
)

// GitClient defines the Git operations needed to locate a target directory.
// This allows the locator to be tested without needing a real git executable.
type GitClient interface {
	// Run executes a git command and returns the combined output.
	Run(ctx context.Context, repoPath string, args ...string) ([]byte, error)

	// GetRepoRoot returns the absolute path to the root of the Git repository
	// containing the given context path.
	GetRepoRoot(ctx context.Context, contextPath string) (string, error)
}

// CacheManager defines the interface for managing cache stores.
// This allows the cache layer to be mocked for testing.
type CacheManager interface {
	GetCacheStore() CacheStore
}

// CacheStore defines the interface for cache data storage.
// Each key maps to exactly one record holding a payload and its write time in epoch milliseconds.
// Get returns ErrCacheMiss when no record exists for the key.
type CacheStore interface {
	Get(key string) ([]byte, int64, error)
	Set(key string, value []byte, timestamp int64) error
	GetStatus() (schema.CacheStatus, error)
	GetAllEntries() ([]schema.CacheRecord, error)
	Close() error
}

// Fetcher retrieves raw resources from the remote template catalog.
type Fetcher interface {
	// Fetch returns the raw body for a resource such as "list" or a template name.
	Fetch(ctx context.Context, resource string) ([]byte, error)

	// Locate returns the remote locator (URL) for a resource.
	Locate(resource string) string
}

// Notifier displays short transient status messages to the user.
type Notifier interface {
	Notify(msg string)
}

// Chooser presents ordered choices and returns the selected label.
// The boolean is false when nothing was selected.
type Chooser interface {
	PresentChoices(ctx context.Context, choices []schema.Choice) (string, bool)
}

// TargetLocator returns the directory that holds the target file.
type TargetLocator interface {
	Locate(ctx context.Context) (string, error)
}

// TemplateResolver resolves the template catalog and individual template bodies.
type TemplateResolver interface {
	GetTemplateNames(ctx context.Context, window time.Duration) ([]string, error)
	GetTemplateContent(ctx context.Context, name string) (string, error)
}
