package contract

import "errors"

// Sentinel errors shared across packages.
// Callers should use errors.Is to check.
var (
	// ErrCacheMiss indicates no record exists for a cache key.
	ErrCacheMiss = errors.New("cache: no entry for key")

	// ErrFetchFailed indicates the remote catalog could not supply a resource.
	ErrFetchFailed = errors.New("remote: fetch failed")

	// ErrHTTPStatus indicates an unexpected HTTP status from the remote catalog.
	ErrHTTPStatus = errors.New("remote: unexpected HTTP status")

	// ErrNotFound indicates the remote catalog has no such resource.
	ErrNotFound = errors.New("remote: resource not found")

	// ErrMalformedResponse indicates a remote body did not have the expected shape.
	ErrMalformedResponse = errors.New("remote: malformed response")

	// ErrInvalidTemplateName indicates a template name that cannot be requested or cached.
	ErrInvalidTemplateName = errors.New("invalid template name")

	// ErrNoTarget indicates that no target directory is available.
	ErrNoTarget = errors.New("no workspace folder found")

	// ErrNoSelection indicates the user dismissed a choice without selecting anything.
	ErrNoSelection = errors.New("no selection made")
)
