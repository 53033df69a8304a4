// Package remote fetches catalog resources from a gitignore.io compatible API.
package remote

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/huangsam/gi/internal/contract"
)

var _ contract.Fetcher = (*HTTPFetcher)(nil)

// maxBodySize limits HTTP response body size (4 MB); combined templates stay well below it.
const maxBodySize = 4 << 20

// defaultUserAgent is the User-Agent header value for HTTP requests.
const defaultUserAgent = "gi-cli/1.0"

// HTTPFetcher retrieves resources as {baseURL}/{resource}.
type HTTPFetcher struct {
	baseURL    string
	httpClient *http.Client
	userAgent  string
}

// HTTPOption configures HTTPFetcher.
type HTTPOption func(*HTTPFetcher)

// WithHTTPClient sets the HTTP client. If c is nil, the default client is left unchanged.
func WithHTTPClient(c *http.Client) HTTPOption {
	return func(h *HTTPFetcher) {
		if c != nil {
			h.httpClient = c
		}
	}
}

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(ua string) HTTPOption {
	return func(h *HTTPFetcher) {
		if ua != "" {
			h.userAgent = ua
		}
	}
}

// NewHTTPFetcher creates an HTTPFetcher. baseURL must be an absolute http(s) URL
// such as https://www.gitignore.io/api.
func NewHTTPFetcher(baseURL string, opts ...HTTPOption) (*HTTPFetcher, error) {
	baseURL = strings.TrimSuffix(baseURL, "/")
	if baseURL == "" {
		return nil, fmt.Errorf("remote: base URL must not be empty")
	}
	parsed, err := url.Parse(baseURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("remote: invalid base URL %q", baseURL)
	}
	h := &HTTPFetcher{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: contract.DefaultHTTPTimeout},
		userAgent:  defaultUserAgent,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h, nil
}

// Locate returns the URL of resource. Commas joining combined templates
// are kept literal; each name is escaped on its own.
func (h *HTTPFetcher) Locate(resource string) string {
	parts := strings.Split(resource, ",")
	for i, part := range parts {
		parts[i] = url.PathEscape(part)
	}
	return h.baseURL + "/" + strings.Join(parts, ",")
}

// Fetch downloads resource. A 404 yields ErrNotFound and any other non-2xx
// status yields ErrHTTPStatus; both are wrapped in ErrFetchFailed.
func (h *HTTPFetcher) Fetch(ctx context.Context, resource string) ([]byte, error) {
	u := h.Locate(resource)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", contract.ErrFetchFailed, err)
	}
	req.Header.Set("User-Agent", h.userAgent)
	req.Header.Set("Accept", "text/plain")

	resp, err := h.httpClient.Do(req) // #nosec G704 -- URL is from config and path-escaped resource
	if err != nil {
		return nil, fmt.Errorf("%w: %w", contract.ErrFetchFailed, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%w: %w: %q", contract.ErrFetchFailed, contract.ErrNotFound, resource)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: %w: %s %s", contract.ErrFetchFailed, contract.ErrHTTPStatus, resp.Status, u)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %w", contract.ErrFetchFailed, err)
	}
	// Detect truncation: if more data is available, body exceeded maxBodySize.
	probe := make([]byte, 1)
	if n, _ := resp.Body.Read(probe); n > 0 {
		return nil, fmt.Errorf("%w: response body exceeds %d bytes", contract.ErrFetchFailed, maxBodySize)
	}
	return data, nil
}
