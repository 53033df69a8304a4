package remote

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/huangsam/gi/internal/contract"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewHTTPFetcher(t *testing.T) {
	t.Parallel()
	tests := []struct {
		baseURL string
		valid   bool
	}{
		{baseURL: "https://www.gitignore.io/api", valid: true},
		{baseURL: "https://www.gitignore.io/api/", valid: true},
		{baseURL: "http://localhost:8080", valid: true},
		{baseURL: "", valid: false},
		{baseURL: "/", valid: false},
		{baseURL: "www.gitignore.io/api", valid: false},
		{baseURL: "::bad::", valid: false},
	}
	for _, tt := range tests {
		t.Run(tt.baseURL, func(t *testing.T) {
			t.Parallel()
			_, err := NewHTTPFetcher(tt.baseURL)
			if tt.valid {
				assert.NoError(t, err)
				return
			}
			assert.Error(t, err)
		})
	}
}

func TestHTTPFetcher_Locate(t *testing.T) {
	t.Parallel()
	h, err := NewHTTPFetcher("https://www.gitignore.io/api/")
	require.NoError(t, err)

	assert.Equal(t, "https://www.gitignore.io/api/list", h.Locate("list"))
	assert.Equal(t, "https://www.gitignore.io/api/go,node", h.Locate("go,node"))
	assert.Equal(t, "https://www.gitignore.io/api/a%2Fb", h.Locate("a/b"))
	assert.Equal(t, "https://www.gitignore.io/api/c++,a%2Fb,node", h.Locate("c++,a/b,node"))
}

func TestHTTPFetcher_Fetch_CombinedTemplate(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/go,node", r.URL.EscapedPath())
		_, _ = w.Write([]byte("### Go ###\n### Node ###\n"))
	}))
	defer srv.Close()

	h, err := NewHTTPFetcher(srv.URL + "/api")
	require.NoError(t, err)
	_, err = h.Fetch(context.Background(), "go,node")
	require.NoError(t, err)
}

func TestHTTPFetcher_Fetch_Success(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/list", r.URL.Path)
		assert.Equal(t, defaultUserAgent, r.Header.Get("User-Agent"))
		_, _ = w.Write([]byte("1c,1c-bitrix\r\ngo,node"))
	}))
	defer srv.Close()

	h, err := NewHTTPFetcher(srv.URL + "/api")
	require.NoError(t, err)
	data, err := h.Fetch(context.Background(), "list")
	require.NoError(t, err)
	assert.Equal(t, "1c,1c-bitrix\r\ngo,node", string(data))
}

func TestHTTPFetcher_Fetch_UserAgent(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "custom/2.0", r.Header.Get("User-Agent"))
		_, _ = w.Write([]byte("ok"))
	}))
	defer srv.Close()

	h, err := NewHTTPFetcher(srv.URL, WithUserAgent("custom/2.0"), WithHTTPClient(srv.Client()))
	require.NoError(t, err)
	_, err = h.Fetch(context.Background(), "go")
	require.NoError(t, err)
}

func TestHTTPFetcher_Fetch_NotFound(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte("#!! ERROR: nope is undefined !!#"))
	}))
	defer srv.Close()

	h, err := NewHTTPFetcher(srv.URL)
	require.NoError(t, err)
	_, err = h.Fetch(context.Background(), "nope")
	require.Error(t, err)
	assert.ErrorIs(t, err, contract.ErrFetchFailed)
	assert.ErrorIs(t, err, contract.ErrNotFound)
}

func TestHTTPFetcher_Fetch_ServerError(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	h, err := NewHTTPFetcher(srv.URL)
	require.NoError(t, err)
	_, err = h.Fetch(context.Background(), "go")
	require.Error(t, err)
	assert.ErrorIs(t, err, contract.ErrFetchFailed)
	assert.ErrorIs(t, err, contract.ErrHTTPStatus)
	assert.NotErrorIs(t, err, contract.ErrNotFound)
}

func TestHTTPFetcher_Fetch_BodyTooLarge(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(strings.Repeat("x", maxBodySize+1)))
	}))
	defer srv.Close()

	h, err := NewHTTPFetcher(srv.URL)
	require.NoError(t, err)
	_, err = h.Fetch(context.Background(), "go")
	require.Error(t, err)
	assert.ErrorIs(t, err, contract.ErrFetchFailed)
	assert.ErrorContains(t, err, "exceeds")
}

func TestHTTPFetcher_Fetch_Unreachable(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close()

	h, err := NewHTTPFetcher(url)
	require.NoError(t, err)
	_, err = h.Fetch(context.Background(), "go")
	assert.ErrorIs(t, err, contract.ErrFetchFailed)
}

func TestHTTPFetcher_Fetch_ClientTimeout(t *testing.T) {
	t.Parallel()
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	h, err := NewHTTPFetcher(srv.URL, WithHTTPClient(&http.Client{Timeout: 50 * time.Millisecond}))
	require.NoError(t, err)
	_, err = h.Fetch(context.Background(), "go")
	assert.ErrorIs(t, err, contract.ErrFetchFailed)
}

func TestHTTPFetcher_Fetch_ContextCanceled(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("ok"))
	}))
	defer srv.Close()

	h, err := NewHTTPFetcher(srv.URL)
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = h.Fetch(ctx, "go")
	assert.ErrorIs(t, err, contract.ErrFetchFailed)
	assert.ErrorIs(t, err, context.Canceled)
}
