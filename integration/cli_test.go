//go:build basic

// Package integration contains integration tests for gi.
// These tests are excluded from normal test runs due to build tags.
// To run these tests: go test -tags basic ./integration
package integration

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListIsCached(t *testing.T) {
	srv := newCatalogServer(t)
	env := giEnv(t, srv.URL)

	for range 2 {
		out, err := runGi(t, env, t.TempDir(), "list", "--output", "json")
		require.NoError(t, err)

		var names []string
		require.NoError(t, json.Unmarshal([]byte(out), &names))
		assert.Equal(t, []string{"go", "node"}, names)
	}
	assert.Equal(t, 1, srv.Hits("list"), "The second run is served from the cache")
}

func TestListTimeResetZeroAlwaysFetches(t *testing.T) {
	srv := newCatalogServer(t)
	env := giEnv(t, srv.URL, "GI_TIME_RESET=0")

	for range 2 {
		_, err := runGi(t, env, t.TempDir(), "list")
		require.NoError(t, err)
	}
	assert.Equal(t, 2, srv.Hits("list"))
}

func TestShowTemplate(t *testing.T) {
	srv := newCatalogServer(t)
	env := giEnv(t, srv.URL)

	out, err := runGi(t, env, t.TempDir(), "show", "go")
	require.NoError(t, err)
	assert.Equal(t, catalogTemplates["go"], out)

	_, err = runGi(t, env, t.TempDir(), "show", "nope")
	assert.Error(t, err)
}

func TestAddAppendAndOverwrite(t *testing.T) {
	srv := newCatalogServer(t)
	env := giEnv(t, srv.URL)
	project := t.TempDir()
	target := filepath.Join(project, ".gitignore")
	require.NoError(t, os.WriteFile(target, []byte("bin/\n"), 0o644))

	_, err := runGi(t, env, project, "add", "go", "--action", "append", "--dir", project)
	require.NoError(t, err)
	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "bin/\n"+catalogTemplates["go"], string(data))

	_, err = runGi(t, env, project, "add", "node", "--action", "overwrite", "--dir", project)
	require.NoError(t, err)
	data, err = os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, catalogTemplates["node"], string(data))
}

func TestAddWithoutTargetWritesNothing(t *testing.T) {
	srv := newCatalogServer(t)
	env := giEnv(t, srv.URL)
	missing := filepath.Join(t.TempDir(), "missing")

	_, err := runGi(t, env, t.TempDir(), "add", "go", "--action", "append", "--dir", missing)
	assert.Error(t, err)
	assert.Equal(t, 0, srv.Hits("go"), "Nothing is fetched without a target")
}

func TestCacheStatusAndClear(t *testing.T) {
	srv := newCatalogServer(t)
	env := giEnv(t, srv.URL)

	_, err := runGi(t, env, t.TempDir(), "show", "go")
	require.NoError(t, err)

	out, err := runGi(t, env, t.TempDir(), "cache", "status", "--entries")
	require.NoError(t, err)
	assert.Contains(t, out, "Cache Backend: file")
	assert.Contains(t, out, "Total Entries: 1")

	_, err = runGi(t, env, t.TempDir(), "cache", "clear")
	require.NoError(t, err)

	out, err = runGi(t, env, t.TempDir(), "cache", "status")
	require.NoError(t, err)
	assert.Contains(t, out, "Total Entries: 0")
}

func TestSQLiteBackendWithMigrations(t *testing.T) {
	srv := newCatalogServer(t)
	dbPath := filepath.Join(t.TempDir(), "gi.db")
	env := giEnv(t, srv.URL, "GI_CACHE_BACKEND=sqlite", "GI_CACHE_DB_CONNECT="+dbPath)

	out, err := runGi(t, env, t.TempDir(), "cache", "migrate")
	require.NoError(t, err)
	assert.NotEmpty(t, out)

	_, err = runGi(t, env, t.TempDir(), "show", "go")
	require.NoError(t, err)
	_, err = runGi(t, env, t.TempDir(), "show", "go")
	require.NoError(t, err)
	assert.Equal(t, 1, srv.Hits("go"))

	exportFile := filepath.Join(t.TempDir(), "cache.parquet")
	_, err = runGi(t, env, t.TempDir(), "cache", "export", "--output-file", exportFile)
	require.NoError(t, err)
	assert.FileExists(t, exportFile)
}
