package cmd

import (
	"fmt"
	"os"

	"github.com/huangsam/gi/internal/contract"
	"github.com/huangsam/gi/internal/iocache"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// cacheConfigSetup loads and validates configuration without opening the cache.
// Clear and migrate must work on caches that cannot be opened yet.
func cacheConfigSetup(_ *cobra.Command, _ []string) error {
	return loadConfig()
}

// cacheSetup loads configuration and opens the configured cache store.
func cacheSetup(_ *cobra.Command, _ []string) error {
	if err := loadConfig(); err != nil {
		return err
	}
	if err := iocache.InitCaching(cfg.CacheBackend, cfg.CacheDBConnect); err != nil {
		return fmt.Errorf("failed to initialize cache: %w", err)
	}
	return nil
}

// cacheCmd focused on cache management.
//
// Note: Cache subcommands never fetch from the catalog.
var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the local template cache",
	Long: `Manage the cache that keeps the catalog and templates between runs.

Supported backends: file (default), SQLite, MySQL, PostgreSQL, Redis, or None

Subcommands:
  status  - Show cache statistics and connection info
  clear   - Remove all cached data
  migrate - Run database schema migrations
  export  - Export cache entries to Parquet

Examples:
  # Check cache status
  gi cache status

  # Force the next run to fetch everything again
  gi cache clear`,
}

// cacheStatusCmd shows cache status.
var cacheStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display cache statistics and connection details",
	Long: `Show detailed information about the template cache.

Displays:
- Backend type and connection status
- Total number of cached entries
- Last and oldest cache entry timestamps
- Cache storage size

Examples:
  # Check cache status
  gi cache status

  # Also list every cached key
  gi cache status --entries`,
	PreRunE: cacheSetup,
	Run: func(_ *cobra.Command, _ []string) {
		store := iocache.Manager.GetCacheStore()
		status, err := store.GetStatus()
		if err != nil {
			contract.LogFatal("Failed to get cache status", err)
		}
		iocache.PrintCacheStatus(os.Stdout, status)

		if !viper.GetBool("entries") {
			return
		}
		records, err := store.GetAllEntries()
		if err != nil {
			contract.LogFatal("Failed to list cache entries", err)
		}
		if err := iocache.PrintCacheEntries(os.Stdout, records); err != nil {
			contract.LogFatal("Failed to print cache entries", err)
		}
	},
}

// cacheClearCmd clears the cache.
var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all cached templates and the catalog",
	Long: `Delete all cached data from the configured backend.

For file: Deletes the cached record files
For SQLite: Deletes the database file
For MySQL/PostgreSQL: Drops the cache table and its migration history
For Redis: Deletes the cache keys

Examples:
  # Clear the file cache (default)
  gi cache clear

  # Clear MySQL cache (set connection string via env variable)
  GI_CACHE_BACKEND=mysql GI_CACHE_DB_CONNECT="..." gi cache clear`,
	PreRunE: cacheConfigSetup,
	Run: func(_ *cobra.Command, _ []string) {
		if err := iocache.ClearCache(cfg.CacheBackend, cfg.CacheDBConnect); err != nil {
			contract.LogFatal("Failed to clear cache", err)
		}
		fmt.Println("Cache cleared successfully.")
	},
}

// cacheMigrateCmd runs database migrations for the SQL cache backends.
var cacheMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database schema migrations (upgrades/downgrades)",
	Long: `Manage schema versions of the SQL cache backends (sqlite, mysql, postgresql).

By default, migrates to the latest version. Use --target-version for specific versions.

Examples:
  # Migrate to latest version (default)
  gi cache migrate --cache-backend sqlite

  # Migrate to specific version
  gi cache migrate --cache-backend sqlite --target-version 1

  # Rollback all migrations
  gi cache migrate --cache-backend sqlite --target-version 0`,
	PreRunE: cacheConfigSetup,
	Run: func(_ *cobra.Command, _ []string) {
		targetVersion := viper.GetInt("target-version")
		if err := iocache.MigrateCache(os.Stdout, cfg.CacheBackend, cfg.CacheDBConnect, targetVersion); err != nil {
			contract.LogFatal("Failed to run migrations", err)
		}
	},
}

// cacheExportCmd exports cache entries to a Parquet file.
var cacheExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export cache entries to Parquet",
	Long: `Export one row per cached entry (key, kind, write time, size) to Parquet.

Requires: --output-file parameter

Examples:
  # Export and inspect with DuckDB
  gi cache export --output-file cache.parquet
  duckdb -c "SELECT * FROM read_parquet('cache.parquet')"`,
	PreRunE: cacheSetup,
	Run: func(_ *cobra.Command, _ []string) {
		if err := iocache.ExecuteCacheExport(os.Stdout, iocache.Manager.GetCacheStore(), cfg.OutputFile); err != nil {
			contract.LogFatal("Failed to export cache data", err)
		}
	},
}
