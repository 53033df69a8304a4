package iocache

import (
	"fmt"
	"os"
	"sync"

	"github.com/huangsam/gi/internal/contract"
	"github.com/huangsam/gi/schema"
)

// cacheTable is the name of the table for template caching.
const cacheTable = "template_cache"

// Global Manager instance for main logic.
var (
	Manager   = &CacheStoreManager{}
	initOnce  sync.Once
	closeOnce sync.Once
)

// NewStore builds the CacheStore for a backend.
// For the file backend connStr is the cache directory; for sqlite it is the
// database file; for the networked backends it is the connection string.
func NewStore(backend schema.DatabaseBackend, connStr string) (contract.CacheStore, error) {
	switch backend {
	case schema.FileBackend:
		return NewFileStore(connStr)
	case schema.RedisBackend:
		return NewRedisStore(connStr)
	default:
		return NewCacheStore(cacheTable, backend, connStr)
	}
}

// InitCaching initializes the global cache manager.
func InitCaching(backend schema.DatabaseBackend, connStr string) error {
	var initErr error

	initOnce.Do(func() {
		store, err := NewStore(backend, connStr)
		if err != nil {
			initErr = fmt.Errorf("failed to initialize caching: %w", err)
			return
		}
		Manager.Lock()
		defer Manager.Unlock()
		Manager.store = store
	})

	return initErr
}

// CloseCaching should be called on application shutdown.
func CloseCaching() { // called in main defer
	closeOnce.Do(func() {
		Manager.Lock()
		defer Manager.Unlock()
		if Manager.store != nil {
			_ = Manager.store.Close()
		}
	})
}

// ClearCache removes every cached record for the specified backend.
// For the file backend, it deletes the record files.
// For SQLite, it deletes the database file.
// For MySQL/PostgreSQL, it drops the table and its migration history.
// For Redis, it deletes the cache hashes.
// For NoneBackend, it does nothing.
func ClearCache(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.FileBackend:
		store, err := NewFileStore(connStr)
		if err != nil {
			return err
		}
		return store.Clear()

	case schema.SQLiteBackend:
		dbFilePath := connStr
		if dbFilePath == "" {
			dbFilePath = contract.GetCacheDBFilePath()
		}
		// Remove the file; ignore if it doesn't exist
		if err := os.Remove(dbFilePath); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to remove SQLite database file %s: %w", dbFilePath, err)
		}
		return nil

	case schema.MySQLBackend, schema.PostgreSQLBackend:
		for _, table := range []string{cacheTable, migrationsTable} {
			if err := clearSQLTable(backend, connStr, table); err != nil {
				return err
			}
		}
		return nil

	case schema.RedisBackend:
		store, err := NewRedisStore(connStr)
		if err != nil {
			return err
		}
		defer func() { _ = store.Close() }()
		return store.Clear()

	case schema.NoneBackend:
		return nil

	default:
		return fmt.Errorf("unsupported cache backend for clearing: %s", backend)
	}
}

// clearSQLTable connects to the SQL database and drops the table if it exists.
func clearSQLTable(backend schema.DatabaseBackend, connStr, tableName string) error {
	if err := validateTableName(tableName); err != nil {
		return err
	}
	db, err := openSQL(backend, connStr)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	query := fmt.Sprintf("DROP TABLE IF EXISTS %s", quoteTableName(tableName, backend))
	if _, err := db.Exec(query); err != nil {
		return fmt.Errorf("failed to drop table %s: %w", tableName, err)
	}
	return nil
}
