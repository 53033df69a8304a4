package iocache

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/huangsam/gi/internal/contract"
	"github.com/huangsam/gi/schema"
	"github.com/spf13/afero"
)

// cacheFileSuffix is appended to the sanitized key to build a record file name.
const cacheFileSuffix = "_cache.json"

// fileRecord is the on-disk layout of one cache record.
type fileRecord struct {
	Timestamp int64           `json:"timestamp"`
	Data      json.RawMessage `json:"data"`
}

// FileStore keeps one JSON document per key inside a directory.
type FileStore struct {
	fs  afero.Fs
	dir string
}

var _ contract.CacheStore = &FileStore{} // Compile-time check

// NewFileStore creates a file-backed store rooted at dir on the OS filesystem.
// An empty dir selects the default cache directory.
func NewFileStore(dir string) (*FileStore, error) {
	if dir == "" {
		dir = contract.GetCacheDir()
	}
	return NewFileStoreFs(afero.NewOsFs(), dir)
}

// NewFileStoreFs creates a file-backed store on an arbitrary filesystem.
func NewFileStoreFs(fs afero.Fs, dir string) (*FileStore, error) {
	if err := fs.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory %s: %w", dir, err)
	}
	return &FileStore{fs: fs, dir: dir}, nil
}

// keyToFile maps a cache key to its record path.
func (fs *FileStore) keyToFile(key string) string {
	return filepath.Join(fs.dir, url.QueryEscape(key)+cacheFileSuffix)
}

// fileToKey maps a record file name back to its cache key.
func fileToKey(name string) (string, bool) {
	if !strings.HasSuffix(name, cacheFileSuffix) {
		return "", false
	}
	key, err := url.QueryUnescape(strings.TrimSuffix(name, cacheFileSuffix))
	if err != nil {
		return "", false
	}
	return key, true
}

// Get reads the record for key.
func (fs *FileStore) Get(key string) ([]byte, int64, error) {
	raw, err := afero.ReadFile(fs.fs, fs.keyToFile(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, 0, contract.ErrCacheMiss
		}
		return nil, 0, err
	}

	var record fileRecord
	if err := json.Unmarshal(raw, &record); err != nil {
		return nil, 0, fmt.Errorf("malformed cache record for %q: %w", key, err)
	}
	if len(record.Data) == 0 {
		return nil, 0, fmt.Errorf("malformed cache record for %q: missing data", key)
	}
	return record.Data, record.Timestamp, nil
}

// Set replaces the record for key. The file is written to a temporary name
// first and renamed into place so readers never observe a partial record.
func (fs *FileStore) Set(key string, value []byte, timestamp int64) error {
	if !json.Valid(value) {
		return fmt.Errorf("cache value for %q is not valid JSON", key)
	}
	raw, err := json.Marshal(fileRecord{Timestamp: timestamp, Data: value})
	if err != nil {
		return err
	}

	tmp, err := afero.TempFile(fs.fs, fs.dir, "."+url.QueryEscape(key)+"-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temporary cache file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(raw); err != nil {
		_ = tmp.Close()
		_ = fs.fs.Remove(tmpName)
		return fmt.Errorf("failed to write cache file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = fs.fs.Remove(tmpName)
		return fmt.Errorf("failed to write cache file: %w", err)
	}
	if err := fs.fs.Rename(tmpName, fs.keyToFile(key)); err != nil {
		_ = fs.fs.Remove(tmpName)
		return fmt.Errorf("failed to replace cache file: %w", err)
	}
	return nil
}

// GetAllEntries lists the readable records in the cache directory.
// Unreadable records are skipped.
func (fs *FileStore) GetAllEntries() ([]schema.CacheRecord, error) {
	infos, err := afero.ReadDir(fs.fs, fs.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read cache directory %s: %w", fs.dir, err)
	}

	var records []schema.CacheRecord
	for _, info := range infos {
		if info.IsDir() {
			continue
		}
		key, ok := fileToKey(info.Name())
		if !ok {
			continue
		}
		data, ts, err := fs.Get(key)
		if err != nil {
			continue
		}
		records = append(records, schema.CacheRecord{
			Key:       key,
			Timestamp: time.UnixMilli(ts),
			SizeBytes: int64(len(data)),
		})
	}
	sort.Slice(records, func(i, j int) bool { return records[i].Key < records[j].Key })
	return records, nil
}

// GetStatus summarizes the records in the cache directory.
func (fs *FileStore) GetStatus() (schema.CacheStatus, error) {
	status := schema.CacheStatus{
		Backend:   string(schema.FileBackend),
		Connected: true,
	}

	infos, err := afero.ReadDir(fs.fs, fs.dir)
	if err != nil {
		return status, fmt.Errorf("failed to read cache directory %s: %w", fs.dir, err)
	}

	for _, info := range infos {
		if info.IsDir() {
			continue
		}
		key, ok := fileToKey(info.Name())
		if !ok {
			continue
		}
		status.TotalEntries++
		status.TableSizeBytes += info.Size()

		_, ts, err := fs.Get(key)
		if err != nil {
			continue
		}
		entryTime := time.UnixMilli(ts)
		if status.LastEntryTime.IsZero() || entryTime.After(status.LastEntryTime) {
			status.LastEntryTime = entryTime
		}
		if status.OldestEntryTime.IsZero() || entryTime.Before(status.OldestEntryTime) {
			status.OldestEntryTime = entryTime
		}
	}
	return status, nil
}

// Clear removes every record file from the cache directory.
func (fs *FileStore) Clear() error {
	infos, err := afero.ReadDir(fs.fs, fs.dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to read cache directory %s: %w", fs.dir, err)
	}
	for _, info := range infos {
		if _, ok := fileToKey(info.Name()); !ok || info.IsDir() {
			continue
		}
		if err := fs.fs.Remove(filepath.Join(fs.dir, info.Name())); err != nil {
			return fmt.Errorf("failed to remove cache file %s: %w", info.Name(), err)
		}
	}
	return nil
}

// Close is a no-op for the file store.
func (fs *FileStore) Close() error {
	return nil
}
