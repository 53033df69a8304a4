// Package parquet exports cache records to Parquet files using
// github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"time"

	"github.com/huangsam/gi/schema"
	"github.com/parquet-go/parquet-go"
)

// Kinds of cache entries.
const (
	KindList     = "list"
	KindTemplate = "template"
)

// CacheEntry represents one persisted cache record.
type CacheEntry struct {
	// Key is the cache key: the catalog key or a template name
	Key string `parquet:"cache_key,snappy"`

	// Kind tells catalog entries apart from template entries
	Kind string `parquet:"kind,snappy,dict"`

	// WrittenAt is when the entry was last refreshed
	WrittenAt time.Time `parquet:"written_at,snappy"`

	// SizeBytes is the size of the stored payload
	SizeBytes int64 `parquet:"size_bytes,snappy"`
}

// WriteCacheEntriesParquet writes a slice of CacheEntry structs to a Parquet file.
func WriteCacheEntriesParquet(data []CacheEntry, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// The schema is derived from the CacheEntry struct tags
	writer := parquet.NewGenericWriter[CacheEntry](file)
	if _, err := writer.Write(data); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize parquet file: %w", err)
	}
	return nil
}

// ConvertCacheRecords converts schema.CacheRecord to CacheEntry for Parquet export.
func ConvertCacheRecords(records []schema.CacheRecord) []CacheEntry {
	result := make([]CacheEntry, len(records))
	for i, record := range records {
		kind := KindTemplate
		if record.Key == schema.ListKey {
			kind = KindList
		}
		result[i] = CacheEntry{
			Key:       record.Key,
			Kind:      kind,
			WrittenAt: record.Timestamp,
			SizeBytes: record.SizeBytes,
		}
	}
	return result
}
