package iocache

import (
	"errors"
	"fmt"
	"io"

	"github.com/huangsam/gi/internal/contract"
	"github.com/huangsam/gi/internal/parquet"
)

// ExecuteCacheExport exports the records of a store to a Parquet file.
func ExecuteCacheExport(w io.Writer, store contract.CacheStore, outputFile string) error {
	if outputFile == "" {
		return errors.New("--output-file is required for export command")
	}
	if store == nil {
		return errors.New("cache store is not initialized")
	}

	status, err := store.GetStatus()
	if err != nil {
		return fmt.Errorf("failed to get cache status: %w", err)
	}

	records, err := store.GetAllEntries()
	if err != nil {
		return fmt.Errorf("failed to retrieve cache entries: %w", err)
	}
	if len(records) == 0 {
		return errors.New("no cache data found to export")
	}

	_, _ = fmt.Fprintf(w, "Exporting data from %s backend...\n", status.Backend)

	entries := parquet.ConvertCacheRecords(records)
	if err := parquet.WriteCacheEntriesParquet(entries, outputFile); err != nil {
		return fmt.Errorf("failed to write cache entries: %w", err)
	}
	_, _ = fmt.Fprintf(w, "Exported %d cache entries to: %s\n", len(entries), outputFile)
	return nil
}
