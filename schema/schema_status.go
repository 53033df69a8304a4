package schema

import "time"

// CacheStatus represents the status of the cache store.
type CacheStatus struct {
	Backend         string    `json:"backend"`
	Connected       bool      `json:"connected"`
	TotalEntries    int       `json:"total_entries"`
	LastEntryTime   time.Time `json:"last_entry_time"`
	OldestEntryTime time.Time `json:"oldest_entry_time"`
	TableSizeBytes  int64     `json:"table_size_bytes"`
}

// CacheRecord represents one persisted cache entry as listed by a store.
type CacheRecord struct {
	Key       string
	Timestamp time.Time
	SizeBytes int64
}

// Choice is a single option offered to the user by a chooser.
type Choice struct {
	Label       string `json:"label"`
	Description string `json:"description"`
}
