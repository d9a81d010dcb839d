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

// MigrationResult describes what a schema migration did.
type MigrationResult struct {
	FromVersion uint `json:"from_version"`
	ToVersion   uint `json:"to_version"`
	Changed     bool `json:"changed"`
}
