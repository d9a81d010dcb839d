package iocache

import (
	"fmt"
	"os"
	"sync"

	"github.com/huangsam/gitactivity/schema"
)

// Global Manager instance for main logic.
var (
	Manager   = &CacheStoreManager{}
	initOnce  sync.Once
	closeOnce sync.Once
)

// InitCaching initializes the global cache manager.
// NoneBackend leaves the numstat store unset, which disables caching.
func InitCaching(backend schema.DatabaseBackend, connStr string) error {
	var initErr error

	initOnce.Do(func() {
		// This function body runs exactly once, even with concurrent calls.
		if backend == "" || backend == schema.NoneBackend {
			return
		}
		store, err := NewCacheStore(backend, connStr)
		if err != nil {
			initErr = fmt.Errorf("failed to initialize numstat caching: %w", err)
			return
		}
		Manager.Lock()
		defer Manager.Unlock()
		Manager.numstat = store
	})

	return initErr
}

// CloseCaching should be called on application shutdown.
func CloseCaching() { // called in main defer
	closeOnce.Do(func() {
		Manager.Lock()
		defer Manager.Unlock()
		if Manager.numstat != nil {
			_ = Manager.numstat.Close()
		}
	})
}

// ClearCache clears the cache for the specified backend.
// For SQLite, it deletes the database file.
// For SQL backends (MySQL/PostgreSQL), it rolls back every migration, dropping the table.
// For NoneBackend, it does nothing.
func ClearCache(backend schema.DatabaseBackend, dbFilePath, connStr string) error {
	switch backend {
	case schema.SQLiteBackend:
		if dbFilePath == "" {
			return fmt.Errorf("dbFilePath cannot be empty for SQLite backend")
		}
		// Remove the file; ignore if it doesn't exist
		if err := os.Remove(dbFilePath); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to remove SQLite database file %s: %w", dbFilePath, err)
		}
		return nil

	case schema.MySQLBackend, schema.PostgreSQLBackend:
		if _, err := MigrateCache(backend, connStr, 0); err != nil {
			return fmt.Errorf("failed to drop table %s: %w", numstatTable, err)
		}
		return nil

	case schema.NoneBackend:
		return nil

	default:
		return fmt.Errorf("unsupported cache backend for clearing: %s", backend)
	}
}

// CacheFilePath returns the SQLite file a configuration points at.
func CacheFilePath(connStr string) string {
	if connStr != "" {
		return connStr
	}
	return GetDBFilePath()
}
