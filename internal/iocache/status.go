package iocache

import (
	"fmt"
	"io"

	"github.com/huangsam/gitactivity/schema"
)

// PrintCacheStatus prints cache status information.
func PrintCacheStatus(w io.Writer, status schema.CacheStatus) {
	_, _ = fmt.Fprintf(w, "Cache Backend: %s\n", status.Backend)
	_, _ = fmt.Fprintf(w, "Connected: %t\n", status.Connected)
	if !status.Connected {
		return
	}
	_, _ = fmt.Fprintf(w, "Total Entries: %d\n", status.TotalEntries)
	if status.TotalEntries > 0 {
		_, _ = fmt.Fprintf(w, "Last Entry: %s\n", status.LastEntryTime.Format("2006-01-02 15:04:05"))
		_, _ = fmt.Fprintf(w, "Oldest Entry: %s\n", status.OldestEntryTime.Format("2006-01-02 15:04:05"))
	}
	_, _ = fmt.Fprintf(w, "Table Size: %d bytes\n", status.TableSizeBytes)
}

// PrintMigrationResult prints what a migration changed.
func PrintMigrationResult(w io.Writer, result schema.MigrationResult) {
	if !result.Changed {
		_, _ = fmt.Fprintf(w, "No migration needed. Database is already at version %d\n", result.ToVersion)
		return
	}
	_, _ = fmt.Fprintf(w, "Successfully migrated from version %d to version %d\n", result.FromVersion, result.ToVersion)
}
