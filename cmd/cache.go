package cmd

import (
	"fmt"

	"github.com/huangsam/gitactivity/internal/contract"
	"github.com/huangsam/gitactivity/internal/iocache"
	"github.com/huangsam/gitactivity/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// loadCacheSettings loads the minimal configuration needed for cache operations.
// This avoids git repo validation for simple cache management.
func loadCacheSettings() error {
	if err := readConfig(); err != nil {
		return err
	}
	return contract.ProcessCacheConfig(cfg, input)
}

// cacheCmd focused on cache management.
var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the numstat cache (improves performance)",
	Long: `Manage the cache of git diff --numstat results.

Entries are keyed by the commits on both sides of a diff, so they stay valid
until the cache is cleared. Caching is off unless --cache-backend is set.

Supported backends: SQLite, MySQL, PostgreSQL, or None (default)

Subcommands:
  status  - Show cache statistics and connection info
  clear   - Remove all cached data
  migrate - Move the cache schema to a given version

Examples:
  # Check SQLite cache status
  gitactivity cache status --cache-backend sqlite

  # Clear cache after rewriting history
  gitactivity cache clear --cache-backend sqlite`,
}

// cacheClearCmd clears the cache.
var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all cached numstat data",
	Long: `Delete all cached numstat data from the configured backend.

For SQLite: Deletes the database file
For MySQL/PostgreSQL: Rolls back the cache migrations, dropping the cache table

Examples:
  # Clear MySQL cache (set connection string via env variable)
  GITACTIVITY_CACHE_BACKEND=mysql GITACTIVITY_CACHE_DB_CONNECT="..." gitactivity cache clear`,
	Args: cobra.NoArgs,
	PreRunE: func(_ *cobra.Command, _ []string) error {
		return loadCacheSettings()
	},
	RunE: func(cmd *cobra.Command, _ []string) error {
		if err := iocache.ClearCache(cfg.CacheBackend, iocache.CacheFilePath(cfg.CacheDBConnect), cfg.CacheDBConnect); err != nil {
			return fmt.Errorf("failed to clear cache: %w", err)
		}
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Cache cleared successfully.")
		return nil
	},
}

// cacheStatusCmd shows cache status.
var cacheStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display cache statistics and connection details",
	Long: `Show detailed information about the numstat cache.

Displays:
- Backend type and connection status
- Total number of cached entries
- Last and oldest cache entry timestamps
- Cache database size`,
	Args: cobra.NoArgs,
	PreRunE: func(_ *cobra.Command, _ []string) error {
		if err := loadCacheSettings(); err != nil {
			return err
		}
		return initCache()
	},
	RunE: func(cmd *cobra.Command, _ []string) error {
		status := schema.CacheStatus{Backend: string(cfg.CacheBackend)}
		if store := iocache.Manager.GetNumstatStore(); store != nil {
			var err error
			if status, err = store.GetStatus(); err != nil {
				return fmt.Errorf("failed to get cache status: %w", err)
			}
		}
		iocache.PrintCacheStatus(cmd.OutOrStdout(), status)
		return nil
	},
}

// cacheMigrateCmd moves the cache schema between versions.
var cacheMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Migrate the cache schema to a target version",
	Long: `Apply or roll back the embedded cache schema migrations.

The schema is migrated to the latest version automatically whenever the cache
is opened; use this command to inspect or pin a version explicitly.

Examples:
  # Migrate to the latest version
  gitactivity cache migrate --cache-backend sqlite

  # Roll back every migration
  gitactivity cache migrate --cache-backend sqlite --target-version 0`,
	Args: cobra.NoArgs,
	PreRunE: func(_ *cobra.Command, _ []string) error {
		return loadCacheSettings()
	},
	RunE: func(cmd *cobra.Command, _ []string) error {
		result, err := iocache.MigrateCache(cfg.CacheBackend, cfg.CacheDBConnect, viper.GetInt("target-version"))
		if err != nil {
			return fmt.Errorf("failed to migrate cache: %w", err)
		}
		iocache.PrintMigrationResult(cmd.OutOrStdout(), result)
		return nil
	},
}
