package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/huangsam/gitactivity/core"
	"github.com/huangsam/gitactivity/internal/contract"
	"github.com/huangsam/gitactivity/internal/iocache"
	"github.com/huangsam/gitactivity/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// All linker flags will be set by goreleaser infra at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// rootCtx is the root context for all operations.
var rootCtx = context.Background()

// cfg will hold the validated, final configuration.
var cfg = &contract.Config{}

// input holds the raw, unvalidated configuration from all sources (file, env, flags).
// Viper will unmarshal into this struct.
var input = &contract.ConfigRawInput{}

// cacheManager is the global cache manager instance.
var cacheManager contract.CacheManager

// rootCmd runs the branch activity report and hosts all other commands.
var rootCmd = &cobra.Command{
	Use:   "gitactivity [flags] FILE...",
	Short: "Summarize recent remote branch activity for files and directories.",
	Long: `gitactivity compares every remote branch authored within a recent window
against the current branch and reports the lines added and deleted per path.

Subcommand names win over paths: to report on a directory named cache, mcp
or version, prefix it as ./cache.

Examples:
  # Activity in the last 30 days for two files
  gitactivity src/a.py src/b.py

  # Only list directories touched by small changes over the last week
  gitactivity --days 7 --max-changes 50 --only-filenames src docs

  # A path that shares a subcommand name
  gitactivity ./cache`,
	Version:            version,
	Args:               cobra.MinimumNArgs(1),
	SilenceErrors:      true,
	SilenceUsage:       true,
	DisableSuggestions: true,
	PreRunE:            sharedSetupWrapper,
	RunE: func(_ *cobra.Command, _ []string) error {
		return core.ExecuteActivity(rootCtx, cfg, cacheManager)
	},
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	// Check if a specific config file is provided
	if configFile := viper.GetString("config"); configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		viper.SetConfigName(".gitactivity") // Name of config file (without extension)
		viper.SetConfigType("yaml")         // We'll use YAML format
		viper.AddConfigPath(".")            // Look in the current directory
		viper.AddConfigPath("$HOME")        // Look in the home directory
	}

	// Set environment variable prefix
	viper.SetEnvPrefix("GITACTIVITY")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv() // Read in environment variables that match

	// Set defaults in Viper
	viper.SetDefault("days", contract.DefaultDays)
	viper.SetDefault("diff-mode", schema.MergeBaseDiff)
	viper.SetDefault("repo", contract.DefaultRepoPath)
	viper.SetDefault("output", schema.TextOut)
	viper.SetDefault("color", contract.DefaultColor)
	viper.SetDefault("cache-backend", schema.NoneBackend)
	viper.SetDefault("cache-db-connect", "")
}

// readConfig merges the config file into Viper and unmarshals every source into input.
func readConfig() error {
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// Config file was found but another error was produced
			return fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found, which is fine; we'll use defaults/env/flags.
	}
	if err := viper.Unmarshal(input); err != nil {
		return fmt.Errorf("unable to unmarshal config: %w", err)
	}
	// Any int is a valid threshold, so only presence marks it as requested.
	// max-changes has no viper default, which keeps IsSet limited to flag, env and file.
	input.MaxChangesSet = viper.IsSet("max-changes")
	return nil
}

// sharedSetup unmarshals config, runs validation and opens the cache.
func sharedSetup(_ context.Context, _ *cobra.Command, args []string) error {
	if err := readConfig(); err != nil {
		return err
	}

	// Positional FILE arguments, which Viper doesn't handle
	input.Files = args

	if err := contract.ProcessAndValidate(cfg, input); err != nil {
		return err
	}
	return initCache()
}

// sharedSetupWrapper wraps sharedSetup to provide context for Cobra's PreRunE.
func sharedSetupWrapper(cmd *cobra.Command, args []string) error {
	return sharedSetup(rootCtx, cmd, args)
}

// initCache initializes the numstat cache for the validated config.
func initCache() error {
	if err := iocache.InitCaching(cfg.CacheBackend, cfg.CacheDBConnect); err != nil {
		return fmt.Errorf("failed to initialize cache: %w", err)
	}
	return nil
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// SetCacheManager sets the global cache manager.
func SetCacheManager(mgr contract.CacheManager) {
	cacheManager = mgr
}
