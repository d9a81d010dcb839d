// Package cmd defines the command-line interface for gitactivity.
package cmd

import (
	"github.com/huangsam/gitactivity/internal/contract"
	"github.com/huangsam/gitactivity/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(cacheCmd)
	rootCmd.AddCommand(mcpCmd)

	// Add the cache subcommands to the parent cache command
	cacheCmd.AddCommand(cacheClearCmd)
	cacheCmd.AddCommand(cacheStatusCmd)
	cacheCmd.AddCommand(cacheMigrateCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().Bool("verbose", false, "Print progress messages")
	rootCmd.PersistentFlags().Int("days", contract.DefaultDays, "Only include remote branches authored within this many days")
	rootCmd.PersistentFlags().Int("max-changes", 0, "Hide paths whose additions plus deletions exceed this number (no limit unless given)")
	rootCmd.PersistentFlags().Bool("only-filenames", false, "Print only the paths, without counts")
	rootCmd.PersistentFlags().String("remote", "", "Remote to fetch instead of the one configured for the current branch")
	rootCmd.PersistentFlags().String("diff-mode", string(schema.MergeBaseDiff), "Branch comparison: merge-base or direct")
	rootCmd.PersistentFlags().String("repo", contract.DefaultRepoPath, "Repository directory git commands run in")
	rootCmd.PersistentFlags().Bool("no-fetch", false, "Skip fetching the remote before comparing")
	rootCmd.PersistentFlags().String("output", string(schema.TextOut), "Output format: text or table or csv or json or parquet")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().String("color", contract.DefaultColor, "Color the counts: auto or yes/no/true/false/1/0")
	rootCmd.PersistentFlags().String("cache-backend", string(schema.NoneBackend), "Cache backend: none or sqlite or mysql or postgresql")
	rootCmd.PersistentFlags().String("cache-db-connect", "", "Database connection string for mysql/postgresql, or a file path for sqlite")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of cacheMigrateCmd to Viper
	cacheMigrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
	if err := viper.BindPFlags(cacheMigrateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding cache migrate flags", err)
	}
}
