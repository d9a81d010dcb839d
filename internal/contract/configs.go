package contract

import (
	"fmt"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/huangsam/gitactivity/schema"
	"golang.org/x/term"
)

// Default values for configuration.
const (
	DefaultDays     = 30
	DefaultRepoPath = "."
	DefaultColor    = "auto"
)

// DateTimeFormat is the default date time representation.
var DateTimeFormat = time.RFC3339

// Config holds the validated runtime configuration for one report.
// It is built once by ProcessAndValidate and treated as read-only afterwards.
type Config struct {
	RepoPath string   // Directory git commands run in
	Files    []string // User-supplied paths, in argument order

	Verbose       bool
	Days          int
	MaxChanges    int  // Threshold on additions plus deletions; any int is valid
	MaxChangesSet bool // MaxChanges only applies when the user gave one
	OnlyFilenames bool
	Remote        string // Remote override; empty means auto-detect
	DiffMode      schema.DiffMode
	Fetch         bool

	Output     schema.OutputMode
	OutputFile string
	UseColors  bool

	CacheBackend   schema.DatabaseBackend
	CacheDBConnect string

	// Cutoff is the oldest author date a branch may have to be included.
	Cutoff time.Time
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// This is set manually from positional args, so no tag
	Files []string

	Verbose        bool   `mapstructure:"verbose"`
	Days           int    `mapstructure:"days"`
	MaxChanges     int    `mapstructure:"max-changes"`
	MaxChangesSet  bool   `mapstructure:"-"` // Set by the caller, since a zero value is a real threshold
	OnlyFilenames  bool   `mapstructure:"only-filenames"`
	Remote         string `mapstructure:"remote"`
	DiffMode       string `mapstructure:"diff-mode"`
	Repo           string `mapstructure:"repo"`
	NoFetch        bool   `mapstructure:"no-fetch"`
	Output         string `mapstructure:"output"`
	OutputFile     string `mapstructure:"output-file"`
	Color          string `mapstructure:"color"`
	CacheBackend   string `mapstructure:"cache-backend"`
	CacheDBConnect string `mapstructure:"cache-db-connect"`
}

// HasMaxChanges reports whether a change threshold was requested.
func (c *Config) HasMaxChanges() bool {
	return c.MaxChangesSet
}

// SetMaxChanges applies a change threshold. Negative values are valid and hide every path.
func (c *Config) SetMaxChanges(n int) {
	c.MaxChanges = n
	c.MaxChangesSet = true
}

// Clone returns a deep copy of the Config struct.
func (c *Config) Clone() *Config {
	clone := *c
	if c.Files != nil {
		clone.Files = slices.Clone(c.Files)
	}
	return &clone
}

// ProcessAndValidate performs all parsing and validation on the raw inputs
// and updates the final Config struct.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	if len(input.Files) == 0 {
		return fmt.Errorf("at least one FILE argument is required")
	}
	return ProcessAndValidateBase(cfg, input)
}

// ProcessAndValidateBase validates everything except the FILE arguments.
// It serves long-running modes like the MCP server, where paths arrive per call.
func ProcessAndValidateBase(cfg *Config, input *ConfigRawInput) error {
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := processOutput(cfg, input); err != nil {
		return err
	}
	if err := validateBackendConfigs(cfg, input); err != nil {
		return err
	}
	processWindow(cfg, input.Days, time.Now())
	return nil
}

// RevalidateWindow recomputes the cutoff after the lookback was overridden.
func RevalidateWindow(cfg *Config, days int) {
	processWindow(cfg, days, time.Now())
}

// validateSimpleInputs processes and validates the report options.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	cfg.Verbose = input.Verbose
	cfg.OnlyFilenames = input.OnlyFilenames
	cfg.Remote = strings.TrimSpace(input.Remote)
	cfg.Fetch = !input.NoFetch

	cfg.RepoPath = input.Repo
	if cfg.RepoPath == "" {
		cfg.RepoPath = DefaultRepoPath
	}

	cfg.Files = slices.Clone(input.Files)

	cfg.MaxChanges, cfg.MaxChangesSet = 0, false
	if input.MaxChangesSet {
		cfg.SetMaxChanges(input.MaxChanges)
	}

	cfg.DiffMode = schema.DiffMode(strings.ToLower(input.DiffMode))
	if cfg.DiffMode == "" {
		cfg.DiffMode = schema.MergeBaseDiff
	}
	if _, ok := schema.ValidDiffModes[cfg.DiffMode]; !ok {
		return fmt.Errorf("invalid diff mode '%s'. must be merge-base or direct", input.DiffMode)
	}
	return nil
}

// processOutput validates output format, destination and color settings.
func processOutput(cfg *Config, input *ConfigRawInput) error {
	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if cfg.Output == "" {
		cfg.Output = schema.TextOut
	}
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, table, csv, json, parquet", input.Output)
	}
	cfg.OutputFile = input.OutputFile
	if cfg.Output == schema.ParquetOut && cfg.OutputFile == "" {
		return fmt.Errorf("parquet output requires --output-file")
	}

	colors, err := ParseColorString(input.Color, stdoutIsTerminal)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors
	return nil
}

// ProcessCacheConfig validates only the cache settings, for cache management
// commands that must not require a repository or FILE arguments.
func ProcessCacheConfig(cfg *Config, input *ConfigRawInput) error {
	return validateBackendConfigs(cfg, input)
}

// validateBackendConfigs validates the cache backend configuration.
func validateBackendConfigs(cfg *Config, input *ConfigRawInput) error {
	cfg.CacheBackend = schema.DatabaseBackend(strings.ToLower(input.CacheBackend))
	if cfg.CacheBackend == "" {
		cfg.CacheBackend = schema.NoneBackend
	}
	if _, ok := schema.ValidCacheBackends[cfg.CacheBackend]; !ok {
		return fmt.Errorf("invalid cache backend '%s'. must be none, sqlite, mysql, postgresql", input.CacheBackend)
	}
	cfg.CacheDBConnect = input.CacheDBConnect
	return ValidateDatabaseConnectionString(cfg.CacheBackend, cfg.CacheDBConnect)
}

// processWindow derives the branch cutoff from the lookback in days.
// A negative lookback puts the cutoff in the future, so no branch qualifies.
func processWindow(cfg *Config, days int, now time.Time) {
	cfg.Days = days
	cfg.Cutoff = now.UTC().Add(-time.Duration(days) * 24 * time.Hour)
}

// ValidateDatabaseConnectionString validates the format of database connection strings
// for MySQL and PostgreSQL backends.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.NoneBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("cache-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("cache-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "host=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'host=' parameter")
		}
		if !strings.Contains(connStr, "dbname=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'dbname=' parameter")
		}
	}
	return nil
}

func stdoutIsTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}
