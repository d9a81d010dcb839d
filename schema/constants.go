package schema

// Custom string types for type safety.
type (
	// OutputMode represents the format of the output.
	OutputMode string

	// DiffMode represents how a remote branch is compared to the current branch.
	DiffMode string

	// DatabaseBackend represents the database backend for caching.
	DatabaseBackend string
)

// All output modes supported.
const (
	TextOut    OutputMode = "text" // default
	TableOut   OutputMode = "table"
	CSVOut     OutputMode = "csv"
	JSONOut    OutputMode = "json"
	ParquetOut OutputMode = "parquet"
)

// All diff modes supported.
const (
	// MergeBaseDiff compares <current>...<branch> for all paths at once.
	MergeBaseDiff DiffMode = "merge-base" // default

	// DirectDiff compares <current>..<branch> separately for every path.
	DirectDiff DiffMode = "direct"
)

// All cache backends supported.
const (
	NoneBackend       DatabaseBackend = "none" // default
	SQLiteBackend     DatabaseBackend = "sqlite"
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
)

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	TextOut:    {},
	TableOut:   {},
	CSVOut:     {},
	JSONOut:    {},
	ParquetOut: {},
}

// ValidDiffModes lists all valid diff modes.
var ValidDiffModes = map[DiffMode]struct{}{
	MergeBaseDiff: {},
	DirectDiff:    {},
}

// ValidCacheBackends lists all valid cache backends.
var ValidCacheBackends = map[DatabaseBackend]struct{}{
	NoneBackend:       {},
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
}

// RangeSeparator returns the git revision range operator for the mode.
func (m DiffMode) RangeSeparator() string {
	if m == DirectDiff {
		return ".."
	}
	return "..."
}
