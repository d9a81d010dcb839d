// Package parquet provides data structures and functions for exporting branch
// activity to Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"time"

	"github.com/huangsam/gitactivity/schema"
	"github.com/parquet-go/parquet-go"
)

// PathActivity is one reported path of a run, flattened with the run metadata
// so that files from several runs can be concatenated and queried together.
type PathActivity struct {
	// Path is the user-supplied path exactly as given on the command line
	Path string `parquet:"path,snappy"`

	// Additions is the number of added lines across all retained branches
	Additions int64 `parquet:"additions,snappy"`

	// Deletions is the number of deleted lines across all retained branches
	Deletions int64 `parquet:"deletions,snappy"`

	// Remote is the remote whose branches were compared
	Remote string `parquet:"remote,snappy"`

	// CurrentBranch is the local branch every remote branch was diffed against
	CurrentBranch string `parquet:"current_branch,snappy"`

	// Cutoff is the oldest author date a branch could have (stored as TIMESTAMP with nanosecond precision)
	Cutoff time.Time `parquet:"cutoff,snappy"`

	// DiffMode is merge-base or direct
	DiffMode string `parquet:"diff_mode,snappy"`

	// BranchCount is the number of remote branches inside the window
	BranchCount int32 `parquet:"branch_count,snappy"`
}

// ConvertActivityResult flattens a result into one record per reported path.
func ConvertActivityResult(result schema.ActivityResult) []PathActivity {
	records := make([]PathActivity, len(result.Stats))
	for i, s := range result.Stats {
		records[i] = PathActivity{
			Path:          s.Path,
			Additions:     int64(s.Additions),
			Deletions:     int64(s.Deletions),
			Remote:        result.Remote,
			CurrentBranch: result.CurrentBranch,
			Cutoff:        result.Cutoff,
			DiffMode:      string(result.DiffMode),
			BranchCount:   int32(len(result.Branches)),
		}
	}
	return records
}

// WriteActivityParquet writes a slice of PathActivity structs to a Parquet file.
func WriteActivityParquet(data []PathActivity, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// The schema is derived from the PathActivity struct tags
	writer := parquet.NewGenericWriter[PathActivity](file)
	if _, err := writer.Write(data); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	// Close flushes the row group and footer, so its error matters
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize parquet file: %w", err)
	}
	return nil
}
