// Package outwriter has output and writer logic.
package outwriter

import (
	"fmt"
	"io"

	"github.com/huangsam/gitactivity/internal/contract"
	"github.com/huangsam/gitactivity/internal/parquet"
	"github.com/huangsam/gitactivity/schema"
)

// WriteActivity outputs a report, dispatching based on the output format configured.
// The result is expected to carry only the rows that should be shown.
func WriteActivity(result schema.ActivityResult, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeActivityJSON(w, result)
		}, "Wrote JSON"); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeActivityCSV(w, result.Stats, cfg.OnlyFilenames)
		}, "Wrote CSV"); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		if err := writeActivityParquet(result, cfg.OutputFile); err != nil {
			return fmt.Errorf("error writing Parquet output: %w", err)
		}
	case schema.TableOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeActivityTable(w, result, cfg.OnlyFilenames, getMaxTablePathWidth(cfg))
		}, "Wrote table")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeActivityText(w, result.Stats, cfg.OnlyFilenames, cfg.UseColors && cfg.OutputFile == "")
		}, "Wrote text")
	}
	return nil
}

// writeActivityParquet exports one record per reported path.
func writeActivityParquet(result schema.ActivityResult, outputFile string) error {
	if outputFile == "" {
		return fmt.Errorf("parquet output requires --output-file")
	}
	if err := parquet.WriteActivityParquet(parquet.ConvertActivityResult(result), outputFile); err != nil {
		return err
	}
	logWrote("Wrote Parquet", outputFile)
	return nil
}
