package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/huangsam/gitactivity/internal/contract"
	"github.com/huangsam/gitactivity/schema"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// FormatStatLine renders one report line, e.g. "     +15       -3 src/foo.py".
// Both count fields are right-aligned to width 8 and deletions always carry
// a leading minus. Colors wrap the padded fields, so alignment is unchanged.
func FormatStatLine(s schema.PathStats, useColors bool) string {
	added := fmt.Sprintf("%+8d", s.Additions)
	deleted := fmt.Sprintf("%8s", "-"+strconv.Itoa(s.Deletions))
	if useColors {
		addColor, delColor := contract.StatColors(true)
		added = addColor.Sprint(added)
		deleted = delColor.Sprint(deleted)
	}
	return added + " " + deleted + " " + s.Path
}

// writeActivityText writes one line per path in argument order.
func writeActivityText(w io.Writer, stats []schema.PathStats, onlyFilenames, useColors bool) error {
	for _, s := range stats {
		line := s.Path
		if !onlyFilenames {
			line = FormatStatLine(s, useColors)
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// writeActivityTable generates and writes the human-readable table.
func writeActivityTable(w io.Writer, result schema.ActivityResult, onlyFilenames bool, maxPathWidth int) error {
	table := tablewriter.NewWriter(w)

	headers := []string{"Path"}
	if !onlyFilenames {
		headers = append(headers, "Added", "Deleted")
	}
	table.Header(headers)

	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for _, s := range result.Stats {
		row := []string{contract.TruncatePath(s.Path, maxPathWidth)}
		if !onlyFilenames {
			row = append(row,
				fmt.Sprintf("%+d", s.Additions),
				"-"+strconv.Itoa(s.Deletions),
			)
		}
		data = append(data, row)
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	_, err := fmt.Fprintf(w, "Compared %d remote branches of %s against %s since %s (%s)\n",
		len(result.Branches), result.Remote, result.CurrentBranch,
		result.Cutoff.Format(contract.DateTimeFormat), result.DiffMode)
	return err
}

// writeActivityCSV writes the visible rows as CSV.
func writeActivityCSV(w io.Writer, stats []schema.PathStats, onlyFilenames bool) error {
	header := []string{"path"}
	if !onlyFilenames {
		header = append(header, "additions", "deletions")
	}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, s := range stats {
			rec := []string{s.Path}
			if !onlyFilenames {
				rec = append(rec, strconv.Itoa(s.Additions), strconv.Itoa(s.Deletions))
			}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}

// writeActivityJSON writes the whole result, with empty lists rather than nulls.
func writeActivityJSON(w io.Writer, result schema.ActivityResult) error {
	if result.Branches == nil {
		result.Branches = []schema.BranchRef{}
	}
	if result.Stats == nil {
		result.Stats = []schema.PathStats{}
	}
	return writeJSON(w, result)
}
