package core

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/huangsam/gitactivity/internal/contract"
	"github.com/huangsam/gitactivity/schema"
)

// numstatLine is one parsed record of `git diff --numstat -z` output.
type numstatLine struct {
	Added   int
	Deleted int
	Path    string
	OldPath string // Rename source, empty unless the record is a rename
}

// paths lists the paths a record touches, the rename source first.
func (l numstatLine) paths() []string {
	if l.OldPath == "" {
		return []string{l.Path}
	}
	return []string{l.OldPath, l.Path}
}

// aggregateBranches diffs every retained branch against the current branch and
// accumulates the counts per input path.
func aggregateBranches(ctx context.Context, cfg *contract.Config, reader *numstatReader, state *repoState, branches []schema.BranchRef) ([]schema.PathStats, error) {
	stats := make([]schema.PathStats, len(cfg.Files))
	for i, f := range cfg.Files {
		stats[i].Path = f
	}

	for _, branch := range branches {
		revRange := state.CurrentBranch + cfg.DiffMode.RangeSeparator() + branch.Name
		switch cfg.DiffMode {
		case schema.DirectDiff:
			for i, f := range cfg.Files {
				out, err := reader.read(ctx, state.CurrentBranch, branch.Name, []string{f}, state.Keys[i:i+1])
				if err != nil {
					return nil, fmt.Errorf("failed to diff %s for %s: %w", revRange, f, err)
				}
				accumulateTotal(&stats[i], parseNumstat(out))
			}
		default:
			out, err := reader.read(ctx, state.CurrentBranch, branch.Name, cfg.Files, state.Keys)
			if err != nil {
				return nil, fmt.Errorf("failed to diff %s: %w", revRange, err)
			}
			accumulateAttributed(stats, state.Keys, parseNumstat(out))
		}
	}
	return stats, nil
}

// accumulateTotal adds every line to a single path.
func accumulateTotal(stats *schema.PathStats, lines []numstatLine) {
	for _, l := range lines {
		stats.Additions += l.Added
		stats.Deletions += l.Deleted
	}
}

// accumulateAttributed adds each line to every input path whose key covers it.
// A renamed file counts once per key even when both sides are covered.
func accumulateAttributed(stats []schema.PathStats, keys []string, lines []numstatLine) {
	for _, l := range lines {
		candidates := l.paths()
		for i, key := range keys {
			if coversAny(key, candidates) {
				stats[i].Additions += l.Added
				stats[i].Deletions += l.Deleted
			}
		}
	}
}

func coversAny(key string, paths []string) bool {
	for _, p := range paths {
		if contract.PathCovers(key, p) {
			return true
		}
	}
	return false
}

// parseNumstat parses NUL terminated numstat records. A plain record is
// "added<TAB>deleted<TAB>path"; a rename leaves path empty and is followed by
// the old and new paths as two more fields. Paths are verbatim, never quoted.
// Binary files report "-" counts and are skipped.
func parseNumstat(out []byte) []numstatLine {
	fields := strings.Split(string(out), "\x00")
	var lines []numstatLine
	for i := 0; i < len(fields); i++ {
		added, rest, found := strings.Cut(fields[i], "\t")
		if !found {
			continue
		}
		deleted, path, found := strings.Cut(rest, "\t")
		if !found {
			continue
		}

		var oldPath string
		if path == "" {
			if i+2 >= len(fields) {
				break
			}
			oldPath, path = fields[i+1], fields[i+2]
			i += 2
		}

		a, d, ok := parseCounts(added, deleted)
		if !ok {
			continue
		}
		lines = append(lines, numstatLine{Added: a, Deleted: d, Path: path, OldPath: oldPath})
	}
	return lines
}

// parseCounts parses the two count fields, reporting false for binary "-"
// markers or anything else that is not a non-negative integer.
func parseCounts(added, deleted string) (int, int, bool) {
	a, err := strconv.Atoi(strings.TrimSpace(added))
	if err != nil || a < 0 {
		return 0, 0, false
	}
	d, err := strconv.Atoi(strings.TrimSpace(deleted))
	if err != nil || d < 0 {
		return 0, 0, false
	}
	return a, d, true
}
