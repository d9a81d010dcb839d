package core

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/huangsam/gitactivity/internal/contract"
	"github.com/huangsam/gitactivity/schema"
)

// branchRefSeparator splits a listing line into author date and branch path.
const branchRefSeparator = " refs/remotes/"

// BranchDateLayout matches git's default date format, e.g. "Fri Oct 12 16:36:58 2018 +1300".
const BranchDateLayout = "Mon Jan 2 15:04:05 2006 -0700"

// listRecentBranches lists remote branches and keeps those authored at or after cfg.Cutoff.
func listRecentBranches(ctx context.Context, cfg *contract.Config, client contract.GitClient) ([]schema.BranchRef, error) {
	logProgress(ctx, cfg, "Finding remote branches")
	out, err := client.ListRemoteBranches(ctx, cfg.RepoPath)
	if err != nil {
		return nil, fmt.Errorf("failed to list remote branches: %w", err)
	}
	branches, err := parseBranchListing(out)
	if err != nil {
		return nil, err
	}
	return filterRecentBranches(branches, cfg.Cutoff), nil
}

// parseBranchListing parses "<author date> refs/remotes/<remote>/<branch>" lines.
// Blank lines are ignored; any other malformed line is an error.
func parseBranchListing(out []byte) ([]schema.BranchRef, error) {
	var branches []schema.BranchRef
	for line := range strings.SplitSeq(string(out), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		branch, err := parseBranchLine(line)
		if err != nil {
			return nil, err
		}
		branches = append(branches, branch)
	}
	return branches, nil
}

// parseBranchLine parses a single listing line.
func parseBranchLine(line string) (schema.BranchRef, error) {
	dateStr, name, found := strings.Cut(line, branchRefSeparator)
	if !found || name == "" {
		return schema.BranchRef{}, fmt.Errorf("%w: %q", contract.ErrBranchTimestamp, line)
	}
	date, err := time.Parse(BranchDateLayout, strings.TrimSpace(dateStr))
	if err != nil {
		return schema.BranchRef{}, fmt.Errorf("%w: %q: %v", contract.ErrBranchTimestamp, line, err)
	}
	return schema.BranchRef{Name: name, AuthorDate: date}, nil
}

// filterRecentBranches keeps branches with an author date at or after cutoff,
// preserving the listing order.
func filterRecentBranches(branches []schema.BranchRef, cutoff time.Time) []schema.BranchRef {
	recent := make([]schema.BranchRef, 0, len(branches))
	for _, b := range branches {
		if !b.AuthorDate.Before(cutoff) {
			recent = append(recent, b)
		}
	}
	return recent
}
