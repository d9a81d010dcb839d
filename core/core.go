// Package core has core logic for probing, branch filtering and diff aggregation.
package core

import (
	"context"

	"github.com/huangsam/gitactivity/internal/contract"
	"github.com/huangsam/gitactivity/internal/outwriter"
	"github.com/huangsam/gitactivity/schema"
)

// ExecutorFunc defines the function signature for executing a report.
type ExecutorFunc func(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) error

// ExecuteActivity runs the branch activity report and writes it in the configured format.
// It serves as the main entry point for the root command.
func ExecuteActivity(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) error {
	client := contract.NewLocalGitClient()
	result, err := GetActivityResults(ctx, cfg, client, mgr)
	if err != nil {
		return err
	}
	return outwriter.WriteActivity(result.WithStats(VisibleStats(result.Stats, cfg)), cfg)
}

// GetActivityResults runs every stage up to aggregation and returns the unfiltered result.
// Callers apply VisibleStats before presenting it.
func GetActivityResults(ctx context.Context, cfg *contract.Config, client contract.GitClient, mgr contract.CacheManager) (schema.ActivityResult, error) {
	state, err := probeRepository(ctx, cfg, client)
	if err != nil {
		return schema.ActivityResult{}, err
	}

	branches, err := listRecentBranches(ctx, cfg, client)
	if err != nil {
		return schema.ActivityResult{}, err
	}
	logProgress(ctx, cfg, "Diffing %d remote branches modified in the last %d days", len(branches), cfg.Days)

	reader := newNumstatReader(cfg, client, mgr)
	stats, err := aggregateBranches(ctx, cfg, reader, state, branches)
	if err != nil {
		return schema.ActivityResult{}, err
	}

	return schema.ActivityResult{
		CurrentBranch: state.CurrentBranch,
		Remote:        state.Remote,
		Cutoff:        cfg.Cutoff,
		DiffMode:      cfg.DiffMode,
		Branches:      branches,
		Stats:         stats,
	}, nil
}
