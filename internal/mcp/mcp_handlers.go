package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/huangsam/gitactivity/core"
	"github.com/huangsam/gitactivity/internal/contract"
	"github.com/huangsam/gitactivity/schema"
	"github.com/mark3labs/mcp-go/mcp"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	mgr     contract.CacheManager
	client  contract.GitClient
}

func (h *toolHandler) handleGetBranchActivity(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, err := h.configFor(request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid activity parameters: %v", err)), nil
	}

	// Progress lines would corrupt the stdio protocol stream
	result, err := core.GetActivityResults(core.WithSuppressProgress(ctx), cfg, h.client, h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("activity report failed: %v", err)), nil
	}

	visible := result.WithStats(core.VisibleStats(result.Stats, cfg))
	jsonData, _ := json.MarshalIndent(visible, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

// configFor derives a per-call config from the server's base config.
// The cutoff is always recomputed, since the server outlives any single window.
func (h *toolHandler) configFor(request mcp.CallToolRequest) (*contract.Config, error) {
	cfg := h.baseCfg.Clone()

	cfg.Files = splitPaths(request.GetString("paths", ""))
	if len(cfg.Files) == 0 {
		return nil, fmt.Errorf("paths is required")
	}
	if p := request.GetString("repo_path", ""); p != "" {
		cfg.RepoPath = p
	}
	if r := request.GetString("remote", ""); r != "" {
		cfg.Remote = r
	}
	if m := request.GetString("diff_mode", ""); m != "" {
		mode := schema.DiffMode(strings.ToLower(m))
		if _, ok := schema.ValidDiffModes[mode]; !ok {
			return nil, fmt.Errorf("invalid diff mode '%s'. must be merge-base or direct", m)
		}
		cfg.DiffMode = mode
	}

	// Any number is a valid threshold, so presence alone turns the filter on.
	if _, ok := request.GetArguments()["max_changes"]; ok {
		cfg.SetMaxChanges(request.GetInt("max_changes", cfg.MaxChanges))
	}

	contract.RevalidateWindow(cfg, request.GetInt("days", cfg.Days))
	return cfg, nil
}

// splitPaths splits a comma separated list, dropping blanks.
func splitPaths(s string) []string {
	var paths []string
	for p := range strings.SplitSeq(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			paths = append(paths, p)
		}
	}
	return paths
}
