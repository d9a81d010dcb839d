// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/huangsam/gitactivity/internal/contract"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// NewMCPServer initializes and configures the gitactivity MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, mgr contract.CacheManager) *server.MCPServer {
	return newMCPServer(baseCfg, mgr, contract.NewLocalGitClient())
}

func newMCPServer(baseCfg *contract.Config, mgr contract.CacheManager, client contract.GitClient) *server.MCPServer {
	s := server.NewMCPServer(
		"Git Activity Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		mgr:     mgr,
		client:  client,
	}

	s.AddTool(mcp.NewTool("get_branch_activity",
		mcp.WithDescription("Summarize lines added and deleted per path across remote branches active in a recent window, compared with the current branch."),
		mcp.WithString("paths", mcp.Description("Comma-separated files or directories, relative to repo_path."), mcp.Required()),
		mcp.WithNumber("days", mcp.Description("Only include remote branches authored within this many days. Defaults to 30.")),
		mcp.WithNumber("max_changes", mcp.Description("Hide paths whose additions plus deletions exceed this number. Omit to show every path.")),
		mcp.WithString("remote", mcp.Description("Remote to fetch instead of the one configured for the current branch.")),
		mcp.WithString("diff_mode", mcp.Description("How branches are compared. Defaults to 'merge-base'."), mcp.Enum("merge-base", "direct")),
		mcp.WithString("repo_path", mcp.Description("Path to the Git repository (defaults to current directory if not specified).")),
	), h.handleGetBranchActivity)

	return s
}

// StartMCPServer starts the gitactivity MCP server on stdio.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, mgr contract.CacheManager) error {
	s := NewMCPServer(baseCfg, mgr)
	return server.ServeStdio(s)
}
