package cmd

import (
	"github.com/huangsam/gitactivity/internal/contract"
	"github.com/huangsam/gitactivity/internal/mcp"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the gitactivity MCP server",
	Long: `Launch an MCP server on stdio that lets AI agents request branch activity
reports through the get_branch_activity tool.

Flags given here become defaults for every tool call; paths are passed per call.`,
	Args: cobra.NoArgs,
	PreRunE: func(_ *cobra.Command, _ []string) error {
		if err := readConfig(); err != nil {
			return err
		}
		input.Files = nil
		if err := contract.ProcessAndValidateBase(cfg, input); err != nil {
			return err
		}
		return initCache()
	},
	RunE: func(_ *cobra.Command, _ []string) error {
		return mcp.StartMCPServer(rootCtx, cfg, cacheManager)
	},
}
