package cmd

import (
	"github.com/spf13/cobra"

	"github.com/huangsam/shiftgrid/internal/mcp"
)

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the Shiftgrid MCP server",
	Long: `Launch an MCP server over stdio so AI agents can list ranges and days,
and compute streaks and continuous windows through standard tools.`,
	PreRunE: sharedSetupWrapper,
	RunE: func(_ *cobra.Command, _ []string) error {
		return mcp.StartMCPServer(rootCtx, cfg, cacheManager)
	},
}
