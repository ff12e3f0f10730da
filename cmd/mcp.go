package cmd

import (
	"github.com/cudkit/udsnap/internal/mcp"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the udsnap MCP server",
	Long: `Launch an MCP server over stdio so AI agents can optimize palettes, generate
brand tokens and score harmony through standard tools.

Tools:
  optimize_palette, generate_brand_tokens, snap_colors,
  harmony_score, classify_distance, list_catalogue`,
	Args: cobra.NoArgs,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		// Colors arrive per tool call, so the shared config only carries defaults.
		return sharedSetup(rootCtx, cmd, args)
	},
	RunE: func(_ *cobra.Command, _ []string) error {
		return mcp.StartMCPServer(rootCtx, cfg, cacheManager)
	},
}
