package dicepool

import (
	"log"

	"github.com/spf13/cobra"

	mcpcmd "github.com/louisbranch/dicepool/internal/cmd/mcp"
)

func (a *app) mcpCommand() *cobra.Command {
	cfg := a.cfg.MCP
	c := &cobra.Command{
		Use:   "mcp",
		Short: "Serve the dice tools to MCP clients",
		Long: `Serves roll_dice_pool, dice_pool_probability and list_presets over stdio or
streamable HTTP. The preset file is watched and reloaded when it changes.`,
		Args: cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			log.SetPrefix("[MCP] ")
			cfg.PresetsPath = a.cfg.PresetsPath
			return mcpcmd.Run(c.Context(), cfg)
		},
	}
	c.Flags().StringVar(&cfg.Transport, "transport", cfg.Transport, "Transport type: stdio or http")
	c.Flags().StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "HTTP server address (for HTTP transport)")
	return c
}
