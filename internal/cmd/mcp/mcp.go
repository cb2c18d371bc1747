// Package mcp parses MCP command flags and serves the dice tools over stdio
// or HTTP.
package mcp

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/louisbranch/dicepool/internal/platform/cmd"
	"github.com/louisbranch/dicepool/internal/preset"
	"github.com/louisbranch/dicepool/internal/services/engine"
	"github.com/louisbranch/dicepool/internal/services/mcp/service"
)

// Config holds MCP command configuration.
type Config struct {
	HTTPAddr    string `env:"DICEPOOL_MCP_HTTP_ADDR" envDefault:"localhost:8081"`
	Transport   string `env:"DICEPOOL_MCP_TRANSPORT" envDefault:"stdio"`
	PresetsPath string `env:"DICEPOOL_PRESETS"`
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := cmd.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}

	fs.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "HTTP server address (for HTTP transport)")
	fs.StringVar(&cfg.Transport, "transport", cfg.Transport, "Transport type: stdio or http")
	fs.StringVar(&cfg.PresetsPath, "presets", cfg.PresetsPath, "Preset file to serve and watch for changes")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run loads the preset catalog and serves the MCP tools until ctx ends.
func Run(ctx context.Context, cfg Config) error {
	return cmd.RunWithTelemetry(ctx, cmd.ServiceMCP, func(ctx context.Context) error {
		path := strings.TrimSpace(cfg.PresetsPath)
		if path == "" {
			path = preset.DefaultPath()
		}
		catalog, err := preset.Load(path)
		if err != nil {
			return fmt.Errorf("load presets: %w", err)
		}

		return service.Run(ctx, engine.New(catalog), service.Config{
			Transport:   service.TransportKind(strings.ToLower(strings.TrimSpace(cfg.Transport))),
			HTTPAddr:    cfg.HTTPAddr,
			PresetsPath: path,
		})
	})
}
