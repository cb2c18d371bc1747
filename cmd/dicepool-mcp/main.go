package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	mcpcmd "github.com/louisbranch/dicepool/internal/cmd/mcp"
	"github.com/louisbranch/dicepool/internal/platform/config"
	apperrors "github.com/louisbranch/dicepool/internal/platform/errors"
)

// main starts the MCP server on stdio or HTTP.
func main() {
	if err := config.LoadDotEnv(".env", false); err != nil {
		config.Exitf("%v", err)
	}
	cfg, err := mcpcmd.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		config.Exitf("parse flags: %v", err)
	}
	log.SetPrefix("[MCP] ")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := mcpcmd.Run(ctx, cfg); err != nil {
		config.ExitWithCode(apperrors.CodeOf(err).ExitCode(), "failed to serve MCP: %v", err)
	}
}
