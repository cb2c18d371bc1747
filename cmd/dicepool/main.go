package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	dicepoolcmd "github.com/louisbranch/dicepool/internal/cmd/dicepool"
)

// main rolls dice, predicts pools or serves MCP depending on the subcommand.
func main() {
	log.SetPrefix("[dicepool] ")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := dicepoolcmd.Execute(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}
