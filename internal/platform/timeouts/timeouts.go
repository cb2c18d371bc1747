// Package timeouts defines shared timeout constants used across commands.
package timeouts

import "time"

// TelemetryShutdown limits how long a command waits for pending spans to
// flush on exit.
const TelemetryShutdown = 5 * time.Second

// ReadHeader limits how long the MCP HTTP server waits for request headers.
const ReadHeader = 5 * time.Second

// MCPShutdown limits how long the MCP HTTP server waits for in-flight tool
// calls after its context is cancelled.
const MCPShutdown = 5 * time.Second

// PresetReloadDebounce coalesces bursts of preset file writes into one reload.
const PresetReloadDebounce = 200 * time.Millisecond
