// Package engine is the application layer shared by the CLI and the MCP
// server.
//
// It turns user-level requests (expression chains, rule settings, presets,
// seeds) into calls on the dice and probability cores, converts core errors
// into coded platform errors, and records a trace span per operation.
package engine
