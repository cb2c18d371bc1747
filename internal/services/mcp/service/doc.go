// Package service wires MCP transports to the dice tools.
//
// It runs the server over stdio or streamable HTTP and delegates tool
// semantics to the domain handlers.
package service
