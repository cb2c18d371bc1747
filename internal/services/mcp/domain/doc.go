// Package domain maps MCP tool and resource calls onto the dice engine.
//
// Handlers translate tool input into engine requests and flatten engine
// responses into JSON-friendly results. Coded engine errors surface with
// their user-facing message so clients can show them as-is.
package domain
