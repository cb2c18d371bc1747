package service

import (
	"errors"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/louisbranch/dicepool/internal/preset"
	"github.com/louisbranch/dicepool/internal/services/mcp/domain"
)

const (
	// serverName identifies the MCP server to clients.
	serverName = "dicepool"
	// serverVersion identifies the MCP server version.
	serverVersion = "0.1.0"
	// defaultHTTPAddr binds the HTTP transport to localhost only.
	defaultHTTPAddr = "localhost:8081"
)

// TransportKind selects how the server talks to clients.
type TransportKind string

const (
	// TransportStdio uses standard input/output for MCP.
	TransportStdio TransportKind = "stdio"
	// TransportHTTP serves the streamable HTTP transport on /mcp.
	TransportHTTP TransportKind = "http"
)

// Config configures the MCP server.
type Config struct {
	Transport TransportKind
	// HTTPAddr is the listen address for the HTTP transport.
	HTTPAddr string
	// PresetsPath, when set, is watched and reloaded into the engine on change.
	PresetsPath string
}

// Engine is the dice engine behind the server. Its presets can be swapped
// while the server runs.
type Engine interface {
	domain.Engine
	SetPresets(preset.Catalog)
}

// Server is an MCP server exposing the dice tools.
type Server struct {
	mcpServer *mcp.Server
	engine    Engine
}

// New builds a server with every dice tool and resource registered.
func New(eng Engine) (*Server, error) {
	if eng == nil {
		return nil, errors.New("dice engine is required")
	}

	mcpServer := mcp.NewServer(&mcp.Implementation{Name: serverName, Version: serverVersion}, nil)
	registrar := mcpServerRegistrationAdapter{server: mcpServer}
	if err := registerDiceTools(registrar, eng); err != nil {
		return nil, fmt.Errorf("register dice tools: %w", err)
	}
	registerPresetResources(registrar, eng)

	return &Server{mcpServer: mcpServer, engine: eng}, nil
}
