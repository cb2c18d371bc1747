package domain

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/louisbranch/dicepool/internal/preset"
)

// PresetsResourceURI addresses the preset catalog resource.
const PresetsResourceURI = "dicepool://presets"

// ListPresetsInput represents the MCP tool input for listing presets.
type ListPresetsInput struct{}

// ListPresetsResult represents the MCP tool output for listing presets.
type ListPresetsResult struct {
	Presets []preset.Preset `json:"presets" jsonschema:"available presets sorted by name"`
}

// ListPresetsTool defines the MCP tool schema for listing presets.
func ListPresetsTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "list_presets",
		Description: "Lists the named dice-pool presets and the rules they set",
	}
}

// ListPresetsHandler lists the engine's presets.
func ListPresetsHandler(eng Engine) mcp.ToolHandlerFor[ListPresetsInput, ListPresetsResult] {
	return func(context.Context, *mcp.CallToolRequest, ListPresetsInput) (*mcp.CallToolResult, ListPresetsResult, error) {
		return &mcp.CallToolResult{}, ListPresetsResult{Presets: eng.Presets()}, nil
	}
}

// PresetsResource defines the readable preset catalog.
func PresetsResource() *mcp.Resource {
	return &mcp.Resource{
		URI:         PresetsResourceURI,
		Name:        "presets",
		Title:       "Dice-pool presets",
		Description: "Named dice expression chains with their rule overrides",
		MIMEType:    "application/json",
	}
}

// PresetsResourceHandler serves the preset catalog as JSON.
func PresetsResourceHandler(eng Engine) mcp.ResourceHandler {
	return func(_ context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
		uri := PresetsResourceURI
		if req != nil && req.Params != nil && req.Params.URI != "" {
			uri = req.Params.URI
		}
		data, err := json.MarshalIndent(ListPresetsResult{Presets: eng.Presets()}, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("marshal presets: %w", err)
		}
		return &mcp.ReadResourceResult{
			Contents: []*mcp.ResourceContents{
				{
					URI:      uri,
					MIMEType: "application/json",
					Text:     string(data),
				},
			},
		}, nil
	}
}
