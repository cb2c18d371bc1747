package service

import (
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/louisbranch/dicepool/internal/services/mcp/domain"
)

func registerDiceTools(registrar mcpRegistrationTarget, eng domain.Engine) error {
	registrations := []struct {
		tool    *mcp.Tool
		handler any
	}{
		{tool: domain.RollDicePoolTool(), handler: domain.RollDicePoolHandler(eng)},
		{tool: domain.DicePoolProbabilityTool(), handler: domain.DicePoolProbabilityHandler(eng)},
		{tool: domain.ListPresetsTool(), handler: domain.ListPresetsHandler(eng)},
	}
	for _, registration := range registrations {
		if err := registerTool(registrar, registration.tool, registration.handler); err != nil {
			return err
		}
	}
	return nil
}

func registerPresetResources(registrar mcpRegistrationTarget, eng domain.Engine) {
	registrar.AddResource(domain.PresetsResource(), domain.PresetsResourceHandler(eng))
}

func registerTool(registrar mcpRegistrationTarget, tool *mcp.Tool, handler any) error {
	if tool == nil {
		return fmt.Errorf("tool is nil")
	}
	return registrar.AddTool(tool, handler)
}
