package domain

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/louisbranch/dicepool/internal/core/check"
	"github.com/louisbranch/dicepool/internal/core/dice"
	"github.com/louisbranch/dicepool/internal/services/engine"
)

// RollDicePoolInput represents the MCP tool input for rolling a chain of
// dice expressions.
type RollDicePoolInput struct {
	Dice          []string `json:"dice,omitempty" jsonschema:"dice expressions in [m*]NdS[+C] form, rolled in order; x stands for the previous expression's hits"`
	Preset        string   `json:"preset,omitempty" jsonschema:"optional preset supplying dice and rules"`
	Success       *int     `json:"success,omitempty" jsonschema:"lowest die value, modifier included, that counts as a hit"`
	Reroll        *int     `json:"reroll,omitempty" jsonschema:"die value, modifier included, at or above which a die is rolled again"`
	Crit          *int     `json:"crit,omitempty" jsonschema:"natural maximum value that counts as a critical"`
	NoShittyCrits *bool    `json:"no_shitty_crits,omitempty" jsonschema:"turn carried crits into maximum-value dice"`
	Target        *int     `json:"target,omitempty" jsonschema:"hits the last expression needs for the check to succeed"`
	Seed          *int64   `json:"seed,omitempty" jsonschema:"optional seed for reproducible rolls"`
}

// DieResult represents one rolled die in MCP output.
type DieResult struct {
	Sides        int  `json:"sides" jsonschema:"number of faces"`
	Modifier     int  `json:"modifier" jsonschema:"constant added to the die"`
	Value        int  `json:"value" jsonschema:"rolled value including the modifier"`
	Hit          bool `json:"hit" jsonschema:"whether the die counts as a hit"`
	Crit         bool `json:"crit" jsonschema:"whether the die rolled a critical"`
	CriticalFail bool `json:"critical_fail" jsonschema:"whether the die rolled a natural one"`
}

// ExpressionResult represents the MCP output for one rolled expression.
type ExpressionResult struct {
	Expression     string      `json:"expression" jsonschema:"expression as supplied"`
	Dice           []DieResult `json:"dice" jsonschema:"every die rolled, rerolls included"`
	Hits           int         `json:"hits" jsonschema:"dice counted as hits"`
	Crits          int         `json:"crits" jsonschema:"dice counted as criticals"`
	Total          int         `json:"total" jsonschema:"sum of all dice including modifiers"`
	TotalModifier  int         `json:"total_modifier" jsonschema:"sum of all modifiers"`
	Batches        int         `json:"batches" jsonschema:"reroll batches rolled"`
	Glitch         bool        `json:"glitch" jsonschema:"natural ones are a strict majority of the dice"`
	CriticalGlitch bool        `json:"critical_glitch" jsonschema:"glitch with no hits"`
}

// CheckResult represents a hit target comparison.
type CheckResult struct {
	Target  int  `json:"target" jsonschema:"hits needed"`
	Success bool `json:"success" jsonschema:"whether the hits met the target"`
	Margin  int  `json:"margin" jsonschema:"hits above (positive) or below (negative) the target"`
}

// RollDicePoolResult represents the MCP tool output for a rolled chain.
type RollDicePoolResult struct {
	Seed     int64              `json:"seed" jsonschema:"seed used; pass it back to repeat the roll"`
	Rolls    []ExpressionResult `json:"rolls" jsonschema:"one entry per rolled expression, in order"`
	Check    *CheckResult       `json:"check,omitempty" jsonschema:"target comparison, if a target was given"`
	Warnings []string           `json:"warnings,omitempty" jsonschema:"non-fatal problems with the request"`
}

// RollDicePoolTool defines the MCP tool schema for rolling dice pools.
func RollDicePoolTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "roll_dice_pool",
		Description: "Rolls a chain of dice-pool expressions, counting hits, crits and glitches",
	}
}

// RollDicePoolHandler executes a dice-pool roll.
func RollDicePoolHandler(eng Engine) mcp.ToolHandlerFor[RollDicePoolInput, RollDicePoolResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input RollDicePoolInput) (*mcp.CallToolResult, RollDicePoolResult, error) {
		exprs, settings, err := eng.Resolve(engine.DefaultSettings(), input.Preset, input.Dice, engine.Overrides{
			Success:       input.Success,
			Reroll:        input.Reroll,
			Crit:          input.Crit,
			NoShittyCrits: input.NoShittyCrits,
		})
		if err != nil {
			return nil, RollDicePoolResult{}, toolError(err)
		}

		req := engine.RollRequest{Expressions: exprs, Settings: settings}
		if input.Seed != nil {
			req.Seed = *input.Seed
		}
		response, err := eng.Roll(ctx, req)
		if err != nil {
			return nil, RollDicePoolResult{}, toolError(err)
		}

		result := RollDicePoolResult{
			Seed:     response.Seed,
			Rolls:    make([]ExpressionResult, 0, len(response.Rolls)),
			Warnings: warningMessages(response.Warnings),
		}
		for _, roll := range response.Rolls {
			result.Rolls = append(result.Rolls, expressionResult(roll))
		}
		if input.Target != nil {
			hits := 0
			if n := len(response.Rolls); n > 0 {
				hits = response.Rolls[n-1].Summary.Hits
			}
			outcome := check.Check(hits, *input.Target)
			result.Check = &CheckResult{Target: *input.Target, Success: outcome.Success, Margin: outcome.Margin}
		}
		return &mcp.CallToolResult{}, result, nil
	}
}

func expressionResult(roll engine.ExpressionRoll) ExpressionResult {
	summary := roll.Summary
	results := summary.Results()
	out := ExpressionResult{
		Expression:     roll.Expression,
		Dice:           make([]DieResult, 0, len(results)),
		Hits:           summary.Hits,
		Crits:          summary.Crits,
		Total:          summary.Total,
		TotalModifier:  summary.TotalModifier,
		Batches:        roll.Batches,
		Glitch:         summary.Glitch(),
		CriticalGlitch: summary.CriticalGlitch(),
	}
	for _, r := range results {
		out.Dice = append(out.Dice, dieResult(r))
	}
	return out
}

func dieResult(r dice.RollResult) DieResult {
	return DieResult{
		Sides:        r.Sides,
		Modifier:     r.Modifier,
		Value:        r.Value,
		Hit:          r.Hit,
		Crit:         r.Crit,
		CriticalFail: r.CriticalFail,
	}
}

// toolError keeps the user-facing message of coded errors.
func toolError(err error) error {
	if message := userMessage(err); message != "" {
		return fmt.Errorf("%s: %w", message, err)
	}
	return err
}
