package domain

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/louisbranch/dicepool/internal/core/probability"
	"github.com/louisbranch/dicepool/internal/services/engine"
)

// maxTrials caps Monte Carlo runs requested over MCP.
const maxTrials = 100000

// DicePoolProbabilityInput represents the MCP tool input for exact pool
// statistics.
type DicePoolProbabilityInput struct {
	Dice          []string `json:"dice,omitempty" jsonschema:"dice expressions in [m*]NdS[+C] form, analyzed independently"`
	Preset        string   `json:"preset,omitempty" jsonschema:"optional preset supplying dice and rules"`
	Success       *int     `json:"success,omitempty" jsonschema:"lowest die value, modifier included, that counts as a hit"`
	NoShittyCrits *bool    `json:"no_shitty_crits,omitempty" jsonschema:"no-shitty-crits rules"`
	Hits          *int     `json:"hits,omitempty" jsonschema:"hit count that counts as success"`
	Total         *int     `json:"total,omitempty" jsonschema:"unmodified dice sum that counts as success"`
	Trials        int      `json:"trials,omitempty" jsonschema:"optional Monte Carlo trials to compare against the exact values"`
	Seed          *int64   `json:"seed,omitempty" jsonschema:"optional seed for the Monte Carlo run"`
}

// DistributionPoint represents one outcome of a distribution.
type DistributionPoint struct {
	Value   int     `json:"value" jsonschema:"outcome"`
	Percent float64 `json:"percent" jsonschema:"chance of exactly this outcome, in percent"`
}

// SimulationResult represents observed rates from a Monte Carlo run.
type SimulationResult struct {
	Trials         int     `json:"trials" jsonschema:"rolls simulated"`
	HitRate        float64 `json:"hit_rate" jsonschema:"observed chance of reaching the hit target"`
	TotalRate      float64 `json:"total_rate,omitempty" jsonschema:"observed chance of reaching the total target"`
	GlitchRate     float64 `json:"glitch_rate" jsonschema:"observed glitch chance"`
	CriticalGlitch float64 `json:"critical_glitch_rate" jsonschema:"observed critical glitch chance"`
	MeanHits       float64 `json:"mean_hits" jsonschema:"observed mean hits"`
	MeanTotal      float64 `json:"mean_total" jsonschema:"observed mean modified total"`
	Truncated      int     `json:"truncated,omitempty" jsonschema:"trials stopped at the reroll limit"`
}

// PoolProbability represents the exact statistics of one expression.
type PoolProbability struct {
	Expression       string              `json:"expression" jsonschema:"expression as supplied"`
	Dice             int                 `json:"dice" jsonschema:"dice in the pool"`
	HitTarget        int                 `json:"hit_target" jsonschema:"hit target used"`
	HitProbability   float64             `json:"hit_probability" jsonschema:"chance of at least hit_target hits"`
	TotalTarget      *int                `json:"total_target,omitempty" jsonschema:"total target, if given"`
	TotalProbability *float64            `json:"total_probability,omitempty" jsonschema:"chance the unmodified sum reaches total_target"`
	Glitch           float64             `json:"glitch" jsonschema:"chance at least half the dice roll a natural one"`
	CriticalGlitch   float64             `json:"critical_glitch" jsonschema:"chance of a glitch while missing the hit target"`
	MeanHits         float64             `json:"mean_hits" jsonschema:"expected hits"`
	MeanTotal        float64             `json:"mean_total" jsonschema:"expected modified total"`
	Hits             []DistributionPoint `json:"hits" jsonschema:"hit count distribution"`
	Totals           []DistributionPoint `json:"totals" jsonschema:"modified total distribution"`
	Simulation       *SimulationResult   `json:"simulation,omitempty" jsonschema:"Monte Carlo comparison, if trials were requested"`
}

// DicePoolProbabilityResult represents the MCP tool output for pool
// statistics.
type DicePoolProbabilityResult struct {
	Pools    []PoolProbability `json:"pools" jsonschema:"one entry per analyzed expression"`
	Seed     int64             `json:"seed,omitempty" jsonschema:"seed of the Monte Carlo run"`
	Warnings []string          `json:"warnings,omitempty" jsonschema:"non-fatal problems with the request"`
}

// DicePoolProbabilityTool defines the MCP tool schema for pool statistics.
func DicePoolProbabilityTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "dice_pool_probability",
		Description: "Computes exact hit, total and glitch probabilities for dice-pool expressions",
	}
}

// DicePoolProbabilityHandler computes pool statistics.
func DicePoolProbabilityHandler(eng Engine) mcp.ToolHandlerFor[DicePoolProbabilityInput, DicePoolProbabilityResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input DicePoolProbabilityInput) (*mcp.CallToolResult, DicePoolProbabilityResult, error) {
		exprs, settings, err := eng.Resolve(engine.DefaultSettings(), input.Preset, input.Dice, engine.Overrides{
			Success:       input.Success,
			NoShittyCrits: input.NoShittyCrits,
		})
		if err != nil {
			return nil, DicePoolProbabilityResult{}, toolError(err)
		}

		req := engine.ProbabilityRequest{
			Expressions: exprs,
			Settings:    settings,
			Targets:     probability.Targets{Hits: input.Hits, Total: input.Total},
			Trials:      min(max(input.Trials, 0), maxTrials),
		}
		if input.Seed != nil {
			req.Seed = *input.Seed
		}
		response, err := eng.Probability(ctx, req)
		if err != nil {
			return nil, DicePoolProbabilityResult{}, toolError(err)
		}

		result := DicePoolProbabilityResult{
			Pools:    make([]PoolProbability, 0, len(response.Reports)),
			Seed:     response.Seed,
			Warnings: warningMessages(response.Warnings),
		}
		for _, report := range response.Reports {
			result.Pools = append(result.Pools, poolProbability(report))
		}
		return &mcp.CallToolResult{}, result, nil
	}
}

func poolProbability(report engine.PoolReport) PoolProbability {
	a := report.Analysis
	out := PoolProbability{
		Expression:     report.Expression,
		Dice:           report.Pool.Count(),
		HitTarget:      a.HitTarget,
		HitProbability: a.HitProbability,
		Glitch:         a.Glitch,
		CriticalGlitch: a.CriticalGlitch,
		MeanHits:       report.Hits.Mean(),
		MeanTotal:      report.Total.Mean() + float64(report.Total.Modifier()),
		Hits:           points(report.Hits.Points()),
		Totals:         points(report.Total.Points()),
	}
	if a.HasTotalTarget {
		target, p := a.TotalTarget, a.TotalProbability
		out.TotalTarget = &target
		out.TotalProbability = &p
	}
	if sim := report.Simulation; sim != nil {
		out.Simulation = &SimulationResult{
			Trials:         sim.Trials,
			HitRate:        sim.HitRateAtLeast(a.HitTarget),
			GlitchRate:     sim.GlitchRate(),
			CriticalGlitch: sim.CriticalGlitchRate(),
			MeanHits:       sim.HitStats().Mean,
			MeanTotal:      sim.TotalStats().Mean,
			Truncated:      sim.Truncated,
		}
		if a.HasTotalTarget {
			out.Simulation.TotalRate = sim.TotalRateAtLeast(a.TotalTarget + a.TotalModifier)
		}
	}
	return out
}

func points(in []probability.Point) []DistributionPoint {
	out := make([]DistributionPoint, 0, len(in))
	for _, p := range in {
		out = append(out, DistributionPoint{Value: p.Value, Percent: p.Percent})
	}
	return out
}
