package probability

import (
	"github.com/louisbranch/dicepool/internal/core/check"
	"github.com/louisbranch/dicepool/internal/core/dice"
)

// Targets are the optional success goals a pool is measured against.
type Targets struct {
	// Hits is the hit count that counts as success. When nil, one hit is
	// used so critical glitches mean "glitch with zero hits".
	Hits *int
	// Total is the unmodified dice sum that counts as success.
	Total *int
}

// Analysis is the scalar summary of a pool's exact probabilities.
type Analysis struct {
	HitTarget        int
	HasHitTarget     bool
	TotalTarget      int
	HasTotalTarget   bool
	// TotalModifier is the pool modifier left out of the total target.
	TotalModifier    int
	HitProbability   float64
	TotalProbability float64
	Glitch           float64
	CriticalGlitch   float64
}

// GlitchPool returns a copy of pool whose hit threshold is its own side
// count, so the only successful face of each die stands in for a natural 1.
func GlitchPool(pool dice.Pool) dice.Pool {
	sides, ok := pool.Sides()
	if !ok {
		sides = dice.Unreachable
	}
	return pool.WithHitThreshold(sides)
}

// GlitchProbability returns the chance that at least half of pool's dice
// roll a natural 1. An empty pool cannot glitch.
func GlitchProbability(pool dice.Pool) float64 {
	if pool.IsEmpty() {
		return 0
	}
	ones := NewHits(GlitchPool(pool))
	return ones.ProbabilityAtLeast(check.GlitchThreshold(pool.Count()))
}

// Analyze derives hit, total, glitch and critical-glitch probabilities.
// The critical glitch chance is (1 - P(hits >= hit target)) * P(glitch).
//
// Without a hit target the target is one hit, so a critical glitch means a
// glitch with zero hits. An unreachable target would instead make every
// glitch critical; that reading is deliberately not used.
func Analyze(pool dice.Pool, targets Targets) Analysis {
	analysis := Analysis{HitTarget: 1, TotalModifier: pool.TotalModifier()}
	if targets.Hits != nil {
		analysis.HitTarget = *targets.Hits
		analysis.HasHitTarget = true
	}
	if targets.Total != nil {
		analysis.TotalTarget = *targets.Total
		analysis.HasTotalTarget = true
		analysis.TotalProbability = NewTotal(pool).ProbabilityAtLeast(analysis.TotalTarget)
	}

	analysis.HitProbability = NewHits(pool).ProbabilityAtLeast(analysis.HitTarget)
	analysis.Glitch = GlitchProbability(pool)
	analysis.CriticalGlitch = (1 - analysis.HitProbability) * analysis.Glitch
	return analysis
}
