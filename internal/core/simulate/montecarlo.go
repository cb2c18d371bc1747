// Package simulate samples dice pools through the real roller so empirical
// frequencies can be compared with exact distributions.
package simulate

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"math"
	"slices"

	"github.com/louisbranch/dicepool/internal/core/check"
	"github.com/louisbranch/dicepool/internal/core/dice"
	"github.com/louisbranch/dicepool/internal/core/probability"
)

// ErrNoTrials indicates a simulation was requested with no trials.
var ErrNoTrials = errors.New("trials must be positive")

// Result aggregates the outcome of every simulated roll.
type Result struct {
	Trials int
	// HitTarget is the hit count below which a glitch is critical.
	HitTarget int
	// Truncated counts trials that stopped at the reroll batch cap.
	Truncated        int
	Glitches         int
	CriticalGlitches int

	hits   map[int]int
	totals map[int]int
}

// Stats summarizes a set of integer samples.
type Stats struct {
	Mean   float64
	StdDev float64
	Min    int
	Max    int
}

// Run rolls pool trials times with src and tallies hits, totals and glitches.
//
// Glitches are counted the way probability.GlitchProbability defines them:
// natural ones on at least half of the rolled dice. A glitch is critical when
// the roll scored fewer than hitTarget hits. Rolls that reach the reroll
// batch cap are counted with their partial results. Cancellation is checked
// between trials; the tallies gathered so far are returned with the context
// error.
func Run(ctx context.Context, pool dice.Pool, rules dice.Rules, src dice.Source, trials, hitTarget int) (Result, error) {
	if trials <= 0 {
		return Result{}, ErrNoTrials
	}

	result := Result{
		HitTarget: hitTarget,
		hits:      make(map[int]int),
		totals:    make(map[int]int),
	}
	for i := 0; i < trials; i++ {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		summary, err := dice.Roll(pool, rules, src)
		switch {
		case errors.Is(err, dice.ErrRerollLimit):
			result.Truncated++
		case err != nil:
			return result, fmt.Errorf("trial %d: %w", i+1, err)
		}
		result.record(summary)
	}
	return result, nil
}

func (r *Result) record(summary dice.Summary) {
	r.Trials++
	r.hits[summary.Hits]++
	r.totals[summary.Total]++
	if !glitched(summary.Results()) {
		return
	}
	r.Glitches++
	if summary.Hits < r.HitTarget {
		r.CriticalGlitches++
	}
}

// glitched reports whether natural ones cover at least half of results.
func glitched(results []dice.RollResult) bool {
	if len(results) == 0 {
		return false
	}
	ones := 0
	for _, result := range results {
		if result.Value-result.Modifier == 1 {
			ones++
		}
	}
	return ones >= check.GlitchThreshold(len(results))
}

// HitPoints returns the observed hit counts as ascending percentages.
func (r Result) HitPoints() []probability.Point {
	return r.points(r.hits)
}

// TotalPoints returns the observed modified totals as ascending percentages.
func (r Result) TotalPoints() []probability.Point {
	return r.points(r.totals)
}

func (r Result) points(counts map[int]int) []probability.Point {
	values := slices.Sorted(maps.Keys(counts))
	points := make([]probability.Point, 0, len(values))
	for _, value := range values {
		points = append(points, probability.Point{Value: value, Percent: 100 * r.rate(counts[value])})
	}
	return points
}

// HitRateAtLeast returns the fraction of trials with at least target hits.
func (r Result) HitRateAtLeast(target int) float64 {
	return r.rateAtLeast(r.hits, target)
}

// TotalRateAtLeast returns the fraction of trials whose modified total
// reached target.
func (r Result) TotalRateAtLeast(target int) float64 {
	return r.rateAtLeast(r.totals, target)
}

func (r Result) rateAtLeast(counts map[int]int, target int) float64 {
	matched := 0
	for value, count := range counts {
		if value >= target {
			matched += count
		}
	}
	return r.rate(matched)
}

// GlitchRate returns the fraction of trials that glitched.
func (r Result) GlitchRate() float64 {
	return r.rate(r.Glitches)
}

// CriticalGlitchRate returns the fraction of trials that critically glitched.
func (r Result) CriticalGlitchRate() float64 {
	return r.rate(r.CriticalGlitches)
}

func (r Result) rate(count int) float64 {
	if r.Trials == 0 {
		return 0
	}
	return float64(count) / float64(r.Trials)
}

// HitStats returns mean, spread and range of the hit counts.
func (r Result) HitStats() Stats {
	return calcStats(r.hits)
}

// TotalStats returns mean, spread and range of the modified totals.
func (r Result) TotalStats() Stats {
	return calcStats(r.totals)
}

// calcStats computes population statistics from a value histogram.
func calcStats(counts map[int]int) Stats {
	n := 0
	sum := 0.0
	for value, count := range counts {
		n += count
		sum += float64(value * count)
	}
	if n == 0 {
		return Stats{}
	}
	mean := sum / float64(n)

	var acc float64
	for value, count := range counts {
		d := float64(value) - mean
		acc += d * d * float64(count)
	}

	values := slices.Sorted(maps.Keys(counts))
	return Stats{
		Mean:   mean,
		StdDev: math.Sqrt(acc / float64(n)),
		Min:    values[0],
		Max:    values[len(values)-1],
	}
}
