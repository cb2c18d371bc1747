// Package check holds the threshold rules shared by the roller, summaries and
// the probability engine.
package check

// MeetsThreshold returns true if value >= threshold.
// Hits and reroll eligibility are both decided this way.
func MeetsThreshold(value, threshold int) bool {
	return value >= threshold
}

// Margin calculates how far hits landed from a target.
// Positive values indicate extra hits, negative indicate a shortfall.
func Margin(hits, target int) int {
	return hits - target
}

// Result represents the outcome of comparing hits against a target.
type Result struct {
	Success bool
	Margin  int
}

// Check compares a hit count against a target.
func Check(hits, target int) Result {
	return Result{
		Success: MeetsThreshold(hits, target),
		Margin:  Margin(hits, target),
	}
}

// IsGlitch reports whether natural ones make up a strict majority of rolled dice.
func IsGlitch(ones, rolled int) bool {
	if rolled <= 0 {
		return false
	}
	return ones*2 > rolled
}

// GlitchThreshold returns the smallest count of natural ones that is at least
// half of a pool of the given size.
func GlitchThreshold(dice int) int {
	if dice <= 0 {
		return 0
	}
	return (dice + 1) / 2
}
