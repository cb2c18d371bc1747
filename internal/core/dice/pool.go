// Package dice implements dice-pool notation, rolling and roll summaries.
package dice

import "math"

// Unreachable is the default threshold for success, reroll and crit counting.
// No die produced by the parser can reach it, so the rule it guards stays off.
const Unreachable = math.MaxUint16

// Die describes a single die in a pool.
type Die struct {
	Sides    int
	Modifier int
	// ForcedCrit dice always roll their maximum face under the
	// no-shitty-crits variant.
	ForcedCrit bool
}

// Pool is the ordered set of dice generated from one notation expression.
type Pool struct {
	Dice         []Die
	HitThreshold int
}

// NewPool returns a pool holding a copy of dice.
func NewPool(dice []Die, hitThreshold int) Pool {
	return Pool{
		Dice:         append([]Die(nil), dice...),
		HitThreshold: hitThreshold,
	}
}

// Count returns the number of dice in the pool.
func (p Pool) Count() int {
	return len(p.Dice)
}

// Sides returns the side count shared by every die. The second return value
// is false when the pool is empty or mixes dice of different sizes.
func (p Pool) Sides() (int, bool) {
	if len(p.Dice) == 0 {
		return 0, false
	}
	sides := p.Dice[0].Sides
	for _, die := range p.Dice[1:] {
		if die.Sides != sides {
			return 0, false
		}
	}
	return sides, true
}

// TotalModifier sums the per-die modifiers.
func (p Pool) TotalModifier() int {
	total := 0
	for _, die := range p.Dice {
		total += die.Modifier
	}
	return total
}

// WithHitThreshold returns a copy of the pool with a different hit threshold.
func (p Pool) WithHitThreshold(threshold int) Pool {
	return NewPool(p.Dice, threshold)
}

// IsEmpty reports whether the pool has no dice to roll.
func (p Pool) IsEmpty() bool {
	return len(p.Dice) == 0
}
