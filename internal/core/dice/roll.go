package dice

import (
	"fmt"

	"github.com/louisbranch/dicepool/internal/core/check"
)

// DefaultMaxBatches caps reroll batches when Rules.MaxBatches is not set.
const DefaultMaxBatches = 1000

// Source draws uniform integers in [0, n). *math/rand.Rand satisfies it.
type Source interface {
	Intn(n int) int
}

// Rules configures how a pool is rolled.
type Rules struct {
	// Success is the value at or above which a die counts as a hit.
	Success int
	// CritValue is the natural face that counts as a crit; it must also be
	// the die's maximum face.
	CritValue int
	// Reroll is the value at or above which a die is rolled again.
	Reroll int
	// NoShittyCrits makes forced-crit dice always roll their maximum face.
	NoShittyCrits bool
	// MaxBatches caps the number of reroll batches. Zero means DefaultMaxBatches.
	MaxBatches int
}

// DefaultRules returns rules with every threshold unreachable.
func DefaultRules() Rules {
	return Rules{
		Success:   Unreachable,
		CritValue: Unreachable,
		Reroll:    Unreachable,
	}
}

// Roller rolls one pool and owns the running summary for that roll.
type Roller struct {
	pool    Pool
	rules   Rules
	src     Source
	results []RollResult
	batches int
}

// NewRoller validates rules and returns a Roller for pool.
//
// A reroll threshold of 1 or less would make every face eligible forever, so
// it is rejected with ErrUnboundedReroll.
func NewRoller(pool Pool, rules Rules, src Source) (*Roller, error) {
	if src == nil {
		return nil, ErrMissingSource
	}
	if rules.Reroll <= 1 {
		return nil, fmt.Errorf("%w: reroll threshold %d", ErrUnboundedReroll, rules.Reroll)
	}
	if rules.MaxBatches <= 0 {
		rules.MaxBatches = DefaultMaxBatches
	}
	return &Roller{pool: pool, rules: rules, src: src}, nil
}

// Roll rolls the pool, then keeps rerolling every die from the latest batch
// that reached the reroll threshold until a batch produces none.
//
// Every rolled die is recorded, so rerolled dice appear once per roll. When
// the batch cap is hit the results gathered so far are kept and
// ErrRerollLimit is returned.
func (r *Roller) Roll() error {
	batch := r.pool.Dice
	for len(batch) > 0 {
		if r.batches >= r.rules.MaxBatches {
			return fmt.Errorf("%w: stopped after %d batches", ErrRerollLimit, r.batches)
		}
		batch = r.rollBatch(batch)
	}
	return nil
}

// rollBatch records one result per die and returns the dice to reroll.
func (r *Roller) rollBatch(batch []Die) []Die {
	r.batches++
	var reroll []Die
	for _, die := range batch {
		result := r.rollDie(die)
		if check.MeetsThreshold(result.Value, r.rules.Reroll) {
			reroll = append(reroll, die)
		}
		r.results = append(r.results, result)
	}
	return reroll
}

// rollDie rolls a single die and classifies the result.
func (r *Roller) rollDie(die Die) RollResult {
	sides := max(die.Sides, 1)
	var value int
	if die.ForcedCrit && r.rules.NoShittyCrits {
		value = die.Modifier + sides
	} else {
		value = 1 + die.Modifier + r.src.Intn(sides)
	}
	natural := value - die.Modifier

	return RollResult{
		Value:        value,
		Sides:        die.Sides,
		Modifier:     die.Modifier,
		Hit:          check.MeetsThreshold(value, r.rules.Success),
		Crit:         natural == die.Sides && natural == r.rules.CritValue,
		CriticalFail: value == 1,
	}
}

// Batches returns how many batches the last Roll performed.
func (r *Roller) Batches() int {
	return r.batches
}

// Summary returns the leaf summary of every result rolled so far.
func (r *Roller) Summary() Summary {
	return NewLeaf(r.results...)
}

// Roll rolls pool under rules with src and returns its summary.
// On ErrRerollLimit the partial summary is returned with the error.
func Roll(pool Pool, rules Rules, src Source) (Summary, error) {
	roller, err := NewRoller(pool, rules, src)
	if err != nil {
		return Summary{}, err
	}
	err = roller.Roll()
	return roller.Summary(), err
}
