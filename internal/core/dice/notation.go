package dice

import (
	"strconv"
	"strings"
)

// Placeholder is replaced with ParseOptions.Previous before an expression is parsed.
const Placeholder = "x"

// ParseOptions controls how a notation expression becomes a Pool.
type ParseOptions struct {
	// HitThreshold is copied onto the resulting pool.
	HitThreshold int
	// Previous is substituted for every Placeholder in the expression,
	// usually the hit count of the roll before this one.
	Previous int
	// Crits is the crit count carried over from the previous roll.
	Crits int
	// NoShittyCrits turns carried crits into forced-crit dice.
	NoShittyCrits bool
}

// Parse turns an expression in "[m*]NdS[+C]" form into a Pool.
//
// # Groups and modifiers
//
// The optional multiplier m rolls the "NdS+C" group m times. The +C modifier
// is attached to the first die of each group only, so "2d6+4" is one d6 with
// +4 and one plain d6, while "3*1d20+8" is three d20 each carrying +8.
//
// # No-shitty-crits
//
// With NoShittyCrits set, Crits groups are taken out of the normal groups
// (or the single group is dropped when no multiplier is present), and twice
// as many groups of forced-crit dice are appended after the normal ones.
//
// # Leniency
//
// Parse only fails when the expression has no "d" separator. Numeric fields
// that do not parse fall back to defaults (multiplier 1, count 0, sides 1,
// modifier 0), so malformed input degrades to an empty or trivial pool and
// callers are expected to check Pool.IsEmpty.
func Parse(expr string, opts ParseOptions) (Pool, bool) {
	expr = strings.ReplaceAll(expr, Placeholder, strconv.Itoa(opts.Previous))
	if !strings.Contains(expr, "d") {
		return Pool{}, false
	}

	rolls := 1
	group := expr
	multiplied := false
	if mult, rest, ok := strings.Cut(expr, "*"); ok {
		rolls = parseField(mult, 1)
		group, _, _ = strings.Cut(rest, "*")
		multiplied = true
	}

	count, side := splitGroup(group)
	sides, modifier := parseSide(side)

	crits := 0
	if opts.NoShittyCrits {
		crits = max(opts.Crits, 0)
		switch {
		case multiplied:
			rolls = max(rolls-crits, 0)
		case crits > 0:
			rolls = 0
		}
		crits *= 2
	}

	var dice []Die
	for i := 0; i < rolls; i++ {
		dice = fillGroup(dice, count, sides, modifier, false)
	}
	for i := 0; i < crits; i++ {
		dice = fillGroup(dice, count, sides, modifier, true)
	}

	return Pool{Dice: dice, HitThreshold: opts.HitThreshold}, true
}

// splitGroup separates "NdS+C" into the dice count and the "S+C" remainder.
func splitGroup(group string) (int, string) {
	parts := strings.Split(group, "d")
	count := parseField(parts[0], 0)
	side := "1"
	if len(parts) > 1 {
		side = parts[1]
	}
	return count, side
}

// parseSide reads "S" or "S+C" into sides and modifier.
func parseSide(side string) (int, int) {
	sidesField, modField, hasMod := strings.Cut(side, "+")
	sides := parseField(sidesField, 1)
	if sides < 1 {
		sides = 1
	}
	modifier := 0
	if hasMod {
		modField, _, _ = strings.Cut(modField, "+")
		modifier = parseField(modField, 0)
	}
	return sides, modifier
}

// fillGroup appends count dice, giving the modifier to the first one.
func fillGroup(dice []Die, count, sides, modifier int, forced bool) []Die {
	for i := 0; i < count; i++ {
		dice = append(dice, Die{Sides: sides, Modifier: modifier, ForcedCrit: forced})
		modifier = 0
	}
	return dice
}

// parseField reads a non-negative integer, returning fallback when it cannot.
func parseField(field string, fallback int) int {
	value, err := strconv.ParseUint(strings.TrimSpace(field), 10, 16)
	if err != nil {
		return fallback
	}
	return int(value)
}
