package dice

import "github.com/louisbranch/dicepool/internal/core/check"

// RollResult captures one rolled die.
type RollResult struct {
	// Value already includes the die modifier.
	Value        int
	Sides        int
	Modifier     int
	Hit          bool
	Crit         bool
	CriticalFail bool
}

// Summary is a node in a tree of roll reports.
//
// A leaf holds the results of one roll and counters computed from those
// results only. An internal node holds child summaries and has no results or
// counters of its own; counters never roll up from children, because each
// node is reported on its own.
type Summary struct {
	leaf     bool
	results  []RollResult
	children []Summary

	Hits          int
	Crits         int
	Total         int
	TotalModifier int
}

// NewLeaf builds a leaf summary from results.
func NewLeaf(results ...RollResult) Summary {
	s := Summary{leaf: true}
	for _, result := range results {
		s = s.withResult(result)
	}
	return s
}

// Group builds an internal node with the given children in order.
func Group(children ...Summary) Summary {
	return Summary{children: append([]Summary(nil), children...)}
}

// Merge returns an internal node whose children are a and b, in that order.
func Merge(a, b Summary) Summary {
	return Group(a, b)
}

// withResult returns a copy of s with result appended and counters updated.
func (s Summary) withResult(result RollResult) Summary {
	s.leaf = true
	s.results = append(s.results[:len(s.results):len(s.results)], result)
	if result.Hit {
		s.Hits++
	}
	if result.Crit {
		s.Crits++
	}
	s.Total += result.Value
	s.TotalModifier += result.Modifier
	return s
}

// IsLeaf reports whether the summary holds roll results rather than children.
func (s Summary) IsLeaf() bool {
	return s.leaf
}

// Results returns a copy of the summary's own results.
func (s Summary) Results() []RollResult {
	return append([]RollResult(nil), s.results...)
}

// Children returns a copy of the summary's child nodes.
func (s Summary) Children() []Summary {
	return append([]Summary(nil), s.children...)
}

// CriticalFails counts natural ones among the summary's own results.
func (s Summary) CriticalFails() int {
	fails := 0
	for _, result := range s.results {
		if result.CriticalFail {
			fails++
		}
	}
	return fails
}

// Glitch reports whether natural ones are a strict majority of the own results.
func (s Summary) Glitch() bool {
	return check.IsGlitch(s.CriticalFails(), len(s.results))
}

// CriticalGlitch reports a glitch with no hits.
func (s Summary) CriticalGlitch() bool {
	return s.Glitch() && s.Hits == 0
}

// Walk visits s and its descendants depth first, parents before children.
func (s Summary) Walk(fn func(node Summary, depth int)) {
	s.walk(fn, 0)
}

func (s Summary) walk(fn func(Summary, int), depth int) {
	fn(s, depth)
	for _, child := range s.children {
		child.walk(fn, depth+1)
	}
}
