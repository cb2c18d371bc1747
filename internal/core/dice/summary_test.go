package dice

import "testing"

func TestNewLeafCounters(t *testing.T) {
	leaf := NewLeaf(
		RollResult{Value: 6, Sides: 6, Hit: true, Crit: true},
		RollResult{Value: 7, Sides: 6, Modifier: 2, Hit: true},
		RollResult{Value: 1, Sides: 6, CriticalFail: true},
	)

	if !leaf.IsLeaf() {
		t.Fatal("expected leaf")
	}
	if leaf.Hits != 2 || leaf.Crits != 1 || leaf.Total != 14 || leaf.TotalModifier != 2 {
		t.Fatalf("unexpected counters: %+v", leaf)
	}
	if leaf.CriticalFails() != 1 {
		t.Fatalf("critical fails = %d, want 1", leaf.CriticalFails())
	}
}

func TestMergeDoesNotRollUp(t *testing.T) {
	a := NewLeaf(RollResult{Value: 6, Sides: 6, Hit: true})
	b := NewLeaf(RollResult{Value: 5, Sides: 6, Hit: true}, RollResult{Value: 2, Sides: 6})

	merged := Merge(a, b)
	if merged.IsLeaf() {
		t.Fatal("merged summary should be an internal node")
	}
	if merged.Hits != 0 || merged.Total != 0 || len(merged.Results()) != 0 {
		t.Fatalf("internal node should have no own counters: %+v", merged)
	}

	children := merged.Children()
	if len(children) != 2 {
		t.Fatalf("children = %d, want 2", len(children))
	}
	if children[0].Total != 6 || children[1].Total != 7 {
		t.Fatalf("children out of order: %d, %d", children[0].Total, children[1].Total)
	}
}

func TestMergeNestsWithoutFlattening(t *testing.T) {
	a := NewLeaf(RollResult{Value: 1})
	b := NewLeaf(RollResult{Value: 2})
	c := NewLeaf(RollResult{Value: 3})

	nested := Merge(Merge(a, b), c)
	children := nested.Children()
	if len(children) != 2 {
		t.Fatalf("children = %d, want 2", len(children))
	}
	if children[0].IsLeaf() || len(children[0].Children()) != 2 {
		t.Fatal("first child should be the inner merge")
	}
}

func TestGroupKeepsOrder(t *testing.T) {
	group := Group(NewLeaf(RollResult{Value: 1}), NewLeaf(RollResult{Value: 2}), NewLeaf(RollResult{Value: 3}))

	var totals []int
	group.Walk(func(node Summary, depth int) {
		if node.IsLeaf() {
			if depth != 1 {
				t.Errorf("leaf depth = %d, want 1", depth)
			}
			totals = append(totals, node.Total)
		}
	})
	if len(totals) != 3 || totals[0] != 1 || totals[1] != 2 || totals[2] != 3 {
		t.Fatalf("walk order = %v, want [1 2 3]", totals)
	}
}

func TestSummaryValueSemantics(t *testing.T) {
	leaf := NewLeaf(RollResult{Value: 4})
	results := leaf.Results()
	results[0].Value = 99
	if leaf.Results()[0].Value != 4 {
		t.Fatal("Results should return a copy")
	}

	extended := leaf.withResult(RollResult{Value: 2})
	if len(leaf.Results()) != 1 || len(extended.Results()) != 2 {
		t.Fatal("withResult should not mutate the receiver")
	}
}

func TestSummaryGlitch(t *testing.T) {
	tests := []struct {
		name         string
		results      []RollResult
		wantGlitch   bool
		wantCritical bool
	}{
		{
			name:    "no ones",
			results: []RollResult{{Value: 3}, {Value: 5, Hit: true}},
		},
		{
			name:    "half ones is not a glitch",
			results: []RollResult{{Value: 1, CriticalFail: true}, {Value: 3}},
		},
		{
			name:       "majority ones with a hit",
			results:    []RollResult{{Value: 1, CriticalFail: true}, {Value: 1, CriticalFail: true}, {Value: 6, Hit: true}},
			wantGlitch: true,
		},
		{
			name:         "majority ones without hits",
			results:      []RollResult{{Value: 1, CriticalFail: true}, {Value: 1, CriticalFail: true}, {Value: 2}},
			wantGlitch:   true,
			wantCritical: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			leaf := NewLeaf(tt.results...)
			if leaf.Glitch() != tt.wantGlitch {
				t.Errorf("Glitch() = %v, want %v", leaf.Glitch(), tt.wantGlitch)
			}
			if leaf.CriticalGlitch() != tt.wantCritical {
				t.Errorf("CriticalGlitch() = %v, want %v", leaf.CriticalGlitch(), tt.wantCritical)
			}
		})
	}
}
