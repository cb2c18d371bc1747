package probability

import (
	"testing"

	"github.com/louisbranch/dicepool/internal/core/dice"
)

func uniformPool(count, sides, hit int) dice.Pool {
	dieList := make([]dice.Die, count)
	for i := range dieList {
		dieList[i] = dice.Die{Sides: sides}
	}
	return dice.NewPool(dieList, hit)
}

func TestTotalNormalization(t *testing.T) {
	for _, n := range []int{1, 2, 3, 5, 8} {
		for _, sides := range []int{2, 4, 6, 10} {
			total := NewTotal(uniformPool(n, sides, 5))
			sum := 0.0
			for exponent := n; exponent <= n*sides; exponent++ {
				sum += total.Probability(exponent)
			}
			if !approx(sum, 1) {
				t.Errorf("%dd%d mass = %v, want 1", n, sides, sum)
			}
			if total.Probability(n-1) != 0 || total.Probability(n*sides+1) != 0 {
				t.Errorf("%dd%d has mass outside [%d, %d]", n, sides, n, n*sides)
			}
		}
	}
}

func TestTotalTail(t *testing.T) {
	total := NewTotal(uniformPool(2, 6, 5))
	if got := total.ProbabilityAtLeast(12); !approx(got, 1.0/36) {
		t.Fatalf("P(>=12) = %v, want 1/36", got)
	}
	if got := total.ProbabilityAtLeast(2); !approx(got, 1) {
		t.Fatalf("P(>=2) = %v, want 1", got)
	}
	if got := total.ProbabilityAtLeast(10); !approx(got, 6.0/36) {
		t.Fatalf("P(>=10) = %v, want 6/36", got)
	}
	if got := total.Mean(); !approx(got, 7) {
		t.Fatalf("Mean() = %v, want 7", got)
	}
}

func TestTotalPointsOffsetByModifier(t *testing.T) {
	pool, _ := dice.Parse("2d6+4", dice.ParseOptions{})
	total := NewTotal(pool)
	if total.Modifier() != 4 {
		t.Fatalf("modifier = %d, want 4", total.Modifier())
	}

	points := total.Points()
	if len(points) != 11 {
		t.Fatalf("points = %d, want 11", len(points))
	}
	if points[0].Value != 6 || points[len(points)-1].Value != 16 {
		t.Fatalf("point range = [%d, %d], want [6, 16]", points[0].Value, points[len(points)-1].Value)
	}
	for i := 1; i < len(points); i++ {
		if points[i].Value <= points[i-1].Value {
			t.Fatalf("points not ascending at %d", i)
		}
	}
	if !approx(points[5].Percent, 100*6.0/36) {
		t.Fatalf("peak percent = %v", points[5].Percent)
	}
}

func TestTotalBoundaryPools(t *testing.T) {
	empty := NewTotal(dice.Pool{})
	if !approx(empty.Probability(0), 1) || !approx(empty.ProbabilityAtLeast(0), 1) {
		t.Fatalf("empty pool should put all mass at zero: %v", empty.Polynomial())
	}

	mixed := NewTotal(dice.NewPool([]dice.Die{{Sides: 6}, {Sides: 8}}, 5))
	if !approx(mixed.Probability(2), 1) {
		t.Fatalf("mixed pool should fall back to one side: %v", mixed.Polynomial())
	}
}

func TestHitsBinomial(t *testing.T) {
	// 2d6 hitting on 5+: p = 1/3.
	hits := NewHits(uniformPool(2, 6, 5))
	want := map[int]float64{0: 4.0 / 9, 1: 4.0 / 9, 2: 1.0 / 9}
	for x, p := range want {
		if got := hits.Probability(x); !approx(got, p) {
			t.Errorf("P(%d hits) = %v, want %v", x, got, p)
		}
	}
	if got := hits.Mean(); !approx(got, 2.0/3) {
		t.Fatalf("Mean() = %v, want 2/3", got)
	}
}

func TestHitsAtLeastZeroIsCertain(t *testing.T) {
	pools := []dice.Pool{
		uniformPool(1, 6, 5),
		uniformPool(4, 6, 5),
		uniformPool(12, 6, 5),
		uniformPool(3, 20, 15),
		uniformPool(5, 6, 7),
		uniformPool(5, 6, 1),
		dice.NewPool([]dice.Die{{Sides: 6}, {Sides: 8}}, 5),
	}
	for _, pool := range pools {
		if got := NewHits(pool).ProbabilityAtLeast(0); !approx(got, 1) {
			t.Errorf("pool %+v: P(>=0) = %v, want 1", pool, got)
		}
	}
}

func TestSuccessSides(t *testing.T) {
	tests := []struct {
		name string
		pool dice.Pool
		want int
	}{
		{"hit on five", uniformPool(4, 6, 5), 2},
		{"hit on max", uniformPool(4, 6, 6), 1},
		{"unreachable threshold", uniformPool(4, 6, 7), 0},
		{"default threshold", uniformPool(4, 6, dice.Unreachable), 0},
		{"every face", uniformPool(4, 6, 1), 6},
		{"threshold below one clamps", uniformPool(4, 6, 0), 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SuccessSides(tt.pool); got != tt.want {
				t.Fatalf("SuccessSides() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestHitsUnreachableThreshold(t *testing.T) {
	hits := NewHits(uniformPool(3, 6, 7))
	if !approx(hits.Probability(0), 1) {
		t.Fatalf("P(0 hits) = %v, want 1", hits.Probability(0))
	}
	if hits.ProbabilityAtLeast(1) != 0 {
		t.Fatalf("P(>=1) = %v, want 0", hits.ProbabilityAtLeast(1))
	}
}

func TestHitsPointsAscending(t *testing.T) {
	points := NewHits(uniformPool(5, 6, 5)).Points()
	if len(points) != 6 {
		t.Fatalf("points = %d, want 6", len(points))
	}
	sum := 0.0
	for i, point := range points {
		if point.Value != i {
			t.Fatalf("points[%d].Value = %d", i, point.Value)
		}
		sum += point.Percent
	}
	if !approx(sum, 100) {
		t.Fatalf("percent sum = %v, want 100", sum)
	}
}

func TestBinomial(t *testing.T) {
	tests := []struct {
		n, k int
		want float64
	}{
		{0, 0, 1},
		{5, 0, 1},
		{5, 5, 1},
		{5, 2, 10},
		{10, 3, 120},
		{20, 10, 184756},
	}
	for _, tt := range tests {
		if got := binomial(tt.n, tt.k); got != tt.want {
			t.Errorf("binomial(%d, %d) = %v, want %v", tt.n, tt.k, got, tt.want)
		}
	}
}
