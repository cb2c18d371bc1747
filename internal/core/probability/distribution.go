package probability

import (
	"maps"
	"math"
	"slices"

	"github.com/louisbranch/dicepool/internal/core/dice"
)

// Point is one bar of a distribution chart.
type Point struct {
	Value   int
	Percent float64
}

// Distribution is an exact, normalized outcome distribution.
type Distribution interface {
	// Probability returns the mass at exactly value.
	Probability(value int) float64
	// ProbabilityAtLeast returns the mass at value and above.
	ProbabilityAtLeast(value int) float64
	// Points lists every stored outcome in ascending order as percentages.
	Points() []Point
	// Mean returns the expected outcome.
	Mean() float64
}

// poolSides returns the pool's common side count, or 1 when it is undefined.
func poolSides(pool dice.Pool) int {
	sides, ok := pool.Sides()
	if !ok || sides < 1 {
		return 1
	}
	return sides
}

// Total is the distribution of the unmodified sum of a pool.
type Total struct {
	polynomial Polynomial
	modifier   int
}

// NewTotal computes the sum distribution of pool by convolving one die's
// generating polynomial with itself once per die. An empty pool puts all
// mass at zero.
func NewTotal(pool dice.Pool) Total {
	if pool.IsEmpty() {
		return Total{polynomial: NewPolynomial(map[int]float64{0: 1})}
	}
	return Total{
		polynomial: Uniform(poolSides(pool)).Pow(pool.Count()),
		modifier:   pool.TotalModifier(),
	}
}

// Polynomial returns the generating polynomial behind the distribution.
func (t Total) Polynomial() Polynomial {
	return t.polynomial
}

// Modifier returns the pool's aggregate modifier used to offset Points.
func (t Total) Modifier() int {
	return t.modifier
}

// Probability returns the chance the dice sum to exactly value.
func (t Total) Probability(value int) float64 {
	return t.polynomial.Coefficient(value)
}

// ProbabilityAtLeast returns the chance the dice sum to value or more.
func (t Total) ProbabilityAtLeast(value int) float64 {
	return t.polynomial.SumFrom(value)
}

// Points lists sums shifted by the pool modifier so they read as final totals.
func (t Total) Points() []Point {
	exponents := t.polynomial.Exponents()
	points := make([]Point, 0, len(exponents))
	for _, exponent := range exponents {
		points = append(points, Point{
			Value:   exponent + t.modifier,
			Percent: 100 * t.polynomial.Coefficient(exponent),
		})
	}
	return points
}

// Mean returns the expected unmodified sum.
func (t Total) Mean() float64 {
	mean := 0.0
	for _, exponent := range t.polynomial.Exponents() {
		mean += float64(exponent) * t.polynomial.Coefficient(exponent)
	}
	return mean
}

// Hits is the distribution of hit counts for a pool.
type Hits struct {
	data map[int]float64
}

// SuccessSides returns how many faces of a pool die reach its hit
// threshold, clamped to [0, sides].
func SuccessSides(pool dice.Pool) int {
	sides := poolSides(pool)
	success := sides - (pool.HitThreshold - 1)
	return min(max(success, 0), sides)
}

// NewHits computes the binomial hit distribution for pool.
//
// For n dice of r sides with s successful faces,
// P(x hits) = C(n, x) * (s/r)^x * ((r-s)/r)^(n-x). The binomial coefficient
// is built as a running product so no factorial is ever formed.
func NewHits(pool dice.Pool) Hits {
	sides := float64(poolSides(pool))
	success := float64(SuccessSides(pool))
	n := pool.Count()

	data := make(map[int]float64, n+1)
	for x := 0; x <= n; x++ {
		data[x] = binomial(n, x) *
			math.Pow(success/sides, float64(x)) *
			math.Pow((sides-success)/sides, float64(n-x))
	}
	return Hits{data: data}
}

// binomial returns C(n, k) as (n-k+1)*...*n / (1*...*k).
func binomial(n, k int) float64 {
	coeff := 1.0
	for i := n - k + 1; i <= n; i++ {
		coeff *= float64(i)
	}
	for i := 1; i <= k; i++ {
		coeff /= float64(i)
	}
	return coeff
}

// Probability returns the chance of exactly value hits.
func (h Hits) Probability(value int) float64 {
	return h.data[value]
}

// ProbabilityAtLeast returns the chance of value hits or more.
func (h Hits) ProbabilityAtLeast(value int) float64 {
	total := 0.0
	for _, hits := range h.values() {
		if hits >= value {
			total += h.data[hits]
		}
	}
	return total
}

// Points lists every hit count in ascending order.
func (h Hits) Points() []Point {
	values := h.values()
	points := make([]Point, 0, len(values))
	for _, hits := range values {
		points = append(points, Point{Value: hits, Percent: 100 * h.data[hits]})
	}
	return points
}

// Mean returns the expected number of hits.
func (h Hits) Mean() float64 {
	mean := 0.0
	for _, hits := range h.values() {
		mean += float64(hits) * h.data[hits]
	}
	return mean
}

func (h Hits) values() []int {
	return slices.Sorted(maps.Keys(h.data))
}
