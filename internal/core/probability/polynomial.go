// Package probability computes exact outcome distributions for dice pools.
package probability

import (
	"fmt"
	"maps"
	"slices"
	"strings"
)

// Polynomial is a generating function: the coefficient at an exponent is the
// probability mass of that outcome. Absent exponents have coefficient 0.
//
// Every operation returns a new Polynomial. Nothing is normalized, so
// callers must build their inputs from valid probabilities.
type Polynomial struct {
	coefficients map[int]float64
}

// NewPolynomial returns a polynomial with a copy of coefficients.
func NewPolynomial(coefficients map[int]float64) Polynomial {
	return Polynomial{coefficients: maps.Clone(coefficients)}
}

// Uniform returns the generating polynomial of one fair die: 1/sides at
// every exponent from 1 to sides.
func Uniform(sides int) Polynomial {
	p := Polynomial{coefficients: make(map[int]float64, sides)}
	for face := 1; face <= sides; face++ {
		p.coefficients[face] = 1 / float64(sides)
	}
	return p
}

// Coefficient returns the coefficient at exponent.
func (p Polynomial) Coefficient(exponent int) float64 {
	return p.coefficients[exponent]
}

// WithCoefficient returns a copy of p with the coefficient at exponent set.
func (p Polynomial) WithCoefficient(exponent int, value float64) Polynomial {
	out := NewPolynomial(p.coefficients)
	if out.coefficients == nil {
		out.coefficients = make(map[int]float64)
	}
	out.coefficients[exponent] = value
	return out
}

// Exponents returns the stored exponents in ascending order.
func (p Polynomial) Exponents() []int {
	return slices.Sorted(maps.Keys(p.coefficients))
}

// IsZero reports whether p stores no coefficients.
func (p Polynomial) IsZero() bool {
	return len(p.coefficients) == 0
}

// Add returns p + q.
func (p Polynomial) Add(q Polynomial) Polynomial {
	return p.combine(q, func(a, b float64) float64 { return a + b })
}

// Sub returns p - q.
func (p Polynomial) Sub(q Polynomial) Polynomial {
	return p.combine(q, func(a, b float64) float64 { return a - b })
}

func (p Polynomial) combine(q Polynomial, op func(a, b float64) float64) Polynomial {
	out := Polynomial{coefficients: make(map[int]float64, len(p.coefficients)+len(q.coefficients))}
	for exponent := range p.coefficients {
		out.coefficients[exponent] = op(p.Coefficient(exponent), q.Coefficient(exponent))
	}
	for exponent := range q.coefficients {
		out.coefficients[exponent] = op(p.Coefficient(exponent), q.Coefficient(exponent))
	}
	return out
}

// Mul returns the convolution of p and q. Zero products are not stored.
// Terms are accumulated in ascending exponent order so results are
// reproducible bit for bit.
func (p Polynomial) Mul(q Polynomial) Polynomial {
	out := Polynomial{coefficients: make(map[int]float64)}
	qExponents := q.Exponents()
	for _, i := range p.Exponents() {
		a := p.coefficients[i]
		for _, j := range qExponents {
			product := a * q.coefficients[j]
			if product != 0 {
				out.coefficients[i+j] += product
			}
		}
	}
	return out
}

// Pow multiplies p by itself exponent times. Pow(0) returns the zero
// polynomial, not the multiplicative identity.
func (p Polynomial) Pow(exponent int) Polynomial {
	if exponent <= 0 {
		return Polynomial{}
	}
	result := NewPolynomial(p.coefficients)
	for i := 1; i < exponent; i++ {
		result = result.Mul(p)
	}
	return result
}

// Sum returns the total of every coefficient.
func (p Polynomial) Sum() float64 {
	total := 0.0
	for _, exponent := range p.Exponents() {
		total += p.coefficients[exponent]
	}
	return total
}

// SumFrom returns the total of coefficients at exponents >= min.
func (p Polynomial) SumFrom(min int) float64 {
	total := 0.0
	for _, exponent := range p.Exponents() {
		if exponent >= min {
			total += p.coefficients[exponent]
		}
	}
	return total
}

// Equal reports whether p and q store exactly the same coefficients.
func (p Polynomial) Equal(q Polynomial) bool {
	return maps.Equal(p.coefficients, q.coefficients)
}

// String renders p as "c0x^e0 + c1x^e1 ..." in ascending exponent order.
func (p Polynomial) String() string {
	if p.IsZero() {
		return "0"
	}
	terms := make([]string, 0, len(p.coefficients))
	for _, exponent := range p.Exponents() {
		terms = append(terms, fmt.Sprintf("%gx^%d", p.coefficients[exponent], exponent))
	}
	return strings.Join(terms, " + ")
}
