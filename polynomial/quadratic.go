// Copyright 2024 Jij Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package polynomial

import (
	ommx "github.com/Jij-Inc/ommx-sub000"
)

// Quadratic is a degree-2 polynomial. Pair keys are normalized, so the
// terms of x1*x2 and x2*x1 always merge.
type Quadratic struct {
	Poly[QuadraticMonomial]
}

// NewQuadratic returns the zero quadratic polynomial.
func NewQuadratic() *Quadratic { return &Quadratic{} }

// ConstantTerm returns the constant term, 0 when absent.
func (q *Quadratic) ConstantTerm() float64 {
	c, _ := q.Coefficient(QuadraticConstant())
	return c
}

// LinearTerms returns the degree-1 terms as an ID-to-coefficient map.
func (q *Quadratic) LinearTerms() map[ommx.VariableID]float64 {
	out := make(map[ommx.VariableID]float64)
	q.Each(func(m QuadraticMonomial, c float64) {
		if id, ok := m.Variable(); ok {
			out[id] = c
		}
	})
	return out
}

// QuadraticTerms returns the degree-2 terms keyed by normalized pair.
func (q *Quadratic) QuadraticTerms() map[ommx.VariableIDPair]float64 {
	out := make(map[ommx.VariableIDPair]float64)
	q.Each(func(m QuadraticMonomial, c float64) {
		if pair, ok := m.Pair(); ok {
			out[pair] = c
		}
	})
	return out
}

// Clone returns a deep copy.
func (q *Quadratic) Clone() *Quadratic {
	return &Quadratic{Poly: q.Poly.clone()}
}

// AddAssign adds other into q.
func (q *Quadratic) AddAssign(other *Quadratic) {
	q.addAssign(&other.Poly, 1)
}

// SubAssign subtracts other from q.
func (q *Quadratic) SubAssign(other *Quadratic) {
	q.addAssign(&other.Poly, -1)
}

// Scale multiplies every coefficient by sc; scaling by zero empties q.
func (q *Quadratic) Scale(sc float64) error {
	return q.scale(sc)
}

// Mul multiplies two quadratic polynomials into a general polynomial.
func (q *Quadratic) Mul(other *Quadratic) *Polynomial {
	return q.AsPolynomial().Mul(other.AsPolynomial())
}

// MulLinear multiplies by a linear polynomial into a general polynomial.
func (q *Quadratic) MulLinear(other *Linear) *Polynomial {
	return q.AsPolynomial().Mul(other.AsPolynomial())
}

// AbsDiffEq compares term-wise within atol.
func (q *Quadratic) AbsDiffEq(other *Quadratic, atol ommx.ATol) bool {
	return q.absDiffEq(&other.Poly, atol.Float64())
}

// ContentFactor returns the smallest positive scalar making all
// coefficients integer.
func (q *Quadratic) ContentFactor() (float64, error) {
	return q.contentFactor()
}

// AsPolynomial widens q into a general polynomial.
func (q *Quadratic) AsPolynomial() *Polynomial {
	out := NewPolynomial()
	q.Each(func(m QuadraticMonomial, c float64) {
		_ = out.AddTerm(m.Dyn(), c)
	})
	return out
}

// TryLinear narrows to a linear polynomial when no pair term is stored.
func (q *Quadratic) TryLinear() (*Linear, bool) {
	out := NewLinear()
	ok := true
	q.Each(func(m QuadraticMonomial, c float64) {
		switch {
		case m.Degree() == 2:
			ok = false
		case m.Degree() == 1:
			id, _ := m.Variable()
			_ = out.AddTerm(LinearVariable(id), c)
		default:
			_ = out.AddTerm(LinearConstant(), c)
		}
	})
	if !ok {
		return nil, false
	}
	return out, true
}
