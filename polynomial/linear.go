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

// Linear is a degree-1 polynomial: a constant term plus variable terms.
type Linear struct {
	Poly[LinearMonomial]
}

// NewLinear returns the zero linear polynomial.
func NewLinear() *Linear { return &Linear{} }

// LinearSingleTerm returns c * x_id.
func LinearSingleTerm(c float64, id ommx.VariableID) *Linear {
	l := NewLinear()
	_ = l.AddTerm(LinearVariable(id), c)
	return l
}

// LinearFromConstant returns the constant c as a linear polynomial.
func LinearFromConstant(c float64) *Linear {
	l := NewLinear()
	_ = l.AddTerm(LinearConstant(), c)
	return l
}

// AddConstant adds c to the constant term.
func (l *Linear) AddConstant(c float64) {
	_ = l.AddTerm(LinearConstant(), c)
}

// AddVariable adds c * x_id.
func (l *Linear) AddVariable(id ommx.VariableID, c float64) {
	_ = l.AddTerm(LinearVariable(id), c)
}

// ConstantTerm returns the constant term, 0 when absent.
func (l *Linear) ConstantTerm() float64 {
	c, _ := l.Coefficient(LinearConstant())
	return c
}

// VariableTerms returns the variable terms as an ID-to-coefficient map.
func (l *Linear) VariableTerms() map[ommx.VariableID]float64 {
	out := make(map[ommx.VariableID]float64)
	l.Each(func(m LinearMonomial, c float64) {
		if id, ok := m.Variable(); ok {
			out[id] = c
		}
	})
	return out
}

// Clone returns a deep copy.
func (l *Linear) Clone() *Linear {
	return &Linear{Poly: l.Poly.clone()}
}

// AddAssign adds other into l.
func (l *Linear) AddAssign(other *Linear) {
	l.addAssign(&other.Poly, 1)
}

// SubAssign subtracts other from l.
func (l *Linear) SubAssign(other *Linear) {
	l.addAssign(&other.Poly, -1)
}

// Scale multiplies every coefficient by sc; scaling by zero empties l.
func (l *Linear) Scale(sc float64) error {
	return l.scale(sc)
}

// Mul multiplies two linear polynomials into a quadratic one.
func (l *Linear) Mul(other *Linear) *Quadratic {
	out := NewQuadratic()
	l.Each(func(m1 LinearMonomial, c1 float64) {
		other.Each(func(m2 LinearMonomial, c2 float64) {
			id1, v1 := m1.Variable()
			id2, v2 := m2.Variable()
			switch {
			case v1 && v2:
				_ = out.AddTerm(QuadraticPair(ommx.NewVariableIDPair(id1, id2)), c1*c2)
			case v1:
				_ = out.AddTerm(QuadraticLinear(id1), c1*c2)
			case v2:
				_ = out.AddTerm(QuadraticLinear(id2), c1*c2)
			default:
				_ = out.AddTerm(QuadraticConstant(), c1*c2)
			}
		})
	})
	return out
}

// AbsDiffEq compares term-wise within atol.
func (l *Linear) AbsDiffEq(other *Linear, atol ommx.ATol) bool {
	return l.absDiffEq(&other.Poly, atol.Float64())
}

// ContentFactor returns the smallest positive scalar making all
// coefficients integer.
func (l *Linear) ContentFactor() (float64, error) {
	return l.contentFactor()
}

// AsQuadratic widens l into a quadratic polynomial.
func (l *Linear) AsQuadratic() *Quadratic {
	out := NewQuadratic()
	l.Each(func(m LinearMonomial, c float64) {
		if id, ok := m.Variable(); ok {
			_ = out.AddTerm(QuadraticLinear(id), c)
		} else {
			_ = out.AddTerm(QuadraticConstant(), c)
		}
	})
	return out
}

// AsPolynomial widens l into a general polynomial.
func (l *Linear) AsPolynomial() *Polynomial {
	out := NewPolynomial()
	l.Each(func(m LinearMonomial, c float64) {
		_ = out.AddTerm(m.Dyn(), c)
	})
	return out
}
