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

// Polynomial is a polynomial of arbitrary degree over general monomials.
type Polynomial struct {
	Poly[MonomialDyn]
}

// NewPolynomial returns the zero polynomial.
func NewPolynomial() *Polynomial { return &Polynomial{} }

// Clone returns a deep copy.
func (p *Polynomial) Clone() *Polynomial {
	return &Polynomial{Poly: p.Poly.clone()}
}

// AddAssign adds other into p.
func (p *Polynomial) AddAssign(other *Polynomial) {
	p.addAssign(&other.Poly, 1)
}

// SubAssign subtracts other from p.
func (p *Polynomial) SubAssign(other *Polynomial) {
	p.addAssign(&other.Poly, -1)
}

// Scale multiplies every coefficient by sc; scaling by zero empties p.
func (p *Polynomial) Scale(sc float64) error {
	return p.scale(sc)
}

// Mul is schoolbook polynomial multiplication: distribute and merge with
// multiset union.
func (p *Polynomial) Mul(other *Polynomial) *Polynomial {
	out := NewPolynomial()
	p.Each(func(m1 MonomialDyn, c1 float64) {
		other.Each(func(m2 MonomialDyn, c2 float64) {
			_ = out.AddTerm(m1.Mul(m2), c1*c2)
		})
	})
	return out
}

// AbsDiffEq compares term-wise within atol.
func (p *Polynomial) AbsDiffEq(other *Polynomial, atol ommx.ATol) bool {
	return p.absDiffEq(&other.Poly, atol.Float64())
}

// ContentFactor returns the smallest positive scalar making all
// coefficients integer.
func (p *Polynomial) ContentFactor() (float64, error) {
	return p.contentFactor()
}

// TryQuadratic narrows to a quadratic polynomial when the degree allows.
func (p *Polynomial) TryQuadratic() (*Quadratic, bool) {
	if p.Degree() > 2 {
		return nil, false
	}
	out := NewQuadratic()
	p.Each(func(m MonomialDyn, c float64) {
		reduced, _ := QuadraticConstant().Rebuild(m.IDs())
		_ = out.AddTerm(reduced, c)
	})
	return out, true
}

// TryLinear narrows to a linear polynomial when the degree allows.
func (p *Polynomial) TryLinear() (*Linear, bool) {
	if p.Degree() > 1 {
		return nil, false
	}
	out := NewLinear()
	p.Each(func(m MonomialDyn, c float64) {
		reduced, _ := LinearConstant().Rebuild(m.IDs())
		_ = out.AddTerm(reduced, c)
	})
	return out, true
}

// TryConstant narrows to a constant when only the empty monomial remains.
func (p *Polynomial) TryConstant() (float64, bool) {
	if p.Degree() > 0 {
		return 0, false
	}
	c, _ := p.Coefficient(MonomialDyn{})
	return c, true
}
