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
	"math"

	"golang.org/x/exp/slices"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/floats/scalar"

	ommx "github.com/Jij-Inc/ommx-sub000"
	"github.com/Jij-Inc/ommx-sub000/internal/rational"
	"github.com/Jij-Inc/ommx-sub000/state"
)

// Term is one (monomial, coefficient) entry of a sparse polynomial.
type Term[M Monomial[M]] struct {
	Monomial    M
	Coefficient Coefficient
}

// Poly is a sparse mapping from monomials to coefficients. Keys are unique
// and no entry ever stores a zero coefficient: a term whose coefficient
// cancels during insertion is removed.
type Poly[M Monomial[M]] struct {
	terms map[M]Coefficient
}

func (p *Poly[M]) ensure() {
	if p.terms == nil {
		p.terms = make(map[M]Coefficient)
	}
}

// AddTerm combines c into the coefficient of m, dropping the key when the
// sum cancels exactly. Adding zero is a no-op; non-finite c is rejected.
func (p *Poly[M]) AddTerm(m M, c float64) error {
	if c == 0 {
		return nil
	}
	if math.IsNaN(c) || math.IsInf(c, 0) {
		return ErrNonFiniteCoefficient{Value: c}
	}
	p.ensure()
	if old, ok := p.terms[m]; ok {
		sum, nonZero := old.Add(Coefficient(c))
		if !nonZero {
			delete(p.terms, m)
			return nil
		}
		p.terms[m] = sum
		return nil
	}
	p.terms[m] = Coefficient(c)
	return nil
}

// Coefficient returns the coefficient stored for m.
func (p *Poly[M]) Coefficient(m M) (float64, bool) {
	c, ok := p.terms[m]
	return c.Float64(), ok
}

// NumTerms returns the number of stored terms.
func (p *Poly[M]) NumTerms() int { return len(p.terms) }

// IsZero reports whether no term is stored.
func (p *Poly[M]) IsZero() bool { return len(p.terms) == 0 }

// Degree returns the largest monomial degree, 0 for the zero polynomial.
func (p *Poly[M]) Degree() int {
	deg := 0
	for m := range p.terms {
		if d := m.Degree(); d > deg {
			deg = d
		}
	}
	return deg
}

// RequiredIDs returns the variables appearing in any stored monomial.
func (p *Poly[M]) RequiredIDs() ommx.VariableIDSet {
	ids := make(ommx.VariableIDSet)
	for m := range p.terms {
		m.Visit(func(id ommx.VariableID, _ int) {
			ids.Add(id)
		})
	}
	return ids
}

// Each visits every stored term in unspecified order.
func (p *Poly[M]) Each(fn func(m M, c float64)) {
	for m, c := range p.terms {
		fn(m, c.Float64())
	}
}

// SortedTerms returns the terms ordered by the canonical multiset order.
func (p *Poly[M]) SortedTerms() []Term[M] {
	out := make([]Term[M], 0, len(p.terms))
	for m, c := range p.terms {
		out = append(out, Term[M]{Monomial: m, Coefficient: c})
	}
	slices.SortFunc(out, func(a, b Term[M]) int {
		ka, kb := a.Monomial.Dyn().key, b.Monomial.Dyn().key
		if len(ka) != len(kb) {
			return len(ka) - len(kb)
		}
		switch {
		case ka < kb:
			return -1
		case ka > kb:
			return 1
		default:
			return 0
		}
	})
	return out
}

// Evaluate substitutes every variable with its value in s and sums the
// terms. It fails when a required variable is missing.
func (p *Poly[M]) Evaluate(s state.State, atol ommx.ATol) (float64, error) {
	_ = atol
	values := make([]float64, 0, len(p.terms))
	for m, c := range p.terms {
		factor := c.Float64()
		var missing *ommx.VariableID
		m.Visit(func(id ommx.VariableID, exp int) {
			v, ok := s[id]
			if !ok {
				if missing == nil {
					id := id
					missing = &id
				}
				return
			}
			for k := 0; k < exp; k++ {
				factor *= v
			}
		})
		if missing != nil {
			return 0, ErrMissingVariableInState{ID: *missing}
		}
		values = append(values, factor)
	}
	return floats.SumCompensated(values), nil
}

// PartialEvaluate substitutes the variables assigned in s, in place. The
// polynomial afterwards ranges over the remaining variables only; missing
// variables are not an error.
func (p *Poly[M]) PartialEvaluate(s state.State) {
	if len(p.terms) == 0 || len(s) == 0 {
		return
	}
	old := p.terms
	p.terms = make(map[M]Coefficient, len(old))
	for m, c := range old {
		remaining, factor := partialEvaluateMonomial(m, s)
		if len(remaining) == m.Degree() {
			// untouched term
			p.terms[m] = c
			continue
		}
		reduced, ok := m.Rebuild(remaining)
		if !ok {
			// cannot happen: the remaining multiset is a subset
			panic("partial evaluation left an unrepresentable monomial")
		}
		_ = p.AddTerm(reduced, c.Float64()*factor)
	}
}

// EvaluateBound propagates variable bounds through the polynomial with
// interval arithmetic. Variables without a bound default to unbounded.
func (p *Poly[M]) EvaluateBound(bounds map[ommx.VariableID]Bound) Bound {
	total := Bound{}
	for m, c := range p.terms {
		term := PointBound(1)
		m.Visit(func(id ommx.VariableID, exp int) {
			b, ok := bounds[id]
			if !ok {
				b = UnboundedBound()
			}
			term = term.Mul(b.Pow(exp))
		})
		total = total.Add(term.MulScalar(c.Float64()))
	}
	return total
}

// addAssign adds sign * other into p.
func (p *Poly[M]) addAssign(other *Poly[M], sign float64) {
	for m, c := range other.terms {
		_ = p.AddTerm(m, sign*c.Float64())
	}
}

// scale multiplies every coefficient by sc. Scaling by zero empties the
// polynomial; non-finite scalars are rejected.
func (p *Poly[M]) scale(sc float64) error {
	if math.IsNaN(sc) || math.IsInf(sc, 0) {
		return ErrNonFiniteCoefficient{Value: sc}
	}
	if sc == 0 {
		p.terms = nil
		return nil
	}
	for m, c := range p.terms {
		scaled, nonZero := c.Mul(Coefficient(sc))
		if !nonZero {
			delete(p.terms, m)
			continue
		}
		p.terms[m] = scaled
	}
	return nil
}

// absDiffEq compares term-wise: for every key of either side the
// coefficients differ by at most atol.
func (p *Poly[M]) absDiffEq(other *Poly[M], atol float64) bool {
	for m, c := range p.terms {
		o := float64(other.terms[m])
		if !scalar.EqualWithinAbs(c.Float64(), o, atol) {
			return false
		}
	}
	for m, c := range other.terms {
		if _, ok := p.terms[m]; ok {
			continue
		}
		if !scalar.EqualWithinAbs(c.Float64(), 0, atol) {
			return false
		}
	}
	return true
}

// contentFactor returns the smallest positive scalar a such that a*p has
// integer coefficients, computed over 64-bit rational approximations of the
// coefficients. The zero polynomial yields 1.
func (p *Poly[M]) contentFactor() (float64, error) {
	var numerGCD int64
	var denomLCM int64 = 1
	for _, c := range p.terms {
		r, ok := rational.Approximate(c.Float64())
		if !ok {
			return 0, ErrOverflowReducing{}
		}
		numerGCD = rational.GCD(numerGCD, r.Numer)
		lcm, ok := rational.LCM(denomLCM, r.Denom)
		if !ok {
			return 0, ErrOverflowReducing{}
		}
		denomLCM = lcm
	}
	if numerGCD == 0 {
		return 1, nil
	}
	return math.Abs(float64(denomLCM) / float64(numerGCD)), nil
}

// clone returns a deep copy.
func (p *Poly[M]) clone() Poly[M] {
	out := Poly[M]{}
	if len(p.terms) > 0 {
		out.terms = make(map[M]Coefficient, len(p.terms))
		for m, c := range p.terms {
			out.terms[m] = c
		}
	}
	return out
}
