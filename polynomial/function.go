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
	"fmt"
	"strings"

	ommx "github.com/Jij-Inc/ommx-sub000"
	"github.com/Jij-Inc/ommx-sub000/state"
)

// FunctionKind tags the active variant of a Function.
type FunctionKind uint8

const (
	KindZero FunctionKind = iota
	KindConstant
	KindLinear
	KindQuadratic
	KindPolynomial
)

func (k FunctionKind) String() string {
	switch k {
	case KindZero:
		return "zero"
	case KindConstant:
		return "constant"
	case KindLinear:
		return "linear"
	case KindQuadratic:
		return "quadratic"
	case KindPolynomial:
		return "polynomial"
	default:
		return "unknown"
	}
}

// Function is a polynomial specialized by degree. Every operation returns
// the lowest-degree variant that represents the result exactly; a linear
// instance never allocates the general multiset map.
type Function struct {
	kind       FunctionKind
	constant   float64
	linear     *Linear
	quadratic  *Quadratic
	polynomial *Polynomial
}

// Zero returns the zero function.
func Zero() Function { return Function{kind: KindZero} }

// Constant returns c as a function; ±0 narrows to the zero variant.
func Constant(c float64) Function {
	if c == 0 {
		return Zero()
	}
	return Function{kind: KindConstant, constant: c}
}

// Variable returns the function x_id.
func Variable(id ommx.VariableID) Function {
	return FromLinear(LinearSingleTerm(1, id))
}

// FromLinear wraps l, narrowing to Constant or Zero when possible.
func FromLinear(l *Linear) Function {
	f := Function{kind: KindLinear, linear: l}
	return f.Narrow()
}

// FromQuadratic wraps q, narrowing when possible.
func FromQuadratic(q *Quadratic) Function {
	f := Function{kind: KindQuadratic, quadratic: q}
	return f.Narrow()
}

// FromPolynomial wraps p, narrowing when possible.
func FromPolynomial(p *Polynomial) Function {
	f := Function{kind: KindPolynomial, polynomial: p}
	return f.Narrow()
}

// Kind returns the active variant.
func (f Function) Kind() FunctionKind { return f.kind }

// IsZero reports whether f is the zero variant.
func (f Function) IsZero() bool { return f.kind == KindZero }

// Narrow normalizes f to the lowest-degree exact variant. It is idempotent.
func (f Function) Narrow() Function {
	switch f.kind {
	case KindConstant:
		if f.constant == 0 {
			return Zero()
		}
		return f
	case KindLinear:
		if f.linear == nil || f.linear.IsZero() {
			return Zero()
		}
		if f.linear.Degree() == 0 {
			return Constant(f.linear.ConstantTerm())
		}
		return f
	case KindQuadratic:
		if f.quadratic == nil || f.quadratic.IsZero() {
			return Zero()
		}
		if l, ok := f.quadratic.TryLinear(); ok {
			return FromLinear(l)
		}
		return f
	case KindPolynomial:
		if f.polynomial == nil || f.polynomial.IsZero() {
			return Zero()
		}
		if c, ok := f.polynomial.TryConstant(); ok {
			return Constant(c)
		}
		if l, ok := f.polynomial.TryLinear(); ok {
			return FromLinear(l)
		}
		if q, ok := f.polynomial.TryQuadratic(); ok {
			return FromQuadratic(q)
		}
		return f
	default:
		return Zero()
	}
}

// Degree returns the degree of the active variant.
func (f Function) Degree() ommx.Degree {
	switch f.kind {
	case KindLinear:
		return ommx.Degree(f.linear.Degree())
	case KindQuadratic:
		return ommx.Degree(f.quadratic.Degree())
	case KindPolynomial:
		return ommx.Degree(f.polynomial.Degree())
	default:
		return 0
	}
}

// NumTerms returns the number of stored terms; a non-zero constant counts
// as one.
func (f Function) NumTerms() int {
	switch f.kind {
	case KindConstant:
		return 1
	case KindLinear:
		return f.linear.NumTerms()
	case KindQuadratic:
		return f.quadratic.NumTerms()
	case KindPolynomial:
		return f.polynomial.NumTerms()
	default:
		return 0
	}
}

// RequiredIDs returns the variables with a non-zero coefficient in any
// monomial of f.
func (f Function) RequiredIDs() ommx.VariableIDSet {
	switch f.kind {
	case KindLinear:
		return f.linear.RequiredIDs()
	case KindQuadratic:
		return f.quadratic.RequiredIDs()
	case KindPolynomial:
		return f.polynomial.RequiredIDs()
	default:
		return make(ommx.VariableIDSet)
	}
}

// ConstantTerm returns the coefficient of the empty monomial.
func (f Function) ConstantTerm() float64 {
	switch f.kind {
	case KindConstant:
		return f.constant
	case KindLinear:
		return f.linear.ConstantTerm()
	case KindQuadratic:
		return f.quadratic.ConstantTerm()
	case KindPolynomial:
		c, _ := f.polynomial.Coefficient(MonomialDyn{})
		return c
	default:
		return 0
	}
}

// LinearTerms returns the degree-1 terms as an ID-to-coefficient map.
func (f Function) LinearTerms() map[ommx.VariableID]float64 {
	out := make(map[ommx.VariableID]float64)
	f.Each(func(m MonomialDyn, c float64) {
		if id, ok := m.AsLinear(); ok {
			out[id] = c
		}
	})
	return out
}

// QuadraticTerms returns the degree-2 terms keyed by normalized pair.
func (f Function) QuadraticTerms() map[ommx.VariableIDPair]float64 {
	out := make(map[ommx.VariableIDPair]float64)
	f.Each(func(m MonomialDyn, c float64) {
		if pair, ok := m.AsQuadraticPair(); ok {
			out[pair] = c
		}
	})
	return out
}

// Each yields every (monomial, coefficient) pair in canonical general form.
// The order is unspecified.
func (f Function) Each(fn func(m MonomialDyn, c float64)) {
	switch f.kind {
	case KindConstant:
		fn(MonomialDyn{}, f.constant)
	case KindLinear:
		f.linear.Each(func(m LinearMonomial, c float64) { fn(m.Dyn(), c) })
	case KindQuadratic:
		f.quadratic.Each(func(m QuadraticMonomial, c float64) { fn(m.Dyn(), c) })
	case KindPolynomial:
		f.polynomial.Each(fn)
	}
}

// SortedTerms returns the terms in canonical multiset order.
func (f Function) SortedTerms() []Term[MonomialDyn] {
	p := f.asPolynomial()
	return p.SortedTerms()
}

// Clone returns a deep copy.
func (f Function) Clone() Function {
	switch f.kind {
	case KindLinear:
		return Function{kind: KindLinear, linear: f.linear.Clone()}
	case KindQuadratic:
		return Function{kind: KindQuadratic, quadratic: f.quadratic.Clone()}
	case KindPolynomial:
		return Function{kind: KindPolynomial, polynomial: f.polynomial.Clone()}
	default:
		return f
	}
}

func (f Function) asLinear() *Linear {
	switch f.kind {
	case KindZero:
		return NewLinear()
	case KindConstant:
		return LinearFromConstant(f.constant)
	case KindLinear:
		return f.linear.Clone()
	default:
		panic("function is not linear")
	}
}

func (f Function) asQuadratic() *Quadratic {
	switch f.kind {
	case KindZero:
		return NewQuadratic()
	case KindConstant:
		q := NewQuadratic()
		_ = q.AddTerm(QuadraticConstant(), f.constant)
		return q
	case KindLinear:
		return f.linear.AsQuadratic()
	case KindQuadratic:
		return f.quadratic.Clone()
	default:
		panic("function is not quadratic")
	}
}

func (f Function) asPolynomial() *Polynomial {
	switch f.kind {
	case KindZero:
		return NewPolynomial()
	case KindConstant:
		p := NewPolynomial()
		_ = p.AddTerm(MonomialDyn{}, f.constant)
		return p
	case KindLinear:
		return f.linear.AsPolynomial()
	case KindQuadratic:
		return f.quadratic.AsPolynomial()
	default:
		return f.polynomial.Clone()
	}
}

// Add returns f + other in the narrowest exact variant.
func (f Function) Add(other Function) Function {
	if f.kind == KindZero {
		return other.Clone()
	}
	if other.kind == KindZero {
		return f.Clone()
	}
	switch {
	case f.kind <= KindLinear && other.kind <= KindLinear:
		sum := f.asLinear()
		sum.AddAssign(other.asLinear())
		return FromLinear(sum)
	case f.kind <= KindQuadratic && other.kind <= KindQuadratic:
		sum := f.asQuadratic()
		sum.AddAssign(other.asQuadratic())
		return FromQuadratic(sum)
	default:
		sum := f.asPolynomial()
		sum.AddAssign(other.asPolynomial())
		return FromPolynomial(sum)
	}
}

// Sub returns f - other in the narrowest exact variant.
func (f Function) Sub(other Function) Function {
	return f.Add(other.Neg())
}

// Neg returns -f.
func (f Function) Neg() Function {
	out, _ := f.MulScalar(-1)
	return out
}

// MulScalar scales f by s. Scaling by zero yields the zero function;
// non-finite scalars are rejected.
func (f Function) MulScalar(s float64) (Function, error) {
	if s == 0 {
		return Zero(), nil
	}
	if _, err := NewCoefficient(s); err != nil {
		return Zero(), err
	}
	out := f.Clone()
	var err error
	switch out.kind {
	case KindConstant:
		c, cerr := NewCoefficient(s)
		if cerr != nil {
			return Zero(), cerr
		}
		out.constant *= c.Float64()
	case KindLinear:
		err = out.linear.Scale(s)
	case KindQuadratic:
		err = out.quadratic.Scale(s)
	case KindPolynomial:
		err = out.polynomial.Scale(s)
	}
	if err != nil {
		return Zero(), err
	}
	return out.Narrow(), nil
}

// Mul returns f * other in the narrowest exact variant.
func (f Function) Mul(other Function) Function {
	if f.kind == KindZero || other.kind == KindZero {
		return Zero()
	}
	if f.kind == KindConstant {
		out, _ := other.MulScalar(f.constant)
		return out
	}
	if other.kind == KindConstant {
		out, _ := f.MulScalar(other.constant)
		return out
	}
	if f.kind == KindLinear && other.kind == KindLinear {
		return FromQuadratic(f.linear.Mul(other.linear))
	}
	return FromPolynomial(f.asPolynomial().Mul(other.asPolynomial()))
}

// Evaluate computes f at s. Every required variable must be assigned.
func (f Function) Evaluate(s state.State, atol ommx.ATol) (float64, error) {
	switch f.kind {
	case KindZero:
		return 0, nil
	case KindConstant:
		return f.constant, nil
	case KindLinear:
		return f.linear.Evaluate(s, atol)
	case KindQuadratic:
		return f.quadratic.Evaluate(s, atol)
	default:
		return f.polynomial.Evaluate(s, atol)
	}
}

// PartialEvaluate substitutes the variables assigned in s and narrows the
// receiver to the remaining function.
func (f *Function) PartialEvaluate(s state.State) {
	switch f.kind {
	case KindLinear:
		f.linear.PartialEvaluate(s)
	case KindQuadratic:
		f.quadratic.PartialEvaluate(s)
	case KindPolynomial:
		f.polynomial.PartialEvaluate(s)
	default:
		return
	}
	*f = f.Narrow()
}

// EvaluateSamples evaluates f once per distinct sampled state.
func (f Function) EvaluateSamples(samples *state.Samples, atol ommx.ATol) (*state.SampledValues, error) {
	return samples.Map(func(st state.State) (float64, error) {
		return f.Evaluate(st, atol)
	})
}

// EvaluateBound propagates variable bounds through f.
func (f Function) EvaluateBound(bounds map[ommx.VariableID]Bound) Bound {
	switch f.kind {
	case KindZero:
		return Bound{}
	case KindConstant:
		return PointBound(f.constant)
	case KindLinear:
		return f.linear.EvaluateBound(bounds)
	case KindQuadratic:
		return f.quadratic.EvaluateBound(bounds)
	default:
		return f.polynomial.EvaluateBound(bounds)
	}
}

// ContentFactor returns the smallest positive scalar a such that a*f has
// integer coefficients; 1 for the zero function.
func (f Function) ContentFactor() (float64, error) {
	switch f.kind {
	case KindZero:
		return 1, nil
	case KindConstant:
		r := LinearFromConstant(f.constant)
		return r.ContentFactor()
	case KindLinear:
		return f.linear.ContentFactor()
	case KindQuadratic:
		return f.quadratic.ContentFactor()
	default:
		return f.polynomial.ContentFactor()
	}
}

// ReduceBinaryPower caps the multiplicity of every binary variable at one,
// using x^2 = x for binary x. It reports whether any monomial changed.
func (f *Function) ReduceBinaryPower(binary ommx.VariableIDSet) bool {
	if f.kind < KindQuadratic {
		return false
	}
	changed := false
	p := NewPolynomial()
	f.Each(func(m MonomialDyn, c float64) {
		var rebuilt []ommx.VariableID
		m.Visit(func(id ommx.VariableID, exp int) {
			if exp > 1 && binary.Contains(id) {
				changed = true
				exp = 1
			}
			for k := 0; k < exp; k++ {
				rebuilt = append(rebuilt, id)
			}
		})
		_ = p.AddTerm(NewMonomialDyn(rebuilt...), c)
	})
	if !changed {
		return false
	}
	*f = FromPolynomial(p)
	return true
}

// AbsDiffEq compares the canonical forms term-wise within atol.
func (f Function) AbsDiffEq(other Function, atol ommx.ATol) bool {
	return f.asPolynomial().AbsDiffEq(other.asPolynomial(), atol)
}

func (f Function) String() string {
	if f.kind == KindZero {
		return "0"
	}
	terms := f.SortedTerms()
	var sb strings.Builder
	for i, t := range terms {
		if i > 0 {
			sb.WriteString(" + ")
		}
		if t.Monomial.Degree() == 0 {
			fmt.Fprintf(&sb, "%v", t.Coefficient.Float64())
		} else if t.Coefficient == 1 {
			sb.WriteString(t.Monomial.String())
		} else {
			fmt.Fprintf(&sb, "%v*%s", t.Coefficient.Float64(), t.Monomial)
		}
	}
	return sb.String()
}
