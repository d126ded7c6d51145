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
	"testing"

	"github.com/fxamacker/cbor/v2"
	"github.com/stretchr/testify/require"

	ommx "github.com/Jij-Inc/ommx-sub000"
	"github.com/Jij-Inc/ommx-sub000/state"
)

func TestFunctionNarrowing(t *testing.T) {
	assert := require.New(t)

	assert.Equal(KindZero, Constant(0).Kind())
	assert.Equal(KindConstant, Constant(3).Kind())

	// Linear * Linear -> Quadratic
	x, y := Variable(1), Variable(2)
	assert.Equal(KindQuadratic, x.Mul(y).Kind())

	// Quadratic * Linear -> Polynomial
	assert.Equal(KindPolynomial, x.Mul(y).Mul(x).Kind())

	// Linear + 0 -> Linear
	assert.Equal(KindLinear, x.Add(Zero()).Kind())

	// Linear - Linear can collapse
	assert.Equal(KindZero, x.Sub(x).Kind())
	three := x.Add(Constant(3)).Sub(x)
	assert.Equal(KindConstant, three.Kind())
	assert.Equal(3.0, three.ConstantTerm())

	// squares cancel back down to Linear
	sq := x.Mul(x)
	diff := sq.Add(y).Sub(sq)
	assert.Equal(KindLinear, diff.Kind())
}

func TestNarrowIsIdempotent(t *testing.T) {
	assert := require.New(t)

	p := NewPolynomial()
	_ = p.AddTerm(NewMonomialDyn(1), 2)
	_ = p.AddTerm(NewMonomialDyn(), 1)
	f := FromPolynomial(p)
	assert.Equal(KindLinear, f.Kind())
	assert.Equal(f.Kind(), f.Narrow().Kind())
	assert.Equal(KindZero, Zero().Narrow().Kind())
}

func TestFunctionAccessors(t *testing.T) {
	assert := require.New(t)

	// f = 3 + 2*x1 + 4*x1*x2
	f := Constant(3).
		Add(FromLinear(LinearSingleTerm(2, 1))).
		Add(Variable(1).Mul(Variable(2)).Mul(Constant(4)))

	assert.Equal(ommx.Degree(2), f.Degree())
	assert.Equal(3, f.NumTerms())
	assert.Equal(3.0, f.ConstantTerm())
	assert.Equal(map[ommx.VariableID]float64{1: 2}, f.LinearTerms())
	assert.Equal(map[ommx.VariableIDPair]float64{ommx.NewVariableIDPair(1, 2): 4}, f.QuadraticTerms())
	assert.Equal([]ommx.VariableID{1, 2}, f.RequiredIDs().Sorted())
}

func TestFunctionSubstitute(t *testing.T) {
	assert := require.New(t)

	// f = x1^2 + x2, substitute x1 -> x3 + 1
	f := Variable(1).Mul(Variable(1)).Add(Variable(2))
	repl := map[ommx.VariableID]Function{
		1: Variable(3).Add(Constant(1)),
	}
	g := f.Substitute(repl)

	// g = x3^2 + 2*x3 + 1 + x2
	assert.False(g.RequiredIDs().Contains(1))
	want := Variable(3).Mul(Variable(3)).
		Add(Variable(3).Mul(Constant(2))).
		Add(Constant(1)).
		Add(Variable(2))
	assert.True(g.AbsDiffEq(want, ommx.DefaultATol))
}

func TestSubstituteConstantMatchesPartialEvaluate(t *testing.T) {
	assert := require.New(t)

	f := Variable(1).Mul(Variable(2)).Add(Variable(1)).Add(Constant(5))

	sub := f.Substitute(map[ommx.VariableID]Function{1: Constant(2)})
	partial := f.Clone()
	partial.PartialEvaluate(state.State{1: 2})

	assert.True(sub.AbsDiffEq(partial, ommx.DefaultATol))
}

func TestEvaluateBound(t *testing.T) {
	assert := require.New(t)

	// f = x1*x2 with x1 in [0,1], x2 in [-2,3]
	f := Variable(1).Mul(Variable(2))
	bounds := map[ommx.VariableID]Bound{
		1: mustNewBound(t, 0, 1),
		2: mustNewBound(t, -2, 3),
	}
	b := f.EvaluateBound(bounds)
	assert.Equal(-2.0, b.Lower())
	assert.Equal(3.0, b.Upper())

	// a missing bound defaults to unbounded
	open := f.EvaluateBound(map[ommx.VariableID]Bound{1: mustNewBound(t, 0, 1)})
	assert.True(math.IsInf(open.Lower(), -1))
	assert.True(math.IsInf(open.Upper(), 1))
}

func TestContentFactor(t *testing.T) {
	assert := require.New(t)

	// 0.5*x1 + 0.25*x2 -> factor 4 makes [2, 1]
	f := FromLinear(func() *Linear {
		l := NewLinear()
		l.AddVariable(1, 0.5)
		l.AddVariable(2, 0.25)
		return l
	}())
	a, err := f.ContentFactor()
	assert.NoError(err)
	assert.Equal(4.0, a)

	one, err := Zero().ContentFactor()
	assert.NoError(err)
	assert.Equal(1.0, one)

	// integral coefficients reduce by their gcd
	g := FromLinear(func() *Linear {
		l := NewLinear()
		l.AddVariable(1, 2)
		l.AddVariable(2, 4)
		return l
	}())
	a, err = g.ContentFactor()
	assert.NoError(err)
	assert.Equal(0.5, a)

	// an irrational coefficient yields an approximate factor, not an error
	pi := FromLinear(LinearSingleTerm(math.Pi, 1))
	a, err = pi.ContentFactor()
	assert.NoError(err)
	assert.InDelta(1/math.Pi, a, 1e-10)
}

func TestReduceBinaryPower(t *testing.T) {
	assert := require.New(t)

	// x1^2 + x1*x2 with binary x1 reduces to x1 + x1*x2
	f := Variable(1).Mul(Variable(1)).Add(Variable(1).Mul(Variable(2)))
	changed := f.ReduceBinaryPower(ommx.NewVariableIDSet(1))
	assert.True(changed)
	want := Variable(1).Add(Variable(1).Mul(Variable(2)))
	assert.True(f.AbsDiffEq(want, ommx.DefaultATol))

	unchanged := Variable(1).Add(Variable(2))
	assert.False(unchanged.ReduceBinaryPower(ommx.NewVariableIDSet(1)))
}

func TestFunctionMarshalRoundTrip(t *testing.T) {
	assert := require.New(t)

	funcs := []Function{
		Zero(),
		Constant(-3),
		Variable(1).Add(Constant(2)),
		Variable(1).Mul(Variable(2)).Add(Variable(3)),
		Variable(1).Mul(Variable(2)).Mul(Variable(3)).Add(Constant(0.5)),
	}
	for _, f := range funcs {
		data, err := f.ToBytes()
		assert.NoError(err)
		g, err := FunctionFromBytes(data)
		assert.NoError(err)
		assert.Equal(f.Kind(), g.Kind())
		assert.True(f.AbsDiffEq(g, ommx.ATol(1e-300)), "round trip changed %s", f)
	}
}

func TestFunctionUnmarshalRejectsZeroCoefficient(t *testing.T) {
	assert := require.New(t)

	data, err := encodeRawFunction(uint8(KindLinear), []dynTermCBOR{{IDs: []uint64{1}, Coefficient: 0}})
	assert.NoError(err)
	_, err = FunctionFromBytes(data)
	assert.Error(err)
}

func encodeRawFunction(kind uint8, terms []dynTermCBOR) ([]byte, error) {
	return cbor.Marshal(functionCBOR{Kind: kind, Terms: terms})
}

func mustNewBound(t *testing.T, lo, hi float64) Bound {
	t.Helper()
	b, err := NewBound(lo, hi)
	require.NoError(t, err)
	return b
}
