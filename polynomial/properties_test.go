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

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	ommx "github.com/Jij-Inc/ommx-sub000"
	"github.com/Jij-Inc/ommx-sub000/state"
)

// the generated functions range over variables 1..4
const propMaxVariable = 4

// genFunction yields functions of degree up to 3 with small coefficients.
func genFunction() gopter.Gen {
	genTerm := gopter.CombineGens(
		gen.IntRange(0, 3),                               // degree
		gen.SliceOfN(3, gen.Int64Range(1, propMaxVariable)), // variable pool
		gen.Float64Range(-10, 10),
	).Map(func(vals []interface{}) func(*Polynomial) {
		degree := vals[0].(int)
		pool := vals[1].([]int64)
		coeff := vals[2].(float64)
		return func(p *Polynomial) {
			ids := make([]ommx.VariableID, degree)
			for i := 0; i < degree; i++ {
				ids[i] = ommx.VariableID(pool[i])
			}
			_ = p.AddTerm(NewMonomialDyn(ids...), coeff)
		}
	})
	return gen.SliceOfN(4, genTerm).Map(func(adders []func(*Polynomial)) Function {
		p := NewPolynomial()
		for _, add := range adders {
			add(p)
		}
		return FromPolynomial(p)
	})
}

// genState yields a full assignment of the property variable pool.
func genState() gopter.Gen {
	return gen.SliceOfN(propMaxVariable, gen.Float64Range(-3, 3)).Map(func(vals []float64) state.State {
		s := make(state.State, len(vals))
		for i, v := range vals {
			s[ommx.VariableID(i+1)] = v
		}
		return s
	})
}

func evalOK(t *testing.T, f Function, s state.State) float64 {
	v, err := f.Evaluate(s, ommx.DefaultATol)
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	return v
}

func TestEvaluationProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	const tol = 1e-6

	properties.Property("(f+g)(s) = f(s) + g(s)", prop.ForAll(
		func(f, g Function, s state.State) bool {
			sum := evalOK(t, f.Add(g), s)
			return math.Abs(sum-(evalOK(t, f, s)+evalOK(t, g, s))) <= tol
		},
		genFunction(), genFunction(), genState(),
	))

	properties.Property("(f*g)(s) = f(s) * g(s)", prop.ForAll(
		func(f, g Function, s state.State) bool {
			product := evalOK(t, f.Mul(g), s)
			return math.Abs(product-evalOK(t, f, s)*evalOK(t, g, s)) <= tol
		},
		genFunction(), genFunction(), genState(),
	))

	properties.Property("partial evaluation splits evaluation", prop.ForAll(
		func(f Function, s state.State) bool {
			s1 := state.State{1: s[1], 2: s[2]}
			partial := f.Clone()
			partial.PartialEvaluate(s1)
			return math.Abs(evalOK(t, partial, s)-evalOK(t, f, s)) <= tol
		},
		genFunction(), genState(),
	))

	properties.Property("full partial evaluation leaves a constant", prop.ForAll(
		func(f Function, s state.State) bool {
			partial := f.Clone()
			partial.PartialEvaluate(s)
			if len(partial.RequiredIDs()) != 0 {
				return false
			}
			return math.Abs(partial.ConstantTerm()-evalOK(t, f, s)) <= tol
		},
		genFunction(), genState(),
	))

	properties.Property("substitution eliminates the substituted variable", prop.ForAll(
		func(f Function, target, replacement int64) bool {
			x := ommx.VariableID(target)
			y := ommx.VariableID(replacement)
			g := f.Substitute(map[ommx.VariableID]Function{x: Variable(y)})
			return !g.RequiredIDs().Contains(x) || y == x
		},
		genFunction(), gen.Int64Range(1, propMaxVariable), gen.Int64Range(1, propMaxVariable),
	))

	properties.Property("serialize then deserialize is the identity", prop.ForAll(
		func(f Function) bool {
			data, err := f.ToBytes()
			if err != nil {
				return false
			}
			g, err := FunctionFromBytes(data)
			if err != nil {
				return false
			}
			return f.AbsDiffEq(g, ommx.ATol(math.SmallestNonzeroFloat64))
		},
		genFunction(),
	))

	properties.TestingRun(t)
}
