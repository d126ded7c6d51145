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

package instance

import (
	"testing"

	"github.com/stretchr/testify/require"

	ommx "github.com/Jij-Inc/ommx-sub000"
	"github.com/Jij-Inc/ommx-sub000/polynomial"
	"github.com/Jij-Inc/ommx-sub000/state"
)

// testInstances is a registry of named instances exercised by several
// tests, each with a state known to be feasible.
var testInstances = map[string]struct {
	build    func(t *testing.T) *Instance
	feasible state.State
}{
	"unconstrained-binary": {
		build: func(t *testing.T) *Instance {
			// min x1 + 2 x1 x2 - 3
			obj := polynomial.Variable(1).
				Add(polynomial.Variable(1).Mul(polynomial.Variable(2)).Mul(polynomial.Constant(2))).
				Add(polynomial.Constant(-3))
			return mustInstance(t, Minimize, obj,
				[]*DecisionVariable{binaryVar(t, 1), binaryVar(t, 2)}, nil)
		},
		feasible: state.State{1: 0, 2: 0},
	},
	"binary-inequality": {
		build: func(t *testing.T) *Instance {
			// min x + y  s.t.  x + y - 1 <= 0
			obj := polynomial.Variable(1).Add(polynomial.Variable(2))
			con := polynomial.Variable(1).Add(polynomial.Variable(2)).Add(polynomial.Constant(-1))
			return mustInstance(t, Minimize, obj,
				[]*DecisionVariable{binaryVar(t, 1), binaryVar(t, 2)},
				[]*Constraint{NewLessThanOrEqualToZero(1, con)})
		},
		feasible: state.State{1: 1, 2: 0},
	},
	"integer-knapsack": {
		build: func(t *testing.T) *Instance {
			// max 3x + 4y  s.t.  2x + 3y - 6 <= 0 over integers in [0, 3]
			obj := polynomial.Variable(1).Mul(polynomial.Constant(3)).
				Add(polynomial.Variable(2).Mul(polynomial.Constant(4)))
			con := polynomial.Variable(1).Mul(polynomial.Constant(2)).
				Add(polynomial.Variable(2).Mul(polynomial.Constant(3))).
				Add(polynomial.Constant(-6))
			return mustInstance(t, Maximize, obj,
				[]*DecisionVariable{integerVar(t, 1, 0, 3), integerVar(t, 2, 0, 3)},
				[]*Constraint{NewLessThanOrEqualToZero(1, con)})
		},
		feasible: state.State{1: 3, 2: 0},
	},
	"equality-pair": {
		build: func(t *testing.T) *Instance {
			// min x + y  s.t.  x + y - 1 <= 0,  x - y = 0
			obj := polynomial.Variable(1).Add(polynomial.Variable(2))
			ineq := polynomial.Variable(1).Add(polynomial.Variable(2)).Add(polynomial.Constant(-1))
			eq := polynomial.Variable(1).Sub(polynomial.Variable(2))
			return mustInstance(t, Minimize, obj,
				[]*DecisionVariable{binaryVar(t, 1), binaryVar(t, 2)},
				[]*Constraint{
					NewLessThanOrEqualToZero(1, ineq),
					NewEqualToZero(2, eq),
				})
		},
		feasible: state.State{1: 0, 2: 0},
	},
}

func binaryVar(t *testing.T, id ommx.VariableID) *DecisionVariable {
	t.Helper()
	v, err := NewDecisionVariable(id, Binary, mustBound(0, 1), ommx.DefaultATol)
	require.NoError(t, err)
	return v
}

func integerVar(t *testing.T, id ommx.VariableID, lo, hi float64) *DecisionVariable {
	t.Helper()
	b, err := polynomial.NewBound(lo, hi)
	require.NoError(t, err)
	v, err := NewDecisionVariable(id, Integer, b, ommx.DefaultATol)
	require.NoError(t, err)
	return v
}

func continuousVar(t *testing.T, id ommx.VariableID, lo, hi float64) *DecisionVariable {
	t.Helper()
	b, err := polynomial.NewBound(lo, hi)
	require.NoError(t, err)
	v, err := NewDecisionVariable(id, Continuous, b, ommx.DefaultATol)
	require.NoError(t, err)
	return v
}

func mustInstance(t *testing.T, sense Sense, obj polynomial.Function, vars []*DecisionVariable, cons []*Constraint) *Instance {
	t.Helper()
	inst, err := NewInstance(sense, obj, vars, cons)
	require.NoError(t, err)
	return inst
}

// Every registered instance must evaluate its feasible state cleanly and
// survive a serialization round trip.
func TestRegisteredInstances(t *testing.T) {
	for name, entry := range testInstances {
		entry := entry
		t.Run(name, func(t *testing.T) {
			assert := require.New(t)
			inst := entry.build(t)

			sol, err := inst.Evaluate(entry.feasible, ommx.DefaultATol)
			assert.NoError(err)
			assert.True(sol.Feasible)
			assert.True(sol.FeasibleRelaxed)

			data, err := inst.ToBytes()
			assert.NoError(err)
			decoded, err := InstanceFromBytes(data)
			assert.NoError(err)
			assert.True(inst.Objective().AbsDiffEq(decoded.Objective(), ommx.DefaultATol))

			again, err := decoded.Evaluate(entry.feasible, ommx.DefaultATol)
			assert.NoError(err)
			assert.Equal(sol.Objective, again.Objective)
		})
	}
}
