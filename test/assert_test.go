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

package test

import (
	"testing"

	ommx "github.com/Jij-Inc/ommx-sub000"
	"github.com/Jij-Inc/ommx-sub000/instance"
	"github.com/Jij-Inc/ommx-sub000/polynomial"
	"github.com/Jij-Inc/ommx-sub000/state"
)

func buildKnapsack(assert *Assert) *instance.Instance {
	unit, err := polynomial.NewBound(0, 1)
	assert.NoError(err)
	x, err := instance.NewDecisionVariable(1, instance.Binary, unit, ommx.DefaultATol)
	assert.NoError(err)
	y, err := instance.NewDecisionVariable(2, instance.Binary, unit, ommx.DefaultATol)
	assert.NoError(err)

	obj := polynomial.Variable(1).Add(polynomial.Variable(2))
	con := polynomial.Variable(1).Add(polynomial.Variable(2)).Add(polynomial.Constant(-1))
	inst, err := instance.NewInstance(instance.Minimize, obj,
		[]*instance.DecisionVariable{x, y},
		[]*instance.Constraint{instance.NewLessThanOrEqualToZero(1, con)})
	assert.NoError(err)
	return inst
}

func TestAssertHelpers(t *testing.T) {
	assert := NewAssert(t)
	inst := buildKnapsack(assert)

	assert.Run(func(assert *Assert) {
		sol := assert.FeasibleSucceeded(inst, state.State{1: 1, 2: 0}, ommx.DefaultATol)
		assert.Equal(1.0, sol.Objective)
	}, "feasible")

	assert.Run(func(assert *Assert) {
		assert.FeasibleFailed(inst, state.State{1: 1, 2: 1}, ommx.DefaultATol)
	}, "infeasible")

	assert.Run(func(assert *Assert) {
		assert.RoundTrips(inst)
	}, "roundtrip")

	assert.Run(func(assert *Assert) {
		f := polynomial.Variable(1).Add(polynomial.Constant(2))
		assert.FunctionsAbsDiffEq(f, f.Clone(), ommx.DefaultATol)
		assert.EvaluatesTo(f, state.State{1: 3}, 5, ommx.DefaultATol)
	}, "functions")
}
