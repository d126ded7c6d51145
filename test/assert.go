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

// Package test provides helpers for testing instances and functions.
package test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	ommx "github.com/Jij-Inc/ommx-sub000"
	"github.com/Jij-Inc/ommx-sub000/instance"
	"github.com/Jij-Inc/ommx-sub000/polynomial"
	"github.com/Jij-Inc/ommx-sub000/state"
)

// Assert is a helper to test instances and functions.
type Assert struct {
	t *testing.T
	*require.Assertions
}

// NewAssert returns an Assert helper embedding a testify/require object for
// convenience.
func NewAssert(t *testing.T) *Assert {
	return &Assert{t, require.New(t)}
}

// Run runs the test function fn as a subtest. The subtest is parametrized
// by the description strings descs.
func (assert *Assert) Run(fn func(assert *Assert), descs ...string) {
	desc := strings.Join(descs, "/")
	assert.t.Run(desc, func(t *testing.T) {
		fn(NewAssert(t))
	})
}

// FeasibleSucceeded evaluates inst at st and fails the test unless the
// evaluation succeeds and the resulting solution is feasible.
func (assert *Assert) FeasibleSucceeded(inst *instance.Instance, st state.State, atol ommx.ATol) *instance.Solution {
	sol, err := inst.Evaluate(st, atol)
	assert.NoError(err)
	assert.True(sol.Feasible, "expected a feasible solution")
	return sol
}

// FeasibleFailed evaluates inst at st and fails the test unless the state
// evaluates cleanly to an infeasible solution.
func (assert *Assert) FeasibleFailed(inst *instance.Instance, st state.State, atol ommx.ATol) *instance.Solution {
	sol, err := inst.Evaluate(st, atol)
	assert.NoError(err)
	assert.False(sol.Feasible, "expected an infeasible solution")
	return sol
}

// FunctionsAbsDiffEq fails the test unless f and g agree term-wise within
// atol.
func (assert *Assert) FunctionsAbsDiffEq(f, g polynomial.Function, atol ommx.ATol) {
	assert.True(f.AbsDiffEq(g, atol), "functions differ: %s vs %s", f, g)
}

// EvaluatesTo evaluates f at st and compares against want within atol.
func (assert *Assert) EvaluatesTo(f polynomial.Function, st state.State, want float64, atol ommx.ATol) {
	got, err := f.Evaluate(st, atol)
	assert.NoError(err)
	assert.InDelta(want, got, atol.Float64())
}

// RoundTrips serializes the instance and fails the test unless the decoded
// copy has an objective and constraints equal to the original within
// atol = 0 semantics.
func (assert *Assert) RoundTrips(inst *instance.Instance) *instance.Instance {
	data, err := inst.ToBytes()
	assert.NoError(err)
	decoded, err := instance.InstanceFromBytes(data)
	assert.NoError(err)
	tiny := ommx.ATol(1e-300)
	assert.True(inst.Objective().AbsDiffEq(decoded.Objective(), tiny))
	assert.Len(decoded.Constraints(), len(inst.Constraints()))
	assert.Len(decoded.RemovedConstraints(), len(inst.RemovedConstraints()))
	for cid, c := range inst.Constraints() {
		d, ok := decoded.Constraints()[cid]
		assert.True(ok, "constraint %d lost in round trip", cid)
		assert.Equal(c.Equality(), d.Equality())
		assert.True(c.Function().AbsDiffEq(d.Function(), tiny))
	}
	return decoded
}
