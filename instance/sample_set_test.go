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
	"github.com/Jij-Inc/ommx-sub000/state"
)

func sampleSetFixture(t *testing.T) *SampleSet {
	t.Helper()
	inst := testInstances["integer-knapsack"].build(t)
	samples := &state.Samples{}
	require.NoError(t, samples.Add(0, state.State{1: 0, 2: 0})) // obj 0, feasible
	require.NoError(t, samples.Add(1, state.State{1: 3, 2: 0})) // obj 9, feasible
	require.NoError(t, samples.Add(2, state.State{1: 0, 2: 2})) // obj 8, feasible
	require.NoError(t, samples.Add(3, state.State{1: 3, 2: 3})) // obj 21, infeasible
	set, err := inst.EvaluateSamples(samples, ommx.DefaultATol)
	require.NoError(t, err)
	return set
}

func TestBestFeasibleMaximize(t *testing.T) {
	assert := require.New(t)
	set := sampleSetFixture(t)

	assert.Equal([]ommx.SampleID{0, 1, 2}, set.FeasibleIDs())

	best, err := set.BestFeasibleID()
	assert.NoError(err)
	assert.Equal(ommx.SampleID(1), best, "maximization picks the largest objective")

	sol, err := set.BestFeasible()
	assert.NoError(err)
	assert.Equal(9.0, sol.Objective)
}

func TestBestFeasibleTieBreaksBySampleID(t *testing.T) {
	assert := require.New(t)
	inst := testInstances["unconstrained-binary"].build(t)

	samples := &state.Samples{}
	// two distinct states with the same objective value -3
	assert.NoError(samples.Add(5, state.State{1: 0, 2: 0}))
	assert.NoError(samples.Add(2, state.State{1: 0, 2: 1}))
	set, err := inst.EvaluateSamples(samples, ommx.DefaultATol)
	assert.NoError(err)

	best, err := set.BestFeasibleID()
	assert.NoError(err)
	assert.Equal(ommx.SampleID(2), best)
}

func TestNoFeasibleSample(t *testing.T) {
	assert := require.New(t)
	inst := testInstances["integer-knapsack"].build(t)

	samples := &state.Samples{}
	assert.NoError(samples.Add(0, state.State{1: 3, 2: 3}))
	set, err := inst.EvaluateSamples(samples, ommx.DefaultATol)
	assert.NoError(err)

	_, err = set.BestFeasibleID()
	assert.ErrorAs(err, &ErrNoFeasibleSample{})
}

func TestSampleSetConsistencyCheck(t *testing.T) {
	assert := require.New(t)
	set := sampleSetFixture(t)

	// corrupt one stored flag and rebuild: the constructor must notice
	set.constraints[1].Feasible[3] = true
	_, err := NewSampleSet(set.sense, set.objectives, set.decisionVariables,
		set.variables, set.constraints, set.feasible, set.feasibleRelaxed, ommx.DefaultATol)
	assert.ErrorAs(err, &ErrInconsistentFeasibility{})
}

func TestExtractDecisionVariables(t *testing.T) {
	assert := require.New(t)
	inst := testInstances["binary-inequality"].build(t)
	inst.DecisionVariables()[1].Metadata.Name = "x"
	inst.DecisionVariables()[1].Metadata.Subscripts = []int64{0}
	inst.DecisionVariables()[2].Metadata.Name = "x"
	inst.DecisionVariables()[2].Metadata.Subscripts = []int64{1}

	samples := &state.Samples{}
	assert.NoError(samples.Add(0, state.State{1: 1, 2: 0}))
	set, err := inst.EvaluateSamples(samples, ommx.DefaultATol)
	assert.NoError(err)

	values, err := set.ExtractDecisionVariables("x", 0)
	assert.NoError(err)
	assert.Len(values, 2)
	assert.Equal([]int64{0}, values[0].Subscripts)
	assert.Equal(1.0, values[0].Value)
	assert.Equal([]int64{1}, values[1].Subscripts)
	assert.Equal(0.0, values[1].Value)

	_, err = set.ExtractDecisionVariables("y", 0)
	assert.ErrorAs(err, &ErrUnknownVariableName{})

	// colliding subscripts are an error
	inst.DecisionVariables()[2].Metadata.Subscripts = []int64{0}
	set2, err := inst.EvaluateSamples(samples, ommx.DefaultATol)
	assert.NoError(err)
	_, err = set2.ExtractDecisionVariables("x", 0)
	assert.ErrorAs(err, &ErrDuplicateSubscripts{})

	// parameterized variables cannot be extracted
	inst.DecisionVariables()[2].Metadata.Subscripts = []int64{1}
	inst.DecisionVariables()[2].Metadata.Parameters = map[string]string{"p": "1"}
	set3, err := inst.EvaluateSamples(samples, ommx.DefaultATol)
	assert.NoError(err)
	_, err = set3.ExtractDecisionVariables("x", 0)
	assert.ErrorAs(err, &ErrParameterizedVariable{})
}
