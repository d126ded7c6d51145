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

	"github.com/fxamacker/cbor/v2"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	ommx "github.com/Jij-Inc/ommx-sub000"
	"github.com/Jij-Inc/ommx-sub000/polynomial"
	"github.com/Jij-Inc/ommx-sub000/state"
)

func TestInstanceRoundTrip(t *testing.T) {
	assert := require.New(t)
	inst := testInstances["equality-pair"].build(t)
	assert.NoError(inst.RelaxConstraint(2, "manual", map[string]string{"k": "v"}))
	inst.Description = "test instance"
	inst.DecisionVariables()[1].Metadata.Name = "x"
	inst.DecisionVariables()[1].Metadata.Subscripts = []int64{0, 7}

	data, err := inst.ToBytes()
	assert.NoError(err)
	decoded, err := InstanceFromBytes(data)
	assert.NoError(err)

	assert.Equal(inst.Sense(), decoded.Sense())
	assert.Equal("test instance", decoded.Description)
	assert.True(inst.Objective().AbsDiffEq(decoded.Objective(), ommx.DefaultATol))
	assert.Len(decoded.Constraints(), 1)
	assert.Len(decoded.RemovedConstraints(), 1)
	assert.Equal("manual", decoded.RemovedConstraints()[2].RemovedReason)
	assert.Equal(map[string]string{"k": "v"}, decoded.RemovedConstraints()[2].RemovedReasonParameters)

	v, ok := decoded.GetDecisionVariable(1)
	assert.True(ok)
	assert.Equal("x", v.Metadata.Name)
	assert.Equal([]int64{0, 7}, v.Metadata.Subscripts)
	assert.Equal(Binary, v.Kind())
}

func TestInstanceRoundTripWithDependency(t *testing.T) {
	assert := require.New(t)
	inst := testInstances["binary-inequality"].build(t)
	assert.NoError(inst.Substitute(1, polynomial.Constant(1).Sub(polynomial.Variable(2))))

	data, err := inst.ToBytes()
	assert.NoError(err)
	decoded, err := InstanceFromBytes(data)
	assert.NoError(err)
	assert.True(decoded.Dependency().HasKey(1))

	f, _ := decoded.Dependency().Get(1)
	want := polynomial.Constant(1).Sub(polynomial.Variable(2))
	assert.True(f.AbsDiffEq(want, ommx.DefaultATol))
}

func TestInstanceFromBytesRejectsCorruptReferences(t *testing.T) {
	assert := require.New(t)
	inst := testInstances["binary-inequality"].build(t)

	// hand-craft an encoding whose constraint references a missing variable
	enc := inst.toCBOR()
	enc.Variables = enc.Variables[:1]
	data, err := marshalInstanceCBOR(enc)
	assert.NoError(err)
	_, err = InstanceFromBytes(data)
	assert.Error(err)
	assert.Contains(err.Error(), "ommx.Instance")
}

func marshalInstanceCBOR(enc instanceCBOR) ([]byte, error) {
	return cbor.Marshal(enc)
}

func TestParametricInstanceRoundTrip(t *testing.T) {
	assert := require.New(t)
	inst := testInstances["equality-pair"].build(t)
	p := inst.PenaltyMethod()

	data, err := p.ToBytes()
	assert.NoError(err)
	decoded, err := ParametricInstanceFromBytes(data)
	assert.NoError(err)

	assert.Equal(p.DefinedParameterIDs(), decoded.DefinedParameterIDs())
	assert.True(p.Objective().AbsDiffEq(decoded.Objective(), ommx.DefaultATol))
	assert.Len(decoded.DecisionVariables(), len(p.DecisionVariables()))
	for _, id := range decoded.DefinedParameterIDs() {
		assert.Equal("penalty_weight", decoded.Parameters()[id].Name)
	}

	// the decoded parametric instance still specializes correctly
	params := decoded.DefinedParameterIDs()
	zeroed, err := decoded.WithParameters(Parameters{params[0]: 0, params[1]: 0})
	assert.NoError(err)
	assert.True(zeroed.Objective().AbsDiffEq(inst.Objective(), ommx.DefaultATol))
}

func TestParametersRoundTrip(t *testing.T) {
	assert := require.New(t)
	p := Parameters{3: 1.5, 4: -2}

	data, err := p.ToBytes()
	assert.NoError(err)
	decoded, err := ParametersFromBytes(data)
	assert.NoError(err)
	assert.Equal(p, decoded)
}

func TestSolutionRoundTrip(t *testing.T) {
	assert := require.New(t)
	inst := testInstances["equality-pair"].build(t)
	sol, err := inst.Evaluate(state.State{1: 1, 2: 0}, ommx.DefaultATol)
	assert.NoError(err)

	data, err := sol.ToBytes()
	assert.NoError(err)
	decoded, err := SolutionFromBytes(data)
	assert.NoError(err)

	assert.Equal(sol.Objective, decoded.Objective)
	assert.Equal(sol.Feasible, decoded.Feasible)
	assert.Equal(sol.FeasibleRelaxed, decoded.FeasibleRelaxed)
	assert.Empty(cmp.Diff(sol.State, decoded.State))
	assert.Empty(cmp.Diff(sol.EvaluatedConstraints, decoded.EvaluatedConstraints))
}

func TestSolutionFromBytesChecksFlags(t *testing.T) {
	assert := require.New(t)
	inst := testInstances["equality-pair"].build(t)
	sol, err := inst.Evaluate(state.State{1: 1, 2: 0}, ommx.DefaultATol)
	assert.NoError(err)
	assert.False(sol.Feasible)

	// claim feasibility the constraint values contradict
	sol.Feasible = true
	sol.FeasibleRelaxed = true
	data, err := sol.ToBytes()
	assert.NoError(err)
	_, err = SolutionFromBytes(data)
	assert.Error(err)
}

func TestSampleSetRoundTrip(t *testing.T) {
	assert := require.New(t)
	set := sampleSetFixture(t)

	data, err := set.ToBytes()
	assert.NoError(err)
	decoded, err := SampleSetFromBytes(data)
	assert.NoError(err)

	assert.Equal(set.SampleIDs(), decoded.SampleIDs())
	assert.Equal(set.FeasibleIDs(), decoded.FeasibleIDs())

	best, err := decoded.BestFeasibleID()
	assert.NoError(err)
	assert.Equal(ommx.SampleID(1), best)

	sol, err := decoded.Get(3)
	assert.NoError(err)
	assert.False(sol.Feasible)
	assert.Equal(21.0, sol.Objective)
}
