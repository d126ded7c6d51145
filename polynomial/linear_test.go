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
	"testing"

	"github.com/stretchr/testify/require"

	ommx "github.com/Jij-Inc/ommx-sub000"
	"github.com/Jij-Inc/ommx-sub000/state"
)

// f = x1 + 2*x2 + 3 evaluated at {1: 2, 2: 3} is 11.
func TestLinearEvaluate(t *testing.T) {
	assert := require.New(t)

	f := NewLinear()
	f.AddVariable(1, 1)
	f.AddVariable(2, 2)
	f.AddConstant(3)

	got, err := f.Evaluate(state.State{1: 2, 2: 3}, ommx.DefaultATol)
	assert.NoError(err)
	assert.Equal(11.0, got)

	_, err = f.Evaluate(state.State{1: 2}, ommx.DefaultATol)
	assert.ErrorAs(err, &ErrMissingVariableInState{})
}

// f = x1 + 2*x2 + 3*x3 + 4 at {1: 2, 3: 4} leaves 2*x2 + 18.
func TestLinearPartialEvaluate(t *testing.T) {
	assert := require.New(t)

	f := NewLinear()
	f.AddVariable(1, 1)
	f.AddVariable(2, 2)
	f.AddVariable(3, 3)
	f.AddConstant(4)

	f.PartialEvaluate(state.State{1: 2, 3: 4})
	assert.Equal(18.0, f.ConstantTerm())
	assert.Equal(map[ommx.VariableID]float64{2: 2}, f.VariableTerms())
	assert.Equal([]ommx.VariableID{2}, f.RequiredIDs().Sorted())
}

func TestLinearAddCancellation(t *testing.T) {
	assert := require.New(t)

	f := LinearSingleTerm(2, 1)
	g := LinearSingleTerm(-2, 1)
	f.AddAssign(g)
	assert.True(f.IsZero())
	assert.Equal(0, f.NumTerms())
}

func TestLinearMul(t *testing.T) {
	assert := require.New(t)

	// (x1 + 1) * (x1 - 1) = x1^2 - 1
	f := LinearSingleTerm(1, 1)
	f.AddConstant(1)
	g := LinearSingleTerm(1, 1)
	g.AddConstant(-1)

	q := f.Mul(g)
	assert.Equal(2, q.NumTerms())
	assert.Equal(-1.0, q.ConstantTerm())
	sq := q.QuadraticTerms()
	assert.Equal(1.0, sq[ommx.NewVariableIDPair(1, 1)])
	assert.Empty(q.LinearTerms())
}

func TestScaleByZeroEmpties(t *testing.T) {
	assert := require.New(t)

	f := LinearSingleTerm(3, 1)
	assert.NoError(f.Scale(0))
	assert.True(f.IsZero())
}
