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

func TestAcyclicAssignmentsCycleDetection(t *testing.T) {
	assert := require.New(t)

	// x1 := x2 + 1, x2 := x3, x3 := x1 is a cycle
	_, err := NewAcyclicAssignments([]Assignment{
		{ID: 1, Function: polynomial.Variable(2).Add(polynomial.Constant(1))},
		{ID: 2, Function: polynomial.Variable(3)},
		{ID: 3, Function: polynomial.Variable(1)},
	})
	var cycle ErrCycleDetected
	assert.ErrorAs(err, &cycle)
	assert.NotEmpty(cycle.Path)

	// self loop
	_, err = NewAcyclicAssignments([]Assignment{
		{ID: 1, Function: polynomial.Variable(1)},
	})
	assert.ErrorAs(err, &ErrCycleDetected{})

	// duplicate keys
	_, err = NewAcyclicAssignments([]Assignment{
		{ID: 1, Function: polynomial.Constant(1)},
		{ID: 1, Function: polynomial.Constant(2)},
	})
	assert.ErrorAs(err, &ErrDuplicatedVariableID{})
}

func TestAcyclicAssignmentsEvaluationOrder(t *testing.T) {
	assert := require.New(t)

	// x1 depends on x2 which depends on x3 (a leaf)
	a, err := NewAcyclicAssignments([]Assignment{
		{ID: 1, Function: polynomial.Variable(2).Mul(polynomial.Constant(2))},
		{ID: 2, Function: polynomial.Variable(3).Add(polynomial.Constant(1))},
	})
	assert.NoError(err)

	s := state.State{3: 4}
	assert.NoError(a.Evaluate(s, ommx.DefaultATol))
	assert.Equal(5.0, s[2])
	assert.Equal(10.0, s[1])

	// keys come out dependencies-first
	keys := a.Keys()
	assert.Equal([]ommx.VariableID{2, 1}, keys)
}

func TestAcyclicAssignmentsUndefinedLeaf(t *testing.T) {
	assert := require.New(t)

	a, err := NewAcyclicAssignments([]Assignment{
		{ID: 1, Function: polynomial.Variable(9)},
	})
	assert.NoError(err)

	err = a.Evaluate(state.State{}, ommx.DefaultATol)
	var cannot ErrCannotEvaluate
	assert.ErrorAs(err, &cannot)
	assert.Equal([]ommx.VariableID{9}, cannot.UndefinedIDs)
}
