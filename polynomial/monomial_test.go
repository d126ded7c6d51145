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
)

func TestVariableIDPairNormalization(t *testing.T) {
	assert := require.New(t)

	ab := ommx.NewVariableIDPair(1, 2)
	ba := ommx.NewVariableIDPair(2, 1)
	assert.Equal(ab, ba, "(a,b) and (b,a) must compare equal")
	assert.Equal(ommx.VariableID(1), ab.Lower())
	assert.Equal(ommx.VariableID(2), ab.Upper())

	sq := ommx.NewVariableIDPair(3, 3)
	assert.True(sq.IsSquare())

	// map keys collapse through normalization
	m := map[ommx.VariableIDPair]int{ab: 1}
	m[ba]++
	assert.Len(m, 1)
	assert.Equal(2, m[ab])
}

func TestMonomialDyn(t *testing.T) {
	assert := require.New(t)

	m := NewMonomialDyn(3, 1, 2, 1)
	assert.Equal(4, m.Degree())
	assert.Equal([]ommx.VariableID{1, 1, 2, 3}, m.IDs())

	// input order is irrelevant
	assert.Equal(m, NewMonomialDyn(1, 1, 2, 3))

	var visited []int
	m.Visit(func(id ommx.VariableID, exp int) {
		visited = append(visited, int(id), exp)
	})
	assert.Equal([]int{1, 2, 2, 1, 3, 1}, visited)

	product := NewMonomialDyn(1, 2).Mul(NewMonomialDyn(2, 3))
	assert.Equal([]ommx.VariableID{1, 2, 2, 3}, product.IDs())

	id, ok := NewMonomialDyn(7).AsLinear()
	assert.True(ok)
	assert.Equal(ommx.VariableID(7), id)

	pair, ok := NewMonomialDyn(5, 4).AsQuadraticPair()
	assert.True(ok)
	assert.Equal(ommx.NewVariableIDPair(4, 5), pair)

	_, ok = m.AsLinear()
	assert.False(ok)
}

func TestQuadraticMonomial(t *testing.T) {
	assert := require.New(t)

	sq := QuadraticPair(ommx.NewVariableIDPair(2, 2))
	var visited []int
	sq.Visit(func(id ommx.VariableID, exp int) {
		visited = append(visited, int(id), exp)
	})
	assert.Equal([]int{2, 2}, visited)
	assert.Equal(2, sq.Degree())

	lin := QuadraticLinear(9)
	id, ok := lin.Variable()
	assert.True(ok)
	assert.Equal(ommx.VariableID(9), id)
	assert.Equal(1, lin.Degree())
	assert.Equal(NewMonomialDyn(9), lin.Dyn())
}

func TestPartialEvaluateMonomial(t *testing.T) {
	assert := require.New(t)

	m := NewMonomialDyn(1, 1, 2)
	remaining, factor := partialEvaluateMonomial(m, map[ommx.VariableID]float64{1: 3})
	assert.Equal([]ommx.VariableID{2}, remaining)
	assert.Equal(9.0, factor)

	remaining, factor = partialEvaluateMonomial(m, map[ommx.VariableID]float64{})
	assert.Equal([]ommx.VariableID{1, 1, 2}, remaining)
	assert.Equal(1.0, factor)
}
