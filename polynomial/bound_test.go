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

	"github.com/stretchr/testify/require"

	ommx "github.com/Jij-Inc/ommx-sub000"
)

func TestNewBound(t *testing.T) {
	assert := require.New(t)

	_, err := NewBound(1, -1)
	assert.ErrorAs(err, &ErrEmptyBound{})

	_, err = NewBound(math.NaN(), 1)
	assert.Error(err)

	b, err := NewBound(math.Inf(-1), math.Inf(1))
	assert.NoError(err)
	assert.False(b.IsFinite())

	b, err = NewBound(-2, 3)
	assert.NoError(err)
	assert.Equal(-2.0, b.Lower())
	assert.Equal(3.0, b.Upper())
	assert.Equal(5.0, b.Width())
}

func TestBoundContains(t *testing.T) {
	assert := require.New(t)
	b, _ := NewBound(0, 1)

	assert.True(b.Contains(0, ommx.DefaultATol))
	assert.True(b.Contains(1, ommx.DefaultATol))
	assert.True(b.Contains(1+1e-7, ommx.DefaultATol))
	assert.False(b.Contains(1.1, ommx.DefaultATol))
	assert.False(b.Contains(-0.1, ommx.DefaultATol))
}

func TestBoundArithmetic(t *testing.T) {
	assert := require.New(t)
	a, _ := NewBound(-1, 2)
	b, _ := NewBound(3, 5)

	sum := a.Add(b)
	assert.Equal(2.0, sum.Lower())
	assert.Equal(7.0, sum.Upper())

	prod := a.Mul(b)
	assert.Equal(-5.0, prod.Lower())
	assert.Equal(10.0, prod.Upper())

	// zero annihilates an infinite endpoint
	unbounded := UnboundedBound()
	point := PointBound(0)
	z := unbounded.Mul(point)
	assert.Equal(0.0, z.Lower())
	assert.Equal(0.0, z.Upper())
}

func TestBoundPow(t *testing.T) {
	assert := require.New(t)
	b, _ := NewBound(-2, 3)

	one := b.Pow(0)
	assert.Equal(1.0, one.Lower())
	assert.Equal(1.0, one.Upper())

	sq := b.Pow(2)
	assert.Equal(0.0, sq.Lower())
	assert.Equal(9.0, sq.Upper())

	cube := b.Pow(3)
	assert.Equal(-8.0, cube.Lower())
	assert.Equal(27.0, cube.Upper())

	neg, _ := NewBound(-3, -2)
	sqNeg := neg.Pow(2)
	assert.Equal(4.0, sqNeg.Lower())
	assert.Equal(9.0, sqNeg.Upper())
}

func TestBoundNearestToZero(t *testing.T) {
	assert := require.New(t)

	b, _ := NewBound(-1, 2)
	assert.Equal(0.0, b.NearestToZero())

	b, _ = NewBound(2, 5)
	assert.Equal(2.0, b.NearestToZero())

	b, _ = NewBound(-5, -2)
	assert.Equal(-2.0, b.NearestToZero())
}

func TestAsIntegerBound(t *testing.T) {
	assert := require.New(t)

	b, _ := NewBound(0.3, 2.7)
	ib, err := b.AsIntegerBound(ommx.DefaultATol)
	assert.NoError(err)
	assert.Equal(1.0, ib.Lower())
	assert.Equal(2.0, ib.Upper())

	// endpoints just off an integer are snapped by atol
	b, _ = NewBound(1.0000001, 1.9999999)
	ib, err = b.AsIntegerBound(ommx.DefaultATol)
	assert.NoError(err)
	assert.Equal(1.0, ib.Lower())

	b, _ = NewBound(0.4, 0.6)
	_, err = b.AsIntegerBound(ommx.DefaultATol)
	assert.ErrorAs(err, &ErrNotIntegerBound{})
}
