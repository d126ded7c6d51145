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
	"fmt"
	"math"

	ommx "github.com/Jij-Inc/ommx-sub000"
)

// Bound is a closed interval [Lower, Upper]. Either endpoint may be
// infinite; the invariant Lower <= Upper holds for every constructed value.
type Bound struct {
	lower float64
	upper float64
}

// NewBound validates lower <= upper. NaN endpoints and empty intervals are
// rejected with ErrEmptyBound.
func NewBound(lower, upper float64) (Bound, error) {
	if math.IsNaN(lower) || math.IsNaN(upper) || lower > upper {
		return Bound{}, ErrEmptyBound{Lower: lower, Upper: upper}
	}
	return Bound{lower: lower, upper: upper}, nil
}

// UnboundedBound returns (-inf, +inf).
func UnboundedBound() Bound {
	return Bound{lower: math.Inf(-1), upper: math.Inf(1)}
}

// PointBound returns [v, v].
func PointBound(v float64) Bound {
	return Bound{lower: v, upper: v}
}

// Lower returns the lower endpoint.
func (b Bound) Lower() float64 { return b.lower }

// Upper returns the upper endpoint.
func (b Bound) Upper() float64 { return b.upper }

// Width returns upper - lower. A non-finite width means "unbounded".
func (b Bound) Width() float64 { return b.upper - b.lower }

// Contains reports lower - atol <= x <= upper + atol.
func (b Bound) Contains(x float64, atol ommx.ATol) bool {
	return b.lower-atol.Float64() <= x && x <= b.upper+atol.Float64()
}

// NearestToZero returns 0 when the interval contains it, otherwise the
// endpoint of least magnitude.
func (b Bound) NearestToZero() float64 {
	switch {
	case b.lower > 0:
		return b.lower
	case b.upper < 0:
		return b.upper
	default:
		return 0
	}
}

// Add is interval addition.
func (b Bound) Add(other Bound) Bound {
	return Bound{lower: b.lower + other.lower, upper: b.upper + other.upper}
}

// Mul is interval multiplication. Products with an infinite endpoint follow
// the convention 0 * inf = 0 so that a zero factor annihilates.
func (b Bound) Mul(other Bound) Bound {
	p := [4]float64{
		mulEndpoint(b.lower, other.lower),
		mulEndpoint(b.lower, other.upper),
		mulEndpoint(b.upper, other.lower),
		mulEndpoint(b.upper, other.upper),
	}
	lo, hi := p[0], p[0]
	for _, v := range p[1:] {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	return Bound{lower: lo, upper: hi}
}

// MulScalar scales the interval by a finite scalar.
func (b Bound) MulScalar(s float64) Bound {
	if s == 0 {
		return Bound{}
	}
	lo := mulEndpoint(b.lower, s)
	hi := mulEndpoint(b.upper, s)
	if s < 0 {
		lo, hi = hi, lo
	}
	return Bound{lower: lo, upper: hi}
}

// Pow is interval exponentiation with a non-negative integer exponent.
// Pow(0) = [1, 1]; even powers of an interval containing zero start at zero.
func (b Bound) Pow(n int) Bound {
	switch {
	case n == 0:
		return PointBound(1)
	case n == 1:
		return b
	}
	alo := math.Pow(b.lower, float64(n))
	ahi := math.Pow(b.upper, float64(n))
	if n%2 == 1 {
		return Bound{lower: alo, upper: ahi}
	}
	hi := math.Max(alo, ahi)
	if b.lower <= 0 && 0 <= b.upper {
		return Bound{lower: 0, upper: hi}
	}
	return Bound{lower: math.Min(alo, ahi), upper: hi}
}

// AsIntegerBound rounds the lower endpoint up and the upper endpoint down,
// with atol grace for values that sit just outside an integer. It fails with
// ErrNotIntegerBound when the rounded interval is empty.
func (b Bound) AsIntegerBound(atol ommx.ATol) (Bound, error) {
	lo := math.Ceil(b.lower - atol.Float64())
	hi := math.Floor(b.upper + atol.Float64())
	if lo > hi {
		return Bound{}, ErrNotIntegerBound{Lower: b.lower, Upper: b.upper}
	}
	return Bound{lower: lo, upper: hi}, nil
}

// IsFinite reports whether both endpoints are finite.
func (b Bound) IsFinite() bool {
	return !math.IsInf(b.lower, 0) && !math.IsInf(b.upper, 0)
}

func (b Bound) String() string {
	return fmt.Sprintf("[%v, %v]", b.lower, b.upper)
}

// mulEndpoint multiplies interval endpoints with 0 * inf = 0.
func mulEndpoint(a, b float64) float64 {
	if a == 0 || b == 0 {
		return 0
	}
	return a * b
}
