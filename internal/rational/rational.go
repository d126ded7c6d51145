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

// Package rational approximates IEEE-754 doubles by 64-bit rationals.
package rational

import "math"

// maxIterations bounds the continued-fraction expansion. A float64 mantissa
// is exhausted long before this.
const maxIterations = 64

// epsilon is the relative error at which the expansion stops.
const epsilon = 10 * 2.220446049250313e-16

// Rational is a reduced fraction Numer/Denom with Denom > 0.
type Rational struct {
	Numer int64
	Denom int64
}

// Approximate expands f as a continued fraction and returns the first
// convergent within a relative error of a few ULPs. The second return value
// is false when f is not finite or the convergents do not fit in int64.
func Approximate(f float64) (Rational, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Rational{}, false
	}
	if f == 0 {
		return Rational{Numer: 0, Denom: 1}, true
	}

	neg := f < 0
	x := math.Abs(f)

	// h and k track the numerator and denominator of the convergents.
	var h0, h1 int64 = 0, 1
	var k0, k1 int64 = 1, 0
	rem := x

	for i := 0; i < maxIterations; i++ {
		a := math.Floor(rem)
		if a > float64(math.MaxInt64) {
			return Rational{}, false
		}
		ai := int64(a)

		h2, ok := addMul(h1, ai, h0)
		if !ok {
			return Rational{}, false
		}
		k2, ok := addMul(k1, ai, k0)
		if !ok {
			return Rational{}, false
		}
		h0, h1 = h1, h2
		k0, k1 = k1, k2

		approx := float64(h1) / float64(k1)
		if math.Abs(approx-x) <= epsilon*x {
			break
		}

		frac := rem - a
		if frac == 0 {
			break
		}
		rem = 1 / frac
	}

	n, d := reduce(h1, k1)
	if neg {
		n = -n
	}
	return Rational{Numer: n, Denom: d}, true
}

// addMul returns prev + a*cur, reporting overflow.
func addMul(cur, a, prev int64) (int64, bool) {
	p, ok := mulChecked(a, cur)
	if !ok {
		return 0, false
	}
	s := p + prev
	if (s > p) != (prev > 0) && prev != 0 {
		return 0, false
	}
	return s, true
}

func mulChecked(a, b int64) (int64, bool) {
	if a == 0 || b == 0 {
		return 0, true
	}
	p := a * b
	if p/b != a {
		return 0, false
	}
	return p, true
}

func reduce(n, d int64) (int64, int64) {
	g := GCD(n, d)
	if g == 0 {
		return n, d
	}
	return n / g, d / g
}

// GCD returns the non-negative greatest common divisor of a and b.
func GCD(a, b int64) int64 {
	if a < 0 {
		a = -a
	}
	if b < 0 {
		b = -b
	}
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

// LCM returns the least common multiple of a and b, reporting overflow.
// LCM(0, x) = 0.
func LCM(a, b int64) (int64, bool) {
	if a == 0 || b == 0 {
		return 0, true
	}
	g := GCD(a, b)
	return mulChecked(a/g, b)
}
