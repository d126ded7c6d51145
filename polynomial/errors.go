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

	ommx "github.com/Jij-Inc/ommx-sub000"
)

// ErrZeroCoefficient reports an attempt to build a coefficient from ±0.
type ErrZeroCoefficient struct{}

func (e ErrZeroCoefficient) Error() string { return "coefficient must be non-zero" }

// ErrNonFiniteCoefficient reports an attempt to build a coefficient from
// NaN or ±Inf.
type ErrNonFiniteCoefficient struct {
	Value float64
}

func (e ErrNonFiniteCoefficient) Error() string {
	return fmt.Sprintf("coefficient must be finite, got %v", e.Value)
}

// ErrEmptyBound reports lower > upper.
type ErrEmptyBound struct {
	Lower float64
	Upper float64
}

func (e ErrEmptyBound) Error() string {
	return fmt.Sprintf("empty bound: lower %v exceeds upper %v", e.Lower, e.Upper)
}

// ErrNotIntegerBound reports a bound that contains no integer.
type ErrNotIntegerBound struct {
	Lower float64
	Upper float64
}

func (e ErrNotIntegerBound) Error() string {
	return fmt.Sprintf("bound [%v, %v] contains no integer", e.Lower, e.Upper)
}

// ErrMissingVariableInState reports an evaluation over a state that does
// not assign a required variable.
type ErrMissingVariableInState struct {
	ID ommx.VariableID
}

func (e ErrMissingVariableInState) Error() string {
	return fmt.Sprintf("variable %d is required but missing from the state", e.ID)
}

// ErrOverflowReducing reports that the least common multiple of coefficient
// denominators does not fit in a signed 64-bit integer, so no finite content
// factor exists.
type ErrOverflowReducing struct{}

func (e ErrOverflowReducing) Error() string {
	return "overflow while reducing coefficients to a common integer multiplier"
}
