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
	"math"

	ommx "github.com/Jij-Inc/ommx-sub000"
	"github.com/Jij-Inc/ommx-sub000/polynomial"
)

// Equality selects the predicate a constraint's function is held to.
type Equality uint8

const (
	// EqualToZero holds f(x) = 0.
	EqualToZero Equality = iota
	// LessThanOrEqualToZero holds f(x) <= 0.
	LessThanOrEqualToZero
)

func (e Equality) String() string {
	if e == EqualToZero {
		return "=0"
	}
	return "<=0"
}

// Constraint pairs a function with an equality predicate.
type Constraint struct {
	id       ommx.ConstraintID
	equality Equality
	function polynomial.Function

	Metadata Metadata
}

// NewEqualToZero returns the constraint f(x) = 0.
func NewEqualToZero(id ommx.ConstraintID, f polynomial.Function) *Constraint {
	return &Constraint{id: id, equality: EqualToZero, function: f}
}

// NewLessThanOrEqualToZero returns the constraint f(x) <= 0.
func NewLessThanOrEqualToZero(id ommx.ConstraintID, f polynomial.Function) *Constraint {
	return &Constraint{id: id, equality: LessThanOrEqualToZero, function: f}
}

// ID returns the constraint's identifier.
func (c *Constraint) ID() ommx.ConstraintID { return c.id }

// Equality returns the constraint's predicate.
func (c *Constraint) Equality() Equality { return c.equality }

// Function returns the constraint's function.
func (c *Constraint) Function() polynomial.Function { return c.function }

// IsFeasible evaluates the predicate against an already-computed value:
// |value| <= atol for equalities, value <= atol for inequalities.
func (c *Constraint) IsFeasible(value float64, atol ommx.ATol) bool {
	if c.equality == EqualToZero {
		return math.Abs(value) <= atol.Float64()
	}
	return value <= atol.Float64()
}

// Clone returns a deep copy.
func (c *Constraint) Clone() *Constraint {
	return &Constraint{
		id:       c.id,
		equality: c.equality,
		function: c.function.Clone(),
		Metadata: cloneMetadata(c.Metadata),
	}
}

// RemovedConstraint wraps a constraint taken out of the active set, with
// the reason it was removed. Removed constraints still participate in the
// strict feasibility flag of a Solution.
type RemovedConstraint struct {
	Constraint              *Constraint
	RemovedReason           string
	RemovedReasonParameters map[string]string
}

// Clone returns a deep copy.
func (r *RemovedConstraint) Clone() *RemovedConstraint {
	out := &RemovedConstraint{
		Constraint:    r.Constraint.Clone(),
		RemovedReason: r.RemovedReason,
	}
	if r.RemovedReasonParameters != nil {
		out.RemovedReasonParameters = make(map[string]string, len(r.RemovedReasonParameters))
		for k, v := range r.RemovedReasonParameters {
			out.RemovedReasonParameters[k] = v
		}
	}
	return out
}
