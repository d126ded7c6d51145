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
	ommx "github.com/Jij-Inc/ommx-sub000"
	"github.com/Jij-Inc/ommx-sub000/state"
)

// Optimality records whether a solution is known optimal.
type Optimality uint8

const (
	OptimalityUnspecified Optimality = iota
	Optimal
	NotOptimal
)

// Relaxation records whether a solution was obtained from a relaxed
// problem.
type Relaxation uint8

const (
	RelaxationUnspecified Relaxation = iota
	LpRelaxed
)

// EvaluatedConstraint is one constraint's value at a state, with its
// feasibility under the constraint's predicate.
type EvaluatedConstraint struct {
	ID                      ommx.ConstraintID
	Equality                Equality
	Value                   float64
	Feasible                bool
	Removed                 bool
	RemovedReason           string
	RemovedReasonParameters map[string]string
}

// Solution is the result of evaluating an instance at a state. The state
// covers every decision variable; Feasible aggregates all constraints
// including removed ones, FeasibleRelaxed only the active ones.
type Solution struct {
	Sense                Sense
	State                state.State
	Objective            float64
	EvaluatedConstraints map[ommx.ConstraintID]*EvaluatedConstraint
	Feasible             bool
	FeasibleRelaxed      bool
	Optimality           Optimality
	Relaxation           Relaxation
}
