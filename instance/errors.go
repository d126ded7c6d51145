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
	"fmt"
	"strings"

	ommx "github.com/Jij-Inc/ommx-sub000"
	"github.com/Jij-Inc/ommx-sub000/polynomial"
)

// ErrValueOutOfBounds reports a value outside a variable's bound.
type ErrValueOutOfBounds struct {
	ID    ommx.VariableID
	Value float64
	Bound polynomial.Bound
	Kind  Kind
}

func (e ErrValueOutOfBounds) Error() string {
	return fmt.Sprintf("value %v of %s variable %d is outside its bound %s",
		e.Value, e.Kind, e.ID, e.Bound)
}

// ErrNotAnInteger reports a non-integer value assigned to an integer-kinded
// variable.
type ErrNotAnInteger struct {
	ID    ommx.VariableID
	Value float64
}

func (e ErrNotAnInteger) Error() string {
	return fmt.Sprintf("value %v of variable %d is not an integer", e.Value, e.ID)
}

// ErrCycleDetected reports a cyclic variable dependency.
type ErrCycleDetected struct {
	Path []ommx.VariableID
}

func (e ErrCycleDetected) Error() string {
	parts := make([]string, len(e.Path))
	for i, id := range e.Path {
		parts[i] = fmt.Sprintf("%d", id)
	}
	return "cyclic variable dependency: " + strings.Join(parts, " -> ")
}

// ErrCannotEvaluate reports assignments whose right-hand sides reference
// variables absent from the state.
type ErrCannotEvaluate struct {
	UndefinedIDs []ommx.VariableID
}

func (e ErrCannotEvaluate) Error() string {
	return fmt.Sprintf("cannot evaluate assignments: undefined variables %v", e.UndefinedIDs)
}

// ErrUndefinedVariableID reports a reference to a variable that is not a
// key of the decision-variable map.
type ErrUndefinedVariableID struct {
	ID ommx.VariableID
}

func (e ErrUndefinedVariableID) Error() string {
	return fmt.Sprintf("undefined variable ID %d", e.ID)
}

// ErrDuplicatedVariableID reports a decision variable declared twice.
type ErrDuplicatedVariableID struct {
	ID ommx.VariableID
}

func (e ErrDuplicatedVariableID) Error() string {
	return fmt.Sprintf("duplicated variable ID %d", e.ID)
}

// ErrDuplicatedConstraintID reports a constraint declared twice, or an
// active constraint colliding with a removed one.
type ErrDuplicatedConstraintID struct {
	ID ommx.ConstraintID
}

func (e ErrDuplicatedConstraintID) Error() string {
	return fmt.Sprintf("duplicated constraint ID %d", e.ID)
}

// ErrDependentVariableUsed reports a dependent variable appearing in the
// objective, an active constraint, or a hint.
type ErrDependentVariableUsed struct {
	ID ommx.VariableID
}

func (e ErrDependentVariableUsed) Error() string {
	return fmt.Sprintf("dependent variable %d used in objective, constraint, or hint", e.ID)
}

// ErrUnknownConstraintID reports an operation against a constraint ID that
// does not exist.
type ErrUnknownConstraintID struct {
	ID ommx.ConstraintID
}

func (e ErrUnknownConstraintID) Error() string {
	return fmt.Sprintf("unknown constraint ID %d", e.ID)
}

// ErrNoFeasibleInteger reports an integer variable whose bound contains no
// integer.
type ErrNoFeasibleInteger struct {
	ID ommx.VariableID
}

func (e ErrNoFeasibleInteger) Error() string {
	return fmt.Sprintf("bound of integer variable %d contains no feasible integer", e.ID)
}

// ErrContinuousInInequality reports a continuous variable in a constraint
// that requires an integral left-hand side.
type ErrContinuousInInequality struct {
	ID ommx.VariableID
}

func (e ErrContinuousInInequality) Error() string {
	return fmt.Sprintf("variable %d is not binary or integer", e.ID)
}

// ErrInfeasible reports a constraint whose bound analysis proves it can
// never be satisfied.
type ErrInfeasible struct {
	ID ommx.ConstraintID
}

func (e ErrInfeasible) Error() string {
	return fmt.Sprintf("constraint %d is infeasible", e.ID)
}

// ErrNotInequality reports a slack operation on an equality constraint.
type ErrNotInequality struct {
	ID ommx.ConstraintID
}

func (e ErrNotInequality) Error() string {
	return fmt.Sprintf("constraint %d is not an inequality", e.ID)
}

// ErrSlackRangeExceeded reports a slack variable range beyond the caller's
// limit.
type ErrSlackRangeExceeded struct {
	Width float64
	Limit float64
}

func (e ErrSlackRangeExceeded) Error() string {
	return fmt.Sprintf("slack variable range %v exceeds limit %v", e.Width, e.Limit)
}

// ErrRequiresMinimize reports a QUBO/HUBO extraction on a maximization
// instance.
type ErrRequiresMinimize struct{}

func (e ErrRequiresMinimize) Error() string { return "operation requires a minimization instance" }

// ErrRequiresNoConstraints reports a QUBO/HUBO extraction while active
// constraints remain.
type ErrRequiresNoConstraints struct{}

func (e ErrRequiresNoConstraints) Error() string {
	return "operation requires an instance without active constraints"
}

// ErrRequiresBinaryOnly reports a QUBO/HUBO extraction over non-binary
// variables.
type ErrRequiresBinaryOnly struct {
	ID ommx.VariableID
}

func (e ErrRequiresBinaryOnly) Error() string {
	return fmt.Sprintf("operation requires binary variables only, variable %d is not binary", e.ID)
}

// ErrUnsupportedDegree reports a QUBO extraction of an objective above
// degree two.
type ErrUnsupportedDegree struct {
	Degree ommx.Degree
}

func (e ErrUnsupportedDegree) Error() string {
	return fmt.Sprintf("objective degree %d is not representable", e.Degree)
}

// ErrInconsistentFeasibility reports stored per-sample feasibility that
// contradicts the recomputed predicate.
type ErrInconsistentFeasibility struct {
	SampleID ommx.SampleID
	Provided bool
	Computed bool
}

func (e ErrInconsistentFeasibility) Error() string {
	return fmt.Sprintf("sample %d: stored feasibility %v contradicts computed %v",
		e.SampleID, e.Provided, e.Computed)
}

// ErrNoFeasibleSample reports a best-sample query over an infeasible set.
type ErrNoFeasibleSample struct{}

func (e ErrNoFeasibleSample) Error() string { return "no feasible sample" }

// ErrUnknownVariableName reports a lookup by a name no variable carries.
type ErrUnknownVariableName struct {
	Name string
}

func (e ErrUnknownVariableName) Error() string {
	return fmt.Sprintf("no decision variable is named %q", e.Name)
}

// ErrDuplicateSubscripts reports two variables sharing a name and
// subscripts.
type ErrDuplicateSubscripts struct {
	Name       string
	Subscripts []int64
}

func (e ErrDuplicateSubscripts) Error() string {
	return fmt.Sprintf("decision variables named %q share subscripts %v", e.Name, e.Subscripts)
}

// ErrParameterizedVariable reports an extraction over a variable that
// still carries free metadata parameters.
type ErrParameterizedVariable struct {
	ID ommx.VariableID
}

func (e ErrParameterizedVariable) Error() string {
	return fmt.Sprintf("decision variable %d is parameterized", e.ID)
}

// ErrMissingParameterValue reports a WithParameters call that does not
// cover every declared parameter.
type ErrMissingParameterValue struct {
	ID ommx.VariableID
}

func (e ErrMissingParameterValue) Error() string {
	return fmt.Sprintf("no value supplied for parameter %d", e.ID)
}

// ErrInvalidHint reports a constraint hint with an empty or undefined
// variable set or an unknown constraint ID.
type ErrInvalidHint struct {
	Reason string
}

func (e ErrInvalidHint) Error() string {
	return "invalid constraint hint: " + e.Reason
}
