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

// Package instance models optimization problem instances: decision
// variables, a polynomial objective, constraints, and the reformulation
// passes operating on them.
package instance

import (
	ommx "github.com/Jij-Inc/ommx-sub000"
	"github.com/Jij-Inc/ommx-sub000/internal/utils"
	"github.com/Jij-Inc/ommx-sub000/polynomial"
)

// Sense selects the optimization direction.
type Sense uint8

const (
	Minimize Sense = iota
	Maximize
)

func (s Sense) String() string {
	if s == Maximize {
		return "maximize"
	}
	return "minimize"
}

// Instance is the container of variables, objective and constraints. Every
// mutation re-checks the referential-integrity invariants it can break and
// leaves the instance untouched on failure.
type Instance struct {
	sense              Sense
	objective          polynomial.Function
	decisionVariables  map[ommx.VariableID]*DecisionVariable
	constraints        map[ommx.ConstraintID]*Constraint
	removedConstraints map[ommx.ConstraintID]*RemovedConstraint
	dependency         *AcyclicAssignments
	hints              ConstraintHints

	Parameters  map[string]string
	Description string
}

// NewInstance validates the full invariant set: unique variable and
// constraint IDs, every referenced variable declared, and no dependent
// variable on the objective/constraint/hint surfaces.
func NewInstance(sense Sense, objective polynomial.Function, variables []*DecisionVariable, constraints []*Constraint) (*Instance, error) {
	inst := &Instance{
		sense:              sense,
		objective:          objective,
		decisionVariables:  make(map[ommx.VariableID]*DecisionVariable, len(variables)),
		constraints:        make(map[ommx.ConstraintID]*Constraint, len(constraints)),
		removedConstraints: make(map[ommx.ConstraintID]*RemovedConstraint),
	}
	for _, v := range variables {
		if _, dup := inst.decisionVariables[v.ID()]; dup {
			return nil, ErrDuplicatedVariableID{ID: v.ID()}
		}
		inst.decisionVariables[v.ID()] = v
	}
	for _, c := range constraints {
		if _, dup := inst.constraints[c.ID()]; dup {
			return nil, ErrDuplicatedConstraintID{ID: c.ID()}
		}
		inst.constraints[c.ID()] = c
	}
	if err := inst.checkFunction(objective, true); err != nil {
		return nil, err
	}
	for _, c := range inst.constraints {
		if err := inst.checkFunction(c.Function(), true); err != nil {
			return nil, err
		}
	}
	return inst, nil
}

// checkFunction verifies that every variable of f is declared, and, when
// surface is set, that none of them is a dependent variable.
func (i *Instance) checkFunction(f polynomial.Function, surface bool) error {
	for _, id := range f.RequiredIDs().Sorted() {
		if _, ok := i.decisionVariables[id]; !ok {
			return ErrUndefinedVariableID{ID: id}
		}
		if surface && i.dependency.HasKey(id) {
			return ErrDependentVariableUsed{ID: id}
		}
	}
	return nil
}

// Sense returns the optimization direction.
func (i *Instance) Sense() Sense { return i.sense }

// Objective returns the objective function.
func (i *Instance) Objective() polynomial.Function { return i.objective }

// DecisionVariables returns the variable map. Callers must not mutate it.
func (i *Instance) DecisionVariables() map[ommx.VariableID]*DecisionVariable {
	return i.decisionVariables
}

// GetDecisionVariable looks up one variable.
func (i *Instance) GetDecisionVariable(id ommx.VariableID) (*DecisionVariable, bool) {
	v, ok := i.decisionVariables[id]
	return v, ok
}

// Constraints returns the active constraints. Callers must not mutate it.
func (i *Instance) Constraints() map[ommx.ConstraintID]*Constraint {
	return i.constraints
}

// RemovedConstraints returns the removed constraints. Callers must not
// mutate it.
func (i *Instance) RemovedConstraints() map[ommx.ConstraintID]*RemovedConstraint {
	return i.removedConstraints
}

// Dependency returns the dependent-variable assignments.
func (i *Instance) Dependency() *AcyclicAssignments { return i.dependency }

// Hints returns the constraint hints.
func (i *Instance) Hints() ConstraintHints { return i.hints }

// SetObjective replaces the objective after validating its variables.
func (i *Instance) SetObjective(f polynomial.Function) error {
	if err := i.checkFunction(f, true); err != nil {
		return err
	}
	i.objective = f
	return nil
}

// AddDecisionVariable declares a new variable.
func (i *Instance) AddDecisionVariable(v *DecisionVariable) error {
	if _, dup := i.decisionVariables[v.ID()]; dup {
		return ErrDuplicatedVariableID{ID: v.ID()}
	}
	i.decisionVariables[v.ID()] = v
	return nil
}

// InsertConstraint adds an active constraint. The ID must collide with
// neither the active nor the removed set.
func (i *Instance) InsertConstraint(c *Constraint) error {
	if _, dup := i.constraints[c.ID()]; dup {
		return ErrDuplicatedConstraintID{ID: c.ID()}
	}
	if _, dup := i.removedConstraints[c.ID()]; dup {
		return ErrDuplicatedConstraintID{ID: c.ID()}
	}
	if err := i.checkFunction(c.Function(), true); err != nil {
		return err
	}
	i.constraints[c.ID()] = c
	return nil
}

// RelaxConstraint moves an active constraint into the removed set, tagged
// with a free-form reason.
func (i *Instance) RelaxConstraint(id ommx.ConstraintID, reason string, parameters map[string]string) error {
	c, ok := i.constraints[id]
	if !ok {
		return ErrUnknownConstraintID{ID: id}
	}
	for _, oh := range i.hints.OneHot {
		if oh.ConstraintID == id {
			return ErrInvalidHint{Reason: "cannot relax a hinted constraint"}
		}
	}
	delete(i.constraints, id)
	i.removedConstraints[id] = &RemovedConstraint{
		Constraint:              c,
		RemovedReason:           reason,
		RemovedReasonParameters: parameters,
	}
	return nil
}

// RestoreConstraint moves a removed constraint back into the active set,
// discarding the removal reason.
func (i *Instance) RestoreConstraint(id ommx.ConstraintID) error {
	r, ok := i.removedConstraints[id]
	if !ok {
		return ErrUnknownConstraintID{ID: id}
	}
	if err := i.checkFunction(r.Constraint.Function(), true); err != nil {
		return err
	}
	delete(i.removedConstraints, id)
	i.constraints[id] = r.Constraint
	return nil
}

// AddConstraintHints appends hints after validating them against the
// current variables and active constraints.
func (i *Instance) AddConstraintHints(h ConstraintHints) error {
	if err := h.validate(i.decisionVariables, i.constraints); err != nil {
		return err
	}
	for _, id := range h.UsedVariableIDs().Sorted() {
		if i.dependency.HasKey(id) {
			return ErrDependentVariableUsed{ID: id}
		}
	}
	i.hints.OneHot = append(i.hints.OneHot, h.Clone().OneHot...)
	i.hints.SOS1 = append(i.hints.SOS1, h.Clone().SOS1...)
	return nil
}

// NextConstraintID returns max over active and removed constraint IDs plus
// one, or 1 when both sets are empty.
func (i *Instance) NextConstraintID() ommx.ConstraintID {
	if len(i.constraints) == 0 && len(i.removedConstraints) == 0 {
		return 1
	}
	max := utils.MaxKey(i.constraints)
	if r := utils.MaxKey(i.removedConstraints); r > max {
		max = r
	}
	return max + 1
}

// nextVariableID returns the smallest variable ID above every declared
// variable.
func (i *Instance) nextVariableID() ommx.VariableID {
	if len(i.decisionVariables) == 0 {
		return 0
	}
	return utils.MaxKey(i.decisionVariables) + 1
}

// Bounds collects every variable's bound, for interval propagation.
func (i *Instance) Bounds() map[ommx.VariableID]polynomial.Bound {
	out := make(map[ommx.VariableID]polynomial.Bound, len(i.decisionVariables))
	for id, v := range i.decisionVariables {
		out[id] = v.Bound()
	}
	return out
}

// Substitute installs the assignment id -> f: the variable becomes a
// dependent variable, f is substituted into the objective and every
// constraint, and the extended dependency graph is re-checked for cycles.
// The instance is unchanged on failure.
func (i *Instance) Substitute(id ommx.VariableID, f polynomial.Function) error {
	if _, ok := i.decisionVariables[id]; !ok {
		return ErrUndefinedVariableID{ID: id}
	}
	if err := i.checkFunction(f, false); err != nil {
		return err
	}
	assignments := make([]Assignment, 0, i.dependency.Len()+1)
	if i.dependency != nil {
		replacement := map[ommx.VariableID]polynomial.Function{id: f}
		for _, key := range i.dependency.Keys() {
			g, _ := i.dependency.Get(key)
			assignments = append(assignments, Assignment{ID: key, Function: g.Substitute(replacement)})
		}
	}
	assignments = append(assignments, Assignment{ID: id, Function: f})
	dep, err := NewAcyclicAssignments(assignments)
	if err != nil {
		return err
	}

	replacement := map[ommx.VariableID]polynomial.Function{id: f}
	i.objective = i.objective.Substitute(replacement)
	for cid, c := range i.constraints {
		i.constraints[cid] = &Constraint{
			id:       c.id,
			equality: c.equality,
			function: c.function.Substitute(replacement),
			Metadata: c.Metadata,
		}
	}
	for cid, r := range i.removedConstraints {
		i.removedConstraints[cid] = &RemovedConstraint{
			Constraint: &Constraint{
				id:       r.Constraint.id,
				equality: r.Constraint.equality,
				function: r.Constraint.function.Substitute(replacement),
				Metadata: r.Constraint.Metadata,
			},
			RemovedReason:           r.RemovedReason,
			RemovedReasonParameters: r.RemovedReasonParameters,
		}
	}
	i.dependency = dep
	return nil
}

// Clone returns a deep copy.
func (i *Instance) Clone() *Instance {
	out := &Instance{
		sense:              i.sense,
		objective:          i.objective.Clone(),
		decisionVariables:  make(map[ommx.VariableID]*DecisionVariable, len(i.decisionVariables)),
		constraints:        make(map[ommx.ConstraintID]*Constraint, len(i.constraints)),
		removedConstraints: make(map[ommx.ConstraintID]*RemovedConstraint, len(i.removedConstraints)),
		dependency:         i.dependency.Clone(),
		hints:              i.hints.Clone(),
		Description:        i.Description,
	}
	for id, v := range i.decisionVariables {
		out.decisionVariables[id] = v.Clone()
	}
	for id, c := range i.constraints {
		out.constraints[id] = c.Clone()
	}
	for id, r := range i.removedConstraints {
		out.removedConstraints[id] = r.Clone()
	}
	if i.Parameters != nil {
		out.Parameters = make(map[string]string, len(i.Parameters))
		for k, v := range i.Parameters {
			out.Parameters[k] = v
		}
	}
	return out
}
