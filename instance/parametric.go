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
	"github.com/Jij-Inc/ommx-sub000/internal/utils"
	"github.com/Jij-Inc/ommx-sub000/polynomial"
	"github.com/Jij-Inc/ommx-sub000/state"
)

// Parameter declares one free parameter of a parametric instance.
type Parameter struct {
	ID          ommx.VariableID
	Name        string
	Subscripts  []int64
	Parameters  map[string]string
	Description string
}

// Parameters assigns a value to every parameter of a parametric instance.
type Parameters map[ommx.VariableID]float64

// ParametricInstance is an instance whose objective and constraints may
// reference parameters next to decision variables. Fixing all parameters
// with WithParameters yields a plain Instance.
type ParametricInstance struct {
	sense              Sense
	objective          polynomial.Function
	decisionVariables  map[ommx.VariableID]*DecisionVariable
	parameters         map[ommx.VariableID]*Parameter
	constraints        map[ommx.ConstraintID]*Constraint
	removedConstraints map[ommx.ConstraintID]*RemovedConstraint
	dependency         *AcyclicAssignments
	hints              ConstraintHints

	Description string
}

// Sense returns the optimization direction.
func (p *ParametricInstance) Sense() Sense { return p.sense }

// Objective returns the parametric objective.
func (p *ParametricInstance) Objective() polynomial.Function { return p.objective }

// DecisionVariables returns the variable map. Callers must not mutate it.
func (p *ParametricInstance) DecisionVariables() map[ommx.VariableID]*DecisionVariable {
	return p.decisionVariables
}

// Parameters returns the declared parameters. Callers must not mutate it.
func (p *ParametricInstance) Parameters() map[ommx.VariableID]*Parameter {
	return p.parameters
}

// DefinedParameterIDs returns the parameter IDs in ascending order.
func (p *ParametricInstance) DefinedParameterIDs() []ommx.VariableID {
	return utils.SortedKeys(p.parameters)
}

// RemovedConstraints returns the removed constraints. Callers must not
// mutate it.
func (p *ParametricInstance) RemovedConstraints() map[ommx.ConstraintID]*RemovedConstraint {
	return p.removedConstraints
}

// WithParameters substitutes a value for every declared parameter and
// returns the resulting plain instance. Every parameter must be assigned,
// and no assignment may target anything but a declared parameter.
func (p *ParametricInstance) WithParameters(values Parameters) (*Instance, error) {
	for _, id := range p.DefinedParameterIDs() {
		if _, ok := values[id]; !ok {
			return nil, ErrMissingParameterValue{ID: id}
		}
	}
	substitution := make(state.State, len(values))
	for id, v := range values {
		if _, ok := p.parameters[id]; !ok {
			return nil, ErrUndefinedVariableID{ID: id}
		}
		substitution[id] = v
	}

	objective := p.objective.Clone()
	objective.PartialEvaluate(substitution)

	inst := &Instance{
		sense:              p.sense,
		objective:          objective,
		decisionVariables:  make(map[ommx.VariableID]*DecisionVariable, len(p.decisionVariables)),
		constraints:        make(map[ommx.ConstraintID]*Constraint, len(p.constraints)),
		removedConstraints: make(map[ommx.ConstraintID]*RemovedConstraint, len(p.removedConstraints)),
		dependency:         p.dependency.Clone(),
		hints:              p.hints.Clone(),
		Description:        p.Description,
	}
	for id, v := range p.decisionVariables {
		inst.decisionVariables[id] = v.Clone()
	}
	for cid, c := range p.constraints {
		f := c.function.Clone()
		f.PartialEvaluate(substitution)
		inst.constraints[cid] = &Constraint{id: c.id, equality: c.equality, function: f, Metadata: cloneMetadata(c.Metadata)}
	}
	for cid, r := range p.removedConstraints {
		f := r.Constraint.function.Clone()
		f.PartialEvaluate(substitution)
		inst.removedConstraints[cid] = &RemovedConstraint{
			Constraint:              &Constraint{id: r.Constraint.id, equality: r.Constraint.equality, function: f, Metadata: cloneMetadata(r.Constraint.Metadata)},
			RemovedReason:           r.RemovedReason,
			RemovedReasonParameters: r.RemovedReasonParameters,
		}
	}
	return inst, nil
}
