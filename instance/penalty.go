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

	ommx "github.com/Jij-Inc/ommx-sub000"
	"github.com/Jij-Inc/ommx-sub000/internal/utils"
	"github.com/Jij-Inc/ommx-sub000/logger"
	"github.com/Jij-Inc/ommx-sub000/polynomial"
)

// PenaltyMethod converts every active constraint into a quadratic penalty
// term: the objective becomes objective + Σ λ_i f_i(x)^2 with one fresh
// parameter λ_i per constraint, and each constraint moves to the removed
// set. Substituting every λ_i with 0 recovers the original objective.
func (i *Instance) PenaltyMethod() *ParametricInstance {
	log := logger.Logger()
	p := i.emptyParametric()

	next := i.nextVariableID()
	for _, cid := range utils.SortedKeys(i.constraints) {
		c := i.constraints[cid]
		paramID := next
		next++

		lambda := polynomial.Variable(paramID)
		f := c.Function()
		p.objective = p.objective.Add(lambda.Mul(f).Mul(f))
		p.parameters[paramID] = &Parameter{
			ID:         paramID,
			Name:       "penalty_weight",
			Subscripts: []int64{int64(cid)},
		}
		p.removedConstraints[cid] = &RemovedConstraint{
			Constraint:    c.Clone(),
			RemovedReason: "penalty_method",
			RemovedReasonParameters: map[string]string{
				"parameter_id": fmt.Sprintf("%d", paramID),
			},
		}
	}
	log.Debug().
		Int("constraints", len(i.constraints)).
		Int("parameters", len(p.parameters)).
		Msg("penalty method applied")
	return p
}

// UniformPenaltyMethod is PenaltyMethod with a single shared parameter:
// the objective becomes objective + λ Σ f_i(x)^2. Without constraints no
// parameter is allocated.
func (i *Instance) UniformPenaltyMethod() *ParametricInstance {
	p := i.emptyParametric()
	if len(i.constraints) == 0 {
		return p
	}

	paramID := i.nextVariableID()
	quadSum := polynomial.Zero()
	for _, cid := range utils.SortedKeys(i.constraints) {
		c := i.constraints[cid]
		f := c.Function()
		quadSum = quadSum.Add(f.Mul(f))
		p.removedConstraints[cid] = &RemovedConstraint{
			Constraint:    c.Clone(),
			RemovedReason: "uniform_penalty_method",
		}
	}
	p.objective = p.objective.Add(polynomial.Variable(paramID).Mul(quadSum))
	p.parameters[paramID] = &Parameter{
		ID:   paramID,
		Name: "uniform_penalty_weight",
	}
	logger.Logger().Debug().
		Int("constraints", len(i.constraints)).
		Uint64("parameter", uint64(paramID)).
		Msg("uniform penalty method applied")
	return p
}

// emptyParametric copies everything but the active constraints into a
// fresh parametric instance.
func (i *Instance) emptyParametric() *ParametricInstance {
	p := &ParametricInstance{
		sense:              i.sense,
		objective:          i.objective.Clone(),
		decisionVariables:  make(map[ommx.VariableID]*DecisionVariable, len(i.decisionVariables)),
		parameters:         make(map[ommx.VariableID]*Parameter),
		constraints:        make(map[ommx.ConstraintID]*Constraint),
		removedConstraints: make(map[ommx.ConstraintID]*RemovedConstraint, len(i.removedConstraints)),
		dependency:         i.dependency.Clone(),
		hints:              i.hints.Clone(),
		Description:        i.Description,
	}
	for id, v := range i.decisionVariables {
		p.decisionVariables[id] = v.Clone()
	}
	for cid, r := range i.removedConstraints {
		p.removedConstraints[cid] = r.Clone()
	}
	return p
}
