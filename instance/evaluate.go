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

// completeState extends s to cover every decision variable: substituted
// values override the input, dependent variables are computed in
// topological order, and the remainder falls back to the bound's point
// nearest to zero.
func (i *Instance) completeState(s state.State, atol ommx.ATol) (state.State, error) {
	full := s.Clone()
	for id, v := range i.decisionVariables {
		if sv, ok := v.SubstitutedValue(); ok {
			full[id] = sv
		}
	}
	for id, v := range i.decisionVariables {
		if _, ok := full[id]; ok {
			continue
		}
		if i.dependency.HasKey(id) {
			continue
		}
		full[id] = v.Bound().NearestToZero()
	}
	if err := i.dependency.Evaluate(full, atol); err != nil {
		return nil, err
	}
	return full, nil
}

// Evaluate computes the objective and every constraint of the instance at
// s, producing a Solution with a complete output state. Values assigned in
// s must respect the variable bounds within atol.
func (i *Instance) Evaluate(s state.State, atol ommx.ATol) (*Solution, error) {
	analysis := i.AnalyzeDecisionVariables()
	if err := analysis.ValidateState(s, atol); err != nil {
		return nil, err
	}
	full, err := i.completeState(s, atol)
	if err != nil {
		return nil, err
	}

	evaluated := make(map[ommx.ConstraintID]*EvaluatedConstraint, len(i.constraints)+len(i.removedConstraints))
	feasibleRelaxed := true
	for cid, c := range i.constraints {
		value, err := c.Function().Evaluate(full, atol)
		if err != nil {
			return nil, err
		}
		feasible := c.IsFeasible(value, atol)
		feasibleRelaxed = feasibleRelaxed && feasible
		evaluated[cid] = &EvaluatedConstraint{
			ID:       cid,
			Equality: c.Equality(),
			Value:    value,
			Feasible: feasible,
		}
	}
	feasible := feasibleRelaxed
	for cid, r := range i.removedConstraints {
		value, err := r.Constraint.Function().Evaluate(full, atol)
		if err != nil {
			return nil, err
		}
		ok := r.Constraint.IsFeasible(value, atol)
		feasible = feasible && ok
		evaluated[cid] = &EvaluatedConstraint{
			ID:                      cid,
			Equality:                r.Constraint.Equality(),
			Value:                   value,
			Feasible:                ok,
			Removed:                 true,
			RemovedReason:           r.RemovedReason,
			RemovedReasonParameters: r.RemovedReasonParameters,
		}
	}

	objective, err := i.objective.Evaluate(full, atol)
	if err != nil {
		return nil, err
	}
	return &Solution{
		Sense:                i.sense,
		State:                full,
		Objective:            objective,
		EvaluatedConstraints: evaluated,
		Feasible:             feasible,
		FeasibleRelaxed:      feasibleRelaxed,
	}, nil
}

// EvaluateSamples evaluates the instance once per distinct sampled state
// and aggregates the results by sample ID.
func (i *Instance) EvaluateSamples(samples *state.Samples, atol ommx.ATol) (*SampleSet, error) {
	objectives := &state.SampledValues{}
	constraints := make(map[ommx.ConstraintID]*SampledConstraint)
	variables := make(map[ommx.VariableID]*state.SampledValues)
	feasible := make(map[ommx.SampleID]bool)
	feasibleRelaxed := make(map[ommx.SampleID]bool)

	for _, bucket := range samples.Buckets() {
		sol, err := i.Evaluate(bucket.State, atol)
		if err != nil {
			return nil, err
		}
		for _, sid := range bucket.IDs {
			if err := objectives.Add(sid, sol.Objective); err != nil {
				return nil, err
			}
			feasible[sid] = sol.Feasible
			feasibleRelaxed[sid] = sol.FeasibleRelaxed
			for vid, value := range sol.State {
				sv, ok := variables[vid]
				if !ok {
					sv = &state.SampledValues{}
					variables[vid] = sv
				}
				if err := sv.Add(sid, value); err != nil {
					return nil, err
				}
			}
			for cid, ec := range sol.EvaluatedConstraints {
				sc, ok := constraints[cid]
				if !ok {
					sc = &SampledConstraint{
						ID:            cid,
						Equality:      ec.Equality,
						Values:        &state.SampledValues{},
						Feasible:      make(map[ommx.SampleID]bool),
						Removed:       ec.Removed,
						RemovedReason: ec.RemovedReason,
					}
					constraints[cid] = sc
				}
				if err := sc.Values.Add(sid, ec.Value); err != nil {
					return nil, err
				}
				sc.Feasible[sid] = ec.Feasible
			}
		}
	}

	return &SampleSet{
		sense:             i.sense,
		objectives:        objectives,
		decisionVariables: variables,
		variables:         i.decisionVariables,
		constraints:       constraints,
		feasible:          feasible,
		feasibleRelaxed:   feasibleRelaxed,
	}, nil
}
