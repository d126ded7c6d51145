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

	"golang.org/x/exp/slices"

	ommx "github.com/Jij-Inc/ommx-sub000"
	"github.com/Jij-Inc/ommx-sub000/state"
)

// SampledConstraint is one constraint's values across all samples.
type SampledConstraint struct {
	ID            ommx.ConstraintID
	Equality      Equality
	Values        *state.SampledValues
	Feasible      map[ommx.SampleID]bool
	Removed       bool
	RemovedReason string
}

// SampleSet aggregates the evaluation of many samples: objectives and
// constraint values keyed by sample ID, with per-sample feasibility flags.
type SampleSet struct {
	sense             Sense
	objectives        *state.SampledValues
	decisionVariables map[ommx.VariableID]*state.SampledValues
	variables         map[ommx.VariableID]*DecisionVariable
	constraints       map[ommx.ConstraintID]*SampledConstraint
	feasible          map[ommx.SampleID]bool
	feasibleRelaxed   map[ommx.SampleID]bool
}

// NewSampleSet cross-checks consistency: every container covers the same
// sample IDs, and the stored feasibility flags match the predicates
// recomputed from the constraint values within atol.
func NewSampleSet(
	sense Sense,
	objectives *state.SampledValues,
	decisionVariables map[ommx.VariableID]*state.SampledValues,
	variables map[ommx.VariableID]*DecisionVariable,
	constraints map[ommx.ConstraintID]*SampledConstraint,
	feasible map[ommx.SampleID]bool,
	feasibleRelaxed map[ommx.SampleID]bool,
	atol ommx.ATol,
) (*SampleSet, error) {
	ids := objectives.IDs()
	sameIDs := func(other []ommx.SampleID) bool {
		return slices.Equal(ids, other)
	}
	for vid, sv := range decisionVariables {
		if !sameIDs(sv.IDs()) {
			return nil, fmt.Errorf("sampled values of variable %d do not cover the objective samples", vid)
		}
	}
	for cid, sc := range constraints {
		if !sameIDs(sc.Values.IDs()) {
			return nil, fmt.Errorf("sampled values of constraint %d do not cover the objective samples", cid)
		}
	}

	for _, sid := range ids {
		computedRelaxed := true
		computedStrict := true
		for cid, sc := range constraints {
			value, err := sc.Values.Get(sid)
			if err != nil {
				return nil, err
			}
			probe := Constraint{id: cid, equality: sc.Equality}
			ok := probe.IsFeasible(value, atol)
			if stored, has := sc.Feasible[sid]; has && stored != ok {
				return nil, ErrInconsistentFeasibility{SampleID: sid, Provided: stored, Computed: ok}
			}
			if sc.Removed {
				computedStrict = computedStrict && ok
			} else {
				computedRelaxed = computedRelaxed && ok
				computedStrict = computedStrict && ok
			}
		}
		if stored, has := feasibleRelaxed[sid]; has && stored != computedRelaxed {
			return nil, ErrInconsistentFeasibility{SampleID: sid, Provided: stored, Computed: computedRelaxed}
		}
		if stored, has := feasible[sid]; has && stored != computedStrict {
			return nil, ErrInconsistentFeasibility{SampleID: sid, Provided: stored, Computed: computedStrict}
		}
	}

	return &SampleSet{
		sense:             sense,
		objectives:        objectives,
		decisionVariables: decisionVariables,
		variables:         variables,
		constraints:       constraints,
		feasible:          feasible,
		feasibleRelaxed:   feasibleRelaxed,
	}, nil
}

// Sense returns the optimization direction the samples were evaluated
// under.
func (s *SampleSet) Sense() Sense { return s.sense }

// Objectives returns the objective values keyed by sample.
func (s *SampleSet) Objectives() *state.SampledValues { return s.objectives }

// Constraints returns the sampled constraints. Callers must not mutate it.
func (s *SampleSet) Constraints() map[ommx.ConstraintID]*SampledConstraint {
	return s.constraints
}

// SampleIDs returns every sample ID in ascending order.
func (s *SampleSet) SampleIDs() []ommx.SampleID { return s.objectives.IDs() }

// NumSamples returns the number of samples.
func (s *SampleSet) NumSamples() int { return s.objectives.Len() }

// FeasibleIDs returns the samples feasible against all constraints,
// including removed ones, in ascending order.
func (s *SampleSet) FeasibleIDs() []ommx.SampleID {
	return filterIDs(s.feasible)
}

// FeasibleRelaxedIDs returns the samples feasible against the active
// constraints only, in ascending order.
func (s *SampleSet) FeasibleRelaxedIDs() []ommx.SampleID {
	return filterIDs(s.feasibleRelaxed)
}

func filterIDs(flags map[ommx.SampleID]bool) []ommx.SampleID {
	out := make([]ommx.SampleID, 0, len(flags))
	for sid, ok := range flags {
		if ok {
			out = append(out, sid)
		}
	}
	slices.Sort(out)
	return out
}

// BestFeasibleID returns the feasible sample with the best objective:
// the minimum under Minimize, the maximum under Maximize. Ties break
// toward the smallest sample ID.
func (s *SampleSet) BestFeasibleID() (ommx.SampleID, error) {
	feasible := s.FeasibleIDs()
	if len(feasible) == 0 {
		return 0, ErrNoFeasibleSample{}
	}
	best := feasible[0]
	bestValue, err := s.objectives.Get(best)
	if err != nil {
		return 0, err
	}
	for _, sid := range feasible[1:] {
		v, err := s.objectives.Get(sid)
		if err != nil {
			return 0, err
		}
		better := v < bestValue
		if s.sense == Maximize {
			better = v > bestValue
		}
		if better {
			best, bestValue = sid, v
		}
	}
	return best, nil
}

// BestFeasible extracts the solution of the best feasible sample.
func (s *SampleSet) BestFeasible() (*Solution, error) {
	sid, err := s.BestFeasibleID()
	if err != nil {
		return nil, err
	}
	return s.Get(sid)
}

// Get extracts one sample as a Solution.
func (s *SampleSet) Get(sid ommx.SampleID) (*Solution, error) {
	objective, err := s.objectives.Get(sid)
	if err != nil {
		return nil, err
	}
	st := make(state.State, len(s.decisionVariables))
	for vid, sv := range s.decisionVariables {
		v, err := sv.Get(sid)
		if err != nil {
			return nil, err
		}
		st[vid] = v
	}
	evaluated := make(map[ommx.ConstraintID]*EvaluatedConstraint, len(s.constraints))
	for cid, sc := range s.constraints {
		value, err := sc.Values.Get(sid)
		if err != nil {
			return nil, err
		}
		evaluated[cid] = &EvaluatedConstraint{
			ID:            cid,
			Equality:      sc.Equality,
			Value:         value,
			Feasible:      sc.Feasible[sid],
			Removed:       sc.Removed,
			RemovedReason: sc.RemovedReason,
		}
	}
	return &Solution{
		Sense:                s.sense,
		State:                st,
		Objective:            objective,
		EvaluatedConstraints: evaluated,
		Feasible:             s.feasible[sid],
		FeasibleRelaxed:      s.feasibleRelaxed[sid],
	}, nil
}

// SubscriptedValue is one variable occurrence selected by name.
type SubscriptedValue struct {
	Subscripts []int64
	Value      float64
}

// ExtractDecisionVariables returns the values of every variable named name
// in the given sample, keyed by subscripts. Variables still carrying free
// metadata parameters cannot be extracted, and two variables sharing a name
// must differ in subscripts.
func (s *SampleSet) ExtractDecisionVariables(name string, sid ommx.SampleID) ([]SubscriptedValue, error) {
	var out []SubscriptedValue
	seen := make(map[string]struct{})
	for vid, v := range s.variables {
		if v.Metadata.Name != name {
			continue
		}
		if len(v.Metadata.Parameters) > 0 {
			return nil, ErrParameterizedVariable{ID: vid}
		}
		key := fmt.Sprint(v.Metadata.Subscripts)
		if _, dup := seen[key]; dup {
			return nil, ErrDuplicateSubscripts{Name: name, Subscripts: v.Metadata.Subscripts}
		}
		seen[key] = struct{}{}
		sv, ok := s.decisionVariables[vid]
		if !ok {
			continue
		}
		value, err := sv.Get(sid)
		if err != nil {
			return nil, err
		}
		out = append(out, SubscriptedValue{Subscripts: v.Metadata.Subscripts, Value: value})
	}
	if len(out) == 0 {
		return nil, ErrUnknownVariableName{Name: name}
	}
	slices.SortFunc(out, func(a, b SubscriptedValue) int {
		return slices.Compare(a.Subscripts, b.Subscripts)
	})
	return out, nil
}
