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
	"math"

	"github.com/fxamacker/cbor/v2"

	ommx "github.com/Jij-Inc/ommx-sub000"
	"github.com/Jij-Inc/ommx-sub000/internal/utils"
	"github.com/Jij-Inc/ommx-sub000/polynomial"
	"github.com/Jij-Inc/ommx-sub000/state"
)

type metadataCBOR struct {
	Name        string            `cbor:"1,keyasint,omitempty"`
	Subscripts  []int64           `cbor:"2,keyasint,omitempty"`
	Parameters  map[string]string `cbor:"3,keyasint,omitempty"`
	Description string            `cbor:"4,keyasint,omitempty"`
}

type decisionVariableCBOR struct {
	ID               uint64       `cbor:"1,keyasint"`
	Kind             uint8        `cbor:"2,keyasint"`
	Lower            float64      `cbor:"3,keyasint"`
	Upper            float64      `cbor:"4,keyasint"`
	SubstitutedValue *float64     `cbor:"5,keyasint,omitempty"`
	Metadata         metadataCBOR `cbor:"6,keyasint,omitempty"`
}

type constraintCBOR struct {
	ID       uint64              `cbor:"1,keyasint"`
	Equality uint8               `cbor:"2,keyasint"`
	Function polynomial.Function `cbor:"3,keyasint"`
	Metadata metadataCBOR        `cbor:"4,keyasint,omitempty"`
}

type removedConstraintCBOR struct {
	Constraint       constraintCBOR    `cbor:"1,keyasint"`
	Reason           string            `cbor:"2,keyasint"`
	ReasonParameters map[string]string `cbor:"3,keyasint,omitempty"`
}

type assignmentCBOR struct {
	ID       uint64              `cbor:"1,keyasint"`
	Function polynomial.Function `cbor:"2,keyasint"`
}

type oneHotCBOR struct {
	ConstraintID uint64   `cbor:"1,keyasint"`
	Variables    []uint64 `cbor:"2,keyasint"`
}

type sos1CBOR struct {
	BinaryConstraintID uint64   `cbor:"1,keyasint"`
	BigMConstraintIDs  []uint64 `cbor:"2,keyasint,omitempty"`
	Variables          []uint64 `cbor:"3,keyasint"`
}

type hintsCBOR struct {
	OneHot []oneHotCBOR `cbor:"1,keyasint,omitempty"`
	SOS1   []sos1CBOR   `cbor:"2,keyasint,omitempty"`
}

type parameterCBOR struct {
	ID          uint64            `cbor:"1,keyasint"`
	Name        string            `cbor:"2,keyasint,omitempty"`
	Subscripts  []int64           `cbor:"3,keyasint,omitempty"`
	Parameters  map[string]string `cbor:"4,keyasint,omitempty"`
	Description string            `cbor:"5,keyasint,omitempty"`
}

type instanceCBOR struct {
	Sense       uint8                   `cbor:"1,keyasint"`
	Objective   polynomial.Function     `cbor:"2,keyasint"`
	Variables   []decisionVariableCBOR  `cbor:"3,keyasint,omitempty"`
	Constraints []constraintCBOR        `cbor:"4,keyasint,omitempty"`
	Removed     []removedConstraintCBOR `cbor:"5,keyasint,omitempty"`
	Dependency  []assignmentCBOR        `cbor:"6,keyasint,omitempty"`
	Hints       hintsCBOR               `cbor:"7,keyasint,omitempty"`
	Parameters  map[string]string       `cbor:"8,keyasint,omitempty"`
	Description string                  `cbor:"9,keyasint,omitempty"`
	// declared parameters; only present for parametric instances
	DeclaredParameters []parameterCBOR `cbor:"10,keyasint,omitempty"`
}

func metadataToCBOR(m Metadata) metadataCBOR {
	return metadataCBOR{Name: m.Name, Subscripts: m.Subscripts, Parameters: m.Parameters, Description: m.Description}
}

func metadataFromCBOR(m metadataCBOR) Metadata {
	return Metadata{Name: m.Name, Subscripts: m.Subscripts, Parameters: m.Parameters, Description: m.Description}
}

func variableToCBOR(v *DecisionVariable) decisionVariableCBOR {
	enc := decisionVariableCBOR{
		ID:       uint64(v.ID()),
		Kind:     uint8(v.Kind()),
		Lower:    v.Bound().Lower(),
		Upper:    v.Bound().Upper(),
		Metadata: metadataToCBOR(v.Metadata),
	}
	if sv, ok := v.SubstitutedValue(); ok {
		enc.SubstitutedValue = &sv
	}
	return enc
}

func variableFromCBOR(enc decisionVariableCBOR, atol ommx.ATol) (*DecisionVariable, error) {
	if enc.Kind > uint8(SemiContinuous) {
		return nil, fmt.Errorf("unknown variable kind %d", enc.Kind)
	}
	bound, err := polynomial.NewBound(enc.Lower, enc.Upper)
	if err != nil {
		return nil, err
	}
	v, err := NewDecisionVariable(ommx.VariableID(enc.ID), Kind(enc.Kind), bound, atol)
	if err != nil {
		return nil, err
	}
	if enc.SubstitutedValue != nil {
		if err := v.SetSubstitutedValue(*enc.SubstitutedValue, atol); err != nil {
			return nil, err
		}
	}
	v.Metadata = metadataFromCBOR(enc.Metadata)
	return v, nil
}

func constraintToCBOR(c *Constraint) constraintCBOR {
	return constraintCBOR{
		ID:       uint64(c.ID()),
		Equality: uint8(c.Equality()),
		Function: c.Function(),
		Metadata: metadataToCBOR(c.Metadata),
	}
}

func constraintFromCBOR(enc constraintCBOR) (*Constraint, error) {
	if enc.Equality > uint8(LessThanOrEqualToZero) {
		return nil, fmt.Errorf("unknown equality %d", enc.Equality)
	}
	c := &Constraint{
		id:       ommx.ConstraintID(enc.ID),
		equality: Equality(enc.Equality),
		function: enc.Function,
		Metadata: metadataFromCBOR(enc.Metadata),
	}
	return c, nil
}

func variableIDsToCBOR(ids []ommx.VariableID) []uint64 {
	out := make([]uint64, len(ids))
	for i, id := range ids {
		out[i] = uint64(id)
	}
	return out
}

func variableIDsFromCBOR(ids []uint64) []ommx.VariableID {
	out := make([]ommx.VariableID, len(ids))
	for i, id := range ids {
		out[i] = ommx.VariableID(id)
	}
	return out
}

func (i *Instance) toCBOR() instanceCBOR {
	enc := instanceCBOR{
		Sense:       uint8(i.sense),
		Objective:   i.objective,
		Parameters:  i.Parameters,
		Description: i.Description,
	}
	for _, id := range utils.SortedKeys(i.decisionVariables) {
		enc.Variables = append(enc.Variables, variableToCBOR(i.decisionVariables[id]))
	}
	for _, cid := range utils.SortedKeys(i.constraints) {
		enc.Constraints = append(enc.Constraints, constraintToCBOR(i.constraints[cid]))
	}
	for _, cid := range utils.SortedKeys(i.removedConstraints) {
		r := i.removedConstraints[cid]
		enc.Removed = append(enc.Removed, removedConstraintCBOR{
			Constraint:       constraintToCBOR(r.Constraint),
			Reason:           r.RemovedReason,
			ReasonParameters: r.RemovedReasonParameters,
		})
	}
	if i.dependency != nil {
		for _, id := range i.dependency.Keys() {
			f, _ := i.dependency.Get(id)
			enc.Dependency = append(enc.Dependency, assignmentCBOR{ID: uint64(id), Function: f})
		}
	}
	for _, oh := range i.hints.OneHot {
		enc.Hints.OneHot = append(enc.Hints.OneHot, oneHotCBOR{
			ConstraintID: uint64(oh.ConstraintID),
			Variables:    variableIDsToCBOR(oh.Variables),
		})
	}
	for _, s := range i.hints.SOS1 {
		cids := make([]uint64, len(s.BigMConstraintIDs))
		for k, cid := range s.BigMConstraintIDs {
			cids[k] = uint64(cid)
		}
		enc.Hints.SOS1 = append(enc.Hints.SOS1, sos1CBOR{
			BinaryConstraintID: uint64(s.BinaryConstraintID),
			BigMConstraintIDs:  cids,
			Variables:          variableIDsToCBOR(s.Variables),
		})
	}
	return enc
}

// ToBytes encodes the instance with the module's tagged-field codec.
func (i *Instance) ToBytes() ([]byte, error) {
	return cbor.Marshal(i.toCBOR())
}

func instanceFromCBOR(dec instanceCBOR, atol ommx.ATol) (*Instance, error) {
	if dec.Sense > uint8(Maximize) {
		return nil, fmt.Errorf("ommx.Instance[sense]: unknown sense %d", dec.Sense)
	}
	variables := make([]*DecisionVariable, 0, len(dec.Variables))
	for _, enc := range dec.Variables {
		v, err := variableFromCBOR(enc, atol)
		if err != nil {
			return nil, fmt.Errorf("ommx.Instance[decision_variables]: ommx.DecisionVariable[%d]: %w", enc.ID, err)
		}
		variables = append(variables, v)
	}
	constraints := make([]*Constraint, 0, len(dec.Constraints))
	for _, enc := range dec.Constraints {
		c, err := constraintFromCBOR(enc)
		if err != nil {
			return nil, fmt.Errorf("ommx.Instance[constraints]: ommx.Constraint[%d]: %w", enc.ID, err)
		}
		constraints = append(constraints, c)
	}
	inst, err := NewInstance(Sense(dec.Sense), dec.Objective, variables, constraints)
	if err != nil {
		return nil, fmt.Errorf("ommx.Instance: %w", err)
	}
	for _, enc := range dec.Removed {
		c, err := constraintFromCBOR(enc.Constraint)
		if err != nil {
			return nil, fmt.Errorf("ommx.Instance[removed_constraints]: ommx.Constraint[%d]: %w", enc.Constraint.ID, err)
		}
		if _, dup := inst.constraints[c.ID()]; dup {
			return nil, fmt.Errorf("ommx.Instance[removed_constraints]: %w", ErrDuplicatedConstraintID{ID: c.ID()})
		}
		if _, dup := inst.removedConstraints[c.ID()]; dup {
			return nil, fmt.Errorf("ommx.Instance[removed_constraints]: %w", ErrDuplicatedConstraintID{ID: c.ID()})
		}
		if err := inst.checkFunction(c.Function(), false); err != nil {
			return nil, fmt.Errorf("ommx.Instance[removed_constraints]: ommx.Constraint[function]: %w", err)
		}
		inst.removedConstraints[c.ID()] = &RemovedConstraint{
			Constraint:              c,
			RemovedReason:           enc.Reason,
			RemovedReasonParameters: enc.ReasonParameters,
		}
	}
	if len(dec.Dependency) > 0 {
		assignments := make([]Assignment, 0, len(dec.Dependency))
		for _, enc := range dec.Dependency {
			assignments = append(assignments, Assignment{ID: ommx.VariableID(enc.ID), Function: enc.Function})
		}
		dep, err := NewAcyclicAssignments(assignments)
		if err != nil {
			return nil, fmt.Errorf("ommx.Instance[decision_variable_dependency]: %w", err)
		}
		for _, a := range assignments {
			if err := inst.checkFunction(a.Function, false); err != nil {
				return nil, fmt.Errorf("ommx.Instance[decision_variable_dependency]: %w", err)
			}
			if _, ok := inst.decisionVariables[a.ID]; !ok {
				return nil, fmt.Errorf("ommx.Instance[decision_variable_dependency]: %w", ErrUndefinedVariableID{ID: a.ID})
			}
		}
		inst.dependency = dep
		// the surfaces must not reference dependent variables
		if err := inst.checkFunction(inst.objective, true); err != nil {
			return nil, fmt.Errorf("ommx.Instance[objective]: %w", err)
		}
		for cid, c := range inst.constraints {
			if err := inst.checkFunction(c.Function(), true); err != nil {
				return nil, fmt.Errorf("ommx.Instance[constraints]: ommx.Constraint[%d]: %w", cid, err)
			}
		}
	}
	hints := ConstraintHints{}
	for _, oh := range dec.Hints.OneHot {
		hints.OneHot = append(hints.OneHot, OneHotHint{
			ConstraintID: ommx.ConstraintID(oh.ConstraintID),
			Variables:    variableIDsFromCBOR(oh.Variables),
		})
	}
	for _, s := range dec.Hints.SOS1 {
		cids := make([]ommx.ConstraintID, len(s.BigMConstraintIDs))
		for k, cid := range s.BigMConstraintIDs {
			cids[k] = ommx.ConstraintID(cid)
		}
		hints.SOS1 = append(hints.SOS1, SOS1Hint{
			BinaryConstraintID: ommx.ConstraintID(s.BinaryConstraintID),
			BigMConstraintIDs:  cids,
			Variables:          variableIDsFromCBOR(s.Variables),
		})
	}
	if !hints.IsEmpty() {
		if err := inst.AddConstraintHints(hints); err != nil {
			return nil, fmt.Errorf("ommx.Instance[constraint_hints]: %w", err)
		}
	}
	inst.Parameters = dec.Parameters
	inst.Description = dec.Description
	return inst, nil
}

// InstanceFromBytes decodes an instance and re-validates the full
// referential-integrity invariants.
func InstanceFromBytes(data []byte) (*Instance, error) {
	var dec instanceCBOR
	if err := cbor.Unmarshal(data, &dec); err != nil {
		return nil, fmt.Errorf("ommx.Instance: %w", err)
	}
	if len(dec.DeclaredParameters) > 0 {
		return nil, fmt.Errorf("ommx.Instance[parameters]: message is a parametric instance")
	}
	return instanceFromCBOR(dec, ommx.DefaultATol)
}

// ToBytes encodes the parametric instance with the module's tagged-field
// codec.
func (p *ParametricInstance) ToBytes() ([]byte, error) {
	tmp := &Instance{
		sense:              p.sense,
		objective:          p.objective,
		decisionVariables:  p.decisionVariables,
		constraints:        p.constraints,
		removedConstraints: p.removedConstraints,
		dependency:         p.dependency,
		hints:              p.hints,
		Description:        p.Description,
	}
	enc := tmp.toCBOR()
	for _, id := range utils.SortedKeys(p.parameters) {
		param := p.parameters[id]
		enc.DeclaredParameters = append(enc.DeclaredParameters, parameterCBOR{
			ID:          uint64(param.ID),
			Name:        param.Name,
			Subscripts:  param.Subscripts,
			Parameters:  param.Parameters,
			Description: param.Description,
		})
	}
	return cbor.Marshal(enc)
}

// ParametricInstanceFromBytes decodes a parametric instance. Parameters may
// appear in the objective and constraints next to decision variables, so
// the referential check runs over the union of both ID sets.
func ParametricInstanceFromBytes(data []byte) (*ParametricInstance, error) {
	var dec instanceCBOR
	if err := cbor.Unmarshal(data, &dec); err != nil {
		return nil, fmt.Errorf("ommx.ParametricInstance: %w", err)
	}
	parameters := make(map[ommx.VariableID]*Parameter, len(dec.DeclaredParameters))
	paramVars := make([]decisionVariableCBOR, 0, len(dec.DeclaredParameters))
	for _, enc := range dec.DeclaredParameters {
		id := ommx.VariableID(enc.ID)
		if _, dup := parameters[id]; dup {
			return nil, fmt.Errorf("ommx.ParametricInstance[parameters]: %w", ErrDuplicatedVariableID{ID: id})
		}
		parameters[id] = &Parameter{
			ID:          id,
			Name:        enc.Name,
			Subscripts:  enc.Subscripts,
			Parameters:  enc.Parameters,
			Description: enc.Description,
		}
		// a parameter behaves as an unbounded continuous symbol for the
		// referential check
		paramVars = append(paramVars, decisionVariableCBOR{
			ID:    enc.ID,
			Kind:  uint8(Continuous),
			Lower: negInf,
			Upper: posInf,
		})
	}
	merged := dec
	merged.DeclaredParameters = nil
	merged.Variables = append(append([]decisionVariableCBOR{}, dec.Variables...), paramVars...)
	inst, err := instanceFromCBOR(merged, ommx.DefaultATol)
	if err != nil {
		return nil, fmt.Errorf("ommx.ParametricInstance: %w", err)
	}
	p := &ParametricInstance{
		sense:              inst.sense,
		objective:          inst.objective,
		decisionVariables:  make(map[ommx.VariableID]*DecisionVariable),
		parameters:         parameters,
		constraints:        inst.constraints,
		removedConstraints: inst.removedConstraints,
		dependency:         inst.dependency,
		hints:              inst.hints,
		Description:        inst.Description,
	}
	for id, v := range inst.decisionVariables {
		if _, isParam := parameters[id]; !isParam {
			p.decisionVariables[id] = v
		}
	}
	return p, nil
}

// ToBytes encodes the parameter assignment with the module's tagged-field
// codec.
func (p Parameters) ToBytes() ([]byte, error) {
	raw := make(map[uint64]float64, len(p))
	for id, v := range p {
		raw[uint64(id)] = v
	}
	return cbor.Marshal(raw)
}

// ParametersFromBytes decodes a parameter assignment.
func ParametersFromBytes(data []byte) (Parameters, error) {
	var raw map[uint64]float64
	if err := cbor.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("ommx.Parameters: %w", err)
	}
	out := make(Parameters, len(raw))
	for id, v := range raw {
		out[ommx.VariableID(id)] = v
	}
	return out, nil
}

type evaluatedConstraintCBOR struct {
	ID               uint64            `cbor:"1,keyasint"`
	Equality         uint8             `cbor:"2,keyasint"`
	Value            float64           `cbor:"3,keyasint"`
	Feasible         bool              `cbor:"4,keyasint"`
	Removed          bool              `cbor:"5,keyasint,omitempty"`
	Reason           string            `cbor:"6,keyasint,omitempty"`
	ReasonParameters map[string]string `cbor:"7,keyasint,omitempty"`
}

type solutionCBOR struct {
	Sense           uint8                     `cbor:"1,keyasint"`
	State           map[uint64]float64        `cbor:"2,keyasint"`
	Objective       float64                   `cbor:"3,keyasint"`
	Constraints     []evaluatedConstraintCBOR `cbor:"4,keyasint,omitempty"`
	Feasible        bool                      `cbor:"5,keyasint"`
	FeasibleRelaxed bool                      `cbor:"6,keyasint"`
	Optimality      uint8                     `cbor:"7,keyasint,omitempty"`
	Relaxation      uint8                     `cbor:"8,keyasint,omitempty"`
}

// ToBytes encodes the solution with the module's tagged-field codec.
func (s *Solution) ToBytes() ([]byte, error) {
	enc := solutionCBOR{
		Sense:           uint8(s.Sense),
		State:           make(map[uint64]float64, len(s.State)),
		Objective:       s.Objective,
		Feasible:        s.Feasible,
		FeasibleRelaxed: s.FeasibleRelaxed,
		Optimality:      uint8(s.Optimality),
		Relaxation:      uint8(s.Relaxation),
	}
	for id, v := range s.State {
		enc.State[uint64(id)] = v
	}
	for _, cid := range utils.SortedKeys(s.EvaluatedConstraints) {
		ec := s.EvaluatedConstraints[cid]
		enc.Constraints = append(enc.Constraints, evaluatedConstraintCBOR{
			ID:               uint64(ec.ID),
			Equality:         uint8(ec.Equality),
			Value:            ec.Value,
			Feasible:         ec.Feasible,
			Removed:          ec.Removed,
			Reason:           ec.RemovedReason,
			ReasonParameters: ec.RemovedReasonParameters,
		})
	}
	return cbor.Marshal(enc)
}

// SolutionFromBytes decodes a solution, recomputing and cross-checking the
// aggregate feasibility flags against the per-constraint predicates.
func SolutionFromBytes(data []byte) (*Solution, error) {
	var dec solutionCBOR
	if err := cbor.Unmarshal(data, &dec); err != nil {
		return nil, fmt.Errorf("ommx.Solution: %w", err)
	}
	out := &Solution{
		Sense:                Sense(dec.Sense),
		State:                make(state.State, len(dec.State)),
		Objective:            dec.Objective,
		EvaluatedConstraints: make(map[ommx.ConstraintID]*EvaluatedConstraint, len(dec.Constraints)),
		Feasible:             dec.Feasible,
		FeasibleRelaxed:      dec.FeasibleRelaxed,
		Optimality:           Optimality(dec.Optimality),
		Relaxation:           Relaxation(dec.Relaxation),
	}
	for id, v := range dec.State {
		out.State[ommx.VariableID(id)] = v
	}
	computedRelaxed := true
	computedStrict := true
	for _, ec := range dec.Constraints {
		cid := ommx.ConstraintID(ec.ID)
		if _, dup := out.EvaluatedConstraints[cid]; dup {
			return nil, fmt.Errorf("ommx.Solution[evaluated_constraints]: %w", ErrDuplicatedConstraintID{ID: cid})
		}
		out.EvaluatedConstraints[cid] = &EvaluatedConstraint{
			ID:                      cid,
			Equality:                Equality(ec.Equality),
			Value:                   ec.Value,
			Feasible:                ec.Feasible,
			Removed:                 ec.Removed,
			RemovedReason:           ec.Reason,
			RemovedReasonParameters: ec.ReasonParameters,
		}
		computedStrict = computedStrict && ec.Feasible
		if !ec.Removed {
			computedRelaxed = computedRelaxed && ec.Feasible
		}
	}
	if dec.FeasibleRelaxed != computedRelaxed {
		return nil, fmt.Errorf("ommx.Solution[feasible_relaxed]: stored %v contradicts computed %v",
			dec.FeasibleRelaxed, computedRelaxed)
	}
	if dec.Feasible != computedStrict {
		return nil, fmt.Errorf("ommx.Solution[feasible]: stored %v contradicts computed %v",
			dec.Feasible, computedStrict)
	}
	return out, nil
}

type sampledConstraintCBOR struct {
	ID       uint64               `cbor:"1,keyasint"`
	Equality uint8                `cbor:"2,keyasint"`
	Values   *state.SampledValues `cbor:"3,keyasint"`
	Feasible map[uint64]bool      `cbor:"4,keyasint"`
	Removed  bool                 `cbor:"5,keyasint,omitempty"`
	Reason   string               `cbor:"6,keyasint,omitempty"`
}

type sampleSetCBOR struct {
	Sense             uint8                          `cbor:"1,keyasint"`
	Objectives        *state.SampledValues           `cbor:"2,keyasint"`
	DecisionVariables map[uint64]*state.SampledValues `cbor:"3,keyasint,omitempty"`
	Variables         []decisionVariableCBOR         `cbor:"4,keyasint,omitempty"`
	Constraints       []sampledConstraintCBOR        `cbor:"5,keyasint,omitempty"`
	Feasible          map[uint64]bool                `cbor:"6,keyasint,omitempty"`
	FeasibleRelaxed   map[uint64]bool                `cbor:"7,keyasint,omitempty"`
}

// ToBytes encodes the sample set with the module's tagged-field codec.
func (s *SampleSet) ToBytes() ([]byte, error) {
	enc := sampleSetCBOR{
		Sense:             uint8(s.sense),
		Objectives:        s.objectives,
		DecisionVariables: make(map[uint64]*state.SampledValues, len(s.decisionVariables)),
		Feasible:          make(map[uint64]bool, len(s.feasible)),
		FeasibleRelaxed:   make(map[uint64]bool, len(s.feasibleRelaxed)),
	}
	for id, sv := range s.decisionVariables {
		enc.DecisionVariables[uint64(id)] = sv
	}
	for _, id := range utils.SortedKeys(s.variables) {
		enc.Variables = append(enc.Variables, variableToCBOR(s.variables[id]))
	}
	for _, cid := range utils.SortedKeys(s.constraints) {
		sc := s.constraints[cid]
		feasible := make(map[uint64]bool, len(sc.Feasible))
		for sid, ok := range sc.Feasible {
			feasible[uint64(sid)] = ok
		}
		enc.Constraints = append(enc.Constraints, sampledConstraintCBOR{
			ID:       uint64(sc.ID),
			Equality: uint8(sc.Equality),
			Values:   sc.Values,
			Feasible: feasible,
			Removed:  sc.Removed,
			Reason:   sc.RemovedReason,
		})
	}
	for sid, ok := range s.feasible {
		enc.Feasible[uint64(sid)] = ok
	}
	for sid, ok := range s.feasibleRelaxed {
		enc.FeasibleRelaxed[uint64(sid)] = ok
	}
	return cbor.Marshal(enc)
}

// SampleSetFromBytes decodes a sample set, re-running the consistency
// checks of NewSampleSet including feasibility recomputation.
func SampleSetFromBytes(data []byte) (*SampleSet, error) {
	var dec sampleSetCBOR
	if err := cbor.Unmarshal(data, &dec); err != nil {
		return nil, fmt.Errorf("ommx.SampleSet: %w", err)
	}
	variables := make(map[ommx.VariableID]*DecisionVariable, len(dec.Variables))
	for _, enc := range dec.Variables {
		v, err := variableFromCBOR(enc, ommx.DefaultATol)
		if err != nil {
			return nil, fmt.Errorf("ommx.SampleSet[decision_variables]: ommx.DecisionVariable[%d]: %w", enc.ID, err)
		}
		variables[v.ID()] = v
	}
	decisionVariables := make(map[ommx.VariableID]*state.SampledValues, len(dec.DecisionVariables))
	for id, sv := range dec.DecisionVariables {
		decisionVariables[ommx.VariableID(id)] = sv
	}
	constraints := make(map[ommx.ConstraintID]*SampledConstraint, len(dec.Constraints))
	for _, enc := range dec.Constraints {
		cid := ommx.ConstraintID(enc.ID)
		if _, dup := constraints[cid]; dup {
			return nil, fmt.Errorf("ommx.SampleSet[constraints]: %w", ErrDuplicatedConstraintID{ID: cid})
		}
		feasible := make(map[ommx.SampleID]bool, len(enc.Feasible))
		for sid, ok := range enc.Feasible {
			feasible[ommx.SampleID(sid)] = ok
		}
		constraints[cid] = &SampledConstraint{
			ID:            cid,
			Equality:      Equality(enc.Equality),
			Values:        enc.Values,
			Feasible:      feasible,
			Removed:       enc.Removed,
			RemovedReason: enc.Reason,
		}
	}
	feasible := make(map[ommx.SampleID]bool, len(dec.Feasible))
	for sid, ok := range dec.Feasible {
		feasible[ommx.SampleID(sid)] = ok
	}
	feasibleRelaxed := make(map[ommx.SampleID]bool, len(dec.FeasibleRelaxed))
	for sid, ok := range dec.FeasibleRelaxed {
		feasibleRelaxed[ommx.SampleID(sid)] = ok
	}
	out, err := NewSampleSet(Sense(dec.Sense), dec.Objectives, decisionVariables, variables,
		constraints, feasible, feasibleRelaxed, ommx.DefaultATol)
	if err != nil {
		return nil, fmt.Errorf("ommx.SampleSet: %w", err)
	}
	return out, nil
}

var (
	posInf = math.Inf(1)
	negInf = math.Inf(-1)
)
