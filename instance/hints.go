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
)

// OneHotHint marks a constraint as a one-hot group: exactly one of the
// listed binaries is 1.
type OneHotHint struct {
	ConstraintID ommx.ConstraintID
	Variables    []ommx.VariableID
}

// SOS1Hint marks an SOS-1 group: at most one of the listed variables is
// non-zero.
type SOS1Hint struct {
	BinaryConstraintID ommx.ConstraintID
	BigMConstraintIDs  []ommx.ConstraintID
	Variables          []ommx.VariableID
}

// ConstraintHints is structural metadata solvers may exploit. Hints never
// change feasibility.
type ConstraintHints struct {
	OneHot []OneHotHint
	SOS1   []SOS1Hint
}

// IsEmpty reports whether no hint is stored.
func (h ConstraintHints) IsEmpty() bool {
	return len(h.OneHot) == 0 && len(h.SOS1) == 0
}

// UsedVariableIDs returns every variable a hint mentions.
func (h ConstraintHints) UsedVariableIDs() ommx.VariableIDSet {
	ids := make(ommx.VariableIDSet)
	for _, oh := range h.OneHot {
		for _, id := range oh.Variables {
			ids.Add(id)
		}
	}
	for _, s := range h.SOS1 {
		for _, id := range s.Variables {
			ids.Add(id)
		}
	}
	return ids
}

// Clone returns a deep copy.
func (h ConstraintHints) Clone() ConstraintHints {
	out := ConstraintHints{}
	for _, oh := range h.OneHot {
		out.OneHot = append(out.OneHot, OneHotHint{
			ConstraintID: oh.ConstraintID,
			Variables:    append([]ommx.VariableID(nil), oh.Variables...),
		})
	}
	for _, s := range h.SOS1 {
		out.SOS1 = append(out.SOS1, SOS1Hint{
			BinaryConstraintID: s.BinaryConstraintID,
			BigMConstraintIDs:  append([]ommx.ConstraintID(nil), s.BigMConstraintIDs...),
			Variables:          append([]ommx.VariableID(nil), s.Variables...),
		})
	}
	return out
}

// validate checks that hint constraint IDs point at live constraints and
// variable sets are non-empty subsets of the declared variables.
func (h ConstraintHints) validate(
	variables map[ommx.VariableID]*DecisionVariable,
	constraints map[ommx.ConstraintID]*Constraint,
) error {
	checkVars := func(ids []ommx.VariableID) error {
		if len(ids) == 0 {
			return ErrInvalidHint{Reason: "empty variable set"}
		}
		for _, id := range ids {
			if _, ok := variables[id]; !ok {
				return ErrInvalidHint{Reason: fmt.Sprintf("undefined variable %d", id)}
			}
		}
		return nil
	}
	checkConstraint := func(id ommx.ConstraintID) error {
		if _, ok := constraints[id]; !ok {
			return ErrInvalidHint{Reason: fmt.Sprintf("unknown constraint %d", id)}
		}
		return nil
	}
	for _, oh := range h.OneHot {
		if err := checkConstraint(oh.ConstraintID); err != nil {
			return err
		}
		if err := checkVars(oh.Variables); err != nil {
			return err
		}
	}
	for _, s := range h.SOS1 {
		if err := checkConstraint(s.BinaryConstraintID); err != nil {
			return err
		}
		for _, cid := range s.BigMConstraintIDs {
			if err := checkConstraint(cid); err != nil {
				return err
			}
		}
		if err := checkVars(s.Variables); err != nil {
			return err
		}
	}
	return nil
}
