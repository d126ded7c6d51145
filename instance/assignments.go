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
	"github.com/Jij-Inc/ommx-sub000/polynomial"
	"github.com/Jij-Inc/ommx-sub000/state"
)

// Assignment replaces a variable by a function wherever it appears.
type Assignment struct {
	ID       ommx.VariableID
	Function polynomial.Function
}

// AcyclicAssignments is an ordered collection of variable substitutions
// whose dependency graph is a DAG. Construction fails on duplicate keys and
// on cycles, so an invalid dependency graph cannot be represented.
type AcyclicAssignments struct {
	fns   map[ommx.VariableID]polynomial.Function
	order []ommx.VariableID // dependencies before dependents
}

// NewAcyclicAssignments validates key uniqueness, detects cycles, and
// stores an evaluation order in which no assignment depends on a
// later-evaluated variable.
func NewAcyclicAssignments(assignments []Assignment) (*AcyclicAssignments, error) {
	fns := make(map[ommx.VariableID]polynomial.Function, len(assignments))
	keys := make([]ommx.VariableID, 0, len(assignments))
	for _, a := range assignments {
		if _, dup := fns[a.ID]; dup {
			return nil, ErrDuplicatedVariableID{ID: a.ID}
		}
		fns[a.ID] = a.Function
		keys = append(keys, a.ID)
	}

	const (
		white = iota // unvisited
		grey         // on the current DFS path
		black        // finished
	)
	color := make(map[ommx.VariableID]int, len(fns))
	order := make([]ommx.VariableID, 0, len(fns))
	var path []ommx.VariableID

	var visit func(id ommx.VariableID) *ErrCycleDetected
	visit = func(id ommx.VariableID) *ErrCycleDetected {
		color[id] = grey
		path = append(path, id)
		for _, dep := range fns[id].RequiredIDs().Sorted() {
			if _, isKey := fns[dep]; !isKey {
				continue
			}
			switch color[dep] {
			case grey:
				cycle := append(append([]ommx.VariableID{}, path...), dep)
				return &ErrCycleDetected{Path: cycle}
			case white:
				if err := visit(dep); err != nil {
					return err
				}
			}
		}
		path = path[:len(path)-1]
		color[id] = black
		order = append(order, id)
		return nil
	}

	for _, id := range keys {
		if color[id] == white {
			if err := visit(id); err != nil {
				return nil, *err
			}
		}
	}
	return &AcyclicAssignments{fns: fns, order: order}, nil
}

// Len returns the number of assignments.
func (a *AcyclicAssignments) Len() int {
	if a == nil {
		return 0
	}
	return len(a.fns)
}

// Get returns the function assigned to id.
func (a *AcyclicAssignments) Get(id ommx.VariableID) (polynomial.Function, bool) {
	if a == nil {
		return polynomial.Zero(), false
	}
	f, ok := a.fns[id]
	return f, ok
}

// HasKey reports whether id is assigned.
func (a *AcyclicAssignments) HasKey(id ommx.VariableID) bool {
	_, ok := a.Get(id)
	return ok
}

// Keys returns the assigned variables in evaluation order.
func (a *AcyclicAssignments) Keys() []ommx.VariableID {
	if a == nil {
		return nil
	}
	return append([]ommx.VariableID(nil), a.order...)
}

// RequiredIDs returns every variable referenced by a right-hand side.
func (a *AcyclicAssignments) RequiredIDs() ommx.VariableIDSet {
	ids := make(ommx.VariableIDSet)
	if a == nil {
		return ids
	}
	for _, f := range a.fns {
		ids.Union(f.RequiredIDs())
	}
	return ids
}

// Evaluate walks the assignments in dependency order and inserts each
// computed value into s. Right-hand sides may reference earlier assignees;
// any other unassigned variable is an error.
func (a *AcyclicAssignments) Evaluate(s state.State, atol ommx.ATol) error {
	if a == nil {
		return nil
	}
	var undefined []ommx.VariableID
	for _, id := range a.order {
		f := a.fns[id]
		for _, dep := range f.RequiredIDs().Sorted() {
			if _, ok := s[dep]; !ok && !a.HasKey(dep) {
				undefined = append(undefined, dep)
			}
		}
		if len(undefined) > 0 {
			continue
		}
		v, err := f.Evaluate(s, atol)
		if err != nil {
			return err
		}
		s[id] = v
	}
	if len(undefined) > 0 {
		return ErrCannotEvaluate{UndefinedIDs: undefined}
	}
	return nil
}

// Clone returns a deep copy.
func (a *AcyclicAssignments) Clone() *AcyclicAssignments {
	if a == nil {
		return nil
	}
	out := &AcyclicAssignments{
		fns:   make(map[ommx.VariableID]polynomial.Function, len(a.fns)),
		order: append([]ommx.VariableID(nil), a.order...),
	}
	for id, f := range a.fns {
		out.fns[id] = f.Clone()
	}
	return out
}
