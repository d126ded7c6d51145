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
	"github.com/bits-and-blooms/bitset"
	"golang.org/x/exp/slices"

	ommx "github.com/Jij-Inc/ommx-sub000"
	"github.com/Jij-Inc/ommx-sub000/polynomial"
	"github.com/Jij-Inc/ommx-sub000/state"
)

// DecisionVariableAnalysis partitions the variable IDs of an instance by
// kind and by usage. It is a pure function of the instance.
type DecisionVariableAnalysis struct {
	kinds map[Kind]ommx.VariableIDSet

	usedInObjective   ommx.VariableIDSet
	usedInConstraints map[ommx.ConstraintID]ommx.VariableIDSet

	// usage partition, disjoint, priority fixed > dependent > used
	fixed      ommx.VariableIDSet
	dependent  ommx.VariableIDSet
	used       ommx.VariableIDSet
	irrelevant ommx.VariableIDSet

	bounds map[ommx.VariableID]polynomial.Bound
	vars   map[ommx.VariableID]*DecisionVariable
}

// AnalyzeDecisionVariables builds the usage report. Liveness over the
// objective and constraints is collected in dense bit masks indexed by the
// sorted ID order, then translated back to ID sets.
func (i *Instance) AnalyzeDecisionVariables() *DecisionVariableAnalysis {
	ids := make([]ommx.VariableID, 0, len(i.decisionVariables))
	for id := range i.decisionVariables {
		ids = append(ids, id)
	}
	sortVariableIDs(ids)
	index := make(map[ommx.VariableID]uint, len(ids))
	for pos, id := range ids {
		index[id] = uint(pos)
	}

	mask := func(set ommx.VariableIDSet) *bitset.BitSet {
		b := bitset.New(uint(len(ids)))
		for id := range set {
			if pos, ok := index[id]; ok {
				b.Set(pos)
			}
		}
		return b
	}

	objMask := mask(i.objective.RequiredIDs())
	usedMask := objMask.Clone()
	usedInConstraints := make(map[ommx.ConstraintID]ommx.VariableIDSet, len(i.constraints))
	for cid, c := range i.constraints {
		set := c.Function().RequiredIDs()
		usedInConstraints[cid] = set
		usedMask.InPlaceUnion(mask(set))
	}

	a := &DecisionVariableAnalysis{
		kinds:             make(map[Kind]ommx.VariableIDSet),
		usedInObjective:   i.objective.RequiredIDs(),
		usedInConstraints: usedInConstraints,
		fixed:             make(ommx.VariableIDSet),
		dependent:         make(ommx.VariableIDSet),
		used:              make(ommx.VariableIDSet),
		irrelevant:        make(ommx.VariableIDSet),
		bounds:            i.Bounds(),
		vars:              i.decisionVariables,
	}
	for _, k := range []Kind{Binary, Integer, Continuous, SemiInteger, SemiContinuous} {
		a.kinds[k] = make(ommx.VariableIDSet)
	}

	for pos, id := range ids {
		v := i.decisionVariables[id]
		a.kinds[v.Kind()].Add(id)
		switch {
		case v.substitutedValue != nil:
			a.fixed.Add(id)
		case i.dependency.HasKey(id):
			a.dependent.Add(id)
		case usedMask.Test(uint(pos)):
			a.used.Add(id)
		default:
			a.irrelevant.Add(id)
		}
	}
	return a
}

// Kind returns the IDs of the given kind.
func (a *DecisionVariableAnalysis) Kind(k Kind) ommx.VariableIDSet { return a.kinds[k] }

// Fixed returns the variables with a substituted value.
func (a *DecisionVariableAnalysis) Fixed() ommx.VariableIDSet { return a.fixed }

// Dependent returns the keys of the dependency assignments.
func (a *DecisionVariableAnalysis) Dependent() ommx.VariableIDSet { return a.dependent }

// Used returns the variables appearing in the objective or an active
// constraint and in neither higher-priority class.
func (a *DecisionVariableAnalysis) Used() ommx.VariableIDSet { return a.used }

// Irrelevant returns the remaining variables.
func (a *DecisionVariableAnalysis) Irrelevant() ommx.VariableIDSet { return a.irrelevant }

// UsedInObjective returns the variables of the objective.
func (a *DecisionVariableAnalysis) UsedInObjective() ommx.VariableIDSet { return a.usedInObjective }

// UsedInConstraints returns per-constraint variable sets.
func (a *DecisionVariableAnalysis) UsedInConstraints() map[ommx.ConstraintID]ommx.VariableIDSet {
	return a.usedInConstraints
}

// UsedBinary returns the used variables of binary kind.
func (a *DecisionVariableAnalysis) UsedBinary() ommx.VariableIDSet {
	return a.usedOfKind(Binary)
}

// UsedInteger returns the used integer variables with their bounds.
func (a *DecisionVariableAnalysis) UsedInteger() map[ommx.VariableID]polynomial.Bound {
	return a.usedBoundsOfKind(Integer)
}

// UsedContinuous returns the used continuous variables with their bounds.
func (a *DecisionVariableAnalysis) UsedContinuous() map[ommx.VariableID]polynomial.Bound {
	return a.usedBoundsOfKind(Continuous)
}

// UsedSemiInteger returns the used semi-integer variables with their bounds.
func (a *DecisionVariableAnalysis) UsedSemiInteger() map[ommx.VariableID]polynomial.Bound {
	return a.usedBoundsOfKind(SemiInteger)
}

// UsedSemiContinuous returns the used semi-continuous variables with their
// bounds.
func (a *DecisionVariableAnalysis) UsedSemiContinuous() map[ommx.VariableID]polynomial.Bound {
	return a.usedBoundsOfKind(SemiContinuous)
}

func (a *DecisionVariableAnalysis) usedOfKind(k Kind) ommx.VariableIDSet {
	out := make(ommx.VariableIDSet)
	for id := range a.used {
		if a.kinds[k].Contains(id) {
			out.Add(id)
		}
	}
	return out
}

func (a *DecisionVariableAnalysis) usedBoundsOfKind(k Kind) map[ommx.VariableID]polynomial.Bound {
	out := make(map[ommx.VariableID]polynomial.Bound)
	for id := range a.usedOfKind(k) {
		out[id] = a.bounds[id]
	}
	return out
}

// ValidateState checks every assigned value against its variable's value
// domain. Assignments to undeclared variables are ignored.
func (a *DecisionVariableAnalysis) ValidateState(s state.State, atol ommx.ATol) error {
	for _, id := range s.SortedIDs() {
		v, ok := a.vars[id]
		if !ok {
			continue
		}
		if err := v.CheckValue(s[id], atol); err != nil {
			return err
		}
	}
	return nil
}

func sortVariableIDs(ids []ommx.VariableID) {
	slices.Sort(ids)
}
