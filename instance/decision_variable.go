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
	"math"

	ommx "github.com/Jij-Inc/ommx-sub000"
	"github.com/Jij-Inc/ommx-sub000/polynomial"
)

// Kind classifies the value domain of a decision variable.
type Kind uint8

const (
	Binary Kind = iota
	Integer
	Continuous
	SemiInteger
	SemiContinuous
)

func (k Kind) String() string {
	switch k {
	case Binary:
		return "binary"
	case Integer:
		return "integer"
	case Continuous:
		return "continuous"
	case SemiInteger:
		return "semi-integer"
	case SemiContinuous:
		return "semi-continuous"
	default:
		return "unknown"
	}
}

// Metadata carries the descriptive fields shared by decision variables and
// constraints. It does not influence any algebraic operation.
type Metadata struct {
	Name        string
	Subscripts  []int64
	Parameters  map[string]string
	Description string
}

// DecisionVariable declares one variable: its kind, bound, optional fixed
// value and metadata.
type DecisionVariable struct {
	id               ommx.VariableID
	kind             Kind
	bound            polynomial.Bound
	substitutedValue *float64

	Metadata Metadata
}

// NewDecisionVariable validates the kind/bound compatibility rules:
// binary bounds lie within [0, 1], integer-kinded endpoints are integral
// within atol, and semi kinds have a non-negative lower endpoint (their
// value domain is {0} ∪ [lower, upper]).
func NewDecisionVariable(id ommx.VariableID, kind Kind, bound polynomial.Bound, atol ommx.ATol) (*DecisionVariable, error) {
	switch kind {
	case Binary:
		unit := mustBound(0, 1)
		if !unit.Contains(bound.Lower(), atol) || !unit.Contains(bound.Upper(), atol) {
			return nil, ErrValueOutOfBounds{ID: id, Value: bound.Lower(), Bound: unit, Kind: kind}
		}
	case Integer, SemiInteger:
		for _, v := range []float64{bound.Lower(), bound.Upper()} {
			if math.IsInf(v, 0) {
				continue
			}
			if math.Abs(v-math.Round(v)) > atol.Float64() {
				return nil, ErrNotAnInteger{ID: id, Value: v}
			}
		}
	}
	if kind == SemiInteger || kind == SemiContinuous {
		if bound.Lower() < 0 {
			return nil, ErrValueOutOfBounds{ID: id, Value: bound.Lower(), Bound: bound, Kind: kind}
		}
	}
	return &DecisionVariable{id: id, kind: kind, bound: bound}, nil
}

// ID returns the variable's identifier.
func (v *DecisionVariable) ID() ommx.VariableID { return v.id }

// Kind returns the variable's kind.
func (v *DecisionVariable) Kind() Kind { return v.kind }

// Bound returns the variable's bound.
func (v *DecisionVariable) Bound() polynomial.Bound { return v.bound }

// SubstitutedValue returns the fixed value, if one is set.
func (v *DecisionVariable) SubstitutedValue() (float64, bool) {
	if v.substitutedValue == nil {
		return 0, false
	}
	return *v.substitutedValue, true
}

// SetSubstitutedValue fixes the variable to value, after checking the value
// lies in the kind's domain.
func (v *DecisionVariable) SetSubstitutedValue(value float64, atol ommx.ATol) error {
	if err := v.CheckValue(value, atol); err != nil {
		return err
	}
	v.substitutedValue = &value
	return nil
}

// CheckValue reports whether value lies in the variable's value domain
// within atol.
func (v *DecisionVariable) CheckValue(value float64, atol ommx.ATol) error {
	switch v.kind {
	case Binary, Integer, SemiInteger:
		if math.Abs(value-math.Round(value)) > atol.Float64() {
			return ErrNotAnInteger{ID: v.id, Value: value}
		}
	}
	if v.kind == SemiInteger || v.kind == SemiContinuous {
		// zero is always in the semi domain
		if math.Abs(value) <= atol.Float64() {
			return nil
		}
	}
	if !v.bound.Contains(value, atol) {
		return ErrValueOutOfBounds{ID: v.id, Value: value, Bound: v.bound, Kind: v.kind}
	}
	return nil
}

// Clone returns a deep copy.
func (v *DecisionVariable) Clone() *DecisionVariable {
	out := &DecisionVariable{id: v.id, kind: v.kind, bound: v.bound, Metadata: cloneMetadata(v.Metadata)}
	if v.substitutedValue != nil {
		sv := *v.substitutedValue
		out.substitutedValue = &sv
	}
	return out
}

func cloneMetadata(m Metadata) Metadata {
	out := Metadata{Name: m.Name, Description: m.Description}
	out.Subscripts = append([]int64(nil), m.Subscripts...)
	if m.Parameters != nil {
		out.Parameters = make(map[string]string, len(m.Parameters))
		for k, v := range m.Parameters {
			out.Parameters[k] = v
		}
	}
	return out
}

func mustBound(lo, hi float64) polynomial.Bound {
	b, err := polynomial.NewBound(lo, hi)
	if err != nil {
		panic(err)
	}
	return b
}
