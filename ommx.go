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

// Package ommx holds the identifier and tolerance types shared by the
// polynomial algebra, the state containers and the instance model.
//
// The algebra lives in the polynomial package, assignments and samples in
// the state package, and the optimization-instance container with its
// reformulation passes in the instance package.
package ommx

import (
	"math"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Version of the library.
const Version = "0.1.0"

// VariableID identifies a decision variable. It carries no arithmetic;
// ordering and hashing follow the underlying integer.
type VariableID uint64

// ConstraintID identifies a constraint.
type ConstraintID uint64

// SampleID identifies one sample in a multi-sample evaluation.
type SampleID uint64

// VariableIDPair is an unordered pair of variable IDs stored in normalized
// form, Lower() <= Upper(). Equal IDs represent a squared variable.
type VariableIDPair struct {
	lower VariableID
	upper VariableID
}

// NewVariableIDPair normalizes the pair so that (a, b) and (b, a) are the
// same value, hence hash and compare equal.
func NewVariableIDPair(a, b VariableID) VariableIDPair {
	if a > b {
		a, b = b, a
	}
	return VariableIDPair{lower: a, upper: b}
}

// Lower returns the smaller ID of the pair.
func (p VariableIDPair) Lower() VariableID { return p.lower }

// Upper returns the larger ID of the pair.
func (p VariableIDPair) Upper() VariableID { return p.upper }

// IsSquare reports whether both IDs coincide.
func (p VariableIDPair) IsSquare() bool { return p.lower == p.upper }

// ATol is an absolute tolerance, strictly positive. It is threaded
// explicitly through every approximate comparison and evaluation.
type ATol float64

// DefaultATol is the tolerance used when callers have no better choice.
const DefaultATol ATol = 1e-6

// NewATol validates that v is finite and strictly positive.
func NewATol(v float64) (ATol, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return 0, ErrInvalidATol{Value: v}
	}
	return ATol(v), nil
}

// Float64 returns the tolerance as a plain double.
func (a ATol) Float64() float64 { return float64(a) }

// Degree is the degree of a monomial or function.
type Degree uint32

// MaxDegree is a sentinel for "any degree".
const MaxDegree Degree = math.MaxUint32

// VariableIDSet is a set of variable IDs.
type VariableIDSet map[VariableID]struct{}

// NewVariableIDSet builds a set from the given IDs.
func NewVariableIDSet(ids ...VariableID) VariableIDSet {
	s := make(VariableIDSet, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

// Add inserts id into the set.
func (s VariableIDSet) Add(id VariableID) { s[id] = struct{}{} }

// Contains reports membership of id.
func (s VariableIDSet) Contains(id VariableID) bool {
	_, ok := s[id]
	return ok
}

// Union adds every element of other into s.
func (s VariableIDSet) Union(other VariableIDSet) {
	for id := range other {
		s[id] = struct{}{}
	}
}

// Sorted returns the members in ascending order.
func (s VariableIDSet) Sorted() []VariableID {
	ids := maps.Keys(s)
	slices.Sort(ids)
	return ids
}

// ErrInvalidATol reports a non-positive or non-finite tolerance.
type ErrInvalidATol struct {
	Value float64
}

func (e ErrInvalidATol) Error() string {
	return "absolute tolerance must be finite and strictly positive"
}
