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

package polynomial

import (
	"encoding/binary"
	"fmt"
	"strings"

	"golang.org/x/exp/slices"

	ommx "github.com/Jij-Inc/ommx-sub000"
)

// Monomial is the constraint shared by the key types of the sparse
// polynomial containers. A monomial is an unordered multiset of variable
// IDs; implementations keep a normalized representation so that equal
// multisets hash and compare equal.
type Monomial[M comparable] interface {
	comparable
	// Degree is the multiset cardinality.
	Degree() int
	// Dyn returns the canonical general-form monomial.
	Dyn() MonomialDyn
	// Visit yields each variable with its multiplicity, ascending by ID.
	Visit(fn func(id ommx.VariableID, exponent int))
	// Rebuild forms a monomial of the same family from a sorted multiset.
	// ok is false when the multiset exceeds what the family can represent.
	Rebuild(ids []ommx.VariableID) (M, bool)
}

// LinearMonomial is either the empty multiset or a single variable.
type LinearMonomial struct {
	id    ommx.VariableID
	isVar bool
}

// LinearConstant returns the empty monomial.
func LinearConstant() LinearMonomial { return LinearMonomial{} }

// LinearVariable returns the degree-1 monomial of id.
func LinearVariable(id ommx.VariableID) LinearMonomial {
	return LinearMonomial{id: id, isVar: true}
}

// Variable returns the variable of a degree-1 monomial.
func (m LinearMonomial) Variable() (ommx.VariableID, bool) { return m.id, m.isVar }

// Degree implements Monomial.
func (m LinearMonomial) Degree() int {
	if m.isVar {
		return 1
	}
	return 0
}

// Dyn implements Monomial.
func (m LinearMonomial) Dyn() MonomialDyn {
	if m.isVar {
		return NewMonomialDyn(m.id)
	}
	return MonomialDyn{}
}

// Visit implements Monomial.
func (m LinearMonomial) Visit(fn func(id ommx.VariableID, exponent int)) {
	if m.isVar {
		fn(m.id, 1)
	}
}

// Rebuild implements Monomial.
func (m LinearMonomial) Rebuild(ids []ommx.VariableID) (LinearMonomial, bool) {
	switch len(ids) {
	case 0:
		return LinearConstant(), true
	case 1:
		return LinearVariable(ids[0]), true
	default:
		return LinearMonomial{}, false
	}
}

// QuadraticMonomial is a multiset of cardinality at most two. Degree-2
// monomials carry a normalized VariableIDPair; a square is the pair with
// both IDs equal.
type QuadraticMonomial struct {
	pair ommx.VariableIDPair
	deg  uint8
}

// QuadraticConstant returns the empty monomial.
func QuadraticConstant() QuadraticMonomial { return QuadraticMonomial{} }

// QuadraticLinear returns the degree-1 monomial of id.
func QuadraticLinear(id ommx.VariableID) QuadraticMonomial {
	return QuadraticMonomial{pair: ommx.NewVariableIDPair(id, id), deg: 1}
}

// QuadraticPair returns the degree-2 monomial of the pair.
func QuadraticPair(pair ommx.VariableIDPair) QuadraticMonomial {
	return QuadraticMonomial{pair: pair, deg: 2}
}

// Pair returns the variable pair of a degree-2 monomial.
func (m QuadraticMonomial) Pair() (ommx.VariableIDPair, bool) {
	return m.pair, m.deg == 2
}

// Variable returns the variable of a degree-1 monomial.
func (m QuadraticMonomial) Variable() (ommx.VariableID, bool) {
	return m.pair.Lower(), m.deg == 1
}

// Degree implements Monomial.
func (m QuadraticMonomial) Degree() int { return int(m.deg) }

// Dyn implements Monomial.
func (m QuadraticMonomial) Dyn() MonomialDyn {
	switch m.deg {
	case 1:
		return NewMonomialDyn(m.pair.Lower())
	case 2:
		return NewMonomialDyn(m.pair.Lower(), m.pair.Upper())
	default:
		return MonomialDyn{}
	}
}

// Visit implements Monomial.
func (m QuadraticMonomial) Visit(fn func(id ommx.VariableID, exponent int)) {
	switch m.deg {
	case 1:
		fn(m.pair.Lower(), 1)
	case 2:
		if m.pair.IsSquare() {
			fn(m.pair.Lower(), 2)
		} else {
			fn(m.pair.Lower(), 1)
			fn(m.pair.Upper(), 1)
		}
	}
}

// Rebuild implements Monomial.
func (m QuadraticMonomial) Rebuild(ids []ommx.VariableID) (QuadraticMonomial, bool) {
	switch len(ids) {
	case 0:
		return QuadraticConstant(), true
	case 1:
		return QuadraticLinear(ids[0]), true
	case 2:
		return QuadraticPair(ommx.NewVariableIDPair(ids[0], ids[1])), true
	default:
		return QuadraticMonomial{}, false
	}
}

// MonomialDyn is an arbitrary-degree multiset of variable IDs. The multiset
// is stored ascending, packed into a string so that the value is comparable
// and the lexicographic order of keys is the numeric order of the multiset.
type MonomialDyn struct {
	key string
}

// NewMonomialDyn builds the multiset of ids; the input order is irrelevant.
func NewMonomialDyn(ids ...ommx.VariableID) MonomialDyn {
	sorted := slices.Clone(ids)
	slices.Sort(sorted)
	var sb strings.Builder
	sb.Grow(8 * len(sorted))
	var buf [8]byte
	for _, id := range sorted {
		binary.BigEndian.PutUint64(buf[:], uint64(id))
		sb.Write(buf[:])
	}
	return MonomialDyn{key: sb.String()}
}

// IDs returns the multiset in ascending order.
func (m MonomialDyn) IDs() []ommx.VariableID {
	ids := make([]ommx.VariableID, len(m.key)/8)
	for i := range ids {
		ids[i] = ommx.VariableID(binary.BigEndian.Uint64([]byte(m.key[8*i : 8*i+8])))
	}
	return ids
}

// Degree implements Monomial.
func (m MonomialDyn) Degree() int { return len(m.key) / 8 }

// Dyn implements Monomial.
func (m MonomialDyn) Dyn() MonomialDyn { return m }

// Visit implements Monomial, yielding the compressed form.
func (m MonomialDyn) Visit(fn func(id ommx.VariableID, exponent int)) {
	n := m.Degree()
	for i := 0; i < n; {
		id := ommx.VariableID(binary.BigEndian.Uint64([]byte(m.key[8*i : 8*i+8])))
		j := i + 1
		for j < n && ommx.VariableID(binary.BigEndian.Uint64([]byte(m.key[8*j:8*j+8]))) == id {
			j++
		}
		fn(id, j-i)
		i = j
	}
}

// Rebuild implements Monomial.
func (m MonomialDyn) Rebuild(ids []ommx.VariableID) (MonomialDyn, bool) {
	return NewMonomialDyn(ids...), true
}

// Mul is multiset union: the product of two monomials.
func (m MonomialDyn) Mul(other MonomialDyn) MonomialDyn {
	a, b := m.IDs(), other.IDs()
	merged := make([]ommx.VariableID, 0, len(a)+len(b))
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		if a[i] <= b[j] {
			merged = append(merged, a[i])
			i++
		} else {
			merged = append(merged, b[j])
			j++
		}
	}
	merged = append(merged, a[i:]...)
	merged = append(merged, b[j:]...)
	return NewMonomialDyn(merged...)
}

// AsLinear returns the variable when the monomial has degree 1.
func (m MonomialDyn) AsLinear() (ommx.VariableID, bool) {
	if m.Degree() != 1 {
		return 0, false
	}
	return m.IDs()[0], true
}

// AsQuadraticPair returns the normalized pair when the monomial has
// degree 2.
func (m MonomialDyn) AsQuadraticPair() (ommx.VariableIDPair, bool) {
	if m.Degree() != 2 {
		return ommx.VariableIDPair{}, false
	}
	ids := m.IDs()
	return ommx.NewVariableIDPair(ids[0], ids[1]), true
}

func (m MonomialDyn) String() string {
	if m.Degree() == 0 {
		return "1"
	}
	var sb strings.Builder
	first := true
	m.Visit(func(id ommx.VariableID, exp int) {
		if !first {
			sb.WriteByte('*')
		}
		first = false
		if exp == 1 {
			fmt.Fprintf(&sb, "x%d", id)
		} else {
			fmt.Fprintf(&sb, "x%d^%d", id, exp)
		}
	})
	return sb.String()
}

// partialEvaluateMonomial splits a monomial against a state: variables
// assigned in the state fold into the returned numeric factor, the rest
// remain in the returned multiset.
func partialEvaluateMonomial[M Monomial[M]](m M, s map[ommx.VariableID]float64) (remaining []ommx.VariableID, factor float64) {
	factor = 1
	m.Visit(func(id ommx.VariableID, exp int) {
		if v, ok := s[id]; ok {
			for k := 0; k < exp; k++ {
				factor *= v
			}
			return
		}
		for k := 0; k < exp; k++ {
			remaining = append(remaining, id)
		}
	})
	return remaining, factor
}
