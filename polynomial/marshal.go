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
	"fmt"
	"math"

	"github.com/fxamacker/cbor/v2"

	ommx "github.com/Jij-Inc/ommx-sub000"
)

type dynTermCBOR struct {
	IDs         []uint64 `cbor:"1,keyasint,omitempty"`
	Coefficient float64  `cbor:"2,keyasint"`
}

type functionCBOR struct {
	Kind  uint8         `cbor:"1,keyasint"`
	Terms []dynTermCBOR `cbor:"2,keyasint,omitempty"`
}

// MarshalCBOR encodes the function in canonical term order so that equal
// functions encode to equal bytes.
func (f Function) MarshalCBOR() ([]byte, error) {
	enc := functionCBOR{Kind: uint8(f.kind)}
	for _, t := range f.SortedTerms() {
		ids := t.Monomial.IDs()
		raw := make([]uint64, len(ids))
		for i, id := range ids {
			raw[i] = uint64(id)
		}
		enc.Terms = append(enc.Terms, dynTermCBOR{IDs: raw, Coefficient: t.Coefficient.Float64()})
	}
	return cbor.Marshal(enc)
}

// UnmarshalCBOR decodes and fully validates a function: coefficients must
// be finite and non-zero, monomial keys unique, and the stored kind must
// match the narrowed form of the terms.
func (f *Function) UnmarshalCBOR(data []byte) error {
	var dec functionCBOR
	if err := cbor.Unmarshal(data, &dec); err != nil {
		return err
	}
	if dec.Kind > uint8(KindPolynomial) {
		return fmt.Errorf("unknown function kind %d", dec.Kind)
	}
	p := NewPolynomial()
	for _, t := range dec.Terms {
		if t.Coefficient == 0 {
			return ErrZeroCoefficient{}
		}
		if math.IsNaN(t.Coefficient) || math.IsInf(t.Coefficient, 0) {
			return ErrNonFiniteCoefficient{Value: t.Coefficient}
		}
		ids := make([]ommx.VariableID, len(t.IDs))
		for i, id := range t.IDs {
			ids[i] = ommx.VariableID(id)
		}
		m := NewMonomialDyn(ids...)
		if _, dup := p.Coefficient(m); dup {
			return fmt.Errorf("duplicate monomial %s", m)
		}
		if err := p.AddTerm(m, t.Coefficient); err != nil {
			return err
		}
	}
	narrowed := FromPolynomial(p)
	if narrowed.kind != FunctionKind(dec.Kind) {
		return fmt.Errorf("kind %s does not match terms of kind %s",
			FunctionKind(dec.Kind), narrowed.kind)
	}
	*f = narrowed
	return nil
}

// ToBytes encodes the function with the module's tagged-field codec.
func (f Function) ToBytes() ([]byte, error) {
	return f.MarshalCBOR()
}

// FunctionFromBytes decodes a function, validating every coefficient
// invariant.
func FunctionFromBytes(data []byte) (Function, error) {
	var f Function
	if err := f.UnmarshalCBOR(data); err != nil {
		return Zero(), fmt.Errorf("ommx.Function: %w", err)
	}
	return f, nil
}
