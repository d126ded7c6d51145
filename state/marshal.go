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

package state

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"

	ommx "github.com/Jij-Inc/ommx-sub000"
)

type stateBucketCBOR struct {
	State map[uint64]float64 `cbor:"1,keyasint"`
	IDs   []uint64           `cbor:"2,keyasint"`
}

type samplesCBOR struct {
	Buckets []stateBucketCBOR `cbor:"1,keyasint"`
}

type valueBucketCBOR struct {
	Value float64  `cbor:"1,keyasint"`
	IDs   []uint64 `cbor:"2,keyasint"`
}

type sampledValuesCBOR struct {
	Buckets []valueBucketCBOR `cbor:"1,keyasint"`
}

// ToBytes encodes the state with the module's tagged-field codec.
func (s State) ToBytes() ([]byte, error) {
	raw := make(map[uint64]float64, len(s))
	for id, v := range s {
		raw[uint64(id)] = v
	}
	return cbor.Marshal(raw)
}

// StateFromBytes decodes a state.
func StateFromBytes(data []byte) (State, error) {
	var raw map[uint64]float64
	if err := cbor.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("ommx.State: %w", err)
	}
	s := make(State, len(raw))
	for id, v := range raw {
		s[ommx.VariableID(id)] = v
	}
	return s, nil
}

// ToBytes encodes the samples with the module's tagged-field codec.
func (s *Samples) ToBytes() ([]byte, error) {
	enc := samplesCBOR{Buckets: make([]stateBucketCBOR, 0, len(s.buckets))}
	for _, b := range s.buckets {
		raw := make(map[uint64]float64, len(b.State))
		for id, v := range b.State {
			raw[uint64(id)] = v
		}
		ids := make([]uint64, len(b.IDs))
		for i, id := range b.IDs {
			ids[i] = uint64(id)
		}
		enc.Buckets = append(enc.Buckets, stateBucketCBOR{State: raw, IDs: ids})
	}
	return cbor.Marshal(enc)
}

// SamplesFromBytes decodes samples and re-validates the bucket invariants.
func SamplesFromBytes(data []byte) (*Samples, error) {
	var dec samplesCBOR
	if err := cbor.Unmarshal(data, &dec); err != nil {
		return nil, fmt.Errorf("ommx.Samples: %w", err)
	}
	buckets := make([]StateBucket, 0, len(dec.Buckets))
	for _, b := range dec.Buckets {
		st := make(State, len(b.State))
		for id, v := range b.State {
			st[ommx.VariableID(id)] = v
		}
		ids := make([]ommx.SampleID, len(b.IDs))
		for i, id := range b.IDs {
			ids[i] = ommx.SampleID(id)
		}
		buckets = append(buckets, StateBucket{State: st, IDs: ids})
	}
	s, err := NewSamples(buckets)
	if err != nil {
		return nil, fmt.Errorf("ommx.Samples[buckets]: %w", err)
	}
	return s, nil
}

// MarshalCBOR implements cbor.Marshaler so that sampled values embed
// directly into larger messages.
func (sv *SampledValues) MarshalCBOR() ([]byte, error) {
	return sv.ToBytes()
}

// UnmarshalCBOR implements cbor.Unmarshaler, re-validating the bucket
// invariants.
func (sv *SampledValues) UnmarshalCBOR(data []byte) error {
	dec, err := SampledValuesFromBytes(data)
	if err != nil {
		return err
	}
	*sv = *dec
	return nil
}

// ToBytes encodes the sampled values with the module's tagged-field codec.
func (sv *SampledValues) ToBytes() ([]byte, error) {
	enc := sampledValuesCBOR{Buckets: make([]valueBucketCBOR, 0, len(sv.buckets))}
	for _, b := range sv.buckets {
		ids := make([]uint64, len(b.IDs))
		for i, id := range b.IDs {
			ids[i] = uint64(id)
		}
		enc.Buckets = append(enc.Buckets, valueBucketCBOR{Value: b.Value, IDs: ids})
	}
	return cbor.Marshal(enc)
}

// SampledValuesFromBytes decodes sampled values and re-validates the bucket
// invariants.
func SampledValuesFromBytes(data []byte) (*SampledValues, error) {
	var dec sampledValuesCBOR
	if err := cbor.Unmarshal(data, &dec); err != nil {
		return nil, fmt.Errorf("ommx.SampledValues: %w", err)
	}
	buckets := make([]ValueBucket, 0, len(dec.Buckets))
	for _, b := range dec.Buckets {
		ids := make([]ommx.SampleID, len(b.IDs))
		for i, id := range b.IDs {
			ids[i] = ommx.SampleID(id)
		}
		buckets = append(buckets, ValueBucket{Value: b.Value, IDs: ids})
	}
	sv, err := NewSampledValues(buckets)
	if err != nil {
		return nil, fmt.Errorf("ommx.SampledValues[buckets]: %w", err)
	}
	return sv, nil
}
