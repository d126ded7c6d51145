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
	"golang.org/x/exp/slices"

	ommx "github.com/Jij-Inc/ommx-sub000"
)

// ValueBucket groups the sample IDs that produced one identical value.
type ValueBucket struct {
	Value float64
	IDs   []ommx.SampleID
}

// SampledValues is the dual of Samples: scalar values deduplicated by value
// and keyed by sample ID.
type SampledValues struct {
	buckets []ValueBucket
}

// NewSampledValues validates the bucket invariants.
func NewSampledValues(buckets []ValueBucket) (*SampledValues, error) {
	seen := make(map[ommx.SampleID]struct{})
	for _, b := range buckets {
		if len(b.IDs) == 0 {
			return nil, ErrEmptyBucket{}
		}
		for _, id := range b.IDs {
			if _, dup := seen[id]; dup {
				return nil, ErrDuplicateSampleID{ID: id}
			}
			seen[id] = struct{}{}
		}
	}
	sv := &SampledValues{buckets: make([]ValueBucket, len(buckets))}
	for i, b := range buckets {
		sv.buckets[i] = ValueBucket{Value: b.Value, IDs: slices.Clone(b.IDs)}
	}
	return sv, nil
}

// Add inserts one (sample, value) entry, merging identical values.
func (sv *SampledValues) Add(id ommx.SampleID, value float64) error {
	for _, b := range sv.buckets {
		if slices.Contains(b.IDs, id) {
			return ErrDuplicateSampleID{ID: id}
		}
	}
	for i := range sv.buckets {
		if sv.buckets[i].Value == value {
			sv.buckets[i].IDs = append(sv.buckets[i].IDs, id)
			return nil
		}
	}
	sv.buckets = append(sv.buckets, ValueBucket{Value: value, IDs: []ommx.SampleID{id}})
	return nil
}

// Get returns the value recorded for the given sample.
func (sv *SampledValues) Get(id ommx.SampleID) (float64, error) {
	for _, b := range sv.buckets {
		if slices.Contains(b.IDs, id) {
			return b.Value, nil
		}
	}
	return 0, ErrUnknownSampleID{ID: id}
}

// IDs returns every sample ID in ascending order.
func (sv *SampledValues) IDs() []ommx.SampleID {
	var ids []ommx.SampleID
	for _, b := range sv.buckets {
		ids = append(ids, b.IDs...)
	}
	slices.Sort(ids)
	return ids
}

// Len returns the number of samples.
func (sv *SampledValues) Len() int {
	n := 0
	for _, b := range sv.buckets {
		n += len(b.IDs)
	}
	return n
}

// Buckets exposes the deduplicated view. Callers must not mutate it.
func (sv *SampledValues) Buckets() []ValueBucket {
	return sv.buckets
}

// Each calls fn for every (sample, value) pair in ascending sample order.
func (sv *SampledValues) Each(fn func(id ommx.SampleID, value float64)) {
	for _, id := range sv.IDs() {
		v, _ := sv.Get(id)
		fn(id, v)
	}
}
