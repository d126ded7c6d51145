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

	"golang.org/x/exp/slices"

	ommx "github.com/Jij-Inc/ommx-sub000"
)

// StateBucket groups the sample IDs that share one identical state.
type StateBucket struct {
	State State
	IDs   []ommx.SampleID
}

// Samples stores sampled states, deduplicated by state. Each sample ID
// appears in exactly one bucket and every bucket is non-empty.
type Samples struct {
	buckets []StateBucket
}

// NewSamples validates the bucket invariants and builds a Samples container.
func NewSamples(buckets []StateBucket) (*Samples, error) {
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
	s := &Samples{buckets: make([]StateBucket, len(buckets))}
	for i, b := range buckets {
		s.buckets[i] = StateBucket{State: b.State.Clone(), IDs: slices.Clone(b.IDs)}
	}
	return s, nil
}

// Add inserts a sample. States are compared entry-wise; identical states
// share a bucket.
func (s *Samples) Add(id ommx.SampleID, st State) error {
	for _, b := range s.buckets {
		if slices.Contains(b.IDs, id) {
			return ErrDuplicateSampleID{ID: id}
		}
	}
	for i := range s.buckets {
		if s.buckets[i].State.Equal(st) {
			s.buckets[i].IDs = append(s.buckets[i].IDs, id)
			return nil
		}
	}
	s.buckets = append(s.buckets, StateBucket{State: st.Clone(), IDs: []ommx.SampleID{id}})
	return nil
}

// Get returns the state of the given sample.
func (s *Samples) Get(id ommx.SampleID) (State, error) {
	for _, b := range s.buckets {
		if slices.Contains(b.IDs, id) {
			return b.State, nil
		}
	}
	return nil, ErrUnknownSampleID{ID: id}
}

// IDs returns every sample ID in ascending order.
func (s *Samples) IDs() []ommx.SampleID {
	var ids []ommx.SampleID
	for _, b := range s.buckets {
		ids = append(ids, b.IDs...)
	}
	slices.Sort(ids)
	return ids
}

// Len returns the number of samples.
func (s *Samples) Len() int {
	n := 0
	for _, b := range s.buckets {
		n += len(b.IDs)
	}
	return n
}

// Buckets exposes the deduplicated view. Callers must not mutate it.
func (s *Samples) Buckets() []StateBucket {
	return s.buckets
}

// Map evaluates f once per distinct state and spreads the value over the
// bucket's sample IDs.
func (s *Samples) Map(f func(State) (float64, error)) (*SampledValues, error) {
	out := &SampledValues{}
	for _, b := range s.buckets {
		v, err := f(b.State)
		if err != nil {
			return nil, err
		}
		for _, id := range b.IDs {
			if err := out.Add(id, v); err != nil {
				return nil, err
			}
		}
	}
	return out, nil
}

// Transpose flips the by-sample view into a by-variable view.
func (s *Samples) Transpose() map[ommx.VariableID]*SampledValues {
	out := make(map[ommx.VariableID]*SampledValues)
	for _, b := range s.buckets {
		for id, value := range b.State {
			sv, ok := out[id]
			if !ok {
				sv = &SampledValues{}
				out[id] = sv
			}
			for _, sid := range b.IDs {
				// IDs are unique across buckets, Add cannot fail here.
				_ = sv.Add(sid, value)
			}
		}
	}
	return out
}

// ErrDuplicateSampleID reports a sample ID registered twice.
type ErrDuplicateSampleID struct {
	ID ommx.SampleID
}

func (e ErrDuplicateSampleID) Error() string {
	return fmt.Sprintf("sample ID %d appears in more than one bucket", e.ID)
}

// ErrEmptyBucket reports a bucket without sample IDs.
type ErrEmptyBucket struct{}

func (e ErrEmptyBucket) Error() string { return "sample bucket has no sample IDs" }

// ErrUnknownSampleID reports a lookup of an unregistered sample.
type ErrUnknownSampleID struct {
	ID ommx.SampleID
}

func (e ErrUnknownSampleID) Error() string {
	return fmt.Sprintf("unknown sample ID %d", e.ID)
}
