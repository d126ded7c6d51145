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

// Package state holds variable assignments and multi-sample containers.
package state

import (
	ommx "github.com/Jij-Inc/ommx-sub000"
	"github.com/Jij-Inc/ommx-sub000/internal/utils"
)

// State maps decision variables to values. A state is allowed to be partial;
// evaluation reports an error only when a required variable is missing.
type State map[ommx.VariableID]float64

// Clone returns a copy of the state.
func (s State) Clone() State {
	out := make(State, len(s))
	for id, v := range s {
		out[id] = v
	}
	return out
}

// SortedIDs returns the assigned variable IDs in ascending order.
func (s State) SortedIDs() []ommx.VariableID {
	return utils.SortedKeys(s)
}

// Equal reports whether both states assign exactly the same values.
func (s State) Equal(other State) bool {
	if len(s) != len(other) {
		return false
	}
	for id, v := range s {
		w, ok := other[id]
		if !ok || v != w {
			return false
		}
	}
	return true
}
