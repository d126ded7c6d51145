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
	"fmt"
	"math/bits"

	ommx "github.com/Jij-Inc/ommx-sub000"
	"github.com/Jij-Inc/ommx-sub000/logger"
	"github.com/Jij-Inc/ommx-sub000/polynomial"
)

// LogEncode expresses a bounded integer variable over fresh binary
// variables: for x in [lo, hi] with U = hi - lo and n = ⌈log2(U+1)⌉ it
// allocates n binaries b_i and returns
//
//	lo + Σ_{i<n-1} 2^i b_i + (U - 2^{n-1} + 1) b_{n-1}
//
// whose range is exactly [lo, hi]. A single-point bound returns the
// constant without allocating anything. The caller installs the encoding
// with Substitute.
func (i *Instance) LogEncode(id ommx.VariableID, atol ommx.ATol) (polynomial.Function, error) {
	v, ok := i.decisionVariables[id]
	if !ok {
		return polynomial.Zero(), ErrUndefinedVariableID{ID: id}
	}
	if v.Kind() != Integer {
		return polynomial.Zero(), fmt.Errorf("log encoding requires an integer variable, %d is %s", id, v.Kind())
	}
	if !v.Bound().IsFinite() {
		return polynomial.Zero(), fmt.Errorf("log encoding requires a finite bound, variable %d has %s", id, v.Bound())
	}
	ib, err := v.Bound().AsIntegerBound(atol)
	if err != nil {
		return polynomial.Zero(), ErrNoFeasibleInteger{ID: id}
	}
	lo, hi := ib.Lower(), ib.Upper()
	if lo == hi {
		return polynomial.Constant(lo), nil
	}

	u := uint64(hi - lo)
	n := bits.Len64(u)
	encoding := polynomial.NewLinear()
	encoding.AddConstant(lo)
	unit := mustBound(0, 1)
	for k := 0; k < n; k++ {
		bid := i.nextVariableID()
		b, err := NewDecisionVariable(bid, Binary, unit, atol)
		if err != nil {
			return polynomial.Zero(), err
		}
		b.Metadata.Name = "ommx.log_encode"
		b.Metadata.Subscripts = []int64{int64(id), int64(k)}
		if err := i.AddDecisionVariable(b); err != nil {
			return polynomial.Zero(), err
		}
		coeff := float64(uint64(1) << uint(k))
		if k == n-1 {
			coeff = float64(u) - float64(uint64(1)<<uint(n-1)) + 1
		}
		encoding.AddVariable(bid, coeff)
	}
	logger.Logger().Debug().
		Uint64("variable", uint64(id)).
		Int("bits", n).
		Msg("log encoded integer variable")
	return polynomial.FromLinear(encoding), nil
}
