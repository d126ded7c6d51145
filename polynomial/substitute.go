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
	ommx "github.com/Jij-Inc/ommx-sub000"
)

// Substitute replaces variables by functions. Every monomial is rebuilt as
// coefficient * Π replacement(id)^multiplicity, where a variable without a
// replacement stands for itself. Substituting a constant function is
// equivalent to partial evaluation with that value.
func (f Function) Substitute(replacements map[ommx.VariableID]Function) Function {
	if len(replacements) == 0 {
		return f.Clone()
	}
	touched := false
	for id := range f.RequiredIDs() {
		if _, ok := replacements[id]; ok {
			touched = true
			break
		}
	}
	if !touched {
		return f.Clone()
	}

	acc := Zero()
	f.Each(func(m MonomialDyn, c float64) {
		term := Constant(c)
		m.Visit(func(id ommx.VariableID, exp int) {
			base, ok := replacements[id]
			if !ok {
				base = Variable(id)
			}
			term = term.Mul(base.Pow(exp))
		})
		acc = acc.Add(term)
	})
	return acc
}

// Pow raises f to a non-negative integer power by repeated multiplication.
func (f Function) Pow(n int) Function {
	if n <= 0 {
		return Constant(1)
	}
	out := f.Clone()
	for i := 1; i < n; i++ {
		out = out.Mul(f)
	}
	return out
}
