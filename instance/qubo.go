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

// checkUnconstrainedBinary verifies the QUBO/HUBO preconditions: a
// minimization instance, no active constraints, and a purely binary
// objective.
func (i *Instance) checkUnconstrainedBinary() error {
	if i.sense != Minimize {
		return ErrRequiresMinimize{}
	}
	if len(i.constraints) > 0 {
		return ErrRequiresNoConstraints{}
	}
	for _, id := range i.objective.RequiredIDs().Sorted() {
		if i.decisionVariables[id].Kind() != Binary {
			return ErrRequiresBinaryOnly{ID: id}
		}
	}
	return nil
}

// AsQUBOFormat lowers the objective into the dense-dictionary QUBO form:
// degree-1 terms land on the diagonal, degree-2 terms off-diagonal, and the
// empty monomial becomes the returned constant. Entries within machine
// epsilon of zero are dropped. Callers squaring binary variables should
// first apply ReduceBinaryPower to the objective.
func (i *Instance) AsQUBOFormat() (map[ommx.VariableIDPair]float64, float64, error) {
	if err := i.checkUnconstrainedBinary(); err != nil {
		return nil, 0, err
	}
	if deg := i.objective.Degree(); deg > 2 {
		return nil, 0, ErrUnsupportedDegree{Degree: deg}
	}

	qubo := make(map[ommx.VariableIDPair]float64)
	constant := 0.0
	i.objective.Each(func(m polynomial.MonomialDyn, c float64) {
		if math.Abs(c) <= machineEpsilon {
			return
		}
		switch m.Degree() {
		case 0:
			constant += c
		case 1:
			id, _ := m.AsLinear()
			qubo[ommx.NewVariableIDPair(id, id)] += c
		default:
			pair, _ := m.AsQuadraticPair()
			qubo[pair] += c
		}
	})
	return qubo, constant, nil
}

// AsHUBOFormat lowers the objective into the higher-order dictionary form,
// keeping arbitrary-degree monomials as sorted multisets.
func (i *Instance) AsHUBOFormat() (map[polynomial.MonomialDyn]float64, float64, error) {
	if err := i.checkUnconstrainedBinary(); err != nil {
		return nil, 0, err
	}
	hubo := make(map[polynomial.MonomialDyn]float64)
	constant := 0.0
	i.objective.Each(func(m polynomial.MonomialDyn, c float64) {
		if math.Abs(c) <= machineEpsilon {
			return
		}
		if m.Degree() == 0 {
			constant += c
			return
		}
		hubo[m] += c
	})
	return hubo, constant, nil
}

const machineEpsilon = 2.220446049250313e-16
