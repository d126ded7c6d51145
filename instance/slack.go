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
	ommx "github.com/Jij-Inc/ommx-sub000"
	"github.com/Jij-Inc/ommx-sub000/logger"
	"github.com/Jij-Inc/ommx-sub000/polynomial"
)

// slackAnalysis bounds an inequality's left-hand side over the integral
// lattice spanned by its content factor.
type slackAnalysis struct {
	constraint *Constraint
	factor     float64
	bound      polynomial.Bound
}

func (i *Instance) analyzeInequality(cid ommx.ConstraintID, atol ommx.ATol) (*slackAnalysis, error) {
	c, ok := i.constraints[cid]
	if !ok {
		return nil, ErrUnknownConstraintID{ID: cid}
	}
	if c.Equality() != LessThanOrEqualToZero {
		return nil, ErrNotInequality{ID: cid}
	}
	for _, vid := range c.Function().RequiredIDs().Sorted() {
		kind := i.decisionVariables[vid].Kind()
		if kind != Binary && kind != Integer {
			return nil, ErrContinuousInInequality{ID: vid}
		}
	}
	factor, err := c.Function().ContentFactor()
	if err != nil {
		return nil, err
	}
	scaled, err := c.Function().MulScalar(factor)
	if err != nil {
		return nil, err
	}
	bound, err := scaled.EvaluateBound(i.Bounds()).AsIntegerBound(atol)
	if err != nil {
		return nil, ErrInfeasible{ID: cid}
	}
	return &slackAnalysis{constraint: c, factor: factor, bound: bound}, nil
}

// ConvertInequalityToEqualityWithIntegerSlack rewrites f(x) <= 0 into
// f(x) + s/a = 0 with a fresh integer slack s, where a is f's content
// factor. A constraint whose bound proves it always holds is relaxed
// instead; one that can never hold fails with ErrInfeasible.
func (i *Instance) ConvertInequalityToEqualityWithIntegerSlack(cid ommx.ConstraintID, maxRange float64, atol ommx.ATol) error {
	a, err := i.analyzeInequality(cid, atol)
	if err != nil {
		return err
	}
	switch {
	case a.bound.Lower() > 0:
		return ErrInfeasible{ID: cid}
	case a.bound.Upper() <= 0:
		logger.Logger().Debug().
			Uint64("constraint", uint64(cid)).
			Msg("inequality always satisfied, relaxing instead of adding slack")
		return i.RelaxConstraint(cid, "convert_inequality_to_equality_with_integer_slack", nil)
	}

	slackBound := mustBound(0, -a.bound.Lower())
	if slackBound.Width() > maxRange {
		return ErrSlackRangeExceeded{Width: slackBound.Width(), Limit: maxRange}
	}
	slackID, err := i.addSlackVariable(cid, slackBound, atol)
	if err != nil {
		return err
	}
	slack, err := polynomial.Variable(slackID).MulScalar(1 / a.factor)
	if err != nil {
		return err
	}
	c := a.constraint
	i.constraints[cid] = &Constraint{
		id:       cid,
		equality: EqualToZero,
		function: c.Function().Add(slack),
		Metadata: c.Metadata,
	}
	return nil
}

// AddIntegerSlackToInequality keeps f(x) <= 0 but tightens it to
// f(x) + b*s <= 0 with s an integer in [0, slackUpper] and
// b = -lower(f)/slackUpper. It returns the slack coefficient b, or
// added=false when the constraint was always satisfied and got relaxed.
func (i *Instance) AddIntegerSlackToInequality(cid ommx.ConstraintID, slackUpper int64, atol ommx.ATol) (b float64, added bool, err error) {
	a, err := i.analyzeInequality(cid, atol)
	if err != nil {
		return 0, false, err
	}
	switch {
	case a.bound.Lower() > 0:
		return 0, false, ErrInfeasible{ID: cid}
	case a.bound.Upper() <= 0:
		return 0, false, i.RelaxConstraint(cid, "add_integer_slack_to_inequality", nil)
	}

	// the bound was computed for factor*f, scale back to f
	b = -a.bound.Lower() / a.factor / float64(slackUpper)
	slackBound := mustBound(0, float64(slackUpper))
	slackID, err := i.addSlackVariable(cid, slackBound, atol)
	if err != nil {
		return 0, false, err
	}
	slack, err := polynomial.Variable(slackID).MulScalar(b)
	if err != nil {
		return 0, false, err
	}
	c := a.constraint
	i.constraints[cid] = &Constraint{
		id:       cid,
		equality: LessThanOrEqualToZero,
		function: c.Function().Add(slack),
		Metadata: c.Metadata,
	}
	return b, true, nil
}

func (i *Instance) addSlackVariable(cid ommx.ConstraintID, bound polynomial.Bound, atol ommx.ATol) (ommx.VariableID, error) {
	slackID := i.nextVariableID()
	v, err := NewDecisionVariable(slackID, Integer, bound, atol)
	if err != nil {
		return 0, err
	}
	v.Metadata.Name = "ommx.slack"
	v.Metadata.Subscripts = []int64{int64(cid)}
	if err := i.AddDecisionVariable(v); err != nil {
		return 0, err
	}
	logger.Logger().Debug().
		Uint64("constraint", uint64(cid)).
		Uint64("slack", uint64(slackID)).
		Str("bound", bound.String()).
		Msg("allocated integer slack variable")
	return slackID, nil
}
