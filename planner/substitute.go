// Copyright 2022 Molecula Corp. All rights reserved.

package planner

import (
	"github.com/featurebasedb/planopt/planner/types"
)

// SubstituteFragment replaces the target fragment of plan (located by
// reference) with a semantically equivalent replacement fragment, for
// example a materialized view scan standing in for the subtree that
// computed it. The replacement's locally generated identities are
// reconciled back onto the identities the rest of the plan already
// depends on; if the schemas already agree the replacement is spliced in
// directly, otherwise it is wrapped in a projection exposing the
// reconciled schema.
func SubstituteFragment(plan, target, replacement types.PlanOperator) (types.PlanOperator, error) {
	reconciled, err := ReconcileSchemas(target.Schema(), replacement.Schema())
	if err != nil {
		return nil, err
	}

	sub := replacement
	if !schemasEqual(reconciled, replacement.Schema()) {
		exprs := make([]types.PlanExpression, len(reconciled))
		for i, e := range reconciled {
			exprs[i] = e
		}
		sub = NewPlanOpProjection(exprs, replacement)
	}

	result, _, err := TransformPlanOp(plan, func(n types.PlanOperator) (types.PlanOperator, bool, error) {
		if n == target {
			return sub, false, nil
		}
		return n, true, nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
