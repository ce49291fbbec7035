// Copyright 2022 Molecula Corp. All rights reserved.

package planner

import (
	"github.com/featurebasedb/planopt"
	"github.com/featurebasedb/planopt/planner/types"
)

// ReconcileSchemas merges two schemas produced by semantically equivalent
// plan fragments into the one the downstream plan should expose. left is
// the authoritative target schema, right is the schema actually produced
// by a rewritten fragment; names must already agree positionally, this is
// a merge, not a join. For every position the result keeps the computation
// from right but carries the name and identity from left, so consumers
// that resolve columns by identity keep working after the fragment is
// spliced in. Pure, and a fixed point of itself: reconciling a result
// against the same left again returns it unchanged.
func ReconcileSchemas(left, right types.Schema) (types.Schema, error) {
	if len(left) != len(right) {
		return nil, planopt.NewErrReconcileArityMismatch(len(left), len(right))
	}

	result := make(types.Schema, len(left))
	for i := range left {
		l, r := left[i], right[i]

		if alias, ok := r.(*aliasPlanExpression); ok {
			if l.Name() == alias.Name() && l.ExprID() != alias.ExprID() {
				// keep the computation under the alias, rekey it to the
				// target identity
				result[i] = newAliasPlanExpressionWithID(l.ExprID(), l.Name(), alias.expr, l.Qualifier()...)
				continue
			}
		}

		if l.Name() != r.Name() || l.ExprID() != r.ExprID() {
			// wrap, don't rename in place, so the right hand computation is
			// not lost
			result[i] = newAliasPlanExpressionWithID(l.ExprID(), l.Name(), r, l.Qualifier()...)
			continue
		}

		result[i] = r
	}
	return result, nil
}
