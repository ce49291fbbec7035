// Copyright 2022 Molecula Corp. All rights reserved.

package planner

import (
	"github.com/featurebasedb/planopt/planner/types"
)

// PartitionFilters returns the subsequence of predicates whose referenced
// attribute set is non-empty and a subset of partitionAttrs. Predicates
// referencing no attributes at all (constants) are excluded. Order is
// preserved from the input.
func PartitionFilters(partitionAttrs types.Schema, predicates []types.PlanExpression) []types.PlanExpression {
	partition := make(map[types.ExprID]struct{})
	for _, attr := range partitionAttrs {
		partition[attr.ExprID()] = struct{}{}
	}

	result := make([]types.PlanExpression, 0)
	for _, pred := range predicates {
		refs := expressionAttrIDs(pred)
		if len(refs) == 0 {
			continue
		}
		subset := true
		for id := range refs {
			if _, ok := partition[id]; !ok {
				subset = false
				break
			}
		}
		if subset {
			result = append(result, pred)
		}
	}
	return result
}

// DataFilters returns predicates with any dynamic pruning predicate
// removed; everything else passes through unchanged regardless of which
// attributes it references, so a predicate can appear in both the
// partition filter and data filter outputs. Order is preserved from the
// input.
func DataFilters(partitionAttrs types.Schema, predicates []types.PlanExpression) []types.PlanExpression {
	result := make([]types.PlanExpression, 0)
	for _, pred := range predicates {
		if _, ok := pred.(*dynamicPruningPlanExpression); ok {
			continue
		}
		result = append(result, pred)
	}
	return result
}
