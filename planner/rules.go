// Copyright 2022 Molecula Corp. All rights reserved.

package planner

import (
	"context"

	"github.com/featurebasedb/planopt/planner/types"
)

// PushdownScanFilters splits the predicate of a filter sitting directly on
// a relation scan into its conjuncts, classifies them against the
// relation's partition attribute set, and pushes the classified lists into
// the scan. The filter operator is removed; data filters are re-checked by
// the scan itself.
func PushdownScanFilters(ctx context.Context, o *Optimizer, n types.PlanOperator) (types.PlanOperator, bool, error) {
	return TransformPlanOp(n, func(node types.PlanOperator) (types.PlanOperator, bool, error) {
		filter, ok := node.(*PlanOpFilter)
		if !ok {
			return node, true, nil
		}
		scan, ok := filter.ChildOp.(*PlanOpRelScan)
		if !ok {
			return node, true, nil
		}

		partitionAttrs, err := o.catalog.PartitionAttrs(ctx, scan.relationName)
		if err != nil {
			return nil, true, err
		}

		predicates := splitOnAnd(filter.Predicate)
		partitionFilters := PartitionFilters(partitionAttrs, predicates)
		dataFilters := DataFilters(partitionAttrs, predicates)

		pf := make([]types.PlanExpression, 0, len(scan.partitionFilters)+len(partitionFilters))
		pf = append(pf, scan.partitionFilters...)
		pf = append(pf, partitionFilters...)

		df := make([]types.PlanExpression, 0, len(scan.dataFilters)+len(dataFilters))
		df = append(df, scan.dataFilters...)
		df = append(df, dataFilters...)

		return scan.WithPushedFilters(pf, df), false, nil
	})
}

// MergeFilters collapses adjacent filter operators into a single filter
// over the conjunction of their predicates.
func MergeFilters(ctx context.Context, o *Optimizer, n types.PlanOperator) (types.PlanOperator, bool, error) {
	return TransformPlanOp(n, func(node types.PlanOperator) (types.PlanOperator, bool, error) {
		filter, ok := node.(*PlanOpFilter)
		if !ok {
			return node, true, nil
		}
		child, ok := filter.ChildOp.(*PlanOpFilter)
		if !ok {
			return node, true, nil
		}
		return NewPlanOpFilter(joinExprsWithAnd(filter.Predicate, child.Predicate), child.ChildOp), false, nil
	})
}

// RemovePassthroughProjections removes projections that expose exactly
// their child's schema, position by position, with the same identities.
func RemovePassthroughProjections(ctx context.Context, o *Optimizer, n types.PlanOperator) (types.PlanOperator, bool, error) {
	return TransformPlanOp(n, func(node types.PlanOperator) (types.PlanOperator, bool, error) {
		projection, ok := node.(*PlanOpProjection)
		if !ok {
			return node, true, nil
		}
		if !schemasEqual(projection.Schema(), projection.ChildOp.Schema()) {
			return node, true, nil
		}
		return projection.ChildOp, false, nil
	})
}
