// Copyright 2022 Molecula Corp. All rights reserved.

package planner

import (
	"testing"

	"github.com/featurebasedb/planopt/planner/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubstituteFragment(t *testing.T) {
	catalog := newTestCatalog()

	t.Run("materialized-view", func(t *testing.T) {
		scan := NewPlanOpRelScan("orders", catalog.schemas["orders"])
		region := scan.Schema()[1]
		amount := scan.Schema()[2]
		target := NewPlanOpFilter(NewBinOp(amount, OpGt, NewLiteral(int64(10), types.NewDataTypeInt())), scan)
		plan := NewPlanOpProjection([]types.PlanExpression{region, amount}, target)

		// the view scan exposes the same column names under identities of
		// its own making
		mv := NewPlanOpRelScan("orders_mv", types.Schema{
			NewAttrRef("_id", types.NewDataTypeID(), false),
			NewAttrRef("region", types.NewDataTypeString(), true),
			NewAttrRef("amount", types.NewDataTypeInt(), true),
		})

		result, err := SubstituteFragment(plan, target, mv)
		require.NoError(t, err)

		root, ok := result.(*PlanOpProjection)
		require.True(t, ok)
		sub, ok := root.ChildOp.(*PlanOpProjection)
		require.True(t, ok)
		assert.Same(t, types.PlanOperator(mv), sub.ChildOp)

		// the splice exposes the identities the rest of the plan was
		// built against
		for i, e := range target.Schema() {
			assert.Equal(t, e.Name(), sub.Schema()[i].Name())
			assert.Equal(t, e.ExprID(), sub.Schema()[i].ExprID())
		}
		assert.True(t, schemasEqual(plan.Schema(), result.Schema()))

		// the submitted plan is untouched
		assert.Same(t, types.PlanOperator(target), plan.ChildOp)
	})

	t.Run("direct-splice", func(t *testing.T) {
		scan := NewPlanOpRelScan("orders", catalog.schemas["orders"])
		amount := scan.Schema()[2]
		target := NewPlanOpFilter(NewBinOp(amount, OpGt, NewLiteral(int64(10), types.NewDataTypeInt())), scan)
		plan := NewPlanOpRelAlias("o", target)

		// a replacement already carrying the target's identities goes in
		// without a wrapping projection
		replacement := NewPlanOpFilter(NewBinOp(amount, OpGt, NewLiteral(int64(10), types.NewDataTypeInt())), scan)

		result, err := SubstituteFragment(plan, target, replacement)
		require.NoError(t, err)

		root, ok := result.(*PlanOpRelAlias)
		require.True(t, ok)
		assert.Same(t, types.PlanOperator(replacement), root.ChildOp)
	})

	t.Run("arity-mismatch", func(t *testing.T) {
		scan := NewPlanOpRelScan("orders", catalog.schemas["orders"])
		narrow := NewPlanOpRelScan("orders_mv", types.Schema{
			NewAttrRef("_id", types.NewDataTypeID(), false),
		})

		_, err := SubstituteFragment(scan, scan, narrow)
		require.Error(t, err)
	})
}
