// Copyright 2022 Molecula Corp. All rights reserved.

package planner

import (
	"testing"

	"github.com/featurebasedb/planopt/planner/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPartitionFilters(t *testing.T) {
	a := NewAttrRef("a", types.NewDataTypeInt(), true)
	b := NewAttrRef("b", types.NewDataTypeInt(), true)

	p1 := NewBinOp(a, OpEq, NewLiteral(int64(1), types.NewDataTypeInt()))
	p2 := NewBinOp(NewLiteral(int64(1), types.NewDataTypeInt()), OpEq, NewLiteral(int64(2), types.NewDataTypeInt()))
	p3 := NewBinOp(a, OpLt, b)

	tests := []struct {
		name           string
		partitionAttrs types.Schema
		predicates     []types.PlanExpression
		want           []types.PlanExpression
	}{
		{
			name:           "subset-only",
			partitionAttrs: types.Schema{a},
			predicates:     []types.PlanExpression{p1, p2, p3},
			want:           []types.PlanExpression{p1},
		},
		{
			name:           "all-attrs-partitioning",
			partitionAttrs: types.Schema{a, b},
			predicates:     []types.PlanExpression{p1, p3},
			want:           []types.PlanExpression{p1, p3},
		},
		{
			name:           "no-partition-attrs",
			partitionAttrs: types.Schema{},
			predicates:     []types.PlanExpression{p1, p2, p3},
			want:           []types.PlanExpression{},
		},
		{
			name:           "constants-excluded",
			partitionAttrs: types.Schema{a, b},
			predicates:     []types.PlanExpression{p2},
			want:           []types.PlanExpression{},
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got := PartitionFilters(test.partitionAttrs, test.predicates)
			require.Len(t, got, len(test.want))
			for i := range test.want {
				assert.Same(t, test.want[i], got[i])
			}
		})
	}
}

func TestDataFilters(t *testing.T) {
	a := NewAttrRef("a", types.NewDataTypeInt(), true)
	b := NewAttrRef("b", types.NewDataTypeInt(), true)

	p1 := NewBinOp(a, OpEq, NewLiteral(int64(1), types.NewDataTypeInt()))
	p3 := NewBinOp(a, OpLt, b)
	dp := NewDynamicPruningFilter(a, NewPlanOpNullTable())

	t.Run("removes-dynamic-pruning", func(t *testing.T) {
		got := DataFilters(types.Schema{a}, []types.PlanExpression{p1, dp, p3})
		require.Len(t, got, 2)
		assert.Same(t, p1, got[0])
		assert.Same(t, p3, got[1])
	})

	t.Run("keeps-everything-else", func(t *testing.T) {
		got := DataFilters(types.Schema{a}, []types.PlanExpression{p3, p1})
		require.Len(t, got, 2)
		assert.Same(t, p3, got[0])
		assert.Same(t, p1, got[1])
	})
}

// a predicate on a partition column is deliberately both a partition filter
// and a data filter; a dynamic pruning predicate is only a partition filter
func TestFilterSplitIsNotExclusive(t *testing.T) {
	region := NewAttrRef("region", types.NewDataTypeString(), false)
	amount := NewAttrRef("amount", types.NewDataTypeInt(), true)
	partitionAttrs := types.Schema{region}

	p1 := NewBinOp(region, OpEq, NewLiteral("east", types.NewDataTypeString()))
	p2 := NewBinOp(amount, OpGt, NewLiteral(int64(10), types.NewDataTypeInt()))
	dp := NewDynamicPruningFilter(region, NewPlanOpNullTable())
	predicates := []types.PlanExpression{p1, p2, dp}

	partition := PartitionFilters(partitionAttrs, predicates)
	data := DataFilters(partitionAttrs, predicates)

	require.Len(t, partition, 2)
	assert.Same(t, p1, partition[0])
	assert.Same(t, dp, partition[1])

	require.Len(t, data, 2)
	assert.Same(t, p1, data[0])
	assert.Same(t, p2, data[1])
}
