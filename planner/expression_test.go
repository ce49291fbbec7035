// Copyright 2022 Molecula Corp. All rights reserved.

package planner

import (
	"sync"
	"testing"

	"github.com/featurebasedb/planopt/planner/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

func TestAttrRef(t *testing.T) {
	t.Run("String", func(t *testing.T) {
		tests := []struct {
			name string
			expr types.NamedPlanExpression
			want string
		}{
			{
				name: "unqualified",
				expr: NewAttrRef("region", types.NewDataTypeString(), false),
				want: "region",
			},
			{
				name: "qualified",
				expr: NewAttrRef("region", types.NewDataTypeString(), false, "orders"),
				want: "orders.region",
			},
			{
				name: "qualifier-chain",
				expr: NewAttrRef("region", types.NewDataTypeString(), false, "db", "o"),
				want: "db.o.region",
			},
		}
		for _, test := range tests {
			t.Run(test.name, func(t *testing.T) {
				assert.Equal(t, test.want, test.expr.String())
			})
		}
	})

	t.Run("WithQualifierPreservesIdentity", func(t *testing.T) {
		attr := NewAttrRef("region", types.NewDataTypeString(), false)
		requalified := attr.WithQualifier("o")

		assert.Equal(t, attr.ExprID(), requalified.ExprID())
		assert.Equal(t, attr.Name(), requalified.Name())
		assert.Equal(t, []string{"o"}, requalified.Qualifier())
		// the original is untouched
		assert.Empty(t, attr.Qualifier())
	})

	t.Run("FreshIdentityPerConstruction", func(t *testing.T) {
		a := NewAttrRef("a", types.NewDataTypeInt(), true)
		b := NewAttrRef("a", types.NewDataTypeInt(), true)
		assert.NotEqual(t, a.ExprID(), b.ExprID())
	})
}

func TestAlias(t *testing.T) {
	child := NewAttrRef("amount", types.NewDataTypeInt(), true)
	alias := NewAlias("total", child)

	assert.Equal(t, "total", alias.Name())
	assert.NotEqual(t, child.ExprID(), alias.ExprID())
	assert.Equal(t, "amount as total", alias.String())
	assert.Equal(t, types.BaseTypeInt, alias.Type().BaseTypeName())

	t.Run("WithChildrenPreservesIdentity", func(t *testing.T) {
		replaced, err := alias.WithChildren(NewLiteral(int64(1), types.NewDataTypeInt()))
		require.NoError(t, err)
		named, ok := replaced.(types.NamedPlanExpression)
		require.True(t, ok)
		assert.Equal(t, alias.ExprID(), named.ExprID())
	})
}

func TestSplitOnAnd(t *testing.T) {
	a := NewAttrRef("a", types.NewDataTypeInt(), true)
	p1 := NewBinOp(a, OpEq, NewLiteral(int64(1), types.NewDataTypeInt()))
	p2 := NewBinOp(a, OpGt, NewLiteral(int64(2), types.NewDataTypeInt()))
	p3 := NewBinOp(a, OpLt, NewLiteral(int64(9), types.NewDataTypeInt()))

	t.Run("single", func(t *testing.T) {
		got := splitOnAnd(p1)
		require.Len(t, got, 1)
		assert.Same(t, p1, got[0])
	})

	t.Run("nested", func(t *testing.T) {
		got := splitOnAnd(joinExprsWithAnd(p1, p2, p3))
		require.Len(t, got, 3)
		assert.Same(t, p1, got[0])
		assert.Same(t, p2, got[1])
		assert.Same(t, p3, got[2])
	})

	t.Run("or-is-opaque", func(t *testing.T) {
		pred := NewBinOp(p1, OpOr, p2)
		got := splitOnAnd(pred)
		require.Len(t, got, 1)
		assert.Same(t, pred, got[0])
	})
}

func TestNewExprIDConcurrent(t *testing.T) {
	const goroutines = 16
	const perGoroutine = 1000

	var mu sync.Mutex
	seen := make(map[types.ExprID]struct{}, goroutines*perGoroutine)

	var g errgroup.Group
	for i := 0; i < goroutines; i++ {
		g.Go(func() error {
			ids := make([]types.ExprID, 0, perGoroutine)
			for j := 0; j < perGoroutine; j++ {
				ids = append(ids, types.NewExprID())
			}
			mu.Lock()
			defer mu.Unlock()
			for _, id := range ids {
				seen[id] = struct{}{}
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())
	assert.Equal(t, goroutines*perGoroutine, len(seen))
}
