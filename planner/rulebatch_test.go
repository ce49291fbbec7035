// Copyright 2022 Molecula Corp. All rights reserved.

package planner

import (
	"context"
	"strings"
	"testing"

	"github.com/featurebasedb/planopt"
	"github.com/featurebasedb/planopt/errors"
	"github.com/featurebasedb/planopt/logger"
	"github.com/featurebasedb/planopt/planner/types"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func planDepth(n types.PlanOperator) int {
	depth := 1
	for _, c := range n.Children() {
		if d := planDepth(c) + 1; d > depth {
			depth = d
		}
	}
	return depth
}

// growToDepth returns a rule that wraps the plan in a trivial filter until
// it reaches the given depth, then reports no change.
func growToDepth(depth int, invocations *int) RuleFunc {
	return func(ctx context.Context, o *Optimizer, n types.PlanOperator) (types.PlanOperator, bool, error) {
		*invocations++
		if planDepth(n) >= depth {
			return n, true, nil
		}
		return NewPlanOpFilter(NewLiteral(true, types.NewDataTypeBool()), n), false, nil
	}
}

func TestOnceBatch(t *testing.T) {
	var order []string
	record := func(name string) RuleFunc {
		return func(ctx context.Context, o *Optimizer, n types.PlanOperator) (types.PlanOperator, bool, error) {
			order = append(order, name)
			return n, true, nil
		}
	}

	b := NewOnceBatch("record", record("first"), record("second"), record("third"))
	o := NewOptimizer(planopt.NewNopCatalog(), []*RuleBatch{b})

	_, err := o.OptimizePlan(context.Background(), NewPlanOpNullTable())
	require.NoError(t, err)
	assert.Equal(t, []string{"first", "second", "third"}, order)
}

func TestFixedPointBatch(t *testing.T) {
	t.Run("TerminatesOnConvergence", func(t *testing.T) {
		invocations := 0
		b := NewFixedPointBatch("grow", 10, growToDepth(3, &invocations))
		o := NewOptimizer(planopt.NewNopCatalog(), []*RuleBatch{b})

		result, err := o.OptimizePlan(context.Background(), NewPlanOpNullTable())
		require.NoError(t, err)

		assert.Equal(t, 3, planDepth(result))
		// two changing iterations plus the confirming one; the rule must
		// not run again after the plan has stabilized
		assert.Equal(t, 3, invocations)
		assert.Empty(t, result.Warnings())
	})

	t.Run("ConvergenceIsStructural", func(t *testing.T) {
		// the rule always reports a change but rebuilds an identical plan;
		// structural equality must stop the iteration anyway
		invocations := 0
		rebuild := func(ctx context.Context, o *Optimizer, n types.PlanOperator) (types.PlanOperator, bool, error) {
			invocations++
			filter, ok := n.(*PlanOpFilter)
			if !ok {
				return n, true, nil
			}
			return NewPlanOpFilter(filter.Predicate, filter.ChildOp), false, nil
		}

		b := NewFixedPointBatch("rebuild", 10, rebuild)
		o := NewOptimizer(planopt.NewNopCatalog(), []*RuleBatch{b})

		plan := NewPlanOpFilter(NewLiteral(true, types.NewDataTypeBool()), NewPlanOpNullTable())
		_, err := o.OptimizePlan(context.Background(), plan)
		require.NoError(t, err)
		assert.Equal(t, 1, invocations)
	})

	t.Run("NonConvergenceIsObservable", func(t *testing.T) {
		grow := func(ctx context.Context, o *Optimizer, n types.PlanOperator) (types.PlanOperator, bool, error) {
			return NewPlanOpFilter(NewLiteral(true, types.NewDataTypeBool()), n), false, nil
		}

		buf := logger.NewBufferLogger()
		before := testutil.ToFloat64(batchNonConvergence.WithLabelValues("runaway"))

		b := NewFixedPointBatch("runaway", 3, grow)
		o := NewOptimizer(planopt.NewNopCatalog(), []*RuleBatch{b}, WithLogger(buf))

		result, err := o.OptimizePlan(context.Background(), NewPlanOpNullTable())
		require.NoError(t, err)

		// best effort: the last produced plan is used
		assert.Equal(t, 4, planDepth(result))

		logged, err := buf.ReadAll()
		require.NoError(t, err)
		assert.Contains(t, string(logged), "batch 'runaway' did not converge after 3 iterations")

		require.Len(t, result.Warnings(), 1)
		assert.Contains(t, result.Warnings()[0], "did not converge")

		after := testutil.ToFloat64(batchNonConvergence.WithLabelValues("runaway"))
		assert.Equal(t, before+1, after)
	})
}

func TestRuleErrorPropagation(t *testing.T) {
	boom := func(ctx context.Context, o *Optimizer, n types.PlanOperator) (types.PlanOperator, bool, error) {
		return nil, true, planopt.NewErrInternalf("unresolvable reference '%s'", "x")
	}
	noop := func(ctx context.Context, o *Optimizer, n types.PlanOperator) (types.PlanOperator, bool, error) {
		return n, true, nil
	}

	b := NewOnceBatch("failing", noop, boom)
	o := NewOptimizer(planopt.NewNopCatalog(), []*RuleBatch{b})

	_, err := o.OptimizePlan(context.Background(), NewPlanOpNullTable())
	require.Error(t, err)

	// batch name and rule index are attached, the cause and its code are
	// preserved
	assert.True(t, strings.Contains(err.Error(), "batch 'failing' rule [1]"))
	assert.True(t, errors.Is(err, planopt.ErrInternal))
}
