// Copyright 2022 Molecula Corp. All rights reserved.

package planner

import (
	"context"
	"fmt"

	"github.com/featurebasedb/planopt"
	"github.com/featurebasedb/planopt/planner/types"
)

// RuleFunc is the prototype for all rewrite rules. A rule is given the plan
// op graph and returns either a transformed graph or the original graph; if
// there was no transformation the bool will be true, and an error if there
// was an error. Rules never mutate the graph in place and must be
// idempotent at their own fixed point.
type RuleFunc func(ctx context.Context, o *Optimizer, n types.PlanOperator) (types.PlanOperator, bool, error)

type batchStrategy int

const (
	// every rule in the batch runs exactly once, in list order
	batchStrategyOnce batchStrategy = iota
	// the full rule list runs repeatedly until the plan stops changing or
	// the iteration bound is reached
	batchStrategyFixedPoint
)

// RuleBatch is a named, ordered group of rewrite rules sharing an execution
// strategy.
type RuleBatch struct {
	name          string
	strategy      batchStrategy
	maxIterations int
	rules         []RuleFunc
}

// NewOnceBatch returns a batch that runs its rules in a single pass.
func NewOnceBatch(name string, rules ...RuleFunc) *RuleBatch {
	return &RuleBatch{
		name:     name,
		strategy: batchStrategyOnce,
		rules:    rules,
	}
}

// NewFixedPointBatch returns a batch that runs its rules repeatedly until
// an iteration produces a plan structurally identical to its input, or
// maxIterations is reached, whichever comes first.
func NewFixedPointBatch(name string, maxIterations int, rules ...RuleFunc) *RuleBatch {
	return &RuleBatch{
		name:          name,
		strategy:      batchStrategyFixedPoint,
		maxIterations: maxIterations,
		rules:         rules,
	}
}

func (b *RuleBatch) Name() string {
	return b.name
}

// executeBatch runs a batch over the plan according to its strategy.
func (o *Optimizer) executeBatch(ctx context.Context, b *RuleBatch, plan types.PlanOperator) (types.PlanOperator, error) {
	switch b.strategy {
	case batchStrategyOnce:
		return o.runRuleList(ctx, b, plan)

	case batchStrategyFixedPoint:
		result := plan
		for i := 0; i < b.maxIterations; i++ {
			next, err := o.runRuleList(ctx, b, result)
			if err != nil {
				return nil, err
			}
			if plansEqual(result, next) {
				return next, nil
			}
			result = next
		}
		// hitting the bound is not an error; the last plan is used, but a
		// rule in the batch is likely not idempotent, so make it observable
		o.logger.Warnf("batch '%s' did not converge after %d iterations", b.name, b.maxIterations)
		batchNonConvergence.WithLabelValues(b.name).Inc()
		result.AddWarning(fmt.Sprintf("batch '%s' did not converge after %d iterations", b.name, b.maxIterations))
		return result, nil

	default:
		return nil, planopt.NewErrInternalf("unexpected batch strategy '%d'", b.strategy)
	}
}

// runRuleList runs the batch's rules once, in list order, each consuming
// the previous rule's output plan.
func (o *Optimizer) runRuleList(ctx context.Context, b *RuleBatch, plan types.PlanOperator) (types.PlanOperator, error) {
	result := plan
	for i, rule := range b.rules {
		next, same, err := rule(ctx, o, result)
		if err != nil {
			ruleErrors.WithLabelValues(b.name).Inc()
			return nil, planopt.NewErrRuleApplication(b.name, i, err)
		}
		if !same {
			result = next
		}
	}
	return result, nil
}
