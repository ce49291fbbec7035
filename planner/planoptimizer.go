// Copyright 2022 Molecula Corp. All rights reserved.

package planner

import (
	"context"

	"github.com/featurebasedb/planopt"
	"github.com/featurebasedb/planopt/logger"
	"github.com/featurebasedb/planopt/planner/types"
	"github.com/featurebasedb/planopt/tracing"
	"github.com/prometheus/client_golang/prometheus"
)

// BatchProvider is implemented by domain rule modules (materialized view
// rewriting, mutation normalization, auxiliary index substitution, ...)
// that contribute a batch to the pipeline. The pipeline treats the batch
// opaquely and only fixes its position.
type BatchProvider interface {
	AsBatch() *RuleBatch
}

// Optimizer applies ordered batches of rewrite rules to a logical plan.
// The batch sequence is fixed at construction: custom prepend batches,
// then the base engine's batches, then custom append batches. Ordering is
// a correctness requirement, not a preference; a view rewrite batch must
// see the original expression shapes before generic optimization consumes
// them, and index substitution must see the finalized filter and
// projection shapes after it.
type Optimizer struct {
	catalog planopt.Catalog
	batches []*RuleBatch
	logger  logger.Logger
}

type OptimizerOption func(*optimizerConfig)

type optimizerConfig struct {
	prepend []*RuleBatch
	append  []*RuleBatch
	logger  logger.Logger
}

// WithPrependBatches adds domain batches that run before the base batches.
func WithPrependBatches(providers ...BatchProvider) OptimizerOption {
	return func(c *optimizerConfig) {
		for _, p := range providers {
			c.prepend = append(c.prepend, p.AsBatch())
		}
	}
}

// WithAppendBatches adds domain batches that run after the base batches.
func WithAppendBatches(providers ...BatchProvider) OptimizerOption {
	return func(c *optimizerConfig) {
		for _, p := range providers {
			c.append = append(c.append, p.AsBatch())
		}
	}
}

func WithLogger(l logger.Logger) OptimizerOption {
	return func(c *optimizerConfig) {
		c.logger = l
	}
}

// NewOptimizer composes the batch sequence and returns an optimizer ready
// to compile plans. baseBatches is supplied by the host engine and is not
// inspected. The catalog is injected here rather than looked up from
// ambient session state.
func NewOptimizer(catalog planopt.Catalog, baseBatches []*RuleBatch, opts ...OptimizerOption) *Optimizer {
	config := &optimizerConfig{
		logger: logger.NopLogger,
	}
	for _, opt := range opts {
		opt(config)
	}

	batches := make([]*RuleBatch, 0, len(config.prepend)+len(baseBatches)+len(config.append))
	batches = append(batches, config.prepend...)
	batches = append(batches, baseBatches...)
	batches = append(batches, config.append...)

	return &Optimizer{
		catalog: catalog,
		batches: batches,
		logger:  config.logger,
	}
}

// Batches returns the composed batch sequence in execution order.
func (o *Optimizer) Batches() []*RuleBatch {
	result := make([]*RuleBatch, len(o.batches))
	copy(result, o.batches)
	return result
}

// Catalog returns the injected catalog; rules use it to look up relation
// schemas and partition attribute sets.
func (o *Optimizer) Catalog() planopt.Catalog {
	return o.catalog
}

func dumpPlan(prefix []string, root types.PlanOperator, suffix string) {
	// DEBUG !!
	// for _, s := range prefix {
	// 	log.Println(s)
	// }
	// jplan := root.Plan()
	// a, _ := json.MarshalIndent(jplan, "", "    ")
	// log.Println(string(a))
	// log.Println()
	// DEBUG !!
}

// OptimizePlan takes a compiled plan and threads it through every batch in
// the composed sequence. A rule error aborts the whole call; a plan is
// never half rewritten and handed to physical planning.
func (o *Optimizer) OptimizePlan(ctx context.Context, plan types.PlanOperator) (types.PlanOperator, error) {
	span, ctx := tracing.StartSpanFromContext(ctx, "Optimizer.OptimizePlan")
	defer span.Finish()

	timer := prometheus.NewTimer(optimizeDurations)
	defer timer.ObserveDuration()

	dumpPlan(
		[]string{"================================================================================", "plan pre-optimization"},
		plan,
		"--------------------------------------------------------------------------------",
	)

	var err error
	var result = plan
	for _, b := range o.batches {
		result, err = o.executeBatch(ctx, b, result)
		if err != nil {
			return nil, err
		}
	}

	dumpPlan(
		[]string{"================================================================================", "plan post-optimization"},
		result,
		"--------------------------------------------------------------------------------",
	)

	return result, nil
}
