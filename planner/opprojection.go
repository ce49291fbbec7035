// Copyright 2022 Molecula Corp. All rights reserved.

package planner

import (
	"fmt"
	"strings"

	"github.com/featurebasedb/planopt"
	"github.com/featurebasedb/planopt/planner/types"
)

// PlanOpProjection narrows and renames the output of its child. The
// projection list is normalized to named expressions once, at construction,
// so the identities it exposes are stable across rewrites of the subtree
// below it.
type PlanOpProjection struct {
	ChildOp     types.PlanOperator
	Projections []types.NamedPlanExpression

	warnings []string
}

var _ types.PlanOperator = (*PlanOpProjection)(nil)
var _ types.ContainsExpressions = (*PlanOpProjection)(nil)

func NewPlanOpProjection(expressions []types.PlanExpression, child types.PlanOperator) *PlanOpProjection {
	projections := make([]types.NamedPlanExpression, len(expressions))
	for i, e := range expressions {
		projections[i] = projectionToSchemaExpr(e)
	}
	return &PlanOpProjection{
		ChildOp:     child,
		Projections: projections,
		warnings:    make([]string, 0),
	}
}

func (p *PlanOpProjection) Schema() types.Schema {
	return types.Schema(p.Projections)
}

func (p *PlanOpProjection) Children() []types.PlanOperator {
	return []types.PlanOperator{
		p.ChildOp,
	}
}

func (p *PlanOpProjection) WithChildren(children ...types.PlanOperator) (types.PlanOperator, error) {
	if len(children) != 1 {
		return nil, planopt.NewErrInternalf("unexpected number of children '%d'", len(children))
	}
	// keep the existing projections so exposed identities do not churn
	return &PlanOpProjection{
		ChildOp:     children[0],
		Projections: p.Projections,
		warnings:    make([]string, 0),
	}, nil
}

func (p *PlanOpProjection) Plan() map[string]interface{} {
	result := make(map[string]interface{})
	result["_op"] = fmt.Sprintf("%T", p)
	result["_schema"] = p.Schema().Plan()
	result["child"] = p.ChildOp.Plan()

	ps := make([]interface{}, 0)
	for _, e := range p.Projections {
		ps = append(ps, e.Plan())
	}
	result["projections"] = ps

	return result
}

func (p *PlanOpProjection) String() string {
	names := make([]string, len(p.Projections))
	for i, e := range p.Projections {
		names[i] = e.Name()
	}
	return fmt.Sprintf("projection(%s)", strings.Join(names, ", "))
}

func (p *PlanOpProjection) AddWarning(warning string) {
	p.warnings = append(p.warnings, warning)
}

func (p *PlanOpProjection) Warnings() []string {
	var w []string
	w = append(w, p.warnings...)
	w = append(w, p.ChildOp.Warnings()...)
	return w
}

func (p *PlanOpProjection) Expressions() []types.PlanExpression {
	result := make([]types.PlanExpression, len(p.Projections))
	for i, e := range p.Projections {
		result[i] = e
	}
	return result
}

func (p *PlanOpProjection) WithUpdatedExpressions(exprs ...types.PlanExpression) (types.PlanOperator, error) {
	if len(exprs) != len(p.Projections) {
		return nil, planopt.NewErrInternalf("unexpected number of exprs '%d'", len(exprs))
	}
	return NewPlanOpProjection(exprs, p.ChildOp), nil
}
