// Copyright 2022 Molecula Corp. All rights reserved.

package planner

import (
	"fmt"

	"github.com/featurebasedb/planopt"
	"github.com/featurebasedb/planopt/planner/types"
)

// PlanOpFilter is a filter operator
type PlanOpFilter struct {
	ChildOp   types.PlanOperator
	Predicate types.PlanExpression

	warnings []string
}

var _ types.PlanOperator = (*PlanOpFilter)(nil)
var _ types.ContainsExpressions = (*PlanOpFilter)(nil)

func NewPlanOpFilter(predicate types.PlanExpression, child types.PlanOperator) *PlanOpFilter {
	return &PlanOpFilter{
		Predicate: predicate,
		ChildOp:   child,
		warnings:  make([]string, 0),
	}
}

func (p *PlanOpFilter) Schema() types.Schema {
	return p.ChildOp.Schema()
}

func (p *PlanOpFilter) Children() []types.PlanOperator {
	return []types.PlanOperator{
		p.ChildOp,
	}
}

func (p *PlanOpFilter) WithChildren(children ...types.PlanOperator) (types.PlanOperator, error) {
	if len(children) != 1 {
		return nil, planopt.NewErrInternalf("unexpected number of children '%d'", len(children))
	}
	return NewPlanOpFilter(p.Predicate, children[0]), nil
}

func (p *PlanOpFilter) Plan() map[string]interface{} {
	result := make(map[string]interface{})
	result["_op"] = fmt.Sprintf("%T", p)
	result["_schema"] = p.Schema().Plan()
	result["predicate"] = p.Predicate.Plan()
	result["child"] = p.ChildOp.Plan()
	return result
}

func (p *PlanOpFilter) String() string {
	return fmt.Sprintf("filter(%s)", p.Predicate.String())
}

func (p *PlanOpFilter) AddWarning(warning string) {
	p.warnings = append(p.warnings, warning)
}

func (p *PlanOpFilter) Warnings() []string {
	var w []string
	w = append(w, p.warnings...)
	w = append(w, p.ChildOp.Warnings()...)
	return w
}

func (p *PlanOpFilter) Expressions() []types.PlanExpression {
	if p.Predicate != nil {
		return []types.PlanExpression{
			p.Predicate,
		}
	}
	return []types.PlanExpression{}
}

func (p *PlanOpFilter) WithUpdatedExpressions(exprs ...types.PlanExpression) (types.PlanOperator, error) {
	if len(exprs) != 1 {
		return nil, planopt.NewErrInternalf("unexpected number of exprs '%d'", len(exprs))
	}
	return NewPlanOpFilter(exprs[0], p.ChildOp), nil
}
