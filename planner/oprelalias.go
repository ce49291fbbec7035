// Copyright 2022 Molecula Corp. All rights reserved.

package planner

import (
	"fmt"

	"github.com/featurebasedb/planopt"
	"github.com/featurebasedb/planopt/planner/types"
)

// PlanOpRelAlias implements an alias for a relation
type PlanOpRelAlias struct {
	ChildOp   types.PlanOperator
	aliasName string
	warnings  []string
}

var _ types.PlanOperator = (*PlanOpRelAlias)(nil)
var _ types.IdentifiableByName = (*PlanOpRelAlias)(nil)

func NewPlanOpRelAlias(alias string, child types.PlanOperator) *PlanOpRelAlias {
	return &PlanOpRelAlias{
		ChildOp:   child,
		aliasName: alias,
		warnings:  make([]string, 0),
	}
}

func (p *PlanOpRelAlias) Name() string {
	return p.aliasName
}

// Schema requalifies the child schema under the alias; expression
// identities are preserved.
func (p *PlanOpRelAlias) Schema() types.Schema {
	return p.ChildOp.Schema().WithQualifier(p.aliasName)
}

func (p *PlanOpRelAlias) Children() []types.PlanOperator {
	return []types.PlanOperator{
		p.ChildOp,
	}
}

func (p *PlanOpRelAlias) WithChildren(children ...types.PlanOperator) (types.PlanOperator, error) {
	if len(children) != 1 {
		return nil, planopt.NewErrInternalf("unexpected number of children '%d'", len(children))
	}
	return NewPlanOpRelAlias(p.aliasName, children[0]), nil
}

func (p *PlanOpRelAlias) Plan() map[string]interface{} {
	result := make(map[string]interface{})
	result["_op"] = fmt.Sprintf("%T", p)
	result["_schema"] = p.Schema().Plan()
	result["aliasName"] = p.aliasName
	result["child"] = p.ChildOp.Plan()
	return result
}

func (p *PlanOpRelAlias) String() string {
	return fmt.Sprintf("relalias(%s)", p.aliasName)
}

func (p *PlanOpRelAlias) AddWarning(warning string) {
	p.warnings = append(p.warnings, warning)
}

func (p *PlanOpRelAlias) Warnings() []string {
	var w []string
	w = append(w, p.warnings...)
	w = append(w, p.ChildOp.Warnings()...)
	return w
}
