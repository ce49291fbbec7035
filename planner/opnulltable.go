// Copyright 2022 Molecula Corp. All rights reserved.

package planner

import (
	"fmt"

	"github.com/featurebasedb/planopt/planner/types"
)

// PlanOpNullTable is an operator for a null table
// basically when you do select 1, you're using the null table
type PlanOpNullTable struct {
	warnings []string
}

var _ types.PlanOperator = (*PlanOpNullTable)(nil)

func NewPlanOpNullTable() *PlanOpNullTable {
	return &PlanOpNullTable{
		warnings: make([]string, 0),
	}
}

func (p *PlanOpNullTable) Schema() types.Schema {
	return types.Schema{}
}

func (p *PlanOpNullTable) Children() []types.PlanOperator {
	return []types.PlanOperator{}
}

func (p *PlanOpNullTable) WithChildren(children ...types.PlanOperator) (types.PlanOperator, error) {
	return NewPlanOpNullTable(), nil
}

func (p *PlanOpNullTable) Plan() map[string]interface{} {
	result := make(map[string]interface{})
	result["_op"] = fmt.Sprintf("%T", p)
	result["_schema"] = p.Schema().Plan()
	return result
}

func (p *PlanOpNullTable) String() string {
	return "nulltable"
}

func (p *PlanOpNullTable) AddWarning(warning string) {
	p.warnings = append(p.warnings, warning)
}

func (p *PlanOpNullTable) Warnings() []string {
	return p.warnings
}
