// Copyright 2022 Molecula Corp. All rights reserved.

package planner

import (
	"fmt"

	"github.com/featurebasedb/planopt"
	"github.com/featurebasedb/planopt/planner/types"
)

// PlanOpRelScan is a leaf operator reading a relation. Rules may push
// classified filter predicates into the scan; partition filters prune
// partitions before the read, data filters are re-checked row by row, and
// the same predicate may legitimately sit in both lists.
type PlanOpRelScan struct {
	relationName string
	columns      types.Schema

	partitionFilters []types.PlanExpression
	dataFilters      []types.PlanExpression

	warnings []string
}

var _ types.PlanOperator = (*PlanOpRelScan)(nil)
var _ types.ContainsExpressions = (*PlanOpRelScan)(nil)
var _ types.IdentifiableByName = (*PlanOpRelScan)(nil)

func NewPlanOpRelScan(relationName string, columns types.Schema) *PlanOpRelScan {
	return &PlanOpRelScan{
		relationName: relationName,
		columns:      columns.WithQualifier(relationName),
		warnings:     make([]string, 0),
	}
}

func (p *PlanOpRelScan) Name() string {
	return p.relationName
}

// WithPushedFilters returns a copy of the scan with the classified filter
// lists replaced. Column identities are preserved.
func (p *PlanOpRelScan) WithPushedFilters(partitionFilters, dataFilters []types.PlanExpression) *PlanOpRelScan {
	return &PlanOpRelScan{
		relationName:     p.relationName,
		columns:          p.columns,
		partitionFilters: partitionFilters,
		dataFilters:      dataFilters,
		warnings:         make([]string, 0),
	}
}

func (p *PlanOpRelScan) PartitionFilters() []types.PlanExpression {
	return p.partitionFilters
}

func (p *PlanOpRelScan) DataFilters() []types.PlanExpression {
	return p.dataFilters
}

func (p *PlanOpRelScan) Schema() types.Schema {
	return p.columns
}

func (p *PlanOpRelScan) Children() []types.PlanOperator {
	return []types.PlanOperator{}
}

func (p *PlanOpRelScan) WithChildren(children ...types.PlanOperator) (types.PlanOperator, error) {
	if len(children) != 0 {
		return nil, planopt.NewErrInternalf("unexpected number of children '%d'", len(children))
	}
	return p, nil
}

func (p *PlanOpRelScan) Plan() map[string]interface{} {
	result := make(map[string]interface{})
	result["_op"] = fmt.Sprintf("%T", p)
	result["_schema"] = p.Schema().Plan()
	result["relationName"] = p.relationName

	if len(p.partitionFilters) > 0 {
		ps := make([]interface{}, 0)
		for _, e := range p.partitionFilters {
			ps = append(ps, e.Plan())
		}
		result["partitionFilters"] = ps
	}
	if len(p.dataFilters) > 0 {
		ds := make([]interface{}, 0)
		for _, e := range p.dataFilters {
			ds = append(ds, e.Plan())
		}
		result["dataFilters"] = ds
	}
	return result
}

func (p *PlanOpRelScan) String() string {
	return fmt.Sprintf("relscan(%s)", p.relationName)
}

func (p *PlanOpRelScan) AddWarning(warning string) {
	p.warnings = append(p.warnings, warning)
}

func (p *PlanOpRelScan) Warnings() []string {
	return p.warnings
}

func (p *PlanOpRelScan) Expressions() []types.PlanExpression {
	result := make([]types.PlanExpression, 0, len(p.partitionFilters)+len(p.dataFilters))
	result = append(result, p.partitionFilters...)
	result = append(result, p.dataFilters...)
	return result
}

func (p *PlanOpRelScan) WithUpdatedExpressions(exprs ...types.PlanExpression) (types.PlanOperator, error) {
	if len(exprs) != len(p.partitionFilters)+len(p.dataFilters) {
		return nil, planopt.NewErrInternalf("unexpected number of exprs '%d'", len(exprs))
	}
	return p.WithPushedFilters(exprs[:len(p.partitionFilters)], exprs[len(p.partitionFilters):]), nil
}
