package types

import (
	"fmt"
)

// PlanOperator is a node in a logical plan. Operators are immutable value
// trees; a rewrite never mutates an operator in place, it produces a new
// tree sharing unchanged subtrees by reference.
type PlanOperator interface {
	fmt.Stringer

	// returns the output schema for this operator; every expression in the
	// schema is either defined by the operator or inherited unchanged (same
	// ExprID) from exactly one child
	Schema() Schema

	// returns the child operators for this operator
	Children() []PlanOperator

	// creates a new operator node with the children replaced
	WithChildren(children ...PlanOperator) (PlanOperator, error)

	// returns a map containing a rich description of this operator; intended
	// to be marshalled into json
	Plan() map[string]interface{}

	AddWarning(warning string)
	Warnings() []string
}

// Schema is the ordered list of named expressions produced by a plan
// operator.
type Schema []NamedPlanExpression

// Plan returns a description of the schema intended to be marshalled into
// json
func (s Schema) Plan() []string {
	result := make([]string, 0)
	for _, e := range s {
		result = append(result, fmt.Sprintf("'%s' (%d) '%s'", e.Name(), e.ExprID(), e.Type().TypeDescription()))
	}
	return result
}

// WithQualifier returns a copy of the schema with every expression
// requalified; identities are preserved.
func (s Schema) WithQualifier(qualifier ...string) Schema {
	result := make(Schema, len(s))
	for i, e := range s {
		result[i] = e.WithQualifier(qualifier...)
	}
	return result
}
