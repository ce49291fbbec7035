package types

import (
	"fmt"
	"sync/atomic"
)

// ExprID is a process-unique identifier for a named expression. It is
// assigned once at expression construction and is the sole mechanism for
// tracking the same logical column across structurally different plan
// trees; ids are never reused for the lifetime of the process.
type ExprID uint64

var exprIDSequence uint64

// NewExprID returns a fresh ExprID, distinct from all previously issued
// ones. Safe for concurrent allocation.
func NewExprID() ExprID {
	return ExprID(atomic.AddUint64(&exprIDSequence, 1))
}

// PlanExpression is an expression node for a logical plan
type PlanExpression interface {
	fmt.Stringer

	// returns the type of the expression
	Type() ExprDataType

	// returns the child expressions for this expression
	Children() []PlanExpression

	// creates a new expression node with the children replaced
	WithChildren(children ...PlanExpression) (PlanExpression, error)

	// returns a map containing a rich description of this expression; intended to be
	// marshalled into json
	Plan() map[string]interface{}
}

// interface to something that can be identified by a name
type IdentifiableByName interface {
	Name() string
}

// NamedPlanExpression is a plan expression with a name and a stable
// identity. Plan operator schemas are made of these.
type NamedPlanExpression interface {
	PlanExpression
	IdentifiableByName

	// the stable identity of the expression; equality of two ids means the
	// two expressions denote the same logical value
	ExprID() ExprID

	// the lineage path (table/subquery alias chain) used to disambiguate
	// the name; most specific last
	Qualifier() []string

	// whether the expression can produce null
	Nullable() bool

	// additional column level metadata carried through rewrites; may be nil
	Metadata() map[string]string

	// returns a copy of the expression with the qualifier replaced; the
	// identity is preserved
	WithQualifier(qualifier ...string) NamedPlanExpression
}

// ContainsExpressions is the interface for plan operators that hold
// expressions
type ContainsExpressions interface {
	// returns the expressions for this plan operator
	Expressions() []PlanExpression

	// creates a new plan operator with the expressions replaced
	WithUpdatedExpressions(exprs ...PlanExpression) (PlanOperator, error)
}
