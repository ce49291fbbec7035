// Copyright 2022 Molecula Corp. All rights reserved.

package planner

import (
	"fmt"
	"strings"

	"github.com/featurebasedb/planopt"
	"github.com/featurebasedb/planopt/planner/types"
)

// operators for binOpPlanExpression
const (
	OpEq  = "="
	OpNe  = "!="
	OpLt  = "<"
	OpLte = "<="
	OpGt  = ">"
	OpGte = ">="
	OpAnd = "and"
	OpOr  = "or"
)

// NewAttrRef returns an attribute reference for a leaf column with a fresh
// identity.
func NewAttrRef(columnName string, dataType types.ExprDataType, nullable bool, qualifier ...string) types.NamedPlanExpression {
	return newAttrRefPlanExpression(types.NewExprID(), columnName, dataType, nullable, nil, qualifier...)
}

// NewAttrRefWithID returns an attribute reference keyed to an existing
// identity. Use only when intentionally asserting identity continuity with
// an expression issued elsewhere.
func NewAttrRefWithID(id types.ExprID, columnName string, dataType types.ExprDataType, nullable bool, qualifier ...string) types.NamedPlanExpression {
	return newAttrRefPlanExpression(id, columnName, dataType, nullable, nil, qualifier...)
}

// NewAttrRefWithMetadata is NewAttrRef carrying column level metadata.
func NewAttrRefWithMetadata(columnName string, dataType types.ExprDataType, nullable bool, metadata map[string]string, qualifier ...string) types.NamedPlanExpression {
	return newAttrRefPlanExpression(types.NewExprID(), columnName, dataType, nullable, metadata, qualifier...)
}

// NewAlias wraps an expression under a new name with a fresh identity,
// distinct from the identity of the wrapped expression.
func NewAlias(aliasName string, expr types.PlanExpression, qualifier ...string) types.NamedPlanExpression {
	return newAliasPlanExpressionWithID(types.NewExprID(), aliasName, expr, qualifier...)
}

// NewAliasWithID wraps an expression under a new name keyed to an existing
// identity.
func NewAliasWithID(id types.ExprID, aliasName string, expr types.PlanExpression, qualifier ...string) types.NamedPlanExpression {
	return newAliasPlanExpressionWithID(id, aliasName, expr, qualifier...)
}

// NewBinOp returns a binary operator expression.
func NewBinOp(lhs types.PlanExpression, op string, rhs types.PlanExpression) types.PlanExpression {
	return newBinOpPlanExpression(lhs, op, rhs)
}

// NewLiteral returns a literal expression.
func NewLiteral(value interface{}, dataType types.ExprDataType) types.PlanExpression {
	return newLiteralPlanExpression(value, dataType)
}

// NewDynamicPruningFilter returns a predicate whose truth depends on the
// result of a separately executed build plan rather than on values
// available at filter evaluation time.
func NewDynamicPruningFilter(pruningExpr types.PlanExpression, buildPlan types.PlanOperator) types.PlanExpression {
	return newDynamicPruningPlanExpression(pruningExpr, buildPlan)
}

// attrRefPlanExpression is a reference to a column of a relation
type attrRefPlanExpression struct {
	columnName string
	qualifier  []string
	dataType   types.ExprDataType
	nullable   bool
	metadata   map[string]string
	exprID     types.ExprID
}

var _ types.NamedPlanExpression = (*attrRefPlanExpression)(nil)

func newAttrRefPlanExpression(id types.ExprID, columnName string, dataType types.ExprDataType, nullable bool, metadata map[string]string, qualifier ...string) *attrRefPlanExpression {
	return &attrRefPlanExpression{
		columnName: columnName,
		qualifier:  qualifier,
		dataType:   dataType,
		nullable:   nullable,
		metadata:   metadata,
		exprID:     id,
	}
}

func (n *attrRefPlanExpression) Name() string {
	return n.columnName
}

func (n *attrRefPlanExpression) ExprID() types.ExprID {
	return n.exprID
}

func (n *attrRefPlanExpression) Qualifier() []string {
	return n.qualifier
}

func (n *attrRefPlanExpression) Nullable() bool {
	return n.nullable
}

func (n *attrRefPlanExpression) Metadata() map[string]string {
	return n.metadata
}

func (n *attrRefPlanExpression) WithQualifier(qualifier ...string) types.NamedPlanExpression {
	return newAttrRefPlanExpression(n.exprID, n.columnName, n.dataType, n.nullable, n.metadata, qualifier...)
}

func (n *attrRefPlanExpression) Type() types.ExprDataType {
	return n.dataType
}

func (n *attrRefPlanExpression) String() string {
	if len(n.qualifier) > 0 {
		return fmt.Sprintf("%s.%s", strings.Join(n.qualifier, "."), n.columnName)
	}
	return n.columnName
}

func (n *attrRefPlanExpression) Plan() map[string]interface{} {
	result := make(map[string]interface{})
	result["_expr"] = fmt.Sprintf("%T", n)
	result["dataType"] = n.Type().TypeDescription()
	result["columnName"] = n.columnName
	result["qualifier"] = n.qualifier
	result["exprID"] = uint64(n.exprID)
	return result
}

func (n *attrRefPlanExpression) Children() []types.PlanExpression {
	return []types.PlanExpression{}
}

func (n *attrRefPlanExpression) WithChildren(children ...types.PlanExpression) (types.PlanExpression, error) {
	if len(children) != 0 {
		return nil, planopt.NewErrInternalf("unexpected number of children '%d'", len(children))
	}
	return n, nil
}

// aliasPlanExpression wraps a child expression under a new name; it carries
// its own identity, distinct from the child's
type aliasPlanExpression struct {
	aliasName string
	qualifier []string
	expr      types.PlanExpression
	exprID    types.ExprID
}

var _ types.NamedPlanExpression = (*aliasPlanExpression)(nil)

func newAliasPlanExpressionWithID(id types.ExprID, aliasName string, expr types.PlanExpression, qualifier ...string) *aliasPlanExpression {
	return &aliasPlanExpression{
		aliasName: aliasName,
		qualifier: qualifier,
		expr:      expr,
		exprID:    id,
	}
}

func (n *aliasPlanExpression) Name() string {
	return n.aliasName
}

func (n *aliasPlanExpression) ExprID() types.ExprID {
	return n.exprID
}

func (n *aliasPlanExpression) Qualifier() []string {
	return n.qualifier
}

func (n *aliasPlanExpression) Nullable() bool {
	if ne, ok := n.expr.(types.NamedPlanExpression); ok {
		return ne.Nullable()
	}
	return true
}

func (n *aliasPlanExpression) Metadata() map[string]string {
	if ne, ok := n.expr.(types.NamedPlanExpression); ok {
		return ne.Metadata()
	}
	return nil
}

func (n *aliasPlanExpression) WithQualifier(qualifier ...string) types.NamedPlanExpression {
	return newAliasPlanExpressionWithID(n.exprID, n.aliasName, n.expr, qualifier...)
}

func (n *aliasPlanExpression) Type() types.ExprDataType {
	return n.expr.Type()
}

func (n *aliasPlanExpression) String() string {
	return fmt.Sprintf("%s as %s", n.expr.String(), n.aliasName)
}

func (n *aliasPlanExpression) Plan() map[string]interface{} {
	result := make(map[string]interface{})
	result["_expr"] = fmt.Sprintf("%T", n)
	result["dataType"] = n.Type().TypeDescription()
	result["aliasName"] = n.aliasName
	result["exprID"] = uint64(n.exprID)
	result["expr"] = n.expr.Plan()
	return result
}

func (n *aliasPlanExpression) Children() []types.PlanExpression {
	return []types.PlanExpression{
		n.expr,
	}
}

func (n *aliasPlanExpression) WithChildren(children ...types.PlanExpression) (types.PlanExpression, error) {
	if len(children) != 1 {
		return nil, planopt.NewErrInternalf("unexpected number of children '%d'", len(children))
	}
	return newAliasPlanExpressionWithID(n.exprID, n.aliasName, children[0], n.qualifier...), nil
}

// binOpPlanExpression is a binary operator
type binOpPlanExpression struct {
	lhs types.PlanExpression
	rhs types.PlanExpression
	op  string
}

func newBinOpPlanExpression(lhs types.PlanExpression, op string, rhs types.PlanExpression) *binOpPlanExpression {
	return &binOpPlanExpression{
		lhs: lhs,
		rhs: rhs,
		op:  op,
	}
}

func (n *binOpPlanExpression) Type() types.ExprDataType {
	switch n.op {
	case OpEq, OpNe, OpLt, OpLte, OpGt, OpGte, OpAnd, OpOr:
		return types.NewDataTypeBool()
	default:
		return n.lhs.Type()
	}
}

func (n *binOpPlanExpression) String() string {
	return fmt.Sprintf("%s %s %s", n.lhs.String(), n.op, n.rhs.String())
}

func (n *binOpPlanExpression) Plan() map[string]interface{} {
	result := make(map[string]interface{})
	result["_expr"] = fmt.Sprintf("%T", n)
	result["dataType"] = n.Type().TypeDescription()
	result["op"] = n.op
	result["lhs"] = n.lhs.Plan()
	result["rhs"] = n.rhs.Plan()
	return result
}

func (n *binOpPlanExpression) Children() []types.PlanExpression {
	return []types.PlanExpression{
		n.lhs,
		n.rhs,
	}
}

func (n *binOpPlanExpression) WithChildren(children ...types.PlanExpression) (types.PlanExpression, error) {
	if len(children) != 2 {
		return nil, planopt.NewErrInternalf("unexpected number of children '%d'", len(children))
	}
	return newBinOpPlanExpression(children[0], n.op, children[1]), nil
}

// literalPlanExpression is a literal
type literalPlanExpression struct {
	value    interface{}
	dataType types.ExprDataType
}

func newLiteralPlanExpression(value interface{}, dataType types.ExprDataType) *literalPlanExpression {
	return &literalPlanExpression{
		value:    value,
		dataType: dataType,
	}
}

func (n *literalPlanExpression) Type() types.ExprDataType {
	return n.dataType
}

func (n *literalPlanExpression) String() string {
	if _, ok := n.dataType.(*types.DataTypeString); ok {
		return fmt.Sprintf("'%v'", n.value)
	}
	return fmt.Sprintf("%v", n.value)
}

func (n *literalPlanExpression) Plan() map[string]interface{} {
	result := make(map[string]interface{})
	result["_expr"] = fmt.Sprintf("%T", n)
	result["dataType"] = n.Type().TypeDescription()
	result["value"] = n.value
	return result
}

func (n *literalPlanExpression) Children() []types.PlanExpression {
	return []types.PlanExpression{}
}

func (n *literalPlanExpression) WithChildren(children ...types.PlanExpression) (types.PlanExpression, error) {
	if len(children) != 0 {
		return nil, planopt.NewErrInternalf("unexpected number of children '%d'", len(children))
	}
	return n, nil
}

// dynamicPruningPlanExpression is a predicate whose truth depends on the
// result of a separately executed build plan
type dynamicPruningPlanExpression struct {
	pruningExpr types.PlanExpression
	buildPlan   types.PlanOperator
}

func newDynamicPruningPlanExpression(pruningExpr types.PlanExpression, buildPlan types.PlanOperator) *dynamicPruningPlanExpression {
	return &dynamicPruningPlanExpression{
		pruningExpr: pruningExpr,
		buildPlan:   buildPlan,
	}
}

func (n *dynamicPruningPlanExpression) Type() types.ExprDataType {
	return types.NewDataTypeBool()
}

func (n *dynamicPruningPlanExpression) String() string {
	return fmt.Sprintf("dynamicpruning(%s)", n.pruningExpr.String())
}

func (n *dynamicPruningPlanExpression) Plan() map[string]interface{} {
	result := make(map[string]interface{})
	result["_expr"] = fmt.Sprintf("%T", n)
	result["dataType"] = n.Type().TypeDescription()
	result["pruningExpr"] = n.pruningExpr.Plan()
	result["buildPlan"] = n.buildPlan.Plan()
	return result
}

func (n *dynamicPruningPlanExpression) Children() []types.PlanExpression {
	return []types.PlanExpression{
		n.pruningExpr,
	}
}

func (n *dynamicPruningPlanExpression) WithChildren(children ...types.PlanExpression) (types.PlanExpression, error) {
	if len(children) != 1 {
		return nil, planopt.NewErrInternalf("unexpected number of children '%d'", len(children))
	}
	return newDynamicPruningPlanExpression(children[0], n.buildPlan), nil
}

// projectionToSchemaExpr returns the named expression a projection exposes
// for e; expressions that carry no name get wrapped in an alias once, at
// operator construction time, so identities stay stable across rewrites.
func projectionToSchemaExpr(e types.PlanExpression) types.NamedPlanExpression {
	if ne, ok := e.(types.NamedPlanExpression); ok {
		return ne
	}
	return NewAlias(e.String(), e)
}

// splitOnAnd splits a predicate into its conjuncts
func splitOnAnd(expr types.PlanExpression) []types.PlanExpression {
	binOp, ok := expr.(*binOpPlanExpression)
	if !ok || binOp.op != OpAnd {
		return []types.PlanExpression{
			expr,
		}
	}
	return append(
		splitOnAnd(binOp.lhs),
		splitOnAnd(binOp.rhs)...,
	)
}

// joinExprsWithAnd joins predicates into a single conjunction; exprs must
// not be empty
func joinExprsWithAnd(exprs ...types.PlanExpression) types.PlanExpression {
	result := exprs[0]
	for _, e := range exprs[1:] {
		result = newBinOpPlanExpression(result, OpAnd, e)
	}
	return result
}

// expressionAttrIDs returns the identities of all attribute references in
// expr
func expressionAttrIDs(expr types.PlanExpression) map[types.ExprID]struct{} {
	refs := make(map[types.ExprID]struct{})
	ExprWalk(exprInspector(func(e types.PlanExpression) bool {
		if e == nil {
			return false
		}
		if qref, ok := e.(*attrRefPlanExpression); ok {
			refs[qref.exprID] = struct{}{}
		}
		return true
	}), expr)
	return refs
}
