package planner

import (
	"reflect"

	"github.com/featurebasedb/planopt/planner/types"
)

// plansEqual reports whether two plan op graphs are structurally identical:
// same operator kinds, same schemas (name, identity, type), same contained
// expressions and same children, recursively. It deliberately does not
// compare object identity; fixed point convergence is decided with this.
func plansEqual(a, b types.PlanOperator) bool {
	if a == nil || b == nil {
		return a == b
	}
	if reflect.TypeOf(a) != reflect.TypeOf(b) {
		return false
	}
	if !schemasEqual(a.Schema(), b.Schema()) {
		return false
	}
	if !opExpressionsEqual(a, b) {
		return false
	}
	ac, bc := a.Children(), b.Children()
	if len(ac) != len(bc) {
		return false
	}
	for i := range ac {
		if !plansEqual(ac[i], bc[i]) {
			return false
		}
	}
	return true
}

// schemasEqual reports whether two schemas agree position by position on
// name, identity and type.
func schemasEqual(a, b types.Schema) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Name() != b[i].Name() {
			return false
		}
		if a[i].ExprID() != b[i].ExprID() {
			return false
		}
		if a[i].Type().TypeDescription() != b[i].Type().TypeDescription() {
			return false
		}
	}
	return true
}

func opExpressionsEqual(a, b types.PlanOperator) bool {
	ae, aok := a.(types.ContainsExpressions)
	be, bok := b.(types.ContainsExpressions)
	if aok != bok {
		return false
	}
	if !aok {
		return true
	}
	return reflect.DeepEqual(ae.Expressions(), be.Expressions())
}
