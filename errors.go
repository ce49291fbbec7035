package planopt

import (
	"fmt"
	"runtime"

	"github.com/featurebasedb/planopt/errors"
)

const (
	ErrInternal errors.Code = "ErrInternal"

	ErrRelationNotFound       errors.Code = "ErrRelationNotFound"
	ErrReconcileArityMismatch errors.Code = "ErrReconcileArityMismatch"
)

func NewErrRelationNotFound(relation string) error {
	return errors.New(
		ErrRelationNotFound,
		fmt.Sprintf("relation '%s' not found", relation),
	)
}

func NewErrReconcileArityMismatch(leftLen int, rightLen int) error {
	return errors.New(
		ErrReconcileArityMismatch,
		fmt.Sprintf("schema arity mismatch '%d' and '%d'", leftLen, rightLen),
	)
}

// NewErrRuleApplication attaches the batch name and rule index to a rule
// failure. The underlying error is kept as the cause so callers can still
// match its code.
func NewErrRuleApplication(batchName string, ruleIndex int, err error) error {
	return errors.Wrapf(err, "batch '%s' rule [%d]", batchName, ruleIndex)
}

func NewErrInternalf(format string, a ...interface{}) error {
	preamble := "internal error"
	_, filename, line, ok := runtime.Caller(1)
	if ok {
		preamble = fmt.Sprintf("internal error (%s:%d)", filename, line)
	}
	errorMessage := fmt.Sprintf(format, a...)
	errorMessage = fmt.Sprintf("%s %s", preamble, errorMessage)
	return errors.New(
		ErrInternal,
		errorMessage,
	)
}
