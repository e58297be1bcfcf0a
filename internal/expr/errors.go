package expr

import "fmt"

// EvalErrorCode categorizes evaluation errors.
//
// The execution engine inspects the code to decide whether to fail the whole
// query or skip the offending row; evaluation never returns a silently wrong
// value in place of an error.
type EvalErrorCode string

const (
	// ErrCodeTypeCoercion indicates an operand could not be converted to
	// the type the operator requires (e.g. a non-numeric string where a
	// number is needed).
	ErrCodeTypeCoercion EvalErrorCode = "TYPE_COERCION_FAILURE"

	// ErrCodeOperandCombination indicates the operator has no defined
	// semantics for the combination of operand kinds it received
	// (e.g. an ordering comparison of two non-numeric values).
	ErrCodeOperandCombination EvalErrorCode = "UNSUPPORTED_OPERAND_COMBINATION"

	// ErrCodeUnboundVariable indicates the row has no binding for a
	// variable referenced by the expression.
	ErrCodeUnboundVariable EvalErrorCode = "UNBOUND_VARIABLE"
)

// EvalError is an evaluation-time expression error.
//
// Raised per row; it carries the operator name and the offending operands so
// the engine can attribute the failure when flagging or skipping rows.
type EvalError struct {
	// Code identifies the error category.
	Code EvalErrorCode

	// Op is the operator that failed (e.g. "<=", "+", "!").
	Op string

	// Message is a human-readable description.
	Message string
}

// Error implements the error interface.
func (e *EvalError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("%s: %s: %s", e.Code, e.Op, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// coercionError builds an ErrCodeTypeCoercion error for an operand.
func coercionError(op string, v Value) *EvalError {
	return &EvalError{
		Code:    ErrCodeTypeCoercion,
		Op:      op,
		Message: fmt.Sprintf("operand %s is not numeric", Format(v)),
	}
}

// operandError builds an ErrCodeOperandCombination error for a pair.
func operandError(op string, left, right Value) *EvalError {
	return &EvalError{
		Code:    ErrCodeOperandCombination,
		Op:      op,
		Message: fmt.Sprintf("no semantics for operands %s and %s", Format(left), Format(right)),
	}
}

// unboundError builds an ErrCodeUnboundVariable error.
func unboundError(name string) *EvalError {
	return &EvalError{
		Code:    ErrCodeUnboundVariable,
		Message: fmt.Sprintf("variable ?%s is not bound in this row", name),
	}
}
