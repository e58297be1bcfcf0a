package expr

import (
	"strconv"
	"strings"
)

// Operand coercion shared by the whole binary operator family.
//
// The ordering comparisons (<, <=, >, >=) and the arithmetic operators all
// follow one rule, implemented here exactly once:
//
//  1. both operands numeric: compare/combine as float64
//  2. one numeric, one text: parse the text as float64, fail with
//     ErrCodeTypeCoercion when it does not parse
//  3. neither numeric: fail with ErrCodeOperandCombination
//
// Case 3 is a deliberate, distinguishable error rather than a lexical
// fallback; see DESIGN.md.

// numericOperand coerces a single value to float64.
func numericOperand(op string, v Value) (float64, error) {
	switch val := v.(type) {
	case Number:
		return float64(val), nil
	case Text:
		f, err := strconv.ParseFloat(strings.TrimSpace(string(val)), 64)
		if err != nil {
			return 0, coercionError(op, v)
		}
		return f, nil
	default:
		return 0, coercionError(op, v)
	}
}

// numericPair coerces both operands, rejecting the all-non-numeric case
// before any per-operand parsing happens.
func numericPair(op string, left, right Value) (float64, float64, error) {
	_, leftNum := left.(Number)
	_, rightNum := right.(Number)
	if !leftNum && !rightNum {
		return 0, 0, operandError(op, left, right)
	}

	a, err := numericOperand(op, left)
	if err != nil {
		return 0, 0, err
	}
	b, err := numericOperand(op, right)
	if err != nil {
		return 0, 0, err
	}
	return a, b, nil
}

// boolOperand requires a Bool value; anything else is a coercion failure.
func boolOperand(op string, v Value) (bool, error) {
	b, ok := v.(Bool)
	if !ok {
		return false, &EvalError{
			Code:    ErrCodeTypeCoercion,
			Op:      op,
			Message: "operand " + Format(v) + " is not boolean",
		}
	}
	return bool(b), nil
}

// evalBool evaluates a subexpression and coerces the result to bool.
func evalBool(op string, e Expr, row Row) (bool, error) {
	v, err := e.Evaluate(row)
	if err != nil {
		return false, err
	}
	return boolOperand(op, v)
}

// evalOrdered evaluates both operands and applies an ordering comparison
// through the shared numeric coercion.
func evalOrdered(op string, left, right Expr, row Row, cmp func(a, b float64) bool) (Value, error) {
	lv, err := left.Evaluate(row)
	if err != nil {
		return nil, err
	}
	rv, err := right.Evaluate(row)
	if err != nil {
		return nil, err
	}
	a, b, err := numericPair(op, lv, rv)
	if err != nil {
		return nil, err
	}
	return Bool(cmp(a, b)), nil
}

// evalArithmetic evaluates both operands and combines them numerically
// through the shared coercion.
func evalArithmetic(op string, left, right Expr, row Row, combine func(a, b float64) float64) (Value, error) {
	lv, err := left.Evaluate(row)
	if err != nil {
		return nil, err
	}
	rv, err := right.Evaluate(row)
	if err != nil {
		return nil, err
	}
	a, b, err := numericPair(op, lv, rv)
	if err != nil {
		return nil, err
	}
	return Number(combine(a, b)), nil
}

// evalEquality evaluates both operands and tests equality. Numeric coercion
// applies when either side is numeric; otherwise values are equal only when
// they are the same tagged value.
func evalEquality(op string, left, right Expr, row Row, negate bool) (Value, error) {
	lv, err := left.Evaluate(row)
	if err != nil {
		return nil, err
	}
	rv, err := right.Evaluate(row)
	if err != nil {
		return nil, err
	}

	_, leftNum := lv.(Number)
	_, rightNum := rv.(Number)

	var equal bool
	if leftNum || rightNum {
		a, b, err := numericPair(op, lv, rv)
		if err != nil {
			return nil, err
		}
		equal = a == b
	} else {
		equal = lv == rv
	}

	if negate {
		equal = !equal
	}
	return Bool(equal), nil
}
