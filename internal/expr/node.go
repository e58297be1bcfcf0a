package expr

// Expr is a scalar expression node evaluated once per bound row.
//
// This is a sealed interface - only types in this package implement it.
// There is one concrete type per operator kind, so backend passes written
// against Visitor are forced by the compiler to handle every kind.
//
// Evaluate must be a pure function of the operand values: no side effects
// and no shared mutable state. The execution engine evaluates rows in
// parallel across workers and relies on this.
type Expr interface {
	// Evaluate computes the node's value against one bound row.
	Evaluate(row Row) (Value, error)

	// Accept dispatches to the Visitor method for this node's kind.
	Accept(v Visitor) error

	expr() // Marker method - seals interface to this package
}

// Visitor is the double-dispatch hook for compiler passes over expressions.
//
// One method per concrete operator kind: adding a kind breaks every
// implementation at compile time instead of falling through a default case
// at runtime.
type Visitor interface {
	VisitConstant(*Constant) error
	VisitVariable(*Variable) error
	VisitNot(*Not) error
	VisitNegate(*Negate) error
	VisitAnd(*And) error
	VisitOr(*Or) error
	VisitEqual(*Equal) error
	VisitNotEqual(*NotEqual) error
	VisitLess(*Less) error
	VisitLessOrEqual(*LessOrEqual) error
	VisitGreater(*Greater) error
	VisitGreaterOrEqual(*GreaterOrEqual) error
	VisitAdd(*Add) error
	VisitSubtract(*Subtract) error
	VisitMultiply(*Multiply) error
	VisitDivide(*Divide) error
}

// Constant is a leaf holding a literal value.
type Constant struct {
	Value Value
}

func (*Constant) expr() {}

// Evaluate returns the constant's value.
func (c *Constant) Evaluate(Row) (Value, error) { return c.Value, nil }

// Accept implements Expr.
func (c *Constant) Accept(v Visitor) error { return v.VisitConstant(c) }

// Variable is a leaf referencing a bound row variable by name.
type Variable struct {
	Name string
}

func (*Variable) expr() {}

// Evaluate looks the variable up in the row. Unbound variables are an
// evaluation error, not a silent null.
func (va *Variable) Evaluate(row Row) (Value, error) {
	val, ok := row.Value(va.Name)
	if !ok {
		return nil, unboundError(va.Name)
	}
	return val, nil
}

// Accept implements Expr.
func (va *Variable) Accept(v Visitor) error { return v.VisitVariable(va) }

// Not is logical negation.
type Not struct {
	Operand Expr
}

func (*Not) expr() {}

// Evaluate implements Expr.
func (n *Not) Evaluate(row Row) (Value, error) {
	val, err := n.Operand.Evaluate(row)
	if err != nil {
		return nil, err
	}
	b, err := boolOperand("!", val)
	if err != nil {
		return nil, err
	}
	return Bool(!b), nil
}

// Accept implements Expr.
func (n *Not) Accept(v Visitor) error { return v.VisitNot(n) }

// Negate is arithmetic negation.
type Negate struct {
	Operand Expr
}

func (*Negate) expr() {}

// Evaluate implements Expr.
func (n *Negate) Evaluate(row Row) (Value, error) {
	val, err := n.Operand.Evaluate(row)
	if err != nil {
		return nil, err
	}
	f, err := numericOperand("-", val)
	if err != nil {
		return nil, err
	}
	return Number(-f), nil
}

// Accept implements Expr.
func (n *Negate) Accept(v Visitor) error { return v.VisitNegate(n) }

// And is logical conjunction. The right operand is not evaluated when the
// left is false.
type And struct {
	Left, Right Expr
}

func (*And) expr() {}

// Evaluate implements Expr.
func (a *And) Evaluate(row Row) (Value, error) {
	left, err := evalBool("&&", a.Left, row)
	if err != nil {
		return nil, err
	}
	if !left {
		return Bool(false), nil
	}
	right, err := evalBool("&&", a.Right, row)
	if err != nil {
		return nil, err
	}
	return Bool(right), nil
}

// Accept implements Expr.
func (a *And) Accept(v Visitor) error { return v.VisitAnd(a) }

// Or is logical disjunction. The right operand is not evaluated when the
// left is true.
type Or struct {
	Left, Right Expr
}

func (*Or) expr() {}

// Evaluate implements Expr.
func (o *Or) Evaluate(row Row) (Value, error) {
	left, err := evalBool("||", o.Left, row)
	if err != nil {
		return nil, err
	}
	if left {
		return Bool(true), nil
	}
	right, err := evalBool("||", o.Right, row)
	if err != nil {
		return nil, err
	}
	return Bool(right), nil
}

// Accept implements Expr.
func (o *Or) Accept(v Visitor) error { return v.VisitOr(o) }

// Equal tests operand equality. When either side is numeric both sides go
// through numeric coercion; otherwise equality is tagged-value equality and
// values of different kinds are unequal.
type Equal struct {
	Left, Right Expr
}

func (*Equal) expr() {}

// Evaluate implements Expr.
func (e *Equal) Evaluate(row Row) (Value, error) {
	return evalEquality("=", e.Left, e.Right, row, false)
}

// Accept implements Expr.
func (e *Equal) Accept(v Visitor) error { return v.VisitEqual(e) }

// NotEqual is the negation of Equal.
type NotEqual struct {
	Left, Right Expr
}

func (*NotEqual) expr() {}

// Evaluate implements Expr.
func (e *NotEqual) Evaluate(row Row) (Value, error) {
	return evalEquality("!=", e.Left, e.Right, row, true)
}

// Accept implements Expr.
func (e *NotEqual) Accept(v Visitor) error { return v.VisitNotEqual(e) }

// Less is the ordering comparison <.
type Less struct {
	Left, Right Expr
}

func (*Less) expr() {}

// Evaluate implements Expr.
func (e *Less) Evaluate(row Row) (Value, error) {
	return evalOrdered("<", e.Left, e.Right, row, func(a, b float64) bool { return a < b })
}

// Accept implements Expr.
func (e *Less) Accept(v Visitor) error { return v.VisitLess(e) }

// LessOrEqual is the ordering comparison <=.
type LessOrEqual struct {
	Left, Right Expr
}

func (*LessOrEqual) expr() {}

// Evaluate implements Expr.
func (e *LessOrEqual) Evaluate(row Row) (Value, error) {
	return evalOrdered("<=", e.Left, e.Right, row, func(a, b float64) bool { return a <= b })
}

// Accept implements Expr.
func (e *LessOrEqual) Accept(v Visitor) error { return v.VisitLessOrEqual(e) }

// Greater is the ordering comparison >.
type Greater struct {
	Left, Right Expr
}

func (*Greater) expr() {}

// Evaluate implements Expr.
func (e *Greater) Evaluate(row Row) (Value, error) {
	return evalOrdered(">", e.Left, e.Right, row, func(a, b float64) bool { return a > b })
}

// Accept implements Expr.
func (e *Greater) Accept(v Visitor) error { return v.VisitGreater(e) }

// GreaterOrEqual is the ordering comparison >=.
type GreaterOrEqual struct {
	Left, Right Expr
}

func (*GreaterOrEqual) expr() {}

// Evaluate implements Expr.
func (e *GreaterOrEqual) Evaluate(row Row) (Value, error) {
	return evalOrdered(">=", e.Left, e.Right, row, func(a, b float64) bool { return a >= b })
}

// Accept implements Expr.
func (e *GreaterOrEqual) Accept(v Visitor) error { return v.VisitGreaterOrEqual(e) }

// Add is numeric addition.
type Add struct {
	Left, Right Expr
}

func (*Add) expr() {}

// Evaluate implements Expr.
func (e *Add) Evaluate(row Row) (Value, error) {
	return evalArithmetic("+", e.Left, e.Right, row, func(a, b float64) float64 { return a + b })
}

// Accept implements Expr.
func (e *Add) Accept(v Visitor) error { return v.VisitAdd(e) }

// Subtract is numeric subtraction.
type Subtract struct {
	Left, Right Expr
}

func (*Subtract) expr() {}

// Evaluate implements Expr.
func (e *Subtract) Evaluate(row Row) (Value, error) {
	return evalArithmetic("-", e.Left, e.Right, row, func(a, b float64) float64 { return a - b })
}

// Accept implements Expr.
func (e *Subtract) Accept(v Visitor) error { return v.VisitSubtract(e) }

// Multiply is numeric multiplication.
type Multiply struct {
	Left, Right Expr
}

func (*Multiply) expr() {}

// Evaluate implements Expr.
func (e *Multiply) Evaluate(row Row) (Value, error) {
	return evalArithmetic("*", e.Left, e.Right, row, func(a, b float64) float64 { return a * b })
}

// Accept implements Expr.
func (e *Multiply) Accept(v Visitor) error { return v.VisitMultiply(e) }

// Divide is numeric division. Division by zero follows IEEE float semantics.
type Divide struct {
	Left, Right Expr
}

func (*Divide) expr() {}

// Evaluate implements Expr.
func (e *Divide) Evaluate(row Row) (Value, error) {
	return evalArithmetic("/", e.Left, e.Right, row, func(a, b float64) float64 { return a / b })
}

// Accept implements Expr.
func (e *Divide) Accept(v Visitor) error { return v.VisitDivide(e) }
