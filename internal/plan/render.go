package plan

import (
	"fmt"
	"strings"

	"github.com/quadrantdb/quadrant/internal/expr"
)

// Render produces a deterministic, indented text rendering of an operator
// tree. The CLI explain command prints it and the conformance harness
// compares it against golden files, so the format must stay stable.
func Render(op Operator) string {
	var b strings.Builder
	renderOp(&b, op, 0)
	return b.String()
}

func renderOp(b *strings.Builder, op Operator, depth int) {
	indent := strings.Repeat("  ", depth)

	switch o := op.(type) {
	case TripleScan:
		fmt.Fprintf(b, "%sTripleScan %s\n", indent, o.Pattern)
	case LabelRangeScan:
		fmt.Fprintf(b, "%sLabelRangeScan %s class=%s labels=[%d,%d)\n",
			indent, o.Subject, o.Class, o.Low, o.High)
	case PredicateRangeScan:
		fmt.Fprintf(b, "%sPredicateRangeScan %s %s property=%s labels=[%d,%d)\n",
			indent, o.Subject, o.Object, o.Property, o.Low, o.High)
	case HashJoin:
		fmt.Fprintf(b, "%sHashJoin\n", indent)
		renderOp(b, o.Left, depth+1)
		renderOp(b, o.Right, depth+1)
	case Union:
		fmt.Fprintf(b, "%sUnion\n", indent)
		renderOp(b, o.Left, depth+1)
		renderOp(b, o.Right, depth+1)
	case Selection:
		fmt.Fprintf(b, "%sSelection %s\n", indent, RenderExpr(o.Condition))
		renderOp(b, o.Input, depth+1)
	case Bind:
		fmt.Fprintf(b, "%sBind ?%s := %s\n", indent, o.Var, RenderExpr(o.Expression))
		renderOp(b, o.Input, depth+1)
	case Projection:
		fmt.Fprintf(b, "%sProjection [%s]\n", indent, strings.Join(o.Vars, ", "))
		renderOp(b, o.Input, depth+1)
	case Distinct:
		fmt.Fprintf(b, "%sDistinct\n", indent)
		renderOp(b, o.Input, depth+1)
	case Limit:
		count := "all"
		if o.Count >= 0 {
			count = fmt.Sprintf("%d", o.Count)
		}
		fmt.Fprintf(b, "%sLimit offset=%d count=%s\n", indent, o.Offset, count)
		renderOp(b, o.Input, depth+1)
	case Sort:
		keys := make([]string, len(o.Keys))
		for i, k := range o.Keys {
			dir := "asc"
			if k.Descending {
				dir = "desc"
			}
			keys[i] = RenderExpr(k.Expression) + " " + dir
		}
		fmt.Fprintf(b, "%sSort [%s]\n", indent, strings.Join(keys, ", "))
		renderOp(b, o.Input, depth+1)
	default:
		fmt.Fprintf(b, "%sunknown operator %T\n", indent, op)
	}
}

// RenderExpr renders an expression in infix form. It is implemented as an
// expr.Visitor, so a new operator kind cannot be added without this renderer
// learning about it.
func RenderExpr(e expr.Expr) string {
	r := &exprRenderer{}
	if err := e.Accept(r); err != nil {
		// The renderer itself never fails; this only guards nil children
		// in hand-built trees.
		return fmt.Sprintf("<invalid expr: %v>", err)
	}
	return r.b.String()
}

type exprRenderer struct {
	b strings.Builder
}

func (r *exprRenderer) binary(op string, left, right expr.Expr) error {
	r.b.WriteString("(")
	if err := left.Accept(r); err != nil {
		return err
	}
	r.b.WriteString(" " + op + " ")
	if err := right.Accept(r); err != nil {
		return err
	}
	r.b.WriteString(")")
	return nil
}

func (r *exprRenderer) unary(op string, operand expr.Expr) error {
	r.b.WriteString("(" + op)
	if err := operand.Accept(r); err != nil {
		return err
	}
	r.b.WriteString(")")
	return nil
}

func (r *exprRenderer) VisitConstant(n *expr.Constant) error {
	r.b.WriteString(expr.Format(n.Value))
	return nil
}

func (r *exprRenderer) VisitVariable(n *expr.Variable) error {
	r.b.WriteString("?" + n.Name)
	return nil
}

func (r *exprRenderer) VisitNot(n *expr.Not) error    { return r.unary("!", n.Operand) }
func (r *exprRenderer) VisitNegate(n *expr.Negate) error { return r.unary("-", n.Operand) }

func (r *exprRenderer) VisitAnd(n *expr.And) error { return r.binary("&&", n.Left, n.Right) }
func (r *exprRenderer) VisitOr(n *expr.Or) error   { return r.binary("||", n.Left, n.Right) }

func (r *exprRenderer) VisitEqual(n *expr.Equal) error       { return r.binary("=", n.Left, n.Right) }
func (r *exprRenderer) VisitNotEqual(n *expr.NotEqual) error { return r.binary("!=", n.Left, n.Right) }
func (r *exprRenderer) VisitLess(n *expr.Less) error         { return r.binary("<", n.Left, n.Right) }
func (r *exprRenderer) VisitLessOrEqual(n *expr.LessOrEqual) error {
	return r.binary("<=", n.Left, n.Right)
}
func (r *exprRenderer) VisitGreater(n *expr.Greater) error { return r.binary(">", n.Left, n.Right) }
func (r *exprRenderer) VisitGreaterOrEqual(n *expr.GreaterOrEqual) error {
	return r.binary(">=", n.Left, n.Right)
}

func (r *exprRenderer) VisitAdd(n *expr.Add) error           { return r.binary("+", n.Left, n.Right) }
func (r *exprRenderer) VisitSubtract(n *expr.Subtract) error { return r.binary("-", n.Left, n.Right) }
func (r *exprRenderer) VisitMultiply(n *expr.Multiply) error { return r.binary("*", n.Left, n.Right) }
func (r *exprRenderer) VisitDivide(n *expr.Divide) error     { return r.binary("/", n.Left, n.Right) }
