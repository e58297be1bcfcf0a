package sparql

import "github.com/quadrantdb/quadrant/internal/expr"

// Node is an algebra-tree operator produced by the parser.
//
// This is a sealed interface - only types in this package implement it.
// The marker method pattern prevents external implementations and enables
// exhaustive type switches in the plan transformers: an algebra kind the
// transformer does not handle is a compile-visible default case, never a
// silent skip.
type Node interface {
	algebraNode() // Marker method - seals interface to this package
}

// BGP is a basic graph pattern: a conjunction of triple patterns matched
// against the data. Pattern order is the authored order.
type BGP struct {
	Patterns []TriplePattern
}

func (BGP) algebraNode() {}

// Join combines the solutions of two subtrees on their shared variables.
type Join struct {
	Left, Right Node
}

func (Join) algebraNode() {}

// Union concatenates the solutions of two subtrees.
type Union struct {
	Left, Right Node
}

func (Union) algebraNode() {}

// Filter keeps only solutions for which the condition evaluates to true.
type Filter struct {
	Condition expr.Expr
	Input     Node
}

func (Filter) algebraNode() {}

// Extend binds a new variable to the value of an expression (BIND).
type Extend struct {
	Var        string
	Expression expr.Expr
	Input      Node
}

func (Extend) algebraNode() {}

// Project restricts solutions to the named variables, in order.
type Project struct {
	Vars  []string
	Input Node
}

func (Project) algebraNode() {}

// Distinct removes duplicate solutions.
type Distinct struct {
	Input Node
}

func (Distinct) algebraNode() {}

// Slice applies OFFSET and LIMIT. Limit < 0 means unbounded.
type Slice struct {
	Offset int
	Limit  int
	Input  Node
}

func (Slice) algebraNode() {}

// OrderBy sorts solutions by the given keys, in key order.
type OrderBy struct {
	Keys  []OrderKey
	Input Node
}

func (OrderBy) algebraNode() {}

// OrderKey is one sort key of an OrderBy node.
type OrderKey struct {
	Expression expr.Expr
	Descending bool
}
