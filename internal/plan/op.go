package plan

import (
	"github.com/quadrantdb/quadrant/internal/expr"
	"github.com/quadrantdb/quadrant/internal/rdf"
	"github.com/quadrantdb/quadrant/internal/sparql"
)

// Operator is one node of the compiled, execution-ready plan walked by the
// distributed execution engine.
//
// This is a sealed interface - only types in this package implement it.
// The engine and the reasoning rewriter type-switch exhaustively over it.
type Operator interface {
	operator() // Marker method - seals interface to this package
}

// TripleScan matches one triple pattern against the partitioned store.
type TripleScan struct {
	Pattern sparql.TriplePattern
}

func (TripleScan) operator() {}

// LabelRangeScan is a reasoning-rewritten class-membership scan: instead of
// matching rdf:type against one class IRI, the engine scans the compacted
// label interval [Low, High) covering the class and its entire subclass
// closure.
type LabelRangeScan struct {
	Subject sparql.TermPattern
	// Class is the class IRI the interval was derived from, kept for
	// explain output.
	Class rdf.IRI
	Low   uint32
	High  uint32
}

func (LabelRangeScan) operator() {}

// PredicateRangeScan is the property analogue of LabelRangeScan: one scan
// over the label interval of a property and its subproperty closure.
type PredicateRangeScan struct {
	Subject sparql.TermPattern
	Object  sparql.TermPattern
	// Property is the property IRI the interval was derived from.
	Property rdf.IRI
	Low      uint32
	High     uint32
}

func (PredicateRangeScan) operator() {}

// HashJoin joins two inputs on their shared variables.
type HashJoin struct {
	Left, Right Operator
}

func (HashJoin) operator() {}

// Union concatenates the rows of two inputs.
type Union struct {
	Left, Right Operator
}

func (Union) operator() {}

// Selection filters rows by an expression evaluated once per row.
type Selection struct {
	Condition expr.Expr
	Input     Operator
}

func (Selection) operator() {}

// Bind extends each row with a new variable computed from an expression.
type Bind struct {
	Var        string
	Expression expr.Expr
	Input      Operator
}

func (Bind) operator() {}

// Projection restricts rows to the named variables, in order.
type Projection struct {
	Vars  []string
	Input Operator
}

func (Projection) operator() {}

// Distinct removes duplicate rows.
type Distinct struct {
	Input Operator
}

func (Distinct) operator() {}

// Limit applies offset and count. Count < 0 means unbounded.
type Limit struct {
	Offset int
	Count  int
	Input  Operator
}

func (Limit) operator() {}

// Sort orders rows by the given keys.
type Sort struct {
	Keys  []SortKey
	Input Operator
}

func (Sort) operator() {}

// SortKey is one sort key of a Sort operator.
type SortKey struct {
	Expression expr.Expr
	Descending bool
}
