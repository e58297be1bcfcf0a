package sparql

import (
	"fmt"

	"github.com/quadrantdb/quadrant/internal/rdf"
)

// QueryForm is the closed set of query forms. It determines which
// compilation pipeline runs.
type QueryForm int

const (
	// FormSelect projects variable bindings.
	FormSelect QueryForm = iota
	// FormConstruct builds output triples from a template.
	FormConstruct
	// FormAsk reports whether the pattern has any solution.
	FormAsk
	// FormDescribe has no compilation pipeline yet; Compile rejects it.
	FormDescribe
)

// String returns the form keyword.
func (f QueryForm) String() string {
	switch f {
	case FormSelect:
		return "SELECT"
	case FormConstruct:
		return "CONSTRUCT"
	case FormAsk:
		return "ASK"
	case FormDescribe:
		return "DESCRIBE"
	default:
		return fmt.Sprintf("unknown(%d)", int(f))
	}
}

// TermPattern is a triple-pattern position: either a variable name or a
// concrete RDF term. Exactly one of the two is set.
type TermPattern struct {
	// Var is the variable name without the leading "?", empty for
	// concrete terms.
	Var string
	// Term is the concrete term, nil for variables.
	Term rdf.Term
}

// Var builds a variable term pattern.
func Var(name string) TermPattern { return TermPattern{Var: name} }

// Concrete builds a concrete term pattern.
func Concrete(t rdf.Term) TermPattern { return TermPattern{Term: t} }

// IsVariable reports whether the position is a variable.
func (p TermPattern) IsVariable() bool { return p.Var != "" }

// String renders "?name" for variables and the term rendering otherwise.
func (p TermPattern) String() string {
	if p.IsVariable() {
		return "?" + p.Var
	}
	if p.Term == nil {
		return "<nil>"
	}
	return p.Term.String()
}

// TriplePattern is one subject/predicate/object pattern, used both in basic
// graph patterns and in CONSTRUCT templates.
type TriplePattern struct {
	Subject   TermPattern
	Predicate TermPattern
	Object    TermPattern
}

// String renders the pattern in triple order.
func (t TriplePattern) String() string {
	return fmt.Sprintf("%s %s %s", t.Subject, t.Predicate, t.Object)
}

// StructuredQuery is the parser's output: the query form, the compiled
// algebra tree, and (for CONSTRUCT) the construction template.
//
// Immutable once produced; the query compiler only reads it.
type StructuredQuery struct {
	Form    QueryForm
	Algebra Node
	// Template is the CONSTRUCT template, nil for every other form.
	Template []TriplePattern
}
