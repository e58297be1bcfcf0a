package compile

import (
	"fmt"

	"github.com/quadrantdb/quadrant/internal/rdf"
	"github.com/quadrantdb/quadrant/internal/sparql"
)

// UnsupportedQueryFormError is returned when the query form has no
// compilation pipeline. Describe is the one known case today; see DESIGN.md.
type UnsupportedQueryFormError struct {
	Form sparql.QueryForm
}

// Error implements the error interface.
func (e *UnsupportedQueryFormError) Error() string {
	return fmt.Sprintf("no compilation pipeline for %s queries", e.Form)
}

// UnsupportedTermError is returned when a CONSTRUCT template term falls
// outside the four classifiable node kinds (variable, IRI, literal, blank
// node). Rejecting explicitly keeps a future term kind from being silently
// mis-rendered into output triples.
type UnsupportedTermError struct {
	Kind rdf.TermKind
}

// Error implements the error interface.
func (e *UnsupportedTermError) Error() string {
	return fmt.Sprintf("cannot classify template term of kind %s", e.Kind)
}
