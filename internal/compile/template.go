package compile

import (
	"fmt"

	"github.com/quadrantdb/quadrant/internal/rdf"
	"github.com/quadrantdb/quadrant/internal/sparql"
)

// NodeMapping is one position of a compiled CONSTRUCT template triple.
//
// When IsVariable is set, Value is the variable name to look up in each
// bound row at assembly time. Otherwise Value is the final rendering to emit
// directly: an angle-bracketed IRI, a literal's lexical value, or a blank
// node label.
type NodeMapping struct {
	IsVariable bool
	Value      string
}

// TripleMapping is one compiled template triple.
type TripleMapping struct {
	Subject   NodeMapping
	Predicate NodeMapping
	Object    NodeMapping
}

// CompileTemplate compiles a CONSTRUCT template into per-triple
// reconstruction instructions.
//
// The result is order- and length-preserving: mapping i derives only from
// template triple i, and CONSTRUCT output triple order follows it.
func CompileTemplate(template []sparql.TriplePattern) ([]TripleMapping, error) {
	mappings := make([]TripleMapping, len(template))

	for i, triple := range template {
		subject, err := classifyTerm(triple.Subject)
		if err != nil {
			return nil, fmt.Errorf("template triple %d subject: %w", i, err)
		}
		predicate, err := classifyTerm(triple.Predicate)
		if err != nil {
			return nil, fmt.Errorf("template triple %d predicate: %w", i, err)
		}
		object, err := classifyTerm(triple.Object)
		if err != nil {
			return nil, fmt.Errorf("template triple %d object: %w", i, err)
		}

		mappings[i] = TripleMapping{
			Subject:   subject,
			Predicate: predicate,
			Object:    object,
		}
	}

	return mappings, nil
}

// classifyTerm maps one template position to its node mapping:
//
//	variable   -> {true,  variable name}
//	IRI        -> {false, "<iri>"}
//	literal    -> {false, lexical value (with lang/datatype suffix if any)}
//	blank node -> {false, label}
//
// Any other term kind is rejected with UnsupportedTermError.
func classifyTerm(p sparql.TermPattern) (NodeMapping, error) {
	if p.IsVariable() {
		return NodeMapping{IsVariable: true, Value: p.Var}, nil
	}

	switch term := p.Term.(type) {
	case rdf.IRI:
		return NodeMapping{Value: term.Canonical()}, nil
	case rdf.Literal:
		return NodeMapping{Value: term.Value()}, nil
	case rdf.BlankNode:
		return NodeMapping{Value: term.Label}, nil
	case nil:
		return NodeMapping{}, fmt.Errorf("template term is neither a variable nor a concrete term")
	default:
		return NodeMapping{}, &UnsupportedTermError{Kind: term.Kind()}
	}
}
