package rdf

// Well-known vocabulary IRIs used by the reasoning rewriter.
const (
	// RDFType is the rdf:type predicate IRI.
	RDFType = "http://www.w3.org/1999/02/22-rdf-syntax-ns#type"

	// RDFSSubClassOf is the rdfs:subClassOf predicate IRI.
	RDFSSubClassOf = "http://www.w3.org/2000/01/rdf-schema#subClassOf"

	// RDFSSubPropertyOf is the rdfs:subPropertyOf predicate IRI.
	RDFSSubPropertyOf = "http://www.w3.org/2000/01/rdf-schema#subPropertyOf"
)

// IsType reports whether the term is the rdf:type predicate.
func IsType(t Term) bool {
	iri, ok := t.(IRI)
	return ok && iri.Value == RDFType
}
