package rdf

import (
	"fmt"

	"golang.org/x/text/unicode/norm"
)

// TermKind identifies the concrete kind of an RDF term.
type TermKind uint8

const (
	// KindIRI is an IRI reference.
	KindIRI TermKind = iota
	// KindLiteral is a literal with optional datatype or language tag.
	KindLiteral
	// KindBlankNode is a blank node.
	KindBlankNode
	// KindTripleTerm is an RDF-star quoted triple.
	KindTripleTerm
)

// String returns the kind name used in error messages.
func (k TermKind) String() string {
	switch k {
	case KindIRI:
		return "iri"
	case KindLiteral:
		return "literal"
	case KindBlankNode:
		return "blank node"
	case KindTripleTerm:
		return "triple term"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(k))
	}
}

// Term is a value that can appear in a triple position.
//
// This is a sealed interface - only types in this package implement it.
// The marker method pattern prevents external implementations and enables
// exhaustive type switches in the template classifier and plan renderer.
type Term interface {
	Kind() TermKind
	String() string
	term() // Marker method - seals interface to this package
}

// IRI is an RDF IRI reference.
type IRI struct {
	// Value is the raw IRI string, without angle brackets.
	Value string
}

func (IRI) term() {}

// Kind returns KindIRI.
func (IRI) Kind() TermKind { return KindIRI }

// String returns the IRI wrapped in angle brackets.
func (i IRI) String() string { return "<" + i.Value + ">" }

// Canonical returns the angle-bracketed IRI with its value NFC normalized.
// Two IRIs that differ only in Unicode normalization render identically,
// which keeps compiled template mappings stable across parsers.
func (i IRI) Canonical() string { return "<" + norm.NFC.String(i.Value) + ">" }

// Literal is an RDF literal: a lexical form plus an optional datatype IRI
// or language tag. A literal has at most one of the two.
type Literal struct {
	// Lexical is the lexical form of the literal.
	Lexical string
	// Datatype is the datatype IRI, zero value when absent.
	Datatype IRI
	// Lang is the language tag, empty when absent.
	Lang string
}

func (Literal) term() {}

// Kind returns KindLiteral.
func (Literal) Kind() TermKind { return KindLiteral }

// String returns the quoted N-Triples style rendering.
func (l Literal) String() string {
	if l.Lang != "" {
		return fmt.Sprintf("%q@%s", l.Lexical, l.Lang)
	}
	if l.Datatype.Value != "" {
		return fmt.Sprintf("%q^^%s", l.Lexical, l.Datatype)
	}
	return fmt.Sprintf("%q", l.Lexical)
}

// Value returns the unquoted value rendering used by template compilation:
// the NFC-normalized lexical form, with the language tag or datatype suffix
// appended when the literal carries one.
func (l Literal) Value() string {
	lex := norm.NFC.String(l.Lexical)
	if l.Lang != "" {
		return lex + "@" + l.Lang
	}
	if l.Datatype.Value != "" {
		return lex + "^^" + l.Datatype.Canonical()
	}
	return lex
}

// BlankNode is an RDF blank node.
type BlankNode struct {
	// Label is the blank node label, without the "_:" prefix.
	Label string
}

func (BlankNode) term() {}

// Kind returns KindBlankNode.
func (BlankNode) Kind() TermKind { return KindBlankNode }

// String returns the label prefixed with "_:".
func (b BlankNode) String() string { return "_:" + b.Label }

// TripleTerm is an RDF-star quoted triple appearing in a term position.
//
// The query compiler does not support quoted triples in CONSTRUCT templates;
// the kind exists so the classifier can reject them explicitly instead of
// mis-rendering them.
type TripleTerm struct {
	Subject   Term
	Predicate IRI
	Object    Term
}

func (TripleTerm) term() {}

// Kind returns KindTripleTerm.
func (TripleTerm) Kind() TermKind { return KindTripleTerm }

// String returns the "<< s p o >>" rendering.
func (t TripleTerm) String() string {
	return fmt.Sprintf("<<%s %s %s>>", t.Subject, t.Predicate, t.Object)
}
