package rdf

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTermKinds(t *testing.T) {
	testCases := []struct {
		name string
		term Term
		kind TermKind
	}{
		{"iri", IRI{Value: "http://example.org/p"}, KindIRI},
		{"literal", Literal{Lexical: "42"}, KindLiteral},
		{"blank", BlankNode{Label: "b0"}, KindBlankNode},
		{"triple term", TripleTerm{
			Subject:   IRI{Value: "http://example.org/a"},
			Predicate: IRI{Value: "http://example.org/p"},
			Object:    Literal{Lexical: "x"},
		}, KindTripleTerm},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.kind, tc.term.Kind())
		})
	}
}

func TestIRIString(t *testing.T) {
	iri := IRI{Value: "http://example.org/Person"}
	assert.Equal(t, "<http://example.org/Person>", iri.String())
	assert.Equal(t, "<http://example.org/Person>", iri.Canonical())
}

func TestIRICanonicalNormalizesNFC(t *testing.T) {
	// "é" as combining sequence (e + U+0301) normalizes to precomposed U+00E9.
	decomposed := IRI{Value: "http://example.org/cafe\u0301"}
	precomposed := IRI{Value: "http://example.org/caf\u00e9"}

	assert.Equal(t, precomposed.Canonical(), decomposed.Canonical())
	assert.NotEqual(t, precomposed.String(), decomposed.String())
}

func TestLiteralRendering(t *testing.T) {
	testCases := []struct {
		name    string
		lit     Literal
		str     string
		value   string
	}{
		{
			name:  "plain",
			lit:   Literal{Lexical: "hello"},
			str:   `"hello"`,
			value: "hello",
		},
		{
			name:  "language tagged",
			lit:   Literal{Lexical: "chat", Lang: "fr"},
			str:   `"chat"@fr`,
			value: "chat@fr",
		},
		{
			name: "typed",
			lit: Literal{
				Lexical:  "42",
				Datatype: IRI{Value: "http://www.w3.org/2001/XMLSchema#integer"},
			},
			str:   `"42"^^<http://www.w3.org/2001/XMLSchema#integer>`,
			value: "42^^<http://www.w3.org/2001/XMLSchema#integer>",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.str, tc.lit.String())
			assert.Equal(t, tc.value, tc.lit.Value())
		})
	}
}

func TestBlankNodeString(t *testing.T) {
	assert.Equal(t, "_:b12", BlankNode{Label: "b12"}.String())
}

func TestIsType(t *testing.T) {
	assert.True(t, IsType(IRI{Value: RDFType}))
	assert.False(t, IsType(IRI{Value: RDFSSubClassOf}))
	assert.False(t, IsType(Literal{Lexical: RDFType}))
}
