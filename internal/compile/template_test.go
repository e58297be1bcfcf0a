package compile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quadrantdb/quadrant/internal/rdf"
	"github.com/quadrantdb/quadrant/internal/sparql"
)

func TestClassifyTerm(t *testing.T) {
	tests := []struct {
		name    string
		pattern sparql.TermPattern
		want    NodeMapping
	}{
		{
			name:    "variable",
			pattern: sparql.Var("name"),
			want:    NodeMapping{IsVariable: true, Value: "name"},
		},
		{
			name:    "iri",
			pattern: sparql.Concrete(rdf.IRI{Value: "http://example.org/p"}),
			want:    NodeMapping{Value: "<http://example.org/p>"},
		},
		{
			name:    "plain literal",
			pattern: sparql.Concrete(rdf.Literal{Lexical: "hello"}),
			want:    NodeMapping{Value: "hello"},
		},
		{
			name:    "language tagged literal",
			pattern: sparql.Concrete(rdf.Literal{Lexical: "bonjour", Lang: "fr"}),
			want:    NodeMapping{Value: "bonjour@fr"},
		},
		{
			name: "typed literal",
			pattern: sparql.Concrete(rdf.Literal{
				Lexical:  "42",
				Datatype: rdf.IRI{Value: "http://www.w3.org/2001/XMLSchema#integer"},
			}),
			want: NodeMapping{Value: "42^^<http://www.w3.org/2001/XMLSchema#integer>"},
		},
		{
			name:    "blank node",
			pattern: sparql.Concrete(rdf.BlankNode{Label: "b0"}),
			want:    NodeMapping{Value: "b0"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := classifyTerm(tt.pattern)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClassifyTerm_TripleTermRejected(t *testing.T) {
	pattern := sparql.Concrete(rdf.TripleTerm{
		Subject:   rdf.IRI{Value: "http://example.org/s"},
		Predicate: rdf.IRI{Value: "http://example.org/p"},
		Object:    rdf.IRI{Value: "http://example.org/o"},
	})

	_, err := classifyTerm(pattern)

	var termErr *UnsupportedTermError
	require.ErrorAs(t, err, &termErr)
	assert.Equal(t, rdf.KindTripleTerm, termErr.Kind)
}

func TestCompileTemplate_PreservesOrderAndLength(t *testing.T) {
	template := []sparql.TriplePattern{
		{
			Subject:   sparql.Var("s"),
			Predicate: sparql.Concrete(rdf.IRI{Value: "http://example.org/a"}),
			Object:    sparql.Var("x"),
		},
		{
			Subject:   sparql.Var("s"),
			Predicate: sparql.Concrete(rdf.IRI{Value: "http://example.org/b"}),
			Object:    sparql.Var("y"),
		},
		{
			Subject:   sparql.Var("s"),
			Predicate: sparql.Concrete(rdf.IRI{Value: "http://example.org/c"}),
			Object:    sparql.Var("z"),
		},
	}

	mappings, err := CompileTemplate(template)
	require.NoError(t, err)
	require.Len(t, mappings, 3)

	assert.Equal(t, "<http://example.org/a>", mappings[0].Predicate.Value)
	assert.Equal(t, "<http://example.org/b>", mappings[1].Predicate.Value)
	assert.Equal(t, "<http://example.org/c>", mappings[2].Predicate.Value)
}

func TestCompileTemplate_MixedTriple(t *testing.T) {
	template := []sparql.TriplePattern{
		{
			Subject:   sparql.Var("s"),
			Predicate: sparql.Concrete(rdf.IRI{Value: "http://example.org/p"}),
			Object:    sparql.Concrete(rdf.Literal{Lexical: "lit"}),
		},
	}

	mappings, err := CompileTemplate(template)
	require.NoError(t, err)
	require.Len(t, mappings, 1)

	assert.Equal(t, TripleMapping{
		Subject:   NodeMapping{IsVariable: true, Value: "s"},
		Predicate: NodeMapping{Value: "<http://example.org/p>"},
		Object:    NodeMapping{Value: "lit"},
	}, mappings[0])
}

func TestCompileTemplate_ErrorNamesPosition(t *testing.T) {
	template := []sparql.TriplePattern{
		{
			Subject:   sparql.Var("s"),
			Predicate: sparql.Concrete(rdf.IRI{Value: "http://example.org/p"}),
			Object:    sparql.Var("o"),
		},
		{
			Subject:   sparql.Var("s"),
			Predicate: sparql.Concrete(rdf.IRI{Value: "http://example.org/p"}),
			Object: sparql.Concrete(rdf.TripleTerm{
				Subject:   rdf.IRI{Value: "http://example.org/s"},
				Predicate: rdf.IRI{Value: "http://example.org/p"},
				Object:    rdf.IRI{Value: "http://example.org/o"},
			}),
		},
	}

	_, err := CompileTemplate(template)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "template triple 1 object")
}

func TestCompileTemplate_Empty(t *testing.T) {
	mappings, err := CompileTemplate(nil)
	require.NoError(t, err)
	assert.Empty(t, mappings)
}
