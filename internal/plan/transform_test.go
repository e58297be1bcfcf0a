package plan

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quadrantdb/quadrant/internal/expr"
	"github.com/quadrantdb/quadrant/internal/rdf"
	"github.com/quadrantdb/quadrant/internal/sparql"
)

func pattern(s, p, o string) sparql.TriplePattern {
	term := func(v string) sparql.TermPattern {
		if len(v) > 0 && v[0] == '?' {
			return sparql.Var(v[1:])
		}
		return sparql.Concrete(rdf.IRI{Value: v})
	}
	return sparql.TriplePattern{Subject: term(s), Predicate: term(p), Object: term(o)}
}

func TestTransform_SingleTripleScan(t *testing.T) {
	tr := NewTransformer()

	op, err := tr.Transform(sparql.BGP{Patterns: []sparql.TriplePattern{
		pattern("?s", "http://example.org/p", "?o"),
	}})
	require.NoError(t, err)

	scan, ok := op.(TripleScan)
	require.True(t, ok)
	assert.Equal(t, "?s", scan.Pattern.Subject.String())
}

func TestTransform_BGPLeftDeepJoins(t *testing.T) {
	tr := NewTransformer()

	op, err := tr.Transform(sparql.BGP{Patterns: []sparql.TriplePattern{
		pattern("?s", "http://example.org/a", "?x"),
		pattern("?s", "http://example.org/b", "?y"),
		pattern("?s", "http://example.org/c", "?z"),
	}})
	require.NoError(t, err)

	// ((scan a ⋈ scan b) ⋈ scan c) - authored order, left deep.
	outer, ok := op.(HashJoin)
	require.True(t, ok)
	inner, ok := outer.Left.(HashJoin)
	require.True(t, ok)

	first, ok := inner.Left.(TripleScan)
	require.True(t, ok)
	assert.Equal(t, "<http://example.org/a>", first.Pattern.Predicate.String())

	last, ok := outer.Right.(TripleScan)
	require.True(t, ok)
	assert.Equal(t, "<http://example.org/c>", last.Pattern.Predicate.String())
}

func TestTransform_EmptyBGP(t *testing.T) {
	_, err := NewTransformer().Transform(sparql.BGP{})
	assert.Error(t, err)
}

func TestTransform_NilNode(t *testing.T) {
	_, err := NewTransformer().Transform(nil)
	assert.Error(t, err)
}

func TestTransform_FullPipeline(t *testing.T) {
	tr := NewTransformer()

	algebra := sparql.Slice{
		Offset: 0,
		Limit:  10,
		Input: sparql.Distinct{
			Input: sparql.Project{
				Vars: []string{"name"},
				Input: sparql.Filter{
					Condition: &expr.Less{
						Left:  &expr.Variable{Name: "age"},
						Right: &expr.Constant{Value: expr.Number(30)},
					},
					Input: sparql.BGP{Patterns: []sparql.TriplePattern{
						pattern("?person", "http://example.org/name", "?name"),
						pattern("?person", "http://example.org/age", "?age"),
					}},
				},
			},
		},
	}

	op, err := tr.Transform(algebra)
	require.NoError(t, err)

	limit, ok := op.(Limit)
	require.True(t, ok)
	assert.Equal(t, 10, limit.Count)

	distinct, ok := limit.Input.(Distinct)
	require.True(t, ok)
	projection, ok := distinct.Input.(Projection)
	require.True(t, ok)
	assert.Equal(t, []string{"name"}, projection.Vars)
	selection, ok := projection.Input.(Selection)
	require.True(t, ok)
	_, ok = selection.Input.(HashJoin)
	require.True(t, ok)
}

func TestTransform_UnionAndExtend(t *testing.T) {
	tr := NewTransformer()

	algebra := sparql.Union{
		Left: sparql.Extend{
			Var: "double",
			Expression: &expr.Multiply{
				Left:  &expr.Variable{Name: "n"},
				Right: &expr.Constant{Value: expr.Number(2)},
			},
			Input: sparql.BGP{Patterns: []sparql.TriplePattern{
				pattern("?s", "http://example.org/n", "?n"),
			}},
		},
		Right: sparql.BGP{Patterns: []sparql.TriplePattern{
			pattern("?s", "http://example.org/m", "?n"),
		}},
	}

	op, err := tr.Transform(algebra)
	require.NoError(t, err)

	union, ok := op.(Union)
	require.True(t, ok)
	bind, ok := union.Left.(Bind)
	require.True(t, ok)
	assert.Equal(t, "double", bind.Var)
}

func TestTransform_Deterministic(t *testing.T) {
	tr := NewTransformer()

	algebra := sparql.Filter{
		Condition: &expr.GreaterOrEqual{
			Left:  &expr.Variable{Name: "age"},
			Right: &expr.Constant{Value: expr.Number(18)},
		},
		Input: sparql.BGP{Patterns: []sparql.TriplePattern{
			pattern("?s", "http://example.org/age", "?age"),
			pattern("?s", "http://example.org/name", "?name"),
		}},
	}

	first, err := tr.Transform(algebra)
	require.NoError(t, err)
	second, err := tr.Transform(algebra)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, Render(first), Render(second))
}
