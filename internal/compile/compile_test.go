package compile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quadrantdb/quadrant/internal/plan"
	"github.com/quadrantdb/quadrant/internal/rdf"
	"github.com/quadrantdb/quadrant/internal/reasoning"
	"github.com/quadrantdb/quadrant/internal/sparql"
)

func testCompiler(tokens ...string) *Compiler {
	catalog := &reasoning.Catalog{
		Classes: map[string]reasoning.Interval{
			"http://example.org/Person": {Low: 10, High: 14},
		},
	}
	return New(
		plan.NewTransformer(),
		reasoning.NewRewriter(catalog),
		WithTokenGenerator(NewFixedTokens(tokens...)),
	)
}

func personQuery(form sparql.QueryForm) *sparql.StructuredQuery {
	q := &sparql.StructuredQuery{
		Form: form,
		Algebra: sparql.BGP{Patterns: []sparql.TriplePattern{
			{
				Subject:   sparql.Var("s"),
				Predicate: sparql.Concrete(rdf.IRI{Value: rdf.RDFType}),
				Object:    sparql.Concrete(rdf.IRI{Value: "http://example.org/Person"}),
			},
		}},
	}
	if form == sparql.FormConstruct {
		q.Template = []sparql.TriplePattern{
			{
				Subject:   sparql.Var("s"),
				Predicate: sparql.Concrete(rdf.IRI{Value: "http://example.org/label"}),
				Object:    sparql.Concrete(rdf.Literal{Lexical: "person"}),
			},
		}
	}
	return q
}

func TestCompile_PlainMode(t *testing.T) {
	c := testCompiler("q-1")

	compiled, err := c.Compile(personQuery(sparql.FormSelect), ModePlain)
	require.NoError(t, err)

	assert.Equal(t, "q-1", compiled.ID)
	assert.Equal(t, sparql.FormSelect, compiled.Form)
	assert.False(t, compiled.ReasoningEnabled)
	assert.Nil(t, compiled.Template)

	_, ok := compiled.Plan.(plan.TripleScan)
	assert.True(t, ok, "plain mode must not rewrite type scans")
}

func TestCompile_SemanticRewriteMode(t *testing.T) {
	c := testCompiler("q-1")

	compiled, err := c.Compile(personQuery(sparql.FormSelect), ModeSemanticRewrite)
	require.NoError(t, err)

	assert.True(t, compiled.ReasoningEnabled)

	scan, ok := compiled.Plan.(plan.LabelRangeScan)
	require.True(t, ok, "catalogued type scan should become a label range scan")
	assert.Equal(t, uint32(10), scan.Low)
	assert.Equal(t, uint32(14), scan.High)
}

func TestCompile_TemplatePresentOnlyForConstruct(t *testing.T) {
	c := testCompiler("q-1", "q-2", "q-3")

	for _, form := range []sparql.QueryForm{sparql.FormSelect, sparql.FormAsk} {
		compiled, err := c.Compile(personQuery(form), ModePlain)
		require.NoError(t, err)
		assert.Nil(t, compiled.Template, "form %s must not carry a template", form)
	}

	compiled, err := c.Compile(personQuery(sparql.FormConstruct), ModePlain)
	require.NoError(t, err)
	require.Len(t, compiled.Template, 1)
	assert.Equal(t, NodeMapping{IsVariable: true, Value: "s"}, compiled.Template[0].Subject)
	assert.Equal(t, NodeMapping{Value: "<http://example.org/label>"}, compiled.Template[0].Predicate)
	assert.Equal(t, NodeMapping{Value: "person"}, compiled.Template[0].Object)
}

func TestCompile_DescribeRejected(t *testing.T) {
	c := testCompiler("q-1")

	_, err := c.Compile(personQuery(sparql.FormDescribe), ModePlain)

	var formErr *UnsupportedQueryFormError
	require.ErrorAs(t, err, &formErr)
	assert.Equal(t, sparql.FormDescribe, formErr.Form)
}

func TestCompile_NilQueryRejected(t *testing.T) {
	c := testCompiler("q-1")

	_, err := c.Compile(nil, ModePlain)
	assert.Error(t, err)
}

func TestCompile_TransformErrorPropagates(t *testing.T) {
	c := testCompiler("q-1")

	q := &sparql.StructuredQuery{
		Form:    sparql.FormSelect,
		Algebra: sparql.BGP{},
	}

	_, err := c.Compile(q, ModePlain)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "transform algebra")
}

func TestCompile_Deterministic(t *testing.T) {
	c := testCompiler("q-1", "q-2")
	q := personQuery(sparql.FormSelect)

	first, err := c.Compile(q, ModeSemanticRewrite)
	require.NoError(t, err)
	second, err := c.Compile(q, ModeSemanticRewrite)
	require.NoError(t, err)

	assert.Equal(t, first.Plan, second.Plan)
	assert.Equal(t, first.Form, second.Form)
	assert.NotEqual(t, first.ID, second.ID, "each compilation gets its own ID")
}

func TestCompile_InputQueryUnchanged(t *testing.T) {
	c := testCompiler("q-1")
	q := personQuery(sparql.FormConstruct)
	before := *q

	_, err := c.Compile(q, ModePlain)
	require.NoError(t, err)

	assert.Equal(t, before.Form, q.Form)
	assert.Equal(t, before.Algebra, q.Algebra)
	assert.Equal(t, before.Template, q.Template)
}

func TestUUIDv7Tokens_Unique(t *testing.T) {
	gen := UUIDv7Tokens{}

	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		id := gen.Generate()
		assert.False(t, seen[id])
		seen[id] = true
	}
}

func TestFixedTokens_InOrder(t *testing.T) {
	gen := NewFixedTokens("a", "b")

	assert.Equal(t, "a", gen.Generate())
	assert.Equal(t, "b", gen.Generate())
	assert.Panics(t, func() { gen.Generate() })
}
