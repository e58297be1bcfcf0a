// Package compile is the query compiler's entry point: it turns a parsed
// structured query plus a reasoning mode into the single CompiledQuery
// artifact the execution engine consumes.
package compile

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/quadrantdb/quadrant/internal/plan"
	"github.com/quadrantdb/quadrant/internal/sparql"
)

// Mode selects the compilation strategy. It is fixed for the lifetime of
// the resulting CompiledQuery and orthogonal to the query form.
type Mode int

const (
	// ModePlain lowers the algebra directly, without reasoning.
	ModePlain Mode = iota
	// ModeSemanticRewrite lowers through the reasoning rewriter.
	ModeSemanticRewrite
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case ModePlain:
		return "plain"
	case ModeSemanticRewrite:
		return "semantic-rewrite"
	default:
		return fmt.Sprintf("unknown(%d)", int(m))
	}
}

// CompiledQuery is the sole artifact handed to the execution engine.
// Immutable after construction.
//
// INVARIANTS:
//   - Template is non-nil if and only if Form is CONSTRUCT.
//   - ReasoningEnabled is set at compile time and never toggled.
//   - Exactly one operator tree exists; the two strategies are mutually
//     exclusive and never composed.
type CompiledQuery struct {
	// ID is a UUIDv7 correlating this compilation with execution traces.
	ID string

	Form             sparql.QueryForm
	ReasoningEnabled bool
	Plan             plan.Operator

	// Template is the compiled CONSTRUCT template, in authored triple
	// order. Nil for every other form.
	Template []TripleMapping
}

// Compiler dispatches structured queries to the correct pipeline.
//
// It holds the two transformation strategies (plain and reasoning); Compile
// invokes exactly one of them per query, selected by the mode. Compilation
// is a pure transformation with no shared mutable state, so a single
// Compiler is safe for concurrent use when its transformers are.
type Compiler struct {
	plain     plan.Transformer
	reasoning plan.Transformer
	tokens    TokenGenerator
	logger    *slog.Logger
}

// Option configures a Compiler.
type Option func(*Compiler)

// WithTokenGenerator overrides the query ID generator.
// Tests use FixedTokens for deterministic IDs.
func WithTokenGenerator(g TokenGenerator) Option {
	return func(c *Compiler) {
		c.tokens = g
	}
}

// WithLogger overrides the compiler's logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Compiler) {
		c.logger = l
	}
}

// New creates a Compiler from its two strategies.
//
// plain handles ModePlain, reasoning handles ModeSemanticRewrite. Both are
// assumed referentially transparent: the same algebra tree always yields an
// equivalent operator tree, so compilation is deterministic.
func New(plain, reasoning plan.Transformer, opts ...Option) *Compiler {
	c := &Compiler{
		plain:     plain,
		reasoning: reasoning,
		tokens:    UUIDv7Tokens{},
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Compile compiles a structured query under the given mode.
//
// The algebra tree is handed to exactly one strategy; for CONSTRUCT the
// template is additionally compiled and attached. Transformer errors
// propagate wrapped, never masked: compilation failures are deterministic
// for a given input and not retryable.
func (c *Compiler) Compile(q *sparql.StructuredQuery, mode Mode) (*CompiledQuery, error) {
	if q == nil {
		return nil, fmt.Errorf("cannot compile nil query")
	}

	switch q.Form {
	case sparql.FormSelect, sparql.FormAsk, sparql.FormConstruct:
		// Supported below.
	default:
		return nil, &UnsupportedQueryFormError{Form: q.Form}
	}

	transformer := c.plain
	if mode == ModeSemanticRewrite {
		transformer = c.reasoning
	}
	if transformer == nil {
		return nil, fmt.Errorf("no %s transformer configured", mode)
	}

	operator, err := transformer.Transform(q.Algebra)
	if err != nil {
		return nil, fmt.Errorf("transform algebra: %w", err)
	}

	compiled := &CompiledQuery{
		ID:               c.tokens.Generate(),
		Form:             q.Form,
		ReasoningEnabled: mode == ModeSemanticRewrite,
		Plan:             operator,
	}

	if q.Form == sparql.FormConstruct {
		template, err := CompileTemplate(q.Template)
		if err != nil {
			return nil, fmt.Errorf("compile template: %w", err)
		}
		compiled.Template = template
	}

	c.logger.Debug("query compiled",
		"query_id", compiled.ID,
		"form", compiled.Form.String(),
		"mode", mode.String(),
		"template_triples", len(compiled.Template))

	return compiled, nil
}
