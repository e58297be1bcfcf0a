package sparql

import (
	"encoding/json"
	"fmt"

	"github.com/quadrantdb/quadrant/internal/expr"
	"github.com/quadrantdb/quadrant/internal/rdf"
)

// JSON decoding for query files consumed by the CLI and the conformance
// harness. A query file carries an already-parsed query, never query text:
//
//	{"form": "construct",
//	 "algebra": {"op": "bgp", "patterns": [...]},
//	 "template": [{"subject": {"var": "s"}, ...}]}
//
// Algebra nodes are discriminated by an "op" key; term patterns carry
// exactly one of "var", "iri", "literal", or "blank".

// DecodeQuery parses a structured-query JSON document.
func DecodeQuery(data []byte) (*StructuredQuery, error) {
	var raw struct {
		Form     string            `json:"form"`
		Algebra  json.RawMessage   `json:"algebra"`
		Template []json.RawMessage `json:"template,omitempty"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	form, err := parseForm(raw.Form)
	if err != nil {
		return nil, err
	}

	if len(raw.Algebra) == 0 {
		return nil, fmt.Errorf("query requires an algebra tree")
	}
	algebra, err := DecodeNode(raw.Algebra)
	if err != nil {
		return nil, fmt.Errorf("algebra: %w", err)
	}

	q := &StructuredQuery{Form: form, Algebra: algebra}

	if form == FormConstruct {
		if len(raw.Template) == 0 {
			return nil, fmt.Errorf("construct query requires a template")
		}
		q.Template = make([]TriplePattern, len(raw.Template))
		for i, t := range raw.Template {
			tp, err := decodeTriplePattern(t)
			if err != nil {
				return nil, fmt.Errorf("template[%d]: %w", i, err)
			}
			q.Template[i] = tp
		}
	} else if len(raw.Template) > 0 {
		return nil, fmt.Errorf("%s query must not carry a template", form)
	}

	return q, nil
}

func parseForm(s string) (QueryForm, error) {
	switch s {
	case "select":
		return FormSelect, nil
	case "construct":
		return FormConstruct, nil
	case "ask":
		return FormAsk, nil
	case "describe":
		return FormDescribe, nil
	default:
		return 0, fmt.Errorf("unknown query form %q", s)
	}
}

// DecodeNode parses one algebra node.
func DecodeNode(data []byte) (Node, error) {
	var raw struct {
		Op       string            `json:"op"`
		Patterns []json.RawMessage `json:"patterns,omitempty"`
		Left     json.RawMessage   `json:"left,omitempty"`
		Right    json.RawMessage   `json:"right,omitempty"`
		Input    json.RawMessage   `json:"input,omitempty"`
		Cond     json.RawMessage   `json:"condition,omitempty"`
		Var      string            `json:"var,omitempty"`
		Expr     json.RawMessage   `json:"expression,omitempty"`
		Vars     []string          `json:"vars,omitempty"`
		Offset   int               `json:"offset,omitempty"`
		Limit    *int              `json:"limit,omitempty"`
		Keys     []json.RawMessage `json:"keys,omitempty"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	switch raw.Op {
	case "bgp":
		if len(raw.Patterns) == 0 {
			return nil, fmt.Errorf("bgp requires at least one pattern")
		}
		patterns := make([]TriplePattern, len(raw.Patterns))
		for i, p := range raw.Patterns {
			tp, err := decodeTriplePattern(p)
			if err != nil {
				return nil, fmt.Errorf("bgp pattern[%d]: %w", i, err)
			}
			patterns[i] = tp
		}
		return BGP{Patterns: patterns}, nil

	case "join", "union":
		left, err := decodeChildNode(raw.Op, "left", raw.Left)
		if err != nil {
			return nil, err
		}
		right, err := decodeChildNode(raw.Op, "right", raw.Right)
		if err != nil {
			return nil, err
		}
		if raw.Op == "join" {
			return Join{Left: left, Right: right}, nil
		}
		return Union{Left: left, Right: right}, nil

	case "filter":
		cond, err := decodeCondition(raw.Op, raw.Cond)
		if err != nil {
			return nil, err
		}
		input, err := decodeChildNode(raw.Op, "input", raw.Input)
		if err != nil {
			return nil, err
		}
		return Filter{Condition: cond, Input: input}, nil

	case "extend":
		if raw.Var == "" {
			return nil, fmt.Errorf("extend requires var")
		}
		e, err := decodeCondition(raw.Op, raw.Expr)
		if err != nil {
			return nil, err
		}
		input, err := decodeChildNode(raw.Op, "input", raw.Input)
		if err != nil {
			return nil, err
		}
		return Extend{Var: raw.Var, Expression: e, Input: input}, nil

	case "project":
		if len(raw.Vars) == 0 {
			return nil, fmt.Errorf("project requires vars")
		}
		input, err := decodeChildNode(raw.Op, "input", raw.Input)
		if err != nil {
			return nil, err
		}
		return Project{Vars: raw.Vars, Input: input}, nil

	case "distinct":
		input, err := decodeChildNode(raw.Op, "input", raw.Input)
		if err != nil {
			return nil, err
		}
		return Distinct{Input: input}, nil

	case "slice":
		input, err := decodeChildNode(raw.Op, "input", raw.Input)
		if err != nil {
			return nil, err
		}
		limit := -1
		if raw.Limit != nil {
			limit = *raw.Limit
		}
		return Slice{Offset: raw.Offset, Limit: limit, Input: input}, nil

	case "orderby":
		if len(raw.Keys) == 0 {
			return nil, fmt.Errorf("orderby requires keys")
		}
		input, err := decodeChildNode(raw.Op, "input", raw.Input)
		if err != nil {
			return nil, err
		}
		keys := make([]OrderKey, len(raw.Keys))
		for i, k := range raw.Keys {
			var rawKey struct {
				Expression json.RawMessage `json:"expression"`
				Descending bool            `json:"descending,omitempty"`
			}
			if err := json.Unmarshal(k, &rawKey); err != nil {
				return nil, fmt.Errorf("orderby key[%d]: %w", i, err)
			}
			e, err := decodeCondition("orderby", rawKey.Expression)
			if err != nil {
				return nil, fmt.Errorf("orderby key[%d]: %w", i, err)
			}
			keys[i] = OrderKey{Expression: e, Descending: rawKey.Descending}
		}
		return OrderBy{Keys: keys, Input: input}, nil

	default:
		return nil, fmt.Errorf("unknown algebra op %q", raw.Op)
	}
}

func decodeChildNode(op, field string, data json.RawMessage) (Node, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%s requires %s", op, field)
	}
	n, err := DecodeNode(data)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", op, field, err)
	}
	return n, nil
}

func decodeCondition(op string, data json.RawMessage) (expr.Expr, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%s requires an expression", op)
	}
	e, err := expr.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%s expression: %w", op, err)
	}
	return e, nil
}

func decodeTriplePattern(data []byte) (TriplePattern, error) {
	var raw struct {
		Subject   json.RawMessage `json:"subject"`
		Predicate json.RawMessage `json:"predicate"`
		Object    json.RawMessage `json:"object"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return TriplePattern{}, err
	}

	s, err := decodeTermPattern(raw.Subject)
	if err != nil {
		return TriplePattern{}, fmt.Errorf("subject: %w", err)
	}
	p, err := decodeTermPattern(raw.Predicate)
	if err != nil {
		return TriplePattern{}, fmt.Errorf("predicate: %w", err)
	}
	o, err := decodeTermPattern(raw.Object)
	if err != nil {
		return TriplePattern{}, fmt.Errorf("object: %w", err)
	}
	return TriplePattern{Subject: s, Predicate: p, Object: o}, nil
}

func decodeTermPattern(data json.RawMessage) (TermPattern, error) {
	if len(data) == 0 {
		return TermPattern{}, fmt.Errorf("missing term")
	}

	var raw struct {
		Var     string `json:"var,omitempty"`
		IRI     string `json:"iri,omitempty"`
		Blank   string `json:"blank,omitempty"`
		Literal *struct {
			Lexical  string `json:"lexical"`
			Lang     string `json:"lang,omitempty"`
			Datatype string `json:"datatype,omitempty"`
		} `json:"literal,omitempty"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return TermPattern{}, err
	}

	switch {
	case raw.Var != "":
		return Var(raw.Var), nil
	case raw.IRI != "":
		return Concrete(rdf.IRI{Value: raw.IRI}), nil
	case raw.Blank != "":
		return Concrete(rdf.BlankNode{Label: raw.Blank}), nil
	case raw.Literal != nil:
		if raw.Literal.Lang != "" && raw.Literal.Datatype != "" {
			return TermPattern{}, fmt.Errorf("literal cannot carry both lang and datatype")
		}
		return Concrete(rdf.Literal{
			Lexical:  raw.Literal.Lexical,
			Lang:     raw.Literal.Lang,
			Datatype: rdf.IRI{Value: raw.Literal.Datatype},
		}), nil
	default:
		return TermPattern{}, fmt.Errorf("term requires one of var, iri, literal, blank")
	}
}
