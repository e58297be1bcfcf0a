package expr

import (
	"encoding/json"
	"fmt"
)

// JSON decoding for expression trees in plan files.
//
// Nodes are discriminated by a "kind" key:
//
//	{"kind": "lte",
//	 "left":  {"kind": "var", "name": "age"},
//	 "right": {"kind": "number", "value": 30}}
//
// Leaf kinds: number, text, bool, var.
// Unary kinds: not, neg. Binary kinds: and, or, eq, neq, lt, lte, gt, gte,
// add, sub, mul, div.

type rawNode struct {
	Kind    string          `json:"kind"`
	Name    string          `json:"name,omitempty"`
	Value   json.RawMessage `json:"value,omitempty"`
	Operand json.RawMessage `json:"operand,omitempty"`
	Left    json.RawMessage `json:"left,omitempty"`
	Right   json.RawMessage `json:"right,omitempty"`
}

// Decode parses a JSON expression tree.
func Decode(data []byte) (Expr, error) {
	var raw rawNode
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	switch raw.Kind {
	case "number":
		var f float64
		if err := json.Unmarshal(raw.Value, &f); err != nil {
			return nil, fmt.Errorf("number value: %w", err)
		}
		return &Constant{Value: Number(f)}, nil
	case "text":
		var s string
		if err := json.Unmarshal(raw.Value, &s); err != nil {
			return nil, fmt.Errorf("text value: %w", err)
		}
		return &Constant{Value: Text(s)}, nil
	case "bool":
		var b bool
		if err := json.Unmarshal(raw.Value, &b); err != nil {
			return nil, fmt.Errorf("bool value: %w", err)
		}
		return &Constant{Value: Bool(b)}, nil
	case "var":
		if raw.Name == "" {
			return nil, fmt.Errorf("var node requires a name")
		}
		return &Variable{Name: raw.Name}, nil
	case "not", "neg":
		operand, err := decodeChild(raw.Kind, "operand", raw.Operand)
		if err != nil {
			return nil, err
		}
		if raw.Kind == "not" {
			return &Not{Operand: operand}, nil
		}
		return &Negate{Operand: operand}, nil
	default:
		return decodeBinary(raw)
	}
}

func decodeBinary(raw rawNode) (Expr, error) {
	left, err := decodeChild(raw.Kind, "left", raw.Left)
	if err != nil {
		return nil, err
	}
	right, err := decodeChild(raw.Kind, "right", raw.Right)
	if err != nil {
		return nil, err
	}

	switch raw.Kind {
	case "and":
		return &And{Left: left, Right: right}, nil
	case "or":
		return &Or{Left: left, Right: right}, nil
	case "eq":
		return &Equal{Left: left, Right: right}, nil
	case "neq":
		return &NotEqual{Left: left, Right: right}, nil
	case "lt":
		return &Less{Left: left, Right: right}, nil
	case "lte":
		return &LessOrEqual{Left: left, Right: right}, nil
	case "gt":
		return &Greater{Left: left, Right: right}, nil
	case "gte":
		return &GreaterOrEqual{Left: left, Right: right}, nil
	case "add":
		return &Add{Left: left, Right: right}, nil
	case "sub":
		return &Subtract{Left: left, Right: right}, nil
	case "mul":
		return &Multiply{Left: left, Right: right}, nil
	case "div":
		return &Divide{Left: left, Right: right}, nil
	default:
		return nil, fmt.Errorf("unknown expression kind %q", raw.Kind)
	}
}

func decodeChild(kind, field string, data json.RawMessage) (Expr, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%s node requires %s", kind, field)
	}
	child, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", kind, field, err)
	}
	return child, nil
}
