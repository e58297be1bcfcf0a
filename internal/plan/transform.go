package plan

import (
	"fmt"

	"github.com/quadrantdb/quadrant/internal/sparql"
)

// Transformer lowers an algebra tree to an operator tree.
//
// Both compilation strategies implement this contract: the plain transformer
// in this package and the reasoning rewriter. Exactly one of them runs per
// compiled query; they are never composed. Implementations must be
// deterministic: the same algebra tree always yields a structurally
// equivalent operator tree.
type Transformer interface {
	Transform(node sparql.Node) (Operator, error)
}

// PlanTransformer is the plain strategy: a direct, reasoning-free lowering
// of the algebra.
type PlanTransformer struct{}

// NewTransformer creates the plain transformer.
func NewTransformer() *PlanTransformer {
	return &PlanTransformer{}
}

// Transform lowers one algebra node recursively.
//
// A BGP lowers to a left-deep HashJoin chain of TripleScans in authored
// pattern order, which keeps lowering deterministic.
func (t *PlanTransformer) Transform(node sparql.Node) (Operator, error) {
	switch n := node.(type) {
	case sparql.BGP:
		return t.transformBGP(n)

	case sparql.Join:
		left, err := t.Transform(n.Left)
		if err != nil {
			return nil, err
		}
		right, err := t.Transform(n.Right)
		if err != nil {
			return nil, err
		}
		return HashJoin{Left: left, Right: right}, nil

	case sparql.Union:
		left, err := t.Transform(n.Left)
		if err != nil {
			return nil, err
		}
		right, err := t.Transform(n.Right)
		if err != nil {
			return nil, err
		}
		return Union{Left: left, Right: right}, nil

	case sparql.Filter:
		input, err := t.Transform(n.Input)
		if err != nil {
			return nil, err
		}
		return Selection{Condition: n.Condition, Input: input}, nil

	case sparql.Extend:
		input, err := t.Transform(n.Input)
		if err != nil {
			return nil, err
		}
		return Bind{Var: n.Var, Expression: n.Expression, Input: input}, nil

	case sparql.Project:
		input, err := t.Transform(n.Input)
		if err != nil {
			return nil, err
		}
		return Projection{Vars: n.Vars, Input: input}, nil

	case sparql.Distinct:
		input, err := t.Transform(n.Input)
		if err != nil {
			return nil, err
		}
		return Distinct{Input: input}, nil

	case sparql.Slice:
		input, err := t.Transform(n.Input)
		if err != nil {
			return nil, err
		}
		return Limit{Offset: n.Offset, Count: n.Limit, Input: input}, nil

	case sparql.OrderBy:
		input, err := t.Transform(n.Input)
		if err != nil {
			return nil, err
		}
		keys := make([]SortKey, len(n.Keys))
		for i, k := range n.Keys {
			keys[i] = SortKey{Expression: k.Expression, Descending: k.Descending}
		}
		return Sort{Keys: keys, Input: input}, nil

	case nil:
		return nil, fmt.Errorf("cannot transform nil algebra node")

	default:
		return nil, fmt.Errorf("unsupported algebra node type: %T", node)
	}
}

func (t *PlanTransformer) transformBGP(bgp sparql.BGP) (Operator, error) {
	if len(bgp.Patterns) == 0 {
		return nil, fmt.Errorf("cannot transform empty basic graph pattern")
	}

	var root Operator = TripleScan{Pattern: bgp.Patterns[0]}
	for _, p := range bgp.Patterns[1:] {
		root = HashJoin{Left: root, Right: TripleScan{Pattern: p}}
	}
	return root, nil
}
