package reasoning

import (
	"fmt"

	"github.com/quadrantdb/quadrant/internal/plan"
	"github.com/quadrantdb/quadrant/internal/rdf"
	"github.com/quadrantdb/quadrant/internal/sparql"
)

// Rewriter is the semantic-rewrite compilation strategy.
//
// It implements plan.Transformer with the same contract as the plain
// transformer - the query compiler selects exactly one of the two per
// compiled query. The rewriter lowers the algebra through the plain
// transformer first, then replaces scans that the label catalog covers:
//
//   - an rdf:type scan with a catalogued class object becomes a
//     LabelRangeScan over the class closure interval, and
//   - a scan with a catalogued predicate becomes a PredicateRangeScan over
//     the property closure interval,
//
// so one range scan answers what would otherwise take a hierarchy walk.
// Scans the catalog does not cover are left untouched.
type Rewriter struct {
	catalog *Catalog
	inner   plan.Transformer
}

// NewRewriter creates a rewriter over a label catalog.
func NewRewriter(catalog *Catalog) *Rewriter {
	return &Rewriter{
		catalog: catalog,
		inner:   plan.NewTransformer(),
	}
}

// Transform implements plan.Transformer.
func (r *Rewriter) Transform(node sparql.Node) (plan.Operator, error) {
	lowered, err := r.inner.Transform(node)
	if err != nil {
		return nil, err
	}
	return r.rewrite(lowered)
}

// rewrite walks the lowered operator tree bottom-up.
func (r *Rewriter) rewrite(op plan.Operator) (plan.Operator, error) {
	switch o := op.(type) {
	case plan.TripleScan:
		return r.rewriteScan(o), nil

	case plan.LabelRangeScan, plan.PredicateRangeScan:
		// Already rewritten; plain lowering never produces these.
		return o, nil

	case plan.HashJoin:
		left, err := r.rewrite(o.Left)
		if err != nil {
			return nil, err
		}
		right, err := r.rewrite(o.Right)
		if err != nil {
			return nil, err
		}
		return plan.HashJoin{Left: left, Right: right}, nil

	case plan.Union:
		left, err := r.rewrite(o.Left)
		if err != nil {
			return nil, err
		}
		right, err := r.rewrite(o.Right)
		if err != nil {
			return nil, err
		}
		return plan.Union{Left: left, Right: right}, nil

	case plan.Selection:
		input, err := r.rewrite(o.Input)
		if err != nil {
			return nil, err
		}
		return plan.Selection{Condition: o.Condition, Input: input}, nil

	case plan.Bind:
		input, err := r.rewrite(o.Input)
		if err != nil {
			return nil, err
		}
		return plan.Bind{Var: o.Var, Expression: o.Expression, Input: input}, nil

	case plan.Projection:
		input, err := r.rewrite(o.Input)
		if err != nil {
			return nil, err
		}
		return plan.Projection{Vars: o.Vars, Input: input}, nil

	case plan.Distinct:
		input, err := r.rewrite(o.Input)
		if err != nil {
			return nil, err
		}
		return plan.Distinct{Input: input}, nil

	case plan.Limit:
		input, err := r.rewrite(o.Input)
		if err != nil {
			return nil, err
		}
		return plan.Limit{Offset: o.Offset, Count: o.Count, Input: input}, nil

	case plan.Sort:
		input, err := r.rewrite(o.Input)
		if err != nil {
			return nil, err
		}
		return plan.Sort{Keys: o.Keys, Input: input}, nil

	default:
		return nil, fmt.Errorf("unsupported operator type: %T", op)
	}
}

// rewriteScan replaces a single triple scan when the catalog covers it.
func (r *Rewriter) rewriteScan(scan plan.TripleScan) plan.Operator {
	p := scan.Pattern
	if p.Predicate.IsVariable() {
		return scan
	}

	pred, ok := p.Predicate.Term.(rdf.IRI)
	if !ok {
		return scan
	}

	if pred.Value == rdf.RDFType {
		class, ok := p.Object.Term.(rdf.IRI)
		if !ok {
			// Variable or non-IRI object: class membership stays a
			// plain scan.
			return scan
		}
		iv, ok := r.catalog.ClassInterval(class.Value)
		if !ok {
			return scan
		}
		return plan.LabelRangeScan{
			Subject: p.Subject,
			Class:   class,
			Low:     iv.Low,
			High:    iv.High,
		}
	}

	if iv, ok := r.catalog.PropertyInterval(pred.Value); ok {
		return plan.PredicateRangeScan{
			Subject:  p.Subject,
			Object:   p.Object,
			Property: pred,
			Low:      iv.Low,
			High:     iv.High,
		}
	}

	return scan
}
