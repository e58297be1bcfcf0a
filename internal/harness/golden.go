package harness

import (
	"fmt"
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/quadrantdb/quadrant/internal/cli"
	"github.com/quadrantdb/quadrant/internal/compile"
	"github.com/quadrantdb/quadrant/internal/plan"
	"github.com/quadrantdb/quadrant/internal/reasoning"
)

// PlanSnapshot is the deterministic text snapshot compared against golden
// files. The query ID is deliberately excluded: it differs per compilation.
type PlanSnapshot struct {
	ScenarioName string
	Form         string
	Reasoning    bool
	Plan         string
	Template     []compile.TripleMapping
}

// render produces the golden file content for the snapshot.
func (s *PlanSnapshot) render() []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "scenario: %s\n", s.ScenarioName)
	fmt.Fprintf(&b, "form: %s\n", s.Form)
	fmt.Fprintf(&b, "reasoning: %t\n", s.Reasoning)
	b.WriteString("plan:\n")
	b.WriteString(s.Plan)
	if len(s.Template) > 0 {
		b.WriteString("template:\n")
		for _, triple := range s.Template {
			fmt.Fprintf(&b, "  %s %s %s\n",
				renderMapping(triple.Subject), renderMapping(triple.Predicate), renderMapping(triple.Object))
		}
	}
	return []byte(b.String())
}

func renderMapping(m compile.NodeMapping) string {
	if m.IsVariable {
		return "?" + m.Value
	}
	return m.Value
}

// RunWithGolden compiles a scenario's query and compares the resulting plan
// against a golden file stored in testdata/golden/{scenario.Name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
//
// Returns an error if loading or compilation fails. Test failure (via
// goldie) occurs if the plan doesn't match the golden file.
func RunWithGolden(t *testing.T, scenario *Scenario) error {
	t.Helper()

	snapshot, err := Run(scenario)
	if err != nil {
		return err
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, scenario.Name, snapshot.render())

	return nil
}

// Run compiles the scenario's query and returns its plan snapshot.
func Run(scenario *Scenario) (*PlanSnapshot, error) {
	query, err := cli.LoadQuery(scenario.Query)
	if err != nil {
		return nil, err
	}

	catalog := &reasoning.Catalog{}
	if scenario.Catalog != "" {
		catalog, err = reasoning.LoadCatalog(scenario.Catalog)
		if err != nil {
			return nil, err
		}
	}

	mode := compile.ModePlain
	if scenario.Mode == ModeSemanticRewrite {
		mode = compile.ModeSemanticRewrite
	}

	compiler := compile.New(plan.NewTransformer(), reasoning.NewRewriter(catalog))
	compiled, err := compiler.Compile(query, mode)
	if err != nil {
		return nil, err
	}

	return &PlanSnapshot{
		ScenarioName: scenario.Name,
		Form:         compiled.Form.String(),
		Reasoning:    compiled.ReasoningEnabled,
		Plan:         plan.Render(compiled.Plan),
		Template:     compiled.Template,
	}, nil
}
