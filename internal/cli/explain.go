package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/quadrantdb/quadrant/internal/compile"
	"github.com/quadrantdb/quadrant/internal/plan"
	"github.com/quadrantdb/quadrant/internal/reasoning"
)

// ExplainOptions holds flags for the explain command.
type ExplainOptions struct {
	*RootOptions
	Reasoning bool   // compile with the reasoning rewrite
	Catalog   string // label catalog path (required with --reasoning)
}

// ExplainResult is the JSON payload for a compiled query.
type ExplainResult struct {
	QueryID   string                  `json:"query_id"`
	Form      string                  `json:"form"`
	Reasoning bool                    `json:"reasoning"`
	Plan      string                  `json:"plan"`
	Template  []compile.TripleMapping `json:"template,omitempty"`
}

// NewExplainCommand creates the explain command.
func NewExplainCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ExplainOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "explain <query.json>",
		Short: "Compile a query and print its operator tree",
		Long: `Compile a structured query file and print the resulting operator tree.

With --reasoning, rdf:type and catalogued property scans are rewritten
into label range scans using the catalog given by --catalog.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true, // Don't print usage on errors - we handle our own error output
		SilenceErrors: true, // Don't print errors - we handle our own error output
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExplain(opts, args[0], cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.Reasoning, "reasoning", false, "enable the semantic rewrite")
	cmd.Flags().StringVar(&opts.Catalog, "catalog", "", "label catalog file (CUE)")

	return cmd
}

func runExplain(opts *ExplainOptions, queryPath string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(), // Verbose logs go to stderr to avoid corrupting JSON
		Verbose:   opts.Verbose,
	}

	query, err := LoadQuery(queryPath)
	if err != nil {
		return outputExplainError(formatter, err)
	}
	formatter.VerboseLog("Loaded %s query from %s", query.Form, queryPath)

	catalog := &reasoning.Catalog{}
	if opts.Reasoning {
		if opts.Catalog == "" {
			return outputCodedError(formatter, ErrCodeCatalog, "--reasoning requires --catalog", ExitCommandError)
		}
		catalog, err = reasoning.LoadCatalog(opts.Catalog)
		if err != nil {
			return outputExplainError(formatter, err)
		}
		formatter.VerboseLog("Loaded catalog: %d class(es), %d propert(ies)",
			len(catalog.Classes), len(catalog.Properties))
	}

	compiler := compile.New(plan.NewTransformer(), reasoning.NewRewriter(catalog))

	mode := compile.ModePlain
	if opts.Reasoning {
		mode = compile.ModeSemanticRewrite
	}

	compiled, err := compiler.Compile(query, mode)
	if err != nil {
		return outputExplainError(formatter, err)
	}

	result := &ExplainResult{
		QueryID:   compiled.ID,
		Form:      compiled.Form.String(),
		Reasoning: compiled.ReasoningEnabled,
		Plan:      plan.Render(compiled.Plan),
		Template:  compiled.Template,
	}

	if formatter.Format == "json" {
		return formatter.Success(result)
	}

	fmt.Fprintf(formatter.Writer, "Query %s (%s, reasoning=%t)\n\n", result.QueryID, result.Form, result.Reasoning)
	fmt.Fprintln(formatter.Writer, result.Plan)
	if len(result.Template) > 0 {
		fmt.Fprintln(formatter.Writer, "Template:")
		for _, triple := range result.Template {
			fmt.Fprintf(formatter.Writer, "  %s %s %s\n",
				renderMapping(triple.Subject), renderMapping(triple.Predicate), renderMapping(triple.Object))
		}
	}

	return nil
}

// renderMapping renders one template position for text output.
func renderMapping(m compile.NodeMapping) string {
	if m.IsVariable {
		return "?" + m.Value
	}
	return m.Value
}

// outputExplainError maps a failure to its error code and exit code.
func outputExplainError(formatter *OutputFormatter, err error) error {
	var loadErr *LoadError
	if errors.As(err, &loadErr) {
		return outputCodedError(formatter, loadErr.Code, loadErr.Message, ExitCommandError)
	}

	var catalogErr *reasoning.CatalogError
	if errors.As(err, &catalogErr) {
		return outputCodedError(formatter, ErrCodeCatalog, catalogErr.Error(), ExitFailure)
	}

	var formErr *compile.UnsupportedQueryFormError
	if errors.As(err, &formErr) {
		return outputCodedError(formatter, ErrCodeCompile, formErr.Error(), ExitFailure)
	}

	return outputCodedError(formatter, ErrCodeCompile, err.Error(), ExitFailure)
}

// outputCodedError outputs a single error and wraps it with an exit code.
func outputCodedError(formatter *OutputFormatter, code, message string, exitCode int) error {
	_ = formatter.Error(code, message, nil)
	return WrapExitError(exitCode, fmt.Sprintf("%s: %s", code, message), nil)
}
