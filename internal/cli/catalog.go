package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/quadrantdb/quadrant/internal/reasoning"
)

// CatalogOptions holds flags for the catalog command.
type CatalogOptions struct {
	*RootOptions
}

// CatalogSummary is the JSON payload for a validated catalog.
type CatalogSummary struct {
	Classes    map[string]reasoning.Interval `json:"classes"`
	Properties map[string]reasoning.Interval `json:"properties"`
}

// NewCatalogCommand creates the catalog command group.
func NewCatalogCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Inspect reasoning label catalogs",
	}

	cmd.AddCommand(newCatalogValidateCommand(rootOpts))

	return cmd
}

func newCatalogValidateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CatalogOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "validate <catalog.cue>",
		Short: "Validate a label catalog file",
		Long: `Validate a CUE label catalog and print its class and property intervals.

A catalog maps class and property IRIs to label intervals produced by the
reasoner's compaction pass. Every interval must have a non-negative label
and a span of at least one.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCatalogValidate(opts, args[0], cmd)
		},
	}

	return cmd
}

func runCatalogValidate(opts *CatalogOptions, path string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	catalog, err := reasoning.LoadCatalog(path)
	if err != nil {
		return outputCodedError(formatter, ErrCodeCatalog, err.Error(), ExitFailure)
	}

	if formatter.Format == "json" {
		return formatter.Success(&CatalogSummary{
			Classes:    catalog.Classes,
			Properties: catalog.Properties,
		})
	}

	fmt.Fprintf(formatter.Writer, "✓ Valid catalog: %d class(es), %d propert(ies)\n\n",
		len(catalog.Classes), len(catalog.Properties))

	printIntervals(formatter, "Classes", catalog.Classes)
	printIntervals(formatter, "Properties", catalog.Properties)

	return nil
}

// printIntervals prints one catalog section sorted by IRI for stable output.
func printIntervals(formatter *OutputFormatter, heading string, intervals map[string]reasoning.Interval) {
	if len(intervals) == 0 {
		return
	}

	iris := make([]string, 0, len(intervals))
	for iri := range intervals {
		iris = append(iris, iri)
	}
	sort.Strings(iris)

	fmt.Fprintf(formatter.Writer, "%s:\n", heading)
	for _, iri := range iris {
		interval := intervals[iri]
		fmt.Fprintf(formatter.Writer, "  %s: [%d,%d)\n", iri, interval.Low, interval.High)
	}
	fmt.Fprintln(formatter.Writer)
}
