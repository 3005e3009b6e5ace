package cli

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	serrors "github.com/matzehuels/sankeyflow/pkg/errors"
	"github.com/matzehuels/sankeyflow/pkg/flow"
	sfio "github.com/matzehuels/sankeyflow/pkg/io"
	"github.com/matzehuels/sankeyflow/pkg/pipeline"
)

// validateOpts holds the flags of the validate command.
type validateOpts struct {
	buildFlags
	graph  bool   // input is a graph document rather than a table
	output string // report path, stdout when empty
}

// validateCommand creates the validate command.
func (c *CLI) validateCommand() *cobra.Command {
	var opts validateOpts

	cmd := &cobra.Command{
		Use:   "validate [file]",
		Short: "Check a table or graph document for structural problems",
		Long: `Validate builds the graph from a table (or reads a graph document with
--graph) and writes the validation report as JSON. The command fails when
the report contains errors; warnings alone do not fail it.`,
		Example: `  sankeyflow validate flows.csv
  sankeyflow validate graph.json --graph -o report.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runValidate(cmd, args[0], &opts)
		},
	}

	opts.register(cmd)
	cmd.Flags().BoolVar(&opts.graph, "graph", false, "input is a graph document produced by build")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "report output file (default: stdout)")

	return cmd
}

func (c *CLI) runValidate(cmd *cobra.Command, input string, opts *validateOpts) error {
	var report flow.Report
	if opts.graph {
		g, err := readGraphFile(input)
		if err != nil {
			return err
		}
		report = flow.Validate(g)
	} else {
		po, err := opts.options(cmd, c.Logger)
		if err != nil {
			return err
		}
		res, err := c.buildGraph(cmd.Context(), input, po, opts.noCache)
		if err != nil {
			return err
		}
		if res.Err != nil {
			return res.Err
		}
		report = res.Report
	}

	data, err := sfio.MarshalReport(report)
	if err != nil {
		return err
	}
	if err := c.writeOutput(opts.output, data); err != nil {
		return err
	}

	printReport(report)
	if !report.IsValid {
		return serrors.New(serrors.ErrCodeInvalidInput, "graph has %d error(s)", len(report.Errors))
	}
	return nil
}

// readGraphFile reads a graph document from path.
func readGraphFile(path string) (*flow.Graph, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, serrors.New(serrors.ErrCodeFileNotFound, "graph document %q not found", path)
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return sfio.ReadGraph(f)
}

// loadGraph returns a built result for input: either a fresh build of a
// table, or a graph document wrapped in a result.
func (c *CLI) loadGraph(ctx context.Context, input string, isGraph bool, po pipeline.Options, noCache bool) (*pipeline.Result, error) {
	if !isGraph {
		res, err := c.buildGraph(ctx, input, po, noCache)
		if err != nil {
			return nil, err
		}
		return res, res.Err
	}
	g, err := readGraphFile(input)
	if err != nil {
		return nil, err
	}
	return &pipeline.Result{Graph: g, Report: flow.Validate(g)}, nil
}
