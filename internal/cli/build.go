package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	serrors "github.com/matzehuels/sankeyflow/pkg/errors"
	sfio "github.com/matzehuels/sankeyflow/pkg/io"
	"github.com/matzehuels/sankeyflow/pkg/pipeline"
)

// buildOpts holds the flags of the build command.
type buildOpts struct {
	buildFlags
	output string // graph document path, stdout when empty
	report string // validation report path, not written when empty
	quiet  bool   // skip the summary table
}

// buildCommand creates the build command.
func (c *CLI) buildCommand() *cobra.Command {
	var opts buildOpts

	cmd := &cobra.Command{
		Use:   "build [file]",
		Short: "Build a layered flow graph from a CSV, TSV or JSON table",
		Long: `Build reads a table, merges rows that share a source and target,
assigns every node a depth, validates the result and writes the graph
document as JSON.`,
		Example: `  sankeyflow build energy.csv --source from --target to --value twh -o graph.json
  sankeyflow build flows.json --config sankey.toml --report report.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			po, err := opts.options(cmd, c.Logger)
			if err != nil {
				return err
			}
			return c.runBuild(cmd.Context(), args[0], po, &opts)
		},
	}

	opts.register(cmd)
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "graph output file (default: stdout)")
	cmd.Flags().StringVar(&opts.report, "report", "", "write the validation report to this file")
	cmd.Flags().BoolVarP(&opts.quiet, "quiet", "q", false, "do not print the summary")

	return cmd
}

func (c *CLI) runBuild(ctx context.Context, input string, po pipeline.Options, opts *buildOpts) error {
	res, err := c.buildGraph(ctx, input, po, opts.noCache)
	if err != nil {
		return err
	}

	data, err := sfio.MarshalGraph(res.Graph)
	if err != nil {
		return err
	}
	if err := c.writeOutput(opts.output, data); err != nil {
		return err
	}
	if opts.report != "" {
		report, err := sfio.MarshalReport(res.Report)
		if err != nil {
			return err
		}
		if err := c.writeOutput(opts.report, report); err != nil {
			return err
		}
	}

	if !opts.quiet {
		printSummary(res)
		if opts.output != "" {
			printFile(opts.output)
		}
		if opts.report != "" {
			printFile(opts.report)
		}
	}
	return res.Err
}

// buildGraph reads input and builds it through a cached runner. Input
// shape errors are logged and returned in the result, not as err.
func (c *CLI) buildGraph(ctx context.Context, input string, po pipeline.Options, noCache bool) (*pipeline.Result, error) {
	prog := newProgress(c.Logger)

	table, err := sfio.ReadTable(input)
	if err != nil {
		return nil, err
	}
	c.Logger.Debug("read table", "path", input, "columns", len(table), "rows", table.Rows())

	runner, err := c.newRunner(ctx, po, noCache)
	if err != nil {
		return nil, err
	}
	defer runner.Close()

	res, err := runner.Build(ctx, table, po)
	if err != nil {
		return nil, err
	}
	if res.Err != nil {
		if serrors.IsInputShape(res.Err) {
			printDetail("columns: source=%q target=%q value=%q", po.Columns.Source, po.Columns.Target, po.Columns.Value)
		}
		return res, nil
	}

	prog.done(fmt.Sprintf("Built %d nodes, %d links", res.Stats.NodeCount, res.Stats.LinkCount))
	return res, nil
}

// writeOutput writes data to path, or to c.Out when path is empty.
func (c *CLI) writeOutput(path string, data []byte) error {
	if path == "" || path == "-" {
		_, err := c.Out.Write(data)
		return err
	}
	return sfio.WriteFile(path, data)
}
