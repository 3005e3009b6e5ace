package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/sankeyflow/pkg/pipeline"
)

// exportOpts holds the flags of the export command.
type exportOpts struct {
	buildFlags
	graph       bool
	output      string
	format      string
	showValues  bool
	nodeTooltip string
	linkTooltip string
}

// exportCommand creates the export command.
func (c *CLI) exportCommand() *cobra.Command {
	var opts exportOpts

	cmd := &cobra.Command{
		Use:   "export [file]",
		Short: "Export a flow graph as JSON, Graphviz DOT or SVG",
		Long: `Export builds the graph from a table (or reads a graph document with
--graph) and writes it in the requested format. DOT and SVG place nodes of
equal depth in the same rank, left to right.`,
		Example: `  sankeyflow export flows.csv --format svg -o flows.svg
  sankeyflow export graph.json --graph --format dot --link-tooltip "{source} → {target}: {value}"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runExport(cmd, args[0], &opts)
		},
	}

	opts.register(cmd)
	fs := cmd.Flags()
	fs.BoolVar(&opts.graph, "graph", false, "input is a graph document produced by build")
	fs.StringVarP(&opts.output, "output", "o", "", "output file (default: stdout)")
	fs.StringVarP(&opts.format, "format", "f", pipeline.DefaultFormat, "output format: "+strings.Join(formatNames(), ", "))
	fs.BoolVar(&opts.showValues, "show-values", false, "append values to node and link labels")
	fs.StringVar(&opts.nodeTooltip, "node-tooltip", "", "node tooltip template, e.g. \"{name}: {value}\"")
	fs.StringVar(&opts.linkTooltip, "link-tooltip", "", "link tooltip template, e.g. \"{source} → {target}\"")

	_ = cmd.RegisterFlagCompletionFunc("format", cobra.FixedCompletions(formatNames(), cobra.ShellCompDirectiveNoFileComp))

	return cmd
}

func (c *CLI) runExport(cmd *cobra.Command, input string, opts *exportOpts) error {
	ctx := cmd.Context()

	po, err := opts.options(cmd, c.Logger)
	if err != nil {
		return err
	}
	eo := opts.exportOptions(cmd, po.Export)
	if err := pipeline.ValidateFormat(eo.Format); err != nil {
		return err
	}

	res, err := c.loadGraph(ctx, input, opts.graph, po, opts.noCache)
	if err != nil {
		return err
	}
	if !res.Report.IsValid {
		printReport(res.Report)
		return fmt.Errorf("refusing to export an invalid graph")
	}

	runner, err := c.newRunner(ctx, po, opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	var spinner *Spinner
	if eo.Format == pipeline.FormatSVG {
		spinner = newSpinnerWithContext(ctx, "Rendering SVG...")
		spinner.Start()
	}
	data, err := runner.Export(ctx, res, eo.Format, eo)
	if spinner != nil {
		if err != nil {
			spinner.StopWithError("SVG rendering failed")
		} else {
			spinner.StopWithSuccess("Rendered SVG")
		}
	}
	if err != nil {
		return err
	}

	if err := c.writeOutput(opts.output, data); err != nil {
		return err
	}
	if opts.output != "" {
		if res.CacheInfo.ExportHit {
			printSuccess("Exported %s (cached)", eo.Format)
		} else {
			printSuccess("Exported %s", eo.Format)
		}
		printFile(opts.output)
	}
	return nil
}

// exportOptions applies explicitly set export flags over base.
func (o *exportOpts) exportOptions(cmd *cobra.Command, base pipeline.ExportOptions) pipeline.ExportOptions {
	changed := cmd.Flags().Changed
	if changed("format") || base.Format == "" {
		base.Format = o.format
	}
	if changed("show-values") {
		base.ShowValues = o.showValues
	}
	if changed("node-tooltip") {
		base.NodeTooltip = o.nodeTooltip
	}
	if changed("link-tooltip") {
		base.LinkTooltip = o.linkTooltip
	}
	return base
}

func formatNames() []string {
	return []string{pipeline.FormatJSON, pipeline.FormatDOT, pipeline.FormatSVG}
}
