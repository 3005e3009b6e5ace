package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	serrors "github.com/matzehuels/sankeyflow/pkg/errors"
	"github.com/matzehuels/sankeyflow/pkg/template"
)

// templateCommand creates the template command group.
func (c *CLI) templateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "template",
		Short: "Check and preview tooltip templates",
		Long: `Templates substitute {` + strings.Join(template.Fields, "}, {") + `} into
labels and tooltips. {data.<field>} is accepted as a deprecated alias.`,
	}

	cmd.AddCommand(c.templateCheckCommand())
	cmd.AddCommand(c.templateRenderCommand())

	return cmd
}

// templateCheckCommand creates the "template check" subcommand.
func (c *CLI) templateCheckCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "check [template]",
		Short: "Report unknown, deprecated or malformed placeholders",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			warnings := template.Validate(args[0])
			for _, w := range warnings {
				printWarning("%s", w)
			}
			if len(warnings) > 0 {
				return serrors.New(serrors.ErrCodeInvalidTemplate, "template has %d warning(s)", len(warnings))
			}
			printSuccess("template is valid")
			return nil
		},
	}
}

// templateRenderCommand creates the "template render" subcommand.
func (c *CLI) templateRenderCommand() *cobra.Command {
	var fields map[string]string

	cmd := &cobra.Command{
		Use:     "render [template]",
		Short:   "Substitute field values into a template",
		Example: `  sankeyflow template render "{source} → {target}: {value}" --set source=Coal --set target=Power --set value=12.5`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, w := range template.Validate(args[0]) {
				c.Logger.Warn("template", "warning", w)
			}
			_, err := fmt.Fprintln(c.Out, template.Format(args[0], template.Record(fields)))
			return err
		},
	}

	cmd.Flags().StringToStringVar(&fields, "set", nil, "field value as key=value (repeatable)")
	return cmd
}
