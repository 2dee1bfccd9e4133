package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"lmtk/internal/app"
	"lmtk/internal/cli/ui"
	"lmtk/internal/core"
	"lmtk/internal/types"
)

type summaryOptions struct {
	Sections []string
	Detailed bool
	Output   string
	Source   sourceFlags
}

func newSummaryCommand() *cobra.Command {
	opts := summaryOptions{}
	cmd := &cobra.Command{
		Use:   "summary SCHEMA",
		Short: "List the classes, slots, enums and types of a schema",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSummary(commandContext(cmd), cmd, args[0], opts)
		},
	}
	cmd.Flags().StringSliceVar(&opts.Sections, "section", nil, "Sections to include (classes, slots, enums, types)")
	cmd.Flags().BoolVar(&opts.Detailed, "detailed", false, "Show the main fields of every element")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "Also write the summary as JSON to this path")
	opts.Source.register(cmd)
	return cmd
}

func runSummary(ctx context.Context, cmd *cobra.Command, path string, opts summaryOptions) error {
	result, err := newAppService().Summary(ctx, app.SummaryRequest{
		SchemaPath: path,
		Sections:   resolveStrings(cmd, opts.Sections, "summary_sections", "section"),
		Detailed:   opts.Detailed,
		OutputPath: opts.Output,
		Source:     opts.Source.options(),
	})
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	ui.FormatDiagnostics(out, path, result.Diagnostics, noColor())
	renderSummary(out, result.Summary, noColor())
	if result.OutputPath != "" {
		ui.Success(out, fmt.Sprintf("summary written to %s", result.OutputPath), noColor())
	}
	return nil
}

func renderSummary(w io.Writer, summary core.Summary, plain bool) {
	for _, section := range summary.Sections {
		ui.Heading(w, fmt.Sprintf("%s (%d)", sectionTitle(section.Name), len(section.Elements)), plain)
		if len(section.Elements) == 0 {
			fmt.Fprintln(w, "  none")
			fmt.Fprintln(w)
			continue
		}
		if !summary.Detailed {
			for _, name := range section.Elements {
				fmt.Fprintf(w, "  %s\n", name)
			}
			fmt.Fprintln(w)
			continue
		}
		table := ui.NewTable(w, detailHeaders(section.Name), plain)
		for _, detail := range section.Details {
			table.AddRow(detailRow(section.Name, detail)...)
		}
		table.Render()
		fmt.Fprintln(w)
	}
}

func sectionTitle(name string) string {
	if name == "" {
		return name
	}
	return strings.ToUpper(name[:1]) + name[1:]
}

func detailHeaders(section string) []string {
	switch section {
	case types.SectionClasses:
		return []string{"Name", "Is A", "Mixins", "Slots", "Description"}
	case types.SectionSlots:
		return []string{"Name", "Range", "Required", "Multivalued", "Pattern", "Description"}
	case types.SectionEnums:
		return []string{"Name", "Values", "Description"}
	default:
		return []string{"Name", "Base", "URI", "Description"}
	}
}

func detailRow(section string, detail core.ElementDetail) []string {
	switch section {
	case types.SectionClasses:
		return []string{detail.Name, detail.IsA, strings.Join(detail.Mixins, ", "), strings.Join(detail.Slots, ", "), detail.Description}
	case types.SectionSlots:
		return []string{detail.Name, detail.Range, yesNo(detail.Required), yesNo(detail.Multivalued), detail.Pattern, detail.Description}
	case types.SectionEnums:
		return []string{detail.Name, strings.Join(detail.PermissibleValues, ", "), detail.Description}
	default:
		return []string{detail.Name, detail.Base, detail.URI, detail.Description}
	}
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
