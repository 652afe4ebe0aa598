package commands

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/catalystneuro/nwbinspector/internal/cli/output"
	"github.com/catalystneuro/nwbinspector/pkg/core"
	"github.com/catalystneuro/nwbinspector/pkg/inspector"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// formatTable is the checks-only output format rendering a table.
const formatTable = "table"

// ChecksOptions holds options for the checks command.
type ChecksOptions struct {
	Format string // Output format
}

// CheckInfo describes a registered check.
type CheckInfo struct {
	Name          string          `json:"name"`
	Importance    core.Importance `json:"importance"`
	NeurodataType string          `json:"neurodata_type"`
	Description   string          `json:"description,omitempty"`
	Options       map[string]any  `json:"options,omitempty"`
	DocURL        string          `json:"doc_url"`
}

// ChecksJSONOutput is the JSON output structure for the checks listing.
type ChecksJSONOutput struct {
	Checks []CheckInfo `json:"checks"`
	Count  int         `json:"count"`
}

// NewChecksCommand creates the checks command.
func NewChecksCommand() *cobra.Command {
	opts := &ChecksOptions{}
	cmd := &cobra.Command{
		Use:   "checks [name]",
		Short: "List available checks",
		Long: `List the built-in checks and those of any loaded rule modules,
grouped by importance.

Output adapts to environment:
  - Terminal: Styled output with colors
  - Piped/Scripted: Markdown format
  - JSON: Machine-readable format
  - Table: One row per check`,
		Example: `  # List all checks
  nwbinspector checks

  # Show details for one check
  nwbinspector checks check_data_orientation

  # Include lab rules
  nwbinspector checks -m rules/

  # Output as a table
  nwbinspector checks --format table`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				return showCheck(cmd, args[0], opts)
			}
			return listChecks(cmd, opts)
		},
	}

	cmd.Flags().StringSliceP("modules", "m", nil, "Starlark rule modules or directories to load")
	cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "Output format: text, markdown, json, table")

	_ = cmd.RegisterFlagCompletionFunc("format", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"text", "markdown", "json", formatTable}, cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

// loadCheckInfos builds the registry and returns its checks, and a renderer
// honoring the format flag.
func loadCheckInfos(cmd *cobra.Command, opts *ChecksOptions) ([]CheckInfo, *output.Renderer, error) {
	cmdCtx, err := NewCommandContext(cmd)
	if err != nil {
		return nil, nil, err
	}
	r := cmdCtx.Renderer

	// Override renderer if format flag is set
	if opts.Format != "" && opts.Format != formatTable {
		if !output.Mode(opts.Format).Valid() {
			return nil, nil, fmt.Errorf("invalid format %q: want one of text, markdown, json, %s", opts.Format, formatTable)
		}
		r = output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(opts.Format))
	}

	reg, err := buildRegistry(cmdCtx.Cfg.Modules, cmdCtx.Logger)
	if err != nil {
		return nil, nil, err
	}

	var infos []CheckInfo
	for _, c := range reg.Checks() {
		infos = append(infos, CheckInfo{
			Name:          c.Name(),
			Importance:    c.Importance(),
			NeurodataType: c.NeurodataType(),
			Description:   c.Description(),
			Options:       c.Options(),
			DocURL:        inspector.BuildDocURL(c.Name()),
		})
	}
	return infos, r, nil
}

func listChecks(cmd *cobra.Command, opts *ChecksOptions) error {
	infos, r, err := loadCheckInfos(cmd, opts)
	if err != nil {
		return err
	}

	if opts.Format == formatTable {
		return listChecksTable(r, infos)
	}
	switch r.EffectiveMode() {
	case output.ModeJSON:
		return r.JSON(ChecksJSONOutput{Checks: infos, Count: len(infos)})
	case output.ModeMarkdown:
		return listChecksMarkdown(r, infos)
	default:
		return listChecksText(r, infos)
	}
}

func showCheck(cmd *cobra.Command, name string, opts *ChecksOptions) error {
	infos, r, err := loadCheckInfos(cmd, opts)
	if err != nil {
		return err
	}

	i := slices.IndexFunc(infos, func(c CheckInfo) bool { return c.Name == name })
	if i < 0 {
		return fmt.Errorf("check %q not found", name)
	}
	info := infos[i]

	switch {
	case opts.Format == formatTable:
		return listChecksTable(r, []CheckInfo{info})
	case r.EffectiveMode() == output.ModeJSON:
		return r.JSON(info)
	case r.EffectiveMode() == output.ModeMarkdown:
		return showCheckMarkdown(r, info)
	default:
		return showCheckText(r, info)
	}
}

// importanceHeading returns e.g. "Best Practice Violation".
func importanceHeading(imp core.Importance) string {
	return cases.Title(language.English).String(strings.ToLower(imp.Title()))
}

// byImportance groups checks by importance, most important first.
func byImportance(infos []CheckInfo) ([]core.Importance, map[core.Importance][]CheckInfo) {
	groups := make(map[core.Importance][]CheckInfo)
	for _, c := range infos {
		groups[c.Importance] = append(groups[c.Importance], c)
	}
	var order []core.Importance
	for _, imp := range core.Importances() {
		if len(groups[imp]) > 0 {
			order = append(order, imp)
		}
	}
	return order, groups
}

// listChecksText outputs checks in styled text format.
func listChecksText(r *output.Renderer, infos []CheckInfo) error {
	styles := r.Styles()

	r.Println("")
	r.Println(styles.Header1.Render(fmt.Sprintf("Checks (%d)", len(infos))))
	r.Println("")

	order, groups := byImportance(infos)
	for _, imp := range order {
		r.Println(styles.Header2.Render(importanceHeading(imp)))
		r.Println("")
		for _, c := range groups[imp] {
			r.Printf("  %s  %s\n", styles.Bold.Render(c.Name), styles.Muted.Render(c.NeurodataType))
			if c.Description != "" {
				r.Println(styles.Muted.Render("      " + c.Description))
			}
		}
		r.Println("")
	}

	r.Println(styles.Muted.Render("Use 'nwbinspector checks <name>' for details"))
	r.Println("")
	return nil
}

// listChecksMarkdown outputs checks in markdown format.
func listChecksMarkdown(r *output.Renderer, infos []CheckInfo) error {
	r.Println(output.FormatHeader(1, "Checks"))
	r.Println("")

	order, groups := byImportance(infos)
	for _, imp := range order {
		r.Println(output.FormatHeader(2, importanceHeading(imp)))
		r.Println("")
		for _, c := range groups[imp] {
			line := fmt.Sprintf("- **%s** (`%s`)", c.Name, c.NeurodataType)
			if c.Description != "" {
				line += " - " + c.Description
			}
			r.Println(line)
		}
		r.Println("")
	}
	return nil
}

func listChecksTable(r *output.Renderer, infos []CheckInfo) error {
	t := table.NewWriter()
	t.SetOutputMirror(r.Writer())
	t.SetStyle(table.StyleLight)

	t.AppendHeader(table.Row{"Name", "Importance", "Neurodata Type", "Description"})
	for _, c := range infos {
		t.AppendRow(table.Row{c.Name, c.Importance.String(), c.NeurodataType, c.Description})
	}

	t.Render()
	r.Printf("(%d checks)\n", len(infos))
	return nil
}

// showCheckText displays one check in text format.
func showCheckText(r *output.Renderer, c CheckInfo) error {
	styles := r.Styles()

	r.Println("")
	r.Println(styles.Header1.Render(c.Name))
	r.Println("")

	r.Printf("  %s: %s\n", styles.Bold.Render("Importance"), c.Importance.String())
	r.Printf("  %s: %s\n", styles.Bold.Render("Neurodata type"), c.NeurodataType)
	if c.Description != "" {
		r.Printf("  %s: %s\n", styles.Bold.Render("Description"), c.Description)
	}
	r.Println("")

	if len(c.Options) > 0 {
		r.Println(styles.Bold.Render("Options"))
		for _, k := range slices.Sorted(maps.Keys(c.Options)) {
			r.Printf("  %s = %v\n", k, c.Options[k])
		}
		r.Println("")
	}

	r.Println(styles.Muted.Render("Documentation: " + c.DocURL))
	r.Println("")
	return nil
}

// showCheckMarkdown displays one check in markdown format.
func showCheckMarkdown(r *output.Renderer, c CheckInfo) error {
	r.Println(output.FormatHeader(1, c.Name))
	r.Println("")
	r.Println(output.FormatKeyValue("Importance", c.Importance.String()))
	r.Println(output.FormatKeyValue("Neurodata type", c.NeurodataType))
	if c.Description != "" {
		r.Println(output.FormatKeyValue("Description", c.Description))
	}
	r.Println(output.FormatKeyValue("Documentation", c.DocURL))
	r.Println("")

	if len(c.Options) > 0 {
		r.Println(output.FormatHeader(2, "Options"))
		r.Println("")
		for _, k := range slices.Sorted(maps.Keys(c.Options)) {
			r.Printf("- `%s` = `%v`\n", k, c.Options[k])
		}
		r.Println("")
	}
	return nil
}
