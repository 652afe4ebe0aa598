package commands

import (
	"fmt"
	"log/slog"

	"github.com/catalystneuro/nwbinspector/internal/cli/output"
	"github.com/catalystneuro/nwbinspector/pkg/core"
	"github.com/catalystneuro/nwbinspector/pkg/inspector"
	"github.com/spf13/cobra"
)

// InspectOptions holds options for the inspect command that are not
// settings.
type InspectOptions struct {
	ReportFilePath string
	JSONFilePath   string
	Overwrite      bool
	Ignore         []string
	Select         []string
	ByImportance   bool
}

// NewInspectCommand creates the inspect command.
func NewInspectCommand() *cobra.Command {
	opts := &InspectOptions{}
	cmd := &cobra.Command{
		Use:   "inspect <path>",
		Short: "Inspect NWB files for best practice violations",
		Long: `Run every registered check against each object of the given NWB file,
or of every .nwb file found under the given directory.

The report lists findings per file, most important first. Files that could
not be read are reported with an ERROR finding and do not stop the run.

Output adapts to environment:
  - Terminal: Colored report
  - Piped/Scripted: Plain report
  - JSON: The findings as a JSON array`,
		Example: `  # Inspect a single file
  nwbinspector inspect session.nwb

  # Inspect a directory, only reporting critical findings
  nwbinspector inspect data/ --threshold CRITICAL

  # Load lab-specific rules and save the report
  nwbinspector inspect data/ -m rules/ --report-file-path report.txt -o

  # Run only selected checks
  nwbinspector inspect session.nwb -s check_data_orientation,check_missing_unit`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringSliceP("modules", "m", nil, "Starlark rule modules or directories to load")
	cmd.Flags().Bool("no-color", false, "Disable colors in the console report")
	cmd.Flags().StringVar(&opts.ReportFilePath, "report-file-path", "", "Save the report to this file")
	cmd.Flags().BoolVarP(&opts.Overwrite, "overwrite", "o", false, "Overwrite an existing report file")
	cmd.Flags().StringSliceVarP(&opts.Ignore, "ignore", "i", nil, "Checks to skip")
	cmd.Flags().StringSliceVarP(&opts.Select, "select", "s", nil, "Run only these checks")
	cmd.Flags().StringP("threshold", "t", "", "Lowest importance to report (default BEST_PRACTICE_SUGGESTION)")
	cmd.Flags().StringP("config-path", "c", "", "Check configuration file")
	cmd.Flags().StringVarP(&opts.JSONFilePath, "json-file-path", "j", "", "Save the findings as JSON to this file")
	cmd.Flags().BoolVar(&opts.ByImportance, "by-importance", false, "Organize the report by importance instead of by file")
	cmd.Flags().Bool("skip-validation", false, "Do not run the structural validator")

	cmd.MarkFlagsMutuallyExclusive("select", "ignore")

	_ = cmd.RegisterFlagCompletionFunc("threshold", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{
			core.Critical.String(),
			core.BestPracticeViolation.String(),
			core.BestPracticeSuggestion.String(),
		}, cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

func runInspect(cmd *cobra.Command, path string, opts *InspectOptions) error {
	cmdCtx, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	cfg := cmdCtx.Cfg
	logger := cmdCtx.Logger
	r := cmdCtx.Renderer

	reg, err := buildRegistry(cfg.Modules, logger)
	if err != nil {
		return err
	}

	var checkCfg inspector.CheckConfig
	if cfg.ConfigPath != "" {
		checkCfg, err = inspector.LoadCheckConfig(cfg.ConfigPath)
		if err != nil {
			return err
		}
	}

	stream, err := inspector.InspectAll(cmd.Context(), path, reg.Checks(), inspector.InspectOptions{
		Config:         checkCfg,
		CheckOptions:   cfg.CheckOptions,
		Select:         opts.Select,
		Ignore:         opts.Ignore,
		Threshold:      cfg.ThresholdImportance(),
		SkipValidation: cfg.SkipValidation,
		Logger:         logger,
	})
	if err != nil {
		return err
	}
	msgs := stream.Collect()
	if err := stream.Err(); err != nil {
		return fmt.Errorf("inspection interrupted: %w", err)
	}
	logger.Info("inspection finished", slog.String("path", path), slog.Int("findings", len(msgs)))

	if opts.JSONFilePath != "" {
		if err := inspector.SaveJSON(opts.JSONFilePath, msgs); err != nil {
			return fmt.Errorf("failed to save JSON report: %w", err)
		}
	}

	var lines []string
	if opts.ByImportance {
		lines = inspector.FormatByImportance(inspector.OrganizeByImportance(msgs))
	} else {
		lines = inspector.FormatByFile(inspector.OrganizeByFile(msgs))
	}

	if r.EffectiveMode() == output.ModeJSON {
		if err := inspector.WriteJSON(r.Writer(), msgs); err != nil {
			return err
		}
	} else {
		if err := inspector.PrintToConsole(r.Writer(), lines, cfg.NoColor); err != nil {
			return err
		}
		r.Println("")
		printSummary(r, msgs)
	}

	if opts.ReportFilePath != "" {
		if err := inspector.SaveReport(opts.ReportFilePath, lines, opts.Overwrite); err != nil {
			return err
		}
		r.Muted("Report saved to " + opts.ReportFilePath)
	}

	return nil
}

// printSummary reports the number of files with findings and how many of
// them had ERROR findings. Errors never change the exit code.
func printSummary(r *output.Renderer, msgs []core.InspectorMessage) {
	files := make(map[string]bool)
	failed := make(map[string]bool)
	for _, m := range msgs {
		files[m.File] = true
		if m.Importance == core.Error {
			failed[m.File] = true
		}
	}

	switch {
	case len(msgs) == 0:
		r.Success("No issues found")
	case len(failed) > 0:
		r.Warning(fmt.Sprintf("%d finding(s) in %d file(s); %d file(s) had errors during inspection",
			len(msgs), len(files), len(failed)))
	default:
		r.Success(fmt.Sprintf("%d finding(s) in %d file(s)", len(msgs), len(files)))
	}
}
