package commands

import (
	"fmt"
	"log/slog"

	"github.com/catalystneuro/nwbinspector/internal/cli/config"
	"github.com/catalystneuro/nwbinspector/internal/cli/output"
	starctx "github.com/catalystneuro/nwbinspector/internal/starlark"
	"github.com/catalystneuro/nwbinspector/pkg/checks"
	"github.com/catalystneuro/nwbinspector/pkg/inspector"
	"github.com/spf13/cobra"
)

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Renderer *output.Renderer
}

// NewCommandContext creates a CommandContext from the loaded settings.
func NewCommandContext(cmd *cobra.Command) (*CommandContext, error) {
	cfg, err := getConfig(cmd)
	if err != nil {
		return nil, err
	}
	logger := config.GetLogger(cmd.Context())
	inspector.SetDocsBaseURL(cfg.DocsBaseURL)
	mode := output.Mode(cfg.OutputFormat)
	r := output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), mode)

	return &CommandContext{
		Cfg:      cfg,
		Logger:   logger,
		Renderer: r,
	}, nil
}

// getConfig returns the settings loaded by the root command. A command run
// on its own loads them from its flags.
func getConfig(cmd *cobra.Command) (*config.Config, error) {
	if cfg := config.GetCurrentConfig(); cfg != nil {
		return cfg, nil
	}
	return config.LoadConfig("", cmd.Flags())
}

// buildRegistry returns a frozen registry holding the built-in checks
// followed by the checks of the given rule modules.
func buildRegistry(modules []string, logger *slog.Logger) (*inspector.Registry, error) {
	reg := checks.DefaultRegistry()
	if len(modules) > 0 {
		loaded, err := starctx.NewLoader(logger, modules...).Load()
		if err != nil {
			return nil, fmt.Errorf("failed to load rule modules: %w", err)
		}
		starctx.Register(reg, loaded)
	}
	reg.Freeze()
	return reg, nil
}
