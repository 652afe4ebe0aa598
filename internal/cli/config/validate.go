package config

import (
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/catalystneuro/nwbinspector/internal/cli/output"
	"github.com/catalystneuro/nwbinspector/pkg/core"
)

// Validate checks the settings that can be checked before any work starts.
func (c *Config) Validate() error {
	if imp, ok := core.ParseImportance(c.Threshold); !ok || imp.IsAdministrative() {
		return fmt.Errorf("invalid threshold %q: want one of %s", c.Threshold, strings.Join(thresholdNames(), ", "))
	}
	if _, err := ParseLogLevel(c.LogLevel); err != nil {
		return err
	}
	if !output.Mode(c.OutputFormat).Valid() {
		return fmt.Errorf("invalid output format %q: want one of %s", c.OutputFormat, strings.Join(output.Modes(), ", "))
	}
	if c.DocsBaseURL != "" {
		if u, err := url.Parse(c.DocsBaseURL); err != nil || u.Scheme == "" {
			return fmt.Errorf("invalid docs_base_url %q: want an absolute URL", c.DocsBaseURL)
		}
	}
	return nil
}

// ThresholdImportance returns the parsed threshold. Call Validate first.
func (c *Config) ThresholdImportance() core.Importance {
	imp, _ := core.ParseImportance(c.Threshold)
	return imp
}

func thresholdNames() []string {
	var names []string
	for _, imp := range core.Importances() {
		if !imp.IsAdministrative() {
			names = append(names, imp.String())
		}
	}
	return names
}

// ParseLogLevel converts a level name such as "debug" to a slog level.
func ParseLogLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("invalid log level %q: %w", s, err)
	}
	return level, nil
}
