package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/catalystneuro/nwbinspector/internal/cli/config"
	"github.com/catalystneuro/nwbinspector/pkg/core"
	"github.com/catalystneuro/nwbinspector/pkg/inspector"
)

// SettingsField describes a key of the settings file.
type SettingsField struct {
	Name        string
	Type        string
	Default     string
	Description string
}

// EnvVar returns the environment variable that sets the field.
func (f SettingsField) EnvVar() string {
	return config.EnvPrefix + strings.ToUpper(f.Name)
}

// settingsFields returns the settings schema.
// This is based on internal/cli/config/types.go Config.
func settingsFields() []SettingsField {
	return []SettingsField{
		{Name: "threshold", Type: "string", Default: config.DefaultThreshold, Description: "Lowest importance reported"},
		{Name: "no_color", Type: "bool", Default: "false", Description: "Disable colors in the console report"},
		{Name: "modules", Type: "[]string", Description: "Starlark rule modules or directories to load"},
		{Name: "config_path", Type: "string", Description: "Check configuration file"},
		{Name: "check_options", Type: "map[string]map[string]any", Description: "Check tunables, keyed by check name"},
		{Name: "skip_validation", Type: "bool", Default: "false", Description: "Do not run the structural validator"},
		{Name: "docs_base_url", Type: "string", Default: inspector.DefaultDocsBaseURL, Description: "Base URL of check documentation links"},
		{Name: "log_level", Type: "string", Default: config.DefaultLogLevel, Description: "Log level: debug, info, warn, error"},
		{Name: "output", Type: "string", Default: config.DefaultOutput, Description: "Output format: auto, text, markdown, json"},
	}
}

// generateSettingsDocs generates the settings and check configuration
// reference.
func generateSettingsDocs(outDir string) error {
	log.Printf("Generating settings docs to %s", outDir)

	if err := os.MkdirAll(outDir, 0750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	if err := os.WriteFile(filepath.Join(outDir, "index.md"), settingsPage(), 0600); err != nil {
		return fmt.Errorf("failed to generate index.md: %w", err)
	}
	log.Printf("  Generated index.md")

	return nil
}

func settingsPage() []byte {
	w := NewMarkdownWriter()

	w.Frontmatter("Configuration", "NWB Inspector configuration reference")
	w.GeneratedMarker()

	w.Header(1, "Configuration")

	// Settings file
	w.Header(2, "Settings File")
	var files []string
	for _, f := range config.SettingsFiles {
		files = append(files, InlineCode(f))
	}
	w.Paragraph(fmt.Sprintf("Settings are read from the first of %s found in the working directory, or from the file passed with %s.",
		strings.Join(files, ", "), InlineCode("--settings")))

	headers := []string{"Field", "Type", "Default", "Environment", "Description"}
	var rows [][]string
	for _, f := range settingsFields() {
		defVal := "-"
		if f.Default != "" {
			defVal = InlineCode(f.Default)
		}
		rows = append(rows, []string{InlineCode(f.Name), f.Type, defVal, InlineCode(f.EnvVar()), f.Description})
	}
	w.Table(headers, rows)

	w.CodeBlock("yaml", `threshold: BEST_PRACTICE_VIOLATION
modules:
  - rules/
check_options:
  check_regular_timestamps:
    time_tolerance_decimals: 6`)

	// Check configuration
	w.Header(2, "Check Configuration")
	w.Paragraph(fmt.Sprintf("The file passed with %s reassigns the importance of checks by name, or skips them. "+
		"Every key is optional and each check may appear only once.", InlineCode("--config-path")))

	keys := []string{InlineCode(inspector.SkipKey) + ": checks that do not run"}
	for _, imp := range core.Importances() {
		if !imp.IsAdministrative() {
			keys = append(keys, InlineCode(imp.String())+": checks reported at this importance")
		}
	}
	w.BulletList(keys)

	w.CodeBlock("yaml", `CRITICAL:
  - check_missing_unit
SKIP:
  - check_name_colons`)

	return w.Bytes()
}
