// Package config loads the CLI settings.
//
// Settings come from, in increasing precedence: built-in defaults, the
// nwbinspector.yaml settings file, NWBINSPECTOR_* environment variables and
// command-line flags.
package config

// Config holds the CLI settings.
type Config struct {
	// Threshold is the lowest importance reported.
	Threshold string `koanf:"threshold"`

	// NoColor disables colored console reports.
	NoColor bool `koanf:"no_color"`

	// Modules are Starlark rule module files or directories.
	Modules []string `koanf:"modules"`

	// ConfigPath is the check configuration document.
	ConfigPath string `koanf:"config_path"`

	// CheckOptions overrides check tunables, keyed by check name.
	CheckOptions map[string]map[string]any `koanf:"check_options"`

	// SkipValidation turns off the structural validator.
	SkipValidation bool `koanf:"skip_validation"`

	// DocsBaseURL points check documentation links at a mirror of the
	// best-practices guide.
	DocsBaseURL string `koanf:"docs_base_url"`

	LogLevel     string `koanf:"log_level"`
	OutputFormat string `koanf:"output"`
}

// Default configuration values.
const (
	DefaultThreshold = "BEST_PRACTICE_SUGGESTION"
	DefaultLogLevel  = "warn"
	DefaultOutput    = "auto" // Auto-detect: TTY=text, non-TTY=markdown
	EnvPrefix        = "NWBINSPECTOR_"
)

// SettingsFiles are the settings file names looked up in the working
// directory, in order.
var SettingsFiles = []string{"nwbinspector.yaml", "nwbinspector.yml", ".nwbinspector.yaml"}
