package inspector

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/google/jsonschema-go/jsonschema"
	"gopkg.in/yaml.v3"

	"github.com/catalystneuro/nwbinspector/pkg/core"
)

// SkipKey is the configuration key that removes checks from a run.
const SkipKey = "SKIP"

//go:embed config.schema.json
var configSchemaJSON []byte

var configSchema = func() *jsonschema.Resolved {
	var s jsonschema.Schema
	if err := json.Unmarshal(configSchemaJSON, &s); err != nil {
		panic(fmt.Sprintf("inspector: parse config schema: %v", err))
	}
	rs, err := s.Resolve(nil)
	if err != nil {
		panic(fmt.Sprintf("inspector: resolve config schema: %v", err))
	}
	return rs
}()

// CheckConfig maps an importance name, or SKIP, to the check names it
// applies to.
type CheckConfig map[string][]string

// LoadCheckConfig reads and validates a configuration file.
func LoadCheckConfig(path string) (CheckConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &ConfigurationError{Source: path, Err: err}
	}
	cfg, err := ParseCheckConfig(data)
	if err != nil {
		var ce *ConfigurationError
		if errors.As(err, &ce) {
			ce.Source = path
		}
		return nil, err
	}
	return cfg, nil
}

// ParseCheckConfig decodes a YAML configuration document and validates it
// against the configuration schema.
func ParseCheckConfig(data []byte) (CheckConfig, error) {
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, &ConfigurationError{Err: err}
	}
	if raw == nil {
		return CheckConfig{}, nil
	}

	// Normalize to JSON values before schema validation.
	buf, err := json.Marshal(raw)
	if err != nil {
		return nil, &ConfigurationError{Err: fmt.Errorf("configuration must be a mapping with string keys: %w", err)}
	}
	var instance any
	if err := json.Unmarshal(buf, &instance); err != nil {
		return nil, &ConfigurationError{Err: err}
	}
	if err := configSchema.Validate(instance); err != nil {
		return nil, &ConfigurationError{Err: err}
	}

	var cfg CheckConfig
	if err := json.Unmarshal(buf, &cfg); err != nil {
		return nil, &ConfigurationError{Err: err}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration keys and that no check is listed under
// more than one of them.
func (c CheckConfig) Validate() error {
	keys := make([]string, 0, len(c))
	for k := range c {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if k == SkipKey {
			continue
		}
		imp, ok := core.ParseImportance(k)
		if !ok || imp.IsAdministrative() {
			return &ConfigurationError{Err: fmt.Errorf("unknown configuration key %q", k)}
		}
	}

	// A check belongs to at most one key.
	seen := make(map[string]string)
	for _, k := range keys {
		for _, n := range c[k] {
			if prev, ok := seen[n]; ok && prev != k {
				return &ConfigurationError{Err: fmt.Errorf("check %q is listed under both %s and %s", n, prev, k)}
			}
			seen[n] = k
		}
	}
	return nil
}

// ConfigureChecks applies cfg to checks and returns the effective set.
//
// A check listed under an importance takes that importance; one listed under
// SKIP is left out. The result holds copies, so neither checks nor the
// registry they came from change. Names that match no check are ignored.
func ConfigureChecks(cfg CheckConfig, checks []*Check) ([]*Check, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	skip := make(map[string]bool)
	override := make(map[string]core.Importance)
	for key, names := range cfg {
		if key == SkipKey {
			for _, n := range names {
				skip[n] = true
			}
			continue
		}
		imp, _ := core.ParseImportance(key)
		for _, n := range names {
			override[n] = imp
		}
	}

	out := make([]*Check, 0, len(checks))
	for _, c := range checks {
		if skip[c.Name()] {
			continue
		}
		if imp, ok := override[c.Name()]; ok {
			out = append(out, c.withImportance(imp))
			continue
		}
		out = append(out, c.clone())
	}
	return out, nil
}
