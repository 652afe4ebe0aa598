package inspector

import (
	"fmt"

	"github.com/go-viper/mapstructure/v2"
)

// Options holds a check's tunables. Values come from the check's defaults,
// overridden by the check_options settings.
type Options map[string]any

// GetOption extracts a typed option with a default value.
func GetOption[T any](opts Options, key string, defaultVal T) T {
	if opts == nil {
		return defaultVal
	}
	v, ok := opts[key]
	if !ok {
		return defaultVal
	}
	if typed, ok := v.(T); ok {
		return typed
	}
	return defaultVal
}

// Int extracts an int option, accepting any numeric type.
func (o Options) Int(key string, defaultVal int) int {
	v, ok := o[key]
	if !ok {
		return defaultVal
	}
	switch n := v.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case uint64:
		return int(n)
	case float64:
		return int(n)
	default:
		return defaultVal
	}
}

// Float extracts a float option, accepting any numeric type.
func (o Options) Float(key string, defaultVal float64) float64 {
	v, ok := o[key]
	if !ok {
		return defaultVal
	}
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int64:
		return float64(n)
	case uint64:
		return float64(n)
	default:
		return defaultVal
	}
}

// String extracts a string option.
func (o Options) String(key string, defaultVal string) string {
	return GetOption(o, key, defaultVal)
}

// Bool extracts a bool option.
func (o Options) Bool(key string, defaultVal bool) bool {
	return GetOption(o, key, defaultVal)
}

// DecodeOptions decodes opts into the struct pointed to by out using its
// mapstructure tags. Numeric and string values are converted where possible.
func DecodeOptions(opts Options, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
	})
	if err != nil {
		return err
	}
	if err := dec.Decode(map[string]any(opts)); err != nil {
		return fmt.Errorf("decode check options: %w", err)
	}
	return nil
}

// WithOptions returns copies of checks with per-check tunables merged over
// their defaults. Keys of overrides are check names; unknown names are
// ignored.
func WithOptions(checks []*Check, overrides map[string]map[string]any) []*Check {
	out := make([]*Check, len(checks))
	for i, c := range checks {
		cp := c.clone()
		for k, v := range overrides[c.Name()] {
			cp.options[k] = v
		}
		out[i] = cp
	}
	return out
}
