package inspector

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/catalystneuro/nwbinspector/pkg/core"
)

func TestOptionGetters(t *testing.T) {
	opts := Options{
		"count": 3,
		"big":   uint64(7),
		"ratio": 0.5,
		"whole": 2.0,
		"name":  "x",
		"flag":  true,
	}

	assert.Equal(t, 3, opts.Int("count", 0))
	assert.Equal(t, 7, opts.Int("big", 0))
	assert.Equal(t, 2, opts.Int("whole", 0))
	assert.Equal(t, 9, opts.Int("missing", 9))
	assert.Equal(t, 9, opts.Int("name", 9))

	assert.Equal(t, 0.5, opts.Float("ratio", 0))
	assert.Equal(t, 3.0, opts.Float("count", 0))
	assert.Equal(t, "x", opts.String("name", ""))
	assert.True(t, opts.Bool("flag", false))
	assert.Equal(t, "d", GetOption(Options(nil), "name", "d"))
}

func TestDecodeOptions(t *testing.T) {
	var cfg struct {
		Decimals  int     `mapstructure:"time_tolerance_decimals"`
		Threshold float64 `mapstructure:"gb_severity_threshold"`
	}
	err := DecodeOptions(Options{"time_tolerance_decimals": "6", "gb_severity_threshold": 2}, &cfg)
	require.NoError(t, err)
	assert.Equal(t, 6, cfg.Decimals)
	assert.Equal(t, 2.0, cfg.Threshold)

	err = DecodeOptions(Options{"unknown": 1}, &cfg)
	assert.Error(t, err)
}

func TestWithOptions(t *testing.T) {
	r := NewRegistry()
	d := def("check_a", core.BestPracticeSuggestion, "TimeSeries", noFinding)
	d.Options = map[string]any{"nelems": 200, "keep": true}
	r.Register(d)
	r.Register(def("check_b", core.BestPracticeSuggestion, "TimeSeries", noFinding))

	checks := WithOptions(r.Checks(), map[string]map[string]any{
		"check_a": {"nelems": 10},
		"absent":  {"x": 1},
	})
	assert.Equal(t, map[string]any{"nelems": 10, "keep": true}, checks[0].Options())
	assert.Empty(t, checks[1].Options())
	assert.Equal(t, 200, r.Checks()[0].Options()["nelems"])
}
