package checks

import (
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/catalystneuro/nwbinspector/pkg/checks/arrays"
	"github.com/catalystneuro/nwbinspector/pkg/core"
	"github.com/catalystneuro/nwbinspector/pkg/inspector"
	"github.com/catalystneuro/nwbinspector/pkg/nwb"
)

// seriesCheck adapts a check on a TimeSeries.
func seriesCheck(fn func(*nwb.TimeSeries, inspector.Options) inspector.Result) inspector.CheckFunc {
	return func(obj nwb.Object, opts inspector.Options) inspector.Result {
		ts, ok := obj.(*nwb.TimeSeries)
		if !ok {
			return nil
		}
		return fn(ts, opts)
	}
}

// mustDecode decodes check options. Bad options are a configuration
// mistake reported through the check's ERROR finding.
func mustDecode(opts inspector.Options, out any) {
	if err := inspector.DecodeOptions(opts, out); err != nil {
		panic(err)
	}
}

type regularTimestampsOptions struct {
	TimeToleranceDecimals int     `mapstructure:"time_tolerance_decimals"`
	GBSeverityThreshold   float64 `mapstructure:"gb_severity_threshold"`
}

// RegularTimestamps suggests rate and starting_time for evenly spaced
// timestamps.
var RegularTimestamps = inspector.CheckDef{
	Name:          "check_regular_timestamps",
	Importance:    core.BestPracticeViolation,
	NeurodataType: "TimeSeries",
	Description:   "Evenly spaced timestamps should be stored as starting_time and rate.",
	Options: map[string]any{
		"time_tolerance_decimals": 9,
		"gb_severity_threshold":   1.0,
	},
	Func: seriesCheck(func(ts *nwb.TimeSeries, opts inspector.Options) inspector.Result {
		var o regularTimestampsOptions
		mustDecode(opts, &o)

		t := ts.Timestamps
		if t == nil || t.Len() <= 2 || !arrays.IsRegular(t.Values, o.TimeToleranceDecimals) {
			return nil
		}
		severity := core.SeverityLow
		if float64(t.NBytes()) > o.GBSeverityThreshold*1e9 {
			severity = core.SeverityHigh
		}
		return inspector.Finding(fmt.Sprintf(
			"TimeSeries appears to have a constant sampling rate. Consider specifying starting_time=%s and rate=%s instead of timestamps.",
			formatFloat(t.Values[0]), formatFloat(t.Values[1]-t.Values[0])),
			core.WithSeverity(severity))
	}),
}

// DataOrientation flags data whose first axis is not the longest.
var DataOrientation = inspector.CheckDef{
	Name:          "check_data_orientation",
	Importance:    core.Critical,
	NeurodataType: "TimeSeries",
	Description:   "Time should be the first and usually longest dimension of data.",
	Func: seriesCheck(func(ts *nwb.TimeSeries, _ inspector.Options) inspector.Result {
		if ts.Data == nil || ts.Data.NDim() < 2 {
			return nil
		}
		for _, n := range ts.Data.Shape[1:] {
			if n > ts.Data.Shape[0] {
				return inspector.Finding("Data may be in the wrong orientation. " +
					"Time should be in the first dimension, and is usually the longest dimension. " +
					"Here, another dimension is longer.")
			}
		}
		return nil
	}),
}

// TimestampsMatchFirstDimension flags timestamps whose length differs from
// the first axis of data.
var TimestampsMatchFirstDimension = inspector.CheckDef{
	Name:          "check_timestamps_match_first_dimension",
	Importance:    core.Critical,
	NeurodataType: "TimeSeries",
	Description:   "There should be one timestamp per entry of the first axis of data.",
	Func: seriesCheck(func(ts *nwb.TimeSeries, _ inspector.Options) inspector.Result {
		if ts.Data == nil || ts.Timestamps == nil {
			return nil
		}
		first := ts.Data.Shape[:min(1, len(ts.Data.Shape))]
		if !slices.Equal(first, ts.Timestamps.Shape) {
			return inspector.Finding("The length of the first dimension of data does not match the length of timestamps.")
		}
		return nil
	}),
}

// TimestampsAscending flags timestamps that are not strictly increasing.
var TimestampsAscending = inspector.CheckDef{
	Name:          "check_timestamps_ascending",
	Importance:    core.BestPracticeViolation,
	NeurodataType: "TimeSeries",
	Description:   "Timestamps should be strictly increasing.",
	Options:       map[string]any{"nelems": 200},
	Func: seriesCheck(func(ts *nwb.TimeSeries, opts inspector.Options) inspector.Result {
		if ts.Timestamps == nil || arrays.IsAscending(ts.Timestamps.Values, opts.Int("nelems", 200)) {
			return nil
		}
		return inspector.Finding(fmt.Sprintf("%s timestamps are not ascending.", ts.Name()))
	}),
}

// MissingUnit flags series without a unit.
var MissingUnit = inspector.CheckDef{
	Name:          "check_missing_unit",
	Importance:    core.BestPracticeViolation,
	NeurodataType: "TimeSeries",
	Description:   "The unit of data should be specified.",
	Func: seriesCheck(func(ts *nwb.TimeSeries, _ inspector.Options) inspector.Result {
		if ts.Unit == "" {
			return inspector.Finding("Missing text for attribute 'unit'. Please specify the scientific unit of the 'data'.")
		}
		return nil
	}),
}

// Resolution flags non-positive resolutions other than the -1 sentinel.
var Resolution = inspector.CheckDef{
	Name:          "check_resolution",
	Importance:    core.BestPracticeViolation,
	NeurodataType: "TimeSeries",
	Description:   "Unknown resolution should be -1.0 or NaN.",
	Func: seriesCheck(func(ts *nwb.TimeSeries, _ inspector.Options) inspector.Result {
		r := ts.Resolution
		if math.IsNaN(r) || r == -1 || r > 0 {
			return nil
		}
		return inspector.Finding(fmt.Sprintf("'resolution' should use -1.0 or NaN for unknown instead of %s.", formatFloat(r)))
	}),
}

// SharedTimestamps suggests linking timestamps that equal those of another
// series in the same file.
var SharedTimestamps = inspector.CheckDef{
	Name:          "check_for_shared_timestamps",
	Importance:    core.BestPracticeSuggestion,
	NeurodataType: "TimeSeries",
	Description:   "Identical timestamps should be linked rather than duplicated.",
	Options:       map[string]any{"nelems": 200},
	Func: seriesCheck(func(ts *nwb.TimeSeries, opts inspector.Options) inspector.Result {
		if ts.Timestamps == nil {
			return nil
		}
		root, ok := nwb.Ancestor(ts, "NWBFile").(*nwb.NWBFile)
		if !ok {
			return nil
		}
		nelems := opts.Int("nelems", 200)
		mine := ts.Timestamps.Values
		idx := arrays.UniformIndexes(len(mine), nelems)

		for _, o := range root.Objects() {
			other, ok := o.(*nwb.TimeSeries)
			if !ok || other == ts || other.Timestamps == nil || other.Timestamps == ts.Timestamps {
				continue
			}
			theirs := other.Timestamps.Values
			if !slices.Equal(ts.Timestamps.Shape, other.Timestamps.Shape) || len(theirs) != len(mine) {
				continue
			}
			if !slices.Equal(arrays.Head(mine, nelems), arrays.Head(theirs, nelems)) {
				continue
			}
			if slices.Equal(arrays.Take(mine, idx), arrays.Take(theirs, idx)) {
				return inspector.Finding(fmt.Sprintf(
					"The timestamps of this TimeSeries appear to be equivalent to the timestamps of %s! "+
						"You can save file space by linking one to the other.", other.Name()))
			}
		}
		return nil
	}),
}

// formatFloat prints a float the way a reader expects in a message:
// shortest form, always with a decimal point.
func formatFloat(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.ContainsAny(s, ".NI") {
		s += ".0"
	}
	return s
}
