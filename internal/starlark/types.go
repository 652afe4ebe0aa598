// Package starlark loads user-written checks from Starlark rule modules.
//
// A rule module is a .star file that calls register_check for each check it
// defines:
//
//	def check_short_traces(obj, options):
//	    if obj.data.shape[0] < options["min_samples"]:
//	        return finding("%s is very short." % obj.name, severity = "LOW")
//
//	register_check(
//	    name = "check_short_traces",
//	    importance = "BEST_PRACTICE_SUGGESTION",
//	    neurodata_type = "TimeSeries",
//	    fn = check_short_traces,
//	    options = {"min_samples": 10},
//	)
//
// A rule returns None, a string, a finding, or a list of strings and
// findings.
package starlark

import (
	"fmt"
	"time"

	"go.starlark.net/starlark"
	"go.starlark.net/starlarkstruct"

	"github.com/catalystneuro/nwbinspector/pkg/nwb"
)

// GoToStarlark converts a Go value to a Starlark value.
// Supported types: string, int, int64, float64, bool, []string, []float64,
// []any, map[string]any
func GoToStarlark(v any) (starlark.Value, error) {
	if v == nil {
		return starlark.None, nil
	}

	switch val := v.(type) {
	case string:
		return starlark.String(val), nil

	case int:
		return starlark.MakeInt(val), nil

	case int64:
		return starlark.MakeInt64(val), nil

	case float64:
		return starlark.Float(val), nil

	case bool:
		return starlark.Bool(val), nil

	case []string:
		list := make([]starlark.Value, len(val))
		for i, s := range val {
			list[i] = starlark.String(s)
		}
		return starlark.NewList(list), nil

	case []float64:
		list := make([]starlark.Value, len(val))
		for i, f := range val {
			list[i] = starlark.Float(f)
		}
		return starlark.NewList(list), nil

	case []any:
		list := make([]starlark.Value, len(val))
		for i, item := range val {
			sv, err := GoToStarlark(item)
			if err != nil {
				return nil, fmt.Errorf("list index %d: %w", i, err)
			}
			list[i] = sv
		}
		return starlark.NewList(list), nil

	case map[string]any:
		dict := starlark.NewDict(len(val))
		for k, v := range val {
			sv, err := GoToStarlark(v)
			if err != nil {
				return nil, fmt.Errorf("dict key %q: %w", k, err)
			}
			if err := dict.SetKey(starlark.String(k), sv); err != nil {
				return nil, fmt.Errorf("dict setkey %q: %w", k, err)
			}
		}
		return dict, nil

	default:
		return nil, fmt.Errorf("unsupported type: %T", v)
	}
}

// ToGo converts a Starlark value back to a Go value.
// Returns: string, int64, float64, bool, []any, map[string]any, or nil
func ToGo(v starlark.Value) (any, error) {
	switch val := v.(type) {
	case starlark.NoneType:
		return nil, nil

	case starlark.String:
		return string(val), nil

	case starlark.Int:
		i64, ok := val.Int64()
		if !ok {
			return nil, fmt.Errorf("integer %s out of range", val)
		}
		return i64, nil

	case starlark.Float:
		return float64(val), nil

	case starlark.Bool:
		return bool(val), nil

	case starlark.Indexable: // list, tuple
		result := make([]any, val.Len())
		for i := 0; i < val.Len(); i++ {
			gv, err := ToGo(val.Index(i))
			if err != nil {
				return nil, fmt.Errorf("index %d: %w", i, err)
			}
			result[i] = gv
		}
		return result, nil

	case *starlark.Dict:
		result := make(map[string]any)
		for _, item := range val.Items() {
			key, ok := item[0].(starlark.String)
			if !ok {
				return nil, fmt.Errorf("dict key must be string, got %s", item[0].Type())
			}
			gv, err := ToGo(item[1])
			if err != nil {
				return nil, fmt.Errorf("dict key %q: %w", key, err)
			}
			result[string(key)] = gv
		}
		return result, nil

	default:
		return nil, fmt.Errorf("unsupported type: %s", v.Type())
	}
}

func stringList(ss []string) *starlark.List {
	list := make([]starlark.Value, len(ss))
	for i, s := range ss {
		list[i] = starlark.String(s)
	}
	return starlark.NewList(list)
}

func optionalFloat(f *float64) starlark.Value {
	if f == nil {
		return starlark.None
	}
	return starlark.Float(*f)
}

// datasetValue exposes a dataset as a struct with shape, dtype and the
// flattened values. A missing dataset is None.
func datasetValue(d *nwb.Dataset) starlark.Value {
	if d == nil {
		return starlark.None
	}
	shape := make([]starlark.Value, len(d.Shape))
	for i, n := range d.Shape {
		shape[i] = starlark.MakeInt(n)
	}
	values, _ := GoToStarlark(d.Values)
	return starlarkstruct.FromStringDict(starlark.String("dataset"), starlark.StringDict{
		"shape":  starlark.Tuple(shape),
		"dtype":  starlark.String(d.DType),
		"values": values,
	})
}

// ObjectValue converts an object to the frozen struct rules receive. Fields
// common to every object are name, neurodata_type, ancestry and path;
// the remaining fields depend on the concrete type.
func ObjectValue(obj nwb.Object) starlark.Value {
	fields := starlark.StringDict{
		"name":           starlark.String(obj.Name()),
		"neurodata_type": starlark.String(obj.TypeName()),
		"ancestry":       stringList(obj.Ancestry()),
		"path":           starlark.String(obj.Path()),
	}
	if d, ok := obj.(nwb.Describable); ok {
		fields["description"] = starlark.String(d.GetDescription())
	}

	switch o := obj.(type) {
	case *nwb.NWBFile:
		fields["identifier"] = starlark.String(o.Identifier)
		fields["session_description"] = starlark.String(o.SessionDescription)
		fields["session_start_time"] = starlark.String(o.SessionStartTime.Format(time.RFC3339))
		fields["experimenter"] = stringList(o.Experimenter)
		fields["experiment_description"] = starlark.String(o.ExperimentDescription)
		fields["institution"] = starlark.String(o.Institution)
		fields["keywords"] = stringList(o.Keywords)
		fields["related_publications"] = stringList(o.RelatedPublications)
	case *nwb.Subject:
		fields["subject_id"] = starlark.String(o.SubjectID)
		fields["species"] = starlark.String(o.Species)
		fields["sex"] = starlark.String(o.Sex)
		fields["age"] = starlark.String(o.Age)
	case *nwb.TimeSeries:
		fields["data"] = datasetValue(o.Data)
		fields["timestamps"] = datasetValue(o.Timestamps)
		fields["unit"] = starlark.String(o.Unit)
		fields["resolution"] = starlark.Float(o.Resolution)
		fields["rate"] = optionalFloat(o.Rate)
		fields["starting_time"] = starlark.Float(o.StartingTime)
		fields["comments"] = starlark.String(o.Comments)
	case *nwb.DynamicTable:
		cols := starlark.NewDict(len(o.Columns))
		for _, c := range o.Columns {
			_ = cols.SetKey(starlark.String(c.Name()), datasetValue(c.Data))
		}
		fields["columns"] = cols
	case *nwb.VectorData:
		fields["data"] = datasetValue(o.Data)
	case *nwb.IntracellularElectrode:
		fields["filtering"] = starlark.String(o.Filtering)
		fields["location"] = starlark.String(o.Location)
	case *nwb.OptogeneticStimulusSite:
		fields["location"] = starlark.String(o.Location)
		fields["excitation_lambda"] = starlark.Float(o.ExcitationLambda)
	}

	v := starlarkstruct.FromStringDict(starlark.String("nwb_object"), fields)
	v.Freeze()
	return v
}
