package starlark

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.starlark.net/starlark"
	"go.starlark.net/starlarkstruct"

	"github.com/catalystneuro/nwbinspector/pkg/nwb"
)

var zeroTime = time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC)

func TestGoToStarlark(t *testing.T) {
	tests := []struct {
		name    string
		input   any
		wantStr string
		wantErr bool
	}{
		{name: "string", input: "hello", wantStr: `"hello"`},
		{name: "int", input: 42, wantStr: "42"},
		{name: "int64", input: int64(123456789), wantStr: "123456789"},
		{name: "float64", input: 3.5, wantStr: "3.5"},
		{name: "bool", input: true, wantStr: "True"},
		{name: "nil", input: nil, wantStr: "None"},
		{name: "string slice", input: []string{"a", "b"}, wantStr: `["a", "b"]`},
		{name: "float slice", input: []float64{0.5, 1}, wantStr: "[0.5, 1.0]"},
		{name: "any slice", input: []any{"x", 1, true}, wantStr: `["x", 1, True]`},
		{name: "map", input: map[string]any{"key": "value"}, wantStr: `{"key": "value"}`},
		{name: "unsupported", input: struct{}{}, wantErr: true},
		{name: "unsupported nested", input: []any{uint8(1)}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := GoToStarlark(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantStr, got.String())
		})
	}
}

func TestToGo(t *testing.T) {
	dict := starlark.NewDict(1)
	require.NoError(t, dict.SetKey(starlark.String("n"), starlark.MakeInt(3)))
	badDict := starlark.NewDict(1)
	require.NoError(t, badDict.SetKey(starlark.MakeInt(1), starlark.None))

	tests := []struct {
		name    string
		input   starlark.Value
		want    any
		wantErr bool
	}{
		{name: "string", input: starlark.String("hello"), want: "hello"},
		{name: "int", input: starlark.MakeInt(42), want: int64(42)},
		{name: "float", input: starlark.Float(3.5), want: 3.5},
		{name: "bool", input: starlark.Bool(false), want: false},
		{name: "none", input: starlark.None, want: nil},
		{name: "list", input: starlark.NewList([]starlark.Value{starlark.String("a")}), want: []any{"a"}},
		{name: "tuple", input: starlark.Tuple{starlark.MakeInt(1)}, want: []any{int64(1)}},
		{name: "dict", input: dict, want: map[string]any{"n": int64(3)}},
		{name: "non-string key", input: badDict, wantErr: true},
		{name: "function", input: starlark.NewBuiltin("f", nil), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ToGo(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func attr(t *testing.T, v starlark.Value, name string) starlark.Value {
	t.Helper()
	s, ok := v.(*starlarkstruct.Struct)
	require.True(t, ok, "not a struct: %s", v.Type())
	got, err := s.Attr(name)
	require.NoError(t, err, name)
	return got
}

func TestObjectValue_TimeSeries(t *testing.T) {
	root := nwb.NewNWBFile("id", "session", zeroTime)
	ts := nwb.WithType(nwb.NewTimeSeries("trace", nwb.NewDataset([]float64{1, 2, 3, 4}, 2, 2), "V"), "ElectricalSeries")
	root.Add(nwb.SectionAcquisition, ts)

	v := ObjectValue(ts)
	assert.Equal(t, starlark.String("trace"), attr(t, v, "name"))
	assert.Equal(t, starlark.String("ElectricalSeries"), attr(t, v, "neurodata_type"))
	assert.Equal(t, starlark.String("/acquisition/trace"), attr(t, v, "path"))
	assert.Equal(t, starlark.String("V"), attr(t, v, "unit"))
	assert.Equal(t, starlark.String("no description"), attr(t, v, "description"))
	assert.Equal(t, starlark.None, attr(t, v, "timestamps"))
	assert.Equal(t, starlark.None, attr(t, v, "rate"))
	assert.Equal(t, `["ElectricalSeries", "TimeSeries", "NWBDataInterface", "NWBContainer", "Container", "AbstractContainer"]`,
		attr(t, v, "ancestry").String())

	data := attr(t, v, "data")
	assert.Equal(t, "(2, 2)", attr(t, data, "shape").String())
	assert.Equal(t, starlark.String("float64"), attr(t, data, "dtype"))
}

func TestObjectValue_IsFrozen(t *testing.T) {
	v := ObjectValue(nwb.NewNWBFile("id", "session", zeroTime))
	exp, ok := attr(t, v, "keywords").(*starlark.List)
	require.True(t, ok)
	assert.Error(t, exp.Append(starlark.String("x")))
}

func TestObjectValue_TableColumns(t *testing.T) {
	tbl := nwb.NewDynamicTable("trials", "trial table")
	tbl.AddColumn(nwb.NewVectorData("start_time", "start", nwb.NewDataset([]float64{0, 1})))

	cols, ok := attr(t, ObjectValue(tbl), "columns").(*starlark.Dict)
	require.True(t, ok)
	col, found, err := cols.Get(starlark.String("start_time"))
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "[0.0, 1.0]", attr(t, col, "values").String())
}
