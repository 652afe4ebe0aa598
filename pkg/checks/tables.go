package checks

import (
	"fmt"
	"slices"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/catalystneuro/nwbinspector/pkg/checks/arrays"
	"github.com/catalystneuro/nwbinspector/pkg/core"
	"github.com/catalystneuro/nwbinspector/pkg/inspector"
	"github.com/catalystneuro/nwbinspector/pkg/nwb"
)

// tableCheck adapts a check on a DynamicTable.
func tableCheck(fn func(*nwb.DynamicTable, inspector.Options) inspector.Result) inspector.CheckFunc {
	return func(obj nwb.Object, opts inspector.Options) inspector.Result {
		t, ok := obj.(*nwb.DynamicTable)
		if !ok {
			return nil
		}
		return fn(t, opts)
	}
}

// valueColumns yields the columns holding plain values: index columns,
// region columns and the data they index are skipped.
func valueColumns(t *nwb.DynamicTable) []*nwb.VectorData {
	var out []*nwb.VectorData
	for _, c := range t.Columns {
		switch {
		case c.Data == nil || c.Data.Len() == 0:
		case nwb.IsA(c, "VectorIndex"), nwb.IsA(c, "DynamicTableRegion"):
		case strings.HasSuffix(c.Name(), "_index"):
		case t.Column(c.Name()+"_index") != nil:
		default:
			out = append(out, c)
		}
	}
	return out
}

// SingleValueColumn flags columns in which every row holds the same value.
var SingleValueColumn = inspector.CheckDef{
	Name:          "check_single_value_column",
	Importance:    core.BestPracticeSuggestion,
	NeurodataType: "DynamicTable",
	Description:   "Columns with a single repeated value are better stored as an attribute.",
	Func: tableCheck(func(t *nwb.DynamicTable, _ inspector.Options) inspector.Result {
		var out inspector.Messages
		for _, c := range valueColumns(t) {
			if c.Data.Len() < 2 || len(arrays.Unique(c.Data.Values)) != 1 {
				continue
			}
			out = append(out, inspector.Finding(
				fmt.Sprintf("'%s' column has a single unique value.", c.Name()),
				core.WithObject(c.TypeName(), c.Name(), c.Path())))
		}
		return out
	}),
}

// ColumnBinaryCapability flags numeric columns that only hold 0 and 1.
var ColumnBinaryCapability = inspector.CheckDef{
	Name:          "check_column_binary_capability",
	Importance:    core.BestPracticeSuggestion,
	NeurodataType: "DynamicTable",
	Description:   "Columns holding only 0 and 1 should be boolean.",
	Func: tableCheck(func(t *nwb.DynamicTable, _ inspector.Options) inspector.Result {
		var out inspector.Messages
		for _, c := range valueColumns(t) {
			if c.Data.DType == "bool" || !slices.Equal(arrays.Unique(c.Data.Values), []float64{0, 1}) {
				continue
			}
			saved := uint64(c.Data.ItemSize()-1) * uint64(c.Data.Size())
			out = append(out, inspector.Finding(
				fmt.Sprintf("Column '%s' uses '%s' but has binary values [0, 1]. Consider making it boolean instead and saving %s.",
					c.Name(), c.Data.DType, humanize.Bytes(saved)),
				core.WithObject(c.TypeName(), c.Name(), c.Path())))
		}
		return out
	}),
}

// NegativeSpikeTimes flags units whose spike times precede the session start.
var NegativeSpikeTimes = inspector.CheckDef{
	Name:          "check_negative_spike_times",
	Importance:    core.Critical,
	NeurodataType: "Units",
	Description:   "Spike times are relative to the session start and cannot be negative.",
	Func: tableCheck(func(t *nwb.DynamicTable, _ inspector.Options) inspector.Result {
		col := t.Column("spike_times")
		if col == nil || col.Data == nil {
			return nil
		}
		if m, ok := arrays.Min(col.Data.Values); ok && m < 0 {
			return inspector.Finding("This Units table contains negative spike times. " +
				"Time should generally be aligned to the earliest time reference in the NWBFile.")
		}
		return nil
	}),
}
