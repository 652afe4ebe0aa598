package checks

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/catalystneuro/nwbinspector/pkg/nwb"
)

func table(cols ...*nwb.VectorData) *nwb.DynamicTable {
	t := nwb.NewDynamicTable("trials", "trial table")
	for _, c := range cols {
		t.AddColumn(c)
	}
	return t
}

func column(name string, values ...float64) *nwb.VectorData {
	return nwb.NewVectorData(name, name+" column", nwb.NewDataset(values))
}

func TestSingleValueColumn(t *testing.T) {
	tbl := table(column("constant", 3, 3, 3), column("varied", 1, 2, 3))
	msgs := run(t, SingleValueColumn, tbl)
	require.Len(t, msgs, 1)
	assert.Equal(t, "'constant' column has a single unique value.", msgs[0].Message)
	assert.Equal(t, "constant", msgs[0].ObjectName)
	assert.Equal(t, "VectorData", msgs[0].ObjectType)
}

func TestSingleValueColumn_SkipsIndexedAndShortColumns(t *testing.T) {
	index := nwb.WithType(column("spikes_index", 2, 2), "VectorIndex")
	tbl := table(column("spikes", 1, 1), index, column("single", 5))
	assert.Empty(t, run(t, SingleValueColumn, tbl))
}

func TestColumnBinaryCapability(t *testing.T) {
	tbl := table(column("correct", 0, 1, 1, 0), column("score", 0, 1, 2))
	msgs := run(t, ColumnBinaryCapability, tbl)
	assert.Equal(t, []string{"Column 'correct' uses 'float64' but has binary values [0, 1]. " +
		"Consider making it boolean instead and saving 28 B."}, texts(msgs))

	flags := column("flags", 0, 1)
	flags.Data.DType = "bool"
	assert.Empty(t, run(t, ColumnBinaryCapability, table(flags)))
}

func TestNegativeSpikeTimes(t *testing.T) {
	units := nwb.WithType(table(column("spike_times", -0.1, 0.2)), "Units")
	msgs := run(t, NegativeSpikeTimes, units)
	require.Len(t, msgs, 1)
	assert.Contains(t, msgs[0].Message, "negative spike times")

	ok := nwb.WithType(table(column("spike_times", 0.1, 0.2)), "Units")
	assert.Empty(t, run(t, NegativeSpikeTimes, ok))
	assert.Empty(t, run(t, NegativeSpikeTimes, nwb.WithType(table(), "Units")))
}

func TestNegativeSpikeTimes_OnlyUnits(t *testing.T) {
	c := NegativeSpikeTimes
	assert.Equal(t, "Units", c.NeurodataType)
	assert.False(t, nwb.IsA(table(), c.NeurodataType))
}

func TestColumnBinaryCapability_LargeColumn(t *testing.T) {
	vals := make([]float64, 1000)
	for i := range vals {
		vals[i] = float64(i % 2)
	}
	msgs := run(t, ColumnBinaryCapability, table(column("lick", vals...)))
	require.Len(t, msgs, 1)
	assert.True(t, strings.HasSuffix(msgs[0].Message, "saving 7.0 kB."), msgs[0].Message)
}
