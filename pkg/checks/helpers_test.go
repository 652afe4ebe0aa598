package checks

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/catalystneuro/nwbinspector/pkg/core"
	"github.com/catalystneuro/nwbinspector/pkg/inspector"
	"github.com/catalystneuro/nwbinspector/pkg/nwb"
)

// run registers def alone and runs it on obj.
func run(t *testing.T, def inspector.CheckDef, obj nwb.Object) []core.InspectorMessage {
	t.Helper()
	c := inspector.NewRegistry().Register(def)
	require.True(t, c.Applies(obj), "%s does not apply to %s", def.Name, obj.TypeName())
	return c.Run(obj)
}

func texts(msgs []core.InspectorMessage) []string {
	out := make([]string, len(msgs))
	for i, m := range msgs {
		out[i] = m.Message
	}
	return out
}

func newFile() *nwb.NWBFile {
	return nwb.NewNWBFile("id", "session", time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC))
}

func series(name string, data, timestamps []float64) *nwb.TimeSeries {
	ts := nwb.NewTimeSeries(name, nwb.NewDataset(data), "V")
	if timestamps != nil {
		ts.Timestamps = nwb.NewDataset(timestamps)
	}
	return ts
}
