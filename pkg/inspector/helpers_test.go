package inspector

import (
	"time"

	"github.com/catalystneuro/nwbinspector/pkg/core"
	"github.com/catalystneuro/nwbinspector/pkg/nwb"
)

func noFinding(nwb.Object, Options) Result { return nil }

func oneFinding(text string) CheckFunc {
	return func(nwb.Object, Options) Result { return Finding(text) }
}

func def(name string, imp core.Importance, typ string, fn CheckFunc) CheckDef {
	return CheckDef{Name: name, Importance: imp, NeurodataType: typ, Func: fn}
}

// sampleFile has one TimeSeries in acquisition and one table in intervals.
func sampleFile() *nwb.NWBFile {
	root := nwb.NewNWBFile("id", "session", time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC))
	root.Add(nwb.SectionAcquisition, nwb.NewTimeSeries("trace", nwb.NewDataset([]float64{1, 2, 3}), "V"))
	root.Add(nwb.SectionIntervals, nwb.NewDynamicTable("trials", "trial table"))
	return root
}
