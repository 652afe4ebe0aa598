package checks

import (
	"strings"

	"github.com/catalystneuro/nwbinspector/pkg/core"
	"github.com/catalystneuro/nwbinspector/pkg/inspector"
	"github.com/catalystneuro/nwbinspector/pkg/nwb"
)

// missingAttributes returns one finding per blank attribute, in the order
// given.
func missingAttributes(attrs ...[2]string) inspector.Messages {
	var out inspector.Messages
	for _, a := range attrs {
		if strings.TrimSpace(a[1]) == "" {
			out = append(out, inspector.Finding("Missing text for attribute '"+a[0]+"'."))
		}
	}
	return out
}

// IntracellularElectrodeMetadata flags electrodes without a description,
// filtering or location.
var IntracellularElectrodeMetadata = inspector.CheckDef{
	Name:          "check_intracellular_electrode_metadata",
	Importance:    core.BestPracticeSuggestion,
	NeurodataType: "IntracellularElectrode",
	Description:   "Intracellular electrodes should describe their filtering and location.",
	Func: func(obj nwb.Object, _ inspector.Options) inspector.Result {
		e, ok := obj.(*nwb.IntracellularElectrode)
		if !ok {
			return nil
		}
		return missingAttributes(
			[2]string{"description", e.Description},
			[2]string{"filtering", e.Filtering},
			[2]string{"location", e.Location},
		)
	},
}

// OptogeneticStimulusSiteMetadata flags sites without a description or
// location.
var OptogeneticStimulusSiteMetadata = inspector.CheckDef{
	Name:          "check_optogenetic_stimulus_site_metadata",
	Importance:    core.BestPracticeSuggestion,
	NeurodataType: "OptogeneticStimulusSite",
	Description:   "Optogenetic stimulus sites should describe their location.",
	Func: func(obj nwb.Object, _ inspector.Options) inspector.Result {
		s, ok := obj.(*nwb.OptogeneticStimulusSite)
		if !ok {
			return nil
		}
		return missingAttributes(
			[2]string{"description", s.Description},
			[2]string{"location", s.Location},
		)
	},
}

// OptogeneticSitesHaveSeries flags files that declare stimulus sites but
// record no OptogeneticSeries.
var OptogeneticSitesHaveSeries = inspector.CheckDef{
	Name:          "check_optogenetic_sites_have_series",
	Importance:    core.BestPracticeViolation,
	NeurodataType: "NWBFile",
	Description:   "Every optogenetic stimulus site should be used by an OptogeneticSeries.",
	Func: fileCheck(func(f *nwb.NWBFile) inspector.Result {
		var sites, series bool
		for _, o := range f.Objects() {
			sites = sites || nwb.IsA(o, "OptogeneticStimulusSite")
			series = series || nwb.IsA(o, "OptogeneticSeries")
		}
		if sites && !series {
			return inspector.Finding("OptogeneticStimulusSite object(s) exists without an OptogeneticSeries.")
		}
		return nil
	}),
}
