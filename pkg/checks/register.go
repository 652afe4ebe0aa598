package checks

import "github.com/catalystneuro/nwbinspector/pkg/inspector"

// All returns the built-in check definitions in registration order.
func All() []inspector.CheckDef {
	return []inspector.CheckDef{
		// General
		NameSlashes,
		NameColons,
		Description,

		// NWBFile metadata
		ExperimenterExists,
		ExperimentDescription,
		Institution,
		Keywords,
		SubjectExists,
		DOIPublications,
		SubjectMetadata,

		// TimeSeries
		RegularTimestamps,
		DataOrientation,
		TimestampsMatchFirstDimension,
		TimestampsAscending,
		MissingUnit,
		Resolution,
		SharedTimestamps,

		// Tables
		SingleValueColumn,
		ColumnBinaryCapability,
		NegativeSpikeTimes,

		// Intracellular electrophysiology and optogenetics
		IntracellularElectrodeMetadata,
		OptogeneticStimulusSiteMetadata,
		OptogeneticSitesHaveSeries,
	}
}

// Register loads every built-in check into reg.
func Register(reg *inspector.Registry) {
	for _, def := range All() {
		reg.Register(def)
	}
}

// DefaultRegistry returns a registry pre-loaded with the built-in checks.
// It is not frozen, so rule modules can still be added.
func DefaultRegistry() *inspector.Registry {
	r := inspector.NewRegistry()
	Register(r)
	return r
}
