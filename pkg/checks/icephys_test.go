package checks

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/catalystneuro/nwbinspector/pkg/nwb"
)

func TestIntracellularElectrodeMetadata(t *testing.T) {
	e := nwb.NewIntracellularElectrode("elec", "patch pipette")
	assert.Equal(t, []string{
		"Missing text for attribute 'filtering'.",
		"Missing text for attribute 'location'.",
	}, texts(run(t, IntracellularElectrodeMetadata, e)))

	e.Filtering = "10 kHz low-pass"
	e.Location = "CA1"
	assert.Empty(t, run(t, IntracellularElectrodeMetadata, e))
}

func TestOptogeneticStimulusSiteMetadata(t *testing.T) {
	s := nwb.NewOptogeneticStimulusSite("site", "")
	assert.Equal(t, []string{
		"Missing text for attribute 'description'.",
		"Missing text for attribute 'location'.",
	}, texts(run(t, OptogeneticStimulusSiteMetadata, s)))
}

func TestOptogeneticSitesHaveSeries(t *testing.T) {
	root := newFile()
	assert.Empty(t, run(t, OptogeneticSitesHaveSeries, root))

	root.Add(nwb.SectionOptogenetic, nwb.NewOptogeneticStimulusSite("site", "laser"))
	assert.Equal(t, []string{"OptogeneticStimulusSite object(s) exists without an OptogeneticSeries."},
		texts(run(t, OptogeneticSitesHaveSeries, root)))

	stim := nwb.WithType(series("stim", []float64{1, 0}, nil), "OptogeneticSeries")
	root.Add(nwb.SectionStimulus, stim)
	assert.Empty(t, run(t, OptogeneticSitesHaveSeries, root))
}
