package checks

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/catalystneuro/nwbinspector/pkg/core"
	"github.com/catalystneuro/nwbinspector/pkg/nwb"
)

func TestFileMetadata_Missing(t *testing.T) {
	root := newFile()
	tests := []struct {
		check string
		want  string
		msgs  []core.InspectorMessage
	}{
		{"experimenter", "Experimenter is missing.", run(t, ExperimenterExists, root)},
		{"experiment description", "Experiment description is missing.", run(t, ExperimentDescription, root)},
		{"institution", "Metadata /general/institution is missing.", run(t, Institution, root)},
		{"keywords", "Metadata /general/keywords is missing.", run(t, Keywords, root)},
		{"subject", "Subject is missing.", run(t, SubjectExists, root)},
	}
	for _, tt := range tests {
		require.Len(t, tt.msgs, 1, tt.check)
		assert.Equal(t, tt.want, tt.msgs[0].Message)
		assert.Equal(t, "NWBFile", tt.msgs[0].ObjectType)
		assert.Equal(t, "/", tt.msgs[0].Location)
	}
}

func TestFileMetadata_Present(t *testing.T) {
	root := newFile()
	root.Experimenter = []string{"Doe, Jane"}
	root.ExperimentDescription = "recordings"
	root.Institution = "Lab"
	root.Keywords = []string{"hippocampus"}
	root.SetSubject(nwb.NewSubject())

	for _, def := range All()[3:8] {
		assert.Empty(t, run(t, def, root), def.Name)
	}
}

func TestDOIPublications(t *testing.T) {
	root := newFile()
	root.RelatedPublications = []string{"doi:10.1/abc", "https://doi.org/10.1/abc", "my paper", "www.example.org"}
	msgs := run(t, DOIPublications, root)
	assert.Equal(t, []string{
		"Metadata /general/related_publications 'my paper' does not start with 'doi: ###' and is not an external 'doi' link.",
		"Metadata /general/related_publications 'www.example.org' does not start with 'doi: ###' and is not an external 'doi' link.",
	}, texts(msgs))
	for _, m := range msgs {
		assert.Equal(t, core.BestPracticeViolation, m.Importance)
	}
}

func TestSubjectMetadata(t *testing.T) {
	s := nwb.NewSubject()
	s.Species = "Mus musculus"
	assert.Equal(t, []string{"Subject sex is missing.", "Subject id is missing."}, texts(run(t, SubjectMetadata, s)))
}
