package checks

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/catalystneuro/nwbinspector/pkg/core"
	"github.com/catalystneuro/nwbinspector/pkg/inspector"
	"github.com/catalystneuro/nwbinspector/pkg/nwb"
)

func TestNameSlashes(t *testing.T) {
	msgs := run(t, NameSlashes, nwb.NewDynamicTable(`a\b`, "table"))
	require.Len(t, msgs, 1)
	assert.Equal(t, "Object name contains slashes.", msgs[0].Message)
	assert.Equal(t, core.Critical, msgs[0].Importance)
	assert.Equal(t, `a\b`, msgs[0].ObjectName)

	assert.Empty(t, run(t, NameSlashes, nwb.NewDynamicTable("ab", "table")))
}

func TestNameColons(t *testing.T) {
	root := newFile()
	ts := series("trace:1", []float64{1, 2}, nil)
	root.Add(nwb.SectionAcquisition, ts)

	msgs := run(t, NameColons, ts)
	require.Len(t, msgs, 1)
	assert.Equal(t, core.InspectorMessage{
		Message:           "Object name contains colons.",
		Importance:        core.BestPracticeSuggestion,
		CheckFunctionName: "check_name_colons",
		ObjectType:        "TimeSeries",
		ObjectName:        "trace:1",
		Location:          "/acquisition/trace:1",
	}, msgs[0])
}

func TestDescription(t *testing.T) {
	tests := []struct {
		name string
		desc string
		want []string
	}{
		{"blank", " ", []string{"Description is missing."}},
		{"empty", "", []string{"Description is missing."}},
		{"placeholder", "No Description.", []string{"Description ('No Description.') is a placeholder."}},
		{"placeholder lower", "none", []string{"Description ('none') is a placeholder."}},
		{"informative", "trial table", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msgs := run(t, Description, nwb.NewDynamicTable("trials", tt.desc))
			assert.Equal(t, tt.want, texts(msgs))
		})
	}
}

func TestDescription_IgnoresUndescribedObjects(t *testing.T) {
	assert.Empty(t, run(t, Description, newFile()))
}

const colonDoc = `
identifier: abc
session_description: colon test
session_start_time: 2022-01-01T00:00:00Z
acquisition:
  - name: "trace:1"
    description: membrane potential
    unit: V
    data: [1.0, 2.0, 3.0]
`

func TestInspectFile_NameColons(t *testing.T) {
	path := filepath.Join(t.TempDir(), "colon.nwb")
	require.NoError(t, os.WriteFile(path, []byte(colonDoc), 0o644))

	s, err := inspector.InspectFile(context.Background(), path, DefaultRegistry().Checks(), inspector.InspectOptions{
		Select: []string{NameColons.Name},
	})
	require.NoError(t, err)
	msgs := s.Collect()
	require.NoError(t, s.Err())

	require.Len(t, msgs, 1)
	assert.Equal(t, "Object name contains colons.", msgs[0].Message)
	assert.Equal(t, "/acquisition/trace:1", msgs[0].Location)
	assert.Equal(t, path, msgs[0].File)
}
