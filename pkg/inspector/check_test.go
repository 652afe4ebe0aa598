package inspector

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/catalystneuro/nwbinspector/pkg/core"
	"github.com/catalystneuro/nwbinspector/pkg/nwb"
)

func TestCheck_ResultNormalization(t *testing.T) {
	table := nwb.NewDynamicTable("trials", "")

	tests := []struct {
		name  string
		fn    CheckFunc
		texts []string
	}{
		{"nil", noFinding, nil},
		{"single", oneFinding("one"), []string{"one"}},
		{"pointer", func(nwb.Object, Options) Result {
			m := Finding("ptr")
			return &m
		}, []string{"ptr"}},
		{"nil pointer", func(nwb.Object, Options) Result {
			var m *core.InspectorMessage
			return m
		}, nil},
		{"sequence keeps order", func(nwb.Object, Options) Result {
			return Messages{Finding("first"), Finding("second"), Finding("third")}
		}, []string{"first", "second", "third"}},
		{"empty sequence", func(nwb.Object, Options) Result { return Messages{} }, nil},
		{"bare string is one finding", func(nwb.Object, Options) Result { return "not iterated" }, []string{"not iterated"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewRegistry().Register(def("check_x", core.BestPracticeViolation, "DynamicTable", tt.fn))
			out := c.Invoke(table)
			require.Nil(t, out.Err)

			var texts []string
			for _, m := range out.Messages {
				texts = append(texts, m.Message)
				assert.Equal(t, "check_x", m.CheckFunctionName)
				assert.Equal(t, core.BestPracticeViolation, m.Importance)
			}
			assert.Equal(t, tt.texts, texts)
		})
	}
}

func TestCheck_StampsObjectFields(t *testing.T) {
	table := nwb.NewDynamicTable("test:ing", "")
	c := NewRegistry().Register(def("check_name_colons", core.BestPracticeSuggestion, "DynamicTable",
		oneFinding("Object name contains colons.")))

	got := c.Run(table)
	require.Len(t, got, 1)
	assert.Equal(t, core.InspectorMessage{
		Message:           "Object name contains colons.",
		Importance:        core.BestPracticeSuggestion,
		CheckFunctionName: "check_name_colons",
		ObjectType:        "DynamicTable",
		ObjectName:        "test:ing",
		Location:          "/",
	}, got[0])
}

func TestCheck_KeepsExplicitLocation(t *testing.T) {
	c := NewRegistry().Register(def("x", core.Critical, "DynamicTable", func(nwb.Object, Options) Result {
		return Finding("elsewhere", core.WithObject("Subject", "subject", "/general/subject"), core.WithSeverity(core.SeverityHigh))
	}))
	got := c.Run(nwb.NewDynamicTable("t", ""))
	require.Len(t, got, 1)
	assert.Equal(t, "/general/subject", got[0].Location)
	assert.Equal(t, "Subject", got[0].ObjectType)
	assert.Equal(t, core.SeverityHigh, got[0].Severity)
}

func TestCheck_PanicBecomesErrorMessage(t *testing.T) {
	boom := errors.New("boom")
	c := NewRegistry().Register(def("check_crash", core.Critical, "DynamicTable", func(nwb.Object, Options) Result {
		panic(boom)
	}))

	out := c.Invoke(nwb.NewDynamicTable("t", ""))
	require.NotNil(t, out.Err)
	assert.ErrorIs(t, out.Err, boom)
	assert.NotEmpty(t, out.Err.Stack)

	msgs := out.Flatten()
	require.Len(t, msgs, 1)
	assert.Equal(t, core.Error, msgs[0].Importance)
	assert.Equal(t, "check_crash", msgs[0].CheckFunctionName)
	assert.Contains(t, msgs[0].Message, "boom")
}

func TestCheck_UnsupportedResult(t *testing.T) {
	c := NewRegistry().Register(def("check_int", core.Critical, "DynamicTable", func(nwb.Object, Options) Result {
		return 42
	}))
	msgs := c.Run(nwb.NewDynamicTable("t", ""))
	require.Len(t, msgs, 1)
	assert.Equal(t, core.Error, msgs[0].Importance)
	assert.Contains(t, msgs[0].Message, "unsupported result type int")
}

func TestCheck_RunWithOptions(t *testing.T) {
	d := def("check_opt", core.BestPracticeSuggestion, "DynamicTable", func(_ nwb.Object, opts Options) Result {
		if opts.Int("limit", 0) > 5 {
			return Finding("over")
		}
		return nil
	})
	d.Options = map[string]any{"limit": 1}
	c := NewRegistry().Register(d)
	table := nwb.NewDynamicTable("t", "")

	assert.Empty(t, c.Run(table))
	assert.Len(t, c.RunWithOptions(table, map[string]any{"limit": 10}), 1)
	assert.Equal(t, 1, c.Options()["limit"], "defaults are untouched")
}

func TestCheck_Applies(t *testing.T) {
	c := NewRegistry().Register(def("x", core.Critical, "TimeSeries", noFinding))
	es := nwb.WithType(nwb.NewTimeSeries("es", nwb.NewDataset([]float64{1}), "V"), "ElectricalSeries")
	assert.True(t, c.Applies(es))
	assert.False(t, c.Applies(nwb.NewDynamicTable("t", "")))
}
