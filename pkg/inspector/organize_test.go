package inspector

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/catalystneuro/nwbinspector/pkg/core"
)

func msg(file, check string, imp core.Importance, sev core.Severity, text string) core.InspectorMessage {
	return core.NewMessage(text, imp,
		core.WithCheck(check),
		core.WithSeverity(sev),
		core.WithObject("TimeSeries", "ts", "/acquisition/ts"),
	).WithFile(file)
}

func TestOrganizeByFile(t *testing.T) {
	msgs := []core.InspectorMessage{
		msg("b.nwb", "check_x", core.BestPracticeSuggestion, core.SeverityNone, "1"),
		msg("a.nwb", "check_x", core.BestPracticeSuggestion, core.SeverityLow, "2"),
		msg("a.nwb", "check_y", core.Critical, core.SeverityNone, "3"),
		msg("a.nwb", "check_z", core.BestPracticeSuggestion, core.SeverityHigh, "4"),
		msg("a.nwb", "check_w", core.BestPracticeSuggestion, core.SeverityLow, "5"),
	}

	groups := OrganizeByFile(msgs)
	require.Len(t, groups, 2)
	assert.Equal(t, "a.nwb", groups[0].File)
	assert.Equal(t, "b.nwb", groups[1].File)

	a := groups[0].Importances
	require.Len(t, a, 2)
	assert.Equal(t, core.Critical, a[0].Importance)
	assert.Equal(t, core.BestPracticeSuggestion, a[1].Importance)

	var order []string
	for _, m := range a[1].Messages {
		order = append(order, m.Message)
	}
	assert.Equal(t, []string{"4", "2", "5"}, order, "severity descending, ties keep input order")
}

func TestOrganizeByImportance(t *testing.T) {
	msgs := []core.InspectorMessage{
		msg("b.nwb", "check_x", core.BestPracticeSuggestion, core.SeverityNone, "1"),
		msg("a.nwb", "check_y", core.BestPracticeSuggestion, core.SeverityNone, "2"),
		msg("a.nwb", "check_x", core.BestPracticeSuggestion, core.SeverityNone, "3"),
		msg("a.nwb", "check_c", core.Critical, core.SeverityNone, "4"),
	}

	groups := OrganizeByImportance(msgs)
	require.Len(t, groups, 2)
	assert.Equal(t, core.Critical, groups[0].Importance)
	require.Len(t, groups[1].Checks, 2)

	// Within an importance, messages are ordered by file first, so check_y
	// (first seen in a.nwb) precedes check_x.
	assert.Equal(t, "check_y", groups[1].Checks[0].Check)
	x := groups[1].Checks[1]
	assert.Equal(t, "check_x", x.Check)
	require.Len(t, x.Files, 2)
	assert.Equal(t, "a.nwb", x.Files[0].File)
	assert.Equal(t, "b.nwb", x.Files[1].File)
}
