package inspector

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/catalystneuro/nwbinspector/pkg/core"
)

func TestFormatByFile(t *testing.T) {
	msgs := []core.InspectorMessage{
		msg("a.nwb", "check_x", core.BestPracticeSuggestion, core.SeverityNone, "suggest"),
		core.NewMessage("boom", core.Error, core.WithCheck("check_crash"), core.WithLocation("/")).WithFile("a.nwb"),
		msg("b.nwb", "check_y", core.Critical, core.SeverityNone, "bad"),
	}

	lines := FormatByFile(OrganizeByFile(msgs))
	assert.Equal(t, []string{
		"NWBFile: a.nwb",
		"==============",
		"",
		"ERROR",
		"-----",
		"1.1.1    '/': check_crash: boom",
		"",
		"BEST PRACTICE SUGGESTION",
		"------------------------",
		"1.2.1   TimeSeries 'ts' located in '/acquisition/ts'",
		"        check_x: suggest",
		"",
		"",
		"",
		"NWBFile: b.nwb",
		"==============",
		"",
		"CRITICAL",
		"--------",
		"2.1.1   TimeSeries 'ts' located in '/acquisition/ts'",
		"        check_y: bad",
	}, lines)
}

func TestFormatByImportance(t *testing.T) {
	msgs := []core.InspectorMessage{
		msg("a.nwb", "check_x", core.BestPracticeSuggestion, core.SeverityNone, "one"),
		msg("a.nwb", "check_x", core.BestPracticeSuggestion, core.SeverityNone, "two"),
		msg("b.nwb", "check_x", core.BestPracticeSuggestion, core.SeverityNone, "three"),
	}

	lines := FormatByImportance(OrganizeByImportance(msgs))
	assert.Equal(t, []string{
		"0.  BEST_PRACTICE_SUGGESTION",
		"----------------------------",
		"0.0.  check_x",
		"  0.0.0.  a.nwb:/acquisition/tsts - one",
		"  0.0.1.  a.nwb:/acquisition/tsts - two",
		"  0.0.0.  b.nwb:/acquisition/tsts - three",
		"",
	}, lines)
}
