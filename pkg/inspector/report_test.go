package inspector

import (
	"bytes"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/catalystneuro/nwbinspector/pkg/core"
)

func TestPrintToConsole_NotATerminal(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, PrintToConsole(&buf, []string{"NWBFile: a", "CRITICAL"}, false))
	assert.Equal(t, "\n\nNWBFile: a\nCRITICAL\n", buf.String())
	assert.False(t, SupportsColor(&buf))
}

const (
	reset  = "\x1b[0m"
	red    = "\x1b[31m"
	yellow = "\x1b[33m"
)

func TestColorize(t *testing.T) {
	lines := []string{
		"CRITICAL",
		"--------",
		"1.1.1   TimeSeries 'ts' located in '/'",
		"",
		"BEST PRACTICE VIOLATION",
	}
	got := Colorize(lines)
	assert.Equal(t, red+"CRITICAL"+reset, got[0])
	assert.Equal(t, red+"--------"+reset, got[1])
	assert.Equal(t, red+"1.1.1 "+reset+"  TimeSeries 'ts' located in '/'", got[2])
	assert.Equal(t, "", got[3])
	assert.Equal(t, yellow+"BEST PRACTICE VIOLATION"+reset, got[4])
}

func TestColorize_PlainHeadings(t *testing.T) {
	lines := []string{
		"CRITICAL",
		"--------",
		"0.0  a.nwb: check_x - 'ts' object",
		"BEST PRACTICE SUGGESTION",
		"------------------------",
		"1.0  a.nwb: check_y - 'ts' object",
	}
	got := Colorize(lines)
	assert.Equal(t, red+"0.0  a"+reset+".nwb: check_x - 'ts' object", got[2])
	assert.Equal(t, lines[3:], got[3:], "suggestions are not colored")
}

func TestSaveReport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.txt")
	lines := []string{"first", "", "second"}

	require.NoError(t, SaveReport(path, lines, false))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "first\n\nsecond\n", string(data))
	assert.NotContains(t, string(data), "\r")

	err = SaveReport(path, []string{"other"}, false)
	require.Error(t, err)
	assert.True(t, errors.Is(err, fs.ErrExist))
	data, _ = os.ReadFile(path)
	assert.Equal(t, "first\n\nsecond\n", string(data), "existing report is untouched")

	require.NoError(t, SaveReport(path, []string{"other"}, true))
	data, _ = os.ReadFile(path)
	assert.Equal(t, "other\n", string(data))
}

func TestWriteJSON_RoundTrip(t *testing.T) {
	in := []core.InspectorMessage{
		core.NewMessage("m", core.BestPracticeViolation, core.WithSeverity(core.SeverityHigh), core.WithCheck("check_x")).WithFile("a.nwb"),
	}
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, in))
	assert.True(t, strings.Contains(buf.String(), `"importance": "BEST_PRACTICE_VIOLATION"`))
	assert.True(t, strings.Contains(buf.String(), `"severity": "HIGH"`))

	var out []core.InspectorMessage
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	assert.Equal(t, in, out)

	buf.Reset()
	require.NoError(t, WriteJSON(&buf, nil))
	assert.Equal(t, "[]\n", buf.String())
}
