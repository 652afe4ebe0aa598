package cli

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/catalystneuro/nwbinspector/internal/cli/config"
	"github.com/catalystneuro/nwbinspector/internal/cli/testutil"
)

func executeRoot(t *testing.T, dir string, args ...string) (string, string, error) {
	t.Helper()
	t.Chdir(dir)
	config.ResetConfig()
	t.Cleanup(config.ResetConfig)
	settingsFile = ""

	out, errOut := new(bytes.Buffer), new(bytes.Buffer)
	cmd := NewRootCmd()
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestRootCommand_Subcommands(t *testing.T) {
	cmd := NewRootCmd()

	var names []string
	for _, c := range cmd.Commands() {
		names = append(names, c.Name())
	}
	assert.ElementsMatch(t, []string{"version", "inspect", "checks", "completion"}, names)

	for _, flag := range []string{"settings", "log-level", "output"} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(flag), "flag %q should exist", flag)
	}
}

func TestRootCommand_Version(t *testing.T) {
	out, _, err := executeRoot(t, t.TempDir(), "version")
	require.NoError(t, err)
	assert.Contains(t, out, "nwbinspector v"+Version)
}

func TestRootCommand_InspectJSONOutput(t *testing.T) {
	dir := testutil.SetupTestData(t, map[string]string{"flawed.nwb": testutil.FlawedFile})

	out, _, err := executeRoot(t, dir, "inspect", "flawed.nwb", "--output", "json")
	require.NoError(t, err)

	var msgs []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &msgs))
	assert.Len(t, msgs, 2)
}

func TestRootCommand_DebugLogging(t *testing.T) {
	dir := testutil.SetupTestData(t, map[string]string{"clean.nwb": testutil.CleanFile})

	_, errOut, err := executeRoot(t, dir, "inspect", "clean.nwb", "--log-level", "debug")
	require.NoError(t, err)

	assert.Contains(t, errOut, "run_id=")
	assert.Contains(t, errOut, "discovered files")
}

func TestRootCommand_SettingsFlag(t *testing.T) {
	dir := testutil.SetupTestData(t, map[string]string{
		"flawed.nwb":    testutil.FlawedFile,
		"settings.yaml": "threshold: CRITICAL\n",
	})

	out, _, err := executeRoot(t, dir, "inspect", "flawed.nwb", "--settings", "settings.yaml")
	require.NoError(t, err)

	assert.Contains(t, out, "check_data_orientation")
	assert.NotContains(t, out, "check_name_colons")
}

func TestRootCommand_InvalidLogLevel(t *testing.T) {
	_, _, err := executeRoot(t, t.TempDir(), "checks", "--log-level", "loud")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid log level")
}

func TestCompletionCommand(t *testing.T) {
	out, _, err := executeRoot(t, t.TempDir(), "completion", "bash")
	require.NoError(t, err)
	assert.Contains(t, out, "nwbinspector")
}
