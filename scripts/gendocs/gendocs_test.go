package main

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/catalystneuro/nwbinspector/internal/cli/config"
	"github.com/catalystneuro/nwbinspector/pkg/checks"
)

func TestMarkdownWriter(t *testing.T) {
	w := NewMarkdownWriter()
	w.Header(2, "Options")
	w.Table([]string{"Name", "Value"}, [][]string{{"a|b", InlineCode("1")}})
	w.CodeBlock("bash", "nwbinspector inspect x.nwb\n")

	assert.Equal(t, "## Options\n\n"+
		"| Name | Value |\n| --- | --- |\n| a\\|b | `1` |\n\n"+
		"```bash\nnwbinspector inspect x.nwb\n```\n\n", string(w.Bytes()))
}

func TestCleanDescription(t *testing.T) {
	assert.Equal(t, "one two three", cleanDescription("  one\n  two three \n"))
}

func TestCleanExample(t *testing.T) {
	got := cleanExample("  # List\n  nwbinspector checks\n\n    nested")
	assert.Equal(t, "# List\nnwbinspector checks\n\n  nested", got)
}

// Every settings key must be documented.
func TestSettingsFieldsCoverConfig(t *testing.T) {
	documented := make(map[string]bool)
	for _, f := range settingsFields() {
		documented[f.Name] = true
	}

	typ := reflect.TypeOf(config.Config{})
	for i := range typ.NumField() {
		tag := typ.Field(i).Tag.Get("koanf")
		assert.True(t, documented[tag], "settings key %q is not documented", tag)
	}
	assert.Len(t, documented, typ.NumField())
}

func TestCLIDocs_FlagsNameTheirSetting(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, generateCLIDocs(dir))

	data, err := os.ReadFile(filepath.Join(dir, "inspect.md"))
	require.NoError(t, err)
	page := string(data)
	assert.Contains(t, page, "| `-t`, `--threshold` | string |  | `NWBINSPECTOR_THRESHOLD` |")
	assert.Contains(t, page, "| `--by-importance` | bool |  |  |")

	index, err := os.ReadFile(filepath.Join(dir, "index.md"))
	require.NoError(t, err)
	assert.Contains(t, string(index), "[`checks`](/cli/checks)")
	assert.Contains(t, string(index), "`NWBINSPECTOR_LOG_LEVEL`")
}

func TestChecksPage(t *testing.T) {
	page := string(checksPage(checks.All()))

	for _, def := range checks.All() {
		assert.Contains(t, page, "### "+def.Name)
	}
	assert.Contains(t, page, "## TimeSeries")
	assert.Contains(t, page, "`time_tolerance_decimals`")
	assert.Equal(t, 0, strings.Count(page, "```")%2)
}

func TestGenerators(t *testing.T) {
	for name, g := range generators {
		t.Run(name, func(t *testing.T) {
			dir := t.TempDir()
			require.NoError(t, g.fn(dir))

			entries, err := os.ReadDir(dir)
			require.NoError(t, err)
			require.NotEmpty(t, entries)

			data, err := os.ReadFile(filepath.Join(dir, "index.md"))
			require.NoError(t, err)
			assert.True(t, strings.HasPrefix(string(data), "---\ntitle: "))
			assert.Contains(t, string(data), "DO NOT EDIT")
		})
	}
}
