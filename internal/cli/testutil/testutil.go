// Package testutil provides test utilities for CLI testing.
package testutil

import (
	"bytes"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/catalystneuro/nwbinspector/internal/cli/output"
)

// CleanFile is a data file no built-in check reports on.
const CleanFile = `
identifier: clean
session_description: a clean session
session_start_time: 2022-01-01T00:00:00Z
experimenter: [Doe, Jane]
experiment_description: patch clamp recordings
institution: Lab
keywords: [hippocampus]
subject:
  subject_id: m1
  description: adult mouse
  species: Mus musculus
  sex: F
acquisition:
  - name: trace
    description: membrane potential
    unit: V
    data: [1.0, 2.0, 3.0]
    rate: 10.0
`

// FlawedFile triggers a critical and a suggestion finding.
const FlawedFile = `
identifier: flawed
session_description: a flawed session
session_start_time: 2022-01-01T00:00:00Z
experimenter: [Doe, Jane]
experiment_description: patch clamp recordings
institution: Lab
keywords: [hippocampus]
subject:
  subject_id: m1
  description: adult mouse
  species: Mus musculus
  sex: F
acquisition:
  - name: "trace:1"
    description: membrane potential
    unit: V
    data: [[1.0, 2.0, 3.0]]
    rate: 10.0
`

// SetupTestData writes the given files into a temporary directory and
// returns its path.
func SetupTestData(t *testing.T, files map[string]string) string {
	t.Helper()

	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("failed to create directory for %s: %v", name, err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("failed to create %s: %v", name, err)
		}
	}
	return dir
}

// TestRenderer wraps a Renderer for testing with captured output buffers.
type TestRenderer struct {
	*output.Renderer
	Out    *bytes.Buffer
	ErrOut *bytes.Buffer
}

// NewTestRenderer creates a new test renderer with the specified mode and TTY state.
// Output is captured in buffers for inspection.
func NewTestRenderer(mode output.Mode, isTTY bool) *TestRenderer {
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	return &TestRenderer{
		Renderer: output.NewRendererWithTTY(out, errOut, isTTY, mode),
		Out:      out,
		ErrOut:   errOut,
	}
}

// Output returns the stdout output as a string.
func (tr *TestRenderer) Output() string {
	return tr.Out.String()
}

// ErrorOutput returns the stderr output as a string.
func (tr *TestRenderer) ErrorOutput() string {
	return tr.ErrOut.String()
}

// ansiPattern matches ANSI escape codes.
var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

// AssertNoANSI checks that a string contains no ANSI escape codes.
func AssertNoANSI(t *testing.T, s string) {
	t.Helper()
	if ansiPattern.MatchString(s) {
		t.Errorf("string contains ANSI escape codes: %q", s)
	}
}

// AssertValidMarkdown performs basic markdown validation.
// It checks for unclosed code fences and empty headers.
func AssertValidMarkdown(t *testing.T, md string) {
	t.Helper()

	if n := strings.Count(md, "```"); n%2 != 0 {
		t.Errorf("unbalanced code fences in markdown: found %d occurrences", n)
	}

	for i, line := range strings.Split(md, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "#") && strings.TrimLeft(trimmed, "# ") == "" {
			t.Errorf("empty header at line %d: %q", i+1, line)
		}
	}
}
