package inspector

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
	"golang.org/x/term"

	"github.com/catalystneuro/nwbinspector/pkg/core"
)

// headingColor returns the color a report heading switches to. A nil color
// means plain text.
func headingColor(line string) (termenv.Color, bool) {
	if strings.HasPrefix(line, "NWBFile: ") {
		return nil, true
	}
	switch line {
	case core.Critical.Title():
		return termenv.ANSIRed, true
	case core.BestPracticeViolation.Title():
		return termenv.ANSIYellow, true
	case core.BestPracticeSuggestion.Title(), core.PyNWBValidation.Title(), core.Error.Title():
		return nil, true
	}
	return nil, false
}

func paint(c termenv.Color, s string) string {
	return termenv.String(s).Foreground(c).String()
}

// Colorize wraps report lines from FormatByFile in ANSI colors. Headings and
// their underlines are colored in full; entries below a heading get their
// numbering colored.
func Colorize(lines []string) []string {
	shift := make(map[int]termenv.Color)
	for i, l := range lines {
		if c, ok := headingColor(l); ok {
			shift[i] = c
			shift[i+1] = c
		}
	}

	out := make([]string, len(lines))
	var current termenv.Color
	for i, l := range lines {
		if c, ok := shift[i]; ok {
			current = c
			out[i] = paint(c, l)
			continue
		}
		if current != nil && l != "" {
			n := min(6, len(l))
			out[i] = paint(current, l[:n]) + l[n:]
			continue
		}
		out[i] = l
	}
	return out
}

// SupportsColor reports whether w is an interactive terminal that accepts
// ANSI colors. NO_COLOR and a dumb TERM turn color off.
func SupportsColor(w io.Writer) bool {
	f, ok := w.(interface{ Fd() uintptr })
	if !ok {
		return false
	}
	fd := f.Fd()
	if !term.IsTerminal(int(fd)) && !isatty.IsCygwinTerminal(fd) {
		return false
	}
	return termenv.NewOutput(w).EnvColorProfile() != termenv.Ascii
}

// PrintToConsole writes two blank lines and then the report. Colors are
// added when w supports them and noColor is false.
func PrintToConsole(w io.Writer, lines []string, noColor bool) error {
	if !noColor && SupportsColor(w) {
		lines = Colorize(lines)
	}
	return writeLines(w, append([]string{"", ""}, lines...))
}

// SaveReport writes the report to path with LF line endings. An existing
// file is only replaced when overwrite is set; otherwise the returned error
// wraps fs.ErrExist.
func SaveReport(path string, lines []string, overwrite bool) error {
	flags := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	if !overwrite {
		flags |= os.O_EXCL
	}
	f, err := os.OpenFile(path, flags, 0o644)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return fmt.Errorf("the file %s already exists, set overwrite or pass the -o flag: %w", path, err)
		}
		return err
	}
	if err := writeLines(f, lines); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func writeLines(w io.Writer, lines []string) error {
	bw := bufio.NewWriter(w)
	for _, l := range lines {
		if _, err := bw.WriteString(l); err != nil {
			return err
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// WriteJSON writes the messages as a JSON array. Enums are encoded by name.
func WriteJSON(w io.Writer, msgs []core.InspectorMessage) error {
	if msgs == nil {
		msgs = []core.InspectorMessage{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(msgs)
}

// SaveJSON writes the messages as JSON to path, replacing any existing file.
func SaveJSON(path string, msgs []core.InspectorMessage) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteJSON(f, msgs); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
