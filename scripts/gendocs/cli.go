package main

import (
	"cmp"
	"fmt"
	"log"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/catalystneuro/nwbinspector/internal/cli"
	"github.com/catalystneuro/nwbinspector/internal/cli/config"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// generateCLIDocs writes an overview page and one page per command of the
// nwbinspector binary.
func generateCLIDocs(outDir string) error {
	log.Printf("Generating CLI docs to %s", outDir)

	if err := os.MkdirAll(outDir, 0750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	root := cli.NewRootCmd()
	pages := map[string][]byte{"index.md": cliIndexPage(root)}
	for _, cmd := range documentedCommands(root) {
		pages[cmd.Name()+".md"] = commandPage(cmd)
	}

	for _, name := range slices.Sorted(maps.Keys(pages)) {
		if err := os.WriteFile(filepath.Join(outDir, name), pages[name], 0600); err != nil {
			return fmt.Errorf("failed to write %s: %w", name, err)
		}
		log.Printf("  Generated %s", name)
	}
	return nil
}

// documentedCommands returns the user-facing subcommands of root.
func documentedCommands(root *cobra.Command) []*cobra.Command {
	var out []*cobra.Command
	for _, cmd := range root.Commands() {
		if cmd.Hidden || !cmd.IsAvailableCommand() {
			continue
		}
		out = append(out, cmd)
	}
	return out
}

// settingForFlag returns the settings key a flag feeds, if any. Flags map to
// keys by replacing dashes with underscores.
func settingForFlag(f *pflag.Flag) (SettingsField, bool) {
	key := strings.ReplaceAll(f.Name, "-", "_")
	i := slices.IndexFunc(settingsFields(), func(s SettingsField) bool { return s.Name == key })
	if i < 0 {
		return SettingsField{}, false
	}
	return settingsFields()[i], true
}

func cliIndexPage(root *cobra.Command) []byte {
	w := NewMarkdownWriter()
	w.Frontmatter("CLI Reference", "Command-line interface reference for the NWB Inspector")
	w.GeneratedMarker()

	w.Header(1, "CLI Reference")
	w.Paragraph(cleanDescription(root.Long))

	w.Header(2, "Installation")
	w.CodeBlock("bash", "go install github.com/catalystneuro/nwbinspector/cmd/nwbinspector@latest")

	var rows [][]string
	for _, cmd := range documentedCommands(root) {
		rows = append(rows, []string{
			fmt.Sprintf("[%s](/cli/%s)", InlineCode(cmd.Name()), cmd.Name()),
			cleanDescription(cmd.Short),
		})
	}
	w.Header(2, "Commands")
	w.Table([]string{"Command", "Description"}, rows)

	w.Header(2, "Global Options")
	w.Paragraph("Accepted by every command:")
	writeFlagsTable(w, root.PersistentFlags())

	w.Header(2, "Settings")
	w.Paragraph(fmt.Sprintf(
		"Flags with a settings key can also be set in the settings file or with a %s variable. "+
			"Flags win over the environment, which wins over the settings file. "+
			"See [Configuration](/configuration) for every key.",
		InlineCode(config.EnvPrefix+"*")))

	w.Header(2, "Exit Codes")
	w.Table([]string{"Code", "Meaning"}, [][]string{
		{InlineCode("0"), "Inspection finished, whatever it found. Files that could not be read are reported as ERROR findings."},
		{InlineCode("1"), "Bad usage, settings or check configuration, or an interrupted run. Details go to stderr."},
	})

	return w.Bytes()
}

func commandPage(cmd *cobra.Command) []byte {
	w := NewMarkdownWriter()
	w.Frontmatter(cmd.Name(), cmd.Short)
	w.GeneratedMarker()

	w.Header(1, cmd.Name())
	w.Paragraph(cmp.Or(cmd.Long, cmd.Short))

	w.Header(2, "Usage")
	w.CodeBlock("bash", cmd.UseLine())

	if cmd.HasLocalFlags() {
		w.Header(2, "Options")
		writeFlagsTable(w, cmd.LocalFlags())
	}
	if cmd.HasInheritedFlags() {
		w.Header(2, "Global Options")
		writeFlagsTable(w, cmd.InheritedFlags())
	}

	if cmd.Example != "" {
		w.Header(2, "Examples")
		w.CodeBlock("bash", cleanExample(cmd.Example))
	}

	return w.Bytes()
}

// writeFlagsTable writes one row per visible flag, naming the settings key
// and environment variable of flags that have one.
func writeFlagsTable(w *MarkdownWriter, flags *pflag.FlagSet) {
	var rows [][]string
	flags.VisitAll(func(f *pflag.Flag) {
		if f.Hidden {
			return
		}
		name := InlineCode("--" + f.Name)
		if f.Shorthand != "" {
			name = InlineCode("-"+f.Shorthand) + ", " + name
		}

		def := f.DefValue
		if def == "[]" || (f.Value.Type() == "bool" && def == "false") {
			def = ""
		}
		if def != "" {
			def = InlineCode(def)
		}

		setting := ""
		if s, ok := settingForFlag(f); ok {
			setting = InlineCode(s.EnvVar())
		}

		rows = append(rows, []string{name, f.Value.Type(), def, setting, cleanDescription(f.Usage)})
	})
	w.Table([]string{"Flag", "Type", "Default", "Env", "Description"}, rows)
}

// cleanExample strips the indentation shared by all non-blank lines.
func cleanExample(example string) string {
	lines := strings.Split(example, "\n")
	indent := -1
	for _, l := range lines {
		if strings.TrimSpace(l) == "" {
			continue
		}
		n := len(l) - len(strings.TrimLeft(l, " \t"))
		if indent < 0 || n < indent {
			indent = n
		}
	}
	if indent <= 0 {
		return strings.TrimSpace(example)
	}
	for i, l := range lines {
		if len(l) >= indent {
			lines[i] = l[indent:]
		} else {
			lines[i] = strings.TrimLeft(l, " \t")
		}
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

