package inspector

import (
	"fmt"
	"strings"
)

// FormatByFile renders file groups as report lines. Entries are numbered
// file.importance.entry, starting at 1. Lines carry no trailing newline;
// blank lines are empty strings.
func FormatByFile(groups []FileGroup) []string {
	var lines []string
	for fi, g := range groups {
		heading := "NWBFile: " + g.File
		lines = append(lines, heading, strings.Repeat("=", len(heading)))

		for ii, bucket := range g.Importances {
			title := bucket.Importance.Title()
			lines = append(lines, "", title, strings.Repeat("-", len(title)))

			for mi, m := range bucket.Messages {
				num := fmt.Sprintf("%d.%d.%d", fi+1, ii+1, mi+1)
				if bucket.Importance.IsAdministrative() {
					lines = append(lines, fmt.Sprintf("%s   %s '%s': %s: %s",
						num, m.ObjectType, m.Location, m.CheckFunctionName, m.Message))
					continue
				}
				lines = append(lines,
					fmt.Sprintf("%s   %s '%s' located in '%s'", num, m.ObjectType, m.ObjectName, m.Location),
					fmt.Sprintf("        %s: %s", m.CheckFunctionName, m.Message))
			}
		}
		if fi != len(groups)-1 {
			lines = append(lines, "", "", "")
		}
	}
	return lines
}

// FormatByImportance renders the importance-first summary. Numbering starts
// at 0 and each file's entries restart their count.
func FormatByImportance(groups []ImportanceGroup) []string {
	const indent = "  "
	var lines []string
	for i, g := range groups {
		name := g.Importance.String()
		lines = append(lines, fmt.Sprintf("%d.  %s", i, name), strings.Repeat("-", len(name)+4))
		for ci, c := range g.Checks {
			lines = append(lines, fmt.Sprintf("%d.%d.  %s", i, ci, c.Check))
			for _, f := range c.Files {
				for n, m := range f.Messages {
					lines = append(lines, fmt.Sprintf("%s%d.%d.%d.  %s:%s%s - %s",
						indent, i, ci, n, f.File, m.Location, m.ObjectName, m.Message))
				}
			}
		}
		lines = append(lines, "")
	}
	return lines
}
