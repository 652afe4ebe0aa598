package main

import (
	"fmt"
	"log"
	"maps"
	"os"
	"path/filepath"
	"slices"

	"github.com/catalystneuro/nwbinspector/pkg/checks"
	"github.com/catalystneuro/nwbinspector/pkg/core"
	"github.com/catalystneuro/nwbinspector/pkg/inspector"
)

// generateCheckDocs generates the catalog of built-in checks.
func generateCheckDocs(outDir string) error {
	log.Printf("Generating check docs to %s", outDir)

	if err := os.MkdirAll(outDir, 0750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	defs := checks.All()
	if err := os.WriteFile(filepath.Join(outDir, "index.md"), checksPage(defs), 0600); err != nil {
		return fmt.Errorf("failed to generate index.md: %w", err)
	}
	log.Printf("  Generated index.md (%d checks)", len(defs))

	return nil
}

// groupByNeurodataType groups definitions by the type they apply to.
func groupByNeurodataType(defs []inspector.CheckDef) map[string][]inspector.CheckDef {
	groups := make(map[string][]inspector.CheckDef)
	for _, d := range defs {
		groups[d.NeurodataType] = append(groups[d.NeurodataType], d)
	}
	return groups
}

func checksPage(defs []inspector.CheckDef) []byte {
	w := NewMarkdownWriter()

	w.Frontmatter("Checks", "Built-in best practice checks")
	w.GeneratedMarker()

	w.Header(1, "Checks")
	w.Paragraph(fmt.Sprintf("The NWB Inspector ships with **%d checks**, grouped below by the neurodata type they apply to. "+
		"A check also runs on every subtype of its type.", len(defs)))

	counts := make(map[core.Importance]int)
	for _, d := range defs {
		counts[d.Importance]++
	}
	var summary []string
	for _, imp := range core.Importances() {
		if counts[imp] > 0 {
			summary = append(summary, fmt.Sprintf("%s: %d", InlineCode(imp.String()), counts[imp]))
		}
	}
	w.BulletList(summary)

	groups := groupByNeurodataType(defs)
	for _, typ := range slices.Sorted(maps.Keys(groups)) {
		w.Header(2, typ)
		for _, d := range groups[typ] {
			writeCheckDoc(w, d)
		}
	}

	return w.Bytes()
}

// writeCheckDoc writes the section of one check.
func writeCheckDoc(w *MarkdownWriter, d inspector.CheckDef) {
	w.Header(3, d.Name)
	if d.Description != "" {
		w.Paragraph(d.Description)
	}

	items := []string{
		Bold("Importance") + ": " + InlineCode(d.Importance.String()),
		Bold("Documentation") + ": " + inspector.BuildDocURL(d.Name),
	}
	w.BulletList(items)

	if len(d.Options) > 0 {
		var rows [][]string
		for _, k := range slices.Sorted(maps.Keys(d.Options)) {
			rows = append(rows, []string{InlineCode(k), InlineCode(fmt.Sprint(d.Options[k]))})
		}
		w.Table([]string{"Option", "Default"}, rows)
	}
}
