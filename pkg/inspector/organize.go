package inspector

import (
	"cmp"
	"slices"

	"github.com/catalystneuro/nwbinspector/pkg/core"
)

// FileGroup holds the findings of one file, most important first.
type FileGroup struct {
	File        string
	Importances []ImportanceBucket
}

// ImportanceBucket holds findings of a single importance, sorted by
// descending severity.
type ImportanceBucket struct {
	Importance core.Importance
	Messages   []core.InspectorMessage
}

// OrganizeByFile groups messages by file (sorted by name), then by
// importance (descending). Within a bucket messages are ordered by
// descending severity and otherwise keep their input order.
func OrganizeByFile(msgs []core.InspectorMessage) []FileGroup {
	byFile := make(map[string][]core.InspectorMessage)
	for _, m := range msgs {
		byFile[m.File] = append(byFile[m.File], m)
	}
	files := make([]string, 0, len(byFile))
	for f := range byFile {
		files = append(files, f)
	}
	slices.Sort(files)

	out := make([]FileGroup, 0, len(files))
	for _, f := range files {
		group := FileGroup{File: f}
		for _, imp := range core.Importances() {
			var bucket []core.InspectorMessage
			for _, m := range byFile[f] {
				if m.Importance == imp {
					bucket = append(bucket, m)
				}
			}
			if len(bucket) == 0 {
				continue
			}
			slices.SortStableFunc(bucket, func(a, b core.InspectorMessage) int {
				return cmp.Compare(b.Severity, a.Severity)
			})
			group.Importances = append(group.Importances, ImportanceBucket{Importance: imp, Messages: bucket})
		}
		out = append(out, group)
	}
	return out
}

// ImportanceGroup holds the findings of one importance, grouped by check.
type ImportanceGroup struct {
	Importance core.Importance
	Checks     []CheckBucket
}

// CheckBucket holds the findings of one check, grouped by file.
type CheckBucket struct {
	Check string
	Files []FileBucket
}

// FileBucket holds the findings of one check in one file.
type FileBucket struct {
	File     string
	Messages []core.InspectorMessage
}

// OrganizeByImportance groups messages by importance (descending), then by
// check, then by file. Messages are first ordered by importance, severity
// and file; checks and files appear in the order they are first seen.
func OrganizeByImportance(msgs []core.InspectorMessage) []ImportanceGroup {
	sorted := slices.Clone(msgs)
	slices.SortStableFunc(sorted, func(a, b core.InspectorMessage) int {
		if c := cmp.Compare(b.Importance, a.Importance); c != 0 {
			return c
		}
		if c := cmp.Compare(b.Severity, a.Severity); c != 0 {
			return c
		}
		return cmp.Compare(a.File, b.File)
	})

	var out []ImportanceGroup
	for _, m := range sorted {
		if len(out) == 0 || out[len(out)-1].Importance != m.Importance {
			out = append(out, ImportanceGroup{Importance: m.Importance})
		}
		ig := &out[len(out)-1]

		ci := slices.IndexFunc(ig.Checks, func(c CheckBucket) bool { return c.Check == m.CheckFunctionName })
		if ci < 0 {
			ig.Checks = append(ig.Checks, CheckBucket{Check: m.CheckFunctionName})
			ci = len(ig.Checks) - 1
		}
		cb := &ig.Checks[ci]

		fi := slices.IndexFunc(cb.Files, func(f FileBucket) bool { return f.File == m.File })
		if fi < 0 {
			cb.Files = append(cb.Files, FileBucket{File: m.File})
			fi = len(cb.Files) - 1
		}
		cb.Files[fi].Messages = append(cb.Files[fi].Messages, m)
	}
	return out
}
