package checks

import (
	"fmt"
	"strings"

	"github.com/catalystneuro/nwbinspector/pkg/core"
	"github.com/catalystneuro/nwbinspector/pkg/inspector"
	"github.com/catalystneuro/nwbinspector/pkg/nwb"
)

var doiPrefixes = []string{"doi:", "http://dx.doi.org/", "https://doi.org/"}

// fileCheck adapts a check on the file root.
func fileCheck(fn func(*nwb.NWBFile) inspector.Result) inspector.CheckFunc {
	return func(obj nwb.Object, _ inspector.Options) inspector.Result {
		f, ok := obj.(*nwb.NWBFile)
		if !ok {
			return nil
		}
		return fn(f)
	}
}

// ExperimenterExists flags files without an experimenter.
var ExperimenterExists = inspector.CheckDef{
	Name:          "check_experimenter_exists",
	Importance:    core.BestPracticeSuggestion,
	NeurodataType: "NWBFile",
	Description:   "The experimenter should be recorded.",
	Func: fileCheck(func(f *nwb.NWBFile) inspector.Result {
		if len(f.Experimenter) == 0 {
			return inspector.Finding("Experimenter is missing.")
		}
		return nil
	}),
}

// ExperimentDescription flags files without an experiment description.
var ExperimentDescription = inspector.CheckDef{
	Name:          "check_experiment_description",
	Importance:    core.BestPracticeSuggestion,
	NeurodataType: "NWBFile",
	Description:   "The experiment should be described.",
	Func: fileCheck(func(f *nwb.NWBFile) inspector.Result {
		if strings.TrimSpace(f.ExperimentDescription) == "" {
			return inspector.Finding("Experiment description is missing.")
		}
		return nil
	}),
}

// Institution flags files without an institution.
var Institution = inspector.CheckDef{
	Name:          "check_institution",
	Importance:    core.BestPracticeSuggestion,
	NeurodataType: "NWBFile",
	Description:   "The institution should be recorded.",
	Func: fileCheck(func(f *nwb.NWBFile) inspector.Result {
		if strings.TrimSpace(f.Institution) == "" {
			return inspector.Finding("Metadata /general/institution is missing.")
		}
		return nil
	}),
}

// Keywords flags files without keywords.
var Keywords = inspector.CheckDef{
	Name:          "check_keywords",
	Importance:    core.BestPracticeSuggestion,
	NeurodataType: "NWBFile",
	Description:   "Keywords make files discoverable.",
	Func: fileCheck(func(f *nwb.NWBFile) inspector.Result {
		if len(f.Keywords) == 0 {
			return inspector.Finding("Metadata /general/keywords is missing.")
		}
		return nil
	}),
}

// SubjectExists flags files without a subject.
var SubjectExists = inspector.CheckDef{
	Name:          "check_subject_exists",
	Importance:    core.BestPracticeSuggestion,
	NeurodataType: "NWBFile",
	Description:   "The subject should be described.",
	Func: fileCheck(func(f *nwb.NWBFile) inspector.Result {
		if f.Subject == nil {
			return inspector.Finding("Subject is missing.")
		}
		return nil
	}),
}

// DOIPublications flags related publications that are not DOIs.
var DOIPublications = inspector.CheckDef{
	Name:          "check_doi_publications",
	Importance:    core.BestPracticeViolation,
	NeurodataType: "NWBFile",
	Description:   "Related publications should be referenced by DOI.",
	Func: fileCheck(func(f *nwb.NWBFile) inspector.Result {
		var out inspector.Messages
		for _, pub := range f.RelatedPublications {
			if hasAnyPrefix(pub, doiPrefixes) {
				continue
			}
			out = append(out, inspector.Finding(fmt.Sprintf(
				"Metadata /general/related_publications '%s' does not start with 'doi: ###' and is not an external 'doi' link.", pub)))
		}
		return out
	}),
}

// SubjectMetadata flags missing subject attributes, one finding each.
var SubjectMetadata = inspector.CheckDef{
	Name:          "check_subject_metadata",
	Importance:    core.BestPracticeSuggestion,
	NeurodataType: "Subject",
	Description:   "Subject sex, id and species should be recorded.",
	Func: func(obj nwb.Object, _ inspector.Options) inspector.Result {
		s, ok := obj.(*nwb.Subject)
		if !ok {
			return nil
		}
		var out inspector.Messages
		if s.Sex == "" {
			out = append(out, inspector.Finding("Subject sex is missing."))
		}
		if s.SubjectID == "" {
			out = append(out, inspector.Finding("Subject id is missing."))
		}
		if s.Species == "" {
			out = append(out, inspector.Finding("Subject species is missing."))
		}
		return out
	},
}

func hasAnyPrefix(s string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}
