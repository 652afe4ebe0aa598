package checks

import (
	"fmt"
	"strings"

	"github.com/catalystneuro/nwbinspector/pkg/core"
	"github.com/catalystneuro/nwbinspector/pkg/inspector"
	"github.com/catalystneuro/nwbinspector/pkg/nwb"
)

// descriptionPlaceholders are descriptions that say nothing, compared
// case-insensitively with trailing periods removed.
var descriptionPlaceholders = []string{"no description", "no desc", "none", "placeholder"}

// NameSlashes flags object names containing path separators.
var NameSlashes = inspector.CheckDef{
	Name:          "check_name_slashes",
	Importance:    core.Critical,
	NeurodataType: nwb.TypeAbstractContainer,
	Description:   "Object names must not contain slashes.",
	Func:          checkNameSlashes,
}

func checkNameSlashes(obj nwb.Object, _ inspector.Options) inspector.Result {
	if strings.ContainsAny(obj.Name(), `/\`) {
		return inspector.Finding("Object name contains slashes.")
	}
	return nil
}

// NameColons flags object names containing colons.
var NameColons = inspector.CheckDef{
	Name:          "check_name_colons",
	Importance:    core.BestPracticeSuggestion,
	NeurodataType: nwb.TypeAbstractContainer,
	Description:   "Object names should not contain colons.",
	Func:          checkNameColons,
}

func checkNameColons(obj nwb.Object, _ inspector.Options) inspector.Result {
	if strings.Contains(obj.Name(), ":") {
		return inspector.Finding("Object name contains colons.")
	}
	return nil
}

// Description flags missing or placeholder descriptions.
var Description = inspector.CheckDef{
	Name:          "check_description",
	Importance:    core.BestPracticeSuggestion,
	NeurodataType: nwb.TypeAbstractContainer,
	Description:   "Descriptions should be present and informative.",
	Func:          checkDescription,
}

func checkDescription(obj nwb.Object, _ inspector.Options) inspector.Result {
	d, ok := obj.(nwb.Describable)
	if !ok {
		return nil
	}
	desc := d.GetDescription()
	norm := strings.TrimRight(strings.ToLower(desc), ".")
	for _, p := range descriptionPlaceholders {
		if norm == p {
			return inspector.Finding(fmt.Sprintf("Description ('%s') is a placeholder.", desc))
		}
	}
	if strings.TrimSpace(desc) == "" {
		return inspector.Finding("Description is missing.")
	}
	return nil
}
