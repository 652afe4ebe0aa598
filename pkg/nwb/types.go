package nwb

import "fmt"

// Root type tags. Every object is an AbstractContainer.
const (
	TypeAbstractContainer = "AbstractContainer"
	TypeContainer         = "Container"
	TypeData              = "Data"
)

// defaultParents maps each known neurodata type to the type it extends.
var defaultParents = map[string]string{
	TypeContainer: TypeAbstractContainer,
	TypeData:      TypeAbstractContainer,

	"NWBContainer":     TypeContainer,
	"NWBDataInterface": "NWBContainer",
	"NWBFile":          "NWBContainer",
	"Subject":          "NWBContainer",
	"Device":           "NWBContainer",
	"LabMetaData":      "NWBContainer",
	"ProcessingModule": "NWBContainer",

	"IntracellularElectrode":  "NWBContainer",
	"OptogeneticStimulusSite": "NWBContainer",

	"TimeSeries":         "NWBDataInterface",
	"ElectricalSeries":   "TimeSeries",
	"SpikeEventSeries":   "ElectricalSeries",
	"SpatialSeries":      "TimeSeries",
	"OptogeneticSeries":  "TimeSeries",
	"PatchClampSeries":   "TimeSeries",
	"CurrentClampSeries": "PatchClampSeries",
	"VoltageClampSeries": "PatchClampSeries",
	"ImageSeries":        "TimeSeries",
	"RoiResponseSeries":  "TimeSeries",
	"AnnotationSeries":   "TimeSeries",
	"IntervalSeries":     "TimeSeries",

	"DynamicTable":      TypeContainer,
	"Units":             "DynamicTable",
	"TimeIntervals":     "DynamicTable",
	"PlaneSegmentation": "DynamicTable",

	"VectorData":         TypeData,
	"VectorIndex":        "VectorData",
	"ElementIdentifiers": TypeData,
	"DynamicTableRegion": "VectorData",
}

// TypeHierarchy resolves the ancestry of neurodata type tags.
// The zero value is not usable; start from DefaultTypes.
type TypeHierarchy struct {
	parents map[string]string
}

// DefaultTypes returns a hierarchy holding the core NWB and HDMF types.
func DefaultTypes() *TypeHierarchy {
	parents := make(map[string]string, len(defaultParents))
	for k, v := range defaultParents {
		parents[k] = v
	}
	return &TypeHierarchy{parents: parents}
}

// Declare adds an extension type. Redeclaring a known type with the same
// parent is a no-op; changing the parent of a known type is an error, as is a
// parent that is not known.
func (h *TypeHierarchy) Declare(name, parent string) error {
	if name == "" {
		return fmt.Errorf("type name cannot be empty")
	}
	if existing, ok := h.parents[name]; ok {
		if existing == parent {
			return nil
		}
		return fmt.Errorf("type %q already extends %q", name, existing)
	}
	if !h.Known(parent) {
		return fmt.Errorf("type %q extends unknown type %q", name, parent)
	}
	h.parents[name] = parent
	return nil
}

// Known reports whether the tag is part of the hierarchy.
func (h *TypeHierarchy) Known(name string) bool {
	if name == TypeAbstractContainer {
		return true
	}
	_, ok := h.parents[name]
	return ok
}

// Ancestry returns the tag followed by every ancestor, nearest first.
// Unknown tags yield a single-element chain.
func (h *TypeHierarchy) Ancestry(name string) []string {
	chain := []string{name}
	seen := map[string]bool{name: true}
	for cur := name; ; {
		parent, ok := h.parents[cur]
		if !ok || seen[parent] {
			return chain
		}
		chain = append(chain, parent)
		seen[parent] = true
		cur = parent
	}
}

// IsSubtype reports whether name equals ancestor or extends it.
func (h *TypeHierarchy) IsSubtype(name, ancestor string) bool {
	for _, t := range h.Ancestry(name) {
		if t == ancestor {
			return true
		}
	}
	return false
}
