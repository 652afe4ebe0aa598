package nwb

import (
	"strings"
	"time"
)

// builtinTypes resolves tags for objects built in code. It is never mutated.
var builtinTypes = DefaultTypes()

// Object is a named, typed node of an NWB file.
type Object interface {
	// Name returns the object's name within its parent.
	Name() string

	// TypeName returns the neurodata type tag, e.g. "ElectricalSeries".
	TypeName() string

	// Ancestry returns TypeName followed by every inherited tag.
	Ancestry() []string

	// Parent returns the containing object, or nil for the root and for
	// detached objects.
	Parent() Object

	// Path returns the location of the object inside the file, "/" when
	// the object is the root or not attached to a file.
	Path() string

	base() *Base
}

// Base holds the fields shared by every object. It is embedded by the
// concrete types and is not used on its own.
type Base struct {
	name     string
	ancestry []string
	parent   Object
	section  string
}

func newBase(name, typeName string) Base {
	return Base{name: name, ancestry: builtinTypes.Ancestry(typeName)}
}

// Name implements Object.
func (b *Base) Name() string { return b.name }

// TypeName implements Object.
func (b *Base) TypeName() string { return b.ancestry[0] }

// Ancestry implements Object.
func (b *Base) Ancestry() []string {
	out := make([]string, len(b.ancestry))
	copy(out, b.ancestry)
	return out
}

// Parent implements Object.
func (b *Base) Parent() Object { return b.parent }

// Path implements Object.
func (b *Base) Path() string {
	if b.parent == nil {
		return "/"
	}
	if _, ok := b.parent.(*NWBFile); ok {
		if b.section == "" {
			return "/" + b.name
		}
		return "/" + b.section + "/" + b.name
	}
	return strings.TrimSuffix(b.parent.Path(), "/") + "/" + b.name
}

func (b *Base) base() *Base { return b }

// IsA reports whether obj has the given tag or inherits from it.
func IsA(obj Object, typeName string) bool {
	if obj == nil {
		return false
	}
	for _, t := range obj.base().ancestry {
		if t == typeName {
			return true
		}
	}
	return false
}

// WithType retags obj as typeName and returns it. Unknown tags keep the
// object's current ancestry as their parent chain, so an unknown extension of
// a TimeSeries still matches TimeSeries checks.
func WithType[T Object](obj T, typeName string) T {
	retype(obj.base(), builtinTypes, typeName)
	return obj
}

func retype(b *Base, h *TypeHierarchy, typeName string) {
	chain := h.Ancestry(typeName)
	if !h.Known(typeName) && len(b.ancestry) > 0 && b.ancestry[0] != typeName {
		chain = append(chain, b.ancestry...)
	}
	b.ancestry = chain
}

// Ancestor walks up the parent links and returns the nearest object of the
// given type, or nil.
func Ancestor(obj Object, typeName string) Object {
	if obj == nil {
		return nil
	}
	for p := obj.Parent(); p != nil; p = p.Parent() {
		if IsA(p, typeName) {
			return p
		}
	}
	return nil
}

// Describable is implemented by objects carrying a free-text description.
type Describable interface {
	Object
	GetDescription() string
}

// Described is embedded by types with a description attribute.
type Described struct {
	Description string
}

// GetDescription implements Describable.
func (d *Described) GetDescription() string { return d.Description }

// parentOf is implemented by objects that hold children.
type parentOf interface {
	children() []Object
}

func adopt(parent Object, child Object, section string) {
	cb := child.base()
	cb.parent = parent
	cb.section = section
}

// =============================================================================
// NWBFile
// =============================================================================

// Section names under which the file root holds objects.
const (
	SectionAcquisition = "acquisition"
	SectionStimulus    = "stimulus/presentation"
	SectionProcessing  = "processing"
	SectionAnalysis    = "analysis"
	SectionScratch     = "scratch"
	SectionIntervals   = "intervals"
	SectionDevices     = "general/devices"
	SectionIcephys     = "general/intracellular_ephys"
	SectionOptogenetic = "general/optogenetics"
	SectionExtracell   = "general/extracellular_ephys"
	SectionRoot        = ""
)

// sectionOrder fixes the traversal order of Objects.
var sectionOrder = []string{
	SectionDevices,
	SectionIcephys,
	SectionOptogenetic,
	SectionExtracell,
	SectionAcquisition,
	SectionStimulus,
	SectionProcessing,
	SectionAnalysis,
	SectionScratch,
	SectionIntervals,
	SectionRoot,
}

// NWBFile is the root of the object tree.
type NWBFile struct {
	Base
	Identifier            string
	SessionDescription    string
	SessionStartTime      time.Time
	Experimenter          []string
	ExperimentDescription string
	Institution           string
	Keywords              []string
	RelatedPublications   []string
	Subject               *Subject

	sections map[string][]Object
}

// NewNWBFile creates an empty file root.
func NewNWBFile(identifier, sessionDescription string, start time.Time) *NWBFile {
	return &NWBFile{
		Base:               newBase("root", "NWBFile"),
		Identifier:         identifier,
		SessionDescription: sessionDescription,
		SessionStartTime:   start,
		sections:           make(map[string][]Object),
	}
}

// Add attaches obj to the given section of the file.
func (f *NWBFile) Add(section string, obj Object) {
	if f.sections == nil {
		f.sections = make(map[string][]Object)
	}
	adopt(f, obj, section)
	f.sections[section] = append(f.sections[section], obj)
}

// SetSubject attaches the subject at /general/subject.
func (f *NWBFile) SetSubject(s *Subject) {
	if s != nil {
		adopt(f, s, "general")
	}
	f.Subject = s
}

// Section returns the objects directly held by a section.
func (f *NWBFile) Section(section string) []Object {
	return append([]Object(nil), f.sections[section]...)
}

func (f *NWBFile) children() []Object {
	var out []Object
	if f.Subject != nil {
		out = append(out, f.Subject)
	}
	for _, s := range sectionOrder {
		out = append(out, f.sections[s]...)
	}
	return out
}

// Objects returns every object of the file, the root included, regardless
// of nesting depth. The order is a stable pre-order walk of the tree.
func (f *NWBFile) Objects() []Object {
	var out []Object
	var walk func(Object)
	walk = func(o Object) {
		out = append(out, o)
		if p, ok := o.(parentOf); ok {
			for _, c := range p.children() {
				walk(c)
			}
		}
	}
	walk(f)
	return out
}

// =============================================================================
// Containers
// =============================================================================

// Group is a generic container such as a ProcessingModule or Device.
type Group struct {
	Base
	Described
	members []Object
}

// NewGroup creates a container of the given type.
func NewGroup(typeName, name, description string) *Group {
	return &Group{Base: newBase(name, typeName), Described: Described{Description: description}}
}

// Add attaches a child object.
func (g *Group) Add(child Object) {
	adopt(g, child, "")
	g.members = append(g.members, child)
}

func (g *Group) children() []Object { return g.members }

// Subject describes the experimental subject.
type Subject struct {
	Base
	Described
	SubjectID string
	Species   string
	Sex       string
	Age       string
}

// NewSubject creates a subject named "subject".
func NewSubject() *Subject {
	return &Subject{Base: newBase("subject", "Subject")}
}

// TimeSeries holds data sampled over time. Subtypes share this struct and
// differ by tag.
type TimeSeries struct {
	Base
	Described
	Data         *Dataset
	Timestamps   *Dataset
	Unit         string
	Resolution   float64
	Rate         *float64
	StartingTime float64
	Comments     string
}

// NewTimeSeries creates a TimeSeries with the pynwb default resolution of -1.
func NewTimeSeries(name string, data *Dataset, unit string) *TimeSeries {
	return &TimeSeries{
		Base:       newBase(name, "TimeSeries"),
		Described:  Described{Description: "no description"},
		Data:       data,
		Unit:       unit,
		Resolution: -1,
	}
}

// DynamicTable is a column-oriented table.
type DynamicTable struct {
	Base
	Described
	Columns []*VectorData
}

// NewDynamicTable creates an empty table.
func NewDynamicTable(name, description string) *DynamicTable {
	return &DynamicTable{Base: newBase(name, "DynamicTable"), Described: Described{Description: description}}
}

// AddColumn attaches a column to the table.
func (t *DynamicTable) AddColumn(col *VectorData) {
	adopt(t, col, "")
	t.Columns = append(t.Columns, col)
}

// Column returns the column with the given name, or nil.
func (t *DynamicTable) Column(name string) *VectorData {
	for _, c := range t.Columns {
		if c.Name() == name {
			return c
		}
	}
	return nil
}

func (t *DynamicTable) children() []Object {
	out := make([]Object, len(t.Columns))
	for i, c := range t.Columns {
		out[i] = c
	}
	return out
}

// VectorData is a table column.
type VectorData struct {
	Base
	Described
	Data *Dataset
}

// NewVectorData creates a column.
func NewVectorData(name, description string, data *Dataset) *VectorData {
	return &VectorData{Base: newBase(name, "VectorData"), Described: Described{Description: description}, Data: data}
}

// IntracellularElectrode describes a patch electrode.
type IntracellularElectrode struct {
	Base
	Described
	Filtering string
	Location  string
}

// NewIntracellularElectrode creates an electrode.
func NewIntracellularElectrode(name, description string) *IntracellularElectrode {
	return &IntracellularElectrode{Base: newBase(name, "IntracellularElectrode"), Described: Described{Description: description}}
}

// OptogeneticStimulusSite describes a light stimulation site.
type OptogeneticStimulusSite struct {
	Base
	Described
	Location         string
	ExcitationLambda float64
}

// NewOptogeneticStimulusSite creates a stimulus site.
func NewOptogeneticStimulusSite(name, description string) *OptogeneticStimulusSite {
	return &OptogeneticStimulusSite{Base: newBase(name, "OptogeneticStimulusSite"), Described: Described{Description: description}}
}
