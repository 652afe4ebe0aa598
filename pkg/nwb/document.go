package nwb

import (
	"fmt"
	"slices"
	"sort"
	"time"

	"gopkg.in/yaml.v3"
)

// document is the serialized form of an NWB file. Field tags serve both the
// YAML and the CBOR decoder, which falls back to json tags.
type document struct {
	Identifier            string            `yaml:"identifier" json:"identifier"`
	SessionDescription    string            `yaml:"session_description" json:"session_description"`
	SessionStartTime      string            `yaml:"session_start_time" json:"session_start_time"`
	Experimenter          []string          `yaml:"experimenter" json:"experimenter"`
	ExperimentDescription string            `yaml:"experiment_description" json:"experiment_description"`
	Institution           string            `yaml:"institution" json:"institution"`
	Keywords              []string          `yaml:"keywords" json:"keywords"`
	RelatedPublications   []string          `yaml:"related_publications" json:"related_publications"`
	Types                 map[string]string `yaml:"types" json:"types"`

	Subject                 *objectDoc  `yaml:"subject" json:"subject"`
	Devices                 []objectDoc `yaml:"devices" json:"devices"`
	IntracellularElectrodes []objectDoc `yaml:"intracellular_electrodes" json:"intracellular_electrodes"`
	OptogeneticSites        []objectDoc `yaml:"optogenetic_sites" json:"optogenetic_sites"`
	Electrodes              *objectDoc  `yaml:"electrodes" json:"electrodes"`
	Acquisition             []objectDoc `yaml:"acquisition" json:"acquisition"`
	Stimulus                []objectDoc `yaml:"stimulus" json:"stimulus"`
	Processing              []objectDoc `yaml:"processing" json:"processing"`
	Analysis                []objectDoc `yaml:"analysis" json:"analysis"`
	Scratch                 []objectDoc `yaml:"scratch" json:"scratch"`
	Intervals               []objectDoc `yaml:"intervals" json:"intervals"`
	Units                   *objectDoc  `yaml:"units" json:"units"`
}

// objectDoc is the union of every object kind's attributes. Which ones apply
// is decided by the resolved neurodata type.
type objectDoc struct {
	Name        string  `yaml:"name" json:"name"`
	Type        string  `yaml:"neurodata_type" json:"neurodata_type"`
	Description *string `yaml:"description" json:"description"`

	// TimeSeries
	Data         *datasetDoc `yaml:"data" json:"data"`
	DType        string      `yaml:"dtype" json:"dtype"`
	Timestamps   *datasetDoc `yaml:"timestamps" json:"timestamps"`
	Unit         string      `yaml:"unit" json:"unit"`
	Resolution   *float64    `yaml:"resolution" json:"resolution"`
	Rate         *float64    `yaml:"rate" json:"rate"`
	StartingTime float64     `yaml:"starting_time" json:"starting_time"`
	Comments     string      `yaml:"comments" json:"comments"`

	// Containers
	Columns []objectDoc `yaml:"columns" json:"columns"`
	Objects []objectDoc `yaml:"objects" json:"objects"`

	// Electrodes and sites
	Filtering        string  `yaml:"filtering" json:"filtering"`
	Location         string  `yaml:"location" json:"location"`
	ExcitationLambda float64 `yaml:"excitation_lambda" json:"excitation_lambda"`

	// Subject
	SubjectID string `yaml:"subject_id" json:"subject_id"`
	Species   string `yaml:"species" json:"species"`
	Sex       string `yaml:"sex" json:"sex"`
	Age       string `yaml:"age" json:"age"`
}

// datasetDoc accepts a scalar or arbitrarily nested rectangular sequences.
type datasetDoc struct {
	shape  []int
	values []float64
	bools  bool
}

func (d *datasetDoc) UnmarshalYAML(node *yaml.Node) error {
	var v any
	if err := node.Decode(&v); err != nil {
		return err
	}
	return d.fromAny(v)
}

func (d *datasetDoc) UnmarshalCBOR(data []byte) error {
	var v any
	if err := cborDecMode.Unmarshal(data, &v); err != nil {
		return err
	}
	return d.fromAny(v)
}

func (d *datasetDoc) fromAny(v any) error {
	d.shape, d.values, d.bools = nil, nil, false
	shape, err := d.walk(v, 0)
	if err != nil {
		return err
	}
	d.shape = shape
	return nil
}

func (d *datasetDoc) walk(v any, depth int) ([]int, error) {
	switch x := v.(type) {
	case []any:
		var inner []int
		for i, item := range x {
			s, err := d.walk(item, depth+1)
			if err != nil {
				return nil, err
			}
			if i == 0 {
				inner = s
			} else if !slices.Equal(inner, s) {
				return nil, fmt.Errorf("ragged array at depth %d", depth)
			}
		}
		return append([]int{len(x)}, inner...), nil
	case bool:
		d.bools = true
		if x {
			d.values = append(d.values, 1)
		} else {
			d.values = append(d.values, 0)
		}
		return nil, nil
	case nil:
		return nil, fmt.Errorf("null value in dataset")
	}
	f, err := toFloat(v)
	if err != nil {
		return nil, err
	}
	d.values = append(d.values, f)
	return nil, nil
}

func toFloat(v any) (float64, error) {
	switch x := v.(type) {
	case int:
		return float64(x), nil
	case int64:
		return float64(x), nil
	case uint64:
		return float64(x), nil
	case float32:
		return float64(x), nil
	case float64:
		return x, nil
	}
	return 0, fmt.Errorf("unsupported dataset value %v (%T)", v, v)
}

func (d *datasetDoc) dataset(dtype string) *Dataset {
	if dtype == "" {
		dtype = "float64"
		if d.bools {
			dtype = "bool"
		}
	}
	shape := d.shape
	if shape == nil {
		shape = []int{}
	}
	return &Dataset{Shape: shape, Values: d.values, DType: dtype}
}

// builder turns a decoded document into an object tree.
type builder struct {
	types *TypeHierarchy
}

func (b *builder) declare(types map[string]string) error {
	pending := make([]string, 0, len(types))
	for name := range types {
		pending = append(pending, name)
	}
	sort.Strings(pending)
	// Extensions may extend each other in any order.
	for len(pending) > 0 {
		var rest []string
		for _, name := range pending {
			if !b.types.Known(types[name]) {
				rest = append(rest, name)
				continue
			}
			if err := b.types.Declare(name, types[name]); err != nil {
				return err
			}
		}
		if len(rest) == len(pending) {
			return fmt.Errorf("type %q extends unknown type %q", rest[0], types[rest[0]])
		}
		pending = rest
	}
	return nil
}

func (b *builder) file(doc *document) (*NWBFile, error) {
	if err := b.declare(doc.Types); err != nil {
		return nil, err
	}

	root := NewNWBFile(doc.Identifier, doc.SessionDescription, time.Time{})
	if doc.SessionStartTime != "" {
		t, err := parseTime(doc.SessionStartTime)
		if err != nil {
			return nil, fmt.Errorf("session_start_time: %w", err)
		}
		root.SessionStartTime = t
	}
	root.Experimenter = doc.Experimenter
	root.ExperimentDescription = doc.ExperimentDescription
	root.Institution = doc.Institution
	root.Keywords = doc.Keywords
	root.RelatedPublications = doc.RelatedPublications

	if doc.Subject != nil {
		s := doc.Subject
		if s.Name == "" {
			s.Name = "subject"
		}
		obj, err := b.object(s, "Subject")
		if err != nil {
			return nil, err
		}
		subject, ok := obj.(*Subject)
		if !ok {
			return nil, fmt.Errorf("subject has type %q", obj.TypeName())
		}
		root.SetSubject(subject)
	}

	sections := []struct {
		name     string
		docs     []objectDoc
		fallback string
	}{
		{SectionDevices, doc.Devices, "Device"},
		{SectionIcephys, doc.IntracellularElectrodes, "IntracellularElectrode"},
		{SectionOptogenetic, doc.OptogeneticSites, "OptogeneticStimulusSite"},
		{SectionAcquisition, doc.Acquisition, "TimeSeries"},
		{SectionStimulus, doc.Stimulus, "TimeSeries"},
		{SectionProcessing, doc.Processing, "ProcessingModule"},
		{SectionAnalysis, doc.Analysis, "NWBDataInterface"},
		{SectionScratch, doc.Scratch, "NWBDataInterface"},
		{SectionIntervals, doc.Intervals, "TimeIntervals"},
	}
	for _, s := range sections {
		for i := range s.docs {
			obj, err := b.object(&s.docs[i], s.fallback)
			if err != nil {
				return nil, err
			}
			root.Add(s.name, obj)
		}
	}

	if doc.Electrodes != nil {
		if doc.Electrodes.Name == "" {
			doc.Electrodes.Name = "electrodes"
		}
		obj, err := b.object(doc.Electrodes, "DynamicTable")
		if err != nil {
			return nil, err
		}
		root.Add(SectionExtracell, obj)
	}
	if doc.Units != nil {
		if doc.Units.Name == "" {
			doc.Units.Name = "units"
		}
		obj, err := b.object(doc.Units, "Units")
		if err != nil {
			return nil, err
		}
		root.Add(SectionRoot, obj)
	}
	return root, nil
}

func (b *builder) object(d *objectDoc, fallback string) (Object, error) {
	typeName := d.Type
	if typeName == "" {
		typeName = fallback
	}
	if !b.types.Known(typeName) {
		return nil, fmt.Errorf("object %q has unknown neurodata_type %q", d.Name, typeName)
	}
	desc := ""
	if d.Description != nil {
		desc = *d.Description
	}

	var obj Object
	switch {
	case b.types.IsSubtype(typeName, "TimeSeries"):
		ts := NewTimeSeries(d.Name, nil, d.Unit)
		ts.Description = desc
		if d.Description == nil {
			ts.Description = "no description"
		}
		if d.Data != nil {
			ts.Data = d.Data.dataset(d.DType)
		}
		if d.Timestamps != nil {
			ts.Timestamps = d.Timestamps.dataset("float64")
		}
		if d.Resolution != nil {
			ts.Resolution = *d.Resolution
		}
		ts.Rate = d.Rate
		ts.StartingTime = d.StartingTime
		ts.Comments = d.Comments
		obj = ts
	case b.types.IsSubtype(typeName, "DynamicTable"):
		t := NewDynamicTable(d.Name, desc)
		for i := range d.Columns {
			col, err := b.object(&d.Columns[i], "VectorData")
			if err != nil {
				return nil, err
			}
			vd, ok := col.(*VectorData)
			if !ok {
				return nil, fmt.Errorf("column %q of %q is not VectorData", col.Name(), d.Name)
			}
			t.AddColumn(vd)
		}
		obj = t
	case b.types.IsSubtype(typeName, TypeData):
		var ds *Dataset
		if d.Data != nil {
			ds = d.Data.dataset(d.DType)
		}
		obj = NewVectorData(d.Name, desc, ds)
	case b.types.IsSubtype(typeName, "Subject"):
		s := NewSubject()
		s.name = d.Name
		s.Description = desc
		s.SubjectID, s.Species, s.Sex, s.Age = d.SubjectID, d.Species, d.Sex, d.Age
		obj = s
	case b.types.IsSubtype(typeName, "IntracellularElectrode"):
		e := NewIntracellularElectrode(d.Name, desc)
		e.Filtering, e.Location = d.Filtering, d.Location
		obj = e
	case b.types.IsSubtype(typeName, "OptogeneticStimulusSite"):
		s := NewOptogeneticStimulusSite(d.Name, desc)
		s.Location, s.ExcitationLambda = d.Location, d.ExcitationLambda
		obj = s
	default:
		g := NewGroup(typeName, d.Name, desc)
		for i := range d.Objects {
			child, err := b.object(&d.Objects[i], "NWBDataInterface")
			if err != nil {
				return nil, err
			}
			g.Add(child)
		}
		obj = g
	}
	obj.base().ancestry = b.types.Ancestry(typeName)
	return obj, nil
}

func parseTime(s string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("cannot parse %q as a timestamp", s)
}
