package nwb

import "fmt"

// ValidationError is a schema violation found by Validate.
type ValidationError struct {
	Name     string
	Location string
	Reason   string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s (%s): %s", e.Name, e.Location, e.Reason)
}

// Validate checks the tree against the structural rules of the NWB schema
// and returns every violation in traversal order.
func Validate(root *NWBFile) []ValidationError {
	var errs []ValidationError
	add := func(o Object, format string, args ...any) {
		errs = append(errs, ValidationError{
			Name:     o.TypeName(),
			Location: o.Path(),
			Reason:   fmt.Sprintf(format, args...),
		})
	}

	if root.Identifier == "" {
		add(root, "missing required attribute 'identifier'")
	}
	if root.SessionDescription == "" {
		add(root, "missing required attribute 'session_description'")
	}
	if root.SessionStartTime.IsZero() {
		add(root, "missing required attribute 'session_start_time'")
	}

	for _, o := range root.Objects() {
		if o != Object(root) && o.Name() == "" {
			add(o, "object has no name")
		}
		switch x := o.(type) {
		case *TimeSeries:
			if x.Data == nil {
				add(o, "missing required dataset 'data'")
			} else if err := x.Data.Validate(); err != nil {
				add(o, "data: %v", err)
			}
			if x.Timestamps != nil {
				if err := x.Timestamps.Validate(); err != nil {
					add(o, "timestamps: %v", err)
				}
			}
		case *DynamicTable:
			rows := -1
			for _, c := range x.Columns {
				// Ragged columns and their indexes have their own lengths.
				if c.Data == nil || IsA(c, "VectorIndex") || x.Column(c.Name()+"_index") != nil {
					continue
				}
				if rows >= 0 && c.Data.Len() != rows {
					add(o, "column %q has %d rows, expected %d", c.Name(), c.Data.Len(), rows)
					continue
				}
				rows = c.Data.Len()
			}
		}
	}
	return errs
}
