package nwb

import "fmt"

// Dataset is an n-dimensional numeric array stored in row-major order.
type Dataset struct {
	Shape  []int
	Values []float64
	DType  string
}

// NewDataset wraps values. With no shape the dataset is one-dimensional.
func NewDataset(values []float64, shape ...int) *Dataset {
	if len(shape) == 0 {
		shape = []int{len(values)}
	}
	return &Dataset{Shape: shape, Values: values, DType: "float64"}
}

// Len returns the extent of the first axis.
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	if len(d.Shape) == 0 {
		return len(d.Values)
	}
	return d.Shape[0]
}

// NDim returns the number of axes.
func (d *Dataset) NDim() int {
	if d == nil {
		return 0
	}
	return len(d.Shape)
}

// Size returns the number of elements implied by the shape.
func (d *Dataset) Size() int {
	if d == nil {
		return 0
	}
	n := 1
	for _, s := range d.Shape {
		n *= s
	}
	return n
}

// ItemSize returns the width in bytes of one element.
func (d *Dataset) ItemSize() int {
	if d == nil {
		return 0
	}
	switch d.DType {
	case "bool", "int8", "uint8":
		return 1
	case "int16", "uint16", "float16":
		return 2
	case "int32", "uint32", "float32":
		return 4
	default:
		return 8
	}
}

// NBytes returns the storage size of the dataset.
func (d *Dataset) NBytes() int {
	return d.Size() * d.ItemSize()
}

// Validate checks that the shape and the value count agree.
func (d *Dataset) Validate() error {
	for _, s := range d.Shape {
		if s < 0 {
			return fmt.Errorf("negative dimension in shape %v", d.Shape)
		}
	}
	if d.Size() != len(d.Values) {
		return fmt.Errorf("shape %v holds %d values, got %d", d.Shape, d.Size(), len(d.Values))
	}
	return nil
}
