// Package arrays holds the numeric summaries the built-in checks rely on.
// Every function treats its input as read-only.
package arrays

import (
	"math"
	"slices"
)

// Head returns at most the first n values. n <= 0 means all of them.
func Head(values []float64, n int) []float64 {
	if n <= 0 || n >= len(values) {
		return values
	}
	return values[:n]
}

// Diff returns the consecutive differences of values.
func Diff(values []float64) []float64 {
	if len(values) < 2 {
		return nil
	}
	out := make([]float64, len(values)-1)
	for i := 1; i < len(values); i++ {
		out[i-1] = values[i] - values[i-1]
	}
	return out
}

// Round rounds x to the given number of decimals.
func Round(x float64, decimals int) float64 {
	p := math.Pow(10, float64(decimals))
	return math.Round(x*p) / p
}

// IsRegular reports whether every step of the series is the same once
// rounded to toleranceDecimals.
func IsRegular(series []float64, toleranceDecimals int) bool {
	d := Diff(series)
	if len(d) == 0 {
		return false
	}
	first := Round(d[0], toleranceDecimals)
	for _, v := range d[1:] {
		if Round(v, toleranceDecimals) != first {
			return false
		}
	}
	return true
}

// IsAscending reports whether the first nelems values are strictly
// increasing. nelems <= 0 inspects the whole series.
func IsAscending(series []float64, nelems int) bool {
	for _, d := range Diff(Head(series, nelems)) {
		if !(d > 0) {
			return false
		}
	}
	return true
}

// UniformIndexes returns up to nelems indexes spread evenly over
// [0, length), always including the first and last index.
func UniformIndexes(length, nelems int) []int {
	if length <= 0 {
		return nil
	}
	if nelems <= 0 || nelems >= length {
		out := make([]int, length)
		for i := range out {
			out[i] = i
		}
		return out
	}
	if nelems == 1 {
		return []int{0}
	}
	out := make([]int, 0, nelems)
	step := float64(length-1) / float64(nelems-1)
	for i := 0; i < nelems; i++ {
		idx := int(math.Round(float64(i) * step))
		if len(out) > 0 && out[len(out)-1] == idx {
			continue
		}
		out = append(out, idx)
	}
	return out
}

// Take returns the values at the given indexes.
func Take(values []float64, indexes []int) []float64 {
	out := make([]float64, len(indexes))
	for i, idx := range indexes {
		out[i] = values[idx]
	}
	return out
}

// Unique returns the sorted distinct values. NaNs are dropped.
func Unique(values []float64) []float64 {
	out := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) {
			out = append(out, v)
		}
	}
	slices.Sort(out)
	return slices.Compact(out)
}

// Min returns the smallest value, or false for an empty input.
func Min(values []float64) (float64, bool) {
	if len(values) == 0 {
		return 0, false
	}
	return slices.Min(values), true
}
