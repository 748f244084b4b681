// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

// Package shapes defines Shape, the descriptor of a rectangular multidimensional array, and its
// index arithmetic.
//
// A Shape is an ordered list of dimensions (row-major), where the last axis changes fastest in the
// flat layout. A shape with no dimensions is a scalar, with size 1.
//
// ## Glossary
//
//   - Rank: number of axes (dimensions) of a tensor.
//   - Axis: the index of a dimension. We refer to the index as "axis" (plural axes), and to its size
//     as its dimension.
//   - Flat index: the position of an element in the row-major flat storage of a tensor.
//   - Multi-index: one index per axis.
//
// Shapes are immutable once created: all methods that "change" a shape return a new one.
// Shape construction with negative dimensions, or whose size overflows an int64, panics: those are
// contract violations, not recoverable errors.
package shapes

import (
	"encoding/gob"
	"fmt"
	"math"
	"slices"

	"github.com/gomlx/exceptions"
	"github.com/pkg/errors"
)

// Shape represents the dimensions of a tensor, or the expected output of an operation.
//
// Use Make to create a new shape.
type Shape struct {
	Dimensions []int

	// size is the product of the dimensions, computed once by Make.
	size int
}

// Make returns a Shape with the given dimensions.
//
// It panics if any dimension is negative, or if the total size overflows an int64.
func Make(dimensions ...int) Shape {
	s := Shape{Dimensions: make([]int, len(dimensions)), size: 1}
	copy(s.Dimensions, dimensions)
	for _, dim := range dimensions {
		if dim < 0 {
			exceptions.Panicf("shapes.Make(%v): cannot create a shape with a negative dimension", dimensions)
		}
		if dim != 0 && s.size > math.MaxInt/dim {
			exceptions.Panicf("shapes.Make(%v): size overflows int64", dimensions)
		}
		s.size *= dim
	}
	return s
}

// Scalar returns the shape of a scalar: rank 0 and size 1.
func Scalar() Shape {
	return Make()
}

// Rank of the shape, that is, the number of dimensions.
func (s Shape) Rank() int { return len(s.Dimensions) }

// IsScalar returns whether the shape represents a scalar, that is there are no dimensions (rank==0).
func (s Shape) IsScalar() bool { return s.Rank() == 0 }

// Size returns the number of elements of a tensor with this shape. It's the product of all dimensions.
func (s Shape) Size() int {
	if s.Dimensions == nil && s.size == 0 {
		// Zero value Shape{}: a scalar.
		return 1
	}
	return s.size
}

// IsZeroSize returns whether any of the dimensions is 0, in which case the shape holds no elements.
func (s Shape) IsZeroSize() bool { return s.Size() == 0 }

// Dim returns the dimension of the given axis. axis can take negative numbers, in which
// case it counts as starting from the end -- so axis=-1 refers to the last axis.
// Like with a slice indexing, it panics for an out-of-bound axis.
func (s Shape) Dim(axis int) int {
	adjustedAxis := axis
	if adjustedAxis < 0 {
		adjustedAxis += s.Rank()
	}
	if adjustedAxis < 0 || adjustedAxis >= s.Rank() {
		exceptions.Panicf("Shape.Dim(%d) out-of-bounds for rank %d (shape=%s)", axis, s.Rank(), s)
	}
	return s.Dimensions[adjustedAxis]
}

// String implements fmt.Stringer, pretty-prints the shape.
func (s Shape) String() string {
	return fmt.Sprintf("%v", s.dims())
}

// dims never returns nil, so the zero Shape{} prints as a scalar.
func (s Shape) dims() []int {
	if s.Dimensions == nil {
		return []int{}
	}
	return s.Dimensions
}

// Equal compares two shapes for equality of dimensions.
func (s Shape) Equal(s2 Shape) bool {
	return slices.Equal(s.Dimensions, s2.Dimensions)
}

// Clone returns a new deep copy of the shape.
func (s Shape) Clone() Shape {
	return Make(s.Dimensions...)
}

// IsValidIndex returns whether the multi-index has one in-range component per axis.
func (s Shape) IsValidIndex(index []int) bool {
	if len(index) != s.Rank() {
		return false
	}
	for axis, idx := range index {
		if idx < 0 || idx >= s.Dimensions[axis] {
			return false
		}
	}
	return true
}

// FlattenIndex converts a multi-index into the row-major flat index.
//
// It panics if len(index) != rank or if any component is out of range.
func (s Shape) FlattenIndex(index []int) int {
	if len(index) != s.Rank() {
		exceptions.Panicf("Shape.FlattenIndex(%v): index has %d components, but shape %s has rank %d",
			index, len(index), s, s.Rank())
	}
	flat := 0
	multiplier := 1
	for axis := s.Rank() - 1; axis >= 0; axis-- {
		idx := index[axis]
		if idx < 0 || idx >= s.Dimensions[axis] {
			exceptions.Panicf("Shape.FlattenIndex(%v): index for axis %d out of range for shape %s", index, axis, s)
		}
		flat += multiplier * idx
		multiplier *= s.Dimensions[axis]
	}
	return flat
}

// ExpandIndex converts a flat index into a multi-index, the inverse of FlattenIndex.
//
// It panics if flat is not in [0, Size()).
func (s Shape) ExpandIndex(flat int) []int {
	index := make([]int, s.Rank())
	s.ExpandIndexInto(flat, index)
	return index
}

// ExpandIndexInto is like ExpandIndex, but writes the multi-index into the given slice, which
// must have length equal to the rank.
func (s Shape) ExpandIndexInto(flat int, index []int) {
	if flat < 0 || flat >= s.Size() {
		exceptions.Panicf("Shape.ExpandIndex(%d): flat index out of range for shape %s (size %d)", flat, s, s.Size())
	}
	if len(index) != s.Rank() {
		exceptions.Panicf("Shape.ExpandIndexInto(%d): given index with %d components, but shape %s has rank %d",
			flat, len(index), s, s.Rank())
	}
	remaining := flat
	for axis := s.Rank() - 1; axis >= 0; axis-- {
		dim := s.Dimensions[axis]
		index[axis] = remaining % dim
		remaining /= dim
	}
}

// RemoveAxes returns a new shape with the given axes removed. Axes are not validated, an
// out-of-range axis is simply ignored.
func (s Shape) RemoveAxes(axes ...int) Shape {
	dims := make([]int, 0, s.Rank())
	for axis, dim := range s.Dimensions {
		if slices.Contains(axes, axis) {
			continue
		}
		dims = append(dims, dim)
	}
	return Make(dims...)
}

// InsertAxis returns a new shape with a new axis of the given dimension at position axis.
// It panics if axis is not in [0, rank].
func (s Shape) InsertAxis(axis, dim int) Shape {
	if axis < 0 || axis > s.Rank() {
		exceptions.Panicf("Shape.InsertAxis(%d): axis out of range for shape %s", axis, s)
	}
	return Make(slices.Insert(slices.Clone(s.Dimensions), axis, dim)...)
}

// GobSerialize shape in binary format.
func (s Shape) GobSerialize(encoder *gob.Encoder) (err error) {
	err = encoder.Encode(s.dims())
	if err != nil {
		err = errors.Wrapf(err, "failed to serialize Shape %s", s)
	}
	return
}

// GobDeserialize a Shape. Returns new Shape or an error.
func GobDeserialize(decoder *gob.Decoder) (s Shape, err error) {
	var dims []int
	err = decoder.Decode(&dims)
	if err != nil {
		err = errors.Wrapf(err, "failed to deserialize Shape")
		return
	}
	for _, dim := range dims {
		if dim < 0 {
			err = errors.Errorf("failed to deserialize Shape: negative dimension in %v", dims)
			return
		}
	}
	s = Make(dims...)
	return
}
