// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

// Package tensors implement a generic `Tensor[T]`, a representation of a multidimensional array of any element type.
//
// Tensors are multidimensional arrays (from scalar with 0 dimensions, to arbitrarily large dimensions), defined
// by their shape (its axes' dimensions) and their actual content, stored as a flat slice in row-major order.
//
// The element type T can be a plain number (float64, float32), a bounds.Bounds interval, or any other value type:
// the math functions (Add, MatMul, Conv2d, ...) take an Arithmetic[T] that provides the numeric operations for T.
//
// There are various ways to construct a Tensor:
//
//   - New[T](shape shapes.Shape): creates a tensor with the given shape, and zero values.
//   - FromScalar(value T): a scalar tensor.
//   - FromValues(values ...T), FromMatrix([][]T) and FromCube([][][]T): tensors of rank 1, 2 and 3.
//     Ragged matrices and cubes panic.
//   - Filled(shape, value T): creates a tensor with the given shape, filled with value.
//   - FromFlatData(shape, flat []T): creates a tensor with a copy of the flat data, whose length must match the
//     shape size.
//
// Contract violations (out-of-range indices, mismatched sizes) panic (with exceptions.Panicf). Operations that
// validate user-given arguments (Slice, Squeeze, ExpandDims) have a Validate* counterpart that returns an error
// instead.
//
// Tensors are not safe for concurrent mutation: ReshapeInPlace and SetValue need an exclusive writer, but
// tensors can be read concurrently.
package tensors

import (
	"fmt"
	"reflect"
	"strings"
	"unsafe"

	"github.com/gomlx/exceptions"
	"github.com/gomlx/tfopt/pkg/core/shapeinference"
	"github.com/gomlx/tfopt/pkg/core/shapes"
)

// FreeIndex marks the axis that varies in the fixed indices given to Tensor.VectorSlice.
const FreeIndex = shapeinference.FreeAxisIndex

// Tensor represents a multidimensional array of values of type T, defined by its shape and its content stored as
// a flat (1D) slice of values in row-major order.
//
// More details in the `tensors` package documentation.
type Tensor[T any] struct {
	// shape of the tensor.
	shape shapes.Shape

	// flat values, with len(flat) == shape.Size().
	flat []T
}

// New returns a tensor with the given shape, filled with the zero value of T.
func New[T any](shape shapes.Shape) *Tensor[T] {
	return &Tensor[T]{shape: shape, flat: make([]T, shape.Size())}
}

// FromScalar returns a scalar tensor with the given value.
func FromScalar[T any](value T) *Tensor[T] {
	return &Tensor[T]{shape: shapes.Scalar(), flat: []T{value}}
}

// FromValues returns a tensor of rank 1 with a copy of the given values.
func FromValues[T any](values ...T) *Tensor[T] {
	return FromFlatData(shapes.Make(len(values)), values)
}

// FromMatrix returns a tensor of rank 2 with the given rows. It panics if the rows have different lengths.
func FromMatrix[T any](rows [][]T) *Tensor[T] {
	numCols := 0
	if len(rows) > 0 {
		numCols = len(rows[0])
	}
	t := New[T](shapes.Make(len(rows), numCols))
	for ii, row := range rows {
		if len(row) != numCols {
			exceptions.Panicf("tensors.FromMatrix: ragged matrix, row #0 has %d columns, but row #%d has %d",
				numCols, ii, len(row))
		}
		copy(t.flat[ii*numCols:], row)
	}
	return t
}

// FromCube returns a tensor of rank 3 with the given matrices. It panics if the matrices are not all the same
// (rectangular) shape.
func FromCube[T any](matrices [][][]T) *Tensor[T] {
	var numRows, numCols int
	if len(matrices) > 0 {
		numRows = len(matrices[0])
		if numRows > 0 {
			numCols = len(matrices[0][0])
		}
	}
	t := New[T](shapes.Make(len(matrices), numRows, numCols))
	pos := 0
	for ii, matrix := range matrices {
		if len(matrix) != numRows {
			exceptions.Panicf("tensors.FromCube: ragged cube, matrix #0 has %d rows, but matrix #%d has %d",
				numRows, ii, len(matrix))
		}
		for jj, row := range matrix {
			if len(row) != numCols {
				exceptions.Panicf("tensors.FromCube: ragged cube, row [0][0] has %d columns, but row [%d][%d] has %d",
					numCols, ii, jj, len(row))
			}
			pos += copy(t.flat[pos:], row)
		}
	}
	return t
}

// Filled returns a tensor with the given shape, with every element set to value.
func Filled[T any](shape shapes.Shape, value T) *Tensor[T] {
	t := New[T](shape)
	for ii := range t.flat {
		t.flat[ii] = value
	}
	return t
}

// FromFlatData returns a tensor with the given shape and a copy of the flat values, in row-major order.
// It panics if len(flat) != shape.Size().
func FromFlatData[T any](shape shapes.Shape, flat []T) *Tensor[T] {
	if len(flat) != shape.Size() {
		exceptions.Panicf("tensors.FromFlatData: shape %s has size %d, but %d values were given",
			shape, shape.Size(), len(flat))
	}
	t := New[T](shape)
	copy(t.flat, flat)
	return t
}

// Shape of the tensor.
func (t *Tensor[T]) Shape() shapes.Shape { return t.shape }

// Rank returns the rank of the tensor's shape.
// It is a shortcut to `Tensor.Shape().Rank()`.
func (t *Tensor[T]) Rank() int { return t.shape.Rank() }

// IsScalar returns whether the tensor represents a scalar value.
func (t *Tensor[T]) IsScalar() bool { return t.shape.IsScalar() }

// Size returns the number of elements in the tensor.
func (t *Tensor[T]) Size() int { return len(t.flat) }

// Memory returns the number of bytes used to store the values of the tensor. For element types holding
// pointers (slices, maps, ...) only the direct storage is accounted for.
func (t *Tensor[T]) Memory() uintptr {
	var zero T
	return uintptr(len(t.flat)) * unsafe.Sizeof(zero)
}

// Flat returns the flat values of the tensor, in row-major order. It is not a copy: changes to it are
// reflected in the tensor.
func (t *Tensor[T]) Flat() []T { return t.flat }

// FlatValue returns the value at the given flat index.
func (t *Tensor[T]) FlatValue(flatIndex int) T { return t.flat[flatIndex] }

// SetFlatValue sets the value at the given flat index.
func (t *Tensor[T]) SetFlatValue(flatIndex int, value T) { t.flat[flatIndex] = value }

// Value returns the value at the given multi-index. It panics if the index is invalid.
//
// For a scalar, call it without an index: t.Value().
func (t *Tensor[T]) Value(index ...int) T {
	return t.flat[t.shape.FlattenIndex(index)]
}

// SetValue sets the value at the given multi-index. It panics if the index is invalid.
func (t *Tensor[T]) SetValue(value T, index ...int) {
	t.flat[t.shape.FlattenIndex(index)] = value
}

// Clone returns a deep copy of the tensor (for value element types).
func (t *Tensor[T]) Clone() *Tensor[T] {
	return FromFlatData(t.shape, t.flat)
}

// ReshapeInPlace changes the shape of the tensor, without touching the data.
// It panics if the new shape has a different size.
func (t *Tensor[T]) ReshapeInPlace(shape shapes.Shape) {
	if shape.Size() != t.shape.Size() {
		exceptions.Panicf("Tensor.ReshapeInPlace(%s): size %d is different from the tensor's size %d (shape %s)",
			shape, shape.Size(), t.shape.Size(), t.shape)
	}
	t.shape = shape
}

// Reshape returns a copy of the tensor with the new shape.
// It panics if the new shape has a different size.
func (t *Tensor[T]) Reshape(shape shapes.Shape) *Tensor[T] {
	result := t.Clone()
	result.ReshapeInPlace(shape)
	return result
}

// ValidateSlice returns an error if Slice(begin, sizes) would be invalid.
func (t *Tensor[T]) ValidateSlice(begin, sizes []int) error {
	_, err := shapeinference.SliceOutputShape(t.shape, begin, sizes)
	return err
}

// Slice returns a new tensor (a copy) with the sub-tensor starting at begin (one value per axis) and with
// the given sizes (one value per axis).
//
// It panics if the slice is out of bounds. Use ValidateSlice to check first.
func (t *Tensor[T]) Slice(begin, sizes []int) *Tensor[T] {
	outputShape, err := shapeinference.SliceOutputShape(t.shape, begin, sizes)
	if err != nil {
		exceptions.Panicf("Tensor.Slice: %v", err)
	}
	result := New[T](outputShape)
	inputIndex := make([]int, t.Rank())
	for outputFlat, outputIndex := range outputShape.Iter() {
		for axis, idx := range outputIndex {
			inputIndex[axis] = begin[axis] + idx
		}
		result.flat[outputFlat] = t.flat[t.shape.FlattenIndex(inputIndex)]
	}
	return result
}

// ValidateSqueeze returns an error if Squeeze(axes...) would be invalid.
func (t *Tensor[T]) ValidateSqueeze(axes ...int) error {
	_, err := shapeinference.SqueezeOutputShape(t.shape, axes)
	return err
}

// Squeeze returns a copy of the tensor with the given axes, which must have dimension 1, removed.
// If no axes are given, all axes with dimension 1 are removed.
//
// It panics if any of the axes is out of range or doesn't have dimension 1. Use ValidateSqueeze to check first.
func (t *Tensor[T]) Squeeze(axes ...int) *Tensor[T] {
	outputShape, err := shapeinference.SqueezeOutputShape(t.shape, axes)
	if err != nil {
		exceptions.Panicf("Tensor.Squeeze: %v", err)
	}
	return t.Reshape(outputShape)
}

// ValidateExpandDims returns an error if ExpandDims(axis) would be invalid.
func (t *Tensor[T]) ValidateExpandDims(axis int) error {
	_, err := shapeinference.ExpandDimsOutputShape(t.shape, axis)
	return err
}

// ExpandDims returns a copy of the tensor with a new axis of dimension 1 inserted at axis, which must be
// in [0, rank]. It panics otherwise. Use ValidateExpandDims to check first.
func (t *Tensor[T]) ExpandDims(axis int) *Tensor[T] {
	outputShape, err := shapeinference.ExpandDimsOutputShape(t.shape, axis)
	if err != nil {
		exceptions.Panicf("Tensor.ExpandDims: %v", err)
	}
	return t.Reshape(outputShape)
}

// VectorSlice returns the values obtained by varying one axis of the tensor while keeping the others fixed.
//
// fixedIndices must have one value per axis: exactly one of them must be FreeIndex, marking the axis that
// varies, and the others must be in range. Example:
//
//	x := FromMatrix([][]int{{3, 5}, {6, 8}})
//	x.VectorSlice([]int{0, FreeIndex}) // -> [3, 5]
//	x.VectorSlice([]int{FreeIndex, 1}) // -> [5, 8]
func (t *Tensor[T]) VectorSlice(fixedIndices []int) []T {
	if len(fixedIndices) != t.Rank() {
		exceptions.Panicf("Tensor.VectorSlice(%v): expected %d indices for shape %s", fixedIndices, t.Rank(), t.shape)
	}
	freeAxis := -1
	for axis, idx := range fixedIndices {
		if idx == FreeIndex {
			if freeAxis >= 0 {
				exceptions.Panicf("Tensor.VectorSlice(%v): found two free indices, %d and %d", fixedIndices, freeAxis, axis)
			}
			freeAxis = axis
			continue
		}
		if idx < 0 || idx >= t.shape.Dimensions[axis] {
			exceptions.Panicf("Tensor.VectorSlice(%v): index for axis %d out of range for shape %s",
				fixedIndices, axis, t.shape)
		}
	}
	if freeAxis < 0 {
		exceptions.Panicf("Tensor.VectorSlice(%v): no free index (%d) given", fixedIndices, FreeIndex)
	}
	size := t.shape.Dimensions[freeAxis]
	strides := t.shape.Strides()
	start := 0
	for axis, idx := range fixedIndices {
		if axis != freeAxis {
			start += idx * strides[axis]
		}
	}
	values := make([]T, size)
	for ii := range size {
		values[ii] = t.flat[start+ii*strides[freeAxis]]
	}
	return values
}

// SubTensor returns a copy of the entries [start, start+size) of the first axis.
// It panics if the tensor is a scalar, or if the range is out of bounds.
func (t *Tensor[T]) SubTensor(start, size int) *Tensor[T] {
	if t.IsScalar() {
		exceptions.Panicf("Tensor.SubTensor() cannot be called on scalars")
	}
	if start < 0 || size < 0 || start+size > t.shape.Dimensions[0] {
		exceptions.Panicf("Tensor.SubTensor(%d, %d): out of bounds for shape %s", start, size, t.shape)
	}
	dims := append([]int{size}, t.shape.Dimensions[1:]...)
	outputShape := shapes.Make(dims...)
	rowSize := t.shape.Strides()[0]
	return FromFlatData(outputShape, t.flat[start*rowSize:(start+size)*rowSize])
}

// SubTensorAt returns a copy of the entry index of the first axis. If keepDims is false, the first axis is
// dropped, otherwise it is kept with dimension 1.
func (t *Tensor[T]) SubTensorAt(index int, keepDims bool) *Tensor[T] {
	result := t.SubTensor(index, 1)
	if !keepDims {
		result.ReshapeInPlace(result.shape.RemoveAxes(0))
	}
	return result
}

// Equal checks weather t == other: same shape and equal values.
// If they are the same pointer, they are considered equal.
//
// Slow implementation: values are compared with reflection, fine for tests and small tensors.
// It panics if T is not comparable.
func (t *Tensor[T]) Equal(other *Tensor[T]) bool {
	if t == other {
		return true
	}
	if t == nil || other == nil || !t.shape.Equal(other.shape) || len(t.flat) != len(other.flat) {
		return false
	}
	for ii := range t.flat {
		if !reflect.ValueOf(t.flat[ii]).Equal(reflect.ValueOf(other.flat[ii])) {
			return false
		}
	}
	return true
}

// String implements fmt.Stringer, in the format "shape: [2 3], values: [1, 2, 3, 4, 5, 6]".
// Elements are formatted with "%v", so element types implementing fmt.Stringer (like bounds.Bounds) use
// their own format.
func (t *Tensor[T]) String() string {
	var sb strings.Builder
	_, _ = fmt.Fprintf(&sb, "shape: %s, values: [", t.shape)
	for ii, v := range t.flat {
		if ii > 0 {
			sb.WriteString(", ")
		}
		_, _ = fmt.Fprintf(&sb, "%v", v)
	}
	sb.WriteString("]")
	return sb.String()
}

// Map returns a new tensor with the same shape, with fn applied to each element. It can be used to convert
// element types, e.g.: a float64 tensor to a tensor of bounds.Bounds with bounds.Point.
func Map[T, R any](t *Tensor[T], fn func(T) R) *Tensor[R] {
	result := New[R](t.shape)
	for ii, v := range t.flat {
		result.flat[ii] = fn(v)
	}
	return result
}
