// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

// Package shapeinference calculates the shape resulting from operations and validates its inputs.
//
// It is used both by the operations of the graph (to validate nodes when they are created) and
// by the tensor math (to allocate the outputs).
//
// It defines BinaryOpOutputShape for the elementwise binary operations, using the standard
// broadcasting rules, and one function per structured operation (MatMul, Reduce, Concat, Slice,
// Squeeze, ExpandDims, EmbeddingLookup, Conv1d, Conv2d and Pool2d).
//
// Errors returned are plain errors describing the offending shapes: callers (the operation
// constructors) attach the context of the node.
package shapeinference

import (
	"slices"

	"github.com/gomlx/exceptions"
	"github.com/gomlx/tfopt/pkg/core/shapes"
	"github.com/gomlx/tfopt/pkg/core/window"
	"github.com/pkg/errors"
)

// BroadcastPad returns the shape left-padded with dimensions of size 1 to the given rank.
// If the shape already has rank >= targetRank it is returned unchanged.
func BroadcastPad(shape shapes.Shape, targetRank int) shapes.Shape {
	if targetRank <= shape.Rank() {
		return shape
	}
	dims := make([]int, targetRank)
	numOnes := targetRank - shape.Rank()
	for ii := range numOnes {
		dims[ii] = 1
	}
	copy(dims[numOnes:], shape.Dimensions)
	return shapes.Make(dims...)
}

// BinaryOpOutputShape returns the shape resulting from an elementwise binary operation (Add,
// Subtract, Multiply, Divide, Maximum, ...) with broadcasting.
//
// The shape with the smaller rank is left-padded with 1s. Then, for each axis, the dimensions
// must be equal or one of them must be 1, and the output takes the largest.
func BinaryOpOutputShape(lhs, rhs shapes.Shape) (output shapes.Shape, err error) {
	rank := max(lhs.Rank(), rhs.Rank())
	paddedLhs, paddedRhs := BroadcastPad(lhs, rank), BroadcastPad(rhs, rank)
	dims := make([]int, rank)
	for axis := range rank {
		lhsDim, rhsDim := paddedLhs.Dimensions[axis], paddedRhs.Dimensions[axis]
		if lhsDim != 1 && rhsDim != 1 && lhsDim != rhsDim {
			return shapes.Shape{}, errors.Errorf("incompatible shapes left: %s and right: %s at index: %d",
				paddedLhs, paddedRhs, axis)
		}
		dims[axis] = max(lhsDim, rhsDim)
	}
	return shapes.Make(dims...), nil
}

// MatMulOutputShape returns the shape of the matrix multiplication of lhs and rhs.
//
// The last two axes are multiplied as matrices: lhs[-1] must equal rhs[-2] and the output has
// trailing dimensions (lhs[-2], rhs[-1]). The leading axes (the "batch") are broadcast as in
// BinaryOpOutputShape.
//
// It panics if either shape has rank < 2: matrix multiplication of vectors is not defined, callers
// should reshape them first.
func MatMulOutputShape(lhs, rhs shapes.Shape) (output shapes.Shape, err error) {
	if lhs.Rank() < 2 || rhs.Rank() < 2 {
		exceptions.Panicf("MatMulOutputShape(%s, %s): both operands must have rank >= 2", lhs, rhs)
	}
	rank := max(lhs.Rank(), rhs.Rank())
	paddedLhs, paddedRhs := BroadcastPad(lhs, rank), BroadcastPad(rhs, rank)
	dims := make([]int, rank)
	for axis := range rank - 2 {
		lhsDim, rhsDim := paddedLhs.Dimensions[axis], paddedRhs.Dimensions[axis]
		if lhsDim != 1 && rhsDim != 1 && lhsDim != rhsDim {
			return shapes.Shape{}, errors.Errorf("incompatible shapes a: %s and b: %s at index: %d",
				paddedLhs, paddedRhs, axis)
		}
		dims[axis] = max(lhsDim, rhsDim)
	}
	lhsHeight, lhsWidth := paddedLhs.Dimensions[rank-2], paddedLhs.Dimensions[rank-1]
	rhsHeight, rhsWidth := paddedRhs.Dimensions[rank-2], paddedRhs.Dimensions[rank-1]
	if lhsWidth != rhsHeight {
		return shapes.Shape{}, errors.Errorf("incompatible shapes left: %s and right: %s: last dimension of left=%d "+
			"does not agree with next to last dimension of right=%d", paddedLhs, paddedRhs, lhsWidth, rhsHeight)
	}
	dims[rank-2] = lhsHeight
	dims[rank-1] = rhsWidth
	return shapes.Make(dims...), nil
}

// ReduceOutputShape returns the shape of reducing the given axes of the input.
//
// The axes must be strictly increasing (sorted, no duplicates) and within [0, rank). An empty list
// of axes returns the input shape.
func ReduceOutputShape(input shapes.Shape, axes []int) (output shapes.Shape, err error) {
	for ii, axis := range axes {
		if ii > 0 && axis <= axes[ii-1] {
			return shapes.Shape{}, errors.Errorf("axes vector is not sorted or contains duplicates at index %d", ii)
		}
		if axis < 0 || axis >= input.Rank() {
			return shapes.Shape{}, errors.Errorf("axis=%d should have been in [0..rank(input)=%d)", axis, input.Rank())
		}
	}
	return input.RemoveAxes(axes...), nil
}

// ConcatOutputShape returns the shape of concatenating the inputs along the given axis.
//
// There must be at least one input, all of the same rank, and all dimensions other than axis must
// agree. The output dimension on axis is the sum of the inputs' dimensions on it.
func ConcatOutputShape(inputs []shapes.Shape, axis int) (output shapes.Shape, err error) {
	if len(inputs) == 0 {
		return shapes.Shape{}, errors.New("concat must have at least one input, found none")
	}
	first := inputs[0]
	rank := first.Rank()
	for ii, input := range inputs[1:] {
		if input.Rank() != rank {
			return shapes.Shape{}, errors.Errorf("all inputs to concat must have equal rank, but input #0 has rank %d "+
				"and input #%d has rank %d", rank, ii+1, input.Rank())
		}
	}
	if axis < 0 || axis >= rank {
		return shapes.Shape{}, errors.Errorf("concat axis must be in [0..rank=%d), but found axis=%d", rank, axis)
	}
	dims := slices.Clone(first.Dimensions)
	dims[axis] = 0
	for ii, input := range inputs {
		for d, dim := range input.Dimensions {
			if d == axis {
				dims[axis] += dim
				continue
			}
			if dim != first.Dimensions[d] {
				return shapes.Shape{}, errors.Errorf("inputs to concat must agree in every dimension except axis=%d, "+
					"but input #0=%s and input #%d=%s disagree on dimension %d", axis, first, ii, input, d)
			}
		}
	}
	return shapes.Make(dims...), nil
}

// SliceOutputShape validates slicing the input starting at begin with the given sizes, and
// returns the output shape (which is sizes).
func SliceOutputShape(input shapes.Shape, begin, sizes []int) (output shapes.Shape, err error) {
	rank := input.Rank()
	if len(begin) != rank {
		return shapes.Shape{}, errors.Errorf("slice begin has %d dimensions != %d dimensions on input shape %s",
			len(begin), rank, input)
	}
	if len(sizes) != rank {
		return shapes.Shape{}, errors.Errorf("slice sizes has %d dimensions != %d dimensions on input shape %s",
			len(sizes), rank, input)
	}
	for d := range rank {
		switch {
		case begin[d] < 0:
			return shapes.Shape{}, errors.Errorf("begin[%d] = %d < 0, must be nonnegative", d, begin[d])
		case sizes[d] < 0:
			return shapes.Shape{}, errors.Errorf("sizes[%d] = %d < 0, must be nonnegative", d, sizes[d])
		case begin[d] > input.Dimensions[d] || sizes[d] > input.Dimensions[d]-begin[d]:
			return shapes.Shape{}, errors.Errorf("begin[%d] = %d, sizes[%d] = %d, input dimension[%d] = %d: "+
				"requesting out of bounds indices in tensor slice", d, begin[d], d, sizes[d], d, input.Dimensions[d])
		}
	}
	return shapes.Make(sizes...), nil
}

// SqueezeOutputShape validates removing the given axes from the input, and returns the output
// shape. Each axis must be in range and have dimension 1.
//
// If axes is empty, all axes of dimension 1 are removed.
func SqueezeOutputShape(input shapes.Shape, axes []int) (output shapes.Shape, err error) {
	if len(axes) == 0 {
		dims := make([]int, 0, input.Rank())
		for _, dim := range input.Dimensions {
			if dim != 1 {
				dims = append(dims, dim)
			}
		}
		return shapes.Make(dims...), nil
	}
	for _, axis := range axes {
		if axis < 0 || axis >= input.Rank() {
			return shapes.Shape{}, errors.Errorf("cannot squeeze shape %s on axes %v: all squeezed axes must fall in "+
				"[0, %d), but found axis %d", input, axes, input.Rank(), axis)
		}
		if input.Dimensions[axis] != 1 {
			return shapes.Shape{}, errors.Errorf("cannot squeeze shape %s on axes %v: all squeezed axes must have "+
				"dimension 1, but axis %d has dimension %d", input, axes, axis, input.Dimensions[axis])
		}
	}
	dims := make([]int, 0, input.Rank())
	for d, dim := range input.Dimensions {
		if !slices.Contains(axes, d) {
			dims = append(dims, dim)
		}
	}
	return shapes.Make(dims...), nil
}

// ExpandDimsOutputShape returns the input shape with a new axis of dimension 1 inserted at axis,
// which must be in [0, rank].
func ExpandDimsOutputShape(input shapes.Shape, axis int) (output shapes.Shape, err error) {
	if axis < 0 || axis > input.Rank() {
		return shapes.Shape{}, errors.Errorf("to call ExpandDims on a tensor of shape %s, axis must lie in [0, %d], "+
			"but found %d", input, input.Rank(), axis)
	}
	return input.InsertAxis(axis, 1), nil
}

// EmbeddingLookupOutputShape returns the shape of looking up ids in params.
//
// Both must have rank >= 2. ids holds "one-hot" (or weighted) vectors over the classes on its last
// axis, which must match params' first axis. The output is ids[:-1] ++ params[1:].
func EmbeddingLookupOutputShape(params, ids shapes.Shape) (output shapes.Shape, err error) {
	if params.Rank() < 2 {
		return shapes.Shape{}, errors.Errorf("rank of params must be at least two, found: %d", params.Rank())
	}
	if ids.Rank() < 2 {
		return shapes.Shape{}, errors.Errorf("rank of ids must be at least two, found: %d", ids.Rank())
	}
	if ids.Dim(-1) != params.Dim(0) {
		return shapes.Shape{}, errors.Errorf("Incompatible ids and params shapes: ids %s, params %s", ids, params)
	}
	dims := make([]int, 0, ids.Rank()+params.Rank()-2)
	dims = append(dims, ids.Dimensions[:ids.Rank()-1]...)
	dims = append(dims, params.Dimensions[1:]...)
	return shapes.Make(dims...), nil
}

// Conv2dOutputShape returns the shape of a 2D convolution.
//
// The input has shape [batch, height, width, inChannels] and the filter
// [filterHeight, filterWidth, inChannels, outChannels]. The output is
// [batch, outHeight, outWidth, outChannels], where the output spatial size is given by the
// window geometry (see window.NewExtractor2D).
func Conv2dOutputShape(input, filter shapes.Shape, strides window.Position2D, padding window.PaddingType) (
	output shapes.Shape, err error) {
	if input.Rank() != 4 {
		return shapes.Shape{}, errors.Errorf("Expected input shape to have rank four, found: %s", input)
	}
	if filter.Rank() != 4 {
		return shapes.Shape{}, errors.Errorf("Expected filter shape to have rank four, found: %s", filter)
	}
	if input.Dimensions[3] != filter.Dimensions[2] {
		return shapes.Shape{}, errors.Errorf("number of input channels %d (input format [batch, height, width, "+
			"in_channels], shape=%s) should be equal to the filter input channels %d (filter format [filter_height, "+
			"filter_width, in_channels, out_channels], shape=%s)",
			input.Dimensions[3], input, filter.Dimensions[2], filter)
	}
	extractor, err := window.NewExtractor2D(
		window.Position2D{Row: input.Dimensions[1], Col: input.Dimensions[2]},
		window.Position2D{Row: filter.Dimensions[0], Col: filter.Dimensions[1]},
		strides, padding)
	if err != nil {
		return shapes.Shape{}, err
	}
	outSize := extractor.OutputSize()
	return shapes.Make(input.Dimensions[0], outSize.Row, outSize.Col, filter.Dimensions[3]), nil
}

// Conv1dInputAs2d returns the rank-4 shape [batch, 1, width, channels] used to evaluate a 1D
// convolution input [batch, width, channels] as a 2D one.
func Conv1dInputAs2d(input shapes.Shape) shapes.Shape {
	return input.InsertAxis(1, 1)
}

// Conv1dFilterAs2d returns the rank-4 shape [1, filterWidth, inChannels, outChannels] used to
// evaluate a 1D convolution filter [filterWidth, inChannels, outChannels] as a 2D one.
func Conv1dFilterAs2d(filter shapes.Shape) shapes.Shape {
	return filter.InsertAxis(0, 1)
}

// Conv1dOutputShape returns the shape of a 1D convolution.
//
// The input has shape [batch, width, inChannels] and the filter [filterWidth, inChannels, outChannels].
// It is computed as a 2D convolution over a unit height axis, which is then removed: the output is
// [batch, outWidth, outChannels].
func Conv1dOutputShape(input, filter shapes.Shape, stride int, padding window.PaddingType) (
	output shapes.Shape, err error) {
	if input.Rank() != 3 {
		return shapes.Shape{}, errors.Errorf("Expected input shape to have rank three, found: %s", input)
	}
	if filter.Rank() != 3 {
		return shapes.Shape{}, errors.Errorf("Expected filter shape to have rank three, found: %s", filter)
	}
	output2d, err := Conv2dOutputShape(Conv1dInputAs2d(input), Conv1dFilterAs2d(filter),
		window.Position2D{Row: 1, Col: stride}, padding)
	if err != nil {
		return shapes.Shape{}, errors.WithMessage(err, "on conv1d inside conv2d")
	}
	return output2d.RemoveAxes(1), nil
}

// Pool2dOutputShape returns the shape of a 2D pooling (e.g.: max-pool) of the input
// [batch, height, width, channels]. The output is [batch, outHeight, outWidth, channels].
func Pool2dOutputShape(input shapes.Shape, windowSize, strides window.Position2D, padding window.PaddingType) (
	output shapes.Shape, err error) {
	if input.Rank() != 4 {
		return shapes.Shape{}, errors.Errorf("Expected input to be rank four, with shape (batch, height, width, "+
			"channels), but had shape: %s", input)
	}
	extractor, err := window.NewExtractor2D(
		window.Position2D{Row: input.Dimensions[1], Col: input.Dimensions[2]},
		windowSize, strides, padding)
	if err != nil {
		return shapes.Shape{}, err
	}
	outSize := extractor.OutputSize()
	return shapes.Make(input.Dimensions[0], outSize.Row, outSize.Col, input.Dimensions[3]), nil
}
