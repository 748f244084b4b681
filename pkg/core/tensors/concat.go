// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package tensors

import (
	"github.com/gomlx/exceptions"
	"github.com/gomlx/tfopt/pkg/core/shapeinference"
	"github.com/gomlx/tfopt/pkg/core/shapes"
)

// Concat concatenates the inputs along the given axis. See shapeinference.ConcatOutputShape for the
// requirements on the shapes; it panics if they are not met.
func Concat[T any](inputs []*Tensor[T], axis int) *Tensor[T] {
	inputShapes := make([]shapes.Shape, len(inputs))
	for ii, input := range inputs {
		inputShapes[ii] = input.shape
	}
	outputShape, err := shapeinference.ConcatOutputShape(inputShapes, axis)
	if err != nil {
		exceptions.Panicf("tensors.Concat: %v", err)
	}
	axisSizes := make([]int, len(inputs))
	for ii, input := range inputs {
		axisSizes[ii] = input.shape.Dimensions[axis]
	}
	table := shapeinference.NewConcatLookupTable(axisSizes)
	result := New[T](outputShape)
	inputIndex := make([]int, outputShape.Rank())
	for outputFlat, outputIndex := range outputShape.Iter() {
		copy(inputIndex, outputIndex)
		input, offset := table.Lookup(outputIndex[axis])
		inputIndex[axis] = offset
		result.flat[outputFlat] = inputs[input].flat[inputs[input].shape.FlattenIndex(inputIndex)]
	}
	return result
}

// ConcatDirect is like Concat, but takes a slice of tensors by value.
func ConcatDirect[T any](inputs []Tensor[T], axis int) *Tensor[T] {
	pointers := make([]*Tensor[T], len(inputs))
	for ii := range inputs {
		pointers[ii] = &inputs[ii]
	}
	return Concat(pointers, axis)
}
