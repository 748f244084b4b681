// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package tensors

import (
	"github.com/gomlx/exceptions"
	"github.com/gomlx/tfopt/pkg/core/shapeinference"
)

// Reduce reduces the input over the given axes (strictly increasing, see shapeinference.ReduceOutputShape)
// with the binary function fn.
//
// Each output element starts with the first input value reduced into it. Output elements with nothing to
// reduce (an axis with dimension 0) are set to empty.
func Reduce[T any](input *Tensor[T], axes []int, empty T, fn func(accumulated, value T) T) *Tensor[T] {
	outputShape, err := shapeinference.ReduceOutputShape(input.shape, axes)
	if err != nil {
		exceptions.Panicf("tensors.Reduce: %v", err)
	}
	result := Filled(outputShape, empty)
	seen := make([]bool, result.Size())
	isReduced := make([]bool, input.Rank())
	for _, axis := range axes {
		isReduced[axis] = true
	}
	outputStrides := outputShape.Strides()
	for inputFlat, inputIndex := range input.shape.Iter() {
		outputFlat, outputAxis := 0, 0
		for axis, idx := range inputIndex {
			if isReduced[axis] {
				continue
			}
			outputFlat += idx * outputStrides[outputAxis]
			outputAxis++
		}
		value := input.flat[inputFlat]
		if !seen[outputFlat] {
			result.flat[outputFlat] = value
			seen[outputFlat] = true
		} else {
			result.flat[outputFlat] = fn(result.flat[outputFlat], value)
		}
	}
	return result
}

// reducedCount returns the number of input elements reduced into each output element.
func reducedCount(dimensions, axes []int) int {
	count := 1
	for _, axis := range axes {
		count *= dimensions[axis]
	}
	return count
}

// ReduceSum sums the input over the given axes.
func ReduceSum[T any](ar Arithmetic[T], input *Tensor[T], axes ...int) *Tensor[T] {
	return Reduce(input, axes, ar.Zero(), ar.Add)
}

// ReduceMax takes the maximum of the input over the given axes.
func ReduceMax[T any](ar Arithmetic[T], input *Tensor[T], axes ...int) *Tensor[T] {
	return Reduce(input, axes, ar.Zero(), ar.Max)
}

// ReduceMin takes the minimum of the input over the given axes.
func ReduceMin[T any](ar Arithmetic[T], input *Tensor[T], axes ...int) *Tensor[T] {
	return Reduce(input, axes, ar.Zero(), ar.Min)
}

// ReduceMean takes the mean of the input over the given axes.
func ReduceMean[T any](ar Arithmetic[T], input *Tensor[T], axes ...int) *Tensor[T] {
	sum := ReduceSum(ar, input, axes...)
	count := reducedCount(input.shape.Dimensions, axes)
	if count == 0 {
		return sum
	}
	countValue := ar.FromFloat(float64(count))
	return Map(sum, func(v T) T { return ar.Div(v, countValue) })
}

// allAxes returns [0, 1, ..., rank-1].
func allAxes(rank int) []int {
	axes := make([]int, rank)
	for ii := range axes {
		axes[ii] = ii
	}
	return axes
}

// ReduceSumAll returns the sum of all elements of the input.
func ReduceSumAll[T any](ar Arithmetic[T], input *Tensor[T]) T {
	return ReduceSum(ar, input, allAxes(input.Rank())...).flat[0]
}

// ReduceMaxAll returns the maximum of all elements of the input.
func ReduceMaxAll[T any](ar Arithmetic[T], input *Tensor[T]) T {
	return ReduceMax(ar, input, allAxes(input.Rank())...).flat[0]
}

// ReduceMinAll returns the minimum of all elements of the input.
func ReduceMinAll[T any](ar Arithmetic[T], input *Tensor[T]) T {
	return ReduceMin(ar, input, allAxes(input.Rank())...).flat[0]
}

// ReduceMeanAll returns the mean of all elements of the input.
func ReduceMeanAll[T any](ar Arithmetic[T], input *Tensor[T]) T {
	return ReduceMean(ar, input, allAxes(input.Rank())...).flat[0]
}
