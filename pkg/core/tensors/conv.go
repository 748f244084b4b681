// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package tensors

import (
	"github.com/gomlx/tfopt/pkg/core/shapeinference"
	"github.com/gomlx/tfopt/pkg/core/window"
	"github.com/pkg/errors"
)

// Conv2d is the equivalent of tf.nn.conv2d(input, filter, strides, padding), with the "NHWC" layout.
//
// Shapes:
//   - input: [batch, height, width, inChannels].
//   - filter: [filterHeight, filterWidth, inChannels, outChannels].
//   - output: [batch, outHeight, outWidth, outChannels].
//
// Positions of the window that fall in the padding contribute nothing (padding is zero).
// It returns an error if the shapes or the window configuration are invalid.
func Conv2d[T any](ar Arithmetic[T], input, filter *Tensor[T], strides window.Position2D, padding window.PaddingType) (
	*Tensor[T], error) {
	outputShape, err := shapeinference.Conv2dOutputShape(input.shape, filter.shape, strides, padding)
	if err != nil {
		return nil, err
	}
	extractor, err := window.NewExtractor2D(
		window.Position2D{Row: input.shape.Dimensions[1], Col: input.shape.Dimensions[2]},
		window.Position2D{Row: filter.shape.Dimensions[0], Col: filter.shape.Dimensions[1]},
		strides, padding)
	if err != nil {
		return nil, err
	}
	inChannels := input.shape.Dimensions[3]
	result := New[T](outputShape)
	outputFlat := 0
	// Loop in the output order (batch, y, x, channel), so outputFlat follows the row-major layout.
	for b := range outputShape.Dimensions[0] {
		for oy := range outputShape.Dimensions[1] {
			for ox := range outputShape.Dimensions[2] {
				rect := extractor.Window(window.Position2D{Row: oy, Col: ox})
				for oc := range outputShape.Dimensions[3] {
					sum := ar.Zero()
					for _, pos := range rect.Positions() {
						if extractor.IsPadding(pos) {
							continue
						}
						fy, fx := pos.Row-rect.Start.Row, pos.Col-rect.Start.Col
						for ic := range inChannels {
							coef := filter.Value(fy, fx, ic, oc)
							sum = ar.Add(sum, ar.Mul(coef, input.Value(b, pos.Row, pos.Col, ic)))
						}
					}
					result.flat[outputFlat] = sum
					outputFlat++
				}
			}
		}
	}
	return result, nil
}

// Conv1d is the equivalent of tf.nn.conv1d(input, filter, stride, padding).
//
// Shapes:
//   - input: [batch, width, inChannels].
//   - filter: [filterWidth, inChannels, outChannels].
//   - output: [batch, outWidth, outChannels].
//
// It is computed as a Conv2d with a unit height axis.
func Conv1d[T any](ar Arithmetic[T], input, filter *Tensor[T], stride int, padding window.PaddingType) (
	*Tensor[T], error) {
	outputShape, err := shapeinference.Conv1dOutputShape(input.shape, filter.shape, stride, padding)
	if err != nil {
		return nil, err
	}
	input2d := input.Reshape(shapeinference.Conv1dInputAs2d(input.shape))
	filter2d := filter.Reshape(shapeinference.Conv1dFilterAs2d(filter.shape))
	result, err := Conv2d(ar, input2d, filter2d, window.Position2D{Row: 1, Col: stride}, padding)
	if err != nil {
		return nil, errors.WithMessage(err, "on conv1d inside conv2d")
	}
	result.ReshapeInPlace(outputShape)
	return result, nil
}
