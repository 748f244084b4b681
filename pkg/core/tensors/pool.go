// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package tensors

import (
	"github.com/gomlx/exceptions"
	"github.com/gomlx/tfopt/pkg/core/shapeinference"
	"github.com/gomlx/tfopt/pkg/core/window"
)

// MaxPool is the equivalent of tf.nn.max_pool2d(input, windowSize, strides, padding), with the "NHWC" layout.
//
// Shapes:
//   - input: [batch, height, width, channels].
//   - output: [batch, outHeight, outWidth, channels].
//
// If a window covers the padding, a zero value is included in its maximum.
// It panics if the input shape or the window configuration are invalid: operations validate them when
// they are created.
func MaxPool[T any](ar Arithmetic[T], input *Tensor[T], windowSize, strides window.Position2D,
	padding window.PaddingType) *Tensor[T] {
	outputShape, err := shapeinference.Pool2dOutputShape(input.shape, windowSize, strides, padding)
	if err != nil {
		exceptions.Panicf("tensors.MaxPool: %v", err)
	}
	extractor, err := window.NewExtractor2D(
		window.Position2D{Row: input.shape.Dimensions[1], Col: input.shape.Dimensions[2]},
		windowSize, strides, padding)
	if err != nil {
		exceptions.Panicf("tensors.MaxPool: %v", err)
	}
	result := New[T](outputShape)
	outputFlat := 0
	for b := range outputShape.Dimensions[0] {
		for oy := range outputShape.Dimensions[1] {
			for ox := range outputShape.Dimensions[2] {
				rect := extractor.Window(window.Position2D{Row: oy, Col: ox})
				for c := range outputShape.Dimensions[3] {
					var maxValue T
					first := true
					paddingFound := false
					for _, pos := range rect.Positions() {
						var value T
						if extractor.IsPadding(pos) {
							if paddingFound {
								continue
							}
							paddingFound = true
							value = ar.Zero()
						} else {
							value = input.Value(b, pos.Row, pos.Col, c)
						}
						if first {
							maxValue, first = value, false
						} else {
							maxValue = ar.Max(maxValue, value)
						}
					}
					result.flat[outputFlat] = maxValue
					outputFlat++
				}
			}
		}
	}
	return result
}
