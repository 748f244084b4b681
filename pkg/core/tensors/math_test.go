// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package tensors

import (
	"testing"

	"github.com/gomlx/tfopt/pkg/core/bounds"
	"github.com/gomlx/tfopt/pkg/core/shapes"
	"github.com/gomlx/tfopt/pkg/core/window"
	"github.com/janpfeifer/must"
	"github.com/stretchr/testify/require"
)

var (
	F64 FloatArithmetic[float64]
	BA  bounds.Arithmetic
)

func requireTensor[T any](t *testing.T, want, got *Tensor[T]) {
	t.Helper()
	require.Truef(t, want.Equal(got), "wanted %s, got %s", want, got)
}

func TestElementwise(t *testing.T) {
	x := FromMatrix([][]float64{{1, 2, 3}, {4, 5, 6}})
	row := FromValues(10.0, 20.0, 30.0)
	col := FromMatrix([][]float64{{1}, {2}})

	requireTensor(t, FromMatrix([][]float64{{11, 22, 33}, {14, 25, 36}}), Add(F64, x, row))
	requireTensor(t, FromMatrix([][]float64{{11, 22, 33}, {14, 25, 36}}), Add(F64, row, x))
	requireTensor(t, FromMatrix([][]float64{{0, 1, 2}, {2, 3, 4}}), Sub(F64, x, col))
	requireTensor(t, FromMatrix([][]float64{{2, 4, 6}, {8, 10, 12}}), Mul(F64, x, FromScalar(2.0)))
	requireTensor(t, FromMatrix([][]float64{{1, 2, 3}, {2, 2.5, 3}}), Div(F64, x, col))
	requireTensor(t, FromMatrix([][]float64{{10, 20, 30}, {10, 20, 30}}), Maximum(F64, x, row))
	requireTensor(t, FromMatrix([][]float64{{1, 1, 1}, {2, 2, 2}}), Minimum(F64, x, col))
	requireTensor(t, FromValues(-1.0, 2.0), Negate(F64, FromValues(1.0, -2.0)))

	// Column [2,1] with row [3] broadcast to [2,3].
	requireTensor(t, FromMatrix([][]float64{{11, 21, 31}, {12, 22, 32}}), Add(F64, col, row))

	require.Panics(t, func() { _ = Add(F64, x, FromValues(1.0, 2.0)) })
}

func TestBinaryOpMixedTypes(t *testing.T) {
	weights := FromValues(2.0, -1.0)
	inputs := FromValues(bounds.New(0, 1), bounds.New(-1, 3))
	got := BinaryOp(weights, inputs, func(w float64, b bounds.Bounds) bounds.Bounds { return b.MulScalar(w) })
	requireTensor(t, FromValues(bounds.New(0, 2), bounds.New(-3, 1)), got)
}

func TestReluAndClippedRelu(t *testing.T) {
	x := FromValues(-2.0, 0.5, 3.0)
	requireTensor(t, FromValues(0.0, 0.5, 3.0), Relu(F64, x))
	requireTensor(t, FromValues(0.0, 0.5, 1.0), ClippedRelu(F64, x, 1))

	b := FromValues(bounds.New(-2, -1), bounds.New(-1, 2), bounds.New(1, 5))
	requireTensor(t, FromValues(bounds.New(0, 0), bounds.New(0, 2), bounds.New(1, 5)), Relu(BA, b))
	requireTensor(t, FromValues(bounds.New(0, 0), bounds.New(0, 2), bounds.New(1, 3)), ClippedRelu(BA, b, 3))
}

func TestMatMul(t *testing.T) {
	a := FromMatrix([][]float64{{1, 2, 3}, {4, 5, 6}})
	b := FromMatrix([][]float64{{1, 0}, {0, 1}, {1, 1}})
	requireTensor(t, FromMatrix([][]float64{{4, 5}, {10, 11}}), MatMul(F64, a, b))

	// Batched left operand, broadcast right operand.
	batch := FromCube([][][]float64{{{1, 2, 3}, {4, 5, 6}}, {{0, 0, 1}, {1, 0, 0}}})
	requireTensor(t, FromCube([][][]float64{{{4, 5}, {10, 11}}, {{1, 1}, {1, 0}}}), MatMul(F64, batch, b))

	// Bounds: [[1,2]] x [[-1,1]] = [[-2, 2]].
	bl := FromMatrix([][]bounds.Bounds{{bounds.New(1, 2)}})
	br := FromMatrix([][]bounds.Bounds{{bounds.New(-1, 1)}})
	requireTensor(t, FromMatrix([][]bounds.Bounds{{bounds.New(-2, 2)}}), MatMul(BA, bl, br))

	require.Panics(t, func() { _ = MatMul(F64, a, a) })
	require.Panics(t, func() { _ = MatMul(F64, FromValues(1.0), a) })
}

func TestReduce(t *testing.T) {
	x := FromCube([][][]float64{
		{{1, 2}, {3, 4}, {5, 6}},
		{{7, 8}, {9, 10}, {11, 12}},
	}) // [2, 3, 2]
	requireTensor(t, FromValues(1+2+3+4+5+6.0, 7+8+9+10+11+12.0), ReduceSum(F64, x, 1, 2))
	requireTensor(t, FromMatrix([][]float64{{8, 10}, {12, 14}, {16, 18}}), ReduceSum(F64, x, 0))
	requireTensor(t, FromMatrix([][]float64{{5, 6}, {11, 12}}), ReduceMax(F64, x, 1))
	requireTensor(t, FromMatrix([][]float64{{1, 3, 5}, {7, 9, 11}}), ReduceMin(F64, x, 2))
	requireTensor(t, FromValues(3.5, 9.5), ReduceMean(F64, x, 1, 2))
	requireTensor(t, x, ReduceSum(F64, x))

	require.Equal(t, 78.0, ReduceSumAll(F64, x))
	require.Equal(t, 12.0, ReduceMaxAll(F64, x))
	require.Equal(t, 1.0, ReduceMinAll(F64, x))
	require.Equal(t, 6.5, ReduceMeanAll(F64, x))

	// Max of negative values must not be clipped by the zero value.
	require.Equal(t, -1.0, ReduceMaxAll(F64, FromValues(-3.0, -1.0, -2.0)))

	b := FromValues(bounds.New(-1, 1), bounds.New(0, 4))
	require.Equal(t, bounds.New(-1, 5), ReduceSumAll(BA, b))
	require.Equal(t, bounds.New(0, 4), ReduceMaxAll(BA, b))
	require.Equal(t, bounds.New(-0.5, 2.5), ReduceMeanAll(BA, b))

	require.Panics(t, func() { _ = ReduceSum(F64, x, 1, 0) })
}

func TestConcat(t *testing.T) {
	a := FromMatrix([][]int{{1, 2}, {3, 4}})
	b := FromMatrix([][]int{{5}, {6}})
	requireTensor(t, FromMatrix([][]int{{1, 2, 5}, {3, 4, 6}}), Concat([]*Tensor[int]{a, b}, 1))
	requireTensor(t, FromMatrix([][]int{{1, 2}, {3, 4}, {1, 2}, {3, 4}}), Concat([]*Tensor[int]{a, a}, 0))
	requireTensor(t, FromValues(1, 2, 3, 4, 5), ConcatDirect([]Tensor[int]{*FromValues(1, 2), *FromValues(3, 4, 5)}, 0))
	require.Panics(t, func() { _ = Concat([]*Tensor[int]{a, b}, 0) })
}

func TestConv2d(t *testing.T) {
	// Input [1, 3, 3, 1] with values 1..9, filter 2x2 of ones: each output is the sum of the window.
	input := FromFlatData(shapes.Make(1, 3, 3, 1), []float64{1, 2, 3, 4, 5, 6, 7, 8, 9})
	filter := Filled(shapes.Make(2, 2, 1, 1), 1.0)
	valid := must.M1(Conv2d(F64, input, filter, window.Position2D{Row: 1, Col: 1}, window.PaddingValid))
	requireTensor(t, FromFlatData(shapes.Make(1, 2, 2, 1), []float64{12, 16, 24, 28}), valid)

	// SAME: padding is added at the bottom/right only (pad 1, leading side gets 0).
	same := must.M1(Conv2d(F64, input, filter, window.Position2D{Row: 1, Col: 1}, window.PaddingSame))
	requireTensor(t, FromFlatData(shapes.Make(1, 3, 3, 1), []float64{12, 16, 9, 24, 28, 15, 15, 17, 9}), same)

	// Two output channels: the second doubles.
	filter2 := FromFlatData(shapes.Make(1, 1, 1, 2), []float64{1, 2})
	out := must.M1(Conv2d(F64, input, filter2, window.Position2D{Row: 2, Col: 2}, window.PaddingValid))
	requireTensor(t, FromFlatData(shapes.Make(1, 2, 2, 2), []float64{1, 2, 3, 6, 7, 14, 9, 18}), out)

	_, err := Conv2d(F64, input, Filled(shapes.Make(2, 2, 2, 1), 1.0), window.Position2D{Row: 1, Col: 1}, window.PaddingValid)
	require.Error(t, err)
}

func TestConv1d(t *testing.T) {
	// Input [1, 4, 1] = 1, 2, 3, 4; filter [2, 1, 1] = 1, -1: out[i] = x[i] - x[i+1].
	input := FromFlatData(shapes.Make(1, 4, 1), []float64{1, 2, 3, 4})
	filter := FromFlatData(shapes.Make(2, 1, 1), []float64{1, -1})
	out := must.M1(Conv1d(F64, input, filter, 1, window.PaddingValid))
	requireTensor(t, FromFlatData(shapes.Make(1, 3, 1), []float64{-1, -1, -1}), out)

	_, err := Conv1d(F64, input, filter, 0, window.PaddingValid)
	require.ErrorContains(t, err, "on conv1d inside conv2d")
}

func TestMaxPool(t *testing.T) {
	input := FromFlatData(shapes.Make(1, 3, 3, 1), []float64{1, 2, 3, 4, 5, 6, 7, 8, 9})
	ws := window.Position2D{Row: 2, Col: 2}
	valid := MaxPool(F64, input, ws, window.Position2D{Row: 1, Col: 1}, window.PaddingValid)
	requireTensor(t, FromFlatData(shapes.Make(1, 2, 2, 1), []float64{5, 6, 8, 9}), valid)

	// Padding contributes a zero: visible with negative inputs.
	negative := Negate(F64, input)
	same := MaxPool(F64, negative, ws, window.Position2D{Row: 2, Col: 2}, window.PaddingSame)
	// Output 2x2; window (0,0) covers rows 0-1, cols 0-1 (no padding), the others include padding.
	requireTensor(t, FromFlatData(shapes.Make(1, 2, 2, 1), []float64{-1, 0, 0, 0}), same)

	require.Panics(t, func() { _ = MaxPool(F64, FromValues(1.0), ws, ws, window.PaddingSame) })
}

func TestEmbeddingLookup(t *testing.T) {
	// params: 3 classes, embedding size 2.
	params := FromMatrix([][]float64{{1, 2}, {3, 4}, {5, 6}})
	// ids: batch of 2, one-hot and weighted.
	ids := FromMatrix([][]float64{{0, 1, 0}, {0.5, 0, 0.5}})
	requireTensor(t, FromMatrix([][]float64{{3, 4}, {3, 4}}), EmbeddingLookup(F64, params, ids))
	require.Panics(t, func() { _ = EmbeddingLookup(F64, params, FromMatrix([][]float64{{1, 0}})) })
}
