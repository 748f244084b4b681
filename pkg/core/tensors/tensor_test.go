// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package tensors

import (
	"math"
	"testing"

	"github.com/gomlx/tfopt/pkg/core/bounds"
	"github.com/gomlx/tfopt/pkg/core/shapes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructors(t *testing.T) {
	zeros := New[float64](shapes.Make(2, 3))
	require.Equal(t, []float64{0, 0, 0, 0, 0, 0}, zeros.Flat())
	require.Equal(t, 2, zeros.Rank())
	require.Equal(t, 6, zeros.Size())
	require.Equal(t, uintptr(48), zeros.Memory())

	scalar := FromScalar(3.0)
	require.True(t, scalar.IsScalar())
	require.Equal(t, 3.0, scalar.Value())

	vector := FromValues(1, 2, 3)
	require.True(t, shapes.Make(3).Equal(vector.Shape()))
	require.Equal(t, 2, vector.Value(1))

	matrix := FromMatrix([][]int{{1, 2, 3}, {4, 5, 6}})
	require.True(t, shapes.Make(2, 3).Equal(matrix.Shape()))
	require.Equal(t, 6, matrix.Value(1, 2))
	require.Equal(t, []int{1, 2, 3, 4, 5, 6}, matrix.Flat())

	cube := FromCube([][][]int{{{1, 2}, {3, 4}}, {{5, 6}, {7, 8}}, {{9, 10}, {11, 12}}})
	require.True(t, shapes.Make(3, 2, 2).Equal(cube.Shape()))
	require.Equal(t, 7, cube.Value(1, 1, 0))

	filled := Filled(shapes.Make(2, 2), bounds.New(-1, 1))
	for _, v := range filled.Flat() {
		require.Equal(t, bounds.New(-1, 1), v)
	}

	flat := []float64{1, 2, 3, 4}
	fromFlat := FromFlatData(shapes.Make(2, 2), flat)
	flat[0] = 100
	require.Equal(t, 1.0, fromFlat.Value(0, 0), "FromFlatData must copy the data")
}

func TestConstructorContractViolations(t *testing.T) {
	require.Panics(t, func() { _ = FromMatrix([][]int{{1, 2}, {3}}) })
	require.Panics(t, func() { _ = FromCube([][][]int{{{1, 2}}, {{3, 4}, {5, 6}}}) })
	require.Panics(t, func() { _ = FromCube([][][]int{{{1, 2}, {3}}}) })
	require.Panics(t, func() { _ = FromFlatData(shapes.Make(2, 2), []int{1, 2, 3}) })

	m := FromMatrix([][]int{{1, 2}, {3, 4}})
	require.Panics(t, func() { _ = m.Value(2, 0) })
	require.Panics(t, func() { _ = m.Value(0) })
	require.Panics(t, func() { m.SetValue(1, 0, -1) })
}

func TestSetValue(t *testing.T) {
	m := New[float64](shapes.Make(2, 3))
	m.SetValue(7, 1, 2)
	m.SetFlatValue(0, 1)
	require.Equal(t, []float64{1, 0, 0, 0, 0, 7}, m.Flat())
	require.Equal(t, 7.0, m.FlatValue(5))
}

func TestReshape(t *testing.T) {
	m := FromMatrix([][]int{{1, 2, 3}, {4, 5, 6}})
	reshaped := m.Reshape(shapes.Make(3, 2))
	require.Equal(t, 4, reshaped.Value(1, 1))
	back := reshaped.Reshape(shapes.Make(2, 3))
	require.True(t, m.Equal(back))

	// Reshape copies: changes to the result don't affect the original.
	reshaped.SetValue(100, 0, 0)
	require.Equal(t, 1, m.Value(0, 0))

	m.ReshapeInPlace(shapes.Make(6))
	require.Equal(t, 6, m.Value(5))
	require.Panics(t, func() { m.ReshapeInPlace(shapes.Make(5)) })
	require.Panics(t, func() { _ = m.Reshape(shapes.Make(7)) })
}

func TestSlice(t *testing.T) {
	m := FromMatrix([][]int{{1, 2, 3}, {4, 5, 6}, {7, 8, 9}})
	require.True(t, m.Equal(m.Slice([]int{0, 0}, []int{3, 3})))
	require.True(t, FromMatrix([][]int{{5, 6}, {8, 9}}).Equal(m.Slice([]int{1, 1}, []int{2, 2})))
	require.True(t, FromMatrix([][]int{{2}, {5}}).Equal(m.Slice([]int{0, 1}, []int{2, 1})))
	require.Equal(t, 0, m.Slice([]int{3, 0}, []int{0, 3}).Size())

	require.NoError(t, m.ValidateSlice([]int{1, 1}, []int{2, 2}))
	require.Error(t, m.ValidateSlice([]int{2, 0}, []int{2, 1}))
	require.Error(t, m.ValidateSlice([]int{0}, []int{2}))
	require.Panics(t, func() { _ = m.Slice([]int{-1, 0}, []int{1, 1}) })
}

func TestSqueezeAndExpandDims(t *testing.T) {
	x := FromFlatData(shapes.Make(1, 3, 1), []int{1, 2, 3})
	require.True(t, shapes.Make(3).Equal(x.Squeeze().Shape()))
	require.True(t, shapes.Make(3, 1).Equal(x.Squeeze(0).Shape()))
	require.Equal(t, []int{1, 2, 3}, x.Squeeze().Flat())
	require.Error(t, x.ValidateSqueeze(1))
	require.Error(t, x.ValidateSqueeze(3))
	require.NoError(t, x.ValidateSqueeze(0, 2))
	require.Panics(t, func() { _ = x.Squeeze(1) })

	v := FromValues(1, 2, 3)
	require.True(t, shapes.Make(1, 3).Equal(v.ExpandDims(0).Shape()))
	require.True(t, shapes.Make(3, 1).Equal(v.ExpandDims(1).Shape()))
	require.Error(t, v.ValidateExpandDims(2))
	require.Panics(t, func() { _ = v.ExpandDims(-1) })
}

func TestVectorSlice(t *testing.T) {
	x := FromMatrix([][]int{{3, 5}, {6, 8}})
	require.Equal(t, []int{3, 5}, x.VectorSlice([]int{0, FreeIndex}))
	require.Equal(t, []int{6, 8}, x.VectorSlice([]int{1, FreeIndex}))
	require.Equal(t, []int{3, 6}, x.VectorSlice([]int{FreeIndex, 0}))
	require.Equal(t, []int{5, 8}, x.VectorSlice([]int{FreeIndex, 1}))

	cube := FromCube([][][]int{{{1, 2}, {3, 4}}, {{5, 6}, {7, 8}}})
	require.Equal(t, []int{3, 7}, cube.VectorSlice([]int{FreeIndex, 1, 0}))

	require.Panics(t, func() { _ = x.VectorSlice([]int{FreeIndex, FreeIndex}) })
	require.Panics(t, func() { _ = x.VectorSlice([]int{0, 1}) })
	require.Panics(t, func() { _ = x.VectorSlice([]int{2, FreeIndex}) })
	require.Panics(t, func() { _ = x.VectorSlice([]int{FreeIndex}) })
}

func TestSubTensor(t *testing.T) {
	x := FromMatrix([][]int{{1, 2, 3}, {4, 5, 6}, {7, 8, 9}})
	require.True(t, FromMatrix([][]int{{1, 2, 3}, {4, 5, 6}}).Equal(x.SubTensor(0, 2)))
	require.True(t, FromMatrix([][]int{{4, 5, 6}}).Equal(x.SubTensorAt(1, true)))
	require.True(t, FromValues(4, 5, 6).Equal(x.SubTensorAt(1, false)))
	require.True(t, FromScalar(2).Equal(FromValues(1, 2, 3).SubTensorAt(1, false)))

	require.Panics(t, func() { _ = x.SubTensor(2, 2) })
	require.Panics(t, func() { _ = FromScalar(1).SubTensor(0, 1) })
}

func TestEqualAndString(t *testing.T) {
	a := FromValues(1.0, 2.0)
	require.True(t, a.Equal(a))
	require.True(t, a.Equal(FromValues(1.0, 2.0)))
	require.False(t, a.Equal(FromValues(1.0, 3.0)))
	require.False(t, a.Equal(FromMatrix([][]float64{{1, 2}})))
	require.False(t, a.Equal(nil))

	require.Equal(t, "shape: [2 2], values: [1, 2, 3, 4]", FromMatrix([][]int{{1, 2}, {3, 4}}).String())
	require.Equal(t, "shape: [], values: [3.5]", FromScalar(3.5).String())
	b := FromValues(bounds.New(0, 1), bounds.Point(2))
	require.Equal(t, "shape: [2], values: [[0,1], [2,2]]", b.String())
}

func TestMapAndHasInfiniteOrNaN(t *testing.T) {
	x := FromValues(1.0, -2.0)
	b := Map(x, bounds.Point)
	require.True(t, FromValues(bounds.Point(1), bounds.Point(-2)).Equal(b))

	assert.False(t, HasInfiniteOrNaN(x))
	assert.True(t, HasInfiniteOrNaN(FromValues(1.0, math.Inf(-1))))
	assert.True(t, HasInfiniteOrNaN(FromValues(float32(math.NaN()))))
}

func TestSummary(t *testing.T) {
	require.Equal(t, "float64 (8 B)(3.14)", FromScalar(3.14159).Summary(3))
	require.Equal(t, "[8]int (64 B) {1, 2, 3, ..., 6, 7, 8}", FromValues(1, 2, 3, 4, 5, 6, 7, 8).Summary(3))
	matrix := FromMatrix([][]float64{{1, 2}, {3, 4}}).Summary(2)
	require.Contains(t, matrix, "[2][2]float64 (32 B)")
	require.Contains(t, matrix, "{{1, 2},\n  {3, 4}}")
}
