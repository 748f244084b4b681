// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package shapes

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStrides(t *testing.T) {
	for _, tc := range []struct {
		shape Shape
		want  []int
	}{
		{Scalar(), nil},
		{Make(5), []int{1}},
		{Make(2, 3, 4), []int{12, 4, 1}},
		{Make(3, 1, 2), []int{2, 2, 1}},
	} {
		require.Equalf(t, tc.want, tc.shape.Strides(), "shape %s", tc.shape)
	}
}

// collectIter returns the flat indices and cloned multi-indices yielded by shape.Iter.
func collectIter(shape Shape) (flats []int, indices [][]int) {
	for flat, index := range shape.Iter() {
		flats = append(flats, flat)
		indices = append(indices, slices.Clone(index))
	}
	return
}

func TestIter(t *testing.T) {
	flats, indices := collectIter(Scalar())
	require.Equal(t, []int{0}, flats)
	require.Equal(t, [][]int{{}}, indices)

	flats, _ = collectIter(Make(2, 0, 3))
	require.Empty(t, flats)

	flats, indices = collectIter(Make(3, 1, 2))
	require.Equal(t, []int{0, 1, 2, 3, 4, 5}, flats)
	require.Equal(t, [][]int{
		{0, 0, 0}, {0, 0, 1},
		{1, 0, 0}, {1, 0, 1},
		{2, 0, 0}, {2, 0, 1},
	}, indices)

	// Yielded multi-indices agree with FlattenIndex and ExpandIndex.
	shape := Make(2, 3, 4)
	count := 0
	for flat, index := range shape.Iter() {
		require.Equal(t, flat, shape.FlattenIndex(index))
		require.Equal(t, index, shape.ExpandIndex(flat))
		count++
	}
	require.Equal(t, shape.Size(), count)

	// Breaking early stops the iteration.
	count = 0
	for range shape.Iter() {
		count++
		if count == 5 {
			break
		}
	}
	require.Equal(t, 5, count)
}
