// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package shapes

import (
	"iter"
)

// Strides returns, for each axis, how many flat positions one step along the axis moves, in the row-major
// layout used by tensors. A scalar has no strides.
func (s Shape) Strides() (strides []int) {
	if s.Rank() == 0 {
		return
	}
	strides = make([]int, s.Rank())
	stride := 1
	for axis := s.Rank() - 1; axis >= 0; axis-- {
		strides[axis] = stride
		stride *= s.Dimensions[axis]
	}
	return
}

// Iter yields every flat index of the shape in increasing order, together with its multi-index. A scalar
// yields (0, []) once, and zero-size shapes yield nothing.
//
// The multi-index is reused between iterations: don't modify it, and clone it if it must be kept.
func (s Shape) Iter() iter.Seq2[int, []int] {
	return func(yield func(int, []int) bool) {
		if s.IsZeroSize() {
			return
		}
		index := make([]int, s.Rank())
		for flat := 0; ; flat++ {
			if !yield(flat, index) {
				return
			}
			// Odometer increment: the last axis moves fastest.
			axis := s.Rank() - 1
			for ; axis >= 0; axis-- {
				index[axis]++
				if index[axis] < s.Dimensions[axis] {
					break
				}
				index[axis] = 0
			}
			if axis < 0 {
				return
			}
		}
	}
}
