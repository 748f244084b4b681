// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package shapeinference

import (
	"github.com/gomlx/exceptions"
	"github.com/gomlx/tfopt/pkg/core/shapes"
)

// FreeAxisIndex marks the free axis in the fixed-index vectors returned by
// Broadcaster.MatMulSliceArg: the axis that varies to form a vector.
const FreeAxisIndex = -1

// MatMulSide is the position of an operand in a matrix multiplication.
type MatMulSide int

const (
	// MatMulLeft is the left-hand-side operand: rows are read, so its last axis is free.
	MatMulLeft MatMulSide = iota

	// MatMulRight is the right-hand-side operand: columns are read, so its next-to-last axis is free.
	MatMulRight
)

// Broadcaster maps flat indices of a broadcast result back to the flat indices of one of its
// operands.
//
// Create it with NewBroadcaster.
type Broadcaster struct {
	trueShape, paddedShape, broadcastShape shapes.Shape
}

// NewBroadcaster creates a Broadcaster for an operand with trueShape, broadcast into broadcastShape.
//
// It panics if broadcastShape has a smaller rank than trueShape.
func NewBroadcaster(trueShape, broadcastShape shapes.Shape) *Broadcaster {
	if broadcastShape.Rank() < trueShape.Rank() {
		exceptions.Panicf("NewBroadcaster(%s, %s): broadcast shape has smaller rank than operand",
			trueShape, broadcastShape)
	}
	return &Broadcaster{
		trueShape:      trueShape,
		paddedShape:    BroadcastPad(trueShape, broadcastShape.Rank()),
		broadcastShape: broadcastShape,
	}
}

// paddedIndex returns the multi-index on the padded operand for the flat index of the result:
// axes where the operand has dimension 1 are zeroed.
func (b *Broadcaster) paddedIndex(broadcastFlatIndex int) []int {
	index := b.broadcastShape.ExpandIndex(broadcastFlatIndex)
	for axis, dim := range b.paddedShape.Dimensions {
		if dim == 1 {
			index[axis] = 0
		}
	}
	return index
}

// TrueIndex converts the flat index of the broadcast result to the flat index of the operand.
func (b *Broadcaster) TrueIndex(broadcastFlatIndex int) int {
	return b.paddedShape.FlattenIndex(b.paddedIndex(broadcastFlatIndex))
}

// MatMulSliceArg converts the flat index of a matrix multiplication result to the fixed-index
// vector that selects the row (MatMulLeft) or the column (MatMulRight) of the operand that
// contributes to it.
//
// The returned vector has one entry per axis of the (unpadded) operand, with FreeAxisIndex on the
// axis that varies.
func (b *Broadcaster) MatMulSliceArg(broadcastFlatIndex int, side MatMulSide) []int {
	index := b.paddedIndex(broadcastFlatIndex)
	rank := len(index)
	switch side {
	case MatMulLeft:
		index[rank-1] = FreeAxisIndex
	case MatMulRight:
		index[rank-2] = FreeAxisIndex
	default:
		exceptions.Panicf("Broadcaster.MatMulSliceArg: invalid side %d", side)
	}
	return index[b.paddedShape.Rank()-b.trueShape.Rank():]
}

// ConcatLookupTable maps a position along the concatenation axis to the input it comes from and
// the position within that input.
type ConcatLookupTable struct {
	offsets      []int
	inputAtIndex []int
}

// NewConcatLookupTable creates the lookup table for inputs with the given sizes on the
// concatenation axis.
func NewConcatLookupTable(sizes []int) *ConcatLookupTable {
	t := &ConcatLookupTable{offsets: make([]int, len(sizes))}
	sum := 0
	for input, size := range sizes {
		t.offsets[input] = sum
		sum += size
		for range size {
			t.inputAtIndex = append(t.inputAtIndex, input)
		}
	}
	return t
}

// Size returns the total size of the concatenated axis.
func (t *ConcatLookupTable) Size() int { return len(t.inputAtIndex) }

// Lookup returns the input and the position within it for the given position on the concatenated axis.
// It panics if concatIndex is out of range.
func (t *ConcatLookupTable) Lookup(concatIndex int) (input, offset int) {
	if concatIndex < 0 || concatIndex >= len(t.inputAtIndex) {
		exceptions.Panicf("ConcatLookupTable.Lookup(%d): out of range [0, %d)", concatIndex, len(t.inputAtIndex))
	}
	input = t.inputAtIndex[concatIndex]
	return input, concatIndex - t.offsets[input]
}
