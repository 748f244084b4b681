// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package tensors

import (
	"github.com/gomlx/exceptions"
	"github.com/gomlx/tfopt/pkg/core/shapeinference"
)

// BinaryOp applies fn elementwise to lhs and rhs, with broadcasting (see shapeinference.BinaryOpOutputShape).
//
// The operands can have different element types. It panics if the shapes are not compatible: operations
// validate their shapes when they are created.
func BinaryOp[L, R, O any](lhs *Tensor[L], rhs *Tensor[R], fn func(l L, r R) O) *Tensor[O] {
	outputShape, err := shapeinference.BinaryOpOutputShape(lhs.shape, rhs.shape)
	if err != nil {
		exceptions.Panicf("tensors.BinaryOp: %v", err)
	}
	result := New[O](outputShape)
	if lhs.shape.Equal(rhs.shape) {
		for ii := range result.flat {
			result.flat[ii] = fn(lhs.flat[ii], rhs.flat[ii])
		}
		return result
	}
	lhsBroadcaster := shapeinference.NewBroadcaster(lhs.shape, outputShape)
	rhsBroadcaster := shapeinference.NewBroadcaster(rhs.shape, outputShape)
	for ii := range result.flat {
		result.flat[ii] = fn(lhs.flat[lhsBroadcaster.TrueIndex(ii)], rhs.flat[rhsBroadcaster.TrueIndex(ii)])
	}
	return result
}

// Add returns lhs + rhs elementwise, with broadcasting.
func Add[T any](ar Arithmetic[T], lhs, rhs *Tensor[T]) *Tensor[T] { return BinaryOp(lhs, rhs, ar.Add) }

// Sub returns lhs - rhs elementwise, with broadcasting.
func Sub[T any](ar Arithmetic[T], lhs, rhs *Tensor[T]) *Tensor[T] { return BinaryOp(lhs, rhs, ar.Sub) }

// Mul returns lhs * rhs elementwise, with broadcasting.
func Mul[T any](ar Arithmetic[T], lhs, rhs *Tensor[T]) *Tensor[T] { return BinaryOp(lhs, rhs, ar.Mul) }

// Div returns lhs / rhs elementwise, with broadcasting.
func Div[T any](ar Arithmetic[T], lhs, rhs *Tensor[T]) *Tensor[T] { return BinaryOp(lhs, rhs, ar.Div) }

// Maximum returns max(lhs, rhs) elementwise, with broadcasting.
func Maximum[T any](ar Arithmetic[T], lhs, rhs *Tensor[T]) *Tensor[T] {
	return BinaryOp(lhs, rhs, ar.Max)
}

// Minimum returns min(lhs, rhs) elementwise, with broadcasting.
func Minimum[T any](ar Arithmetic[T], lhs, rhs *Tensor[T]) *Tensor[T] {
	return BinaryOp(lhs, rhs, ar.Min)
}

// Negate returns -x elementwise.
func Negate[T any](ar Arithmetic[T], x *Tensor[T]) *Tensor[T] { return Map(x, ar.Neg) }

// Relu returns max(x, 0) elementwise.
func Relu[T any](ar Arithmetic[T], x *Tensor[T]) *Tensor[T] {
	zero := ar.Zero()
	return Map(x, func(v T) T { return ar.Max(v, zero) })
}

// ClippedRelu returns min(max(x, 0), cap) elementwise.
func ClippedRelu[T any](ar Arithmetic[T], x *Tensor[T], cap float64) *Tensor[T] {
	zero, capValue := ar.Zero(), ar.FromFloat(cap)
	return Map(x, func(v T) T { return ar.Min(ar.Max(v, zero), capValue) })
}

// dot returns the inner product of two slices of the same length.
func dot[T any](ar Arithmetic[T], x, y []T) T {
	sum := ar.Zero()
	for ii := range x {
		sum = ar.Add(sum, ar.Mul(x[ii], y[ii]))
	}
	return sum
}

// MatMul returns the matrix multiplication of lhs and rhs, multiplying the last two axes as matrices and
// broadcasting the leading ones (see shapeinference.MatMulOutputShape).
//
// It panics if the shapes are not compatible, or if either operand has rank < 2.
func MatMul[T any](ar Arithmetic[T], lhs, rhs *Tensor[T]) *Tensor[T] {
	outputShape, err := shapeinference.MatMulOutputShape(lhs.shape, rhs.shape)
	if err != nil {
		exceptions.Panicf("tensors.MatMul: %v", err)
	}
	result := New[T](outputShape)
	lhsBroadcaster := shapeinference.NewBroadcaster(lhs.shape, outputShape)
	rhsBroadcaster := shapeinference.NewBroadcaster(rhs.shape, outputShape)
	for ii := range result.flat {
		row := lhs.VectorSlice(lhsBroadcaster.MatMulSliceArg(ii, shapeinference.MatMulLeft))
		col := rhs.VectorSlice(rhsBroadcaster.MatMulSliceArg(ii, shapeinference.MatMulRight))
		result.flat[ii] = dot(ar, row, col)
	}
	return result
}
