// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package tensors

import (
	"math"

	"golang.org/x/exp/constraints"
)

// Arithmetic provides the numeric operations on values of type T used by the tensor math functions.
//
// Implementations are usually empty structs: FloatArithmetic for plain numbers, bounds.Arithmetic for
// intervals.
type Arithmetic[T any] interface {
	// Zero returns the additive identity. It is also used as the padding value of convolutions and pooling.
	Zero() T

	// FromFloat converts a constant (e.g.: the cap of a clipped relu, or a count to divide by) to T.
	FromFloat(v float64) T

	Add(x, y T) T
	Sub(x, y T) T
	Mul(x, y T) T
	Div(x, y T) T
	Neg(x T) T
	Max(x, y T) T
	Min(x, y T) T
}

// FloatArithmetic implements Arithmetic for float types.
type FloatArithmetic[T constraints.Float] struct{}

// Zero implements Arithmetic.
func (FloatArithmetic[T]) Zero() T { return 0 }

// FromFloat implements Arithmetic.
func (FloatArithmetic[T]) FromFloat(v float64) T { return T(v) }

// Add implements Arithmetic.
func (FloatArithmetic[T]) Add(x, y T) T { return x + y }

// Sub implements Arithmetic.
func (FloatArithmetic[T]) Sub(x, y T) T { return x - y }

// Mul implements Arithmetic.
func (FloatArithmetic[T]) Mul(x, y T) T { return x * y }

// Div implements Arithmetic.
func (FloatArithmetic[T]) Div(x, y T) T { return x / y }

// Neg implements Arithmetic.
func (FloatArithmetic[T]) Neg(x T) T { return -x }

// Max implements Arithmetic.
func (FloatArithmetic[T]) Max(x, y T) T { return max(x, y) }

// Min implements Arithmetic.
func (FloatArithmetic[T]) Min(x, y T) T { return min(x, y) }

// HasInfiniteOrNaN returns whether any of the values of the tensor is infinite or NaN.
func HasInfiniteOrNaN[T constraints.Float](t *Tensor[T]) bool {
	for _, v := range t.flat {
		f := float64(v)
		if math.IsInf(f, 0) || math.IsNaN(f) {
			return true
		}
	}
	return false
}
