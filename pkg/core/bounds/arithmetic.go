// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package bounds

// Arithmetic implements the element arithmetic used by generic tensor functions, for Bounds.
//
// It satisfies tensors.Arithmetic[Bounds].
type Arithmetic struct{}

// Zero returns [0, 0].
func (Arithmetic) Zero() Bounds { return Point(0) }

// FromFloat returns [v, v].
func (Arithmetic) FromFloat(v float64) Bounds { return Point(v) }

func (Arithmetic) Add(x, y Bounds) Bounds { return x.Add(y) }
func (Arithmetic) Sub(x, y Bounds) Bounds { return x.Sub(y) }
func (Arithmetic) Mul(x, y Bounds) Bounds { return x.Mul(y) }
func (Arithmetic) Div(x, y Bounds) Bounds { return x.Div(y) }
func (Arithmetic) Neg(x Bounds) Bounds    { return x.Neg() }
func (Arithmetic) Max(x, y Bounds) Bounds { return Max(x, y) }
func (Arithmetic) Min(x, y Bounds) Bounds { return Min(x, y) }
