// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

// Package bounds implements Bounds, a closed interval [Lower, Upper] of real numbers, with
// interval arithmetic.
//
// Bounds is used as a numeric domain for tensors: evaluating an operation graph over Bounds
// tensors propagates sound ranges for every node.
//
// Notice [-inf, +inf] is used both for "unbounded" and to represent the empty interval (e.g.: the
// result of dividing by [0, 0]). The two cases are not distinguishable.
package bounds

import (
	"math"
	"slices"
	"strconv"
)

// Bounds is a closed interval [Lower, Upper]. By convention Lower <= Upper, but this is not
// enforced: Intersect, for instance, may return an inverted (infeasible) interval.
type Bounds struct {
	Lower, Upper float64
}

// New returns the interval [lower, upper].
func New(lower, upper float64) Bounds {
	return Bounds{Lower: lower, Upper: upper}
}

// Point returns the degenerate interval [v, v].
func Point(v float64) Bounds {
	return Bounds{Lower: v, Upper: v}
}

// Unbounded returns [-inf, +inf].
func Unbounded() Bounds {
	return Bounds{Lower: math.Inf(-1), Upper: math.Inf(1)}
}

// IsUnbounded returns whether b is [-inf, +inf].
func (b Bounds) IsUnbounded() bool {
	return math.IsInf(b.Lower, -1) && math.IsInf(b.Upper, 1)
}

// IsPoint returns whether Lower == Upper.
func (b Bounds) IsPoint() bool { return b.Lower == b.Upper }

// Equal returns whether both end points are equal.
func (b Bounds) Equal(other Bounds) bool {
	return b.Lower == other.Lower && b.Upper == other.Upper
}

// Near returns whether both end points are within tolerance of the other's. Infinite end points
// must match exactly.
func (b Bounds) Near(other Bounds, tolerance float64) bool {
	near := func(x, y float64) bool {
		if math.IsInf(x, 0) || math.IsInf(y, 0) {
			return x == y
		}
		return math.Abs(x-y) <= tolerance
	}
	return near(b.Lower, other.Lower) && near(b.Upper, other.Upper)
}

// Contains returns whether v is in [Lower, Upper].
func (b Bounds) Contains(v float64) bool {
	return b.Lower <= v && v <= b.Upper
}

// String implements fmt.Stringer, in the format "[lower,upper]".
func (b Bounds) String() string {
	return "[" + formatFloat(b.Lower) + "," + formatFloat(b.Upper) + "]"
}

func formatFloat(v float64) string {
	switch {
	case math.IsInf(v, 1):
		return "inf"
	case math.IsInf(v, -1):
		return "-inf"
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// Add returns [a+c, b+d].
func (b Bounds) Add(other Bounds) Bounds {
	return Bounds{Lower: b.Lower + other.Lower, Upper: b.Upper + other.Upper}
}

// Sub returns [a-d, b-c].
func (b Bounds) Sub(other Bounds) Bounds {
	return Bounds{Lower: b.Lower - other.Upper, Upper: b.Upper - other.Lower}
}

// Mul returns [min(ac,ad,bc,bd), max(ac,ad,bc,bd)].
//
// As usual in interval arithmetic, 0 * inf is taken to be 0.
func (b Bounds) Mul(other Bounds) Bounds {
	return minMaxOf(
		mulEndPoints(b.Lower, other.Lower), mulEndPoints(b.Lower, other.Upper),
		mulEndPoints(b.Upper, other.Lower), mulEndPoints(b.Upper, other.Upper))
}

func mulEndPoints(x, y float64) float64 {
	if x == 0 || y == 0 {
		return 0
	}
	return x * y
}

// Div divides two intervals. In most cases:
//
//	[a,b] / [c,d] = [min(a/c, a/d, b/c, b/d), max(a/c, a/d, b/c, b/d)]
//
// Special cases, in this order of precedence:
//
//  1. [c,d] == [0,0]: the empty set, represented by [-inf, +inf].
//  2. [a,b] == [0,0]: [0,0].
//  3. c < 0 < d: [-inf, +inf].
//
// A divisor end point equal to zero is replaced by +0 (lower) or -0 (upper) so the quotients get
// the right infinite sign. Quotients 0/0 are ignored.
func (b Bounds) Div(other Bounds) Bounds {
	c, d := other.Lower, other.Upper
	if c == 0 {
		// Also turns a -0 into +0.
		c = 0
	}
	if d == 0 {
		d = math.Copysign(0, -1)
	}
	switch {
	case c == 0 && d == 0:
		return Unbounded()
	case b.Lower == 0 && b.Upper == 0:
		return Point(0)
	case c < 0 && d > 0:
		return Unbounded()
	}
	quotients := make([]float64, 0, 4)
	for _, q := range []float64{b.Lower / c, b.Lower / d, b.Upper / c, b.Upper / d} {
		if !math.IsNaN(q) {
			quotients = append(quotients, q)
		}
	}
	if len(quotients) == 0 {
		return Unbounded()
	}
	return Bounds{Lower: slices.Min(quotients), Upper: slices.Max(quotients)}
}

// Neg returns [-ub, -lb].
func (b Bounds) Neg() Bounds {
	return Bounds{Lower: -b.Upper, Upper: -b.Lower}
}

// AddScalar is a shortcut for b.Add(Point(v)).
func (b Bounds) AddScalar(v float64) Bounds { return b.Add(Point(v)) }

// SubScalar is a shortcut for b.Sub(Point(v)).
func (b Bounds) SubScalar(v float64) Bounds { return b.Sub(Point(v)) }

// MulScalar is a shortcut for b.Mul(Point(v)).
func (b Bounds) MulScalar(v float64) Bounds { return b.Mul(Point(v)) }

// DivScalar is a shortcut for b.Div(Point(v)).
func (b Bounds) DivScalar(v float64) Bounds { return b.Div(Point(v)) }

// Max returns the componentwise maximum: [max(a,c), max(b,d)].
func Max(b1, b2 Bounds) Bounds {
	return Bounds{Lower: max(b1.Lower, b2.Lower), Upper: max(b1.Upper, b2.Upper)}
}

// Min returns the componentwise minimum: [min(a,c), min(b,d)].
func Min(b1, b2 Bounds) Bounds {
	return Bounds{Lower: min(b1.Lower, b2.Lower), Upper: min(b1.Upper, b2.Upper)}
}

// MaxOf returns the componentwise maximum of all the given bounds. For an empty list it returns
// Unbounded().
func MaxOf(bounds ...Bounds) Bounds {
	if len(bounds) == 0 {
		return Unbounded()
	}
	result := Point(math.Inf(-1))
	for _, b := range bounds {
		result = Max(result, b)
	}
	return result
}

// Intersect returns [max(a,c), min(b,d)].
//
// If the intervals don't overlap the result is inverted (Lower > Upper). There is no separate
// representation for the empty interval, so it is returned as is.
func Intersect(b1, b2 Bounds) Bounds {
	return Bounds{Lower: max(b1.Lower, b2.Lower), Upper: min(b1.Upper, b2.Upper)}
}

func minMaxOf(values ...float64) Bounds {
	return Bounds{Lower: slices.Min(values), Upper: slices.Max(values)}
}
