// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

// Package xslices holds generic slice and map helpers missing from the slices and maps packages.
package xslices

import (
	"cmp"
	"slices"
)

// Copy returns a shallow copy of slice, or nil if it is empty.
func Copy[T any](slice []T) []T {
	if len(slice) == 0 {
		return nil
	}
	return slices.Clone(slice)
}

// Keys returns the keys of m, in no particular order.
func Keys[K comparable, V any](m map[K]V) []K {
	keys := make([]K, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	return keys
}

// SortedKeys returns the keys of m in increasing order.
func SortedKeys[K cmp.Ordered, V any](m map[K]V) []K {
	keys := Keys(m)
	slices.Sort(keys)
	return keys
}

// Map returns fn applied to each element of in.
func Map[In, Out any](in []In, fn func(e In) Out) (out []Out) {
	out = make([]Out, len(in))
	for ii, e := range in {
		out[ii] = fn(e)
	}
	return
}
