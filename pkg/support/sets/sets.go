// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

// Package sets implements Set, a map[T]struct{} with set methods.
package sets

import (
	"cmp"
	"slices"
)

// Set of elements of type T. The zero value is a nil set: it can be read but not inserted into.
type Set[T comparable] map[T]struct{}

// Make returns an empty Set, with room for size elements if given.
func Make[T comparable](size ...int) Set[T] {
	if len(size) > 0 {
		return make(Set[T], size[0])
	}
	return make(Set[T])
}

// MakeWith returns a Set with the given elements.
func MakeWith[T comparable](elements ...T) Set[T] {
	s := Make[T](len(elements))
	s.Insert(elements...)
	return s
}

// Has returns whether element is in the set.
func (s Set[T]) Has(element T) bool {
	_, found := s[element]
	return found
}

// Insert elements into the set.
func (s Set[T]) Insert(elements ...T) {
	for _, element := range elements {
		s[element] = struct{}{}
	}
}

// Sorted returns the elements of the set in increasing order.
func Sorted[T cmp.Ordered](s Set[T]) []T {
	elements := make([]T, 0, len(s))
	for element := range s {
		elements = append(elements, element)
	}
	slices.Sort(elements)
	return elements
}
