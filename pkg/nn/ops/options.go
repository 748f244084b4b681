// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package ops

import (
	"fmt"
	"slices"
	"strings"

	"github.com/gomlx/tfopt/pkg/support/xslices"
)

// Options is the bag of named attributes of a serialized operation, one map per value kind.
//
// The zero value is an empty bag, ready to use.
type Options struct {
	Doubles      map[string]float64
	Integers     map[string]int
	Strings      map[string]string
	IntegerLists map[string][]int
}

// Size returns the total number of options, of all kinds.
func (o Options) Size() int {
	return len(o.Doubles) + len(o.Integers) + len(o.Strings) + len(o.IntegerLists)
}

// Empty returns whether there are no options at all.
func (o Options) Empty() bool { return o.Size() == 0 }

// SetDouble sets a double option, and returns the options for chaining.
func (o *Options) SetDouble(key string, value float64) *Options {
	if o.Doubles == nil {
		o.Doubles = make(map[string]float64)
	}
	o.Doubles[key] = value
	return o
}

// SetInteger sets an integer option, and returns the options for chaining.
func (o *Options) SetInteger(key string, value int) *Options {
	if o.Integers == nil {
		o.Integers = make(map[string]int)
	}
	o.Integers[key] = value
	return o
}

// SetString sets a string option, and returns the options for chaining.
func (o *Options) SetString(key, value string) *Options {
	if o.Strings == nil {
		o.Strings = make(map[string]string)
	}
	o.Strings[key] = value
	return o
}

// SetIntegerList sets an integer list option (the list is copied), and returns the options for chaining.
func (o *Options) SetIntegerList(key string, values []int) *Options {
	if o.IntegerLists == nil {
		o.IntegerLists = make(map[string][]int)
	}
	o.IntegerLists[key] = slices.Clone(values)
	return o
}

// Equal returns whether both bags hold the same options. Nil and empty maps are equal.
func (o Options) Equal(other Options) bool {
	if o.Size() != other.Size() {
		return false
	}
	for key, v := range o.Doubles {
		if v2, found := other.Doubles[key]; !found || v2 != v {
			return false
		}
	}
	for key, v := range o.Integers {
		if v2, found := other.Integers[key]; !found || v2 != v {
			return false
		}
	}
	for key, v := range o.Strings {
		if v2, found := other.Strings[key]; !found || v2 != v {
			return false
		}
	}
	for key, v := range o.IntegerLists {
		if v2, found := other.IntegerLists[key]; !found || !slices.Equal(v, v2) {
			return false
		}
	}
	return true
}

// String implements fmt.Stringer, listing options sorted by key.
func (o Options) String() string {
	parts := make([]string, 0, o.Size())
	for _, key := range xslices.SortedKeys(o.Doubles) {
		parts = append(parts, fmt.Sprintf("%s=%g", key, o.Doubles[key]))
	}
	for _, key := range xslices.SortedKeys(o.Integers) {
		parts = append(parts, fmt.Sprintf("%s=%d", key, o.Integers[key]))
	}
	for _, key := range xslices.SortedKeys(o.Strings) {
		parts = append(parts, fmt.Sprintf("%s=%q", key, o.Strings[key]))
	}
	for _, key := range xslices.SortedKeys(o.IntegerLists) {
		parts = append(parts, fmt.Sprintf("%s=%v", key, o.IntegerLists[key]))
	}
	return "{" + strings.Join(parts, ", ") + "}"
}
