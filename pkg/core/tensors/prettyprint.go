// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package tensors

import (
	"bytes"
	"fmt"
	"reflect"
	"strings"

	"github.com/dustin/go-humanize"
)

// summaryMaxItems is the number of items per axis above which Summary elides the middle ones.
const summaryMaxItems = 6

// Summary returns a multi-line summary of the Tensor's content.
// Inspired by numpy output: axes with more than 6 entries only show the first and last 3.
//
// Floating point values are printed with the given precision, other values with "%v".
func (t *Tensor[T]) Summary(precision int) string {
	var buf bytes.Buffer
	w := func(format string, args ...any) { _, _ = fmt.Fprintf(&buf, format, args...) }

	// Go type equivalent, and memory used.
	var zero T
	for _, dim := range t.shape.Dimensions {
		w("[%d]", dim)
	}
	w("%s (%s)", reflect.TypeOf(&zero).Elem(), humanize.Bytes(uint64(t.Memory())))
	if t.shape.IsZeroSize() {
		return buf.String()
	}

	wValue := func(v T) {
		switch x := any(v).(type) {
		case float64:
			w("%.*g", precision, x)
		case float32:
			w("%.*g", precision, x)
		default:
			w("%v", x)
		}
	}

	if t.IsScalar() {
		w("(")
		wValue(t.flat[0])
		w(")")
		return buf.String()
	}

	strides := t.shape.Strides()
	var printAxis func(axis, offset, indent int)
	printAxis = func(axis, offset, indent int) {
		dim := t.shape.Dimensions[axis]
		lastAxis := axis == t.Rank()-1
		separator := ", "
		if !lastAxis {
			separator = ",\n" + strings.Repeat(" ", indent+1)
		}
		w("{")
		for ii := range dim {
			if dim > summaryMaxItems && ii == 3 {
				w("...%s", separator)
			}
			if dim > summaryMaxItems && ii >= 3 && ii < dim-3 {
				continue
			}
			if lastAxis {
				wValue(t.flat[offset+ii])
			} else {
				printAxis(axis+1, offset+ii*strides[axis], indent+1)
			}
			if ii < dim-1 {
				w("%s", separator)
			}
		}
		w("}")
	}
	if t.Rank() > 1 {
		w("\n")
	}
	w(" ")
	printAxis(0, 0, 1)
	return buf.String()
}
