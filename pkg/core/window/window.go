// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

// Package window implements the sliding-window geometry shared by 2D (and 1D) convolutions and
// pooling: output sizes, SAME/VALID padding and the input rectangle seen by each output position.
package window

import (
	"fmt"

	"github.com/gomlx/exceptions"
	"github.com/pkg/errors"
)

// PaddingType selects how windows are placed at the borders of the input.
type PaddingType int

//go:generate go tool enumer -type=PaddingType -trimprefix=Padding -transform=upper -output=gen_paddingtype_enumer.go window.go

const (
	// PaddingSame pads the input so that the output has ceil(input/stride) positions.
	PaddingSame PaddingType = iota

	// PaddingValid uses no padding: only windows fully inside the input are used.
	PaddingValid
)

// ParsePaddingType returns the padding named exactly "SAME" or "VALID".
func ParsePaddingType(name string) (PaddingType, error) {
	padding, err := PaddingTypeString(name)
	if err != nil || padding.String() != name {
		return 0, errors.Errorf("unknown padding type %q", name)
	}
	return padding, nil
}

// Position2D is a (row, col) pair, that is (y, x).
type Position2D struct {
	Row, Col int
}

// String implements fmt.Stringer.
func (p Position2D) String() string {
	return fmt.Sprintf("(%d, %d)", p.Row, p.Col)
}

// Rectangle is a window on the input: its Start position (possibly negative, in the padding)
// and its Size (height, width).
type Rectangle struct {
	Start, Size Position2D
}

// Contains returns whether the position is inside the rectangle.
func (r Rectangle) Contains(p Position2D) bool {
	return p.Row >= r.Start.Row && p.Row < r.Start.Row+r.Size.Row &&
		p.Col >= r.Start.Col && p.Col < r.Start.Col+r.Size.Col
}

// Positions returns all positions of the rectangle, in row-major order.
func (r Rectangle) Positions() []Position2D {
	positions := make([]Position2D, 0, r.Size.Row*r.Size.Col)
	for row := r.Start.Row; row < r.Start.Row+r.Size.Row; row++ {
		for col := r.Start.Col; col < r.Start.Col+r.Size.Col; col++ {
			positions = append(positions, Position2D{Row: row, Col: col})
		}
	}
	return positions
}

// Extractor2D maps each position of the output of a 2D windowed operation (convolution or pooling)
// to the rectangle of the input it reads.
//
// Create it with NewExtractor2D.
type Extractor2D struct {
	inputSize, outputSize, windowSize, strides Position2D
	padding                                    PaddingType

	paddingTop, paddingBottom, paddingLeft, paddingRight int
}

// NewExtractor2D validates the window configuration and computes the padding and output size.
//
// Input sizes, window sizes and strides must be positive. For PaddingValid the window must fit
// in the input.
func NewExtractor2D(inputSize, windowSize, strides Position2D, padding PaddingType) (*Extractor2D, error) {
	if err := checkPositive(inputSize, windowSize, strides); err != nil {
		return nil, err
	}
	e := &Extractor2D{
		inputSize:  inputSize,
		windowSize: windowSize,
		strides:    strides,
		padding:    padding,
	}
	switch padding {
	case PaddingSame:
		padHeight := samePaddingSize(inputSize.Row, strides.Row, windowSize.Row)
		padWidth := samePaddingSize(inputSize.Col, strides.Col, windowSize.Col)
		e.paddingTop = padHeight / 2
		e.paddingLeft = padWidth / 2
		e.paddingBottom = padHeight - e.paddingTop
		e.paddingRight = padWidth - e.paddingLeft
		e.outputSize.Row = divRoundUp(inputSize.Row, strides.Row)
		e.outputSize.Col = divRoundUp(inputSize.Col, strides.Col)
	case PaddingValid:
		e.outputSize.Row = divRoundUp(inputSize.Row-windowSize.Row+1, strides.Row)
		e.outputSize.Col = divRoundUp(inputSize.Col-windowSize.Col+1, strides.Col)
	default:
		return nil, errors.Errorf("unknown padding type %s", padding)
	}
	if e.outputSize.Row <= 0 || e.outputSize.Col <= 0 {
		return nil, errors.New("Output dimension is nonpositive; window does not fit in input")
	}
	return e, nil
}

func checkPositive(inputSize, windowSize, strides Position2D) error {
	checks := []struct {
		name  string
		value int
	}{
		{"input height", inputSize.Row},
		{"input width", inputSize.Col},
		{"window height", windowSize.Row},
		{"window width", windowSize.Col},
		{"stride row", strides.Row},
		{"stride col", strides.Col},
	}
	for _, check := range checks {
		if check.value <= 0 {
			return errors.Errorf("Expected %s > 0, found: %d", check.name, check.value)
		}
	}
	return nil
}

// divRoundUp returns ceil(num/denom) for a positive denom. Non-positive numerators return 0 or
// less, which callers treat as "doesn't fit".
func divRoundUp(num, denom int) int {
	if num <= 0 {
		return num / denom
	}
	if num%denom != 0 {
		return num/denom + 1
	}
	return num / denom
}

func samePaddingSize(inputSize, stride, windowSize int) int {
	if inputSize%stride == 0 {
		return max(windowSize-stride, 0)
	}
	return max(windowSize-inputSize%stride, 0)
}

// OutputSize returns the number of output positions (rows, cols).
func (e *Extractor2D) OutputSize() Position2D { return e.outputSize }

// InputSize returns the input size the extractor was created with.
func (e *Extractor2D) InputSize() Position2D { return e.inputSize }

// WindowSize returns the window size the extractor was created with.
func (e *Extractor2D) WindowSize() Position2D { return e.windowSize }

// Strides returns the strides the extractor was created with.
func (e *Extractor2D) Strides() Position2D { return e.strides }

// Padding returns the padding type.
func (e *Extractor2D) Padding() PaddingType { return e.padding }

// PaddingSizes returns the padding added to the top, bottom, left and right of the input.
func (e *Extractor2D) PaddingSizes() (top, bottom, left, right int) {
	return e.paddingTop, e.paddingBottom, e.paddingLeft, e.paddingRight
}

// Window returns the input rectangle read for the given output position.
//
// The rectangle may include positions outside the input (negative or beyond the input size):
// those are padding, see IsPadding, and the caller is responsible for treating them as a padding
// value (usually zero).
//
// It panics if the output position is out of range.
func (e *Extractor2D) Window(outputPosition Position2D) Rectangle {
	if outputPosition.Row < 0 || outputPosition.Row >= e.outputSize.Row ||
		outputPosition.Col < 0 || outputPosition.Col >= e.outputSize.Col {
		exceptions.Panicf("Extractor2D.Window(%s): output position out of range for output size %s",
			outputPosition, e.outputSize)
	}
	return Rectangle{
		Start: Position2D{
			Row: outputPosition.Row*e.strides.Row - e.paddingTop,
			Col: outputPosition.Col*e.strides.Col - e.paddingLeft,
		},
		Size: e.windowSize,
	}
}

// IsPadding returns whether the input position falls outside the input, in the padding.
func (e *Extractor2D) IsPadding(position Position2D) bool {
	return position.Row < 0 || position.Row >= e.inputSize.Row ||
		position.Col < 0 || position.Col >= e.inputSize.Col
}
