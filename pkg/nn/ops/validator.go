// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package ops

import (
	"fmt"

	"github.com/gomlx/tfopt/pkg/core/shapes"
	"github.com/pkg/errors"
)

// Validator builds the errors of a GenericCreate: every message is prefixed with the node name and its kind.
//
// It holds no state other than the prefix, so checks can be called in any order.
type Validator struct {
	kindName, nodeName string
}

// NewValidator returns a Validator for the node nodeName of the given kind (e.g. "ReluOperation").
func NewValidator(kindName, nodeName string) Validator {
	return Validator{kindName: kindName, nodeName: nodeName}
}

// Prefix returns the text prepended to every error message.
func (v Validator) Prefix() string {
	return fmt.Sprintf("Failed to validate operation %s of type %s: ", v.nodeName, v.kindName)
}

// Errorf returns an error with the formatted message prefixed.
func (v Validator) Errorf(format string, args ...any) error {
	return errors.New(v.Prefix() + fmt.Sprintf(format, args...))
}

// Wrap prefixes an error returned by a constructor or shape inference. It returns nil if err is nil.
func (v Validator) Wrap(err error) error {
	if err == nil {
		return nil
	}
	return errors.WithMessagef(err, "Failed to validate operation %s of type %s", v.nodeName, v.kindName)
}

// DoubleOption returns the required double option key.
func (v Validator) DoubleOption(options Options, key string) (value float64, err error) {
	value, found := options.Doubles[key]
	if !found {
		err = v.Errorf("Required double option not found: %s", key)
	}
	return
}

// IntegerOption returns the required integer option key.
func (v Validator) IntegerOption(options Options, key string) (value int, err error) {
	value, found := options.Integers[key]
	if !found {
		err = v.Errorf("Required integer option not found: %s", key)
	}
	return
}

// StringOption returns the required string option key.
func (v Validator) StringOption(options Options, key string) (value string, err error) {
	value, found := options.Strings[key]
	if !found {
		err = v.Errorf("Required string option not found: %s", key)
	}
	return
}

// IntegerListOption returns the required integer list option key.
func (v Validator) IntegerListOption(options Options, key string) (value []int, err error) {
	value, found := options.IntegerLists[key]
	if !found {
		err = v.Errorf("Required integer list option not found: %s", key)
	}
	return
}

// ExpectOptionsSizeAtMost checks the number of options doesn't exceed maxSize.
func (v Validator) ExpectOptionsSizeAtMost(options Options, maxSize int) error {
	if options.Size() > maxSize {
		return v.Errorf("Expected number of options at most %d, found: %d", maxSize, options.Size())
	}
	return nil
}

// ExpectOptionsEmpty checks there are no options.
func (v Validator) ExpectOptionsEmpty(options Options) error {
	return v.ExpectOptionsSizeAtMost(options, 0)
}

// ExpectInputSizeAtMost checks there are at most maxSize inputs.
func (v Validator) ExpectInputSizeAtMost(inputShapes []shapes.Shape, maxSize int) error {
	if len(inputShapes) > maxSize {
		return v.Errorf("Expected number of inputs at most %d, found: %d", maxSize, len(inputShapes))
	}
	return nil
}

// ExpectInputSizeAtLeast checks there are at least minSize inputs.
func (v Validator) ExpectInputSizeAtLeast(inputShapes []shapes.Shape, minSize int) error {
	if len(inputShapes) < minSize {
		return v.Errorf("Expected number of inputs at least %d, found: %d", minSize, len(inputShapes))
	}
	return nil
}

// ExpectInputSizeEquals checks there are exactly size inputs.
func (v Validator) ExpectInputSizeEquals(inputShapes []shapes.Shape, size int) error {
	if len(inputShapes) != size {
		return v.Errorf("Expected number of inputs equals to %d, found: %d", size, len(inputShapes))
	}
	return nil
}

// ExpectOutputShapeEquals checks the declared output shape matches the inferred one.
func (v Validator) ExpectOutputShapeEquals(declared, inferred shapes.Shape) error {
	if !declared.Equal(inferred) {
		return v.Errorf("Expected output shape: %s, found: %s", inferred, declared)
	}
	return nil
}
