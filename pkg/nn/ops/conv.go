// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package ops

import (
	"github.com/gomlx/tfopt/pkg/core/shapeinference"
	"github.com/gomlx/tfopt/pkg/core/shapes"
	"github.com/gomlx/tfopt/pkg/core/window"
	"github.com/gomlx/tfopt/pkg/nn/neurons"
)

// Option keys of the windowed operations.
const (
	OptionStride       = "stride"
	OptionStrideRow    = "stride_row"
	OptionStrideCol    = "stride_col"
	OptionPadding      = "padding"
	OptionWindowHeight = "ksize_height"
	OptionWindowWidth  = "ksize_width"
)

// paddingOption parses the required padding option.
func paddingOption(v Validator, options Options) (window.PaddingType, error) {
	name, err := v.StringOption(options, OptionPadding)
	if err != nil {
		return 0, err
	}
	padding, err := window.ParsePaddingType(name)
	if err != nil {
		return 0, v.Errorf("Invalid padding string %q", name)
	}
	return padding, nil
}

// Conv1d is a 1D convolution: the input is [batch, width, in_channels] and the filter is
// [filter_width, in_channels, out_channels].
type Conv1d struct {
	base
	stride  int
	padding window.PaddingType
}

// NewConv1d returns a Conv1d of the input and filter shapes.
func NewConv1d(name string, input, filter shapes.Shape, stride int, padding window.PaddingType) (*Conv1d, error) {
	output, err := shapeinference.Conv1dOutputShape(input, filter, stride, padding)
	if err != nil {
		return nil, NewValidator("Conv1dOperation", name).Wrap(err)
	}
	return &Conv1d{base: newBase(name, output, input, filter), stride: stride, padding: padding}, nil
}

// GenericCreateConv1d creates a Conv1d from its serialized form.
func GenericCreateConv1d(name string, inputShapes []shapes.Shape, outputShape shapes.Shape, options Options) (
	*Conv1d, error) {
	v := NewValidator("Conv1dOperation", name)
	if err := v.ExpectInputSizeEquals(inputShapes, 2); err != nil {
		return nil, err
	}
	if err := v.ExpectOptionsSizeAtMost(options, 2); err != nil {
		return nil, err
	}
	stride, err := v.IntegerOption(options, OptionStride)
	if err != nil {
		return nil, err
	}
	padding, err := paddingOption(v, options)
	if err != nil {
		return nil, err
	}
	op, err := NewConv1d(name, inputShapes[0], inputShapes[1], stride, padding)
	if err != nil {
		return nil, err
	}
	if err = v.ExpectOutputShapeEquals(outputShape, op.OutputShape()); err != nil {
		return nil, err
	}
	return op, nil
}

// Stride of the window.
func (op *Conv1d) Stride() int { return op.stride }

// Padding used.
func (op *Conv1d) Padding() window.PaddingType { return op.padding }

// Type implements Operation.
func (op *Conv1d) Type() OpType { return OpTypeConv1d }

// Options implements Operation.
func (op *Conv1d) Options() (options Options) {
	options.SetInteger(OptionStride, op.stride)
	options.SetString(OptionPadding, op.padding.String())
	return
}

// Accept implements Operation.
func (op *Conv1d) Accept(visitor Visitor) { visitor.VisitConv1d(op) }

// NodeRecord implements Operation.
func (op *Conv1d) NodeRecord(inputNames []string) NodeRecord {
	return op.record(OpTypeConv1d, inputNames, op.Options())
}

// Conv2d is a 2D convolution: the input is [batch, height, width, in_channels] and the filter is
// [filter_height, filter_width, in_channels, out_channels].
type Conv2d struct {
	base
	strides window.Position2D
	padding window.PaddingType
}

// NewConv2d returns a Conv2d of the input and filter shapes.
func NewConv2d(name string, input, filter shapes.Shape, strides window.Position2D, padding window.PaddingType) (
	*Conv2d, error) {
	output, err := shapeinference.Conv2dOutputShape(input, filter, strides, padding)
	if err != nil {
		return nil, NewValidator("Conv2dOperation", name).Wrap(err)
	}
	return &Conv2d{base: newBase(name, output, input, filter), strides: strides, padding: padding}, nil
}

// GenericCreateConv2d creates a Conv2d from its serialized form.
func GenericCreateConv2d(name string, inputShapes []shapes.Shape, outputShape shapes.Shape, options Options) (
	*Conv2d, error) {
	v := NewValidator("Conv2dOperation", name)
	if err := v.ExpectInputSizeEquals(inputShapes, 2); err != nil {
		return nil, err
	}
	if err := v.ExpectOptionsSizeAtMost(options, 3); err != nil {
		return nil, err
	}
	var strides window.Position2D
	var err error
	if strides.Row, err = v.IntegerOption(options, OptionStrideRow); err != nil {
		return nil, err
	}
	if strides.Col, err = v.IntegerOption(options, OptionStrideCol); err != nil {
		return nil, err
	}
	padding, err := paddingOption(v, options)
	if err != nil {
		return nil, err
	}
	op, err := NewConv2d(name, inputShapes[0], inputShapes[1], strides, padding)
	if err != nil {
		return nil, err
	}
	if err = v.ExpectOutputShapeEquals(outputShape, op.OutputShape()); err != nil {
		return nil, err
	}
	return op, nil
}

// Strides of the window.
func (op *Conv2d) Strides() window.Position2D { return op.strides }

// Padding used.
func (op *Conv2d) Padding() window.PaddingType { return op.padding }

// Type implements Operation.
func (op *Conv2d) Type() OpType { return OpTypeConv2d }

// Options implements Operation.
func (op *Conv2d) Options() (options Options) {
	options.SetInteger(OptionStrideRow, op.strides.Row)
	options.SetInteger(OptionStrideCol, op.strides.Col)
	options.SetString(OptionPadding, op.padding.String())
	return
}

// Accept implements Operation.
func (op *Conv2d) Accept(visitor Visitor) { visitor.VisitConv2d(op) }

// NodeRecord implements Operation.
func (op *Conv2d) NodeRecord(inputNames []string) NodeRecord {
	return op.record(OpTypeConv2d, inputNames, op.Options())
}

// MaxPoolSerializedFormulation is the formulation of a serialized MaxPool without the formulation option.
// It differs from neurons.DefaultMaximum, which NewMaxPool callers usually pass.
const MaxPoolSerializedFormulation = neurons.MaximumOptimalBigM

// MaxPool takes the maximum over 2D windows of a [batch, height, width, channels] input, per channel.
type MaxPool struct {
	base
	windowSize, strides window.Position2D
	padding             window.PaddingType
	formulation         neurons.MaximumImplementation
}

// NewMaxPool returns a MaxPool of the input shape.
func NewMaxPool(name string, input shapes.Shape, windowSize, strides window.Position2D, padding window.PaddingType,
	formulation neurons.MaximumImplementation) (*MaxPool, error) {
	output, err := shapeinference.Pool2dOutputShape(input, windowSize, strides, padding)
	if err != nil {
		return nil, NewValidator("MaxpoolOperation", name).Wrap(err)
	}
	return &MaxPool{base: newBase(name, output, input), windowSize: windowSize, strides: strides, padding: padding,
		formulation: formulation}, nil
}

// GenericCreateMaxPool creates a MaxPool from its serialized form.
func GenericCreateMaxPool(name string, inputShapes []shapes.Shape, outputShape shapes.Shape, options Options) (
	*MaxPool, error) {
	v := NewValidator("MaxpoolOperation", name)
	if err := v.ExpectInputSizeEquals(inputShapes, 1); err != nil {
		return nil, err
	}
	if err := v.ExpectOptionsSizeAtMost(options, 6); err != nil {
		return nil, err
	}
	var windowSize, strides window.Position2D
	var err error
	for _, field := range []struct {
		key   string
		value *int
	}{
		{OptionStrideRow, &strides.Row},
		{OptionStrideCol, &strides.Col},
		{OptionWindowHeight, &windowSize.Row},
		{OptionWindowWidth, &windowSize.Col},
	} {
		if *field.value, err = v.IntegerOption(options, field.key); err != nil {
			return nil, err
		}
	}
	formulation, err := genericMaximumFormulation(v, options, MaxPoolSerializedFormulation)
	if err != nil {
		return nil, err
	}
	padding, err := paddingOption(v, options)
	if err != nil {
		return nil, err
	}
	op, err := NewMaxPool(name, inputShapes[0], windowSize, strides, padding, formulation)
	if err != nil {
		return nil, err
	}
	if err = v.ExpectOutputShapeEquals(outputShape, op.OutputShape()); err != nil {
		return nil, err
	}
	return op, nil
}

// WindowSize is the (height, width) of the pooling window.
func (op *MaxPool) WindowSize() window.Position2D { return op.windowSize }

// Strides of the window.
func (op *MaxPool) Strides() window.Position2D { return op.strides }

// Padding used.
func (op *MaxPool) Padding() window.PaddingType { return op.padding }

// Formulation used to model the maximum.
func (op *MaxPool) Formulation() neurons.MaximumImplementation { return op.formulation }

// Type implements Operation.
func (op *MaxPool) Type() OpType { return OpTypeMaxPool }

// Options implements Operation. The formulation is omitted when it is MaxPoolSerializedFormulation.
func (op *MaxPool) Options() (options Options) {
	options.SetInteger(OptionWindowHeight, op.windowSize.Row)
	options.SetInteger(OptionWindowWidth, op.windowSize.Col)
	options.SetInteger(OptionStrideRow, op.strides.Row)
	options.SetInteger(OptionStrideCol, op.strides.Col)
	options.SetString(OptionPadding, op.padding.String())
	if op.formulation != MaxPoolSerializedFormulation {
		options.SetString(OptionFormulation, op.formulation.String())
	}
	return
}

// Accept implements Operation.
func (op *MaxPool) Accept(visitor Visitor) { visitor.VisitMaxPool(op) }

// NodeRecord implements Operation.
func (op *MaxPool) NodeRecord(inputNames []string) NodeRecord {
	return op.record(OpTypeMaxPool, inputNames, op.Options())
}
