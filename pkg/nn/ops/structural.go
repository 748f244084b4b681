// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package ops

import (
	"slices"

	"github.com/gomlx/tfopt/pkg/core/shapeinference"
	"github.com/gomlx/tfopt/pkg/core/shapes"
)

// Option keys of the operations that only move data around.
const (
	OptionAxis  = "axis"
	OptionAxes  = "axes"
	OptionBegin = "begin"
	OptionSize  = "size"
)

// Concat concatenates its inputs along one axis. All other axes must match.
type Concat struct {
	base
	axis int
}

// NewConcat returns a Concat of the given input shapes along axis.
func NewConcat(name string, inputs []shapes.Shape, axis int) (*Concat, error) {
	output, err := shapeinference.ConcatOutputShape(inputs, axis)
	if err != nil {
		return nil, NewValidator("ConcatOperation", name).Wrap(err)
	}
	return &Concat{base: newBase(name, output, inputs...), axis: axis}, nil
}

// GenericCreateConcat creates a Concat from its serialized form.
func GenericCreateConcat(name string, inputShapes []shapes.Shape, outputShape shapes.Shape, options Options) (
	*Concat, error) {
	v := NewValidator("ConcatOperation", name)
	if err := v.ExpectInputSizeAtLeast(inputShapes, 1); err != nil {
		return nil, err
	}
	if err := v.ExpectOptionsSizeAtMost(options, 1); err != nil {
		return nil, err
	}
	axis, err := v.IntegerOption(options, OptionAxis)
	if err != nil {
		return nil, err
	}
	op, err := NewConcat(name, inputShapes, axis)
	if err != nil {
		return nil, err
	}
	if err = v.ExpectOutputShapeEquals(outputShape, op.OutputShape()); err != nil {
		return nil, err
	}
	return op, nil
}

// Axis along which the inputs are concatenated.
func (op *Concat) Axis() int { return op.axis }

// Type implements Operation.
func (op *Concat) Type() OpType { return OpTypeConcat }

// Options implements Operation.
func (op *Concat) Options() (options Options) {
	options.SetInteger(OptionAxis, op.axis)
	return
}

// Accept implements Operation.
func (op *Concat) Accept(visitor Visitor) { visitor.VisitConcat(op) }

// NodeRecord implements Operation.
func (op *Concat) NodeRecord(inputNames []string) NodeRecord {
	return op.record(OpTypeConcat, inputNames, op.Options())
}

// ExpandDims inserts an axis of dimension 1 at the given position.
type ExpandDims struct {
	base
	axis int
}

// NewExpandDims returns an ExpandDims that inserts a new axis at position axis, in [0, rank].
func NewExpandDims(name string, input shapes.Shape, axis int) (*ExpandDims, error) {
	output, err := shapeinference.ExpandDimsOutputShape(input, axis)
	if err != nil {
		return nil, NewValidator("ExpandDimsOperation", name).Wrap(err)
	}
	return &ExpandDims{base: newBase(name, output, input), axis: axis}, nil
}

// GenericCreateExpandDims creates an ExpandDims from its serialized form.
func GenericCreateExpandDims(name string, inputShapes []shapes.Shape, outputShape shapes.Shape, options Options) (
	*ExpandDims, error) {
	v := NewValidator("ExpandDimsOperation", name)
	if err := v.ExpectInputSizeEquals(inputShapes, 1); err != nil {
		return nil, err
	}
	axis, err := v.IntegerOption(options, OptionAxis)
	if err != nil {
		return nil, err
	}
	if err = v.ExpectOptionsSizeAtMost(options, 1); err != nil {
		return nil, err
	}
	op, err := NewExpandDims(name, inputShapes[0], axis)
	if err != nil {
		return nil, err
	}
	if err = v.ExpectOutputShapeEquals(outputShape, op.OutputShape()); err != nil {
		return nil, err
	}
	return op, nil
}

// Axis is the position of the new axis in the output.
func (op *ExpandDims) Axis() int { return op.axis }

// Type implements Operation.
func (op *ExpandDims) Type() OpType { return OpTypeExpandDims }

// Options implements Operation.
func (op *ExpandDims) Options() (options Options) {
	options.SetInteger(OptionAxis, op.axis)
	return
}

// Accept implements Operation.
func (op *ExpandDims) Accept(visitor Visitor) { visitor.VisitExpandDims(op) }

// NodeRecord implements Operation.
func (op *ExpandDims) NodeRecord(inputNames []string) NodeRecord {
	return op.record(OpTypeExpandDims, inputNames, op.Options())
}

// Reshape changes the shape of its input, keeping the row-major order of the elements.
type Reshape struct {
	base
}

// NewReshape returns a Reshape from input to output, which must have the same number of elements.
func NewReshape(name string, input, output shapes.Shape) (*Reshape, error) {
	if input.Size() != output.Size() {
		return nil, NewValidator("ReshapeOperation", name).Errorf("input_shape: %s has %d elements, "+
			"but output_shape: %s has %d elements, must be equal to reshape.", input, input.Size(), output, output.Size())
	}
	return &Reshape{base: newBase(name, output, input)}, nil
}

// GenericCreateReshape creates a Reshape from its serialized form: the declared output shape is the target.
func GenericCreateReshape(name string, inputShapes []shapes.Shape, outputShape shapes.Shape, options Options) (
	*Reshape, error) {
	v := NewValidator("ReshapeOperation", name)
	if err := v.ExpectInputSizeEquals(inputShapes, 1); err != nil {
		return nil, err
	}
	if err := v.ExpectOptionsEmpty(options); err != nil {
		return nil, err
	}
	return NewReshape(name, inputShapes[0], outputShape)
}

// Type implements Operation.
func (op *Reshape) Type() OpType { return OpTypeReshape }

// Options implements Operation: Reshape has no options, the target is its output shape.
func (op *Reshape) Options() Options { return Options{} }

// Accept implements Operation.
func (op *Reshape) Accept(visitor Visitor) { visitor.VisitReshape(op) }

// NodeRecord implements Operation.
func (op *Reshape) NodeRecord(inputNames []string) NodeRecord {
	return op.record(OpTypeReshape, inputNames, op.Options())
}

// Slice extracts the block starting at begin with the given sizes (one per axis).
type Slice struct {
	base
	begin, sizes []int
}

// NewSlice returns a Slice of input. The block [begin, begin+sizes) must be inside the input.
func NewSlice(name string, input shapes.Shape, begin, sizes []int) (*Slice, error) {
	output, err := shapeinference.SliceOutputShape(input, begin, sizes)
	if err != nil {
		return nil, NewValidator("SliceOperation", name).Wrap(err)
	}
	return &Slice{base: newBase(name, output, input), begin: slices.Clone(begin), sizes: slices.Clone(sizes)}, nil
}

// GenericCreateSlice creates a Slice from its serialized form.
func GenericCreateSlice(name string, inputShapes []shapes.Shape, outputShape shapes.Shape, options Options) (
	*Slice, error) {
	v := NewValidator("SliceOperation", name)
	if err := v.ExpectInputSizeEquals(inputShapes, 1); err != nil {
		return nil, err
	}
	if err := v.ExpectOptionsSizeAtMost(options, 2); err != nil {
		return nil, err
	}
	begin, err := v.IntegerListOption(options, OptionBegin)
	if err != nil {
		return nil, err
	}
	sizes, err := v.IntegerListOption(options, OptionSize)
	if err != nil {
		return nil, err
	}
	op, err := NewSlice(name, inputShapes[0], begin, sizes)
	if err != nil {
		return nil, err
	}
	if err = v.ExpectOutputShapeEquals(outputShape, op.OutputShape()); err != nil {
		return nil, err
	}
	return op, nil
}

// Begin returns the start of the block, per axis. The returned slice must not be changed.
func (op *Slice) Begin() []int { return op.begin }

// Sizes returns the size of the block, per axis. The returned slice must not be changed.
func (op *Slice) Sizes() []int { return op.sizes }

// Type implements Operation.
func (op *Slice) Type() OpType { return OpTypeSlice }

// Options implements Operation.
func (op *Slice) Options() (options Options) {
	options.SetIntegerList(OptionBegin, op.begin)
	options.SetIntegerList(OptionSize, op.sizes)
	return
}

// Accept implements Operation.
func (op *Slice) Accept(visitor Visitor) { visitor.VisitSlice(op) }

// NodeRecord implements Operation.
func (op *Slice) NodeRecord(inputNames []string) NodeRecord {
	return op.record(OpTypeSlice, inputNames, op.Options())
}

// Squeeze removes axes of dimension 1: the given ones, or all of them if no axes are given.
type Squeeze struct {
	base
	axes []int
}

// NewSqueeze returns a Squeeze of input. Each of the axes given must have dimension 1.
func NewSqueeze(name string, input shapes.Shape, axes []int) (*Squeeze, error) {
	output, err := shapeinference.SqueezeOutputShape(input, axes)
	if err != nil {
		return nil, NewValidator("SqueezeOperation", name).Wrap(err)
	}
	return &Squeeze{base: newBase(name, output, input), axes: slices.Clone(axes)}, nil
}

// GenericCreateSqueeze creates a Squeeze from its serialized form. The axes option is optional.
func GenericCreateSqueeze(name string, inputShapes []shapes.Shape, outputShape shapes.Shape, options Options) (
	*Squeeze, error) {
	v := NewValidator("SqueezeOperation", name)
	if err := v.ExpectInputSizeEquals(inputShapes, 1); err != nil {
		return nil, err
	}
	if err := v.ExpectOptionsSizeAtMost(options, 1); err != nil {
		return nil, err
	}
	op, err := NewSqueeze(name, inputShapes[0], options.IntegerLists[OptionAxes])
	if err != nil {
		return nil, err
	}
	if err = v.ExpectOutputShapeEquals(outputShape, op.OutputShape()); err != nil {
		return nil, err
	}
	return op, nil
}

// Axes returns the axes squeezed, empty if all axes of dimension 1 are squeezed.
// The returned slice must not be changed.
func (op *Squeeze) Axes() []int { return op.axes }

// Type implements Operation.
func (op *Squeeze) Type() OpType { return OpTypeSqueeze }

// Options implements Operation. The axes are omitted when empty.
func (op *Squeeze) Options() (options Options) {
	if len(op.axes) > 0 {
		options.SetIntegerList(OptionAxes, op.axes)
	}
	return
}

// Accept implements Operation.
func (op *Squeeze) Accept(visitor Visitor) { visitor.VisitSqueeze(op) }

// NodeRecord implements Operation.
func (op *Squeeze) NodeRecord(inputNames []string) NodeRecord {
	return op.record(OpTypeSqueeze, inputNames, op.Options())
}
