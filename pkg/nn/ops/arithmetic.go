// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package ops

import (
	"github.com/gomlx/tfopt/pkg/core/shapeinference"
	"github.com/gomlx/tfopt/pkg/core/shapes"
)

// binaryArithmetic is the common part of the element-wise binary operations, with broadcasting.
type binaryArithmetic struct {
	base
}

// Left returns the shape of the left operand.
func (op *binaryArithmetic) Left() shapes.Shape { return op.InputShape(0) }

// Right returns the shape of the right operand.
func (op *binaryArithmetic) Right() shapes.Shape { return op.InputShape(1) }

// Options implements Operation: binary operations have no options.
func (op *binaryArithmetic) Options() Options { return Options{} }

func newBinaryArithmetic(name string, left, right shapes.Shape) (binaryArithmetic, error) {
	output, err := shapeinference.BinaryOpOutputShape(left, right)
	if err != nil {
		return binaryArithmetic{}, NewValidator("BinaryArithmeticOperation", name).Wrap(err)
	}
	return binaryArithmetic{base: newBase(name, output, left, right)}, nil
}

// genericBinaryArithmetic validates the serialized form of a binary arithmetic operation.
func genericBinaryArithmetic(name string, inputShapes []shapes.Shape, outputShape shapes.Shape, options Options) (
	binaryArithmetic, error) {
	v := NewValidator("BinaryArithmeticOperation", name)
	if err := v.ExpectInputSizeEquals(inputShapes, 2); err != nil {
		return binaryArithmetic{}, err
	}
	if err := v.ExpectOptionsEmpty(options); err != nil {
		return binaryArithmetic{}, err
	}
	op, err := newBinaryArithmetic(name, inputShapes[0], inputShapes[1])
	if err != nil {
		return binaryArithmetic{}, err
	}
	if err = v.ExpectOutputShapeEquals(outputShape, op.OutputShape()); err != nil {
		return binaryArithmetic{}, err
	}
	return op, nil
}

// Add is the element-wise sum of two broadcast-compatible tensors.
type Add struct{ binaryArithmetic }

// NewAdd returns an Add of the given shapes, or an error if they can't be broadcast together.
func NewAdd(name string, left, right shapes.Shape) (*Add, error) {
	op, err := newBinaryArithmetic(name, left, right)
	if err != nil {
		return nil, err
	}
	return &Add{op}, nil
}

// GenericCreateAdd creates an Add from its serialized form.
func GenericCreateAdd(name string, inputShapes []shapes.Shape, outputShape shapes.Shape, options Options) (*Add, error) {
	op, err := genericBinaryArithmetic(name, inputShapes, outputShape, options)
	if err != nil {
		return nil, err
	}
	return &Add{op}, nil
}

// Type implements Operation.
func (op *Add) Type() OpType { return OpTypeAdd }

// Accept implements Operation.
func (op *Add) Accept(visitor Visitor) { visitor.VisitAdd(op) }

// NodeRecord implements Operation.
func (op *Add) NodeRecord(inputNames []string) NodeRecord {
	return op.record(OpTypeAdd, inputNames, op.Options())
}

// Subtract is the element-wise difference left - right of two broadcast-compatible tensors.
type Subtract struct{ binaryArithmetic }

// NewSubtract returns a Subtract of the given shapes, or an error if they can't be broadcast together.
func NewSubtract(name string, left, right shapes.Shape) (*Subtract, error) {
	op, err := newBinaryArithmetic(name, left, right)
	if err != nil {
		return nil, err
	}
	return &Subtract{op}, nil
}

// GenericCreateSubtract creates a Subtract from its serialized form.
func GenericCreateSubtract(name string, inputShapes []shapes.Shape, outputShape shapes.Shape, options Options) (
	*Subtract, error) {
	op, err := genericBinaryArithmetic(name, inputShapes, outputShape, options)
	if err != nil {
		return nil, err
	}
	return &Subtract{op}, nil
}

// Type implements Operation.
func (op *Subtract) Type() OpType { return OpTypeSubtract }

// Accept implements Operation.
func (op *Subtract) Accept(visitor Visitor) { visitor.VisitSubtract(op) }

// NodeRecord implements Operation.
func (op *Subtract) NodeRecord(inputNames []string) NodeRecord {
	return op.record(OpTypeSubtract, inputNames, op.Options())
}

// Multiply is the element-wise product of two broadcast-compatible tensors.
type Multiply struct{ binaryArithmetic }

// NewMultiply returns a Multiply of the given shapes, or an error if they can't be broadcast together.
func NewMultiply(name string, left, right shapes.Shape) (*Multiply, error) {
	op, err := newBinaryArithmetic(name, left, right)
	if err != nil {
		return nil, err
	}
	return &Multiply{op}, nil
}

// GenericCreateMultiply creates a Multiply from its serialized form.
func GenericCreateMultiply(name string, inputShapes []shapes.Shape, outputShape shapes.Shape, options Options) (
	*Multiply, error) {
	op, err := genericBinaryArithmetic(name, inputShapes, outputShape, options)
	if err != nil {
		return nil, err
	}
	return &Multiply{op}, nil
}

// Type implements Operation.
func (op *Multiply) Type() OpType { return OpTypeMultiply }

// Accept implements Operation.
func (op *Multiply) Accept(visitor Visitor) { visitor.VisitMultiply(op) }

// NodeRecord implements Operation.
func (op *Multiply) NodeRecord(inputNames []string) NodeRecord {
	return op.record(OpTypeMultiply, inputNames, op.Options())
}

// Divide is the element-wise quotient left / right of two broadcast-compatible tensors.
type Divide struct{ binaryArithmetic }

// NewDivide returns a Divide of the given shapes, or an error if they can't be broadcast together.
func NewDivide(name string, left, right shapes.Shape) (*Divide, error) {
	op, err := newBinaryArithmetic(name, left, right)
	if err != nil {
		return nil, err
	}
	return &Divide{op}, nil
}

// GenericCreateDivide creates a Divide from its serialized form.
func GenericCreateDivide(name string, inputShapes []shapes.Shape, outputShape shapes.Shape, options Options) (
	*Divide, error) {
	op, err := genericBinaryArithmetic(name, inputShapes, outputShape, options)
	if err != nil {
		return nil, err
	}
	return &Divide{op}, nil
}

// Type implements Operation.
func (op *Divide) Type() OpType { return OpTypeDivide }

// Accept implements Operation.
func (op *Divide) Accept(visitor Visitor) { visitor.VisitDivide(op) }

// NodeRecord implements Operation.
func (op *Divide) NodeRecord(inputNames []string) NodeRecord {
	return op.record(OpTypeDivide, inputNames, op.Options())
}
