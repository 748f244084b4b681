// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

// Package ops defines the operations (nodes) of a neural network graph, with their shapes and attributes.
//
// Each kind of operation is a struct with two constructors:
//
//   - New<Kind>: the typed constructor, taking the input shapes and the attributes, and inferring the
//     output shape. It returns an error (never panics) if the inputs are not valid.
//   - GenericCreate<Kind>: used when loading a serialized graph. It takes the input shapes, the declared
//     output shape and the Options bag, validates the number of inputs and options, extracts the
//     attributes by name, calls the typed constructor and finally checks the declared output shape.
//
// MakeOperation dispatches to the GenericCreate of an OpType, and Operation.NodeRecord serializes an
// operation back, so that loading a record reproduces an equal operation.
//
// Operations are immutable once created and can be shared among goroutines.
package ops

import (
	"slices"

	"github.com/gomlx/exceptions"
	"github.com/gomlx/gopjrt/dtypes"
	"github.com/gomlx/tfopt/pkg/core/shapes"
)

// Operation is a node of a neural network graph.
type Operation interface {
	// Name of the node, unique within a graph.
	Name() string

	// Type returns the tag used to serialize the operation.
	Type() OpType

	// InputShapes returns the shapes of the inputs, in order. The returned slice must not be changed.
	InputShapes() []shapes.Shape

	// OutputShape returns the shape of the output.
	OutputShape() shapes.Shape

	// Options returns the attributes of the operation, as they are serialized.
	Options() Options

	// Accept calls the visitor method for the kind of the operation.
	Accept(visitor Visitor)

	// NodeRecord serializes the operation, given the names of the nodes that produce its inputs.
	// It panics if the number of input names doesn't match the number of inputs.
	NodeRecord(inputNames []string) NodeRecord
}

// base holds the fields common to all operations.
type base struct {
	name        string
	inputShapes []shapes.Shape
	outputShape shapes.Shape
}

func newBase(name string, outputShape shapes.Shape, inputShapes ...shapes.Shape) base {
	return base{name: name, inputShapes: slices.Clone(inputShapes), outputShape: outputShape}
}

// Name implements Operation.
func (b *base) Name() string { return b.name }

// InputShapes implements Operation.
func (b *base) InputShapes() []shapes.Shape { return b.inputShapes }

// InputShape returns the shape of the i-th input.
func (b *base) InputShape(i int) shapes.Shape { return b.inputShapes[i] }

// NumInputs returns the number of inputs.
func (b *base) NumInputs() int { return len(b.inputShapes) }

// OutputShape implements Operation.
func (b *base) OutputShape() shapes.Shape { return b.outputShape }

// record builds the NodeRecord shared by all kinds.
func (b *base) record(opType OpType, inputNames []string, options Options) NodeRecord {
	if len(inputNames) != len(b.inputShapes) {
		exceptions.Panicf("NodeRecord of %q (%s): expected %d input names, got %d",
			b.name, opType, len(b.inputShapes), len(inputNames))
	}
	return NodeRecord{
		Name:             b.name,
		OpType:           opType,
		OutputDimensions: slices.Clone(b.outputShape.Dimensions),
		InputNames:       slices.Clone(inputNames),
		Options:          options,
		OutputType:       dtypes.Float32,
	}
}

// Equal returns whether two operations have the same kind, name, shapes and attributes.
// Constants also compare their values.
func Equal(op1, op2 Operation) bool {
	if op1.Type() != op2.Type() || op1.Name() != op2.Name() || !op1.OutputShape().Equal(op2.OutputShape()) {
		return false
	}
	if !slices.EqualFunc(op1.InputShapes(), op2.InputShapes(), shapes.Shape.Equal) {
		return false
	}
	if !op1.Options().Equal(op2.Options()) {
		return false
	}
	if c1, ok := op1.(*Constant); ok {
		return c1.Value().Equal(op2.(*Constant).Value())
	}
	return true
}

// Visitor has one method per kind of operation: Operation.Accept calls the one matching its kind.
//
// Adding a new kind of operation requires adding a method here, which makes every visitor fail to compile
// until it handles the new kind.
type Visitor interface {
	VisitAdd(op *Add)
	VisitSubtract(op *Subtract)
	VisitMultiply(op *Multiply)
	VisitDivide(op *Divide)
	VisitClippedRelu(op *ClippedRelu)
	VisitConcat(op *Concat)
	VisitConstant(op *Constant)
	VisitConv1d(op *Conv1d)
	VisitConv2d(op *Conv2d)
	VisitEmbeddingLookup(op *EmbeddingLookup)
	VisitExpandDims(op *ExpandDims)
	VisitMatMul(op *MatMul)
	VisitMaxPool(op *MaxPool)
	VisitReduceMax(op *ReduceMax)
	VisitReduceMin(op *ReduceMin)
	VisitReduceMean(op *ReduceMean)
	VisitReduceSum(op *ReduceSum)
	VisitRelu(op *Relu)
	VisitReshape(op *Reshape)
	VisitSlice(op *Slice)
	VisitSqueeze(op *Squeeze)
	VisitVariable(op *Variable)
}
