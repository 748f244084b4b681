// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package ops

import (
	"github.com/gomlx/tfopt/pkg/core/shapeinference"
	"github.com/gomlx/tfopt/pkg/core/shapes"
)

// MatMul is the matrix multiplication of the last two axes of its operands, with the leading axes broadcast.
type MatMul struct {
	base
}

// NewMatMul returns a MatMul of the given shapes. Both must have rank at least 2.
func NewMatMul(name string, left, right shapes.Shape) (*MatMul, error) {
	v := NewValidator("MatmulOperation", name)
	if left.Rank() < 2 || right.Rank() < 2 {
		return nil, v.Errorf("both operands must have rank at least 2, got left: %s and right: %s", left, right)
	}
	output, err := shapeinference.MatMulOutputShape(left, right)
	if err != nil {
		return nil, v.Wrap(err)
	}
	return &MatMul{base: newBase(name, output, left, right)}, nil
}

// GenericCreateMatMul creates a MatMul from its serialized form.
func GenericCreateMatMul(name string, inputShapes []shapes.Shape, outputShape shapes.Shape, options Options) (
	*MatMul, error) {
	v := NewValidator("MatmulOperation", name)
	if err := v.ExpectInputSizeEquals(inputShapes, 2); err != nil {
		return nil, err
	}
	if err := v.ExpectOptionsEmpty(options); err != nil {
		return nil, err
	}
	op, err := NewMatMul(name, inputShapes[0], inputShapes[1])
	if err != nil {
		return nil, err
	}
	if err = v.ExpectOutputShapeEquals(outputShape, op.OutputShape()); err != nil {
		return nil, err
	}
	return op, nil
}

// Left returns the shape of the left operand.
func (op *MatMul) Left() shapes.Shape { return op.InputShape(0) }

// Right returns the shape of the right operand.
func (op *MatMul) Right() shapes.Shape { return op.InputShape(1) }

// Type implements Operation.
func (op *MatMul) Type() OpType { return OpTypeMatMul }

// Options implements Operation: MatMul has no options.
func (op *MatMul) Options() Options { return Options{} }

// Accept implements Operation.
func (op *MatMul) Accept(visitor Visitor) { visitor.VisitMatMul(op) }

// NodeRecord implements Operation.
func (op *MatMul) NodeRecord(inputNames []string) NodeRecord {
	return op.record(OpTypeMatMul, inputNames, op.Options())
}

// EmbeddingLookup combines rows of params weighted by ids: ids has shape [..., num_classes] and params has
// shape [num_classes, ...embedding]. For one-hot ids this is a plain lookup.
type EmbeddingLookup struct {
	base
}

// NewEmbeddingLookup returns an EmbeddingLookup of the params and ids shapes.
func NewEmbeddingLookup(name string, params, ids shapes.Shape) (*EmbeddingLookup, error) {
	output, err := shapeinference.EmbeddingLookupOutputShape(params, ids)
	if err != nil {
		return nil, NewValidator("EmbeddingLookupOperation", name).Wrap(err)
	}
	return &EmbeddingLookup{base: newBase(name, output, params, ids)}, nil
}

// GenericCreateEmbeddingLookup creates an EmbeddingLookup from its serialized form: inputs are (params, ids).
func GenericCreateEmbeddingLookup(name string, inputShapes []shapes.Shape, outputShape shapes.Shape,
	options Options) (*EmbeddingLookup, error) {
	v := NewValidator("EmbeddingLookupOperation", name)
	if err := v.ExpectInputSizeEquals(inputShapes, 2); err != nil {
		return nil, err
	}
	if err := v.ExpectOptionsEmpty(options); err != nil {
		return nil, err
	}
	op, err := NewEmbeddingLookup(name, inputShapes[0], inputShapes[1])
	if err != nil {
		return nil, err
	}
	if err = v.ExpectOutputShapeEquals(outputShape, op.OutputShape()); err != nil {
		return nil, err
	}
	return op, nil
}

// Params returns the shape of the embedding table.
func (op *EmbeddingLookup) Params() shapes.Shape { return op.InputShape(0) }

// Ids returns the shape of the (weighted) class ids.
func (op *EmbeddingLookup) Ids() shapes.Shape { return op.InputShape(1) }

// Type implements Operation.
func (op *EmbeddingLookup) Type() OpType { return OpTypeEmbeddingLookup }

// Options implements Operation: EmbeddingLookup has no options.
func (op *EmbeddingLookup) Options() Options { return Options{} }

// Accept implements Operation.
func (op *EmbeddingLookup) Accept(visitor Visitor) { visitor.VisitEmbeddingLookup(op) }

// NodeRecord implements Operation.
func (op *EmbeddingLookup) NodeRecord(inputNames []string) NodeRecord {
	return op.record(OpTypeEmbeddingLookup, inputNames, op.Options())
}
