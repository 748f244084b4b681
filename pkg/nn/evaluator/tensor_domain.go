// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package evaluator

import (
	"github.com/gomlx/exceptions"
	"github.com/gomlx/tfopt/pkg/core/shapes"
	"github.com/gomlx/tfopt/pkg/core/tensors"
	"github.com/gomlx/tfopt/pkg/nn/ops"
)

// TensorDomain evaluates operations on tensors of T, with the arithmetic of T given by a tensors.Arithmetic.
//
// With tensors.FloatArithmetic it computes the network on plain numbers; with bounds.Arithmetic it propagates
// intervals through the network (interval arithmetic), giving bounds for every node.
//
// Constants are converted from float64 with Arithmetic.FromFloat, and variables are looked up by name in the
// map given to NewTensorDomain.
type TensorDomain[T any] struct {
	ar        tensors.Arithmetic[T]
	variables map[string]*tensors.Tensor[T]
}

var _ Domain[*tensors.Tensor[float64], *tensors.Tensor[float64]] = (*TensorDomain[float64])(nil)

// NewTensorDomain returns a TensorDomain using the given arithmetic. Variables maps the names of the
// ops.Variable nodes to their values, it can be nil if no variables are evaluated.
func NewTensorDomain[T any](ar tensors.Arithmetic[T], variables map[string]*tensors.Tensor[T]) *TensorDomain[T] {
	return &TensorDomain[T]{ar: ar, variables: variables}
}

// NewTensorEvaluator is a shortcut for New(NewTensorDomain(ar, variables)).
func NewTensorEvaluator[T any](ar tensors.Arithmetic[T], variables map[string]*tensors.Tensor[T]) *Evaluator[
	*tensors.Tensor[T], *tensors.Tensor[T]] {
	return New[*tensors.Tensor[T], *tensors.Tensor[T]](NewTensorDomain(ar, variables))
}

// Arithmetic returns the arithmetic used by the domain.
func (d *TensorDomain[T]) Arithmetic() tensors.Arithmetic[T] { return d.ar }

// Shape implements Domain.
func (d *TensorDomain[T]) Shape(input *tensors.Tensor[T]) shapes.Shape { return input.Shape() }

// EvaluateAdd implements Domain.
func (d *TensorDomain[T]) EvaluateAdd(_ *ops.Add, left, right *tensors.Tensor[T]) *tensors.Tensor[T] {
	return tensors.Add(d.ar, left, right)
}

// EvaluateSubtract implements Domain.
func (d *TensorDomain[T]) EvaluateSubtract(_ *ops.Subtract, left, right *tensors.Tensor[T]) *tensors.Tensor[T] {
	return tensors.Sub(d.ar, left, right)
}

// EvaluateMultiply implements Domain.
func (d *TensorDomain[T]) EvaluateMultiply(_ *ops.Multiply, left, right *tensors.Tensor[T]) *tensors.Tensor[T] {
	return tensors.Mul(d.ar, left, right)
}

// EvaluateDivide implements Domain.
func (d *TensorDomain[T]) EvaluateDivide(_ *ops.Divide, left, right *tensors.Tensor[T]) *tensors.Tensor[T] {
	return tensors.Div(d.ar, left, right)
}

// EvaluateClippedRelu implements Domain.
func (d *TensorDomain[T]) EvaluateClippedRelu(op *ops.ClippedRelu, input *tensors.Tensor[T]) *tensors.Tensor[T] {
	return tensors.ClippedRelu(d.ar, input, op.Cap())
}

// EvaluateConcat implements Domain.
func (d *TensorDomain[T]) EvaluateConcat(op *ops.Concat, inputs []*tensors.Tensor[T]) *tensors.Tensor[T] {
	return tensors.Concat(inputs, op.Axis())
}

// EvaluateConstant implements Domain.
func (d *TensorDomain[T]) EvaluateConstant(op *ops.Constant) *tensors.Tensor[T] {
	return tensors.Map(op.Value(), d.ar.FromFloat)
}

// mustConvolve panics on errors of a convolution whose shapes were already validated by the operation.
func mustConvolve[T any](op ops.Operation, output *tensors.Tensor[T], err error) *tensors.Tensor[T] {
	if err != nil {
		exceptions.Panicf("evaluating %s %q: %v", op.Type(), op.Name(), err)
	}
	return output
}

// EvaluateConv1d implements Domain.
func (d *TensorDomain[T]) EvaluateConv1d(op *ops.Conv1d, input, filter *tensors.Tensor[T]) *tensors.Tensor[T] {
	output, err := tensors.Conv1d(d.ar, input, filter, op.Stride(), op.Padding())
	return mustConvolve(op, output, err)
}

// EvaluateConv2d implements Domain.
func (d *TensorDomain[T]) EvaluateConv2d(op *ops.Conv2d, input, filter *tensors.Tensor[T]) *tensors.Tensor[T] {
	output, err := tensors.Conv2d(d.ar, input, filter, op.Strides(), op.Padding())
	return mustConvolve(op, output, err)
}

// EvaluateEmbeddingLookup implements Domain.
func (d *TensorDomain[T]) EvaluateEmbeddingLookup(_ *ops.EmbeddingLookup, params, ids *tensors.Tensor[T]) *tensors.Tensor[T] {
	return tensors.EmbeddingLookup(d.ar, params, ids)
}

// EvaluateExpandDims implements Domain.
func (d *TensorDomain[T]) EvaluateExpandDims(op *ops.ExpandDims, input *tensors.Tensor[T]) *tensors.Tensor[T] {
	return input.ExpandDims(op.Axis())
}

// EvaluateMatMul implements Domain.
func (d *TensorDomain[T]) EvaluateMatMul(_ *ops.MatMul, left, right *tensors.Tensor[T]) *tensors.Tensor[T] {
	return tensors.MatMul(d.ar, left, right)
}

// EvaluateMaxPool implements Domain.
func (d *TensorDomain[T]) EvaluateMaxPool(op *ops.MaxPool, input *tensors.Tensor[T]) *tensors.Tensor[T] {
	return tensors.MaxPool(d.ar, input, op.WindowSize(), op.Strides(), op.Padding())
}

// EvaluateReduceMax implements Domain.
func (d *TensorDomain[T]) EvaluateReduceMax(op *ops.ReduceMax, input *tensors.Tensor[T]) *tensors.Tensor[T] {
	return tensors.ReduceMax(d.ar, input, op.Axes()...)
}

// EvaluateReduceMin implements Domain.
func (d *TensorDomain[T]) EvaluateReduceMin(op *ops.ReduceMin, input *tensors.Tensor[T]) *tensors.Tensor[T] {
	return tensors.ReduceMin(d.ar, input, op.Axes()...)
}

// EvaluateReduceMean implements Domain.
func (d *TensorDomain[T]) EvaluateReduceMean(op *ops.ReduceMean, input *tensors.Tensor[T]) *tensors.Tensor[T] {
	return tensors.ReduceMean(d.ar, input, op.Axes()...)
}

// EvaluateReduceSum implements Domain.
func (d *TensorDomain[T]) EvaluateReduceSum(op *ops.ReduceSum, input *tensors.Tensor[T]) *tensors.Tensor[T] {
	return tensors.ReduceSum(d.ar, input, op.Axes()...)
}

// EvaluateRelu implements Domain.
func (d *TensorDomain[T]) EvaluateRelu(_ *ops.Relu, input *tensors.Tensor[T]) *tensors.Tensor[T] {
	return tensors.Relu(d.ar, input)
}

// EvaluateReshape implements Domain.
func (d *TensorDomain[T]) EvaluateReshape(op *ops.Reshape, input *tensors.Tensor[T]) *tensors.Tensor[T] {
	return input.Reshape(op.OutputShape())
}

// EvaluateSlice implements Domain.
func (d *TensorDomain[T]) EvaluateSlice(op *ops.Slice, input *tensors.Tensor[T]) *tensors.Tensor[T] {
	return input.Slice(op.Begin(), op.Sizes())
}

// EvaluateSqueeze implements Domain.
func (d *TensorDomain[T]) EvaluateSqueeze(op *ops.Squeeze, input *tensors.Tensor[T]) *tensors.Tensor[T] {
	return input.Squeeze(op.Axes()...)
}

// EvaluateVariable implements Domain. It panics if the variable has no value, or a value of the wrong shape.
func (d *TensorDomain[T]) EvaluateVariable(op *ops.Variable) *tensors.Tensor[T] {
	value, found := d.variables[op.Name()]
	if !found {
		exceptions.Panicf("no value given for variable %q", op.Name())
	}
	if !value.Shape().Equal(op.OutputShape()) {
		exceptions.Panicf("variable %q has shape %s, but the value given has shape %s", op.Name(), op.OutputShape(),
			value.Shape())
	}
	return value
}
