// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package evaluator

import (
	"github.com/gomlx/exceptions"
	"github.com/gomlx/tfopt/pkg/core/shapes"
	"github.com/gomlx/tfopt/pkg/core/tensors"
	"github.com/gomlx/tfopt/pkg/nn/ops"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"
)

// Result of a FallibleTensorDomain evaluation: either a Value or an Err.
type Result[T any] struct {
	Value *tensors.Tensor[T]
	Err   error
}

// Unpack returns the value and the error of the result.
func (r Result[T]) Unpack() (*tensors.Tensor[T], error) { return r.Value, r.Err }

// Option configures a FallibleTensorDomain.
type Option func(*fallibleConfig)

type fallibleConfig struct {
	rejectNonlinear bool
}

// RejectNonlinear makes the domain return an error for the nonlinear neurons: Relu, ClippedRelu, MaxPool,
// ReduceMax and ReduceMin. Use it for domains that can only represent piecewise-linear-free computations,
// e.g. when checking that a sub-graph is affine.
func RejectNonlinear() Option {
	return func(c *fallibleConfig) { c.rejectNonlinear = true }
}

// FallibleTensorDomain evaluates operations on tensors like TensorDomain, but returns errors (in a Result)
// instead of panicking: failures of the underlying computation, missing variables, and, with RejectNonlinear,
// nonlinear operations.
type FallibleTensorDomain[T any] struct {
	tensorDomain *TensorDomain[T]
	config       fallibleConfig
}

var _ Domain[Result[float64], *tensors.Tensor[float64]] = (*FallibleTensorDomain[float64])(nil)

// NewFallibleTensorDomain returns a FallibleTensorDomain using the given arithmetic and variable values.
func NewFallibleTensorDomain[T any](ar tensors.Arithmetic[T], variables map[string]*tensors.Tensor[T],
	options ...Option) *FallibleTensorDomain[T] {
	d := &FallibleTensorDomain[T]{tensorDomain: NewTensorDomain(ar, variables)}
	for _, option := range options {
		option(&d.config)
	}
	return d
}

// NewFallibleTensorEvaluator is a shortcut for New(NewFallibleTensorDomain(ar, variables, options...)).
func NewFallibleTensorEvaluator[T any](ar tensors.Arithmetic[T], variables map[string]*tensors.Tensor[T],
	options ...Option) *Evaluator[Result[T], *tensors.Tensor[T]] {
	return New[Result[T], *tensors.Tensor[T]](NewFallibleTensorDomain(ar, variables, options...))
}

// try runs fn, converting a panic into the error of the Result.
func try[T any](op ops.Operation, fn func() *tensors.Tensor[T]) (result Result[T]) {
	err := exceptions.TryCatch[error](func() { result.Value = fn() })
	if err != nil {
		klog.V(1).Infof("evaluation of %s %q failed: %v", op.Type(), op.Name(), err)
		result = Result[T]{Err: errors.WithMessagef(err, "failed to evaluate %s %q", op.Type(), op.Name())}
	}
	return
}

// nonlinear returns an error if nonlinear operations are rejected, otherwise it evaluates fn.
func (d *FallibleTensorDomain[T]) nonlinear(op ops.Operation, fn func() *tensors.Tensor[T]) Result[T] {
	if d.config.rejectNonlinear {
		return Result[T]{Err: errors.Errorf("cannot evaluate %s %q: nonlinear operations are not supported",
			op.Type(), op.Name())}
	}
	return try(op, fn)
}

// Shape implements Domain.
func (d *FallibleTensorDomain[T]) Shape(input *tensors.Tensor[T]) shapes.Shape { return input.Shape() }

// EvaluateAdd implements Domain.
func (d *FallibleTensorDomain[T]) EvaluateAdd(op *ops.Add, left, right *tensors.Tensor[T]) Result[T] {
	return try(op, func() *tensors.Tensor[T] { return d.tensorDomain.EvaluateAdd(op, left, right) })
}

// EvaluateSubtract implements Domain.
func (d *FallibleTensorDomain[T]) EvaluateSubtract(op *ops.Subtract, left, right *tensors.Tensor[T]) Result[T] {
	return try(op, func() *tensors.Tensor[T] { return d.tensorDomain.EvaluateSubtract(op, left, right) })
}

// EvaluateMultiply implements Domain.
func (d *FallibleTensorDomain[T]) EvaluateMultiply(op *ops.Multiply, left, right *tensors.Tensor[T]) Result[T] {
	return try(op, func() *tensors.Tensor[T] { return d.tensorDomain.EvaluateMultiply(op, left, right) })
}

// EvaluateDivide implements Domain.
func (d *FallibleTensorDomain[T]) EvaluateDivide(op *ops.Divide, left, right *tensors.Tensor[T]) Result[T] {
	return try(op, func() *tensors.Tensor[T] { return d.tensorDomain.EvaluateDivide(op, left, right) })
}

// EvaluateClippedRelu implements Domain.
func (d *FallibleTensorDomain[T]) EvaluateClippedRelu(op *ops.ClippedRelu, input *tensors.Tensor[T]) Result[T] {
	return d.nonlinear(op, func() *tensors.Tensor[T] { return d.tensorDomain.EvaluateClippedRelu(op, input) })
}

// EvaluateConcat implements Domain.
func (d *FallibleTensorDomain[T]) EvaluateConcat(op *ops.Concat, inputs []*tensors.Tensor[T]) Result[T] {
	return try(op, func() *tensors.Tensor[T] { return d.tensorDomain.EvaluateConcat(op, inputs) })
}

// EvaluateConstant implements Domain.
func (d *FallibleTensorDomain[T]) EvaluateConstant(op *ops.Constant) Result[T] {
	return try(op, func() *tensors.Tensor[T] { return d.tensorDomain.EvaluateConstant(op) })
}

// EvaluateConv1d implements Domain.
func (d *FallibleTensorDomain[T]) EvaluateConv1d(op *ops.Conv1d, input, filter *tensors.Tensor[T]) Result[T] {
	return try(op, func() *tensors.Tensor[T] { return d.tensorDomain.EvaluateConv1d(op, input, filter) })
}

// EvaluateConv2d implements Domain.
func (d *FallibleTensorDomain[T]) EvaluateConv2d(op *ops.Conv2d, input, filter *tensors.Tensor[T]) Result[T] {
	return try(op, func() *tensors.Tensor[T] { return d.tensorDomain.EvaluateConv2d(op, input, filter) })
}

// EvaluateEmbeddingLookup implements Domain.
func (d *FallibleTensorDomain[T]) EvaluateEmbeddingLookup(op *ops.EmbeddingLookup, params, ids *tensors.Tensor[T]) Result[T] {
	return try(op, func() *tensors.Tensor[T] { return d.tensorDomain.EvaluateEmbeddingLookup(op, params, ids) })
}

// EvaluateExpandDims implements Domain.
func (d *FallibleTensorDomain[T]) EvaluateExpandDims(op *ops.ExpandDims, input *tensors.Tensor[T]) Result[T] {
	return try(op, func() *tensors.Tensor[T] { return d.tensorDomain.EvaluateExpandDims(op, input) })
}

// EvaluateMatMul implements Domain.
func (d *FallibleTensorDomain[T]) EvaluateMatMul(op *ops.MatMul, left, right *tensors.Tensor[T]) Result[T] {
	return try(op, func() *tensors.Tensor[T] { return d.tensorDomain.EvaluateMatMul(op, left, right) })
}

// EvaluateMaxPool implements Domain.
func (d *FallibleTensorDomain[T]) EvaluateMaxPool(op *ops.MaxPool, input *tensors.Tensor[T]) Result[T] {
	return d.nonlinear(op, func() *tensors.Tensor[T] { return d.tensorDomain.EvaluateMaxPool(op, input) })
}

// EvaluateReduceMax implements Domain.
func (d *FallibleTensorDomain[T]) EvaluateReduceMax(op *ops.ReduceMax, input *tensors.Tensor[T]) Result[T] {
	return d.nonlinear(op, func() *tensors.Tensor[T] { return d.tensorDomain.EvaluateReduceMax(op, input) })
}

// EvaluateReduceMin implements Domain.
func (d *FallibleTensorDomain[T]) EvaluateReduceMin(op *ops.ReduceMin, input *tensors.Tensor[T]) Result[T] {
	return d.nonlinear(op, func() *tensors.Tensor[T] { return d.tensorDomain.EvaluateReduceMin(op, input) })
}

// EvaluateReduceMean implements Domain.
func (d *FallibleTensorDomain[T]) EvaluateReduceMean(op *ops.ReduceMean, input *tensors.Tensor[T]) Result[T] {
	return try(op, func() *tensors.Tensor[T] { return d.tensorDomain.EvaluateReduceMean(op, input) })
}

// EvaluateReduceSum implements Domain.
func (d *FallibleTensorDomain[T]) EvaluateReduceSum(op *ops.ReduceSum, input *tensors.Tensor[T]) Result[T] {
	return try(op, func() *tensors.Tensor[T] { return d.tensorDomain.EvaluateReduceSum(op, input) })
}

// EvaluateRelu implements Domain.
func (d *FallibleTensorDomain[T]) EvaluateRelu(op *ops.Relu, input *tensors.Tensor[T]) Result[T] {
	return d.nonlinear(op, func() *tensors.Tensor[T] { return d.tensorDomain.EvaluateRelu(op, input) })
}

// EvaluateReshape implements Domain.
func (d *FallibleTensorDomain[T]) EvaluateReshape(op *ops.Reshape, input *tensors.Tensor[T]) Result[T] {
	return try(op, func() *tensors.Tensor[T] { return d.tensorDomain.EvaluateReshape(op, input) })
}

// EvaluateSlice implements Domain.
func (d *FallibleTensorDomain[T]) EvaluateSlice(op *ops.Slice, input *tensors.Tensor[T]) Result[T] {
	return try(op, func() *tensors.Tensor[T] { return d.tensorDomain.EvaluateSlice(op, input) })
}

// EvaluateSqueeze implements Domain.
func (d *FallibleTensorDomain[T]) EvaluateSqueeze(op *ops.Squeeze, input *tensors.Tensor[T]) Result[T] {
	return try(op, func() *tensors.Tensor[T] { return d.tensorDomain.EvaluateSqueeze(op, input) })
}

// EvaluateVariable implements Domain.
func (d *FallibleTensorDomain[T]) EvaluateVariable(op *ops.Variable) Result[T] {
	return try(op, func() *tensors.Tensor[T] { return d.tensorDomain.EvaluateVariable(op) })
}
