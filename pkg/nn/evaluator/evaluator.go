// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

// Package evaluator computes operations over arbitrary domains: plain numbers, intervals (bounds), or anything
// else a Domain implements.
//
// An Evaluator checks the inputs against the operation's input shapes and then dispatches (through the
// ops.Visitor) to the Domain method of the operation's kind.
//
// Two domains are provided: TensorDomain, where every operation is defined and errors are contract
// violations (panics), and FallibleTensorDomain, where operations return errors.
package evaluator

import (
	"fmt"

	"github.com/gomlx/exceptions"
	"github.com/gomlx/tfopt/pkg/core/shapes"
	"github.com/gomlx/tfopt/pkg/nn/ops"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"
)

// Domain implements every kind of operation for inputs of type In, producing results of type R.
//
// The Evaluator guarantees the number and shapes of the inputs match the operation, so implementations don't
// need to check them again.
type Domain[R, In any] interface {
	// Shape returns the shape of an input value.
	Shape(input In) shapes.Shape

	EvaluateAdd(op *ops.Add, left, right In) R
	EvaluateSubtract(op *ops.Subtract, left, right In) R
	EvaluateMultiply(op *ops.Multiply, left, right In) R
	EvaluateDivide(op *ops.Divide, left, right In) R
	EvaluateClippedRelu(op *ops.ClippedRelu, input In) R
	EvaluateConcat(op *ops.Concat, inputs []In) R
	EvaluateConstant(op *ops.Constant) R
	EvaluateConv1d(op *ops.Conv1d, input, filter In) R
	EvaluateConv2d(op *ops.Conv2d, input, filter In) R
	EvaluateEmbeddingLookup(op *ops.EmbeddingLookup, params, ids In) R
	EvaluateExpandDims(op *ops.ExpandDims, input In) R
	EvaluateMatMul(op *ops.MatMul, left, right In) R
	EvaluateMaxPool(op *ops.MaxPool, input In) R
	EvaluateReduceMax(op *ops.ReduceMax, input In) R
	EvaluateReduceMin(op *ops.ReduceMin, input In) R
	EvaluateReduceMean(op *ops.ReduceMean, input In) R
	EvaluateReduceSum(op *ops.ReduceSum, input In) R
	EvaluateRelu(op *ops.Relu, input In) R
	EvaluateReshape(op *ops.Reshape, input In) R
	EvaluateSlice(op *ops.Slice, input In) R
	EvaluateSqueeze(op *ops.Squeeze, input In) R
	EvaluateVariable(op *ops.Variable) R
}

// Evaluator evaluates operations on a Domain.
//
// It keeps the inputs of the current evaluation, so it can't be used concurrently: create one Evaluator per
// goroutine, they are cheap.
type Evaluator[R, In any] struct {
	domain Domain[R, In]
	inputs []In
	result R
}

// New returns an Evaluator for the given domain.
func New[R, In any](domain Domain[R, In]) *Evaluator[R, In] {
	return &Evaluator[R, In]{domain: domain}
}

// Domain returns the domain used by the Evaluator.
func (e *Evaluator[R, In]) Domain() Domain[R, In] { return e.domain }

// Evaluate op on the given inputs.
//
// It panics if the number of inputs or any of their shapes don't match the ones of op.
func (e *Evaluator[R, In]) Evaluate(op ops.Operation, inputs ...In) R {
	inputShapes := make([]shapes.Shape, len(inputs))
	for ii, input := range inputs {
		inputShapes[ii] = e.domain.Shape(input)
	}
	if err := CheckInputShapes(op, inputShapes); err != nil {
		exceptions.Panicf("%v", err)
	}
	if klog.V(2).Enabled() {
		klog.Infof("evaluating %s %q: %v -> %s", op.Type(), op.Name(), inputShapes, op.OutputShape())
	}
	e.inputs = inputs
	op.Accept(e)
	var zero R
	result := e.result
	e.inputs, e.result = nil, zero
	return result
}

// CheckInputShapes returns an error if the inputs don't match the input shapes of op.
func CheckInputShapes(op ops.Operation, inputShapes []shapes.Shape) error {
	want := op.InputShapes()
	if len(want) != len(inputShapes) {
		return errors.Errorf("Node: %s expected: %d inputs, but found: %d", op.Name(), len(want), len(inputShapes))
	}
	for ii, shape := range inputShapes {
		if !want[ii].Equal(shape) {
			return errors.Errorf("Node: %s input %d expected shape: %s, but found: %s", op.Name(), ii, want[ii],
				shape)
		}
	}
	return nil
}

var _ ops.Visitor = (*Evaluator[int, int])(nil)

// VisitAdd implements ops.Visitor.
func (e *Evaluator[R, In]) VisitAdd(op *ops.Add) {
	e.result = e.domain.EvaluateAdd(op, e.inputs[0], e.inputs[1])
}

// VisitSubtract implements ops.Visitor.
func (e *Evaluator[R, In]) VisitSubtract(op *ops.Subtract) {
	e.result = e.domain.EvaluateSubtract(op, e.inputs[0], e.inputs[1])
}

// VisitMultiply implements ops.Visitor.
func (e *Evaluator[R, In]) VisitMultiply(op *ops.Multiply) {
	e.result = e.domain.EvaluateMultiply(op, e.inputs[0], e.inputs[1])
}

// VisitDivide implements ops.Visitor.
func (e *Evaluator[R, In]) VisitDivide(op *ops.Divide) {
	e.result = e.domain.EvaluateDivide(op, e.inputs[0], e.inputs[1])
}

// VisitClippedRelu implements ops.Visitor.
func (e *Evaluator[R, In]) VisitClippedRelu(op *ops.ClippedRelu) {
	e.result = e.domain.EvaluateClippedRelu(op, e.inputs[0])
}

// VisitConcat implements ops.Visitor.
func (e *Evaluator[R, In]) VisitConcat(op *ops.Concat) {
	e.result = e.domain.EvaluateConcat(op, e.inputs)
}

// VisitConstant implements ops.Visitor.
func (e *Evaluator[R, In]) VisitConstant(op *ops.Constant) {
	e.result = e.domain.EvaluateConstant(op)
}

// VisitConv1d implements ops.Visitor.
func (e *Evaluator[R, In]) VisitConv1d(op *ops.Conv1d) {
	e.result = e.domain.EvaluateConv1d(op, e.inputs[0], e.inputs[1])
}

// VisitConv2d implements ops.Visitor.
func (e *Evaluator[R, In]) VisitConv2d(op *ops.Conv2d) {
	e.result = e.domain.EvaluateConv2d(op, e.inputs[0], e.inputs[1])
}

// VisitEmbeddingLookup implements ops.Visitor.
func (e *Evaluator[R, In]) VisitEmbeddingLookup(op *ops.EmbeddingLookup) {
	e.result = e.domain.EvaluateEmbeddingLookup(op, e.inputs[0], e.inputs[1])
}

// VisitExpandDims implements ops.Visitor.
func (e *Evaluator[R, In]) VisitExpandDims(op *ops.ExpandDims) {
	e.result = e.domain.EvaluateExpandDims(op, e.inputs[0])
}

// VisitMatMul implements ops.Visitor.
func (e *Evaluator[R, In]) VisitMatMul(op *ops.MatMul) {
	e.result = e.domain.EvaluateMatMul(op, e.inputs[0], e.inputs[1])
}

// VisitMaxPool implements ops.Visitor.
func (e *Evaluator[R, In]) VisitMaxPool(op *ops.MaxPool) {
	e.result = e.domain.EvaluateMaxPool(op, e.inputs[0])
}

// VisitReduceMax implements ops.Visitor.
func (e *Evaluator[R, In]) VisitReduceMax(op *ops.ReduceMax) {
	e.result = e.domain.EvaluateReduceMax(op, e.inputs[0])
}

// VisitReduceMin implements ops.Visitor.
func (e *Evaluator[R, In]) VisitReduceMin(op *ops.ReduceMin) {
	e.result = e.domain.EvaluateReduceMin(op, e.inputs[0])
}

// VisitReduceMean implements ops.Visitor.
func (e *Evaluator[R, In]) VisitReduceMean(op *ops.ReduceMean) {
	e.result = e.domain.EvaluateReduceMean(op, e.inputs[0])
}

// VisitReduceSum implements ops.Visitor.
func (e *Evaluator[R, In]) VisitReduceSum(op *ops.ReduceSum) {
	e.result = e.domain.EvaluateReduceSum(op, e.inputs[0])
}

// VisitRelu implements ops.Visitor.
func (e *Evaluator[R, In]) VisitRelu(op *ops.Relu) {
	e.result = e.domain.EvaluateRelu(op, e.inputs[0])
}

// VisitReshape implements ops.Visitor.
func (e *Evaluator[R, In]) VisitReshape(op *ops.Reshape) {
	e.result = e.domain.EvaluateReshape(op, e.inputs[0])
}

// VisitSlice implements ops.Visitor.
func (e *Evaluator[R, In]) VisitSlice(op *ops.Slice) {
	e.result = e.domain.EvaluateSlice(op, e.inputs[0])
}

// VisitSqueeze implements ops.Visitor.
func (e *Evaluator[R, In]) VisitSqueeze(op *ops.Squeeze) {
	e.result = e.domain.EvaluateSqueeze(op, e.inputs[0])
}

// VisitVariable implements ops.Visitor.
func (e *Evaluator[R, In]) VisitVariable(op *ops.Variable) {
	e.result = e.domain.EvaluateVariable(op)
}

// String implements fmt.Stringer.
func (e *Evaluator[R, In]) String() string {
	return fmt.Sprintf("Evaluator[%T]", e.domain)
}
