// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package ops

import (
	"github.com/gomlx/exceptions"
	"github.com/gomlx/tfopt/pkg/core/shapes"
	"github.com/gomlx/tfopt/pkg/core/tensors"
	"k8s.io/klog/v2"
)

// Constant is a node with a fixed value and no inputs, e.g. the weights of a layer.
type Constant struct {
	base
	value *tensors.Tensor[float64]
}

// NewConstant returns a Constant holding a copy of value.
func NewConstant(name string, value *tensors.Tensor[float64]) *Constant {
	if value == nil {
		exceptions.Panicf("NewConstant(%q): nil value", name)
	}
	if tensors.HasInfiniteOrNaN(value) {
		klog.Warningf("Constant %q has infinite or NaN values", name)
	}
	return &Constant{base: newBase(name, value.Shape()), value: value.Clone()}
}

// Value of the constant. It must not be changed.
func (op *Constant) Value() *tensors.Tensor[float64] { return op.value }

// Type implements Operation.
func (op *Constant) Type() OpType { return OpTypeConstant }

// Options implements Operation: constants have no options.
func (op *Constant) Options() Options { return Options{} }

// Accept implements Operation.
func (op *Constant) Accept(visitor Visitor) { visitor.VisitConstant(op) }

// NodeRecord is not defined for constants, they are serialized with ParameterValue instead: it always panics.
func (op *Constant) NodeRecord([]string) NodeRecord {
	exceptions.Panicf("Constant %q cannot be serialized as a NodeRecord, use ParameterValue instead", op.name)
	return NodeRecord{}
}

// ParameterValue serializes the constant.
func (op *Constant) ParameterValue() ParameterValue {
	return ParameterValueFromTensor(op.name, op.value)
}

// ConstantFromParameter creates a Constant from its serialized form.
func ConstantFromParameter(param ParameterValue) (*Constant, error) {
	value, err := param.Tensor()
	if err != nil {
		return nil, NewValidator("ConstantOperation", param.Name).Wrap(err)
	}
	return NewConstant(param.Name, value), nil
}

// Variable is an input of the network: its value is given at evaluation time.
type Variable struct {
	base
}

// NewVariable returns a Variable of the given shape.
func NewVariable(name string, shape shapes.Shape) *Variable {
	return &Variable{base: newBase(name, shape)}
}

// GenericCreateVariable creates a Variable from its serialized form: it has no inputs and no options.
func GenericCreateVariable(name string, inputShapes []shapes.Shape, outputShape shapes.Shape, options Options) (
	*Variable, error) {
	v := NewValidator("VariableOperation", name)
	if err := v.ExpectInputSizeEquals(inputShapes, 0); err != nil {
		return nil, err
	}
	if err := v.ExpectOptionsEmpty(options); err != nil {
		return nil, err
	}
	return NewVariable(name, outputShape), nil
}

// Type implements Operation.
func (op *Variable) Type() OpType { return OpTypeInput }

// Options implements Operation: variables have no options.
func (op *Variable) Options() Options { return Options{} }

// Accept implements Operation.
func (op *Variable) Accept(visitor Visitor) { visitor.VisitVariable(op) }

// NodeRecord implements Operation.
func (op *Variable) NodeRecord(inputNames []string) NodeRecord {
	return op.record(OpTypeInput, inputNames, op.Options())
}
