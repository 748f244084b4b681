// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package ops

import (
	"github.com/gomlx/tfopt/pkg/core/shapes"
	"github.com/gomlx/tfopt/pkg/nn/neurons"
)

// Option keys shared by the operations with nonlinear neurons.
const (
	OptionFormulation = "formulation"
	OptionCap         = "cap"
)

// Relu is the element-wise max(x, 0).
type Relu struct {
	base
	formulation neurons.ReluImplementation
}

// NewRelu returns a Relu over the input shape, modeled with the given formulation.
func NewRelu(name string, input shapes.Shape, formulation neurons.ReluImplementation) (*Relu, error) {
	return &Relu{base: newBase(name, input, input), formulation: formulation}, nil
}

// GenericCreateRelu creates a Relu from its serialized form.
func GenericCreateRelu(name string, inputShapes []shapes.Shape, outputShape shapes.Shape, options Options) (
	*Relu, error) {
	v := NewValidator("ReluOperation", name)
	if err := v.ExpectInputSizeEquals(inputShapes, 1); err != nil {
		return nil, err
	}
	if err := v.ExpectOptionsSizeAtMost(options, 1); err != nil {
		return nil, err
	}
	if err := v.ExpectOutputShapeEquals(outputShape, inputShapes[0]); err != nil {
		return nil, err
	}
	formulation, err := neurons.ParseRelu(options.Strings[OptionFormulation])
	if err != nil {
		return nil, v.Wrap(err)
	}
	return NewRelu(name, inputShapes[0], formulation)
}

// Formulation used to model the neuron.
func (op *Relu) Formulation() neurons.ReluImplementation { return op.formulation }

// Type implements Operation.
func (op *Relu) Type() OpType { return OpTypeRelu }

// Options implements Operation. The default formulation is omitted.
func (op *Relu) Options() (options Options) {
	if op.formulation != neurons.DefaultRelu {
		options.SetString(OptionFormulation, op.formulation.String())
	}
	return
}

// Accept implements Operation.
func (op *Relu) Accept(visitor Visitor) { visitor.VisitRelu(op) }

// NodeRecord implements Operation.
func (op *Relu) NodeRecord(inputNames []string) NodeRecord {
	return op.record(OpTypeRelu, inputNames, op.Options())
}

// ClippedRelu is the element-wise min(max(x, 0), cap).
type ClippedRelu struct {
	base
	cap         float64
	formulation neurons.ClippedReluImplementation
}

// NewClippedRelu returns a ClippedRelu over the input shape. The cap must be non-negative.
func NewClippedRelu(name string, input shapes.Shape, capValue float64, formulation neurons.ClippedReluImplementation) (
	*ClippedRelu, error) {
	if capValue < 0 {
		return nil, NewValidator("ClippedReluOperation", name).Errorf("Option cap must be nonnegative.")
	}
	return &ClippedRelu{base: newBase(name, input, input), cap: capValue, formulation: formulation}, nil
}

// GenericCreateClippedRelu creates a ClippedRelu from its serialized form.
func GenericCreateClippedRelu(name string, inputShapes []shapes.Shape, outputShape shapes.Shape, options Options) (
	*ClippedRelu, error) {
	v := NewValidator("ClippedReluOperation", name)
	if err := v.ExpectInputSizeEquals(inputShapes, 1); err != nil {
		return nil, err
	}
	if err := v.ExpectOptionsSizeAtMost(options, 2); err != nil {
		return nil, err
	}
	if err := v.ExpectOutputShapeEquals(outputShape, inputShapes[0]); err != nil {
		return nil, err
	}
	capValue, err := v.DoubleOption(options, OptionCap)
	if err != nil {
		return nil, err
	}
	formulation, err := neurons.ParseClippedRelu(options.Strings[OptionFormulation])
	if err != nil {
		return nil, v.Wrap(err)
	}
	return NewClippedRelu(name, inputShapes[0], capValue, formulation)
}

// Cap is the upper limit of the output.
func (op *ClippedRelu) Cap() float64 { return op.cap }

// Formulation used to model the neuron.
func (op *ClippedRelu) Formulation() neurons.ClippedReluImplementation { return op.formulation }

// Type implements Operation.
func (op *ClippedRelu) Type() OpType { return OpTypeClippedRelu }

// Options implements Operation. The default formulation is omitted.
func (op *ClippedRelu) Options() (options Options) {
	options.SetDouble(OptionCap, op.cap)
	if op.formulation != neurons.DefaultClippedRelu {
		options.SetString(OptionFormulation, op.formulation.String())
	}
	return
}

// Accept implements Operation.
func (op *ClippedRelu) Accept(visitor Visitor) { visitor.VisitClippedRelu(op) }

// NodeRecord implements Operation.
func (op *ClippedRelu) NodeRecord(inputNames []string) NodeRecord {
	return op.record(OpTypeClippedRelu, inputNames, op.Options())
}
