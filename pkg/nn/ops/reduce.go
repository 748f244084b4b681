// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package ops

import (
	"slices"

	"github.com/gomlx/tfopt/pkg/core/shapeinference"
	"github.com/gomlx/tfopt/pkg/core/shapes"
	"github.com/gomlx/tfopt/pkg/nn/neurons"
)

// reduce is the common part of the reductions: the input with the reduced axes removed.
type reduce struct {
	base
	axes []int
}

// Axes returns the reduced axes, strictly increasing. The returned slice must not be changed.
func (op *reduce) Axes() []int { return op.axes }

func newReduce(kindName, name string, input shapes.Shape, axes []int) (reduce, error) {
	output, err := shapeinference.ReduceOutputShape(input, axes)
	if err != nil {
		return reduce{}, NewValidator(kindName, name).Wrap(err)
	}
	return reduce{base: newBase(name, output, input), axes: slices.Clone(axes)}, nil
}

// genericReduce validates the serialized form of a reduction, with at most maxOptions options.
func genericReduce(kindName, name string, inputShapes []shapes.Shape, outputShape shapes.Shape, options Options,
	maxOptions int) (reduce, error) {
	v := NewValidator(kindName, name)
	if err := v.ExpectInputSizeEquals(inputShapes, 1); err != nil {
		return reduce{}, err
	}
	if err := v.ExpectOptionsSizeAtMost(options, maxOptions); err != nil {
		return reduce{}, err
	}
	axes, err := v.IntegerListOption(options, OptionAxes)
	if err != nil {
		return reduce{}, err
	}
	op, err := newReduce(kindName, name, inputShapes[0], axes)
	if err != nil {
		return reduce{}, err
	}
	if err = v.ExpectOutputShapeEquals(outputShape, op.OutputShape()); err != nil {
		return reduce{}, err
	}
	return op, nil
}

// options returns the axes option, plus the formulation when not the default one.
func (op *reduce) options(formulation neurons.MaximumImplementation) (options Options) {
	options.SetIntegerList(OptionAxes, op.axes)
	if formulation != neurons.DefaultMaximum {
		options.SetString(OptionFormulation, formulation.String())
	}
	return
}

// ReduceSum sums the input over the given axes.
type ReduceSum struct{ reduce }

// NewReduceSum returns a ReduceSum of input over axes, which must be strictly increasing and within the rank.
func NewReduceSum(name string, input shapes.Shape, axes []int) (*ReduceSum, error) {
	op, err := newReduce("ReduceSumOperation", name, input, axes)
	if err != nil {
		return nil, err
	}
	return &ReduceSum{op}, nil
}

// GenericCreateReduceSum creates a ReduceSum from its serialized form.
func GenericCreateReduceSum(name string, inputShapes []shapes.Shape, outputShape shapes.Shape, options Options) (
	*ReduceSum, error) {
	op, err := genericReduce("ReduceSumOperation", name, inputShapes, outputShape, options, 1)
	if err != nil {
		return nil, err
	}
	return &ReduceSum{op}, nil
}

// Type implements Operation.
func (op *ReduceSum) Type() OpType { return OpTypeReduceSum }

// Options implements Operation.
func (op *ReduceSum) Options() Options { return op.options(neurons.DefaultMaximum) }

// Accept implements Operation.
func (op *ReduceSum) Accept(visitor Visitor) { visitor.VisitReduceSum(op) }

// NodeRecord implements Operation.
func (op *ReduceSum) NodeRecord(inputNames []string) NodeRecord {
	return op.record(OpTypeReduceSum, inputNames, op.Options())
}

// ReduceMean averages the input over the given axes.
type ReduceMean struct{ reduce }

// NewReduceMean returns a ReduceMean of input over axes, which must be strictly increasing and within the rank.
func NewReduceMean(name string, input shapes.Shape, axes []int) (*ReduceMean, error) {
	op, err := newReduce("ReduceMeanOperation", name, input, axes)
	if err != nil {
		return nil, err
	}
	return &ReduceMean{op}, nil
}

// GenericCreateReduceMean creates a ReduceMean from its serialized form.
func GenericCreateReduceMean(name string, inputShapes []shapes.Shape, outputShape shapes.Shape, options Options) (
	*ReduceMean, error) {
	op, err := genericReduce("ReduceMeanOperation", name, inputShapes, outputShape, options, 1)
	if err != nil {
		return nil, err
	}
	return &ReduceMean{op}, nil
}

// Type implements Operation.
func (op *ReduceMean) Type() OpType { return OpTypeReduceMean }

// Options implements Operation.
func (op *ReduceMean) Options() Options { return op.options(neurons.DefaultMaximum) }

// Accept implements Operation.
func (op *ReduceMean) Accept(visitor Visitor) { visitor.VisitReduceMean(op) }

// NodeRecord implements Operation.
func (op *ReduceMean) NodeRecord(inputNames []string) NodeRecord {
	return op.record(OpTypeReduceMean, inputNames, op.Options())
}

// genericMaximumFormulation parses the optional formulation option of ReduceMax/ReduceMin/MaxPool.
// An absent or "default" option returns defaultFormulation.
func genericMaximumFormulation(v Validator, options Options, defaultFormulation neurons.MaximumImplementation) (
	neurons.MaximumImplementation, error) {
	name := options.Strings[OptionFormulation]
	if name == "" || name == neurons.DefaultName {
		return defaultFormulation, nil
	}
	formulation, err := neurons.ParseMaximum(name)
	if err != nil {
		return formulation, v.Wrap(err)
	}
	return formulation, nil
}

// ReduceMax takes the maximum of the input over the given axes.
type ReduceMax struct {
	reduce
	formulation neurons.MaximumImplementation
}

// NewReduceMax returns a ReduceMax of input over axes, which must be strictly increasing and within the rank.
func NewReduceMax(name string, input shapes.Shape, axes []int, formulation neurons.MaximumImplementation) (
	*ReduceMax, error) {
	op, err := newReduce("ReduceMaxOperation", name, input, axes)
	if err != nil {
		return nil, err
	}
	return &ReduceMax{reduce: op, formulation: formulation}, nil
}

// GenericCreateReduceMax creates a ReduceMax from its serialized form.
func GenericCreateReduceMax(name string, inputShapes []shapes.Shape, outputShape shapes.Shape, options Options) (
	*ReduceMax, error) {
	op, err := genericReduce("ReduceMaxOperation", name, inputShapes, outputShape, options, 2)
	if err != nil {
		return nil, err
	}
	formulation, err := genericMaximumFormulation(NewValidator("ReduceMaxOperation", name), options,
		neurons.DefaultMaximum)
	if err != nil {
		return nil, err
	}
	return &ReduceMax{reduce: op, formulation: formulation}, nil
}

// Formulation used to model the maximum.
func (op *ReduceMax) Formulation() neurons.MaximumImplementation { return op.formulation }

// Type implements Operation.
func (op *ReduceMax) Type() OpType { return OpTypeReduceMax }

// Options implements Operation.
func (op *ReduceMax) Options() Options { return op.options(op.formulation) }

// Accept implements Operation.
func (op *ReduceMax) Accept(visitor Visitor) { visitor.VisitReduceMax(op) }

// NodeRecord implements Operation.
func (op *ReduceMax) NodeRecord(inputNames []string) NodeRecord {
	return op.record(OpTypeReduceMax, inputNames, op.Options())
}

// ReduceMin takes the minimum of the input over the given axes.
type ReduceMin struct {
	reduce
	formulation neurons.MaximumImplementation
}

// NewReduceMin returns a ReduceMin of input over axes, which must be strictly increasing and within the rank.
// The formulation models the minimum as the negated maximum of the negated inputs.
func NewReduceMin(name string, input shapes.Shape, axes []int, formulation neurons.MaximumImplementation) (
	*ReduceMin, error) {
	op, err := newReduce("ReduceMinOperation", name, input, axes)
	if err != nil {
		return nil, err
	}
	return &ReduceMin{reduce: op, formulation: formulation}, nil
}

// GenericCreateReduceMin creates a ReduceMin from its serialized form.
func GenericCreateReduceMin(name string, inputShapes []shapes.Shape, outputShape shapes.Shape, options Options) (
	*ReduceMin, error) {
	op, err := genericReduce("ReduceMinOperation", name, inputShapes, outputShape, options, 2)
	if err != nil {
		return nil, err
	}
	formulation, err := genericMaximumFormulation(NewValidator("ReduceMinOperation", name), options,
		neurons.DefaultMaximum)
	if err != nil {
		return nil, err
	}
	return &ReduceMin{reduce: op, formulation: formulation}, nil
}

// Formulation used to model the minimum.
func (op *ReduceMin) Formulation() neurons.MaximumImplementation { return op.formulation }

// Type implements Operation.
func (op *ReduceMin) Type() OpType { return OpTypeReduceMin }

// Options implements Operation.
func (op *ReduceMin) Options() Options { return op.options(op.formulation) }

// Accept implements Operation.
func (op *ReduceMin) Accept(visitor Visitor) { visitor.VisitReduceMin(op) }

// NodeRecord implements Operation.
func (op *ReduceMin) NodeRecord(inputNames []string) NodeRecord {
	return op.record(OpTypeReduceMin, inputNames, op.Options())
}
