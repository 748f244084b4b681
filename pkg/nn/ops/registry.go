// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package ops

import (
	"github.com/gomlx/tfopt/pkg/core/shapes"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"
)

// MakeOperation creates an operation of the given type from its serialized form, by calling the corresponding
// GenericCreate function.
//
// Constants can't be created this way (they are ParameterValue records, see ConstantFromParameter): for
// OpTypeConstant, and for unknown types, it returns an error.
func MakeOperation(opType OpType, name string, inputShapes []shapes.Shape, outputShape shapes.Shape,
	options Options) (op Operation, err error) {
	if klog.V(2).Enabled() {
		klog.Infof("MakeOperation(%s, %q): inputs=%v, output=%s, options=%s", opType, name, inputShapes,
			outputShape, options)
	}
	// Results go through wrap: a nil *T assigned directly to op would be a non-nil interface.
	switch opType {
	case OpTypeAdd:
		op, err = wrap(GenericCreateAdd(name, inputShapes, outputShape, options))
	case OpTypeSubtract:
		op, err = wrap(GenericCreateSubtract(name, inputShapes, outputShape, options))
	case OpTypeMultiply:
		op, err = wrap(GenericCreateMultiply(name, inputShapes, outputShape, options))
	case OpTypeDivide:
		op, err = wrap(GenericCreateDivide(name, inputShapes, outputShape, options))
	case OpTypeClippedRelu:
		op, err = wrap(GenericCreateClippedRelu(name, inputShapes, outputShape, options))
	case OpTypeConcat:
		op, err = wrap(GenericCreateConcat(name, inputShapes, outputShape, options))
	case OpTypeConv1d:
		op, err = wrap(GenericCreateConv1d(name, inputShapes, outputShape, options))
	case OpTypeConv2d:
		op, err = wrap(GenericCreateConv2d(name, inputShapes, outputShape, options))
	case OpTypeEmbeddingLookup:
		op, err = wrap(GenericCreateEmbeddingLookup(name, inputShapes, outputShape, options))
	case OpTypeExpandDims:
		op, err = wrap(GenericCreateExpandDims(name, inputShapes, outputShape, options))
	case OpTypeMatMul:
		op, err = wrap(GenericCreateMatMul(name, inputShapes, outputShape, options))
	case OpTypeMaxPool:
		op, err = wrap(GenericCreateMaxPool(name, inputShapes, outputShape, options))
	case OpTypeReduceMax:
		op, err = wrap(GenericCreateReduceMax(name, inputShapes, outputShape, options))
	case OpTypeReduceMin:
		op, err = wrap(GenericCreateReduceMin(name, inputShapes, outputShape, options))
	case OpTypeReduceMean:
		op, err = wrap(GenericCreateReduceMean(name, inputShapes, outputShape, options))
	case OpTypeReduceSum:
		op, err = wrap(GenericCreateReduceSum(name, inputShapes, outputShape, options))
	case OpTypeRelu:
		op, err = wrap(GenericCreateRelu(name, inputShapes, outputShape, options))
	case OpTypeReshape:
		op, err = wrap(GenericCreateReshape(name, inputShapes, outputShape, options))
	case OpTypeSlice:
		op, err = wrap(GenericCreateSlice(name, inputShapes, outputShape, options))
	case OpTypeSqueeze:
		op, err = wrap(GenericCreateSqueeze(name, inputShapes, outputShape, options))
	case OpTypeInput:
		op, err = wrap(GenericCreateVariable(name, inputShapes, outputShape, options))
	case OpTypeConstant:
		err = errors.Errorf("node %q: constants must be created from a ParameterValue, not with MakeOperation", name)
	default:
		err = errors.Errorf("node %q: unsupported operation type %s", name, opType)
	}
	if err != nil {
		klog.V(1).Infof("MakeOperation(%s, %q) failed: %v", opType, name, err)
	}
	return
}

// wrap converts the typed result of a GenericCreate function to an Operation, mapping errors to a nil
// interface.
func wrap[T Operation](op T, err error) (Operation, error) {
	if err != nil {
		return nil, err
	}
	return op, nil
}
