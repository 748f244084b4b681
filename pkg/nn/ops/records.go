// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package ops

import (
	"encoding/gob"
	"slices"

	"github.com/gomlx/exceptions"
	"github.com/gomlx/gopjrt/dtypes"
	"github.com/gomlx/tfopt/pkg/core/shapes"
	"github.com/gomlx/tfopt/pkg/core/tensors"
	"github.com/gomlx/tfopt/pkg/support/xslices"
	"github.com/pkg/errors"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"
)

// NodeRecord is the serialized form of an operation, other than a Constant.
//
// Inputs are referred to by the name of the node producing them: the shapes of the inputs are not stored,
// they are taken from the producers when loading.
type NodeRecord struct {
	Name             string
	OpType           OpType
	OutputDimensions []int
	InputNames       []string
	Options          Options

	// OutputType is always dtypes.Float32.
	OutputType dtypes.DType
}

// ParameterValue is the serialized form of a Constant: its shape and its values in row-major order.
type ParameterValue struct {
	Name       string
	Dimensions []int
	Values     []float64
}

// makeShape converts serialized dimensions to a Shape, returning an error instead of panicking on negative
// dimensions or overflows.
func makeShape(dimensions []int) (shape shapes.Shape, err error) {
	err = exceptions.TryCatch[error](func() { shape = shapes.Make(dimensions...) })
	return
}

// OutputShape returns the output shape of the record, or an error if its dimensions are invalid.
func (r NodeRecord) OutputShape() (shapes.Shape, error) {
	shape, err := makeShape(r.OutputDimensions)
	if err != nil {
		return shape, errors.WithMessagef(err, "invalid output dimensions for node %q", r.Name)
	}
	return shape, nil
}

// Operation creates the operation of the record, given the output shapes of its inputs.
func (r NodeRecord) Operation(inputShapes []shapes.Shape) (Operation, error) {
	if r.OutputType != dtypes.Float32 {
		return nil, errors.Errorf("node %q has output type %s, only %s is supported", r.Name, r.OutputType,
			dtypes.Float32)
	}
	if len(inputShapes) != len(r.InputNames) {
		return nil, errors.Errorf("node %q has %d inputs (%v), but %d input shapes were given", r.Name,
			len(r.InputNames), r.InputNames, len(inputShapes))
	}
	outputShape, err := r.OutputShape()
	if err != nil {
		return nil, err
	}
	return MakeOperation(r.OpType, r.Name, inputShapes, outputShape, r.Options)
}

// ParameterValueFromTensor serializes value under the given name.
func ParameterValueFromTensor(name string, value *tensors.Tensor[float64]) ParameterValue {
	return ParameterValue{
		Name:       name,
		Dimensions: slices.Clone(value.Shape().Dimensions),
		Values:     slices.Clone(value.Flat()),
	}
}

// Tensor converts the parameter back to a tensor, checking that the number of values matches its shape.
func (p ParameterValue) Tensor() (*tensors.Tensor[float64], error) {
	shape, err := makeShape(p.Dimensions)
	if err != nil {
		return nil, err
	}
	if shape.Size() != len(p.Values) {
		return nil, errors.Errorf("parameter %q has shape %s (%d elements) but %d values", p.Name, shape,
			shape.Size(), len(p.Values))
	}
	return tensors.FromFlatData(shape, p.Values), nil
}

// GobSerialize record in binary format.
func (r NodeRecord) GobSerialize(encoder *gob.Encoder) (err error) {
	err = encoder.Encode(r)
	if err != nil {
		err = errors.Wrapf(err, "failed to serialize NodeRecord %q", r.Name)
	}
	return
}

// GobDeserializeNodeRecord reads a NodeRecord written with NodeRecord.GobSerialize.
func GobDeserializeNodeRecord(decoder *gob.Decoder) (r NodeRecord, err error) {
	err = decoder.Decode(&r)
	if err != nil {
		err = errors.Wrapf(err, "failed to deserialize NodeRecord")
	}
	return
}

// GobSerialize parameter in binary format.
func (p ParameterValue) GobSerialize(encoder *gob.Encoder) (err error) {
	err = encoder.Encode(p)
	if err != nil {
		err = errors.Wrapf(err, "failed to serialize ParameterValue %q", p.Name)
	}
	return
}

// GobDeserializeParameterValue reads a ParameterValue written with ParameterValue.GobSerialize.
func GobDeserializeParameterValue(decoder *gob.Decoder) (p ParameterValue, err error) {
	err = decoder.Decode(&p)
	if err != nil {
		err = errors.Wrapf(err, "failed to deserialize ParameterValue")
	}
	return
}

func intsToAny(values []int) []any {
	return xslices.Map(values, func(v int) any { return v })
}

// Struct converts the record to a protobuf Struct, for inspection or JSON output.
func (r NodeRecord) Struct() (*structpb.Struct, error) {
	options := make(map[string]any, r.Options.Size())
	for key, value := range r.Options.Doubles {
		options[key] = value
	}
	for key, value := range r.Options.Integers {
		options[key] = value
	}
	for key, value := range r.Options.Strings {
		options[key] = value
	}
	for key, value := range r.Options.IntegerLists {
		options[key] = intsToAny(value)
	}
	s, err := structpb.NewStruct(map[string]any{
		"name":          r.Name,
		"op_type":       r.OpType.String(),
		"out_dimension": intsToAny(r.OutputDimensions),
		"input_names":   xslices.Map(r.InputNames, func(name string) any { return name }),
		"options":       options,
		"output_type":   r.OutputType.String(),
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to convert NodeRecord %q", r.Name)
	}
	return s, nil
}

// Struct converts the parameter to a protobuf Struct, for inspection or JSON output.
func (p ParameterValue) Struct() (*structpb.Struct, error) {
	s, err := structpb.NewStruct(map[string]any{
		"name":       p.Name,
		"dimensions": intsToAny(p.Dimensions),
		"values":     xslices.Map(p.Values, func(v float64) any { return v }),
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to convert ParameterValue %q", p.Name)
	}
	return s, nil
}

// MarshalJSON implements json.Marshaler, through protojson.
func (r NodeRecord) MarshalJSON() ([]byte, error) {
	s, err := r.Struct()
	if err != nil {
		return nil, err
	}
	return protojson.Marshal(s)
}

// MarshalJSON implements json.Marshaler, through protojson.
func (p ParameterValue) MarshalJSON() ([]byte, error) {
	s, err := p.Struct()
	if err != nil {
		return nil, err
	}
	return protojson.Marshal(s)
}
