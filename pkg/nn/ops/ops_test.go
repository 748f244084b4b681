// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package ops

import (
	"bytes"
	"encoding/gob"
	"encoding/json"
	"fmt"
	"math"
	"testing"

	"github.com/gomlx/gopjrt/dtypes"
	"github.com/gomlx/tfopt/pkg/core/shapes"
	"github.com/gomlx/tfopt/pkg/core/tensors"
	"github.com/gomlx/tfopt/pkg/core/window"
	"github.com/gomlx/tfopt/pkg/nn/neurons"
	"github.com/janpfeifer/must"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// MS is a shortcut to shapes.Make.
var MS = shapes.Make

// roundTrip serializes op and recreates it with MakeOperation, using made-up input names.
func roundTrip(t *testing.T, op Operation) Operation {
	t.Helper()
	inputNames := make([]string, len(op.InputShapes()))
	for ii := range inputNames {
		inputNames[ii] = fmt.Sprintf("input_%d", ii)
	}
	record := op.NodeRecord(inputNames)
	require.Equal(t, op.Name(), record.Name)
	require.Equal(t, op.Type(), record.OpType)
	require.Equal(t, inputNames, record.InputNames)
	require.Equal(t, dtypes.Float32, record.OutputType)
	recreated := must.M1(record.Operation(op.InputShapes()))
	require.Truef(t, Equal(op, recreated), "round trip of %s changed the operation: options %s -> %s",
		op.Name(), op.Options(), recreated.Options())
	return recreated
}

func TestRoundTrip(t *testing.T) {
	all := []Operation{
		must.M1(NewAdd("add", MS(2, 3), MS(3))),
		must.M1(NewSubtract("sub", MS(2, 1), MS(1, 3))),
		must.M1(NewMultiply("mul", MS(), MS(4))),
		must.M1(NewDivide("div", MS(4), MS(4))),
		must.M1(NewRelu("relu", MS(2, 3), neurons.DefaultRelu)),
		must.M1(NewRelu("relu_mc", MS(2, 3), neurons.ReluMultipleChoice)),
		must.M1(NewClippedRelu("crelu", MS(5), 6, neurons.DefaultClippedRelu)),
		must.M1(NewClippedRelu("crelu_x", MS(5), 1, neurons.ClippedReluExtendedXExclusion)),
		must.M1(NewConcat("concat", []shapes.Shape{MS(2, 3), MS(2, 5)}, 1)),
		must.M1(NewConv1d("conv1d", MS(2, 10, 3), MS(3, 3, 4), 1, window.PaddingValid)),
		must.M1(NewConv2d("conv2d", MS(1, 5, 5, 3), MS(3, 3, 3, 8), window.Position2D{Row: 2, Col: 1},
			window.PaddingSame)),
		must.M1(NewEmbeddingLookup("embedding", MS(5, 3), MS(2, 5))),
		must.M1(NewExpandDims("expand", MS(3), 0)),
		must.M1(NewMatMul("matmul", MS(4, 3), MS(3, 2))),
		must.M1(NewMaxPool("maxpool", MS(1, 4, 4, 2), window.Position2D{Row: 2, Col: 2},
			window.Position2D{Row: 2, Col: 2}, window.PaddingValid, neurons.DefaultMaximum)),
		must.M1(NewMaxPool("maxpool_epi", MS(1, 4, 4, 2), window.Position2D{Row: 3, Col: 3},
			window.Position2D{Row: 1, Col: 1}, window.PaddingSame, neurons.MaximumEpigraph)),
		must.M1(NewReduceMax("rmax", MS(4, 7, 2), []int{1, 2}, neurons.DefaultMaximum)),
		must.M1(NewReduceMin("rmin", MS(4, 7, 2), []int{0}, neurons.MaximumBigM)),
		must.M1(NewReduceMean("rmean", MS(4, 7, 2), []int{2})),
		must.M1(NewReduceSum("rsum", MS(4, 7, 2), []int{0, 1, 2})),
		must.M1(NewReshape("reshape", MS(2, 3), MS(6))),
		must.M1(NewSlice("slice", MS(4, 5), []int{1, 0}, []int{2, 5})),
		must.M1(NewSqueeze("squeeze_all", MS(1, 3, 1), nil)),
		must.M1(NewSqueeze("squeeze_0", MS(1, 3, 1), []int{0})),
		NewVariable("x", MS(1, 5)),
	}
	seen := make(map[OpType]bool)
	for _, op := range all {
		t.Run(op.Name(), func(t *testing.T) {
			roundTrip(t, op)
		})
		seen[op.Type()] = true
	}
	// All types but Invalid and Constant are covered.
	require.Len(t, seen, len(OpTypeValues())-2)
}

func TestOutputShapes(t *testing.T) {
	for _, tc := range []struct {
		op   Operation
		want shapes.Shape
	}{
		{must.M1(NewAdd("add", MS(2, 3), MS(3))), MS(2, 3)},
		{must.M1(NewConcat("concat", []shapes.Shape{MS(5), MS(3)}, 0)), MS(8)},
		{must.M1(NewConv1d("conv1d", MS(2, 10, 3), MS(3, 3, 4), 1, window.PaddingValid)), MS(2, 8, 4)},
		{must.M1(NewConv2d("conv2d", MS(1, 5, 5, 3), MS(3, 3, 3, 8), window.Position2D{Row: 2, Col: 2},
			window.PaddingValid)), MS(1, 2, 2, 8)},
		{must.M1(NewEmbeddingLookup("embedding", MS(5, 3), MS(2, 5))), MS(2, 3)},
		{must.M1(NewMatMul("matmul", MS(4, 3), MS(3, 2))), MS(4, 2)},
		{must.M1(NewMaxPool("maxpool", MS(1, 4, 4, 2), window.Position2D{Row: 2, Col: 2},
			window.Position2D{Row: 2, Col: 2}, window.PaddingValid, neurons.DefaultMaximum)), MS(1, 2, 2, 2)},
		{must.M1(NewReduceSum("rsum", MS(4, 7, 2), []int{1, 2})), MS(4)},
		{must.M1(NewSqueeze("squeeze", MS(1, 3, 1), nil)), MS(3)},
		{must.M1(NewExpandDims("expand", MS(3), 1)), MS(3, 1)},
	} {
		require.Truef(t, tc.want.Equal(tc.op.OutputShape()), "%s: wanted %s, got %s", tc.op.Name(), tc.want,
			tc.op.OutputShape())
	}
}

func TestMakeOperationErrors(t *testing.T) {
	// Incompatible shapes return an error, never panic.
	_, err := MakeOperation(OpTypeAdd, "add", []shapes.Shape{MS(2, 3), MS(3, 3)}, MS(2, 3), Options{})
	require.ErrorContains(t, err, "Failed to validate operation add of type BinaryArithmeticOperation")
	require.ErrorContains(t, err, "incompatible shapes")

	_, err = MakeOperation(OpTypeAdd, "add", []shapes.Shape{MS(3)}, MS(3), Options{})
	require.EqualError(t, err,
		"Failed to validate operation add of type BinaryArithmeticOperation: Expected number of inputs equals to 2, found: 1")

	_, err = MakeOperation(OpTypeAdd, "add", []shapes.Shape{MS(3), MS(3)}, MS(4), Options{})
	require.EqualError(t, err, fmt.Sprintf(
		"Failed to validate operation add of type BinaryArithmeticOperation: Expected output shape: %s, found: %s",
		MS(3), MS(4)))

	var options Options
	options.SetInteger("axis", 0)
	_, err = MakeOperation(OpTypeAdd, "add", []shapes.Shape{MS(3), MS(3)}, MS(3), options)
	require.ErrorContains(t, err, "Expected number of options at most 0, found: 1")

	_, err = MakeOperation(OpTypeMatMul, "mm", []shapes.Shape{MS(3), MS(3, 2)}, MS(2), Options{})
	require.ErrorContains(t, err, "rank at least 2")

	_, err = MakeOperation(OpTypeConstant, "c", nil, MS(3), Options{})
	require.Error(t, err)
	_, err = MakeOperation(OpTypeInvalid, "what", nil, MS(3), Options{})
	require.Error(t, err)
	_, err = MakeOperation(OpType(1000), "what", nil, MS(3), Options{})
	require.Error(t, err)
}

func TestGenericCreateOptions(t *testing.T) {
	// Missing options.
	_, err := GenericCreateClippedRelu("cr", []shapes.Shape{MS(3)}, MS(3), Options{})
	require.EqualError(t, err,
		"Failed to validate operation cr of type ClippedReluOperation: Required double option not found: cap")
	_, err = GenericCreateConcat("c", []shapes.Shape{MS(3)}, MS(3), Options{})
	require.ErrorContains(t, err, "Required integer option not found: axis")
	_, err = GenericCreateSlice("s", []shapes.Shape{MS(3)}, MS(3), Options{})
	require.ErrorContains(t, err, "Required integer list option not found: begin")
	var conv1dOptions Options
	conv1dOptions.SetInteger(OptionStride, 1)
	_, err = GenericCreateConv1d("c", []shapes.Shape{MS(1, 3, 1), MS(1, 1, 1)}, MS(1, 3, 1), conv1dOptions)
	require.ErrorContains(t, err, "Required string option not found: padding")

	// Invalid padding and formulation.
	conv1dOptions.SetString(OptionPadding, "FULL")
	_, err = GenericCreateConv1d("c", []shapes.Shape{MS(1, 3, 1), MS(1, 1, 1)}, MS(1, 3, 1), conv1dOptions)
	require.ErrorContains(t, err, "Invalid padding string")
	conv1dOptions.SetString(OptionPadding, "valid")
	_, err = GenericCreateConv1d("c", []shapes.Shape{MS(1, 3, 1), MS(1, 1, 1)}, MS(1, 3, 1), conv1dOptions)
	require.ErrorContains(t, err, "Invalid padding string")
	conv1dOptions.SetString(OptionPadding, "VALID")
	op := must.M1(GenericCreateConv1d("c", []shapes.Shape{MS(1, 3, 1), MS(1, 1, 1)}, MS(1, 3, 1), conv1dOptions))
	require.Equal(t, window.PaddingValid, op.Padding())

	var reluOptions Options
	reluOptions.SetString(OptionFormulation, "big_n")
	_, err = GenericCreateRelu("r", []shapes.Shape{MS(3)}, MS(3), reluOptions)
	require.EqualError(t, err,
		"Failed to validate operation r of type ReluOperation: Unrecognized formulation name for relu: big_n")
	reluOptions.SetString(OptionFormulation, neurons.DefaultName)
	relu := must.M1(GenericCreateRelu("r", []shapes.Shape{MS(3)}, MS(3), reluOptions))
	require.Equal(t, neurons.DefaultRelu, relu.Formulation())
	// The default formulation is not serialized.
	require.True(t, relu.Options().Empty())

	var maxOptions Options
	maxOptions.SetIntegerList(OptionAxes, []int{0}).SetString(OptionFormulation, "fancy")
	_, err = GenericCreateReduceMax("m", []shapes.Shape{MS(3)}, MS(), maxOptions)
	require.ErrorContains(t, err, "Unrecognized formulation name for maximum: fancy")
	// ReduceSum doesn't take a formulation.
	_, err = GenericCreateReduceSum("m", []shapes.Shape{MS(3)}, MS(), maxOptions)
	require.ErrorContains(t, err, "Expected number of options at most 1, found: 2")

	// MaxPool without a formulation uses optimal_big_m, ReduceMax uses the default maximum.
	var poolOptions Options
	poolOptions.SetInteger(OptionWindowHeight, 2).SetInteger(OptionWindowWidth, 2).
		SetInteger(OptionStrideRow, 2).SetInteger(OptionStrideCol, 2).SetString(OptionPadding, "VALID")
	pool := must.M1(GenericCreateMaxPool("p", []shapes.Shape{MS(1, 4, 4, 1)}, MS(1, 2, 2, 1), poolOptions))
	require.Equal(t, neurons.MaximumOptimalBigM, pool.Formulation())
	require.NotContains(t, pool.Options().Strings, OptionFormulation)
	pool = must.M1(NewMaxPool("p", MS(1, 4, 4, 1), window.Position2D{Row: 2, Col: 2},
		window.Position2D{Row: 2, Col: 2}, window.PaddingValid, neurons.DefaultMaximum))
	require.Equal(t, neurons.DefaultMaximum.String(), pool.Options().Strings[OptionFormulation])
	maxOptions = Options{}
	maxOptions.SetIntegerList(OptionAxes, []int{0})
	reduceMax := must.M1(GenericCreateReduceMax("m", []shapes.Shape{MS(3)}, MS(), maxOptions))
	require.Equal(t, neurons.DefaultMaximum, reduceMax.Formulation())

	// Unsorted axes.
	var sumOptions Options
	sumOptions.SetIntegerList(OptionAxes, []int{1, 0})
	_, err = GenericCreateReduceSum("m", []shapes.Shape{MS(3, 2)}, MS(), sumOptions)
	require.ErrorContains(t, err, "not sorted")

	// Squeeze without options squeezes all unit axes.
	squeeze := must.M1(GenericCreateSqueeze("sq", []shapes.Shape{MS(1, 2, 1)}, MS(2), Options{}))
	require.Empty(t, squeeze.Axes())
}

func TestTypedConstructorErrors(t *testing.T) {
	_, err := NewClippedRelu("cr", MS(3), -1, neurons.DefaultClippedRelu)
	require.EqualError(t, err,
		"Failed to validate operation cr of type ClippedReluOperation: Option cap must be nonnegative.")

	_, err = NewReshape("r", MS(2, 3), MS(5))
	require.EqualError(t, err, fmt.Sprintf("Failed to validate operation r of type ReshapeOperation: "+
		"input_shape: %s has 6 elements, but output_shape: %s has 5 elements, must be equal to reshape.",
		MS(2, 3), MS(5)))

	_, err = NewAdd("add", MS(2, 3), MS(3, 3))
	require.ErrorContains(t, err, "Failed to validate operation add of type BinaryArithmeticOperation")
	_, err = NewMultiply("mul", MS(2), MS(3))
	require.ErrorContains(t, err, "Failed to validate operation mul of type BinaryArithmeticOperation")

	_, err = NewConcat("c", nil, 0)
	require.Error(t, err)
	_, err = NewSlice("s", MS(4), []int{3}, []int{2})
	require.ErrorContains(t, err, "out of bounds")
	_, err = NewSlice("s", MS(3), []int{math.MaxInt}, []int{1})
	require.ErrorContains(t, err, "Failed to validate operation s of type SliceOperation")
	_, err = NewSqueeze("s", MS(2, 1), []int{0})
	require.Error(t, err)
	_, err = NewConv2d("c", MS(1, 5, 5, 3), MS(3, 3, 2, 8), window.Position2D{Row: 1, Col: 1}, window.PaddingSame)
	require.ErrorContains(t, err, "input channels")
	_, err = NewMaxPool("m", MS(1, 2, 2, 1), window.Position2D{Row: 3, Col: 3}, window.Position2D{Row: 1, Col: 1},
		window.PaddingValid, neurons.DefaultMaximum)
	require.Error(t, err)
}

func TestValidator(t *testing.T) {
	v := NewValidator("KindOperation", "node")
	require.Equal(t, "Failed to validate operation node of type KindOperation: ", v.Prefix())
	require.NoError(t, v.ExpectInputSizeAtMost([]shapes.Shape{MS()}, 1))
	require.EqualError(t, v.ExpectInputSizeAtMost([]shapes.Shape{MS(), MS()}, 1),
		"Failed to validate operation node of type KindOperation: Expected number of inputs at most 1, found: 2")
	require.EqualError(t, v.ExpectInputSizeAtLeast(nil, 1),
		"Failed to validate operation node of type KindOperation: Expected number of inputs at least 1, found: 0")
	require.NoError(t, v.ExpectOutputShapeEquals(MS(2), MS(2)))
	require.Nil(t, v.Wrap(nil))

	var options Options
	require.True(t, options.Empty())
	options.SetDouble("d", 1.5).SetString("s", "x")
	require.Equal(t, 2, options.Size())
	require.Equal(t, 1.5, must.M1(v.DoubleOption(options, "d")))
	require.Equal(t, "x", must.M1(v.StringOption(options, "s")))
	_, err := v.IntegerOption(options, "d")
	require.EqualError(t, err,
		"Failed to validate operation node of type KindOperation: Required integer option not found: d")
	require.Equal(t, `{d=1.5, s="x"}`, options.String())
}

func TestOptionsEqual(t *testing.T) {
	var a, b Options
	require.True(t, a.Equal(b))
	a.SetIntegerList(OptionAxes, []int{1, 2})
	require.False(t, a.Equal(b))
	b.SetIntegerList(OptionAxes, []int{1, 2})
	require.True(t, a.Equal(b))
	b.SetIntegerList(OptionAxes, []int{1, 3})
	require.False(t, a.Equal(b))
}

func TestConstant(t *testing.T) {
	value := tensors.FromMatrix([][]float64{{1, 2, 3}, {4, 5, 6}})
	c := NewConstant("weights", value)
	value.SetValue(100, 0, 0)
	require.Equal(t, 1.0, c.Value().Value(0, 0), "NewConstant must copy its value")
	require.True(t, MS(2, 3).Equal(c.OutputShape()))
	require.Empty(t, c.InputShapes())
	require.Panics(t, func() { _ = c.NodeRecord(nil) })

	param := c.ParameterValue()
	require.Equal(t, []int{2, 3}, param.Dimensions)
	require.Equal(t, []float64{1, 2, 3, 4, 5, 6}, param.Values)
	recreated := must.M1(ConstantFromParameter(param))
	require.True(t, Equal(c, recreated))

	param.Values = param.Values[:5]
	_, err := ConstantFromParameter(param)
	require.ErrorContains(t, err, "5 values")
	param.Dimensions = []int{-1, 5}
	_, err = ConstantFromParameter(param)
	require.Error(t, err)
}

func TestGobSerialization(t *testing.T) {
	op := must.M1(NewMaxPool("maxpool", MS(1, 4, 4, 2), window.Position2D{Row: 3, Col: 3},
		window.Position2D{Row: 1, Col: 1}, window.PaddingSame, neurons.MaximumEpigraph))
	record := op.NodeRecord([]string{"x"})
	param := NewConstant("c", tensors.FromValues(1.0, -2.0)).ParameterValue()

	var buf bytes.Buffer
	enc := gob.NewEncoder(&buf)
	require.NoError(t, record.GobSerialize(enc))
	require.NoError(t, param.GobSerialize(enc))

	dec := gob.NewDecoder(&buf)
	record2 := must.M1(GobDeserializeNodeRecord(dec))
	param2 := must.M1(GobDeserializeParameterValue(dec))
	require.Equal(t, record.Name, record2.Name)
	require.Equal(t, record.InputNames, record2.InputNames)
	require.True(t, record.Options.Equal(record2.Options))
	require.True(t, Equal(op, must.M1(record2.Operation([]shapes.Shape{MS(1, 4, 4, 2)}))))
	require.Equal(t, param, param2)

	_, err := GobDeserializeNodeRecord(dec)
	require.Error(t, err)
}

func TestRecordJSON(t *testing.T) {
	op := must.M1(NewSlice("slice", MS(4, 5), []int{1, 0}, []int{2, 5}))
	data := must.M1(json.Marshal(op.NodeRecord([]string{"x"})))
	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "slice", decoded["name"])
	assert.Equal(t, "SLICE", decoded["op_type"])
	assert.Equal(t, "Float32", decoded["output_type"])
	assert.Equal(t, []any{2.0, 5.0}, decoded["out_dimension"])
	assert.Equal(t, []any{"x"}, decoded["input_names"])
	assert.Equal(t, map[string]any{"begin": []any{1.0, 0.0}, "size": []any{2.0, 5.0}}, decoded["options"])

	param := ParameterValue{Name: "c", Dimensions: []int{2}, Values: []float64{0.5, -1}}
	data = must.M1(json.Marshal(param))
	decoded = nil
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, []any{0.5, -1.0}, decoded["values"])
}

func TestRecordOperationErrors(t *testing.T) {
	record := NodeRecord{Name: "x", OpType: OpTypeInput, OutputDimensions: []int{3}, OutputType: dtypes.Float64}
	_, err := record.Operation(nil)
	require.ErrorContains(t, err, "only Float32 is supported")

	record.OutputType = dtypes.Float32
	record.OutputDimensions = []int{-3}
	_, err = record.Operation(nil)
	require.ErrorContains(t, err, "invalid output dimensions")

	record.OutputDimensions = []int{3}
	_, err = record.Operation([]shapes.Shape{MS(3)})
	require.ErrorContains(t, err, "input shapes were given")

	op := must.M1(record.Operation(nil))
	require.IsType(t, &Variable{}, op)
}

// countingVisitor counts the visited kinds, to check that Accept dispatches to the right method.
type countingVisitor struct {
	visited []string
}

func (v *countingVisitor) visit(name string)                     { v.visited = append(v.visited, name) }
func (v *countingVisitor) VisitAdd(*Add)                         { v.visit("Add") }
func (v *countingVisitor) VisitSubtract(*Subtract)               { v.visit("Subtract") }
func (v *countingVisitor) VisitMultiply(*Multiply)               { v.visit("Multiply") }
func (v *countingVisitor) VisitDivide(*Divide)                   { v.visit("Divide") }
func (v *countingVisitor) VisitClippedRelu(*ClippedRelu)         { v.visit("ClippedRelu") }
func (v *countingVisitor) VisitConcat(*Concat)                   { v.visit("Concat") }
func (v *countingVisitor) VisitConstant(*Constant)               { v.visit("Constant") }
func (v *countingVisitor) VisitConv1d(*Conv1d)                   { v.visit("Conv1d") }
func (v *countingVisitor) VisitConv2d(*Conv2d)                   { v.visit("Conv2d") }
func (v *countingVisitor) VisitEmbeddingLookup(*EmbeddingLookup) { v.visit("EmbeddingLookup") }
func (v *countingVisitor) VisitExpandDims(*ExpandDims)           { v.visit("ExpandDims") }
func (v *countingVisitor) VisitMatMul(*MatMul)                   { v.visit("MatMul") }
func (v *countingVisitor) VisitMaxPool(*MaxPool)                 { v.visit("MaxPool") }
func (v *countingVisitor) VisitReduceMax(*ReduceMax)             { v.visit("ReduceMax") }
func (v *countingVisitor) VisitReduceMin(*ReduceMin)             { v.visit("ReduceMin") }
func (v *countingVisitor) VisitReduceMean(*ReduceMean)           { v.visit("ReduceMean") }
func (v *countingVisitor) VisitReduceSum(*ReduceSum)             { v.visit("ReduceSum") }
func (v *countingVisitor) VisitRelu(*Relu)                       { v.visit("Relu") }
func (v *countingVisitor) VisitReshape(*Reshape)                 { v.visit("Reshape") }
func (v *countingVisitor) VisitSlice(*Slice)                     { v.visit("Slice") }
func (v *countingVisitor) VisitSqueeze(*Squeeze)                 { v.visit("Squeeze") }
func (v *countingVisitor) VisitVariable(*Variable)               { v.visit("Variable") }

func TestAccept(t *testing.T) {
	v := &countingVisitor{}
	must.M1(NewSubtract("s", MS(2), MS(2))).Accept(v)
	NewConstant("c", tensors.FromScalar(1.0)).Accept(v)
	NewVariable("x", MS(2)).Accept(v)
	must.M1(NewReduceMin("m", MS(2), []int{0}, neurons.DefaultMaximum)).Accept(v)
	require.Equal(t, []string{"Subtract", "Constant", "Variable", "ReduceMin"}, v.visited)
}
