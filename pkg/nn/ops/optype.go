// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package ops

// OpType is the tag of an operation kind in a serialized NodeRecord.
//
// Its string form (e.g. "CLIPPED_RELU") is what is stored in records and printed by tools.
type OpType int

//go:generate go tool enumer -type=OpType -trimprefix=OpType -transform=snake-upper -output=gen_optype_enumer.go optype.go

const (
	OpTypeInvalid OpType = iota
	OpTypeAdd
	OpTypeSubtract
	OpTypeMultiply
	OpTypeDivide
	OpTypeClippedRelu
	OpTypeConcat

	// OpTypeConstant is never used in a NodeRecord: constants are serialized as ParameterValue.
	OpTypeConstant
	OpTypeConv1d
	OpTypeConv2d
	OpTypeEmbeddingLookup
	OpTypeExpandDims
	OpTypeMatMul
	OpTypeMaxPool
	OpTypeReduceMax
	OpTypeReduceMin
	OpTypeReduceMean
	OpTypeReduceSum
	OpTypeRelu
	OpTypeReshape
	OpTypeSlice
	OpTypeSqueeze

	// OpTypeInput tags a Variable, an input of the network.
	OpTypeInput
)
