// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package tensors

import (
	"github.com/gomlx/exceptions"
	"github.com/gomlx/tfopt/pkg/core/shapeinference"
)

// EmbeddingLookup computes the (weighted) lookup of ids in params.
//
// Shapes:
//   - params: [numClasses, embedding...], rank >= 2.
//   - ids: [batch..., numClasses], rank >= 2: a (one-hot or weighted) vector over the classes.
//   - output: [batch..., embedding...].
//
// Each output element is the inner product of the ids vector with the corresponding column of params.
// It panics if the shapes are not compatible.
func EmbeddingLookup[T any](ar Arithmetic[T], params, ids *Tensor[T]) *Tensor[T] {
	outputShape, err := shapeinference.EmbeddingLookupOutputShape(params.shape, ids.shape)
	if err != nil {
		exceptions.Panicf("tensors.EmbeddingLookup: %v", err)
	}
	result := New[T](outputShape)
	batchRank := ids.Rank() - 1
	idsIndex := make([]int, ids.Rank())
	paramsIndex := make([]int, params.Rank())
	for outputFlat, outputIndex := range outputShape.Iter() {
		copy(idsIndex, outputIndex[:batchRank])
		idsIndex[batchRank] = FreeIndex
		paramsIndex[0] = FreeIndex
		copy(paramsIndex[1:], outputIndex[batchRank:])
		result.flat[outputFlat] = dot(ar, ids.VectorSlice(idsIndex), params.VectorSlice(paramsIndex))
	}
	return result
}
