// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package neurons

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReluNames(t *testing.T) {
	require.Equal(t, []string{"big_m", "multiple_choice", "multiple_choice_simplified", "ideal_exponential",
		"big_m_relaxation"}, ReluImplementationStrings())
	for _, impl := range ReluImplementationValues() {
		parsed, err := ParseRelu(impl.String())
		require.NoError(t, err)
		assert.Equal(t, impl, parsed)
	}
	for _, name := range []string{"", DefaultName} {
		impl, err := ParseRelu(name)
		require.NoError(t, err)
		assert.Equal(t, ReluBigM, impl)
	}
	_, err := ParseRelu("big_n")
	require.EqualError(t, err, "Unrecognized formulation name for relu: big_n")
	// Names are case-sensitive.
	_, err = ParseRelu("BIG_M")
	require.EqualError(t, err, "Unrecognized formulation name for relu: BIG_M")
}

func TestClippedReluNames(t *testing.T) {
	require.Equal(t, "unary_big_m", DefaultClippedRelu.String())
	require.Equal(t, "extended_x_exclusion", ClippedReluExtendedXExclusion.String())
	for _, impl := range ClippedReluImplementationValues() {
		parsed, err := ParseClippedRelu(impl.String())
		require.NoError(t, err)
		assert.Equal(t, impl, parsed)
	}
	impl, err := ParseClippedRelu("")
	require.NoError(t, err)
	require.Equal(t, ClippedReluUnaryBigM, impl)
	_, err = ParseClippedRelu("big_m")
	require.ErrorContains(t, err, "clipped relu")
	_, err = ParseClippedRelu("Unary_Big_M")
	require.ErrorContains(t, err, "clipped relu")
}

func TestMaximumNames(t *testing.T) {
	require.Equal(t, "tightened_big_m", DefaultMaximum.String())
	require.Len(t, AllMaximumImplementations(), 6)
	exact := AllExactMaximumImplementations()
	require.Len(t, exact, 5)
	require.NotContains(t, exact, MaximumEpigraph)
	for _, impl := range AllMaximumImplementations() {
		parsed, err := ParseMaximum(impl.String())
		require.NoError(t, err)
		assert.Equal(t, impl, parsed)
	}
	impl, err := ParseMaximum(DefaultName)
	require.NoError(t, err)
	require.Equal(t, MaximumTightenedBigM, impl)
	_, err = ParseMaximum("fancy")
	require.EqualError(t, err, "Unrecognized formulation name for maximum: fancy")
	_, err = ParseMaximum("Optimal_Big_M")
	require.Error(t, err)
}
