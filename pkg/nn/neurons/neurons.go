// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

// Package neurons lists the formulations available to encode the nonlinear neurons (relu, clipped relu and
// maximum) of a network as constraints, along with their string conversions.
//
// Operations only carry the choice along: it is an option of the Relu, ClippedRelu, MaxPool and ReduceMax/Min
// operations, serialized by name (e.g. "big_m"). An option value that is empty or "default" selects the default
// formulation.
package neurons

import (
	"github.com/pkg/errors"
)

// DefaultName is the option value that selects the default formulation.
const DefaultName = "default"

// ReluImplementation enumerates the formulations of a relu neuron.
type ReluImplementation int

//go:generate go tool enumer -type=ReluImplementation -trimprefix=Relu -transform=snake -output=gen_reluimplementation_enumer.go neurons.go

const (
	ReluBigM ReluImplementation = iota
	ReluMultipleChoice
	ReluMultipleChoiceSimplified
	ReluIdealExponential
	ReluBigMRelaxation
)

// DefaultRelu is the formulation used for relu when none is given.
const DefaultRelu = ReluBigM

// ClippedReluImplementation enumerates the formulations of a clipped relu neuron, min(max(x, 0), cap).
type ClippedReluImplementation int

//go:generate go tool enumer -type=ClippedReluImplementation -trimprefix=ClippedRelu -transform=snake -output=gen_clippedreluimplementation_enumer.go neurons.go

const (
	ClippedReluCompositeDirect ClippedReluImplementation = iota
	ClippedReluCompositeExtended
	ClippedReluExtendedYExclusion
	ClippedReluExtendedXExclusion
	ClippedReluUnaryBigM
	ClippedReluIncrementalBigM
)

// DefaultClippedRelu is the formulation used for clipped relu when none is given.
const DefaultClippedRelu = ClippedReluUnaryBigM

// MaximumImplementation enumerates the formulations of the maximum of several values, used by max-pooling and
// ReduceMax/ReduceMin.
type MaximumImplementation int

//go:generate go tool enumer -type=MaximumImplementation -trimprefix=Maximum -transform=snake -output=gen_maximumimplementation_enumer.go neurons.go

const (
	MaximumBigM MaximumImplementation = iota
	MaximumExtended
	MaximumTightenedBigM
	MaximumOptimalBigM
	MaximumLogarithmicBigM

	// MaximumEpigraph is a relaxation: it only bounds the maximum from below.
	MaximumEpigraph
)

// DefaultMaximum is the formulation used for maximum when none is given.
const DefaultMaximum = MaximumTightenedBigM

// AllMaximumImplementations returns all the maximum formulations.
func AllMaximumImplementations() []MaximumImplementation {
	return MaximumImplementationValues()
}

// AllExactMaximumImplementations returns the maximum formulations that are exact, that is, all but MaximumEpigraph.
func AllExactMaximumImplementations() []MaximumImplementation {
	exact := make([]MaximumImplementation, 0, len(MaximumImplementationValues()))
	for _, impl := range MaximumImplementationValues() {
		if impl != MaximumEpigraph {
			exact = append(exact, impl)
		}
	}
	return exact
}

// isDefaultName returns whether the option value selects the default formulation.
func isDefaultName(name string) bool {
	return name == "" || name == DefaultName
}

// ParseRelu converts an option value to a ReluImplementation. Empty or "default" returns DefaultRelu.
func ParseRelu(name string) (ReluImplementation, error) {
	if isDefaultName(name) {
		return DefaultRelu, nil
	}
	impl, err := ReluImplementationString(name)
	if err != nil || impl.String() != name {
		return DefaultRelu, errors.Errorf("Unrecognized formulation name for relu: %s", name)
	}
	return impl, nil
}

// ParseClippedRelu converts an option value to a ClippedReluImplementation. Empty or "default" returns
// DefaultClippedRelu.
func ParseClippedRelu(name string) (ClippedReluImplementation, error) {
	if isDefaultName(name) {
		return DefaultClippedRelu, nil
	}
	impl, err := ClippedReluImplementationString(name)
	if err != nil || impl.String() != name {
		return DefaultClippedRelu, errors.Errorf("Unrecognized formulation name for clipped relu: %s", name)
	}
	return impl, nil
}

// ParseMaximum converts an option value to a MaximumImplementation. Empty or "default" returns DefaultMaximum.
func ParseMaximum(name string) (MaximumImplementation, error) {
	if isDefaultName(name) {
		return DefaultMaximum, nil
	}
	impl, err := MaximumImplementationString(name)
	if err != nil || impl.String() != name {
		return DefaultMaximum, errors.Errorf("Unrecognized formulation name for maximum: %s", name)
	}
	return impl, nil
}
