// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package graph

import (
	"encoding/gob"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gomlx/tfopt/pkg/core/bounds"
	"github.com/gomlx/tfopt/pkg/core/shapes"
	"github.com/gomlx/tfopt/pkg/core/tensors"
	"github.com/gomlx/tfopt/pkg/nn/evaluator"
	"github.com/gomlx/tfopt/pkg/nn/neurons"
	"github.com/gomlx/tfopt/pkg/nn/ops"
	"github.com/janpfeifer/must"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var MS = shapes.Make

// buildNetwork returns the graph of sum(relu(x * w + b)), with x a variable of shape [3].
func buildNetwork(t *testing.T) *Graph {
	g := New()
	x := ops.NewVariable("x", MS(3))
	w := ops.NewConstant("w", tensors.FromValues(1.0, -2.0, 0.5))
	b := ops.NewConstant("b", tensors.FromValues(0.0, 1.0, -1.0))
	must.M1(g.AddOperation(x))
	must.M1(g.AddOperation(w))
	must.M1(g.AddOperation(b))
	must.M1(g.AddOperation(must.M1(ops.NewMultiply("mul", MS(3), MS(3))), "x", "w"))
	must.M1(g.AddOperation(must.M1(ops.NewAdd("add", MS(3), MS(3))), "mul", "b"))
	must.M1(g.AddOperation(must.M1(ops.NewRelu("relu", MS(3), neurons.DefaultRelu)), "add"))
	must.M1(g.AddOperation(must.M1(ops.NewReduceSum("sum", MS(3), []int{0})), "relu"))
	require.Equal(t, 7, g.NumNodes())
	return g
}

func TestAddOperation(t *testing.T) {
	g := buildNetwork(t)
	require.NotEmpty(t, g.ID())
	assert.Equal(t, []string{"x"}, g.Variables())
	outputs := g.Outputs()
	require.Len(t, outputs, 1)
	assert.Equal(t, "sum", outputs[0].Name())
	assert.Equal(t, 6, outputs[0].Index())
	assert.Equal(t, []string{"mul", "b"}, g.Node("add").Inputs())
	assert.Nil(t, g.Node("unknown"))
	assert.Equal(t, 2, g.CountByType()[ops.OpTypeConstant])

	// Duplicate name.
	_, err := g.AddOperation(ops.NewVariable("x", MS(3)))
	require.ErrorContains(t, err, `already has a node named "x"`)

	// Unknown input.
	_, err = g.AddOperation(must.M1(ops.NewRelu("relu2", MS(3), neurons.DefaultRelu)), "missing")
	require.ErrorContains(t, err, `"missing", which is not in the graph`)

	// Shape mismatch.
	_, err = g.AddOperation(must.M1(ops.NewRelu("relu2", MS(4), neurons.DefaultRelu)), "x")
	require.ErrorContains(t, err, "Node: relu2 input 0 expected shape")

	// Wrong number of inputs.
	_, err = g.AddOperation(must.M1(ops.NewRelu("relu2", MS(3), neurons.DefaultRelu)), "x", "w")
	require.ErrorContains(t, err, "expected: 1 inputs, but found: 2")

	// Empty name.
	_, err = g.AddOperation(ops.NewVariable("", MS(3)))
	require.Error(t, err)

	// Failed additions don't change the graph.
	require.Equal(t, 7, g.NumNodes())
	require.Nil(t, g.Node("relu2"))

	name := g.UniqueName(ops.OpTypeClippedRelu)
	assert.True(t, strings.HasPrefix(name, "clipped_relu_"), "got %q", name)
	assert.Nil(t, g.Node(name))
}

func TestEvaluate(t *testing.T) {
	g := buildNetwork(t)

	// x * w + b = [2, -1, -0.5] -> relu = [2, 0, 0] -> sum = 2.
	var progress []int
	values := must.M1(Evaluate[float64](g, tensors.FloatArithmetic[float64]{},
		map[string]*tensors.Tensor[float64]{"x": tensors.FromValues(2.0, 1.0, 1.0)},
		WithProgress(func(done, total int) {
			require.Equal(t, 7, total)
			progress = append(progress, done)
		})))
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6, 7}, progress)
	require.True(t, tensors.FromValues(2.0, 0.0, 0.0).Equal(values["relu"]), "relu=%s", values["relu"])
	require.True(t, tensors.FromScalar(2.0).Equal(values["sum"]), "sum=%s", values["sum"])

	// x in [0,1]^3: x*w+b in {[0,1], [-1,1], [-1,-0.5]} -> relu in {[0,1], [0,1], [0,0]} -> sum in [0,2].
	unit := tensors.Filled(MS(3), bounds.New(0, 1))
	boundValues := must.M1(Evaluate[bounds.Bounds](g, bounds.Arithmetic{},
		map[string]*tensors.Tensor[bounds.Bounds]{"x": unit}))
	require.True(t, tensors.FromScalar(bounds.New(0, 2)).Equal(boundValues["sum"]), "sum=%s", boundValues["sum"])

	// Missing variable.
	_, err := Evaluate[float64](g, tensors.FloatArithmetic[float64]{}, nil)
	require.ErrorContains(t, err, `no value given for variable "x"`)

	// Wrong shape for the variable.
	_, err = Evaluate[float64](g, tensors.FloatArithmetic[float64]{},
		map[string]*tensors.Tensor[float64]{"x": tensors.FromValues(1.0, 2.0)})
	require.Error(t, err)

	// Nonlinear operations rejected.
	_, err = Evaluate[float64](g, tensors.FloatArithmetic[float64]{},
		map[string]*tensors.Tensor[float64]{"x": tensors.FromValues(2.0, 1.0, 1.0)},
		WithDomainOptions(evaluator.RejectNonlinear()))
	require.ErrorContains(t, err, "nonlinear operations are not supported")
}

func TestRecords(t *testing.T) {
	g := buildNetwork(t)
	nodes, params := g.Records()
	require.Len(t, params, 2)
	require.Len(t, nodes, 5)
	assert.Equal(t, "w", params[0].Name)
	assert.Equal(t, []string{"x", "w"}, nodes[1].InputNames)

	g2 := must.M1(FromRecords(nodes, params))
	require.Equal(t, g.NumNodes(), g2.NumNodes())
	require.NotEqual(t, g.ID(), g2.ID())
	for _, node := range g.Nodes() {
		other := g2.Node(node.Name())
		require.NotNilf(t, other, "node %q missing after FromRecords", node.Name())
		require.Truef(t, ops.Equal(node.Operation(), other.Operation()), "node %q changed", node.Name())
		require.Equal(t, node.Inputs(), other.Inputs())
	}

	// Node referencing an input defined after it.
	_, err := FromRecords([]ops.NodeRecord{nodes[1], nodes[0]}, params)
	require.ErrorContains(t, err, "not defined before it")
}

func TestSaveLoad(t *testing.T) {
	g := buildNetwork(t)
	filePath := filepath.Join(t.TempDir(), "network.bin")
	require.NoError(t, g.Save(filePath))
	loaded := must.M1(Load(filePath))
	require.Equal(t, g.NumNodes(), loaded.NumNodes())
	for _, node := range g.Nodes() {
		require.Truef(t, ops.Equal(node.Operation(), loaded.Node(node.Name()).Operation()),
			"node %q changed", node.Name())
	}

	_, err := Load(filepath.Join(t.TempDir(), "missing.bin"))
	require.Error(t, err)

	// Corrupt headers return an error.
	for _, header := range []fileHeader{{NumParams: -1}, {NumNodes: -1}, {NumParams: 1 << 40}} {
		corruptPath := filepath.Join(t.TempDir(), "corrupt.bin")
		f := must.M1(os.Create(corruptPath))
		require.NoError(t, gob.NewEncoder(f).Encode(header))
		require.NoError(t, f.Close())
		_, err = Load(corruptPath)
		require.Errorf(t, err, "header %+v should fail to load", header)
	}
}
