// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package main

import (
	"bytes"
	"encoding/json"
	"math"
	"strings"
	"testing"

	"github.com/gomlx/tfopt/pkg/core/bounds"
	"github.com/gomlx/tfopt/pkg/core/shapes"
	"github.com/gomlx/tfopt/pkg/core/tensors"
	"github.com/gomlx/tfopt/pkg/nn/graph"
	"github.com/gomlx/tfopt/pkg/nn/neurons"
	"github.com/gomlx/tfopt/pkg/nn/ops"
	"github.com/janpfeifer/must"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testGraph returns relu(x + c), with x a variable of shape [2].
func testGraph() *graph.Graph {
	g := graph.New()
	must.M1(g.AddOperation(ops.NewVariable("x", shapes.Make(2))))
	must.M1(g.AddOperation(ops.NewConstant("c", tensors.FromValues(1.0, -1.0))))
	must.M1(g.AddOperation(must.M1(ops.NewAdd("add", shapes.Make(2), shapes.Make(2))), "x", "c"))
	must.M1(g.AddOperation(must.M1(ops.NewRelu("relu", shapes.Make(2), neurons.DefaultRelu)), "add"))
	return g
}

func TestLoadInputBounds(t *testing.T) {
	g := testGraph()

	inputs := must.M1(loadInputBounds(nil, g))
	require.Len(t, inputs, 1)
	assert.True(t, inputs["x"].Value(0).IsUnbounded())

	csv := "name,index,lower,upper\nx,0,-1,2\nx,1,0,0.5\n"
	inputs = must.M1(loadInputBounds(strings.NewReader(csv), g))
	assert.Equal(t, bounds.New(-1, 2), inputs["x"].Value(0))
	assert.Equal(t, bounds.New(0, 0.5), inputs["x"].Value(1))

	values := must.M1(graph.Evaluate[bounds.Bounds](g, bounds.Arithmetic{}, inputs))
	assert.Equal(t, bounds.New(0, 3), values["relu"].Value(0))
	assert.Equal(t, bounds.New(0, 0), values["relu"].Value(1))

	// Only the first element given.
	inputs = must.M1(loadInputBounds(strings.NewReader("name,index,lower,upper\nx,1,0,1\n"), g))
	assert.True(t, hasUnbounded(inputs["x"]))
	assert.False(t, math.IsInf(inputs["x"].Value(1).Upper, 0))

	for _, bad := range []string{
		"name,index,lower,upper\ny,0,0,1\n",
		"name,index,lower,upper\nx,2,0,1\n",
		"name,index,lower,upper\nx,0,1,0\n",
		"name,position,lower,upper\nx,0,0,1\n",
	} {
		_, err := loadInputBounds(strings.NewReader(bad), g)
		require.Errorf(t, err, "CSV %q should fail", bad)
	}
}

func TestPrintJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, printJSON(&buf, testGraph()))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 4)

	var param map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &param))
	assert.Equal(t, "c", param["name"])

	var node map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[2]), &node))
	assert.Equal(t, "add", node["name"])
	assert.Equal(t, []any{"x", "c"}, node["input_names"])
}

func TestTables(t *testing.T) {
	g := testGraph()
	summary := summaryTable("test.bin", g).Render()
	assert.Contains(t, summary, "test.bin")
	assert.Contains(t, summary, "relu")

	nodes := nodesTable(g).Render()
	for _, name := range []string{"x", "c", "add", "relu"} {
		assert.Contains(t, nodes, name)
	}

	long := tensors.Filled(shapes.Make(10), bounds.New(0, 1))
	assert.Contains(t, formatBounds(long), "... (2 more)")
}
