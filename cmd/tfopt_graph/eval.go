// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/gomlx/tfopt/pkg/core/bounds"
	"github.com/gomlx/tfopt/pkg/core/tensors"
	"github.com/gomlx/tfopt/pkg/nn/graph"
	"github.com/janpfeifer/must"
	"github.com/pkg/errors"
	"github.com/schollz/progressbar/v3"
	"k8s.io/klog/v2"
)

// Columns of the bounds CSV file.
const (
	colName  = "name"
	colIndex = "index"
	colLower = "lower"
	colUpper = "upper"
)

// loadInputBounds reads the bounds of the graph variables from a CSV with the columns name,index,lower,upper.
// Variables, or elements of variables, not listed are unbounded.
func loadInputBounds(r io.Reader, g *graph.Graph) (map[string]*tensors.Tensor[bounds.Bounds], error) {
	inputs := make(map[string]*tensors.Tensor[bounds.Bounds])
	for _, name := range g.Variables() {
		inputs[name] = tensors.Filled(g.Node(name).Operation().OutputShape(), bounds.Unbounded())
	}
	if r == nil {
		return inputs, nil
	}

	df := dataframe.ReadCSV(r, dataframe.WithTypes(map[string]series.Type{
		colName:  series.String,
		colIndex: series.Int,
		colLower: series.Float,
		colUpper: series.Float,
	}))
	if df.Err != nil {
		return nil, errors.Wrap(df.Err, "reading bounds CSV")
	}
	for _, col := range []string{colName, colIndex, colLower, colUpper} {
		if !hasColumn(df, col) {
			return nil, errors.Errorf("bounds CSV has no column %q, it must have the columns %s,%s,%s,%s",
				col, colName, colIndex, colLower, colUpper)
		}
	}
	names := df.Col(colName).Records()
	indices, err := df.Col(colIndex).Int()
	if err != nil {
		return nil, errors.Wrapf(err, "parsing column %q of bounds CSV", colIndex)
	}
	lowers, uppers := df.Col(colLower).Float(), df.Col(colUpper).Float()
	for row, name := range names {
		value, found := inputs[name]
		if !found {
			return nil, errors.Errorf("bounds CSV row %d: %q is not a variable of the graph", row+1, name)
		}
		index := indices[row]
		if index < 0 || index >= value.Size() {
			return nil, errors.Errorf("bounds CSV row %d: index %d out of range for variable %q of shape %s",
				row+1, index, name, value.Shape())
		}
		if lowers[row] > uppers[row] {
			return nil, errors.Errorf("bounds CSV row %d: lower bound %g is greater than upper bound %g",
				row+1, lowers[row], uppers[row])
		}
		value.SetFlatValue(index, bounds.New(lowers[row], uppers[row]))
	}
	klog.V(1).Infof("read %d bounds for %d variables", len(names), len(inputs))
	return inputs, nil
}

func hasColumn(df dataframe.DataFrame, name string) bool {
	for _, col := range df.Names() {
		if col == name {
			return true
		}
	}
	return false
}

// evaluate the graph on the bounds given by -bounds, and print the results.
func evaluate(g *graph.Graph) {
	var reader io.Reader
	if *flagBounds != "" {
		f := must.M1(os.Open(*flagBounds))
		defer func() { _ = f.Close() }()
		reader = f
	}
	inputs := must.M1(loadInputBounds(reader, g))

	var options []graph.EvaluateOption
	if *flagProgress {
		bar := progressbar.NewOptions(g.NumNodes(),
			progressbar.OptionSetDescription("Evaluating: "),
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionShowCount(),
			progressbar.OptionSetItsString("nodes"),
			progressbar.OptionSetTheme(progressbar.ThemeUnicode),
			progressbar.OptionClearOnFinish(),
		)
		options = append(options, graph.WithProgress(func(done, _ int) { _ = bar.Set(done) }))
		defer func() { _ = bar.Finish() }()
	}
	values := must.M1(graph.Evaluate[bounds.Bounds](g, bounds.Arithmetic{}, inputs, options...))

	nodes := g.Outputs()
	if *flagAll {
		nodes = g.Nodes()
	}
	fmt.Println(titleStyle.Render("Bounds"))
	table := newTable([]string{"Name", "Shape", "Bounds"}, lipgloss.Right, lipgloss.Left)
	for _, node := range nodes {
		value := values[node.Name()]
		table.Row(hasUnbounded(value), node.Name(), value.Shape().String(), formatBounds(value))
	}
	fmt.Println(table.Render())
}

// hasUnbounded returns whether some element has an infinite end point.
func hasUnbounded(value *tensors.Tensor[bounds.Bounds]) bool {
	for _, b := range value.Flat() {
		if math.IsInf(b.Lower, 0) || math.IsInf(b.Upper, 0) {
			return true
		}
	}
	return false
}

// maxPrintedBounds is the number of elements printed per tensor.
const maxPrintedBounds = 8

func formatBounds(value *tensors.Tensor[bounds.Bounds]) string {
	flat := value.Flat()
	parts := make([]string, 0, min(len(flat), maxPrintedBounds)+1)
	for ii, b := range flat {
		if ii == maxPrintedBounds {
			parts = append(parts, fmt.Sprintf("... (%d more)", len(flat)-maxPrintedBounds))
			break
		}
		parts = append(parts, b.String())
	}
	return strings.Join(parts, " ")
}
