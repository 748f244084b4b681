// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
	lgtable "github.com/charmbracelet/lipgloss/table"
	"github.com/dustin/go-humanize"
	"github.com/gomlx/tfopt/pkg/nn/graph"
	"github.com/gomlx/tfopt/pkg/nn/ops"
	"github.com/gomlx/tfopt/pkg/support/xslices"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Padding(1, 4, 1, 4)

	headerRowStyle = lipgloss.NewStyle().Reverse(true).
			Padding(0, 2, 0, 2).Align(lipgloss.Center)
	oddRowStyle = lipgloss.NewStyle().Faint(false).
			PaddingLeft(1).PaddingRight(1)
	evenRowStyle = lipgloss.NewStyle().Faint(true).
			PaddingLeft(1).PaddingRight(1)
	unboundedRowStyle = lipgloss.NewStyle().
				Foreground(lipgloss.AdaptiveColor{Light: "9", Dark: "9"}).
				Bold(true).
				PaddingLeft(1).PaddingRight(1)
)

// highlightTable is a table where some rows can be highlighted.
type highlightTable struct {
	*lgtable.Table
	count       int
	highlighted map[int]bool
}

// Row appends a row, highlighted if requested.
func (t *highlightTable) Row(highlight bool, row ...string) {
	if highlight {
		t.highlighted[t.count] = true
	}
	t.Table.Row(row...)
	t.count++
}

// newTable returns a table with alternating row styles. Alignments are given per column, the last one
// is used for the remaining columns.
func newTable(headers []string, alignments ...lipgloss.Position) *highlightTable {
	t := &highlightTable{highlighted: make(map[int]bool)}
	t.Table = lgtable.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("99"))).
		StyleFunc(func(row, col int) (s lipgloss.Style) {
			switch {
			case row < 0:
				return headerRowStyle
			case t.highlighted[row]:
				s = unboundedRowStyle
			case row%2 == 0:
				s = oddRowStyle
			default:
				s = evenRowStyle
			}
			alignment := lipgloss.Left
			if col < len(alignments) {
				alignment = alignments[col]
			} else if len(alignments) > 0 {
				alignment = alignments[len(alignments)-1]
			}
			return s.Align(alignment)
		})
	if len(headers) > 0 {
		t.Headers(headers...)
	}
	return t
}

func summaryTable(graphPath string, g *graph.Graph) *highlightTable {
	table := newTable(nil, lipgloss.Right, lipgloss.Left)
	table.Row(false, "file", graphPath)
	table.Row(false, "graph id", g.ID())
	table.Row(false, "# nodes", humanize.Comma(int64(g.NumNodes())))
	table.Row(false, "variables", strings.Join(g.Variables(), ", "))
	table.Row(false, "outputs", strings.Join(xslices.Map(g.Outputs(), (*graph.Node).Name), ", "))

	var numParams, numValues int
	for _, node := range g.Nodes() {
		if constant, ok := node.Operation().(*ops.Constant); ok {
			numParams++
			numValues += constant.Value().Size()
		}
	}
	table.Row(false, "# parameters", humanize.Comma(int64(numParams)))
	table.Row(false, "# parameter values", humanize.Comma(int64(numValues)))
	table.Row(false, "parameters memory", humanize.Bytes(uint64(numValues)*8))

	counts := g.CountByType()
	opTypes := xslices.Keys(counts)
	slices.Sort(opTypes)
	for _, opType := range opTypes {
		table.Row(false, fmt.Sprintf("# %s", opType), humanize.Comma(int64(counts[opType])))
	}
	return table
}

func nodesTable(g *graph.Graph) *highlightTable {
	table := newTable([]string{"#", "Name", "Type", "Inputs", "Shape", "Options"},
		lipgloss.Right, lipgloss.Left)
	for _, node := range g.Nodes() {
		op := node.Operation()
		table.Row(false, fmt.Sprint(node.Index()), node.Name(), op.Type().String(),
			strings.Join(node.Inputs(), ", "), op.OutputShape().String(), op.Options().String())
	}
	return table
}
