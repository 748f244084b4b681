// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

// tfopt_graph inspects and evaluates a graph file saved with graph.Graph.Save.
//
// Usage:
//
//	tfopt_graph -summary -nodes network.bin
//	tfopt_graph -eval -bounds=inputs.csv -progress network.bin
//
// The bounds CSV file has a header and the columns name,index,lower,upper: the bounds of the element at the
// flat index of the variable with the given name. Elements not listed are unbounded.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/gomlx/exceptions"
	"github.com/gomlx/tfopt/pkg/nn/graph"
	"github.com/gomlx/tfopt/pkg/support/fsutil"
	"github.com/janpfeifer/must"
	"github.com/muesli/termenv"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"
)

var (
	flagSummary = flag.Bool("summary", false, "Display a summary of the graph: number of nodes per type, "+
		"variables and parameter sizes.")
	flagNodes = flag.Bool("nodes", false, "List every node of the graph, in evaluation order.")
	flagJSON  = flag.Bool("json", false, "Print the node records and parameters of the graph as JSON, one per line.")
	flagEval  = flag.Bool("eval", false, "Evaluate the graph with interval arithmetic and print the bounds "+
		"of its outputs. See -bounds.")
	flagBounds = flag.String("bounds", "", "CSV file with the bounds of the variables used by -eval, "+
		"with columns name,index,lower,upper. Elements not listed are unbounded.")
	flagAll      = flag.Bool("all", false, "With -eval, print the bounds of every node, not only of the outputs.")
	flagProgress = flag.Bool("progress", false, "Display a progress bar during -eval.")
	flagNoColor  = flag.Bool("no_color", false, "Disable colors in the output tables.")
)

func main() {
	klog.InitFlags(nil)
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		klog.Errorf("Missing graph file to read from. See 'tfopt_graph -help'")
		os.Exit(1)
	}
	if len(args) > 1 {
		klog.Errorf("Too many arguments. See 'tfopt_graph -help'.")
		os.Exit(1)
	}
	if *flagNoColor {
		lipgloss.SetColorProfile(termenv.Ascii)
	}
	err := exceptions.TryCatch[error](func() { report(args[0]) })
	if err != nil {
		klog.Errorf("%+v", err)
		os.Exit(1)
	}
}

func report(graphPath string) {
	graphPath = must.M1(fsutil.ExpandHome(graphPath))
	if !must.M1(fsutil.FileExists(graphPath)) {
		exceptions.Panicf("graph file %q not found", graphPath)
	}
	g := must.M1(graph.Load(graphPath))
	klog.V(1).Infof("loaded %s from %q", g, graphPath)

	if *flagSummary {
		fmt.Println(titleStyle.Render("Summary"))
		fmt.Println(summaryTable(graphPath, g).Render())
	}
	if *flagNodes {
		fmt.Println(titleStyle.Render("Nodes"))
		fmt.Println(nodesTable(g).Render())
	}
	if *flagJSON {
		must.M(printJSON(os.Stdout, g))
	}
	if *flagEval {
		evaluate(g)
	}
	if !*flagSummary && !*flagNodes && !*flagJSON && !*flagEval {
		panic(errors.New("nothing to do: use at least one of -summary, -nodes, -json or -eval"))
	}
}
