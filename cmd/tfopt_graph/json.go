// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"io"

	"github.com/gomlx/tfopt/pkg/nn/graph"
	"github.com/pkg/errors"
)

// printJSON writes the parameters and then the node records of the graph, one JSON object per line.
func printJSON(w io.Writer, g *graph.Graph) error {
	nodes, params := g.Records()
	for _, param := range params {
		data, err := param.MarshalJSON()
		if err != nil {
			return err
		}
		if _, err = fmt.Fprintf(w, "%s\n", data); err != nil {
			return errors.Wrap(err, "writing JSON")
		}
	}
	for _, node := range nodes {
		data, err := node.MarshalJSON()
		if err != nil {
			return err
		}
		if _, err = fmt.Fprintf(w, "%s\n", data); err != nil {
			return errors.Wrap(err, "writing JSON")
		}
	}
	return nil
}
