// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package graph

import (
	"encoding/gob"
	"os"

	"github.com/gomlx/tfopt/pkg/core/shapes"
	"github.com/gomlx/tfopt/pkg/nn/ops"
	"github.com/gomlx/tfopt/pkg/support/fsutil"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"
)

// Records converts the graph to records: one ParameterValue per ops.Constant node, and one NodeRecord for
// every other node, in insertion order.
func (g *Graph) Records() (nodes []ops.NodeRecord, params []ops.ParameterValue) {
	for _, node := range g.nodes {
		if constant, ok := node.op.(*ops.Constant); ok {
			params = append(params, constant.ParameterValue())
			continue
		}
		nodes = append(nodes, node.op.NodeRecord(node.inputs))
	}
	return
}

// FromRecords builds a graph from its records: first a constant node per parameter, then the nodes, in the
// order given. Each node can only use as input parameters or nodes listed before it.
func FromRecords(nodes []ops.NodeRecord, params []ops.ParameterValue) (*Graph, error) {
	g := New()
	for _, param := range params {
		constant, err := ops.ConstantFromParameter(param)
		if err != nil {
			return nil, err
		}
		if _, err = g.AddOperation(constant); err != nil {
			return nil, err
		}
	}
	for _, record := range nodes {
		inputShapes := make([]shapes.Shape, len(record.InputNames))
		for ii, inputName := range record.InputNames {
			input := g.Node(inputName)
			if input == nil {
				return nil, errors.Errorf("input #%d of node %q is %q, which is not defined before it",
					ii, record.Name, inputName)
			}
			inputShapes[ii] = input.op.OutputShape()
		}
		op, err := record.Operation(inputShapes)
		if err != nil {
			return nil, err
		}
		if _, err = g.AddOperation(op, record.InputNames...); err != nil {
			return nil, err
		}
	}
	klog.V(1).Infof("graph %s built from %d node records and %d parameters", g.id, len(nodes), len(params))
	return g, nil
}

// fileHeader is the first value of a saved graph.
type fileHeader struct {
	NumParams, NumNodes int
}

// Save the graph records to the given file path, in gob format. A leading "~" in the path is replaced by the
// user's home directory.
func (g *Graph) Save(filePath string) error {
	filePath, err := fsutil.ExpandHome(filePath)
	if err != nil {
		return err
	}
	f, err := os.Create(filePath)
	if err != nil {
		return errors.Wrapf(err, "creating %q to save graph", filePath)
	}
	nodes, params := g.Records()
	enc := gob.NewEncoder(f)
	err = enc.Encode(fileHeader{NumParams: len(params), NumNodes: len(nodes)})
	for ii := 0; err == nil && ii < len(params); ii++ {
		err = params[ii].GobSerialize(enc)
	}
	for ii := 0; err == nil && ii < len(nodes); ii++ {
		err = nodes[ii].GobSerialize(enc)
	}
	if err != nil {
		_ = f.Close()
		return errors.WithMessagef(err, "saving graph to %q", filePath)
	}
	if err = f.Close(); err != nil {
		return errors.Wrapf(err, "close file %q, where graph was saved", filePath)
	}
	return nil
}

// Load a graph saved with Graph.Save.
func Load(filePath string) (*Graph, error) {
	filePath, err := fsutil.ExpandHome(filePath)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(filePath)
	if err != nil {
		return nil, errors.Wrapf(err, "opening %q to load graph", filePath)
	}
	defer func() { _ = f.Close() }()
	dec := gob.NewDecoder(f)
	var header fileHeader
	if err = dec.Decode(&header); err != nil {
		return nil, errors.Wrapf(err, "reading header of graph file %q", filePath)
	}
	if header.NumParams < 0 || header.NumNodes < 0 {
		return nil, errors.Errorf("graph file %q is corrupt: header has %d parameters and %d nodes",
			filePath, header.NumParams, header.NumNodes)
	}
	var params []ops.ParameterValue
	for range header.NumParams {
		param, err := ops.GobDeserializeParameterValue(dec)
		if err != nil {
			return nil, errors.WithMessagef(err, "loading graph from %q", filePath)
		}
		params = append(params, param)
	}
	var nodes []ops.NodeRecord
	for range header.NumNodes {
		node, err := ops.GobDeserializeNodeRecord(dec)
		if err != nil {
			return nil, errors.WithMessagef(err, "loading graph from %q", filePath)
		}
		nodes = append(nodes, node)
	}
	g, err := FromRecords(nodes, params)
	if err != nil {
		return nil, errors.WithMessagef(err, "loading graph from %q", filePath)
	}
	return g, nil
}
