// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

// Package graph holds operations connected by named edges: each node is an ops.Operation, and its inputs are
// the names of previously added nodes.
//
// Nodes are kept in insertion order, which is always a topological order, since a node can only take as
// input nodes added before it. Graphs can be converted to and from records (ops.NodeRecord and
// ops.ParameterValue), saved to files, and evaluated on any tensors.Arithmetic.
package graph

import (
	"fmt"
	"strings"

	"github.com/gomlx/tfopt/pkg/core/shapes"
	"github.com/gomlx/tfopt/pkg/nn/evaluator"
	"github.com/gomlx/tfopt/pkg/nn/ops"
	"github.com/gomlx/tfopt/pkg/support/sets"
	"github.com/gomlx/tfopt/pkg/support/xslices"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"
)

// Node is an operation in the graph, with the names of the nodes that feed its inputs.
type Node struct {
	op     ops.Operation
	inputs []string
	index  int
}

// Operation of the node.
func (n *Node) Operation() ops.Operation { return n.op }

// Name of the node, the same as the name of its operation.
func (n *Node) Name() string { return n.op.Name() }

// Inputs returns the names of the nodes feeding the inputs of this node. It must not be changed.
func (n *Node) Inputs() []string { return n.inputs }

// Index of the node in the graph's insertion order.
func (n *Node) Index() int { return n.index }

// String implements fmt.Stringer.
func (n *Node) String() string {
	return fmt.Sprintf("%s(%s) -> %s", n.op.Type(), strings.Join(n.inputs, ", "), n.op.OutputShape())
}

// Graph is an ordered collection of named nodes.
//
// It is not safe for concurrent modification, but it can be evaluated concurrently once built.
type Graph struct {
	id     string
	nodes  []*Node
	byName map[string]*Node

	// consumed holds the names of nodes used as input by some other node.
	consumed sets.Set[string]
}

// New returns an empty graph with a new unique ID.
func New() *Graph {
	return &Graph{
		id:       uuid.NewString(),
		byName:   make(map[string]*Node),
		consumed: sets.Make[string](),
	}
}

// ID uniquely identifies the graph, it's used in logs.
func (g *Graph) ID() string { return g.id }

// String implements fmt.Stringer.
func (g *Graph) String() string {
	return fmt.Sprintf("Graph(id=%s, #nodes=%d)", g.id, len(g.nodes))
}

// NumNodes returns the number of nodes in the graph.
func (g *Graph) NumNodes() int { return len(g.nodes) }

// Nodes returns the nodes in insertion order. It must not be changed.
func (g *Graph) Nodes() []*Node { return g.nodes }

// Node returns the node with the given name, or nil if there is none.
func (g *Graph) Node(name string) *Node { return g.byName[name] }

// UniqueName returns a name, based on the given operation type, that is not used by any node of the graph.
// Use it to name operations that have no natural name.
func (g *Graph) UniqueName(opType ops.OpType) string {
	for {
		name := fmt.Sprintf("%s_%s", strings.ToLower(opType.String()), uuid.NewString()[:8])
		if _, found := g.byName[name]; !found {
			return name
		}
	}
}

// AddOperation appends op to the graph, taking as inputs the nodes with the given names.
//
// It returns an error if the name of op is empty or already used, if an input is not in the graph, or if the
// output shapes of the inputs don't match the input shapes of op. On error the graph is not changed.
func (g *Graph) AddOperation(op ops.Operation, inputs ...string) (*Node, error) {
	name := op.Name()
	if name == "" {
		return nil, errors.Errorf("cannot add %s operation with an empty name, see Graph.UniqueName", op.Type())
	}
	if _, found := g.byName[name]; found {
		return nil, errors.Errorf("graph already has a node named %q", name)
	}
	inputShapes := make([]shapes.Shape, len(inputs))
	for ii, inputName := range inputs {
		input, found := g.byName[inputName]
		if !found {
			return nil, errors.Errorf("input #%d of node %q is %q, which is not in the graph", ii, name, inputName)
		}
		inputShapes[ii] = input.op.OutputShape()
	}
	if err := evaluator.CheckInputShapes(op, inputShapes); err != nil {
		return nil, errors.WithMessagef(err, "adding %s operation to graph", op.Type())
	}
	node := &Node{op: op, inputs: xslices.Copy(inputs), index: len(g.nodes)}
	g.nodes = append(g.nodes, node)
	g.byName[name] = node
	g.consumed.Insert(inputs...)
	klog.V(2).Infof("graph %s: added node %s", g.id, node)
	return node, nil
}

// Outputs returns the nodes not used as input by any other node, in insertion order.
func (g *Graph) Outputs() []*Node {
	var outputs []*Node
	for _, node := range g.nodes {
		if !g.consumed.Has(node.Name()) {
			outputs = append(outputs, node)
		}
	}
	return outputs
}

// Variables returns the names of the ops.Variable nodes, in insertion order. These are the values that must
// be given to evaluate the graph.
func (g *Graph) Variables() []string {
	var names []string
	for _, node := range g.nodes {
		if _, ok := node.op.(*ops.Variable); ok {
			names = append(names, node.Name())
		}
	}
	return names
}

// CountByType returns the number of nodes of each operation type.
func (g *Graph) CountByType() map[ops.OpType]int {
	counts := make(map[ops.OpType]int)
	for _, node := range g.nodes {
		counts[node.op.Type()]++
	}
	return counts
}
