// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package graph

import (
	"github.com/gomlx/exceptions"
	"github.com/gomlx/tfopt/pkg/core/tensors"
	"github.com/gomlx/tfopt/pkg/nn/evaluator"
	"github.com/gomlx/tfopt/pkg/support/sets"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"
)

// EvaluateOption configures Evaluate.
type EvaluateOption func(*evaluateConfig)

type evaluateConfig struct {
	progress      func(done, total int)
	domainOptions []evaluator.Option
}

// WithProgress calls fn after each node is evaluated, with the number of nodes evaluated so far and the total.
func WithProgress(fn func(done, total int)) EvaluateOption {
	return func(c *evaluateConfig) { c.progress = fn }
}

// WithDomainOptions passes options to the evaluator.FallibleTensorDomain used, e.g. evaluator.RejectNonlinear.
func WithDomainOptions(options ...evaluator.Option) EvaluateOption {
	return func(c *evaluateConfig) { c.domainOptions = append(c.domainOptions, options...) }
}

// Evaluate every node of the graph, in insertion order, using the arithmetic ar. Inputs gives the values of
// the ops.Variable nodes, by name.
//
// It returns the value of every node, by name. Evaluation stops at the first node that fails.
func Evaluate[T any](g *Graph, ar tensors.Arithmetic[T], inputs map[string]*tensors.Tensor[T],
	options ...EvaluateOption) (values map[string]*tensors.Tensor[T], err error) {
	var config evaluateConfig
	for _, option := range options {
		option(&config)
	}

	variables := sets.MakeWith(g.Variables()...)
	for _, name := range sets.Sorted(variables) {
		if _, found := inputs[name]; !found {
			return nil, errors.Errorf("graph %s: no value given for variable %q", g.id, name)
		}
	}
	for name := range inputs {
		if !variables.Has(name) {
			klog.Warningf("graph %s: value given for %q, which is not a variable of the graph, it will be ignored",
				g.id, name)
		}
	}

	e := evaluator.NewFallibleTensorEvaluator(ar, inputs, config.domainOptions...)
	values = make(map[string]*tensors.Tensor[T], len(g.nodes))
	err = exceptions.TryCatch[error](func() {
		nodeInputs := make([]*tensors.Tensor[T], 0, 4)
		for ii, node := range g.nodes {
			nodeInputs = nodeInputs[:0]
			for _, inputName := range node.inputs {
				nodeInputs = append(nodeInputs, values[inputName])
			}
			value, nodeErr := e.Evaluate(node.op, nodeInputs...).Unpack()
			if nodeErr != nil {
				panic(errors.WithMessagef(nodeErr, "graph %s", g.id))
			}
			values[node.Name()] = value
			if config.progress != nil {
				config.progress(ii+1, len(g.nodes))
			}
		}
	})
	if err != nil {
		return nil, err
	}
	klog.V(1).Infof("graph %s: evaluated %d nodes", g.id, len(g.nodes))
	return values, nil
}
