package io

import (
	"fmt"
	"maps"

	"github.com/matzehuels/gvmanaged/pkg/attrs"
	"github.com/matzehuels/gvmanaged/pkg/diagram"
	"github.com/matzehuels/gvmanaged/pkg/errors"
	"github.com/matzehuels/gvmanaged/pkg/graph"
	"github.com/matzehuels/gvmanaged/pkg/wrap"
)

// Build constructs the graph m describes. Extra options are passed to
// [graph.New] after the ones derived from m.
func Build(m *Manifest, opts ...graph.Option) (*graph.Graph, error) {
	g, err := newGraph(m, opts)
	if err != nil {
		return nil, err
	}

	nodes := make(map[string]*graph.Node, len(m.Nodes))
	for i, spec := range m.Nodes {
		ref := spec.Ref
		if ref == "" {
			ref = spec.Label
		}
		if ref == "" {
			return nil, errors.New(errors.ErrCodeInvalidInput, "node %d needs a ref or a label", i)
		}
		if _, dup := nodes[ref]; dup {
			return nil, errors.New(errors.ErrCodeInvalidInput, "duplicate node ref %q", ref)
		}
		nodes[ref] = g.Node(nodeAttrs(m, spec))
	}

	for _, e := range m.Edges {
		ends, err := lookup(nodes, []string{e.From, e.To})
		if err != nil {
			return nil, err
		}
		if _, err := ends[0].Connect(ends[1], false, e.Attrs); err != nil {
			return nil, fmt.Errorf("edge %s -> %s: %w", e.From, e.To, err)
		}
	}

	for _, src := range m.Chains {
		c, err := ParseChain(src)
		if err != nil {
			return nil, err
		}
		if _, err := c.Apply(nodes); err != nil {
			return nil, fmt.Errorf("chain %q: %w", src, err)
		}
	}

	g.Logger().Debug("built graph from manifest", "type", m.Type, "nodes", g.NodeCount(), "edges", g.EdgeCount())
	return g, nil
}

func newGraph(m *Manifest, opts []graph.Option) (*graph.Graph, error) {
	if m.Wrap < 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "wrap must not be negative, got %d", m.Wrap)
	}
	base := []graph.Option{
		graph.WithNodeDefaults(m.NodeAttrs),
		graph.WithEdgeDefaults(m.EdgeAttrs),
	}

	switch m.Type {
	case "", TypeGraph:
		base = append(base, graph.WithAttrs(m.Attrs))
		if m.Wrap > 0 {
			base = append(base, graph.WithNodeFactory(wrap.LongLabels(m.Wrap)))
		}
		return graph.New(append(base, opts...)...), nil
	case TypeDiagram:
		dopts := []diagram.Option{diagram.WithGraphOptions(append(base, opts...)...)}
		if m.IconDir != "" {
			dopts = append(dopts, diagram.WithIconDir(m.IconDir))
		}
		return diagram.New(m.Attrs, dopts...), nil
	default:
		return nil, errors.New(errors.ErrCodeInvalidInput, "unknown graph type %q (must be %s or %s)", m.Type, TypeGraph, TypeDiagram)
	}
}

func nodeAttrs(m *Manifest, spec NodeSpec) attrs.A {
	a := make(attrs.A, len(spec.Attrs)+3)
	maps.Copy(a, spec.Attrs)
	if spec.Label != "" {
		a["label"] = spec.Label
		// Diagram nodes come from the diagram factory, so wrapping is
		// applied to the label directly.
		if m.Type == TypeDiagram && m.Wrap > 0 {
			a["label"] = wrap.Wrap(spec.Label, m.Wrap)
		}
	}
	if spec.Kind != "" {
		a["kind"] = spec.Kind
	}
	if spec.Package != nil {
		a["package"] = *spec.Package
	}
	return a
}
