package graph

import (
	"context"
	"io"
	"regexp"
	"strings"

	"github.com/matzehuels/gvmanaged/pkg/attrs"
	"github.com/matzehuels/gvmanaged/pkg/errors"
	"github.com/matzehuels/gvmanaged/pkg/render/dot"
)

// NodeDecl is a node as handed to a [Foreign] graph.
type NodeDecl struct {
	ID    string
	Kind  string
	Attrs *attrs.Map
}

// EdgeDecl is an edge as handed to a [Foreign] graph.
type EdgeDecl struct {
	Tail  string
	Head  string
	Attrs *attrs.Map
}

// Foreign is the renderer-side graph a [Graph] is translated into.
// Implementations receive nodes before edges, each in creation order.
type Foreign interface {
	Node(NodeDecl) error
	Edge(EdgeDecl) error
	Source() string
}

// ForeignFactory creates an empty foreign graph. It receives a copy of the
// graph attributes and may consume entries from it.
type ForeignFactory func(graphAttrs *attrs.Map) (Foreign, error)

// Digraph is the default [ForeignFactory]: an anonymous DOT digraph with the
// graph attributes as its "graph" statement.
func Digraph(graphAttrs *attrs.Map) (Foreign, error) {
	d := dot.New("")
	d.GraphAttrs = graphAttrs
	return digraph{d}, nil
}

type digraph struct{ *dot.Digraph }

func (d digraph) Node(n NodeDecl) error {
	a := n.Attrs.Clone()
	a.Delete("name")
	d.Digraph.Node(n.ID, a)
	return nil
}

func (d digraph) Edge(e EdgeDecl) error {
	d.Digraph.Edge(e.Tail, e.Head, e.Attrs)
	return nil
}

var nonWord = regexp.MustCompile(`[^\p{L}\p{N}_]`)

// fallbackName is the identifier base of nodes whose label has no word
// characters.
const fallbackName = "node"

// assignNames gives every node a unique identifier and writes it back to
// the node's "name" attribute. Explicit names are kept unless they collide
// with an earlier node.
func (g *Graph) assignNames() {
	used := make(map[string]bool, len(g.nodes))
	for _, n := range g.nodes {
		name, ok := n.Attrs.Get("name")
		if !ok {
			name = nonWord.ReplaceAllString(n.Label(), "")
		}
		if name == "" {
			name = fallbackName
		}
		for used[name] {
			name += "_"
		}
		used[name] = true
		n.Attrs.Set("name", name)
	}
}

// Foreign translates g into a fresh foreign graph.
// Identifiers are reassigned first, so the result reflects the current
// state of the graph.
func (g *Graph) Foreign() (Foreign, error) {
	f, err := g.newForeign(g.Attrs.Clone())
	if err != nil {
		return nil, err
	}
	g.assignNames()
	for _, n := range g.nodes {
		if err := f.Node(NodeDecl{ID: n.Name(), Kind: n.Kind, Attrs: n.Attrs.Clone()}); err != nil {
			return nil, err
		}
	}
	for _, e := range g.edges {
		if err := f.Edge(EdgeDecl{Tail: e.Start.Name(), Head: e.End.Name(), Attrs: e.Attrs.Clone()}); err != nil {
			return nil, err
		}
	}
	g.logger.Debug("translated graph", "nodes", len(g.nodes), "edges", len(g.edges))
	return f, nil
}

// Source returns the DOT text of g.
func (g *Graph) Source() (string, error) {
	f, err := g.Foreign()
	if err != nil {
		return "", err
	}
	return f.Source(), nil
}

// Render renders g.
//
// With an empty filename the DOT text is returned and format must be empty
// or "dot"; any other format fails with [errors.ErrCodeMissingDestination].
// With a filename the output is written there (parent directories are
// created) and the DOT text is returned as well. An empty format is inferred
// from the filename's extension.
func (g *Graph) Render(ctx context.Context, filename, format string) (string, error) {
	if format == "" && filename != "" {
		format = dot.FormatFromPath(filename)
	}
	if format == "" {
		format = dot.Native
	}
	format = strings.ToLower(format)
	if err := errors.ValidateFormat(format, dot.Formats); err != nil {
		return "", err
	}
	if filename == "" && format != dot.Native {
		return "", errors.New(errors.ErrCodeMissingDestination, "rendering to %s requires a filename", format)
	}

	src, err := g.Source()
	if err != nil {
		return "", err
	}
	if filename == "" {
		return src, nil
	}
	if err := dot.RenderFile(ctx, src, format, filename); err != nil {
		return "", err
	}
	g.logger.Debug("rendered graph", "file", filename, "format", format)
	return src, nil
}

// RenderTo renders g to w in the given format. An empty format is DOT.
func (g *Graph) RenderTo(ctx context.Context, w io.Writer, format string) error {
	src, err := g.Source()
	if err != nil {
		return err
	}
	return dot.Render(ctx, src, strings.ToLower(format), w)
}
