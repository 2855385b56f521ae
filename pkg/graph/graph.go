package graph

import (
	"fmt"
	"slices"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/gvmanaged/pkg/attrs"
	"github.com/matzehuels/gvmanaged/pkg/errors"
)

// Graph is an ordered collection of nodes and edges with graph-level
// attributes. The zero value is not usable; create graphs with [New].
type Graph struct {
	// Attrs holds graph-level attributes (rankdir, label, ...).
	Attrs *attrs.Map

	nodes []*Node
	edges []*Edge

	nodeDefaults *attrs.Map
	edgeDefaults *attrs.Map

	newNode    NodeFactory
	newEdge    EdgeFactory
	newForeign ForeignFactory
	logger     *log.Logger
}

// Option configures a Graph.
type Option func(*Graph)

// WithAttrs sets graph-level attributes.
func WithAttrs(a attrs.A) Option {
	return func(g *Graph) { g.Attrs.Merge(attrs.From(a)) }
}

// WithNodeFactory sets the default node construction strategy.
func WithNodeFactory(f NodeFactory) Option {
	return func(g *Graph) {
		if f != nil {
			g.newNode = f
		}
	}
}

// WithNodeDefaults sets attributes applied to every new node.
// Attributes passed to [Graph.Node] take precedence.
func WithNodeDefaults(a attrs.A) Option {
	return func(g *Graph) { g.nodeDefaults.Merge(attrs.From(a)) }
}

// WithEdgeFactory sets the edge construction strategy.
func WithEdgeFactory(f EdgeFactory) Option {
	return func(g *Graph) {
		if f != nil {
			g.newEdge = f
		}
	}
}

// WithEdgeDefaults sets attributes applied to every new edge.
func WithEdgeDefaults(a attrs.A) Option {
	return func(g *Graph) { g.edgeDefaults.Merge(attrs.From(a)) }
}

// WithForeign sets the factory for the renderer-side graph.
func WithForeign(f ForeignFactory) Option {
	return func(g *Graph) {
		if f != nil {
			g.newForeign = f
		}
	}
}

// WithLogger sets the logger used for debug output.
func WithLogger(l *log.Logger) Option {
	return func(g *Graph) {
		if l != nil {
			g.logger = l
		}
	}
}

// New creates an empty graph. Without options, nodes are plain [Node]
// values and the graph renders as an anonymous DOT digraph.
func New(opts ...Option) *Graph {
	g := &Graph{
		Attrs:        attrs.New(),
		nodeDefaults: attrs.New(),
		edgeDefaults: attrs.New(),
		newNode:      Plain,
		newEdge:      NewEdge,
		newForeign:   Digraph,
		logger:       log.Default(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Node creates a node with the graph's node factory and appends it.
func (g *Graph) Node(a attrs.A) *Node {
	return g.NodeWith(nil, a)
}

// NodeWith creates a node with f instead of the graph's node factory.
// A nil f uses the default factory. The node defaults are merged with a,
// and values in a win.
func (g *Graph) NodeWith(f NodeFactory, a attrs.A) *Node {
	if f == nil {
		f = g.newNode
	}
	merged := g.nodeDefaults.Clone().Merge(attrs.From(a))
	n := f(g, merged)
	if n.graph != g {
		n.graph = g
	}
	g.nodes = append(g.nodes, n)
	return n
}

// Edge connects start to end with the end node as connector.
// Most callers use [Node.Connect] or [Node.To] instead.
func (g *Graph) Edge(start, end *Node, a attrs.A) (*Edge, error) {
	return g.addEdge(start, end, end, a)
}

func (g *Graph) addEdge(start, end, connector *Node, a attrs.A) (*Edge, error) {
	if start == nil || end == nil {
		return nil, errors.New(errors.ErrCodeUnsupportedConnection, "edge endpoints must not be nil")
	}
	if start.graph != g || end.graph != g {
		return nil, errors.New(errors.ErrCodeUnsupportedConnection, "edge endpoints %s and %s do not both belong to this graph", start, end)
	}
	merged := g.edgeDefaults.Clone().Merge(attrs.From(a))
	e, err := g.newEdge(start, end, connector, merged)
	if err != nil {
		return nil, err
	}
	g.edges = append(g.edges, e)
	return e, nil
}

// Nodes returns the nodes in creation order.
func (g *Graph) Nodes() []*Node { return slices.Clone(g.nodes) }

// Edges returns the edges in creation order.
func (g *Graph) Edges() []*Edge { return slices.Clone(g.edges) }

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int { return len(g.nodes) }

// EdgeCount returns the number of edges.
func (g *Graph) EdgeCount() int { return len(g.edges) }

// Roots returns the nodes without incoming edges, in creation order.
func (g *Graph) Roots() []*Node {
	incoming := make(map[*Node]int, len(g.nodes))
	for _, e := range g.edges {
		incoming[e.End]++
	}
	var roots []*Node
	for _, n := range g.nodes {
		if incoming[n] == 0 {
			roots = append(roots, n)
		}
	}
	return roots
}

// Highlight sets a on every node in nodes, overriding existing values.
func Highlight(nodes []*Node, a attrs.A) {
	extra := attrs.From(a)
	for _, n := range nodes {
		n.Attrs.Merge(extra)
	}
}

// Logger returns the graph's logger.
func (g *Graph) Logger() *log.Logger { return g.logger }

func (g *Graph) String() string {
	return fmt.Sprintf("<Graph with %d nodes, %d edges>", len(g.nodes), len(g.edges))
}
