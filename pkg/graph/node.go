package graph

import (
	"fmt"

	"github.com/matzehuels/gvmanaged/pkg/attrs"
	"github.com/matzehuels/gvmanaged/pkg/errors"
)

// PlainVariant is the variant of nodes built by [Plain].
const PlainVariant = "node"

// NodeFactory builds a node bound to g from already merged attributes.
// Factories may rewrite or consume attributes before calling [NewNode].
type NodeFactory func(g *Graph, a *attrs.Map) *Node

// Plain is the default node factory.
func Plain(g *Graph, a *attrs.Map) *Node {
	return NewNode(g, PlainVariant, a)
}

// Node is a graph vertex. Identity is by pointer: two nodes with identical
// attributes stay distinct.
type Node struct {
	// Attrs are the node's attributes. After a render they include the
	// assigned identifier under "name".
	Attrs *attrs.Map

	// Kind names the renderer-side node type. Plain graphs ignore it;
	// diagram graphs resolve it through their kind registry.
	Kind string

	graph   *Graph
	variant string
}

// NewNode creates a node of the given variant bound to g. It does not add
// the node to g; factories return it to [Graph.NodeWith], which does.
// Only nodes of the same variant can be connected.
func NewNode(g *Graph, variant string, a *attrs.Map) *Node {
	if a == nil {
		a = attrs.New()
	}
	return &Node{Attrs: a, graph: g, variant: variant}
}

// Graph returns the graph the node belongs to.
func (n *Node) Graph() *Graph { return n.graph }

// Variant returns the construction variant of the node.
func (n *Node) Variant() string { return n.variant }

// Name returns the node identifier. It is empty until the node has been
// rendered or given an explicit "name" attribute.
func (n *Node) Name() string { return n.Attrs.Value("name") }

// Label returns the node's label attribute.
func (n *Node) Label() string { return n.Attrs.Value("label") }

// Endpoint implements [Endpoint].
func (n *Node) Endpoint() *Node { return n }

// Connect creates an edge between n and other through the owning graph.
//
// Without reverse the edge runs n -> other; with reverse, other -> n. The
// edge's connector is other when not reversed and n when reversed, which is
// the end node in both cases.
//
// If other is nil, of a different variant, or bound to a different graph,
// Connect returns an error with code [errors.ErrCodeUnsupportedConnection].
func (n *Node) Connect(other *Node, reverse bool, a attrs.A) (*Edge, error) {
	if !n.compatible(other) {
		return nil, errors.New(errors.ErrCodeUnsupportedConnection, "cannot connect %s to %s", n, other)
	}
	start, end, connector := n, other, other
	if reverse {
		start, end, connector = other, n, n
	}
	return n.graph.addEdge(start, end, connector, a)
}

// ConnectAll connects n to every node in others, in order. It stops at the
// first failure and returns the edges created before it together with the
// error; those edges stay in the graph.
func (n *Node) ConnectAll(others []*Node, reverse bool, a attrs.A) ([]*Edge, error) {
	edges := make([]*Edge, 0, len(others))
	for _, other := range others {
		e, err := n.Connect(other, reverse, a)
		if err != nil {
			return edges, err
		}
		edges = append(edges, e)
	}
	return edges, nil
}

func (n *Node) compatible(other *Node) bool {
	return other != nil && other.variant == n.variant && other.graph == n.graph
}

func (n *Node) String() string {
	if n == nil {
		return "<nil>"
	}
	return fmt.Sprintf("<Node %s attrs=%s>", n.variant, n.Attrs)
}
