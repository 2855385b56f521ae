package graph

import (
	"github.com/matzehuels/gvmanaged/pkg/errors"
)

// Endpoint is anything that can be an operand of a connect expression:
// a [Node], an [Edge] (resolved through its connector) or an [Expr].
type Endpoint interface {
	Endpoint() *Node
}

// Expr is a chained connect expression. Each step connects the current
// left operand to the given endpoints and keeps every created edge.
//
// The first error sticks: later steps are no-ops and [Expr.Err] reports it.
type Expr struct {
	head     []*Node
	list     bool
	terminal bool
	edges    []*Edge
	err      error
}

// Each starts an expression whose left operand is a list of nodes.
//
//	graph.Each(a, c).To(e)   // a -> e, c -> e
//	graph.Each(b, d).From(e) // e -> b, e -> d
func Each(nodes ...*Node) *Expr {
	return &Expr{head: nodes, list: true}
}

func start(n *Node) *Expr {
	return &Expr{head: []*Node{n}}
}

// To connects n to others (n >> others). With several endpoints the result
// is terminal.
func (n *Node) To(others ...Endpoint) *Expr {
	return start(n).To(others...)
}

// From connects others to n (n << others). With several endpoints the
// result is terminal.
func (n *Node) From(others ...Endpoint) *Expr {
	return start(n).From(others...)
}

// To continues the chain in the forward direction.
func (x *Expr) To(others ...Endpoint) *Expr {
	return x.step(false, others)
}

// From continues the chain in the reverse direction.
func (x *Expr) From(others ...Endpoint) *Expr {
	return x.step(true, others)
}

func (x *Expr) step(reverse bool, others []Endpoint) *Expr {
	if x.err != nil {
		return x
	}
	if x.terminal {
		x.err = errors.New(errors.ErrCodeUnsupportedConnection, "cannot continue a chain after connecting a list of nodes")
		return x
	}
	if len(others) == 0 || len(x.head) == 0 {
		x.err = errors.New(errors.ErrCodeUnsupportedConnection, "connect needs an operand on both sides")
		return x
	}

	targets := make([]*Node, len(others))
	for i, o := range others {
		if ox, ok := o.(*Expr); ok && ox != nil && ox.err != nil {
			x.err = ox.err
			return x
		}
		if o == nil || o.Endpoint() == nil {
			x.err = errors.New(errors.ErrCodeUnsupportedConnection, "cannot connect to nil")
			return x
		}
		targets[i] = o.Endpoint()
	}

	switch {
	case !x.list && len(targets) == 1:
		e, err := x.head[0].Connect(targets[0], reverse, nil)
		if err != nil {
			x.err = err
			return x
		}
		x.edges = append(x.edges, e)
		x.head = []*Node{e.Connector()}
	case !x.list:
		edges, err := x.head[0].ConnectAll(targets, reverse, nil)
		x.edges = append(x.edges, edges...)
		x.err = err
		x.terminal = true
	case len(targets) == 1:
		// A list on the left is connected from the right operand's side,
		// with the direction flipped.
		edges, err := targets[0].ConnectAll(x.head, !reverse, nil)
		x.edges = append(x.edges, edges...)
		x.err = err
		x.terminal = true
	default:
		x.err = errors.New(errors.ErrCodeUnsupportedConnection, "cannot connect a list of nodes to a list of nodes")
	}
	return x
}

// Edges returns every edge created by the expression, in creation order.
func (x *Expr) Edges() []*Edge { return x.edges }

// Edge returns the most recently created edge, or nil.
func (x *Expr) Edge() *Edge {
	if len(x.edges) == 0 {
		return nil
	}
	return x.edges[len(x.edges)-1]
}

// Connector returns the node the next step would continue from. It is nil
// after a failure or a list step.
func (x *Expr) Connector() *Node {
	if x == nil || x.err != nil || x.terminal || x.list || len(x.head) != 1 {
		return nil
	}
	return x.head[0]
}

// Endpoint implements [Endpoint].
func (x *Expr) Endpoint() *Node { return x.Connector() }

// Err returns the first error encountered by the expression.
func (x *Expr) Err() error { return x.err }
