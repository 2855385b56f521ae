package graph

import (
	"fmt"

	"github.com/matzehuels/gvmanaged/pkg/attrs"
	"github.com/matzehuels/gvmanaged/pkg/errors"
)

// EdgeFactory builds an edge from merged attributes.
type EdgeFactory func(start, end, connector *Node, a *attrs.Map) (*Edge, error)

// Edge is a directed connection from Start to End.
type Edge struct {
	Start *Node
	End   *Node
	Attrs *attrs.Map

	connector *Node
}

// NewEdge is the default [EdgeFactory]. A nil connector defaults to end;
// any connector other than start or end is rejected with
// [errors.ErrCodeInvalidConnector].
func NewEdge(start, end, connector *Node, a *attrs.Map) (*Edge, error) {
	if connector == nil {
		connector = end
	}
	if connector != start && connector != end {
		return nil, errors.New(errors.ErrCodeInvalidConnector, "connector %s is neither start nor end of the edge", connector)
	}
	if a == nil {
		a = attrs.New()
	}
	return &Edge{Start: start, End: end, Attrs: a, connector: connector}, nil
}

// Connector returns the node a chained connect continues from.
func (e *Edge) Connector() *Node { return e.connector }

// Endpoint implements [Endpoint] by resolving to the connector. A nil edge
// resolves to nil.
func (e *Edge) Endpoint() *Node {
	if e == nil {
		return nil
	}
	return e.connector
}

// To continues a chain from the edge's connector, like Node.To.
func (e *Edge) To(others ...Endpoint) *Expr {
	return start(e.connector).To(others...)
}

// From continues a chain from the edge's connector, like Node.From.
func (e *Edge) From(others ...Endpoint) *Expr {
	return start(e.connector).From(others...)
}

func (e *Edge) String() string {
	return fmt.Sprintf("<Edge start=%s, end=%s, attrs=%s>", e.Start, e.End, e.Attrs)
}
