// Package graph provides a declarative directed-graph model rendered by Graphviz.
//
// # Overview
//
// A [Graph] owns an ordered list of [Node] and [Edge] values plus graph-level
// attributes. Nodes are created through the graph, connected with a compact
// chainable notation, and the whole model is translated to DOT when rendered:
//
//	g := graph.New(graph.WithAttrs(attrs.A{"rankdir": "LR"}))
//	foo := g.Node(attrs.A{"label": "Foo!"})
//	bar := g.Node(attrs.A{"label": "BAR", "fontcolor": "red", "penwidth": 1.5})
//	if err := foo.To(bar).To(foo).Err(); err != nil {
//	    return err
//	}
//	src, err := g.Source()
//
// # Connecting Nodes
//
// [Node.Connect] is the primitive: it creates one edge, optionally reversed.
// [Node.To] and [Node.From] replace the ">>" and "<<" operators of a chain:
//
//	a.To(b).To(c)          // a -> b, b -> c
//	a.From(b).From(c)      // b -> a, c -> a
//	d.To(a, c)             // d -> a, d -> c
//	graph.Each(a, c).To(e) // a -> e, c -> e
//	graph.Each(b, d).From(e) // e -> b, e -> d
//
// Every step resolves through the connector of the previous edge: the node
// that was passed in as the other operand when not reversed, the receiver
// when reversed. Connecting a list produces a terminal result; continuing the
// chain from it fails.
//
// Connecting nodes of different graphs, or of different variants, is not an
// error in the usual sense: it reports [errors.ErrCodeUnsupportedConnection]
// so callers can decide how to fall back.
//
// # Identifiers
//
// Node identifiers are assigned on every render. A node without a "name"
// attribute takes its label with all non-word characters removed; collisions
// are resolved in creation order by appending "_". The identifier is written
// back into the node's "name" attribute, so later renders of an unchanged
// graph produce byte-identical output.
//
// # Customization
//
// Construction is injected rather than subclassed. [NodeFactory] builds nodes
// (see package wrap for a label-wrapping factory), [EdgeFactory] builds edges
// and [ForeignFactory] creates the renderer-side graph (see package diagram).
//
// # Concurrency
//
// A Graph is not safe for concurrent use. Callers must serialize access.
package graph
