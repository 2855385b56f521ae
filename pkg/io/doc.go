// Package io reads graph manifests: declarative descriptions of a graph in
// TOML, YAML or JSON.
//
// # Manifest Format
//
// A manifest names the graph type, graph-level attributes, default node and
// edge attributes, the nodes, and the connections between them:
//
//	type = "graph"        # or "diagram"
//	wrap = 20             # wrap node labels at 20 characters (0 disables)
//	chains = ["foo >> bar >> foo", "[foo, bar] >> baz"]
//
//	[attrs]
//	rankdir = "LR"
//
//	[node_attrs]
//	shape = "box"
//
//	[[nodes]]
//	ref = "foo"           # defaults to the label
//	label = "Foo!"
//
//	[[nodes]]
//	ref = "bar"
//	label = "BAR"
//	attrs = { fontcolor = "red", penwidth = 1.5 }
//
//	[[nodes]]
//	label = "baz"
//
//	[[edges]]
//	from = "bar"
//	to = "baz"
//	attrs = { style = "dashed" }
//
// Diagram nodes additionally take "kind" and "package".
//
// # Chains
//
// Chains use the connect notation of package graph with ">>" and "<<" as
// operators and bracketed lists of node refs:
//
//	a >> b << c        // a -> b, c -> b
//	d >> [a, c]        // d -> a, d -> c
//	[b, d] << e        // e -> b, e -> d
//
// A list ends a chain; nothing may follow it.
//
// # Errors
//
// Malformed manifests, unknown fields, duplicate refs, references to
// undefined nodes and bad chains fail with [errors.ErrCodeInvalidInput].
// A missing manifest file fails with [errors.ErrCodeNotFound].
//
// [errors.ErrCodeInvalidInput]: github.com/matzehuels/gvmanaged/pkg/errors.ErrCodeInvalidInput
// [errors.ErrCodeNotFound]: github.com/matzehuels/gvmanaged/pkg/errors.ErrCodeNotFound
package io
