// Package dot writes Graphviz DOT source and renders it with Graphviz.
//
// # Overview
//
// [Digraph] accumulates graph, node and edge statements and serializes them
// in the same layout Graphviz's own tooling produces: a tab-indented body,
// one statement per line, attribute lists in square brackets with the label
// first and the remaining keys sorted.
//
//	d := dot.New("")
//	d.Node("a", attrs.Pairs("label", "a"))
//	d.Node("b", attrs.Pairs("label", "b"))
//	d.Edge("a", "b", nil)
//	fmt.Print(d.Source())
//	// digraph {
//	// 	a [label=a]
//	// 	b [label=b]
//	// 	a -> b
//	// }
//
// Identifiers and values are quoted only when DOT requires it: plain
// identifiers, numerals and HTML-like labels (<...>) are written as-is,
// everything else is double-quoted with unescaped quotes escaped. Existing
// backslash escapes such as the line-break marker \n are preserved.
//
// # Rendering
//
// [Render] and [RenderFile] turn DOT source into an output format. The
// native "dot" format is written verbatim; every other format goes through
// [github.com/goccy/go-graphviz], which runs Graphviz in-process:
//
//	err := dot.RenderFile(ctx, src, "svg", "out/graph.svg")
//
// [Validate] parses DOT source with gonum's DOT parser without laying it
// out, which is much cheaper than a full render.
package dot
