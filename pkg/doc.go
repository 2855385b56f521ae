// Package pkg provides the core libraries for gvmanaged, a declarative graph
// layer over Graphviz.
//
// # Overview
//
// Graphs are built in Go (or described in a manifest), translated to DOT and
// handed to Graphviz for layout. The pkg directory is organized into four
// areas:
//
//  1. Model: [attrs], [graph], [wrap], [diagram]
//  2. Rendering: [render/dot]
//  3. Input: [io] manifests and the connect-chain notation
//  4. Infrastructure: [pipeline], [cache], [observability], [errors], [buildinfo]
//
// # Architecture
//
// The typical data flow:
//
//	TOML / YAML / JSON manifest
//	         ↓
//	    [io] package (decode, build nodes, apply chains)
//	         ↓
//	    [graph] package (nodes, edges, identifiers)
//	         ↓
//	    [render/dot] package (DOT source, Graphviz layout)
//	         ↓
//	    DOT/SVG/PNG/JPG output
//
// # Quick Start
//
// Build and render a graph in code:
//
//	g := graph.New(graph.WithAttrs(attrs.A{"rankdir": "LR"}))
//	foo := g.Node(attrs.A{"label": "Foo!"})
//	bar := g.Node(attrs.A{"label": "BAR", "fontcolor": "red"})
//	if err := foo.To(bar).To(foo).Err(); err != nil {
//	    return err
//	}
//	src, err := g.Render(ctx, "out/foo.svg", "")
//
// Architecture diagrams resolve node kinds to icons:
//
//	d := diagram.New(attrs.A{"name": "Web Service", "direction": "TB"})
//	lb := d.Node(attrs.A{"label": "lb", "kind": "aws.network.ELB"})
//	db := d.Node(attrs.A{"label": "db", "kind": "aws.database.RDS"})
//	lb.To(db)
//	path, err := diagram.Save(ctx, d)
//
// Run a manifest through the cached pipeline, as the CLI and server do:
//
//	m, err := io.Load("graph.toml")
//	runner := pipeline.NewRunner(c, pipeline.DefaultTTL, logger)
//	res, err := runner.Execute(ctx, pipeline.Options{Manifest: m, Format: "svg"})
//
// # Main Packages
//
// [attrs] - Ordered string attribute maps. Values are stringified on insert.
//
// [graph] - The graph model: creation-ordered nodes and edges, the connect
// chain (To/From/Each), identifier assignment and the foreign-graph hook.
//
// [wrap] - A node factory that word-wraps long labels.
//
// [diagram] - Architecture diagrams: a kind registry mapping dotted kind
// paths to icon node types, class-level options and icon sizing.
//
// [render/dot] - DOT writing and quoting, Graphviz rendering through
// go-graphviz, and well-formedness checks through gonum's DOT parser.
//
// [io] - Graph manifests in TOML, YAML or JSON.
//
// [pipeline] - Build and render with artifact caching, shared by the CLI and
// the HTTP server.
//
// [cache] - Artifact caches (null, file, Redis) keyed by DOT source hash.
//
// [observability] - Render, cache and HTTP hooks for metrics backends.
//
// [errors] - Structured errors with machine-readable codes.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...        # All tests
//	go test ./pkg/graph/...  # Specific package
//	go test -run Example     # Examples only
//
// [attrs]: https://pkg.go.dev/github.com/matzehuels/gvmanaged/pkg/attrs
// [graph]: https://pkg.go.dev/github.com/matzehuels/gvmanaged/pkg/graph
// [wrap]: https://pkg.go.dev/github.com/matzehuels/gvmanaged/pkg/wrap
// [diagram]: https://pkg.go.dev/github.com/matzehuels/gvmanaged/pkg/diagram
// [render/dot]: https://pkg.go.dev/github.com/matzehuels/gvmanaged/pkg/render/dot
// [io]: https://pkg.go.dev/github.com/matzehuels/gvmanaged/pkg/io
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/gvmanaged/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/gvmanaged/pkg/cache
// [observability]: https://pkg.go.dev/github.com/matzehuels/gvmanaged/pkg/observability
// [errors]: https://pkg.go.dev/github.com/matzehuels/gvmanaged/pkg/errors
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/gvmanaged/pkg/buildinfo
package pkg
