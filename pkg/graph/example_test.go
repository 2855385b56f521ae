package graph_test

import (
	"fmt"

	"github.com/matzehuels/gvmanaged/pkg/attrs"
	"github.com/matzehuels/gvmanaged/pkg/graph"
)

func ExampleGraph_Source() {
	g := graph.New(graph.WithAttrs(attrs.A{"rankdir": "LR"}))
	foo := g.Node(attrs.A{"label": "Foo!"})
	bar := g.Node(attrs.A{"label": "BAR", "fontcolor": "red"})
	if err := foo.To(bar).To(foo).Err(); err != nil {
		fmt.Println("Error:", err)
		return
	}

	src, err := g.Source()
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	fmt.Print(src)
	// Output:
	// digraph {
	// 	graph [rankdir=LR]
	// 	Foo [label="Foo!"]
	// 	BAR [label=BAR fontcolor=red]
	// 	Foo -> BAR
	// 	BAR -> Foo
	// }
}

func ExampleEach() {
	g := graph.New()
	a := g.Node(attrs.A{"label": "a"})
	b := g.Node(attrs.A{"label": "b"})
	c := g.Node(attrs.A{"label": "c"})

	x := graph.Each(a, b).To(c)
	for _, e := range x.Edges() {
		fmt.Println(e.Start.Label(), "->", e.End.Label())
	}
	// Output:
	// a -> c
	// b -> c
}
