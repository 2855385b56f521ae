// Package wrap breaks long node labels into several lines.
//
// Lines are joined with the two-character DOT escape `\n`, which Graphviz
// renders as a centered line break. Words are never split: a word longer
// than the width stays on a line of its own.
package wrap

import (
	"strings"
	"unicode/utf8"

	"github.com/matzehuels/gvmanaged/pkg/attrs"
	"github.com/matzehuels/gvmanaged/pkg/graph"
)

// DefaultWidth is the line length used by [Nodes].
const DefaultWidth = 20

// Variant is the node variant produced by [LongLabels].
const Variant = "wrap"

// lineBreak is the DOT escape sequence for a centered line break.
const lineBreak = `\n`

// Wrap greedily fills lines of at most width characters with the words of
// label. Labels no longer than width, and non-positive widths, are returned
// unchanged.
func Wrap(label string, width int) string {
	if width <= 0 || utf8.RuneCountInString(label) <= width {
		return label
	}
	var lines []string
	var line strings.Builder
	n := 0
	for _, word := range strings.Fields(label) {
		wl := utf8.RuneCountInString(word)
		if n > 0 && n+1+wl > width {
			lines = append(lines, line.String())
			line.Reset()
			n = 0
		}
		if n > 0 {
			line.WriteByte(' ')
			n++
		}
		line.WriteString(word)
		n += wl
	}
	if n > 0 {
		lines = append(lines, line.String())
	}
	return strings.Join(lines, lineBreak)
}

// LongLabels returns a node factory that wraps labels to width characters
// before the node is created.
func LongLabels(width int) graph.NodeFactory {
	return func(g *graph.Graph, a *attrs.Map) *graph.Node {
		if label, ok := a.Get("label"); ok {
			a.Set("label", Wrap(label, width))
		}
		return graph.NewNode(g, Variant, a)
	}
}

// Nodes wraps labels at [DefaultWidth].
var Nodes = LongLabels(DefaultWidth)
