package dot

import (
	"bytes"
	"io"
	"regexp"
	"slices"
	"strings"

	"github.com/matzehuels/gvmanaged/pkg/attrs"
)

var (
	idRe   = regexp.MustCompile(`^([a-zA-Z_][a-zA-Z0-9_]*|-?(\.[0-9]+|[0-9]+(\.[0-9]*)?))$`)
	htmlRe = regexp.MustCompile(`(?s)^<.*>$`)
)

var keywords = map[string]bool{
	"node": true, "edge": true, "graph": true,
	"digraph": true, "subgraph": true, "strict": true,
}

// Quote returns s as a DOT identifier, adding double quotes when needed.
func Quote(s string) string {
	if htmlRe.MatchString(s) {
		return s
	}
	if idRe.MatchString(s) && !keywords[strings.ToLower(s)] {
		return s
	}
	return `"` + escapeQuotes(s) + `"`
}

// QuoteEdge quotes an edge endpoint, which may carry a port and a compass
// point ("node:port:ne"). Each part is quoted separately.
func QuoteEdge(s string) string {
	node, rest, ok := strings.Cut(s, ":")
	parts := []string{Quote(node)}
	if ok {
		port, compass, ok := strings.Cut(rest, ":")
		parts = append(parts, Quote(port))
		if ok {
			parts = append(parts, compass)
		}
	}
	return strings.Join(parts, ":")
}

// escapeQuotes escapes every double quote not already escaped by a backslash.
func escapeQuotes(s string) string {
	if !strings.Contains(s, `"`) {
		return s
	}
	var b strings.Builder
	backslashes := 0
	for _, r := range s {
		switch r {
		case '\\':
			backslashes++
		case '"':
			if backslashes%2 == 0 {
				b.WriteByte('\\')
			}
			backslashes = 0
		default:
			backslashes = 0
		}
		b.WriteRune(r)
	}
	return b.String()
}

// List formats an attribute list, including the leading space and brackets.
// A label, when present, comes first; the other keys follow in sorted order.
// An empty map yields "".
func List(a *attrs.Map) string {
	if a.Len() == 0 {
		return ""
	}
	items := make([]string, 0, a.Len())
	if label, ok := a.Get("label"); ok {
		items = append(items, "label="+Quote(label))
	}
	keys := a.Keys()
	slices.Sort(keys)
	for _, k := range keys {
		if k == "label" {
			continue
		}
		items = append(items, Quote(k)+"="+Quote(a.Value(k)))
	}
	return " [" + strings.Join(items, " ") + "]"
}

// Digraph is a directed graph under construction as DOT statements.
// Statements are emitted in the order they were added.
type Digraph struct {
	Name   string
	Strict bool

	// GraphAttrs, NodeAttrs and EdgeAttrs become the graph/node/edge default
	// statements at the top of the body.
	GraphAttrs *attrs.Map
	NodeAttrs  *attrs.Map
	EdgeAttrs  *attrs.Map

	body []string
}

// New creates an empty digraph. An empty name produces an anonymous graph.
func New(name string) *Digraph {
	return &Digraph{Name: name}
}

// Attr appends a "graph", "node" or "edge" attribute statement.
// Nothing is emitted for an empty map.
func (d *Digraph) Attr(kind string, a *attrs.Map) {
	if a.Len() == 0 {
		return
	}
	d.body = append(d.body, "\t"+kind+List(a)+"\n")
}

// Node appends a node statement.
func (d *Digraph) Node(id string, a *attrs.Map) {
	d.body = append(d.body, "\t"+Quote(id)+List(a)+"\n")
}

// Edge appends an edge statement from tail to head.
func (d *Digraph) Edge(tail, head string, a *attrs.Map) {
	d.body = append(d.body, "\t"+QuoteEdge(tail)+" -> "+QuoteEdge(head)+List(a)+"\n")
}

// Len returns the number of body statements added so far.
func (d *Digraph) Len() int { return len(d.body) }

// Source returns the complete DOT text, ending with a newline.
func (d *Digraph) Source() string {
	var buf bytes.Buffer
	_, _ = d.WriteTo(&buf)
	return buf.String()
}

// WriteTo writes the DOT text to w.
func (d *Digraph) WriteTo(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	if d.Strict {
		buf.WriteString("strict ")
	}
	buf.WriteString("digraph ")
	if d.Name != "" {
		buf.WriteString(Quote(d.Name) + " ")
	}
	buf.WriteString("{\n")
	for _, h := range []struct {
		kind string
		a    *attrs.Map
	}{{"graph", d.GraphAttrs}, {"node", d.NodeAttrs}, {"edge", d.EdgeAttrs}} {
		if h.a.Len() > 0 {
			buf.WriteString("\t" + h.kind + List(h.a) + "\n")
		}
	}
	for _, line := range d.body {
		buf.WriteString(line)
	}
	buf.WriteString("}\n")
	return buf.WriteTo(w)
}
