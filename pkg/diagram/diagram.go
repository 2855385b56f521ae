// Package diagram builds architecture diagrams: graphs whose nodes are typed
// by a dotted "kind" path and drawn with the kind's icon.
//
//	d := diagram.New(attrs.A{"label": "Web service"})
//	lb := d.Node(attrs.A{"kind": "aws.network.ELB", "label": "lb"})
//	web := d.Node(attrs.A{"kind": "aws.compute.EC2", "label": "web"})
//	lb.To(web)
//
// Kinds resolve through a [Registry] when the diagram is rendered. The
// graph attributes name, filename, direction, curvestyle, outformat, show,
// graph_attr, node_attr and edge_attr configure the diagram itself and are
// not emitted as Graphviz attributes.
package diagram

import (
	"cmp"
	"context"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/gvmanaged/pkg/attrs"
	"github.com/matzehuels/gvmanaged/pkg/errors"
	"github.com/matzehuels/gvmanaged/pkg/graph"
	"github.com/matzehuels/gvmanaged/pkg/render/dot"
)

const (
	// Variant is the node variant of diagram nodes.
	Variant = "diagram"

	// DefaultKind is the kind of nodes created without a "kind" attribute.
	DefaultKind = "k8s.compute.Pod"

	// DefaultIconDir is the directory icon paths are resolved against.
	DefaultIconDir = "resources"

	// DefaultOutFormat is the format [Save] renders when none is configured.
	DefaultOutFormat = "png"

	// DefaultFilename is the output name of a diagram without name or filename.
	DefaultFilename = "diagrams_image"
)

var classAttrs = []string{
	"name", "filename", "direction", "curvestyle", "outformat",
	"show", "graph_attr", "node_attr", "edge_attr",
}

var directions = []string{"TB", "BT", "LR", "RL"}
var curveStyles = []string{"ortho", "curved"}

func defaultGraphAttrs() *attrs.Map {
	return attrs.Pairs(
		"pad", "2.0",
		"splines", "ortho",
		"nodesep", "0.60",
		"ranksep", "0.75",
		"fontname", "Sans-Serif",
		"fontsize", "15",
		"fontcolor", "#2D3436",
	)
}

func defaultNodeAttrs() *attrs.Map {
	return attrs.Pairs(
		"shape", "box",
		"style", "rounded",
		"fixedsize", "true",
		"width", "1.4",
		"height", "1.4",
		"labelloc", "b",
		"imagescale", "true",
		"fontname", "Sans-Serif",
		"fontsize", "13",
		"fontcolor", "#2D3436",
	)
}

func defaultEdgeAttrs() *attrs.Map {
	return attrs.Pairs("color", "#7B8894")
}

type config struct {
	registry  *Registry
	iconDir   string
	graphOpts []graph.Option
}

// Option configures a diagram.
type Option func(*config)

// WithRegistry resolves kinds in r instead of [Default].
func WithRegistry(r *Registry) Option {
	return func(c *config) {
		if r != nil {
			c.registry = r
		}
	}
}

// WithIconDir resolves icon paths relative to dir.
func WithIconDir(dir string) Option {
	return func(c *config) { c.iconDir = dir }
}

// WithGraphOptions passes options through to [graph.New].
func WithGraphOptions(opts ...graph.Option) Option {
	return func(c *config) { c.graphOpts = append(c.graphOpts, opts...) }
}

// New creates a diagram graph with graph attributes a.
func New(a attrs.A, opts ...Option) *graph.Graph {
	c := config{registry: Default, iconDir: DefaultIconDir}
	for _, opt := range opts {
		opt(&c)
	}
	var g *graph.Graph
	gopts := []graph.Option{
		graph.WithAttrs(a),
		graph.WithNodeFactory(Nodes),
		graph.WithForeign(func(ga *attrs.Map) (graph.Foreign, error) {
			return Foreign(c.registry, c.iconDir, g.Logger())(ga)
		}),
	}
	g = graph.New(append(gopts, c.graphOpts...)...)
	return g
}

// Nodes is the diagram node factory. It consumes the "kind" (default
// [DefaultKind]) and "package" (default [Package]) attributes and stores
// "package.kind" as the node kind, or just the kind when package is empty.
func Nodes(g *graph.Graph, a *attrs.Map) *graph.Node {
	kind, ok := a.Pop("kind")
	if !ok {
		kind = DefaultKind
	}
	pkg, ok := a.Pop("package")
	if !ok {
		pkg = Package
	}
	n := graph.NewNode(g, Variant, a)
	n.Kind = kind
	if pkg != "" {
		n.Kind = pkg + "." + kind
	}
	return n
}

// Foreign returns a [graph.ForeignFactory] that renders diagrams with kinds
// from r and icons under iconDir. Missing icon files are reported on logger
// (log.Default() when nil) once per path.
func Foreign(r *Registry, iconDir string, logger *log.Logger) graph.ForeignFactory {
	if logger == nil {
		logger = log.Default()
	}
	return func(ga *attrs.Map) (graph.Foreign, error) {
		opts := make(map[string]string)
		for _, k := range classAttrs {
			if v, ok := ga.Pop(k); ok {
				opts[k] = v
			}
		}

		direction := cmp.Or(opts["direction"], "LR")
		if !slices.Contains(directions, direction) {
			return nil, errors.New(errors.ErrCodeInvalidInput, "invalid direction %q (must be one of %s)", direction, strings.Join(directions, ", "))
		}
		curve := cmp.Or(opts["curvestyle"], "ortho")
		if !slices.Contains(curveStyles, curve) {
			return nil, errors.New(errors.ErrCodeInvalidInput, "invalid curvestyle %q (must be one of %s)", curve, strings.Join(curveStyles, ", "))
		}
		if err := errors.ValidateFormat(opts["outformat"], dot.Formats); err != nil {
			return nil, err
		}

		d := dot.New(opts["name"])
		d.GraphAttrs = defaultGraphAttrs()
		if name := opts["name"]; name != "" {
			d.GraphAttrs.Set("label", name)
		}
		d.GraphAttrs.Set("rankdir", direction)
		d.GraphAttrs.Set("splines", curve)
		d.GraphAttrs.Merge(ga)
		d.NodeAttrs = defaultNodeAttrs()
		d.EdgeAttrs = defaultEdgeAttrs()
		return &foreign{d: d, registry: r, iconDir: iconDir, logger: logger, checked: make(map[string]bool)}, nil
	}
}

type foreign struct {
	d        *dot.Digraph
	registry *Registry
	iconDir  string
	logger   *log.Logger
	checked  map[string]bool
}

func (f *foreign) Node(n graph.NodeDecl) error {
	t, err := f.registry.Resolve(n.Kind)
	if err != nil {
		return err
	}
	a := attrs.New()
	if t.Icon != "" {
		a.Set("shape", "none")
		a.Set("height", iconHeight(n.Attrs.Value("label")))
		icon := filepath.Join(f.iconDir, t.Icon)
		f.checkIcon(n.Kind, icon)
		a.Set("image", icon)
	}
	a.Merge(t.Attrs)
	a.Merge(n.Attrs)
	a.Delete("name")
	f.d.Node(n.ID, a)
	return nil
}

// checkIcon warns when an icon file cannot be read. Graphviz silently draws
// the bare label in that case.
func (f *foreign) checkIcon(kind, path string) {
	if f.checked[path] {
		return
	}
	f.checked[path] = true
	if _, err := os.Stat(path); err != nil {
		f.logger.Warn("icon not found", "kind", kind, "path", path)
	}
}

func (f *foreign) Edge(e graph.EdgeDecl) error {
	a := attrs.Pairs("dir", "forward").Merge(e.Attrs)
	f.d.Edge(e.Tail, e.Head, a)
	return nil
}

func (f *foreign) Source() string { return f.d.Source() }

// iconHeight grows icon nodes by 0.4 per extra label line, counting both
// raw newlines and DOT line-break escapes.
func iconHeight(label string) string {
	lines := strings.Count(label, "\n") + strings.Count(label, `\n`)
	return strconv.FormatFloat(float64(19+4*lines)/10, 'f', -1, 64)
}

// Filename returns the output path [Save] uses for g: the "filename" graph
// attribute, or the diagram name lowercased with whitespace runs replaced by
// "_", or [DefaultFilename].
func Filename(g *graph.Graph) string {
	if f := g.Attrs.Value("filename"); f != "" {
		return f
	}
	if name := strings.Join(strings.Fields(g.Attrs.Value("name")), "_"); name != "" {
		return strings.ToLower(name)
	}
	return DefaultFilename
}

// Save renders g to [Filename] with the "outformat" graph attribute
// ([DefaultOutFormat] when unset) as extension and format.
func Save(ctx context.Context, g *graph.Graph) (string, error) {
	format := cmp.Or(g.Attrs.Value("outformat"), DefaultOutFormat)
	path := Filename(g) + "." + format
	if _, err := g.Render(ctx, path, format); err != nil {
		return "", err
	}
	return path, nil
}
