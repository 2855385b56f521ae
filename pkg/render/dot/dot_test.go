package dot

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/gvmanaged/pkg/attrs"
	"github.com/matzehuels/gvmanaged/pkg/errors"
)

func TestQuote(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"a", "a"},
		{"node_1", "node_1"},
		{"1.5", "1.5"},
		{"-.5", "-.5"},
		{"42", "42"},
		{"Foo!", `"Foo!"`},
		{"a b", `"a b"`},
		{"", `""`},
		{"node", `"node"`},
		{"Graph", `"Graph"`},
		{"#2D3436", `"#2D3436"`},
		{`say "hi"`, `"say \"hi\""`},
		{`already \"escaped\"`, `"already \"escaped\""`},
		{`line\nbreak`, `"line\nbreak"`},
		{"<<b>bold</b>>", "<<b>bold</b>>"},
		{"Größe", `"Größe"`},
	}
	for _, tt := range tests {
		if got := Quote(tt.in); got != tt.want {
			t.Errorf("Quote(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestQuoteEdge(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"a", "a"},
		{"a:p1", "a:p1"},
		{"a:p1:ne", "a:p1:ne"},
		{"my node:out port:s", `"my node":"out port":s`},
	}
	for _, tt := range tests {
		if got := QuoteEdge(tt.in); got != tt.want {
			t.Errorf("QuoteEdge(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestList(t *testing.T) {
	tests := []struct {
		name string
		a    *attrs.Map
		want string
	}{
		{"Nil", nil, ""},
		{"Empty", attrs.New(), ""},
		{"LabelFirst", attrs.Pairs("shape", "box", "label", "x", "color", "red"), " [label=x color=red shape=box]"},
		{"NoLabel", attrs.Pairs("z", 1, "a", 2), " [a=2 z=1]"},
		{"Quoted", attrs.Pairs("label", "Foo!", "fontname", "Sans Serif"), ` [label="Foo!" fontname="Sans Serif"]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := List(tt.a); got != tt.want {
				t.Errorf("List() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDigraphSource(t *testing.T) {
	d := New("")
	d.GraphAttrs = attrs.Pairs("rankdir", "LR")
	d.EdgeAttrs = attrs.Pairs("color", "gray")
	d.Node("a", attrs.Pairs("label", "a"))
	d.Node("b", nil)
	d.Edge("a", "b", attrs.Pairs("style", "dashed"))

	want := "digraph {\n" +
		"\tgraph [rankdir=LR]\n" +
		"\tedge [color=gray]\n" +
		"\ta [label=a]\n" +
		"\tb\n" +
		"\ta -> b [style=dashed]\n" +
		"}\n"
	if got := d.Source(); got != want {
		t.Errorf("Source() =\n%s\nwant\n%s", got, want)
	}
	if d.Len() != 3 {
		t.Errorf("Len() = %d, want 3", d.Len())
	}
	if err := Validate(d.Source()); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestDigraphHeader(t *testing.T) {
	d := New("My Graph")
	d.Strict = true
	if got := d.Source(); !strings.HasPrefix(got, `strict digraph "My Graph" {`) {
		t.Errorf("Source() = %q", got)
	}
}

func TestFormatFromPath(t *testing.T) {
	tests := map[string]string{
		"out":         Native,
		"out.gv":      Native,
		"out.DOT":     Native,
		"out.svg":     "svg",
		"dir/out.PNG": "png",
		"out.jpeg":    "jpg",
		"out.tar.jpg": "jpg",
		"out.unknown": "unknown",
	}
	for path, want := range tests {
		if got := FormatFromPath(path); got != want {
			t.Errorf("FormatFromPath(%q) = %q, want %q", path, got, want)
		}
	}
}

func TestRenderNative(t *testing.T) {
	src := "digraph {\n\ta\n}\n"
	var buf bytes.Buffer
	if err := Render(context.Background(), src, Native, &buf); err != nil {
		t.Fatal(err)
	}
	if buf.String() != src {
		t.Errorf("Render(dot) = %q, want %q", buf.String(), src)
	}
}

func TestRenderInvalidFormat(t *testing.T) {
	err := Render(context.Background(), "digraph {}", "bmp", &bytes.Buffer{})
	if !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("Render(bmp) error = %v, want INVALID_FORMAT", err)
	}
}

func TestRenderFileCreatesDirs(t *testing.T) {
	src := "digraph {\n\ta -> b\n}\n"
	path := filepath.Join(t.TempDir(), "a", "b", "graph.gv")
	if err := RenderFile(context.Background(), src, "", path); err != nil {
		t.Fatalf("RenderFile: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != src {
		t.Errorf("file = %q, want %q", data, src)
	}
}

func TestRenderFileImageFormats(t *testing.T) {
	src := "digraph {\n\ta -> b\n}\n"
	tests := []struct {
		file   string
		format string
		prefix string
	}{
		{"out.svg", "", "<svg"},
		{"out.png", "", "\x89PNG\r\n\x1a\n"},
		{"out.jpeg", "", "\xff\xd8"},
		{"out.png", "dot", "digraph {"},
	}
	for _, tt := range tests {
		t.Run(tt.file+"/"+tt.format, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "x", tt.file)
			if err := RenderFile(context.Background(), src, tt.format, path); err != nil {
				t.Fatalf("RenderFile: %v", err)
			}
			data, err := os.ReadFile(path)
			if err != nil {
				t.Fatal(err)
			}
			out := string(data)
			if tt.prefix == "<svg" {
				// Graphviz emits an XML prolog and doctype before the root element.
				if i := strings.Index(out, "<svg"); i >= 0 {
					out = out[i:]
				}
			}
			if !strings.HasPrefix(out, tt.prefix) {
				t.Errorf("%s starts with %q, want %q", tt.file, data[:min(len(data), 16)], tt.prefix)
			}
		})
	}
}

func TestValidateRejectsGarbage(t *testing.T) {
	if err := Validate("digraph { a -> }"); !errors.Is(err, errors.ErrCodeRender) {
		t.Errorf("Validate(garbage) = %v, want RENDER error", err)
	}
}

func TestResponsiveSVG(t *testing.T) {
	in := []byte(`<?xml version="1.0"?>` + "\n" +
		`<svg width="62pt" height="116pt" viewBox="0.00 0.00 62.00 116.00" xmlns="http://www.w3.org/2000/svg" xmlns:xlink="http://www.w3.org/1999/xlink">` +
		`<g id="graph0"></g></svg>`)
	out := string(ResponsiveSVG(in))

	for _, want := range []string{
		`viewBox="0 0 62.00 116.00"`,
		`width="62"`,
		`height="116"`,
		`xmlns:xlink="http://www.w3.org/1999/xlink"`,
		`<g id="graph0"></g></svg>`,
		`<?xml version="1.0"?>`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("ResponsiveSVG() missing %q in %s", want, out)
		}
	}
	if strings.Contains(out, "62pt") {
		t.Errorf("ResponsiveSVG() kept point dimensions: %s", out)
	}

	plain := []byte("<svg></svg>")
	if got := ResponsiveSVG(plain); !bytes.Equal(got, plain) {
		t.Errorf("ResponsiveSVG without viewBox = %s", got)
	}
}
