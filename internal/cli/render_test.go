package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/gvmanaged/pkg/cache"
	"github.com/matzehuels/gvmanaged/pkg/errors"
	gvio "github.com/matzehuels/gvmanaged/pkg/io"
)

const testManifest = `
chains = ["api >> db"]

[attrs]
rankdir = "LR"

[[nodes]]
ref = "api"
label = "API"

[[nodes]]
ref = "db"
label = "DB"
`

const testManifestDOT = "digraph {\n" +
	"\tgraph [rankdir=LR]\n" +
	"\tAPI [label=API]\n" +
	"\tDB [label=DB]\n" +
	"\tAPI -> DB\n" +
	"}\n"

func writeManifest(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRunRenderStdout(t *testing.T) {
	path := writeManifest(t, "graph.toml", testManifest)

	var out bytes.Buffer
	if err := runRender(context.Background(), &out, path, renderOpts{noCache: true}); err != nil {
		t.Fatalf("runRender() error = %v", err)
	}
	if out.String() != testManifestDOT {
		t.Errorf("stdout =\n%s\nwant\n%s", out.String(), testManifestDOT)
	}
}

func TestRunRenderFile(t *testing.T) {
	path := writeManifest(t, "graph.toml", testManifest)
	output := filepath.Join(t.TempDir(), "nested", "graph.gv")

	var out bytes.Buffer
	if err := runRender(context.Background(), &out, path, renderOpts{output: output, noCache: true}); err != nil {
		t.Fatalf("runRender() error = %v", err)
	}
	data, err := os.ReadFile(output)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != testManifestDOT {
		t.Errorf("file =\n%s\nwant\n%s", data, testManifestDOT)
	}
	if out.Len() != 0 {
		t.Errorf("stdout should stay empty when writing a file, got %q", out.String())
	}
}

func TestRunRenderErrors(t *testing.T) {
	path := writeManifest(t, "graph.toml", testManifest)

	tests := []struct {
		name string
		path string
		opts renderOpts
		code errors.Code
	}{
		{"ImageWithoutOutput", path, renderOpts{format: "svg", noCache: true}, errors.ErrCodeMissingDestination},
		{"UnknownFormat", path, renderOpts{format: "bmp", noCache: true}, errors.ErrCodeInvalidFormat},
		{"UnknownExtension", path, renderOpts{output: filepath.Join(t.TempDir(), "out.bmp"), noCache: true}, errors.ErrCodeInvalidFormat},
		{"MissingManifest", filepath.Join(t.TempDir(), "missing.toml"), renderOpts{}, errors.ErrCodeNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := runRender(context.Background(), &bytes.Buffer{}, tt.path, tt.opts)
			if !errors.Is(err, tt.code) {
				t.Errorf("runRender() error = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestResolveDestination(t *testing.T) {
	plain, err := gvio.Decode(strings.NewReader(testManifest), gvio.FormatTOML)
	if err != nil {
		t.Fatal(err)
	}
	pg, err := gvio.Build(plain)
	if err != nil {
		t.Fatal(err)
	}

	diag, err := gvio.Decode(strings.NewReader(`
type = "diagram"
[attrs]
name = "Web Service"
outformat = "svg"
[[nodes]]
label = "lb"
kind = "aws.network.ELB"
`), gvio.FormatTOML)
	if err != nil {
		t.Fatal(err)
	}
	dg, err := gvio.Build(diag)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name           string
		m              *gvio.Manifest
		output, format string
		wantOut        string
		wantFormat     string
	}{
		{"PlainDefault", plain, "", "", "", "dot"},
		{"PlainExtension", plain, "out.svg", "", "out.svg", "svg"},
		{"PlainStdout", plain, "-", "png", "-", "png"},
		{"PlainExplicit", plain, "out.img", "png", "out.img", "png"},
		{"DiagramDefault", diag, "", "", "web_service.svg", "svg"},
		{"DiagramFormat", diag, "", "png", "web_service.png", "png"},
		{"DiagramDOT", diag, "", "dot", "", "dot"},
		{"DiagramOutput", diag, "x.jpg", "", "x.jpg", "jpg"},
		{"DiagramStdout", diag, "-", "png", "-", "png"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := pg
			if tt.m == diag {
				g = dg
			}
			out, format := resolveDestination(tt.m, g, tt.output, tt.format)
			if out != tt.wantOut || format != tt.wantFormat {
				t.Errorf("resolveDestination() = %q, %q; want %q, %q", out, format, tt.wantOut, tt.wantFormat)
			}
		})
	}
}

func TestRunRenderCachedImage(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	c, err := cache.NewFileCache(dir)
	if err != nil {
		t.Fatal(err)
	}
	if err := c.Set(ctx, cache.ArtifactKey(testManifestDOT, "png"), []byte("png-bytes"), 0); err != nil {
		t.Fatal(err)
	}

	path := writeManifest(t, "graph.toml", testManifest)
	output := filepath.Join(t.TempDir(), "graph.png")
	if err := runRender(ctx, &bytes.Buffer{}, path, renderOpts{output: output, cacheDir: dir}); err != nil {
		t.Fatalf("runRender() error = %v", err)
	}
	data, err := os.ReadFile(output)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "png-bytes" {
		t.Errorf("output = %q, want the cached artifact", data)
	}
}
