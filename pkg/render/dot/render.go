package dot

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/goccy/go-graphviz"
	gonumdot "gonum.org/v1/gonum/graph/formats/dot"

	"github.com/matzehuels/gvmanaged/pkg/errors"
	"github.com/matzehuels/gvmanaged/pkg/observability"
)

// Native is the DOT text format, written without invoking Graphviz.
const Native = "dot"

// Formats lists the supported output formats.
var Formats = []string{Native, "svg", "png", "jpg"}

// FormatFromPath infers an output format from a file extension.
// Paths without an extension, and .gv/.dot files, map to [Native].
func FormatFromPath(path string) string {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	switch ext {
	case "", "gv", "dot":
		return Native
	case "jpeg":
		return "jpg"
	default:
		return ext
	}
}

// Render writes src to w in the given format.
// The native format is copied verbatim; other formats are laid out and
// rendered by Graphviz. SVG output is made responsive with [ResponsiveSVG].
func Render(ctx context.Context, src, format string, w io.Writer) error {
	if err := errors.ValidateFormat(format, Formats); err != nil {
		return err
	}
	if format == Native || format == "" {
		_, err := io.WriteString(w, src)
		return err
	}

	hooks := observability.Render()
	hooks.OnRenderStart(ctx, format)
	start := time.Now()
	buf, err := layout(ctx, src, format)
	hooks.OnRenderComplete(ctx, format, time.Since(start), err)
	if err != nil {
		return err
	}
	_, err = buf.WriteTo(w)
	return err
}

func layout(ctx context.Context, src, format string) (*bytes.Buffer, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeRender, err, "init graphviz")
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(src))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeRender, err, "parse DOT")
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.Format(format), &buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeRender, err, "render %s", format)
	}
	if format == "svg" {
		return bytes.NewBuffer(ResponsiveSVG(buf.Bytes())), nil
	}
	return &buf, nil
}

// RenderFile renders src to path, creating missing parent directories.
// An empty format is inferred from the path with [FormatFromPath].
func RenderFile(ctx context.Context, src, format, path string) error {
	if format == "" {
		format = FormatFromPath(path)
	}
	if err := errors.ValidateFormat(format, Formats); err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.Wrap(errors.ErrCodeInternal, err, "create directory %s", dir)
		}
	}

	// Render to memory first so a failed layout never leaves a truncated file.
	var buf bytes.Buffer
	if err := Render(ctx, src, format, &buf); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "create %s", path)
	}
	defer f.Close()

	if _, err := buf.WriteTo(f); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "write %s", path)
	}
	return f.Close()
}

// Validate checks that src is syntactically valid DOT.
func Validate(src string) error {
	if _, err := gonumdot.ParseString(src); err != nil {
		return errors.Wrap(errors.ErrCodeRender, err, "invalid DOT")
	}
	return nil
}
