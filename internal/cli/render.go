package cli

import (
	"cmp"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/gvmanaged/pkg/cache"
	"github.com/matzehuels/gvmanaged/pkg/diagram"
	"github.com/matzehuels/gvmanaged/pkg/errors"
	"github.com/matzehuels/gvmanaged/pkg/graph"
	gvio "github.com/matzehuels/gvmanaged/pkg/io"
	"github.com/matzehuels/gvmanaged/pkg/pipeline"
	"github.com/matzehuels/gvmanaged/pkg/render/dot"
)

// stdoutPath selects standard output as render destination.
const stdoutPath = "-"

type renderOpts struct {
	output   string
	format   string
	noCache  bool
	refresh  bool
	cacheDir string
}

func newRenderCmd() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render <manifest>",
		Short: "Render a graph manifest to DOT or an image",
		Long: `Render builds the graph described by a TOML, YAML or JSON manifest and writes
it in the requested format.

Without --output the DOT text is printed to stdout. Image formats need an
output path ("-" for stdout); the format is inferred from its extension when
--format is not set. Diagram manifests default to <name>.<outformat>.`,
		Example: `  gvmanaged render graph.toml
  gvmanaged render graph.yaml -o out/graph.svg
  gvmanaged render diagram.toml -f png -o - > diagram.png`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd.Context(), cmd.OutOrStdout(), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (\"-\" for stdout)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "output format: dot, svg, png, jpg")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the artifact cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "re-render and replace cached artifacts")
	cmd.Flags().StringVar(&opts.cacheDir, "cache-dir", "", "artifact cache directory (default: user cache dir)")

	return cmd
}

func runRender(ctx context.Context, stdout io.Writer, path string, opts renderOpts) error {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	m, err := gvio.Load(path)
	if err != nil {
		return err
	}

	c, err := openRenderCache(ctx, opts)
	if err != nil {
		return err
	}
	defer c.Close()
	runner := pipeline.NewRunner(c, pipeline.DefaultTTL, logger)

	g, err := runner.Build(m)
	if err != nil {
		return err
	}

	output, format := resolveDestination(m, g, opts.output, strings.ToLower(opts.format))
	if err := errors.ValidateFormat(format, dot.Formats); err != nil {
		return err
	}
	if output == "" && format != dot.Native {
		return errors.New(errors.ErrCodeMissingDestination, "rendering to %s requires --output", format)
	}

	spin := newSpinner(ctx, os.Stderr, fmt.Sprintf("Rendering %s...", format))
	if format != dot.Native {
		spin.Start()
	}
	data, cached, err := runner.Render(ctx, g, format, opts.refresh)
	spin.Stop()
	if err != nil {
		return err
	}

	if output == "" || output == stdoutPath {
		_, err := stdout.Write(data)
		return err
	}
	if err := writeFile(output, data); err != nil {
		return err
	}

	prog.done("rendered", "file", output, "format", format, "cached", cached)
	printSuccess("Rendered %s", path)
	printFile(output)
	printStats(g.NodeCount(), g.EdgeCount(), cached)
	return nil
}

// resolveDestination picks the output path and format from the flags, the
// output extension and, for diagrams, the manifest's own settings.
func resolveDestination(m *gvio.Manifest, g *graph.Graph, output, format string) (string, string) {
	if output == "" && m.Type == gvio.TypeDiagram && format != dot.Native {
		format = cmp.Or(format, pipeline.DefaultFormat(m, g))
		return diagram.Filename(g) + "." + format, format
	}
	if format == "" && output != "" && output != stdoutPath {
		format = dot.FormatFromPath(output)
	}
	if format == "" {
		format = dot.Native
	}
	return output, format
}

func openRenderCache(ctx context.Context, opts renderOpts) (cache.Cache, error) {
	if opts.noCache {
		return cache.NewNullCache(), nil
	}
	c, err := cache.Open(ctx, cache.Config{Backend: cache.BackendFile, Dir: opts.cacheDir})
	if err != nil {
		loggerFromContext(ctx).Warn("artifact cache unavailable", "err", err)
		return cache.NewNullCache(), nil
	}
	return c, nil
}

func writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
