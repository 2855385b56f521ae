// Package pipeline runs the manifest → graph → artifact flow shared by the
// CLI and the HTTP server.
//
// # Stages
//
//  1. Build: turn a decoded [io.Manifest] into a [graph.Graph]
//  2. Render: serialize the graph to DOT and, for image formats, lay it out
//     with Graphviz
//
// Image artifacts are cached under [cache.ArtifactKey] of the DOT source, so
// two manifests that produce the same graph share one entry. DOT output is
// never cached; producing it is cheaper than a cache lookup.
//
// # Usage
//
//	runner := pipeline.NewRunner(c, pipeline.DefaultTTL, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Manifest: m,
//	    Format:   "svg",
//	})
//	if err != nil {
//	    return err
//	}
//	os.Stdout.Write(result.Artifact)
//
// Stages can also run separately, which the CLI does to pick an output path
// between building and rendering:
//
//	g, err := runner.Build(m)
//	data, hit, err := runner.Render(ctx, g, "png", false)
package pipeline

import (
	"cmp"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/gvmanaged/pkg/diagram"
	"github.com/matzehuels/gvmanaged/pkg/errors"
	"github.com/matzehuels/gvmanaged/pkg/graph"
	gvio "github.com/matzehuels/gvmanaged/pkg/io"
	"github.com/matzehuels/gvmanaged/pkg/render/dot"
)

// DefaultTTL bounds how long rendered artifacts stay cached.
const DefaultTTL = 7 * 24 * time.Hour

// Options configures one pipeline run.
type Options struct {
	// Manifest is the decoded graph description. Required.
	Manifest *gvio.Manifest `json:"-"`

	// Format is the output format. Empty selects the manifest default:
	// the "outformat" graph attribute (or png) for diagrams, DOT otherwise.
	Format string `json:"format,omitempty"`

	// Refresh bypasses cached artifacts and overwrites them.
	Refresh bool `json:"refresh,omitempty"`

	// Logger overrides the runner's logger for this run.
	Logger *log.Logger `json:"-"`
}

// Validate checks the options that can be checked before building.
// The format is normalized to lower case.
func (o *Options) Validate() error {
	if o.Manifest == nil {
		return errors.New(errors.ErrCodeInvalidInput, "manifest is required")
	}
	o.Format = strings.ToLower(strings.TrimSpace(o.Format))
	return errors.ValidateFormat(o.Format, dot.Formats)
}

// DefaultFormat returns the format used when none is requested for g.
func DefaultFormat(m *gvio.Manifest, g *graph.Graph) string {
	if m.Type == gvio.TypeDiagram {
		return cmp.Or(g.Attrs.Value("outformat"), diagram.DefaultOutFormat)
	}
	return dot.Native
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Graph is the built graph.
	Graph *graph.Graph

	// Source is the DOT text of Graph.
	Source string

	// Format is the format Artifact is encoded in.
	Format string

	// Artifact is the rendered output.
	Artifact []byte

	// CacheHit reports whether Artifact came from the cache.
	CacheHit bool

	Stats Stats
}

// Stats contains pipeline execution statistics.
type Stats struct {
	NodeCount  int
	EdgeCount  int
	BuildTime  time.Duration
	RenderTime time.Duration
}
