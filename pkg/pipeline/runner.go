package pipeline

import (
	"bytes"
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/gvmanaged/pkg/cache"
	"github.com/matzehuels/gvmanaged/pkg/errors"
	"github.com/matzehuels/gvmanaged/pkg/graph"
	gvio "github.com/matzehuels/gvmanaged/pkg/io"
	"github.com/matzehuels/gvmanaged/pkg/render/dot"
)

// Runner executes the pipeline against an artifact cache.
//
// A Runner holds no per-run state, so one Runner may serve concurrent
// requests as long as its Cache does.
type Runner struct {
	Cache  cache.Cache
	TTL    time.Duration
	Logger *log.Logger
}

// NewRunner creates a runner. A nil cache disables caching and a nil logger
// means log.Default().
func NewRunner(c cache.Cache, ttl time.Duration, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Cache: c, TTL: ttl, Logger: logger}
}

// Execute builds the manifest and renders it.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	logger := r.logger(opts.Logger)

	buildStart := time.Now()
	g, err := r.build(opts.Manifest, logger)
	if err != nil {
		return nil, err
	}
	result := &Result{
		Graph:  g,
		Format: opts.Format,
		Stats: Stats{
			NodeCount: g.NodeCount(),
			EdgeCount: g.EdgeCount(),
			BuildTime: time.Since(buildStart),
		},
	}
	if result.Format == "" {
		result.Format = DefaultFormat(opts.Manifest, g)
		if err := errors.ValidateFormat(result.Format, dot.Formats); err != nil {
			return nil, err
		}
	}

	logger.Debug("built graph",
		"nodes", result.Stats.NodeCount,
		"edges", result.Stats.EdgeCount,
		"duration", result.Stats.BuildTime)

	renderStart := time.Now()
	result.Source, err = g.Source()
	if err != nil {
		return nil, err
	}
	result.Artifact, result.CacheHit, err = r.render(ctx, result.Source, result.Format, opts.Refresh)
	if err != nil {
		return nil, err
	}
	result.Stats.RenderTime = time.Since(renderStart)

	logger.Debug("rendered graph",
		"format", result.Format,
		"bytes", len(result.Artifact),
		"cached", result.CacheHit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Build turns m into a graph using the runner's logger.
func (r *Runner) Build(m *gvio.Manifest) (*graph.Graph, error) {
	if m == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "manifest is required")
	}
	return r.build(m, r.Logger)
}

func (r *Runner) build(m *gvio.Manifest, logger *log.Logger) (*graph.Graph, error) {
	return gvio.Build(m, graph.WithLogger(logger))
}

// Render serializes g and renders it to format. The boolean reports a cache
// hit. With refresh set, any cached artifact is ignored and replaced.
func (r *Runner) Render(ctx context.Context, g *graph.Graph, format string, refresh bool) ([]byte, bool, error) {
	if err := errors.ValidateFormat(format, dot.Formats); err != nil {
		return nil, false, err
	}
	src, err := g.Source()
	if err != nil {
		return nil, false, err
	}
	return r.render(ctx, src, format, refresh)
}

func (r *Runner) render(ctx context.Context, src, format string, refresh bool) ([]byte, bool, error) {
	if format == "" || format == dot.Native {
		return []byte(src), false, nil
	}

	key := cache.ArtifactKey(src, format)
	layout := func() ([]byte, error) {
		var buf bytes.Buffer
		if err := dot.Render(ctx, src, format, &buf); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	}

	if refresh {
		data, err := layout()
		if err != nil {
			return nil, false, err
		}
		if err := r.Cache.Set(ctx, key, data, r.TTL); err != nil {
			r.Logger.Warn("cache store failed", "key", key, "err", err)
		}
		return data, false, nil
	}
	return cache.Fetch(ctx, r.Cache, key, r.TTL, layout)
}

func (r *Runner) logger(override *log.Logger) *log.Logger {
	if override != nil {
		return override
	}
	return r.Logger
}
