package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/gvmanaged/internal/server"
	"github.com/matzehuels/gvmanaged/pkg/cache"
	"github.com/matzehuels/gvmanaged/pkg/pipeline"
)

type serveOpts struct {
	addr          string
	cacheBackend  string
	cacheDir      string
	cacheTTL      time.Duration
	redisAddr     string
	redisPassword string
	redisDB       int
	iconDir       string
	maxBody       int64
}

func newServeCmd() *cobra.Command {
	var opts serveOpts

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP render service",
		Long: `Serve renders manifests posted over HTTP.

  POST /render?format=svg   render the manifest in the request body
  GET  /kinds?prefix=aws    list diagram kinds
  GET  /healthz             liveness probe

Rendered images are cached in the selected backend; use redis to share the
cache between replicas.`,
		Example: `  gvmanaged serve --addr :9000
  gvmanaged serve --cache redis --redis-addr localhost:6379
  curl --data-binary @graph.toml 'localhost:8080/render?format=svg'`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", server.DefaultAddr, "listen address")
	cmd.Flags().StringVar(&opts.cacheBackend, "cache", cache.BackendFile, "artifact cache: none, file or redis")
	cmd.Flags().StringVar(&opts.cacheDir, "cache-dir", "", "file cache directory (default: user cache dir)")
	cmd.Flags().DurationVar(&opts.cacheTTL, "cache-ttl", pipeline.DefaultTTL, "artifact lifetime")
	cmd.Flags().StringVar(&opts.redisAddr, "redis-addr", "localhost:6379", "redis address")
	cmd.Flags().StringVar(&opts.redisPassword, "redis-password", "", "redis password")
	cmd.Flags().IntVar(&opts.redisDB, "redis-db", 0, "redis database")
	cmd.Flags().StringVar(&opts.iconDir, "icon-dir", "", "icon directory for diagram manifests (overrides icon_dir)")
	cmd.Flags().Int64Var(&opts.maxBody, "max-body", server.DefaultMaxBodyBytes, "maximum manifest size in bytes")

	return cmd
}

func runServe(ctx context.Context, opts serveOpts) error {
	logger := loggerFromContext(ctx)

	c, err := cache.Open(ctx, cache.Config{
		Backend: opts.cacheBackend,
		Dir:     opts.cacheDir,
		Redis: cache.RedisConfig{
			Addr:     opts.redisAddr,
			Password: opts.redisPassword,
			DB:       opts.redisDB,
		},
	})
	if err != nil {
		return fmt.Errorf("open cache: %w", err)
	}
	defer c.Close()

	srv := server.New(server.Config{
		Addr:         opts.addr,
		Cache:        c,
		TTL:          opts.cacheTTL,
		IconDir:      opts.iconDir,
		MaxBodyBytes: opts.maxBody,
		Logger:       logger,
	})

	printInfo("Serving gvmanaged")
	printKeyValue("Address", srv.Addr())
	printKeyValue("Cache", opts.cacheBackend)
	if opts.iconDir != "" {
		printKeyValue("Icons", opts.iconDir)
	}

	return srv.ListenAndServe(ctx)
}
