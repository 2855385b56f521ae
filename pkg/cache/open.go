package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/matzehuels/gvmanaged/pkg/observability"
)

// Backend names accepted by [Open].
const (
	BackendNone  = "none"
	BackendFile  = "file"
	BackendRedis = "redis"
)

// Config selects and configures a cache backend.
type Config struct {
	Backend string
	Dir     string // file backend; empty means DefaultDir()
	Redis   RedisConfig
}

// Open creates the cache described by cfg. An empty backend means none.
func Open(ctx context.Context, cfg Config) (Cache, error) {
	switch cfg.Backend {
	case "", BackendNone:
		return NewNullCache(), nil
	case BackendFile:
		dir := cfg.Dir
		if dir == "" {
			dir = DefaultDir()
		}
		c, err := NewFileCache(dir)
		if err != nil {
			return nil, err
		}
		return c, nil
	case BackendRedis:
		c, err := NewRedisCache(ctx, cfg.Redis)
		if err != nil {
			return nil, err
		}
		return c, nil
	default:
		return nil, fmt.Errorf("unknown cache backend %q (must be none, file or redis)", cfg.Backend)
	}
}

// Fetch returns the entry for key, calling fn and storing its result on a
// miss. The boolean reports whether the data came from the cache. Failing
// to store the result is not an error.
func Fetch(ctx context.Context, c Cache, key string, ttl time.Duration, fn func() ([]byte, error)) ([]byte, bool, error) {
	data, ok, err := c.Get(ctx, key)
	if err != nil {
		return nil, false, fmt.Errorf("cache get: %w", err)
	}
	hooks := observability.Cache()
	if ok {
		hooks.OnCacheHit(ctx, key)
		return data, true, nil
	}
	hooks.OnCacheMiss(ctx, key)
	data, err = fn()
	if err != nil {
		return nil, false, err
	}
	if err := c.Set(ctx, key, data, ttl); err == nil {
		hooks.OnCacheSet(ctx, key, len(data))
	}
	return data, false, nil
}
