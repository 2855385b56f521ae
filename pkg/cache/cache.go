// Package cache stores rendered artifacts keyed by their DOT source.
//
// Rendering an image runs a full Graphviz layout, so the CLI and the HTTP
// server keep finished artifacts in a [Cache]. Three backends exist:
//
//   - [NullCache]: stores nothing, for --no-cache and tests
//   - [FileCache]: one JSON file per entry under a directory, for the CLI
//   - [RedisCache]: shared storage for server deployments
//
// Keys come from [ArtifactKey], so identical sources rendered to the same
// format share an entry regardless of which manifest produced them.
package cache

import (
	"context"
	"time"
)

// Cache is a byte store with optional expiry.
type Cache interface {
	// Get returns the stored data and whether the key was present.
	// Expired entries are reported as misses.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// ArtifactKey returns the cache key of src rendered to format.
func ArtifactKey(src, format string) string {
	return hashKey("artifact", format, Hash([]byte(src)))
}
