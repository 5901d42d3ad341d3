// Package cache provides byte caches for rendered skeleton artifacts.
//
// Three backends implement [Cache]:
//   - [FileCache]: one JSON file per entry under a directory, for CLI use
//   - [RedisCache]: a shared Redis instance, for multi-process setups
//   - [NullCache]: stores nothing, for --no-cache and tests
//
// Keys are produced by a [Keyer] so that callers never build key strings by
// hand. [ScopedKeyer] prefixes every key for namespace isolation.
package cache

import (
	"context"
	"time"
)

// TTLArtifact is the lifetime of a rendered artifact. Artifact keys are
// derived from the graph contents, so entries never go stale; the TTL only
// bounds disk and memory use.
const TTLArtifact = 7 * 24 * time.Hour

// Cache stores opaque byte values under string keys with an optional TTL.
type Cache interface {
	// Get returns the value stored under key. A miss is reported as
	// (nil, false, nil); an error means the backend could not be queried.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl <= 0 means the entry does not expire.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// NullCache stores nothing: every Get misses and every other call succeeds.
// It backs --no-cache and stands in when no cache directory is usable.
type NullCache struct{}

// NewNullCache returns a NullCache.
func NewNullCache() *NullCache { return &NullCache{} }

func (*NullCache) Get(context.Context, string) ([]byte, bool, error) { return nil, false, nil }
func (*NullCache) Set(context.Context, string, []byte, time.Duration) error { return nil }
func (*NullCache) Delete(context.Context, string) error { return nil }
func (*NullCache) Close() error { return nil }

var _ Cache = (*NullCache)(nil)
