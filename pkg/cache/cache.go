// Package cache stores rendered artifacts between exports.
//
// # Overview
//
// An export is a pure function of the scene document and the export
// options, so its output can be reused. The [Cache] interface is a plain
// byte store with expiry. Three backends are provided:
//
//   - [FileCache]: one file per entry under a directory, for the CLI
//   - [RedisCache]: a shared Redis instance, for the HTTP API
//   - [NullCache]: stores nothing, for --no-cache and tests
//
// [Keyer] turns documents and options into keys. Keys embed a SHA-256 of
// their inputs, so a changed document or option always misses:
//
//	k := cache.NewDefaultKeyer()
//	key := k.ArtifactKey(cache.Hash(sceneJSON), cache.ArtifactKeyOpts{Scale: 0.01, Format: "svg"})
//	data, err := cache.Load(ctx, c, key)
//	if errors.Is(err, cache.ErrCacheMiss) {
//	    // render and c.Set(ctx, key, data, cache.DefaultTTL)
//	}
//
// [ScopedKeyer] prefixes every key, separating tenants that share one backend.
package cache

import (
	"context"
	"time"
)

// DefaultTTL is the lifetime of cached artifacts.
const DefaultTTL = 7 * 24 * time.Hour

// Cache is a byte store with per-entry expiry. Implementations must be safe
// for concurrent use.
type Cache interface {
	// Get returns the value for key. A missing or expired entry is a miss,
	// not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A ttl of zero never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases the backend's resources.
	Close() error
}

// Load is Get with misses reported as [ErrCacheMiss].
func Load(ctx context.Context, c Cache, key string) ([]byte, error) {
	data, ok, err := c.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrCacheMiss
	}
	return data, nil
}
