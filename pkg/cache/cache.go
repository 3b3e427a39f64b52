// Package cache stores normalized networks and exported models between runs.
//
// Entries are opaque byte slices addressed by string keys. Keys are built by
// a [Keyer] from the SHA-256 of the input document plus the options that
// influence the cached value, so changing any option misses the cache.
//
// [FileCache] backs the CLI and the HTTP server; [NullCache] disables caching
// (--no-cache).
package cache

import (
	"context"
	"time"
)

// Cache is a key/value store with per-entry expiry.
type Cache interface {
	// Get returns the value for key. The second result is false on a miss,
	// including expired or unreadable entries.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases resources held by the cache.
	Close() error
}

// DefaultTTL is how long entries live unless configured otherwise.
const DefaultTTL = 7 * 24 * time.Hour
