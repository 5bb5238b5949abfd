// Package cache provides byte-level caching for computed layouts and
// rendered documents.
//
// Layout runs are deterministic, so a geometry computed once for a given
// graph and configuration never changes and can be cached indefinitely.
// Three backends are provided: a file cache for CLI usage, a Redis cache
// for server deployments, and a null cache that disables caching.
package cache

import (
	"context"
	"time"
)

// Cache is the interface all cache backends implement.
// Keys are opaque strings; use [Key] to derive stable keys from inputs.
type Cache interface {
	// Get retrieves a value. The second return reports whether the key
	// was present; an absent key is not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A zero ttl means the entry never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the backend.
	Close() error
}
