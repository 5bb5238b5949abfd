package cache

import (
	"context"
	"time"

	"github.com/matzehuels/dagviz/pkg/observability"
)

// Instrumented wraps a Cache and reports hits, misses, and writes through
// the registered observability hooks. KeyType labels the cached artifact
// kind (for example "layout" or "render").
type Instrumented struct {
	Inner   Cache
	KeyType string
}

// NewInstrumented wraps inner with observability reporting.
func NewInstrumented(inner Cache, keyType string) Cache {
	return &Instrumented{Inner: inner, KeyType: keyType}
}

// Get retrieves a value and reports the hit or miss.
func (c *Instrumented) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, ok, err := c.Inner.Get(ctx, key)
	if err == nil {
		if ok {
			observability.Cache().OnCacheHit(ctx, c.KeyType)
		} else {
			observability.Cache().OnCacheMiss(ctx, c.KeyType)
		}
	}
	return data, ok, err
}

// Set stores a value and reports the write.
func (c *Instrumented) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	err := c.Inner.Set(ctx, key, data, ttl)
	if err == nil {
		observability.Cache().OnCacheSet(ctx, c.KeyType, len(data))
	}
	return err
}

// Delete removes a value from the underlying cache.
func (c *Instrumented) Delete(ctx context.Context, key string) error {
	return c.Inner.Delete(ctx, key)
}

// Close closes the underlying cache.
func (c *Instrumented) Close() error {
	return c.Inner.Close()
}

// Ensure Instrumented implements Cache.
var _ Cache = (*Instrumented)(nil)
