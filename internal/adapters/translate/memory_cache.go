package translate

import (
	"bus-journey-service/internal/ports"
	"context"
	"time"

	"github.com/patrickmn/go-cache"
)

// MemoryCache is the in-process TranslationCache used when no Redis is
// configured.
type MemoryCache struct {
	c *cache.Cache
}

var _ ports.TranslationCache = (*MemoryCache)(nil)

func NewMemoryCache(defaultTTL, cleanupInterval time.Duration) *MemoryCache {
	return &MemoryCache{c: cache.New(defaultTTL, cleanupInterval)}
}

func (m *MemoryCache) Get(_ context.Context, key string) (string, bool, error) {
	v, ok := m.c.Get(key)
	if !ok {
		return "", false, nil
	}
	s, ok := v.(string)
	return s, ok, nil
}

// Set stores value. A zero ttl uses the cache default.
func (m *MemoryCache) Set(_ context.Context, key, value string, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = cache.DefaultExpiration
	}
	m.c.Set(key, value, ttl)
	return nil
}
