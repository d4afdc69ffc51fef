package cache

import (
	"context"
	"fmt"
	"strings"
	"time"

	goCache "github.com/patrickmn/go-cache"
)

// Cache is the interface repositories and services cache through.
type Cache interface {
	Get(ctx context.Context, key string) (interface{}, bool)
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration)
	Delete(ctx context.Context, key string)
	DeleteByPrefix(ctx context.Context, prefix string)
	Flush(ctx context.Context)
}

// Cache key prefixes per entity type. Versioned so a schema change can
// invalidate by bumping the prefix.
const (
	PrefixProfile    = "profile:v1:"
	PrefixQuote      = "quote:v1:"
	PrefixShareToken = "sharetoken:v1:"
	PrefixClient     = "client:v1:"
	PrefixTemplate   = "template:v1:"
	PrefixAPIKey     = "apikey:v1:"
	PrefixTeam       = "team:v1:"
	PrefixDashboard  = "dashboard:v1:"
)

// DefaultExpiration is the default TTL for cache entries.
const DefaultExpiration = 5 * time.Minute

// DefaultCleanupInterval is how often expired items are purged.
const DefaultCleanupInterval = 30 * time.Minute

// GenerateKey joins a prefix and parameters into a cache key.
func GenerateKey(prefix string, params ...interface{}) string {
	parts := make([]string, len(params)+1)
	parts[0] = prefix
	for i, param := range params {
		parts[i+1] = fmt.Sprintf("%v", param)
	}
	return strings.Join(parts, ":")
}

// InMemoryCache implements Cache on patrickmn/go-cache.
type InMemoryCache struct {
	cache *goCache.Cache
}

// NewInMemoryCache creates a process-local cache.
func NewInMemoryCache() Cache {
	return &InMemoryCache{
		cache: goCache.New(DefaultExpiration, DefaultCleanupInterval),
	}
}

func (c *InMemoryCache) Get(_ context.Context, key string) (interface{}, bool) {
	return c.cache.Get(key)
}

func (c *InMemoryCache) Set(_ context.Context, key string, value interface{}, expiration time.Duration) {
	c.cache.Set(key, value, expiration)
}

func (c *InMemoryCache) Delete(_ context.Context, key string) {
	c.cache.Delete(key)
}

func (c *InMemoryCache) DeleteByPrefix(_ context.Context, prefix string) {
	for k := range c.cache.Items() {
		if strings.HasPrefix(k, prefix) {
			c.cache.Delete(k)
		}
	}
}

func (c *InMemoryCache) Flush(_ context.Context) {
	c.cache.Flush()
}
