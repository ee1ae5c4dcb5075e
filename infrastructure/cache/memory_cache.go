package cache

import (
	"context"

	"media-gateway/domain/repository"

	gocache "github.com/patrickmn/go-cache"
)

// MemoryCache is the default response-cache backend: process-wide, safe for
// concurrent use, entries never expire until deleted.
type MemoryCache struct {
	store *gocache.Cache
}

// NewMemoryCache creates an in-memory response cache.
func NewMemoryCache() repository.IResponseCache {
	return &MemoryCache{
		store: gocache.New(gocache.NoExpiration, 0),
	}
}

func (c *MemoryCache) Get(_ context.Context, key string) (interface{}, bool) {
	return c.store.Get(key)
}

func (c *MemoryCache) Set(_ context.Context, key string, value interface{}) {
	c.store.Set(key, value, gocache.NoExpiration)
}

func (c *MemoryCache) Delete(_ context.Context, key string) {
	c.store.Delete(key)
}
