package database

import (
	"context"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/phpdevgmicro/SkinScript-sub000/internal/models"
)

// DefaultCacheSize is used when no cache size is configured
const DefaultCacheSize = 1024

// Store is the persistence contract every backend satisfies
type Store interface {
	Save(ctx context.Context, rec models.StoredFormulation) error
	Get(ctx context.Context, id string) (models.StoredFormulation, error)
	ListRecent(ctx context.Context, limit int) ([]models.StoredFormulation, error)
}

// CachedStore puts an LRU read-through cache in front of another store.
// Stored formulations never change after creation, so entries need no
// invalidation beyond overwrite on Save.
type CachedStore struct {
	Store
	cache *lru.Cache[string, models.StoredFormulation]
}

// NewCachedStore wraps inner with a cache of the given size
func NewCachedStore(inner Store, size int) (*CachedStore, error) {
	if size <= 0 {
		size = DefaultCacheSize
	}
	cache, err := lru.New[string, models.StoredFormulation](size)
	if err != nil {
		return nil, err
	}
	return &CachedStore{Store: inner, cache: cache}, nil
}

// Save writes through and caches the record
func (c *CachedStore) Save(ctx context.Context, rec models.StoredFormulation) error {
	if err := c.Store.Save(ctx, rec); err != nil {
		return err
	}
	c.cache.Add(rec.ID, rec)
	return nil
}

// Get serves from the cache, falling back to the inner store
func (c *CachedStore) Get(ctx context.Context, id string) (models.StoredFormulation, error) {
	if rec, ok := c.cache.Get(id); ok {
		return rec, nil
	}
	rec, err := c.Store.Get(ctx, id)
	if err != nil {
		return models.StoredFormulation{}, err
	}
	c.cache.Add(id, rec)
	return rec, nil
}

// Len reports how many records are cached
func (c *CachedStore) Len() int {
	return c.cache.Len()
}

// Ping checks the inner store when it supports health checks
func (c *CachedStore) Ping(ctx context.Context) error {
	if p, ok := c.Store.(interface{ Ping(context.Context) error }); ok {
		return p.Ping(ctx)
	}
	return nil
}
