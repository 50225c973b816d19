package geo

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/storelane/storelane-backend/pkg/enums"
	"github.com/storelane/storelane-backend/pkg/redis"
)

type cacheStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
	CacheKey(parts ...string) string
}

// Cache is a read-through Redis cache for geo reference lists. Reference data
// changes rarely, so list responses are cached whole and invalidated per kind
// when an entity is added. A broken cache never fails a read; callers fall
// back to the repository.
type Cache struct {
	store cacheStore
	ttl   time.Duration
}

const cacheScopeAll = "all"

// NewCache wraps the given store. A nil store yields a no-op cache.
func NewCache(store cacheStore, ttl time.Duration) *Cache {
	return &Cache{store: store, ttl: ttl}
}

func (c *Cache) enabled() bool {
	return c != nil && c.store != nil
}

func (c *Cache) listKey(kind enums.GeoKind, parentID *uuid.UUID) string {
	scope := cacheScopeAll
	if parentID != nil {
		scope = parentID.String()
	}
	return c.store.CacheKey("geo", kind.String(), scope)
}

// GetList loads a cached list into dest, reporting whether the key was present.
func (c *Cache) GetList(ctx context.Context, kind enums.GeoKind, parentID *uuid.UUID, dest any) bool {
	if !c.enabled() {
		return false
	}
	raw, err := c.store.Get(ctx, c.listKey(kind, parentID))
	if err != nil {
		return false
	}
	if err := json.Unmarshal([]byte(raw), dest); err != nil {
		return false
	}
	return true
}

// PutList stores a list under the kind/parent key.
func (c *Cache) PutList(ctx context.Context, kind enums.GeoKind, parentID *uuid.UUID, value any) {
	if !c.enabled() {
		return
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return
	}
	_ = c.store.Set(ctx, c.listKey(kind, parentID), string(raw), c.ttl)
}

// Invalidate drops the cached lists affected by adding an entity of kind under
// parentID: the all-entities list plus the parent-scoped list when present.
func (c *Cache) Invalidate(ctx context.Context, kind enums.GeoKind, parentID *uuid.UUID) error {
	if !c.enabled() {
		return nil
	}
	keys := []string{c.listKey(kind, nil)}
	if parentID != nil {
		keys = append(keys, c.listKey(kind, parentID))
	}
	err := c.store.Del(ctx, keys...)
	if err != nil && errors.Is(err, redis.Nil) {
		return nil
	}
	return err
}
