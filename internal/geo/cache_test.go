package geo

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/storelane/storelane-backend/pkg/enums"
	"github.com/storelane/storelane-backend/pkg/redis"
)

type mapCacheStore struct {
	data map[string]string
}

func newMapCacheStore() *mapCacheStore {
	return &mapCacheStore{data: map[string]string{}}
}

func (m *mapCacheStore) Get(ctx context.Context, key string) (string, error) {
	v, ok := m.data[key]
	if !ok {
		return "", redis.Nil
	}
	return v, nil
}

func (m *mapCacheStore) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	m.data[key] = value.(string)
	return nil
}

func (m *mapCacheStore) Del(ctx context.Context, keys ...string) error {
	for _, k := range keys {
		delete(m.data, k)
	}
	return nil
}

func (m *mapCacheStore) CacheKey(parts ...string) string {
	return "sl:cache:" + strings.Join(parts, ":")
}

func TestCacheRoundTrip(t *testing.T) {
	store := newMapCacheStore()
	cache := NewCache(store, time.Minute)
	ctx := context.Background()
	cityID := uuid.New()

	areas := []AreaDTO{{ID: uuid.New(), Name: "Kothrud", CityID: cityID}}
	cache.PutList(ctx, enums.GeoKindArea, &cityID, areas)

	var got []AreaDTO
	if !cache.GetList(ctx, enums.GeoKindArea, &cityID, &got) {
		t.Fatal("expected cache hit")
	}
	if len(got) != 1 || got[0].Name != "Kothrud" {
		t.Fatalf("unexpected cached value %+v", got)
	}

	// a different parent scope is a separate key
	other := uuid.New()
	var miss []AreaDTO
	if cache.GetList(ctx, enums.GeoKindArea, &other, &miss) {
		t.Fatal("expected cache miss for different parent")
	}
}

func TestCacheInvalidateDropsScopedAndAllKeys(t *testing.T) {
	store := newMapCacheStore()
	cache := NewCache(store, time.Minute)
	ctx := context.Background()
	cityID := uuid.New()

	cache.PutList(ctx, enums.GeoKindArea, nil, []AreaDTO{})
	cache.PutList(ctx, enums.GeoKindArea, &cityID, []AreaDTO{})

	if err := cache.Invalidate(ctx, enums.GeoKindArea, &cityID); err != nil {
		t.Fatalf("invalidate: %v", err)
	}

	var dest []AreaDTO
	if cache.GetList(ctx, enums.GeoKindArea, nil, &dest) {
		t.Fatal("expected all-areas key dropped")
	}
	if cache.GetList(ctx, enums.GeoKindArea, &cityID, &dest) {
		t.Fatal("expected scoped key dropped")
	}
}

func TestNilCacheIsNoop(t *testing.T) {
	var cache *Cache
	ctx := context.Background()

	var dest []CityDTO
	if cache.GetList(ctx, enums.GeoKindCity, nil, &dest) {
		t.Fatal("nil cache should always miss")
	}
	cache.PutList(ctx, enums.GeoKindCity, nil, []CityDTO{})
	if err := cache.Invalidate(ctx, enums.GeoKindCity, nil); err != nil {
		t.Fatalf("nil cache invalidate: %v", err)
	}
}
