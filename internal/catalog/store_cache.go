package catalog

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"
)

const cacheKeyPrefix = "catalog:product:"

// Cache is the subset of a key/value cache CachedStore needs.
// Get reports a miss with ok=false and a nil error.
type Cache interface {
	Get(ctx context.Context, key string) (data []byte, ok bool, err error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
}

// CachedStore is a read-through cache for single-product lookups. Cache
// errors are logged and the underlying store is used instead.
type CachedStore struct {
	Store Store
	Cache Cache
	TTL   time.Duration
	Log   *zap.Logger
}

func NewCachedStore(store Store, cache Cache, ttl time.Duration, log *zap.Logger) *CachedStore {
	if log == nil {
		log = zap.NewNop()
	}
	return &CachedStore{Store: store, Cache: cache, TTL: ttl, Log: log}
}

func (s *CachedStore) Ping(ctx context.Context) error {
	return s.Store.Ping(ctx)
}

func (s *CachedStore) ListSortedByName(ctx context.Context) ([]Entry, error) {
	return s.Store.ListSortedByName(ctx)
}

func (s *CachedStore) Get(ctx context.Context, name string) (Entry, bool, error) {
	key := cacheKeyPrefix + name

	data, ok, err := s.Cache.Get(ctx, key)
	switch {
	case err != nil:
		s.Log.Warn("catalog cache get failed", zap.Error(err), zap.String("name", name))
	case ok:
		var e Entry
		if err := json.Unmarshal(data, &e); err == nil {
			return e, true, nil
		}
		s.Log.Warn("catalog cache entry corrupt", zap.String("name", name))
	}

	e, found, err := s.Store.Get(ctx, name)
	if err != nil || !found {
		return e, found, err
	}

	if data, err := json.Marshal(e); err == nil {
		if err := s.Cache.Set(ctx, key, data, s.TTL); err != nil {
			s.Log.Warn("catalog cache set failed", zap.Error(err), zap.String("name", name))
		}
	}
	return e, true, nil
}
