package repository

import (
	"context"
	"encoding/json"
	"time"

	"github.com/aaravmahajanofficial/kirana-storefront/internal/cache"
	"github.com/aaravmahajanofficial/kirana-storefront/internal/cart"
)

// redisCartRepository keeps cart snapshots in redis with a sliding TTL that is
// refreshed on every save.
type redisCartRepository struct {
	cache cache.Cache
	ttl   time.Duration
}

func NewRedisCartRepo(c cache.Cache, ttl time.Duration) cart.Persister {
	return &redisCartRepository{cache: c, ttl: ttl}
}

func (r *redisCartRepository) Load(ctx context.Context, key string) ([]byte, error) {
	var payload json.RawMessage

	found, err := r.cache.Get(ctx, cache.Key(cache.CartKeyPrefix, key), &payload)
	if err != nil {
		return nil, err
	}

	if !found {
		return nil, cart.ErrSnapshotNotFound
	}

	return payload, nil
}

func (r *redisCartRepository) Save(ctx context.Context, key string, data []byte) error {
	return r.cache.Set(ctx, cache.Key(cache.CartKeyPrefix, key), json.RawMessage(data), r.ttl)
}

func (r *redisCartRepository) Delete(ctx context.Context, key string) error {
	return r.cache.Delete(ctx, cache.Key(cache.CartKeyPrefix, key))
}
