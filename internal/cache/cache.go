package cache

import (
	"context"
	"time"
)

type Cache interface {
	GetJSON(ctx context.Context, key string, dst any) (hit bool, err error)
	SetJSON(ctx context.Context, key string, val any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
}

// Key builds the cache key for a public collection read.
func Key(kind string) string { return "folio:public:" + kind }

// Remember is fetch-through: on a miss it calls fetch and stores the
// result. Cache errors degrade to a plain fetch; reads never fail
// because the cache is down.
func Remember[T any](ctx context.Context, c Cache, key string, ttl time.Duration, fetch func(context.Context) (T, error)) (T, error) {
	var cached T
	if c != nil {
		if hit, err := c.GetJSON(ctx, key, &cached); err == nil && hit {
			return cached, nil
		}
	}

	out, err := fetch(ctx)
	if err != nil {
		return out, err
	}
	if c != nil {
		_ = c.SetJSON(ctx, key, out, ttl)
	}
	return out, nil
}
