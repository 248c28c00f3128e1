package redisad

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"propwise/internal/adapters/observability"
)

// KeyPrefix namespaces every key this cache writes.
const KeyPrefix = "propwise:"

// Cache is a JSON value cache over one Redis database. Keys passed in are
// logical names; the stored key is KeyPrefix+name.
type Cache struct{ c *redis.Client }

func New(addr, pass string, db int) *Cache {
	return &Cache{c: redis.NewClient(&redis.Options{Addr: addr, Password: pass, DB: db})}
}

func key(name string) string { return KeyPrefix + name }

func (r *Cache) Get(ctx context.Context, name string, dst any) (bool, error) {
	v, err := r.c.Get(ctx, key(name)).Bytes()
	if err == redis.Nil {
		observability.ObserveCache("redis", "miss")
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("redis: get %s: %w", name, err)
	}
	observability.ObserveCache("redis", "hit")
	if err := json.Unmarshal(v, dst); err != nil {
		// a value we cannot decode is treated as absent and dropped
		_ = r.c.Del(ctx, key(name)).Err()
		return false, fmt.Errorf("redis: decode %s: %w", name, err)
	}
	return true, nil
}

func (r *Cache) Set(ctx context.Context, name string, v any, ttlSec int) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("redis: marshal %s: %w", name, err)
	}
	observability.ObserveCache("redis", "set")
	return r.c.Set(ctx, key(name), b, time.Duration(ttlSec)*time.Second).Err()
}

func (r *Cache) Del(ctx context.Context, name string) error {
	observability.ObserveCache("redis", "del")
	return r.c.Del(ctx, key(name)).Err()
}

func (r *Cache) Close() error { return r.c.Close() }
