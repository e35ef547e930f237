package redisad

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"hotel_booking/internal/adapters/observability"
)

// Cache stores JSON-encoded catalog and weather reads in Redis. Metrics are
// labelled by key family, the part of the key before the first colon.
type Cache struct{ c *redis.Client }

func New(addr, pass string, db int) *Cache {
	return NewFromClient(redis.NewClient(&redis.Options{Addr: addr, Password: pass, DB: db}))
}

func NewFromClient(c *redis.Client) *Cache { return &Cache{c: c} }

func (r *Cache) Ping(ctx context.Context) error { return r.c.Ping(ctx).Err() }

func (r *Cache) Close() error { return r.c.Close() }

func family(key string) string {
	if i := strings.IndexByte(key, ':'); i > 0 {
		return key[:i]
	}
	return key
}

// Get reports a miss for absent keys. An entry that no longer decodes into
// dst is dropped and also reported as a miss.
func (r *Cache) Get(ctx context.Context, key string, dst any) (bool, error) {
	fam := family(key)
	v, err := r.c.Get(ctx, key).Bytes()
	switch {
	case errors.Is(err, redis.Nil):
		observability.ObserveCache(fam, "miss")
		return false, nil
	case err != nil:
		observability.ObserveCache(fam, "error")
		return false, err
	}
	if err := json.Unmarshal(v, dst); err != nil {
		observability.ObserveCache(fam, "corrupt")
		_ = r.c.Del(ctx, key).Err()
		return false, nil
	}
	observability.ObserveCache(fam, "hit")
	return true, nil
}

func (r *Cache) Set(ctx context.Context, key string, v any, ttlSec int) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	if err := r.c.Set(ctx, key, b, time.Duration(ttlSec)*time.Second).Err(); err != nil {
		observability.ObserveCache(family(key), "error")
		return err
	}
	observability.ObserveCache(family(key), "set")
	return nil
}

func (r *Cache) Del(ctx context.Context, key string) error {
	observability.ObserveCache(family(key), "del")
	return r.c.Del(ctx, key).Err()
}
