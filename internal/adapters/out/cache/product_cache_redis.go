// backend/internal/adapters/out/cache/product_cache_redis.go
package cache

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/go-redis/redis/v8"
	"golang.org/x/sync/singleflight"

	productdom "github.com/TheRipper284/backend/internal/domain/product"
)

// CachedProductReader is a cache-aside product.Reader: Redis first, then
// the underlying repository, with singleflight collapsing concurrent
// misses for the same id. Redis failures degrade to direct reads.
//
// Checkout never reads through this type; stale stock is acceptable for
// display only.
type CachedProductReader struct {
	inner productdom.Reader
	rdb   *redis.Client
	ttl   time.Duration
	group singleflight.Group
}

func NewCachedProductReader(inner productdom.Reader, rdb *redis.Client, ttl time.Duration) *CachedProductReader {
	return &CachedProductReader{inner: inner, rdb: rdb, ttl: ttl}
}

func productKey(id string) string {
	return "product:" + id
}

func (c *CachedProductReader) GetByID(ctx context.Context, id string) (productdom.Product, error) {
	if c.rdb == nil {
		return c.inner.GetByID(ctx, id)
	}

	value, err := c.rdb.Get(ctx, productKey(id)).Result()
	if err == nil {
		var p productdom.Product
		if uerr := json.Unmarshal([]byte(value), &p); uerr == nil {
			return p, nil
		}
		// Corrupt entry; fall through and refill.
	} else if err != redis.Nil {
		log.Printf("[cache] redis get failed for product %s: %v", id, err)
		return c.inner.GetByID(ctx, id)
	}

	v, err, _ := c.group.Do(productKey(id), func() (any, error) {
		p, err := c.inner.GetByID(ctx, id)
		if err != nil {
			return productdom.Product{}, err
		}
		if payload, merr := json.Marshal(p); merr == nil {
			if serr := c.rdb.Set(ctx, productKey(id), payload, c.ttl).Err(); serr != nil {
				log.Printf("[cache] redis set failed for product %s: %v", id, serr)
			}
		}
		return p, nil
	})
	if err != nil {
		return productdom.Product{}, err
	}
	return v.(productdom.Product), nil
}

// Invalidate drops cached entries; called after checkout decrements stock.
func (c *CachedProductReader) Invalidate(ctx context.Context, productIDs ...string) error {
	if c.rdb == nil || len(productIDs) == 0 {
		return nil
	}
	keys := make([]string, 0, len(productIDs))
	for _, id := range productIDs {
		keys = append(keys, productKey(id))
	}
	return c.rdb.Del(ctx, keys...).Err()
}
