package furniture

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/atelier-meuble/inventaire-backend/pkg/logger"
	"github.com/atelier-meuble/inventaire-backend/pkg/redis"
)

// BarcodeCache is a read-through cache from barcode to furniture id. All
// methods degrade to a miss or a no-op on cache faults; the store stays the
// source of truth.
type BarcodeCache interface {
	GetID(ctx context.Context, barcode string) (int64, bool)
	StoreID(ctx context.Context, barcode string, id int64)
	Invalidate(ctx context.Context, barcode string)
}

type redisBarcodeCache struct {
	client *redis.Client
	ttl    time.Duration
	log    *logger.Logger
}

// NewBarcodeCache wraps the Redis client as a barcode lookup cache.
func NewBarcodeCache(client *redis.Client, ttl time.Duration, log *logger.Logger) BarcodeCache {
	return &redisBarcodeCache{client: client, ttl: ttl, log: log}
}

func (c *redisBarcodeCache) GetID(ctx context.Context, barcode string) (int64, bool) {
	if c.client == nil || barcode == "" {
		return 0, false
	}
	raw, err := c.client.Get(ctx, c.client.BarcodeCacheKey(barcode))
	if err != nil {
		if !errors.Is(err, redis.ErrNil) && c.log != nil {
			c.log.Warn(ctx, "barcode cache read failed: "+err.Error())
		}
		return 0, false
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func (c *redisBarcodeCache) StoreID(ctx context.Context, barcode string, id int64) {
	if c.client == nil || barcode == "" || id <= 0 {
		return
	}
	key := c.client.BarcodeCacheKey(barcode)
	if err := c.client.Set(ctx, key, strconv.FormatInt(id, 10), c.ttl); err != nil && c.log != nil {
		c.log.Warn(ctx, "barcode cache write failed: "+err.Error())
	}
}

func (c *redisBarcodeCache) Invalidate(ctx context.Context, barcode string) {
	if c.client == nil || barcode == "" {
		return
	}
	if err := c.client.Del(ctx, c.client.BarcodeCacheKey(barcode)); err != nil && c.log != nil {
		c.log.Warn(ctx, "barcode cache invalidation failed: "+err.Error())
	}
}
