package rfid

import (
	"context"
	"fmt"

	"github.com/atelier-meuble/inventaire-backend/pkg/config"
)

// Resolver answers whether an RFID tag id is known to the scanner fleet.
type Resolver interface {
	Resolve(ctx context.Context, tagID int64) (bool, error)
}

type tagStore interface {
	Exists(ctx context.Context, key string) (bool, error)
	RFIDTagKey(prefix string, tagID int64) string
}

type redisResolver struct {
	store  tagStore
	prefix string
}

// NewRedisResolver resolves tag ids against the registry the scanner fleet
// maintains in Redis.
func NewRedisResolver(store tagStore, cfg config.RFIDConfig) (Resolver, error) {
	if store == nil {
		return nil, fmt.Errorf("redis client required")
	}
	return &redisResolver{store: store, prefix: cfg.TagKeyPrefix}, nil
}

func (r *redisResolver) Resolve(ctx context.Context, tagID int64) (bool, error) {
	if tagID <= 0 {
		return false, nil
	}
	return r.store.Exists(ctx, r.store.RFIDTagKey(r.prefix, tagID))
}
