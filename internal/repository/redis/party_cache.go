package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/NordCoder/tsreturn/internal/domain/returns"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

var _ returns.PartyReader = (*PartyCache)(nil)

type kv interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
}

// PartyCache is a read-through cache in front of a PartyReader.
// Redis failures never fail a lookup: the call goes to the underlying reader.
type PartyCache struct {
	rdb  kv
	next returns.PartyReader
	ttl  time.Duration
	log  *zap.Logger
}

func NewPartyCache(rdb kv, next returns.PartyReader, ttl time.Duration, log *zap.Logger) *PartyCache {
	if log == nil {
		log = zap.L()
	}
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &PartyCache{
		rdb:  rdb,
		next: next,
		ttl:  ttl,
		log:  log.With(zap.String("component", "redis.party_cache")),
	}
}

func (c *PartyCache) FindSellerByID(ctx context.Context, id int64) (*returns.Party, error) {
	return c.get(ctx, "seller", id, c.next.FindSellerByID)
}

func (c *PartyCache) FindContractorByID(ctx context.Context, id int64) (*returns.Party, error) {
	return c.get(ctx, "contractor", id, c.next.FindContractorByID)
}

func (c *PartyCache) FindEmployeeByID(ctx context.Context, id int64) (*returns.Party, error) {
	return c.get(ctx, "employee", id, c.next.FindEmployeeByID)
}

func (c *PartyCache) get(
	ctx context.Context,
	kind string,
	id int64,
	load func(context.Context, int64) (*returns.Party, error),
) (*returns.Party, error) {
	key := fmt.Sprintf("party:%s:%d", kind, id)

	raw, err := c.rdb.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var p returns.Party
		if uerr := json.Unmarshal(raw, &p); uerr == nil {
			return &p, nil
		}
		c.log.Warn("corrupt cache entry", zap.String("key", key))
	case !errors.Is(err, redis.Nil):
		c.log.Warn("redis get failed, falling back", zap.String("key", key), zap.Error(err))
	}

	p, err := load(ctx, id)
	if err != nil {
		return nil, err
	}

	if b, merr := json.Marshal(p); merr == nil {
		if serr := c.rdb.Set(ctx, key, b, c.ttl).Err(); serr != nil {
			c.log.Warn("redis set failed", zap.String("key", key), zap.Error(serr))
		}
	}
	return p, nil
}
