package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// lookupCache is a read-through JSON cache over Redis. A nil client
// disables caching entirely; cache failures are logged and fall through
// to the store, never surfacing to the caller.
type lookupCache struct {
	rdb *redis.Client
	ttl time.Duration
	log zerolog.Logger
}

func newLookupCache(rdb *redis.Client, ttl time.Duration, log zerolog.Logger) *lookupCache {
	return &lookupCache{rdb: rdb, ttl: ttl, log: log.With().Str("component", "lookup_cache").Logger()}
}

// get unmarshals the cached value for key into dst. Returns false on
// miss, disabled cache, or any cache error.
func (c *lookupCache) get(ctx context.Context, key string, dst interface{}) bool {
	if c.rdb == nil {
		return false
	}
	data, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.log.Debug().Err(err).Str("key", key).Msg("Cache read failed")
		}
		return false
	}
	if err := json.Unmarshal(data, dst); err != nil {
		c.log.Debug().Err(err).Str("key", key).Msg("Cache entry corrupt")
		return false
	}
	return true
}

// set stores v under key with the configured TTL. Best effort.
func (c *lookupCache) set(ctx context.Context, key string, v interface{}) {
	if c.rdb == nil {
		return
	}
	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, key, data, c.ttl).Err(); err != nil {
		c.log.Debug().Err(err).Str("key", key).Msg("Cache write failed")
	}
}
