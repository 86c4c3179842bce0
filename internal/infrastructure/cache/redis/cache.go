// Package redis provides the optional canonical-result cache.  The cache is a
// pure accelerator: every value it stores is deterministically recomputable,
// so misses and failures degrade to a recompute, never to an error surfaced
// to the caller.
package redis

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/turtacn/SmilesKit/internal/config"
	"github.com/turtacn/SmilesKit/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/SmilesKit/pkg/errors"
)

// Cache is the surface the application layer depends on.  Implementations
// must be safe for concurrent use.
type Cache interface {
	// Get returns the cached value and whether it was present.
	Get(ctx context.Context, key string) (string, bool, error)

	// Set stores the value under key for ttl; a non-positive ttl falls back
	// to the configured default.
	Set(ctx context.Context, key, value string, ttl time.Duration) error

	// Delete removes the given keys.
	Delete(ctx context.Context, keys ...string) error

	// Ping verifies connectivity.
	Ping(ctx context.Context) error

	// Close releases the underlying connections.
	Close() error
}

type redisCache struct {
	client     *goredis.Client
	log        logging.Logger
	prefix     string
	defaultTTL time.Duration
}

// New builds a Redis-backed Cache from configuration.  The connection is
// lazy; use Ping to verify it eagerly at startup.
func New(cfg config.CacheConfig, log logging.Logger) Cache {
	client := goredis.NewClient(&goredis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	})
	return &redisCache{
		client:     client,
		log:        log.Named("cache"),
		prefix:     cfg.KeyPrefix,
		defaultTTL: cfg.DefaultTTL,
	}
}

func (c *redisCache) key(k string) string {
	if c.prefix == "" {
		return k
	}
	return fmt.Sprintf("%s:%s", c.prefix, k)
}

func (c *redisCache) Get(ctx context.Context, key string) (string, bool, error) {
	val, err := c.client.Get(ctx, c.key(key)).Result()
	if err == goredis.Nil {
		return "", false, nil
	}
	if err != nil {
		c.log.Warn("cache get failed", logging.String("key", key), logging.Err(err))
		return "", false, errors.Wrap(err, errors.CodeCacheError, "cache get failed")
	}
	return val, true, nil
}

func (c *redisCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = c.defaultTTL
	}
	if err := c.client.Set(ctx, c.key(key), value, ttl).Err(); err != nil {
		c.log.Warn("cache set failed", logging.String("key", key), logging.Err(err))
		return errors.Wrap(err, errors.CodeCacheError, "cache set failed")
	}
	return nil
}

func (c *redisCache) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	full := make([]string, len(keys))
	for i, k := range keys {
		full[i] = c.key(k)
	}
	if err := c.client.Del(ctx, full...).Err(); err != nil {
		return errors.Wrap(err, errors.CodeCacheError, "cache delete failed")
	}
	return nil
}

func (c *redisCache) Ping(ctx context.Context) error {
	if err := c.client.Ping(ctx).Err(); err != nil {
		return errors.Wrap(err, errors.CodeCacheError, "cache ping failed")
	}
	return nil
}

func (c *redisCache) Close() error {
	return c.client.Close()
}
