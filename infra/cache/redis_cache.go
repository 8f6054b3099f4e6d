package cache

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/amirasaad/invest/pkg/cache"
	"github.com/amirasaad/invest/pkg/config"
	"github.com/redis/go-redis/v9"
)

// RedisCache implements cache.Store using Redis.
type RedisCache struct {
	client *redis.Client
	prefix string
	logger *slog.Logger
}

// NewRedisCache connects using cfg.URL and pings the server.
func NewRedisCache(ctx context.Context, cfg *config.Redis, logger *slog.Logger) (*RedisCache, error) {
	opt, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	opt.PoolSize = cfg.PoolSize
	opt.DialTimeout = cfg.DialTimeout
	opt.ReadTimeout = cfg.ReadTimeout
	opt.WriteTimeout = cfg.WriteTimeout

	client := redis.NewClient(opt)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return NewRedisCacheWithClient(client, cfg.KeyPrefix, logger), nil
}

// NewRedisCacheWithClient wraps an existing client.
func NewRedisCacheWithClient(client *redis.Client, prefix string, logger *slog.Logger) *RedisCache {
	if logger == nil {
		logger = slog.Default()
	}
	return &RedisCache{client: client, prefix: prefix, logger: logger.With("cache", "redis")}
}

func (r *RedisCache) key(key string) string {
	return r.prefix + key
}

func (r *RedisCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	val, err := r.client.Get(ctx, r.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		r.logger.Debug("Redis cache miss", "key", key)
		return nil, false, nil
	}
	if err != nil {
		r.logger.Error("Redis cache get error", "key", key, "error", err)
		return nil, false, err
	}
	return val, true, nil
}

func (r *RedisCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := r.client.Set(ctx, r.key(key), value, ttl).Err(); err != nil {
		r.logger.Error("Redis cache set error", "key", key, "error", err)
		return err
	}
	r.logger.Debug("Redis cache set", "key", key, "ttl", ttl)
	return nil
}

func (r *RedisCache) Delete(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, r.key(key)).Err(); err != nil {
		r.logger.Error("Redis cache delete error", "key", key, "error", err)
		return err
	}
	return nil
}

func (r *RedisCache) Close() error {
	return r.client.Close()
}

var _ cache.Store = (*RedisCache)(nil)
