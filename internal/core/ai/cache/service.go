package cache

import (
	"context"
	"fmt"

	"garden-advisor/internal/infrastructure/config"
	"garden-advisor/internal/pkg/common"

	"github.com/go-redis/redis/v8"
)

// RedisStore caches completions in Redis, for deployments where several
// instances should share one cache.
type RedisStore struct {
	client *redis.Client
	config *config.CacheConfig
}

// NewRedisStore connects to Redis at the configured address.
func NewRedisStore(cfg *config.Config) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr: cfg.Cache.RedisAddr,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisStore{
		client: client,
		config: &cfg.Cache,
	}, nil
}

// Get returns the cached completion for key.
func (s *RedisStore) Get(ctx context.Context, key string) (string, error) {
	val, err := s.client.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			common.LogCacheMiss("redis", key)
			return "", common.ErrCacheMiss
		}
		return "", fmt.Errorf("failed to get cache: %w", err)
	}

	common.LogCacheHit("redis", key)
	return val, nil
}

// Set stores a completion under key with the configured TTL.
func (s *RedisStore) Set(ctx context.Context, key, value string) error {
	if err := s.client.Set(ctx, key, value, s.config.TTL).Err(); err != nil {
		return fmt.Errorf("failed to set cache: %w", err)
	}
	return nil
}

// Close releases the Redis connection.
func (s *RedisStore) Close() error {
	return s.client.Close()
}

// NewStore picks the Redis store when an address is configured, otherwise
// the in-memory manager. Returns nil when caching is disabled.
func NewStore(cfg *config.Config) (Store, error) {
	if !cfg.Cache.Enabled {
		return nil, nil
	}
	if cfg.Cache.RedisAddr != "" {
		return NewRedisStore(cfg)
	}
	if m := NewManager(cfg); m != nil {
		return m, nil
	}
	return nil, nil
}
