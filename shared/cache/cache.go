package cache

//go:generate go run go.uber.org/mock/mockgen -source=./cache.go -destination=./mocks/cache_mock.go -package=mocks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"parkflow/config"
	"parkflow/infras/otel"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	otelScopeName         = "cache"
	otelCacheKeyAttribute = "cache.key"

	scanBatch = 100
)

// Nil is returned (wrapped) by Get on a miss.
const Nil = redis.Nil

type RedisCache interface {
	Save(ctx context.Context, key string, value any, ttlSeconds int) (err error)
	Get(ctx context.Context, key string, value any) (err error)
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context, pattern string) error
}

type redisCache struct {
	client    *redis.Client
	otel      otel.Otel
	namespace string
}

// NewRedisCache stores every key under "<app name>:" so several services
// can share one Redis database.
func NewRedisCache(client *redis.Client, ot otel.Otel, cfg *config.Config) RedisCache {
	return &redisCache{
		client:    client,
		otel:      ot,
		namespace: cfg.App.Name,
	}
}

// Key returns the physical Redis key for a logical one.
func Key(namespace, key string) string {
	if namespace == "" {
		return key
	}

	return namespace + ":" + key
}

func (cache *redisCache) scope(ctx context.Context, operation, key string) (context.Context, otel.Scope) {
	ctx, scope := cache.otel.NewScope(ctx, otelScopeName, otelScopeName+"."+operation)
	scope.SetAttribute(otelCacheKeyAttribute, key)

	return ctx, scope
}

// Clear removes every key matching a glob pattern, e.g. "booking:*". Keys are
// scanned in batches and unlinked batch by batch.
func (cache *redisCache) Clear(ctx context.Context, pattern string) (err error) {
	ctx, scope := cache.scope(ctx, "Clear", pattern)
	defer scope.End()
	defer scope.TraceIfError(&err)

	var (
		cursor  uint64
		removed int
	)

	for {
		var keys []string

		keys, cursor, err = cache.client.Scan(ctx, cursor, Key(cache.namespace, pattern), scanBatch).Result()
		if err != nil {
			return fmt.Errorf("failed to scan cache keys: %w", err)
		}

		if len(keys) > 0 {
			if err = cache.client.Unlink(ctx, keys...).Err(); err != nil {
				log.Error().Err(err).Str("pattern", pattern).Msg("failed to unlink cache keys")

				return fmt.Errorf("failed to delete cache values: %w", err)
			}

			removed += len(keys)
		}

		if cursor == 0 {
			break
		}
	}

	log.Debug().Str("pattern", pattern).Int("removed", removed).Msg("cache cleared")

	return nil
}

func (cache *redisCache) Delete(ctx context.Context, key string) (err error) {
	ctx, scope := cache.scope(ctx, "Delete", key)
	defer scope.End()
	defer scope.TraceIfError(&err)

	if err = cache.client.Del(ctx, Key(cache.namespace, key)).Err(); err != nil {
		return fmt.Errorf("failed to delete cache value: %w", err)
	}

	return nil
}

// Get decodes the cached JSON into value. A miss wraps Nil.
func (cache *redisCache) Get(ctx context.Context, key string, value any) (err error) {
	ctx, scope := cache.scope(ctx, "Get", key)
	defer scope.End()

	raw, err := cache.client.Get(ctx, Key(cache.namespace, key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return fmt.Errorf("cache miss for %s: %w", key, err)
	}

	defer scope.TraceIfError(&err)

	if err != nil {
		return fmt.Errorf("failed to get cache value: %w", err)
	}

	if err = json.Unmarshal(raw, value); err != nil {
		log.Error().Err(err).Str("key", key).Msg("failed to unmarshal cache")

		return fmt.Errorf("failed to unmarshal cache value: %w", err)
	}

	return nil
}

func (cache *redisCache) Save(ctx context.Context, key string, value any, ttlSeconds int) (err error) {
	ctx, scope := cache.scope(ctx, "Save", key)
	defer scope.End()
	defer scope.TraceIfError(&err)

	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal cache value: %w", err)
	}

	if err = cache.client.Set(ctx, Key(cache.namespace, key), raw, time.Duration(ttlSeconds)*time.Second).Err(); err != nil {
		return fmt.Errorf("failed to set cache value: %w", err)
	}

	log.Debug().Str("key", key).Msg("cache saved")

	return nil
}
