package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/adilzhan-dev/orda-storefront/pkg/config"
	"github.com/adilzhan-dev/orda-storefront/pkg/logger"
	"github.com/redis/go-redis/v9"
)

const keyNamespace = "orda:kv"

type cmdable interface {
	Ping(context.Context) *redis.StatusCmd
	Set(context.Context, string, any, time.Duration) *redis.StatusCmd
	Get(context.Context, string) *redis.StringCmd
	Del(context.Context, ...string) *redis.IntCmd
}

// RedisKV keeps the KV surface on a Redis instance for deployments that
// already run one next to the storefront.
type RedisKV struct {
	store cmdable
}

// NewRedis bootstraps a Redis-backed KV and verifies connectivity.
func NewRedis(ctx context.Context, cfg config.StorageConfig, logg *logger.Logger) (*RedisKV, error) {
	raw := redis.NewClient(&redis.Options{
		Addr:         cfg.RedisAddr,
		Password:     cfg.RedisPassword,
		DB:           cfg.RedisDB,
		DialTimeout:  cfg.RedisDialTimeout,
		ReadTimeout:  cfg.RedisReadTimeout,
		WriteTimeout: cfg.RedisWriteTimeout,
	})
	if err := raw.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	if logg != nil {
		logg.Info(ctx, "redis storage connected")
	}
	return &RedisKV{store: raw}, nil
}

func (r *RedisKV) Get(ctx context.Context, key string) (string, bool, error) {
	value, err := r.store.Get(ctx, namespaced(key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("read kv entry %q: %w", key, err)
	}
	return value, true, nil
}

func (r *RedisKV) Set(ctx context.Context, key, value string) error {
	if err := r.store.Set(ctx, namespaced(key), value, 0).Err(); err != nil {
		return fmt.Errorf("write kv entry %q: %w", key, err)
	}
	return nil
}

func (r *RedisKV) Remove(ctx context.Context, key string) error {
	if err := r.store.Del(ctx, namespaced(key)).Err(); err != nil {
		return fmt.Errorf("delete kv entry %q: %w", key, err)
	}
	return nil
}

func namespaced(key string) string {
	return strings.Join([]string{keyNamespace, key}, ":")
}
