package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const storageNamespace = "pitchbooking:v1:storage"

// storageTTL bounds how long an idle browser keeps its staff session.
const storageTTL = 30 * 24 * time.Hour

type redisStorage struct {
	rdb *redis.Client
	log *zap.Logger
}

func NewRedisStorage(rdb *redis.Client, log *zap.Logger) StorageRepository {
	return &redisStorage{
		rdb: rdb,
		log: log.With(zap.String("repository", "storage"), zap.String("driver", "redis")),
	}
}

func storageKey(sid, key string) string {
	return fmt.Sprintf("%s:%s:%s", storageNamespace, sid, key)
}

func (r *redisStorage) Get(ctx context.Context, sid, key string) (string, bool, error) {
	v, err := r.rdb.Get(ctx, storageKey(sid, key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		r.log.Error("Failed to read storage key", zap.Error(err), zap.String("key", key))
		return "", false, fmt.Errorf("read %s: %w", key, err)
	}

	return v, true, nil
}

func (r *redisStorage) Set(ctx context.Context, sid, key, value string) error {
	if err := r.rdb.Set(ctx, storageKey(sid, key), value, storageTTL).Err(); err != nil {
		r.log.Error("Failed to write storage key", zap.Error(err), zap.String("key", key))
		return fmt.Errorf("write %s: %w", key, err)
	}

	return nil
}

func (r *redisStorage) Delete(ctx context.Context, sid string, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}

	full := make([]string, 0, len(keys))
	for _, k := range keys {
		full = append(full, storageKey(sid, k))
	}

	if err := r.rdb.Del(ctx, full...).Err(); err != nil {
		r.log.Error("Failed to delete storage keys", zap.Error(err), zap.Strings("keys", keys))
		return fmt.Errorf("delete keys: %w", err)
	}

	return nil
}
