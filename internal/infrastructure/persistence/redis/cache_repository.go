package redis

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/nutriplan/v1/internal/ports/outbound"
)

const scanBatch = 200

// CacheRepository implements outbound.CacheRepository on Redis strings
type CacheRepository struct {
	client *Client
	logger *zap.Logger
}

// NewCacheRepository creates a Redis cache repository
func NewCacheRepository(client *Client, logger *zap.Logger) *CacheRepository {
	return &CacheRepository{client: client, logger: logger}
}

// Get retrieves a value; missing keys report outbound.ErrCacheMiss
func (r *CacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	var data []byte
	err := r.client.do(func() error {
		var err error
		data, err = r.client.client.Get(ctx, r.client.Key(key)).Bytes()
		return err
	})
	if errors.Is(err, redis.Nil) {
		return nil, outbound.ErrCacheMiss
	}
	if err != nil {
		r.logger.Debug("Cache get failed", zap.String("key", key), zap.Error(err))
		return nil, err
	}
	return data, nil
}

// Set stores a value with TTL
func (r *CacheRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	err := r.client.do(func() error {
		return r.client.client.Set(ctx, r.client.Key(key), value, ttl).Err()
	})
	if err != nil {
		r.logger.Error("Cache set failed", zap.String("key", key), zap.Error(err))
	}
	return err
}

// Delete removes a value from cache
func (r *CacheRepository) Delete(ctx context.Context, key string) error {
	err := r.client.do(func() error {
		return r.client.client.Del(ctx, r.client.Key(key)).Err()
	})
	if err != nil {
		r.logger.Error("Cache delete failed", zap.String("key", key), zap.Error(err))
	}
	return err
}

// DeletePrefix scans for keys under prefix and unlinks them in batches
func (r *CacheRepository) DeletePrefix(ctx context.Context, prefix string) error {
	pattern := r.client.Key(prefix) + "*"

	err := r.client.do(func() error {
		iter := r.client.client.Scan(ctx, 0, pattern, scanBatch).Iterator()
		batch := make([]string, 0, scanBatch)
		for iter.Next(ctx) {
			batch = append(batch, iter.Val())
			if len(batch) == scanBatch {
				if err := r.client.client.Unlink(ctx, batch...).Err(); err != nil {
					return err
				}
				batch = batch[:0]
			}
		}
		if err := iter.Err(); err != nil {
			return err
		}
		if len(batch) > 0 {
			return r.client.client.Unlink(ctx, batch...).Err()
		}
		return nil
	})
	if err != nil {
		r.logger.Error("Cache prefix delete failed", zap.String("prefix", prefix), zap.Error(err))
	}
	return err
}

var _ outbound.CacheRepository = (*CacheRepository)(nil)
