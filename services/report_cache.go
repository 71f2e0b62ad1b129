// services/report_cache.go
package services

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"boacompra-loader/models"

	"github.com/go-redis/redis/v8"
)

// ReportCache keeps fetched reports for a while. Get returns nil, nil on a
// miss.
type ReportCache interface {
	Get(ctx context.Context, key string) (*models.ReportResult, error)
	Set(ctx context.Context, key string, result *models.ReportResult) error
}

type noopCache struct{}

func (noopCache) Get(context.Context, string) (*models.ReportResult, error) { return nil, nil }
func (noopCache) Set(context.Context, string, *models.ReportResult) error   { return nil }

type RedisReportCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisReportCache(rdb *redis.Client, ttl time.Duration) *RedisReportCache {
	return &RedisReportCache{rdb: rdb, ttl: ttl}
}

func (c *RedisReportCache) Get(ctx context.Context, key string) (*models.ReportResult, error) {
	raw, err := c.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var result models.ReportResult
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *RedisReportCache) Set(ctx context.Context, key string, result *models.ReportResult) error {
	raw, err := json.Marshal(result)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, key, raw, c.ttl).Err()
}
