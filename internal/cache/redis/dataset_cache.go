package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/misaghlb/overtime-dashboard/internal/domain"
)

// DatasetCache implements domain.DatasetCache using plain Redis strings
// with JSON-serialized dataset payloads.
//
// Key schema:
//
//	dataset:{key} - JSON blob, expiry handled by Redis TTL
type DatasetCache struct {
	rdb *redis.Client
}

// NewDatasetCache creates a DatasetCache backed by the given Client.
func NewDatasetCache(c *Client) *DatasetCache {
	return &DatasetCache{rdb: c.Underlying()}
}

func datasetKey(key string) string { return "dataset:" + key }

// Get retrieves the dataset stored under key and unmarshals it into dst.
// It returns domain.ErrCacheMiss when the key does not exist or has
// expired.
func (dc *DatasetCache) Get(ctx context.Context, key string, dst any) error {
	data, err := dc.rdb.Get(ctx, datasetKey(key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return domain.ErrCacheMiss
		}
		return fmt.Errorf("redis: get dataset %s: %w", key, err)
	}

	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("redis: unmarshal dataset %s: %w", key, err)
	}
	return nil
}

// Set stores a dataset under key with the given TTL.
func (dc *DatasetCache) Set(ctx context.Context, key string, v any, ttl time.Duration) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("redis: marshal dataset %s: %w", key, err)
	}

	if err := dc.rdb.Set(ctx, datasetKey(key), data, ttl).Err(); err != nil {
		return fmt.Errorf("redis: set dataset %s: %w", key, err)
	}
	return nil
}

// Compile-time interface check.
var _ domain.DatasetCache = (*DatasetCache)(nil)
