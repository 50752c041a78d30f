// Package memory implements domain.DatasetCache as an in-process map with
// expiry timestamps. It is the default backend and matches the original
// dashboard's process-local cache: populated on first access, invalidated
// after the TTL elapses, cleared on restart.
package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/misaghlb/overtime-dashboard/internal/domain"
)

type entry struct {
	data      []byte
	expiresAt time.Time
}

// DatasetCache is a TTL map keyed by dataset identity. Values are stored as
// JSON so the memory and Redis backends behave identically.
type DatasetCache struct {
	mu      sync.Mutex
	entries map[string]entry
	now     func() time.Time
}

// NewDatasetCache creates an empty in-process cache.
func NewDatasetCache() *DatasetCache {
	return &DatasetCache{
		entries: make(map[string]entry),
		now:     time.Now,
	}
}

// Get unmarshals the cached dataset for key into dst. It returns
// domain.ErrCacheMiss when the key is absent or expired; expired entries
// are dropped on access.
func (dc *DatasetCache) Get(_ context.Context, key string, dst any) error {
	dc.mu.Lock()
	e, ok := dc.entries[key]
	if ok && dc.now().After(e.expiresAt) {
		delete(dc.entries, key)
		ok = false
	}
	dc.mu.Unlock()

	if !ok {
		return domain.ErrCacheMiss
	}

	if err := json.Unmarshal(e.data, dst); err != nil {
		return fmt.Errorf("memory: unmarshal dataset %s: %w", key, err)
	}
	return nil
}

// Set stores a dataset under key with the given TTL.
func (dc *DatasetCache) Set(_ context.Context, key string, v any, ttl time.Duration) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("memory: marshal dataset %s: %w", key, err)
	}

	dc.mu.Lock()
	dc.entries[key] = entry{
		data:      data,
		expiresAt: dc.now().Add(ttl),
	}
	dc.mu.Unlock()
	return nil
}

// Compile-time interface check.
var _ domain.DatasetCache = (*DatasetCache)(nil)
