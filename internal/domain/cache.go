package domain

import (
	"context"
	"time"
)

// DatasetCache stores raw upstream datasets keyed by source identity and
// query parameters. Entries expire after the TTL given at Set time; a Get
// after expiry returns ErrCacheMiss. Market metadata and transaction
// windows change slowly, so one fetch per TTL window is shared by every
// rendering pass.
type DatasetCache interface {
	// Get unmarshals the cached dataset for key into dst.
	Get(ctx context.Context, key string, dst any) error
	// Set marshals v and stores it under key with the given TTL.
	Set(ctx context.Context, key string, v any, ttl time.Duration) error
}
