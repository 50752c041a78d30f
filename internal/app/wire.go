package app

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/misaghlb/overtime-dashboard/internal/cache/memory"
	"github.com/misaghlb/overtime-dashboard/internal/cache/redis"
	"github.com/misaghlb/overtime-dashboard/internal/config"
	"github.com/misaghlb/overtime-dashboard/internal/domain"
	"github.com/misaghlb/overtime-dashboard/internal/platform/flipside"
	"github.com/misaghlb/overtime-dashboard/internal/platform/thales"
	"github.com/misaghlb/overtime-dashboard/internal/service"
)

// Dependencies bundles everything the application modes need to operate. It
// is constructed by Wire and torn down by the returned cleanup function.
type Dependencies struct {
	Cache   domain.DatasetCache
	Reports *service.ReportService
}

// Wire constructs all concrete dependency implementations from the given
// configuration and returns them together with a cleanup function that
// should be called on shutdown to release resources.
func Wire(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Dependencies, func(), error) {
	var closers []func()
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	deps := &Dependencies{}

	// --- Dataset cache ---
	switch strings.ToLower(cfg.Cache.Backend) {
	case "redis":
		redisClient, err := redis.New(ctx, redis.ClientConfig{
			Addr:       cfg.Redis.Addr,
			Password:   cfg.Redis.Password,
			DB:         cfg.Redis.DB,
			PoolSize:   cfg.Redis.PoolSize,
			MaxRetries: cfg.Redis.MaxRetries,
			TLSEnabled: cfg.Redis.TLSEnabled,
		})
		if err != nil {
			cleanup()
			return nil, nil, fmt.Errorf("wire: redis: %w", err)
		}
		closers = append(closers, func() { _ = redisClient.Close() })
		deps.Cache = redis.NewDatasetCache(redisClient)
	default:
		deps.Cache = memory.NewDatasetCache()
	}

	// --- Platform clients ---
	thalesClient := thales.NewClient(cfg.Thales.SubgraphURL, cfg.Thales.MaxMarkets)
	flipsideClient := flipside.NewClient()

	// --- Report service ---
	deps.Reports = service.NewReportService(
		thalesClient,
		flipsideClient,
		deps.Cache,
		service.Config{
			TransactionsURL: cfg.Flipside.TransactionsURL,
			TokensURL:       cfg.Flipside.TokensURL,
			CacheTTL:        cfg.Cache.TTL.Duration,
		},
		logger,
	)

	return deps, cleanup, nil
}
