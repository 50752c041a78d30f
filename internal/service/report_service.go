// Package service assembles the dashboard report: it pulls the upstream
// datasets through the cache, runs the join and aggregation pipeline, and
// produces the finalized domain.Report.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/misaghlb/overtime-dashboard/internal/domain"
	"github.com/misaghlb/overtime-dashboard/internal/etl"
)

// topGames is how many entries the per-game leaderboards keep.
const topGames = 10

// defaultRetryBackoff is the pause before the single retry of a failed
// upstream fetch.
const defaultRetryBackoff = 2 * time.Second

// MarketSource retrieves sports market metadata.
type MarketSource interface {
	FetchMarkets(ctx context.Context) ([]domain.Market, error)
}

// AnalyticsSource retrieves finished Flipside query results.
type AnalyticsSource interface {
	FetchTransactions(ctx context.Context, url string) ([]domain.Transaction, error)
	FetchTokenVolume(ctx context.Context, url string) ([]domain.TokenVolume, error)
}

// Config holds the per-query endpoints and the cache policy.
type Config struct {
	TransactionsURL string
	TokensURL       string
	CacheTTL        time.Duration
	// RetryBackoff is the pause before the single retry of a failed fetch;
	// zero means the default.
	RetryBackoff time.Duration
}

// ReportService builds dashboard reports. One BuildReport call is one
// rendering pass: sequential fetches, then a pure in-memory pipeline. Any
// upstream failure fails the whole pass; there is no partial report.
type ReportService struct {
	markets   MarketSource
	analytics AnalyticsSource
	cache     domain.DatasetCache
	cfg       Config
	logger    *slog.Logger
}

// NewReportService creates a ReportService with all required dependencies.
func NewReportService(
	markets MarketSource,
	analytics AnalyticsSource,
	cache domain.DatasetCache,
	cfg Config,
	logger *slog.Logger,
) *ReportService {
	if cfg.RetryBackoff <= 0 {
		cfg.RetryBackoff = defaultRetryBackoff
	}
	return &ReportService{
		markets:   markets,
		analytics: analytics,
		cache:     cache,
		cfg:       cfg,
		logger:    logger.With(slog.String("component", "report_service")),
	}
}

// BuildReport runs one full rendering pass and returns the finalized
// report.
func (s *ReportService) BuildReport(ctx context.Context) (domain.Report, error) {
	started := time.Now()

	markets, err := loadDataset(ctx, s, "thales:sportMarkets", func(ctx context.Context) ([]domain.Market, error) {
		return s.markets.FetchMarkets(ctx)
	})
	if err != nil {
		return domain.Report{}, fmt.Errorf("report: load markets: %w", err)
	}

	txs, err := loadDataset(ctx, s, "flipside:"+s.cfg.TransactionsURL, func(ctx context.Context) ([]domain.Transaction, error) {
		return s.analytics.FetchTransactions(ctx, s.cfg.TransactionsURL)
	})
	if err != nil {
		return domain.Report{}, fmt.Errorf("report: load transactions: %w", err)
	}

	tokens, err := loadDataset(ctx, s, "flipside:"+s.cfg.TokensURL, func(ctx context.Context) ([]domain.TokenVolume, error) {
		return s.analytics.FetchTokenVolume(ctx, s.cfg.TokensURL)
	})
	if err != nil {
		return domain.Report{}, fmt.Errorf("report: load token volume: %w", err)
	}

	idx, dups := etl.NewMarketIndex(markets)
	for _, addr := range dups {
		s.logger.WarnContext(ctx, "duplicate market address, keeping first",
			slog.String("address", addr),
		)
	}

	txs = etl.Enrich(txs, idx)

	report := domain.Report{
		GeneratedAt:       started.UTC(),
		Markets:           len(markets),
		Transactions:      len(txs),
		Sports:            sportStats(txs),
		DailyVolume:       dailyVolume(txs),
		TopGamesByVolume:  etl.TopGamesByVolume(txs, topGames),
		TopGamesByWallets: etl.TopGamesByWallets(txs, topGames),
		Tokens:            tokens,
	}

	s.logger.InfoContext(ctx, "report built",
		slog.Int("markets", report.Markets),
		slog.Int("transactions", report.Transactions),
		slog.Duration("elapsed", time.Since(started)),
	)

	return report, nil
}

// loadDataset serves a dataset from the cache when fresh and otherwise
// fetches it upstream with a single-retry-then-fail policy, back-filling
// the cache on success. Cache errors other than a miss are logged and
// treated as misses; the cache is an optimization, never a correctness
// dependency.
func loadDataset[T any](ctx context.Context, s *ReportService, key string, fetch func(context.Context) ([]T, error)) ([]T, error) {
	var cached []T
	err := s.cache.Get(ctx, key, &cached)
	if err == nil {
		s.logger.DebugContext(ctx, "dataset cache hit", slog.String("key", key))
		return cached, nil
	}
	if !errors.Is(err, domain.ErrCacheMiss) {
		s.logger.WarnContext(ctx, "dataset cache read failed",
			slog.String("key", key),
			slog.String("error", err.Error()),
		)
	}

	data, err := fetch(ctx)
	if err != nil {
		s.logger.WarnContext(ctx, "upstream fetch failed, retrying once",
			slog.String("key", key),
			slog.String("error", err.Error()),
		)
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(s.cfg.RetryBackoff):
		}
		data, err = fetch(ctx)
		if err != nil {
			return nil, err
		}
	}

	if cacheErr := s.cache.Set(ctx, key, data, s.cfg.CacheTTL); cacheErr != nil {
		s.logger.WarnContext(ctx, "dataset cache write failed",
			slog.String("key", key),
			slog.String("error", cacheErr.Error()),
		)
	}

	return data, nil
}

// sportStats folds the per-sport aggregations into report rows ordered by
// descending volume.
func sportStats(txs []domain.Transaction) []domain.SportStat {
	volume := etl.TotalVolumeBySport(txs)
	wallets := etl.UniqueWalletsBySport(txs)

	stats := make([]domain.SportStat, 0, len(volume))
	for sport, vol := range volume {
		stats = append(stats, domain.SportStat{
			Sport:   sport,
			Volume:  vol,
			Wallets: wallets[sport],
		})
	}
	sort.Slice(stats, func(i, j int) bool {
		if stats[i].Volume != stats[j].Volume {
			return stats[i].Volume > stats[j].Volume
		}
		return stats[i].Sport < stats[j].Sport
	})
	return stats
}

// dailyVolume folds the (day, sport) aggregation into report rows ordered
// by day, then sport.
func dailyVolume(txs []domain.Transaction) []domain.DailyVolume {
	byDay := etl.DailyVolumeBySport(txs)

	rows := make([]domain.DailyVolume, 0, len(byDay))
	for key, vol := range byDay {
		rows = append(rows, domain.DailyVolume{
			Day:    key.Day,
			Sport:  key.Sport,
			Volume: vol,
		})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Day != rows[j].Day {
			return rows[i].Day < rows[j].Day
		}
		return rows[i].Sport < rows[j].Sport
	})
	return rows
}
