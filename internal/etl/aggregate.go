package etl

import (
	"sort"

	"github.com/misaghlb/overtime-dashboard/internal/domain"
)

// DaySport is the composite grouping key for daily per-sport volume.
type DaySport struct {
	Day   string
	Sport domain.Sport
}

// TotalVolumeBySport sums the paid amount per sport category. Transactions
// with a blank sport form their own group.
func TotalVolumeBySport(txs []domain.Transaction) map[domain.Sport]int64 {
	out := make(map[domain.Sport]int64)
	for _, tx := range txs {
		out[tx.Sport] += tx.Amount
	}
	return out
}

// UniqueWalletsBySport counts distinct wallets per sport category.
func UniqueWalletsBySport(txs []domain.Transaction) map[domain.Sport]int {
	seen := make(map[domain.Sport]map[string]struct{})
	for _, tx := range txs {
		if seen[tx.Sport] == nil {
			seen[tx.Sport] = make(map[string]struct{})
		}
		seen[tx.Sport][tx.Wallet] = struct{}{}
	}
	out := make(map[domain.Sport]int, len(seen))
	for sport, wallets := range seen {
		out[sport] = len(wallets)
	}
	return out
}

// DailyVolumeBySport sums the paid amount per (day, sport) pair.
func DailyVolumeBySport(txs []domain.Transaction) map[DaySport]int64 {
	out := make(map[DaySport]int64)
	for _, tx := range txs {
		out[DaySport{Day: tx.DayKey(), Sport: tx.Sport}] += tx.Amount
	}
	return out
}

// VolumeByGame sums the paid amount per game label.
func VolumeByGame(txs []domain.Transaction) map[string]int64 {
	out := make(map[string]int64)
	for _, tx := range txs {
		out[tx.GameName] += tx.Amount
	}
	return out
}

// WalletsByGame counts distinct wallets per game label.
func WalletsByGame(txs []domain.Transaction) map[string]int {
	seen := make(map[string]map[string]struct{})
	for _, tx := range txs {
		if seen[tx.GameName] == nil {
			seen[tx.GameName] = make(map[string]struct{})
		}
		seen[tx.GameName][tx.Wallet] = struct{}{}
	}
	out := make(map[string]int, len(seen))
	for game, wallets := range seen {
		out[game] = len(wallets)
	}
	return out
}

// TopGamesByVolume returns at most n games ordered by descending volume.
// Ties keep the order in which games were first encountered in the
// transaction sequence (stable sort).
func TopGamesByVolume(txs []domain.Transaction, n int) []domain.GameStat {
	volume := VolumeByGame(txs)
	wallets := WalletsByGame(txs)

	stats := gameStatsInEncounterOrder(txs, volume, wallets)
	sort.SliceStable(stats, func(i, j int) bool {
		return stats[i].Volume > stats[j].Volume
	})
	return truncate(stats, n)
}

// TopGamesByWallets returns at most n games ordered by descending distinct
// wallet count, with the same stable tie-break as TopGamesByVolume.
func TopGamesByWallets(txs []domain.Transaction, n int) []domain.GameStat {
	volume := VolumeByGame(txs)
	wallets := WalletsByGame(txs)

	stats := gameStatsInEncounterOrder(txs, volume, wallets)
	sort.SliceStable(stats, func(i, j int) bool {
		return stats[i].Wallets > stats[j].Wallets
	})
	return truncate(stats, n)
}

// gameStatsInEncounterOrder assembles one GameStat per distinct game label,
// preserving the order games first appear in the transaction sequence so
// that stable sorts break ties deterministically.
func gameStatsInEncounterOrder(txs []domain.Transaction, volume map[string]int64, wallets map[string]int) []domain.GameStat {
	stats := make([]domain.GameStat, 0, len(volume))
	seen := make(map[string]struct{}, len(volume))
	for _, tx := range txs {
		if _, ok := seen[tx.GameName]; ok {
			continue
		}
		seen[tx.GameName] = struct{}{}
		stats = append(stats, domain.GameStat{
			GameName: tx.GameName,
			Volume:   volume[tx.GameName],
			Wallets:  wallets[tx.GameName],
		})
	}
	return stats
}

func truncate(stats []domain.GameStat, n int) []domain.GameStat {
	if n >= 0 && len(stats) > n {
		return stats[:n]
	}
	return stats
}
