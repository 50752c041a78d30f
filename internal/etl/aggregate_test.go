package etl

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/misaghlb/overtime-dashboard/internal/domain"
)

func TestTotalVolumeBySport(t *testing.T) {
	txs := []domain.Transaction{
		{Sport: domain.SportBaseball, Amount: 100, Wallet: "0xW1"},
		{Sport: domain.SportBaseball, Amount: 29, Wallet: "0xW2"},
		{Sport: domain.SportSoccer, Amount: 7, Wallet: "0xW1"},
		{Amount: 3, Wallet: "0xW3"}, // unmatched: blank sport group
	}

	got := TotalVolumeBySport(txs)

	assert.Equal(t, map[domain.Sport]int64{
		domain.SportBaseball: 129,
		domain.SportSoccer:   7,
		domain.SportUnknown:  3,
	}, got)
}

// Summing any partition of the transaction set and recombining by key must
// equal summing the whole set.
func TestTotalVolumeBySportPartition(t *testing.T) {
	var txs []domain.Transaction
	sports := []domain.Sport{domain.SportBaseball, domain.SportSoccer, domain.SportUFC, domain.SportUnknown}
	for i := 0; i < 40; i++ {
		txs = append(txs, domain.Transaction{
			Sport:  sports[i%len(sports)],
			Amount: int64(i * 13),
			Wallet: fmt.Sprintf("0xW%d", i%7),
		})
	}

	whole := TotalVolumeBySport(txs)

	recombined := make(map[domain.Sport]int64)
	for sport, vol := range TotalVolumeBySport(txs[:17]) {
		recombined[sport] += vol
	}
	for sport, vol := range TotalVolumeBySport(txs[17:]) {
		recombined[sport] += vol
	}

	assert.Equal(t, whole, recombined)
}

func TestUniqueWalletsBySport(t *testing.T) {
	t.Run("distinct wallets counted once", func(t *testing.T) {
		txs := []domain.Transaction{
			{Sport: domain.SportBaseball, Wallet: "0xW1"},
			{Sport: domain.SportBaseball, Wallet: "0xW1"},
			{Sport: domain.SportBaseball, Wallet: "0xW2"},
			{Sport: domain.SportSoccer, Wallet: "0xW1"},
		}

		got := UniqueWalletsBySport(txs)

		assert.Equal(t, 2, got[domain.SportBaseball])
		assert.Equal(t, 1, got[domain.SportSoccer])
	})

	t.Run("count never exceeds transactions per sport", func(t *testing.T) {
		var txs []domain.Transaction
		for i := 0; i < 25; i++ {
			txs = append(txs, domain.Transaction{
				Sport:  domain.SportHockey,
				Wallet: fmt.Sprintf("0xW%d", i%9),
			})
		}
		got := UniqueWalletsBySport(txs)
		assert.LessOrEqual(t, got[domain.SportHockey], len(txs))
		assert.Equal(t, 9, got[domain.SportHockey])
	})

	t.Run("single shared wallet counts as one", func(t *testing.T) {
		txs := []domain.Transaction{
			{Sport: domain.SportUFC, Wallet: "0xW1"},
			{Sport: domain.SportUFC, Wallet: "0xW1"},
			{Sport: domain.SportUFC, Wallet: "0xW1"},
		}
		assert.Equal(t, 1, UniqueWalletsBySport(txs)[domain.SportUFC])
	})
}

func TestDailyVolumeBySport(t *testing.T) {
	txs := []domain.Transaction{
		{Day: day("2022-08-13"), Sport: domain.SportBaseball, Amount: 10},
		{Day: day("2022-08-13"), Sport: domain.SportBaseball, Amount: 5},
		{Day: day("2022-08-14"), Sport: domain.SportBaseball, Amount: 66},
		{Day: day("2022-08-13"), Sport: domain.SportSoccer, Amount: 2},
	}

	got := DailyVolumeBySport(txs)

	assert.Equal(t, map[DaySport]int64{
		{Day: "2022-08-13", Sport: domain.SportBaseball}: 15,
		{Day: "2022-08-14", Sport: domain.SportBaseball}: 66,
		{Day: "2022-08-13", Sport: domain.SportSoccer}:   2,
	}, got)
}

func TestTopGamesByVolume(t *testing.T) {
	t.Run("truncates to n sorted descending", func(t *testing.T) {
		var txs []domain.Transaction
		for i := 0; i < 15; i++ {
			txs = append(txs, domain.Transaction{
				GameName: fmt.Sprintf("Game %d", i),
				Amount:   int64(100 + i),
				Wallet:   "0xW",
			})
		}

		got := TopGamesByVolume(txs, 10)

		require.Len(t, got, 10)
		for i := 1; i < len(got); i++ {
			assert.GreaterOrEqual(t, got[i-1].Volume, got[i].Volume)
		}
		assert.Equal(t, "Game 14", got[0].GameName)
	})

	t.Run("ties keep first-encounter order", func(t *testing.T) {
		txs := []domain.Transaction{
			{GameName: "B first", Amount: 50, Wallet: "0xW"},
			{GameName: "A second", Amount: 50, Wallet: "0xW"},
			{GameName: "C third", Amount: 50, Wallet: "0xW"},
		}

		got := TopGamesByVolume(txs, 10)

		require.Len(t, got, 3)
		assert.Equal(t, "B first", got[0].GameName)
		assert.Equal(t, "A second", got[1].GameName)
		assert.Equal(t, "C third", got[2].GameName)
	})

	t.Run("fewer games than n returns all", func(t *testing.T) {
		txs := []domain.Transaction{
			{GameName: "Only", Amount: 1, Wallet: "0xW"},
		}
		assert.Len(t, TopGamesByVolume(txs, 10), 1)
	})
}

func TestTopGamesByWallets(t *testing.T) {
	txs := []domain.Transaction{
		{GameName: "Popular", Amount: 1, Wallet: "0xW1"},
		{GameName: "Popular", Amount: 1, Wallet: "0xW2"},
		{GameName: "Popular", Amount: 1, Wallet: "0xW3"},
		{GameName: "Whale", Amount: 1000, Wallet: "0xW4"},
	}

	got := TopGamesByWallets(txs, 10)

	require.Len(t, got, 2)
	assert.Equal(t, "Popular", got[0].GameName)
	assert.Equal(t, 3, got[0].Wallets)
	assert.Equal(t, "Whale", got[1].GameName)
	assert.Equal(t, 1, got[1].Wallets)
}
