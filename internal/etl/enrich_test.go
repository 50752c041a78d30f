package etl

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/misaghlb/overtime-dashboard/internal/domain"
)

func day(s string) time.Time {
	d, err := time.ParseInLocation("2006-01-02", s, time.UTC)
	if err != nil {
		panic(err)
	}
	return d
}

func TestEnrich(t *testing.T) {
	markets := []domain.Market{
		{Address: "0xA", HomeTeam: "Red Sox", AwayTeam: "Yankees", Tags: []int{9003}, Sport: domain.SportBaseball},
	}
	idx, dups := NewMarketIndex(markets)
	require.Empty(t, dups)

	txs := []domain.Transaction{
		{Day: day("2022-08-13"), GameAddress: "0xA", Amount: 100, Wallet: "0xW1"},
		{Day: day("2022-08-13"), GameAddress: "0xDEAD", Amount: 50, Wallet: "0xW2"},
	}

	got := Enrich(txs, idx)

	assert.Equal(t, domain.SportBaseball, got[0].Sport)
	assert.Equal(t, "Red Sox VS Yankees", got[0].GameName)

	// No matching market: derived fields stay blank, row is kept.
	assert.Equal(t, domain.SportUnknown, got[1].Sport)
	assert.Empty(t, got[1].GameName)
	assert.Len(t, got, 2)
}

func TestEnrichIsIdempotent(t *testing.T) {
	markets := []domain.Market{
		{Address: "0xA", HomeTeam: "Arsenal", AwayTeam: "Chelsea", Tags: []int{9010}, Sport: domain.SportSoccer},
	}
	idx, _ := NewMarketIndex(markets)

	txs := []domain.Transaction{
		{Day: day("2022-08-14"), GameAddress: "0xA", Amount: 10, Wallet: "0xW1"},
		{Day: day("2022-08-14"), GameAddress: "0xB", Amount: 20, Wallet: "0xW2"},
	}

	once := Enrich(txs, idx)
	first := make([]domain.Transaction, len(once))
	copy(first, once)

	twice := Enrich(once, idx)
	assert.Equal(t, first, twice)
}

func TestNewMarketIndexDuplicateAddresses(t *testing.T) {
	markets := []domain.Market{
		{Address: "0xB", HomeTeam: "Lakers", AwayTeam: "Celtics", Sport: domain.SportBasketball},
		{Address: "0xB", HomeTeam: "Bruins", AwayTeam: "Rangers", Sport: domain.SportHockey},
	}

	idx, dups := NewMarketIndex(markets)

	// First market in sequence order wins; the duplicate is reported.
	require.Len(t, idx, 1)
	assert.Equal(t, domain.SportBasketball, idx["0xB"].Sport)
	assert.Equal(t, []string{"0xB"}, dups)

	txs := Enrich([]domain.Transaction{{GameAddress: "0xB", Amount: 5, Wallet: "0xW"}}, idx)
	assert.Equal(t, domain.SportBasketball, txs[0].Sport)
	assert.Equal(t, "Lakers VS Celtics", txs[0].GameName)
}
