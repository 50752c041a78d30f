// Package etl implements the join and aggregation pipeline that turns raw
// market metadata and betting transactions into the dashboard's summary
// tables.
package etl

import "github.com/misaghlb/overtime-dashboard/internal/domain"

// MarketIndex is a lookup from normalized contract address to market
// metadata, built once per rendering pass.
type MarketIndex map[string]domain.Market

// NewMarketIndex builds an address index over the market set. Addresses are
// unique upstream in theory but that is not guaranteed; when duplicates
// occur the first market in sequence order wins and the losing addresses
// are returned so the caller can log a diagnostic.
func NewMarketIndex(markets []domain.Market) (MarketIndex, []string) {
	idx := make(MarketIndex, len(markets))
	var dups []string
	for _, m := range markets {
		if _, ok := idx[m.Address]; ok {
			dups = append(dups, m.Address)
			continue
		}
		idx[m.Address] = m
	}
	return idx, dups
}

// Enrich attaches sport category and game label to every transaction whose
// address matches an indexed market. Transactions on unknown markets keep
// blank derived fields and still flow through aggregation as their own
// group. The slice is mutated in place and returned; running Enrich twice
// on the same inputs yields the same result.
func Enrich(txs []domain.Transaction, idx MarketIndex) []domain.Transaction {
	for i := range txs {
		m, ok := idx[txs[i].GameAddress]
		if !ok {
			continue
		}
		txs[i].Sport = m.Sport
		txs[i].GameName = m.GameName()
	}
	return txs
}
