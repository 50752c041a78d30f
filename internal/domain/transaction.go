package domain

import "time"

// Transaction represents one betting payment from the Flipside analytics
// feed.
type Transaction struct {
	// Day is the calendar date of the payment (time component zeroed, UTC).
	Day time.Time `json:"day"`
	// GameAddress is the market contract address in normalized (EIP-55)
	// form, the foreign key into Market.Address.
	GameAddress string `json:"game_address"`
	// Amount is the paid USD amount truncated to a whole number. Upstream
	// delivers numeric strings; the fractional part is discarded, not
	// rounded.
	Amount int64  `json:"amount"`
	Wallet string `json:"wallet"`

	// Sport and GameName are set by enrichment when a matching market
	// exists. They stay blank for transactions on unknown markets, which
	// then group under an unlabeled category.
	Sport    Sport  `json:"sport"`
	GameName string `json:"game_name"`
}

// DayKey returns the transaction date as YYYY-MM-DD, the grouping key used
// by daily aggregations.
func (t Transaction) DayKey() string {
	return t.Day.Format("2006-01-02")
}

// TokenVolume represents pre-aggregated payment volume for one collateral
// token. The upstream query already did the summing and distinct-wallet
// counting; rows pass through untouched.
type TokenVolume struct {
	Symbol  string  `json:"symbol"`
	Amount  float64 `json:"amount"`
	Wallets int64   `json:"wallets"`
}
