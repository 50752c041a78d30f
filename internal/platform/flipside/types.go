package flipside

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/misaghlb/overtime-dashboard/internal/domain"
)

// numeric is a JSON value that Flipside serializes inconsistently as either
// a number or a numeric string, depending on the query.
type numeric float64

// UnmarshalJSON accepts both 100.7 and "100.7".
func (n *numeric) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "null" || s == "" {
		*n = 0
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("parse numeric %q: %w", s, err)
	}
	*n = numeric(f)
	return nil
}

// apiTransaction is the wire shape of one betting transaction row.
type apiTransaction struct {
	Date        string  `json:"DATE"`
	GameAddress string  `json:"GAME_ADDRESS"`
	Amount      numeric `json:"TAMOUNT"`
	Wallet      string  `json:"WALLET"`
}

// toDomainTransaction validates the row and converts it to the domain
// model. The paid amount is truncated to a whole number, matching the
// upstream query's precision.
func (a *apiTransaction) toDomainTransaction() (domain.Transaction, error) {
	day, err := time.ParseInLocation("2006-01-02", a.Date, time.UTC)
	if err != nil {
		return domain.Transaction{}, fmt.Errorf("%w: bad DATE %q", domain.ErrBadUpstream, a.Date)
	}

	addr, err := domain.NormalizeAddress(a.GameAddress)
	if err != nil {
		return domain.Transaction{}, err
	}

	return domain.Transaction{
		Day:         day,
		GameAddress: addr,
		Amount:      int64(a.Amount), // truncates, does not round
		Wallet:      a.Wallet,
	}, nil
}

// apiTokenVolume is the wire shape of one collateral token volume row.
type apiTokenVolume struct {
	Symbol  string  `json:"SYMBOL"`
	Amount  numeric `json:"TAMOUNT"`
	Wallets numeric `json:"WALLETS"`
}

func (a *apiTokenVolume) toDomainTokenVolume() domain.TokenVolume {
	return domain.TokenVolume{
		Symbol:  a.Symbol,
		Amount:  float64(a.Amount),
		Wallets: int64(a.Wallets),
	}
}

// interface check: numeric must be a json.Unmarshaler for the wire structs
// to decode string-typed amounts.
var _ json.Unmarshaler = (*numeric)(nil)
