package domain

// Sport is a human-readable sport category derived from a market's first
// numeric tag.
type Sport string

const (
	SportFootball   Sport = "Football"
	SportBaseball   Sport = "Baseball"
	SportBasketball Sport = "Basketball"
	SportHockey     Sport = "Hockey"
	SportSoccer     Sport = "Soccer"
	SportUFC        Sport = "UFC"

	// SportUnknown is the explicit category for unmapped tags. Its label is
	// the empty string so unknown sports stay unlabeled in groupings.
	SportUnknown Sport = ""
)

// sportByTag maps Thales sport tag codes to categories.
var sportByTag = map[int]Sport{
	9001: SportFootball,
	9002: SportFootball,
	9003: SportBaseball,
	9004: SportBasketball,
	9005: SportBasketball,
	9006: SportHockey,
	9007: SportUFC,
	9008: SportBasketball,
	9010: SportSoccer,
	9011: SportSoccer,
	9012: SportSoccer,
	9013: SportSoccer,
	9014: SportSoccer,
	9015: SportSoccer,
	9016: SportSoccer,
}

// ClassifySport maps a numeric market tag to its sport category. Unmapped
// codes yield SportUnknown, never an error.
func ClassifySport(tag int) Sport {
	return sportByTag[tag]
}

// Market represents one on-chain sports betting market from the Thales
// subgraph.
type Market struct {
	// Address is the market contract address in normalized (EIP-55) form.
	// It is the join key into Transaction.GameAddress.
	Address  string `json:"address"`
	HomeTeam string `json:"home_team"`
	AwayTeam string `json:"away_team"`
	// Tags holds the market's numeric category codes. Only the first element
	// carries the sport classification.
	Tags  []int `json:"tags"`
	Sport Sport `json:"sport"`
}

// GameName returns the composite display label for the market's game.
func (m Market) GameName() string {
	return m.HomeTeam + " VS " + m.AwayTeam
}
