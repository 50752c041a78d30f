package thales

import (
	"fmt"
	"strconv"

	"github.com/misaghlb/overtime-dashboard/internal/domain"
)

// apiMarket is the wire shape of one sportMarkets entity. The subgraph
// serializes tag codes as decimal strings.
type apiMarket struct {
	Address  string   `json:"address"`
	HomeTeam string   `json:"homeTeam"`
	AwayTeam string   `json:"awayTeam"`
	Tags     []string `json:"tags"`
}

// toDomainMarket validates the wire record and converts it to the domain
// model, classifying the sport from the first tag. A missing address or tag
// list is a malformed response and fails the whole fetch.
func (a *apiMarket) toDomainMarket() (domain.Market, error) {
	addr, err := domain.NormalizeAddress(a.Address)
	if err != nil {
		return domain.Market{}, err
	}

	if len(a.Tags) == 0 {
		return domain.Market{}, fmt.Errorf("%w: market %s has no tags", domain.ErrBadUpstream, addr)
	}

	tags := make([]int, 0, len(a.Tags))
	for _, raw := range a.Tags {
		tag, err := strconv.Atoi(raw)
		if err != nil {
			return domain.Market{}, fmt.Errorf("%w: market %s tag %q is not numeric", domain.ErrBadUpstream, addr, raw)
		}
		tags = append(tags, tag)
	}

	return domain.Market{
		Address:  addr,
		HomeTeam: a.HomeTeam,
		AwayTeam: a.AwayTeam,
		Tags:     tags,
		Sport:    domain.ClassifySport(tags[0]),
	}, nil
}
