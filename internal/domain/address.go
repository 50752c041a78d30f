package domain

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
)

// NormalizeAddress validates a hex contract address and returns its EIP-55
// checksummed form. The subgraph and the analytics feed evolve
// independently and disagree on address casing, so every join key passes
// through here at ingestion.
func NormalizeAddress(s string) (string, error) {
	if !common.IsHexAddress(s) {
		return "", fmt.Errorf("%w: %q", ErrInvalidAddress, s)
	}
	return common.HexToAddress(s).Hex(), nil
}
