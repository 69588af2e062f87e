package credentials

import (
	"fmt"

	"github.com/dmitrijs2005/carebook/internal/common"
)

// SaltBytes is the amount of entropy in a salt (128 bits).
const SaltBytes = 16

// Salt is the hex-encoded per-identity random value.
type Salt string

// GenerateSalt returns a fresh salt. It holds no state and is safe to call
// from concurrent registrations. Uniqueness is not checked against existing
// salts; at 128 bits a collision is negligible.
func GenerateSalt() (Salt, error) {
	s, err := common.MakeRandHexString(SaltBytes)
	if err != nil {
		return "", fmt.Errorf("salt: %w", err)
	}
	return Salt(s), nil
}
