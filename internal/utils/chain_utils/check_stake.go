// Package chainutils contains helpers shared by miner and validator for
// stake checks, IP encoding, and weight conversion.
package chainutils

import "os"

const rootStakeDiscount = 0.18

// CheckIfMiner reports whether a uid with the given stakes is a miner. Keys
// below the stake threshold are miners; everything above is validator-weight
// stake and is excluded from querying.
func CheckIfMiner(alphaStake, rootStake float64) bool {
	effectiveStake := alphaStake + rootStake*rootStakeDiscount

	stakeFilter := 10000.0
	if os.Getenv("ENVIRONMENT") != "prod" {
		stakeFilter = 1000
	}

	return effectiveStake < stakeFilter
}
