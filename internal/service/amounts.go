package service

import "strconv"

// Claim amount in the chain's native token, string-encoded so no float
// rounding ever reaches the transfer API.
const defaultClaimAmount = "0.01"

// Per-chain overrides; anything not listed gets the default.
var claimAmountOverrides = map[uint64]string{
	631571: "0.1",
	2039:   "0.1",
}

// ClaimAmount is a pure lookup. It is resolved once per request, before the
// rate-limit gate runs, so the amount is fixed and logged consistently
// whether or not the claim succeeds.
func ClaimAmount(chainID uint64) string {
	if amount, ok := claimAmountOverrides[chainID]; ok {
		return amount
	}
	return defaultClaimAmount
}

// FormatChainID renders a chain id for cache keys and labels.
func FormatChainID(chainID uint64) string {
	return strconv.FormatUint(chainID, 10)
}
