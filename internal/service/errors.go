package service

import "net/http"

// ClaimError is a pipeline failure with the HTTP status and user-facing
// message it maps to. Internal detail never leaks through Message except for
// transfer API failures, where the downstream message is passed through.
type ClaimError struct {
	Status  int    `json:"-"`
	Message string `json:"error"`
}

func (e *ClaimError) Error() string {
	return e.Message
}

var (
	ErrNoWalletDetected  = &ClaimError{http.StatusBadRequest, "No wallet detected"}
	ErrNoWalletConnected = &ClaimError{http.StatusBadRequest, "No wallet connected"}

	ErrFaucetNotConfigured = &ClaimError{http.StatusInternalServerError, "Testnet faucet not configured."}

	// Spelling matches the public dashboard error string.
	ErrNoResolvableIP = &ClaimError{http.StatusBadRequest, "Could not validate elligibility."}

	ErrMissingTurnstileToken = &ClaimError{http.StatusBadRequest, "Missing Turnstile token."}
	ErrCaptchaFailed         = &ClaimError{http.StatusBadRequest, "Could not validate captcha."}

	ErrAccountNotFound  = &ClaimError{http.StatusBadRequest, "thirdweb account not found"}
	ErrEmailNotVerified = &ClaimError{http.StatusBadRequest, "Account owner hasn't verified email"}
	ErrAccountLookup    = &ClaimError{http.StatusInternalServerError, "Failed to resolve account."}

	ErrNoTeams  = &ClaimError{http.StatusInternalServerError, "No teams found for this account."}
	ErrFreePlan = &ClaimError{http.StatusPaymentRequired, "Free plan cannot claim on this chain."}

	ErrAlreadyClaimed = &ClaimError{http.StatusTooManyRequests, "Already requested funds on this chain in the past 24 hours."}

	ErrClaimCheckFailed = &ClaimError{http.StatusInternalServerError, "Could not verify claim eligibility."}
)
