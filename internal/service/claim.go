package service

import (
	"context"
	"net/http"
	"time"

	"github.com/aman-churiwal/faucet-service/internal/config"
	"github.com/aman-churiwal/faucet-service/internal/models"
	"github.com/aman-churiwal/faucet-service/internal/ratelimit"
)

// ClaimRequest carries everything the pipeline needs for one claim attempt.
// Cookie and IP extraction happen at the handler; from here down it is plain
// data.
type ClaimRequest struct {
	ChainID        uint64
	ToAddress      string
	TurnstileToken string
	IP             string
	AuthToken      string
}

// ClaimService runs the claim pipeline: captcha, account, plan, rate-limit
// gate, transfer. Each stage short-circuits with a ClaimError carrying the
// status and message the handler returns verbatim.
type ClaimService struct {
	cfg       *config.Config
	gate      *ratelimit.ClaimGate
	turnstile *TurnstileVerifier
	accounts  *AccountResolver
	engine    *EngineClient
	now       func() time.Time
}

func NewClaimService(cfg *config.Config, gate *ratelimit.ClaimGate, turnstile *TurnstileVerifier, accounts *AccountResolver, engine *EngineClient) *ClaimService {
	return &ClaimService{
		cfg:       cfg,
		gate:      gate,
		turnstile: turnstile,
		accounts:  accounts,
		engine:    engine,
		now:       time.Now,
	}
}

// Claim executes one claim attempt. The returned amount is filled in as soon
// as it is resolved so callers can log it even when a later stage fails.
func (s *ClaimService) Claim(ctx context.Context, req ClaimRequest) (string, *ClaimError) {
	if !s.cfg.Faucet.IsConfigured() {
		return "", ErrFaucetNotConfigured
	}

	if req.IP == "" {
		return "", ErrNoResolvableIP
	}

	// Fixed before the gate runs so the same amount is reported whether or
	// not the claim goes through.
	amount := ClaimAmount(req.ChainID)

	if req.TurnstileToken == "" {
		return amount, ErrMissingTurnstileToken
	}

	// A verifier error and a failed challenge look the same to the caller.
	ok, err := s.turnstile.Verify(ctx, req.TurnstileToken, req.IP)
	if err != nil || !ok {
		return amount, ErrCaptchaFailed
	}

	account, err := s.accounts.GetAccount(ctx, req.AuthToken)
	if err != nil {
		return amount, ErrAccountLookup
	}
	if account == nil {
		return amount, ErrAccountNotFound
	}
	if !account.EmailVerified {
		return amount, ErrEmailNotVerified
	}

	teams, err := s.accounts.GetTeams(ctx, req.AuthToken)
	if err != nil || len(teams) == 0 {
		return amount, ErrNoTeams
	}
	if !anyPaidPlan(teams) {
		return amount, ErrFreePlan
	}

	keys := ratelimit.NewClaimKeys(req.ChainID, req.IP, account.ID, req.ToAddress)

	allowed, err := s.gate.Allow(ctx, keys)
	if err != nil {
		return amount, ErrClaimCheckFailed
	}
	if !allowed {
		return amount, ErrAlreadyClaimed
	}

	// Reserve before transferring: the gate must be closed before money
	// moves. If the transfer then fails, the keys stay set for the window;
	// that bias is intended.
	if err := s.gate.Reserve(ctx, keys); err != nil {
		return amount, ErrClaimCheckFailed
	}

	if err := s.engine.Transfer(ctx, req.ChainID, req.ToAddress, amount, keys.IdempotencyKey(s.now())); err != nil {
		return amount, &ClaimError{Status: http.StatusInternalServerError, Message: err.Error()}
	}

	return amount, nil
}

func anyPaidPlan(teams []models.Team) bool {
	for _, team := range teams {
		if models.IsPaidPlan(team.BillingPlan) {
			return true
		}
	}
	return false
}
