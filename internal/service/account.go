package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/aman-churiwal/faucet-service/internal/config"
	"github.com/aman-churiwal/faucet-service/internal/models"
)

// Account is the profile the account API reports for a session token.
type Account struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	EmailVerified bool   `json:"emailVerified"`
}

// AccountResolver looks up the authenticated caller's account and teams from
// the external account API using the per-address bearer token.
type AccountResolver struct {
	baseURL    string
	httpClient *http.Client
}

func NewAccountResolver(cfg config.AccountConfig) *AccountResolver {
	return &AccountResolver{
		baseURL: cfg.APIBaseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// GetAccount resolves the account for the token. Returns nil without error
// when the token maps to no account.
func (r *AccountResolver) GetAccount(ctx context.Context, authToken string) (*Account, error) {
	var account Account
	ok, err := r.get(ctx, "/v1/account/me", authToken, &account)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}

	return &account, nil
}

// GetTeams lists the account's teams with their billing plans.
func (r *AccountResolver) GetTeams(ctx context.Context, authToken string) ([]models.Team, error) {
	var teams []models.Team
	ok, err := r.get(ctx, "/v1/teams", authToken, &teams)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}

	return teams, nil
}

// get performs an authenticated GET and decodes the body into out. Returns
// false without error on 401/404, which both mean "no such account here".
func (r *AccountResolver) get(ctx context.Context, path, authToken string, out interface{}) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.baseURL+path, nil)
	if err != nil {
		return false, err
	}
	req.Header.Set("Authorization", "Bearer "+authToken)

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusNotFound {
		return false, nil
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return false, fmt.Errorf("account API returned status %d for %s", resp.StatusCode, path)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return false, err
	}

	return true, nil
}
