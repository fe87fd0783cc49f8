package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/aman-churiwal/faucet-service/internal/config"
)

// Native-token sentinel the engine expects in currencyAddress.
const zeroAddress = "0x0000000000000000000000000000000000000000"

// EngineClient issues token transfers through the backend-wallet engine API.
// It never retries; the idempotency key header makes client-side retries of
// the same logical claim safe downstream.
type EngineClient struct {
	baseURL       string
	accessToken   string
	walletAddress string
	httpClient    *http.Client
}

func NewEngineClient(cfg config.FaucetConfig) *EngineClient {
	return &EngineClient{
		baseURL:       cfg.EngineURL,
		accessToken:   cfg.AccessToken,
		walletAddress: cfg.WalletAddress,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

type transferRequest struct {
	Amount          string `json:"amount"`
	CurrencyAddress string `json:"currencyAddress"`
	To              string `json:"to"`
}

// Transfer queues a transfer of amount to the destination address. The
// engine settles on-chain asynchronously; a 2xx here only confirms the
// transfer was accepted.
func (c *EngineClient) Transfer(ctx context.Context, chainID uint64, to, amount, idempotencyKey string) error {
	body, err := json.Marshal(transferRequest{
		Amount:          amount,
		CurrencyAddress: zeroAddress,
		To:              to,
	})
	if err != nil {
		return err
	}

	endpoint := fmt.Sprintf("%s/backend-wallet/%d/transfer", c.baseURL, chainID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.accessToken)
	req.Header.Set("x-backend-wallet-address", c.walletAddress)
	req.Header.Set("x-idempotency-key", idempotencyKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode <= 299 {
		return nil
	}

	return errors.New(parseEngineError(resp))
}

// parseEngineError pulls the message out of an engine error body, falling
// back to the raw body, then to the HTTP status.
func parseEngineError(resp *http.Response) string {
	raw, err := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if err != nil || len(raw) == 0 {
		return fmt.Sprintf("transfer failed with status %d", resp.StatusCode)
	}

	var payload struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(raw, &payload); err == nil && payload.Error.Message != "" {
		return payload.Error.Message
	}

	return string(raw)
}
