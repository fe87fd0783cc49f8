package service

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aman-churiwal/faucet-service/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEngine(url string) *EngineClient {
	return NewEngineClient(config.FaucetConfig{
		EngineURL:     url,
		AccessToken:   "engine-token",
		WalletAddress: "0xfaucet",
	})
}

func TestEngineClient_Transfer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/backend-wallet/1/transfer", r.URL.Path)
		assert.Equal(t, "Bearer engine-token", r.Header.Get("Authorization"))
		assert.Equal(t, "0xfaucet", r.Header.Get("x-backend-wallet-address"))
		assert.Equal(t, "testnet-faucet:1:1.2.3.4:1700000000", r.Header.Get("x-idempotency-key"))

		raw, err := io.ReadAll(r.Body)
		require.NoError(t, err)

		var body map[string]string
		require.NoError(t, json.Unmarshal(raw, &body))
		assert.Equal(t, "0.01", body["amount"])
		assert.Equal(t, "0x0000000000000000000000000000000000000000", body["currencyAddress"])
		assert.Equal(t, "0xdest", body["to"])

		w.Write([]byte(`{"result": {"queueId": "q-1"}}`))
	}))
	defer srv.Close()

	engine := newTestEngine(srv.URL)
	err := engine.Transfer(context.Background(), 1, "0xdest", "0.01", "testnet-faucet:1:1.2.3.4:1700000000")
	require.NoError(t, err)
}

func TestEngineClient_Transfer_ErrorMessagePassthrough(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error": {"message": "insufficient funds in backend wallet"}}`))
	}))
	defer srv.Close()

	engine := newTestEngine(srv.URL)
	err := engine.Transfer(context.Background(), 1, "0xdest", "0.01", "key")

	require.Error(t, err)
	assert.Equal(t, "insufficient funds in backend wallet", err.Error())
}

func TestEngineClient_Transfer_UnstructuredErrorBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte(`upstream timeout`))
	}))
	defer srv.Close()

	engine := newTestEngine(srv.URL)
	err := engine.Transfer(context.Background(), 1, "0xdest", "0.01", "key")

	require.Error(t, err)
	assert.Equal(t, "upstream timeout", err.Error())
}

func TestEngineClient_Transfer_EmptyErrorBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	engine := newTestEngine(srv.URL)
	err := engine.Transfer(context.Background(), 1, "0xdest", "0.01", "key")

	require.Error(t, err)
	assert.Equal(t, "transfer failed with status 503", err.Error())
}
