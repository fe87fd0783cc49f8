package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/aman-churiwal/faucet-service/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTurnstileVerifier_EmptyTokenSkipsNetworkCall(t *testing.T) {
	var calls atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Write([]byte(`{"success": true}`))
	}))
	defer srv.Close()

	verifier := NewTurnstileVerifier(config.TurnstileConfig{
		SecretKey: "secret",
		VerifyURL: srv.URL,
	})

	ok, err := verifier.Verify(context.Background(), "", "1.2.3.4")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, int64(0), calls.Load(), "empty token must not reach the verify endpoint")
}

func TestTurnstileVerifier_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "secret", r.Form.Get("secret"))
		assert.Equal(t, "tok-123", r.Form.Get("response"))
		assert.Equal(t, "1.2.3.4", r.Form.Get("remoteip"))

		w.Write([]byte(`{"success": true}`))
	}))
	defer srv.Close()

	verifier := NewTurnstileVerifier(config.TurnstileConfig{
		SecretKey: "secret",
		VerifyURL: srv.URL,
	})

	ok, err := verifier.Verify(context.Background(), "tok-123", "1.2.3.4")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestTurnstileVerifier_Rejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success": false, "error-codes": ["invalid-input-response"]}`))
	}))
	defer srv.Close()

	verifier := NewTurnstileVerifier(config.TurnstileConfig{
		SecretKey: "secret",
		VerifyURL: srv.URL,
	})

	ok, err := verifier.Verify(context.Background(), "bad-token", "1.2.3.4")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestTurnstileVerifier_ServerDown(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	verifier := NewTurnstileVerifier(config.TurnstileConfig{
		SecretKey: "secret",
		VerifyURL: srv.URL,
	})

	ok, err := verifier.Verify(context.Background(), "tok", "1.2.3.4")
	assert.Error(t, err)
	assert.False(t, ok)
}
