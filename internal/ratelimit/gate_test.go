package ratelimit

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memStore struct {
	mu      sync.Mutex
	entries map[string]memEntry
	getErr  error
	setErr  error
}

type memEntry struct {
	value string
	ttl   time.Duration
}

func newMemStore() *memStore {
	return &memStore{entries: make(map[string]memEntry)}
}

func (s *memStore) Get(ctx context.Context, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.getErr != nil {
		return "", false, s.getErr
	}
	entry, ok := s.entries[key]
	return entry.value, ok, nil
}

func (s *memStore) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.setErr != nil {
		return s.setErr
	}
	s.entries[key] = memEntry{value: value, ttl: ttl}
	return nil
}

func TestNewClaimKeys(t *testing.T) {
	keys := NewClaimKeys(1, "1.2.3.4", "acc-123", "0xabc")

	assert.Equal(t, "testnet-faucet:1:1.2.3.4", keys.IP)
	assert.Equal(t, "testnet-faucet:1:acc-123", keys.Account)
	assert.Equal(t, "testnet-faucet:1:0xabc", keys.Address)
}

func TestClaimKeys_IdempotencyKey(t *testing.T) {
	keys := NewClaimKeys(1, "1.2.3.4", "acc", "0xabc")

	// 2026-03-15T17:42:10Z; UTC day starts at 2026-03-15T00:00:00Z.
	now := time.Date(2026, 3, 15, 17, 42, 10, 0, time.UTC)
	dayStart := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, "testnet-faucet:1:1.2.3.4:1773532800", keys.IdempotencyKey(now))
	assert.Equal(t, int64(1773532800), dayStart.Unix())

	// Any time within the same UTC day derives the same key.
	later := time.Date(2026, 3, 15, 23, 59, 59, 0, time.UTC)
	assert.Equal(t, keys.IdempotencyKey(now), keys.IdempotencyKey(later))

	// Local zone must not shift the day boundary.
	zone := time.FixedZone("UTC+9", 9*60*60)
	sameInstant := now.In(zone)
	assert.Equal(t, keys.IdempotencyKey(now), keys.IdempotencyKey(sameInstant))

	// The next UTC day derives a different key.
	nextDay := time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC)
	assert.NotEqual(t, keys.IdempotencyKey(now), keys.IdempotencyKey(nextDay))
}

func TestClaimGate_Allow_AllKeysAbsent(t *testing.T) {
	store := newMemStore()
	gate := NewClaimGate(store)
	keys := NewClaimKeys(1, "1.2.3.4", "acc", "0xabc")

	allowed, err := gate.Allow(context.Background(), keys)
	require.NoError(t, err)
	assert.True(t, allowed)
}

func TestClaimGate_Allow_AnySingleKeyBlocks(t *testing.T) {
	keys := NewClaimKeys(1, "1.2.3.4", "acc", "0xabc")

	tests := []struct {
		name string
		key  string
	}{
		{"ip key present", keys.IP},
		{"account key present", keys.Account},
		{"address key present", keys.Address},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newMemStore()
			require.NoError(t, store.Set(context.Background(), tt.key, "claimed", time.Hour))

			gate := NewClaimGate(store)
			allowed, err := gate.Allow(context.Background(), keys)
			require.NoError(t, err)
			assert.False(t, allowed)
		})
	}
}

func TestClaimGate_Allow_StoreErrorFailsClosed(t *testing.T) {
	store := newMemStore()
	store.getErr = errors.New("connection refused")

	gate := NewClaimGate(store)
	allowed, err := gate.Allow(context.Background(), NewClaimKeys(1, "ip", "acc", "addr"))

	require.Error(t, err)
	assert.False(t, allowed)
}

func TestClaimGate_Reserve_SetsAllKeysWithWindow(t *testing.T) {
	store := newMemStore()
	gate := NewClaimGate(store)
	keys := NewClaimKeys(1, "1.2.3.4", "acc", "0xabc")

	require.NoError(t, gate.Reserve(context.Background(), keys))

	for _, key := range []string{keys.IP, keys.Account, keys.Address} {
		entry, ok := store.entries[key]
		require.True(t, ok, "key %s should be set", key)
		assert.Equal(t, "claimed", entry.value)
		assert.Equal(t, 24*time.Hour, entry.ttl)
	}
}

func TestClaimGate_Reserve_ThenAllowBlocks(t *testing.T) {
	store := newMemStore()
	gate := NewClaimGate(store)
	keys := NewClaimKeys(1, "1.2.3.4", "acc", "0xabc")

	require.NoError(t, gate.Reserve(context.Background(), keys))

	allowed, err := gate.Allow(context.Background(), keys)
	require.NoError(t, err)
	assert.False(t, allowed)

	// A different chain for the same tuple is an independent window.
	otherChain := NewClaimKeys(2, "1.2.3.4", "acc", "0xabc")
	allowed, err = gate.Allow(context.Background(), otherChain)
	require.NoError(t, err)
	assert.True(t, allowed)
}
