package ratelimit

import (
	"context"
	"time"
)

// Store is the key-value capability the claim gate is built on. Backed by
// Redis in production; tests inject an in-memory fake. Per-key writes are
// assumed atomic, nothing more.
type Store interface {
	// Get returns the value for key and whether the key exists. A miss is
	// not an error.
	Get(ctx context.Context, key string) (value string, found bool, err error)

	Set(ctx context.Context, key, value string, ttl time.Duration) error
}
