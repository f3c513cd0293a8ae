package ports

import (
	"context"
	"time"
)

// FallbackStore is the local key-value tier used when the remote document
// store cannot be reached.
type FallbackStore interface {
	// Get returns domain.ErrKeyNotFound when key is absent.
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	// SetWithTTL stores value until ttl elapses; afterwards Get reports the
	// key as absent.
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Ping(ctx context.Context) error
}
