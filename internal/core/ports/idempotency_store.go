package ports

import "context"

// IdempotencyStore remembers which order a client-supplied key produced.
type IdempotencyStore interface {
	// Reserve binds key to orderID unless the key is already bound, in which
	// case the existing order id is returned with reserved == false.
	Reserve(ctx context.Context, key, orderID string) (existing string, reserved bool, err error)
	Release(ctx context.Context, key string) error
}
