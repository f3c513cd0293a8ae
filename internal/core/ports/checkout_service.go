package ports

import (
	"context"

	"github.com/furniture-store/storefront/internal/core/domain"
)

// CheckoutResult is the recorded order and the deep link that hands it to
// the messaging app.
type CheckoutResult struct {
	Order    domain.Order
	Link     string
	Replayed bool
}

type CheckoutService interface {
	Checkout(ctx context.Context, user domain.User, idempotencyKey string) (*CheckoutResult, error)
	// Direct orders one product without going through the cart.
	Direct(ctx context.Context, user domain.User, in AddToCartInput, idempotencyKey string) (*CheckoutResult, error)
}
