package ports

import (
	"context"

	"github.com/furniture-store/storefront/internal/core/domain"
)

// AddToCartInput identifies what a buyer wants and under which pricing table.
type AddToCartInput struct {
	ProductID      string
	ColorID        string
	PricingTableID string
	Quantity       int
}

type CartService interface {
	Cart(ctx context.Context, user domain.User) domain.Cart
	// Quote prices a line without touching the cart.
	Quote(ctx context.Context, user domain.User, in AddToCartInput) (domain.CartItem, error)
	Add(ctx context.Context, user domain.User, in AddToCartInput) (domain.Cart, error)
	SetQuantity(ctx context.Context, user domain.User, itemID string, quantity int) (domain.Cart, error)
	Remove(ctx context.Context, user domain.User, itemID string) (domain.Cart, error)
	RemoveLines(ctx context.Context, user domain.User, itemIDs []string) domain.Cart
	Clear(ctx context.Context, user domain.User) domain.Cart
}
