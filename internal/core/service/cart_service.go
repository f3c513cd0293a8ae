package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/furniture-store/storefront/internal/core/domain"
	"github.com/furniture-store/storefront/internal/core/ports"
	"github.com/furniture-store/storefront/internal/pkg/metrics"
)

// CartService keeps one in-memory cart per user and prices new lines from
// the catalog.
type CartService struct {
	catalog ports.CatalogService
	logger  zerolog.Logger

	mu    sync.Mutex
	carts map[string]domain.Cart
}

func NewCartService(catalog ports.CatalogService, logger zerolog.Logger) *CartService {
	return &CartService{catalog: catalog, logger: logger, carts: make(map[string]domain.Cart)}
}

func (s *CartService) Cart(_ context.Context, user domain.User) domain.Cart {
	return s.cart(user.ID)
}

func (s *CartService) cart(userID string) domain.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.carts[userID]
	if !ok {
		return domain.Cart{Items: []domain.CartItem{}}
	}
	return c
}

// Quote prices one product and color under the given pricing table for
// user. The returned line is not added to any cart.
func (s *CartService) Quote(_ context.Context, user domain.User, in ports.AddToCartInput) (domain.CartItem, error) {
	if in.Quantity <= 0 {
		return domain.CartItem{}, fmt.Errorf("%w: quantity must be positive", domain.ErrValidation)
	}

	product, err := s.catalog.Product(in.ProductID)
	if err != nil {
		return domain.CartItem{}, err
	}
	if !product.IsActive {
		return domain.CartItem{}, fmt.Errorf("%w: product %s", domain.ErrNotFound, in.ProductID)
	}
	if !product.HasColor(in.ColorID) {
		return domain.CartItem{}, fmt.Errorf("%w: color %s is not offered for product %s", domain.ErrValidation, in.ColorID, product.ID)
	}
	color, err := s.catalog.Color(in.ColorID)
	if err != nil {
		return domain.CartItem{}, err
	}
	table, err := s.catalog.PricingTable(in.PricingTableID)
	if err != nil {
		return domain.CartItem{}, err
	}
	if !table.IsActive || table.UserType != user.Type {
		return domain.CartItem{}, fmt.Errorf("%w: pricing table %s is not available to %s", domain.ErrForbidden, table.ID, user.Type)
	}

	unit := table.Price(product.BasePrice)
	return domain.CartItem{
		ID:           uuid.NewString(),
		ProductID:    product.ID,
		ProductName:  product.Name,
		ProductImage: product.Thumbnail(),
		ColorID:      color.ID,
		ColorName:    color.Name,
		Quantity:     in.Quantity,
		UnitPrice:    unit,
		TotalPrice:   domain.RoundCents(unit * float64(in.Quantity)),
	}, nil
}

// Add prices the requested product and merges it into the user's cart.
func (s *CartService) Add(ctx context.Context, user domain.User, in ports.AddToCartInput) (domain.Cart, error) {
	line, err := s.Quote(ctx, user, in)
	if err != nil {
		return domain.Cart{}, err
	}
	return s.apply(user, "add", domain.AddItem{Item: line}), nil
}

func (s *CartService) SetQuantity(_ context.Context, user domain.User, itemID string, quantity int) (domain.Cart, error) {
	if _, ok := s.cart(user.ID).Find(itemID); !ok {
		return domain.Cart{}, fmt.Errorf("%w: cart item %s", domain.ErrNotFound, itemID)
	}
	return s.apply(user, "set_quantity", domain.SetQuantity{ItemID: itemID, Quantity: quantity}), nil
}

func (s *CartService) Remove(_ context.Context, user domain.User, itemID string) (domain.Cart, error) {
	if _, ok := s.cart(user.ID).Find(itemID); !ok {
		return domain.Cart{}, fmt.Errorf("%w: cart item %s", domain.ErrNotFound, itemID)
	}
	return s.apply(user, "remove", domain.RemoveItem{ItemID: itemID}), nil
}

// RemoveLines drops the given lines and keeps everything else. Unknown ids
// are ignored.
func (s *CartService) RemoveLines(_ context.Context, user domain.User, itemIDs []string) domain.Cart {
	return s.apply(user, "remove_lines", domain.RemoveItems{ItemIDs: itemIDs})
}

func (s *CartService) Clear(_ context.Context, user domain.User) domain.Cart {
	return s.apply(user, "clear", domain.ClearCart{})
}

func (s *CartService) apply(user domain.User, name string, action domain.CartAction) domain.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := domain.Reduce(s.carts[user.ID], action)
	if len(next.Items) == 0 {
		delete(s.carts, user.ID)
	} else {
		s.carts[user.ID] = next
	}
	metrics.CartMutationsTotal.WithLabelValues(name).Inc()
	s.logger.Debug().Str("user_id", user.ID).Str("action", name).Int("lines", len(next.Items)).Msg("cart updated")
	return next
}
