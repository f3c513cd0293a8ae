package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/furniture-store/storefront/internal/core/domain"
	"github.com/furniture-store/storefront/internal/core/ports"
)

func newTestCheckout(t *testing.T, idem ports.IdempotencyStore) (*CheckoutService, *CartService, *CatalogService) {
	t.Helper()
	carts, catalog := newTestCarts(t)
	return NewCheckoutService(carts, catalog, idem, "5511987654321", zerolog.Nop()), carts, catalog
}

func fillCart(t *testing.T, carts *CartService, user domain.User) {
	t.Helper()
	table := "pricing-1"
	if user.Type == domain.UserTypeRestaurant {
		table = "pricing-6"
	}
	if _, err := carts.Add(context.Background(), user, ports.AddToCartInput{
		ProductID: "product-1", ColorID: "color-1", PricingTableID: table, Quantity: 2,
	}); err != nil {
		t.Fatalf("Add: %v", err)
	}
}

func TestMessageLink_EncodesSpacesAsPercent20(t *testing.T) {
	got := MessageLink("5511999999999", "Olá mundo & cia\nR$ 10")
	want := "https://wa.me/5511999999999?text=Ol%C3%A1%20mundo%20%26%20cia%0AR%24%2010"
	if got != want {
		t.Errorf("MessageLink:\n got %s\nwant %s", got, want)
	}
}

func TestOrderMessage(t *testing.T) {
	order := domain.Order{
		ID: "order-1",
		Items: []domain.CartItem{
			{ProductName: "Banqueta 50 cm", ColorName: "Madeira Natural", Quantity: 2, UnitPrice: 47, TotalPrice: 94},
		},
		Total: 94,
	}
	msg := OrderMessage(order, lojaUser)

	for _, want := range []string{
		"*NOVO PEDIDO - LOJA*",
		"Cliente: Loja Demo",
		"Pedido: order-1",
		"1. Banqueta 50 cm",
		"Quantidade: 2",
		"Subtotal: R$ 94.00",
		"*TOTAL: R$ 94.00*",
	} {
		if !strings.Contains(msg, want) {
			t.Errorf("message missing %q:\n%s", want, msg)
		}
	}
}

func TestCheckout_PlacesOrderAndClearsCart(t *testing.T) {
	svc, carts, catalog := newTestCheckout(t, nil)
	ctx := context.Background()
	fillCart(t, carts, lojaUser)

	res, err := svc.Checkout(ctx, lojaUser, "")
	if err != nil {
		t.Fatalf("Checkout: %v", err)
	}
	if res.Order.Total != 94 || res.Order.Status != domain.OrderSent || !res.Order.WhatsappSent {
		t.Errorf("unexpected order %+v", res.Order)
	}
	if !strings.HasPrefix(res.Link, "https://wa.me/5511987654321?text=") {
		t.Errorf("unexpected link %s", res.Link)
	}
	if _, err := catalog.Order(res.Order.ID); err != nil {
		t.Errorf("order not recorded: %v", err)
	}
	if got := len(carts.Cart(ctx, lojaUser).Items); got != 0 {
		t.Errorf("cart not cleared, %d lines left", got)
	}
}

func TestCheckout_EmptyCart(t *testing.T) {
	idem := newStubIdempotency()
	svc, _, _ := newTestCheckout(t, idem)

	_, err := svc.Checkout(context.Background(), lojaUser, "key-1")
	if !errors.Is(err, domain.ErrEmptyCart) {
		t.Fatalf("expected ErrEmptyCart, got %v", err)
	}
	if len(idem.released) != 1 {
		t.Errorf("expected the idempotency key to be released, got %v", idem.released)
	}
}

func TestCheckout_AdminForbidden(t *testing.T) {
	svc, _, _ := newTestCheckout(t, nil)
	admin := domain.User{ID: "admin-1", Type: domain.UserTypeAdmin}

	if _, err := svc.Checkout(context.Background(), admin, ""); !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("expected ErrForbidden, got %v", err)
	}
}

func TestCheckout_IdempotentReplay(t *testing.T) {
	svc, carts, catalog := newTestCheckout(t, newStubIdempotency())
	ctx := context.Background()
	fillCart(t, carts, restUser)

	first, err := svc.Checkout(ctx, restUser, "key-1")
	if err != nil {
		t.Fatalf("first Checkout: %v", err)
	}
	second, err := svc.Checkout(ctx, restUser, "key-1")
	if err != nil {
		t.Fatalf("second Checkout: %v", err)
	}

	if !second.Replayed || second.Order.ID != first.Order.ID || second.Link != first.Link {
		t.Errorf("expected replay of %s, got %+v", first.Order.ID, second)
	}
	if got := len(catalog.store.orders.snapshot()); got != 1 {
		t.Errorf("expected a single recorded order, got %d", got)
	}
}

func TestCheckout_KeyScopedPerUser(t *testing.T) {
	svc, carts, _ := newTestCheckout(t, newStubIdempotency())
	ctx := context.Background()
	fillCart(t, carts, lojaUser)
	fillCart(t, carts, restUser)

	a, err := svc.Checkout(ctx, lojaUser, "same")
	if err != nil {
		t.Fatalf("loja Checkout: %v", err)
	}
	b, err := svc.Checkout(ctx, restUser, "same")
	if err != nil {
		t.Fatalf("restaurante Checkout: %v", err)
	}
	if b.Replayed || a.Order.ID == b.Order.ID {
		t.Errorf("keys of different users must not collide")
	}
}

func TestCheckout_ReservedKeyWithoutOrder(t *testing.T) {
	idem := newStubIdempotency()
	idem.keys["checkout:loja-1:key-1"] = "order-pending"
	svc, carts, _ := newTestCheckout(t, idem)
	fillCart(t, carts, lojaUser)

	if _, err := svc.Checkout(context.Background(), lojaUser, "key-1"); !errors.Is(err, domain.ErrCheckoutInProgress) {
		t.Errorf("expected ErrCheckoutInProgress, got %v", err)
	}
}

func TestCheckout_IdempotencyStoreDown(t *testing.T) {
	idem := newStubIdempotency()
	idem.reserveErr = errors.New("redis down")
	svc, carts, _ := newTestCheckout(t, idem)
	fillCart(t, carts, lojaUser)

	res, err := svc.Checkout(context.Background(), lojaUser, "key-1")
	if err != nil {
		t.Fatalf("Checkout should proceed without idempotency: %v", err)
	}
	if res.Replayed {
		t.Errorf("unexpected replay")
	}
}

// addingCatalog adds a line to the buyer's cart while the order is being
// recorded.
type addingCatalog struct {
	*CatalogService
	carts *CartService
	user  domain.User
}

func (c *addingCatalog) AddOrder(ctx context.Context, order domain.Order) error {
	if _, err := c.carts.Add(ctx, c.user, ports.AddToCartInput{
		ProductID: "product-2", ColorID: "color-1", PricingTableID: "pricing-1", Quantity: 1,
	}); err != nil {
		return err
	}
	return c.CatalogService.AddOrder(ctx, order)
}

func TestCheckout_KeepsLinesAddedDuringOrder(t *testing.T) {
	carts, catalog := newTestCarts(t)
	svc := NewCheckoutService(carts, &addingCatalog{CatalogService: catalog, carts: carts, user: lojaUser}, nil, "", zerolog.Nop())
	ctx := context.Background()
	fillCart(t, carts, lojaUser)

	res, err := svc.Checkout(ctx, lojaUser, "")
	if err != nil {
		t.Fatalf("Checkout: %v", err)
	}
	if len(res.Order.Items) != 1 || res.Order.Items[0].ProductID != "product-1" {
		t.Fatalf("unexpected order lines %+v", res.Order.Items)
	}
	left := carts.Cart(ctx, lojaUser).Items
	if len(left) != 1 || left[0].ProductID != "product-2" {
		t.Errorf("expected the line added during checkout to stay, got %+v", left)
	}
}

func TestCheckout_ConcurrentCheckoutsOrderOnce(t *testing.T) {
	svc, carts, catalog := newTestCheckout(t, nil)
	ctx := context.Background()
	fillCart(t, carts, lojaUser)

	errs := make(chan error, 2)
	for range 2 {
		go func() {
			_, err := svc.Checkout(ctx, lojaUser, "")
			errs <- err
		}()
	}

	var placed, empty int
	for range 2 {
		switch err := <-errs; {
		case err == nil:
			placed++
		case errors.Is(err, domain.ErrEmptyCart):
			empty++
		default:
			t.Errorf("unexpected error %v", err)
		}
	}
	if placed != 1 || empty != 1 {
		t.Errorf("expected one order and one empty cart, got %d and %d", placed, empty)
	}
	if got := len(catalog.store.orders.snapshot()); got != 1 {
		t.Errorf("expected a single recorded order, got %d", got)
	}
}

func TestDirect_OrdersSingleItemWithoutCart(t *testing.T) {
	svc, carts, catalog := newTestCheckout(t, nil)
	ctx := context.Background()
	fillCart(t, carts, lojaUser)

	res, err := svc.Direct(ctx, lojaUser, ports.AddToCartInput{
		ProductID: "product-1", ColorID: "color-1", PricingTableID: "pricing-1", Quantity: 3,
	}, "")
	if err != nil {
		t.Fatalf("Direct: %v", err)
	}
	if len(res.Order.Items) != 1 || res.Order.Items[0].Quantity != 3 || res.Order.Total != 141 {
		t.Errorf("unexpected order %+v", res.Order)
	}
	if _, err := catalog.Order(res.Order.ID); err != nil {
		t.Errorf("order not recorded: %v", err)
	}
	if !strings.Contains(res.Link, "PEDIDO%20DIRETO") {
		t.Errorf("expected a direct order message, got %s", res.Link)
	}
	if got := len(carts.Cart(ctx, lojaUser).Items); got != 1 {
		t.Errorf("cart must be left untouched, %d lines", got)
	}
}

func TestDirect_Rejections(t *testing.T) {
	tests := []struct {
		name string
		user domain.User
		in   ports.AddToCartInput
		want error
	}{
		{"admin", domain.User{ID: "admin-1", Type: domain.UserTypeAdmin},
			ports.AddToCartInput{ProductID: "product-1", ColorID: "color-1", PricingTableID: "pricing-1", Quantity: 1}, domain.ErrForbidden},
		{"other role's table", lojaUser,
			ports.AddToCartInput{ProductID: "product-1", ColorID: "color-1", PricingTableID: "pricing-6", Quantity: 1}, domain.ErrForbidden},
		{"zero quantity", lojaUser,
			ports.AddToCartInput{ProductID: "product-1", ColorID: "color-1", PricingTableID: "pricing-1"}, domain.ErrValidation},
		{"unknown product", lojaUser,
			ports.AddToCartInput{ProductID: "missing", ColorID: "color-1", PricingTableID: "pricing-1", Quantity: 1}, domain.ErrNotFound},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			idem := newStubIdempotency()
			svc, _, _ := newTestCheckout(t, idem)
			if _, err := svc.Direct(context.Background(), tc.user, tc.in, "key-1"); !errors.Is(err, tc.want) {
				t.Errorf("expected %v, got %v", tc.want, err)
			}
			if len(idem.keys) != 0 {
				t.Errorf("idempotency key left reserved: %v", idem.keys)
			}
		})
	}
}

func TestDirect_KeyDoesNotReplayCheckout(t *testing.T) {
	svc, carts, _ := newTestCheckout(t, newStubIdempotency())
	ctx := context.Background()
	fillCart(t, carts, lojaUser)
	in := ports.AddToCartInput{ProductID: "product-1", ColorID: "color-1", PricingTableID: "pricing-1", Quantity: 1}

	cart, err := svc.Checkout(ctx, lojaUser, "key-1")
	if err != nil {
		t.Fatalf("Checkout: %v", err)
	}
	direct, err := svc.Direct(ctx, lojaUser, in, "key-1")
	if err != nil {
		t.Fatalf("Direct: %v", err)
	}
	if direct.Replayed || direct.Order.ID == cart.Order.ID {
		t.Errorf("direct order must not replay the cart checkout")
	}
	again, err := svc.Direct(ctx, lojaUser, in, "key-1")
	if err != nil {
		t.Fatalf("second Direct: %v", err)
	}
	if !again.Replayed || again.Order.ID != direct.Order.ID {
		t.Errorf("expected replay of %s, got %+v", direct.Order.ID, again)
	}
}

func TestDirectOrderMessage(t *testing.T) {
	order := domain.Order{
		ID:    "order-9",
		Items: []domain.CartItem{{ProductName: "Banqueta 50 cm", ColorName: "Preto", Quantity: 3, UnitPrice: 47, TotalPrice: 141}},
		Total: 141,
	}
	msg := DirectOrderMessage(order, restUser)

	for _, want := range []string{"*PEDIDO DIRETO - RESTAURANTE*", "Produto: Banqueta 50 cm", "Cor: Preto", "Quantidade: 3", "*Total: R$ 141.00*"} {
		if !strings.Contains(msg, want) {
			t.Errorf("message missing %q:\n%s", want, msg)
		}
	}
}
