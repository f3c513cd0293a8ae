package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/rs/zerolog"

	"github.com/furniture-store/storefront/internal/core/domain"
	"github.com/furniture-store/storefront/internal/core/ports"
	"github.com/furniture-store/storefront/internal/core/service"
)

type stubCheckout struct {
	gotKey   string
	gotInput ports.AddToCartInput
	result   *ports.CheckoutResult
	err      error
}

func (s *stubCheckout) Checkout(_ context.Context, _ domain.User, key string) (*ports.CheckoutResult, error) {
	s.gotKey = key
	return s.result, s.err
}

func (s *stubCheckout) Direct(_ context.Context, _ domain.User, in ports.AddToCartInput, key string) (*ports.CheckoutResult, error) {
	s.gotKey = key
	s.gotInput = in
	return s.result, s.err
}

func TestCartHandler_AddAndGet(t *testing.T) {
	e := newEcho()
	carts := service.NewCartService(newCatalog(t), zerolog.Nop())
	handler := NewCartHandler(carts, &stubCheckout{})

	c, rec := newContext(e, http.MethodPost, "/v1/cart/items",
		`{"productId":"product-1","colorId":"color-1","pricingTableId":"pricing-3","quantity":2}`, lojaUser)
	if err := handler.AddItem(c); err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	c, rec = newContext(e, http.MethodGet, "/v1/cart", "", lojaUser)
	if err := handler.Get(c); err != nil {
		t.Fatalf("Get: %v", err)
	}
	var resp cartResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.TotalItems != 2 || resp.TotalAmount != 97.76 {
		t.Errorf("unexpected totals: %d items, %v", resp.TotalItems, resp.TotalAmount)
	}
}

func TestCartHandler_AddItem_Invalid(t *testing.T) {
	e := newEcho()
	handler := NewCartHandler(service.NewCartService(newCatalog(t), zerolog.Nop()), &stubCheckout{})

	c, _ := newContext(e, http.MethodPost, "/v1/cart/items", `{"productId":"product-1","colorId":"color-1","pricingTableId":"pricing-1","quantity":0}`, lojaUser)
	if code := httpCode(t, handler.AddItem(c)); code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", code)
	}

	c, _ = newContext(e, http.MethodPost, "/v1/cart/items", `{"productId":"product-1","colorId":"color-1","pricingTableId":"pricing-6","quantity":1}`, lojaUser)
	if err := handler.AddItem(c); !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("expected ErrForbidden for another role's table, got %v", err)
	}
}

func TestCartHandler_RemoveMissingItem(t *testing.T) {
	e := newEcho()
	handler := NewCartHandler(service.NewCartService(newCatalog(t), zerolog.Nop()), &stubCheckout{})

	c, _ := newContext(e, http.MethodDelete, "/v1/cart/items/nope", "", lojaUser)
	c.SetParamNames("id")
	c.SetParamValues("nope")
	if err := handler.RemoveItem(c); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestCartHandler_Checkout(t *testing.T) {
	order := domain.Order{ID: "order-1", Total: 94, Status: domain.OrderSent}

	tests := []struct {
		name     string
		replayed bool
		want     int
	}{
		{"new order", false, http.StatusCreated},
		{"replay", true, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newEcho()
			checkout := &stubCheckout{result: &ports.CheckoutResult{Order: order, Link: "https://wa.me/1?text=x", Replayed: tt.replayed}}
			handler := NewCartHandler(nil, checkout)

			c, rec := newContext(e, http.MethodPost, "/v1/checkout", "", lojaUser)
			c.Request().Header.Set(HeaderIdempotencyKey, "abc")
			if err := handler.Checkout(c); err != nil {
				t.Fatalf("Checkout: %v", err)
			}
			if rec.Code != tt.want {
				t.Errorf("expected %d, got %d", tt.want, rec.Code)
			}
			if checkout.gotKey != "abc" {
				t.Errorf("idempotency key not forwarded, got %q", checkout.gotKey)
			}

			var resp checkoutResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("invalid json: %v", err)
			}
			if resp.WhatsappURL == "" || resp.Order.ID != "order-1" || resp.Replayed != tt.replayed {
				t.Errorf("unexpected response %+v", resp)
			}
		})
	}
}

func TestCartHandler_CheckoutEmptyCart(t *testing.T) {
	e := newEcho()
	handler := NewCartHandler(nil, &stubCheckout{err: domain.ErrEmptyCart})

	c, _ := newContext(e, http.MethodPost, "/v1/checkout", "", lojaUser)
	if err := handler.Checkout(c); !errors.Is(err, domain.ErrEmptyCart) {
		t.Errorf("expected ErrEmptyCart, got %v", err)
	}
}

func TestCartHandler_DirectCheckout(t *testing.T) {
	e := newEcho()
	order := domain.Order{ID: "order-2", Total: 47, Status: domain.OrderSent}
	checkout := &stubCheckout{result: &ports.CheckoutResult{Order: order, Link: "https://wa.me/1?text=y"}}
	handler := NewCartHandler(nil, checkout)

	c, rec := newContext(e, http.MethodPost, "/v1/checkout/direct",
		`{"productId":"product-1","colorId":"color-1","pricingTableId":"pricing-1","quantity":1}`, lojaUser)
	c.Request().Header.Set(HeaderIdempotencyKey, "direct-1")
	if err := handler.DirectCheckout(c); err != nil {
		t.Fatalf("DirectCheckout: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Errorf("expected 201, got %d", rec.Code)
	}
	want := ports.AddToCartInput{ProductID: "product-1", ColorID: "color-1", PricingTableID: "pricing-1", Quantity: 1}
	if checkout.gotInput != want || checkout.gotKey != "direct-1" {
		t.Errorf("unexpected forwarded request %+v key %q", checkout.gotInput, checkout.gotKey)
	}
}

func TestCartHandler_DirectCheckoutInvalid(t *testing.T) {
	e := newEcho()
	handler := NewCartHandler(nil, &stubCheckout{})

	c, _ := newContext(e, http.MethodPost, "/v1/checkout/direct", `{"productId":"product-1","quantity":0}`, lojaUser)
	if code := httpCode(t, handler.DirectCheckout(c)); code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", code)
	}
}
