package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/furniture-store/storefront/internal/core/domain"
	"github.com/furniture-store/storefront/internal/core/ports"
	"github.com/furniture-store/storefront/internal/core/service"
)

func TestCatalogHandler_ProductsQuery(t *testing.T) {
	e := newEcho()
	handler := NewCatalogHandler(newCatalog(t))

	c, rec := newContext(e, http.MethodGet, "/v1/products?category=cat-3&search=70", "", lojaUser)
	if err := handler.Products(c); err != nil {
		t.Fatalf("Products: %v", err)
	}
	var products []domain.Product
	if err := json.Unmarshal(rec.Body.Bytes(), &products); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(products) != 1 || products[0].ID != "product-2" {
		t.Errorf("unexpected products %+v", products)
	}
}

func TestCatalogHandler_InactiveProductHiddenFromBuyer(t *testing.T) {
	e := newEcho()
	catalog := newCatalog(t)
	inactive := false
	if _, err := catalog.UpdateProduct(context.Background(), "product-1", ports.ProductPatch{IsActive: &inactive}); err != nil {
		t.Fatalf("UpdateProduct: %v", err)
	}
	handler := NewCatalogHandler(catalog)

	c, _ := newContext(e, http.MethodGet, "/v1/products/product-1", "", lojaUser)
	c.SetParamNames("id")
	c.SetParamValues("product-1")
	if err := handler.Product(c); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("buyer: expected ErrNotFound, got %v", err)
	}

	c, rec := newContext(e, http.MethodGet, "/v1/products/product-1", "", adminUser)
	c.SetParamNames("id")
	c.SetParamValues("product-1")
	if err := handler.Product(c); err != nil {
		t.Fatalf("admin: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("admin: expected 200, got %d", rec.Code)
	}
}

func TestCatalogHandler_PricingTablesByRole(t *testing.T) {
	e := newEcho()
	handler := NewCatalogHandler(newCatalog(t))

	c, rec := newContext(e, http.MethodGet, "/v1/pricing-tables", "", lojaUser)
	if err := handler.PricingTables(c); err != nil {
		t.Fatalf("PricingTables: %v", err)
	}
	var tables []domain.PricingTable
	if err := json.Unmarshal(rec.Body.Bytes(), &tables); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(tables) != 5 {
		t.Errorf("loja expected 5 tables, got %d", len(tables))
	}
}

func TestDashboardHandler(t *testing.T) {
	e := newEcho()
	handler := NewDashboardHandler(service.NewDashboardService(newCatalog(t)))

	c, rec := newContext(e, http.MethodGet, "/v1/dashboard", "", adminUser)
	if err := handler.Get(c); err != nil {
		t.Fatalf("Get: %v", err)
	}
	var resp map[string]json.RawMessage
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if _, ok := resp["admin"]; !ok {
		t.Errorf("admin view missing: %s", rec.Body.String())
	}
	if _, ok := resp["buyer"]; ok {
		t.Errorf("admin should not get a buyer view")
	}

	c, _ = newContext(e, http.MethodGet, "/v1/dashboard", "", domain.User{ID: "x", Type: "visitante"})
	if err := handler.Get(c); !errors.Is(err, domain.ErrUnknownUserType) {
		t.Errorf("expected ErrUnknownUserType, got %v", err)
	}
}
