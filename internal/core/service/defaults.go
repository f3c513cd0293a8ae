package service

import (
	"fmt"
	"time"

	"github.com/furniture-store/storefront/internal/core/domain"
)

const (
	bedIcon   = "fas fa-bed"
	chairIcon = "fas fa-chair"
	tableIcon = "fas fa-table"
)

func defaultCategories(now time.Time) []domain.Category {
	return []domain.Category{
		{ID: "cat-1", Name: "Beliches", Icon: bedIcon, CreatedAt: now},
		{ID: "cat-2", Name: "Camas", Icon: bedIcon, CreatedAt: now},
		{ID: "cat-3", Name: "Banquetas", Icon: chairIcon, ProductCount: 2, CreatedAt: now},
		{ID: "cat-4", Name: "Cadeiras", Icon: chairIcon, CreatedAt: now},
		{ID: "cat-5", Name: "Mesas", Icon: tableIcon, CreatedAt: now},
	}
}

func defaultColors(now time.Time) []domain.Color {
	return []domain.Color{
		{ID: "color-1", Name: "Madeira Natural", HexValue: "#D2691E", CreatedAt: now},
		{ID: "color-2", Name: "Madeira Escura", HexValue: "#654321", CreatedAt: now},
		{ID: "color-3", Name: "Madeira Clara", HexValue: "#F4A460", CreatedAt: now},
	}
}

func defaultPricingTables(now time.Time) []domain.PricingTable {
	table := func(id, name, desc string, m float64, t domain.UserType) domain.PricingTable {
		return domain.PricingTable{ID: id, Name: name, Description: desc, Multiplier: m, UserType: t, IsActive: true, CreatedAt: now}
	}
	return []domain.PricingTable{
		table("pricing-1", "À Vista", "Preço base", 1.0, domain.UserTypeStore),
		table("pricing-2", "30 dias", "Preço base + 2%", 1.02, domain.UserTypeStore),
		table("pricing-3", "30/60", "Preço base + 4%", 1.04, domain.UserTypeStore),
		table("pricing-4", "30/60/90", "Preço base + 6%", 1.06, domain.UserTypeStore),
		table("pricing-5", "30/60/90/120", "Preço base + 8%", 1.08, domain.UserTypeStore),
		table("pricing-6", "Especial Restaurante", "Preço especial para restaurantes", 1.0, domain.UserTypeRestaurant),
	}
}

const unsplash = "https://images.unsplash.com/photo-%s?ixlib=rb-4.0.3&auto=format&fit=crop&w=600&h=400"

func defaultProducts(now time.Time) []domain.Product {
	img := func(id string) string { return fmt.Sprintf(unsplash, id) }
	return []domain.Product{
		{
			ID:          "product-1",
			Name:        "Banqueta 50 cm",
			Description: "Banqueta em madeira maciça com design moderno e resistente. Ideal para restaurantes, bares e estabelecimentos comerciais.",
			BasePrice:   47.00,
			CategoryID:  "cat-3",
			Images:      []string{img("1586023492125-27b2c045efd7"), img("1581539250439-c96689b516dd"), img("1549497538-303791108f95")},
			Colors:      []string{"color-1", "color-2", "color-3"},
			IsActive:    true,
			CreatedAt:   now,
			UpdatedAt:   now,
		},
		{
			ID:          "product-2",
			Name:        "Banqueta 70 cm",
			Description: "Banqueta alta em madeira maciça, perfeita para balcões e bancadas altas.",
			BasePrice:   56.00,
			CategoryID:  "cat-3",
			Images:      []string{img("1549497538-303791108f95"), img("1581539250439-c96689b516dd")},
			Colors:      []string{"color-1", "color-2"},
			IsActive:    true,
			CreatedAt:   now,
			UpdatedAt:   now,
		},
	}
}

// defaultUsers are the demo accounts. Their passwords are stored in plain
// text, as the seeded documents always have been.
func defaultUsers(now time.Time) []domain.User {
	return []domain.User{
		{ID: "admin-1", Email: "admin@furniture.com", Password: "admin123", Name: "Administrador", Type: domain.UserTypeAdmin, CreatedAt: now},
		{ID: "loja-1", Email: "loja@furniture.com", Password: "loja123", Name: "Loja Demo", Type: domain.UserTypeStore, CreatedAt: now},
		{ID: "rest-1", Email: "restaurante@furniture.com", Password: "rest123", Name: "Restaurante Demo", Type: domain.UserTypeRestaurant, CreatedAt: now},
	}
}
