package domain

import (
	"errors"
	"testing"
	"time"
)

func TestPricingTablePrice(t *testing.T) {
	tests := []struct {
		base, multiplier, want float64
	}{
		{47, 1, 47},
		{47, 1.02, 47.94},
		{56, 1.08, 60.48},
		{0.005, 1, 0.01},
	}
	for _, tt := range tests {
		if got := (PricingTable{Multiplier: tt.multiplier}).Price(tt.base); got != tt.want {
			t.Errorf("Price(%v × %v) = %v, want %v", tt.base, tt.multiplier, got, tt.want)
		}
	}
}

func TestProductMatches(t *testing.T) {
	p := Product{Name: "Banqueta Alta", Description: "Madeira maciça", CategoryID: "cat-3"}

	tests := []struct {
		name, category, term string
		want                 bool
	}{
		{"no filter", "", "", true},
		{"category", "cat-3", "", true},
		{"other category", "cat-1", "", false},
		{"name case-insensitive", "", "banqueta", true},
		{"description", "", "MACIÇA", true},
		{"miss", "", "mesa", false},
		{"category and term", "cat-1", "banqueta", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := p.Matches(tt.category, tt.term); got != tt.want {
				t.Errorf("Matches(%q, %q) = %v, want %v", tt.category, tt.term, got, tt.want)
			}
		})
	}
}

func TestPromotionVisibleTo(t *testing.T) {
	now := time.Date(2024, 6, 15, 18, 0, 0, 0, time.UTC)
	base := Promotion{Title: "x", UserTypes: []UserType{UserTypeStore}, IsActive: true}

	tests := []struct {
		name string
		edit func(*Promotion)
		role UserType
		want bool
	}{
		{"open window", func(*Promotion) {}, UserTypeStore, true},
		{"other role", func(*Promotion) {}, UserTypeRestaurant, false},
		{"inactive", func(p *Promotion) { p.IsActive = false }, UserTypeStore, false},
		{"ends today", func(p *Promotion) { p.EndDate = "2024-06-15" }, UserTypeStore, true},
		{"ended", func(p *Promotion) { p.EndDate = "2024-06-14" }, UserTypeStore, false},
		{"not started", func(p *Promotion) { p.StartDate = "2024-06-16T00:00:00Z" }, UserTypeStore, false},
		{"unparseable dates", func(p *Promotion) { p.StartDate, p.EndDate = "soon", "later" }, UserTypeStore, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := base
			tt.edit(&p)
			if got := p.VisibleTo(tt.role, now); got != tt.want {
				t.Errorf("VisibleTo = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestValidation(t *testing.T) {
	discount := 120.0
	tests := []struct {
		name string
		err  error
	}{
		{"product without name", Product{BasePrice: 1}.Validate()},
		{"promotion discount over 100", Promotion{Title: "x", DiscountPercentage: &discount}.Validate()},
		{"promotion for admin", Promotion{Title: "x", UserTypes: []UserType{UserTypeAdmin}}.Validate()},
		{"announcement priority", Announcement{Title: "x", Priority: "urgent"}.Validate()},
		{"pricing table for admin", PricingTable{Name: "x", UserType: UserTypeAdmin}.Validate()},
	}
	for _, tt := range tests {
		if !errors.Is(tt.err, ErrValidation) {
			t.Errorf("%s: expected ErrValidation, got %v", tt.name, tt.err)
		}
	}
}

func TestParseUserType(t *testing.T) {
	if got, err := ParseUserType("restaurante"); err != nil || got != UserTypeRestaurant {
		t.Errorf("ParseUserType(restaurante) = %q, %v", got, err)
	}
	if _, err := ParseUserType("Admin"); !errors.Is(err, ErrUnknownUserType) {
		t.Errorf("expected ErrUnknownUserType, got %v", err)
	}
}

func TestConflictErrorMatchesSentinel(t *testing.T) {
	var err error = &ConflictError{Path: "docs/data/products.json", ExpectedVersion: "abc"}
	if !errors.Is(err, ErrVersionConflict) {
		t.Errorf("ConflictError should match ErrVersionConflict")
	}
}
