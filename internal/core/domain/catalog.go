package domain

import (
	"fmt"
	"math"
	"slices"
	"strings"
	"time"
)

// Category groups products on the storefront.
type Category struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Icon         string    `json:"icon"`
	ProductCount int       `json:"productCount"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Color is a finish a product can be ordered in.
type Color struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	HexValue  string    `json:"hexValue"`
	CreatedAt time.Time `json:"createdAt"`
}

// PricingTable is a named multiplier over a product's base price, offered
// to one buyer role.
type PricingTable struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Multiplier  float64   `json:"multiplier"`
	UserType    UserType  `json:"userType"`
	IsActive    bool      `json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`
}

func (p PricingTable) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("%w: pricing table name is required", ErrValidation)
	}
	if p.Multiplier < 0 {
		return fmt.Errorf("%w: multiplier must be non-negative", ErrValidation)
	}
	if !p.UserType.IsBuyer() {
		return fmt.Errorf("%w: pricing table user type must be loja or restaurante", ErrValidation)
	}
	return nil
}

// Price applies the table multiplier to basePrice, rounded to cents.
func (p PricingTable) Price(basePrice float64) float64 {
	return RoundCents(basePrice * p.Multiplier)
}

// Product is a catalog item.
type Product struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	BasePrice   float64   `json:"basePrice"`
	CategoryID  string    `json:"categoryId"`
	Images      []string  `json:"images"`
	Colors      []string  `json:"colors"`
	IsActive    bool      `json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (p Product) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("%w: product name is required", ErrValidation)
	}
	if p.BasePrice < 0 {
		return fmt.Errorf("%w: base price must be non-negative", ErrValidation)
	}
	return nil
}

// HasColor reports whether colorID is one of the product's finishes.
func (p Product) HasColor(colorID string) bool {
	return slices.Contains(p.Colors, colorID)
}

// Matches reports whether the product belongs to categoryID (when set) and
// contains term in its name or description, case-insensitively.
func (p Product) Matches(categoryID, term string) bool {
	if categoryID != "" && p.CategoryID != categoryID {
		return false
	}
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return true
	}
	return strings.Contains(strings.ToLower(p.Name), term) ||
		strings.Contains(strings.ToLower(p.Description), term)
}

// Thumbnail returns the first image, if any.
func (p Product) Thumbnail() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0]
}

// Promotion advertises a discount to some buyer roles over a date window.
// Dates are kept as the strings the admin entered.
type Promotion struct {
	ID                 string     `json:"id"`
	Title              string     `json:"title"`
	Description        string     `json:"description"`
	DiscountPercentage *float64   `json:"discountPercentage,omitempty"`
	CategoryIDs        []string   `json:"categoryIds"`
	UserTypes          []UserType `json:"userTypes"`
	StartDate          string     `json:"startDate"`
	EndDate            string     `json:"endDate"`
	IsActive           bool       `json:"isActive"`
	CreatedAt          time.Time  `json:"createdAt"`
}

func (p Promotion) Validate() error {
	if strings.TrimSpace(p.Title) == "" {
		return fmt.Errorf("%w: promotion title is required", ErrValidation)
	}
	if d := p.DiscountPercentage; d != nil && (*d < 0 || *d > 100) {
		return fmt.Errorf("%w: discount percentage must be between 0 and 100", ErrValidation)
	}
	for _, t := range p.UserTypes {
		if !t.IsBuyer() {
			return fmt.Errorf("%w: promotion user type %q", ErrValidation, t)
		}
	}
	return nil
}

// VisibleTo reports whether an active promotion targets t and now falls in
// its date window. Unparseable bounds leave the window open on that side.
func (p Promotion) VisibleTo(t UserType, now time.Time) bool {
	if !p.IsActive || !slices.Contains(p.UserTypes, t) {
		return false
	}
	if start, ok := parseDate(p.StartDate); ok && now.Before(start) {
		return false
	}
	if end, ok := parseDate(p.EndDate); ok && now.After(end.Add(24*time.Hour-time.Nanosecond)) {
		return false
	}
	return true
}

func parseDate(s string) (time.Time, bool) {
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			if layout == time.RFC3339 {
				y, m, d := t.UTC().Date()
				t = time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
			}
			return t, true
		}
	}
	return time.Time{}, false
}

// Priority orders announcements.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Announcement is a notice shown to some roles.
type Announcement struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Content   string     `json:"content"`
	UserTypes []UserType `json:"userTypes"`
	Priority  Priority   `json:"priority"`
	IsActive  bool       `json:"isActive"`
	CreatedAt time.Time  `json:"createdAt"`
}

func (a Announcement) Validate() error {
	if strings.TrimSpace(a.Title) == "" {
		return fmt.Errorf("%w: announcement title is required", ErrValidation)
	}
	switch a.Priority {
	case PriorityLow, PriorityMedium, PriorityHigh:
	default:
		return fmt.Errorf("%w: priority must be low, medium or high", ErrValidation)
	}
	for _, t := range a.UserTypes {
		if !t.Valid() {
			return fmt.Errorf("%w: announcement user type %q", ErrValidation, t)
		}
	}
	return nil
}

// VisibleTo reports whether the announcement is active and targets t.
func (a Announcement) VisibleTo(t UserType) bool {
	return a.IsActive && slices.Contains(a.UserTypes, t)
}

// RoundCents rounds v half away from zero to two decimals.
func RoundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
