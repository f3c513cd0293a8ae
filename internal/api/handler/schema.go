package handler

import (
	"net/http"
	"time"

	"github.com/furniture-store/storefront/internal/core/domain"
	"github.com/furniture-store/storefront/internal/core/ports"
)

// --- Auth ---

type loginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type createUserRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Name     string `json:"name"`
	Type     string `json:"type" validate:"required,oneof=admin loja restaurante"`
}

type userResponse struct {
	ID        string          `json:"id"`
	Email     string          `json:"email"`
	Name      string          `json:"name"`
	Type      domain.UserType `json:"type"`
	CreatedAt time.Time       `json:"createdAt"`
}

type loginResponse struct {
	Token string       `json:"token"`
	User  userResponse `json:"user"`
}

func toUserResponse(u domain.User) userResponse {
	return userResponse{ID: u.ID, Email: u.Email, Name: u.Name, Type: u.Type, CreatedAt: u.CreatedAt}
}

// --- Catalog ---

type productRequest struct {
	Name        string   `json:"name" validate:"required"`
	Description string   `json:"description"`
	BasePrice   float64  `json:"basePrice" validate:"gte=0"`
	CategoryID  string   `json:"categoryId" validate:"required"`
	Images      []string `json:"images"`
	Colors      []string `json:"colors"`
	IsActive    *bool    `json:"isActive"`
}

func (r productRequest) input() ports.ProductInput {
	return ports.ProductInput{
		Name:        r.Name,
		Description: r.Description,
		BasePrice:   r.BasePrice,
		CategoryID:  r.CategoryID,
		Images:      r.Images,
		Colors:      r.Colors,
		IsActive:    boolOr(r.IsActive, true),
	}
}

type productPatchRequest struct {
	Name        *string   `json:"name" validate:"omitempty,min=1"`
	Description *string   `json:"description"`
	BasePrice   *float64  `json:"basePrice" validate:"omitempty,gte=0"`
	CategoryID  *string   `json:"categoryId" validate:"omitempty,min=1"`
	Images      *[]string `json:"images"`
	Colors      *[]string `json:"colors"`
	IsActive    *bool     `json:"isActive"`
}

func (r productPatchRequest) patch() ports.ProductPatch {
	return ports.ProductPatch(r)
}

type categoryRequest struct {
	Name string `json:"name" validate:"required"`
	Icon string `json:"icon"`
}

type categoryPatchRequest struct {
	Name         *string `json:"name" validate:"omitempty,min=1"`
	Icon         *string `json:"icon"`
	ProductCount *int    `json:"productCount" validate:"omitempty,gte=0"`
}

type colorRequest struct {
	Name     string `json:"name" validate:"required"`
	HexValue string `json:"hexValue" validate:"required,hexcolor"`
}

type colorPatchRequest struct {
	Name     *string `json:"name" validate:"omitempty,min=1"`
	HexValue *string `json:"hexValue" validate:"omitempty,hexcolor"`
}

type pricingTableRequest struct {
	Name        string  `json:"name" validate:"required"`
	Description string  `json:"description"`
	Multiplier  float64 `json:"multiplier" validate:"gte=0"`
	UserType    string  `json:"userType" validate:"required,oneof=loja restaurante"`
	IsActive    *bool   `json:"isActive"`
}

type pricingTablePatchRequest struct {
	Name        *string  `json:"name" validate:"omitempty,min=1"`
	Description *string  `json:"description"`
	Multiplier  *float64 `json:"multiplier" validate:"omitempty,gte=0"`
	UserType    *string  `json:"userType" validate:"omitempty,oneof=loja restaurante"`
	IsActive    *bool    `json:"isActive"`
}

type promotionRequest struct {
	Title              string   `json:"title" validate:"required"`
	Description        string   `json:"description"`
	DiscountPercentage *float64 `json:"discountPercentage" validate:"omitempty,gte=0,lte=100"`
	CategoryIDs        []string `json:"categoryIds"`
	UserTypes          []string `json:"userTypes" validate:"dive,oneof=admin loja restaurante"`
	StartDate          string   `json:"startDate"`
	EndDate            string   `json:"endDate"`
	IsActive           *bool    `json:"isActive"`
}

type promotionPatchRequest struct {
	Title              *string   `json:"title" validate:"omitempty,min=1"`
	Description        *string   `json:"description"`
	DiscountPercentage *float64  `json:"discountPercentage" validate:"omitempty,gte=0,lte=100"`
	CategoryIDs        *[]string `json:"categoryIds"`
	UserTypes          *[]string `json:"userTypes"`
	StartDate          *string   `json:"startDate"`
	EndDate            *string   `json:"endDate"`
	IsActive           *bool     `json:"isActive"`
}

type announcementRequest struct {
	Title     string   `json:"title" validate:"required"`
	Content   string   `json:"content"`
	UserTypes []string `json:"userTypes" validate:"dive,oneof=admin loja restaurante"`
	Priority  string   `json:"priority" validate:"omitempty,oneof=low medium high"`
	IsActive  *bool    `json:"isActive"`
}

type announcementPatchRequest struct {
	Title     *string   `json:"title" validate:"omitempty,min=1"`
	Content   *string   `json:"content"`
	UserTypes *[]string `json:"userTypes"`
	Priority  *string   `json:"priority" validate:"omitempty,oneof=low medium high"`
	IsActive  *bool     `json:"isActive"`
}

type remoteTokenRequest struct {
	Token string `json:"token" validate:"required"`
}

type statusResponse struct {
	RemoteConfigured bool                      `json:"remoteConfigured"`
	Collections      []domain.CollectionStatus `json:"collections"`
}

// --- Cart & checkout ---

type addCartItemRequest struct {
	ProductID      string `json:"productId" validate:"required"`
	ColorID        string `json:"colorId" validate:"required"`
	PricingTableID string `json:"pricingTableId" validate:"required"`
	Quantity       int    `json:"quantity" validate:"gt=0"`
}

type setQuantityRequest struct {
	Quantity int `json:"quantity"`
}

type cartResponse struct {
	Items       []domain.CartItem `json:"items"`
	TotalItems  int               `json:"totalItems"`
	TotalAmount float64           `json:"totalAmount"`
}

func toCartResponse(c domain.Cart) cartResponse {
	items := c.Items
	if items == nil {
		items = []domain.CartItem{}
	}
	return cartResponse{Items: items, TotalItems: c.TotalItems(), TotalAmount: c.TotalAmount()}
}

type checkoutResponse struct {
	Order       domain.Order `json:"order"`
	WhatsappURL string       `json:"whatsappUrl"`
	Replayed    bool         `json:"replayed"`
}

func toCheckoutResponse(res *ports.CheckoutResult) checkoutResponse {
	return checkoutResponse{Order: res.Order, WhatsappURL: res.Link, Replayed: res.Replayed}
}

// checkoutStatus is 201 for a new order and 200 for a replay.
func checkoutStatus(res *ports.CheckoutResult) int {
	if res.Replayed {
		return http.StatusOK
	}
	return http.StatusCreated
}

// --- Dashboard ---

type dashboardResponse struct {
	Role  domain.UserType `json:"role"`
	Admin *adminDashboard `json:"admin,omitempty"`
	Buyer *buyerDashboard `json:"buyer,omitempty"`
}

type adminDashboard struct {
	Collections []domain.CollectionStatus `json:"collections"`
}

type buyerDashboard struct {
	Products      []domain.Product      `json:"products"`
	Categories    []domain.Category     `json:"categories"`
	PricingTables []domain.PricingTable `json:"pricingTables"`
	Promotions    []domain.Promotion    `json:"promotions"`
	Announcements []domain.Announcement `json:"announcements"`
}

func boolOr(p *bool, def bool) bool {
	if p == nil {
		return def
	}
	return *p
}

func userTypes(raw []string) []domain.UserType {
	out := make([]domain.UserType, 0, len(raw))
	for _, r := range raw {
		out = append(out, domain.UserType(r))
	}
	return out
}

func userTypesPtr(raw *[]string) *[]domain.UserType {
	if raw == nil {
		return nil
	}
	out := userTypes(*raw)
	return &out
}
