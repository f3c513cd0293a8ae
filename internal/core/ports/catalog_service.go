package ports

import (
	"context"

	"github.com/furniture-store/storefront/internal/core/domain"
)

// ProductFilter narrows the product listing. Role scopes visibility: buyers
// only see active products, an admin sees all of them.
type ProductFilter struct {
	Role       domain.UserType
	CategoryID string
	Search     string
}

type ProductInput struct {
	Name        string
	Description string
	BasePrice   float64
	CategoryID  string
	Images      []string
	Colors      []string
	IsActive    bool
}

// ProductPatch carries a partial update; nil fields are left unchanged.
type ProductPatch struct {
	Name        *string
	Description *string
	BasePrice   *float64
	CategoryID  *string
	Images      *[]string
	Colors      *[]string
	IsActive    *bool
}

type CategoryInput struct {
	Name string
	Icon string
}

type CategoryPatch struct {
	Name         *string
	Icon         *string
	ProductCount *int
}

type ColorInput struct {
	Name     string
	HexValue string
}

type ColorPatch struct {
	Name     *string
	HexValue *string
}

type PricingTableInput struct {
	Name        string
	Description string
	Multiplier  float64
	UserType    domain.UserType
	IsActive    bool
}

type PricingTablePatch struct {
	Name        *string
	Description *string
	Multiplier  *float64
	UserType    *domain.UserType
	IsActive    *bool
}

type PromotionInput struct {
	Title              string
	Description        string
	DiscountPercentage *float64
	CategoryIDs        []string
	UserTypes          []domain.UserType
	StartDate          string
	EndDate            string
	IsActive           bool
}

type PromotionPatch struct {
	Title              *string
	Description        *string
	DiscountPercentage *float64
	CategoryIDs        *[]string
	UserTypes          *[]domain.UserType
	StartDate          *string
	EndDate            *string
	IsActive           *bool
}

type AnnouncementInput struct {
	Title     string
	Content   string
	UserTypes []domain.UserType
	Priority  domain.Priority
	IsActive  bool
}

type AnnouncementPatch struct {
	Title     *string
	Content   *string
	UserTypes *[]domain.UserType
	Priority  *domain.Priority
	IsActive  *bool
}

// CatalogService is the synchronization layer over the catalog collections.
type CatalogService interface {
	// Load reads every collection (remote first, fallback on failure) and
	// seeds defaults into the empty ones.
	Load(ctx context.Context) error
	Refresh(ctx context.Context) error
	Status() []domain.CollectionStatus

	Products(filter ProductFilter) []domain.Product
	Product(id string) (domain.Product, error)
	Categories() []domain.Category
	Colors() []domain.Color
	Color(id string) (domain.Color, error)
	PricingTables(role domain.UserType) []domain.PricingTable
	PricingTable(id string) (domain.PricingTable, error)
	Promotions(role domain.UserType) []domain.Promotion
	Announcements(role domain.UserType) []domain.Announcement

	AddProduct(ctx context.Context, in ProductInput) (*domain.Product, error)
	UpdateProduct(ctx context.Context, id string, patch ProductPatch) (*domain.Product, error)
	DeleteProduct(ctx context.Context, id string) error

	AddCategory(ctx context.Context, in CategoryInput) (*domain.Category, error)
	UpdateCategory(ctx context.Context, id string, patch CategoryPatch) (*domain.Category, error)
	DeleteCategory(ctx context.Context, id string) error

	AddColor(ctx context.Context, in ColorInput) (*domain.Color, error)
	UpdateColor(ctx context.Context, id string, patch ColorPatch) (*domain.Color, error)
	DeleteColor(ctx context.Context, id string) error

	AddPricingTable(ctx context.Context, in PricingTableInput) (*domain.PricingTable, error)
	UpdatePricingTable(ctx context.Context, id string, patch PricingTablePatch) (*domain.PricingTable, error)
	DeletePricingTable(ctx context.Context, id string) error

	AddPromotion(ctx context.Context, in PromotionInput) (*domain.Promotion, error)
	UpdatePromotion(ctx context.Context, id string, patch PromotionPatch) (*domain.Promotion, error)
	DeletePromotion(ctx context.Context, id string) error

	AddAnnouncement(ctx context.Context, in AnnouncementInput) (*domain.Announcement, error)
	UpdateAnnouncement(ctx context.Context, id string, patch AnnouncementPatch) (*domain.Announcement, error)
	DeleteAnnouncement(ctx context.Context, id string) error

	AddOrder(ctx context.Context, order domain.Order) error
	Order(id string) (domain.Order, error)
}
