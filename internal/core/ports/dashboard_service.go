package ports

import (
	"github.com/furniture-store/storefront/internal/core/domain"
)

// AdminView summarizes the catalog for administrators.
type AdminView struct {
	Collections []domain.CollectionStatus
}

// BuyerView is what a store or restaurant buyer sees.
type BuyerView struct {
	Products      []domain.Product
	Categories    []domain.Category
	PricingTables []domain.PricingTable
	Promotions    []domain.Promotion
	Announcements []domain.Announcement
}

// Dashboard is the view selected for a user's role; exactly one field is set.
type Dashboard struct {
	Role  domain.UserType
	Admin *AdminView
	Buyer *BuyerView
}

type DashboardService interface {
	Dashboard(user domain.User) (*Dashboard, error)
}
