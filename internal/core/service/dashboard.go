package service

import (
	"fmt"

	"github.com/furniture-store/storefront/internal/core/domain"
	"github.com/furniture-store/storefront/internal/core/ports"
)

type DashboardService struct {
	catalog ports.CatalogService
}

func NewDashboardService(catalog ports.CatalogService) *DashboardService {
	return &DashboardService{catalog: catalog}
}

// Dashboard selects the view for the user's role. Every role is handled
// explicitly; an unknown one is an error.
func (s *DashboardService) Dashboard(user domain.User) (*ports.Dashboard, error) {
	switch user.Type {
	case domain.UserTypeAdmin:
		return &ports.Dashboard{
			Role:  user.Type,
			Admin: &ports.AdminView{Collections: s.catalog.Status()},
		}, nil
	case domain.UserTypeStore, domain.UserTypeRestaurant:
		return &ports.Dashboard{
			Role: user.Type,
			Buyer: &ports.BuyerView{
				Products:      s.catalog.Products(ports.ProductFilter{Role: user.Type}),
				Categories:    s.catalog.Categories(),
				PricingTables: s.catalog.PricingTables(user.Type),
				Promotions:    s.catalog.Promotions(user.Type),
				Announcements: s.catalog.Announcements(user.Type),
			},
		}, nil
	default:
		return nil, fmt.Errorf("dashboard: %w: %q", domain.ErrUnknownUserType, user.Type)
	}
}
