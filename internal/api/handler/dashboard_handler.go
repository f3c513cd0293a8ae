package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/furniture-store/storefront/internal/core/ports"
)

type DashboardHandler struct {
	dashboards ports.DashboardService
}

func NewDashboardHandler(dashboards ports.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboards: dashboards}
}

// Get returns the admin or buyer view depending on the caller's role.
//
// @Summary      Role dashboard
// @Tags         dashboard
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dashboardResponse
// @Failure      400  {object}  map[string]string
// @Router       /v1/dashboard [get]
func (h *DashboardHandler) Get(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}
	d, err := h.dashboards.Dashboard(user)
	if err != nil {
		return err
	}

	resp := dashboardResponse{Role: d.Role}
	if d.Admin != nil {
		resp.Admin = &adminDashboard{Collections: d.Admin.Collections}
	}
	if d.Buyer != nil {
		resp.Buyer = &buyerDashboard{
			Products:      d.Buyer.Products,
			Categories:    d.Buyer.Categories,
			PricingTables: d.Buyer.PricingTables,
			Promotions:    d.Buyer.Promotions,
			Announcements: d.Buyer.Announcements,
		}
	}
	return c.JSON(http.StatusOK, resp)
}
