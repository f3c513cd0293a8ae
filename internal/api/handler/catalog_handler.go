package handler

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/furniture-store/storefront/internal/core/domain"
	"github.com/furniture-store/storefront/internal/core/ports"
)

// CatalogHandler serves the role-scoped catalog reads.
type CatalogHandler struct {
	catalog ports.CatalogService
}

func NewCatalogHandler(catalog ports.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

// Products handles GET /v1/products.
//
// @Summary      List products
// @Tags         catalog
// @Produce      json
// @Security     BearerAuth
// @Param        category  query     string  false  "Category id"
// @Param        search    query     string  false  "Text matched against name and description"
// @Success      200       {array}   domain.Product
// @Router       /v1/products [get]
func (h *CatalogHandler) Products(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, h.catalog.Products(ports.ProductFilter{
		Role:       user.Type,
		CategoryID: c.QueryParam("category"),
		Search:     c.QueryParam("search"),
	}))
}

// Product handles GET /v1/products/:id.
//
// @Summary      Get a product
// @Tags         catalog
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Product id"
// @Success      200  {object}  domain.Product
// @Failure      404  {object}  map[string]string
// @Router       /v1/products/{id} [get]
func (h *CatalogHandler) Product(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}
	p, err := h.catalog.Product(c.Param("id"))
	if err != nil {
		return err
	}
	if !p.IsActive && user.Type != domain.UserTypeAdmin {
		return fmt.Errorf("product %s: %w", p.ID, domain.ErrNotFound)
	}
	return c.JSON(http.StatusOK, p)
}

// @Summary      List categories
// @Tags         catalog
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  domain.Category
// @Router       /v1/categories [get]
func (h *CatalogHandler) Categories(c echo.Context) error {
	return c.JSON(http.StatusOK, h.catalog.Categories())
}

// @Summary      List colors
// @Tags         catalog
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  domain.Color
// @Router       /v1/colors [get]
func (h *CatalogHandler) Colors(c echo.Context) error {
	return c.JSON(http.StatusOK, h.catalog.Colors())
}

// PricingTables lists the tables the caller may buy under; admins see all.
//
// @Summary      List pricing tables
// @Tags         catalog
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  domain.PricingTable
// @Router       /v1/pricing-tables [get]
func (h *CatalogHandler) PricingTables(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, h.catalog.PricingTables(user.Type))
}

// @Summary      List promotions visible to the caller
// @Tags         catalog
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  domain.Promotion
// @Router       /v1/promotions [get]
func (h *CatalogHandler) Promotions(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, h.catalog.Promotions(user.Type))
}

// @Summary      List announcements visible to the caller
// @Tags         catalog
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  domain.Announcement
// @Router       /v1/announcements [get]
func (h *CatalogHandler) Announcements(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, h.catalog.Announcements(user.Type))
}
