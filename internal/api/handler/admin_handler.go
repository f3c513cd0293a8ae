package handler

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/furniture-store/storefront/internal/core/domain"
	"github.com/furniture-store/storefront/internal/core/ports"
	"github.com/furniture-store/storefront/internal/infrastructure/export"
)

// RemoteSettings manages the remote tier's access token.
type RemoteSettings interface {
	Configured() bool
	SetToken(ctx context.Context, token string) error
	ClearToken(ctx context.Context) error
}

// AdminHandler exposes catalog maintenance to administrators.
type AdminHandler struct {
	catalog ports.CatalogService
	remote  RemoteSettings
}

func NewAdminHandler(catalog ports.CatalogService, remote RemoteSettings) *AdminHandler {
	return &AdminHandler{catalog: catalog, remote: remote}
}

// --- Products ---

// CreateProduct handles POST /v1/admin/products.
//
// @Summary      Create a product
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      productRequest  true  "Product"
// @Success      201   {object}  domain.Product
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Failure      503   {object}  map[string]string
// @Router       /v1/admin/products [post]
func (h *AdminHandler) CreateProduct(c echo.Context) error {
	var req productRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	p, err := h.catalog.AddProduct(c.Request().Context(), req.input())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, p)
}

// UpdateProduct handles PUT /v1/admin/products/:id. Omitted fields keep
// their value.
//
// @Summary      Update a product
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string               true  "Product id"
// @Param        body  body      productPatchRequest  true  "Fields to change"
// @Success      200   {object}  domain.Product
// @Failure      404   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /v1/admin/products/{id} [put]
func (h *AdminHandler) UpdateProduct(c echo.Context) error {
	var req productPatchRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	p, err := h.catalog.UpdateProduct(c.Request().Context(), c.Param("id"), req.patch())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, p)
}

// DeleteProduct handles DELETE /v1/admin/products/:id.
//
// @Summary      Delete a product
// @Tags         admin
// @Security     BearerAuth
// @Param        id  path  string  true  "Product id"
// @Success      204
// @Failure      404  {object}  map[string]string
// @Router       /v1/admin/products/{id} [delete]
func (h *AdminHandler) DeleteProduct(c echo.Context) error {
	if err := h.catalog.DeleteProduct(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// --- Categories ---

// @Summary      Create a category
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      categoryRequest  true  "Category"
// @Success      201   {object}  domain.Category
// @Router       /v1/admin/categories [post]
func (h *AdminHandler) CreateCategory(c echo.Context) error {
	var req categoryRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	cat, err := h.catalog.AddCategory(c.Request().Context(), ports.CategoryInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, cat)
}

// @Summary      Update a category
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                true  "Category id"
// @Param        body  body      categoryPatchRequest  true  "Fields to change"
// @Success      200   {object}  domain.Category
// @Router       /v1/admin/categories/{id} [put]
func (h *AdminHandler) UpdateCategory(c echo.Context) error {
	var req categoryPatchRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	cat, err := h.catalog.UpdateCategory(c.Request().Context(), c.Param("id"), ports.CategoryPatch(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, cat)
}

// @Summary      Delete a category
// @Tags         admin
// @Security     BearerAuth
// @Param        id  path  string  true  "Category id"
// @Success      204
// @Router       /v1/admin/categories/{id} [delete]
func (h *AdminHandler) DeleteCategory(c echo.Context) error {
	if err := h.catalog.DeleteCategory(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// --- Colors ---

// @Summary      Create a color
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      colorRequest  true  "Color"
// @Success      201   {object}  domain.Color
// @Router       /v1/admin/colors [post]
func (h *AdminHandler) CreateColor(c echo.Context) error {
	var req colorRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	col, err := h.catalog.AddColor(c.Request().Context(), ports.ColorInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, col)
}

// @Summary      Update a color
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "Color id"
// @Param        body  body      colorPatchRequest  true  "Fields to change"
// @Success      200   {object}  domain.Color
// @Router       /v1/admin/colors/{id} [put]
func (h *AdminHandler) UpdateColor(c echo.Context) error {
	var req colorPatchRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	col, err := h.catalog.UpdateColor(c.Request().Context(), c.Param("id"), ports.ColorPatch(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, col)
}

// @Summary      Delete a color
// @Tags         admin
// @Security     BearerAuth
// @Param        id  path  string  true  "Color id"
// @Success      204
// @Router       /v1/admin/colors/{id} [delete]
func (h *AdminHandler) DeleteColor(c echo.Context) error {
	if err := h.catalog.DeleteColor(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// --- Pricing tables ---

// @Summary      Create a pricing table
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      pricingTableRequest  true  "Pricing table"
// @Success      201   {object}  domain.PricingTable
// @Router       /v1/admin/pricing-tables [post]
func (h *AdminHandler) CreatePricingTable(c echo.Context) error {
	var req pricingTableRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	t, err := h.catalog.AddPricingTable(c.Request().Context(), ports.PricingTableInput{
		Name:        req.Name,
		Description: req.Description,
		Multiplier:  req.Multiplier,
		UserType:    domain.UserType(req.UserType),
		IsActive:    boolOr(req.IsActive, true),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, t)
}

// @Summary      Update a pricing table
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                    true  "Pricing table id"
// @Param        body  body      pricingTablePatchRequest  true  "Fields to change"
// @Success      200   {object}  domain.PricingTable
// @Router       /v1/admin/pricing-tables/{id} [put]
func (h *AdminHandler) UpdatePricingTable(c echo.Context) error {
	var req pricingTablePatchRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	patch := ports.PricingTablePatch{
		Name:        req.Name,
		Description: req.Description,
		Multiplier:  req.Multiplier,
		IsActive:    req.IsActive,
	}
	if req.UserType != nil {
		ut := domain.UserType(*req.UserType)
		patch.UserType = &ut
	}
	t, err := h.catalog.UpdatePricingTable(c.Request().Context(), c.Param("id"), patch)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, t)
}

// @Summary      Delete a pricing table
// @Tags         admin
// @Security     BearerAuth
// @Param        id  path  string  true  "Pricing table id"
// @Success      204
// @Router       /v1/admin/pricing-tables/{id} [delete]
func (h *AdminHandler) DeletePricingTable(c echo.Context) error {
	if err := h.catalog.DeletePricingTable(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// --- Promotions ---

// @Summary      Create a promotion
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      promotionRequest  true  "Promotion"
// @Success      201   {object}  domain.Promotion
// @Router       /v1/admin/promotions [post]
func (h *AdminHandler) CreatePromotion(c echo.Context) error {
	var req promotionRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	p, err := h.catalog.AddPromotion(c.Request().Context(), ports.PromotionInput{
		Title:              req.Title,
		Description:        req.Description,
		DiscountPercentage: req.DiscountPercentage,
		CategoryIDs:        req.CategoryIDs,
		UserTypes:          userTypes(req.UserTypes),
		StartDate:          req.StartDate,
		EndDate:            req.EndDate,
		IsActive:           boolOr(req.IsActive, true),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, p)
}

// @Summary      Update a promotion
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                 true  "Promotion id"
// @Param        body  body      promotionPatchRequest  true  "Fields to change"
// @Success      200   {object}  domain.Promotion
// @Router       /v1/admin/promotions/{id} [put]
func (h *AdminHandler) UpdatePromotion(c echo.Context) error {
	var req promotionPatchRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	p, err := h.catalog.UpdatePromotion(c.Request().Context(), c.Param("id"), ports.PromotionPatch{
		Title:              req.Title,
		Description:        req.Description,
		DiscountPercentage: req.DiscountPercentage,
		CategoryIDs:        req.CategoryIDs,
		UserTypes:          userTypesPtr(req.UserTypes),
		StartDate:          req.StartDate,
		EndDate:            req.EndDate,
		IsActive:           req.IsActive,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, p)
}

// @Summary      Delete a promotion
// @Tags         admin
// @Security     BearerAuth
// @Param        id  path  string  true  "Promotion id"
// @Success      204
// @Router       /v1/admin/promotions/{id} [delete]
func (h *AdminHandler) DeletePromotion(c echo.Context) error {
	if err := h.catalog.DeletePromotion(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// --- Announcements ---

// @Summary      Create an announcement
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      announcementRequest  true  "Announcement"
// @Success      201   {object}  domain.Announcement
// @Router       /v1/admin/announcements [post]
func (h *AdminHandler) CreateAnnouncement(c echo.Context) error {
	var req announcementRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	priority := domain.Priority(req.Priority)
	if priority == "" {
		priority = domain.PriorityMedium
	}
	a, err := h.catalog.AddAnnouncement(c.Request().Context(), ports.AnnouncementInput{
		Title:     req.Title,
		Content:   req.Content,
		UserTypes: userTypes(req.UserTypes),
		Priority:  priority,
		IsActive:  boolOr(req.IsActive, true),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, a)
}

// @Summary      Update an announcement
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                    true  "Announcement id"
// @Param        body  body      announcementPatchRequest  true  "Fields to change"
// @Success      200   {object}  domain.Announcement
// @Router       /v1/admin/announcements/{id} [put]
func (h *AdminHandler) UpdateAnnouncement(c echo.Context) error {
	var req announcementPatchRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	patch := ports.AnnouncementPatch{
		Title:     req.Title,
		Content:   req.Content,
		UserTypes: userTypesPtr(req.UserTypes),
		IsActive:  req.IsActive,
	}
	if req.Priority != nil {
		p := domain.Priority(*req.Priority)
		patch.Priority = &p
	}
	a, err := h.catalog.UpdateAnnouncement(c.Request().Context(), c.Param("id"), patch)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, a)
}

// @Summary      Delete an announcement
// @Tags         admin
// @Security     BearerAuth
// @Param        id  path  string  true  "Announcement id"
// @Success      204
// @Router       /v1/admin/announcements/{id} [delete]
func (h *AdminHandler) DeleteAnnouncement(c echo.Context) error {
	if err := h.catalog.DeleteAnnouncement(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// --- Synchronization ---

// Refresh reloads every collection from the storage tiers.
//
// @Summary      Reload collections
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  statusResponse
// @Router       /v1/admin/refresh [post]
func (h *AdminHandler) Refresh(c echo.Context) error {
	if err := h.catalog.Refresh(c.Request().Context()); err != nil {
		return err
	}
	return h.Status(c)
}

// Status reports where each collection was last loaded from.
//
// @Summary      Synchronization status
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  statusResponse
// @Router       /v1/admin/status [get]
func (h *AdminHandler) Status(c echo.Context) error {
	return c.JSON(http.StatusOK, statusResponse{
		RemoteConfigured: h.remote != nil && h.remote.Configured(),
		Collections:      h.catalog.Status(),
	})
}

// SetRemoteToken stores the remote access token and reloads the catalog.
//
// @Summary      Configure the remote token
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      remoteTokenRequest  true  "Token"
// @Success      200   {object}  statusResponse
// @Failure      400   {object}  map[string]string
// @Router       /v1/admin/remote [put]
func (h *AdminHandler) SetRemoteToken(c echo.Context) error {
	var req remoteTokenRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	if h.remote == nil {
		return fmt.Errorf("%w: remote settings unavailable", domain.ErrValidation)
	}
	if err := h.remote.SetToken(c.Request().Context(), req.Token); err != nil {
		return err
	}
	return h.Status(c)
}

// ClearRemoteToken forgets the remote token.
//
// @Summary      Remove the remote token
// @Tags         admin
// @Security     BearerAuth
// @Success      204
// @Router       /v1/admin/remote [delete]
func (h *AdminHandler) ClearRemoteToken(c echo.Context) error {
	if h.remote == nil {
		return fmt.Errorf("%w: remote settings unavailable", domain.ErrValidation)
	}
	if err := h.remote.ClearToken(c.Request().Context()); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// ExportProducts downloads the catalog as a spreadsheet.
//
// @Summary      Export products
// @Tags         admin
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security     BearerAuth
// @Success      200
// @Router       /v1/admin/products/export [get]
func (h *AdminHandler) ExportProducts(c echo.Context) error {
	var buf bytes.Buffer
	err := export.WriteProducts(&buf, export.Catalog{
		Products:      h.catalog.Products(ports.ProductFilter{Role: domain.UserTypeAdmin}),
		Categories:    h.catalog.Categories(),
		Colors:        h.catalog.Colors(),
		PricingTables: h.catalog.PricingTables(domain.UserTypeAdmin),
	})
	if err != nil {
		return err
	}

	name := fmt.Sprintf("produtos-%s.xlsx", time.Now().UTC().Format("20060102"))
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", name))
	return c.Blob(http.StatusOK, export.ContentType, buf.Bytes())
}
