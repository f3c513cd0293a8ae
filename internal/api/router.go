package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/furniture-store/storefront/docs"
	"github.com/furniture-store/storefront/internal/api/handler"
	"github.com/furniture-store/storefront/internal/api/middleware"
	"github.com/furniture-store/storefront/internal/core/domain"
	"github.com/furniture-store/storefront/internal/core/ports"
)

// Deps are the services the HTTP layer is built on.
type Deps struct {
	Auth      ports.AuthService
	Catalog   ports.CatalogService
	Carts     ports.CartService
	Checkout  ports.CheckoutService
	Dashboard ports.DashboardService
	Remote    handler.RemoteSettings
	Tiers     handler.TierPinger
	JWTSecret string
	Logger    zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(middleware.RequestLogger(d.Logger))
	e.Use(echoprometheus.NewMiddleware("storefront"))

	authHandler := handler.NewAuthHandler(d.Auth)
	catalogHandler := handler.NewCatalogHandler(d.Catalog)
	adminHandler := handler.NewAdminHandler(d.Catalog, d.Remote)
	cartHandler := handler.NewCartHandler(d.Carts, d.Checkout)
	dashboardHandler := handler.NewDashboardHandler(d.Dashboard)
	authMW := middleware.Auth(d.JWTSecret, d.Auth)

	// --- Probes, metrics, docs (no auth required) ---
	e.GET("/health", handler.NewHealthHandler().Liveness)
	e.GET("/health/ready", handler.NewReadinessHandler(d.Tiers).Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// --- Auth ---
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/logout", authHandler.Logout, authMW)

	v1 := e.Group("/v1", authMW)
	v1.GET("/me", authHandler.Me)
	v1.GET("/dashboard", dashboardHandler.Get)

	// --- Catalog reads, every role ---
	v1.GET("/products", catalogHandler.Products)
	v1.GET("/products/:id", catalogHandler.Product)
	v1.GET("/categories", catalogHandler.Categories)
	v1.GET("/colors", catalogHandler.Colors)
	v1.GET("/pricing-tables", catalogHandler.PricingTables)
	v1.GET("/promotions", catalogHandler.Promotions)
	v1.GET("/announcements", catalogHandler.Announcements)

	// --- Cart & checkout, buyers only ---
	buyerOnly := middleware.RBAC(domain.UserTypeStore, domain.UserTypeRestaurant)
	v1.GET("/cart", cartHandler.Get, buyerOnly)
	v1.DELETE("/cart", cartHandler.Clear, buyerOnly)
	v1.POST("/cart/items", cartHandler.AddItem, buyerOnly)
	v1.PUT("/cart/items/:id", cartHandler.SetQuantity, buyerOnly)
	v1.DELETE("/cart/items/:id", cartHandler.RemoveItem, buyerOnly)
	v1.POST("/checkout", cartHandler.Checkout, buyerOnly)
	v1.POST("/checkout/direct", cartHandler.DirectCheckout, buyerOnly)

	// --- Administration ---
	admin := v1.Group("/admin", middleware.RBAC(domain.UserTypeAdmin))
	admin.POST("/users", authHandler.CreateUser)
	admin.GET("/status", adminHandler.Status)
	admin.POST("/refresh", adminHandler.Refresh)
	admin.PUT("/remote", adminHandler.SetRemoteToken)
	admin.DELETE("/remote", adminHandler.ClearRemoteToken)
	admin.GET("/products/export", adminHandler.ExportProducts)

	admin.POST("/products", adminHandler.CreateProduct)
	admin.PUT("/products/:id", adminHandler.UpdateProduct)
	admin.DELETE("/products/:id", adminHandler.DeleteProduct)
	admin.POST("/categories", adminHandler.CreateCategory)
	admin.PUT("/categories/:id", adminHandler.UpdateCategory)
	admin.DELETE("/categories/:id", adminHandler.DeleteCategory)
	admin.POST("/colors", adminHandler.CreateColor)
	admin.PUT("/colors/:id", adminHandler.UpdateColor)
	admin.DELETE("/colors/:id", adminHandler.DeleteColor)
	admin.POST("/pricing-tables", adminHandler.CreatePricingTable)
	admin.PUT("/pricing-tables/:id", adminHandler.UpdatePricingTable)
	admin.DELETE("/pricing-tables/:id", adminHandler.DeletePricingTable)
	admin.POST("/promotions", adminHandler.CreatePromotion)
	admin.PUT("/promotions/:id", adminHandler.UpdatePromotion)
	admin.DELETE("/promotions/:id", adminHandler.DeletePromotion)
	admin.POST("/announcements", adminHandler.CreateAnnouncement)
	admin.PUT("/announcements/:id", adminHandler.UpdateAnnouncement)
	admin.DELETE("/announcements/:id", adminHandler.DeleteAnnouncement)

	return e
}
