package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/furniture-store/storefront/internal/core/ports"
)

const HeaderIdempotencyKey = "Idempotency-Key"

// CartHandler serves a buyer's cart and checkout.
type CartHandler struct {
	carts    ports.CartService
	checkout ports.CheckoutService
}

func NewCartHandler(carts ports.CartService, checkout ports.CheckoutService) *CartHandler {
	return &CartHandler{carts: carts, checkout: checkout}
}

// Get handles GET /v1/cart.
//
// @Summary      Current cart
// @Tags         cart
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  cartResponse
// @Router       /v1/cart [get]
func (h *CartHandler) Get(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toCartResponse(h.carts.Cart(c.Request().Context(), user)))
}

// AddItem prices a product under a pricing table and adds it to the cart.
//
// @Summary      Add to cart
// @Tags         cart
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      addCartItemRequest  true  "Item"
// @Success      200   {object}  cartResponse
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /v1/cart/items [post]
func (h *CartHandler) AddItem(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}
	var req addCartItemRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	cart, err := h.carts.Add(c.Request().Context(), user, ports.AddToCartInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toCartResponse(cart))
}

// SetQuantity replaces a line's quantity; zero or less removes the line.
//
// @Summary      Change quantity
// @Tags         cart
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string              true  "Cart item id"
// @Param        body  body      setQuantityRequest  true  "Quantity"
// @Success      200   {object}  cartResponse
// @Failure      404   {object}  map[string]string
// @Router       /v1/cart/items/{id} [put]
func (h *CartHandler) SetQuantity(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}
	var req setQuantityRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	cart, err := h.carts.SetQuantity(c.Request().Context(), user, c.Param("id"), req.Quantity)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toCartResponse(cart))
}

// @Summary      Remove a cart line
// @Tags         cart
// @Produce      json
// @Security     BearerAuth
// @Param        id  path      string  true  "Cart item id"
// @Success      200 {object}  cartResponse
// @Router       /v1/cart/items/{id} [delete]
func (h *CartHandler) RemoveItem(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}
	cart, err := h.carts.Remove(c.Request().Context(), user, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toCartResponse(cart))
}

// @Summary      Empty the cart
// @Tags         cart
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  cartResponse
// @Router       /v1/cart [delete]
func (h *CartHandler) Clear(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toCartResponse(h.carts.Clear(c.Request().Context(), user)))
}

// Checkout records the cart as an order and returns the messaging link.
// Repeating a request with the same Idempotency-Key returns the first order.
//
// @Summary      Checkout
// @Tags         cart
// @Produce      json
// @Security     BearerAuth
// @Param        Idempotency-Key  header    string  false  "Client supplied key"
// @Success      201              {object}  checkoutResponse
// @Success      200              {object}  checkoutResponse
// @Failure      409              {object}  map[string]string
// @Failure      422              {object}  map[string]string
// @Router       /v1/checkout [post]
func (h *CartHandler) Checkout(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	res, err := h.checkout.Checkout(c.Request().Context(), user, c.Request().Header.Get(HeaderIdempotencyKey))
	if err != nil {
		return err
	}

	return c.JSON(checkoutStatus(res), toCheckoutResponse(res))
}

// DirectCheckout orders one product without touching the cart.
//
// @Summary      Direct order
// @Tags         cart
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        Idempotency-Key  header    string              false  "Client supplied key"
// @Param        body             body      addCartItemRequest  true   "Item"
// @Success      201              {object}  checkoutResponse
// @Success      200              {object}  checkoutResponse
// @Failure      400              {object}  map[string]string
// @Failure      403              {object}  map[string]string
// @Failure      404              {object}  map[string]string
// @Router       /v1/checkout/direct [post]
func (h *CartHandler) DirectCheckout(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}
	var req addCartItemRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	res, err := h.checkout.Direct(c.Request().Context(), user, ports.AddToCartInput(req), c.Request().Header.Get(HeaderIdempotencyKey))
	if err != nil {
		return err
	}
	return c.JSON(checkoutStatus(res), toCheckoutResponse(res))
}
