package middleware

import (
	"net/http"
	"slices"

	"github.com/labstack/echo/v4"

	"github.com/furniture-store/storefront/internal/core/domain"
)

// RBAC admits the request when the authenticated user holds one of the
// given user types. It must run after JWTAuth.
func RBAC(userTypes ...domain.UserType) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user, ok := c.Get(KeyUser).(domain.User)
			if !ok || !slices.Contains(userTypes, user.Type) {
				return c.JSON(http.StatusForbidden, map[string]string{"error": domain.ErrForbidden.Error()})
			}
			return next(c)
		}
	}
}
