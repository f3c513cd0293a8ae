package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/furniture-store/storefront/internal/api/middleware"
	"github.com/furniture-store/storefront/internal/core/domain"
)

// ctxUser returns the user the Auth middleware resolved from the session.
func ctxUser(c echo.Context) (domain.User, error) {
	user, ok := c.Get(middleware.KeyUser).(domain.User)
	if !ok || user.ID == "" {
		return domain.User{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication")
	}
	return user, nil
}

func ctxSession(c echo.Context) (*domain.Session, error) {
	session, ok := c.Get(middleware.KeySession).(*domain.Session)
	if !ok || session == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication")
	}
	return session, nil
}

// bindAndValidate decodes the body into req and runs the struct validator.
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}
