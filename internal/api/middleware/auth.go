package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/furniture-store/storefront/internal/core/domain"
)

// Context keys set by Auth.
const (
	KeySession = "session"
	KeyUser    = "user"
	KeyRole    = "role"
)

// SessionLookup resolves the session a token was issued for.
type SessionLookup interface {
	CurrentSession(ctx context.Context, sessionID string) (*domain.Session, error)
}

// Auth validates the JWT, loads its session and injects the session, user
// and role into the context. Tokens whose session was ended are rejected.
func Auth(jwtSecret string, sessions SessionLookup) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			claims := jwt.MapClaims{}
			tkn, err := jwt.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (interface{}, error) {
				if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
					return nil, jwt.ErrTokenSignatureInvalid
				}
				return []byte(jwtSecret), nil
			})
			if err != nil || !tkn.Valid {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			sid, _ := claims["sid"].(string)
			if sid == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "token missing session")
			}
			session, err := sessions.CurrentSession(c.Request().Context(), sid)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "session expired")
			}

			c.Set(KeySession, session)
			c.Set(KeyUser, session.User)
			c.Set(KeyRole, string(session.User.Type))

			return next(c)
		}
	}
}
