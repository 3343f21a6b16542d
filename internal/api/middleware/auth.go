package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/societyhub/apartment-system/internal/api/handler"
	"github.com/societyhub/apartment-system/internal/core/domain"
	"github.com/societyhub/apartment-system/internal/core/ports"
)

// Auth resolves the session token from the sid cookie or an Authorization
// bearer header and injects the session into the context.
func Auth(authn ports.Authenticator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, err := sessionToken(c)
			if err != nil {
				return err
			}

			session, err := authn.Authenticate(c.Request().Context(), token)
			if err != nil {
				if errors.Is(err, domain.ErrUnauthenticated) {
					return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired session")
				}
				return err
			}

			c.Set(handler.CtxUserID, session.UserID)
			c.Set(handler.CtxUsername, session.Username)
			c.Set(handler.CtxRole, session.Role)
			c.Set(handler.CtxSessionID, session.ID)

			return next(c)
		}
	}
}

func sessionToken(c echo.Context) (string, error) {
	if ck, err := c.Cookie(handler.SessionCookie); err == nil && ck.Value != "" {
		return ck.Value, nil
	}

	authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
	if authHeader == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || parts[1] == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
	}
	return parts[1], nil
}
