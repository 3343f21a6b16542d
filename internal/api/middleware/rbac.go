package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/societyhub/apartment-system/internal/api/handler"
	"github.com/societyhub/apartment-system/internal/core/domain"
	"github.com/societyhub/apartment-system/internal/metrics"
)

// RBAC enforces role-based access control. Must run after Auth.
func RBAC(allowedRoles ...domain.Role) echo.MiddlewareFunc {
	allowed := make(map[domain.Role]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, _ := c.Get(handler.CtxRole).(domain.Role)
			if _, ok := allowed[role]; !ok {
				metrics.AuthorizationDeniedTotal.WithLabelValues("route:" + c.Path()).Inc()
				return echo.NewHTTPError(http.StatusForbidden, "forbidden")
			}
			return next(c)
		}
	}
}

// AdminGroup admits managers, owners and security staff.
func AdminGroup() echo.MiddlewareFunc {
	return RBAC(domain.RoleManager, domain.RoleOwner, domain.RoleSecurity)
}
