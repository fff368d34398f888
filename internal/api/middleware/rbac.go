package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/bugtracker-pro/bugtracker/internal/core/domain"
)

// RBAC enforces role-based access control on routes whose gate is purely
// role-driven (create, assign, delete). Ownership- and assignee-dependent
// gates live in the authorization policy consulted by the services.
func RBAC(allowedRoles ...domain.Role) echo.MiddlewareFunc {
	allowed := make(map[domain.Role]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, _ := c.Get("role").(string)
			if _, ok := allowed[domain.Role(role)]; !ok {
				return c.JSON(http.StatusForbidden, map[string]string{"error": "forbidden"})
			}
			return next(c)
		}
	}
}
