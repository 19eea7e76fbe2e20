package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/AjayKumar-j-s/Cloth-Management/internal/core/domain"
)

// RBAC lets the request through only when the role set by Auth is allowed.
func RBAC(allowedRoles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, _ := c.Get("role").(string)
			if _, ok := allowed[role]; !ok {
				return c.JSON(http.StatusForbidden, map[string]string{"error": "forbidden"})
			}
			return next(c)
		}
	}
}

// AdminOnly guards mutating routes.
func AdminOnly() echo.MiddlewareFunc {
	return RBAC(domain.RoleAdmin)
}

// AnyOperator guards read-only routes.
func AnyOperator() echo.MiddlewareFunc {
	return RBAC(domain.RoleAdmin, domain.RoleViewer)
}
