package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// ctxOperator returns the username and role injected by the Auth middleware.
// An empty role means the middleware did not run for this route.
func ctxOperator(c echo.Context) (username, role string, err error) {
	role, _ = c.Get("role").(string)
	if role == "" {
		return "", "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	username, _ = c.Get("username").(string)
	return username, role, nil
}
