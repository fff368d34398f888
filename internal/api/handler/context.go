package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/bugtracker-pro/bugtracker/internal/core/domain"
	"github.com/bugtracker-pro/bugtracker/internal/core/ports"
)

// ctxActor extracts the identity injected by the Auth middleware and
// performs a fast-fail check before any service call: a positive user id
// and a non-empty role prove the middleware ran and the claims were
// complete.
func ctxActor(c echo.Context) (ports.Actor, error) {
	id, _ := c.Get("user_id").(uint)
	role, _ := c.Get("role").(string)
	if id == 0 || role == "" {
		return ports.Actor{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}

	username, _ := c.Get("username").(string)
	return ports.Actor{ID: id, Username: username, Role: domain.Role(role)}, nil
}
