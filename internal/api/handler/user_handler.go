package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/bugtracker-pro/bugtracker/internal/core/ports"
)

// UserHandler serves the user listings used by assignment pickers.
type UserHandler struct {
	authService ports.AuthService
}

func NewUserHandler(authService ports.AuthService) *UserHandler {
	return &UserHandler{authService: authService}
}

// List returns all users.
//
// @Summary      List users
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  domain.User
// @Router       /users [get]
func (h *UserHandler) List(c echo.Context) error {
	users, err := h.authService.ListUsers(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, users)
}

// ListDevelopers returns all users with role developer.
//
// @Summary      List developers
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  domain.User
// @Router       /developers [get]
func (h *UserHandler) ListDevelopers(c echo.Context) error {
	developers, err := h.authService.ListDevelopers(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, developers)
}
