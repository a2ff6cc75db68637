package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/N1k3YB/turistic-agency-sub002/internal/core/ports"
)

type UserHandler struct {
	service ports.UserService
}

func NewUserHandler(service ports.UserService) *UserHandler {
	return &UserHandler{service: service}
}

// Profile handles GET /api/me.
//
// @Summary      Current user's profile
// @Tags         profile
// @Produce      json
// @Security     SessionCookie
// @Success      200  {object}  userResponse
// @Failure      401  {object}  errorResponse
// @Router       /api/me [get]
func (h *UserHandler) Profile(c echo.Context) error {
	user, err := h.service.Profile(c.Request().Context(), ctxSession(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserResponse(user))
}

// UpdateProfile handles PATCH /api/me.
//
// @Summary      Update name, email or password
// @Tags         profile
// @Accept       json
// @Produce      json
// @Security     SessionCookie
// @Param        body  body      ports.UpdateProfileInput  true  "Fields to change"
// @Success      200   {object}  userResponse
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /api/me [patch]
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	var in ports.UpdateProfileInput
	if err := bindBody(c, &in); err != nil {
		return err
	}
	user, err := h.service.UpdateProfile(c.Request().Context(), ctxSession(c), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserResponse(user))
}

// List handles GET /api/admin/users.
//
// @Summary      List users
// @Tags         admin
// @Produce      json
// @Security     SessionCookie
// @Param        role    query     string  false  "USER, MANAGER or ADMIN"
// @Param        search  query     string  false  "Email or name fragment"
// @Param        page    query     int     false  "Page number"
// @Param        limit   query     int     false  "Page size"
// @Success      200     {object}  pageResponse[userResponse]
// @Failure      403     {object}  errorResponse
// @Router       /api/admin/users [get]
func (h *UserHandler) List(c echo.Context) error {
	var in ports.ListUsersInput
	if err := bindQuery(c, &in); err != nil {
		return err
	}
	page, err := h.service.List(c.Request().Context(), ctxSession(c), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toPageResponse(page, toUserResponse))
}

// UpdateRole handles PATCH /api/admin/users/:id/role.
//
// @Summary      Change a user's role
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     SessionCookie
// @Param        id    path      string                 true  "User id"
// @Param        body  body      ports.UpdateRoleInput  true  "New role"
// @Success      200   {object}  userResponse
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/admin/users/{id}/role [patch]
func (h *UserHandler) UpdateRole(c echo.Context) error {
	var in ports.UpdateRoleInput
	if err := bindBody(c, &in); err != nil {
		return err
	}
	user, err := h.service.UpdateRole(c.Request().Context(), ctxSession(c), c.Param("id"), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserResponse(user))
}

// Delete handles DELETE /api/admin/users/:id.
//
// @Summary      Delete a user
// @Tags         admin
// @Security     SessionCookie
// @Param        id   path  string  true  "User id"
// @Success      204
// @Failure      400  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/admin/users/{id} [delete]
func (h *UserHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), ctxSession(c), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
