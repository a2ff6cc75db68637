package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/N1k3YB/turistic-agency-sub002/internal/core/ports"
)

type FavoriteHandler struct {
	service ports.FavoriteService
}

func NewFavoriteHandler(service ports.FavoriteService) *FavoriteHandler {
	return &FavoriteHandler{service: service}
}

// Add handles POST /api/favorites.
//
// @Summary      Add a tour to favorites
// @Tags         favorites
// @Accept       json
// @Produce      json
// @Security     SessionCookie
// @Param        body  body      ports.AddFavoriteInput  true  "Tour"
// @Success      201   {object}  favoriteResponse
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /api/favorites [post]
func (h *FavoriteHandler) Add(c echo.Context) error {
	var in ports.AddFavoriteInput
	if err := bindBody(c, &in); err != nil {
		return err
	}
	fav, err := h.service.Add(c.Request().Context(), ctxSession(c), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toFavoriteResponse(fav))
}

// List handles GET /api/favorites.
//
// @Summary      Caller's favorites
// @Tags         favorites
// @Produce      json
// @Security     SessionCookie
// @Success      200  {array}  favoriteResponse
// @Router       /api/favorites [get]
func (h *FavoriteHandler) List(c echo.Context) error {
	favs, err := h.service.List(c.Request().Context(), ctxSession(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, mapSlice(favs, toFavoriteResponse))
}

// Remove handles DELETE /api/favorites/:id.
//
// @Summary      Remove a favorite
// @Tags         favorites
// @Security     SessionCookie
// @Param        id   path  string  true  "Favorite id"
// @Success      204
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/favorites/{id} [delete]
func (h *FavoriteHandler) Remove(c echo.Context) error {
	if err := h.service.Remove(c.Request().Context(), ctxSession(c), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
