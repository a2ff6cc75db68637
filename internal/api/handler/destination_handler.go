package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/N1k3YB/turistic-agency-sub002/internal/core/ports"
)

type DestinationHandler struct {
	service ports.DestinationService
}

func NewDestinationHandler(service ports.DestinationService) *DestinationHandler {
	return &DestinationHandler{service: service}
}

// List handles GET /api/destinations.
//
// @Summary      List destinations
// @Tags         destinations
// @Produce      json
// @Param        popular  query     bool  false  "Rank by completed orders"
// @Param        limit    query     int   false  "Maximum number of destinations"
// @Success      200      {array}   destinationSummaryResponse
// @Failure      400      {object}  errorResponse
// @Router       /api/destinations [get]
func (h *DestinationHandler) List(c echo.Context) error {
	var in ports.ListDestinationsInput
	if err := bindQuery(c, &in); err != nil {
		return err
	}
	items, err := h.service.List(c.Request().Context(), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, mapSlice(items, toDestinationSummaryResponse))
}

// Get handles GET /api/destinations/:slug.
//
// @Summary      Destination with its tours
// @Tags         destinations
// @Produce      json
// @Param        slug  path      string  true  "Destination slug"
// @Success      200   {object}  destinationDetailResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/destinations/{slug} [get]
func (h *DestinationHandler) Get(c echo.Context) error {
	detail, err := h.service.Get(c.Request().Context(), c.Param("slug"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, destinationDetailResponse{
		destinationResponse: toDestinationResponse(detail.Destination),
		Tours:               mapSlice(detail.Tours, toTourResponse),
	})
}

// Create handles POST /api/destinations.
//
// @Summary      Create a destination
// @Tags         destinations
// @Accept       json
// @Produce      json
// @Security     SessionCookie
// @Param        body  body      ports.DestinationInput  true  "Destination"
// @Success      201   {object}  destinationResponse
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /api/destinations [post]
func (h *DestinationHandler) Create(c echo.Context) error {
	var in ports.DestinationInput
	if err := bindBody(c, &in); err != nil {
		return err
	}
	dest, err := h.service.Create(c.Request().Context(), ctxSession(c), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toDestinationResponse(dest))
}

// Update handles PUT /api/destinations/:id.
//
// @Summary      Update a destination
// @Tags         destinations
// @Accept       json
// @Produce      json
// @Security     SessionCookie
// @Param        id    path      string                  true  "Destination id"
// @Param        body  body      ports.DestinationInput  true  "Destination"
// @Success      200   {object}  destinationResponse
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /api/destinations/{id} [put]
func (h *DestinationHandler) Update(c echo.Context) error {
	var in ports.DestinationInput
	if err := bindBody(c, &in); err != nil {
		return err
	}
	dest, err := h.service.Update(c.Request().Context(), ctxSession(c), c.Param("id"), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toDestinationResponse(dest))
}

// Delete handles DELETE /api/destinations/:id. Destinations with tours are
// refused with the tour count in the error details.
//
// @Summary      Delete an empty destination
// @Tags         destinations
// @Security     SessionCookie
// @Param        id   path  string  true  "Destination id"
// @Success      204
// @Failure      400  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/destinations/{id} [delete]
func (h *DestinationHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), ctxSession(c), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// DeleteCascade handles DELETE /api/admin/destinations/:id.
//
// @Summary      Delete a destination with its tours, reviews and favorites
// @Tags         admin
// @Security     SessionCookie
// @Param        id   path  string  true  "Destination id"
// @Success      204
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/admin/destinations/{id} [delete]
func (h *DestinationHandler) DeleteCascade(c echo.Context) error {
	if err := h.service.DeleteCascade(c.Request().Context(), ctxSession(c), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
