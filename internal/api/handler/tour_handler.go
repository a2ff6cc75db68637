package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/N1k3YB/turistic-agency-sub002/internal/core/ports"
)

type TourHandler struct {
	service ports.TourService
}

func NewTourHandler(service ports.TourService) *TourHandler {
	return &TourHandler{service: service}
}

// List handles GET /api/tours.
//
// @Summary      List tours
// @Tags         tours
// @Produce      json
// @Param        destination  query     string  false  "Destination slug"
// @Param        search       query     string  false  "Name or description fragment"
// @Param        popular      query     bool    false  "Rank by completed orders"
// @Param        page         query     int     false  "Page number"
// @Param        limit        query     int     false  "Page size"
// @Success      200          {object}  pageResponse[tourSummaryResponse]
// @Failure      400          {object}  errorResponse
// @Failure      404          {object}  errorResponse
// @Router       /api/tours [get]
func (h *TourHandler) List(c echo.Context) error {
	var in ports.ListToursInput
	if err := bindQuery(c, &in); err != nil {
		return err
	}
	page, err := h.service.List(c.Request().Context(), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toPageResponse(page, toTourSummaryResponse))
}

// Get handles GET /api/tours/:slug.
//
// @Summary      Tour with destination and rating
// @Tags         tours
// @Produce      json
// @Param        slug  path      string  true  "Tour slug"
// @Success      200   {object}  tourDetailResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/tours/{slug} [get]
func (h *TourHandler) Get(c echo.Context) error {
	detail, err := h.service.Get(c.Request().Context(), c.Param("slug"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, tourDetailResponse{
		tourResponse: toTourResponse(detail.Tour),
		Destination:  toDestinationResponse(detail.Destination),
		Rating:       ratingResponse{Average: detail.Rating.Average, Count: detail.Rating.Count},
	})
}

// Create handles POST /api/tours.
//
// @Summary      Create a tour
// @Tags         tours
// @Accept       json
// @Produce      json
// @Security     SessionCookie
// @Param        body  body      ports.TourInput  true  "Tour"
// @Success      201   {object}  tourResponse
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /api/tours [post]
func (h *TourHandler) Create(c echo.Context) error {
	var in ports.TourInput
	if err := bindBody(c, &in); err != nil {
		return err
	}
	tour, err := h.service.Create(c.Request().Context(), ctxSession(c), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toTourResponse(tour))
}

// Update handles PUT /api/tours/:id.
//
// @Summary      Update a tour
// @Tags         tours
// @Accept       json
// @Produce      json
// @Security     SessionCookie
// @Param        id    path      string           true  "Tour id"
// @Param        body  body      ports.TourInput  true  "Tour"
// @Success      200   {object}  tourResponse
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /api/tours/{id} [put]
func (h *TourHandler) Update(c echo.Context) error {
	var in ports.TourInput
	if err := bindBody(c, &in); err != nil {
		return err
	}
	tour, err := h.service.Update(c.Request().Context(), ctxSession(c), c.Param("id"), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toTourResponse(tour))
}

// Delete handles DELETE /api/tours/:id.
//
// @Summary      Delete a tour with its reviews and favorites
// @Tags         tours
// @Security     SessionCookie
// @Param        id   path  string  true  "Tour id"
// @Success      204
// @Failure      404  {object}  errorResponse
// @Router       /api/tours/{id} [delete]
func (h *TourHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), ctxSession(c), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
