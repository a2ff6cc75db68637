package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/N1k3YB/turistic-agency-sub002/internal/api/metrics"
	"github.com/N1k3YB/turistic-agency-sub002/internal/core/domain"
	"github.com/N1k3YB/turistic-agency-sub002/internal/core/ports"
)

type ReviewHandler struct {
	service ports.ReviewService
}

func NewReviewHandler(service ports.ReviewService) *ReviewHandler {
	return &ReviewHandler{service: service}
}

// ListForTour handles GET /api/tours/:slug/reviews.
//
// @Summary      Approved reviews of a tour
// @Description  Signed-in authors also see their own pending review.
// @Tags         reviews
// @Produce      json
// @Param        slug  path      string  true  "Tour slug"
// @Success      200   {array}   reviewResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/tours/{slug}/reviews [get]
func (h *ReviewHandler) ListForTour(c echo.Context) error {
	reviews, err := h.service.ListForTour(c.Request().Context(), ctxSession(c), c.Param("slug"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, mapSlice(reviews, toReviewResponse))
}

// Create handles POST /api/tours/:slug/reviews.
//
// @Summary      Submit a review
// @Tags         reviews
// @Accept       json
// @Produce      json
// @Security     SessionCookie
// @Param        slug  path      string                   true  "Tour slug"
// @Param        body  body      ports.CreateReviewInput  true  "Review"
// @Success      201   {object}  reviewResponse
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /api/tours/{slug}/reviews [post]
func (h *ReviewHandler) Create(c echo.Context) error {
	var in ports.CreateReviewInput
	if err := bindBody(c, &in); err != nil {
		return err
	}
	review, err := h.service.Create(c.Request().Context(), ctxSession(c), c.Param("slug"), in)
	if err != nil {
		return err
	}
	metrics.ReviewsSubmittedTotal.Inc()
	return c.JSON(http.StatusCreated, toReviewResponse(review))
}

// ListOwn handles GET /api/me/reviews.
//
// @Summary      Caller's reviews
// @Tags         reviews
// @Produce      json
// @Security     SessionCookie
// @Param        page   query     int  false  "Page number"
// @Param        limit  query     int  false  "Page size"
// @Success      200    {object}  pageResponse[reviewResponse]
// @Router       /api/me/reviews [get]
func (h *ReviewHandler) ListOwn(c echo.Context) error {
	var in ports.PageQuery
	if err := bindQuery(c, &in); err != nil {
		return err
	}
	page, err := h.service.ListOwn(c.Request().Context(), ctxSession(c), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toPageResponse(page, toReviewResponse))
}

// ListAll handles GET /api/admin/reviews.
//
// @Summary      All reviews for moderation
// @Tags         admin
// @Produce      json
// @Security     SessionCookie
// @Param        approved  query     bool  false  "Filter by moderation state"
// @Param        page      query     int   false  "Page number"
// @Param        limit     query     int   false  "Page size"
// @Success      200       {object}  pageResponse[reviewResponse]
// @Failure      403       {object}  errorResponse
// @Router       /api/admin/reviews [get]
func (h *ReviewHandler) ListAll(c echo.Context) error {
	var in ports.ListReviewsInput
	if err := bindQuery(c, &in); err != nil {
		return err
	}
	if raw := c.QueryParam("approved"); raw != "" {
		approved, err := strconv.ParseBool(raw)
		if err != nil {
			return domain.NewError(domain.ErrInvalidInput, "approved must be true or false")
		}
		in.Approved = &approved
	}

	page, err := h.service.ListAll(c.Request().Context(), ctxSession(c), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toPageResponse(page, toReviewResponse))
}

// Moderate handles PATCH /api/admin/reviews/:id.
//
// @Summary      Approve or hide a review
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     SessionCookie
// @Param        id    path      string                     true  "Review id"
// @Param        body  body      ports.ModerateReviewInput  true  "Moderation decision"
// @Success      200   {object}  reviewResponse
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/admin/reviews/{id} [patch]
func (h *ReviewHandler) Moderate(c echo.Context) error {
	var in ports.ModerateReviewInput
	if err := bindBody(c, &in); err != nil {
		return err
	}
	review, err := h.service.Moderate(c.Request().Context(), ctxSession(c), c.Param("id"), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toReviewResponse(review))
}

// Delete handles DELETE /api/admin/reviews/:id.
//
// @Summary      Delete a review
// @Tags         admin
// @Security     SessionCookie
// @Param        id   path  string  true  "Review id"
// @Success      204
// @Failure      404  {object}  errorResponse
// @Router       /api/admin/reviews/{id} [delete]
func (h *ReviewHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), ctxSession(c), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
