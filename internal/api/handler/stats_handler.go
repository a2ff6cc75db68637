package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/N1k3YB/turistic-agency-sub002/internal/core/ports"
)

type StatsHandler struct {
	service ports.StatsService
}

func NewStatsHandler(service ports.StatsService) *StatsHandler {
	return &StatsHandler{service: service}
}

// Overview handles GET /api/admin/stats.
//
// @Summary      Back-office overview
// @Tags         admin
// @Produce      json
// @Security     SessionCookie
// @Success      200  {object}  statsResponse
// @Failure      403  {object}  errorResponse
// @Router       /api/admin/stats [get]
func (h *StatsHandler) Overview(c echo.Context) error {
	st, err := h.service.Overview(c.Request().Context(), ctxSession(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toStatsResponse(st))
}
