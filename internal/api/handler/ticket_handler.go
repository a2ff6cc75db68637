package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/N1k3YB/turistic-agency-sub002/internal/api/metrics"
	"github.com/N1k3YB/turistic-agency-sub002/internal/core/ports"
)

type TicketHandler struct {
	service ports.TicketService
}

func NewTicketHandler(service ports.TicketService) *TicketHandler {
	return &TicketHandler{service: service}
}

// Create handles POST /api/tickets.
//
// @Summary      Open a support ticket
// @Tags         tickets
// @Accept       json
// @Produce      json
// @Security     SessionCookie
// @Param        body  body      ports.CreateTicketInput  true  "Ticket"
// @Success      201   {object}  ticketResponse
// @Failure      400   {object}  errorResponse
// @Router       /api/tickets [post]
func (h *TicketHandler) Create(c echo.Context) error {
	var in ports.CreateTicketInput
	if err := bindBody(c, &in); err != nil {
		return err
	}
	ticket, err := h.service.Create(c.Request().Context(), ctxSession(c), in)
	if err != nil {
		return err
	}
	metrics.TicketsOpenedTotal.Inc()
	return c.JSON(http.StatusCreated, toTicketResponse(ticket))
}

// Get handles GET /api/tickets/:id.
//
// @Summary      Get a ticket with its thread
// @Tags         tickets
// @Produce      json
// @Security     SessionCookie
// @Param        id   path      string  true  "Ticket id"
// @Success      200  {object}  ticketResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/tickets/{id} [get]
func (h *TicketHandler) Get(c echo.Context) error {
	ticket, err := h.service.Get(c.Request().Context(), ctxSession(c), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toTicketResponse(ticket))
}

// ListOwn handles GET /api/tickets.
//
// @Summary      Caller's tickets
// @Tags         tickets
// @Produce      json
// @Security     SessionCookie
// @Param        status  query     string  false  "Ticket status"
// @Param        page    query     int     false  "Page number"
// @Param        limit   query     int     false  "Page size"
// @Success      200     {object}  pageResponse[ticketResponse]
// @Router       /api/tickets [get]
func (h *TicketHandler) ListOwn(c echo.Context) error {
	var in ports.ListTicketsInput
	if err := bindQuery(c, &in); err != nil {
		return err
	}
	page, err := h.service.ListOwn(c.Request().Context(), ctxSession(c), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toPageResponse(page, toTicketResponse))
}

// ListAll handles GET /api/admin/tickets.
//
// @Summary      All tickets
// @Tags         admin
// @Produce      json
// @Security     SessionCookie
// @Param        status  query     string  false  "Ticket status"
// @Param        page    query     int     false  "Page number"
// @Param        limit   query     int     false  "Page size"
// @Success      200     {object}  pageResponse[ticketResponse]
// @Failure      403     {object}  errorResponse
// @Router       /api/admin/tickets [get]
func (h *TicketHandler) ListAll(c echo.Context) error {
	var in ports.ListTicketsInput
	if err := bindQuery(c, &in); err != nil {
		return err
	}
	page, err := h.service.ListAll(c.Request().Context(), ctxSession(c), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toPageResponse(page, toTicketResponse))
}

// Respond handles POST /api/tickets/:id/responses. Staff answers move an
// OPEN ticket to IN_PROGRESS.
//
// @Summary      Add a response to a ticket
// @Tags         tickets
// @Accept       json
// @Produce      json
// @Security     SessionCookie
// @Param        id    path      string                     true  "Ticket id"
// @Param        body  body      ports.TicketResponseInput  true  "Message"
// @Success      201   {object}  ticketResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/tickets/{id}/responses [post]
func (h *TicketHandler) Respond(c echo.Context) error {
	var in ports.TicketResponseInput
	if err := bindBody(c, &in); err != nil {
		return err
	}
	sess := ctxSession(c)
	ticket, err := h.service.Respond(c.Request().Context(), sess, c.Param("id"), in)
	if err != nil {
		return err
	}

	from := "owner"
	if sess.IsStaff() {
		from = "staff"
	}
	metrics.TicketResponsesTotal.WithLabelValues(from).Inc()
	return c.JSON(http.StatusCreated, toTicketResponse(ticket))
}

// UpdateStatus handles PATCH /api/admin/tickets/:id/status.
//
// @Summary      Change a ticket's status
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     SessionCookie
// @Param        id    path      string                         true  "Ticket id"
// @Param        body  body      ports.UpdateTicketStatusInput  true  "New status"
// @Success      200   {object}  ticketResponse
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/admin/tickets/{id}/status [patch]
func (h *TicketHandler) UpdateStatus(c echo.Context) error {
	var in ports.UpdateTicketStatusInput
	if err := bindBody(c, &in); err != nil {
		return err
	}
	ticket, err := h.service.UpdateStatus(c.Request().Context(), ctxSession(c), c.Param("id"), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toTicketResponse(ticket))
}
