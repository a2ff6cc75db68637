package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/N1k3YB/turistic-agency-sub002/internal/api/metrics"
	"github.com/N1k3YB/turistic-agency-sub002/internal/core/ports"
)

type OrderHandler struct {
	service ports.OrderService
}

func NewOrderHandler(service ports.OrderService) *OrderHandler {
	return &OrderHandler{service: service}
}

// Create handles POST /api/orders.
//
// @Summary      Place an order
// @Tags         orders
// @Accept       json
// @Produce      json
// @Security     SessionCookie
// @Param        body  body      ports.CreateOrderInput  true  "Order"
// @Success      201   {object}  orderResponse
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/orders [post]
func (h *OrderHandler) Create(c echo.Context) error {
	var in ports.CreateOrderInput
	if err := bindBody(c, &in); err != nil {
		return err
	}
	order, err := h.service.Create(c.Request().Context(), ctxSession(c), in)
	if err != nil {
		return err
	}
	metrics.OrdersCreatedTotal.Inc()
	return c.JSON(http.StatusCreated, toOrderResponse(order))
}

// Get handles GET /api/orders/:id.
//
// @Summary      Get an order
// @Tags         orders
// @Produce      json
// @Security     SessionCookie
// @Param        id   path      string  true  "Order id"
// @Success      200  {object}  orderResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/orders/{id} [get]
func (h *OrderHandler) Get(c echo.Context) error {
	order, err := h.service.Get(c.Request().Context(), ctxSession(c), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toOrderResponse(order))
}

// ListOwn handles GET /api/orders.
//
// @Summary      Caller's orders
// @Tags         orders
// @Produce      json
// @Security     SessionCookie
// @Param        status  query     string  false  "Order status"
// @Param        page    query     int     false  "Page number"
// @Param        limit   query     int     false  "Page size"
// @Success      200     {object}  pageResponse[orderResponse]
// @Router       /api/orders [get]
func (h *OrderHandler) ListOwn(c echo.Context) error {
	var in ports.ListOrdersInput
	if err := bindQuery(c, &in); err != nil {
		return err
	}
	page, err := h.service.ListOwn(c.Request().Context(), ctxSession(c), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toPageResponse(page, toOrderResponse))
}

// ListAll handles GET /api/admin/orders.
//
// @Summary      All orders
// @Tags         admin
// @Produce      json
// @Security     SessionCookie
// @Param        status  query     string  false  "Order status"
// @Param        page    query     int     false  "Page number"
// @Param        limit   query     int     false  "Page size"
// @Success      200     {object}  pageResponse[orderResponse]
// @Failure      403     {object}  errorResponse
// @Router       /api/admin/orders [get]
func (h *OrderHandler) ListAll(c echo.Context) error {
	var in ports.ListOrdersInput
	if err := bindQuery(c, &in); err != nil {
		return err
	}
	page, err := h.service.ListAll(c.Request().Context(), ctxSession(c), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toPageResponse(page, toOrderResponse))
}

// UpdateStatus handles PATCH /api/admin/orders/:id/status.
//
// @Summary      Change an order's status
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     SessionCookie
// @Param        id    path      string                        true  "Order id"
// @Param        body  body      ports.UpdateOrderStatusInput  true  "New status"
// @Success      200   {object}  orderResponse
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/admin/orders/{id}/status [patch]
func (h *OrderHandler) UpdateStatus(c echo.Context) error {
	var in ports.UpdateOrderStatusInput
	if err := bindBody(c, &in); err != nil {
		return err
	}
	order, err := h.service.UpdateStatus(c.Request().Context(), ctxSession(c), c.Param("id"), in)
	if err != nil {
		return err
	}
	metrics.OrderStatusChangesTotal.WithLabelValues(string(order.Status)).Inc()
	return c.JSON(http.StatusOK, toOrderResponse(order))
}
