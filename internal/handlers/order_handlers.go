package handlers

import (
	"net/http"
	"time"

	"restomart/internal/common"
	"restomart/internal/models"
	"restomart/internal/services"

	"github.com/labstack/echo/v4"
)

// OrderHandlers handles HTTP requests for orders.
type OrderHandlers struct {
	orderService services.OrderService
}

func NewOrderHandlers(orderService services.OrderService) *OrderHandlers {
	return &OrderHandlers{orderService: orderService}
}

// CreateOrder handles POST /api/orders
func (h *OrderHandlers) CreateOrder(c echo.Context) error {
	req := &models.CreateOrderRequest{}
	if err := c.Bind(req); err != nil {
		return respondError(c, common.ValidationError("body", "invalid request format"))
	}
	order, err := h.orderService.Create(c.Request().Context(), req)
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, http.StatusCreated, order)
}

// GetOrder handles GET /api/orders/:id
func (h *OrderHandlers) GetOrder(c echo.Context) error {
	id, err := common.ParseUUID(c.Param("id"), "id")
	if err != nil {
		return respondError(c, err)
	}
	order, err := h.orderService.GetByID(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, http.StatusOK, order)
}

// ListOrders handles GET /api/orders
func (h *OrderHandlers) ListOrders(c echo.Context) error {
	filter := &models.OrderFilter{}
	if status := c.QueryParam("status"); status != "" {
		filter.Status = &status
	}
	if dateStr := c.QueryParam("date"); dateStr != "" {
		date, err := time.Parse("2006-01-02", dateStr)
		if err != nil {
			return respondError(c, common.ValidationError("date", "must be in YYYY-MM-DD format"))
		}
		filter.Date = &date
	}
	if tableIDStr := c.QueryParam("table_id"); tableIDStr != "" {
		tableID, err := common.ParseUUID(tableIDStr, "table_id")
		if err != nil {
			return respondError(c, err)
		}
		filter.TableID = &tableID
	}
	orders, err := h.orderService.List(c.Request().Context(), filter)
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, http.StatusOK, orders)
}

// UpdateStatus handles PATCH /api/orders/:id/status
func (h *OrderHandlers) UpdateStatus(c echo.Context) error {
	id, err := common.ParseUUID(c.Param("id"), "id")
	if err != nil {
		return respondError(c, err)
	}
	var req struct {
		Status string `json:"status"`
	}
	if err := c.Bind(&req); err != nil {
		return respondError(c, common.ValidationError("body", "invalid request format"))
	}
	order, err := h.orderService.UpdateStatus(c.Request().Context(), id, req.Status)
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, http.StatusOK, order)
}

// Stats handles GET /api/orders/stats/summary?date=...
func (h *OrderHandlers) Stats(c echo.Context) error {
	stats, err := h.orderService.Stats(c.Request().Context(), c.QueryParam("date"))
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, http.StatusOK, stats)
}
