package handlers

import (
	"net/http"
	"strconv"

	"restomart/internal/common"
	"restomart/internal/models"
	"restomart/internal/services"

	"github.com/labstack/echo/v4"
)

// InventoryHandlers handles HTTP requests for inventory items.
type InventoryHandlers struct {
	inventoryService services.InventoryService
}

func NewInventoryHandlers(inventoryService services.InventoryService) *InventoryHandlers {
	return &InventoryHandlers{inventoryService: inventoryService}
}

// CreateItem handles POST /api/inventory
func (h *InventoryHandlers) CreateItem(c echo.Context) error {
	item := &models.InventoryItem{}
	if err := c.Bind(item); err != nil {
		return respondError(c, common.ValidationError("body", "invalid request format"))
	}
	created, err := h.inventoryService.Create(c.Request().Context(), item)
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, http.StatusCreated, created)
}

// GetItem handles GET /api/inventory/:id
func (h *InventoryHandlers) GetItem(c echo.Context) error {
	id, err := common.ParseUUID(c.Param("id"), "id")
	if err != nil {
		return respondError(c, err)
	}
	item, err := h.inventoryService.GetByID(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, http.StatusOK, item)
}

// ListItems handles GET /api/inventory
func (h *InventoryHandlers) ListItems(c echo.Context) error {
	filter := &models.InventoryFilter{}
	if category := c.QueryParam("category"); category != "" {
		filter.Category = &category
	}
	if lowStockStr := c.QueryParam("low_stock"); lowStockStr != "" {
		lowStock := lowStockStr == "true"
		filter.LowStock = &lowStock
	}
	items, err := h.inventoryService.List(c.Request().Context(), filter)
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, http.StatusOK, items)
}

// UpdateItem handles PUT /api/inventory/:id
func (h *InventoryHandlers) UpdateItem(c echo.Context) error {
	id, err := common.ParseUUID(c.Param("id"), "id")
	if err != nil {
		return respondError(c, err)
	}
	patch := &models.InventoryPatch{}
	if err := c.Bind(patch); err != nil {
		return respondError(c, common.ValidationError("body", "invalid request format"))
	}
	updated, err := h.inventoryService.Update(c.Request().Context(), id, patch)
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, http.StatusOK, updated)
}

// AdjustStock handles PATCH /api/inventory/:id/stock
func (h *InventoryHandlers) AdjustStock(c echo.Context) error {
	id, err := common.ParseUUID(c.Param("id"), "id")
	if err != nil {
		return respondError(c, err)
	}
	var req struct {
		Delta float64 `json:"delta"`
	}
	if err := c.Bind(&req); err != nil {
		return respondError(c, common.ValidationError("body", "invalid request format"))
	}
	if req.Delta == 0 {
		return respondError(c, common.ValidationError("delta", "must be non-zero"))
	}
	item, err := h.inventoryService.ApplyDelta(c.Request().Context(), id, req.Delta)
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, http.StatusOK, item)
}

// CheckStock handles GET /api/inventory/:id/check?required=N
func (h *InventoryHandlers) CheckStock(c echo.Context) error {
	id, err := common.ParseUUID(c.Param("id"), "id")
	if err != nil {
		return respondError(c, err)
	}
	required, err := strconv.ParseFloat(c.QueryParam("required"), 64)
	if err != nil || required <= 0 {
		return respondError(c, common.ValidationError("required", "must be a positive number"))
	}
	sufficient, err := h.inventoryService.CheckSufficiency(c.Request().Context(), id, required)
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, http.StatusOK, map[string]interface{}{
		"sufficient": sufficient,
		"required":   required,
	})
}

// DeleteItem handles DELETE /api/inventory/:id
func (h *InventoryHandlers) DeleteItem(c echo.Context) error {
	id, err := common.ParseUUID(c.Param("id"), "id")
	if err != nil {
		return respondError(c, err)
	}
	if err := h.inventoryService.Delete(c.Request().Context(), id); err != nil {
		return respondError(c, err)
	}
	return respondData(c, http.StatusOK, map[string]interface{}{"deleted": true})
}

// LowStock handles GET /api/inventory/alerts/low-stock
func (h *InventoryHandlers) LowStock(c echo.Context) error {
	items, err := h.inventoryService.LowStock(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, http.StatusOK, items)
}

// CategoryStats handles GET /api/inventory/stats/categories
func (h *InventoryHandlers) CategoryStats(c echo.Context) error {
	stats, err := h.inventoryService.CategoryStats(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, http.StatusOK, stats)
}

// Stats handles GET /api/inventory/stats/overview
func (h *InventoryHandlers) Stats(c echo.Context) error {
	stats, err := h.inventoryService.Stats(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, http.StatusOK, stats)
}
