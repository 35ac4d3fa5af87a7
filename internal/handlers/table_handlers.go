package handlers

import (
	"net/http"
	"strconv"
	"time"

	"restomart/internal/common"
	"restomart/internal/models"
	"restomart/internal/services"

	"github.com/labstack/echo/v4"
)

// TableHandlers handles HTTP requests for tables.
type TableHandlers struct {
	tableService services.TableService
}

func NewTableHandlers(tableService services.TableService) *TableHandlers {
	return &TableHandlers{tableService: tableService}
}

// CreateTable handles POST /api/tables
func (h *TableHandlers) CreateTable(c echo.Context) error {
	table := &models.Table{}
	if err := c.Bind(table); err != nil {
		return respondError(c, common.ValidationError("body", "invalid request format"))
	}
	created, err := h.tableService.Create(c.Request().Context(), table)
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, http.StatusCreated, created)
}

// GetTable handles GET /api/tables/:id
func (h *TableHandlers) GetTable(c echo.Context) error {
	id, err := common.ParseUUID(c.Param("id"), "id")
	if err != nil {
		return respondError(c, err)
	}
	table, err := h.tableService.GetByID(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, http.StatusOK, table)
}

// ListTables handles GET /api/tables
func (h *TableHandlers) ListTables(c echo.Context) error {
	tables, err := h.tableService.List(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, http.StatusOK, tables)
}

// UpdateTable handles PUT /api/tables/:id
func (h *TableHandlers) UpdateTable(c echo.Context) error {
	id, err := common.ParseUUID(c.Param("id"), "id")
	if err != nil {
		return respondError(c, err)
	}
	patch := &models.TablePatch{}
	if err := c.Bind(patch); err != nil {
		return respondError(c, common.ValidationError("body", "invalid request format"))
	}
	updated, err := h.tableService.Update(c.Request().Context(), id, patch)
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, http.StatusOK, updated)
}

// UpdateStatus handles PATCH /api/tables/:id/status
func (h *TableHandlers) UpdateStatus(c echo.Context) error {
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
	table, err := h.tableService.TransitionTo(c.Request().Context(), id, req.Status)
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, http.StatusOK, table)
}

// DeleteTable handles DELETE /api/tables/:id
func (h *TableHandlers) DeleteTable(c echo.Context) error {
	id, err := common.ParseUUID(c.Param("id"), "id")
	if err != nil {
		return respondError(c, err)
	}
	if err := h.tableService.Delete(c.Request().Context(), id); err != nil {
		return respondError(c, err)
	}
	return respondData(c, http.StatusOK, map[string]interface{}{"deleted": true})
}

// FindAvailable handles GET /api/tables/available?time=...&party_size=N
func (h *TableHandlers) FindAvailable(c echo.Context) error {
	at := time.Now()
	if timeStr := c.QueryParam("time"); timeStr != "" {
		parsed, err := time.Parse(time.RFC3339, timeStr)
		if err != nil {
			return respondError(c, common.ValidationError("time", "must be RFC3339"))
		}
		at = parsed
	}
	partySize, err := strconv.Atoi(c.QueryParam("party_size"))
	if err != nil {
		return respondError(c, common.ValidationError("party_size", "must be a positive integer"))
	}
	tables, err := h.tableService.FindAvailable(c.Request().Context(), at, partySize)
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, http.StatusOK, tables)
}
