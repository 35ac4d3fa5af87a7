package handlers

import (
	"net/http"

	"restomart/internal/services"

	"github.com/labstack/echo/v4"
)

// ReportHandlers handles the read-only report endpoints.
type ReportHandlers struct {
	reportService services.ReportService
}

func NewReportHandlers(reportService services.ReportService) *ReportHandlers {
	return &ReportHandlers{reportService: reportService}
}

// DailySales handles GET /api/reports/daily-sales?date=...
func (h *ReportHandlers) DailySales(c echo.Context) error {
	report, err := h.reportService.DailySales(c.Request().Context(), c.QueryParam("date"))
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, http.StatusOK, report)
}

// InventoryReport handles GET /api/reports/inventory
func (h *ReportHandlers) InventoryReport(c echo.Context) error {
	report, err := h.reportService.InventoryReport(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, http.StatusOK, report)
}

// DashboardStats handles GET /api/reports/dashboard
func (h *ReportHandlers) DashboardStats(c echo.Context) error {
	stats, err := h.reportService.DashboardStats(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, http.StatusOK, stats)
}
