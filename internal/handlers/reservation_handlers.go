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

// ReservationHandlers handles HTTP requests for reservations.
type ReservationHandlers struct {
	reservationService services.ReservationService
}

func NewReservationHandlers(reservationService services.ReservationService) *ReservationHandlers {
	return &ReservationHandlers{reservationService: reservationService}
}

// CreateReservation handles POST /api/reservations
func (h *ReservationHandlers) CreateReservation(c echo.Context) error {
	reservation := &models.Reservation{}
	if err := c.Bind(reservation); err != nil {
		return respondError(c, common.ValidationError("body", "invalid request format"))
	}
	created, err := h.reservationService.Create(c.Request().Context(), reservation)
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, http.StatusCreated, created)
}

// GetReservation handles GET /api/reservations/:id
func (h *ReservationHandlers) GetReservation(c echo.Context) error {
	id, err := common.ParseUUID(c.Param("id"), "id")
	if err != nil {
		return respondError(c, err)
	}
	reservation, err := h.reservationService.GetByID(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, http.StatusOK, reservation)
}

// ListReservations handles GET /api/reservations
func (h *ReservationHandlers) ListReservations(c echo.Context) error {
	filter := &models.ReservationFilter{}
	if dateStr := c.QueryParam("date"); dateStr != "" {
		date, err := time.Parse("2006-01-02", dateStr)
		if err != nil {
			return respondError(c, common.ValidationError("date", "must be in YYYY-MM-DD format"))
		}
		filter.Date = &date
	}
	if status := c.QueryParam("status"); status != "" {
		filter.Status = &status
	}
	if tableIDStr := c.QueryParam("table_id"); tableIDStr != "" {
		tableID, err := common.ParseUUID(tableIDStr, "table_id")
		if err != nil {
			return respondError(c, err)
		}
		filter.TableID = &tableID
	}
	reservations, err := h.reservationService.List(c.Request().Context(), filter)
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, http.StatusOK, reservations)
}

// UpdateReservation handles PUT /api/reservations/:id
func (h *ReservationHandlers) UpdateReservation(c echo.Context) error {
	id, err := common.ParseUUID(c.Param("id"), "id")
	if err != nil {
		return respondError(c, err)
	}
	patch := &models.ReservationPatch{}
	if err := c.Bind(patch); err != nil {
		return respondError(c, common.ValidationError("body", "invalid request format"))
	}
	updated, err := h.reservationService.Update(c.Request().Context(), id, patch)
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, http.StatusOK, updated)
}

// UpdateStatus handles PATCH /api/reservations/:id/status
func (h *ReservationHandlers) UpdateStatus(c echo.Context) error {
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
	reservation, err := h.reservationService.UpdateStatus(c.Request().Context(), id, req.Status)
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, http.StatusOK, reservation)
}

// DeleteReservation handles DELETE /api/reservations/:id
func (h *ReservationHandlers) DeleteReservation(c echo.Context) error {
	id, err := common.ParseUUID(c.Param("id"), "id")
	if err != nil {
		return respondError(c, err)
	}
	if err := h.reservationService.Delete(c.Request().Context(), id); err != nil {
		return respondError(c, err)
	}
	return respondData(c, http.StatusOK, map[string]interface{}{"deleted": true})
}

// Upcoming handles GET /api/reservations/upcoming?hours=N
func (h *ReservationHandlers) Upcoming(c echo.Context) error {
	hours := 24
	if hoursStr := c.QueryParam("hours"); hoursStr != "" {
		if parsed, err := strconv.Atoi(hoursStr); err == nil {
			hours = parsed
		}
	}
	reservations, err := h.reservationService.Upcoming(c.Request().Context(), hours)
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, http.StatusOK, reservations)
}
