package handlers

import (
	"context"
	"net/http"
	"time"

	"restomart/internal/caching"
	"restomart/internal/jobs/background"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
)

// HealthHandlers handles health check and monitoring endpoints.
type HealthHandlers struct {
	db        *pgxpool.Pool
	cache     caching.CacheService
	scheduler *background.JobScheduler
	version   string
}

func NewHealthHandlers(db *pgxpool.Pool, cache caching.CacheService, scheduler *background.JobScheduler, version string) *HealthHandlers {
	return &HealthHandlers{db: db, cache: cache, scheduler: scheduler, version: version}
}

// HealthStatus is the overall health payload.
type HealthStatus struct {
	Status    string                 `json:"status"`
	Timestamp string                 `json:"timestamp"`
	Services  map[string]string      `json:"services"`
	Jobs      map[string]interface{} `json:"jobs,omitempty"`
	Version   string                 `json:"version"`
}

// HealthCheck handles GET /health
func (h *HealthHandlers) HealthCheck(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
	defer cancel()

	health := &HealthStatus{
		Status:    "healthy",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Services:  make(map[string]string),
		Version:   h.version,
	}

	if err := h.db.Ping(ctx); err != nil {
		health.Services["database"] = "unhealthy"
		health.Status = "degraded"
	} else {
		health.Services["database"] = "healthy"
	}

	if err := h.cache.Ping(ctx); err != nil {
		health.Services["redis"] = "unhealthy"
		health.Status = "degraded"
	} else {
		health.Services["redis"] = "healthy"
	}

	if h.scheduler != nil {
		health.Jobs = h.scheduler.GetJobStatus()
	}

	statusCode := http.StatusOK
	if health.Status == "degraded" {
		statusCode = http.StatusServiceUnavailable
	}

	return c.JSON(statusCode, health)
}
