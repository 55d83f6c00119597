package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/portfolio-backend/internal/logger"
)

// Pinger проверяет доступность БД. *sqlx.DB подходит напрямую.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// HealthHandler предоставляет endpoint для проверки здоровья сервиса.
type HealthHandler struct {
	db      Pinger
	started time.Time
}

// NewHealthHandler создаёт новый health handler.
func NewHealthHandler(db Pinger) *HealthHandler {
	return &HealthHandler{db: db, started: time.Now()}
}

// HealthResponse представляет ответ health check.
type HealthResponse struct {
	Status    string            `json:"status"`
	Timestamp time.Time         `json:"timestamp"`
	Uptime    string            `json:"uptime"`
	Checks    map[string]string `json:"checks"`
}

// Health обрабатывает GET /health.
func (h *HealthHandler) Health(c *gin.Context) {
	checks := make(map[string]string)
	status := "healthy"

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.db.PingContext(ctx); err != nil {
		logger.Log.WithField("error", err.Error()).Error("health: база данных недоступна")
		checks["database"] = "unhealthy"
		status = "unhealthy"
	} else {
		checks["database"] = "healthy"
	}

	statusCode := http.StatusOK
	if status == "unhealthy" {
		statusCode = http.StatusServiceUnavailable
	}

	c.JSON(statusCode, HealthResponse{
		Status:    status,
		Timestamp: time.Now().UTC(),
		Uptime:    time.Since(h.started).Round(time.Second).String(),
		Checks:    checks,
	})
}
