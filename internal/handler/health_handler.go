package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Pinger проверяет доступность зависимости
type Pinger interface {
	Ping(ctx context.Context) error
}

// PingFunc адаптирует функцию к Pinger
type PingFunc func(ctx context.Context) error

// Ping вызывает f(ctx)
func (f PingFunc) Ping(ctx context.Context) error { return f(ctx) }

// HealthHandler отдает состояние сервиса и его зависимостей
type HealthHandler struct {
	checks map[string]Pinger
}

// NewHealthHandler создает обработчик с именованными проверками
func NewHealthHandler(checks map[string]Pinger) *HealthHandler {
	return &HealthHandler{checks: checks}
}

// Health возвращает 200, если все зависимости отвечают, иначе 503
// GET /api/health
func (h *HealthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	status := http.StatusOK
	components := make(map[string]string, len(h.checks))
	for name, check := range h.checks {
		if err := check.Ping(ctx); err != nil {
			components[name] = "unavailable"
			status = http.StatusServiceUnavailable
			continue
		}
		components[name] = "ok"
	}

	overall := "ok"
	if status != http.StatusOK {
		overall = "degraded"
	}
	c.JSON(status, gin.H{"status": overall, "components": components})
}
