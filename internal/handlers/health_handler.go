package handlers

import (
	"context"
	"runtime"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type HealthHandler struct {
	db        *gorm.DB
	startedAt time.Time
}

func NewHealthHandler(db *gorm.DB) *HealthHandler {
	return &HealthHandler{db: db, startedAt: time.Now()}
}

// Handle reports storage connectivity plus basic process metrics. A failed
// database ping degrades the response to 503.
func (h *HealthHandler) Handle(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 2*time.Second)
	defer cancel()

	overall := "healthy"
	dbStatus := "up"
	status := fiber.StatusOK

	sqlDB, err := h.db.DB()
	if err != nil || sqlDB.PingContext(ctx) != nil {
		overall = "degraded"
		dbStatus = "down"
		status = fiber.StatusServiceUnavailable
	}

	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)

	return c.Status(status).JSON(fiber.Map{
		"status":           overall,
		"database":         dbStatus,
		"uptime_seconds":   int64(time.Since(h.startedAt).Seconds()),
		"goroutines":       runtime.NumGoroutine(),
		"heap_alloc_bytes": mem.HeapAlloc,
		"time":             time.Now().UTC(),
	})
}
