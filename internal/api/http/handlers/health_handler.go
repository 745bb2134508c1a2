package handlers

import (
	"context"

	"github.com/gofiber/fiber/v2"
)

// Pinger reports backend connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler exposes liveness and readiness probes.
type HealthHandler struct {
	redis Pinger
}

// NewHealthHandler constructs handler.
func NewHealthHandler(redis Pinger) *HealthHandler {
	return &HealthHandler{redis: redis}
}

// Live handles GET /health/live.
func (h *HealthHandler) Live(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

// Ready handles GET /health/ready. Redis is optional; its state is reported
// but does not fail readiness.
func (h *HealthHandler) Ready(c *fiber.Ctx) error {
	redisStatus := "ok"
	if h.redis != nil {
		if err := h.redis.Ping(c.Context()); err != nil {
			redisStatus = "unavailable"
		}
	}
	return c.JSON(fiber.Map{
		"status": "ok",
		"redis":  redisStatus,
	})
}
