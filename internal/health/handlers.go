package health

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

// Handlers holds dependencies for health endpoints.
type Handlers struct {
	Rdb *redis.Client
	DB  DBPinger
}

// JSON GET /health/json reports service status and dependency connectivity.
func (h *Handlers) JSON(c *fiber.Ctx) error {
	result := Collect(context.Background(), h.Rdb, h.DB)
	return c.JSON(fiber.Map{
		"service":        "cryptopulse-api",
		"status":         result.Status,
		"uptime_seconds": result.UptimeSeconds,
		"go_version":     result.GoVersion,
		"dependencies":   result.Dependencies,
	})
}
