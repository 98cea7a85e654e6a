package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/classgrid/learnhub/internal/persistence"
)

// HealthHandler responds to liveness and readiness probes.
type HealthHandler struct {
	serviceName string
	version     string
	postgres    *persistence.Postgres
	redis       *persistence.Redis
}

// NewHealthHandler returns a new handler instance.
func NewHealthHandler(serviceName, version string, postgres *persistence.Postgres, redis *persistence.Redis) *HealthHandler {
	return &HealthHandler{serviceName: serviceName, version: version, postgres: postgres, redis: redis}
}

// Live handles GET /health/live. It answers as long as the process runs.
func (h *HealthHandler) Live(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "alive",
		"service": h.serviceName,
		"version": h.version,
	})
}

// Ready handles GET /health/ready. It pings both stores and reports 503 when
// either is unreachable.
func (h *HealthHandler) Ready(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
	defer cancel()

	checks := fiber.Map{
		"postgres": checkDependency(h.postgres.Ping(ctx)),
		"redis":    checkDependency(h.redis.Ping(ctx)),
	}
	for _, result := range checks {
		if result != "ok" {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"detail":       "one or more dependencies unavailable",
				"dependencies": checks,
			})
		}
	}

	return c.JSON(fiber.Map{
		"status":       "ready",
		"dependencies": checks,
	})
}

func checkDependency(err error) string {
	if err != nil {
		return err.Error()
	}
	return "ok"
}
