package controller

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

// HealthCheck is the unauthenticated liveness probe.
func HealthCheck(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
