package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// HealthChecker reports whether a dependency is reachable.
type HealthChecker interface {
	HealthCheck() error
}

// HealthCheckMiddleware answers /health, 503 when the database does not answer a ping.
func HealthCheckMiddleware(serviceName string, db HealthChecker, logger *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Path() != "/health" {
			return c.Next()
		}

		if err := db.HealthCheck(); err != nil {
			logger.Warn("Health check failed", zap.Error(err))
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"status":    "unhealthy",
				"timestamp": time.Now().Unix(),
				"service":   serviceName,
			})
		}

		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status":    "healthy",
			"timestamp": time.Now().Unix(),
			"service":   serviceName,
		})
	}
}
