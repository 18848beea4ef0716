package middleware

import (
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
)

// RequestLogger logs every request with its status and duration.
func RequestLogger() fiber.Handler {
	logger := slog.Default()
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		logger.Info("[HTTP] request",
			"method", c.Method(),
			"path", c.Path(),
			"status", c.Response().StatusCode(),
			"took", time.Since(start),
		)
		return err
	}
}
