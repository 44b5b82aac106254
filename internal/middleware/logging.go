package middleware

import (
	"log/slog"
	"time"

	"devmesh/internal/observability"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
)

// StructuredLogger logs each request with method, path, status, duration, and
// the request ID assigned by the requestid middleware.
func StructuredLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		rid, _ := c.Locals(requestid.ConfigDefault.ContextKey).(string)
		attrs := []any{
			slog.String("method", c.Method()),
			slog.String("path", c.Path()),
			slog.Int("status", c.Response().StatusCode()),
			slog.Duration("duration", time.Since(start)),
			slog.String("request_id", rid),
			slog.String("ip", c.IP()),
		}
		if userID, ok := c.Locals("userID").(uint); ok {
			attrs = append(attrs, slog.Uint64("user_id", uint64(userID)))
		}

		if err != nil {
			attrs = append(attrs, slog.String("error", err.Error()))
			observability.GlobalLogger.Error("request failed", attrs...)
		} else {
			observability.GlobalLogger.Info("request", attrs...)
		}
		return err
	}
}
