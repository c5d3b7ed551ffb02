package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/dental-inventory-api/pkg/logger"
	"github.com/rs/zerolog"
)

// RequestLogger registra una línea estructurada por petición.
// 5xx se registra como error y 4xx como warn.
func RequestLogger(log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		chainErr := c.Next()
		if chainErr != nil {
			// Deja que el ErrorHandler de Fiber fije el status antes de registrar.
			if err := c.App().ErrorHandler(c, chainErr); err != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}
		status := c.Response().StatusCode()

		ev := log.WithLevel(statusLevel(status)).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Str("ip", c.IP())
		if uid := GetUserID(c); uid != "" {
			ev.Str("user_id", uid)
		}
		if chainErr != nil {
			ev.Err(chainErr)
		}
		ev.Msg("http request")
		return nil
	}
}

func statusLevel(status int) zerolog.Level {
	switch {
	case status >= fiber.StatusInternalServerError:
		return zerolog.ErrorLevel
	case status >= fiber.StatusBadRequest:
		return zerolog.WarnLevel
	default:
		return zerolog.InfoLevel
	}
}
