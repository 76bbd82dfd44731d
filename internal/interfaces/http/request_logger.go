package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Restaurante-api/pkg/logger"
)

// HTTPObserver recibe cada petición atendida (métricas).
type HTTPObserver interface {
	ObserveHTTP(method, route string, status int, elapsed time.Duration)
}

// RequestLogger registra método, ruta, estado, latencia y usuario de cada petición.
// Si observer no es nil también la reporta como métrica.
func RequestLogger(log *logger.Logger, observer HTTPObserver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		if err != nil {
			// Deja que el ErrorHandler de Fiber escriba la respuesta antes de leer el estado.
			if hErr := c.App().ErrorHandler(c, err); hErr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}
		elapsed := time.Since(start)
		status := c.Response().StatusCode()

		ev := log.Info()
		if status >= fiber.StatusInternalServerError {
			ev = log.Error()
		}
		ev.Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latency", elapsed).
			Str("user_id", GetUserID(c)).
			Msg("http")

		if observer != nil {
			observer.ObserveHTTP(c.Method(), c.Route().Path, status, elapsed)
		}
		return nil
	}
}
