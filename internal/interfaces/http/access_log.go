package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/jhoicas/Backoffice-api/pkg/logger"
)

const (
	localLogger     = "logger"
	headerRequestID = "X-Request-ID"
)

// AccessLog registra una línea por petición y deja en Locals un sublogger con request_id.
func AccessLog(log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		reqID := c.Get(headerRequestID)
		if reqID == "" {
			reqID = uuid.NewString()
		}
		c.Set(headerRequestID, reqID)

		reqLog := log.WithField("request_id", reqID)
		c.Locals(localLogger, reqLog)

		err := c.Next()
		if err != nil {
			// deja que el ErrorHandler de fiber fije el status antes de registrar
			if herr := c.App().ErrorHandler(c, err); herr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		status := c.Response().StatusCode()
		ev := reqLog.Info()
		if status >= fiber.StatusInternalServerError {
			ev = reqLog.Error()
		} else if status >= fiber.StatusBadRequest {
			ev = reqLog.Warn()
		}
		ev.Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Str("user_id", GetUserID(c)).
			Msg("http")
		return nil
	}
}

// requestLogger logger de la petición; Nop si AccessLog no está montado.
func requestLogger(c *fiber.Ctx) *logger.Logger {
	if l, ok := c.Locals(localLogger).(*logger.Logger); ok {
		return l
	}
	return logger.Nop()
}
