package http

import (
	"errors"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/artem13815/icebreaker/api/http/presenter"
)

// AccessLog пишет одну строку на запрос.
func AccessLog(log *slog.Logger) fiber.Handler {
	log = log.With("module", "access")
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		status := c.Response().StatusCode()
		var fe *fiber.Error
		if errors.As(err, &fe) {
			status = fe.Code
		}
		log.Info("request",
			"method", c.Method(),
			"path", c.Path(),
			"status", status,
			"latency_ms", time.Since(start).Milliseconds(),
			"request_id", c.GetRespHeader(fiber.HeaderXRequestID),
		)
		return err
	}
}

// ErrorHandler maps errors that escaped the handlers to {"message": ...}.
// Unknown errors are logged and hidden behind a generic 500.
func ErrorHandler(log *slog.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return presenter.Error(c, fe.Code, fe.Message)
		}
		log.Error("unhandled error", "method", c.Method(), "path", c.Path(), "error", err)
		return presenter.Error(c, fiber.StatusInternalServerError, "An unexpected error occurred.")
	}
}
