package middleware

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"github.com/MihaiVisu/facedetect/internal/domain"
)

// ErrorHandler converts errors escaping the handlers into the API's
// error envelope.
func ErrorHandler(logger *slog.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			// The transport body cap tracks the configured image cap, so
			// an oversized body gets the same answer as the handler's own
			// size check.
			if fiberErr.Code == fiber.StatusRequestEntityTooLarge {
				err = domain.ErrImageTooLarge
			} else {
				return writeError(c, fiberErr.Code, routingCode(fiberErr.Code), fiberErr.Message)
			}
		}

		var appErr *domain.AppError
		if errors.As(err, &appErr) {
			if appErr.StatusCode >= 500 {
				logger.Error("internal error",
					slog.String("code", appErr.Code),
					slog.String("message", appErr.Message),
					slog.Any("error", appErr.Err),
				)
			}
			return writeError(c, appErr.StatusCode, appErr.Code, appErr.Message)
		}

		logger.Error("unhandled error",
			slog.Any("error", err),
			slog.String("path", c.Path()),
		)
		return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "An unexpected error occurred")
	}
}

func writeError(c *fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"error": fiber.Map{
			"code":    code,
			"message": message,
		},
	})
}

// routingCode names transport-level rejections that never reached a
// handler.
func routingCode(status int) string {
	switch status {
	case fiber.StatusNotFound:
		return "ROUTE_NOT_FOUND"
	case fiber.StatusMethodNotAllowed:
		return "METHOD_NOT_ALLOWED"
	default:
		return "REQUEST_FAILED"
	}
}
