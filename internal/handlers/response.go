package handlers

import (
	"errors"
	"runtime/debug"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"github.com/abhishekagarwal777/resume-analyzer/internal/apperrors"
)

type SuccessEnvelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
	Count   *int   `json:"count,omitempty"`
}

type ErrorEnvelope struct {
	Success    bool   `json:"success"`
	Message    string `json:"message"`
	DevMessage string `json:"dev_message,omitempty"`
	Trace      string `json:"trace,omitempty"`
}

func success(c *fiber.Ctx, status int, message string, data any) error {
	return c.Status(status).JSON(SuccessEnvelope{
		Success: true,
		Message: message,
		Data:    data,
	})
}

func successList(c *fiber.Ctx, data any, count int) error {
	return c.Status(fiber.StatusOK).JSON(SuccessEnvelope{
		Success: true,
		Data:    data,
		Count:   &count,
	})
}

// NewErrorHandler builds the single place that turns any raised failure into
// the client-facing envelope. Production responses carry only the safe
// message; development responses add the raw error and a stack trace.
func NewErrorHandler(log *logrus.Logger, production bool) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status := fiber.StatusInternalServerError
		message := "Something went wrong. Please try again later."

		var appErr *apperrors.AppError
		var fiberErr *fiber.Error
		switch {
		case errors.As(err, &appErr):
			status = apperrors.HTTPStatus(appErr)
			message = appErr.Message
		case errors.As(err, &fiberErr):
			status = fiberErr.Code
			message = fiberErr.Message
			// The body-limit middleware rejects oversized uploads before the
			// handler runs; report it as a client validation failure.
			if fiberErr.Code == fiber.StatusRequestEntityTooLarge {
				status = fiber.StatusBadRequest
				message = "The uploaded file exceeds the 5 MB size limit."
			}
		}

		entry := log.WithFields(logrus.Fields{
			"method": c.Method(),
			"path":   c.Path(),
			"status": status,
		})
		if status >= fiber.StatusInternalServerError {
			entry.WithError(err).Error("request failed")
		} else {
			entry.WithError(err).Warn("request rejected")
		}

		envelope := ErrorEnvelope{Success: false, Message: message}
		if !production {
			envelope.DevMessage = err.Error()
			envelope.Trace = string(debug.Stack())
		}

		return c.Status(status).JSON(envelope)
	}
}
