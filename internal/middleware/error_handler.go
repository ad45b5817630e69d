package middleware

import (
	"github.com/mukkoticf/twilight-investors-dashboard/internal/apperrors"
	"github.com/mukkoticf/twilight-investors-dashboard/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandler is the global error handler. Maps the error taxonomy to HTTP
// status codes and returns the standard error format.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal Server Error"

	switch {
	case apperrors.IsValidation(err):
		code = fiber.StatusBadRequest
		message = err.Error()
	case apperrors.IsNotFound(err):
		code = fiber.StatusNotFound
		message = err.Error()
	case apperrors.IsConflict(err):
		code = fiber.StatusConflict
		message = err.Error()
	case apperrors.IsStorage(err):
		code = fiber.StatusInternalServerError
		message = "Internal Server Error"
	default:
		if e, ok := err.(*fiber.Error); ok {
			code = e.Code
			message = e.Message
		}
	}

	return response.Error(c, message, code, nil)
}

// StatusFor returns the HTTP status for a service error, for handlers that
// respond directly instead of bubbling to ErrorHandler.
func StatusFor(err error) int {
	switch {
	case apperrors.IsValidation(err):
		return fiber.StatusBadRequest
	case apperrors.IsNotFound(err):
		return fiber.StatusNotFound
	case apperrors.IsConflict(err):
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}

// MessageFor hides storage internals from clients.
func MessageFor(err error) string {
	if apperrors.IsStorage(err) {
		return "Internal Server Error"
	}
	return err.Error()
}
