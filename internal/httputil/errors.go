package httputil

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/Vextroyer/mange/internal/repository"
)

// ErrorHandler maps the repository error taxonomy onto HTTP status codes and
// renders every error as {"status_code": n, "errors": "..."}. Unrecognized
// errors are logged and surfaced as a generic 500 so no store detail leaks.
func ErrorHandler(log zerolog.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		message := "unexpected server error"

		var fiberErr *fiber.Error
		switch {
		case errors.As(err, &fiberErr):
			code = fiberErr.Code
			message = fiberErr.Message
		case errors.Is(err, repository.ErrNotFound):
			code = fiber.StatusNotFound
			message = err.Error()
		case errors.Is(err, repository.ErrAuthenticationFailed),
			errors.Is(err, repository.ErrInvalidToken):
			code = fiber.StatusUnauthorized
			message = err.Error()
		case errors.Is(err, repository.ErrValidation),
			errors.Is(err, repository.ErrDuplicateKey),
			errors.Is(err, repository.ErrMultipleResults):
			code = fiber.StatusBadRequest
			message = err.Error()
		default:
			log.Error().Err(err).Str("path", c.Path()).Msg("unhandled error")
		}

		return c.Status(code).JSON(fiber.Map{
			"status_code": code,
			"errors":      message,
		})
	}
}
