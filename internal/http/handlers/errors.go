package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"workersdeck/internal/apperr"
	applog "workersdeck/internal/log"
)

const genericError = "Something went wrong. Please try again."

// ErrorHandler turns handler errors into {"error": msg} bodies. Causes of
// server errors are logged, never returned.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var ae *apperr.Error
	if errors.As(err, &ae) {
		if ae.Kind == apperr.KindServer {
			applog.Error(c, "server.error", err, nil)
		}
		return c.Status(ae.Kind.Status()).JSON(fiber.Map{"error": ae.Message})
	}

	// fiber's own errors: route miss, body too large, limiter
	var fe *fiber.Error
	if errors.As(err, &fe) && fe.Code < fiber.StatusInternalServerError {
		return c.Status(fe.Code).JSON(fiber.Map{"error": fe.Message})
	}

	applog.Error(c, "server.error", err, nil)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": genericError})
}

func badBody() error { return apperr.BadRequest("Invalid request body") }
