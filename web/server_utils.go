package web

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/ottermq/sempctl/internal/core/models"
	"github.com/rs/zerolog/log"
)

// errorHandler renders routing and handler errors as JSON.
func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
	}
	if code >= fiber.StatusInternalServerError {
		log.Error().Err(err).Str("path", c.Path()).Msg("Request failed")
	}
	return c.Status(code).JSON(models.ErrorResponse{Error: err.Error()})
}
