package handlers

import (
	"errors"

	"catalog/internal/apperrors"
	"catalog/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"github.com/rs/zerolog/log"
)

// errorJSON writes the structured error body used across the API:
// {statusCode, error, message}.
func errorJSON(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"statusCode": status,
		"error":      utils.StatusMessage(status),
		"message":    message,
	})
}

// respondError maps a service failure to its HTTP response. Anything outside
// the known taxonomy surfaces as a 500 carrying the underlying message.
func respondError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrInvalidCredentials):
		return errorJSON(c, fiber.StatusUnauthorized, services.ErrInvalidCredentials.Error())
	case errors.Is(err, apperrors.ErrNotFound):
		return errorJSON(c, fiber.StatusNotFound, err.Error())
	case errors.Is(err, apperrors.ErrUnauthorized):
		return errorJSON(c, fiber.StatusUnauthorized, err.Error())
	case errors.Is(err, apperrors.ErrConflict):
		return errorJSON(c, fiber.StatusConflict, err.Error())
	case errors.Is(err, apperrors.ErrReferenceNotFound), errors.Is(err, apperrors.ErrInvalidInput):
		return errorJSON(c, fiber.StatusBadRequest, err.Error())
	default:
		log.Error().Err(err).Str("path", c.Path()).Msg("request failed")
		return errorJSON(c, fiber.StatusInternalServerError, err.Error())
	}
}
