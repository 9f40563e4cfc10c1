package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	applog "tokokita/internal/log"
	"tokokita/internal/repos"
	"tokokita/internal/shop"
)

// respondError maps container and gateway errors onto HTTP statuses:
// validation failures name the offending field; remote failures get a
// generic retryable message.
func respondError(c *fiber.Ctx, action string, err error) error {
	var ve *shop.ValidationError
	if errors.As(err, &ve) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "validation_failed",
			"field": ve.Field,
			"msg":   ve.Reason,
		})
	}
	if errors.Is(err, repos.ErrBadCreds) || errors.Is(err, repos.ErrNoSession) {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
	}
	if errors.Is(err, repos.ErrEmailTaken) {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "email_taken"})
	}
	applog.Error(c, action, err, nil)
	return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": "could_not_complete"})
}
