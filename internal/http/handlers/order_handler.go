package handlers

import "github.com/gofiber/fiber/v2"

type OrderHandler struct{}

// History lists the signed-in user's orders, newest first. Orders are
// immutable; there is nothing to mutate here.
func (h *OrderHandler) History(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"orders": container(c).Orders()})
}
