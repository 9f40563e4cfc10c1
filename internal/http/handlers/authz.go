package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	applog "tokokita/internal/log"
	"tokokita/internal/shop"
)

func ensureSID(c *fiber.Ctx) string {
	sid := c.Cookies("sid")
	if sid == "" {
		sid = uuid.NewString()
		c.Cookie(&fiber.Cookie{
			Name:     "sid",
			Value:    sid,
			Path:     "/",
			HTTPOnly: true,
			SameSite: fiber.CookieSameSiteLaxMode,
		})
	}
	return sid
}

// RequireUser attaches the session's state container to the request,
// restoring one from a previously bound session when needed. Admin
// authorization is NOT checked here: the container gates its own
// mutating catalog operations.
func RequireUser(reg *shop.Registry) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sid := c.Cookies("sid")
		if sid == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
		}
		st, err := reg.Attach(c.Context(), sid)
		if err != nil {
			applog.Security(c, "access.denied", map[string]any{"sid": sid})
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
		}
		c.Locals("store", st)
		return c.Next()
	}
}

func container(c *fiber.Ctx) *shop.Store {
	st, _ := c.Locals("store").(*shop.Store)
	return st
}
