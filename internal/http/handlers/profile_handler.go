package handlers

import (
	"github.com/gofiber/fiber/v2"

	applog "tokokita/internal/log"
	"tokokita/internal/shop"
)

type ProfileHandler struct{}

func (h *ProfileHandler) View(c *fiber.Ctx) error {
	st := container(c)
	return c.JSON(fiber.Map{
		"profile":  st.Profile(),
		"is_admin": st.IsAdmin(),
		"theme":    shop.Theme(),
	})
}

type updateProfileReq struct {
	FullName string `json:"full_name" validate:"required,max=100"`
	Address  string `json:"address" validate:"max=500"`
}

func (h *ProfileHandler) Update(c *fiber.Ctx) error {
	var req updateProfileReq
	if err := BindAndValidate(c, &req); err != nil {
		return nil
	}
	if err := container(c).UpdateProfile(c.Context(), req.FullName, req.Address); err != nil {
		return respondError(c, "profile.update", err)
	}
	return c.JSON(fiber.Map{"ok": true})
}

// ToggleTheme flips the process-wide theme preference.
func (h *ProfileHandler) ToggleTheme(c *fiber.Ctx) error {
	theme := shop.ToggleTheme()
	applog.Info(c, "theme.toggle", map[string]any{"theme": theme})
	return c.JSON(fiber.Map{"theme": theme})
}
