package handlers

import (
	"github.com/gofiber/fiber/v2"

	applog "tokokita/internal/log"
	"tokokita/internal/shop"
	"tokokita/internal/validate"
)

type AuthHandler struct {
	Registry *shop.Registry
}

type credentialsReq struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req credentialsReq
	if err := BindAndValidate(c, &req); err != nil {
		return nil
	}

	sid := ensureSID(c)
	st, err := h.Registry.Login(c.Context(), sid, req.Email, req.Password)
	if err != nil {
		applog.Security(c, "login.fail", map[string]any{"email": req.Email})
		return respondError(c, "login", err)
	}

	applog.Audit(c, "login", map[string]any{"user_id": st.User().ID})
	return c.JSON(fiber.Map{"ok": true, "is_admin": st.IsAdmin()})
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req credentialsReq
	if err := BindAndValidate(c, &req); err != nil {
		return nil
	}
	if _, ok := validate.Email(req.Email); !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid_email"})
	}
	if !validate.Password(req.Password) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "weak_password"})
	}

	if err := h.Registry.Register(c.Context(), req.Email, req.Password); err != nil {
		return respondError(c, "register", err)
	}
	applog.Audit(c, "register", map[string]any{"email": req.Email})
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"ok": true})
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	sid := c.Cookies("sid")
	if sid == "" {
		return c.JSON(fiber.Map{"ok": true})
	}
	st, err := h.Registry.Attach(c.Context(), sid)
	if err == nil {
		if err := st.Logout(c.Context()); err != nil {
			return respondError(c, "logout", err)
		}
	}
	h.Registry.Drop(sid)
	applog.Audit(c, "logout", map[string]any{"sid": sid})
	return c.JSON(fiber.Map{"ok": true})
}
