package handlers

import (
	"github.com/gofiber/fiber/v2"

	"tokokita/internal/repos"
	"tokokita/internal/validate"
)

type FavoriteHandler struct {
	Products *repos.ProductRepo
}

func (h *FavoriteHandler) List(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"favorites": container(c).Favorites()})
}

type toggleFavoriteReq struct {
	ProductID string `json:"product_id" validate:"required"`
}

func (h *FavoriteHandler) Toggle(c *fiber.Ctx) error {
	var req toggleFavoriteReq
	if err := BindAndValidate(c, &req); err != nil {
		return nil
	}
	id, ok := validate.ID(req.ProductID)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid_id"})
	}

	p, err := h.Products.Get(c.Context(), id)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not_found"})
	}
	favorited, err := container(c).ToggleFavorite(p)
	if err != nil {
		return respondError(c, "favorite.toggle", err)
	}
	return c.JSON(fiber.Map{"favorited": favorited})
}
