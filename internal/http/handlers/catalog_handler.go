package handlers

import (
	"github.com/gofiber/fiber/v2"

	"tokokita/internal/repos"
	"tokokita/internal/validate"
)

// CatalogHandler serves public product browsing straight from the
// gateway; no session is needed to look at the shelf.
type CatalogHandler struct {
	Products *repos.ProductRepo
}

func (h *CatalogHandler) List(c *fiber.Ctx) error {
	products, err := h.Products.List(c.Context())
	if err != nil {
		return respondError(c, "catalog.list", err)
	}
	items := make([]fiber.Map, 0, len(products))
	for _, p := range products {
		items = append(items, fiber.Map{
			"product":      p,
			"availability": p.Availability(),
		})
	}
	return c.JSON(fiber.Map{"products": items})
}

func (h *CatalogHandler) Detail(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid_id"})
	}
	p, err := h.Products.Get(c.Context(), id)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not_found"})
	}
	return c.JSON(fiber.Map{"product": p, "availability": p.Availability()})
}

func (h *CatalogHandler) Categories(c *fiber.Ctx) error {
	cats, err := h.Products.Categories(c.Context())
	if err != nil {
		return respondError(c, "catalog.categories", err)
	}
	return c.JSON(fiber.Map{"categories": cats})
}
