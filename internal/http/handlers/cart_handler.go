package handlers

import (
	"github.com/gofiber/fiber/v2"

	"tokokita/internal/repos"
	"tokokita/internal/validate"
)

type CartHandler struct {
	Products *repos.ProductRepo
}

func (h *CartHandler) View(c *fiber.Ctx) error {
	st := container(c)
	return c.JSON(fiber.Map{
		"lines":    st.Cart(),
		"selected": st.SelectedIDs(),
		"subtotal": st.SelectedSubtotal(),
	})
}

type addToCartReq struct {
	ProductID string `json:"product_id" validate:"required"`
}

func (h *CartHandler) Add(c *fiber.Ctx) error {
	var req addToCartReq
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
	if err := container(c).AddToCart(p); err != nil {
		return respondError(c, "cart.add", err)
	}
	return c.JSON(fiber.Map{"ok": true})
}

// Quantity deliberately has no validation tag: sub-1 values are legal
// input and clamp to 1 in the container.
type quantityReq struct {
	Quantity int `json:"quantity"`
}

func (h *CartHandler) UpdateQuantity(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid_id"})
	}
	var req quantityReq
	if err := BindAndValidate(c, &req); err != nil {
		return nil
	}
	if err := container(c).UpdateQuantity(id, req.Quantity); err != nil {
		return respondError(c, "cart.quantity", err)
	}
	return c.JSON(fiber.Map{"ok": true})
}

func (h *CartHandler) Remove(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid_id"})
	}
	if err := container(c).RemoveFromCart(id); err != nil {
		return respondError(c, "cart.remove", err)
	}
	return c.JSON(fiber.Map{"ok": true})
}

func (h *CartHandler) ToggleSelect(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid_id"})
	}
	st := container(c)
	st.ToggleSelectCartItem(id)
	return c.JSON(fiber.Map{"selected": st.SelectedIDs()})
}

func (h *CartHandler) SelectAll(c *fiber.Ctx) error {
	st := container(c)
	st.SelectAllCartItems()
	return c.JSON(fiber.Map{"selected": st.SelectedIDs()})
}

func (h *CartHandler) DeselectAll(c *fiber.Ctx) error {
	st := container(c)
	st.DeselectAllCartItems()
	return c.JSON(fiber.Map{"selected": st.SelectedIDs()})
}
