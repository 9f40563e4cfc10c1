package handlers

import (
	"github.com/gofiber/fiber/v2"

	applog "tokokita/internal/log"
	"tokokita/internal/shop"
	"tokokita/internal/validate"
)

type CheckoutHandler struct{}

// View exposes the draft, derived totals, and the static taxonomies the
// checkout screen renders from.
func (h *CheckoutHandler) View(c *fiber.Ctx) error {
	st := container(c)
	return c.JSON(fiber.Map{
		"draft":              st.Draft(),
		"selected":           st.SelectedLines(),
		"subtotal":           st.SelectedSubtotal(),
		"total":              st.CheckoutTotal(),
		"ready":              st.Ready(),
		"shipping_options":   shop.ShippingOptions(),
		"payment_categories": shop.PaymentCategories(),
	})
}

type addressReq struct {
	Address string `json:"address" validate:"required"`
}

func (h *CheckoutHandler) SetAddress(c *fiber.Ctx) error {
	var req addressReq
	if err := BindAndValidate(c, &req); err != nil {
		return nil
	}
	addr, ok := validate.Address(req.Address)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid_address"})
	}
	container(c).SetAddress(addr)
	return c.JSON(fiber.Map{"ok": true})
}

type shippingReq struct {
	OptionID string `json:"option_id" validate:"required"`
}

func (h *CheckoutHandler) SetShipping(c *fiber.Ctx) error {
	var req shippingReq
	if err := BindAndValidate(c, &req); err != nil {
		return nil
	}
	opt, ok := shop.FindShippingOption(req.OptionID)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "unknown_shipping_option"})
	}
	container(c).SetShipping(opt.Name, opt.Price)
	return c.JSON(fiber.Map{"ok": true})
}

type paymentReq struct {
	MethodID string `json:"method_id" validate:"required"`
}

func (h *CheckoutHandler) SetPayment(c *fiber.Ctx) error {
	var req paymentReq
	if err := BindAndValidate(c, &req); err != nil {
		return nil
	}
	m, ok := shop.FindPaymentMethod(req.MethodID)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "unknown_payment_method"})
	}
	container(c).SetPaymentMethod(m)
	return c.JSON(fiber.Map{"ok": true})
}

func (h *CheckoutHandler) Place(c *fiber.Ctx) error {
	order, err := container(c).Checkout(c.Context())
	if err != nil {
		return respondError(c, "checkout.place", err)
	}
	applog.Audit(c, "order.place", map[string]any{
		"order_id": order.ID,
		"total":    order.Total,
	})
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"order": order})
}
