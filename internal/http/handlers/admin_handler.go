package handlers

import (
	"io"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	applog "tokokita/internal/log"
	"tokokita/internal/shop"
	"tokokita/internal/validate"
)

// AdminHandler wires product CRUD to the container, which holds the
// actual authorization gate. Requests are multipart so an image file
// can ride along with the fields.
type AdminHandler struct{}

func readImage(c *fiber.Ctx) (*shop.ImageFile, error) {
	fh, err := c.FormFile("image")
	if err != nil {
		return nil, nil // no image attached
	}
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}
	return &shop.ImageFile{
		Name:        fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}

func parsePrice(s string) (int64, bool) {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	return n, err == nil && n >= 0
}

func (h *AdminHandler) AddProduct(c *fiber.Ctx) error {
	price, ok := parsePrice(c.FormValue("price"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid_price"})
	}
	stock, _ := strconv.Atoi(c.FormValue("stock"))
	if stock < 0 {
		stock = 0
	}
	img, err := readImage(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_image"})
	}

	in := shop.ProductInput{
		Name:        c.FormValue("name"),
		Price:       price,
		Description: c.FormValue("description"),
		Category:    c.FormValue("category"),
		Stock:       stock,
	}
	p, err := container(c).AddProduct(c.Context(), in, img)
	if err != nil {
		return respondError(c, "admin.product.add", err)
	}
	applog.Audit(c, "admin.product.add", map[string]any{"product_id": p.ID})
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"product": p})
}

func (h *AdminHandler) UpdateProduct(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid_id"})
	}

	var patch shop.ProductPatch
	if v := c.FormValue("name"); v != "" {
		patch.Name = &v
	}
	if v := c.FormValue("price"); v != "" {
		price, ok := parsePrice(v)
		if !ok {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid_price"})
		}
		patch.Price = &price
	}
	if v := c.FormValue("description"); v != "" {
		patch.Description = &v
	}
	if v := c.FormValue("category"); v != "" {
		patch.Category = &v
	}
	if v := c.FormValue("stock"); v != "" {
		stock, err := strconv.Atoi(v)
		if err != nil || stock < 0 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid_stock"})
		}
		patch.Stock = &stock
	}

	img, err := readImage(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_image"})
	}

	p, err := container(c).UpdateProduct(c.Context(), id, patch, img)
	if err != nil {
		return respondError(c, "admin.product.update", err)
	}
	applog.Audit(c, "admin.product.update", map[string]any{"product_id": p.ID})
	return c.JSON(fiber.Map{"product": p})
}

func (h *AdminHandler) DeleteProduct(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid_id"})
	}
	if err := container(c).DeleteProduct(c.Context(), id); err != nil {
		return respondError(c, "admin.product.delete", err)
	}
	applog.Audit(c, "admin.product.delete", map[string]any{"product_id": id})
	return c.JSON(fiber.Map{"ok": true})
}
