package main

import (
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"tokokita/internal/config"
	"tokokita/internal/http/handlers"
	applog "tokokita/internal/log"
	"tokokita/internal/repos"
)

func main() {
	cfg := config.Load()

	// Optional file logging
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			log.Printf("[warn] could not open log file %s: %v", cfg.LogFile, err)
		} else {
			mw := io.MultiWriter(os.Stdout, f)
			log.SetOutput(mw)
		}
	}

	db, err := repos.OpenDB(cfg.DBDSN)
	if err != nil {
		log.Fatal(err)
	}

	deps := handlers.NewDeps(db, cfg)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			applog.Error(c, "server.error", err, nil)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "could_not_complete",
			})
		},
	})
	app.Server().MaxRequestBodySize = 4 << 20 // product images ride in multipart

	// ---------- Middlewares ----------
	app.Use(requestid.New())
	app.Use(logger.New())
	app.Use(helmet.New())
	app.Use(limiter.New(limiter.Config{
		Max:        120,
		Expiration: time.Minute,
		Next: func(c *fiber.Ctx) bool {
			return strings.HasPrefix(c.Path(), "/media/")
		},
	}))

	// ---------- Media (uploaded product images) ----------
	mediaDir := cfg.MediaDir
	if !filepath.IsAbs(mediaDir) {
		if abs, err := filepath.Abs(mediaDir); err == nil {
			mediaDir = abs
		}
	}
	log.Printf("[static] /media -> %s", mediaDir)
	app.Static("/media", mediaDir)

	// ---------- Public catalog ----------
	app.Get("/products", deps.CatalogHandler.List)
	app.Get("/products/:id", deps.CatalogHandler.Detail)
	app.Get("/categories", deps.CatalogHandler.Categories)

	// ---------- Auth (login throttled) ----------
	app.Post("/register", deps.AuthHandler.Register)
	app.Post("/login", limiter.New(limiter.Config{
		Max:        5,
		Expiration: 10 * time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.login.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"error": "too_many_attempts"})
		},
	}), deps.AuthHandler.Login)
	app.Post("/logout", deps.AuthHandler.Logout)

	// ---------- Signed-in surface ----------
	// Each group carries RequireUser on its own prefix so the open
	// routes (catalog, /healthz, the 404 fallback) stay reachable.
	auth := handlers.RequireUser(deps.Registry)

	cart := app.Group("/cart", auth)
	cart.Get("/", deps.CartHandler.View)
	cart.Post("/items", deps.CartHandler.Add)
	cart.Patch("/items/:id", deps.CartHandler.UpdateQuantity)
	cart.Delete("/items/:id", deps.CartHandler.Remove)
	cart.Post("/items/:id/select", deps.CartHandler.ToggleSelect)
	cart.Post("/select-all", deps.CartHandler.SelectAll)
	cart.Post("/deselect-all", deps.CartHandler.DeselectAll)

	favorites := app.Group("/favorites", auth)
	favorites.Get("/", deps.FavoriteHandler.List)
	favorites.Post("/toggle", deps.FavoriteHandler.Toggle)

	checkout := app.Group("/checkout", auth)
	checkout.Get("/", deps.CheckoutHandler.View)
	checkout.Post("/address", deps.CheckoutHandler.SetAddress)
	checkout.Post("/shipping", deps.CheckoutHandler.SetShipping)
	checkout.Post("/payment", deps.CheckoutHandler.SetPayment)
	checkout.Post("/", deps.CheckoutHandler.Place)

	app.Get("/orders", auth, deps.OrderHandler.History)

	app.Get("/profile", auth, deps.ProfileHandler.View)
	app.Put("/profile", auth, deps.ProfileHandler.Update)
	app.Post("/theme/toggle", auth, deps.ProfileHandler.ToggleTheme)

	// Admin product CRUD; the container enforces the role gate.
	admin := app.Group("/admin", auth)
	admin.Post("/products", deps.AdminHandler.AddProduct)
	admin.Put("/products/:id", deps.AdminHandler.UpdateProduct)
	admin.Delete("/products/:id", deps.AdminHandler.DeleteProduct)

	// Health & 404
	app.Get("/healthz", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) })
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not_found"})
	})

	log.Fatal(app.Listen(":" + cfg.Port))
}
