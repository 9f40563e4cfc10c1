package handlers_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"

	"tokokita/internal/config"
	"tokokita/internal/http/handlers"
	"tokokita/internal/repos"
)

// newTestApp wires the real handlers over a fresh in-memory DB, with
// the same route layout as main minus rate limiting.
func newTestApp(t *testing.T) *fiber.App {
	t.Helper()
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	deps := handlers.NewDeps(db, config.Config{MediaDir: t.TempDir(), BaseURL: "http://test"})

	app := fiber.New()

	app.Get("/products", deps.CatalogHandler.List)
	app.Get("/products/:id", deps.CatalogHandler.Detail)
	app.Get("/categories", deps.CatalogHandler.Categories)

	app.Post("/register", deps.AuthHandler.Register)
	app.Post("/login", deps.AuthHandler.Login)
	app.Post("/logout", deps.AuthHandler.Logout)

	auth := handlers.RequireUser(deps.Registry)

	cart := app.Group("/cart", auth)
	cart.Get("/", deps.CartHandler.View)
	cart.Post("/items", deps.CartHandler.Add)
	cart.Patch("/items/:id", deps.CartHandler.UpdateQuantity)
	cart.Delete("/items/:id", deps.CartHandler.Remove)
	cart.Post("/items/:id/select", deps.CartHandler.ToggleSelect)
	cart.Post("/select-all", deps.CartHandler.SelectAll)

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

	admin := app.Group("/admin", auth)
	admin.Post("/products", deps.AdminHandler.AddProduct)
	admin.Put("/products/:id", deps.AdminHandler.UpdateProduct)
	admin.Delete("/products/:id", deps.AdminHandler.DeleteProduct)

	app.Get("/healthz", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) })
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not_found"})
	})

	return app
}

func cookieValue(resp *http.Response, name string) string {
	for _, c := range resp.Cookies() {
		if c.Name == name {
			return c.Value
		}
	}
	return ""
}

// doJSON sends a JSON request with an optional sid cookie and decodes
// the response body into a generic map.
func doJSON(t *testing.T, app *fiber.App, method, path, sid, body string) (*http.Response, map[string]any) {
	t.Helper()
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if sid != "" {
		req.AddCookie(&http.Cookie{Name: "sid", Value: sid})
	}
	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	var out map[string]any
	if len(raw) > 0 {
		_ = json.Unmarshal(raw, &out)
	}
	return resp, out
}

// login signs the seeded account in and returns its sid cookie.
func login(t *testing.T, app *fiber.App, email string) string {
	t.Helper()
	resp, _ := doJSON(t, app, "POST", "/login", "",
		`{"email":"`+email+`","password":"Passw0rd!"}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login failed with %d", resp.StatusCode)
	}
	sid := cookieValue(resp, "sid")
	if sid == "" {
		t.Fatal("login did not set a sid cookie")
	}
	return sid
}
