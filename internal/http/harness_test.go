package handlers_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	html "github.com/gofiber/template/html/v2"
	"github.com/jmoiron/sqlx"

	"stickerpress/internal/config"
	"stickerpress/internal/http/handlers"
	"stickerpress/internal/repos"
	"stickerpress/internal/services"
)

// newApp wires the full route table against an in-memory seeded database.
// CSRF and rate limiting are exercised in their own tests, not here.
func newApp(t *testing.T, mode string) (*fiber.App, *sqlx.DB, *services.AuthService) {
	t.Helper()
	cfg := config.Config{DBDSN: ":memory:", AdminEmail: "admin@example.com", BuyNowMode: mode}
	db, err := repos.OpenDB(cfg.DBDSN)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}

	authSvc := &services.AuthService{Users: repos.NewUserRepo(db), AdminEmail: cfg.AdminEmail}
	authH := &handlers.AuthHandler{Auth: authSvc}

	engine := html.New("../../web/templates", ".html")
	app := fiber.New(fiber.Config{Views: engine})
	app.Use(requestid.New())
	app.Use(func(c *fiber.Ctx) error {
		if sid := c.Cookies("sid"); sid != "" {
			if u, err := authSvc.CurrentUser(sid); err == nil && u != nil {
				c.Locals("user", u)
				if authSvc.IsAdmin(u) {
					c.Locals("isAdmin", true)
				}
			}
		}
		return c.Next()
	})

	deps := handlers.NewDeps(db, cfg, authSvc)

	app.Get("/", deps.CatalogHandler.Home)
	app.Get("/search", deps.SearchHandler.Search)
	app.Get("/category/:id", deps.CatalogHandler.Category)
	app.Get("/product/:id", deps.ProductHandler.Detail)

	app.Get("/cart", deps.CartHandler.View)
	app.Post("/cart", deps.CartHandler.Add)
	app.Post("/cart/remove", deps.CartHandler.Remove)
	app.Post("/buynow", deps.CartHandler.BuyNow)
	app.Get("/checkout", handlers.RequireUser(authSvc), deps.OrderHandler.Checkout)
	app.Post("/orders", handlers.RequireUser(authSvc), deps.OrderHandler.Place)
	app.Get("/order/:id", handlers.RequireUser(authSvc), deps.OrderHandler.View)
	app.Get("/orders", handlers.RequireUser(authSvc), deps.OrderHandler.History)

	app.Get("/addresses", handlers.RequireUser(authSvc), deps.AddressHandler.List)
	app.Post("/addresses/delete", handlers.RequireUser(authSvc), deps.AddressHandler.Delete)
	app.Get("/profile", handlers.RequireUser(authSvc), authH.Profile)

	app.Get("/login", authH.LoginForm)
	app.Post("/login", authH.Login)
	app.Get("/signup", authH.SignupForm)
	app.Post("/signup", authH.Signup)
	app.Post("/logout", authH.Logout)

	admin := app.Group("/admin", handlers.RequireAdmin(authSvc))
	admin.Get("/", deps.AdminHandler.Dashboard)
	admin.Get("/products", deps.AdminHandler.ProductsPage)
	admin.Post("/products", deps.AdminHandler.CreateProduct)
	admin.Post("/products/:id", deps.AdminHandler.UpdateProduct)
	admin.Post("/products/:id/delete", deps.AdminHandler.DeleteProduct)
	admin.Get("/orders", deps.AdminHandler.OrdersPage)
	admin.Get("/orders/:id", deps.AdminHandler.OrderDetail)
	admin.Post("/orders/:id/status", deps.AdminHandler.UpdateOrderStatus)
	admin.Get("/users", deps.AdminHandler.UsersPage)
	admin.Post("/users/:id/delete", deps.AdminHandler.DeleteUser)

	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).Render("notfound", fiber.Map{"Message": "Page not found"})
	})

	return app, db, authSvc
}

// signIn binds a fresh session id to a seeded account, bypassing the HTTP
// login form. The bcrypt check still runs.
func signIn(t *testing.T, auth *services.AuthService, email, pass string) string {
	t.Helper()
	sid := "sid-" + email
	if _, err := auth.Login(sid, email, pass); err != nil {
		t.Fatalf("sign in %s: %v", email, err)
	}
	return sid
}

func getPage(t *testing.T, app *fiber.App, target, sid string) *http.Response {
	t.Helper()
	req := httptest.NewRequest("GET", target, nil)
	if sid != "" {
		req.AddCookie(&http.Cookie{Name: "sid", Value: sid})
	}
	resp, err := app.Test(req, 5000)
	if err != nil {
		t.Fatalf("GET %s: %v", target, err)
	}
	return resp
}

func postForm(t *testing.T, app *fiber.App, target, sid string, form url.Values) *http.Response {
	t.Helper()
	req := httptest.NewRequest("POST", target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if sid != "" {
		req.AddCookie(&http.Cookie{Name: "sid", Value: sid})
	}
	resp, err := app.Test(req, 5000)
	if err != nil {
		t.Fatalf("POST %s: %v", target, err)
	}
	return resp
}

func bodyOf(t *testing.T, resp *http.Response) string {
	t.Helper()
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return string(b)
}

func shipForm() url.Values {
	return url.Values{
		"name": {"Demo User"}, "email": {"demo@example.com"}, "phone": {"555-0100"},
		"address": {"1 Main St"}, "city": {"Springfield"}, "state": {"VA"}, "zip": {"22150"},
		"payment": {"Online Pay"},
	}
}
