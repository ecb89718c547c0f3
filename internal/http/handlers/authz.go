package handlers

import (
	"net/url"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	applog "stickerpress/internal/log"
	"stickerpress/internal/services"
)

// ensureSID gives every visitor a session cookie; anonymous carts hang off
// the same id a login later binds to.
func ensureSID(c *fiber.Ctx) string {
	sid := c.Cookies("sid")
	if sid == "" {
		sid = uuid.NewString()
		c.Cookie(&fiber.Cookie{
			Name:     "sid",
			Value:    sid,
			Path:     "/",
			HTTPOnly: true,
			SameSite: fiber.CookieSameSiteLaxMode,
			Secure:   false, // set true behind TLS
		})
	}
	return sid
}

// RequireUser redirects guests to login, carrying the original path so the
// flow (e.g. checkout) resumes after sign-in.
func RequireUser(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sid := c.Cookies("sid")
		if sid == "" {
			return c.Redirect("/login?next=" + url.QueryEscape(c.OriginalURL()))
		}
		u, err := auth.CurrentUser(sid)
		if err != nil || u == nil {
			return c.Redirect("/login?next=" + url.QueryEscape(c.OriginalURL()))
		}
		c.Locals("user", u)
		return c.Next()
	}
}

// RequireAdmin sends guests to login and signed-in non-admins back home.
func RequireAdmin(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sid := c.Cookies("sid")
		if sid == "" {
			return c.Redirect("/login?next=" + url.QueryEscape(c.OriginalURL()))
		}
		u, err := auth.CurrentUser(sid)
		if err != nil || u == nil {
			return c.Redirect("/login?next=" + url.QueryEscape(c.OriginalURL()))
		}
		if !auth.IsAdmin(u) {
			applog.Security(c, "access.denied.admin", map[string]any{"user_id": u.ID})
			return c.Redirect("/")
		}
		c.Locals("user", u)
		c.Locals("isAdmin", true)
		return c.Next()
	}
}

// safeNext only allows same-site relative redirect targets.
func safeNext(next string) string {
	if next == "" || next[0] != '/' || len(next) > 1 && next[1] == '/' {
		return "/"
	}
	return next
}
