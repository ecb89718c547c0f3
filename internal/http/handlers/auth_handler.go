package handlers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	applog "stickerpress/internal/log"
	"stickerpress/internal/services"
	"stickerpress/internal/validate"
)

type AuthHandler struct {
	Auth *services.AuthService
}

// LoginForm is the SignIn state of the auth view.
func (h *AuthHandler) LoginForm(c *fiber.Ctx) error {
	return render(c, "login", fiber.Map{"Err": "", "Next": safeNext(c.Query("next"))})
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	sid := ensureSID(c)
	email := c.FormValue("email")
	pass := c.FormValue("password")
	next := safeNext(c.FormValue("next"))

	if _, ok := validate.Email(email); !ok || pass == "" {
		applog.Security(c, "auth.login.fail", map[string]any{"email": email, "reason": "bad_format"})
		return c.Status(fiber.StatusUnauthorized).Render("login", fiber.Map{"Err": "Invalid email or password", "Next": next})
	}

	u, err := h.Auth.Login(sid, email, pass)
	if err != nil {
		applog.Security(c, "auth.login.fail", map[string]any{"email": email})
		return c.Status(fiber.StatusUnauthorized).Render("login", fiber.Map{"Err": "Invalid email or password", "Next": next})
	}

	applog.Audit(c, "auth.login.success", map[string]any{"user_id": u.ID})
	return c.Redirect(next)
}

// SignupForm is the SignUp state of the auth view.
func (h *AuthHandler) SignupForm(c *fiber.Ctx) error {
	return render(c, "signup", fiber.Map{"Err": ""})
}

// Signup transitions SignUp -> SignUpSuccess on success; the success page
// links back to SignIn.
func (h *AuthHandler) Signup(c *fiber.Ctx) error {
	name, okName := validate.Name(c.FormValue("name"))
	email, okEmail := validate.Email(c.FormValue("email"))
	pass := c.FormValue("password")

	switch {
	case !okName:
		return c.Status(fiber.StatusBadRequest).Render("signup", fiber.Map{"Err": "Please enter your name"})
	case !okEmail:
		return c.Status(fiber.StatusBadRequest).Render("signup", fiber.Map{"Err": "Please enter a valid email address"})
	case !validate.Password(pass):
		return c.Status(fiber.StatusBadRequest).Render("signup", fiber.Map{"Err": "Password must be at least 6 characters"})
	}

	u, err := h.Auth.Register(name, email, pass)
	if err != nil {
		if errors.Is(err, services.ErrEmailTaken) {
			applog.Security(c, "auth.signup.duplicate", map[string]any{"email": email})
			return c.Status(fiber.StatusConflict).Render("signup", fiber.Map{"Err": "An account with this email already exists"})
		}
		return err
	}

	applog.Audit(c, "auth.signup.success", map[string]any{"user_id": u.ID})
	return render(c, "signup_success", fiber.Map{"Name": u.Name})
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	sid := ensureSID(c)
	_ = h.Auth.Logout(sid)
	c.Cookie(&fiber.Cookie{
		Name:     "sid",
		Value:    "",
		Path:     "/",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Expires:  time.Now().Add(-1 * time.Hour),
	})
	applog.Audit(c, "auth.logout", nil)
	return c.Redirect("/")
}

// Profile shows the signed-in account. Route is wrapped in RequireUser.
func (h *AuthHandler) Profile(c *fiber.Ctx) error {
	return render(c, "profile", fiber.Map{})
}
