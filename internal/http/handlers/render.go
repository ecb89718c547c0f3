package handlers

import "github.com/gofiber/fiber/v2"

func render(c *fiber.Ctx, tmpl string, data fiber.Map) error {
	if data == nil {
		data = fiber.Map{}
	}
	// Inject user/admin state if the session middleware attached it
	if u := c.Locals("user"); u != nil {
		data["User"] = u
	}
	if isAdmin, ok := c.Locals("isAdmin").(bool); ok && isAdmin {
		data["IsAdmin"] = true
	}
	// Token the CSRF middleware put into Locals; cookie as fallback
	tok, _ := c.Locals("CSRFToken").(string)
	if tok == "" {
		tok = c.Cookies("csrf_")
	}
	if tok != "" {
		data["CSRFToken"] = tok
	}
	return c.Render(tmpl, data)
}
