package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	applog "stickerpress/internal/log"
	"stickerpress/internal/services"
	"stickerpress/internal/validate"
)

type SearchHandler struct {
	Catalog *services.CatalogService
}

func (h *SearchHandler) Search(c *fiber.Ctx) error {
	rawQ := c.Query("q")
	if strings.TrimSpace(rawQ) == "" {
		// An empty query clears the search and goes back home
		return c.Redirect("/")
	}
	q, ok := validate.Q(rawQ)
	if !ok {
		applog.Security(c, "validation.fail", map[string]any{"field": "q", "value": rawQ})
		return c.Status(fiber.StatusBadRequest).Render("search", fiber.Map{
			"Q": "", "Products": []any{}, "Count": 0, "Err": "Enter a valid keyword (letters/numbers only)",
		})
	}

	products, err := h.Catalog.Search(q)
	if err != nil {
		applog.Error(c, "search.error", err, nil)
		return c.Status(fiber.StatusInternalServerError).Render("notfound", fiber.Map{"Message": "Could not load results. Please retry."})
	}

	// A non-empty query always shows the results view, even with zero hits
	return render(c, "search", fiber.Map{"Q": q, "Products": products, "Count": len(products)})
}
