package handlers

import (
	"github.com/gofiber/fiber/v2"

	"stickerpress/internal/domain"
	"stickerpress/internal/services"
)

type CatalogHandler struct {
	Catalog *services.CatalogService
}

func (h *CatalogHandler) Home(c *fiber.Ctx) error {
	products, err := h.Catalog.List()
	if err != nil {
		return err
	}
	return render(c, "home", fiber.Map{"Products": products})
}

// Category renders one of the closed category pages. Anything outside the
// set falls through to the not-found view.
func (h *CatalogHandler) Category(c *fiber.Ctx) error {
	catID := c.Params("id")
	if !domain.ValidCategory(catID) {
		return c.Status(fiber.StatusNotFound).Render("notfound", fiber.Map{"Message": "No such collection"})
	}
	products, err := h.Catalog.ListByCategory(catID)
	if err != nil {
		return err
	}
	return render(c, "category", fiber.Map{"Category": catID, "Products": products})
}
