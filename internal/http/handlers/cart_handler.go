package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"stickerpress/internal/config"
	applog "stickerpress/internal/log"
	"stickerpress/internal/services"
	"stickerpress/internal/validate"
)

type CartHandler struct {
	Cart *services.CartService
	Mode string // config.BuyNowDirect | config.BuyNowCart
}

func (h *CartHandler) View(c *fiber.Ctx) error {
	sid := ensureSID(c)
	cv, err := h.Cart.View(sid)
	if err != nil {
		return err
	}
	return render(c, "cart", fiber.Map{"Cart": cv})
}

func (h *CartHandler) Add(c *fiber.Ctx) error {
	sid := ensureSID(c)
	productID, ok := validate.ID(c.FormValue("productId"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).SendString("missing productId")
	}
	if err := h.Cart.Add(sid, productID); err != nil {
		applog.Error(c, "cart.add.fail", err, map[string]any{"product_id": productID})
		return c.Status(fiber.StatusNotFound).Render("notfound", fiber.Map{"Message": "This item is no longer available"})
	}
	return c.Redirect("/cart")
}

// Remove drops every staged unit of the product (remove-all semantics).
func (h *CartHandler) Remove(c *fiber.Ctx) error {
	sid := ensureSID(c)
	productID, ok := validate.ID(c.FormValue("productId"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).SendString("missing productId")
	}
	if err := h.Cart.Remove(sid, productID); err != nil {
		return err
	}
	return c.Redirect("/cart")
}

// BuyNow behavior is a configured policy: direct checkout for one product,
// or add-to-cart-and-show-cart.
func (h *CartHandler) BuyNow(c *fiber.Ctx) error {
	sid := ensureSID(c)
	productID, ok := validate.ID(c.FormValue("productId"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).SendString("missing productId")
	}
	if h.Mode == config.BuyNowCart {
		if err := h.Cart.Add(sid, productID); err != nil {
			return c.Status(fiber.StatusNotFound).Render("notfound", fiber.Map{"Message": "This item is no longer available"})
		}
		return c.Redirect("/cart")
	}
	return c.Redirect("/checkout?buy=" + strconv.FormatInt(productID, 10))
}
