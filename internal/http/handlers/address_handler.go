package handlers

import (
	"github.com/gofiber/fiber/v2"

	"stickerpress/internal/domain"
	applog "stickerpress/internal/log"
	"stickerpress/internal/services"
	"stickerpress/internal/validate"
)

type AddressHandler struct {
	Addr *services.AddressService
}

func (h *AddressHandler) List(c *fiber.Ctx) error {
	u, _ := c.Locals("user").(*domain.User)
	if u == nil {
		return c.Redirect("/login?next=%2Faddresses")
	}
	addrs, err := h.Addr.List(u.ID)
	if err != nil {
		return err
	}
	return render(c, "addresses", fiber.Map{"Addresses": addrs})
}

func (h *AddressHandler) Delete(c *fiber.Ctx) error {
	u, _ := c.Locals("user").(*domain.User)
	if u == nil {
		return c.Redirect("/login")
	}
	id, ok := validate.ID(c.FormValue("addressId"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).SendString("missing addressId")
	}
	if err := h.Addr.Delete(u.ID, id); err != nil {
		return err
	}
	applog.Audit(c, "address.delete", map[string]any{"address_id": id})
	return c.Redirect("/addresses")
}
