package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"stickerpress/internal/domain"
	applog "stickerpress/internal/log"
	"stickerpress/internal/money"
	"stickerpress/internal/services"
	"stickerpress/internal/validate"
)

type OrderHandler struct {
	Cart    *services.CartService
	Order   *services.OrderService
	Addr    *services.AddressService
	Catalog *services.CatalogService
	Auth    *services.AuthService
}

// stage resolves what is being checked out: a single buy-now product when
// the buy parameter is present, the whole cart otherwise.
func (h *OrderHandler) stage(c *fiber.Ctx, sid, buy string) ([]domain.CartItem, error) {
	if buy != "" {
		id, ok := validate.ID(buy)
		if !ok {
			return nil, services.ErrNotFound
		}
		p, err := h.Catalog.Get(id)
		if err != nil {
			return nil, err
		}
		return []domain.CartItem{services.Snapshot(p)}, nil
	}
	return h.Cart.Items(sid)
}

// Checkout renders the shipping/payment form. Route is wrapped in
// RequireUser, so sign-in resumes here via the next parameter.
func (h *OrderHandler) Checkout(c *fiber.Ctx) error {
	sid := ensureSID(c)
	buy := c.Query("buy")
	items, err := h.stage(c, sid, buy)
	if err != nil {
		applog.Error(c, "checkout.load", err, nil)
		return c.Status(fiber.StatusNotFound).Render("notfound", fiber.Map{"Message": "This item is no longer available"})
	}
	if len(items) == 0 {
		// Checkout with an empty cart is unreachable by design
		return c.Redirect("/cart")
	}
	return h.renderCheckout(c, items, buy, "", fiber.StatusOK)
}

func (h *OrderHandler) renderCheckout(c *fiber.Ctx, items []domain.CartItem, buy, errMsg string, status int) error {
	prices := make([]string, len(items))
	for i, it := range items {
		prices[i] = it.Price
	}
	total, err := money.Sum(prices)
	if err != nil {
		return err
	}
	var addrs []domain.Address
	if u, ok := c.Locals("user").(*domain.User); ok && u != nil {
		addrs, _ = h.Addr.List(u.ID)
	}
	return c.Status(status).Render("checkout", fiber.Map{
		"Items": items, "Total": total, "Buy": buy,
		"Addresses": addrs, "PaymentMethods": services.PaymentMethods,
		"Err": errMsg, "User": c.Locals("user"), "CSRFToken": c.Locals("CSRFToken"),
	})
}

// Place commits the staged items as an order.
func (h *OrderHandler) Place(c *fiber.Ctx) error {
	sid := ensureSID(c)
	u, _ := c.Locals("user").(*domain.User)
	if u == nil {
		return c.Redirect("/login?next=%2Fcheckout")
	}
	buy := c.FormValue("buy")

	ship := domain.ShippingDetails{}
	allPresent := true
	for _, f := range []struct {
		field string
		dst   *string
	}{
		{"name", &ship.Name}, {"email", &ship.Email}, {"phone", &ship.Phone},
		{"address", &ship.Address}, {"city", &ship.City}, {"state", &ship.State}, {"zip", &ship.Zip},
	} {
		v, ok := validate.NonEmpty(c.FormValue(f.field))
		*f.dst = v
		allPresent = allPresent && ok
	}
	payment := c.FormValue("payment")

	if !allPresent || !services.ValidPayment(payment) {
		items, err := h.stage(c, sid, buy)
		if err != nil || len(items) == 0 {
			return c.Redirect("/cart")
		}
		msg := "Please fill out all shipping details."
		if allPresent {
			msg = "Please select a payment method."
		}
		applog.Security(c, "order.validation.fail", map[string]any{"user_id": u.ID})
		return h.renderCheckout(c, items, buy, msg, fiber.StatusBadRequest)
	}

	var (
		o   domain.Order
		err error
	)
	if buy != "" {
		id, ok := validate.ID(buy)
		if !ok {
			return c.Redirect("/cart")
		}
		o, err = h.Order.PlaceDirect(id, u.ID, ship, payment)
	} else {
		o, err = h.Order.PlaceFromCart(sid, u.ID, ship, payment)
	}
	if err != nil {
		if errors.Is(err, services.ErrEmptyCart) {
			return c.Redirect("/cart")
		}
		applog.Error(c, "order.place.fail", err, map[string]any{"user_id": u.ID})
		return err
	}

	applog.Audit(c, "order.place", map[string]any{"order_id": o.ID, "total": o.Total, "payment": o.PaymentMethod})
	return c.Redirect("/order/" + o.ID)
}

// View is the confirmation page; it auto-advances to the order history
// after 4 seconds (meta refresh in the template).
func (h *OrderHandler) View(c *fiber.Ctx) error {
	oid := c.Params("id")
	o, items, err := h.Order.Get(oid)
	if err != nil {
		return c.Status(fiber.StatusNotFound).Render("notfound", fiber.Map{"Message": "Order not found"})
	}

	u, _ := c.Locals("user").(*domain.User)
	if u == nil || (o.UserID != u.ID && !h.Auth.IsAdmin(u)) {
		applog.Security(c, "access.denied.order", map[string]any{"order_id": oid})
		return c.Status(fiber.StatusNotFound).Render("notfound", fiber.Map{"Message": "Order not found"})
	}

	return render(c, "order", fiber.Map{"Order": o, "Items": items})
}

// History lists the signed-in user's orders, newest first.
func (h *OrderHandler) History(c *fiber.Ctx) error {
	u, _ := c.Locals("user").(*domain.User)
	if u == nil {
		return c.Redirect("/login?next=%2Forders")
	}
	orders, err := h.Order.History(u.ID)
	if err != nil {
		applog.Error(c, "orders.history.fail", err, nil)
		return err
	}
	return render(c, "order_history", fiber.Map{"Orders": orders})
}
