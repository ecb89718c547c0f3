package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"stickerpress/internal/domain"
	applog "stickerpress/internal/log"
	"stickerpress/internal/repos"
	"stickerpress/internal/services"
	"stickerpress/internal/validate"
)

type AdminHandler struct {
	Catalog *services.CatalogService
	Order   *services.OrderService
	Users   *repos.UserRepo
	Auth    *services.AuthService
}

// GET /admin
func (h *AdminHandler) Dashboard(c *fiber.Ctx) error {
	return render(c, "admin_dashboard", fiber.Map{})
}

// GET /admin/products
func (h *AdminHandler) ProductsPage(c *fiber.Ctx) error {
	products, err := h.Catalog.List()
	if err != nil {
		applog.Error(c, "admin.products.list.fail", err, nil)
		return err
	}
	return render(c, "admin_products", fiber.Map{"Products": products, "Categories": domain.Categories})
}

func (h *AdminHandler) productFromForm(c *fiber.Ctx) (domain.Product, string) {
	name, okName := validate.Name(c.FormValue("name"))
	price, okPrice := validate.Price(c.FormValue("price"))
	category := c.FormValue("category")
	switch {
	case !okName:
		return domain.Product{}, "invalid name"
	case !okPrice:
		return domain.Product{}, "invalid price"
	case !domain.ValidCategory(category):
		return domain.Product{}, "invalid category"
	}
	return domain.Product{
		Name:        name,
		Price:       price,
		ImageURL:    c.FormValue("imageUrl"),
		Category:    category,
		Description: c.FormValue("description"),
	}, ""
}

// POST /admin/products
func (h *AdminHandler) CreateProduct(c *fiber.Ctx) error {
	p, msg := h.productFromForm(c)
	if msg != "" {
		return c.Status(fiber.StatusBadRequest).SendString(msg)
	}
	stored, err := h.Catalog.Add(p)
	if err != nil {
		applog.Error(c, "admin.products.create.fail", err, nil)
		return c.Status(fiber.StatusBadRequest).SendString("could not save product")
	}
	applog.Audit(c, "admin.products.create", map[string]any{"product_id": stored.ID})
	return c.Redirect("/admin/products")
}

// POST /admin/products/:id — whole-record replace by id.
func (h *AdminHandler) UpdateProduct(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).SendString("missing id")
	}
	p, msg := h.productFromForm(c)
	if msg != "" {
		return c.Status(fiber.StatusBadRequest).SendString(msg)
	}
	p.ID = id
	stored, err := h.Catalog.Update(p)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).SendString("no such product")
		}
		applog.Error(c, "admin.products.update.fail", err, map[string]any{"product_id": id})
		return c.Status(fiber.StatusBadRequest).SendString("could not save product")
	}
	applog.Audit(c, "admin.products.update", map[string]any{"product_id": stored.ID})
	return c.Redirect("/admin/products")
}

// POST /admin/products/:id/delete
func (h *AdminHandler) DeleteProduct(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).SendString("missing id")
	}
	if err := h.Catalog.Delete(id); err != nil {
		applog.Error(c, "admin.products.delete.fail", err, map[string]any{"product_id": id})
		return c.Status(fiber.StatusBadRequest).SendString("could not delete product")
	}
	applog.Audit(c, "admin.products.delete", map[string]any{"product_id": id})
	return c.Redirect("/admin/products")
}

// GET /admin/orders
func (h *AdminHandler) OrdersPage(c *fiber.Ctx) error {
	orders, err := h.Order.ListLatest(100)
	if err != nil {
		applog.Error(c, "admin.orders.list.fail", err, nil)
		return err
	}
	return render(c, "admin_orders", fiber.Map{"Orders": orders})
}

// GET /admin/orders/:id — JSON detail for the order drill-down.
func (h *AdminHandler) OrderDetail(c *fiber.Ctx) error {
	o, items, err := h.Order.Get(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "order not found"})
	}
	return c.JSON(fiber.Map{"order": o, "items": items})
}

// POST /admin/orders/:id/status — free-form transition within the status set.
func (h *AdminHandler) UpdateOrderStatus(c *fiber.Ctx) error {
	id := c.Params("id")
	status := c.FormValue("status")
	if id == "" || !domain.ValidStatus(status) {
		return c.Status(fiber.StatusBadRequest).SendString("missing id or bad status")
	}
	o, err := h.Order.UpdateStatus(id, status)
	if err != nil {
		applog.Error(c, "admin.orders.update.fail", err, map[string]any{"order_id": id})
		return c.Status(fiber.StatusBadRequest).SendString("could not update status")
	}
	applog.Audit(c, "admin.orders.update", map[string]any{"order_id": o.ID, "status": o.Status})
	return c.Redirect("/admin/orders")
}

// GET /admin/users — everyone except the privileged account itself.
func (h *AdminHandler) UsersPage(c *fiber.Ctx) error {
	all, err := h.Users.List()
	if err != nil {
		applog.Error(c, "admin.users.list.fail", err, nil)
		return err
	}
	users := make([]domain.User, 0, len(all))
	for _, u := range all {
		if !h.Auth.IsAdmin(&u) {
			users = append(users, u)
		}
	}
	return render(c, "admin_users", fiber.Map{"Users": users})
}

// POST /admin/users/:id/delete
func (h *AdminHandler) DeleteUser(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).SendString("missing id")
	}
	if err := h.Users.DeleteCascade(id); err != nil {
		applog.Error(c, "admin.users.delete.fail", err, map[string]any{"user_id": id})
		return c.Status(fiber.StatusBadRequest).SendString("could not delete user")
	}
	applog.Audit(c, "admin.users.delete", map[string]any{"user_id": id})
	return c.Redirect("/admin/users")
}
