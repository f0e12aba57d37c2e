package handlers

import (
	applog "cocobloom/internal/log"
	"cocobloom/internal/repos"

	"github.com/gofiber/fiber/v2"
)

type AdminHandler struct {
	OrderRepo *repos.OrderRepo
	Sections  *repos.SectionRepo
	Analytics *repos.AnalyticsRepo
	Users     *repos.UserRepo
}

// GET /admin
func (h *AdminHandler) Dashboard(c *fiber.Ctx) error {
	stats, _ := h.Analytics.ListRecent(30)
	ords, _ := h.OrderRepo.ListLatest(10)
	return render(c, "admin_dashboard", fiber.Map{"Stats": stats, "Orders": ords})
}

// GET /admin/orders
func (h *AdminHandler) OrdersPage(c *fiber.Ctx) error {
	ords, err := h.OrderRepo.ListLatest(100)
	if err != nil {
		applog.Error(c, "admin.orders.list.fail", err, nil)
		return c.Status(500).Render("notfound", fiber.Map{"Message": "Could not load orders"})
	}
	return render(c, "admin_orders", fiber.Map{"Orders": ords})
}

// POST /admin/orders/:id/status
func (h *AdminHandler) UpdateOrderStatus(c *fiber.Ctx) error {
	id := c.Params("id")
	status := c.FormValue("status")
	if id == "" || !validStatus(status) {
		return c.Status(400).SendString("missing or invalid id/status")
	}
	if err := h.OrderRepo.UpdateStatus(id, status); err != nil {
		applog.Error(c, "admin.orders.update.fail", err, map[string]any{"order_id": id})
		return c.Status(400).SendString("could not update status")
	}
	applog.Audit(c, "admin.orders.update", map[string]any{"order_id": id, "status": status})
	return c.Redirect("/admin/orders")
}

func validStatus(s string) bool {
	switch s {
	case "PLACED", "PACKED", "SHIPPED", "DELIVERED", "CANCELED":
		return true
	}
	return false
}

// GET /admin/sections
func (h *AdminHandler) SectionsPage(c *fiber.Ctx) error {
	sections, err := h.Sections.List()
	if err != nil {
		applog.Error(c, "admin.sections.list.fail", err, nil)
		return c.Status(500).Render("notfound", fiber.Map{"Message": "Could not load sections"})
	}
	return render(c, "admin_sections", fiber.Map{"Sections": sections})
}

// POST /admin/sections
func (h *AdminHandler) ToggleSection(c *fiber.Ctx) error {
	key := c.FormValue("key")
	visible := c.FormValue("visible") == "1"
	if key == "" {
		return c.Status(400).SendString("missing key")
	}
	if err := h.Sections.SetVisible(key, visible); err != nil {
		applog.Error(c, "admin.sections.toggle.fail", err, map[string]any{"key": key})
		return c.Status(400).SendString("could not update section")
	}
	applog.Audit(c, "admin.sections.toggle", map[string]any{"key": key, "visible": visible})
	return c.Redirect("/admin/sections")
}

// UsersPage lists users (excluding admins).
func (h *AdminHandler) UsersPage(c *fiber.Ctx) error {
	var users []struct {
		ID    string `db:"id"`
		Email string `db:"email"`
		Name  string `db:"name"`
		Role  string `db:"role"`
	}
	if err := h.Users.DB.Select(&users, `SELECT id,email,name,role FROM users WHERE role != 'ADMIN' ORDER BY email`); err != nil {
		applog.Error(c, "admin.users.list.fail", err, nil)
		return c.Status(500).Render("notfound", fiber.Map{"Message": "Could not load users"})
	}
	return render(c, "admin_users", fiber.Map{"Users": users})
}

// DeleteUser deletes a user and related data, cancels their orders.
func (h *AdminHandler) DeleteUser(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(400).SendString("missing id")
	}
	if err := h.Users.DeleteUserCascade(id); err != nil {
		applog.Error(c, "admin.users.delete.fail", err, map[string]any{"user_id": id})
		return c.Status(400).SendString("could not delete user")
	}
	applog.Audit(c, "admin.users.delete", map[string]any{"user_id": id})
	return c.Redirect("/admin/users")
}
