package handlers

import (
	"cocobloom/internal/services"
	"cocobloom/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type CompareHandler struct {
	Catalog *services.CatalogService
	State   *services.Registry
}

func (h *CompareHandler) Panel(c *fiber.Ctx) error {
	st := h.State.For(ensureSID(c))
	return renderState(c, st, "compare", fiber.Map{
		"Products": st.Compare.Products(),
	})
}

func (h *CompareHandler) Add(c *fiber.Ctx) error {
	st := h.State.For(ensureSID(c))
	pid, ok := validate.ID(c.FormValue("productId"))
	if !ok {
		return c.Status(400).SendString("missing productId")
	}
	p, err := h.Catalog.GetProduct(pid)
	if err != nil || !p.Active {
		return c.Status(404).Render("notfound", fiber.Map{"Message": "This item is no longer available"})
	}
	if st.Compare.Add(p) {
		st.Compare.SetOpen(true)
	}
	return c.Redirect(backTo(c, "/compare"))
}

func (h *CompareHandler) Remove(c *fiber.Ctx) error {
	st := h.State.For(ensureSID(c))
	pid, ok := validate.ID(c.FormValue("productId"))
	if !ok {
		return c.Status(400).SendString("missing productId")
	}
	st.Compare.Remove(pid)
	return c.Redirect("/compare")
}

func (h *CompareHandler) Clear(c *fiber.Ctx) error {
	st := h.State.For(ensureSID(c))
	st.Compare.Clear()
	return c.Redirect(backTo(c, "/"))
}

// Toggle flips the panel open/closed without touching the tray contents.
func (h *CompareHandler) Toggle(c *fiber.Ctx) error {
	st := h.State.For(ensureSID(c))
	st.Compare.SetOpen(!st.Compare.IsOpen())
	return c.Redirect(backTo(c, "/"))
}
