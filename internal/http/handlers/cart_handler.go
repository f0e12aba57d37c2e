package handlers

import (
	"errors"

	applog "cocobloom/internal/log"
	"cocobloom/internal/services"
	"cocobloom/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type CartHandler struct {
	Catalog *services.CatalogService
	State   *services.Registry
}

func (h *CartHandler) View(c *fiber.Ctx) error {
	st := h.State.For(ensureSID(c))
	return renderState(c, st, "cart", fiber.Map{
		"Lines":      st.Cart.Lines(),
		"TotalItems": st.Cart.TotalItems(),
		"TotalPrice": st.Cart.TotalPrice(),
	})
}

func (h *CartHandler) Add(c *fiber.Ctx) error {
	st := h.State.For(ensureSID(c))
	pid, ok := validate.ID(c.FormValue("productId"))
	if !ok {
		return c.Status(400).SendString("missing productId")
	}
	p, err := h.Catalog.GetProduct(pid)
	if err != nil || !p.Active {
		return c.Status(404).Render("notfound", fiber.Map{"Message": "This item is no longer available"})
	}
	if err := st.Cart.AddToCart(p); err != nil {
		if errors.Is(err, services.ErrSignInRequired) {
			return c.Redirect("/login")
		}
		applog.Error(c, "cart.add.fail", err, map[string]any{"product": pid})
		return c.Status(500).SendString("Could not add item")
	}
	applog.Audit(c, "cart.add", map[string]any{"product": pid})
	return c.Redirect(backTo(c, "/cart"))
}

func (h *CartHandler) UpdateQty(c *fiber.Ctx) error {
	st := h.State.For(ensureSID(c))
	pid, ok := validate.ID(c.FormValue("productId"))
	if !ok {
		return c.Status(400).SendString("missing productId")
	}
	qty := validate.Qty(c.FormValue("qty"))
	st.Cart.UpdateQuantity(pid, qty)
	applog.Audit(c, "cart.update", map[string]any{"product": pid, "qty": qty})
	return c.Redirect("/cart")
}

func (h *CartHandler) Remove(c *fiber.Ctx) error {
	st := h.State.For(ensureSID(c))
	pid, ok := validate.ID(c.FormValue("productId"))
	if !ok {
		return c.Status(400).SendString("missing productId")
	}
	st.Cart.RemoveFromCart(pid)
	applog.Audit(c, "cart.remove", map[string]any{"product": pid})
	return c.Redirect("/cart")
}

func (h *CartHandler) Clear(c *fiber.Ctx) error {
	st := h.State.For(ensureSID(c))
	st.Cart.ClearCart()
	applog.Audit(c, "cart.clear", nil)
	return c.Redirect("/cart")
}
