package handlers

import (
	"errors"

	applog "cocobloom/internal/log"
	"cocobloom/internal/repos"
	"cocobloom/internal/services"
	"cocobloom/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type OrderHandler struct {
	Order *services.OrderService
	Repo  *repos.OrderRepo
	State *services.Registry
}

func (h *OrderHandler) Checkout(c *fiber.Ctx) error {
	st := h.State.For(ensureSID(c))
	return renderState(c, st, "checkout", fiber.Map{
		"Lines":      st.Cart.Lines(),
		"TotalPrice": st.Cart.TotalPrice(),
	})
}

func (h *OrderHandler) Place(c *fiber.Ctx) error {
	sid := ensureSID(c)
	st := h.State.For(sid)

	email, ok := validate.Email(c.FormValue("email"))
	if !ok {
		applog.Security(c, "validation.fail", map[string]any{"field": "email"})
		return c.Status(fiber.StatusBadRequest).SendString("invalid email")
	}
	name, ok := validate.Name(c.FormValue("name"))
	if !ok {
		applog.Security(c, "validation.fail", map[string]any{"field": "name"})
		return c.Status(fiber.StatusBadRequest).SendString("name must be 1-40 characters")
	}
	// Optional offer attribution carried through from the offer page.
	offerID := c.FormValue("offerId")
	if offerID != "" {
		if _, ok := validate.ID(offerID); !ok {
			offerID = ""
		}
	}

	contact := services.Contact{Name: name, Email: email}
	orderID, total, err := h.Order.Place(currentUser(c), sid, contact, offerID)
	if err != nil {
		if errors.Is(err, services.ErrSignInRequired) {
			st.Notify(services.NoticeInfo, "Please sign in to place your order")
			return c.Redirect("/login")
		}
		applog.Security(c, "order.place.fail", map[string]any{"sid": sid, "error": err.Error()})
		return c.Status(fiber.StatusBadRequest).SendString("Could not place order. Please review your cart and try again.")
	}

	st.Cart.ClearCart()
	applog.Audit(c, "order.place", map[string]any{"order_id": orderID, "total": total, "offer_id": offerID})
	return c.Redirect("/order/" + orderID)
}

func (h *OrderHandler) View(c *fiber.Ctx) error {
	st := h.State.For(ensureSID(c))
	id := c.Params("id")
	o, items, err := h.Repo.Get(id)
	if err != nil {
		return c.Status(404).Render("notfound", fiber.Map{"Message": "Order not found"})
	}
	// Only the owner or an admin may see an order.
	u := currentUser(c)
	if u == nil || (o.UserID != u.ID && !u.IsAdmin()) {
		applog.Security(c, "order.view.denied", map[string]any{"order_id": id})
		return c.Status(404).Render("notfound", fiber.Map{"Message": "Order not found"})
	}
	return renderState(c, st, "order", fiber.Map{"Order": o, "Items": items})
}

func (h *OrderHandler) History(c *fiber.Ctx) error {
	st := h.State.For(ensureSID(c))
	u := currentUser(c)
	if u == nil {
		return c.Redirect("/login")
	}
	orders, err := h.Repo.ListByUser(u.ID)
	if err != nil {
		applog.Error(c, "orders.history.fail", err, nil)
		return c.Status(500).Render("notfound", fiber.Map{"Message": "Could not load your orders"})
	}
	return renderState(c, st, "orders", fiber.Map{"Orders": orders})
}
