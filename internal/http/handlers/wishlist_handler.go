package handlers

import (
	"errors"

	applog "cocobloom/internal/log"
	"cocobloom/internal/repos"
	"cocobloom/internal/services"
	"cocobloom/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type WishlistHandler struct {
	Wishes *repos.WishlistRepo
	State  *services.Registry
}

func (h *WishlistHandler) List(c *fiber.Ctx) error {
	st := h.State.For(ensureSID(c))
	u := currentUser(c)
	if u == nil {
		return renderState(c, st, "wishlist", fiber.Map{"Items": nil})
	}
	items, err := h.Wishes.Products(u.ID)
	if err != nil {
		applog.Error(c, "wishlist.list.fail", err, nil)
		return c.Status(500).Render("notfound", fiber.Map{"Message": "Could not load wishlist"})
	}
	return renderState(c, st, "wishlist", fiber.Map{"Items": items})
}

// Toggle flips membership; there are no separate save/unsave entry points.
func (h *WishlistHandler) Toggle(c *fiber.Ctx) error {
	st := h.State.For(ensureSID(c))
	pid, ok := validate.ID(c.FormValue("productId"))
	if !ok {
		return c.Status(400).SendString("missing productId")
	}
	added, err := st.Wishlist.Toggle(pid)
	if err != nil {
		if errors.Is(err, services.ErrSignInRequired) {
			return c.Redirect("/login")
		}
		applog.Error(c, "wishlist.toggle.fail", err, map[string]any{"product": pid})
		return c.Status(500).SendString("Could not update wishlist")
	}
	applog.Audit(c, "wishlist.toggle", map[string]any{"product": pid, "member": added})
	return c.Redirect(backTo(c, "/wishlist"))
}
