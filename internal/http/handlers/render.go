package handlers

import (
	"cocobloom/internal/domain"
	"cocobloom/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// currentUser returns the user the attach middleware placed on the context,
// or nil for anonymous requests.
func currentUser(c *fiber.Ctx) *domain.User {
	u, _ := c.Locals("user").(*domain.User)
	return u
}

func ensureSID(c *fiber.Ctx) string {
	sid := c.Cookies("sid")
	if sid == "" {
		sid = uuid.NewString()
		c.Cookie(&fiber.Cookie{
			Name:     "sid",
			Value:    sid,
			Path:     "/",
			HTTPOnly: true,
			SameSite: fiber.CookieSameSiteLaxMode,
			Secure:   false, // set true behind HTTPS
		})
	}
	return sid
}

func render(c *fiber.Ctx, tmpl string, data fiber.Map) error {
	if data == nil {
		data = fiber.Map{}
	}
	if u := c.Locals("user"); u != nil {
		data["User"] = u
	}
	tok, _ := c.Locals("CSRFToken").(string)
	if tok == "" {
		tok = c.Cookies("csrf_")
	}
	if tok != "" {
		data["CSRFToken"] = tok
	}
	return c.Render(tmpl, data)
}

// renderState renders a page with the session's pending notices and the
// cart/compare badges every page shows.
func renderState(c *fiber.Ctx, st *services.SessionState, tmpl string, data fiber.Map) error {
	if data == nil {
		data = fiber.Map{}
	}
	data["Notices"] = st.DrainNotices()
	data["CartCount"] = st.Cart.TotalItems()
	data["CompareCount"] = st.Compare.Len()
	data["CompareOpen"] = st.Compare.IsOpen()
	return render(c, tmpl, data)
}

func backTo(c *fiber.Ctx, fallback string) string {
	if back := c.Get("Referer"); back != "" {
		return back
	}
	return fallback
}
