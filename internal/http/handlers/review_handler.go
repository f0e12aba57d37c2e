package handlers

import (
	"errors"

	applog "cocobloom/internal/log"
	"cocobloom/internal/services"
	"cocobloom/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type ReviewHandler struct {
	Reviews *services.ReviewService
	State   *services.Registry
}

// Submit creates or replaces the signed-in user's review for a product, then
// redirects back to the product page so the list and average refetch.
func (h *ReviewHandler) Submit(c *fiber.Ctx) error {
	st := h.State.For(ensureSID(c))
	pid, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(400).SendString("missing product id")
	}
	rating, ok := validate.Rating(c.FormValue("rating"))
	if !ok {
		st.Notify(services.NoticeError, "Please pick a rating between 1 and 5")
		return c.Redirect("/product/" + pid)
	}
	comment, ok := validate.Comment(c.FormValue("comment"))
	if !ok {
		st.Notify(services.NoticeError, "Comment is too long")
		return c.Redirect("/product/" + pid)
	}

	if err := h.Reviews.Submit(currentUser(c), pid, rating, comment); err != nil {
		if errors.Is(err, services.ErrSignInRequired) {
			st.Notify(services.NoticeInfo, "Please sign in to review this product")
			return c.Redirect("/login")
		}
		applog.Error(c, "review.submit.fail", err, map[string]any{"product": pid})
		st.Notify(services.NoticeError, "Could not save your review, please try again")
		return c.Redirect("/product/" + pid)
	}
	applog.Audit(c, "review.submit", map[string]any{"product": pid, "rating": rating})
	st.Notify(services.NoticeSuccess, "Thanks for your review!")
	return c.Redirect("/product/" + pid)
}
