package handlers

import (
	"cocobloom/internal/log"
	"cocobloom/internal/services"
	"cocobloom/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type ProductHandler struct {
	Catalog *services.CatalogService
	Reviews *services.ReviewService
	State   *services.Registry
}

func (h *ProductHandler) Detail(c *fiber.Ctx) error {
	st := h.State.For(ensureSID(c))
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		log.Security(c, "validation.fail", map[string]any{"field": "product"})
		return c.Status(404).Render("notfound", fiber.Map{"Message": "This item is no longer available"})
	}
	p, err := h.Catalog.GetProduct(id)
	if err != nil || p.ID == "" || !p.Active {
		return c.Status(404).Render("notfound", fiber.Map{"Message": "This item is no longer available"})
	}

	var user = currentUser(c)
	pr, err := h.Reviews.Fetch(id, user)
	if err != nil {
		log.Error(c, "reviews.fetch.fail", err, map[string]any{"product": id})
		// Reviews are not load-bearing for the page; render without them.
		pr = services.ProductReviews{}
	}

	return renderState(c, st, "product", fiber.Map{
		"P":          p,
		"Reviews":    pr.Reviews,
		"MyReview":   pr.Mine,
		"AvgRating":  pr.Average,
		"InCompare":  st.Compare.IsIn(id),
		"InWishlist": st.Wishlist.IsIn(id),
	})
}
