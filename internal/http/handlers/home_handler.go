package handlers

import (
	applog "cocobloom/internal/log"
	"cocobloom/internal/repos"
	"cocobloom/internal/services"

	"github.com/gofiber/fiber/v2"
)

type HomeHandler struct {
	Catalog  *services.CatalogService
	Offers   *repos.OfferRepo
	Sections *repos.SectionRepo
	State    *services.Registry
}

// Home renders the marketing sections in seed order, skipping any the admin
// has hidden.
func (h *HomeHandler) Home(c *fiber.Ctx) error {
	st := h.State.For(ensureSID(c))

	sections, err := h.Sections.List()
	if err != nil {
		applog.Error(c, "home.sections.fail", err, nil)
		return c.Status(500).Render("notfound", fiber.Map{"Message": "Could not load the page"})
	}
	visible := map[string]bool{}
	for _, s := range sections {
		visible[s.Key] = s.Visible
	}

	data := fiber.Map{"Visible": visible}
	if cats, err := h.Catalog.ListCategories(); err == nil {
		data["Categories"] = cats
	}
	if visible["products"] {
		if prods, err := h.Catalog.Featured(12); err == nil {
			data["Products"] = prods
		}
	}
	if visible["offers"] {
		if offers, err := h.Offers.ListActive(); err == nil {
			data["Offers"] = offers
		}
	}
	if visible["testimonials"] {
		if ts, err := h.Sections.Testimonials(); err == nil {
			data["Testimonials"] = ts
		}
	}
	return renderState(c, st, "home", data)
}

func (h *HomeHandler) Category(c *fiber.Ctx) error {
	st := h.State.For(ensureSID(c))
	catID := c.Params("id")
	products, err := h.Catalog.ListProductsByCategory(catID, 1, 12)
	if err != nil {
		applog.Error(c, "category.list.fail", err, map[string]any{"category": catID})
		return c.Status(500).Render("notfound", fiber.Map{"Message": "Could not load this category"})
	}
	return renderState(c, st, "category", fiber.Map{"CategoryID": catID, "Products": products})
}
