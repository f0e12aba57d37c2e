package handlers

import (
	"cocobloom/internal/services"
	"cocobloom/internal/validate"

	"github.com/gofiber/fiber/v2"
)

// OfferHandler receives view/click beacons from the storefront. Responses
// are always 204: tracking failures never reach the UI.
type OfferHandler struct {
	Tracker *services.AnalyticsTracker
}

func (h *OfferHandler) View(c *fiber.Ctx) error {
	sid := ensureSID(c)
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.SendStatus(fiber.StatusNoContent)
	}
	h.Tracker.TrackView(sid, id)
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *OfferHandler) Click(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.SendStatus(fiber.StatusNoContent)
	}
	h.Tracker.TrackClick(id)
	return c.SendStatus(fiber.StatusNoContent)
}
