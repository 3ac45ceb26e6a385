package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/nahlchatbot/NahlBooking-Farm-sub000/internal/storage"
)

// PublicHandler serves chalet and pricing listings for the booking site
type PublicHandler struct {
	store storage.Store
}

// NewPublicHandler creates a new public handler
func NewPublicHandler(store storage.Store) *PublicHandler {
	return &PublicHandler{store: store}
}

// ListChalets handles GET /api/chalets — active chalets in display order
func (h *PublicHandler) ListChalets(c *fiber.Ctx) error {
	chalets, err := h.store.ListChalets(true)
	if err != nil {
		return err
	}

	language := lang(c)
	items := make([]fiber.Map, 0, len(chalets))
	for _, chalet := range chalets {
		items = append(items, fiber.Map{
			"id":         chalet.ID,
			"name":       chalet.Name(language),
			"slug":       chalet.Slug,
			"max_guests": chalet.MaxGuests,
		})
	}
	return respond(c, fiber.StatusOK, "", fiber.Map{"chalets": items})
}

// ListPricing handles GET /api/pricing — the legacy list plus the chalet
// matrix, as the booking site renders both
func (h *PublicHandler) ListPricing(c *fiber.Ctx) error {
	legacy, err := h.store.ListPricing()
	if err != nil {
		return err
	}
	matrix, err := h.store.ListChaletPricing()
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, "", fiber.Map{
		"pricing": legacy,
		"matrix":  matrix,
	})
}
