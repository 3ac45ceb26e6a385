package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/nahlchatbot/NahlBooking-Farm-sub000/internal/services"
)

// AdminDashboardHandler serves the dashboard landing stats
type AdminDashboardHandler struct {
	dashboard *services.DashboardService
}

// NewAdminDashboardHandler creates a new dashboard handler
func NewAdminDashboardHandler(dashboard *services.DashboardService) *AdminDashboardHandler {
	return &AdminDashboardHandler{dashboard: dashboard}
}

// Stats handles GET /api/admin/dashboard
func (h *AdminDashboardHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.dashboard.Stats()
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, "", stats)
}
