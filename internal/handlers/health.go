package handlers

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/nahlchatbot/NahlBooking-Farm-sub000/internal/services"
)

// HealthHandler handles health check requests
type HealthHandler struct {
	Version string
	db      *gorm.DB // nil when running on the memory store
	twilio  *services.TwilioService
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(version string, db *gorm.DB, twilio *services.TwilioService) *HealthHandler {
	return &HealthHandler{Version: version, db: db, twilio: twilio}
}

// Check returns the health status of the service
func (h *HealthHandler) Check(c *fiber.Ctx) error {
	status := "healthy"
	statusCode := fiber.StatusOK

	dbHealthy := true
	if h.db != nil {
		sqlDB, err := h.db.DB()
		if err != nil || sqlDB.Ping() != nil {
			dbHealthy = false
			status = "unhealthy"
			statusCode = fiber.StatusServiceUnavailable
		}
	}

	return c.Status(statusCode).JSON(fiber.Map{
		"status":  status,
		"version": h.Version,
		"services": fiber.Map{
			"database": dbHealthy,
			"whatsapp": h.twilio.Enabled(),
		},
	})
}
