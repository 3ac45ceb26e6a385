package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/nahlchatbot/NahlBooking-Farm-sub000/internal/models"
	"github.com/nahlchatbot/NahlBooking-Farm-sub000/internal/services"
	"github.com/nahlchatbot/NahlBooking-Farm-sub000/internal/storage"
)

// AdminSettingsHandler manages key/value settings, including the WhatsApp
// message templates
type AdminSettingsHandler struct {
	store storage.Store
	audit *services.AuditService
}

// NewAdminSettingsHandler creates a new settings handler
func NewAdminSettingsHandler(store storage.Store, audit *services.AuditService) *AdminSettingsHandler {
	return &AdminSettingsHandler{store: store, audit: audit}
}

// List handles GET /api/admin/settings
func (h *AdminSettingsHandler) List(c *fiber.Ctx) error {
	settings, err := h.store.ListSettings()
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, "", fiber.Map{"settings": settings})
}

type settingRequest struct {
	Key   string `json:"key" validate:"required,max=200"`
	Value string `json:"value" validate:"max=2000"`
}

// Put handles PUT /api/admin/settings
func (h *AdminSettingsHandler) Put(c *fiber.Ctx) error {
	var req settingRequest
	if fields := bindJSON(c, &req); fields != nil {
		return respondValidation(c, fields)
	}

	if err := h.store.SetSetting(req.Key, req.Value); err != nil {
		return err
	}

	claims := adminClaims(c)
	h.audit.Write(claims.UserID, claims.Email, models.AuditActionUpdate, "setting", req.Key, nil)
	return respond(c, fiber.StatusOK, "تم حفظ الإعدادات", nil)
}
