package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/nahlchatbot/NahlBooking-Farm-sub000/internal/models"
	"github.com/nahlchatbot/NahlBooking-Farm-sub000/internal/services"
	"github.com/nahlchatbot/NahlBooking-Farm-sub000/internal/utils"
)

// AdminAuditHandler exposes the audit trail to the dashboard
type AdminAuditHandler struct {
	audit *services.AuditService
}

// NewAdminAuditHandler creates a new audit handler
func NewAdminAuditHandler(audit *services.AuditService) *AdminAuditHandler {
	return &AdminAuditHandler{audit: audit}
}

// List handles GET /api/admin/audit
func (h *AdminAuditHandler) List(c *fiber.Ctx) error {
	filter := models.AuditListFilter{
		ActorEmail: c.Query("actor"),
		Action:     c.Query("action"),
		Entity:     c.Query("entity"),
		Page:       c.QueryInt("page", 1),
		Limit:      c.QueryInt("limit", 50),
	}
	if filter.Limit > maxPageLimit {
		filter.Limit = maxPageLimit
	}

	if from := c.Query("from"); from != "" {
		t, err := utils.ParseDate(from)
		if err != nil {
			return respondValidation(c, []FieldError{{Field: "from", Message: "expected YYYY-MM-DD"}})
		}
		filter.DateFrom = &t
	}
	if to := c.Query("to"); to != "" {
		t, err := utils.ParseDate(to)
		if err != nil {
			return respondValidation(c, []FieldError{{Field: "to", Message: "expected YYYY-MM-DD"}})
		}
		end := t.AddDate(0, 0, 1)
		filter.DateTo = &end
	}

	logs, pagination, err := h.audit.List(&filter)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, "", fiber.Map{
		"logs":       logs,
		"pagination": pagination,
	})
}
