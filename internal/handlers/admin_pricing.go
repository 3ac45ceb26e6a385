package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/nahlchatbot/NahlBooking-Farm-sub000/internal/models"
	"github.com/nahlchatbot/NahlBooking-Farm-sub000/internal/services"
	"github.com/nahlchatbot/NahlBooking-Farm-sub000/internal/storage"
)

// AdminPricingHandler manages the legacy price list and the chalet matrix
type AdminPricingHandler struct {
	store storage.Store
	audit *services.AuditService
}

// NewAdminPricingHandler creates a new pricing handler
func NewAdminPricingHandler(store storage.Store, audit *services.AuditService) *AdminPricingHandler {
	return &AdminPricingHandler{store: store, audit: audit}
}

// List handles GET /api/admin/pricing
func (h *AdminPricingHandler) List(c *fiber.Ctx) error {
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

type pricingRequest struct {
	VisitType     string  `json:"visitType" validate:"required"`
	TotalPrice    float64 `json:"totalPrice" validate:"required,gte=0"`
	DepositAmount float64 `json:"depositAmount" validate:"gte=0"`
}

// UpsertLegacy handles PUT /api/admin/pricing
func (h *AdminPricingHandler) UpsertLegacy(c *fiber.Ctx) error {
	var req pricingRequest
	if fields := bindJSON(c, &req); fields != nil {
		return respondValidation(c, fields)
	}

	vt, ok := models.VisitTypeFromLabel(req.VisitType)
	if !ok {
		return respondValidation(c, []FieldError{{Field: "visitType", Message: "unknown visit type"}})
	}

	pricing := &models.Pricing{
		VisitType:     vt,
		TotalPrice:    req.TotalPrice,
		DepositAmount: req.DepositAmount,
	}
	if err := h.store.UpsertPricing(pricing); err != nil {
		return err
	}

	claims := adminClaims(c)
	h.audit.Write(claims.UserID, claims.Email, models.AuditActionUpdate, "pricing",
		string(vt), fiber.Map{"total": req.TotalPrice})
	return respond(c, fiber.StatusOK, "تم تحديث الأسعار", pricing)
}

type chaletPricingRequest struct {
	ChaletID      uint    `json:"chaletId" validate:"required"`
	VisitType     string  `json:"visitType" validate:"required"`
	TotalPrice    float64 `json:"totalPrice" validate:"required,gte=0"`
	DepositAmount float64 `json:"depositAmount" validate:"gte=0"`
}

// UpsertMatrix handles PUT /api/admin/pricing/matrix
func (h *AdminPricingHandler) UpsertMatrix(c *fiber.Ctx) error {
	var req chaletPricingRequest
	if fields := bindJSON(c, &req); fields != nil {
		return respondValidation(c, fields)
	}

	vt, ok := models.VisitTypeFromLabel(req.VisitType)
	if !ok {
		return respondValidation(c, []FieldError{{Field: "visitType", Message: "unknown visit type"}})
	}
	if _, err := h.store.GetChalet(req.ChaletID); err != nil {
		return models.ErrChaletNotFound
	}

	pricing := &models.ChaletPricing{
		ChaletID:      req.ChaletID,
		VisitType:     vt,
		TotalPrice:    req.TotalPrice,
		DepositAmount: req.DepositAmount,
	}
	if err := h.store.UpsertChaletPricing(pricing); err != nil {
		return err
	}

	claims := adminClaims(c)
	h.audit.Write(claims.UserID, claims.Email, models.AuditActionUpdate, "chalet_pricing",
		string(vt), fiber.Map{"chalet_id": req.ChaletID, "total": req.TotalPrice})
	return respond(c, fiber.StatusOK, "تم تحديث أسعار الشاليه", pricing)
}
