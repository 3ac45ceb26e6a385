package handlers

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/nahlchatbot/NahlBooking-Farm-sub000/internal/models"
	"github.com/nahlchatbot/NahlBooking-Farm-sub000/internal/services"
	"github.com/nahlchatbot/NahlBooking-Farm-sub000/internal/storage"
	"github.com/nahlchatbot/NahlBooking-Farm-sub000/internal/utils"
)

// AdminBlackoutHandler manages blackout dates
type AdminBlackoutHandler struct {
	store storage.Store
	audit *services.AuditService
}

// NewAdminBlackoutHandler creates a new blackout handler
func NewAdminBlackoutHandler(store storage.Store, audit *services.AuditService) *AdminBlackoutHandler {
	return &AdminBlackoutHandler{store: store, audit: audit}
}

// List handles GET /api/admin/blackouts
func (h *AdminBlackoutHandler) List(c *fiber.Ctx) error {
	blackouts, err := h.store.ListBlackouts()
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, "", fiber.Map{"blackouts": blackouts})
}

type createBlackoutRequest struct {
	Date      string  `json:"date" validate:"required"`
	VisitType *string `json:"visitType"` // omitted means both types
	ChaletID  *uint   `json:"chaletId"`  // omitted means global
	Reason    string  `json:"reason" validate:"omitempty,max=500"`
}

// Create handles POST /api/admin/blackouts
func (h *AdminBlackoutHandler) Create(c *fiber.Ctx) error {
	var req createBlackoutRequest
	if fields := bindJSON(c, &req); fields != nil {
		return respondValidation(c, fields)
	}

	date, err := utils.ParseDate(req.Date)
	if err != nil {
		return respondValidation(c, []FieldError{{Field: "date", Message: "must be YYYY-MM-DD"}})
	}

	blackout := &models.BlackoutDate{
		Date:   date,
		Reason: req.Reason,
	}
	if req.VisitType != nil {
		vt, ok := models.VisitTypeFromLabel(*req.VisitType)
		if !ok {
			return respondValidation(c, []FieldError{{Field: "visitType", Message: "unknown visit type"}})
		}
		blackout.VisitType = &vt
	}
	if req.ChaletID != nil {
		if _, err := h.store.GetChalet(*req.ChaletID); err != nil {
			return models.ErrChaletNotFound
		}
		blackout.ChaletID = req.ChaletID
	}

	claims := adminClaims(c)
	blackout.CreatedBy = claims.Email

	created, err := h.store.CreateBlackout(blackout)
	if err != nil {
		return err
	}

	h.audit.Write(claims.UserID, claims.Email, models.AuditActionCreate, "blackout_date",
		strconv.FormatUint(uint64(created.ID), 10), fiber.Map{"date": req.Date})
	return respond(c, fiber.StatusCreated, "تم إضافة تاريخ الإغلاق", created)
}

// Delete handles DELETE /api/admin/blackouts/:id
func (h *AdminBlackoutHandler) Delete(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return models.ErrBlackoutNotFound
	}

	if err := h.store.DeleteBlackout(uint(id)); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return models.ErrBlackoutNotFound
		}
		return err
	}

	claims := adminClaims(c)
	h.audit.Write(claims.UserID, claims.Email, models.AuditActionDelete, "blackout_date",
		c.Params("id"), nil)
	return respond(c, fiber.StatusOK, "تم حذف تاريخ الإغلاق", nil)
}
