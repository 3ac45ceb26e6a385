package handlers

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/nahlchatbot/NahlBooking-Farm-sub000/internal/models"
	"github.com/nahlchatbot/NahlBooking-Farm-sub000/internal/services"
	"github.com/nahlchatbot/NahlBooking-Farm-sub000/internal/storage"
)

// AdminChaletHandler manages chalets
type AdminChaletHandler struct {
	store storage.Store
	audit *services.AuditService
}

// NewAdminChaletHandler creates a new chalet handler
func NewAdminChaletHandler(store storage.Store, audit *services.AuditService) *AdminChaletHandler {
	return &AdminChaletHandler{store: store, audit: audit}
}

func chaletIDParam(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return 0, models.ErrChaletNotFound
	}
	return uint(id), nil
}

// List handles GET /api/admin/chalets — includes inactive units
func (h *AdminChaletHandler) List(c *fiber.Ctx) error {
	chalets, err := h.store.ListChalets(false)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, "", fiber.Map{"chalets": chalets})
}

type chaletRequest struct {
	NameAr    string `json:"nameAr" validate:"required,max=100"`
	NameEn    string `json:"nameEn" validate:"required,max=100"`
	Slug      string `json:"slug" validate:"required,max=100"`
	MaxGuests int    `json:"maxGuests" validate:"required,min=1,max=500"`
	IsActive  *bool  `json:"isActive"`
	SortOrder int    `json:"sortOrder"`
}

// Create handles POST /api/admin/chalets
func (h *AdminChaletHandler) Create(c *fiber.Ctx) error {
	var req chaletRequest
	if fields := bindJSON(c, &req); fields != nil {
		return respondValidation(c, fields)
	}

	chalet := &models.Chalet{
		NameAr:    req.NameAr,
		NameEn:    req.NameEn,
		Slug:      req.Slug,
		MaxGuests: req.MaxGuests,
		IsActive:  true,
		SortOrder: req.SortOrder,
	}
	if req.IsActive != nil {
		chalet.IsActive = *req.IsActive
	}

	created, err := h.store.CreateChalet(chalet)
	if err != nil {
		return err
	}

	claims := adminClaims(c)
	h.audit.Write(claims.UserID, claims.Email, models.AuditActionCreate, "chalet",
		strconv.FormatUint(uint64(created.ID), 10), fiber.Map{"slug": created.Slug})
	return respond(c, fiber.StatusCreated, "تم إضافة الشاليه", created)
}

// Update handles PUT /api/admin/chalets/:id
func (h *AdminChaletHandler) Update(c *fiber.Ctx) error {
	id, err := chaletIDParam(c)
	if err != nil {
		return err
	}

	chalet, err := h.store.GetChalet(id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return models.ErrChaletNotFound
		}
		return err
	}

	var req chaletRequest
	if fields := bindJSON(c, &req); fields != nil {
		return respondValidation(c, fields)
	}

	chalet.NameAr = req.NameAr
	chalet.NameEn = req.NameEn
	chalet.Slug = req.Slug
	chalet.MaxGuests = req.MaxGuests
	chalet.SortOrder = req.SortOrder
	if req.IsActive != nil {
		chalet.IsActive = *req.IsActive
	}

	if err := h.store.UpdateChalet(chalet); err != nil {
		return err
	}

	claims := adminClaims(c)
	h.audit.Write(claims.UserID, claims.Email, models.AuditActionUpdate, "chalet",
		c.Params("id"), fiber.Map{"slug": chalet.Slug})
	return respond(c, fiber.StatusOK, "تم تحديث الشاليه", chalet)
}

// Delete handles DELETE /api/admin/chalets/:id
func (h *AdminChaletHandler) Delete(c *fiber.Ctx) error {
	id, err := chaletIDParam(c)
	if err != nil {
		return err
	}

	if err := h.store.DeleteChalet(id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return models.ErrChaletNotFound
		}
		return err
	}

	claims := adminClaims(c)
	h.audit.Write(claims.UserID, claims.Email, models.AuditActionDelete, "chalet",
		c.Params("id"), nil)
	return respond(c, fiber.StatusOK, "تم حذف الشاليه", nil)
}
