package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/nahlchatbot/NahlBooking-Farm-sub000/internal/models"
	"github.com/nahlchatbot/NahlBooking-Farm-sub000/internal/services"
	"github.com/nahlchatbot/NahlBooking-Farm-sub000/internal/utils"
)

// Hard cap on page size for admin listings
const maxPageLimit = 100

// AdminBookingHandler serves the dashboard booking endpoints
type AdminBookingHandler struct {
	bookings *services.BookingService
}

// NewAdminBookingHandler creates a new admin booking handler
func NewAdminBookingHandler(bookings *services.BookingService) *AdminBookingHandler {
	return &AdminBookingHandler{bookings: bookings}
}

func idParam(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return 0, models.ErrBookingNotFound
	}
	return uint(id), nil
}

// List handles GET /api/admin/bookings
func (h *AdminBookingHandler) List(c *fiber.Ctx) error {
	filter := &models.BookingListFilter{
		Status: c.Query("status"),
		Search: c.Query("search"),
		Page:   c.QueryInt("page", 1),
		Limit:  c.QueryInt("limit", 20),
	}
	if filter.Limit > maxPageLimit {
		filter.Limit = maxPageLimit
	}
	if label := c.Query("visitType"); label != "" {
		if vt, ok := models.VisitTypeFromLabel(label); ok {
			filter.VisitType = &vt
		}
	}
	if raw := c.Query("dateFrom"); raw != "" {
		if d, err := utils.ParseDate(raw); err == nil {
			filter.DateFrom = &d
		}
	}
	if raw := c.Query("dateTo"); raw != "" {
		if d, err := utils.ParseDate(raw); err == nil {
			filter.DateTo = &d
		}
	}

	bookings, pagination, err := h.bookings.List(filter)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, "", fiber.Map{
		"bookings":   bookings,
		"pagination": pagination,
	})
}

// Get handles GET /api/admin/bookings/:id
func (h *AdminBookingHandler) Get(c *fiber.Ctx) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	booking, err := h.bookings.GetByID(id)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, "", booking)
}

type adminBookingPatch struct {
	Status         *string `json:"status"`
	PaymentStatus  *string `json:"paymentStatus"`
	AdminConfirmed *bool   `json:"adminConfirmed"`
	Notes          *string `json:"notes"`
}

// Update handles PATCH /api/admin/bookings/:id
func (h *AdminBookingHandler) Update(c *fiber.Ctx) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}

	var req adminBookingPatch
	if fields := bindJSON(c, &req); fields != nil {
		return respondValidation(c, fields)
	}

	claims := adminClaims(c)
	booking, err := h.bookings.AdminUpdate(id, &services.AdminUpdateInput{
		Status:         req.Status,
		PaymentStatus:  req.PaymentStatus,
		AdminConfirmed: req.AdminConfirmed,
		Notes:          req.Notes,
	}, claims.UserID, claims.Email)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, "تم تحديث الحجز", booking)
}

type adminCancelRequest struct {
	Reason string `json:"reason" validate:"omitempty,max=500"`
}

// Cancel handles POST /api/admin/bookings/:id/cancel
func (h *AdminBookingHandler) Cancel(c *fiber.Ctx) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}

	// Body is optional; an omitted reason gets the default
	var req adminCancelRequest
	if len(c.Body()) > 0 {
		if fields := bindJSON(c, &req); fields != nil {
			return respondValidation(c, fields)
		}
	}

	claims := adminClaims(c)
	booking, err := h.bookings.AdminCancel(id, req.Reason, claims.UserID, claims.Email)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, "تم إلغاء الحجز", booking)
}
