package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/nahlchatbot/NahlBooking-Farm-sub000/internal/services"
)

// Localized human messages keyed off the availability reason
var availabilityMessages = map[string]map[string]string{
	services.ReasonInvalidDate: {
		"ar": "صيغة التاريخ غير صحيحة",
		"en": "Invalid date format",
	},
	services.ReasonPastDate: {
		"ar": "لا يمكن الحجز في تاريخ سابق",
		"en": "Cannot book a past date",
	},
	services.ReasonInvalidVisitType: {
		"ar": "نوع الزيارة غير معروف",
		"en": "Unknown visit type",
	},
	services.ReasonBlackoutDate: {
		"ar": "هذا التاريخ غير متاح للحجز",
		"en": "This date is closed for booking",
	},
	services.ReasonAlreadyBooked: {
		"ar": "هذا التاريخ محجوز بالفعل",
		"en": "This date is already booked",
	},
	"available": {
		"ar": "التاريخ متاح للحجز",
		"en": "The date is available",
	},
}

// AvailabilityHandler serves the public availability checks
type AvailabilityHandler struct {
	availability *services.AvailabilityService
}

// NewAvailabilityHandler creates a new availability handler
func NewAvailabilityHandler(availability *services.AvailabilityService) *AvailabilityHandler {
	return &AvailabilityHandler{availability: availability}
}

// chaletIDQuery reads the optional chaletId query parameter
func chaletIDQuery(c *fiber.Ctx) *uint {
	raw := c.Query("chaletId")
	if raw == "" {
		return nil
	}
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return nil
	}
	v := uint(id)
	return &v
}

// Check handles GET /api/availability. Unavailability is a normal 200
// response; only store failures become errors.
func (h *AvailabilityHandler) Check(c *fiber.Ctx) error {
	result, err := h.availability.Check(c.Query("date"), c.Query("visitType"), chaletIDQuery(c))
	if err != nil {
		return err
	}

	key := result.Reason
	if result.Available {
		key = "available"
	}
	return c.JSON(fiber.Map{
		"ok":        true,
		"available": result.Available,
		"reason":    result.Reason,
		"message":   availabilityMessages[key][lang(c)],
	})
}

// Calendar handles GET /api/availability/calendar — the day-by-day map for
// calendar rendering
func (h *AvailabilityHandler) Calendar(c *fiber.Ctx) error {
	days, err := h.availability.Range(c.Query("from"), c.Query("to"), chaletIDQuery(c))
	if err != nil {
		return respondValidation(c, []FieldError{{Field: "range", Message: err.Error()}})
	}
	return respond(c, fiber.StatusOK, "", fiber.Map{"days": days})
}
