package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/nahlchatbot/NahlBooking-Farm-sub000/internal/models"
	"github.com/nahlchatbot/NahlBooking-Farm-sub000/internal/services"
	"github.com/nahlchatbot/NahlBooking-Farm-sub000/internal/utils"
)

// BookingHandler serves the public booking endpoints
type BookingHandler struct {
	bookings   *services.BookingService
	production bool
}

// NewBookingHandler creates a new booking handler
func NewBookingHandler(bookings *services.BookingService, production bool) *BookingHandler {
	return &BookingHandler{bookings: bookings, production: production}
}

type createBookingRequest struct {
	Date          string `json:"date" validate:"required"`
	VisitType     string `json:"visitType" validate:"required"`
	CustomerName  string `json:"customerName" validate:"required,min=2,max=100"`
	CustomerPhone string `json:"customerPhone" validate:"required"`
	Guests        int    `json:"guests" validate:"omitempty,min=1,max=200"`
	ChaletType    string `json:"chaletType"`
	Email         string `json:"email" validate:"omitempty,email"`
	Notes         string `json:"notes" validate:"omitempty,max=1000"`
	Language      string `json:"language" validate:"omitempty,oneof=ar en"`
}

// bookingView projects a booking for customer-facing responses
func bookingView(b *models.Booking, language string) fiber.Map {
	view := fiber.Map{
		"id":               b.ID,
		"booking_ref":      b.BookingRef,
		"date":             utils.FormatDate(b.Date),
		"visit_type":       b.VisitType,
		"visit_type_label": b.VisitType.Label(language),
		"customer_name":    b.CustomerName,
		"guests":           b.Guests,
		"status":           b.Status,
		"payment_status":   b.PaymentStatus,
		"can_cancel":       b.CanCancel(),
		"created_at":       b.CreatedAt,
	}
	if b.Chalet != nil {
		view["chalet"] = fiber.Map{
			"id":   b.Chalet.ID,
			"name": b.Chalet.Name(language),
		}
	}
	if b.CancelledAt != nil {
		view["cancelled_at"] = b.CancelledAt
		view["cancellation_reason"] = b.CancellationReason
	}
	return view
}

// Create handles POST /api/booking
func (h *BookingHandler) Create(c *fiber.Ctx) error {
	var req createBookingRequest
	if fields := bindJSON(c, &req); fields != nil {
		return respondValidation(c, fields)
	}
	if !utils.ValidSaudiPhone(req.CustomerPhone) {
		return respondValidation(c, []FieldError{
			{Field: "customerPhone", Message: "must match 9665XXXXXXXX"},
		})
	}

	booking, err := h.bookings.Create(&services.CreateBookingInput{
		Date:          req.Date,
		VisitType:     req.VisitType,
		CustomerName:  req.CustomerName,
		CustomerPhone: req.CustomerPhone,
		CustomerEmail: req.Email,
		Guests:        req.Guests,
		ChaletName:    req.ChaletType,
		Notes:         req.Notes,
		Language:      req.Language,
	})
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"ok":         true,
		"message":    "تم استلام حجزك بنجاح",
		"bookingRef": booking.BookingRef,
		"data": fiber.Map{
			"id":            booking.ID,
			"booking_ref":   booking.BookingRef,
			"date":          utils.FormatDate(booking.Date),
			"visit_type":    booking.VisitType,
			"customer_name": booking.CustomerName,
			"status":        booking.Status,
		},
	})
}

// Get handles GET /api/booking/:ref
func (h *BookingHandler) Get(c *fiber.Ctx) error {
	booking, err := h.bookings.GetByRef(c.Params("ref"))
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, "", bookingView(booking, lang(c)))
}

type cancellationOTPRequest struct {
	Phone string `json:"phone" validate:"required"`
}

// RequestCancellationOTP handles POST /api/booking/:ref/request-otp
func (h *BookingHandler) RequestCancellationOTP(c *fiber.Ctx) error {
	var req cancellationOTPRequest
	if fields := bindJSON(c, &req); fields != nil {
		return respondValidation(c, fields)
	}

	code, err := h.bookings.RequestCancellationOTP(c.Params("ref"), req.Phone)
	if err != nil {
		return err
	}

	body := fiber.Map{
		"ok":      true,
		"message": "تم إرسال رمز التحقق إلى رقم جوالك",
	}
	// Diagnostic convenience only; production responses never carry the code
	if !h.production {
		body["devOtp"] = code
	}
	return c.JSON(body)
}

type cancelBookingRequest struct {
	Phone string `json:"phone" validate:"required"`
	OTP   string `json:"otp" validate:"required,len=6,numeric"`
}

// Cancel handles POST /api/booking/:ref/cancel
func (h *BookingHandler) Cancel(c *fiber.Ctx) error {
	var req cancelBookingRequest
	if fields := bindJSON(c, &req); fields != nil {
		return respondValidation(c, fields)
	}

	booking, err := h.bookings.CancelWithOTP(c.Params("ref"), req.Phone, req.OTP)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, "تم إلغاء الحجز بنجاح", bookingView(booking, lang(c)))
}
