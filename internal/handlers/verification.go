package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/nahlchatbot/NahlBooking-Farm-sub000/internal/services"
	"github.com/nahlchatbot/NahlBooking-Farm-sub000/internal/utils"
)

// VerificationHandler serves the pre-booking phone verification endpoints
type VerificationHandler struct {
	verification *services.PhoneVerificationService
	production   bool
}

// NewVerificationHandler creates a new verification handler
func NewVerificationHandler(verification *services.PhoneVerificationService, production bool) *VerificationHandler {
	return &VerificationHandler{verification: verification, production: production}
}

type phoneRequest struct {
	Phone string `json:"phone" validate:"required"`
}

// RequestOTP handles POST /api/verify/request-otp
func (h *VerificationHandler) RequestOTP(c *fiber.Ctx) error {
	var req phoneRequest
	if fields := bindJSON(c, &req); fields != nil {
		return respondValidation(c, fields)
	}
	if !utils.ValidSaudiPhone(req.Phone) {
		return respondValidation(c, []FieldError{
			{Field: "phone", Message: "must match 9665XXXXXXXX"},
		})
	}

	code, err := h.verification.RequestOTP(req.Phone)
	if err != nil {
		return err
	}

	body := fiber.Map{
		"ok":      true,
		"message": "تم إرسال رمز التحقق إلى رقم جوالك",
	}
	if !h.production {
		body["devOtp"] = code
	}
	return c.JSON(body)
}

type confirmOTPRequest struct {
	Phone string `json:"phone" validate:"required"`
	Code  string `json:"code" validate:"required,len=6,numeric"`
}

// ConfirmOTP handles POST /api/verify/confirm-otp
func (h *VerificationHandler) ConfirmOTP(c *fiber.Ctx) error {
	var req confirmOTPRequest
	if fields := bindJSON(c, &req); fields != nil {
		return respondValidation(c, fields)
	}

	if err := h.verification.VerifyOTP(req.Phone, req.Code); err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, "تم توثيق رقم الجوال بنجاح", nil)
}
