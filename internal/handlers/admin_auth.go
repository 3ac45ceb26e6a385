package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/nahlchatbot/NahlBooking-Farm-sub000/internal/models"
	"github.com/nahlchatbot/NahlBooking-Farm-sub000/internal/services"
	"github.com/nahlchatbot/NahlBooking-Farm-sub000/internal/storage"
)

// adminClaims pulls the authenticated admin's claims set by the auth
// middleware
func adminClaims(c *fiber.Ctx) *services.AdminClaims {
	claims, _ := c.Locals("admin").(*services.AdminClaims)
	return claims
}

// AdminAuthHandler serves dashboard login and session introspection
type AdminAuthHandler struct {
	auth  *services.AuthService
	store storage.Store
}

// NewAdminAuthHandler creates a new admin auth handler
func NewAdminAuthHandler(auth *services.AuthService, store storage.Store) *AdminAuthHandler {
	return &AdminAuthHandler{auth: auth, store: store}
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// Login handles POST /api/admin/auth/login
func (h *AdminAuthHandler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if fields := bindJSON(c, &req); fields != nil {
		return respondValidation(c, fields)
	}

	token, user, err := h.auth.Login(req.Email, req.Password)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, "تم تسجيل الدخول بنجاح", fiber.Map{
		"token": token,
		"user":  user,
	})
}

// Me handles GET /api/admin/auth/me
func (h *AdminAuthHandler) Me(c *fiber.Ctx) error {
	claims := adminClaims(c)
	user, err := h.store.GetAdminUser(claims.UserID)
	if err != nil {
		return models.ErrUserNotFound
	}
	return respond(c, fiber.StatusOK, "", user)
}
