package handlers

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/nahlchatbot/NahlBooking-Farm-sub000/internal/models"
	"github.com/nahlchatbot/NahlBooking-Farm-sub000/internal/services"
	"github.com/nahlchatbot/NahlBooking-Farm-sub000/internal/storage"
)

// AdminUserHandler manages dashboard accounts. Routes mounting this handler
// are SUPER_ADMIN only.
type AdminUserHandler struct {
	store storage.Store
	audit *services.AuditService
}

// NewAdminUserHandler creates a new admin user handler
func NewAdminUserHandler(store storage.Store, audit *services.AuditService) *AdminUserHandler {
	return &AdminUserHandler{store: store, audit: audit}
}

// List handles GET /api/admin/users
func (h *AdminUserHandler) List(c *fiber.Ctx) error {
	users, err := h.store.ListAdminUsers()
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, "", fiber.Map{"users": users})
}

type createUserRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=100"`
	Name     string `json:"name" validate:"required,max=100"`
	Role     string `json:"role" validate:"required"`
}

// Create handles POST /api/admin/users
func (h *AdminUserHandler) Create(c *fiber.Ctx) error {
	var req createUserRequest
	if fields := bindJSON(c, &req); fields != nil {
		return respondValidation(c, fields)
	}
	if !models.ValidRole(req.Role) {
		return respondValidation(c, []FieldError{{Field: "role", Message: "unknown role"}})
	}

	hash, err := services.HashPassword(req.Password)
	if err != nil {
		return err
	}

	user, err := h.store.CreateAdminUser(&models.AdminUser{
		Email:        req.Email,
		PasswordHash: hash,
		Name:         req.Name,
		Role:         req.Role,
		IsActive:     true,
	})
	if err != nil {
		if errors.Is(err, storage.ErrDuplicate) {
			return models.ErrEmailTaken
		}
		return err
	}

	claims := adminClaims(c)
	h.audit.Write(claims.UserID, claims.Email, models.AuditActionCreate, "admin_user",
		user.Email, fiber.Map{"role": user.Role})
	return respond(c, fiber.StatusCreated, "تم إنشاء المستخدم", user)
}

type updateUserRequest struct {
	Name     *string `json:"name" validate:"omitempty,max=100"`
	Role     *string `json:"role"`
	IsActive *bool   `json:"isActive"`
	Password *string `json:"password" validate:"omitempty,min=8,max=100"`
}

// Update handles PATCH /api/admin/users/:id. Accounts are deactivated, not
// deleted, so the audit log keeps valid actor references.
func (h *AdminUserHandler) Update(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return models.ErrUserNotFound
	}

	user, err := h.store.GetAdminUser(uint(id))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return models.ErrUserNotFound
		}
		return err
	}

	var req updateUserRequest
	if fields := bindJSON(c, &req); fields != nil {
		return respondValidation(c, fields)
	}

	if req.Role != nil {
		if !models.ValidRole(*req.Role) {
			return respondValidation(c, []FieldError{{Field: "role", Message: "unknown role"}})
		}
		user.Role = *req.Role
	}
	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.IsActive != nil {
		user.IsActive = *req.IsActive
	}
	if req.Password != nil {
		hash, err := services.HashPassword(*req.Password)
		if err != nil {
			return err
		}
		user.PasswordHash = hash
	}

	if err := h.store.UpdateAdminUser(user); err != nil {
		return err
	}

	claims := adminClaims(c)
	h.audit.Write(claims.UserID, claims.Email, models.AuditActionUpdate, "admin_user",
		user.Email, fiber.Map{"role": user.Role, "is_active": user.IsActive})
	return respond(c, fiber.StatusOK, "تم تحديث المستخدم", user)
}
