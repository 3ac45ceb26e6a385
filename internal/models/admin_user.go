package models

import "time"

// AdminUser is a dashboard account. Passwords are stored as bcrypt hashes.
type AdminUser struct {
	ID           uint       `json:"id" gorm:"primaryKey"`
	Email        string     `json:"email" gorm:"uniqueIndex;not null"`
	PasswordHash string     `json:"-" gorm:"not null"`
	Name         string     `json:"name"`
	Role         string     `json:"role" gorm:"not null;default:VIEWER"`
	IsActive     bool       `json:"is_active" gorm:"default:true"`
	LastLoginAt  *time.Time `json:"last_login_at"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// Admin roles, ordered by privilege
const (
	RoleSuperAdmin = "SUPER_ADMIN"
	RoleAdmin      = "ADMIN"
	RoleViewer     = "VIEWER"
)

var roleRank = map[string]int{
	RoleViewer:     1,
	RoleAdmin:      2,
	RoleSuperAdmin: 3,
}

// RoleAtLeast reports whether role carries at least the privileges of min
func RoleAtLeast(role, min string) bool {
	return roleRank[role] >= roleRank[min]
}

// ValidRole reports whether r is a known admin role
func ValidRole(r string) bool {
	_, ok := roleRank[r]
	return ok
}
