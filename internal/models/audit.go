package models

import "time"

// AuditLog is an append-only record of an admin action
type AuditLog struct {
	ID         string    `json:"id" gorm:"primaryKey"`
	ActorID    uint      `json:"actor_id" gorm:"index"`
	ActorEmail string    `json:"actor_email" gorm:"index"`
	Action     string    `json:"action" gorm:"not null;index"`
	Entity     string    `json:"entity" gorm:"not null;index"`
	EntityID   string    `json:"entity_id" gorm:"index"`
	Details    string    `json:"details"` // JSON blob, free-form
	CreatedAt  time.Time `json:"created_at" gorm:"index"`
}

// Audit actions
const (
	AuditActionCreate = "CREATE"
	AuditActionUpdate = "UPDATE"
	AuditActionCancel = "CANCEL"
	AuditActionDelete = "DELETE"
	AuditActionLogin  = "LOGIN"
)

// AuditListFilter narrows audit log listings
type AuditListFilter struct {
	ActorEmail string
	Entity     string
	Action     string
	DateFrom   *time.Time
	DateTo     *time.Time
	Page       int
	Limit      int
}
