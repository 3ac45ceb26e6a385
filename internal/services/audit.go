package services

import (
	"encoding/json"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/nahlchatbot/NahlBooking-Farm-sub000/internal/models"
	"github.com/nahlchatbot/NahlBooking-Farm-sub000/internal/storage"
)

// AuditService appends admin actions to the audit log. Writes are
// fire-and-forget: a failed audit write is logged but never fails the
// operation it records.
type AuditService struct {
	store storage.Store
}

// NewAuditService creates a new audit service
func NewAuditService(store storage.Store) *AuditService {
	return &AuditService{store: store}
}

// Write records an action. details is marshalled to JSON; a nil details
// produces an empty blob.
func (a *AuditService) Write(actorID uint, actorEmail, action, entity, entityID string, details any) {
	entry := &models.AuditLog{
		ID:         uuid.NewString(),
		ActorID:    actorID,
		ActorEmail: actorEmail,
		Action:     action,
		Entity:     entity,
		EntityID:   entityID,
		CreatedAt:  time.Now(),
	}
	if details != nil {
		if blob, err := json.Marshal(details); err == nil {
			entry.Details = string(blob)
		}
	}

	go func() {
		if err := a.store.CreateAuditLog(entry); err != nil {
			log.Printf("Audit write failed (%s %s %s): %v", action, entity, entityID, err)
		}
	}()
}

// List returns a filtered, paginated page of audit entries
func (a *AuditService) List(filter *models.AuditListFilter) ([]*models.AuditLog, *models.Pagination, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}

	entries, total, err := a.store.ListAuditLogs(filter)
	if err != nil {
		return nil, nil, err
	}

	totalPages := int((total + int64(filter.Limit) - 1) / int64(filter.Limit))
	return entries, &models.Pagination{
		Page:       filter.Page,
		Limit:      filter.Limit,
		Total:      total,
		TotalPages: totalPages,
	}, nil
}
