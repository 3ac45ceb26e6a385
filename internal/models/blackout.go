package models

import "time"

// BlackoutDate marks a day as non-bookable. A nil VisitType blocks both visit
// types; a nil ChaletID applies globally.
type BlackoutDate struct {
	ID        uint       `json:"id" gorm:"primaryKey"`
	Date      time.Time  `json:"date" gorm:"type:date;not null;index"`
	VisitType *VisitType `json:"visit_type"`
	ChaletID  *uint      `json:"chalet_id" gorm:"index"`
	Chalet    *Chalet    `json:"chalet,omitempty"`
	Reason    string     `json:"reason"`
	CreatedBy string     `json:"created_by"`
	CreatedAt time.Time  `json:"created_at"`
}

// Blocks reports whether this blackout covers the given visit type and chalet
// scope. A chalet-scoped blackout does not block chalet-less bookings unless
// it is global; a global blackout blocks everything on its date.
func (b *BlackoutDate) Blocks(visitType VisitType, chaletID *uint) bool {
	if b.VisitType != nil && *b.VisitType != visitType {
		return false
	}
	if b.ChaletID == nil {
		return true
	}
	return chaletID != nil && *chaletID == *b.ChaletID
}
