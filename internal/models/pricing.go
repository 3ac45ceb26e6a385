package models

import "time"

// Pricing is the legacy per-visit-type price list, kept for chalet-less
// bookings and as a fallback when no matrix entry exists.
type Pricing struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	VisitType     VisitType `json:"visit_type" gorm:"uniqueIndex;not null"`
	TotalPrice    float64   `json:"total_price" gorm:"not null"`
	DepositAmount float64   `json:"deposit_amount" gorm:"not null"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// ChaletPricing is one cell of the per-chalet price matrix
type ChaletPricing struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	ChaletID      uint      `json:"chalet_id" gorm:"not null;uniqueIndex:idx_chalet_visit"`
	Chalet        *Chalet   `json:"chalet,omitempty"`
	VisitType     VisitType `json:"visit_type" gorm:"not null;uniqueIndex:idx_chalet_visit"`
	TotalPrice    float64   `json:"total_price" gorm:"not null"`
	DepositAmount float64   `json:"deposit_amount" gorm:"not null"`
	UpdatedAt     time.Time `json:"updated_at"`
}
