package models

// BookingCounter holds the per-year sequence used for booking references.
// One row per calendar year, incremented atomically and never decremented.
type BookingCounter struct {
	ID      uint `json:"id" gorm:"primaryKey"`
	Year    int  `json:"year" gorm:"uniqueIndex;not null"`
	Counter int  `json:"counter" gorm:"not null;default:0"`
}
