package models

import "time"

// Chalet is a bookable physical unit with its own capacity and pricing
type Chalet struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	NameAr    string    `json:"name_ar" gorm:"not null"`
	NameEn    string    `json:"name_en" gorm:"not null"`
	Slug      string    `json:"slug" gorm:"uniqueIndex;not null"`
	MaxGuests int       `json:"max_guests" gorm:"default:10"`
	IsActive  bool      `json:"is_active" gorm:"default:true"`
	SortOrder int       `json:"sort_order" gorm:"default:0"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Name returns the localized chalet name
func (c *Chalet) Name(lang string) string {
	if lang == "en" {
		return c.NameEn
	}
	return c.NameAr
}
