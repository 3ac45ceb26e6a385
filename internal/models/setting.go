package models

import "time"

// Setting is a key/value configuration row, used for WhatsApp message
// templates and other admin-editable tunables.
type Setting struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Key       string    `json:"key" gorm:"uniqueIndex;not null"`
	Value     string    `json:"value" gorm:"type:text"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Well-known setting keys
const (
	SettingTemplateBookingConfirmed = "whatsapp.template.booking_confirmed"
	SettingTemplateCancellationOTP  = "whatsapp.template.cancellation_otp"
	SettingTemplateBookingCancelled = "whatsapp.template.booking_cancelled"
	SettingTemplateVisitReminder    = "whatsapp.template.visit_reminder"
	SettingTemplateVerificationOTP  = "whatsapp.template.verification_otp"
)
