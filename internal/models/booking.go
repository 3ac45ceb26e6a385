package models

import "time"

// Booking represents a reservation of a chalet slot for one calendar day
type Booking struct {
	ID         uint   `json:"id" gorm:"primaryKey"`
	BookingRef string `json:"booking_ref" gorm:"uniqueIndex;not null"`

	// Slot — one day at day granularity, stored as UTC midnight
	Date      time.Time `json:"date" gorm:"type:date;not null;index"`
	VisitType VisitType `json:"visit_type" gorm:"not null;index"`

	// Customer
	CustomerName  string `json:"customer_name" gorm:"not null"`
	CustomerPhone string `json:"customer_phone" gorm:"not null;index"`
	CustomerEmail string `json:"customer_email"`
	Guests        int    `json:"guests" gorm:"default:1"`
	Notes         string `json:"notes"`
	Language      string `json:"language" gorm:"default:ar"`

	// Lifecycle
	Status        string `json:"status" gorm:"not null;index"`
	PaymentStatus string `json:"payment_status" gorm:"not null"`

	// Optional chalet assignment; nil means "any/unassigned"
	ChaletID *uint   `json:"chalet_id" gorm:"index"`
	Chalet   *Chalet `json:"chalet,omitempty"`

	// Cancellation OTP — only populated during an in-flight cancellation
	CancellationOTP          *string    `json:"-"`
	CancellationOTPExpiresAt *time.Time `json:"-"`

	CancellationReason *string    `json:"cancellation_reason,omitempty"`
	CancelledAt        *time.Time `json:"cancelled_at,omitempty"`

	AdminConfirmed bool `json:"admin_confirmed" gorm:"default:false"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Booking status constants
const (
	BookingStatusPending   = "PENDING"
	BookingStatusConfirmed = "CONFIRMED"
	BookingStatusCompleted = "COMPLETED"
	BookingStatusCancelled = "CANCELLED"

	PaymentStatusPending     = "PENDING"
	PaymentStatusDepositPaid = "DEPOSIT_PAID"
	PaymentStatusFullyPaid   = "FULLY_PAID"
	PaymentStatusRefunded    = "REFUNDED"
	PaymentStatusCancelled   = "CANCELLED"
)

// ActiveBookingStatuses are the statuses that hold a slot
var ActiveBookingStatuses = []string{BookingStatusPending, BookingStatusConfirmed}

// IsActive reports whether the booking still holds its slot
func (b *Booking) IsActive() bool {
	return b.Status == BookingStatusPending || b.Status == BookingStatusConfirmed
}

// CanCancel reports whether the customer may still cancel this booking
func (b *Booking) CanCancel() bool {
	return b.IsActive()
}

// ValidBookingStatus reports whether s is a known booking status
func ValidBookingStatus(s string) bool {
	switch s {
	case BookingStatusPending, BookingStatusConfirmed, BookingStatusCompleted, BookingStatusCancelled:
		return true
	}
	return false
}

// ValidPaymentStatus reports whether s is a known payment status
func ValidPaymentStatus(s string) bool {
	switch s {
	case PaymentStatusPending, PaymentStatusDepositPaid, PaymentStatusFullyPaid,
		PaymentStatusRefunded, PaymentStatusCancelled:
		return true
	}
	return false
}

// BookingListFilter narrows admin booking listings
type BookingListFilter struct {
	Status    string
	VisitType *VisitType
	DateFrom  *time.Time
	DateTo    *time.Time
	Search    string // matches customer name, phone or booking ref
	Page      int
	Limit     int
}

// Pagination is the envelope returned alongside paged listings
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}
