package storage

import (
	"errors"
	"time"

	"github.com/nahlchatbot/NahlBooking-Farm-sub000/internal/models"
)

// Sentinel errors shared by both store implementations
var (
	// ErrNotFound is returned by getters when the record does not exist
	ErrNotFound = errors.New("record not found")
	// ErrSlotConflict is returned by CreateBooking when another active
	// booking holds the same date+visit-type slot
	ErrSlotConflict = errors.New("slot already booked")
	// ErrDuplicate is returned on unique-constraint violations
	ErrDuplicate = errors.New("duplicate record")
)

// Store defines the interface for storage operations
type Store interface {
	// Booking operations. CreateBooking re-checks slot exclusivity
	// atomically with the insert and returns ErrSlotConflict when the
	// slot was taken in the meantime.
	CreateBooking(booking *models.Booking) (*models.Booking, error)
	GetBookingByRef(ref string) (*models.Booking, error)
	GetBookingByID(id uint) (*models.Booking, error)
	ListBookings(filter *models.BookingListFilter) ([]*models.Booking, int64, error)
	UpdateBooking(booking *models.Booking) error
	GetActiveBookingForSlot(date time.Time, visitType models.VisitType, chaletID *uint) (*models.Booking, error)
	GetBookingsInRange(from, to time.Time) ([]*models.Booking, error)
	CountBookingsByStatus() (map[string]int64, error)

	// Blackout date operations
	CreateBlackout(blackout *models.BlackoutDate) (*models.BlackoutDate, error)
	DeleteBlackout(id uint) error
	GetBlackoutsForDate(date time.Time) ([]*models.BlackoutDate, error)
	GetBlackoutsInRange(from, to time.Time) ([]*models.BlackoutDate, error)
	ListBlackouts() ([]*models.BlackoutDate, error)

	// Booking reference counter: atomic per-year upsert increment
	NextBookingSeq(year int) (int, error)

	// Chalet operations
	CreateChalet(chalet *models.Chalet) (*models.Chalet, error)
	GetChalet(id uint) (*models.Chalet, error)
	GetChaletByName(name string) (*models.Chalet, error)
	ListChalets(activeOnly bool) ([]*models.Chalet, error)
	UpdateChalet(chalet *models.Chalet) error
	DeleteChalet(id uint) error

	// Pricing operations
	GetPricing(visitType models.VisitType) (*models.Pricing, error)
	ListPricing() ([]*models.Pricing, error)
	UpsertPricing(pricing *models.Pricing) error
	GetChaletPricing(chaletID uint, visitType models.VisitType) (*models.ChaletPricing, error)
	ListChaletPricing() ([]*models.ChaletPricing, error)
	UpsertChaletPricing(pricing *models.ChaletPricing) error

	// Admin user operations
	CreateAdminUser(user *models.AdminUser) (*models.AdminUser, error)
	GetAdminUser(id uint) (*models.AdminUser, error)
	GetAdminUserByEmail(email string) (*models.AdminUser, error)
	ListAdminUsers() ([]*models.AdminUser, error)
	UpdateAdminUser(user *models.AdminUser) error

	// Audit log operations
	CreateAuditLog(entry *models.AuditLog) error
	ListAuditLogs(filter *models.AuditListFilter) ([]*models.AuditLog, int64, error)

	// Settings operations
	GetSetting(key string) (*models.Setting, error)
	SetSetting(key, value string) error
	ListSettings() ([]*models.Setting, error)
}
