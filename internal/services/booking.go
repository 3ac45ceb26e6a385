package services

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/nahlchatbot/NahlBooking-Farm-sub000/internal/models"
	"github.com/nahlchatbot/NahlBooking-Farm-sub000/internal/storage"
	"github.com/nahlchatbot/NahlBooking-Farm-sub000/internal/utils"
)

// ChaletUndecided is the customer-facing sentinel meaning "no chalet yet"
const ChaletUndecided = "أقرر لاحقاً"

const (
	cancelledByAdmin    = "تم الإلغاء بواسطة الإدارة"
	cancelledByCustomer = "تم الإلغاء من قبل العميل"

	cancellationOTPValidity = 10 * time.Minute
)

// BookingService owns the booking lifecycle: availability-gated creation,
// retrieval, admin transitions and the OTP-gated customer cancellation.
type BookingService struct {
	store        storage.Store
	availability *AvailabilityService
	verification *PhoneVerificationService
	notifier     *Notifier
	audit        *AuditService
	refPrefix    string
}

// NewBookingService creates a new booking service
func NewBookingService(
	store storage.Store,
	availability *AvailabilityService,
	verification *PhoneVerificationService,
	notifier *Notifier,
	audit *AuditService,
	refPrefix string,
) *BookingService {
	if refPrefix == "" {
		refPrefix = "FR"
	}
	return &BookingService{
		store:        store,
		availability: availability,
		verification: verification,
		notifier:     notifier,
		audit:        audit,
		refPrefix:    refPrefix,
	}
}

// CreateBookingInput carries a validated booking request
type CreateBookingInput struct {
	Date          string
	VisitType     string // localized label
	CustomerName  string
	CustomerPhone string
	CustomerEmail string
	Guests        int
	ChaletName    string // localized name, empty or sentinel means none
	Notes         string
	Language      string
}

// Create books a slot. Availability is always re-checked here, and again
// atomically inside the store insert, so a caller-side check is never
// trusted and a lost race surfaces as ErrSlotTaken.
func (s *BookingService) Create(input *CreateBookingInput) (*models.Booking, error) {
	chalet, err := s.resolveChalet(input.ChaletName)
	if err != nil {
		return nil, err
	}
	var chaletID *uint
	if chalet != nil {
		chaletID = &chalet.ID
	}

	result, err := s.availability.Check(input.Date, input.VisitType, chaletID)
	if err != nil {
		return nil, err
	}
	if !result.Available {
		return nil, models.ErrDateUnavailable
	}

	if !s.verification.IsVerified(input.CustomerPhone) {
		return nil, models.ErrPhoneNotVerified
	}

	guests := input.Guests
	if guests < 1 {
		guests = 1
	}
	if chalet != nil && guests > chalet.MaxGuests {
		return nil, models.ErrGuestsExceedCapacity
	}

	ref, err := s.allocateRef()
	if err != nil {
		return nil, fmt.Errorf("failed to allocate booking reference: %w", err)
	}

	language := input.Language
	if language != "en" {
		language = "ar"
	}

	booking := &models.Booking{
		BookingRef:    ref,
		Date:          result.Date,
		VisitType:     result.VisitType,
		CustomerName:  strings.TrimSpace(input.CustomerName),
		CustomerPhone: input.CustomerPhone,
		CustomerEmail: strings.TrimSpace(input.CustomerEmail),
		Guests:        guests,
		Notes:         input.Notes,
		Language:      language,
		Status:        models.BookingStatusPending,
		PaymentStatus: models.PaymentStatusPending,
		ChaletID:      chaletID,
	}

	created, err := s.store.CreateBooking(booking)
	if err != nil {
		if errors.Is(err, storage.ErrSlotConflict) {
			return nil, models.ErrSlotTaken
		}
		return nil, err
	}
	created.Chalet = chalet

	// One booking per verification; the next one needs a fresh OTP
	s.verification.Consume(input.CustomerPhone)

	s.audit.Write(0, created.CustomerPhone, models.AuditActionCreate, "booking", created.BookingRef,
		map[string]any{"date": utils.FormatDate(created.Date), "visit_type": created.VisitType})
	go s.notifier.BookingConfirmed(created)

	return created, nil
}

// resolveChalet maps a localized chalet name to a record. Empty input or the
// "decide later" sentinel is a valid no-chalet answer, not an error.
func (s *BookingService) resolveChalet(name string) (*models.Chalet, error) {
	name = strings.TrimSpace(name)
	if name == "" || name == ChaletUndecided {
		return nil, nil
	}
	chalet, err := s.store.GetChaletByName(name)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, models.ErrChaletNotFound
		}
		return nil, err
	}
	return chalet, nil
}

// allocateRef draws the next per-year sequence and formats it. A reference
// is lost if the subsequent insert fails; gaps are acceptable.
func (s *BookingService) allocateRef() (string, error) {
	year := time.Now().Year()
	seq, err := s.store.NextBookingSeq(year)
	if err != nil {
		return "", err
	}
	return utils.FormatBookingRef(s.refPrefix, year, seq), nil
}

// GetByRef retrieves a booking by its public reference
func (s *BookingService) GetByRef(ref string) (*models.Booking, error) {
	booking, err := s.store.GetBookingByRef(ref)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, models.ErrBookingNotFound
		}
		return nil, err
	}
	return booking, nil
}

// GetByID retrieves a booking by internal id (admin-facing)
func (s *BookingService) GetByID(id uint) (*models.Booking, error) {
	booking, err := s.store.GetBookingByID(id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, models.ErrBookingNotFound
		}
		return nil, err
	}
	return booking, nil
}

// List returns a filtered, paginated page of bookings plus the pagination
// envelope, newest created first
func (s *BookingService) List(filter *models.BookingListFilter) ([]*models.Booking, *models.Pagination, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 20
	}

	bookings, total, err := s.store.ListBookings(filter)
	if err != nil {
		return nil, nil, err
	}

	totalPages := int((total + int64(filter.Limit) - 1) / int64(filter.Limit))
	return bookings, &models.Pagination{
		Page:       filter.Page,
		Limit:      filter.Limit,
		Total:      total,
		TotalPages: totalPages,
	}, nil
}

// AdminUpdateInput is a partial patch of a booking's admin-managed fields
type AdminUpdateInput struct {
	Status         *string
	PaymentStatus  *string
	AdminConfirmed *bool
	Notes          *string
}

// AdminUpdate applies a partial patch. No transition table is enforced —
// the dashboard is trusted to send sane transitions. Setting CONFIRMED
// implies adminConfirmed unless the patch overrides it.
func (s *BookingService) AdminUpdate(id uint, input *AdminUpdateInput, actorID uint, actorEmail string) (*models.Booking, error) {
	booking, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	if input.Status != nil {
		if !models.ValidBookingStatus(*input.Status) {
			return nil, models.NewAppError(400, "invalid_status",
				"Unknown booking status", "حالة الحجز غير معروفة")
		}
		booking.Status = *input.Status
		if *input.Status == models.BookingStatusConfirmed && input.AdminConfirmed == nil {
			booking.AdminConfirmed = true
		}
	}
	if input.PaymentStatus != nil {
		if !models.ValidPaymentStatus(*input.PaymentStatus) {
			return nil, models.NewAppError(400, "invalid_payment_status",
				"Unknown payment status", "حالة الدفع غير معروفة")
		}
		booking.PaymentStatus = *input.PaymentStatus
	}
	if input.AdminConfirmed != nil {
		booking.AdminConfirmed = *input.AdminConfirmed
	}
	if input.Notes != nil {
		booking.Notes = *input.Notes
	}

	if err := s.store.UpdateBooking(booking); err != nil {
		return nil, err
	}

	s.audit.Write(actorID, actorEmail, models.AuditActionUpdate, "booking", booking.BookingRef,
		map[string]any{"status": booking.Status, "payment_status": booking.PaymentStatus})
	return booking, nil
}

// AdminCancel cancels a booking on behalf of the resort
func (s *BookingService) AdminCancel(id uint, reason string, actorID uint, actorEmail string) (*models.Booking, error) {
	booking, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	if booking.Status == models.BookingStatusCancelled {
		return nil, models.ErrAlreadyCancelled
	}

	if strings.TrimSpace(reason) == "" {
		reason = cancelledByAdmin
	}
	now := time.Now()
	booking.Status = models.BookingStatusCancelled
	booking.CancelledAt = &now
	booking.CancellationReason = &reason

	if err := s.store.UpdateBooking(booking); err != nil {
		return nil, err
	}

	s.audit.Write(actorID, actorEmail, models.AuditActionCancel, "booking", booking.BookingRef,
		map[string]any{"reason": reason})
	go s.notifier.BookingCancelled(booking)

	return booking, nil
}

// RequestCancellationOTP starts the customer self-cancel flow. The code is
// stored on the booking row with a 10-minute window and delivered over
// WhatsApp; callers decide whether to expose it in the response.
func (s *BookingService) RequestCancellationOTP(ref, phone string) (string, error) {
	booking, err := s.GetByRef(ref)
	if err != nil {
		return "", err
	}
	if booking.CustomerPhone != phone {
		return "", models.ErrPhoneMismatch
	}
	if booking.Status == models.BookingStatusCancelled {
		return "", models.ErrAlreadyCancelled
	}
	if booking.Status == models.BookingStatusCompleted {
		return "", models.ErrBookingCompleted
	}

	code, err := utils.GenerateSecureOTP()
	if err != nil {
		return "", err
	}
	expiry := time.Now().Add(cancellationOTPValidity)
	booking.CancellationOTP = &code
	booking.CancellationOTPExpiresAt = &expiry

	if err := s.store.UpdateBooking(booking); err != nil {
		return "", err
	}

	go s.notifier.CancellationOTP(booking, code)
	log.Printf("Cancellation OTP issued for booking %s", booking.BookingRef)
	return code, nil
}

// CancelWithOTP finalizes the customer self-cancel flow. The code is single
// use: the OTP fields are cleared on success, so resubmitting the same code
// fails with "no OTP requested".
func (s *BookingService) CancelWithOTP(ref, phone, otp string) (*models.Booking, error) {
	booking, err := s.GetByRef(ref)
	if err != nil {
		return nil, err
	}
	if booking.CustomerPhone != phone {
		return nil, models.ErrPhoneMismatch
	}
	if booking.Status == models.BookingStatusCancelled {
		return nil, models.ErrAlreadyCancelled
	}
	if booking.CancellationOTP == nil || booking.CancellationOTPExpiresAt == nil {
		return nil, models.ErrNoOTPRequested
	}
	if time.Now().After(*booking.CancellationOTPExpiresAt) {
		return nil, models.ErrOTPExpired
	}
	if *booking.CancellationOTP != otp {
		return nil, models.ErrOTPIncorrect
	}

	now := time.Now()
	reason := cancelledByCustomer
	booking.Status = models.BookingStatusCancelled
	booking.CancelledAt = &now
	booking.CancellationReason = &reason
	booking.CancellationOTP = nil
	booking.CancellationOTPExpiresAt = nil

	if err := s.store.UpdateBooking(booking); err != nil {
		return nil, err
	}

	s.audit.Write(0, booking.CustomerPhone, models.AuditActionCancel, "booking", booking.BookingRef,
		map[string]any{"reason": reason})
	go s.notifier.BookingCancelled(booking)

	return booking, nil
}
