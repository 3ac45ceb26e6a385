package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/nahlchatbot/NahlBooking-Farm-sub000/internal/models"
	"github.com/nahlchatbot/NahlBooking-Farm-sub000/internal/storage"
	"github.com/nahlchatbot/NahlBooking-Farm-sub000/internal/utils"
)

// Reasons a slot can be rejected, in decision order
const (
	ReasonInvalidDate      = "invalid_date"
	ReasonPastDate         = "past_date"
	ReasonInvalidVisitType = "invalid_visit_type"
	ReasonBlackoutDate     = "blackout_date"
	ReasonAlreadyBooked    = "already_booked"
)

// AvailabilityResult is the outcome of a single slot check. Unavailability is
// a normal result, not an error; Reason is only set when Available is false.
type AvailabilityResult struct {
	Available bool             `json:"available"`
	Reason    string           `json:"reason,omitempty"`
	Date      time.Time        `json:"-"`
	VisitType models.VisitType `json:"-"`
}

// DayAvailability is one entry of the calendar availability map
type DayAvailability struct {
	Date      string `json:"date"`
	DayVisit  bool   `json:"day_visit"`
	Overnight bool   `json:"overnight"`
}

// AvailabilityService decides whether a date+visit-type slot is bookable.
// Checks are advisory reads; nothing is reserved as a side effect.
type AvailabilityService struct {
	store storage.Store
}

// NewAvailabilityService creates a new availability service
func NewAvailabilityService(store storage.Store) *AvailabilityService {
	return &AvailabilityService{store: store}
}

// Check runs the slot decision chain, first match wins: date format, past
// date, visit-type label, blackout overlay, existing active booking.
func (s *AvailabilityService) Check(dateStr, visitLabel string, chaletID *uint) (*AvailabilityResult, error) {
	date, err := utils.ParseDate(dateStr)
	if err != nil {
		return &AvailabilityResult{Reason: ReasonInvalidDate}, nil
	}

	if date.Before(utils.Today()) {
		return &AvailabilityResult{Reason: ReasonPastDate, Date: date}, nil
	}

	visitType, ok := models.VisitTypeFromLabel(visitLabel)
	if !ok {
		return &AvailabilityResult{Reason: ReasonInvalidVisitType, Date: date}, nil
	}

	blackouts, err := s.store.GetBlackoutsForDate(date)
	if err != nil {
		return nil, fmt.Errorf("failed to load blackout dates: %w", err)
	}
	for _, b := range blackouts {
		if b.Blocks(visitType, chaletID) {
			return &AvailabilityResult{Reason: ReasonBlackoutDate, Date: date, VisitType: visitType}, nil
		}
	}

	_, err = s.store.GetActiveBookingForSlot(date, visitType, chaletID)
	if err == nil {
		return &AvailabilityResult{Reason: ReasonAlreadyBooked, Date: date, VisitType: visitType}, nil
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return nil, fmt.Errorf("failed to check existing bookings: %w", err)
	}

	return &AvailabilityResult{Available: true, Date: date, VisitType: visitType}, nil
}

// Maximum calendar span a single request may ask for
const maxRangeDays = 366

// Range computes the day-by-day availability map over an inclusive date
// range for calendar rendering. Bookings and blackouts overlapping the range
// are fetched once and folded per day; each visit type is decided
// independently with the same blackout-then-booking precedence as Check.
func (s *AvailabilityService) Range(fromStr, toStr string, chaletID *uint) ([]DayAvailability, error) {
	from, err := utils.ParseDate(fromStr)
	if err != nil {
		return nil, err
	}
	to, err := utils.ParseDate(toStr)
	if err != nil {
		return nil, err
	}
	if to.Before(from) {
		return nil, fmt.Errorf("range end %s precedes start %s", toStr, fromStr)
	}
	if int(to.Sub(from).Hours()/24) > maxRangeDays {
		return nil, fmt.Errorf("range exceeds %d days", maxRangeDays)
	}

	bookings, err := s.store.GetBookingsInRange(from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to load bookings: %w", err)
	}
	blackouts, err := s.store.GetBlackoutsInRange(from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to load blackout dates: %w", err)
	}

	type daySlots struct {
		day       bool
		overnight bool
	}
	blocked := make(map[string]*daySlots)

	mark := func(date time.Time, visitType *models.VisitType) {
		key := utils.FormatDate(date)
		slots, ok := blocked[key]
		if !ok {
			slots = &daySlots{}
			blocked[key] = slots
		}
		if visitType == nil {
			slots.day = true
			slots.overnight = true
		} else if *visitType == models.VisitTypeDay {
			slots.day = true
		} else {
			slots.overnight = true
		}
	}

	for _, b := range blackouts {
		if b.ChaletID != nil && (chaletID == nil || *chaletID != *b.ChaletID) {
			continue
		}
		mark(b.Date, b.VisitType)
	}
	for _, b := range bookings {
		if !b.IsActive() {
			continue
		}
		if chaletID != nil && b.ChaletID != nil && *b.ChaletID != *chaletID {
			continue
		}
		vt := b.VisitType
		mark(b.Date, &vt)
	}

	today := utils.Today()
	var days []DayAvailability
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		key := utils.FormatDate(d)
		entry := DayAvailability{Date: key, DayVisit: true, Overnight: true}
		if d.Before(today) {
			entry.DayVisit = false
			entry.Overnight = false
		} else if slots, ok := blocked[key]; ok {
			entry.DayVisit = !slots.day
			entry.Overnight = !slots.overnight
		}
		days = append(days, entry)
	}
	return days, nil
}
