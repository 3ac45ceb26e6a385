package storage

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nahlchatbot/NahlBooking-Farm-sub000/internal/models"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func activeBooking(ref string, date time.Time, visitType models.VisitType, chaletID *uint) *models.Booking {
	return &models.Booking{
		BookingRef:    ref,
		Date:          date,
		VisitType:     visitType,
		CustomerName:  "عميل تجريبي",
		CustomerPhone: "966512345678",
		Guests:        4,
		Status:        models.BookingStatusPending,
		PaymentStatus: models.PaymentStatusPending,
		ChaletID:      chaletID,
	}
}

func TestCreateBookingSlotConflict(t *testing.T) {
	store := NewMemoryStore()
	date := day("2026-09-10")

	_, err := store.CreateBooking(activeBooking("FR-2026-0001", date, models.VisitTypeDay, nil))
	require.NoError(t, err)

	// Same slot again
	_, err = store.CreateBooking(activeBooking("FR-2026-0002", date, models.VisitTypeDay, nil))
	assert.ErrorIs(t, err, ErrSlotConflict)

	// Other visit type on the same day is a different slot
	_, err = store.CreateBooking(activeBooking("FR-2026-0003", date, models.VisitTypeOvernight, nil))
	assert.NoError(t, err)

	// Other day is free
	_, err = store.CreateBooking(activeBooking("FR-2026-0004", day("2026-09-11"), models.VisitTypeDay, nil))
	assert.NoError(t, err)
}

func TestCreateBookingChaletScope(t *testing.T) {
	store := NewMemoryStore()
	date := day("2026-09-10")
	chaletOne := uint(1)
	chaletTwo := uint(2)

	_, err := store.CreateBooking(activeBooking("FR-2026-0001", date, models.VisitTypeDay, &chaletOne))
	require.NoError(t, err)

	// Same chalet conflicts, a different one does not
	_, err = store.CreateBooking(activeBooking("FR-2026-0002", date, models.VisitTypeDay, &chaletOne))
	assert.ErrorIs(t, err, ErrSlotConflict)
	_, err = store.CreateBooking(activeBooking("FR-2026-0003", date, models.VisitTypeDay, &chaletTwo))
	require.NoError(t, err)

	// A chalet-less booking would overlap every chalet
	_, err = store.CreateBooking(activeBooking("FR-2026-0004", date, models.VisitTypeDay, nil))
	assert.ErrorIs(t, err, ErrSlotConflict)
}

func TestCreateBookingChaletlessBlocksAll(t *testing.T) {
	store := NewMemoryStore()
	date := day("2026-09-10")
	chaletOne := uint(1)

	_, err := store.CreateBooking(activeBooking("FR-2026-0001", date, models.VisitTypeDay, nil))
	require.NoError(t, err)

	_, err = store.CreateBooking(activeBooking("FR-2026-0002", date, models.VisitTypeDay, &chaletOne))
	assert.ErrorIs(t, err, ErrSlotConflict)
}

func TestCancelledBookingFreesSlot(t *testing.T) {
	store := NewMemoryStore()
	date := day("2026-09-10")

	first, err := store.CreateBooking(activeBooking("FR-2026-0001", date, models.VisitTypeDay, nil))
	require.NoError(t, err)

	first.Status = models.BookingStatusCancelled
	require.NoError(t, store.UpdateBooking(first))

	_, err = store.GetActiveBookingForSlot(date, models.VisitTypeDay, nil)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = store.CreateBooking(activeBooking("FR-2026-0002", date, models.VisitTypeDay, nil))
	assert.NoError(t, err)
}

func TestListBookingsFilterAndPaginate(t *testing.T) {
	store := NewMemoryStore()

	for i, ref := range []string{"FR-2026-0001", "FR-2026-0002", "FR-2026-0003"} {
		b := activeBooking(ref, day("2026-09-10").AddDate(0, 0, i), models.VisitTypeDay, nil)
		if i == 2 {
			b.Status = models.BookingStatusCancelled
			b.CustomerName = "Mohammed"
			b.CustomerPhone = "966598765432"
		}
		_, err := store.CreateBooking(b)
		require.NoError(t, err)
	}

	bookings, total, err := store.ListBookings(&models.BookingListFilter{Status: models.BookingStatusPending})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.Len(t, bookings, 2)

	// Name search is case-insensitive
	bookings, total, err = store.ListBookings(&models.BookingListFilter{Search: "mohammed"})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, bookings, 1)
	assert.Equal(t, "FR-2026-0003", bookings[0].BookingRef)

	// Reference search
	_, total, err = store.ListBookings(&models.BookingListFilter{Search: "fr-2026-0002"})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)

	// Phone search matches raw digits, surrounding whitespace ignored
	_, total, err = store.ListBookings(&models.BookingListFilter{Search: "96659876"})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)

	_, total, err = store.ListBookings(&models.BookingListFilter{Search: " 96659876 "})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)

	// Pagination: page 2 of size 2 holds the remaining row
	bookings, total, err = store.ListBookings(&models.BookingListFilter{Page: 2, Limit: 2})
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	assert.Len(t, bookings, 1)

	// Past the last page
	bookings, _, err = store.ListBookings(&models.BookingListFilter{Page: 5, Limit: 2})
	require.NoError(t, err)
	assert.Empty(t, bookings)
}

func TestNextBookingSeq(t *testing.T) {
	store := NewMemoryStore()

	for want := 1; want <= 3; want++ {
		seq, err := store.NextBookingSeq(2026)
		require.NoError(t, err)
		assert.Equal(t, want, seq)
	}

	// Counters are independent per year
	seq, err := store.NextBookingSeq(2027)
	require.NoError(t, err)
	assert.Equal(t, 1, seq)

	seq, err = store.NextBookingSeq(2026)
	require.NoError(t, err)
	assert.Equal(t, 4, seq)
}

func TestAdminUserCRUD(t *testing.T) {
	store := NewMemoryStore()

	user, err := store.CreateAdminUser(&models.AdminUser{
		Email: "admin@example.com", PasswordHash: "x", Role: models.RoleAdmin, IsActive: true,
	})
	require.NoError(t, err)
	require.NotZero(t, user.ID)

	_, err = store.CreateAdminUser(&models.AdminUser{Email: "ADMIN@example.com", PasswordHash: "x"})
	assert.ErrorIs(t, err, ErrDuplicate)

	found, err := store.GetAdminUserByEmail("Admin@Example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, found.ID)

	_, err = store.GetAdminUserByEmail("nobody@example.com")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSettings(t *testing.T) {
	store := NewMemoryStore()

	_, err := store.GetSetting("missing")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, store.SetSetting("k", "v1"))
	require.NoError(t, store.SetSetting("k", "v2"))

	s, err := store.GetSetting("k")
	require.NoError(t, err)
	assert.Equal(t, "v2", s.Value)

	all, err := store.ListSettings()
	require.NoError(t, err)
	assert.Len(t, all, 1)
}
