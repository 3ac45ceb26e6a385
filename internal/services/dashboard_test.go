package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nahlchatbot/NahlBooking-Farm-sub000/internal/models"
	"github.com/nahlchatbot/NahlBooking-Farm-sub000/internal/storage"
)

func TestDashboardStats(t *testing.T) {
	store := storage.NewMemoryStore()
	svc := NewDashboardService(store, NewReportService(store))

	require.NoError(t, store.UpsertPricing(&models.Pricing{
		VisitType: models.VisitTypeDay, TotalPrice: 500, DepositAmount: 100,
	}))

	seedBooking(t, store, futureDate(2), models.VisitTypeDay, nil)
	cancelled := seedBooking(t, store, futureDate(3), models.VisitTypeDay, nil)
	cancelled.Status = models.BookingStatusCancelled
	require.NoError(t, store.UpdateBooking(cancelled))

	stats, err := svc.Stats()
	require.NoError(t, err)

	assert.EqualValues(t, 2, stats.TotalBookings)
	assert.EqualValues(t, 1, stats.ByStatus[models.BookingStatusConfirmed])
	assert.EqualValues(t, 1, stats.ByStatus[models.BookingStatusCancelled])
	assert.Equal(t, 1, stats.UpcomingWeek)
	require.Len(t, stats.Upcoming, 1)
	assert.Greater(t, stats.OccupancyMonth, 0.0)
}
