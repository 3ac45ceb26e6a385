package services

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nahlchatbot/NahlBooking-Farm-sub000/internal/models"
	"github.com/nahlchatbot/NahlBooking-Farm-sub000/internal/storage"
)

func seedReportData(t *testing.T, store storage.Store) {
	t.Helper()
	require.NoError(t, store.UpsertPricing(&models.Pricing{
		VisitType: models.VisitTypeDay, TotalPrice: 500, DepositAmount: 100,
	}))
	require.NoError(t, store.UpsertPricing(&models.Pricing{
		VisitType: models.VisitTypeOvernight, TotalPrice: 1200, DepositAmount: 300,
	}))

	seedBooking(t, store, futureDate(1), models.VisitTypeDay, nil)
	seedBooking(t, store, futureDate(1), models.VisitTypeOvernight, nil)
	cancelled := seedBooking(t, store, futureDate(2), models.VisitTypeDay, nil)
	cancelled.Status = models.BookingStatusCancelled
	require.NoError(t, store.UpdateBooking(cancelled))
}

func TestRevenueReport(t *testing.T) {
	store := storage.NewMemoryStore()
	seedReportData(t, store)
	svc := NewReportService(store)

	rows, err := svc.RevenueReport(futureDate(1), futureDate(3))
	require.NoError(t, err)
	require.Len(t, rows, 2)

	byType := map[models.VisitType]RevenueRow{}
	for _, r := range rows {
		byType[r.VisitType] = r
	}

	// The cancelled day visit contributes nothing
	assert.Equal(t, 1, byType[models.VisitTypeDay].Bookings)
	assert.Equal(t, 500.0, byType[models.VisitTypeDay].Total)
	assert.Equal(t, 100.0, byType[models.VisitTypeDay].Deposits)
	assert.Equal(t, 1200.0, byType[models.VisitTypeOvernight].Total)
}

func TestRevenueReportMatrixOverride(t *testing.T) {
	store := storage.NewMemoryStore()
	svc := NewReportService(store)

	chalet, err := store.CreateChalet(&models.Chalet{NameAr: "شاليه", NameEn: "Chalet", Slug: "c", MaxGuests: 10, IsActive: true})
	require.NoError(t, err)
	require.NoError(t, store.UpsertPricing(&models.Pricing{
		VisitType: models.VisitTypeDay, TotalPrice: 500, DepositAmount: 100,
	}))
	require.NoError(t, store.UpsertChaletPricing(&models.ChaletPricing{
		ChaletID: chalet.ID, VisitType: models.VisitTypeDay, TotalPrice: 800, DepositAmount: 200,
	}))

	seedBooking(t, store, futureDate(1), models.VisitTypeDay, &chalet.ID)

	rows, err := svc.RevenueReport(futureDate(1), futureDate(1))
	require.NoError(t, err)
	for _, r := range rows {
		if r.VisitType == models.VisitTypeDay {
			assert.Equal(t, 800.0, r.Total, "matrix price should beat the legacy list")
		}
	}
}

func TestBookingsReport(t *testing.T) {
	store := storage.NewMemoryStore()
	seedReportData(t, store)
	svc := NewReportService(store)

	days, err := svc.BookingsReport(futureDate(1), futureDate(3))
	require.NoError(t, err)
	require.Len(t, days, 2)
	assert.Equal(t, 2, days[0].Total)
	assert.EqualValues(t, 1, days[1].ByStatus[models.BookingStatusCancelled])
}

func TestOccupancyReport(t *testing.T) {
	store := storage.NewMemoryStore()
	seedReportData(t, store)
	svc := NewReportService(store)

	rows, err := svc.OccupancyReport(futureDate(1), futureDate(2))
	require.NoError(t, err)
	require.Len(t, rows, 2)

	for _, r := range rows {
		assert.Equal(t, 2, r.TotalDays)
		if r.VisitType == models.VisitTypeDay {
			// One active day-visit day; the cancelled one does not count
			assert.Equal(t, 1, r.Booked)
			assert.InDelta(t, 0.5, r.Rate, 0.001)
		}
	}
}

func TestCustomersReport(t *testing.T) {
	store := storage.NewMemoryStore()
	seedReportData(t, store)
	svc := NewReportService(store)

	rows, err := svc.CustomersReport(futureDate(1), futureDate(3))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 3, rows[0].Bookings)
	assert.Equal(t, 1, rows[0].Cancelled)
	assert.Equal(t, futureDate(2), rows[0].LastVisit)
}

func TestExportBookingsCSV(t *testing.T) {
	store := storage.NewMemoryStore()
	seedReportData(t, store)
	svc := NewReportService(store)

	data, err := svc.ExportBookingsCSV(futureDate(1), futureDate(3))
	require.NoError(t, err)

	require.True(t, bytes.HasPrefix(data, []byte{0xEF, 0xBB, 0xBF}), "CSV must start with a UTF-8 BOM")

	records, err := csv.NewReader(bytes.NewReader(data[3:])).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 4) // header + 3 bookings
	assert.Equal(t, "booking_ref", records[0][0])
}

func TestReportRejectsBadRange(t *testing.T) {
	svc := NewReportService(storage.NewMemoryStore())

	_, err := svc.BookingsReport("bogus", futureDate(1))
	assert.Error(t, err)
	_, err = svc.RevenueReport(futureDate(3), futureDate(1))
	assert.Error(t, err)
}
