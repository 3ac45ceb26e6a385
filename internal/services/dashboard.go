package services

import (
	"time"

	"github.com/nahlchatbot/NahlBooking-Farm-sub000/internal/models"
	"github.com/nahlchatbot/NahlBooking-Farm-sub000/internal/storage"
	"github.com/nahlchatbot/NahlBooking-Farm-sub000/internal/utils"
)

// DashboardStats is the admin landing-page summary
type DashboardStats struct {
	TotalBookings  int64             `json:"total_bookings"`
	ByStatus       map[string]int64  `json:"by_status"`
	UpcomingWeek   int               `json:"upcoming_week"`
	MonthRevenue   float64           `json:"month_revenue"`
	OccupancyMonth float64           `json:"occupancy_month"`
	Upcoming       []*models.Booking `json:"upcoming"`
}

// DashboardService computes the admin dashboard summary
type DashboardService struct {
	store   storage.Store
	reports *ReportService
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(store storage.Store, reports *ReportService) *DashboardService {
	return &DashboardService{store: store, reports: reports}
}

// Stats aggregates totals, the coming week's active bookings, the current
// month's estimated revenue and a 30-day occupancy rate
func (d *DashboardService) Stats() (*DashboardStats, error) {
	counts, err := d.store.CountBookingsByStatus()
	if err != nil {
		return nil, err
	}
	var total int64
	for _, c := range counts {
		total += c
	}

	today := utils.Today()
	weekAhead, err := d.store.GetBookingsInRange(today, today.AddDate(0, 0, 7))
	if err != nil {
		return nil, err
	}
	var upcoming []*models.Booking
	for _, b := range weekAhead {
		if b.IsActive() {
			upcoming = append(upcoming, b)
		}
	}

	monthStart := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC)
	monthEnd := monthStart.AddDate(0, 1, -1)
	monthBookings, err := d.store.GetBookingsInRange(monthStart, monthEnd)
	if err != nil {
		return nil, err
	}
	var revenue float64
	for _, b := range monthBookings {
		if b.Status == models.BookingStatusCancelled {
			continue
		}
		price, _ := d.reports.priceFor(b)
		revenue += price
	}

	const occupancyWindow = 30
	windowEnd := today.AddDate(0, 0, occupancyWindow-1)
	windowBookings, err := d.store.GetBookingsInRange(today, windowEnd)
	if err != nil {
		return nil, err
	}
	bookedSlots := make(map[string]bool)
	for _, b := range windowBookings {
		if b.IsActive() {
			bookedSlots[utils.FormatDate(b.Date)+"/"+string(b.VisitType)] = true
		}
	}
	occupancy := float64(len(bookedSlots)) / float64(occupancyWindow*2)

	return &DashboardStats{
		TotalBookings:  total,
		ByStatus:       counts,
		UpcomingWeek:   len(upcoming),
		MonthRevenue:   revenue,
		OccupancyMonth: occupancy,
		Upcoming:       upcoming,
	}, nil
}
