package services

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/nahlchatbot/NahlBooking-Farm-sub000/internal/models"
	"github.com/nahlchatbot/NahlBooking-Farm-sub000/internal/storage"
	"github.com/nahlchatbot/NahlBooking-Farm-sub000/internal/utils"
)

// ReportService builds admin reports over a date range. Pricing comes from
// the chalet matrix when an entry exists, falling back to the legacy
// per-visit-type list.
type ReportService struct {
	store storage.Store
}

// NewReportService creates a new report service
func NewReportService(store storage.Store) *ReportService {
	return &ReportService{store: store}
}

// priceFor resolves the total/deposit price for a booking
func (r *ReportService) priceFor(b *models.Booking) (total, deposit float64) {
	if b.ChaletID != nil {
		if p, err := r.store.GetChaletPricing(*b.ChaletID, b.VisitType); err == nil {
			return p.TotalPrice, p.DepositAmount
		} else if !errors.Is(err, storage.ErrNotFound) {
			return 0, 0
		}
	}
	if p, err := r.store.GetPricing(b.VisitType); err == nil {
		return p.TotalPrice, p.DepositAmount
	}
	return 0, 0
}

func (r *ReportService) rangeBookings(fromStr, toStr string) ([]*models.Booking, time.Time, time.Time, error) {
	from, err := utils.ParseDate(fromStr)
	if err != nil {
		return nil, time.Time{}, time.Time{}, err
	}
	to, err := utils.ParseDate(toStr)
	if err != nil {
		return nil, time.Time{}, time.Time{}, err
	}
	if to.Before(from) {
		return nil, time.Time{}, time.Time{}, fmt.Errorf("range end precedes start")
	}
	bookings, err := r.store.GetBookingsInRange(from, to)
	if err != nil {
		return nil, time.Time{}, time.Time{}, err
	}
	return bookings, from, to, nil
}

// DailyBookings is one row of the bookings report
type DailyBookings struct {
	Date     string           `json:"date"`
	Total    int              `json:"total"`
	ByStatus map[string]int64 `json:"by_status"`
}

// BookingsReport returns per-day booking counts with status breakdowns
func (r *ReportService) BookingsReport(fromStr, toStr string) ([]DailyBookings, error) {
	bookings, from, to, err := r.rangeBookings(fromStr, toStr)
	if err != nil {
		return nil, err
	}

	byDay := make(map[string]*DailyBookings)
	for _, b := range bookings {
		key := utils.FormatDate(b.Date)
		day, ok := byDay[key]
		if !ok {
			day = &DailyBookings{Date: key, ByStatus: make(map[string]int64)}
			byDay[key] = day
		}
		day.Total++
		day.ByStatus[b.Status]++
	}

	var report []DailyBookings
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		if day, ok := byDay[utils.FormatDate(d)]; ok {
			report = append(report, *day)
		}
	}
	return report, nil
}

// RevenueRow aggregates revenue for one visit type
type RevenueRow struct {
	VisitType models.VisitType `json:"visit_type"`
	Bookings  int              `json:"bookings"`
	Total     float64          `json:"total"`
	Deposits  float64          `json:"deposits"`
}

// RevenueReport sums pricing over non-cancelled bookings per visit type.
// Revenue is an estimate from the price lists; payments are tracked manually.
func (r *ReportService) RevenueReport(fromStr, toStr string) ([]RevenueRow, error) {
	bookings, _, _, err := r.rangeBookings(fromStr, toStr)
	if err != nil {
		return nil, err
	}

	rows := map[models.VisitType]*RevenueRow{
		models.VisitTypeDay:       {VisitType: models.VisitTypeDay},
		models.VisitTypeOvernight: {VisitType: models.VisitTypeOvernight},
	}
	for _, b := range bookings {
		if b.Status == models.BookingStatusCancelled {
			continue
		}
		total, deposit := r.priceFor(b)
		row := rows[b.VisitType]
		row.Bookings++
		row.Total += total
		row.Deposits += deposit
	}
	return []RevenueRow{*rows[models.VisitTypeDay], *rows[models.VisitTypeOvernight]}, nil
}

// OccupancyRow reports slot utilisation for one visit type
type OccupancyRow struct {
	VisitType models.VisitType `json:"visit_type"`
	Booked    int              `json:"booked"`
	TotalDays int              `json:"total_days"`
	Rate      float64          `json:"rate"`
}

// OccupancyReport computes booked-day ratios per visit type over the range
func (r *ReportService) OccupancyReport(fromStr, toStr string) ([]OccupancyRow, error) {
	bookings, from, to, err := r.rangeBookings(fromStr, toStr)
	if err != nil {
		return nil, err
	}

	days := int(to.Sub(from).Hours()/24) + 1
	booked := map[models.VisitType]map[string]bool{
		models.VisitTypeDay:       {},
		models.VisitTypeOvernight: {},
	}
	for _, b := range bookings {
		if !b.IsActive() && b.Status != models.BookingStatusCompleted {
			continue
		}
		booked[b.VisitType][utils.FormatDate(b.Date)] = true
	}

	var rows []OccupancyRow
	for _, vt := range []models.VisitType{models.VisitTypeDay, models.VisitTypeOvernight} {
		count := len(booked[vt])
		rate := 0.0
		if days > 0 {
			rate = float64(count) / float64(days)
		}
		rows = append(rows, OccupancyRow{VisitType: vt, Booked: count, TotalDays: days, Rate: rate})
	}
	return rows, nil
}

// CustomerRow aggregates a customer's booking history
type CustomerRow struct {
	Phone     string `json:"phone"`
	Name      string `json:"name"`
	Bookings  int    `json:"bookings"`
	Cancelled int    `json:"cancelled"`
	LastVisit string `json:"last_visit"`
}

// CustomersReport groups bookings by customer phone
func (r *ReportService) CustomersReport(fromStr, toStr string) ([]CustomerRow, error) {
	bookings, _, _, err := r.rangeBookings(fromStr, toStr)
	if err != nil {
		return nil, err
	}

	byPhone := make(map[string]*CustomerRow)
	var order []string
	for _, b := range bookings {
		row, ok := byPhone[b.CustomerPhone]
		if !ok {
			row = &CustomerRow{Phone: b.CustomerPhone, Name: b.CustomerName}
			byPhone[b.CustomerPhone] = row
			order = append(order, b.CustomerPhone)
		}
		row.Bookings++
		if b.Status == models.BookingStatusCancelled {
			row.Cancelled++
		}
		if day := utils.FormatDate(b.Date); day > row.LastVisit {
			row.LastVisit = day
		}
	}

	rows := make([]CustomerRow, 0, len(order))
	for _, phone := range order {
		rows = append(rows, *byPhone[phone])
	}
	return rows, nil
}

// ExportBookingsCSV renders the bookings in the range as CSV, prefixed with
// a UTF-8 BOM so Arabic text opens correctly in spreadsheet software
func (r *ReportService) ExportBookingsCSV(fromStr, toStr string) ([]byte, error) {
	bookings, _, _, err := r.rangeBookings(fromStr, toStr)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	buf.Write([]byte{0xEF, 0xBB, 0xBF})

	w := csv.NewWriter(&buf)
	header := []string{"booking_ref", "date", "visit_type", "customer_name",
		"customer_phone", "guests", "chalet", "status", "payment_status", "created_at"}
	if err := w.Write(header); err != nil {
		return nil, err
	}

	for _, b := range bookings {
		chalet := ""
		if b.Chalet != nil {
			chalet = b.Chalet.NameAr
		}
		row := []string{
			b.BookingRef,
			utils.FormatDate(b.Date),
			string(b.VisitType),
			b.CustomerName,
			b.CustomerPhone,
			strconv.Itoa(b.Guests),
			chalet,
			b.Status,
			b.PaymentStatus,
			b.CreatedAt.Format(time.RFC3339),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
