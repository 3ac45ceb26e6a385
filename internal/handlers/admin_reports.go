package handlers

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/nahlchatbot/NahlBooking-Farm-sub000/internal/services"
	"github.com/nahlchatbot/NahlBooking-Farm-sub000/internal/utils"
)

// AdminReportHandler serves aggregated reports for the dashboard
type AdminReportHandler struct {
	reports *services.ReportService
}

// NewAdminReportHandler creates a new report handler
func NewAdminReportHandler(reports *services.ReportService) *AdminReportHandler {
	return &AdminReportHandler{reports: reports}
}

// reportRange validates the from/to query params shared by every report
// endpoint, so a malformed range is rejected before any aggregation runs
func reportRange(c *fiber.Ctx) (fromStr, toStr string, fields []FieldError) {
	fromStr, toStr = c.Query("from"), c.Query("to")
	from, err := utils.ParseDate(fromStr)
	if err != nil {
		return "", "", []FieldError{{Field: "from", Message: err.Error()}}
	}
	to, err := utils.ParseDate(toStr)
	if err != nil {
		return "", "", []FieldError{{Field: "to", Message: err.Error()}}
	}
	if to.Before(from) {
		return "", "", []FieldError{{Field: "range", Message: "range end precedes start"}}
	}
	return fromStr, toStr, nil
}

// Bookings handles GET /api/admin/reports/bookings
func (h *AdminReportHandler) Bookings(c *fiber.Ctx) error {
	from, to, fields := reportRange(c)
	if fields != nil {
		return respondValidation(c, fields)
	}
	rows, err := h.reports.BookingsReport(from, to)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, "", fiber.Map{"days": rows})
}

// Revenue handles GET /api/admin/reports/revenue
func (h *AdminReportHandler) Revenue(c *fiber.Ctx) error {
	from, to, fields := reportRange(c)
	if fields != nil {
		return respondValidation(c, fields)
	}
	rows, err := h.reports.RevenueReport(from, to)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, "", fiber.Map{"revenue": rows})
}

// Occupancy handles GET /api/admin/reports/occupancy
func (h *AdminReportHandler) Occupancy(c *fiber.Ctx) error {
	from, to, fields := reportRange(c)
	if fields != nil {
		return respondValidation(c, fields)
	}
	rows, err := h.reports.OccupancyReport(from, to)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, "", fiber.Map{"occupancy": rows})
}

// Customers handles GET /api/admin/reports/customers
func (h *AdminReportHandler) Customers(c *fiber.Ctx) error {
	from, to, fields := reportRange(c)
	if fields != nil {
		return respondValidation(c, fields)
	}
	rows, err := h.reports.CustomersReport(from, to)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, "", fiber.Map{"customers": rows})
}

// Export handles GET /api/admin/reports/export and streams bookings as CSV.
// The payload starts with a UTF-8 BOM so Excel renders the Arabic columns.
func (h *AdminReportHandler) Export(c *fiber.Ctx) error {
	from, to, fields := reportRange(c)
	if fields != nil {
		return respondValidation(c, fields)
	}
	data, err := h.reports.ExportBookingsCSV(from, to)
	if err != nil {
		return err
	}

	filename := fmt.Sprintf("bookings-%s.csv", time.Now().Format("2006-01-02"))
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
	return c.Send(data)
}
