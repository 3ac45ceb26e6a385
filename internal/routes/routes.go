package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"github.com/nahlchatbot/NahlBooking-Farm-sub000/internal/handlers"
	"github.com/nahlchatbot/NahlBooking-Farm-sub000/internal/middleware"
	"github.com/nahlchatbot/NahlBooking-Farm-sub000/internal/models"
	"github.com/nahlchatbot/NahlBooking-Farm-sub000/internal/services"
)

// Handlers bundles everything SetupRoutes mounts
type Handlers struct {
	Health       *handlers.HealthHandler
	Availability *handlers.AvailabilityHandler
	Verification *handlers.VerificationHandler
	Booking      *handlers.BookingHandler
	Public       *handlers.PublicHandler

	AdminAuth      *handlers.AdminAuthHandler
	AdminBookings  *handlers.AdminBookingHandler
	AdminBlackouts *handlers.AdminBlackoutHandler
	AdminChalets   *handlers.AdminChaletHandler
	AdminPricing   *handlers.AdminPricingHandler
	AdminSettings  *handlers.AdminSettingsHandler
	AdminUsers     *handlers.AdminUserHandler
	AdminAudit     *handlers.AdminAuditHandler
	AdminDashboard *handlers.AdminDashboardHandler
	AdminReports   *handlers.AdminReportHandler
}

// SetupRoutes configures all API routes
func SetupRoutes(app *fiber.App, h *Handlers, auth *services.AuthService) {

	// Root endpoint
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "مرحباً بكم في مزرعة النخيل",
			"endpoints": fiber.Map{
				"health":       "/health",
				"availability": "/api/availability",
				"booking":      "/api/booking",
				"admin":        "/api/admin",
			},
		})
	})

	app.Get("/health", h.Health.Check)

	// OTP endpoints get a tight per-IP window so a single caller cannot
	// burn through the WhatsApp sender quota. Each route keeps its own
	// counter.
	otpLimiter := func() fiber.Handler {
		return limiter.New(limiter.Config{
			Max:        5,
			Expiration: 10 * time.Minute,
		})
	}
	bookingLimiter := limiter.New(limiter.Config{
		Max:        20,
		Expiration: time.Hour,
	})

	// ========== PUBLIC API ==========
	api := app.Group("/api")

	api.Get("/availability", h.Availability.Check)
	api.Get("/availability/calendar", h.Availability.Calendar)
	api.Get("/chalets", h.Public.ListChalets)
	api.Get("/pricing", h.Public.ListPricing)

	api.Post("/verify/request-otp", otpLimiter(), h.Verification.RequestOTP)
	api.Post("/verify/confirm-otp", h.Verification.ConfirmOTP)

	api.Post("/booking", bookingLimiter, h.Booking.Create)
	api.Get("/booking/:ref", h.Booking.Get)
	api.Post("/booking/:ref/request-otp", otpLimiter(), h.Booking.RequestCancellationOTP)
	api.Post("/booking/:ref/cancel", h.Booking.Cancel)

	// ========== ADMIN ROUTES ==========
	admin := api.Group("/admin")
	admin.Post("/auth/login", otpLimiter(), h.AdminAuth.Login)

	admin.Use(middleware.Protected(auth))
	admin.Get("/auth/me", h.AdminAuth.Me)

	admin.Get("/dashboard", h.AdminDashboard.Stats)

	admin.Get("/bookings", h.AdminBookings.List)
	admin.Get("/bookings/:id", h.AdminBookings.Get)
	admin.Patch("/bookings/:id", middleware.RequireRole(models.RoleAdmin), h.AdminBookings.Update)
	admin.Post("/bookings/:id/cancel", middleware.RequireRole(models.RoleAdmin), h.AdminBookings.Cancel)

	admin.Get("/blackouts", h.AdminBlackouts.List)
	admin.Post("/blackouts", middleware.RequireRole(models.RoleAdmin), h.AdminBlackouts.Create)
	admin.Delete("/blackouts/:id", middleware.RequireRole(models.RoleAdmin), h.AdminBlackouts.Delete)

	admin.Get("/chalets", h.AdminChalets.List)
	admin.Post("/chalets", middleware.RequireRole(models.RoleAdmin), h.AdminChalets.Create)
	admin.Put("/chalets/:id", middleware.RequireRole(models.RoleAdmin), h.AdminChalets.Update)
	admin.Delete("/chalets/:id", middleware.RequireRole(models.RoleAdmin), h.AdminChalets.Delete)

	admin.Get("/pricing", h.AdminPricing.List)
	admin.Put("/pricing", middleware.RequireRole(models.RoleAdmin), h.AdminPricing.UpsertLegacy)
	admin.Put("/pricing/matrix", middleware.RequireRole(models.RoleAdmin), h.AdminPricing.UpsertMatrix)

	admin.Get("/settings", h.AdminSettings.List)
	admin.Put("/settings", middleware.RequireRole(models.RoleAdmin), h.AdminSettings.Put)

	admin.Get("/audit", middleware.RequireRole(models.RoleAdmin), h.AdminAudit.List)

	admin.Get("/reports/bookings", h.AdminReports.Bookings)
	admin.Get("/reports/revenue", h.AdminReports.Revenue)
	admin.Get("/reports/occupancy", h.AdminReports.Occupancy)
	admin.Get("/reports/customers", h.AdminReports.Customers)
	admin.Get("/reports/export", h.AdminReports.Export)

	users := admin.Group("/users", middleware.RequireRole(models.RoleSuperAdmin))
	users.Get("/", h.AdminUsers.List)
	users.Post("/", h.AdminUsers.Create)
	users.Patch("/:id", h.AdminUsers.Update)
}
