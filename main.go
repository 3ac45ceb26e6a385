package main

import (
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"gorm.io/gorm"

	"github.com/nahlchatbot/NahlBooking-Farm-sub000/database"
	"github.com/nahlchatbot/NahlBooking-Farm-sub000/internal/handlers"
	"github.com/nahlchatbot/NahlBooking-Farm-sub000/internal/jobs"
	"github.com/nahlchatbot/NahlBooking-Farm-sub000/internal/models"
	"github.com/nahlchatbot/NahlBooking-Farm-sub000/internal/routes"
	"github.com/nahlchatbot/NahlBooking-Farm-sub000/internal/services"
	"github.com/nahlchatbot/NahlBooking-Farm-sub000/internal/storage"
)

const version = "1.0.0"

// activeSlotIndex backstops the availability check: two concurrent inserts
// for the same date/visit type/chalet cannot both commit while either row
// is still PENDING or CONFIRMED. A chalet-less insert racing a chalet-scoped
// one for the same slot maps to different index keys, so that pairing is only
// covered by the in-transaction re-check, which at READ COMMITTED can miss a
// concurrent uncommitted row. Admins resolve that rare double via cancel.
const activeSlotIndex = `
CREATE UNIQUE INDEX IF NOT EXISTS idx_active_slot
ON bookings (date, visit_type, COALESCE(chalet_id, 0))
WHERE status IN ('PENDING', 'CONFIRMED')`

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Println("⚠️  No .env file found - using environment variables")
	}

	production := os.Getenv("APP_ENV") == "production"

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		if production {
			log.Fatal("JWT_SECRET is required in production")
		}
		jwtSecret = "dev-secret-change-me"
		log.Println("⚠️  JWT_SECRET not set - using development secret")
	}

	// Initialize storage
	var store storage.Store
	var db *gorm.DB

	if os.Getenv("USE_MEMORY_STORE") == "true" {
		log.Println("⚠️  Using in-memory storage (not for production!)")
		store = storage.NewMemoryStore()
	} else {
		log.Println("📦 Connecting to PostgreSQL database...")
		var err error
		db, err = database.Connect()
		if err != nil {
			log.Fatal("Failed to connect to database:", err)
		}

		log.Println("🔄 Running database migrations...")
		if err := db.AutoMigrate(
			&models.Booking{},
			&models.BlackoutDate{},
			&models.BookingCounter{},
			&models.Chalet{},
			&models.Pricing{},
			&models.ChaletPricing{},
			&models.AdminUser{},
			&models.AuditLog{},
			&models.Setting{},
		); err != nil {
			log.Fatal("Failed to migrate database:", err)
		}
		if err := db.Exec(activeSlotIndex).Error; err != nil {
			log.Fatal("Failed to create slot index:", err)
		}
		log.Println("✅ Database migrations completed!")

		store = storage.NewDatabaseStore(db)
	}

	if err := seedAdmin(store); err != nil {
		log.Fatal("Failed to seed admin account:", err)
	}
	seedChalets(store)
	seedPricing(store)

	// Wire up services
	twilioService := services.NewTwilioService()
	notifier := services.NewNotifier(store, twilioService)
	auditService := services.NewAuditService(store)
	authService := services.NewAuthService(store, jwtSecret, auditService)
	availabilityService := services.NewAvailabilityService(store)
	verificationService := services.NewPhoneVerificationService(notifier)
	bookingService := services.NewBookingService(
		store, availabilityService, verificationService, notifier, auditService,
		os.Getenv("BOOKING_REF_PREFIX"),
	)
	reportService := services.NewReportService(store)
	dashboardService := services.NewDashboardService(store, reportService)

	verificationService.Start()
	reminderJob := jobs.NewReminderJob(store, notifier)
	reminderJob.Start()

	// Create fiber app
	app := fiber.New(fiber.Config{
		AppName: "NahlBooking v" + version,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			var appErr *models.AppError
			if errors.As(err, &appErr) {
				return c.Status(appErr.Status).JSON(fiber.Map{
					"ok":      false,
					"message": appErr.Localized(c.Query("lang")),
					"errors":  fiber.Map{"code": appErr.Code, "detail": appErr.Message},
				})
			}
			if e, ok := err.(*fiber.Error); ok {
				return c.Status(e.Code).JSON(fiber.Map{
					"ok":      false,
					"message": e.Message,
				})
			}
			log.Printf("Unhandled error on %s %s: %v", c.Method(), c.Path(), err)
			msg := "حدث خطأ غير متوقع"
			if !production {
				msg = err.Error()
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"ok":      false,
				"message": msg,
			})
		},
	})

	// Middleware
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PUT, PATCH, DELETE, OPTIONS",
	}))

	h := &routes.Handlers{
		Health:       handlers.NewHealthHandler(version, db, twilioService),
		Availability: handlers.NewAvailabilityHandler(availabilityService),
		Verification: handlers.NewVerificationHandler(verificationService, production),
		Booking:      handlers.NewBookingHandler(bookingService, production),
		Public:       handlers.NewPublicHandler(store),

		AdminAuth:      handlers.NewAdminAuthHandler(authService, store),
		AdminBookings:  handlers.NewAdminBookingHandler(bookingService),
		AdminBlackouts: handlers.NewAdminBlackoutHandler(store, auditService),
		AdminChalets:   handlers.NewAdminChaletHandler(store, auditService),
		AdminPricing:   handlers.NewAdminPricingHandler(store, auditService),
		AdminSettings:  handlers.NewAdminSettingsHandler(store, auditService),
		AdminUsers:     handlers.NewAdminUserHandler(store, auditService),
		AdminAudit:     handlers.NewAdminAuditHandler(auditService),
		AdminDashboard: handlers.NewAdminDashboardHandler(dashboardService),
		AdminReports:   handlers.NewAdminReportHandler(reportService),
	}
	routes.SetupRoutes(app, h, authService)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	// Handle graceful shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		log.Println("\n🛑 Gracefully shutting down...")
		reminderJob.Stop()
		verificationService.Stop()
		_ = app.Shutdown()
	}()

	log.Println("========================================")
	log.Printf("🚀 NahlBooking starting on port %s", port)
	log.Printf("📊 Storage: %s", storageType())
	log.Printf("🌍 Environment: %s", os.Getenv("APP_ENV"))
	log.Println("========================================")

	log.Fatal(app.Listen(":" + port))
}

// seedAdmin creates the initial SUPER_ADMIN account from ADMIN_EMAIL /
// ADMIN_PASSWORD. Existing accounts are left alone.
func seedAdmin(store storage.Store) error {
	email := os.Getenv("ADMIN_EMAIL")
	password := os.Getenv("ADMIN_PASSWORD")
	if email == "" || password == "" {
		return nil
	}

	if _, err := store.GetAdminUserByEmail(email); err == nil {
		return nil
	} else if !errors.Is(err, storage.ErrNotFound) {
		return err
	}

	hash, err := services.HashPassword(password)
	if err != nil {
		return err
	}
	_, err = store.CreateAdminUser(&models.AdminUser{
		Email:        email,
		PasswordHash: hash,
		Name:         "مدير النظام",
		Role:         models.RoleSuperAdmin,
		IsActive:     true,
	})
	if err != nil && !errors.Is(err, storage.ErrDuplicate) {
		return err
	}
	log.Printf("✅ Seeded admin account %s", email)
	return nil
}

func seedChalets(store storage.Store) {
	existing, err := store.ListChalets(false)
	if err != nil || len(existing) > 0 {
		return
	}
	defaults := []*models.Chalet{
		{NameAr: "شاليه النخيل", NameEn: "Palm Chalet", Slug: "palm", MaxGuests: 15, IsActive: true, SortOrder: 1},
		{NameAr: "شاليه الواحة", NameEn: "Oasis Chalet", Slug: "oasis", MaxGuests: 10, IsActive: true, SortOrder: 2},
	}
	for _, ch := range defaults {
		if _, err := store.CreateChalet(ch); err != nil {
			log.Printf("Chalet seed failed (%s): %v", ch.Slug, err)
		}
	}
}

func seedPricing(store storage.Store) {
	existing, err := store.ListPricing()
	if err != nil || len(existing) > 0 {
		return
	}
	defaults := []*models.Pricing{
		{VisitType: models.VisitTypeDay, TotalPrice: 500, DepositAmount: 100},
		{VisitType: models.VisitTypeOvernight, TotalPrice: 1200, DepositAmount: 300},
	}
	for _, p := range defaults {
		if err := store.UpsertPricing(p); err != nil {
			log.Printf("Pricing seed failed (%s): %v", p.VisitType, err)
		}
	}
}

func storageType() string {
	if os.Getenv("USE_MEMORY_STORE") == "true" {
		return "In-Memory (Testing)"
	}
	return "PostgreSQL Database"
}
