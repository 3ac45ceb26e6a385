package routes

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nahlchatbot/NahlBooking-Farm-sub000/internal/handlers"
	"github.com/nahlchatbot/NahlBooking-Farm-sub000/internal/models"
	"github.com/nahlchatbot/NahlBooking-Farm-sub000/internal/services"
	"github.com/nahlchatbot/NahlBooking-Farm-sub000/internal/storage"
	"github.com/nahlchatbot/NahlBooking-Farm-sub000/internal/utils"
)

const (
	testPhone    = "966512345678"
	testEmail    = "admin@example.com"
	testPassword = "correct-horse"
)

// newTestApp wires the full API the way main does, backed by the memory store
func newTestApp(t *testing.T) (*fiber.App, storage.Store) {
	t.Helper()
	store := storage.NewMemoryStore()

	twilio := services.NewTwilioService()
	notifier := services.NewNotifier(store, twilio)
	audit := services.NewAuditService(store)
	auth := services.NewAuthService(store, "test-secret", audit)
	availability := services.NewAvailabilityService(store)
	verification := services.NewPhoneVerificationService(notifier)
	bookings := services.NewBookingService(store, availability, verification, notifier, audit, "")
	reports := services.NewReportService(store)
	dashboard := services.NewDashboardService(store, reports)

	hash, err := services.HashPassword(testPassword)
	require.NoError(t, err)
	_, err = store.CreateAdminUser(&models.AdminUser{
		Email: testEmail, PasswordHash: hash, Name: "مدير", Role: models.RoleSuperAdmin, IsActive: true,
	})
	require.NoError(t, err)

	app := fiber.New(fiber.Config{
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
				return c.Status(e.Code).JSON(fiber.Map{"ok": false, "message": e.Message})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"ok": false, "message": err.Error()})
		},
	})

	h := &Handlers{
		Health:       handlers.NewHealthHandler("test", nil, twilio),
		Availability: handlers.NewAvailabilityHandler(availability),
		Verification: handlers.NewVerificationHandler(verification, false),
		Booking:      handlers.NewBookingHandler(bookings, false),
		Public:       handlers.NewPublicHandler(store),

		AdminAuth:      handlers.NewAdminAuthHandler(auth, store),
		AdminBookings:  handlers.NewAdminBookingHandler(bookings),
		AdminBlackouts: handlers.NewAdminBlackoutHandler(store, audit),
		AdminChalets:   handlers.NewAdminChaletHandler(store, audit),
		AdminPricing:   handlers.NewAdminPricingHandler(store, audit),
		AdminSettings:  handlers.NewAdminSettingsHandler(store, audit),
		AdminUsers:     handlers.NewAdminUserHandler(store, audit),
		AdminAudit:     handlers.NewAdminAuditHandler(audit),
		AdminDashboard: handlers.NewAdminDashboardHandler(dashboard),
		AdminReports:   handlers.NewAdminReportHandler(reports),
	}
	SetupRoutes(app, h, auth)
	return app, store
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body any, token string) (int, map[string]any) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		blob, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(blob)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var parsed map[string]any
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &parsed), "body: %s", raw)
	}
	return resp.StatusCode, parsed
}

func futureDate(n int) string {
	return utils.FormatDate(time.Now().AddDate(0, 0, n))
}

// verifiedPhone walks the public OTP verification flow
func verifiedPhone(t *testing.T, app *fiber.App) {
	t.Helper()
	status, body := doJSON(t, app, http.MethodPost, "/api/verify/request-otp",
		fiber.Map{"phone": testPhone}, "")
	require.Equal(t, http.StatusOK, status)
	code, _ := body["devOtp"].(string)
	require.Len(t, code, 6)

	status, _ = doJSON(t, app, http.MethodPost, "/api/verify/confirm-otp",
		fiber.Map{"phone": testPhone, "code": code}, "")
	require.Equal(t, http.StatusOK, status)
}

func login(t *testing.T, app *fiber.App) string {
	t.Helper()
	status, body := doJSON(t, app, http.MethodPost, "/api/admin/auth/login",
		fiber.Map{"email": testEmail, "password": testPassword}, "")
	require.Equal(t, http.StatusOK, status, "login body: %v", body)
	data := body["data"].(map[string]any)
	token := data["token"].(string)
	require.NotEmpty(t, token)
	return token
}

func TestAvailabilityEndpoint(t *testing.T) {
	app, _ := newTestApp(t)

	status, body := doJSON(t, app, http.MethodGet,
		"/api/availability?date="+futureDate(5)+"&visitType=مبيت", nil, "")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, body["ok"])
	assert.Equal(t, true, body["available"])

	// Unavailability is still a 200 with a reason, not an error
	status, body = doJSON(t, app, http.MethodGet,
		"/api/availability?date=2020-01-01&visitType=مبيت", nil, "")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, false, body["available"])
	assert.Equal(t, "past_date", body["reason"])
}

func TestBookingLifecycleOverHTTP(t *testing.T) {
	app, _ := newTestApp(t)
	date := futureDate(5)

	// Booking without verification is rejected
	payload := fiber.Map{
		"date":          date,
		"visitType":     "زيارة نهارية",
		"customerName":  "محمد العتيبي",
		"customerPhone": testPhone,
		"guests":        4,
	}
	status, body := doJSON(t, app, http.MethodPost, "/api/booking", payload, "")
	require.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, false, body["ok"])

	verifiedPhone(t, app)
	status, body = doJSON(t, app, http.MethodPost, "/api/booking", payload, "")
	require.Equal(t, http.StatusCreated, status, "body: %v", body)
	ref := body["bookingRef"].(string)
	assert.Equal(t, fmt.Sprintf("FR-%d-0001", time.Now().Year()), ref)

	// Public lookup
	status, body = doJSON(t, app, http.MethodGet, "/api/booking/"+ref, nil, "")
	require.Equal(t, http.StatusOK, status)
	data := body["data"].(map[string]any)
	assert.Equal(t, "PENDING", data["status"])
	assert.Equal(t, true, data["can_cancel"])

	// Same slot again conflicts even with a fresh verification
	verifiedPhone(t, app)
	status, _ = doJSON(t, app, http.MethodPost, "/api/booking", payload, "")
	assert.Equal(t, http.StatusBadRequest, status)

	// OTP-gated cancellation
	status, body = doJSON(t, app, http.MethodPost, "/api/booking/"+ref+"/request-otp",
		fiber.Map{"phone": testPhone}, "")
	require.Equal(t, http.StatusOK, status)
	otp := body["devOtp"].(string)
	require.Len(t, otp, 6)

	status, body = doJSON(t, app, http.MethodPost, "/api/booking/"+ref+"/cancel",
		fiber.Map{"phone": testPhone, "otp": otp}, "")
	require.Equal(t, http.StatusOK, status, "body: %v", body)
	data = body["data"].(map[string]any)
	assert.Equal(t, "CANCELLED", data["status"])
	assert.Equal(t, false, data["can_cancel"])

	// The slot is bookable again
	status, _ = doJSON(t, app, http.MethodGet,
		"/api/availability?date="+date+"&visitType="+url.QueryEscape("زيارة نهارية"), nil, "")
	assert.Equal(t, http.StatusOK, status)
}

func TestBookingValidation(t *testing.T) {
	app, _ := newTestApp(t)

	status, body := doJSON(t, app, http.MethodPost, "/api/booking", fiber.Map{
		"date":          futureDate(3),
		"visitType":     "زيارة نهارية",
		"customerName":  "م",
		"customerPhone": "12345",
	}, "")
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, false, body["ok"])
	assert.NotNil(t, body["errors"])
}

func TestUnknownBookingRef(t *testing.T) {
	app, _ := newTestApp(t)

	status, body := doJSON(t, app, http.MethodGet, "/api/booking/FR-2026-9999", nil, "")
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, false, body["ok"])
	assert.Equal(t, models.ErrBookingNotFound.MessageAr, body["message"])

	// lang=en flips the envelope message to English
	status, body = doJSON(t, app, http.MethodGet, "/api/booking/FR-2026-9999?lang=en", nil, "")
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, models.ErrBookingNotFound.Message, body["message"])
}

func TestReportRangeValidation(t *testing.T) {
	app, _ := newTestApp(t)
	token := login(t, app)

	paths := []string{
		"/api/admin/reports/bookings",
		"/api/admin/reports/revenue",
		"/api/admin/reports/occupancy",
		"/api/admin/reports/customers",
		"/api/admin/reports/export",
	}
	for _, path := range paths {
		// Missing params
		status, body := doJSON(t, app, http.MethodGet, path, nil, token)
		assert.Equal(t, http.StatusBadRequest, status, path)
		assert.Equal(t, false, body["ok"], path)
		assert.NotEmpty(t, body["errors"], path)
	}

	// Unparseable from
	status, body := doJSON(t, app, http.MethodGet,
		"/api/admin/reports/export?from=bogus&to="+futureDate(3), nil, token)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, false, body["ok"])

	// Inverted range
	status, body = doJSON(t, app, http.MethodGet,
		"/api/admin/reports/revenue?from="+futureDate(5)+"&to="+futureDate(1), nil, token)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, false, body["ok"])

	// A valid range still goes through
	status, _ = doJSON(t, app, http.MethodGet,
		"/api/admin/reports/bookings?from="+futureDate(1)+"&to="+futureDate(5), nil, token)
	assert.Equal(t, http.StatusOK, status)
}

func TestAdminAuthFlow(t *testing.T) {
	app, _ := newTestApp(t)

	// Protected routes demand a token
	status, _ := doJSON(t, app, http.MethodGet, "/api/admin/bookings", nil, "")
	assert.Equal(t, http.StatusUnauthorized, status)

	status, _ = doJSON(t, app, http.MethodGet, "/api/admin/bookings", nil, "garbage-token")
	assert.Equal(t, http.StatusUnauthorized, status)

	token := login(t, app)
	status, body := doJSON(t, app, http.MethodGet, "/api/admin/auth/me", nil, token)
	require.Equal(t, http.StatusOK, status)
	data := body["data"].(map[string]any)
	assert.Equal(t, testEmail, data["email"])

	status, _ = doJSON(t, app, http.MethodGet, "/api/admin/bookings", nil, token)
	assert.Equal(t, http.StatusOK, status)
}

func TestAdminRoleEnforcement(t *testing.T) {
	app, store := newTestApp(t)

	hash, err := services.HashPassword("viewer-pass-123")
	require.NoError(t, err)
	_, err = store.CreateAdminUser(&models.AdminUser{
		Email: "viewer@example.com", PasswordHash: hash, Name: "مشاهد",
		Role: models.RoleViewer, IsActive: true,
	})
	require.NoError(t, err)

	status, body := doJSON(t, app, http.MethodPost, "/api/admin/auth/login",
		fiber.Map{"email": "viewer@example.com", "password": "viewer-pass-123"}, "")
	require.Equal(t, http.StatusOK, status)
	token := body["data"].(map[string]any)["token"].(string)

	// Viewers can read
	status, _ = doJSON(t, app, http.MethodGet, "/api/admin/bookings", nil, token)
	assert.Equal(t, http.StatusOK, status)

	// but not mutate
	status, _ = doJSON(t, app, http.MethodPost, "/api/admin/blackouts",
		fiber.Map{"date": futureDate(3)}, token)
	assert.Equal(t, http.StatusForbidden, status)

	// and never manage users
	status, _ = doJSON(t, app, http.MethodGet, "/api/admin/users/", nil, token)
	assert.Equal(t, http.StatusForbidden, status)
}

func TestAdminBlackoutFlow(t *testing.T) {
	app, _ := newTestApp(t)
	token := login(t, app)
	date := futureDate(6)

	status, body := doJSON(t, app, http.MethodPost, "/api/admin/blackouts",
		fiber.Map{"date": date, "reason": "صيانة"}, token)
	require.Equal(t, http.StatusCreated, status, "body: %v", body)

	// The blackout surfaces on the public availability check
	status, body = doJSON(t, app, http.MethodGet,
		"/api/availability?date="+date+"&visitType=مبيت", nil, "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, false, body["available"])
	assert.Equal(t, "blackout_date", body["reason"])
}

func TestAdminBookingCancel(t *testing.T) {
	app, _ := newTestApp(t)
	token := login(t, app)

	verifiedPhone(t, app)
	status, body := doJSON(t, app, http.MethodPost, "/api/booking", fiber.Map{
		"date":          futureDate(4),
		"visitType":     "مبيت",
		"customerName":  "محمد العتيبي",
		"customerPhone": testPhone,
	}, "")
	require.Equal(t, http.StatusCreated, status)
	id := body["data"].(map[string]any)["id"].(float64)

	status, body = doJSON(t, app, http.MethodPost,
		fmt.Sprintf("/api/admin/bookings/%d/cancel", int(id)), nil, token)
	require.Equal(t, http.StatusOK, status, "body: %v", body)

	// Cancelling twice fails cleanly
	status, _ = doJSON(t, app, http.MethodPost,
		fmt.Sprintf("/api/admin/bookings/%d/cancel", int(id)), nil, token)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestHealthEndpoint(t *testing.T) {
	app, _ := newTestApp(t)

	status, body := doJSON(t, app, http.MethodGet, "/health", nil, "")
	assert.Equal(t, http.StatusOK, status)
	assert.NotNil(t, body["status"])
}
