package services

import (
	"log"
	"strings"

	"github.com/nahlchatbot/NahlBooking-Farm-sub000/internal/models"
	"github.com/nahlchatbot/NahlBooking-Farm-sub000/internal/storage"
	"github.com/nahlchatbot/NahlBooking-Farm-sub000/internal/utils"
)

// Default WhatsApp message templates, overridable through settings
const (
	defaultTemplateBookingConfirmed = "مرحباً {name}! تم استلام حجزك رقم {ref} بتاريخ {date} ({visit_type}). سنتواصل معك لتأكيد الحجز."
	defaultTemplateCancellationOTP  = "رمز التحقق لإلغاء الحجز {ref} هو: {otp}. الرمز صالح لمدة 10 دقائق."
	defaultTemplateBookingCancelled = "تم إلغاء الحجز رقم {ref} بتاريخ {date}. نأمل خدمتكم مرة أخرى."
	defaultTemplateVisitReminder    = "تذكير: حجزك رقم {ref} غداً {date} ({visit_type}). نتمنى لكم زيارة سعيدة!"
	defaultTemplateVerificationOTP  = "رمز التحقق الخاص بك هو: {otp}. الرمز صالح لمدة 10 دقائق."
)

// Notifier renders booking-related WhatsApp messages from the settings
// templates and dispatches them. All methods are safe to call fire-and-forget:
// failures are logged, never propagated, so a notification can never roll
// back the state transition it follows.
type Notifier struct {
	store  storage.Store
	twilio *TwilioService
}

// NewNotifier creates a new notifier
func NewNotifier(store storage.Store, twilio *TwilioService) *Notifier {
	return &Notifier{store: store, twilio: twilio}
}

// template returns the stored template for key, or the fallback
func (n *Notifier) template(key, fallback string) string {
	setting, err := n.store.GetSetting(key)
	if err != nil || setting.Value == "" {
		return fallback
	}
	return setting.Value
}

func render(template string, vars map[string]string) string {
	out := template
	for k, v := range vars {
		out = strings.ReplaceAll(out, "{"+k+"}", v)
	}
	return out
}

func bookingVars(b *models.Booking) map[string]string {
	vars := map[string]string{
		"name":       b.CustomerName,
		"ref":        b.BookingRef,
		"date":       utils.FormatDate(b.Date),
		"visit_type": b.VisitType.Label(b.Language),
	}
	if b.Chalet != nil {
		vars["chalet"] = b.Chalet.Name(b.Language)
	}
	return vars
}

func (n *Notifier) send(to, message string) {
	if err := n.twilio.SendWhatsAppMessage(to, message); err != nil {
		log.Printf("Notification to %s failed: %v", to, err)
	}
}

// BookingConfirmed notifies the customer that their booking was received
func (n *Notifier) BookingConfirmed(b *models.Booking) {
	tmpl := n.template(models.SettingTemplateBookingConfirmed, defaultTemplateBookingConfirmed)
	n.send(b.CustomerPhone, render(tmpl, bookingVars(b)))
}

// CancellationOTP delivers the cancellation verification code
func (n *Notifier) CancellationOTP(b *models.Booking, code string) {
	tmpl := n.template(models.SettingTemplateCancellationOTP, defaultTemplateCancellationOTP)
	vars := bookingVars(b)
	vars["otp"] = code
	n.send(b.CustomerPhone, render(tmpl, vars))
}

// BookingCancelled notifies the customer that their booking was cancelled
func (n *Notifier) BookingCancelled(b *models.Booking) {
	tmpl := n.template(models.SettingTemplateBookingCancelled, defaultTemplateBookingCancelled)
	n.send(b.CustomerPhone, render(tmpl, bookingVars(b)))
}

// VisitReminder reminds the customer of tomorrow's visit
func (n *Notifier) VisitReminder(b *models.Booking) {
	tmpl := n.template(models.SettingTemplateVisitReminder, defaultTemplateVisitReminder)
	n.send(b.CustomerPhone, render(tmpl, bookingVars(b)))
}

// VerificationOTP delivers the pre-booking phone verification code
func (n *Notifier) VerificationOTP(phone, code string) {
	tmpl := n.template(models.SettingTemplateVerificationOTP, defaultTemplateVerificationOTP)
	n.send(phone, render(tmpl, map[string]string{"otp": code}))
}
