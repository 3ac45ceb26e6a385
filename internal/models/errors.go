package models

import "net/http"

// AppError is a typed domain error carrying the HTTP status to respond with
// and a bilingual, user-safe message. Services return these; the central
// Fiber error handler formats them into the response envelope.
type AppError struct {
	Status    int    `json:"-"`
	Code      string `json:"code"`
	Message   string `json:"message"`
	MessageAr string `json:"message_ar"`
}

func (e *AppError) Error() string {
	return e.Message
}

// Localized returns the message for the given language preference
func (e *AppError) Localized(lang string) string {
	if lang == "en" || e.MessageAr == "" {
		return e.Message
	}
	return e.MessageAr
}

// NewAppError builds a typed domain error
func NewAppError(status int, code, message, messageAr string) *AppError {
	return &AppError{Status: status, Code: code, Message: message, MessageAr: messageAr}
}

// Domain errors. Each failure mode gets its own message so the customer (and
// the tests) can tell exactly what went wrong.
var (
	ErrBookingNotFound = NewAppError(http.StatusNotFound, "booking_not_found",
		"Booking not found", "الحجز غير موجود")
	ErrChaletNotFound = NewAppError(http.StatusNotFound, "chalet_not_found",
		"Chalet not found", "الشاليه غير موجود")
	ErrBlackoutNotFound = NewAppError(http.StatusNotFound, "blackout_not_found",
		"Blackout date not found", "تاريخ الإغلاق غير موجود")
	ErrUserNotFound = NewAppError(http.StatusNotFound, "user_not_found",
		"User not found", "المستخدم غير موجود")

	ErrDateUnavailable = NewAppError(http.StatusBadRequest, "date_unavailable",
		"The selected date is not available", "التاريخ المحدد غير متاح")
	ErrSlotTaken = NewAppError(http.StatusConflict, "slot_taken",
		"This date was just booked by someone else", "تم حجز هذا التاريخ للتو من قبل شخص آخر")
	ErrGuestsExceedCapacity = NewAppError(http.StatusBadRequest, "guests_exceed_capacity",
		"Guest count exceeds chalet capacity", "عدد الضيوف يتجاوز سعة الشاليه")
	ErrPhoneNotVerified = NewAppError(http.StatusBadRequest, "phone_not_verified",
		"Phone number is not verified", "رقم الجوال غير موثق")

	ErrPhoneMismatch = NewAppError(http.StatusBadRequest, "phone_mismatch",
		"Phone number does not match this booking", "رقم الجوال لا يطابق بيانات الحجز")
	ErrAlreadyCancelled = NewAppError(http.StatusBadRequest, "already_cancelled",
		"Booking is already cancelled", "الحجز ملغي بالفعل")
	ErrBookingCompleted = NewAppError(http.StatusBadRequest, "booking_completed",
		"Completed bookings cannot be cancelled", "لا يمكن إلغاء حجز مكتمل")
	ErrNoOTPRequested = NewAppError(http.StatusBadRequest, "no_otp_requested",
		"No verification code was requested for this booking", "لم يتم طلب رمز تحقق لهذا الحجز")
	ErrOTPExpired = NewAppError(http.StatusBadRequest, "otp_expired",
		"Verification code has expired", "انتهت صلاحية رمز التحقق")
	ErrOTPIncorrect = NewAppError(http.StatusBadRequest, "otp_incorrect",
		"Verification code is incorrect", "رمز التحقق غير صحيح")

	ErrInvalidCredentials = NewAppError(http.StatusUnauthorized, "invalid_credentials",
		"Invalid email or password", "بيانات الدخول غير صحيحة")
	ErrUnauthorized = NewAppError(http.StatusUnauthorized, "unauthorized",
		"Authentication required", "يجب تسجيل الدخول")
	ErrForbidden = NewAppError(http.StatusForbidden, "forbidden",
		"You do not have permission to perform this action", "ليس لديك صلاحية لتنفيذ هذا الإجراء")
	ErrEmailTaken = NewAppError(http.StatusConflict, "email_taken",
		"An account with this email already exists", "يوجد حساب بهذا البريد الإلكتروني")
)
