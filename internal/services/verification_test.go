package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nahlchatbot/NahlBooking-Farm-sub000/internal/models"
	"github.com/nahlchatbot/NahlBooking-Farm-sub000/internal/storage"
)

func newVerificationService() *PhoneVerificationService {
	notifier := NewNotifier(storage.NewMemoryStore(), NewTwilioService())
	return NewPhoneVerificationService(notifier)
}

func TestVerifyOTP(t *testing.T) {
	svc := newVerificationService()

	assert.ErrorIs(t, svc.VerifyOTP(testPhone, "123456"), models.ErrNoOTPRequested)

	code, err := svc.RequestOTP(testPhone)
	require.NoError(t, err)
	require.Len(t, code, 6)

	wrong := "000000"
	if wrong == code {
		wrong = "000001"
	}
	assert.ErrorIs(t, svc.VerifyOTP(testPhone, wrong), models.ErrOTPIncorrect)
	assert.False(t, svc.IsVerified(testPhone))

	require.NoError(t, svc.VerifyOTP(testPhone, code))
	assert.True(t, svc.IsVerified(testPhone))

	// Other phones are untouched
	assert.False(t, svc.IsVerified("966500000000"))
}

func TestRequestOTPReplacesPrevious(t *testing.T) {
	svc := newVerificationService()

	first, err := svc.RequestOTP(testPhone)
	require.NoError(t, err)
	second, err := svc.RequestOTP(testPhone)
	require.NoError(t, err)

	if first != second {
		assert.ErrorIs(t, svc.VerifyOTP(testPhone, first), models.ErrOTPIncorrect)
	}
	assert.NoError(t, svc.VerifyOTP(testPhone, second))
}

func TestVerifyOTPExpired(t *testing.T) {
	svc := newVerificationService()

	code, err := svc.RequestOTP(testPhone)
	require.NoError(t, err)

	svc.mu.Lock()
	svc.entries[testPhone].expiresAt = time.Now().Add(-time.Second)
	svc.mu.Unlock()

	assert.ErrorIs(t, svc.VerifyOTP(testPhone, code), models.ErrOTPExpired)
	assert.False(t, svc.IsVerified(testPhone))
}

func TestConsume(t *testing.T) {
	svc := newVerificationService()

	code, err := svc.RequestOTP(testPhone)
	require.NoError(t, err)
	require.NoError(t, svc.VerifyOTP(testPhone, code))
	require.True(t, svc.IsVerified(testPhone))

	svc.Consume(testPhone)
	assert.False(t, svc.IsVerified(testPhone))
	assert.ErrorIs(t, svc.VerifyOTP(testPhone, code), models.ErrNoOTPRequested)
}

func TestSweepRemovesExpired(t *testing.T) {
	svc := newVerificationService()

	_, err := svc.RequestOTP(testPhone)
	require.NoError(t, err)

	svc.mu.Lock()
	svc.entries[testPhone].expiresAt = time.Now().Add(-time.Second)
	svc.mu.Unlock()

	svc.sweep()

	svc.mu.Lock()
	_, exists := svc.entries[testPhone]
	svc.mu.Unlock()
	assert.False(t, exists)
}
