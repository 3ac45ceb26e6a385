package services

import (
	"log"
	"sync"
	"time"

	"github.com/nahlchatbot/NahlBooking-Farm-sub000/internal/models"
	"github.com/nahlchatbot/NahlBooking-Farm-sub000/internal/utils"
)

const (
	otpValidity   = 10 * time.Minute
	sweepInterval = 5 * time.Minute
)

type phoneOTP struct {
	code      string
	expiresAt time.Time
	verified  bool
}

// PhoneVerificationService gates booking creation on phone ownership. Codes
// live in a process-local map with a fixed validity window; a background
// sweep purges expired entries. State does not survive restarts and is not
// shared across instances.
type PhoneVerificationService struct {
	mu       sync.Mutex
	entries  map[string]*phoneOTP
	notifier *Notifier

	stopCh  chan struct{}
	stopped sync.Once
}

// NewPhoneVerificationService creates a new verification service
func NewPhoneVerificationService(notifier *Notifier) *PhoneVerificationService {
	return &PhoneVerificationService{
		entries:  make(map[string]*phoneOTP),
		notifier: notifier,
		stopCh:   make(chan struct{}),
	}
}

// Start launches the periodic sweep of expired entries
func (s *PhoneVerificationService) Start() {
	go func() {
		ticker := time.NewTicker(sweepInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				s.sweep()
			case <-s.stopCh:
				return
			}
		}
	}()
}

// Stop halts the sweep goroutine
func (s *PhoneVerificationService) Stop() {
	s.stopped.Do(func() { close(s.stopCh) })
}

func (s *PhoneVerificationService) sweep() {
	now := time.Now()
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for phone, entry := range s.entries {
		if now.After(entry.expiresAt) {
			delete(s.entries, phone)
			removed++
		}
	}
	if removed > 0 {
		log.Printf("Phone verification sweep removed %d expired entries", removed)
	}
}

// RequestOTP issues a fresh verification code for the phone and dispatches
// it over WhatsApp. A new request replaces any previous code.
func (s *PhoneVerificationService) RequestOTP(phone string) (string, error) {
	code, err := utils.GenerateSecureOTP()
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	s.entries[phone] = &phoneOTP{
		code:      code,
		expiresAt: time.Now().Add(otpValidity),
	}
	s.mu.Unlock()

	go s.notifier.VerificationOTP(phone, code)
	return code, nil
}

// VerifyOTP checks the submitted code and marks the phone verified on match.
// Each failure mode gets its own error.
func (s *PhoneVerificationService) VerifyOTP(phone, code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, exists := s.entries[phone]
	if !exists {
		return models.ErrNoOTPRequested
	}
	if time.Now().After(entry.expiresAt) {
		return models.ErrOTPExpired
	}
	if entry.code != code {
		return models.ErrOTPIncorrect
	}

	entry.verified = true
	return nil
}

// IsVerified reports whether the phone holds a live, verified entry
func (s *PhoneVerificationService) IsVerified(phone string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, exists := s.entries[phone]
	return exists && entry.verified && time.Now().Before(entry.expiresAt)
}

// Consume removes the verification entry, forcing re-verification for any
// subsequent booking by the same phone
func (s *PhoneVerificationService) Consume(phone string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, phone)
}
